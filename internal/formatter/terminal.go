package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/BetterRest/internal/bedtime"
	"github.com/yildizm/BetterRest/internal/emoji"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter renders a short tree for terminal display using go-termfmt
type terminalFormatter struct {
	opts       *termfmt.TerminalOptions
	timeLayout string
	headline   lipgloss.Style
}

// NewTerminal creates a terminal formatter
func NewTerminal(opts Options) Formatter {
	topts := termfmt.DefaultOptions()
	topts.Color = opts.Color
	topts.Emoji = !emoji.IsEmojiDisabled()

	headline := lipgloss.NewStyle()
	if opts.Color {
		headline = headline.Bold(true)
	}

	return &terminalFormatter{
		opts:       topts,
		timeLayout: opts.TimeLayout,
		headline:   headline,
	}
}

func (f *terminalFormatter) Format(res bedtime.Result) ([]byte, error) {
	var b strings.Builder

	if !res.OK() {
		b.WriteString(emoji.GetEmoji("error") + " " + f.headline.Render(res.Title) + "\n")
		b.WriteString("   " + res.Message + "\n")
		return []byte(b.String()), nil
	}

	est := res.Estimate
	b.WriteString(emoji.GetEmoji("moon") + " " + f.headline.Render(res.Title) + "\n")
	b.WriteString("   " + f.headline.Render(bedtimeLine(est, f.timeLayout)) + "\n\n")

	f.writeInputs(&b, est)
	return []byte(b.String()), nil
}

// writeInputs writes the inputs and the predicted sleep as a tree
func (f *terminalFormatter) writeInputs(b *strings.Builder, est *bedtime.Estimate) {
	items := []termfmt.TreeItem{
		{Label: emoji.GetEmoji("alarm") + " Wake time: " + est.Inputs.Wake.String()},
		{Label: emoji.GetEmoji("sleep") + " Desired sleep: " + bedtime.SleepLabel(est.Inputs.SleepAmount)},
		{Label: emoji.GetEmoji("coffee") + " Coffee: " + bedtime.CoffeeLabel(est.Inputs.CoffeeAmount)},
		{Label: emoji.GetEmoji("model") + " Predicted sleep: " + bedtime.DurationLabel(est.ActualSleep), Last: true},
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}
