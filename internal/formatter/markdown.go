package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/BetterRest/internal/bedtime"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	timeLayout string
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown(opts Options) Formatter {
	return &markdownFormatter{timeLayout: opts.TimeLayout}
}

func (f *markdownFormatter) Format(res bedtime.Result) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# BetterRest\n\n")

	if !res.OK() {
		fmt.Fprintf(&b, "## %s\n\n%s\n", res.Title, res.Message)
		return []byte(b.String()), nil
	}

	est := res.Estimate
	f.writeInputTable(&b, est)

	fmt.Fprintf(&b, "## %s\n\n", res.Title)
	fmt.Fprintf(&b, "**%s**\n\n", bedtimeLine(est, f.timeLayout))
	fmt.Fprintf(&b, "Predicted actual sleep: %s\n", bedtime.DurationLabel(est.ActualSleep))

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeInputTable(b *strings.Builder, est *bedtime.Estimate) {
	b.WriteString("| Input | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(b, "| Wake time | %s |\n", est.Inputs.Wake)
	fmt.Fprintf(b, "| Desired sleep | %s |\n", bedtime.SleepLabel(est.Inputs.SleepAmount))
	fmt.Fprintf(b, "| Coffee | %s |\n\n", bedtime.CoffeeLabel(est.Inputs.CoffeeAmount))
}
