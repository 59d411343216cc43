package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/BetterRest/internal/bedtime"
	"github.com/yildizm/BetterRest/internal/emoji"
	"github.com/yildizm/BetterRest/internal/predict"
)

const appTitle = "BetterRest"

// field identifies one of the three form inputs
type field int

const (
	fieldWake field = iota
	fieldSleep
	fieldCoffee
	fieldCount
)

// FormModel is the bubbletea model of the bedtime form
type FormModel struct {
	form   *bedtime.Form
	keys   keyMap
	help   help.Model
	styles *Styles

	focus    field
	width    int
	height   int
	quitting bool

	source string
	events <-chan predict.ArtifactEvent
	status *predict.ArtifactEvent
}

// NewFormModel wraps form. source names the model artifact in the status line.
func NewFormModel(form *bedtime.Form, source string) *FormModel {
	return &FormModel{
		form:   form,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: GetStyles(),
		source: source,
	}
}

// WithArtifactEvents makes the model listen for artifact changes
func (m *FormModel) WithArtifactEvents(events <-chan predict.ArtifactEvent) *FormModel {
	m.events = events
	return m
}

// Init implements tea.Model
func (m *FormModel) Init() tea.Cmd {
	if m.events != nil {
		return waitForArtifact(m.events)
	}
	return nil
}

// Update implements tea.Model
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.form.Phase() == bedtime.PhaseShowingResult {
			return m.handleAlertKey(msg)
		}
		return m.handleKeyPress(msg)

	case artifactEventMsg:
		event := msg.event
		m.status = &event
		return m, waitForArtifact(m.events)

	case watcherClosedMsg:
		m.events = nil
		return m, nil
	}

	return m, nil
}

// handleAlertKey keeps the alert modal until it is acknowledged
func (m *FormModel) handleAlertKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Dismiss):
		m.form.Dismiss()
	}
	return m, nil
}

func (m *FormModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % fieldCount
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + fieldCount - 1) % fieldCount
	case key.Matches(msg, m.keys.Increase):
		m.adjust(1, false)
	case key.Matches(msg, m.keys.Decrease):
		m.adjust(-1, false)
	case key.Matches(msg, m.keys.HourUp):
		m.adjust(1, true)
	case key.Matches(msg, m.keys.HourDown):
		m.adjust(-1, true)
	case key.Matches(msg, m.keys.Calculate):
		m.form.Calculate()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// adjust moves the focused input by one step; coarse moves the wake time
// by an hour and is a single step for the other inputs
func (m *FormModel) adjust(dir int, coarse bool) {
	switch m.focus {
	case fieldWake:
		if coarse {
			m.form.ShiftWakeTime(dir * 60)
		} else {
			m.form.ShiftWakeTime(dir)
		}
	case fieldSleep:
		m.form.StepSleepAmount(dir)
	case fieldCoffee:
		m.form.StepCoffeeAmount(dir)
	}
}

// View implements tea.Model
func (m *FormModel) View() string {
	if m.quitting {
		return fmt.Sprintf("%s Sleep well!\n", emoji.GetEmoji("moon"))
	}

	if m.form.Phase() == bedtime.PhaseShowingResult {
		if res, ok := m.form.Result(); ok {
			return m.place(m.renderAlert(res))
		}
	}

	return m.place(m.renderForm())
}

// place centers content once the terminal size is known
func (m *FormModel) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *FormModel) renderForm() string {
	in := m.form.Inputs()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(emoji.GetEmoji("sleep") + " " + appTitle))
	b.WriteString("\n\n")

	b.WriteString(m.renderField(fieldWake, emoji.GetEmoji("alarm"), bedtime.WakePrompt, in.Wake.String()))
	b.WriteString("\n")
	b.WriteString(m.renderField(fieldSleep, emoji.GetEmoji("moon"), bedtime.SleepPrompt, bedtime.SleepLabel(in.SleepAmount)))
	b.WriteString("\n")
	b.WriteString(m.renderField(fieldCoffee, emoji.GetEmoji("coffee"), bedtime.CoffeePrompt, bedtime.CoffeeLabel(in.CoffeeAmount)))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Button.Render("[ Calculate ]"))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m *FormModel) renderField(f field, icon, prompt, value string) string {
	body := m.styles.Prompt.Render(icon+" "+prompt) + "\n" + m.styles.Value.Render(value)
	if f == m.focus {
		return m.styles.FocusedField.Render(body)
	}
	return m.styles.Field.Render(body)
}

func (m *FormModel) renderAlert(res bedtime.Result) string {
	title := m.styles.AlertTitle.Render(res.Title)
	if !res.OK() {
		title = m.styles.ErrorTitle.Render(emoji.GetEmoji("error") + " " + res.Title)
	}

	lines := []string{
		title,
		"",
		m.styles.AlertMessage.Render(res.Message),
	}
	if res.OK() {
		lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("%s predicted sleep: %s",
			emoji.GetEmoji("sleep"), bedtime.DurationLabel(res.Estimate.ActualSleep))))
	}
	lines = append(lines, "", m.styles.AlertButton.Render("OK"))

	return m.styles.Alert.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m *FormModel) renderStatus() string {
	label := fmt.Sprintf("%s model: %s", emoji.GetEmoji("model"), m.source)
	if m.status == nil {
		return m.styles.Muted.Render(label)
	}
	if m.status.OK() {
		return m.styles.StatusOK.Render(fmt.Sprintf("%s (%s %s)", label, m.status.Op, m.status.At.Format("15:04:05")))
	}
	return m.styles.StatusError.Render(fmt.Sprintf("%s %s %v", label, emoji.GetEmoji("warning"), m.status.Err))
}
