package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recera/vexc/cmd/vexc/internal/config"
)

// WizardStep is the current screen of the config wizard
type WizardStep int

const (
	StepPaths WizardStep = iota
	StepOptions
	StepSummary
)

const (
	inputSrcDir = iota
	inputOutDir
	inputExtension
	inputDelimiters
)

const (
	toggleTrimWhitespace = iota
	toggleComments
	toggleStrict
	toggleProduction
)

// KeyMap defines the wizard keyboard shortcuts
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Enter key.Binding
	Space key.Binding
	Back  key.Binding
	Quit  key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Space: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Width(14)

	selectedStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

type toggle struct {
	label string
	on    bool
}

// Wizard is a bubbletea model that edits a project configuration.
type Wizard struct {
	step     WizardStep
	base     config.Config
	inputs   []textinput.Model
	labels   []string
	focus    int
	toggles  []toggle
	selected int
	result   *config.Config

	errorMessage string
	confirmed    bool
	quitting     bool
}

// NewWizard creates a wizard pre-filled from initial.
func NewWizard(initial *config.Config) Wizard {
	newInput := func(placeholder, value string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 200
		in.Width = 40
		in.SetValue(value)
		return in
	}

	inputs := []textinput.Model{
		newInput(".", initial.SrcDir),
		newInput("next to each template", initial.OutDir),
		newInput(".vex.js", initial.Extension),
		newInput("{{ }}", strings.Join(initial.Delimiters, " ")),
	}
	inputs[inputSrcDir].Focus()

	return Wizard{
		step:   StepPaths,
		base:   *initial,
		inputs: inputs,
		labels: []string{"Source dir", "Output dir", "Extension", "Delimiters"},
		toggles: []toggle{
			{label: "Trim whitespace between elements", on: initial.TrimWhitespace},
			{label: "Keep template comments", on: initial.Comments},
			{label: "Fail on template warnings", on: initial.Strict},
			{label: "Production build (no diagnostics)", on: initial.Production},
		},
	}
}

// Confirmed reports whether the user accepted the summary.
func (w Wizard) Confirmed() bool { return w.confirmed }

// Config returns the edited configuration, or nil before the paths step
// validated.
func (w Wizard) Config() *config.Config { return w.result }

// Step returns the current screen.
func (w Wizard) Step() WizardStep { return w.step }

// Init initializes the model
func (w Wizard) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (w Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}

	if key.Matches(keyMsg, DefaultKeyMap.Quit) {
		w.quitting = true
		return w, tea.Quit
	}

	switch w.step {
	case StepPaths:
		return w.handlePathKeys(keyMsg)
	case StepOptions:
		w.handleOptionKeys(keyMsg)
	case StepSummary:
		switch {
		case key.Matches(keyMsg, DefaultKeyMap.Enter):
			w.confirmed = true
			return w, tea.Quit
		case key.Matches(keyMsg, DefaultKeyMap.Back):
			w.step = StepOptions
		}
	}
	return w, nil
}

func (w Wizard) handlePathKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Next, DefaultKeyMap.Down):
		w.setFocus((w.focus + 1) % len(w.inputs))
		return w, nil

	case key.Matches(msg, DefaultKeyMap.Prev, DefaultKeyMap.Up):
		w.setFocus((w.focus + len(w.inputs) - 1) % len(w.inputs))
		return w, nil

	case key.Matches(msg, DefaultKeyMap.Enter):
		cfg, err := w.buildConfig()
		if err != nil {
			w.errorMessage = err.Error()
			return w, nil
		}
		w.errorMessage = ""
		w.result = cfg
		w.inputs[w.focus].Blur()
		w.step = StepOptions
		return w, nil
	}

	var cmd tea.Cmd
	w.inputs[w.focus], cmd = w.inputs[w.focus].Update(msg)
	return w, cmd
}

func (w *Wizard) handleOptionKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if w.selected > 0 {
			w.selected--
		}
	case key.Matches(msg, DefaultKeyMap.Down, DefaultKeyMap.Next):
		if w.selected < len(w.toggles)-1 {
			w.selected++
		}
	case key.Matches(msg, DefaultKeyMap.Space):
		w.toggles[w.selected].on = !w.toggles[w.selected].on
	case key.Matches(msg, DefaultKeyMap.Enter):
		w.applyToggles()
		w.step = StepSummary
	case key.Matches(msg, DefaultKeyMap.Back):
		w.step = StepPaths
		w.inputs[w.focus].Focus()
	}
}

func (w *Wizard) setFocus(i int) {
	w.inputs[w.focus].Blur()
	w.focus = i
	w.inputs[w.focus].Focus()
}

// buildConfig reads the text inputs on top of the initial configuration.
func (w Wizard) buildConfig() (*config.Config, error) {
	cfg := w.base
	cfg.SrcDir = valueOr(w.inputs[inputSrcDir], ".")
	cfg.OutDir = strings.TrimSpace(w.inputs[inputOutDir].Value())
	cfg.Extension = valueOr(w.inputs[inputExtension], ".vex.js")
	cfg.Delimiters = strings.Fields(w.inputs[inputDelimiters].Value())
	if len(cfg.Delimiters) == 0 {
		cfg.Delimiters = nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (w *Wizard) applyToggles() {
	w.result.TrimWhitespace = w.toggles[toggleTrimWhitespace].on
	w.result.Comments = w.toggles[toggleComments].on
	w.result.Strict = w.toggles[toggleStrict].on
	w.result.Production = w.toggles[toggleProduction].on
}

func valueOr(in textinput.Model, fallback string) string {
	if v := strings.TrimSpace(in.Value()); v != "" {
		return v
	}
	return fallback
}

// View renders the current screen
func (w Wizard) View() string {
	if w.quitting {
		return ""
	}

	var b strings.Builder
	switch w.step {
	case StepPaths:
		b.WriteString(titleStyle.Render("vexc project setup"))
		b.WriteByte('\n')
		for i, in := range w.inputs {
			b.WriteString(labelStyle.Render(w.labels[i]) + in.View() + "\n")
		}
		if w.errorMessage != "" {
			b.WriteString("\n" + errorStyle.Render("❌ "+w.errorMessage) + "\n")
		}
		b.WriteString(helpStyle.Render("tab next field • enter continue • ctrl+c quit"))

	case StepOptions:
		b.WriteString(titleStyle.Render("Compiler options"))
		b.WriteByte('\n')
		for i, t := range w.toggles {
			box := "[ ]"
			if t.on {
				box = "[x]"
			}
			line := fmt.Sprintf("%s %s", box, t.label)
			if i == w.selected {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
		b.WriteString(helpStyle.Render("space toggle • enter continue • esc back"))

	case StepSummary:
		b.WriteString(titleStyle.Render("Summary"))
		b.WriteByte('\n')
		b.WriteString(summaryLines(w.result))
		b.WriteString(helpStyle.Render("enter write vexc.yaml • esc back"))
	}
	return b.String() + "\n"
}

func summaryLines(cfg *config.Config) string {
	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "(next to each template)"
	}
	delimiters := "{{ }}"
	if len(cfg.Delimiters) == 2 {
		delimiters = cfg.Delimiters[0] + " " + cfg.Delimiters[1]
	}

	rows := [][2]string{
		{"Source dir", cfg.SrcDir},
		{"Output dir", outDir},
		{"Extension", cfg.Extension},
		{"Delimiters", delimiters},
		{"Trim", fmt.Sprint(cfg.TrimWhitespace)},
		{"Comments", fmt.Sprint(cfg.Comments)},
		{"Strict", fmt.Sprint(cfg.Strict)},
		{"Production", fmt.Sprint(cfg.Production)},
	}
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row[0]) + successStyle.Render(row[1]) + "\n")
	}
	return b.String()
}
