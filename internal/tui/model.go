// Package tui is the terminal parameter tuner: arrow keys pick a layout
// parameter, enter edits it, changes push live into a running engine (or a
// feed) and persist through the host's config file on exit.
package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recera/graphlens/pkg/layout"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// entry is one tunable parameter row.
type entry struct {
	name  string
	label string
	get   func(*layout.Params) float64
}

var entries = []entry{
	{"linkDistance", "Link distance", func(p *layout.Params) float64 { return p.LinkDistance }},
	{"charge", "Charge strength", func(p *layout.Params) float64 { return p.Charge }},
	{"gravity", "Gravity", func(p *layout.Params) float64 { return p.Gravity }},
	{"nodeRadius", "Node radius", func(p *layout.Params) float64 { return p.NodeRadius }},
	{"curveSpacing", "Curve spacing", func(p *layout.Params) float64 { return p.CurveSpacing }},
	{"nodeLabelZoom", "Node label zoom", func(p *layout.Params) float64 { return p.NodeLabelZoom }},
	{"edgeLabelZoom", "Edge label zoom", func(p *layout.Params) float64 { return p.EdgeLabelZoom }},
	{"labelDistance", "Label distance (3D)", func(p *layout.Params) float64 { return p.LabelDistance }},
}

// Model is the bubbletea model for the tuner.
type Model struct {
	params layout.Params

	cursor  int
	editing bool
	input   textinput.Model
	errMsg  string

	// onChange fires after every applied edit with the full parameter set.
	onChange func(layout.Params)
}

// New creates the tuner over an initial parameter set. onChange may be nil.
func New(params layout.Params, onChange func(layout.Params)) Model {
	ti := textinput.New()
	ti.CharLimit = 12
	ti.Width = 12
	return Model{params: params, input: ti, onChange: onChange}
}

// Params returns the current (possibly edited) parameter set.
func (m Model) Params() layout.Params { return m.params }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		switch keyMsg.String() {
		case "enter":
			value, err := strconv.ParseFloat(m.input.Value(), 64)
			if err != nil {
				m.errMsg = fmt.Sprintf("not a number: %s", m.input.Value())
				return m, nil
			}
			if err := m.params.Set(entries[m.cursor].name, value); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.editing = false
			m.errMsg = ""
			if m.onChange != nil {
				m.onChange(m.params)
			}
			return m, nil
		case "esc":
			m.editing = false
			m.errMsg = ""
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case "enter":
		m.editing = true
		m.input.SetValue(strconv.FormatFloat(entries[m.cursor].get(&m.params), 'f', -1, 64))
		m.input.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	s := titleStyle.Render("graphlens layout parameters") + "\n\n"
	for i, e := range entries {
		cursor := "  "
		line := fmt.Sprintf("%-20s %s", e.label, valueStyle.Render(strconv.FormatFloat(e.get(&m.params), 'f', -1, 64)))
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
			if m.editing {
				line = fmt.Sprintf("%-20s %s", e.label, m.input.View())
			} else {
				line = selectedStyle.Render(fmt.Sprintf("%-20s ", e.label)) + valueStyle.Render(strconv.FormatFloat(e.get(&m.params), 'f', -1, 64))
			}
		}
		s += cursor + line + "\n"
	}
	if m.errMsg != "" {
		s += "\n" + errorStyle.Render(m.errMsg) + "\n"
	}
	s += "\n" + hintStyle.Render("enter: edit · esc: cancel · q: save and quit") + "\n"
	return s
}
