package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/khimera-dev/khimera/internal/plugin"
)

// Model is the Bubbletea state for the plugin registry dashboard: a list of
// registered plugins whose enabled state can be toggled in place.
type Model struct {
	registry *plugin.Registry
	names    []string
	cursor   int
	keys     keyMap
	help     help.Model
	quitting bool
}

// NewModel constructs a dashboard over the given registry.
func NewModel(registry *plugin.Registry) Model {
	return Model{
		registry: registry,
		names:    registry.List(),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.names)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			m.toggle()
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *Model) toggle() {
	if len(m.names) == 0 {
		return
	}
	name := m.names[m.cursor]
	if m.registry.IsEnabled(name) {
		m.registry.Disable(name)
		return
	}
	// Every listed name is registered, so Enable cannot fail here.
	_ = m.registry.Enable(name)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Plugins"))
	b.WriteString("\n\n")

	if len(m.names) == 0 {
		b.WriteString(disabledStyle.Render("no plugins registered"))
		b.WriteString("\n")
	}

	for i, name := range m.names {
		marker := disabledStyle.Render("○")
		state := disabledStyle.Render("disabled")
		if m.registry.IsEnabled(name) {
			marker = enabledStyle.Render("●")
			state = enabledStyle.Render("enabled")
		}

		line := fmt.Sprintf("%s %s %s", marker, name, state)
		if p, ok := m.registry.Plugin(name); ok {
			line += countStyle.Render(fmt.Sprintf("  (%d fields)", len(p.Keys())))
		}
		if i == m.cursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}
