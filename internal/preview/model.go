// Package preview provides a BubbleTea view that renders with the current
// theme and toggles it on request.
package preview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/themestate/internal/theme"
)

// Model is the preview TUI model.
type Model struct {
	provider theme.Provider
	keys     KeyMap
	help     help.Model

	toggles  int
	width    int
	quitting bool
}

// New creates a Model reading and toggling the theme through provider.
// A nil provider gets the no-op default.
func New(provider theme.Provider) Model {
	return Model{
		provider: theme.Resolve(provider),
		keys:     DefaultKeyMap(),
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
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.provider.ToggleTheme()
			m.toggles++
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	dark := m.provider.IsDarkMode()
	s := newStyles(paletteFor(dark))

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render(fmt.Sprintf("Theme: %s", theme.ModeOf(dark))),
		"",
		s.body.Render("The quick brown fox jumps over the lazy dog."),
		s.muted.Render(fmt.Sprintf("toggled %d times this session", m.toggles)),
	)

	panel := s.panel
	if m.width > 4 {
		panel = panel.Width(m.width - 4)
	}

	return panel.Render(content) + "\n" + m.help.View(m.keys) + "\n"
}

// IsDarkMode reports what the view is currently rendering.
func (m Model) IsDarkMode() bool {
	return m.provider.IsDarkMode()
}

// Run starts the preview program and blocks until it exits.
func Run(provider theme.Provider) error {
	p := tea.NewProgram(New(provider))
	_, err := p.Run()
	return err
}
