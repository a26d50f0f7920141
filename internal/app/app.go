package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	tutorscreen "github.com/rasingollam/AI-Tutor/internal/screens/tutor"
	"github.com/rasingollam/AI-Tutor/internal/tutor"
	"github.com/rasingollam/AI-Tutor/internal/ui/theme"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	Manager *tutor.Manager
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	screen *tutorscreen.Screen
	width  int
	height int
}

// newAppModel creates a new AppModel hosting the tutoring screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		screen: tutorscreen.New(opts.Manager),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.screen.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	header := theme.Title.Width(m.width).Render("AI Tutor - " + m.screen.Title())
	footer := theme.Subtitle.Width(m.width).Render("Enter: submit   Esc: quit session   Ctrl+C: exit")

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.screen.View(m.width, contentHeight)
	v.SetContent(lipgloss.JoinVertical(lipgloss.Left, header, content, footer))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
