package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"bingo-cli/internal/api"
)

// Run starts the interactive board browser and blocks until the user quits.
func Run(svc api.Service, server string) error {
	applyColorProfilePreference()
	p := tea.NewProgram(newAppModel(svc, server), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
