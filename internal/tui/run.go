package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/keyreaper/keyreaper/internal/types"
)

// Run launches the interactive result browser and blocks until the user
// quits.
func Run(url string, results []types.DetectionResult) error {
	p := tea.NewProgram(NewModel(url, results), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
