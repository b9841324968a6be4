package tui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hailam/chessrules/internal/game"
)

// Run starts the terminal front end on session and blocks until the
// player quits. recorder may be nil.
func Run(session *game.Session, recorder Recorder, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(session, recorder, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
