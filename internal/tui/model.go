package tui

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

// Recorder stores the result of a finished game.
type Recorder interface {
	RecordGame(result storage.GameResult) error
}

type mode int

const (
	modeMove mode = iota
	modePromote
)

// Model is the bubbletea model for one terminal session.
type Model struct {
	session  *game.Session
	recorder Recorder // nil disables the tally
	logger   *log.Logger

	m        mode
	input    textinput.Model
	logLines []string

	// origin and targets of the last "moves" query
	origin  board.Square
	targets board.MoveSet

	startedAt time.Time
	recorded  bool

	width  int
	height int
}

// NewModel creates a model around session. recorder may be nil.
func NewModel(session *game.Session, recorder Recorder, logger *log.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "e2e4, moves e2, new, fen, quit"
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	m := Model{
		session:   session,
		recorder:  recorder,
		logger:    logger,
		m:         modeMove,
		input:     ti,
		origin:    board.NoSquare,
		startedAt: time.Now(),
		logLines:  []string{"ready: enter a move such as e2e4, or help"},
	}
	if _, pending := session.PendingPromotion(); pending {
		m.enterPromotion()
	}
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = min(60, max(20, m.width-4))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.input.SetValue("")
			return m, nil
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if m.execCommand(line) {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// execCommand runs one command line and reports whether to quit.
func (m *Model) execCommand(line string) bool {
	m.appendLog("> " + line)

	parts := strings.Fields(strings.ToLower(line))
	if m.m == modePromote && len(parts) == 1 && len(parts[0]) == 1 {
		// A bare letter answers the promotion prompt.
		parts = []string{"promote", parts[0]}
	}

	switch parts[0] {
	case "quit", "exit", "q":
		return true

	case "help":
		m.appendLog("commands: <from><to>[q|r|b|n], moves <square>, promote <q|r|b|n>, new, fen, quit")

	case "new":
		m.session.NewGame()
		m.resetGame()
		m.appendLog("new game")

	case "fen":
		m.appendLog(m.session.FEN())

	case "moves":
		if len(parts) != 2 {
			m.appendLog("usage: moves <square>")
			break
		}
		m.showMoves(parts[1])

	case "promote":
		if len(parts) != 2 || len(parts[1]) != 1 {
			m.appendLog("usage: promote <q|r|b|n>")
			break
		}
		m.promote(board.ParsePieceType(parts[1][0]))

	default:
		if len(parts) != 1 {
			m.appendLog(fmt.Sprintf("unknown command: %s", parts[0]))
			break
		}
		m.move(parts[0])
	}
	return false
}

func (m *Model) showMoves(arg string) {
	sq, err := board.ParseSquare(arg)
	if err != nil {
		m.appendLog(err.Error())
		return
	}
	m.origin = sq
	m.targets = m.session.Moves(sq)
	if m.targets.Len() == 0 {
		m.appendLog(fmt.Sprintf("no legal moves from %s", sq))
		return
	}
	m.appendLog(fmt.Sprintf("moves from %s: %s", sq, m.targets))
}

func (m *Model) move(text string) {
	mv, promo, err := board.ParseMove(text)
	if err != nil {
		m.appendLog(fmt.Sprintf("unknown command: %s", text))
		return
	}

	res, err := m.session.Apply(mv)
	if err != nil {
		m.appendLog(describeError(err))
		return
	}
	m.origin, m.targets = board.NoSquare, nil

	if res.PromotionPending {
		if promo != board.NoPieceType {
			m.promote(promo)
			return
		}
		m.enterPromotion()
		return
	}
	m.reportMove(res)
}

func (m *Model) promote(pt board.PieceType) {
	res, err := m.session.Promote(pt)
	if err != nil {
		m.appendLog(describeError(err))
		return
	}
	m.m = modeMove
	m.input.Placeholder = "e2e4, moves e2, new, fen, quit"
	m.reportMove(res)
}

func (m *Model) enterPromotion() {
	m.m = modePromote
	m.input.Placeholder = "promote to q, r, b or n"
	sq, _ := m.session.PendingPromotion()
	m.appendLog(fmt.Sprintf("pawn on %s promotes: choose q, r, b or n", sq))
}

func (m *Model) reportMove(res board.TransitionResult) {
	m.appendLog(fmt.Sprintf("%s played %s", res.Color, res.Notation()))
	switch res.Status {
	case board.Check:
		m.appendLog(fmt.Sprintf("%s is in check", m.session.Turn()))
	case board.Checkmate, board.Stalemate:
		m.finishGame()
	}
}

// finishGame reports the outcome and adds it to the tally once.
func (m *Model) finishGame() {
	out, over := m.session.Outcome()
	if !over {
		return
	}
	m.appendLog(out.String())

	if m.recorded || m.recorder == nil {
		return
	}
	m.recorded = true

	result := storage.Stalemate
	switch {
	case out.Status == board.Checkmate && out.Winner == board.White:
		result = storage.WhiteWins
	case out.Status == board.Checkmate:
		result = storage.BlackWins
	}
	err := m.recorder.RecordGame(storage.GameResult{
		Result:   result,
		Plies:    out.Plies,
		Duration: time.Since(m.startedAt),
	})
	if err != nil {
		m.logger.Printf("Failed to record game: %v", err)
		m.appendLog("could not save the result")
	}
}

func (m *Model) resetGame() {
	m.m = modeMove
	m.input.Placeholder = "e2e4, moves e2, new, fen, quit"
	m.origin, m.targets = board.NoSquare, nil
	m.startedAt = time.Now()
	m.recorded = false
}

func describeError(err error) string {
	switch {
	case errors.Is(err, game.ErrGameOver):
		return "the game is over: type new to play again"
	case errors.Is(err, board.ErrPromotionPending):
		return "choose a promotion piece first: q, r, b or n"
	default:
		return err.Error()
	}
}

func (m *Model) appendLog(s string) {
	m.logLines = append(m.logLines, s)
	if len(m.logLines) > 200 {
		m.logLines = m.logLines[len(m.logLines)-200:]
	}
}

func (m Model) statusLine() string {
	if out, over := m.session.Outcome(); over {
		return out.String()
	}
	if _, pending := m.session.PendingPromotion(); pending {
		return "promotion pending"
	}
	turn := m.session.Turn()
	if m.session.Status() == board.Check {
		return fmt.Sprintf("%s to move, in check", turn)
	}
	return fmt.Sprintf("%s to move", turn)
}

func (m Model) recordView() string {
	var b strings.Builder
	for i, row := range m.session.Record() {
		white := row.White
		if white == "" {
			white = "..."
		}
		fmt.Fprintf(&b, "%3d. %-10s %s\n", i+1, white, row.Black)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	header := titleStyle.Render("chessrules  " + m.statusLine())

	boardBox := boxStyle.Render(RenderBoard(m.session.Position(), m.origin, m.targets))
	recordBox := boxStyle.Width(28).Height(lipgloss.Height(boardBox) - 2).Render(m.recordView())
	top := lipgloss.JoinHorizontal(lipgloss.Top, boardBox, recordBox)

	logHeight := max(3, m.height-lipgloss.Height(top)-6)
	logStart := max(0, len(m.logLines)-logHeight)
	logBody := strings.Join(m.logLines[logStart:], "\n")
	logBox := boxStyle.Width(max(20, m.width-2)).Height(logHeight).Render(logBody)

	inputBox := boxStyle.Width(max(20, m.width-2)).Render(m.input.View())

	return header + "\n" + top + "\n" + logBox + "\n" + inputBox + "\n"
}
