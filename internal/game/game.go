// Package game wraps a board.Position in a session that serializes access,
// tracks the pending promotion choice and keeps the move record.
package game

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hailam/chessrules/internal/board"
)

// ErrGameOver is returned for moves made after checkmate or stalemate.
var ErrGameOver = errors.New("game is over")

// Outcome describes how a finished game ended.
type Outcome struct {
	Status board.Status
	Winner board.Color // NoColor for stalemate
	Plies  int
}

// String returns a short human-readable result.
func (o Outcome) String() string {
	switch o.Status {
	case board.Checkmate:
		return fmt.Sprintf("%s wins by checkmate", o.Winner)
	case board.Stalemate:
		return "Draw by stalemate"
	default:
		return "Game in progress"
	}
}

// Row is one line of the move record: White's move and Black's reply.
// A game set up with Black to move starts with an empty White entry.
type Row struct {
	White string
	Black string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger attaches a logger that reports rejected operations.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// Session owns one position. All methods are safe for concurrent use;
// each holds the session lock for its whole duration.
type Session struct {
	mu sync.Mutex

	pos    *board.Position
	status board.Status

	// pending holds the transition of a pawn waiting on its last rank.
	pending *board.TransitionResult

	record    []string
	firstMove board.Color

	logger *log.Logger
}

// New creates a session on the standard starting position.
func New(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	s.reset(board.NewPosition())
	return s
}

// NewFromFEN creates a session on the position described by fen.
func NewFromFEN(fen string, opts ...Option) (*Session, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	s.reset(pos)
	return s, nil
}

func (s *Session) reset(pos *board.Position) {
	s.pos = pos
	s.pending = nil
	s.record = nil
	s.firstMove = pos.SideToMove
	s.status = pos.Status()

	// A FEN may leave a pawn on its last rank.
	if sq, ok := pos.PendingPromotion(); ok {
		s.pending = &board.TransitionResult{
			Move:             board.NewMove(sq, sq),
			Piece:            board.Pawn,
			Color:            pos.PieceAt(sq).Color,
			Captured:         board.NoPieceType,
			PromotionPending: true,
			Promotion:        board.NoPieceType,
		}
	}
}

func (s *Session) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// NewGame resets the session to the standard starting position.
func (s *Session) NewGame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(board.NewPosition())
}

// Moves returns the legal moves of the piece on sq. Pieces of the side not
// to move, and every piece while a promotion is pending or after the game
// has ended, have none.
func (s *Session) Moves(sq board.Square) board.MoveSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil || s.status.IsOver() {
		return nil
	}
	if piece := s.pos.PieceAt(sq); piece.IsEmpty() || piece.Color != s.pos.SideToMove {
		return nil
	}
	return s.pos.Moves(sq)
}

// IsChecked returns true if the king of color c is attacked.
func (s *Session) IsChecked(c board.Color) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos.IsChecked(c)
}

// Turn returns the side to move.
func (s *Session) Turn() board.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos.SideToMove
}

// Status returns the status of the side to move.
func (s *Session) Status() board.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Position returns a copy of the current position.
func (s *Session) Position() *board.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos.Copy()
}

// PendingPromotion returns the square of the pawn awaiting a promotion
// choice, if any.
func (s *Session) PendingPromotion() (board.Square, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return board.NoSquare, false
	}
	return s.pending.Move.To, true
}

// Apply plays m for the side to move. When the move takes a pawn to its
// last rank the returned result has PromotionPending set and the record
// entry is written once Promote completes it.
func (s *Session) Apply(m board.Move) (board.TransitionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.IsOver() {
		s.logf("rejected %s: %v", m, ErrGameOver)
		return board.TransitionResult{}, ErrGameOver
	}
	if s.pending != nil {
		err := fmt.Errorf("%w: pawn on %s", board.ErrPromotionPending, s.pending.Move.To)
		s.logf("rejected %s: %v", m, err)
		return board.TransitionResult{}, err
	}

	res, err := s.pos.Apply(m)
	if err != nil {
		s.logf("rejected %s: %v", m, err)
		return res, err
	}

	if res.PromotionPending {
		s.pending = &res
		return res, nil
	}

	s.finish(res)
	return res, nil
}

// Promote completes the pending promotion with a piece of type pt.
func (s *Session) Promote(pt board.PieceType) (board.TransitionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		err := fmt.Errorf("%w: no promotion pending", board.ErrInvalidPromotion)
		s.logf("rejected promotion to %s: %v", pt, err)
		return board.TransitionResult{}, err
	}

	status, err := s.pos.Promote(s.pending.Move.To, pt)
	if err != nil {
		s.logf("rejected promotion to %s: %v", pt, err)
		return *s.pending, err
	}

	res := *s.pending
	res.PromotionPending = false
	res.Promotion = pt
	res.Status = status
	s.pending = nil

	// A pawn left on the last rank by FEN setup has no move to record.
	if res.Move.From == res.Move.To {
		s.status = status
		return res, nil
	}

	s.finish(res)
	return res, nil
}

// finish records a completed transition and takes over its status.
func (s *Session) finish(res board.TransitionResult) {
	s.record = append(s.record, res.Notation())
	s.status = res.Status
}

// Plies returns the number of completed moves.
func (s *Session) Plies() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.record)
}

// Record returns the move record as rows of White and Black moves.
func (s *Session) Record() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []Row
	plies := s.record
	if s.firstMove == board.Black && len(plies) > 0 {
		rows = append(rows, Row{Black: plies[0]})
		plies = plies[1:]
	}
	for i := 0; i < len(plies); i += 2 {
		row := Row{White: plies[i]}
		if i+1 < len(plies) {
			row.Black = plies[i+1]
		}
		rows = append(rows, row)
	}
	return rows
}

// Outcome returns how the game ended, or false while it is still going.
func (s *Session) Outcome() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.status.IsOver() {
		return Outcome{}, false
	}
	out := Outcome{Status: s.status, Winner: board.NoColor, Plies: len(s.record)}
	if s.status == board.Checkmate {
		out.Winner = s.pos.SideToMove.Other()
	}
	return out, true
}

// FEN returns the FEN of the current position.
func (s *Session) FEN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos.FEN()
}
