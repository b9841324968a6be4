package game

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func mustMove(t *testing.T, s string) board.Move {
	t.Helper()
	m, _, err := board.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", s, err)
	}
	return m
}

func play(t *testing.T, s *Session, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if _, err := s.Apply(mustMove(t, m)); err != nil {
			t.Fatalf("Apply(%s): %v", m, err)
		}
	}
}

func TestFoolsMate(t *testing.T) {
	s := New()
	play(t, s, "f2f3", "e7e5", "g2g4", "d8h4")

	if got := s.Status(); got != board.Checkmate {
		t.Fatalf("Status() = %v, want Checkmate", got)
	}
	out, over := s.Outcome()
	if !over || out.Winner != board.Black || out.Plies != 4 {
		t.Errorf("Outcome() = %+v %v, want black win after 4 plies", out, over)
	}
	if got := out.String(); got != "Black wins by checkmate" {
		t.Errorf("Outcome.String() = %q", got)
	}

	if _, err := s.Apply(mustMove(t, "e1f2")); !errors.Is(err, ErrGameOver) {
		t.Errorf("Apply after mate: err = %v, want ErrGameOver", err)
	}

	want := []Row{{"f2f3", "e7e5"}, {"g2g4", "Qd8h4#"}}
	got := s.Record()
	if len(got) != len(want) {
		t.Fatalf("Record() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestApplyRejections(t *testing.T) {
	var buf bytes.Buffer
	s := New(WithLogger(log.New(&buf, "", 0)))

	if _, err := s.Apply(mustMove(t, "e7e5")); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("black move on white's turn: err = %v, want ErrIllegalMove", err)
	}
	if _, err := s.Apply(mustMove(t, "e2e5")); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("three-square pawn push: err = %v, want ErrIllegalMove", err)
	}
	if s.Turn() != board.White || s.Plies() != 0 {
		t.Error("rejected moves changed the session")
	}
	if s.FEN() != board.StartFEN {
		t.Errorf("FEN() = %q, want start position", s.FEN())
	}
	if !strings.Contains(buf.String(), "rejected e7e5") {
		t.Errorf("log output %q does not mention the rejected move", buf.String())
	}
	t.Log(buf.String())
}

func TestMovesOnlyForSideToMove(t *testing.T) {
	s := New()
	sq, _ := board.ParseSquare("e7")
	if moves := s.Moves(sq); moves.Len() != 0 {
		t.Errorf("black pawn has moves %v on white's turn", moves)
	}
	sq, _ = board.ParseSquare("g1")
	if got := s.Moves(sq).Len(); got != 2 {
		t.Errorf("knight on g1 has %d moves, want 2", got)
	}
}

func TestPromotionFlow(t *testing.T) {
	s, err := NewFromFEN("4k3/1P6/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Promote(board.Queen); !errors.Is(err, board.ErrInvalidPromotion) {
		t.Errorf("Promote with nothing pending: err = %v, want ErrInvalidPromotion", err)
	}

	res, err := s.Apply(mustMove(t, "b7b8"))
	if err != nil {
		t.Fatal(err)
	}
	if !res.PromotionPending {
		t.Fatal("expected a pending promotion")
	}
	if sq, ok := s.PendingPromotion(); !ok || sq.String() != "b8" {
		t.Errorf("PendingPromotion() = %s %v, want b8", sq, ok)
	}
	if s.Plies() != 0 {
		t.Error("record entry written before the promotion completed")
	}

	e8, _ := board.ParseSquare("e8")
	if moves := s.Moves(e8); moves.Len() != 0 {
		t.Errorf("moves %v offered while a promotion is pending", moves)
	}
	if _, err := s.Apply(mustMove(t, "e8d7")); !errors.Is(err, board.ErrPromotionPending) {
		t.Errorf("Apply while pending: err = %v, want ErrPromotionPending", err)
	}
	if _, err := s.Promote(board.King); !errors.Is(err, board.ErrInvalidPromotion) {
		t.Errorf("Promote(King): err = %v, want ErrInvalidPromotion", err)
	}

	res, err = s.Promote(board.Knight)
	if err != nil {
		t.Fatal(err)
	}
	if res.Promotion != board.Knight || res.PromotionPending {
		t.Errorf("result = %+v, want completed knight promotion", res)
	}
	if s.Turn() != board.Black {
		t.Errorf("Turn() = %s, want black", s.Turn())
	}
	rows := s.Record()
	if len(rows) != 1 || rows[0].White != "b7b8=N" {
		t.Errorf("Record() = %v, want [{b7b8=N }]", rows)
	}
}

func TestRecordStartingWithBlack(t *testing.T) {
	s, err := NewFromFEN("4k3/8/8/8/8/8/8/R3K3 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	play(t, s, "e8d7", "a1a7", "d7d6")

	rows := s.Record()
	want := []Row{{"", "Ke8d7"}, {"Ra1a7+", "Kd7d6"}}
	if len(rows) != len(want) {
		t.Fatalf("Record() = %v, want %v", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestStalemateOutcome(t *testing.T) {
	s, err := NewFromFEN("7k/8/4Q1K1/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	play(t, s, "e6f7")

	out, over := s.Outcome()
	if !over || out.Status != board.Stalemate || out.Winner != board.NoColor {
		t.Errorf("Outcome() = %+v %v, want stalemate", out, over)
	}
	if out.String() != "Draw by stalemate" {
		t.Errorf("Outcome.String() = %q", out.String())
	}
}

func TestNewGameResets(t *testing.T) {
	s := New()
	play(t, s, "f2f3", "e7e5", "g2g4", "d8h4")
	s.NewGame()

	if s.Status() != board.Ongoing || s.Plies() != 0 || s.FEN() != board.StartFEN {
		t.Errorf("NewGame did not reset: status %v plies %d fen %q", s.Status(), s.Plies(), s.FEN())
	}
	if _, over := s.Outcome(); over {
		t.Error("fresh game reports an outcome")
	}
}

func TestPositionIsACopy(t *testing.T) {
	s := New()
	pos := s.Position()
	pos.Clear()
	if s.FEN() != board.StartFEN {
		t.Error("mutating the returned position changed the session")
	}
}

func TestConcurrentReaders(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rank := 0; rank < 8; rank++ {
				for file := 0; file < 8; file++ {
					s.Moves(board.NewSquare(rank, file))
				}
			}
			s.IsChecked(board.White)
		}()
	}
	play(t, s, "e2e4", "e7e5")
	wg.Wait()

	if s.Plies() != 2 {
		t.Errorf("Plies() = %d, want 2", s.Plies())
	}
}
