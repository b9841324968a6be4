package board

import (
	"testing"
)

// mustSquare and mustMove keep the tables readable.
func mustSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

func mustMove(s string) Move {
	m, _, err := ParseMove(s)
	if err != nil {
		panic(err)
	}
	return m
}

func TestCheckmate(t *testing.T) {
	// Back rank mate: Kh8 boxed in by its own pawns, rook on a8.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Checkmate position:")
	t.Log(pos)

	if !pos.IsChecked(Black) {
		t.Fatal("expected black king to be checked")
	}

	pos.pieces(Black, func(sq Square, _ *Piece) {
		if moves := pos.Moves(sq); moves.Len() != 0 {
			t.Errorf("piece on %s has moves %v, want none", sq, moves)
		}
	})

	if !pos.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
	if pos.IsStalemate() {
		t.Error("checkmate reported as stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// Black king on h8 can take the unprotected rook on g8.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	moves := pos.Moves(mustSquare("h8"))
	t.Log("Black king moves:", moves)

	if !moves.Contains(mustMove("h8g8")) {
		t.Error("expected the king to capture on g8")
	}
	if got := pos.Status(); got != Check {
		t.Errorf("Status() = %v, want Check", got)
	}
}

func TestMateBlockedByInterposition(t *testing.T) {
	// Back rank pattern again, but the black rook on d1 can block on d8.
	pos := MustParseFEN("R6k/6pp/8/8/8/8/K7/3r4 b - - 0 1")

	moves := pos.Moves(mustSquare("d1"))
	if moves.Len() != 1 || !moves.Contains(mustMove("d1d8")) {
		t.Errorf("rook moves = %v, want only d1d8", moves)
	}
	if got := pos.Status(); got != Check {
		t.Errorf("Status() = %v, want Check", got)
	}
}

func TestStalemate(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"queen and king box", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"},
		{"blocked pawn and king", "k7/P7/1K6/8/8/8/8/8 b - - 0 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			if pos.IsChecked(pos.SideToMove) {
				t.Fatal("stalemate position must not be check")
			}
			if moves := pos.LegalMoves(); moves.Len() != 0 {
				t.Fatalf("legal moves = %v, want none", moves)
			}
			if got := pos.Status(); got != Stalemate {
				t.Errorf("Status() = %v, want Stalemate", got)
			}
		})
	}
}
