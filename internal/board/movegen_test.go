package board

import (
	"slices"
	"testing"
)

func targetsOf(ms MoveSet) []string {
	out := make([]string, 0, ms.Len())
	for _, sq := range ms.Targets() {
		out = append(out, sq.String())
	}
	slices.Sort(out)
	return out
}

func TestPieceMoves(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from string
		want []string
	}{
		{
			name: "pawn single and double step",
			fen:  StartFEN,
			from: "e2",
			want: []string{"e3", "e4"},
		},
		{
			name: "pawn double step blocked on intermediate square",
			fen:  "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1",
			from: "e2",
			want: []string{},
		},
		{
			name: "pawn double step blocked on far square",
			fen:  "4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1",
			from: "e2",
			want: []string{"e3"},
		},
		{
			name: "moved pawn steps once and captures",
			fen:  "4k3/8/8/3p1p2/4P3/8/8/4K3 w - - 0 1",
			from: "e4",
			want: []string{"d5", "e5", "f5"},
		},
		{
			name: "black pawn moves toward rank 1",
			fen:  "4k3/3p4/2N5/8/8/8/8/4K3 b - - 0 1",
			from: "d7",
			want: []string{"c6", "d5", "d6"},
		},
		{
			name: "pawn reaching the last rank",
			fen:  "1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1",
			from: "a7",
			want: []string{"a8", "b8"},
		},
		{
			name: "knight in the corner",
			fen:  "4k3/8/8/8/8/8/2P5/N3K3 w - - 0 1",
			from: "a1",
			want: []string{"b3"},
		},
		{
			name: "knight in the centre",
			fen:  "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1",
			from: "d4",
			want: []string{"b3", "b5", "c2", "c6", "e2", "e6", "f3", "f5"},
		},
		{
			name: "bishop stops at friend, captures enemy",
			fen:  "4k3/8/5p2/8/3B4/8/1P6/4K3 w - - 0 1",
			from: "d4",
			want: []string{"a7", "b6", "c3", "c5", "e3", "e5", "f2", "f6", "g1"},
		},
		{
			name: "rook on open lines",
			fen:  "4k3/8/8/8/8/8/1K6/R7 w - - 0 1",
			from: "a1",
			want: []string{"a2", "a3", "a4", "a5", "a6", "a7", "a8", "b1", "c1", "d1", "e1", "f1", "g1", "h1"},
		},
		{
			name: "queen is rook plus bishop",
			fen:  "4k3/8/8/8/8/1P6/PQN5/4K3 w - - 0 1",
			from: "b2",
			want: []string{"a1", "a3", "b1", "c1", "c3", "d4", "e5", "f6", "g7", "h8"},
		},
		{
			name: "king keeps away from the enemy king",
			fen:  "8/8/8/3k4/8/3K4/8/8 w - - 0 1",
			from: "d3",
			want: []string{"c2", "c3", "d2", "e2", "e3"},
		},
		{
			name: "pinned knight has no moves",
			fen:  "4r1k1/8/8/8/8/8/4N3/4K3 w - - 0 1",
			from: "e2",
			want: []string{},
		},
		{
			name: "pinned rook slides along the pin",
			fen:  "4r1k1/8/8/8/8/8/4R3/4K3 w - - 0 1",
			from: "e2",
			want: []string{"e3", "e4", "e5", "e6", "e7", "e8"},
		},
		{
			name: "only check-resolving moves while in check",
			fen:  "4k3/8/8/8/8/8/3R4/r3K3 w - - 0 1",
			from: "d2",
			want: []string{"d1"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			got := targetsOf(pos.Moves(mustSquare(tc.from)))
			want := slices.Clone(tc.want)
			slices.Sort(want)
			if !slices.Equal(got, want) {
				t.Errorf("moves from %s = %v, want %v", tc.from, got, want)
			}
		})
	}
}

func TestMovesEmptySquare(t *testing.T) {
	pos := NewPosition()
	if moves := pos.Moves(mustSquare("e4")); moves.Len() != 0 {
		t.Errorf("Moves(e4) on empty square = %v, want none", moves)
	}
}

func TestStartingPositionMoves(t *testing.T) {
	pos := NewPosition()
	if got := pos.LegalMoves().Len(); got != 20 {
		t.Errorf("white has %d moves, want 20", got)
	}
	pos.SideToMove = Black
	if got := pos.LegalMoves().Len(); got != 20 {
		t.Errorf("black has %d moves, want 20", got)
	}
}

func TestEnPassant(t *testing.T) {
	pos := MustParseFEN("4k3/8/8/8/3p1p2/8/4P3/4K3 w - - 0 1")

	if _, err := pos.Apply(mustMove("e2e4")); err != nil {
		t.Fatal(err)
	}

	for _, from := range []string{"d4", "f4"} {
		if !pos.Moves(mustSquare(from)).Contains(NewMove(mustSquare(from), mustSquare("e3"))) {
			t.Errorf("pawn on %s should capture en passant on e3", from)
		}
	}

	// Black declines; once White has moved again the chance is gone.
	if _, err := pos.Apply(mustMove("e8d8")); err != nil {
		t.Fatal(err)
	}
	if _, err := pos.Apply(mustMove("e1d1")); err != nil {
		t.Fatal(err)
	}
	for _, from := range []string{"d4", "f4"} {
		if pos.Moves(mustSquare(from)).Contains(NewMove(mustSquare(from), mustSquare("e3"))) {
			t.Errorf("pawn on %s still captures en passant after another move", from)
		}
	}
}

func TestEnPassantSingleStepNotEligible(t *testing.T) {
	pos := MustParseFEN("4k3/8/8/8/3p4/4P3/8/4K3 w - - 0 1")
	if _, err := pos.Apply(mustMove("e3e4")); err != nil {
		t.Fatal(err)
	}
	if pos.Moves(mustSquare("d4")).Contains(mustMove("d4e3")) {
		t.Error("single-step pawn must not be capturable en passant")
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		wantShort bool
		wantLong  bool
	}{
		{"both sides free", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", true, true},
		{"crossing square attacked", "r3kr2/8/8/8/8/8/8/R3K2R w KQq - 0 1", false, true},
		{"destination attacked", "r3k1r1/8/8/8/8/8/8/R3K2R w KQq - 0 1", false, true},
		{"long crossing square attacked", "r2rk3/8/8/8/8/8/8/R3K2R w KQ - 0 1", true, false},
		{"b-file attacked does not matter", "1r2k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", true, true},
		{"in check", "4k3/8/8/8/4r3/8/8/R3K2R w KQ - 0 1", false, false},
		{"blocked", "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1", false, false},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", false, false},
		{"enemy king next to destination", "8/8/8/8/8/8/6k1/4K2R w K - 0 1", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			moves := pos.Moves(mustSquare("e1"))
			if got := moves.Contains(mustMove("e1g1")); got != tc.wantShort {
				t.Errorf("e1g1 present = %v, want %v (moves %v)", got, tc.wantShort, moves)
			}
			if got := moves.Contains(mustMove("e1c1")); got != tc.wantLong {
				t.Errorf("e1c1 present = %v, want %v (moves %v)", got, tc.wantLong, moves)
			}
		})
	}
}

func TestIsValidHasNoSideEffects(t *testing.T) {
	pos := MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	before := *pos

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := NewSquare(rank, file)
			for _, m := range pos.pseudoLegalMoves(from, pos.PieceAt(from)) {
				pos.IsValid(m)
				if *pos != before {
					t.Fatalf("IsValid(%s) changed the position", m)
				}
			}
		}
	}
}
