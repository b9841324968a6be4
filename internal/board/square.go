// Package board implements the rules of chess: piece movement, check
// detection, legal move filtering and move application on an 8x8 grid.
package board

import "fmt"

// Square is a (rank, file) pair on the board.
// Rank 0 is Black's home row and rank 7 is White's; file 0 is the a-file.
type Square struct {
	Rank int
	File int
}

// NoSquare marks the absence of a square.
var NoSquare = Square{Rank: -1, File: -1}

// NewSquare creates a square from rank and file (0-indexed).
func NewSquare(rank, file int) Square {
	return Square{Rank: rank, File: file}
}

// IsValid returns true if the square lies on the board.
func (sq Square) IsValid() bool {
	return sq.Rank >= 0 && sq.Rank < 8 && sq.File >= 0 && sq.File < 8
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File, '8'-sq.Rank)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	file := int(s[0]) - 'a'
	rank := '8' - int(s[1])

	sq := NewSquare(rank, file)
	if !sq.IsValid() {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}

// Compare orders squares by rank, then file.
func (sq Square) Compare(other Square) int {
	switch {
	case sq.Rank < other.Rank:
		return -1
	case sq.Rank > other.Rank:
		return 1
	case sq.File < other.File:
		return -1
	case sq.File > other.File:
		return 1
	}
	return 0
}

// Offset returns the square dr ranks and df files away, and whether it is on the board.
func (sq Square) Offset(dr, df int) (Square, bool) {
	to := Square{Rank: sq.Rank + dr, File: sq.File + df}
	return to, to.IsValid()
}

// Mirror returns the square rotated through the board centre
// (rank-for-rank and file-for-file).
func (sq Square) Mirror() Square {
	return Square{Rank: 7 - sq.Rank, File: 7 - sq.File}
}

// Distance returns the Chebyshev (king-step) distance between two squares.
func Distance(a, b Square) int {
	return max(abs(a.Rank-b.Rank), abs(a.File-b.File))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
