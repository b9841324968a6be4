package board

import (
	"fmt"
	"slices"
	"strings"
)

// Move is an ordered (start, end) pair of squares.
// Promotion choice is not part of the move; it is supplied after the
// pawn lands on its last rank (see Position.Promote).
type Move struct {
	From Square
	To   Square
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare}

// NewMove creates a move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// Compare orders moves by start square, then end square.
func (m Move) Compare(other Move) int {
	if c := m.From.Compare(other.From); c != 0 {
		return c
	}
	return m.To.Compare(other.To)
}

// String returns the coordinate form of the move (e.g., "e2e4").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// ParseMove parses a coordinate move string such as "e2e4".
// A trailing promotion letter ("e7e8q") is returned separately, or
// NoPieceType if absent.
func ParseMove(s string) (Move, PieceType, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return NoMove, NoPieceType, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, NoPieceType, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, NoPieceType, err
	}

	promo := NoPieceType
	if len(s) == 5 {
		promo = ParsePieceType(s[4])
		if !promo.IsPromotionTarget() {
			return NoMove, NoPieceType, fmt.Errorf("%w: piece %c", ErrInvalidPromotion, s[4])
		}
	}

	return NewMove(from, to), promo, nil
}

// MoveSet is a sorted, duplicate-free collection of moves.
type MoveSet []Move

// newMoveSet sorts and deduplicates moves in place.
func newMoveSet(moves []Move) MoveSet {
	slices.SortFunc(moves, Move.Compare)
	return MoveSet(slices.Compact(moves))
}

// Len returns the number of moves in the set.
func (ms MoveSet) Len() int {
	return len(ms)
}

// Contains returns true if the set contains the move.
func (ms MoveSet) Contains(m Move) bool {
	_, found := slices.BinarySearchFunc(ms, m, Move.Compare)
	return found
}

// Targets returns the destination squares of the moves, in set order.
func (ms MoveSet) Targets() []Square {
	targets := make([]Square, len(ms))
	for i, m := range ms {
		targets[i] = m.To
	}
	return targets
}

// Union returns the set of moves present in either set.
func (ms MoveSet) Union(other MoveSet) MoveSet {
	all := make([]Move, 0, len(ms)+len(other))
	all = append(all, ms...)
	all = append(all, other...)
	return newMoveSet(all)
}

// String returns the moves in coordinate form separated by spaces.
func (ms MoveSet) String() string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
