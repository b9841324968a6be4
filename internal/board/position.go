package board

import (
	"fmt"
	"strings"
)

// backRank is the piece order on both home rows, file a through h.
var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Position represents a complete chess position.
type Position struct {
	// Piece slots indexed [rank][file]; empty squares hold NoPiece.
	Squares [8][8]Piece

	// King positions, kept in lockstep with Squares.
	KingSquare [2]Square

	SideToMove Color
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	p := &Position{}
	p.Reset()
	return p
}

// Reset sets up the standard starting position with all flags fresh.
func (p *Position) Reset() {
	p.Clear()
	for _, c := range []Color{White, Black} {
		for file, pt := range backRank {
			p.put(NewSquare(c.HomeRank(), file), NewPiece(pt, c))
			p.put(NewSquare(c.PawnRank(), file), NewPiece(Pawn, c))
		}
	}
	p.SideToMove = White
}

// Clear resets the position to an empty board.
func (p *Position) Clear() {
	for rank := range p.Squares {
		for file := range p.Squares[rank] {
			p.Squares[rank][file] = NoPiece
		}
	}
	p.KingSquare[White] = NoSquare
	p.KingSquare[Black] = NoSquare
	p.SideToMove = White
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.Squares[sq.Rank][sq.File]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq).IsEmpty()
}

// Put places a piece on a square, replacing any occupant, and keeps the
// king index current. Intended for position setup.
func (p *Position) Put(sq Square, piece Piece) {
	if !sq.IsValid() {
		return
	}
	p.put(sq, piece)
}

func (p *Position) put(sq Square, piece Piece) {
	p.Squares[sq.Rank][sq.File] = piece
	if piece.Type == King {
		p.KingSquare[piece.Color] = sq
	}
}

// slot returns a pointer to the piece slot for in-place flag updates.
func (p *Position) slot(sq Square) *Piece {
	return &p.Squares[sq.Rank][sq.File]
}

// pieces calls fn for every occupied square holding a piece of color c.
func (p *Position) pieces(c Color, fn func(sq Square, piece *Piece)) {
	for rank := range p.Squares {
		for file := range p.Squares[rank] {
			piece := &p.Squares[rank][file]
			if !piece.IsEmpty() && piece.Color == c {
				fn(NewSquare(rank, file), piece)
			}
		}
	}
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 0; rank < 8; rank++ {
		fmt.Fprintf(&sb, "%d  ", 8-rank)
		for file := 0; file < 8; file++ {
			piece := p.Squares[rank][file]
			if piece.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Kings: %s %s\n", p.KingSquare[White], p.KingSquare[Black])
	return sb.String()
}

// Validate checks that the position satisfies the board invariants:
// one king per color, the king index matching the board, no pawn on its
// own home rank, and non-adjacent kings.
func (p *Position) Validate() error {
	var kings [2]int
	for rank := range p.Squares {
		for file, piece := range p.Squares[rank] {
			if piece.IsEmpty() {
				continue
			}
			if piece.Color >= NoColor {
				return fmt.Errorf("%w: bad color on %s", ErrInvalidPosition, NewSquare(rank, file))
			}
			if piece.Type == King {
				kings[piece.Color]++
				if p.KingSquare[piece.Color] != NewSquare(rank, file) {
					return fmt.Errorf("%w: %s king index %s, board %s", ErrInvalidPosition,
						piece.Color, p.KingSquare[piece.Color], NewSquare(rank, file))
				}
			}
			if piece.Type == Pawn && rank == piece.Color.HomeRank() {
				return fmt.Errorf("%w: %s pawn on its home rank", ErrInvalidPosition, piece.Color)
			}
		}
	}

	for _, c := range []Color{White, Black} {
		if kings[c] != 1 {
			return fmt.Errorf("%w: %s must have exactly one king", ErrInvalidPosition, c)
		}
	}

	if Distance(p.KingSquare[White], p.KingSquare[Black]) < 2 {
		return fmt.Errorf("%w: kings are adjacent", ErrInvalidPosition)
	}

	return nil
}

// Mirror returns the position rotated through the board centre with
// colors swapped. Attack queries on the result answer the same as on p
// with colors exchanged.
func (p *Position) Mirror() *Position {
	m := &Position{}
	m.Clear()
	for rank := range p.Squares {
		for file, piece := range p.Squares[rank] {
			if piece.IsEmpty() {
				continue
			}
			piece.Color = piece.Color.Other()
			m.put(NewSquare(rank, file).Mirror(), piece)
		}
	}
	m.SideToMove = p.SideToMove.Other()
	return m
}

// PendingPromotion returns the square of a pawn that has reached its
// last rank and still awaits a replacement piece.
func (p *Position) PendingPromotion() (Square, bool) {
	for _, c := range []Color{White, Black} {
		rank := c.LastRank()
		for file := 0; file < 8; file++ {
			if p.Squares[rank][file].Is(Pawn, c) {
				return NewSquare(rank, file), true
			}
		}
	}
	return NoSquare, false
}
