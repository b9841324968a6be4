package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a Position.
//
// The castling field grants CanCastle to the named corner rooks; a king
// with no remaining right, or off its home square, counts as moved. The
// en-passant field marks the pawn that has just double-stepped. Pawns
// off their start rank count as moved. Move counters are ignored.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(parts))
	}

	pos := &Position{}
	pos.Clear()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, parts[1])
	}

	// Parse castling rights (field 2)
	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		if err := parseEnPassant(pos, parts[3]); err != nil {
			return nil, err
		}
	}

	if err := pos.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	return pos, nil
}

// MustParseFEN is like ParseFEN but panics on error.
func MustParseFEN(fen string) *Position {
	pos, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos
}

// parsePiecePlacement parses the piece placement section of a FEN string.
// FEN lists rank 8 first, which is rank index 0 here.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for rank, rankStr := range ranks {
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, 8-rank)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := pieceFromChar(byte(c))
			if piece.IsEmpty() {
				return fmt.Errorf("%w: piece character %c", ErrInvalidFEN, c)
			}
			// Flags are corrected from the castling field later.
			piece.Moved = (piece.Type == Pawn && rank != piece.Color.PawnRank()) ||
				piece.Type == King
			piece.CanCastle = false
			pos.put(NewSquare(rank, file), piece)
			file++
		}

		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, 8-rank, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		return nil
	}

	for _, c := range castling {
		var color Color
		var rookFile int
		switch c {
		case 'K':
			color, rookFile = White, 7
		case 'Q':
			color, rookFile = White, 0
		case 'k':
			color, rookFile = Black, 7
		case 'q':
			color, rookFile = Black, 0
		default:
			return fmt.Errorf("%w: castling character %c", ErrInvalidFEN, c)
		}

		home := color.HomeRank()
		rook := pos.slot(NewSquare(home, rookFile))
		king := pos.slot(NewSquare(home, 4))
		if !rook.Is(Rook, color) || !king.Is(King, color) {
			return fmt.Errorf("%w: castling right %c without king and rook in place", ErrInvalidFEN, c)
		}
		rook.CanCastle = true
		king.Moved = false
	}

	return nil
}

// parseEnPassant marks the pawn standing in front of the en-passant target
// square, from the point of view of the side that just moved.
func parseEnPassant(pos *Position, field string) error {
	target, err := ParseSquare(field)
	if err != nil {
		return fmt.Errorf("%w: en passant square %q", ErrInvalidFEN, field)
	}

	mover := pos.SideToMove.Other()
	sq, ok := target.Offset(mover.Forward(), 0)
	pawn := pos.PieceAt(sq)
	if !ok || !pawn.Is(Pawn, mover) || !pos.IsEmpty(target) {
		return fmt.Errorf("%w: en passant square %s has no pawn behind it", ErrInvalidFEN, target)
	}
	pos.slot(sq).EnPassantable = true
	return nil
}

// FEN returns the FEN representation of the position.
// Move counters are not tracked and are always written as "0 1".
func (p *Position) FEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := 0; rank < 8; rank++ {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.Squares[rank][file]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank < 7 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castlingField())

	sb.WriteByte(' ')
	sb.WriteString(p.enPassantTarget().String())

	sb.WriteString(" 0 1")
	return sb.String()
}

// castlingField renders the castling rights still available.
func (p *Position) castlingField() string {
	var s string
	for _, c := range []Color{White, Black} {
		home := c.HomeRank()
		if king := p.PieceAt(NewSquare(home, 4)); !king.Is(King, c) || king.Moved {
			continue
		}
		for _, right := range []struct {
			file int
			char byte
		}{{7, 'K'}, {0, 'Q'}} {
			rook := p.PieceAt(NewSquare(home, right.file))
			if !rook.Is(Rook, c) || !rook.CanCastle {
				continue
			}
			ch := right.char
			if c == Black {
				ch += 'a' - 'A'
			}
			s += string(ch)
		}
	}
	if s == "" {
		return "-"
	}
	return s
}

// enPassantTarget returns the square behind a pawn of the side that just
// moved which is still eligible for capture en passant, or NoSquare.
func (p *Position) enPassantTarget() Square {
	mover := p.SideToMove.Other()
	rank := mover.PawnRank() + 2*mover.Forward()
	for file := 0; file < 8; file++ {
		if pawn := p.Squares[rank][file]; pawn.Is(Pawn, mover) && pawn.EnPassantable {
			return NewSquare(rank-mover.Forward(), file)
		}
	}
	return NoSquare
}
