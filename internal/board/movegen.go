package board

// Moves returns the legal moves for the piece on sq, or an empty set if
// the square is empty. Every pseudo-legal candidate is passed through
// IsValid before it is returned.
func (p *Position) Moves(sq Square) MoveSet {
	piece := p.PieceAt(sq)
	if piece.IsEmpty() {
		return nil
	}

	candidates := p.pseudoLegalMoves(sq, piece)

	legal := candidates[:0]
	for _, m := range candidates {
		if p.IsValid(m) {
			legal = append(legal, m)
		}
	}
	return newMoveSet(legal)
}

// LegalMoves returns every legal move for the side to move.
func (p *Position) LegalMoves() MoveSet {
	var all []Move
	p.pieces(p.SideToMove, func(sq Square, _ *Piece) {
		all = append(all, p.Moves(sq)...)
	})
	return newMoveSet(all)
}

// HasLegalMoves returns true if any piece of the side to move has a legal move.
func (p *Position) HasLegalMoves() bool {
	for rank := range p.Squares {
		for file, piece := range p.Squares[rank] {
			if piece.IsEmpty() || piece.Color != p.SideToMove {
				continue
			}
			if len(p.Moves(NewSquare(rank, file))) > 0 {
				return true
			}
		}
	}
	return false
}

// pseudoLegalMoves generates moves that follow the piece's geometry and
// blocking rules, without regard to the mover's king safety.
func (p *Position) pseudoLegalMoves(sq Square, piece Piece) []Move {
	switch piece.Type {
	case Pawn:
		return p.pawnMoves(sq, piece)
	case Knight:
		return p.leaperMoves(sq, piece.Color, knightOffsets[:])
	case Bishop:
		return p.sliderMoves(sq, piece.Color, diagonalRays[:])
	case Rook:
		return p.sliderMoves(sq, piece.Color, orthogonalRays[:])
	case Queen:
		moves := p.sliderMoves(sq, piece.Color, orthogonalRays[:])
		return append(moves, p.sliderMoves(sq, piece.Color, diagonalRays[:])...)
	case King:
		return p.kingMoves(sq, piece)
	}
	return nil
}

// pawnMoves generates pushes, the double step from the start rank, and
// diagonal captures including en passant. Reaching the last rank is an
// ordinary destination here.
func (p *Position) pawnMoves(from Square, pawn Piece) []Move {
	var moves []Move
	us := pawn.Color
	fwd := us.Forward()

	if one, ok := from.Offset(fwd, 0); ok && p.IsEmpty(one) {
		moves = append(moves, NewMove(from, one))

		if !pawn.Moved && from.Rank == us.PawnRank() {
			if two, ok := from.Offset(2*fwd, 0); ok && p.IsEmpty(two) {
				moves = append(moves, NewMove(from, two))
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to, ok := from.Offset(fwd, df)
		if !ok {
			continue
		}
		if p.PieceAt(to).IsEnemyOf(us) {
			moves = append(moves, NewMove(from, to))
			continue
		}
		// En passant: the enemy pawn beside us has just double-stepped.
		beside, _ := from.Offset(0, df)
		if adj := p.PieceAt(beside); adj.IsEnemyOfType(us, Pawn) && adj.EnPassantable && p.IsEmpty(to) {
			moves = append(moves, NewMove(from, to))
		}
	}

	return moves
}

// leaperMoves generates single-hop moves to empty or enemy squares.
func (p *Position) leaperMoves(from Square, us Color, offsets []direction) []Move {
	var moves []Move
	for _, d := range offsets {
		to, ok := from.Offset(d.dr, d.df)
		if !ok {
			continue
		}
		if target := p.PieceAt(to); target.IsEmpty() || target.Color != us {
			moves = append(moves, NewMove(from, to))
		}
	}
	return moves
}

// sliderMoves walks each ray until blocked: empty squares continue, an
// enemy is captured and stops the ray, a friend stops it unincluded.
func (p *Position) sliderMoves(from Square, us Color, rays []direction) []Move {
	var moves []Move
	for _, d := range rays {
		to := from
		for {
			var ok bool
			if to, ok = to.Offset(d.dr, d.df); !ok {
				break
			}
			target := p.PieceAt(to)
			if target.IsEmpty() {
				moves = append(moves, NewMove(from, to))
				continue
			}
			if target.Color != us {
				moves = append(moves, NewMove(from, to))
			}
			break
		}
	}
	return moves
}

// kingMoves generates steps to the eight neighbours that are not next to
// the opposing king, plus castling.
func (p *Position) kingMoves(from Square, king Piece) []Move {
	var moves []Move
	us := king.Color

	for _, d := range kingOffsets {
		to, ok := from.Offset(d.dr, d.df)
		if !ok || p.nextToEnemyKing(to, us) {
			continue
		}
		if target := p.PieceAt(to); !target.IsEmpty() && target.Color == us {
			continue
		}
		moves = append(moves, NewMove(from, to))
	}

	return append(moves, p.castlingMoves(from, king)...)
}

// nextToEnemyKing returns true if sq is within one step of the king of
// the color opposing us.
func (p *Position) nextToEnemyKing(sq Square, us Color) bool {
	enemy := p.KingSquare[us.Other()]
	return enemy.IsValid() && Distance(sq, enemy) <= 1
}

// castlingMoves generates the king's two-file jumps. The king must be
// unmoved on its home square and not in check, the rook unmoved on its
// corner, the squares between them empty, and the square the king crosses
// safe. The destination itself is checked by the final IsValid pass.
func (p *Position) castlingMoves(from Square, king Piece) []Move {
	us := king.Color
	home := us.HomeRank()
	if king.Moved || from != NewSquare(home, 4) || p.IsChecked(us) {
		return nil
	}

	var moves []Move
	for _, side := range castleSides {
		rook := p.PieceAt(NewSquare(home, side.rookFile))
		if !rook.Is(Rook, us) || !rook.CanCastle {
			continue
		}
		if !p.rankEmptyBetween(home, side.rookFile, 4) {
			continue
		}

		cross := NewSquare(home, side.crossFile)
		to := NewSquare(home, side.kingFile)
		if p.nextToEnemyKing(cross, us) || p.nextToEnemyKing(to, us) {
			continue
		}
		if !p.IsValid(NewMove(from, cross)) {
			continue
		}
		moves = append(moves, NewMove(from, to))
	}
	return moves
}

// castleSide describes the files involved in castling on one wing.
type castleSide struct {
	rookFile  int // rook's starting corner
	crossFile int // square the king passes through; the rook lands here
	kingFile  int // king's destination
}

var castleSides = [2]castleSide{
	{rookFile: 0, crossFile: 3, kingFile: 2}, // long
	{rookFile: 7, crossFile: 5, kingFile: 6}, // short
}

// rankEmptyBetween reports whether every square strictly between files a
// and b on the given rank is empty.
func (p *Position) rankEmptyBetween(rank, a, b int) bool {
	lo, hi := min(a, b), max(a, b)
	for file := lo + 1; file < hi; file++ {
		if !p.Squares[rank][file].IsEmpty() {
			return false
		}
	}
	return true
}
