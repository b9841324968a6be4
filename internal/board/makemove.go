package board

import "fmt"

// TransitionResult describes what applying a move did to the position.
type TransitionResult struct {
	Move  Move
	Piece PieceType
	Color Color

	Capture  bool
	Captured PieceType // NoPieceType if nothing was taken

	EnPassant  bool
	Castle     bool
	LongCastle bool

	// PromotionPending is set when a pawn reached its last rank; the
	// replacement is supplied through Promote.
	PromotionPending bool
	Promotion        PieceType // set once the promotion has completed

	// Status of the side now to move.
	Status Status
}

// Apply validates m against the legal moves of the side to move and
// applies it. A rejected move leaves the position untouched.
func (p *Position) Apply(m Move) (TransitionResult, error) {
	if sq, pending := p.PendingPromotion(); pending {
		return TransitionResult{}, fmt.Errorf("%w: pawn on %s", ErrPromotionPending, sq)
	}
	piece := p.PieceAt(m.From)
	if piece.IsEmpty() {
		return TransitionResult{}, fmt.Errorf("%w: no piece at %s", ErrIllegalMove, m.From)
	}
	if piece.Color != p.SideToMove {
		return TransitionResult{}, fmt.Errorf("%w: %s piece at %s, %s to move", ErrIllegalMove, piece.Color, m.From, p.SideToMove)
	}
	if !p.Moves(m.From).Contains(m) {
		return TransitionResult{}, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	return p.apply(m), nil
}

// apply performs the transition for a move already known to be legal.
func (p *Position) apply(m Move) TransitionResult {
	moving := p.PieceAt(m.From)
	us := moving.Color

	res := TransitionResult{
		Move:      m,
		Piece:     moving.Type,
		Color:     us,
		Captured:  NoPieceType,
		Promotion: NoPieceType,
	}

	// En-passant eligibility lasts only until the owner's next move.
	p.pieces(us, func(_ Square, piece *Piece) {
		if piece.Type == Pawn {
			piece.EnPassantable = false
		}
	})
	moving.EnPassantable = false

	if victim, ok := p.enPassantVictim(m); ok {
		res.EnPassant = true
		res.Capture = true
		res.Captured = Pawn
		*p.slot(victim) = NoPiece
	} else if target := p.PieceAt(m.To); !target.IsEmpty() {
		res.Capture = true
		res.Captured = target.Type
	}

	switch moving.Type {
	case Pawn:
		moving.Moved = true
		if abs(m.To.Rank-m.From.Rank) == 2 {
			moving.EnPassantable = true
		}
		if m.To.Rank == us.LastRank() {
			res.PromotionPending = true
		}

	case King:
		moving.Moved = true
		p.pieces(us, func(_ Square, piece *Piece) {
			if piece.Type == Rook {
				piece.CanCastle = false
			}
		})
		if abs(m.To.File-m.From.File) == 2 {
			res.Castle = true
			p.castleRook(m, us, &res)
		}

	case Rook:
		moving.CanCastle = false
	}

	*p.slot(m.From) = NoPiece
	p.put(m.To, moving)

	p.SideToMove = us.Other()
	res.Status = p.Status()
	return res
}

// castleRook moves the rook that accompanies a castling king jump.
func (p *Position) castleRook(m Move, us Color, res *TransitionResult) {
	for _, side := range castleSides {
		if m.To.File != side.kingFile {
			continue
		}
		from := NewSquare(us.HomeRank(), side.rookFile)
		to := NewSquare(us.HomeRank(), side.crossFile)
		rook := p.PieceAt(from)
		rook.CanCastle = false
		*p.slot(from) = NoPiece
		p.put(to, rook)
		res.LongCastle = side.rookFile == 0
		return
	}
}

// Promote replaces the pawn on sq, which must stand on its last rank, with
// a fresh piece of type pt and the pawn's color. It returns the status of
// the side to move afterwards.
func (p *Position) Promote(sq Square, pt PieceType) (Status, error) {
	pawn := p.PieceAt(sq)
	if pawn.Type != Pawn || sq.Rank != pawn.Color.LastRank() {
		return p.Status(), fmt.Errorf("%w: no pawn awaiting promotion on %s", ErrInvalidPromotion, sq)
	}
	if !pt.IsPromotionTarget() {
		return p.Status(), fmt.Errorf("%w: cannot promote to %s", ErrInvalidPromotion, pt)
	}

	promoted := NewPiece(pt, pawn.Color)
	promoted.CanCastle = false
	p.put(sq, promoted)

	return p.Status(), nil
}
