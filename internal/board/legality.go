package board

// IsValid returns false if playing m would leave the mover's own king
// attacked. The mover is the color of the piece on m.From.
//
// The move is simulated in place and the board and king index are
// restored before returning. Captures, including the pawn taken en
// passant, are removed for the duration of the simulation.
func (p *Position) IsValid(m Move) bool {
	if !m.From.IsValid() || !m.To.IsValid() {
		return false
	}
	mover := p.PieceAt(m.From)
	if mover.IsEmpty() {
		return false
	}
	us := mover.Color

	undo := p.simulate(m)
	defer p.restore(undo)

	return !p.IsChecked(us)
}

// simulation records what simulate changed so restore can put it back.
type simulation struct {
	move       Move
	moved      Piece
	captured   Piece
	epSquare   Square
	epCaptured Piece
	kingSquare [2]Square
}

// simulate relocates the piece on m.From to m.To without touching any
// flags. Only IsChecked is meaningful on the result.
func (p *Position) simulate(m Move) simulation {
	s := simulation{
		move:       m,
		moved:      p.PieceAt(m.From),
		captured:   p.PieceAt(m.To),
		epSquare:   NoSquare,
		kingSquare: p.KingSquare,
	}

	if sq, ok := p.enPassantVictim(m); ok {
		s.epSquare = sq
		s.epCaptured = p.PieceAt(sq)
		*p.slot(sq) = NoPiece
	}

	*p.slot(m.From) = NoPiece
	*p.slot(m.To) = s.moved
	if s.moved.Type == King {
		p.KingSquare[s.moved.Color] = m.To
	}
	return s
}

func (p *Position) restore(s simulation) {
	*p.slot(s.move.From) = s.moved
	*p.slot(s.move.To) = s.captured
	if s.epSquare != NoSquare {
		*p.slot(s.epSquare) = s.epCaptured
	}
	p.KingSquare = s.kingSquare
}

// enPassantVictim returns the square of the pawn m would capture en
// passant: a diagonal pawn step onto an empty square.
func (p *Position) enPassantVictim(m Move) (Square, bool) {
	mover := p.PieceAt(m.From)
	if mover.Type != Pawn || m.From.File == m.To.File || !p.IsEmpty(m.To) {
		return NoSquare, false
	}
	victim := NewSquare(m.From.Rank, m.To.File)
	if !p.PieceAt(victim).IsEnemyOfType(mover.Color, Pawn) {
		return NoSquare, false
	}
	return victim, true
}
