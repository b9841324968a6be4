package board

// Status is the game state from the point of view of the side to move.
type Status uint8

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "Ongoing"
	case Check:
		return "Check"
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	default:
		return "Unknown"
	}
}

// IsOver returns true for checkmate and stalemate.
func (s Status) IsOver() bool {
	return s == Checkmate || s == Stalemate
}

// Status evaluates check, checkmate and stalemate for the side to move.
func (p *Position) Status() Status {
	checked := p.IsChecked(p.SideToMove)
	if p.HasLegalMoves() {
		if checked {
			return Check
		}
		return Ongoing
	}
	if checked {
		return Checkmate
	}
	return Stalemate
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.Status() == Checkmate
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return p.Status() == Stalemate
}
