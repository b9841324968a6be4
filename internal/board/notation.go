package board

import "strings"

// Notation returns the move-record text for a completed transition:
// "O-O" / "O-O-O" for castling, "<letter><start>[x]<end>" for piece and
// pawn moves, and "<start>[x]<end>=<letter>" once a promotion has been
// completed, each followed by "+" for check or "#" for checkmate.
func (r TransitionResult) Notation() string {
	var sb strings.Builder

	switch {
	case r.Castle && r.LongCastle:
		sb.WriteString("O-O-O")
	case r.Castle:
		sb.WriteString("O-O")
	default:
		if r.Promotion == NoPieceType {
			sb.WriteString(r.Piece.Letter())
		}
		sb.WriteString(r.Move.From.String())
		if r.Capture {
			sb.WriteByte('x')
		}
		sb.WriteString(r.Move.To.String())
		if r.Promotion != NoPieceType {
			sb.WriteByte('=')
			sb.WriteString(r.Promotion.Letter())
		}
	}

	switch r.Status {
	case Checkmate:
		sb.WriteByte('#')
	case Check:
		sb.WriteByte('+')
	}

	return sb.String()
}
