package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// Forward returns the rank step a pawn of this color advances by.
// White moves toward rank 0, Black toward rank 7.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// HomeRank returns the back rank the color starts on.
func (c Color) HomeRank() int {
	if c == White {
		return 7
	}
	return 0
}

// PawnRank returns the rank the color's pawns start on.
func (c Color) PawnRank() int {
	return c.HomeRank() + c.Forward()
}

// LastRank returns the rank on which the color's pawns promote.
func (c Color) LastRank() int {
	return c.Other().HomeRank()
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Letter returns the notation letter for the piece type; pawns have none.
func (pt PieceType) Letter() string {
	switch pt {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return ""
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// IsPromotionTarget reports whether a pawn may be replaced by this piece type.
func (pt PieceType) IsPromotionTarget() bool {
	return pt == Knight || pt == Bishop || pt == Rook || pt == Queen
}

// ParsePieceType parses a piece letter (either case) into a PieceType.
func ParsePieceType(c byte) PieceType {
	switch c {
	case 'p', 'P':
		return Pawn
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	case 'k', 'K':
		return King
	default:
		return NoPieceType
	}
}

// Piece is the value held by a board slot. Empty squares hold NoPiece
// (the zero Piece is a white pawn, so boards are filled via Clear).
//
// Moved applies to pawns and kings, EnPassantable to pawns, and CanCastle
// to rooks. The remaining flags are always false.
type Piece struct {
	Type  PieceType
	Color Color

	Moved         bool
	EnPassantable bool
	CanCastle     bool
}

// NoPiece is the content of an empty square.
var NoPiece = Piece{Type: NoPieceType, Color: NoColor}

// NewPiece creates a fresh piece. Rooks start with castling rights.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece{Type: pt, Color: c, CanCastle: pt == Rook}
}

// IsEmpty returns true if the slot holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Type >= NoPieceType
}

// Is returns true if the piece has the given type and color.
func (p Piece) Is(pt PieceType, c Color) bool {
	return p.Type == pt && p.Color == c
}

// IsEnemyOf returns true if the slot holds a piece of the opposite color.
func (p Piece) IsEnemyOf(c Color) bool {
	return !p.IsEmpty() && p.Color != c
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p.IsEmpty() {
		return " "
	}
	ch := p.Type.Char()
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return string(ch)
}

// pieceFromChar converts a FEN character to a fresh Piece.
func pieceFromChar(c byte) Piece {
	pt := ParsePieceType(c)
	if pt == NoPieceType {
		return NoPiece
	}
	color := Black
	if c >= 'A' && c <= 'Z' {
		color = White
	}
	return NewPiece(pt, color)
}
