package board

// direction is a (rank, file) step.
type direction struct {
	dr, df int
}

var (
	knightOffsets = [8]direction{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
	kingOffsets = [8]direction{
		{-1, -1}, {-1, 0}, {-1, 1}, {0, -1},
		{0, 1}, {1, -1}, {1, 0}, {1, 1},
	}
	orthogonalRays = [4]direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalRays   = [4]direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// IsChecked returns true if the king of color c is attacked by an enemy
// pawn, knight or slider. The king square is taken from the king index.
//
// Enemy kings are not considered: king adjacency is excluded at move
// generation time.
func (p *Position) IsChecked(c Color) bool {
	ksq := p.KingSquare[c]
	if !ksq.IsValid() {
		return false
	}

	// Pawns attack from the two diagonally-forward squares.
	for _, df := range [2]int{-1, 1} {
		if sq, ok := ksq.Offset(c.Forward(), df); ok && p.PieceAt(sq).IsEnemyOfType(c, Pawn) {
			return true
		}
	}

	for _, d := range knightOffsets {
		if sq, ok := ksq.Offset(d.dr, d.df); ok && p.PieceAt(sq).IsEnemyOfType(c, Knight) {
			return true
		}
	}

	for _, d := range orthogonalRays {
		if p.firstOnRay(ksq, d).attacksAlong(c, Rook) {
			return true
		}
	}

	for _, d := range diagonalRays {
		if p.firstOnRay(ksq, d).attacksAlong(c, Bishop) {
			return true
		}
	}

	return false
}

// firstOnRay walks from sq along d and returns the first occupant,
// or NoPiece if the ray runs off the board.
func (p *Position) firstOnRay(sq Square, d direction) Piece {
	for {
		var ok bool
		if sq, ok = sq.Offset(d.dr, d.df); !ok {
			return NoPiece
		}
		if piece := p.Squares[sq.Rank][sq.File]; !piece.IsEmpty() {
			return piece
		}
	}
}

// IsEnemyOfType returns true if the piece has type pt and is not of color c.
func (p Piece) IsEnemyOfType(c Color, pt PieceType) bool {
	return p.Type == pt && p.IsEnemyOf(c)
}

// attacksAlong reports whether an enemy of c standing first on a ray
// slides along it: rook or queen for orthogonal rays, bishop or queen
// for diagonal ones.
func (p Piece) attacksAlong(c Color, slider PieceType) bool {
	return p.IsEnemyOf(c) && (p.Type == slider || p.Type == Queen)
}
