package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [2][6][8][8]uint64 // [Color][PieceType][rank][file]
	zobristEnPassant  [8]uint64          // One per file
	zobristCastling   [2][2]uint64       // [Color][long, short]
	zobristSideToMove uint64             // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for rank := 0; rank < 8; rank++ {
				for file := 0; file < 8; file++ {
					zobristPiece[c][pt][rank][file] = rng.next()
				}
			}
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	for c := White; c <= Black; c++ {
		for side := range castleSides {
			zobristCastling[c][side] = rng.next()
		}
	}

	zobristSideToMove = rng.next()
}

// Hash returns a Zobrist key over everything that decides the legal
// moves: piece placement, side to move, castling rights that are still
// usable and the en-passant target.
func (p *Position) Hash() uint64 {
	var h uint64
	for rank := range p.Squares {
		for file, piece := range p.Squares[rank] {
			if !piece.IsEmpty() {
				h ^= zobristPiece[piece.Color][piece.Type][rank][file]
			}
		}
	}

	for c := White; c <= Black; c++ {
		home := c.HomeRank()
		if king := p.Squares[home][4]; !king.Is(King, c) || king.Moved {
			continue
		}
		for i, side := range castleSides {
			if rook := p.Squares[home][side.rookFile]; rook.Is(Rook, c) && rook.CanCastle {
				h ^= zobristCastling[c][i]
			}
		}
	}

	if ep := p.enPassantTarget(); ep != NoSquare {
		h ^= zobristEnPassant[ep.File]
	}
	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}
