package board

var promotionTargets = [4]PieceType{Queen, Rook, Bishop, Knight}

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Each promotion counts once per replacement piece.
func Perft(p *Position, depth int) int64 {
	return perft(p, depth, nil)
}

// Divide returns the perft count below each legal root move, keyed by
// coordinate notation with the promotion letter appended where relevant.
func Divide(p *Position, depth int) map[string]int64 {
	counts := make(map[string]int64)
	if depth <= 0 {
		return counts
	}

	for _, m := range p.LegalMoves() {
		if !p.isPromotion(m) {
			child := p.Copy()
			child.apply(m)
			counts[m.String()] = Perft(child, depth-1)
			continue
		}
		for _, pt := range promotionTargets {
			child := p.Copy()
			child.apply(m)
			child.Promote(m.To, pt)
			counts[m.String()+string(pt.Char())] = Perft(child, depth-1)
		}
	}
	return counts
}

// PerftCache memoizes subtree counts by position hash and remaining depth.
// Counts are exact barring a 64-bit hash collision.
type PerftCache struct {
	entries map[perftKey]int64

	Hits   int64
	Misses int64
}

type perftKey struct {
	hash  uint64
	depth int
}

// NewPerftCache creates an empty cache.
func NewPerftCache() *PerftCache {
	return &PerftCache{entries: make(map[perftKey]int64)}
}

// Perft is like the package-level Perft but reuses counts for
// transposed positions.
func (c *PerftCache) Perft(p *Position, depth int) int64 {
	return perft(p, depth, c)
}

// Len returns the number of cached subtrees.
func (c *PerftCache) Len() int {
	return len(c.entries)
}

func perft(p *Position, depth int, cache *PerftCache) int64 {
	if depth <= 0 {
		return 1
	}

	// Depth-1 counts are cheaper to recompute than to hash.
	cached := cache != nil && depth > 1
	var key perftKey
	if cached {
		key = perftKey{hash: p.Hash(), depth: depth}
		if n, ok := cache.entries[key]; ok {
			cache.Hits++
			return n
		}
		cache.Misses++
	}

	var nodes int64
	for _, m := range p.LegalMoves() {
		nodes += perftMove(p, m, depth, cache)
	}

	if cached {
		cache.entries[key] = nodes
	}
	return nodes
}

func perftMove(p *Position, m Move, depth int, cache *PerftCache) int64 {
	promotion := p.isPromotion(m)
	if depth == 1 {
		if promotion {
			return int64(len(promotionTargets))
		}
		return 1
	}

	child := p.Copy()
	child.apply(m)
	if !promotion {
		return perft(child, depth-1, cache)
	}

	var nodes int64
	for _, pt := range promotionTargets {
		promoted := child.Copy()
		promoted.Promote(m.To, pt)
		nodes += perft(promoted, depth-1, cache)
	}
	return nodes
}

// isPromotion reports whether m takes a pawn to its last rank.
func (p *Position) isPromotion(m Move) bool {
	piece := p.PieceAt(m.From)
	return piece.Type == Pawn && m.To.Rank == piece.Color.LastRank()
}
