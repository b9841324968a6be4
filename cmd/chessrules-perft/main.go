package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"slices"
	"strconv"
	"time"

	"github.com/hailam/chessrules/internal/board"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	fen        = flag.String("fen", "", "position to examine (default: starting position)")
	depth      = flag.Int("perft", 0, "count leaf nodes to this depth")
	divide     = flag.Bool("divide", false, "with -perft, print the count below each root move")
	square     = flag.String("moves", "", "list the legal moves of the piece on this square")
	useHash    = flag.Bool("hash", false, "with -perft, reuse counts for transposed positions")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	pos, err := loadPosition()
	if err != nil {
		log.Fatal(err)
	}

	if *square != "" {
		if err := listMoves(pos, *square); err != nil {
			log.Fatal(err)
		}
	}

	n := *depth
	if n == 0 {
		if v := os.Getenv("CHESSRULES_PERFT"); v != "" {
			if n, err = strconv.Atoi(v); err != nil {
				log.Fatalf("invalid CHESSRULES_PERFT %q: %v", v, err)
			}
		}
	}
	if n > 0 {
		runPerft(pos, n, *divide, *useHash)
	}

	if *square == "" && n <= 0 {
		fmt.Println(pos)
		fmt.Printf("Status: %s\n", pos.Status())
		fmt.Printf("Legal moves: %s\n", pos.LegalMoves())
	}
}

// loadPosition parses -fen, falling back to CHESSRULES_FEN and then the
// starting position.
func loadPosition() (*board.Position, error) {
	s := *fen
	if s == "" {
		s = os.Getenv("CHESSRULES_FEN")
	}
	if s == "" {
		return board.NewPosition(), nil
	}
	return board.ParseFEN(s)
}

func listMoves(pos *board.Position, s string) error {
	sq, err := board.ParseSquare(s)
	if err != nil {
		return err
	}
	moves := pos.Moves(sq)
	fmt.Printf("%s (%s): %d moves\n", sq, pos.PieceAt(sq), moves.Len())
	for _, m := range moves {
		fmt.Println(m)
	}
	return nil
}

// runPerft prints the node count, time and speed.
func runPerft(pos *board.Position, depth int, perMove, hashed bool) {
	start := time.Now()

	var nodes int64
	if perMove {
		counts := board.Divide(pos, depth)
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, counts[k])
			nodes += counts[k]
		}
		fmt.Println()
	} else if hashed {
		cache := board.NewPerftCache()
		nodes = cache.Perft(pos, depth)
		defer fmt.Printf("Cache: %d entries, %d hits, %d misses\n", cache.Len(), cache.Hits, cache.Misses)
	} else {
		nodes = board.Perft(pos, depth)
	}
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Printf("NPS: %.0f\n", nps)
	}
}
