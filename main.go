// ChessRules - A chess rules engine played in the terminal
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
	"github.com/hailam/chessrules/internal/tui"
)

var (
	fenFlag     = flag.String("fen", "", "start from this position instead of the standard setup")
	dataDirFlag = flag.String("data-dir", "", "directory for the results database")
	noStatsFlag = flag.Bool("no-stats", false, "do not record finished games")
	logFileFlag = flag.String("log", "", "append diagnostics to this file")
)

func main() {
	flag.Parse()

	fen := envDefault(*fenFlag, "CHESSRULES_FEN")
	dataDir := envDefault(*dataDirFlag, storage.DataDirEnv)
	noStats := *noStatsFlag
	if v := os.Getenv("CHESSRULES_NO_STATS"); v != "" && !noStats {
		noStats, _ = strconv.ParseBool(v)
	}

	// The alternate screen owns the terminal, so diagnostics go to a file.
	logger := log.New(io.Discard, "", log.LstdFlags)
	if *logFileFlag != "" {
		f, err := os.OpenFile(*logFileFlag, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatal("could not open log file: ", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	var session *game.Session
	if fen != "" {
		var err error
		if session, err = game.NewFromFEN(fen, game.WithLogger(logger)); err != nil {
			log.Fatal(err)
		}
	} else {
		session = game.New(game.WithLogger(logger))
	}

	var recorder tui.Recorder
	if !noStats {
		store, err := storage.NewStorage(dataDir)
		if err != nil {
			log.Printf("Warning: results will not be saved: %v", err)
		} else {
			defer store.Close()
			recorder = store
			reportTally(store, logger)
		}
	}

	if err := tui.Run(session, recorder, logger); err != nil {
		log.Fatal(err)
	}
}

// reportTally logs the stored results and notes a first launch.
func reportTally(store *storage.Storage, logger *log.Logger) {
	first, err := store.IsFirstLaunch()
	if err != nil {
		logger.Printf("Failed to read first launch marker: %v", err)
	} else if first {
		logger.Printf("First launch, creating results database")
		if err := store.MarkFirstLaunchComplete(); err != nil {
			logger.Printf("Failed to mark first launch: %v", err)
		}
	}

	tally, err := store.LoadTally()
	if err != nil {
		logger.Printf("Failed to load results: %v", err)
		return
	}
	logger.Printf("Games played: %d (white %d, black %d, stalemate %d)",
		tally.GamesPlayed, tally.WhiteWins, tally.BlackWins, tally.Stalemates)
}

func envDefault(value, env string) string {
	if value != "" {
		return value
	}
	return os.Getenv(env)
}
