package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyTally       = "tally"
	keyFirstLaunch = "first_launch"
)

// Result is the outcome of a single finished game.
type Result int

const (
	WhiteWins Result = iota
	BlackWins
	Stalemate
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "white wins"
	case BlackWins:
		return "black wins"
	case Stalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

// GameResult describes a completed game to record.
type GameResult struct {
	Result   Result
	Plies    int
	Duration time.Duration
}

// Tally stores the accumulated outcome counts.
type Tally struct {
	GamesPlayed   int           `json:"games_played"`
	WhiteWins     int           `json:"white_wins"`
	BlackWins     int           `json:"black_wins"`
	Stalemates    int           `json:"stalemates"`
	TotalPlies    int           `json:"total_plies"`
	TotalPlayTime time.Duration `json:"total_play_time"`
	LongestGame   int           `json:"longest_game_plies"`
	LastPlayed    time.Time     `json:"last_played"`
}

// AveragePlies returns the mean game length in plies.
func (t *Tally) AveragePlies() float64 {
	if t.GamesPlayed == 0 {
		return 0
	}
	return float64(t.TotalPlies) / float64(t.GamesPlayed)
}

func (t *Tally) add(result GameResult, now time.Time) {
	t.GamesPlayed++
	t.TotalPlies += result.Plies
	t.TotalPlayTime += result.Duration
	t.LongestGame = max(t.LongestGame, result.Plies)
	t.LastPlayed = now

	switch result.Result {
	case WhiteWins:
		t.WhiteWins++
	case BlackWins:
		t.BlackWins++
	case Stalemate:
		t.Stalemates++
	}
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database under dataDir, or under the platform data
// directory when dataDir is empty.
func NewStorage(dataDir string) (*Storage, error) {
	dbDir, err := GetDatabaseDir(dataDir)
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// LoadTally loads the outcome tally, returns an empty tally if not found
func (s *Storage) LoadTally() (*Tally, error) {
	var tally *Tally
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		tally, err = readTally(txn)
		return err
	})
	return tally, err
}

// RecordGame adds a finished game to the tally. The read and the write
// happen in one transaction, retried when a concurrent recorder conflicts.
func (s *Storage) RecordGame(result GameResult) error {
	for {
		err := s.db.Update(func(txn *badger.Txn) error {
			tally, err := readTally(txn)
			if err != nil {
				return err
			}
			tally.add(result, time.Now())

			data, err := json.Marshal(tally)
			if err != nil {
				return err
			}
			return txn.Set([]byte(keyTally), data)
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
}

func readTally(txn *badger.Txn) (*Tally, error) {
	tally := &Tally{}

	item, err := txn.Get([]byte(keyTally))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return tally, nil // Use empty tally
	}
	if err != nil {
		return nil, err
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, tally)
	})
	return tally, err
}
