package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	gameKeyPrefix  = "game/"
)

// Preferences stores the settings the CLI restores on the next launch.
type Preferences struct {
	Difficulty string        `json:"difficulty"`
	Color      string        `json:"color"`
	MoveTime   time.Duration `json:"move_time"`
	LastPlayed time.Time     `json:"last_played"`
}

// DefaultPreferences returns the out-of-the-box settings.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Difficulty: "medium",
		Color:      "white",
		MoveTime:   5 * time.Second,
	}
}

// Stats aggregates the human player's finished games against the engine.
type Stats struct {
	GamesPlayed   int            `json:"games_played"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	Draws         int            `json:"draws"`
	WinsByDiff    map[string]int `json:"wins_by_difficulty"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
	LongestStreak int            `json:"longest_win_streak"`
	CurrentStreak int            `json:"current_streak"`
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{WinsByDiff: make(map[string]int)}
}

// WinRate returns wins as a percentage of games played.
func (s *Stats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// GameRecord preserves one finished game.
type GameRecord struct {
	ID       string        `json:"id"`
	White    string        `json:"white"` // Player descriptor, e.g. "human" or "search:hard"
	Black    string        `json:"black"`
	Outcome  string        `json:"outcome"` // "1-0", "0-1", "1/2-1/2" or "*"
	Method   string        `json:"method"`
	PGN      string        `json:"pgn"`
	PlayedAt time.Time     `json:"played_at"`
	Duration time.Duration `json:"duration"`
}

// GameResult feeds the aggregate statistics when a game against the
// engine finishes.
type GameResult struct {
	Won        bool
	Draw       bool
	Difficulty string
	Duration   time.Duration
}

// Store wraps BadgerDB for persistent storage.
type Store struct {
	db *badger.DB
}

// Open opens the database in dir, creating it if needed.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Badger's own logging is too chatty for a CLI

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open storage at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// OpenDefault opens the database in the per-user data directory.
func OpenDefault() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves user preferences, stamping the last-played time.
func (s *Store) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads user preferences, returning defaults when none
// are stored yet.
func (s *Store) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})
	return prefs, err
}

// SaveStats saves aggregate statistics.
func (s *Store) SaveStats(stats *Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads aggregate statistics, returning empty stats when none
// are stored yet.
func (s *Store) LoadStats() (*Stats, error) {
	stats := NewStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	return stats, err
}

// RecordResult folds one finished game into the aggregate statistics.
func (s *Store) RecordResult(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration

	switch {
	case result.Draw:
		stats.Draws++
		stats.CurrentStreak = 0
	case result.Won:
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestStreak {
			stats.LongestStreak = stats.CurrentStreak
		}
		if result.Difficulty != "" {
			stats.WinsByDiff[result.Difficulty]++
		}
	default:
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.SaveStats(stats)
}

// SaveGame stores a finished game, assigning an identifier and a
// played-at time when the record carries none.
func (s *Store) SaveGame(rec GameRecord) (GameRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return GameRecord{}, err
	}

	key := gameKeyPrefix + rec.PlayedAt.UTC().Format(time.RFC3339Nano) + "/" + rec.ID
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return GameRecord{}, err
	}
	return rec, nil
}

// RecentGames returns up to n stored games, most recent first.
func (s *Store) RecentGames(n int) ([]GameRecord, error) {
	var records []GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gameKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec GameRecord
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				records = append(records, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].PlayedAt.After(records[j].PlayedAt)
	})
	if n > 0 && len(records) > n {
		records = records[:n]
	}
	return records, nil
}
