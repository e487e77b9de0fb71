package storage

import (
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPreferences(t *testing.T) {
	store := openTestStore(t)

	t.Run("DefaultsWhenEmpty", func(t *testing.T) {
		prefs, err := store.LoadPreferences()
		if err != nil {
			t.Fatalf("LoadPreferences failed: %v", err)
		}
		if prefs.Difficulty != "medium" {
			t.Errorf("Expected default difficulty medium, got %q", prefs.Difficulty)
		}
		if prefs.Color != "white" {
			t.Errorf("Expected default color white, got %q", prefs.Color)
		}
		if prefs.MoveTime != 5*time.Second {
			t.Errorf("Expected default move time 5s, got %v", prefs.MoveTime)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		saved := &Preferences{Difficulty: "expert", Color: "black", MoveTime: 2 * time.Second}
		if err := store.SavePreferences(saved); err != nil {
			t.Fatalf("SavePreferences failed: %v", err)
		}

		loaded, err := store.LoadPreferences()
		if err != nil {
			t.Fatalf("LoadPreferences failed: %v", err)
		}
		if loaded.Difficulty != "expert" || loaded.Color != "black" || loaded.MoveTime != 2*time.Second {
			t.Errorf("Loaded preferences %+v don't match saved %+v", loaded, saved)
		}
		if loaded.LastPlayed.IsZero() {
			t.Error("Expected LastPlayed to be stamped on save")
		}
	})
}

func TestRecordResult(t *testing.T) {
	store := openTestStore(t)

	results := []GameResult{
		{Won: true, Difficulty: "easy", Duration: time.Minute},
		{Won: true, Difficulty: "medium", Duration: time.Minute},
		{Won: false, Difficulty: "medium", Duration: time.Minute},
		{Draw: true, Difficulty: "hard", Duration: time.Minute},
	}
	for _, r := range results {
		if err := store.RecordResult(r); err != nil {
			t.Fatalf("RecordResult failed: %v", err)
		}
	}

	stats, err := store.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	if stats.GamesPlayed != 4 {
		t.Errorf("GamesPlayed = %d, want 4", stats.GamesPlayed)
	}
	if stats.Wins != 2 || stats.Losses != 1 || stats.Draws != 1 {
		t.Errorf("W/L/D = %d/%d/%d, want 2/1/1", stats.Wins, stats.Losses, stats.Draws)
	}
	if stats.WinRate() != 50 {
		t.Errorf("WinRate = %.2f, want 50", stats.WinRate())
	}
	if stats.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", stats.LongestStreak)
	}
	if stats.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 after a draw", stats.CurrentStreak)
	}
	if stats.WinsByDiff["easy"] != 1 || stats.WinsByDiff["medium"] != 1 {
		t.Errorf("WinsByDiff = %v, want one easy and one medium win", stats.WinsByDiff)
	}
	if stats.TotalPlayTime != 4*time.Minute {
		t.Errorf("TotalPlayTime = %v, want 4m", stats.TotalPlayTime)
	}
}

func TestGameRecords(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := GameRecord{
			White:    "human",
			Black:    "search:hard",
			Outcome:  "1-0",
			Method:   "Checkmate",
			PGN:      "1. e4 e5 *",
			PlayedAt: base.Add(time.Duration(i) * time.Hour),
		}
		saved, err := store.SaveGame(rec)
		if err != nil {
			t.Fatalf("SaveGame failed: %v", err)
		}
		if saved.ID == "" {
			t.Error("Expected SaveGame to assign an ID")
		}
	}

	recent, err := store.RecentGames(2)
	if err != nil {
		t.Fatalf("RecentGames failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentGames returned %d records, want 2", len(recent))
	}
	if !recent[0].PlayedAt.After(recent[1].PlayedAt) {
		t.Errorf("Records out of order: %v before %v", recent[0].PlayedAt, recent[1].PlayedAt)
	}
	if !recent[0].PlayedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("Most recent record at %v, want %v", recent[0].PlayedAt, base.Add(2*time.Hour))
	}
}
