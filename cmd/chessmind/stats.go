package main

import (
	"flag"
	"fmt"
	"sort"
	"time"

	"github.com/hailam/chessmind/internal/storage"
)

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	recent := fs.Int("recent", 10, "number of recent games to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.OpenDefault()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.LoadStats()
	if err != nil {
		return err
	}

	fmt.Printf("games played: %d (%.0f%% wins)\n", stats.GamesPlayed, stats.WinRate())
	fmt.Printf("wins %d, losses %d, draws %d\n", stats.Wins, stats.Losses, stats.Draws)
	fmt.Printf("win streak: %d now, %d best\n", stats.CurrentStreak, stats.LongestStreak)
	fmt.Printf("time played: %s\n", stats.TotalPlayTime.Round(time.Second))

	if len(stats.WinsByDiff) > 0 {
		diffs := make([]string, 0, len(stats.WinsByDiff))
		for d := range stats.WinsByDiff {
			diffs = append(diffs, d)
		}
		sort.Strings(diffs)
		fmt.Println("wins by difficulty:")
		for _, d := range diffs {
			fmt.Printf("  %-8s %d\n", d, stats.WinsByDiff[d])
		}
	}

	games, err := store.RecentGames(*recent)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		return nil
	}

	fmt.Println("\nrecent games:")
	for _, g := range games {
		fmt.Printf("  %s  %-14s vs %-14s  %-7s %s\n",
			g.PlayedAt.Format("2006-01-02 15:04"), g.White, g.Black, g.Outcome, g.Method)
	}
	return nil
}
