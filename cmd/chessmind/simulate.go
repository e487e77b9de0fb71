package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"github.com/hailam/chessmind/internal/agent"
	"github.com/hailam/chessmind/internal/engine"
	"github.com/hailam/chessmind/internal/sim"
)

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	games := fs.Int("games", 10, "number of games")
	whiteKind := fs.String("white", "search", "white strategy: search, random or greedy")
	blackKind := fs.String("black", "random", "black strategy: search, random or greedy")
	difficulty := fs.String("difficulty", "easy", "difficulty for search strategies ("+strings.Join(engine.ProfileNames(), ", ")+")")
	moveTime := fs.Duration("movetime", time.Second, "search budget per move")
	maxMoves := fs.Int("max-moves", 300, "half-move cap per game; 0 for none")
	parallel := fs.Int("parallel", runtime.NumCPU(), "concurrent games")
	cpuprofile := fs.String("cpuprofile", "", "write cpu profile to file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", *cpuprofile).Msg("cpu profiling enabled")
	}

	white := sim.Side{
		Name: describe(*whiteKind, *difficulty),
		New: func() (agent.Agent, error) {
			return newAgent(*whiteKind, chess.White, *difficulty, *moveTime)
		},
	}
	black := sim.Side{
		Name: describe(*blackKind, *difficulty),
		New: func() (agent.Agent, error) {
			return newAgent(*blackKind, chess.Black, *difficulty, *moveTime)
		},
	}

	tally, err := sim.Run(white, black, sim.Options{
		Games:    *games,
		MaxMoves: *maxMoves,
		Parallel: *parallel,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%d games in %s: %s %d, %s %d, draws %d",
		tally.Games, tally.Elapsed.Round(time.Millisecond),
		white.Name, tally.WhiteWins, black.Name, tally.BlackWins, tally.Draws)
	if tally.Unfinished > 0 {
		fmt.Printf(", unfinished %d", tally.Unfinished)
	}
	fmt.Println()
	return nil
}
