package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/notnil/chess"

	"github.com/hailam/chessmind/internal/engine"
)

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	fen := fs.String("fen", "", "position to analyze in FEN; empty uses the starting position")
	difficulty := fs.String("difficulty", "expert", "search profile ("+strings.Join(engine.ProfileNames(), ", ")+")")
	moveTime := fs.Duration("movetime", engine.DefaultTimeBudget, "search budget")
	moveStr := fs.String("move", "", "analyze one move (SAN or UCI) instead of every legal move")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pos := chess.StartingPosition()
	if *fen != "" {
		pos = &chess.Position{}
		if err := pos.UnmarshalText([]byte(*fen)); err != nil {
			return fmt.Errorf("parse fen: %w", err)
		}
	}
	profile, err := engine.ProfileByName(*difficulty)
	if err != nil {
		return err
	}

	fmt.Println(pos.Board().Draw())
	printBreakdown(pos)

	searcher := engine.NewSearcher(nil)
	searcher.OnIter = func(info engine.IterationInfo) {
		fmt.Printf("depth %d: %s score %+d (%d nodes, %s)\n",
			info.Depth, chess.AlgebraicNotation{}.Encode(pos, info.Move), info.Score, info.Nodes, info.Elapsed.Round(time.Millisecond))
	}
	result := searcher.FindBestMove(pos, profile, *moveTime)
	if result.Move == nil {
		fmt.Printf("no legal moves: %s\n", pos.Status())
		return nil
	}
	fmt.Printf("best move %s, score %+d at depth %d\n\n",
		chess.AlgebraicNotation{}.Encode(pos, result.Move), result.Score, result.Depth)

	if *moveStr != "" {
		move, err := decodeMove(pos, *moveStr)
		if err != nil {
			return err
		}
		printAnalysis(engine.Analyze(pos, move))
		return nil
	}
	for _, move := range engine.OrderMoves(pos, pos.ValidMoves()) {
		printAnalysis(engine.Analyze(pos, move))
	}
	return nil
}

// decodeMove tries SAN first, then UCI.
func decodeMove(pos *chess.Position, s string) (*chess.Move, error) {
	if move, err := (chess.AlgebraicNotation{}).Decode(pos, s); err == nil {
		return move, nil
	}
	move, err := chess.UCINotation{}.Decode(pos, s)
	if err != nil {
		return nil, fmt.Errorf("move %q is neither SAN nor UCI: %w", s, err)
	}
	return move, nil
}

func printAnalysis(a engine.MoveAnalysis) {
	fmt.Printf("%-8s %+5d", a.Notation, a.ScoreChange)
	if len(a.Comments) > 0 {
		fmt.Printf("  %s", strings.Join(a.Comments, ", "))
	}
	fmt.Println()
}
