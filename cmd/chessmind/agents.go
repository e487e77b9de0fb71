package main

import (
	"fmt"
	"time"

	"github.com/notnil/chess"

	"github.com/hailam/chessmind/internal/agent"
	"github.com/hailam/chessmind/internal/engine"
)

// Strategy names accepted by the -white/-black flags; "human" is
// handled by the play loop itself.
const strategyHelp = "search, random, greedy or human"

// newAgent builds the named strategy. Only the search strategy uses the
// difficulty and per-move budget.
func newAgent(kind string, color chess.Color, difficulty string, moveTime time.Duration) (agent.Agent, error) {
	switch kind {
	case "search":
		return agent.NewSearcher(agent.Config{
			Difficulty: difficulty,
			Color:      color,
			MoveTime:   moveTime,
		}, nil)
	case "random":
		return agent.NewRandom(nil), nil
	case "greedy":
		return agent.NewGreedy(nil), nil
	}
	return nil, fmt.Errorf("%w: unknown strategy %q (want %s)", engine.ErrInvalidConfiguration, kind, strategyHelp)
}

// describe labels a player for logs and game records.
func describe(kind, difficulty string) string {
	if kind == "search" {
		return kind + ":" + difficulty
	}
	return kind
}
