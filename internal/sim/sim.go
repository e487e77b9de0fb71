// Package sim plays agent-versus-agent matches and aggregates the
// outcomes.
package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessmind/internal/agent"
)

// Side describes one seat of a match. New is called once per game so
// that every game owns its agent state and randomness; that is what
// makes concurrent games safe.
type Side struct {
	Name string
	New  func() (agent.Agent, error)
}

// Options tune a match run.
type Options struct {
	Games    int // Number of games; minimum 1
	MaxMoves int // Half-move cap per game; 0 means no cap
	Parallel int // Concurrent games; 0 or 1 runs sequentially
}

// Tally aggregates the results of a match.
type Tally struct {
	Games      int
	WhiteWins  int
	BlackWins  int
	Draws      int
	Unfinished int // Games stopped by the half-move cap
	Elapsed    time.Duration
}

// Run plays the configured number of games between the two sides and
// tallies the outcomes. Games run concurrently up to Options.Parallel;
// agent construction failures abort the match.
func Run(white, black Side, opts Options) (Tally, error) {
	start := time.Now()
	games := opts.Games
	if games < 1 {
		games = 1
	}
	limit := opts.Parallel
	if limit < 1 {
		limit = 1
	}

	var (
		mu    sync.Mutex
		tally Tally
		g     errgroup.Group
	)
	g.SetLimit(limit)

	for i := 0; i < games; i++ {
		g.Go(func() error {
			w, err := white.New()
			if err != nil {
				return fmt.Errorf("white agent: %w", err)
			}
			b, err := black.New()
			if err != nil {
				return fmt.Errorf("black agent: %w", err)
			}

			id := uuid.NewString()
			gameStart := time.Now()
			outcome, method, moves := playGame(w, b, opts.MaxMoves)

			log.Info().
				Str("game", id).
				Str("white", white.Name).
				Str("black", black.Name).
				Str("outcome", outcome.String()).
				Str("method", method.String()).
				Int("moves", moves).
				Dur("elapsed", time.Since(gameStart)).
				Msg("game finished")

			mu.Lock()
			defer mu.Unlock()
			tally.Games++
			switch outcome {
			case chess.WhiteWon:
				tally.WhiteWins++
			case chess.BlackWon:
				tally.BlackWins++
			case chess.Draw:
				tally.Draws++
			default:
				tally.Unfinished++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Tally{}, err
	}

	tally.Elapsed = time.Since(start)
	return tally, nil
}

// playGame alternates the agents until the game ends or the half-move
// cap is reached, and reports the outcome with the half-move count.
func playGame(white, black agent.Agent, maxMoves int) (chess.Outcome, chess.Method, int) {
	game := chess.NewGame()
	moves := 0
	for game.Outcome() == chess.NoOutcome {
		if maxMoves > 0 && moves >= maxMoves {
			break
		}

		mover := white
		if game.Position().Turn() == chess.Black {
			mover = black
		}
		move := mover.SelectMove(game.Position())
		if move == nil {
			break
		}
		if err := game.Move(move); err != nil {
			log.Warn().Err(err).Str("move", move.String()).Msg("agent produced an unplayable move")
			break
		}
		moves++
	}
	return game.Outcome(), game.Method(), moves
}
