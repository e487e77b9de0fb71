// Package agent provides interchangeable move-selection strategies
// behind one contract: pick a move for the side to play, or none when
// the game is over.
package agent

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/notnil/chess"
	"lukechampine.com/frand"

	"github.com/hailam/chessmind/internal/engine"
)

// Agent selects a move for the position's side to move. A nil move
// means the position has no legal moves.
type Agent interface {
	SelectMove(pos *chess.Position) *chess.Move
}

// Config fixes how a search-driven agent plays for the lifetime of a
// game.
type Config struct {
	// Difficulty names a registered difficulty profile.
	Difficulty string `validate:"required"`
	// Color is the side the agent plays.
	Color chess.Color
	// MoveTime is the search budget per move; zero selects the engine
	// default.
	MoveTime time.Duration `validate:"gte=0"`
}

var validate = validator.New()

// Searcher plays the move found by the iterative-deepening search.
type Searcher struct {
	cfg     Config
	profile engine.Profile
	search  *engine.Searcher
}

// NewSearcher builds a search-driven agent. A malformed config or an
// unknown difficulty name reports engine.ErrInvalidConfiguration; the
// agent is never constructed with a silently defaulted setup. A nil rng
// selects a fast non-deterministic source.
func NewSearcher(cfg Config, rng engine.Rand) (*Searcher, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", engine.ErrInvalidConfiguration, err)
	}
	if cfg.Color != chess.White && cfg.Color != chess.Black {
		return nil, fmt.Errorf("%w: agent color must be white or black", engine.ErrInvalidConfiguration)
	}
	profile, err := engine.ProfileByName(cfg.Difficulty)
	if err != nil {
		return nil, err
	}
	return &Searcher{cfg: cfg, profile: profile, search: engine.NewSearcher(rng)}, nil
}

// SelectMove runs a full search and returns its chosen move.
func (a *Searcher) SelectMove(pos *chess.Position) *chess.Move {
	return a.search.FindBestMove(pos, a.profile, a.cfg.MoveTime).Move
}

// Suggest runs a full search and pairs the result with the analysis of
// the chosen move, for hint displays. The analysis is zero when the
// position has no legal moves.
func (a *Searcher) Suggest(pos *chess.Position) (engine.SearchResult, engine.MoveAnalysis) {
	result := a.search.FindBestMove(pos, a.profile, a.cfg.MoveTime)
	if result.Move == nil {
		return result, engine.MoveAnalysis{}
	}
	return result, engine.Analyze(pos, result.Move)
}

// Profile returns the difficulty profile the agent searches with.
func (a *Searcher) Profile() engine.Profile { return a.profile }

// Color returns the side the agent was configured to play.
func (a *Searcher) Color() chess.Color { return a.cfg.Color }

// Random plays a uniformly random legal move. It doubles as the
// baseline opponent in strength tests.
type Random struct {
	rng engine.Rand
}

// NewRandom returns a random agent. A nil rng selects a fast
// non-deterministic source.
func NewRandom(rng engine.Rand) *Random {
	if rng == nil {
		rng = frand.New()
	}
	return &Random{rng: rng}
}

// SelectMove samples one legal move uniformly.
func (a *Random) SelectMove(pos *chess.Position) *chess.Move {
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil
	}
	return moves[a.rng.Intn(len(moves))]
}

// Greedy plays the capture winning the most material, judged by the
// same victim-versus-attacker ranking the search orderer uses, and
// falls back to a random move when nothing can be captured.
type Greedy struct {
	random *Random
}

// NewGreedy returns a greedy-aggressive agent. A nil rng selects a fast
// non-deterministic source for the fallback.
func NewGreedy(rng engine.Rand) *Greedy {
	return &Greedy{random: NewRandom(rng)}
}

// SelectMove returns the highest-ranked capture, the first enumerated
// on ties, or a random legal move when there is no capture.
func (a *Greedy) SelectMove(pos *chess.Position) *chess.Move {
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil
	}

	var best *chess.Move
	bestScore := 0
	for _, move := range moves {
		if !engine.IsCapture(move) {
			continue
		}
		score := engine.CaptureScore(pos, move)
		if best == nil || score > bestScore {
			best, bestScore = move, score
		}
	}
	if best != nil {
		return best
	}
	return a.random.SelectMove(pos)
}
