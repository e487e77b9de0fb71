package engine

import (
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// Infinity bounds the alpha-beta window beyond any reachable evaluation.
const Infinity = 1 << 30

// DefaultTimeBudget applies when the caller does not choose a budget.
const DefaultTimeBudget = 5 * time.Second

// randomTolerance is how far, in centipawns, a move's one-ply evaluation
// may sit from the best score and still count as an equivalent choice
// when a profile randomizes.
const randomTolerance = 50

// Rand supplies the randomness a Searcher consumes. *frand.RNG and
// *math/rand.Rand both satisfy it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// SearchResult reports the outcome of one search call.
type SearchResult struct {
	Move    *chess.Move // nil when the position has no legal moves
	Score   int         // Centipawns from White's perspective
	Depth   int         // Deepest completed iteration
	Nodes   uint64      // Positions visited across all iterations
	Elapsed time.Duration
}

// IterationInfo describes one completed iterative-deepening depth.
type IterationInfo struct {
	Depth   int
	Score   int
	Move    *chess.Move
	Nodes   uint64
	Elapsed time.Duration
}

// Searcher runs time-bounded iterative-deepening alpha-beta searches.
// A Searcher is not safe for concurrent use.
type Searcher struct {
	rng Rand

	// OnIter, when set, receives a report after each completed depth.
	OnIter func(IterationInfo)
}

// NewSearcher returns a searcher drawing randomness from rng, or from a
// fast non-deterministic source when rng is nil.
func NewSearcher(rng Rand) *Searcher {
	if rng == nil {
		rng = frand.New()
	}
	return &Searcher{rng: rng}
}

// FindBestMove searches the position under the profile's depth cap and
// the time budget. Depth 1 always completes; each deeper iteration
// starts only while budget remains, and a started iteration runs to the
// end. A non-positive budget selects DefaultTimeBudget. With no legal
// moves the result carries a nil move and the static evaluation.
func (s *Searcher) FindBestMove(pos *chess.Position, profile Profile, budget time.Duration) SearchResult {
	start := time.Now()
	if budget <= 0 {
		budget = DefaultTimeBudget
	}
	maxDepth := profile.MaxDepth
	if maxDepth < 1 {
		maxDepth = 1
	}

	moves := OrderMoves(pos, pos.ValidMoves())
	if len(moves) == 0 {
		return SearchResult{Score: Evaluate(pos), Elapsed: time.Since(start)}
	}

	run := &line{}
	var result SearchResult
	for depth := 1; depth <= maxDepth; depth++ {
		if depth > 1 && time.Since(start) >= budget {
			break
		}

		move, score := run.searchRoot(pos, moves, depth)
		result = SearchResult{
			Move:    move,
			Score:   score,
			Depth:   depth,
			Nodes:   run.nodes,
			Elapsed: time.Since(start),
		}

		log.Debug().
			Int("depth", depth).
			Int("score", score).
			Uint64("nodes", run.nodes).
			Dur("elapsed", result.Elapsed).
			Str("move", move.String()).
			Msg("depth complete")

		if s.OnIter != nil {
			s.OnIter(IterationInfo{
				Depth:   depth,
				Score:   score,
				Move:    move,
				Nodes:   run.nodes,
				Elapsed: result.Elapsed,
			})
		}
	}

	if profile.Randomness > 0 && s.rng.Float64() < profile.Randomness {
		result.Move = s.pickEquivalent(pos, moves, result.Score)
	}
	result.Elapsed = time.Since(start)
	return result
}

// pickEquivalent draws uniformly from the moves whose one-ply evaluation
// lands within randomTolerance of the search score. When no move
// qualifies every legal move is a candidate.
func (s *Searcher) pickEquivalent(pos *chess.Position, moves []*chess.Move, bestScore int) *chess.Move {
	candidates := make([]*chess.Move, 0, len(moves))
	for _, move := range moves {
		if abs(Evaluate(pos.Update(move))-bestScore) <= randomTolerance {
			candidates = append(candidates, move)
		}
	}
	if len(candidates) == 0 {
		candidates = moves
	}
	return candidates[s.rng.Intn(len(candidates))]
}

// line carries the node counter for one FindBestMove call.
type line struct {
	nodes uint64
}

// searchRoot scores every root move to the given depth and returns the
// best with its exact minimax score. White maximizes, Black minimizes;
// the first move encountered wins ties.
func (l *line) searchRoot(pos *chess.Position, moves []*chess.Move, depth int) (*chess.Move, int) {
	maximizing := pos.Turn() == chess.White

	best := moves[0]
	bestScore := Infinity
	if maximizing {
		bestScore = -Infinity
	}

	alpha, beta := -Infinity, Infinity
	for _, move := range moves {
		score := l.alphaBeta(pos.Update(move), depth-1, alpha, beta, !maximizing)
		if maximizing {
			if score > bestScore {
				bestScore, best = score, move
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if score < bestScore {
				bestScore, best = score, move
			}
			if score < beta {
				beta = score
			}
		}
	}
	return best, bestScore
}

// alphaBeta evaluates the position to the given depth with fail-hard
// pruning: the return value is clamped to the [alpha, beta] window.
func (l *line) alphaBeta(pos *chess.Position, depth, alpha, beta int, maximizing bool) int {
	l.nodes++

	if depth == 0 || pos.Status() != chess.NoMethod {
		return Evaluate(pos)
	}

	moves := OrderMoves(pos, pos.ValidMoves())
	if maximizing {
		for _, move := range moves {
			score := l.alphaBeta(pos.Update(move), depth-1, alpha, beta, false)
			if score > alpha {
				alpha = score
			}
			if alpha >= beta {
				break
			}
		}
		return alpha
	}

	for _, move := range moves {
		score := l.alphaBeta(pos.Update(move), depth-1, alpha, beta, true)
		if score < beta {
			beta = score
		}
		if alpha >= beta {
			break
		}
	}
	return beta
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
