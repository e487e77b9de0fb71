package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/notnil/chess"
)

func testProfile(depth int, randomness float64) Profile {
	return Profile{Name: "test", MaxDepth: depth, Randomness: randomness}
}

// plainMinimax is an unpruned twin of the search, used to verify that
// pruning never changes the returned score.
func plainMinimax(pos *chess.Position, depth int, maximizing bool) int {
	if depth == 0 || pos.Status() != chess.NoMethod {
		return Evaluate(pos)
	}

	best := -Infinity
	if !maximizing {
		best = Infinity
	}
	for _, move := range pos.ValidMoves() {
		score := plainMinimax(pos.Update(move), depth-1, !maximizing)
		if maximizing && score > best {
			best = score
		}
		if !maximizing && score < best {
			best = score
		}
	}
	return best
}

func TestFindBestMoveStartingPosition(t *testing.T) {
	s := NewSearcher(rand.New(rand.NewSource(1)))
	pos := chess.StartingPosition()

	result := s.FindBestMove(pos, testProfile(2, 0), time.Minute)

	if result.Move == nil {
		t.Fatal("No move returned for the starting position")
	}
	legal := false
	for _, move := range pos.ValidMoves() {
		if move.String() == result.Move.String() {
			legal = true
		}
	}
	if !legal {
		t.Errorf("Returned move %s is not legal", result.Move)
	}
	if result.Depth != 2 {
		t.Errorf("Completed depth = %d, want 2", result.Depth)
	}
	if result.Score < -300 || result.Score > 300 {
		t.Errorf("Opening score = %d, want within ±300", result.Score)
	}
	if result.Nodes < 40 || result.Nodes > 20000 {
		t.Errorf("Node count = %d, want a few hundred to a few thousand", result.Nodes)
	}
}

func TestFindBestMoveDeterminism(t *testing.T) {
	pos := positionFromFEN(t, "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")

	first := NewSearcher(rand.New(rand.NewSource(7))).FindBestMove(pos, testProfile(3, 0), time.Minute)
	second := NewSearcher(rand.New(rand.NewSource(8))).FindBestMove(pos, testProfile(3, 0), time.Minute)

	if first.Move.String() != second.Move.String() {
		t.Errorf("Moves differ: %s vs %s", first.Move, second.Move)
	}
	if first.Score != second.Score || first.Depth != second.Depth || first.Nodes != second.Nodes {
		t.Errorf("Results differ: %+v vs %+v", first, second)
	}
}

func TestAlphaBetaMatchesPlainMinimax(t *testing.T) {
	fens := []string{
		chess.StartingPosition().String(),
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 4 4",
		"8/3k4/8/3Pp3/8/4K3/8/8 w - - 0 1",
		hangingQueenFEN,
	}
	s := NewSearcher(rand.New(rand.NewSource(1)))

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos := positionFromFEN(t, fen)
			result := s.FindBestMove(pos, testProfile(2, 0), time.Minute)
			want := plainMinimax(pos, 2, pos.Turn() == chess.White)
			if result.Score != want {
				t.Errorf("Pruned score %d != exhaustive score %d", result.Score, want)
			}
		})
	}
}

func TestFindBestMoveMateInOne(t *testing.T) {
	s := NewSearcher(rand.New(rand.NewSource(1)))
	pos := positionFromFEN(t, mateInOneFEN)

	result := s.FindBestMove(pos, testProfile(2, 0), time.Minute)

	if result.Move == nil {
		t.Fatal("No move returned")
	}
	if result.Move.S1() != chess.A1 || result.Move.S2() != chess.A8 {
		t.Errorf("Best move %s, want the mating a1a8", result.Move)
	}
	if result.Score != MateScore {
		t.Errorf("Score = %d, want %d", result.Score, MateScore)
	}
}

func TestFindBestMoveCapturesHangingQueen(t *testing.T) {
	s := NewSearcher(rand.New(rand.NewSource(1)))
	pos := positionFromFEN(t, hangingQueenFEN)

	result := s.FindBestMove(pos, testProfile(1, 0), time.Minute)

	if result.Move == nil || result.Move.String() != "d1d8" {
		t.Errorf("Best move %v, want d1d8", result.Move)
	}
}

func TestFindBestMoveNoLegalMoves(t *testing.T) {
	s := NewSearcher(rand.New(rand.NewSource(1)))

	t.Run("Checkmate", func(t *testing.T) {
		result := s.FindBestMove(positionFromFEN(t, whiteMatedFEN), testProfile(3, 0), time.Minute)
		if result.Move != nil {
			t.Errorf("Expected no move, got %s", result.Move)
		}
		if result.Score != -MateScore {
			t.Errorf("Score = %d, want %d", result.Score, -MateScore)
		}
		if result.Depth != 0 || result.Nodes != 0 {
			t.Errorf("Depth/Nodes = %d/%d, want 0/0", result.Depth, result.Nodes)
		}
	})

	t.Run("Stalemate", func(t *testing.T) {
		result := s.FindBestMove(positionFromFEN(t, stalemateFEN), testProfile(3, 0), time.Minute)
		if result.Move != nil {
			t.Errorf("Expected no move, got %s", result.Move)
		}
		if result.Score != 0 {
			t.Errorf("Score = %d, want 0", result.Score)
		}
	})
}

func TestNodeCountMonotonicInDepth(t *testing.T) {
	s := NewSearcher(rand.New(rand.NewSource(1)))
	pos := chess.StartingPosition()

	var prev uint64
	for depth := 1; depth <= 3; depth++ {
		result := s.FindBestMove(pos, testProfile(depth, 0), time.Minute)
		if result.Nodes < prev {
			t.Errorf("Depth %d examined %d nodes, fewer than depth %d's %d", depth, result.Nodes, depth-1, prev)
		}
		prev = result.Nodes
	}
}

func TestRandomizationKeepsMovesLegal(t *testing.T) {
	pos := chess.StartingPosition()
	legal := make(map[string]bool)
	for _, move := range pos.ValidMoves() {
		legal[move.String()] = true
	}

	s := NewSearcher(rand.New(rand.NewSource(3)))
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		result := s.FindBestMove(pos, testProfile(1, 1), time.Minute)
		if result.Move == nil || !legal[result.Move.String()] {
			t.Fatalf("Randomized move %v is not legal", result.Move)
		}
		seen[result.Move.String()] = true
	}
	if len(seen) < 2 {
		t.Error("Full randomization always picked the same move")
	}
}

func TestTimeBudgetStopsDeepening(t *testing.T) {
	s := NewSearcher(rand.New(rand.NewSource(1)))
	pos := chess.StartingPosition()

	// A depth-1 floor result is guaranteed even with an exhausted budget.
	result := s.FindBestMove(pos, testProfile(10, 0), time.Nanosecond)
	if result.Move == nil {
		t.Fatal("Expected a floor result despite the tiny budget")
	}
	if result.Depth != 1 {
		t.Errorf("Completed depth = %d, want 1", result.Depth)
	}
}

func TestOnIterReportsEachDepth(t *testing.T) {
	s := NewSearcher(rand.New(rand.NewSource(1)))
	var depths []int
	s.OnIter = func(info IterationInfo) { depths = append(depths, info.Depth) }

	s.FindBestMove(chess.StartingPosition(), testProfile(3, 0), time.Minute)

	if len(depths) != 3 || depths[0] != 1 || depths[2] != 3 {
		t.Errorf("OnIter depths = %v, want [1 2 3]", depths)
	}
}
