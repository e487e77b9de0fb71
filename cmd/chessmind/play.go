package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"github.com/hailam/chessmind/internal/agent"
	"github.com/hailam/chessmind/internal/engine"
	"github.com/hailam/chessmind/internal/storage"
)

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	whiteKind := fs.String("white", "human", "white player: "+strategyHelp)
	blackKind := fs.String("black", "search", "black player: "+strategyHelp)
	difficulty := fs.String("difficulty", "", "engine difficulty ("+strings.Join(engine.ProfileNames(), ", ")+"); empty uses the saved preference")
	moveTime := fs.Duration("movetime", 0, "engine budget per move; zero uses the saved preference")
	fen := fs.String("fen", "", "starting position in FEN; empty starts a fresh game")
	noSave := fs.Bool("no-save", false, "do not record the finished game")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.OpenDefault()
	if err != nil {
		log.Warn().Err(err).Msg("storage unavailable, game will not be recorded")
	} else {
		defer store.Close()
	}

	if store != nil {
		prefs, err := store.LoadPreferences()
		if err != nil {
			return err
		}
		if *difficulty == "" {
			*difficulty = prefs.Difficulty
		}
		if *moveTime == 0 {
			*moveTime = prefs.MoveTime
		}
		prefs.Difficulty = *difficulty
		prefs.MoveTime = *moveTime
		if err := store.SavePreferences(prefs); err != nil {
			return err
		}
	}
	if *difficulty == "" {
		*difficulty = "medium"
	}

	game, err := newGame(*fen)
	if err != nil {
		return err
	}

	agents := make(map[chess.Color]agent.Agent)
	for color, kind := range map[chess.Color]string{chess.White: *whiteKind, chess.Black: *blackKind} {
		if kind == "human" {
			continue
		}
		a, err := newAgent(kind, color, *difficulty, *moveTime)
		if err != nil {
			return err
		}
		agents[color] = a
	}

	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	// One search agent serves every hint request, whichever side asks.
	var hinter *agent.Searcher

	start := time.Now()
	fmt.Println(game.Position().Board().Draw())

	for game.Outcome() == chess.NoOutcome {
		turn := game.Position().Turn()

		if a, ok := agents[turn]; ok {
			move := a.SelectMove(game.Position())
			if move == nil {
				break
			}
			analysis := engine.Analyze(game.Position(), move)
			if err := game.Move(move); err != nil {
				return fmt.Errorf("engine move %s rejected: %w", move, err)
			}
			fmt.Printf("%s plays %s", strings.ToLower(turn.Name()), analysis.Notation)
			if len(analysis.Comments) > 0 {
				fmt.Printf(" (%s)", strings.Join(analysis.Comments, ", "))
			}
			fmt.Println()
			fmt.Println(game.Position().Board().Draw())
			continue
		}

		rl.SetPrompt(fmt.Sprintf("%s> ", strings.ToLower(turn.Name())))
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			fmt.Println("game abandoned")
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(line) {
		case "":
		case "help":
			printPlayHelp()
		case "board":
			fmt.Println(game.Position().Board().Draw())
		case "moves":
			fmt.Println(strings.Join(legalSAN(game.Position()), " "))
		case "fen":
			fmt.Println(game.FEN())
		case "eval":
			printBreakdown(game.Position())
		case "hint":
			if hinter == nil {
				hinter, err = agent.NewSearcher(agent.Config{
					Difficulty: *difficulty,
					Color:      turn,
					MoveTime:   *moveTime,
				}, nil)
				if err != nil {
					return err
				}
			}
			result, analysis := hinter.Suggest(game.Position())
			if result.Move == nil {
				fmt.Println("no legal moves")
				continue
			}
			fmt.Printf("try %s (score %+d, depth %d, %d nodes)", analysis.Notation, result.Score, result.Depth, result.Nodes)
			if len(analysis.Comments) > 0 {
				fmt.Printf(" - %s", strings.Join(analysis.Comments, ", "))
			}
			fmt.Println()
		case "resign":
			game.Resign(turn)
		case "quit":
			fmt.Println("game abandoned")
			return nil
		default:
			if err := playHumanMove(game, strings.TrimSpace(line)); err != nil {
				fmt.Printf("cannot play %q: SAN or UCI move expected (try 'moves' or 'help')\n", strings.TrimSpace(line))
				continue
			}
			fmt.Println(game.Position().Board().Draw())
		}
	}

	fmt.Printf("game over: %s by %s\n", game.Outcome(), game.Method())

	if store != nil && !*noSave && game.Outcome() != chess.NoOutcome {
		recordGame(store, game, *whiteKind, *blackKind, *difficulty, time.Since(start))
	}
	return nil
}

// newGame starts a game from the given FEN, or from the standard
// starting position when fen is empty.
func newGame(fen string) (*chess.Game, error) {
	if fen == "" {
		return chess.NewGame(), nil
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen: %w", err)
	}
	return chess.NewGame(opt), nil
}

// playHumanMove tries the input as SAN first, then as a UCI move.
func playHumanMove(game *chess.Game, input string) error {
	if err := game.MoveStr(input); err == nil {
		return nil
	}
	move, err := chess.UCINotation{}.Decode(game.Position(), input)
	if err != nil {
		return err
	}
	return game.Move(move)
}

// legalSAN renders the position's legal moves in algebraic notation.
func legalSAN(pos *chess.Position) []string {
	moves := pos.ValidMoves()
	out := make([]string, len(moves))
	for i, move := range moves {
		out[i] = chess.AlgebraicNotation{}.Encode(pos, move)
	}
	return out
}

// printBreakdown dumps the evaluation factors from the side to move's
// point of view alongside the White-perspective factors.
func printBreakdown(pos *chess.Position) {
	b := engine.EvaluateBreakdown(pos)
	fmt.Printf("material %+d  positional %+d  mobility %+d  king safety %+d  pawns %+d\n",
		b.Material, b.Positional, b.Mobility, b.KingSafety, b.PawnStructure)
	fmt.Printf("total %+d (white's perspective), %+d for %s\n",
		b.Total, engine.EvaluateFor(pos, pos.Turn()), strings.ToLower(pos.Turn().Name()))
}

func printPlayHelp() {
	fmt.Print(`Enter a move in SAN (e4, Nf3, O-O) or UCI (e2e4) form, or:
  board   redraw the board
  moves   list legal moves
  fen     print the position as FEN
  eval    show the evaluation breakdown
  hint    ask the engine for a suggestion
  resign  resign the game
  quit    leave without recording
`)
}

// recordGame stores the finished game and, for a human-versus-search
// game, folds the result into the aggregate statistics.
func recordGame(store *storage.Store, game *chess.Game, whiteKind, blackKind, difficulty string, elapsed time.Duration) {
	rec := storage.GameRecord{
		White:    describe(whiteKind, difficulty),
		Black:    describe(blackKind, difficulty),
		Outcome:  game.Outcome().String(),
		Method:   game.Method().String(),
		PGN:      game.String(),
		Duration: elapsed,
	}
	saved, err := store.SaveGame(rec)
	if err != nil {
		log.Warn().Err(err).Msg("failed to record game")
		return
	}
	log.Debug().Str("game", saved.ID).Msg("game recorded")

	humanColor, engineOpposite := chess.NoColor, false
	switch {
	case whiteKind == "human" && blackKind == "search":
		humanColor, engineOpposite = chess.White, true
	case blackKind == "human" && whiteKind == "search":
		humanColor, engineOpposite = chess.Black, true
	}
	if !engineOpposite {
		return
	}

	won := (humanColor == chess.White && game.Outcome() == chess.WhiteWon) ||
		(humanColor == chess.Black && game.Outcome() == chess.BlackWon)
	err = store.RecordResult(storage.GameResult{
		Won:        won,
		Draw:       game.Outcome() == chess.Draw,
		Difficulty: difficulty,
		Duration:   elapsed,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to update statistics")
	}
}
