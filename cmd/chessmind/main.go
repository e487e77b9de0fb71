// chessmind is a terminal chess program: play against the search
// engine, analyze positions, run agent-versus-agent matches and review
// recorded results.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "-v" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		args = args[1:]
	}
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "play":
		err = runPlay(args[1:])
	case "analyze":
		err = runAnalyze(args[1:])
	case "simulate":
		err = runSimulate(args[1:])
	case "stats":
		err = runStats(args[1:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: chessmind [-v] <command> [flags]

Commands:
  play      interactive game against the engine or another human
  analyze   evaluate a position and explain candidate moves
  simulate  run agent-versus-agent matches
  stats     show aggregate results and recent games

Run 'chessmind <command> -h' for command flags.
`)
}
