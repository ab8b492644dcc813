package main

import (
	"maps"
	"os"
	"slices"
	"strings"

	"vietour/config"
	"vietour/helper"
	"vietour/shared/logger"

	"github.com/rs/zerolog/log"
)

var commands = map[string]func(*config.Config) error{
	"up":      helper.Up,
	"down":    helper.Down,
	"drop":    helper.Drop,
	"step-up": helper.StepUp,
}

// Usage: migrate up|down|drop|step-up
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	names := slices.Sorted(maps.Keys(commands))

	if len(os.Args) < 2 { //nolint:mnd
		log.Fatal().Strs("commands", names).Msg("Migration direction is required")
	}

	run, ok := commands[os.Args[1]]
	if !ok {
		log.Fatal().Str("command", os.Args[1]).Msg("Invalid direction. Use " + strings.Join(names, ", "))
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("Migration failed")
	}
}
