package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/meghashyamc/bounce2d/config"
	"github.com/meghashyamc/bounce2d/game"
	"github.com/spf13/pflag"
)

func main() {
	env := pflag.String("env", "", "config environment, selects config/config.<env>.yaml")
	pflag.Uint64("seed", 0, "seed for initial body placement (0 picks one)")
	pflag.Int("bodies", 10, "number of autonomous bodies")
	pflag.String("log-level", "warn", "log level: debug, info, warn, error")
	pflag.Parse()

	cfg, err := config.Load(*env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %s\n", err)
		os.Exit(1)
	}
	if err := cfg.BindFlags(pflag.CommandLine); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read flags: %s\n", err)
		os.Exit(1)
	}
	g, err := game.NewGame(cfg)
	if err != nil {
		os.Exit(1)
	}
	if err := g.Run(); err != nil {
		slog.Error("error running game", "err", err)
		os.Exit(1)
	}
}
