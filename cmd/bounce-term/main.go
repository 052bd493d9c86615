package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/meghashyamc/bounce2d/config"
	"github.com/meghashyamc/bounce2d/logger"
	"github.com/meghashyamc/bounce2d/sim"
	"github.com/meghashyamc/bounce2d/terminal"
	"github.com/spf13/pflag"
)

func main() {
	env := pflag.String("env", "", "config environment, selects config/config.<env>.yaml")
	fps := pflag.Int("fps", 60, "frames per second")
	logFile := pflag.String("log-file", "", "write logs to this file (logs are dropped otherwise, the terminal is in use)")
	pflag.Uint64("seed", 0, "seed for initial body placement (0 picks one)")
	pflag.Int("bodies", 10, "number of autonomous bodies")
	pflag.String("log-level", "warn", "log level: debug, info, warn, error")
	pflag.Parse()

	if err := run(*env, *fps, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(env string, fps int, logFile string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.BindFlags(pflag.CommandLine); err != nil {
		return err
	}
	log, closeLog, err := newLogger(logFile, cfg.GetLogLevel())
	if err != nil {
		return err
	}
	defer closeLog()

	seed := cfg.GetSeed()
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	world, err := sim.NewWorld(cfg.WorldSettings(), sim.NewRand(seed), log)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	term, err := terminal.New(screen, world.Bounds(), fps, log)
	if err != nil {
		return err
	}
	defer term.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := &sim.Session{World: world, Input: term, Renderer: term}
	if err := session.Run(ctx); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	log.Info("stopped", "ticks", world.Tick(), "seed", seed)
	return nil
}

// newLogger keeps logs off stderr while tcell owns the terminal.
func newLogger(path, level string) (logger.Logger, func() error, error) {
	if path == "" {
		return logger.Discard(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logger.NewWithWriter(f, level), f.Close, nil
}
