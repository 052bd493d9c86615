// Command bounce-trace replays a scripted run headlessly and writes the body
// trajectories as CSV, optionally checking them against a golden trace.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/meghashyamc/bounce2d/config"
	"github.com/meghashyamc/bounce2d/logger"
	"github.com/meghashyamc/bounce2d/replay"
	"github.com/spf13/pflag"
)

type options struct {
	env       string
	script    string
	out       string
	golden    string
	frame     string
	tolerance float64
}

func main() {
	var opts options
	pflag.StringVar(&opts.env, "env", "", "config environment, selects config/config.<env>.yaml")
	pflag.StringVar(&opts.script, "script", "", "replay script (YAML)")
	pflag.StringVar(&opts.out, "out", "", "write the trace CSV here (default stdout)")
	pflag.StringVar(&opts.golden, "golden", "", "compare the trace against this CSV")
	pflag.StringVar(&opts.frame, "frame", "", "write the last frame as PNG")
	pflag.Float64Var(&opts.tolerance, "tolerance", 0, "allowed difference when comparing (0 = exact)")
	pflag.String("log-level", "warn", "log level: debug, info, warn, error")
	pflag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.script == "" {
		return fmt.Errorf("--script is required")
	}

	cfg, err := config.Load(opts.env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.BindFlags(pflag.CommandLine); err != nil {
		return err
	}
	log := logger.New(cfg.GetLogLevel())

	script, err := replay.LoadFile(opts.script)
	if err != nil {
		return err
	}

	result, err := replay.Run(context.Background(), script, cfg.WorldSettings(), log)
	if err != nil {
		return err
	}

	if err := writeTrace(opts.out, result.Rows); err != nil {
		return err
	}
	if opts.frame != "" {
		if err := writeFrame(opts.frame, result); err != nil {
			return err
		}
	}
	if opts.golden != "" {
		return compareGolden(opts.golden, result.Rows, opts.tolerance)
	}
	return nil
}

func writeTrace(path string, rows []replay.Row) error {
	if path == "" {
		return replay.WriteCSV(os.Stdout, rows)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer f.Close()
	return replay.WriteCSV(f, rows)
}

func writeFrame(path string, result *replay.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}
	defer f.Close()
	return result.Framebuffer.WritePNG(f)
}

func compareGolden(path string, rows []replay.Row, tolerance float64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open golden trace: %w", err)
	}
	defer f.Close()

	golden, err := replay.ReadCSV(f)
	if err != nil {
		return err
	}
	if err := replay.Compare(rows, golden, tolerance); err != nil {
		return fmt.Errorf("trace does not match %s: %w", path, err)
	}
	return nil
}
