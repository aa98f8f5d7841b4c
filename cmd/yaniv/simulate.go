package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/yaniv/internal/bot"
	"github.com/lox/yaniv/internal/config"
	"github.com/lox/yaniv/internal/fileutil"
	"github.com/lox/yaniv/internal/simulator"
)

// SimulateCmd runs bot-only games in parallel.
type SimulateCmd struct {
	Config  string        `short:"c" default:"yaniv.hcl" help:"Configuration file (defaults apply when missing)"`
	Games   int           `short:"n" help:"Number of games (overrides config)"`
	Seed    *int64        `help:"Base seed for reproducible runs (overrides config)"`
	Workers int           `short:"w" help:"Games played in parallel (overrides config)"`
	Timeout time.Duration `default:"1m" help:"Abort a single game after this long"`
	Output  string        `short:"o" help:"Write a JSON report to this file"`
	Debug   bool          `help:"Enable debug logging"`

	out io.Writer `kong:"-"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Games > 0 {
		cfg.Simulation.Games = c.Games
	}
	if c.Workers > 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.Seed != nil {
		cfg.Simulation.Seed = *c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.HasHuman() {
		return errors.New("simulate needs every seat to be a bot; remove human seats or use play")
	}

	seats := make([]simulator.Seat, len(cfg.Seats))
	for i, s := range cfg.Seats {
		level, err := bot.ParseDifficulty(s.Difficulty)
		if err != nil {
			return fmt.Errorf("seat %s: %w", s.Name, err)
		}
		seats[i] = simulator.Seat{Name: s.Name, Difficulty: level}
	}

	logger := newLogger(cfg.Level(), c.Debug)
	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	seed := cfg.Simulation.Seed
	logger.Info("Starting simulation",
		"games", cfg.Simulation.Games,
		"seed", seed,
		"workers", cfg.Simulation.Workers)

	result, err := simulator.New(simulator.Config{
		Games:   cfg.Simulation.Games,
		Seed:    seed,
		Workers: cfg.Simulation.Workers,
		Rules:   cfg.GameRules(),
		Seats:   seats,
		Timeout: c.Timeout,
		Clock:   quartz.NewReal(),
		Logger:  logger.WithPrefix("simulator"),
	}).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	printReport(out, result, seed)

	if c.Output != "" {
		if err := fileutil.WriteJSONAtomic(c.Output, result.Report(seed), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Report written", "file", c.Output)
	}
	return nil
}

func printReport(w io.Writer, result *simulator.Result, seed int64) {
	stats := result.Stats
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d games, %d rounds, seed %d", stats.Games, stats.Rounds, seed)))
	if stats.StalledRounds > 0 {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d rounds stalled on the turn limit", stats.StalledRounds)))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	// Escape codes would throw off tabwriter's column widths, so rows stay plain.
	fmt.Fprintln(tw, "SEAT\tWINS\tWIN %\tPTS/ROUND\t95% CI\tCALLS\tCALL OK %\tASSAF MADE\tASSAF TAKEN\tOUT")
	for _, s := range stats.Seats() {
		low, high := s.ConfidenceInterval95()
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.2f\t[%.2f, %.2f]\t%d\t%.1f\t%d\t%d\t%d\n",
			s.Name,
			s.Wins,
			100*s.WinRate(),
			s.Mean(),
			low, high,
			s.Calls,
			100*s.CallSuccessRate(),
			s.AssafsMade,
			s.AssafsSuffered,
			s.Eliminations)
	}
	tw.Flush()
}
