package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/yaniv/internal/bot"
	"github.com/lox/yaniv/internal/config"
	"github.com/lox/yaniv/internal/deck"
	"github.com/lox/yaniv/internal/game"
	"github.com/lox/yaniv/internal/gameid"
	"github.com/lox/yaniv/internal/randutil"
)

// PlayCmd runs one interactive game on the terminal.
type PlayCmd struct {
	Config string `short:"c" default:"yaniv.hcl" help:"Configuration file (defaults apply when missing)"`
	Name   string `default:"you" help:"Your seat name when the config has no human seat"`
	Seed   *int64 `help:"Seed for a reproducible deal"`
	Debug  bool   `help:"Enable debug logging"`

	in  io.Reader `kong:"-"`
	out io.Writer `kong:"-"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if !cfg.HasHuman() {
		cfg.Seats = append([]config.SeatConfig{{Name: c.Name, Human: true}}, cfg.Seats...)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	in, out := c.in, c.out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	// Bot chatter at info level drowns the prompts.
	logger := newLogger(max(cfg.Level(), log.WarnLevel), c.Debug)
	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rules := cfg.GameRules()
	prompter := newLinePrompter(in, out)

	players := make([]*game.Player, len(cfg.Seats))
	for i, s := range cfg.Seats {
		if s.Human {
			players[i] = game.NewPlayer(s.Name, game.NewHuman(prompter))
			continue
		}
		difficulty, err := bot.ParseDifficulty(s.Difficulty)
		if err != nil {
			return fmt.Errorf("seat %s: %w", s.Name, err)
		}
		engine, err := bot.New(s.Name, difficulty, randutil.Derive(seed, i+2), logger, bot.WithDeck(deck.NewStandard(rules.Jokers)))
		if err != nil {
			return fmt.Errorf("seat %s: %w", s.Name, err)
		}
		players[i] = game.NewPlayer(s.Name, engine)
	}

	id := gameid.NewGenerator(randutil.NewReader(randutil.Derive(seed, 0))).Generate()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Game %s (seed %d)", id, seed)))
	fmt.Fprintf(out, "Call Yaniv at %d or less. Over %d points and you are out.\n\n", rules.CallThreshold, rules.ScoreLimit)

	result, err := game.NewGame(id, rules, players, randutil.Derive(seed, 1), logger).Play(ctx)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(out, "\nGoodbye.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%s wins after %d rounds", result.Winner, len(result.Rounds))))
	for _, p := range players {
		status := ""
		if p.Eliminated {
			status = mutedStyle.Render(" (out)")
		}
		fmt.Fprintf(out, "  %s %s%s\n", nameStyle.Render(p.ID), valueStyle.Render(strconv.Itoa(result.Scores[p.ID])), status)
	}
	return nil
}

// linePrompter implements game.Prompter and game.Notifier over a line-based
// terminal: choices are numbered from 1 and the answer is read from a line.
type linePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewScanner(in), out: out}
}

func (p *linePrompter) Choose(prompt string, choices []string) (int, error) {
	fmt.Fprintln(p.out, prompt)
	for i, choice := range choices {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, choice)
	}

	for {
		fmt.Fprint(p.out, "> ")
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}

		line := strings.TrimSpace(p.in.Text())
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(choices) {
			return n - 1, nil
		}
		fmt.Fprintf(p.out, "Enter a number from 1 to %d\n", len(choices))
	}
}

func (p *linePrompter) Notify(message string) {
	fmt.Fprintln(p.out, mutedStyle.Render(message))
}
