// Package config loads table, seat and simulation settings from HCL.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/yaniv/internal/bot"
	"github.com/lox/yaniv/internal/game"
)

const (
	minSeats          = 2
	maxSeats          = 8
	maxHandSize       = 7
	defaultDifficulty = 3
)

// Config is the complete configuration file.
type Config struct {
	LogLevel   string            `hcl:"log_level,optional"`
	Rules      *RulesConfig      `hcl:"rules,block"`
	Seats      []SeatConfig      `hcl:"seat,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// RulesConfig mirrors game.Rules. CallThreshold and Jokers are pointers
// because zero is a meaningful setting for both.
type RulesConfig struct {
	CallThreshold *int `hcl:"call_threshold,optional"`
	HandSize      int  `hcl:"hand_size,optional"`
	Jokers        *int `hcl:"jokers,optional"`
	ScoreLimit    int  `hcl:"score_limit,optional"`
	AssafPenalty  int  `hcl:"assaf_penalty,optional"`
	MaxTurns      int  `hcl:"max_turns,optional"`
}

// SeatConfig is one player at the table.
type SeatConfig struct {
	Name       string `hcl:"name,label"`
	Difficulty int    `hcl:"difficulty,optional"`
	Human      bool   `hcl:"human,optional"`
}

// SimulationConfig controls batch bot-vs-bot runs.
type SimulationConfig struct {
	Games   int   `hcl:"games,optional"`
	Seed    int64 `hcl:"seed,optional"`
	Workers int   `hcl:"workers,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{
		LogLevel: "info",
		Seats: []SeatConfig{
			{Name: "ada", Difficulty: 5},
			{Name: "bob", Difficulty: 3},
			{Name: "cy", Difficulty: 2},
		},
	}
	c.applyDefaults()
	return c
}

// Load reads an HCL configuration file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if len(config.Seats) == 0 {
		config.Seats = Default().Seats
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	defaults := game.DefaultRules()
	if c.Rules == nil {
		c.Rules = &RulesConfig{}
	}
	r := c.Rules
	if r.CallThreshold == nil {
		r.CallThreshold = &defaults.CallThreshold
	}
	if r.HandSize == 0 {
		r.HandSize = defaults.HandSize
	}
	if r.Jokers == nil {
		r.Jokers = &defaults.Jokers
	}
	if r.ScoreLimit == 0 {
		r.ScoreLimit = defaults.ScoreLimit
	}
	if r.AssafPenalty == 0 {
		r.AssafPenalty = defaults.AssafPenalty
	}
	if r.MaxTurns == 0 {
		r.MaxTurns = defaults.MaxTurns
	}

	for i := range c.Seats {
		if !c.Seats[i].Human && c.Seats[i].Difficulty == 0 {
			c.Seats[i].Difficulty = defaultDifficulty
		}
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	if c.Simulation.Games == 0 {
		c.Simulation.Games = 100
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = runtime.NumCPU()
	}
}

// Validate checks the configuration for settings the game cannot run with.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	r := c.Rules
	if *r.CallThreshold < 0 {
		return fmt.Errorf("call_threshold must not be negative, got %d", *r.CallThreshold)
	}
	if r.HandSize < 1 || r.HandSize > maxHandSize {
		return fmt.Errorf("hand_size must be between 1 and %d, got %d", maxHandSize, r.HandSize)
	}
	if *r.Jokers < 0 || *r.Jokers > 2 {
		return fmt.Errorf("jokers must be between 0 and 2, got %d", *r.Jokers)
	}
	if r.ScoreLimit <= 0 {
		return fmt.Errorf("score_limit must be positive, got %d", r.ScoreLimit)
	}
	if r.AssafPenalty < 0 {
		return fmt.Errorf("assaf_penalty must not be negative, got %d", r.AssafPenalty)
	}
	if r.MaxTurns < 0 {
		return fmt.Errorf("max_turns must not be negative, got %d", r.MaxTurns)
	}

	if len(c.Seats) < minSeats || len(c.Seats) > maxSeats {
		return fmt.Errorf("between %d and %d seats are required, got %d", minSeats, maxSeats, len(c.Seats))
	}
	if need, have := len(c.Seats)*r.HandSize+1, 52+*r.Jokers; need > have {
		return fmt.Errorf("deck of %d cards cannot deal %d seats of %d", have, len(c.Seats), r.HandSize)
	}

	names := make(map[string]bool, len(c.Seats))
	humans := 0
	for _, seat := range c.Seats {
		if seat.Name == "" {
			return errors.New("seat name must not be empty")
		}
		if names[seat.Name] {
			return fmt.Errorf("seat %s: duplicate name", seat.Name)
		}
		names[seat.Name] = true

		if seat.Human {
			humans++
			continue
		}
		if _, err := bot.ParseDifficulty(seat.Difficulty); err != nil {
			return fmt.Errorf("seat %s: %w", seat.Name, err)
		}
	}
	if humans > 1 {
		return fmt.Errorf("at most one human seat is supported, got %d", humans)
	}

	if c.Simulation.Games <= 0 {
		return fmt.Errorf("simulation games must be positive, got %d", c.Simulation.Games)
	}
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("simulation workers must be positive, got %d", c.Simulation.Workers)
	}
	return nil
}

// GameRules converts the rules block for the game package.
func (c *Config) GameRules() game.Rules {
	return game.Rules{
		CallThreshold: *c.Rules.CallThreshold,
		HandSize:      c.Rules.HandSize,
		Jokers:        *c.Rules.Jokers,
		ScoreLimit:    c.Rules.ScoreLimit,
		AssafPenalty:  c.Rules.AssafPenalty,
		MaxTurns:      c.Rules.MaxTurns,
	}
}

// Level returns the parsed log level. Validate has already checked it.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// HasHuman reports whether any seat is played by a person.
func (c *Config) HasHuman() bool {
	for _, seat := range c.Seats {
		if seat.Human {
			return true
		}
	}
	return false
}
