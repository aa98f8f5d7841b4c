package simulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/yaniv/internal/bot"
	"github.com/lox/yaniv/internal/deck"
	"github.com/lox/yaniv/internal/game"
	"github.com/lox/yaniv/internal/gameid"
	"github.com/lox/yaniv/internal/randutil"
	"github.com/lox/yaniv/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// ErrGameTimeout is the cancellation cause for a game exceeding Config.Timeout.
var ErrGameTimeout = errors.New("game timed out")

// Seat is one automated player in every simulated game.
type Seat struct {
	Name       string
	Difficulty bot.Difficulty
}

// Config holds configuration for running simulations
type Config struct {
	Games   int
	Seed    int64
	Workers int
	Rules   game.Rules
	Seats   []Seat
	Timeout time.Duration // per game; zero disables
	Clock   quartz.Clock
	Logger  *log.Logger
}

// Result is the outcome of a simulation run.
type Result struct {
	Stats   *statistics.Statistics
	Elapsed time.Duration
}

// Report is the JSON form of a Result.
type Report struct {
	Games          int                      `json:"games"`
	Seed           int64                    `json:"seed"`
	Rounds         int                      `json:"rounds"`
	StalledRounds  int                      `json:"stalled_rounds"`
	ElapsedSeconds float64                  `json:"elapsed_seconds"`
	Seats          []statistics.SeatSummary `json:"seats"`
}

// Simulator plays many independent bot-only games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	config.Workers = max(config.Workers, 1)
	return &Simulator{config: config}
}

// Run plays every game and aggregates the results. Game i is seeded with
// Seed+i and shares nothing with other games, so results do not depend on
// Workers or scheduling.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("invalid games count: %d", s.config.Games)
	}
	if len(s.config.Seats) < 2 {
		return nil, game.ErrNotEnoughSeats
	}

	start := s.config.Clock.Now()
	results := make([]*game.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Games {
		g.Go(func() error {
			seed := s.config.Seed + int64(i)
			res, err := s.playGame(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := statistics.New()
	for _, res := range results {
		stats.Add(res)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Since(start)
	s.config.Logger.Info("Simulation complete",
		"games", stats.Games,
		"rounds", stats.Rounds,
		"stalled", stats.StalledRounds,
		"elapsed", elapsed)
	return &Result{Stats: stats, Elapsed: elapsed}, nil
}

// playGame runs one game with its own deck, players and engines.
func (s *Simulator) playGame(ctx context.Context, seed int64) (*game.GameResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelCauseFunc
		ctx, cancel = context.WithCancelCause(ctx)
		defer cancel(nil)
		timer := s.config.Clock.AfterFunc(s.config.Timeout, func() {
			cancel(ErrGameTimeout)
		})
		defer timer.Stop()
	}

	id := gameid.NewGenerator(randutil.NewReader(randutil.Derive(seed, 0))).Generate()
	logger := s.config.Logger.With("seed", seed)

	cards := deck.NewStandard(s.config.Rules.Jokers)
	players := make([]*game.Player, len(s.config.Seats))
	for i, seat := range s.config.Seats {
		engine, err := bot.New(seat.Name, seat.Difficulty, randutil.Derive(seed, i+2), logger, bot.WithDeck(cards))
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat.Name, err)
		}
		players[i] = game.NewPlayer(seat.Name, engine)
	}

	result, err := game.NewGame(id, s.config.Rules, players, randutil.Derive(seed, 1), logger).Play(ctx)
	if err != nil {
		if cause := context.Cause(ctx); errors.Is(cause, ErrGameTimeout) {
			return nil, fmt.Errorf("%w: %w", cause, err)
		}
		return nil, err
	}
	return result, nil
}

// Report digests a result for JSON output.
func (r *Result) Report(seed int64) Report {
	return Report{
		Games:          r.Stats.Games,
		Seed:           seed,
		Rounds:         r.Stats.Rounds,
		StalledRounds:  r.Stats.StalledRounds,
		ElapsedSeconds: r.Elapsed.Seconds(),
		Seats:          r.Stats.Summary(),
	}
}
