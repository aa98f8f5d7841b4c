package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/yaniv/internal/belief"
	"github.com/lox/yaniv/internal/deck"
	"github.com/lox/yaniv/internal/game"
	"github.com/lox/yaniv/internal/randutil"
)

const (
	// FullDeckAverage is the mean value of a card drawn from a fresh
	// 54-card deck (340/54).
	FullDeckAverage = 6.296296296
	// RiskTolerance is the highest Assaf probability per opponent that a
	// memory-tracking engine will call into.
	RiskTolerance = 0.05
	// NudgeChance is how often the expected draw value is lowered by one, so
	// that engines refusing the deck eventually draw.
	NudgeChance = 0.05
)

// Engine is the automated Controller. Its level decides how it discards,
// what it picks up and whether it weighs Assaf risk before calling.
type Engine struct {
	name   string
	level  Difficulty
	rng    *rand.Rand
	logger *log.Logger
	cards  []deck.Card

	self      string
	remaining *belief.Remaining
	opponents map[string]*belief.Opponent
}

// Option configures an Engine.
type Option func(*Engine)

// WithDeck sets the deck composition the engine assumes when it builds its
// belief set. The default is 52 cards plus two Jokers.
func WithDeck(cards []deck.Card) Option {
	return func(e *Engine) {
		e.cards = cards
	}
}

// New creates an engine. All of its randomness comes from rng.
func New(name string, level Difficulty, rng *rand.Rand, logger *log.Logger, opts ...Option) (*Engine, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, int(level))
	}
	e := &Engine{
		name:      name,
		level:     level,
		rng:       rng,
		logger:    logger.WithPrefix(name),
		cards:     deck.NewStandard(2),
		opponents: make(map[string]*belief.Opponent),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.remaining = belief.NewRemaining(e.cards)
	return e, nil
}

// Name returns the name the engine was created with.
func (e *Engine) Name() string {
	return e.name
}

// Level returns the engine's difficulty.
func (e *Engine) Level() Difficulty {
	return e.level
}

// StartRound resets all beliefs for a new deal.
func (e *Engine) StartRound(start game.RoundStart) {
	e.self = start.Player
	e.remaining = belief.NewRemaining(e.cards)
	e.opponents = make(map[string]*belief.Opponent, len(start.Opponents))
	if !e.level.TracksMemory() {
		return
	}

	e.remaining.Remove(start.Hand...)
	e.remaining.Remove(start.FaceUp...)
	for _, id := range start.Opponents {
		e.opponents[id] = belief.NewOpponent(id, start.HandSize)
	}
}

// Observe updates beliefs after any player's turn, including our own.
func (e *Engine) Observe(obs game.Observation) {
	if !e.level.TracksMemory() {
		return
	}

	e.remaining.Remove(obs.Discarded...)
	if obs.Actor == "" {
		return
	}
	if obs.Actor == e.self {
		if obs.Pickup.Visible {
			e.remaining.Remove(obs.Pickup.Card)
		}
		return
	}

	opp, ok := e.opponents[obs.Actor]
	if !ok {
		return
	}
	remember := obs.Pickup.Source == game.PickupFaceUp && randutil.Chance(e.rng, e.level.MemoryChance())
	opp.Observe(obs.Discarded, obs.Pickup.Card, remember)
}

// ChooseAction calls Yaniv whenever the hand allows it, except that
// memory-tracking levels hold back while any opponent is likely to be
// strictly under their total.
func (e *Engine) ChooseAction(view game.TurnView) game.Action {
	total := view.HandValue()
	if total > view.CallThreshold {
		return game.DiscardAndPickup
	}
	if !e.level.TracksMemory() || total == 0 {
		e.logger.Debug("Calling", "player", view.Player, "total", total)
		return game.CallEarlyEnd
	}

	for _, ov := range view.Opponents {
		opp := e.opponent(ov)
		risk := belief.Estimate(opp, e.remaining, total)
		if risk > RiskTolerance {
			e.logger.Debug("Holding call",
				"player", view.Player,
				"total", total,
				"opponent", opp.ID,
				"risk", risk)
			return game.DiscardAndPickup
		}
	}

	e.logger.Debug("Calling", "player", view.Player, "total", total)
	return game.CallEarlyEnd
}

// DoTurn picks a discard and a pickup index.
func (e *Engine) DoTurn(view game.TurnView) (game.Turn, error) {
	options := game.DiscardOptions(view.Hand)
	if len(options) == 0 || len(view.Pickups) == 0 {
		return game.Turn{}, fmt.Errorf("%w: %d discard options and %d pickups for %s",
			game.ErrInvalidState, len(options), len(view.Pickups), deck.Format(view.Hand))
	}

	var turn game.Turn
	if e.level == Random {
		turn = e.randomTurn(options, view)
	} else {
		turn = e.plannedTurn(options, view)
	}

	e.logger.Debug("Turn",
		"player", view.Player,
		"hand", deck.Format(view.Hand),
		"discard", turn.Discard,
		"pickup", pickupLabel(view, turn.Pickup))
	return turn, nil
}

func (e *Engine) opponent(ov game.OpponentView) *belief.Opponent {
	if opp, ok := e.opponents[ov.ID]; ok {
		return opp
	}
	opp := belief.NewOpponent(ov.ID, ov.HandSize)
	e.opponents[ov.ID] = opp
	return opp
}

func pickupLabel(view game.TurnView, idx int) string {
	if idx >= 0 && idx < len(view.Pickups) {
		return view.Pickups[idx].String()
	}
	return "deck"
}
