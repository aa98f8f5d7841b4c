package bot

import (
	"slices"

	"github.com/lox/yaniv/internal/deck"
	"github.com/lox/yaniv/internal/game"
	"github.com/lox/yaniv/internal/randutil"
)

func (e *Engine) plannedTurn(options []game.DiscardOption, view game.TurnView) game.Turn {
	best := e.bestDiscard(options)

	for i, c := range view.Pickups {
		if c.IsJoker() {
			return game.Turn{Discard: best, Pickup: i}
		}
	}
	if turn, ok := e.lookahead(options, best, view); ok {
		return turn
	}
	return game.Turn{Discard: best, Pickup: e.pickOrDraw(view)}
}

// bestDiscard returns the option shedding the most points. Ties prefer
// keeping Jokers, then leaving the next player a higher lowest card. Any
// remaining tie is broken with the engine's rng.
func (e *Engine) bestDiscard(options []game.DiscardOption) game.DiscardOption {
	var ties []game.DiscardOption
	for _, opt := range options {
		if len(ties) == 0 {
			ties = append(ties, opt)
			continue
		}
		switch c := compareDiscards(opt, ties[0]); {
		case c > 0:
			ties = append(ties[:0], opt)
		case c == 0:
			ties = append(ties, opt)
		}
	}
	if len(ties) == 1 {
		return ties[0]
	}
	return ties[e.rng.IntN(len(ties))]
}

func compareDiscards(a, b game.DiscardOption) int {
	if a.Value() != b.Value() {
		return a.Value() - b.Value()
	}
	if a.HasJoker() != b.HasJoker() {
		if a.HasJoker() {
			return -1
		}
		return 1
	}
	return a.MinValue() - b.MinValue()
}

// lookahead searches one turn ahead: a face-up card that completes a group
// worth at least today's best discard is taken, and today's discard is
// chosen from the options that leave the rest of that group in hand.
func (e *Engine) lookahead(options []game.DiscardOption, best game.DiscardOption, view game.TurnView) (game.Turn, bool) {
	var (
		plan   game.Turn
		target int
		found  bool
	)
	for i, c := range view.Pickups {
		next := append(slices.Clone(view.Hand), c)
		for _, group := range game.DiscardOptions(next) {
			if !group.IsGroup() || !group.Contains(c) || group.Value() < best.Value() {
				continue
			}
			if found && group.Value() <= target {
				continue
			}
			discard, ok := e.bestDisjoint(options, without(group.Cards, c))
			if !ok {
				continue
			}
			plan, target, found = game.Turn{Discard: discard, Pickup: i}, group.Value(), true
		}
	}
	if found {
		e.logger.Debug("Building group", "player", view.Player, "pickup", view.Pickups[plan.Pickup], "target", target)
	}
	return plan, found
}

// bestDisjoint is bestDiscard restricted to options that use none of keep.
func (e *Engine) bestDisjoint(options []game.DiscardOption, keep []deck.Card) (game.DiscardOption, bool) {
	var allowed []game.DiscardOption
	for _, opt := range options {
		if !slices.ContainsFunc(opt.Cards, func(c deck.Card) bool { return slices.Contains(keep, c) }) {
			allowed = append(allowed, opt)
		}
	}
	if len(allowed) == 0 {
		return game.DiscardOption{}, false
	}
	return e.bestDiscard(allowed), true
}

// pickOrDraw takes the cheapest face-up card when it beats the expected
// value of a blind draw.
func (e *Engine) pickOrDraw(view game.TurnView) int {
	lowest := 0
	for i, c := range view.Pickups {
		if c.Value() < view.Pickups[lowest].Value() {
			lowest = i
		}
	}
	if view.DeckSize == 0 {
		return lowest
	}

	expected := e.expectedDraw()
	if randutil.Chance(e.rng, NudgeChance) {
		expected--
	}
	if float64(view.Pickups[lowest].Value()) < expected {
		return lowest
	}
	return view.DrawIndex()
}

// expectedDraw is the average unseen card for memory-tracking levels and the
// fresh-deck average otherwise.
func (e *Engine) expectedDraw() float64 {
	if e.level.TracksMemory() && e.remaining.Len() > 0 {
		return e.remaining.Average()
	}
	return FullDeckAverage
}

func without(cards []deck.Card, c deck.Card) []deck.Card {
	out := slices.Clone(cards)
	if i := slices.Index(out, c); i >= 0 {
		out = slices.Delete(out, i, i+1)
	}
	return out
}
