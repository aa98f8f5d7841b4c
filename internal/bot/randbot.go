package bot

import "github.com/lox/yaniv/internal/game"

// randomTurn picks uniformly among legal discards and pickups. The deck only
// counts as a pickup while it has cards.
func (e *Engine) randomTurn(options []game.DiscardOption, view game.TurnView) game.Turn {
	pickups := len(view.Pickups)
	if view.DeckSize > 0 {
		pickups++
	}
	return game.Turn{
		Discard: options[e.rng.IntN(len(options))],
		Pickup:  e.rng.IntN(pickups),
	}
}
