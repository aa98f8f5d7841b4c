// Package game implements the rules of Yaniv.
//
// A Hand is kept sorted and knows its value. DiscardOptions enumerates
// every legal way to shed cards from a hand: single cards, same-rank sets
// and same-suit runs in which Jokers fill missing ranks.
//
// # Playing
//
// Seats are Players driven by a Controller. A Round owns the deck and the
// discard pile for one deal; a Game runs rounds, scores calls and Assafs and
// eliminates players above the score limit:
//
//	rules := game.DefaultRules()
//	players := []*game.Player{
//	    game.NewPlayer("ada", adaEngine),
//	    game.NewPlayer("bob", bobEngine),
//	}
//	g := game.NewGame(id, rules, players, randutil.New(42), logger)
//	result, err := g.Play(ctx)
//
// # Deterministic Testing
//
// All randomness comes from the *rand.Rand passed to NewGame or NewRound, so
// a seed fully determines the deal. Controllers carry their own generators.
//
// # Turn flow
//
// Each turn the acting controller gets a TurnView and either calls Yaniv
// or returns a Turn (discard plus pickup index). The round validates and
// applies the turn, then broadcasts an Observation to every controller. The
// acting player's copy reveals the card it drew from the deck.
package game
