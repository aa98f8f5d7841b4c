package deck

import (
	rand "math/rand/v2"
)

// NewStandard returns the 52 suited cards followed by the requested number
// of Jokers (clamped to 0..2), in sorted order.
func NewStandard(jokers int) []Card {
	jokers = max(0, min(jokers, 2))
	cards := make([]Card, 0, 52+jokers)
	for rank := Ace; rank <= King; rank++ {
		for _, suit := range Suits {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	for range jokers {
		cards = append(cards, JokerCard)
	}
	return cards
}

// Deck is the face-down draw pile. It never reaches for a global random
// source: the rng is supplied by whoever owns the round.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a shuffled deck from a standard card set.
func NewDeck(rng *rand.Rand, jokers int) *Deck {
	d := &Deck{cards: NewStandard(jokers), rng: rng}
	d.Shuffle()
	return d
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// DrawN draws up to n cards from the deck
func (d *Deck) DrawN(n int) []Card {
	n = min(n, len(d.cards))
	out := make([]Card, 0, n)
	for range n {
		c, _ := d.Draw()
		out = append(out, c)
	}
	return out
}

// Refill adds cards back into the deck and reshuffles it. Used when the draw
// pile runs out and the discard pile is recycled.
func (d *Deck) Refill(cards []Card) {
	d.cards = append(d.cards, cards...)
	d.Shuffle()
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
