package belief

import (
	"slices"

	"github.com/lox/yaniv/internal/deck"
)

// Opponent is what one player believes about another's hand.
type Opponent struct {
	ID          string
	Dealt       int         // cards dealt at the start of the round
	Count       int         // believed number of cards held
	Known       []deck.Card // cards seen going into the hand and not yet discarded
	LastDiscard []deck.Card
}

// DefaultDealt is the hand size assumed when Dealt is unset.
const DefaultDealt = 5

// NewOpponent creates the belief for a freshly dealt opponent.
func NewOpponent(id string, count int) *Opponent {
	return &Opponent{ID: id, Dealt: count, Count: count}
}

// FreshDeal is the number of unseen cards at which the hand is no better
// known than when it was dealt.
func (o *Opponent) FreshDeal() int {
	if o.Dealt > 0 {
		return o.Dealt
	}
	return DefaultDealt
}

// Observe applies one of the opponent's turns: discarding k cards and
// picking one up leaves the hand k-1 cards smaller. A face-up pickup is
// added to the known cards only when remember is set.
func (o *Opponent) Observe(discarded []deck.Card, picked deck.Card, remember bool) {
	for _, c := range discarded {
		if i := slices.Index(o.Known, c); i >= 0 {
			o.Known = slices.Delete(o.Known, i, i+1)
		}
	}
	o.Count = max(0, o.Count-(len(discarded)-1))
	o.LastDiscard = slices.Clone(discarded)

	if remember {
		o.Known = append(o.Known, picked)
	}
	o.Count = max(o.Count, len(o.Known))
}

// KnownTotal returns the value of the cards known to be held.
func (o *Opponent) KnownTotal() int {
	return deck.Sum(o.Known)
}

// Unknown returns how many held cards have never been seen.
func (o *Opponent) Unknown() int {
	return o.Count - len(o.Known)
}
