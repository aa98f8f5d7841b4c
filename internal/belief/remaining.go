// Package belief models what an automated player knows about cards it cannot
// see: the cards still unaccounted for, and what each opponent is holding.
package belief

import (
	"slices"

	"github.com/lox/yaniv/internal/deck"
)

// Remaining is the set of cards the holder has not yet seen in its own hand
// or on the discard pile, with their running value total. It only ever
// shrinks during a round.
type Remaining struct {
	counts map[deck.Card]int
	size   int
	total  int
}

// NewRemaining starts a belief set from a full deck composition.
func NewRemaining(cards []deck.Card) *Remaining {
	r := &Remaining{counts: make(map[deck.Card]int, len(cards))}
	for _, c := range cards {
		r.counts[c]++
		r.size++
		r.total += c.Value()
	}
	return r
}

// Remove takes seen cards out of the set and returns how many were removed.
// Cards already accounted for are ignored.
func (r *Remaining) Remove(cards ...deck.Card) int {
	removed := 0
	for _, c := range cards {
		if r.counts[c] == 0 {
			continue
		}
		r.counts[c]--
		if r.counts[c] == 0 {
			delete(r.counts, c)
		}
		r.size--
		r.total -= c.Value()
		removed++
	}
	return removed
}

// Contains reports whether c is still unaccounted for.
func (r *Remaining) Contains(c deck.Card) bool {
	return r.counts[c] > 0
}

// Len returns the number of unseen cards.
func (r *Remaining) Len() int {
	return r.size
}

// Total returns the summed value of the unseen cards.
func (r *Remaining) Total() int {
	return r.total
}

// Jokers returns the number of Jokers not yet seen.
func (r *Remaining) Jokers() int {
	return r.counts[deck.JokerCard]
}

// Average is the expected value of one unseen card, or 0 for an empty set.
func (r *Remaining) Average() float64 {
	if r.size == 0 {
		return 0
	}
	return float64(r.total) / float64(r.size)
}

// Cards returns the unseen cards in sorted order, repeating duplicates.
func (r *Remaining) Cards() []deck.Card {
	cards := make([]deck.Card, 0, r.size)
	for c, n := range r.counts {
		for range n {
			cards = append(cards, c)
		}
	}
	slices.SortFunc(cards, deck.Compare)
	return cards
}

// Values returns the values of the unseen cards in ascending order.
func (r *Remaining) Values() []int {
	values := make([]int, 0, r.size)
	for c, n := range r.counts {
		for range n {
			values = append(values, c.Value())
		}
	}
	slices.Sort(values)
	return values
}
