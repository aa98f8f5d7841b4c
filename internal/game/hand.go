package game

import (
	"fmt"
	"slices"

	"github.com/lox/yaniv/internal/deck"
)

// maxJokers is the number of physical Jokers a deck can hold.
const maxJokers = 2

// Hand is the ordered set of cards a player holds. It is always kept sorted
// by (Rank, Suit) and never holds the same suited card twice.
type Hand struct {
	cards []deck.Card
}

// NewHand creates a hand from the given cards.
func NewHand(cards ...deck.Card) (*Hand, error) {
	h := &Hand{cards: make([]deck.Card, 0, len(cards)+1)}
	for _, c := range cards {
		if err := h.Add(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// MustNewHand is NewHand for fixtures.
func MustNewHand(cards ...deck.Card) *Hand {
	h, err := NewHand(cards...)
	if err != nil {
		panic(err)
	}
	return h
}

// Add inserts a card at its sorted position.
func (h *Hand) Add(c deck.Card) error {
	if c.IsJoker() {
		if h.count(c) >= maxJokers {
			return fmt.Errorf("%w: more than %d jokers", ErrDuplicateCard, maxJokers)
		}
	} else if h.Contains(c) {
		return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
	}

	i, _ := slices.BinarySearchFunc(h.cards, c, deck.Compare)
	h.cards = slices.Insert(h.cards, i, c)
	return nil
}

// Remove takes the given cards out of the hand. Either every card is removed
// or, if one is missing, the hand is left untouched.
func (h *Hand) Remove(cards ...deck.Card) error {
	next := slices.Clone(h.cards)
	for _, c := range cards {
		i := slices.Index(next, c)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrCardNotInHand, c)
		}
		next = slices.Delete(next, i, i+1)
	}
	h.cards = next
	return nil
}

// Contains reports whether the hand holds c.
func (h *Hand) Contains(c deck.Card) bool {
	return slices.Contains(h.cards, c)
}

// ContainsAll reports whether every card (counted with multiplicity) is in the hand.
func (h *Hand) ContainsAll(cards []deck.Card) bool {
	return containsAll(h.cards, cards)
}

// Cards returns a copy of the hand in sorted order.
func (h *Hand) Cards() []deck.Card {
	return slices.Clone(h.cards)
}

// Len returns the number of cards held.
func (h *Hand) Len() int {
	return len(h.cards)
}

// Value returns the total value of the hand.
func (h *Hand) Value() int {
	return deck.Sum(h.cards)
}

// Clear empties the hand at the end of a round.
func (h *Hand) Clear() {
	h.cards = h.cards[:0]
}

func (h *Hand) String() string {
	return fmt.Sprintf("[%s] (%d)", deck.Format(h.cards), h.Value())
}

func (h *Hand) count(c deck.Card) int {
	n := 0
	for _, held := range h.cards {
		if held == c {
			n++
		}
	}
	return n
}

// containsAll reports whether want is a sub-multiset of have.
func containsAll(have, want []deck.Card) bool {
	pool := slices.Clone(have)
	for _, c := range want {
		i := slices.Index(pool, c)
		if i < 0 {
			return false
		}
		pool = slices.Delete(pool, i, i+1)
	}
	return true
}
