package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/yaniv/internal/deck"
)

// DiscardKind tags the shape of a discard.
type DiscardKind int

const (
	// Single is one non-Joker card.
	Single DiscardKind = iota
	// Set is two to four cards sharing a rank.
	Set
	// Run is three or more same-suit cards in rank order, Jokers standing in
	// for missing ranks.
	Run
)

func (k DiscardKind) String() string {
	switch k {
	case Single:
		return "single"
	case Set:
		return "set"
	case Run:
		return "run"
	default:
		return "unknown"
	}
}

// DiscardOption is one legal way of reducing a hand.
type DiscardOption struct {
	Kind  DiscardKind
	Cards []deck.Card
}

// Value returns the points removed from the hand by this discard.
func (o DiscardOption) Value() int {
	return deck.Sum(o.Cards)
}

// IsGroup reports whether the option discards more than one card.
func (o DiscardOption) IsGroup() bool {
	return o.Kind != Single
}

// HasJoker reports whether the discard spends a Joker.
func (o DiscardOption) HasJoker() bool {
	return slices.ContainsFunc(o.Cards, deck.Card.IsJoker)
}

// MinValue returns the value of the lowest card in the discard.
func (o DiscardOption) MinValue() int {
	lowest := 0
	for i, c := range o.Cards {
		if i == 0 || c.Value() < lowest {
			lowest = c.Value()
		}
	}
	return lowest
}

// Contains reports whether c is part of the discard.
func (o DiscardOption) Contains(c deck.Card) bool {
	return slices.Contains(o.Cards, c)
}

// Takeable returns the cards the next player may pick up once this option
// lies face up: any card of a set, only the ends of a run.
func (o DiscardOption) Takeable() []deck.Card {
	if o.Kind == Run && len(o.Cards) > 2 {
		return []deck.Card{o.Cards[0], o.Cards[len(o.Cards)-1]}
	}
	return slices.Clone(o.Cards)
}

// Key identifies the option. Sets are keyed by their card multiset so that
// orderings collapse; runs keep their order because their ends differ.
func (o DiscardOption) Key() string {
	cards := o.Cards
	if o.Kind != Run {
		cards = slices.SortedFunc(slices.Values(o.Cards), deck.Compare)
	}
	var b strings.Builder
	b.WriteString(o.Kind.String())
	for _, c := range cards {
		b.WriteByte(':')
		b.WriteString(c.Code())
	}
	return b.String()
}

func (o DiscardOption) String() string {
	return fmt.Sprintf("%s[%s]=%d", o.Kind, deck.Format(o.Cards), o.Value())
}

// SingleOf wraps one card as a discard. Used for the face-up card that starts
// a round's discard pile.
func SingleOf(c deck.Card) DiscardOption {
	return DiscardOption{Kind: Single, Cards: []deck.Card{c}}
}

// DiscardOptions enumerates every legal discard for the given cards. The
// result is deterministic for a given card multiset: singles first, then
// same-rank sets, then runs by suit and starting rank.
func DiscardOptions(hand []deck.Card) []DiscardOption {
	cards := slices.SortedFunc(slices.Values(hand), deck.Compare)

	var options []DiscardOption
	seen := make(map[string]bool)
	add := func(kind DiscardKind, group []deck.Card) {
		opt := DiscardOption{Kind: kind, Cards: slices.Clone(group)}
		key := opt.Key()
		if seen[key] {
			return
		}
		seen[key] = true
		options = append(options, opt)
	}

	jokers := 0
	byRank := make(map[deck.Rank][]deck.Card)
	bySuit := make(map[deck.Suit][]deck.Card)
	for _, c := range cards {
		if c.IsJoker() {
			jokers++
			continue
		}
		add(Single, []deck.Card{c})
		byRank[c.Rank] = append(byRank[c.Rank], c)
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	for rank := deck.Ace; rank <= deck.King; rank++ {
		if group := byRank[rank]; len(group) >= 2 {
			add(Set, group)
		}
	}

	for _, suit := range deck.Suits {
		suited := bySuit[suit]
		if len(suited) < 2 || (len(suited) < 3 && jokers == 0) {
			continue
		}
		for _, run := range suitRuns(suited, jokers) {
			add(Run, run)
		}
	}

	return options
}

// suitRuns scans same-suit cards (sorted by rank) from every starting card,
// extending while the next rank is adjacent or the gap can be bridged with
// the Jokers still free for this run. Every prefix of three or more cards is a
// run; an adjacent pair with a spare Joker becomes a run by placing the Joker
// below the pair (unless it starts at Ace) or above it (unless it ends at King).
func suitRuns(suited []deck.Card, jokers int) [][]deck.Card {
	var runs [][]deck.Card
	for i := 0; i < len(suited)-1; i++ {
		run := []deck.Card{suited[i]}
		free := jokers
		for j := i; j < len(suited)-1; j++ {
			gap := int(suited[j+1].Rank-suited[j].Rank) - 1
			if gap > free {
				break
			}
			for range gap {
				run = append(run, deck.JokerCard)
			}
			free -= gap
			run = append(run, suited[j+1])

			switch {
			case len(run) >= 3:
				runs = append(runs, slices.Clone(run))
			case len(run) == 2 && free > 0:
				if run[0].Rank != deck.Ace {
					runs = append(runs, append([]deck.Card{deck.JokerCard}, run...))
				}
				if run[1].Rank != deck.King {
					runs = append(runs, append(slices.Clone(run), deck.JokerCard))
				}
			}
		}
	}
	return runs
}

// ValidateDiscard checks that opt can be discarded from hand.
func ValidateDiscard(hand []deck.Card, opt DiscardOption) error {
	if len(opt.Cards) == 0 || !containsAll(hand, opt.Cards) {
		return fmt.Errorf("%w: %s not held", ErrInvalidDiscard, opt)
	}
	key := opt.Key()
	for _, legal := range DiscardOptions(hand) {
		if legal.Key() == key {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidDiscard, opt)
}
