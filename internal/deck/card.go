package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit. The declaration order is the display/sort
// order used when a hand is kept sorted.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
	Joker
)

// Suits lists the four regular suits in sort order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	case Joker:
		return "🃏"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Joker sorts below Ace.
type Rank int

const (
	JokerRank Rank = iota
	Ace
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r == JokerRank:
		return "Jk"
	case r == Ace:
		return "A"
	case r >= Two && r <= Nine:
		return fmt.Sprint(int(r))
	case r == Ten:
		return "10"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	default:
		return "?"
	}
}

// Card is an immutable playing card. Two cards are equal when suit and rank
// match, so both physical Jokers compare equal and are interchangeable.
type Card struct {
	Suit Suit
	Rank Rank
}

// JokerCard is the single value every Joker in the deck shares.
var JokerCard = Card{Suit: Joker, Rank: JokerRank}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	if suit == Joker || rank == JokerRank {
		return JokerCard
	}
	return Card{Suit: suit, Rank: rank}
}

// IsJoker reports whether the card is a Joker.
func (c Card) IsJoker() bool {
	return c.Rank == JokerRank
}

// Value returns the points the card adds to a hand: numerals count their
// number, court cards 10, Ace 1 and Joker 0.
func (c Card) Value() int {
	switch {
	case c.Rank == JokerRank:
		return 0
	case c.Rank >= Jack:
		return 10
	default:
		return int(c.Rank)
	}
}

// String returns the string representation of a card (e.g., "10♥")
func (c Card) String() string {
	if c.IsJoker() {
		return Joker.String()
	}
	return c.Rank.String() + c.Suit.String()
}

// Code returns the compact two-character notation accepted by ParseCard.
func (c Card) Code() string {
	if c.IsJoker() {
		return "Jk"
	}
	return string(rankChars[c.Rank]) + string(suitChars[c.Suit])
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Less orders cards by rank first, then by suit.
func Less(a, b Card) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Suit < b.Suit
}

// Compare is Less expressed as a three-way comparison for slices.SortFunc.
func Compare(a, b Card) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	default:
		return 0
	}
}

// Sum returns the total value of the given cards.
func Sum(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Value()
	}
	return total
}

// Format joins card strings with spaces.
func Format(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

const (
	rankChars = "?A23456789TJQK"
	suitChars = "hdcs"
)

// ParseCard parses a two-character card code such as "Th", "As" or "Jk".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: want two characters", s)
	}
	if strings.EqualFold(s, "jk") {
		return JokerCard, nil
	}

	rank := strings.IndexByte(rankChars[1:], upper(s[0]))
	if rank < 0 {
		return Card{}, fmt.Errorf("invalid rank %q in card %q", s[0], s)
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return Card{}, fmt.Errorf("invalid suit %q in card %q", s[1], s)
	}
	return NewCard(Suit(suit), Rank(rank+1)), nil
}

// ParseCards parses a list of card codes. Codes may be separated by spaces
// or commas, or simply concatenated ("3h3d3cJk").
func ParseCards(s string) ([]Card, error) {
	compact := strings.NewReplacer(" ", "", ",", "", "\t", "").Replace(s)
	if len(compact)%2 != 0 {
		return nil, fmt.Errorf("invalid card list %q: odd length", s)
	}

	cards := make([]Card, 0, len(compact)/2)
	for i := 0; i < len(compact); i += 2 {
		c, err := ParseCard(compact[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on malformed input.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
