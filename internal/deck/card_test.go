package deck

import (
	"testing"

	"github.com/lox/yaniv/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "three of a kind with joker",
			input: "3h3d3c7sJk",
			expected: []Card{
				{Suit: Hearts, Rank: Three},
				{Suit: Diamonds, Rank: Three},
				{Suit: Clubs, Rank: Three},
				{Suit: Spades, Rank: Seven},
				JokerCard,
			},
		},
		{
			name:  "separated and mixed case",
			input: "as, KH td",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Ten},
			},
		},
		{name: "invalid rank", input: "Xs", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "odd length", input: "AsK", wantErr: true},
		{name: "empty string", input: "", expected: []Card{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { MustParseCards("invalid") })
}

func TestCardValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card string
		want int
	}{
		{"Jk", 0},
		{"Ah", 1},
		{"2c", 2},
		{"9s", 9},
		{"Td", 10},
		{"Jh", 10},
		{"Qc", 10},
		{"Ks", 10},
	}
	for _, tt := range tests {
		c, err := ParseCard(tt.card)
		require.NoError(t, err)
		assert.Equal(t, tt.want, c.Value(), tt.card)
	}
}

func TestCodeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range NewStandard(2) {
		parsed, err := ParseCard(c.Code())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestLessOrdersRankThenSuit(t *testing.T) {
	t.Parallel()

	assert.True(t, Less(JokerCard, NewCard(Hearts, Ace)))
	assert.True(t, Less(NewCard(Spades, Ace), NewCard(Hearts, Two)))
	assert.True(t, Less(NewCard(Hearts, Five), NewCard(Diamonds, Five)))
	assert.True(t, Less(NewCard(Clubs, King), NewCard(Spades, King)))
	assert.False(t, Less(JokerCard, JokerCard))
	assert.Equal(t, 0, Compare(JokerCard, JokerCard))
}

func TestNewStandard(t *testing.T) {
	t.Parallel()

	cards := NewStandard(2)
	require.Len(t, cards, 54)
	assert.Equal(t, 340, Sum(cards))

	jokers := 0
	for _, c := range cards {
		if c.IsJoker() {
			jokers++
		}
	}
	assert.Equal(t, 2, jokers)
	assert.Len(t, NewStandard(7), 54)
	assert.Len(t, NewStandard(-1), 52)
}

func TestDeckDrawIsSeedReproducible(t *testing.T) {
	t.Parallel()

	a := NewDeck(randutil.New(99), 2)
	b := NewDeck(randutil.New(99), 2)
	assert.Equal(t, a.DrawN(10), b.DrawN(10))
	assert.Equal(t, 44, a.Len())

	rest := a.DrawN(100)
	assert.Len(t, rest, 44)
	assert.True(t, a.IsEmpty())

	_, ok := a.Draw()
	assert.False(t, ok)

	a.Refill(rest[:5])
	assert.Equal(t, 5, a.Len())
}
