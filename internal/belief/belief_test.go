package belief

import (
	"testing"

	"github.com/lox/yaniv/internal/deck"
	"github.com/lox/yaniv/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemainingRemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	r := NewRemaining(deck.NewStandard(2))
	require.Equal(t, 54, r.Len())
	require.Equal(t, 340, r.Total())

	seen := deck.MustParseCards("Kh")
	assert.Equal(t, 1, r.Remove(seen...))
	assert.Equal(t, 0, r.Remove(seen...))
	assert.Equal(t, 53, r.Len())
	assert.Equal(t, 330, r.Total())
	assert.False(t, r.Contains(seen[0]))
}

func TestRemainingTracksBothJokers(t *testing.T) {
	t.Parallel()

	r := NewRemaining(deck.NewStandard(2))
	assert.Equal(t, 2, r.Jokers())
	r.Remove(deck.JokerCard)
	assert.Equal(t, 1, r.Jokers())
	assert.True(t, r.Contains(deck.JokerCard))
	r.Remove(deck.JokerCard, deck.JokerCard)
	assert.Equal(t, 0, r.Jokers())
	assert.Equal(t, 52, r.Len())
}

func TestRemainingAverage(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 6.296, NewRemaining(deck.NewStandard(2)).Average(), 0.001)
	assert.Zero(t, NewRemaining(nil).Average())

	r := NewRemaining(deck.MustParseCards("2c3cJk"))
	assert.Equal(t, []int{0, 2, 3}, r.Values())
	assert.Equal(t, deck.MustParseCards("Jk2c3c"), r.Cards())
	assert.InDelta(t, 5.0/3.0, r.Average(), 1e-9)
}

func TestOpponentObserve(t *testing.T) {
	t.Parallel()

	o := NewOpponent("bob", 5)
	o.Observe(deck.MustParseCards("Ks"), deck.MustParseCards("3h")[0], true)
	assert.Equal(t, 5, o.Count)
	assert.Equal(t, deck.MustParseCards("3h"), o.Known)
	assert.Equal(t, 4, o.Unknown())

	// discarding a pair shrinks the hand by one, and a remembered card leaves
	o.Observe(deck.MustParseCards("3h3d"), deck.Card{}, false)
	assert.Equal(t, 4, o.Count)
	assert.Empty(t, o.Known)
	assert.Equal(t, deck.MustParseCards("3h3d"), o.LastDiscard)

	o.Observe(deck.MustParseCards("4c5c6c7c"), deck.Card{}, false)
	assert.Equal(t, 1, o.Count)
	o.Observe(deck.MustParseCards("8c9cTcJc"), deck.Card{}, false)
	assert.Equal(t, 0, o.Count, "believed count never goes negative")
}

func TestEstimateScenarioAllCombosBelow(t *testing.T) {
	t.Parallel()

	r := NewRemaining(deck.MustParseCards("2c3cJk"))
	o := NewOpponent("bob", 1)
	assert.Equal(t, 1.0, Estimate(o, r, 4))
}

func TestEstimateFastExits(t *testing.T) {
	t.Parallel()

	r := NewRemaining(deck.NewStandard(2))

	t.Run("known cards already reach threshold", func(t *testing.T) {
		o := &Opponent{ID: "x", Count: 3, Known: deck.MustParseCards("5h4d")}
		assert.Equal(t, 0.0, Estimate(o, r, 9))
		assert.Equal(t, 0.0, Estimate(o, r, 5))
	})

	t.Run("fully known hand below threshold", func(t *testing.T) {
		o := &Opponent{ID: "x", Count: 2, Known: deck.MustParseCards("Ah2d")}
		assert.Equal(t, 1.0, Estimate(o, r, 4))
	})

	t.Run("fresh deal is not estimated", func(t *testing.T) {
		o := NewOpponent("x", 5)
		assert.Equal(t, 0.0, Estimate(o, r, 50))
	})

	t.Run("even best case cannot get below", func(t *testing.T) {
		noJokers := NewRemaining(deck.NewStandard(0))
		o := &Opponent{ID: "x", Count: 3, Known: deck.MustParseCards("2h")}
		// best case is 2 + 1 + 1 = 4
		assert.Equal(t, 0.0, Estimate(o, noJokers, 4))
		assert.Greater(t, Estimate(o, noJokers, 5), 0.0)
	})

	t.Run("more unknown cards than unseen cards", func(t *testing.T) {
		tiny := NewRemaining(deck.MustParseCards("Ah"))
		o := &Opponent{ID: "x", Count: 2}
		assert.Equal(t, 0.0, Estimate(o, tiny, 30))
	})
}

func TestEstimateMatchesBruteForce(t *testing.T) {
	t.Parallel()

	rng := randutil.New(11)
	cards := deck.NewStandard(2)
	for trial := range 30 {
		rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
		pool := cards[:12]
		r := NewRemaining(pool)
		unknown := 1 + trial%3
		o := &Opponent{ID: "x", Count: unknown + 1, Known: cards[12:13]}
		threshold := 5 + rng.IntN(20)

		got := Estimate(o, r, threshold)
		want := bruteForce(r.Values(), unknown, threshold-o.KnownTotal())
		if o.KnownTotal() >= threshold {
			want = 0
		}
		assert.InDelta(t, want, got, 1e-12, "trial %d", trial)
	}
}

func TestEstimateFreshDealFollowsHandSize(t *testing.T) {
	t.Parallel()

	r := NewRemaining(deck.NewStandard(2))

	seven := NewOpponent("x", 7)
	assert.Equal(t, 7, seven.FreshDeal())
	assert.Equal(t, 0.0, Estimate(seven, r, 30), "nothing seen of a fresh seven-card deal")

	seven.Observe(deck.MustParseCards("9s9d"), deck.Card{}, false)
	require.Equal(t, 6, seven.Unknown())
	p := Estimate(seven, r, 30)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)

	three := NewOpponent("y", 3)
	assert.Equal(t, 0.0, Estimate(three, r, 30), "nothing seen of a fresh three-card deal")

	unset := &Opponent{ID: "z", Count: 5}
	assert.Equal(t, DefaultDealt, unset.FreshDeal())
	assert.Equal(t, 0.0, Estimate(unset, r, 30))
}

func TestCountBelowMatchesBruteForceForLargeHands(t *testing.T) {
	t.Parallel()

	rng := randutil.New(23)
	cards := deck.NewStandard(2)
	for trial := range 20 {
		rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
		values := NewRemaining(cards[:14]).Values()
		k := 4 + trial%3
		limit := 10 + rng.IntN(30)

		want := bruteForce(values, k, limit)
		got := float64(countBelow(values, k, limit)) / float64(binomial(len(values), k))
		assert.InDelta(t, want, got, 1e-12, "trial %d", trial)
	}
}

func TestEstimateIsMonotonicInThreshold(t *testing.T) {
	t.Parallel()

	r := NewRemaining(deck.NewStandard(2))
	r.Remove(deck.MustParseCards("KhKdQcJs9h8d")...)
	o := &Opponent{ID: "x", Count: 3, Known: deck.MustParseCards("2s")}

	prev := 0.0
	for threshold := 0; threshold <= 40; threshold++ {
		p := Estimate(o, r, threshold)
		assert.GreaterOrEqual(t, p, prev, "threshold %d", threshold)
		assert.LessOrEqual(t, p, 1.0)
		prev = p
	}
}

func TestBinomial(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(1), binomial(5, 0))
	assert.Equal(t, uint64(10), binomial(5, 2))
	assert.Equal(t, uint64(148995), binomial(45, 4))
	assert.Equal(t, uint64(0), binomial(2, 3))
}

func bruteForce(values []int, k, limit int) float64 {
	var hits, total int
	var walk func(start, k, sum int)
	walk = func(start, k, sum int) {
		if k == 0 {
			total++
			if sum < limit {
				hits++
			}
			return
		}
		for i := start; i < len(values); i++ {
			walk(i+1, k-1, sum+values[i])
		}
	}
	walk(0, k, 0)
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
