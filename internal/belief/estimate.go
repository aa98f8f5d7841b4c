package belief

// Estimate returns the probability that the opponent's hand total is
// strictly below threshold, given its known cards and the unseen cards in
// remaining. Unknown cards are assumed to be a uniformly random draw from
// remaining. The result is exact: every combination of unseen cards is
// counted rather than sampled.
func Estimate(opp *Opponent, remaining *Remaining, threshold int) float64 {
	known := opp.KnownTotal()
	if known >= threshold {
		return 0
	}

	unknown := opp.Unknown()
	if unknown <= 0 {
		return 1
	}

	// A hand nothing has been seen of is not estimated. Otherwise give up when
	// Jokers for every free slot and Aces for the rest cannot get below the
	// threshold.
	if unknown >= opp.FreshDeal() || threshold <= known+unknown-remaining.Jokers() {
		return 0
	}

	values := remaining.Values()
	if unknown > len(values) {
		return 0
	}

	hits := countBelow(values, unknown, threshold-known)
	total := binomial(len(values), unknown)
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// countBelow counts the k-card combinations of values whose sum is strictly
// less than limit. Cards are distinct even when their values are equal, so m
// of the n cards sharing a value can be chosen in C(n, m) ways. ways[j][s]
// is the number of ways to pick j cards totalling s from the values folded
// in so far.
func countBelow(values []int, k, limit int) uint64 {
	if limit <= 0 {
		return 0
	}
	counts := make(map[int]int)
	for _, v := range values {
		counts[v]++
	}

	ways := newTable(k, limit)
	ways[0][0] = 1
	for v, n := range counts {
		next := newTable(k, limit)
		for j := range ways {
			for s, w := range ways[j] {
				if w == 0 {
					continue
				}
				for m := 0; m <= n && j+m <= k; m++ {
					t := s + m*v
					if t >= limit {
						break
					}
					next[j+m][t] += w * binomial(n, m)
				}
			}
		}
		ways = next
	}

	var hits uint64
	for _, w := range ways[k] {
		hits += w
	}
	return hits
}

func newTable(k, limit int) [][]uint64 {
	table := make([][]uint64, k+1)
	for j := range table {
		table[j] = make([]uint64, limit)
	}
	return table
}

// binomial returns C(n, k).
func binomial(n, k int) uint64 {
	if k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	result := uint64(1)
	for i := 1; i <= k; i++ {
		result = result * uint64(n-k+i) / uint64(i)
	}
	return result
}
