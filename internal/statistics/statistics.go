package statistics

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/lox/yaniv/internal/game"
)

// SeatStats tracks one seat's results across many games. Points are per
// scored round, so lower is better.
type SeatStats struct {
	Name            string
	Games           int
	Wins            int
	Rounds          int
	Calls           int
	SuccessfulCalls int // calls that were not Assafed
	AssafsSuffered  int
	AssafsMade      int
	Eliminations    int

	SumPoints  float64
	SumPoints2 float64   // Sum of squares for variance calculation
	Values     []float64 // Every round's points, for median/percentile
}

// Mean returns the average points taken per round
func (s *SeatStats) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumPoints / float64(s.Rounds)
}

// Variance returns the sample variance of round points
func (s *SeatStats) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumPoints2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of round points
func (s *SeatStats) StdDev() float64 {
	return math.Sqrt(math.Max(0, s.Variance()))
}

// StdError returns the standard error of the mean
func (s *SeatStats) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *SeatStats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median round points
func (s *SeatStats) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *SeatStats) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate is the fraction of games won.
func (s *SeatStats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// CallSuccessRate is the fraction of calls that were not Assafed.
func (s *SeatStats) CallSuccessRate() float64 {
	if s.Calls == 0 {
		return 0
	}
	return float64(s.SuccessfulCalls) / float64(s.Calls)
}

// Statistics aggregates finished games seat by seat.
type Statistics struct {
	Games         int
	Rounds        int
	StalledRounds int

	seats map[string]*SeatStats
	order []string
}

// New creates empty statistics.
func New() *Statistics {
	return &Statistics{seats: make(map[string]*SeatStats)}
}

// Add incorporates one finished game.
func (s *Statistics) Add(result *game.GameResult) {
	s.Games++
	s.StalledRounds += result.StalledRounds

	names := make([]string, 0, len(result.Scores))
	for name := range result.Scores {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.seat(name).Games++
	}
	if result.Winner != "" {
		s.seat(result.Winner).Wins++
	}
	for _, name := range result.Eliminated {
		s.seat(name).Eliminations++
	}

	for _, round := range result.Rounds {
		s.Rounds++
		for name, pts := range round.Points {
			seat := s.seat(name)
			v := float64(pts)
			seat.Rounds++
			seat.SumPoints += v
			seat.SumPoints2 += v * v
			seat.Values = append(seat.Values, v)
		}

		caller := s.seat(round.Caller)
		caller.Calls++
		if round.Assafed() {
			caller.AssafsSuffered++
		} else {
			caller.SuccessfulCalls++
		}
		for _, name := range round.Assafers {
			s.seat(name).AssafsMade++
		}
	}
}

func (s *Statistics) seat(name string) *SeatStats {
	if s.seats == nil {
		s.seats = make(map[string]*SeatStats)
	}
	seat, ok := s.seats[name]
	if !ok {
		seat = &SeatStats{Name: name}
		s.seats[name] = seat
		s.order = append(s.order, name)
	}
	return seat
}

// Seat returns the stats for a seat, or nil if it never played.
func (s *Statistics) Seat(name string) *SeatStats {
	return s.seats[name]
}

// Seats returns every seat in the order it was first seen.
func (s *Statistics) Seats() []*SeatStats {
	out := make([]*SeatStats, len(s.order))
	for i, name := range s.order {
		out[i] = s.seats[name]
	}
	return out
}

// Validate performs consistency checks across the aggregated data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	wins, calls, suffered, made := 0, 0, 0, 0
	for _, seat := range s.Seats() {
		if len(seat.Values) != seat.Rounds {
			return fmt.Errorf("seat %s: values length (%d) does not match rounds (%d)",
				seat.Name, len(seat.Values), seat.Rounds)
		}
		if seat.SuccessfulCalls+seat.AssafsSuffered != seat.Calls {
			return fmt.Errorf("seat %s: %d successful + %d Assafed calls != %d calls",
				seat.Name, seat.SuccessfulCalls, seat.AssafsSuffered, seat.Calls)
		}
		if seat.Wins > seat.Games {
			return fmt.Errorf("seat %s: wins (%d) exceed games (%d)", seat.Name, seat.Wins, seat.Games)
		}
		wins += seat.Wins
		calls += seat.Calls
		suffered += seat.AssafsSuffered
		made += seat.AssafsMade
	}

	if wins > s.Games {
		return fmt.Errorf("total wins (%d) exceed games (%d)", wins, s.Games)
	}
	if calls != s.Rounds {
		return fmt.Errorf("calls (%d) do not match scored rounds (%d)", calls, s.Rounds)
	}
	if made < suffered {
		return fmt.Errorf("Assafs made (%d) fewer than Assafs suffered (%d)", made, suffered)
	}
	return nil
}

// SeatSummary is the serialisable digest of one seat.
type SeatSummary struct {
	Name            string  `json:"name"`
	Games           int     `json:"games"`
	Wins            int     `json:"wins"`
	WinRate         float64 `json:"win_rate"`
	Rounds          int     `json:"rounds"`
	Calls           int     `json:"calls"`
	SuccessfulCalls int     `json:"successful_calls"`
	AssafsSuffered  int     `json:"assafs_suffered"`
	AssafsMade      int     `json:"assafs_made"`
	Eliminations    int     `json:"eliminations"`
	MeanPoints      float64 `json:"mean_points"`
	MedianPoints    float64 `json:"median_points"`
	StdDevPoints    float64 `json:"stddev_points"`
	CI95Low         float64 `json:"ci95_low"`
	CI95High        float64 `json:"ci95_high"`
}

// Summary digests every seat for reporting.
func (s *Statistics) Summary() []SeatSummary {
	seats := s.Seats()
	out := make([]SeatSummary, len(seats))
	for i, seat := range seats {
		low, high := seat.ConfidenceInterval95()
		out[i] = SeatSummary{
			Name:            seat.Name,
			Games:           seat.Games,
			Wins:            seat.Wins,
			WinRate:         seat.WinRate(),
			Rounds:          seat.Rounds,
			Calls:           seat.Calls,
			SuccessfulCalls: seat.SuccessfulCalls,
			AssafsSuffered:  seat.AssafsSuffered,
			AssafsMade:      seat.AssafsMade,
			Eliminations:    seat.Eliminations,
			MeanPoints:      seat.Mean(),
			MedianPoints:    seat.Median(),
			StdDevPoints:    seat.StdDev(),
			CI95Low:         low,
			CI95High:        high,
		}
	}
	return out
}
