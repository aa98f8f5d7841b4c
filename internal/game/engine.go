package game

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
)

// maxStalledRounds bounds consecutive rounds that end on the turn limit.
const maxStalledRounds = 5

// GameResult summarises a finished game.
type GameResult struct {
	ID            string
	Winner        string
	Scores        map[string]int
	Eliminated    []string // in elimination order
	Rounds        []*RoundResult
	StalledRounds int
}

// Game runs rounds until at most one player is left under the score limit.
type Game struct {
	id      string
	rules   Rules
	players []*Player
	rng     *rand.Rand
	logger  *log.Logger
}

// NewGame creates a game. Players are seated in the given order.
func NewGame(id string, rules Rules, players []*Player, rng *rand.Rand, logger *log.Logger) *Game {
	return &Game{
		id:      id,
		rules:   rules,
		players: players,
		rng:     rng,
		logger:  logger.With("game", id),
	}
}

// Play runs the game to completion.
func (g *Game) Play(ctx context.Context) (*GameResult, error) {
	if len(g.players) < 2 {
		return nil, ErrNotEnoughSeats
	}

	result := &GameResult{ID: g.id, Scores: make(map[string]int, len(g.players))}
	starter := g.players[0].ID
	stalled := 0

	for {
		active := g.active()
		if len(active) <= 1 {
			break
		}

		round := NewRound(g.rules, active, indexOf(active, starter), g.rng, g.logger)
		res, err := round.Play(ctx)
		if errors.Is(err, ErrTurnLimit) {
			stalled++
			result.StalledRounds++
			g.logger.Warn("Round hit turn limit", "stalled", stalled)
			if stalled >= maxStalledRounds {
				return nil, fmt.Errorf("game %s: %w", g.id, err)
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("game %s round %d: %w", g.id, len(result.Rounds)+1, err)
		}
		stalled = 0
		result.Rounds = append(result.Rounds, res)

		for _, p := range active {
			if p.Score > g.rules.ScoreLimit {
				p.Eliminated = true
				result.Eliminated = append(result.Eliminated, p.ID)
				g.logger.Info("Player eliminated", "player", p.ID, "score", p.Score)
			}
		}
		for _, p := range active {
			if o, ok := p.Controller.(RoundObserver); ok {
				o.RoundOver(res, p.Score)
			}
		}
		starter = g.nextStarter(active, res.Winner)
	}

	for _, p := range g.players {
		result.Scores[p.ID] = p.Score
	}
	result.Winner = g.leader()
	g.logger.Info("Game over", "winner", result.Winner, "rounds", len(result.Rounds))
	return result, nil
}

func (g *Game) active() []*Player {
	var active []*Player
	for _, p := range g.players {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// nextStarter returns the round winner, or the next surviving seat after
// them when the winner has been eliminated.
func (g *Game) nextStarter(seats []*Player, winner string) string {
	i := indexOf(seats, winner)
	for n := range seats {
		p := seats[(i+n)%len(seats)]
		if p.IsActive() {
			return p.ID
		}
	}
	return winner
}

// leader is the surviving player with the lowest score.
func (g *Game) leader() string {
	var best *Player
	for _, p := range g.players {
		if !p.IsActive() {
			continue
		}
		if best == nil || p.Score < best.Score {
			best = p
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

func indexOf(players []*Player, id string) int {
	for i, p := range players {
		if p.ID == id {
			return i
		}
	}
	return 0
}
