package game

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/yaniv/internal/deck"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func cards(t *testing.T, s string) []deck.Card {
	t.Helper()
	cs, err := deck.ParseCards(s)
	require.NoError(t, err)
	return cs
}

func card(t *testing.T, s string) deck.Card {
	t.Helper()
	c, err := deck.ParseCard(s)
	require.NoError(t, err)
	return c
}

// scriptedAgent follows a fixed policy and records everything it is told.
type scriptedAgent struct {
	call     bool // call whenever the hand allows
	always   bool // call even when the hand does not allow it
	pickup   int  // face-up index to take; negative draws from the deck
	starts   []RoundStart
	observed []Observation
}

func (a *scriptedAgent) StartRound(start RoundStart) {
	a.starts = append(a.starts, start)
}

func (a *scriptedAgent) ChooseAction(view TurnView) Action {
	if a.always || (a.call && view.HandValue() <= view.CallThreshold) {
		return CallEarlyEnd
	}
	return DiscardAndPickup
}

func (a *scriptedAgent) DoTurn(view TurnView) (Turn, error) {
	options := DiscardOptions(view.Hand)
	if len(options) == 0 {
		return Turn{}, ErrInvalidState
	}
	best := options[0]
	for _, opt := range options[1:] {
		if opt.Value() > best.Value() {
			best = opt
		}
	}
	pickup := a.pickup
	if pickup < 0 || pickup >= len(view.Pickups) {
		pickup = view.DrawIndex()
	}
	return Turn{Discard: best, Pickup: pickup}, nil
}

func (a *scriptedAgent) Observe(obs Observation) {
	a.observed = append(a.observed, obs)
}

// scriptedPrompter answers prompts from a queue.
type scriptedPrompter struct {
	answers  []int
	err      error
	prompts  []string
	choices  [][]string
	messages []string
}

func (p *scriptedPrompter) Choose(prompt string, choices []string) (int, error) {
	p.prompts = append(p.prompts, prompt)
	p.choices = append(p.choices, choices)
	if p.err != nil {
		return 0, p.err
	}
	if len(p.answers) == 0 {
		return 0, errors.New("no scripted answer")
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Notify(message string) {
	p.messages = append(p.messages, message)
}
