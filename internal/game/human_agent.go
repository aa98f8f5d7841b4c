package game

import (
	"fmt"
	"strings"

	"github.com/lox/yaniv/internal/deck"
)

// Prompter asks a person to pick one of several labelled choices and returns
// the chosen index.
type Prompter interface {
	Choose(prompt string, choices []string) (int, error)
}

// Notifier is optionally implemented by a Prompter that wants to show game
// events to the person.
type Notifier interface {
	Notify(message string)
}

// Human is the Controller for a person at the table.
type Human struct {
	prompter Prompter
	name     string
}

// NewHuman creates a human controller backed by a prompter.
func NewHuman(prompter Prompter) *Human {
	return &Human{prompter: prompter}
}

func (h *Human) StartRound(start RoundStart) {
	h.name = start.Player
	h.notify(fmt.Sprintf("New round. Your hand: %s", deck.Format(start.Hand)))
}

// ChooseAction only asks when a call is legal. Input errors keep playing.
// A hand of only Jokers has nothing to discard, so it calls without asking.
func (h *Human) ChooseAction(view TurnView) Action {
	if view.HandValue() > view.CallThreshold {
		return DiscardAndPickup
	}
	if len(DiscardOptions(view.Hand)) == 0 {
		h.notify(fmt.Sprintf("Nothing to discard from %s. Calling Yaniv.", deck.Format(view.Hand)))
		return CallEarlyEnd
	}

	prompt := fmt.Sprintf("Hand %s is worth %d. Call Yaniv?", deck.Format(view.Hand), view.HandValue())
	choice, err := h.prompter.Choose(prompt, []string{"Keep playing", "Call Yaniv"})
	if err != nil || choice != 1 {
		return DiscardAndPickup
	}
	return CallEarlyEnd
}

func (h *Human) DoTurn(view TurnView) (Turn, error) {
	options := DiscardOptions(view.Hand)
	if len(options) == 0 || len(view.Pickups) == 0 {
		return Turn{}, fmt.Errorf("%w: nothing to discard or pick up", ErrInvalidState)
	}

	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.String()
	}
	discard, err := h.prompter.Choose(fmt.Sprintf("Hand %s. Discard:", deck.Format(view.Hand)), labels)
	if err != nil {
		return Turn{}, fmt.Errorf("choose discard: %w", err)
	}
	if discard < 0 || discard >= len(options) {
		return Turn{}, fmt.Errorf("%w: choice %d", ErrInvalidDiscard, discard)
	}

	pickups := make([]string, 0, len(view.Pickups)+1)
	for _, c := range view.Pickups {
		pickups = append(pickups, c.String())
	}
	pickups = append(pickups, fmt.Sprintf("Draw from deck (%d left)", view.DeckSize))
	pickup, err := h.prompter.Choose("Pick up:", pickups)
	if err != nil {
		return Turn{}, fmt.Errorf("choose pickup: %w", err)
	}

	return Turn{Discard: options[discard], Pickup: pickup}, nil
}

func (h *Human) Observe(obs Observation) {
	if obs.Actor == "" || obs.Actor == h.name {
		if obs.Actor == h.name && obs.Pickup.Visible {
			h.notify(fmt.Sprintf("You picked up %s", obs.Pickup.Card))
		}
		return
	}

	msg := fmt.Sprintf("%s discarded %s and took from the %s", obs.Actor, deck.Format(obs.Discarded), obs.Pickup.Source)
	if obs.Pickup.Source == PickupFaceUp {
		msg += fmt.Sprintf(" (%s)", obs.Pickup.Card)
	}
	h.notify(msg)
}

// RoundOver reports the call and the points this seat took.
func (h *Human) RoundOver(res *RoundResult, score int) {
	msg := fmt.Sprintf("%s called Yaniv with %d", res.Caller, res.CallerValue)
	if res.Assafed() {
		msg += fmt.Sprintf(", Assaf by %s", strings.Join(res.Assafers, ", "))
	}
	h.notify(fmt.Sprintf("%s. You took %d points and have %d.", msg, res.Points[h.name], score))
}

func (h *Human) notify(msg string) {
	if n, ok := h.prompter.(Notifier); ok {
		n.Notify(msg)
	}
}
