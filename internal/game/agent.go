package game

import "github.com/lox/yaniv/internal/deck"

// Action is what a player decides at the start of a turn.
type Action int

const (
	// DiscardAndPickup plays a normal turn.
	DiscardAndPickup Action = iota
	// CallEarlyEnd calls "Yaniv" and ends the round.
	CallEarlyEnd
)

func (a Action) String() string {
	switch a {
	case DiscardAndPickup:
		return "discard"
	case CallEarlyEnd:
		return "yaniv"
	default:
		return "unknown"
	}
}

// PickupSource says where the acting player's new card came from.
type PickupSource int

const (
	PickupNone PickupSource = iota
	PickupDeck
	PickupFaceUp
)

func (s PickupSource) String() string {
	switch s {
	case PickupDeck:
		return "deck"
	case PickupFaceUp:
		return "face-up"
	default:
		return "none"
	}
}

// Pickup describes the card taken at the end of a turn. Card is only
// meaningful when Visible: face-up pickups are public, a deck draw is only
// visible to the player who drew it.
type Pickup struct {
	Source  PickupSource
	Card    deck.Card
	Visible bool
}

// Observation is broadcast to every controller after every turn.
type Observation struct {
	Actor     string // empty when the discard has no actor (the opening card)
	Discarded []deck.Card
	Pickup    Pickup
}

// OpponentView is the public information about another seat.
type OpponentView struct {
	ID       string
	HandSize int
	Score    int
}

// TurnView is the read-only state handed to a controller on its turn.
type TurnView struct {
	Player        string
	Hand          []deck.Card
	Pickups       []deck.Card // takeable face-up cards; index len(Pickups) draws from the deck
	CallThreshold int
	DeckSize      int
	Opponents     []OpponentView
}

// HandValue returns the total of the acting player's hand.
func (v TurnView) HandValue() int {
	return deck.Sum(v.Hand)
}

// DrawIndex is the pickup index that selects the face-down deck.
func (v TurnView) DrawIndex() int {
	return len(v.Pickups)
}

// Turn is a controller's decision for a DiscardAndPickup turn.
type Turn struct {
	Discard DiscardOption
	Pickup  int
}

// RoundStart tells a controller about a freshly dealt round.
type RoundStart struct {
	Player    string
	Hand      []deck.Card
	Opponents []string
	FaceUp    []deck.Card
	HandSize  int
}

// Controller decides for one seat. Seats are either driven by a Human
// (through a Prompter) or by an automated engine.
// Controllers receive immutable views and return decisions; the round applies them.
type Controller interface {
	StartRound(start RoundStart)
	ChooseAction(view TurnView) Action
	DoTurn(view TurnView) (Turn, error)
	Observe(obs Observation)
}

// RoundObserver is optionally implemented by a Controller that wants the
// outcome of each completed round along with its own running score.
type RoundObserver interface {
	RoundOver(result *RoundResult, score int)
}
