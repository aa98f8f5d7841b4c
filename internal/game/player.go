package game

// Rules are the table settings shared by every round of a game.
type Rules struct {
	CallThreshold int // a hand worth at most this may call Yaniv
	HandSize      int
	Jokers        int
	ScoreLimit    int // players whose score exceeds this are eliminated
	AssafPenalty  int
	MaxTurns      int // per round; 0 disables the limit
}

// DefaultRules returns the standard table settings.
func DefaultRules() Rules {
	return Rules{
		CallThreshold: 7,
		HandSize:      5,
		Jokers:        2,
		ScoreLimit:    100,
		AssafPenalty:  30,
		MaxTurns:      400,
	}
}

// Player is one seat at the table. How the seat decides is entirely up to
// its Controller.
type Player struct {
	ID         string
	Controller Controller
	Hand       *Hand
	Score      int
	Eliminated bool
}

// NewPlayer creates a seat with an empty hand.
func NewPlayer(id string, controller Controller) *Player {
	return &Player{
		ID:         id,
		Controller: controller,
		Hand:       MustNewHand(),
	}
}

// IsActive returns true if the player still takes part in rounds
func (p *Player) IsActive() bool {
	return !p.Eliminated
}
