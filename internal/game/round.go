package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/yaniv/internal/deck"
)

// RoundResult is the outcome of one dealt round.
type RoundResult struct {
	Caller      string
	CallerValue int
	Assafers    []string // players whose hand was not above the caller's
	Winner      string   // caller, or the first Assafer after the caller
	Points      map[string]int
	Hands       map[string][]deck.Card
	Turns       int
}

// Assafed reports whether the call was countered.
func (r *RoundResult) Assafed() bool {
	return len(r.Assafers) > 0
}

// Round owns everything mutable about a single deal: the draw deck, the
// discard pile and the order of play. Nothing here is shared between rounds
// or between games.
type Round struct {
	rules   Rules
	players []*Player
	starter int
	rng     *rand.Rand
	logger  *log.Logger

	deck *deck.Deck
	pile []DiscardOption
}

// NewRound prepares a round for the given active players. starter is the
// index of the player who takes the first turn.
func NewRound(rules Rules, players []*Player, starter int, rng *rand.Rand, logger *log.Logger) *Round {
	return &Round{
		rules:   rules,
		players: players,
		starter: starter,
		rng:     rng,
		logger:  logger,
	}
}

// Play deals and runs turns until someone calls.
func (r *Round) Play(ctx context.Context) (*RoundResult, error) {
	if len(r.players) < 2 {
		return nil, ErrNotEnoughSeats
	}
	if err := r.deal(); err != nil {
		return nil, err
	}

	idx := r.starter % len(r.players)
	for turns := 0; ; turns++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r.rules.MaxTurns > 0 && turns >= r.rules.MaxTurns {
			return nil, fmt.Errorf("%w: %d turns", ErrTurnLimit, turns)
		}

		p := r.players[idx]
		view := r.view(p)
		if p.Controller.ChooseAction(view) == CallEarlyEnd {
			if p.Hand.Value() > r.rules.CallThreshold {
				return nil, fmt.Errorf("player %s: %w: %d > %d", p.ID, ErrIllegalCall, p.Hand.Value(), r.rules.CallThreshold)
			}
			res := r.resolve(idx)
			res.Turns = turns
			return res, nil
		}

		turn, err := p.Controller.DoTurn(view)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.ID, err)
		}
		if err := r.apply(p, view.Pickups, turn); err != nil {
			return nil, fmt.Errorf("player %s: %w", p.ID, err)
		}

		idx = (idx + 1) % len(r.players)
	}
}

func (r *Round) deal() error {
	r.deck = deck.NewDeck(r.rng, r.rules.Jokers)
	for _, p := range r.players {
		p.Hand.Clear()
	}
	for range r.rules.HandSize {
		for _, p := range r.players {
			c, ok := r.deck.Draw()
			if !ok {
				return fmt.Errorf("%w: deck too small to deal", ErrInvalidState)
			}
			if err := p.Hand.Add(c); err != nil {
				return err
			}
		}
	}

	faceUp, ok := r.deck.Draw()
	if !ok {
		return fmt.Errorf("%w: no card left to start the discard pile", ErrInvalidState)
	}
	r.pile = []DiscardOption{SingleOf(faceUp)}

	ids := make([]string, len(r.players))
	for i, p := range r.players {
		ids[i] = p.ID
	}
	for i, p := range r.players {
		opponents := slices.Concat(ids[i+1:], ids[:i])
		p.Controller.StartRound(RoundStart{
			Player:    p.ID,
			Hand:      p.Hand.Cards(),
			Opponents: opponents,
			FaceUp:    []deck.Card{faceUp},
			HandSize:  r.rules.HandSize,
		})
	}

	r.logger.Debug("Dealt round", "players", len(ids), "faceUp", faceUp, "deck", r.deck.Len())
	return nil
}

func (r *Round) view(p *Player) TurnView {
	var opponents []OpponentView
	for _, other := range r.players {
		if other != p {
			opponents = append(opponents, OpponentView{ID: other.ID, HandSize: other.Hand.Len(), Score: other.Score})
		}
	}
	return TurnView{
		Player:        p.ID,
		Hand:          p.Hand.Cards(),
		Pickups:       r.top().Takeable(),
		CallThreshold: r.rules.CallThreshold,
		DeckSize:      r.deck.Len(),
		Opponents:     opponents,
	}
}

func (r *Round) top() *DiscardOption {
	return &r.pile[len(r.pile)-1]
}

// apply performs a validated turn: the discard leaves the hand, the chosen
// card comes from the previous discard or the deck, and then the discard
// becomes the new top of the pile.
func (r *Round) apply(p *Player, pickups []deck.Card, turn Turn) error {
	if err := ValidateDiscard(p.Hand.Cards(), turn.Discard); err != nil {
		return err
	}
	if turn.Pickup < 0 || turn.Pickup > len(pickups) {
		return fmt.Errorf("%w: index %d of %d", ErrInvalidPickup, turn.Pickup, len(pickups))
	}

	var pickup Pickup
	if turn.Pickup < len(pickups) {
		c := pickups[turn.Pickup]
		top := r.top()
		i := slices.Index(top.Cards, c)
		if i < 0 {
			return fmt.Errorf("%w: %s no longer on the pile", ErrInvalidPickup, c)
		}
		top.Cards = slices.Delete(slices.Clone(top.Cards), i, i+1)
		pickup = Pickup{Source: PickupFaceUp, Card: c, Visible: true}
	} else {
		c, err := r.draw()
		if err != nil {
			return err
		}
		pickup = Pickup{Source: PickupDeck, Card: c}
	}

	if err := p.Hand.Remove(turn.Discard.Cards...); err != nil {
		return err
	}
	if err := p.Hand.Add(pickup.Card); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	discard := DiscardOption{Kind: turn.Discard.Kind, Cards: slices.Clone(turn.Discard.Cards)}
	r.pile = append(r.pile, discard)
	// Recycle now so the next view's DeckSize counts every drawable card.
	if r.deck.IsEmpty() {
		r.recycle()
	}

	r.logger.Debug("Turn",
		"player", p.ID,
		"discard", discard,
		"pickup", pickup.Source,
		"hand", p.Hand)

	public := Observation{Actor: p.ID, Discarded: slices.Clone(discard.Cards), Pickup: pickup}
	if pickup.Source == PickupDeck {
		public.Pickup = Pickup{Source: PickupDeck}
	}
	for _, other := range r.players {
		if other == p {
			private := public
			private.Pickup = pickup
			private.Pickup.Visible = true
			other.Controller.Observe(private)
			continue
		}
		other.Controller.Observe(public)
	}
	return nil
}

// draw takes the top deck card, recycling the discard pile under the current
// top when the deck has run out.
func (r *Round) draw() (deck.Card, error) {
	if r.deck.IsEmpty() {
		r.recycle()
	}
	c, ok := r.deck.Draw()
	if !ok {
		return deck.Card{}, fmt.Errorf("%w: deck and discard pile exhausted", ErrInvalidState)
	}
	return c, nil
}

// recycle shuffles every discard under the top back into the deck.
func (r *Round) recycle() {
	if len(r.pile) < 2 {
		return
	}
	var recycled []deck.Card
	for _, d := range r.pile[:len(r.pile)-1] {
		recycled = append(recycled, d.Cards...)
	}
	r.pile = r.pile[len(r.pile)-1:]
	r.deck.Refill(recycled)
	r.logger.Debug("Recycled discard pile", "cards", len(recycled))
}

// resolve scores a call made by the player at index caller.
func (r *Round) resolve(caller int) *RoundResult {
	c := r.players[caller]
	res := &RoundResult{
		Caller:      c.ID,
		CallerValue: c.Hand.Value(),
		Winner:      c.ID,
		Points:      make(map[string]int, len(r.players)),
		Hands:       make(map[string][]deck.Card, len(r.players)),
	}

	for i := 1; i < len(r.players); i++ {
		p := r.players[(caller+i)%len(r.players)]
		if p.Hand.Value() <= res.CallerValue {
			res.Assafers = append(res.Assafers, p.ID)
		}
	}
	if res.Assafed() {
		res.Winner = res.Assafers[0]
	}

	for _, p := range r.players {
		res.Hands[p.ID] = p.Hand.Cards()
		switch {
		case p == c && res.Assafed():
			res.Points[p.ID] = res.CallerValue + r.rules.AssafPenalty
		case p == c, slices.Contains(res.Assafers, p.ID):
			res.Points[p.ID] = 0
		default:
			res.Points[p.ID] = p.Hand.Value()
		}
		p.Score += res.Points[p.ID]
	}

	r.logger.Info("Yaniv called",
		"caller", res.Caller,
		"value", res.CallerValue,
		"assaf", res.Assafers,
		"winner", res.Winner)
	return res
}
