package game

import "errors"

var (
	// ErrInvalidDiscard is returned when a discard is not one of the legal
	// options for the hand it is taken from.
	ErrInvalidDiscard = errors.New("invalid discard")

	// ErrInvalidState means a turn cannot proceed: there is nothing legal to
	// discard or nothing to pick up. It is fatal to the turn.
	ErrInvalidState = errors.New("invalid state")

	ErrInvalidPickup  = errors.New("invalid pickup")
	ErrDuplicateCard  = errors.New("duplicate card")
	ErrCardNotInHand  = errors.New("card not in hand")
	ErrIllegalCall    = errors.New("hand value above call threshold")
	ErrTurnLimit      = errors.New("round exceeded turn limit")
	ErrNotEnoughSeats = errors.New("at least two players are required")
)
