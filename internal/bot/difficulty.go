package bot

import (
	"errors"
	"fmt"
)

// ErrInvalidDifficulty is returned for levels outside 1..5.
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Difficulty is the skill tier of an automated player, fixed at creation.
type Difficulty int

const (
	// Random picks uniformly among legal discards and pickups.
	Random Difficulty = iota + 1
	// Greedy sheds the most points and prefers cheap pickups.
	Greedy
	// Wary plays like Greedy, tracks the unseen cards and remembers 30% of
	// opponents' face-up pickups.
	Wary
	// Sharp remembers 60% of face-up pickups.
	Sharp
	// Perfect remembers every face-up pickup.
	Perfect
)

// ParseDifficulty validates a configured level.
func ParseDifficulty(level int) (Difficulty, error) {
	d := Difficulty(level)
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %d (want 1-5)", ErrInvalidDifficulty, level)
	}
	return d, nil
}

// Valid reports whether d is one of the five levels.
func (d Difficulty) Valid() bool {
	return d >= Random && d <= Perfect
}

// TracksMemory reports whether the level keeps a belief model and weighs
// Assaf risk before calling.
func (d Difficulty) TracksMemory() bool {
	return d >= Wary
}

// MemoryChance is the probability of remembering an opponent's face-up pickup.
func (d Difficulty) MemoryChance() float64 {
	switch d {
	case Wary:
		return 0.3
	case Sharp:
		return 0.6
	case Perfect:
		return 1
	default:
		return 0
	}
}

func (d Difficulty) String() string {
	switch d {
	case Random:
		return "random"
	case Greedy:
		return "greedy"
	case Wary:
		return "wary"
	case Sharp:
		return "sharp"
	case Perfect:
		return "perfect"
	default:
		return fmt.Sprintf("level(%d)", int(d))
	}
}
