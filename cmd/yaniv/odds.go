package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lox/yaniv/internal/belief"
	"github.com/lox/yaniv/internal/deck"
)

// OddsCmd asks the estimator how likely an opponent's hand is to total less
// than a threshold, given what has been seen.
type OddsCmd struct {
	Known     string `short:"k" help:"Cards known to be in the opponent's hand"`
	Unknown   int    `short:"u" required:"" help:"Number of opponent cards never seen"`
	Threshold int    `short:"t" required:"" help:"Count hands totalling strictly less than this"`
	Seen      string `short:"s" help:"Other cards already seen (own hand, discard pile)"`
	Jokers    int    `default:"2" help:"Jokers in the deck"`
	Dealt     int    `default:"5" help:"Cards dealt to each player at the start of the round"`

	out io.Writer `kong:"-"`
}

func (c *OddsCmd) Run() error {
	if c.Unknown < 0 {
		return errors.New("unknown must not be negative")
	}
	if c.Dealt < 0 {
		return errors.New("dealt must not be negative")
	}
	if c.Jokers < 0 || c.Jokers > 2 {
		return fmt.Errorf("jokers must be between 0 and 2, got %d", c.Jokers)
	}
	known, err := parseHand(c.Known)
	if err != nil {
		return fmt.Errorf("known: %w", err)
	}
	seen, err := parseHand(c.Seen)
	if err != nil {
		return fmt.Errorf("seen: %w", err)
	}

	remaining := belief.NewRemaining(deck.NewStandard(c.Jokers))
	for _, cards := range [][]deck.Card{known, seen} {
		if n := remaining.Remove(cards...); n != len(cards) {
			return fmt.Errorf("%s: more copies than the deck holds", deck.Format(cards))
		}
	}

	opp := belief.NewOpponent("opponent", len(known)+c.Unknown)
	opp.Dealt = c.Dealt
	opp.Known = known
	p := belief.Estimate(opp, remaining, c.Threshold)

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "%s %d cards, known %s (%d)\n",
		headerStyle.Render("Opponent"), opp.Count, renderCards(known), opp.KnownTotal())
	fmt.Fprintf(out, "%s %d unseen, average %.2f\n",
		headerStyle.Render("Deck"), remaining.Len(), remaining.Average())
	if opp.Unknown() >= opp.FreshDeal() {
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d or more unseen cards are treated as a fresh deal", opp.FreshDeal())))
	}
	fmt.Fprintf(out, "P(total < %d) = %s\n", c.Threshold, percentStyle.Render(fmt.Sprintf("%.4f", p)))
	return nil
}

func parseHand(s string) ([]deck.Card, error) {
	if s == "" {
		return nil, nil
	}
	return deck.ParseCards(s)
}
