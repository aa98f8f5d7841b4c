package main

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/lox/yaniv/internal/game"
)

// OptionsCmd prints every legal discard for a hand, best first.
type OptionsCmd struct {
	Cards []string `arg:"" help:"Hand as card codes, e.g. '3h 3d 4h 5h Jk'"`

	out io.Writer `kong:"-"`
}

func (c *OptionsCmd) Run() error {
	cards, err := parseHand(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	hand, err := game.NewHand(cards...)
	if err != nil {
		return fmt.Errorf("invalid hand: %w", err)
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}

	options := game.DiscardOptions(hand.Cards())
	slices.SortStableFunc(options, func(a, b game.DiscardOption) int {
		return cmp.Compare(b.Value(), a.Value())
	})

	fmt.Fprintf(out, "%s %s %s\n",
		headerStyle.Render("Hand"),
		renderCards(hand.Cards()),
		valueStyle.Render(fmt.Sprintf("(%d)", hand.Value())))
	if len(options) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No legal discards"))
		return nil
	}
	for _, opt := range options {
		fmt.Fprintf(out, "  %-6s %s %s\n",
			opt.Kind,
			renderCards(opt.Cards),
			valueStyle.Render(fmt.Sprintf("-%d", opt.Value())))
	}
	return nil
}
