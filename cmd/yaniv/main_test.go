package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	disableColor()
	os.Exit(m.Run())
}

func TestCLIParse(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"odds", "-u", "2", "-t", "5", "--known", "Ah"})
	require.NoError(t, err)
	assert.Equal(t, "odds", ctx.Command())
	assert.Equal(t, 2, cli.Odds.Unknown)
	assert.Equal(t, 5, cli.Odds.Threshold)
	assert.Equal(t, 2, cli.Odds.Jokers)
	assert.Equal(t, 5, cli.Odds.Dealt)

	_, err = parser.Parse([]string{"options", "3h", "3d", "Jk"})
	require.NoError(t, err)
	assert.Equal(t, []string{"3h", "3d", "Jk"}, cli.Options.Cards)

	_, err = parser.Parse([]string{"simulate", "--games", "10", "--seed", "7"})
	require.NoError(t, err)
	require.NotNil(t, cli.Simulate.Seed)
	assert.Equal(t, int64(7), *cli.Simulate.Seed)
	assert.Equal(t, time.Minute, cli.Simulate.Timeout)
}

func TestOptionsCmd(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := &OptionsCmd{Cards: []string{"3h", "3d", "Jk"}, out: &out}
	require.NoError(t, cmd.Run())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Hand 🃏 3♥ 3♦ (6)", lines[0])
	assert.Equal(t, "  set    3♥ 3♦ -6", lines[1])
	assert.Contains(t, lines[2], "single")
}

func TestOptionsCmdRejectsBadHand(t *testing.T) {
	t.Parallel()

	assert.Error(t, (&OptionsCmd{Cards: []string{"3x"}, out: io.Discard}).Run())
	assert.Error(t, (&OptionsCmd{Cards: []string{"3h", "3h"}, out: io.Discard}).Run())
}

func TestOddsCmd(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := &OddsCmd{Unknown: 1, Threshold: 2, Jokers: 2, out: &out}
	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "Deck 54 unseen")
	// Two Jokers and four Aces out of 54 cards.
	assert.Contains(t, out.String(), "P(total < 2) = 0.1111")

	out.Reset()
	cmd = &OddsCmd{Known: "Kh", Unknown: 1, Threshold: 5, Jokers: 2, out: &out}
	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "P(total < 5) = 0.0000")

	out.Reset()
	cmd = &OddsCmd{Unknown: 5, Threshold: 30, Jokers: 2, Dealt: 5, out: &out}
	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "5 or more unseen cards are treated as a fresh deal")
	assert.Contains(t, out.String(), "P(total < 30) = 0.0000")

	out.Reset()
	cmd = &OddsCmd{Unknown: 6, Threshold: 30, Jokers: 2, Dealt: 7, out: &out}
	require.NoError(t, cmd.Run())
	assert.NotContains(t, out.String(), "fresh deal")
	assert.NotContains(t, out.String(), "P(total < 30) = 0.0000")
}

func TestOddsCmdRejectsImpossibleCards(t *testing.T) {
	t.Parallel()

	cmd := &OddsCmd{Known: "Ah", Seen: "Ah", Unknown: 1, Threshold: 5, Jokers: 2, out: io.Discard}
	assert.ErrorContains(t, cmd.Run(), "more copies")

	cmd = &OddsCmd{Unknown: 1, Threshold: 5, Jokers: 3, out: io.Discard}
	assert.Error(t, cmd.Run())
}

func TestLinePrompter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := newLinePrompter(strings.NewReader("x\n9\n 2 \n"), &out)
	choice, err := p.Choose("Pick up:", []string{"4♣", "Draw", "Other"})
	require.NoError(t, err)
	assert.Equal(t, 1, choice)
	assert.Contains(t, out.String(), "  2) Draw")
	assert.Equal(t, 2, strings.Count(out.String(), "Enter a number from 1 to 3"))

	_, err = p.Choose("Again:", []string{"a"})
	assert.ErrorIs(t, err, io.EOF)

	p.Notify("bob called Yaniv")
	assert.Contains(t, out.String(), "bob called Yaniv\n")
}

func TestPlayCmdQuitsOnEOF(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	seed := int64(3)
	cmd := &PlayCmd{
		Config: filepath.Join(t.TempDir(), "missing.hcl"),
		Name:   "you",
		Seed:   &seed,
		in:     strings.NewReader(""),
		out:    &out,
	}
	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "(seed 3)")
	assert.Contains(t, out.String(), "New round. Your hand:")
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestSimulateCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seed := int64(99)
	var out bytes.Buffer
	cmd := &SimulateCmd{
		Config:  filepath.Join(dir, "missing.hcl"),
		Games:   4,
		Seed:    &seed,
		Workers: 2,
		Timeout: time.Minute,
		Output:  filepath.Join(dir, "report.json"),
		out:     &out,
	}
	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "4 games")
	assert.Contains(t, out.String(), "seed 99")
	for _, name := range []string{"ada", "bob", "cy"} {
		assert.Contains(t, out.String(), name)
	}

	data, err := os.ReadFile(cmd.Output)
	require.NoError(t, err)
	var report struct {
		Games int   `json:"games"`
		Seed  int64 `json:"seed"`
		Seats []struct {
			Name string `json:"name"`
		} `json:"seats"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 4, report.Games)
	assert.Equal(t, int64(99), report.Seed)
	assert.Len(t, report.Seats, 3)
}

func TestSimulateCmdRejectsHumanSeats(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "yaniv.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
seat "ada" { difficulty = 4 }
seat "you" { human = true }
`), 0o644))

	cmd := &SimulateCmd{Config: path, Games: 1, Timeout: time.Minute, out: io.Discard}
	assert.ErrorContains(t, cmd.Run(), "human")
}
