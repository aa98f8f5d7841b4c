package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/yaniv/internal/deck"
	"github.com/muesli/termenv"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	blackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0E0E0")).
			Bold(true)

	jokerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

func disableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func renderCard(c deck.Card) string {
	switch {
	case c.IsJoker():
		return jokerStyle.Render(c.String())
	case c.IsRed():
		return redCardStyle.Render(c.String())
	default:
		return blackCardStyle.Render(c.String())
	}
}

func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c)
	}
	return strings.Join(parts, " ")
}
