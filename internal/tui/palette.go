package tui

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

// authorPalette holds the colors blame blocks cycle through. Distinct
// authors may share a color.
var authorPalette = []lipgloss.Color{
	lipgloss.Color("9"), // red
	lipgloss.Color("6"), // cyan
	lipgloss.Color("2"), // green
	lipgloss.Color("3"), // yellow
	lipgloss.Color("4"), // blue
	lipgloss.Color("5"), // magenta
	lipgloss.Color("1"), // dark red
}

// AuthorColorIndex maps an author to a palette slot using FNV-1a.
func AuthorColorIndex(author string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(author))
	return int(h.Sum32() % uint32(len(authorPalette)))
}

// AuthorColor returns the block color for author.
func AuthorColor(author string) lipgloss.Color {
	return authorPalette[AuthorColorIndex(author)]
}
