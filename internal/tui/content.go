package tui

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/cj3636/garch/internal/history"
)

const ellipsis = "…"

// contentRenderer fits one line of content into width columns, returning
// one or more screen lines.
type contentRenderer interface {
	Render(content string, width int) []string
}

// wrapRenderer word-wraps plain text.
type wrapRenderer struct{}

// truncateRenderer cuts styled text to one line. Wrapping could split an
// escape sequence.
type truncateRenderer struct{}

func rendererFor(line history.BlameLine) contentRenderer {
	if line.IsStyled() {
		return truncateRenderer{}
	}
	return wrapRenderer{}
}

// Render breaks at the last space in the final third of each chunk, or
// hard-splits at width when there is none.
func (wrapRenderer) Render(content string, width int) []string {
	if width <= 0 || runewidth.StringWidth(content) <= width {
		return []string{content}
	}

	var out []string
	remaining := []rune(content)
	for len(remaining) > 0 {
		n := fitRunes(remaining, width)
		if n >= len(remaining) {
			out = append(out, string(remaining))
			break
		}

		split := n
		if space := lastSpace(remaining[:n]); space > n*2/3 {
			split = space
		}
		out = append(out, string(remaining[:split]))
		remaining = trimLeadingSpace(remaining[split:])
	}
	return out
}

func (truncateRenderer) Render(content string, width int) []string {
	if width <= 0 || ansi.StringWidth(content) <= width {
		return []string{content}
	}
	return []string{ansi.Truncate(content, width, ellipsis)}
}

// fitRunes returns how many leading runes fit in width columns, at least
// one so wrapping always makes progress.
func fitRunes(rs []rune, width int) int {
	used := 0
	for i, r := range rs {
		w := runewidth.RuneWidth(r)
		if used+w > width {
			return max(1, i)
		}
		used += w
	}
	return len(rs)
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == ' ' {
			return i
		}
	}
	return -1
}

func trimLeadingSpace(rs []rune) []rune {
	for len(rs) > 0 && (rs[0] == ' ' || rs[0] == '\t') {
		rs = rs[1:]
	}
	return rs
}

// truncate shortens plain text to width columns with a trailing ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}
