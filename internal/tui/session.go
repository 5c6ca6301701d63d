package tui

import (
	"github.com/cj3636/garch/internal/history"
	"github.com/cj3636/garch/internal/version"
)

// Session is everything the viewer needs to show a file's history.
type Session struct {
	// Path is shown in the header.
	Path string
	// Start and End bound the traced line window, inclusive. End may be
	// history.Unbounded.
	Start int
	End   int
	// Versions are shown in slice order.
	Versions []version.FileVersion
}

func (s Session) window() (int, int) {
	start, end := s.Start, s.End
	if start < 1 {
		start = 1
	}
	if end == 0 {
		end = history.Unbounded
	}
	return start, end
}

// filteredRows computes the visible line set of every version once.
func (s Session) filteredRows() [][]history.BlameLine {
	start, end := s.window()
	rows := make([][]history.BlameLine, len(s.Versions))
	for i, v := range s.Versions {
		rows[i] = version.Filter(v, start, end)
	}
	return rows
}
