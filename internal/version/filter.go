package version

import "github.com/cj3636/garch/internal/history"

// Filter returns the lines of v numbered start..end inclusive. The upper
// bound is clamped to the last line v actually has, so the result may be
// shorter than the window or empty.
func Filter(v FileVersion, start, end int) []history.BlameLine {
	if last := v.MaxLine(); end > last {
		end = last
	}

	var rows []history.BlameLine
	for _, line := range v.Lines {
		if line.LineNumber < start {
			continue
		}
		if line.LineNumber > end {
			break
		}
		rows = append(rows, line)
	}
	return rows
}
