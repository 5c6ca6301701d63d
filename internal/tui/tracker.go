package tui

import "github.com/cj3636/garch/internal/history"

// FocusLine returns the line number the reader is looking at: the only
// visible row, or the middle one when several are visible.
func FocusLine(rows []history.BlameLine, offset, height int) (int, bool) {
	visible := min(height, len(rows)-offset)
	if offset < 0 || visible <= 0 {
		return 0, false
	}
	idx := offset
	if visible > 1 {
		idx += visible / 2
	}
	return rows[idx].LineNumber, true
}

// NearestRow returns the index of the row numbered target, or of the row
// closest to it. Rows are scanned in ascending order and the first of
// several equally close rows wins. It returns -1 for no rows.
func NearestRow(rows []history.BlameLine, target int) int {
	best, bestDist := -1, 0
	for i, row := range rows {
		dist := row.LineNumber - target
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
			if dist == 0 {
				break
			}
		}
	}
	return best
}

// AnchorOffset returns the scroll offset that centers the row nearest to
// target in a viewport of the given height.
func AnchorOffset(rows []history.BlameLine, target, height int) int {
	return anchorOffset(rows, target, height, maxOffset(len(rows), height))
}

// anchorOffset is AnchorOffset with an explicit upper bound, for layouts
// where rows take more than one screen line.
func anchorOffset(rows []history.BlameLine, target, height, bottom int) int {
	idx := NearestRow(rows, target)
	if idx < 0 {
		return 0
	}
	return clampOffset(idx-height/2, bottom)
}
