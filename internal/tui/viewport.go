package tui

// Layout of the fixed screen regions.
const (
	headerRows = 3
	footerRows = 1
	wheelStep  = 3
)

// Viewport controls the visible portion of the filtered rows
type Viewport struct {
	offset int // Current scroll position
	height int // Available height for content
}

// contentHeight is the number of body rows a terminal of the given height
// can show. It never drops below one.
func contentHeight(terminalHeight int) int {
	return max(1, terminalHeight-headerRows-footerRows)
}

// maxOffset is the largest offset that fills the viewport when every row
// takes exactly one screen line.
func maxOffset(total, height int) int {
	return max(0, total-height)
}

// clampOffset bounds offset to [0, bottom].
func clampOffset(offset, bottom int) int {
	return min(max(0, offset), max(0, bottom))
}

func (v *Viewport) scrollBy(delta, bottom int) {
	v.offset = clampOffset(v.offset+delta, bottom)
}

func (v *Viewport) halfPage() int {
	return max(1, v.height/2)
}

func (v *Viewport) toTop() {
	v.offset = 0
}

func (v *Viewport) toBottom(bottom int) {
	v.offset = max(0, bottom)
}
