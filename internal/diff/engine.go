package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultModifiedRatio is the similarity at which a removed and an added
// line are reported as one modification.
const DefaultModifiedRatio = 0.5

// Engine post-processes extracted changes.
type Engine struct {
	// ModifiedRatio is the minimum similarity for pairing. Zero means
	// DefaultModifiedRatio.
	ModifiedRatio float64
}

// NewEngine creates a new diff engine
func NewEngine() *Engine {
	return &Engine{ModifiedRatio: DefaultModifiedRatio}
}

// Classify returns a copy of changes in which each Removed line directly
// followed by an Added line at the same position is merged into a single
// Modified change when the two are similar enough.
func (e *Engine) Classify(changes []LineChange) []LineChange {
	threshold := e.ModifiedRatio
	if threshold <= 0 {
		threshold = DefaultModifiedRatio
	}

	out := make([]LineChange, 0, len(changes))
	for i := 0; i < len(changes); i++ {
		cur := changes[i]
		if cur.Kind == Removed && i+1 < len(changes) {
			next := changes[i+1]
			if next.Kind == Added && next.LineNumber == cur.LineNumber && Similarity(cur.Content, next.Content) >= threshold {
				out = append(out, LineChange{
					LineNumber: next.LineNumber,
					Kind:       Modified,
					Content:    next.Content,
					Previous:   cur.Content,
				})
				i++
				continue
			}
		}
		out = append(out, cur)
	}
	return out
}

// Similarity returns the difflib ratio between a and b compared character
// by character, in [0, 1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	matcher := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return matcher.Ratio()
}

// Stats counts changes by kind.
func Stats(changes []LineChange) (added, removed, modified int) {
	for _, c := range changes {
		switch c.Kind {
		case Added:
			added++
		case Removed:
			removed++
		case Modified:
			modified++
		}
	}
	return
}
