// Package diff extracts per-line changes from a commit's unified diff.
package diff

import (
	"strconv"
	"strings"
)

// ChangeKind classifies a LineChange.
type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	Modified
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// Symbol returns the single-character marker used when printing k.
func (k ChangeKind) Symbol() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	case Modified:
		return "~"
	default:
		return " "
	}
}

// LineChange is one changed line of a commit.
type LineChange struct {
	// LineNumber is the position in the new file. Removed lines carry the
	// number of the line that now follows them.
	LineNumber int
	Kind       ChangeKind
	Content    string
	// Previous holds the replaced text of a Modified change.
	Previous string
}

// ParseChanges reads a unified diff and returns its added and removed
// lines. Text before the first hunk is ignored and parsing stops at the
// next commit or file header.
func ParseChanges(text string) []LineChange {
	var (
		changes []LineChange
		inHunk  bool
		lineNo  int
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")

		if strings.HasPrefix(line, "@@") {
			inHunk = true
			if start, ok := hunkNewStart(line); ok {
				lineNo = start
			}
			continue
		}
		if !inHunk {
			continue
		}
		if strings.HasPrefix(line, "commit ") || strings.HasPrefix(line, "diff --git") {
			break
		}

		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			changes = append(changes, LineChange{LineNumber: lineNo, Kind: Added, Content: line[1:]})
			lineNo++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			changes = append(changes, LineChange{LineNumber: lineNo, Kind: Removed, Content: line[1:]})
		case strings.HasPrefix(line, " "):
			lineNo++
		}
	}

	return changes
}

// hunkNewStart pulls newstart out of "@@ -a,b +newstart[,count] @@".
func hunkNewStart(header string) (int, bool) {
	plus := strings.Index(header, "+")
	if plus < 0 {
		return 0, false
	}
	rest := header[plus+1:]
	end := strings.IndexAny(rest, ", ")
	if end < 0 {
		end = len(rest)
	}
	start, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, false
	}
	return start, true
}
