package history

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// maxStyledLen is the longest content handed to a Styler. Longer lines are
// stored verbatim.
const maxStyledLen = 200

// BlameLine is one line of a file at a given revision together with the
// commit that last touched it.
type BlameLine struct {
	LineNumber int
	Author     string
	Date       string
	CommitHash string
	Summary    string
	Content    string
	// Styled is Content with terminal styling applied. Empty when no
	// Styler was supplied.
	Styled string
}

// Display returns the styled content when available, else the raw content.
func (l BlameLine) Display() string {
	if l.Styled != "" {
		return l.Styled
	}
	return l.Content
}

// IsStyled reports whether Display carries embedded escape sequences.
func (l BlameLine) IsStyled() bool {
	return l.Styled != "" && l.Styled != l.Content
}

// Styler applies syntax styling to a single line of content.
type Styler interface {
	Style(content string) string
}

// ParseBlame parses `git blame --line-porcelain` output. Records without a
// content line are dropped. When styler is nil no styling is computed.
func ParseBlame(text string, styler Styler) []BlameLine {
	var result []BlameLine
	lines := strings.Split(text, "\n")

	for i := 0; i < len(lines); i++ {
		parts := strings.Fields(lines[i])
		if len(parts) < 3 || len(parts[0]) < 7 {
			continue
		}

		lineNumber, _ := strconv.Atoi(parts[2])
		bl := BlameLine{
			LineNumber: lineNumber,
			CommitHash: shortHash(parts[0]),
		}

		complete := false
		for i++; i < len(lines); i++ {
			meta := strings.TrimRight(lines[i], "\r")
			if strings.HasPrefix(meta, "\t") {
				bl.Content = meta[1:]
				complete = true
				break
			}
			switch {
			case strings.HasPrefix(meta, "author-time "):
				if ts, err := strconv.ParseInt(strings.TrimPrefix(meta, "author-time "), 10, 64); err == nil {
					bl.Date = FormatTimestamp(ts)
				}
			case strings.HasPrefix(meta, "author "):
				bl.Author = AbbreviateAuthor(strings.TrimPrefix(meta, "author "))
			case strings.HasPrefix(meta, "summary "):
				bl.Summary = strings.TrimPrefix(meta, "summary ")
			}
		}
		if !complete {
			break
		}

		if styler != nil {
			bl.Styled = styleContent(styler, bl.Content)
		}
		result = append(result, bl)
	}

	return result
}

// SortLines orders blame lines by line number, keeping input order on ties.
func SortLines(lines []BlameLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].LineNumber < lines[j].LineNumber
	})
}

func styleContent(styler Styler, content string) string {
	if len(content) > maxStyledLen {
		return content
	}
	return styler.Style(content)
}

// AbbreviateAuthor shortens "Jane Doe" to "Jane D.". Single-word names are
// returned unchanged.
func AbbreviateAuthor(author string) string {
	parts := strings.Fields(author)
	if len(parts) < 2 {
		return author
	}
	initial, _ := utf8.DecodeRuneInString(parts[1])
	return parts[0] + " " + string(initial) + "."
}

// FormatTimestamp renders unix seconds as a UTC YYYY-MM-DD date.
func FormatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02")
}
