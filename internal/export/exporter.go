// Package export renders a line-history report as text, Markdown, HTML or a
// table.
package export

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/cj3636/garch/internal/diff"
	"github.com/cj3636/garch/internal/history"
)

// Format represents the desired export format.
type Format string

const (
	// FormatHTML emits an HTML document for the report.
	FormatHTML Format = "html"
	// FormatMarkdown emits one Markdown diff block per commit.
	FormatMarkdown Format = "markdown"
	// FormatANSI emits an ANSI-colored string.
	FormatANSI Format = "ansi"
	// FormatTable emits a per-commit summary table.
	FormatTable Format = "table"
)

// Options control how a report is exported.
type Options struct {
	// Title will be shown in HTML/Markdown outputs when provided.
	Title string
	// Now anchors relative dates. Zero means time.Now.
	Now time.Time
}

// ParseFormat maps a user supplied name, including short aliases, to a
// Format. An empty name selects ANSI.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(raw) {
	case "", string(FormatANSI), "text":
		return FormatANSI, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	case string(FormatHTML), "htm":
		return FormatHTML, nil
	case string(FormatTable):
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", raw)
	}
}

// Render returns the report in the requested format.
func Render(report *diff.Report, format Format, opts Options) (string, error) {
	if report == nil {
		return "", errors.New("report is nil")
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle(report)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	switch format {
	case FormatHTML:
		return renderHTML(report, opts), nil
	case FormatMarkdown:
		return renderMarkdown(report, opts), nil
	case FormatANSI:
		return renderANSI(report, opts), nil
	case FormatTable:
		return renderTable(report, opts), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

// DefaultTitle names the traced file and window.
func DefaultTitle(report *diff.Report) string {
	if report.End == history.Unbounded {
		return fmt.Sprintf("History of %s", report.Path)
	}
	return fmt.Sprintf("History of %s:%d-%d", report.Path, report.Start, report.End)
}

func renderHTML(report *diff.Report, opts Options) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	b.WriteString("<style>body{background:#0f111a;color:#e5e7eb;font-family:Menlo,Consolas,monospace;}" +
		"pre{white-space:pre-wrap;word-wrap:break-word;}" +
		".added{background:#12281a;color:#8dd39e;}" +
		".removed{background:#2b1313;color:#f19999;}" +
		".modified{color:#e5d38d;}" +
		".lineno{color:#9ca3af;margin-right:12px;}" +
		"h1{font-size:18px;margin-bottom:12px;}h2{font-size:14px;color:#9ca3af;}" +
		"</style></head><body>")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(opts.Title))

	dmp := diffmatchpatch.New()
	for _, entry := range report.Commits {
		c := entry.Commit
		fmt.Fprintf(&b, "<h2>%s %s &middot; %s &middot; %s</h2>\n<pre>",
			html.EscapeString(c.ShortHash()), html.EscapeString(c.Message),
			html.EscapeString(c.Author), html.EscapeString(c.Date))
		for _, change := range entry.Changes {
			content := html.EscapeString(change.Content)
			if change.Kind == diff.Modified {
				content = dmp.DiffPrettyHtml(inlineDiff(dmp, change))
			}
			fmt.Fprintf(&b, "<div class=\"%s\"><span class=\"lineno\">%5d</span>%s %s</div>\n",
				change.Kind, change.LineNumber, change.Kind.Symbol(), content)
		}
		b.WriteString("</pre>\n")
	}

	b.WriteString("</body></html>")
	return b.String()
}

func renderMarkdown(report *diff.Report, opts Options) string {
	var b strings.Builder

	b.WriteString("# ")
	b.WriteString(opts.Title)
	b.WriteString("\n")

	for _, entry := range report.Commits {
		c := entry.Commit
		fmt.Fprintf(&b, "\n## %s %s\n\n%s, %s (%s)\n\n", c.ShortHash(), c.Message, c.Author, c.Date, relativeDate(c.Date, opts.Now))
		if len(entry.Changes) == 0 {
			b.WriteString("_No changes in range._\n")
			continue
		}
		b.WriteString("```diff\n")
		for _, change := range entry.Changes {
			if change.Kind == diff.Modified {
				fmt.Fprintf(&b, "- %5d %s\n", change.LineNumber, change.Previous)
				fmt.Fprintf(&b, "+ %5d %s\n", change.LineNumber, change.Content)
				continue
			}
			fmt.Fprintf(&b, "%s %5d %s\n", change.Kind.Symbol(), change.LineNumber, change.Content)
		}
		b.WriteString("```\n")
	}
	return b.String()
}

func renderANSI(report *diff.Report, opts Options) string {
	added := forced(color.FgGreen)
	removed := forced(color.FgRed)
	modified := forced(color.FgYellow)
	header := forced(color.FgCyan, color.Bold)
	meta := forced(color.FgHiBlack)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", opts.Title)

	dmp := diffmatchpatch.New()
	for _, entry := range report.Commits {
		c := entry.Commit
		fmt.Fprintf(&b, "\n%s %s\n", header.Sprint(c.ShortHash()), c.Message)
		fmt.Fprintf(&b, "%s\n", meta.Sprintf("│ %s, %s (%s)", c.Author, c.Date, relativeDate(c.Date, opts.Now)))
		if len(entry.Changes) == 0 {
			fmt.Fprintf(&b, "%s\n", meta.Sprint("│  (no changes in range)"))
			continue
		}
		for _, change := range entry.Changes {
			prefix := meta.Sprintf("│ %4d ", change.LineNumber)
			switch change.Kind {
			case diff.Added:
				fmt.Fprintf(&b, "%s%s\n", prefix, added.Sprint("+ "+change.Content))
			case diff.Removed:
				fmt.Fprintf(&b, "%s%s\n", prefix, removed.Sprint("- "+change.Content))
			case diff.Modified:
				var line strings.Builder
				for _, d := range inlineDiff(dmp, change) {
					switch d.Type {
					case diffmatchpatch.DiffInsert:
						line.WriteString(added.Sprint(d.Text))
					case diffmatchpatch.DiffDelete:
						line.WriteString(removed.Sprint(d.Text))
					default:
						line.WriteString(d.Text)
					}
				}
				fmt.Fprintf(&b, "%s%s %s\n", prefix, modified.Sprint("~"), line.String())
			}
		}
	}
	return b.String()
}

func renderTable(report *diff.Report, opts Options) string {
	t := table.NewWriter()
	t.SetTitle(opts.Title)
	t.AppendHeader(table.Row{"Commit", "Date", "When", "Author", "+", "-", "~", "Message"})
	for _, entry := range report.Commits {
		c := entry.Commit
		a, r, m := diff.Stats(entry.Changes)
		t.AppendRow(table.Row{c.ShortHash(), c.Date, relativeDate(c.Date, opts.Now), c.Author, a, r, m, c.Message})
	}
	t.SetStyle(table.StyleRounded)
	return t.Render()
}

func inlineDiff(dmp *diffmatchpatch.DiffMatchPatch, change diff.LineChange) []diffmatchpatch.Diff {
	diffs := dmp.DiffMain(change.Previous, change.Content, false)
	return dmp.DiffCleanupSemantic(diffs)
}

// forced returns a color that is applied even when stdout is not a
// terminal, since the rendered text may be written to a file or clipboard.
func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

func relativeDate(date string, now time.Time) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
