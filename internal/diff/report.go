package diff

import (
	"context"
	"log/slog"

	"github.com/cj3636/garch/internal/history"
)

// CommitChanges is the set of changes one commit made to the traced lines.
type CommitChanges struct {
	Commit  history.CommitInfo
	Changes []LineChange
}

// Report lists, per commit, how a line window of a file changed.
type Report struct {
	Path    string
	Start   int
	End     int
	Commits []CommitChanges
}

// BuildReport runs one diff query per commit and classifies the result.
// A commit whose diff query fails is kept with no changes.
func BuildReport(ctx context.Context, src history.Source, engine *Engine, path string, start, end int, commits []history.CommitInfo, logger *slog.Logger) *Report {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	report := &Report{Path: path, Start: start, End: end}
	for _, commit := range commits {
		entry := CommitChanges{Commit: commit}

		text, err := src.DiffAt(ctx, commit.Hash, path, start, end)
		if err != nil {
			logger.Warn("diff query failed", "commit", commit.ShortHash(), "error", err)
		} else {
			entry.Changes = engine.Classify(ParseChanges(text))
		}

		report.Commits = append(report.Commits, entry)
	}
	return report
}
