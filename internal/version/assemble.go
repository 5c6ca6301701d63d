// Package version rebuilds a file's content at each commit of its history.
package version

import (
	"context"
	"log/slog"

	"github.com/cj3636/garch/internal/history"
)

// FileVersion is the full content of a file at one commit, each line tagged
// with the commit that last changed it. Lines are ordered by line number.
type FileVersion struct {
	CommitHash    string
	CommitDate    string
	CommitMessage string
	Lines         []history.BlameLine
}

// ShortHash returns the first seven characters of the commit id.
func (v FileVersion) ShortHash() string {
	return history.CommitInfo{Hash: v.CommitHash}.ShortHash()
}

// MaxLine returns the highest line number in v, or 0 when v is empty.
func (v FileVersion) MaxLine() int {
	if len(v.Lines) == 0 {
		return 0
	}
	return v.Lines[len(v.Lines)-1].LineNumber
}

// Build loads the rename-following history of path and assembles one
// version per commit, newest first.
func Build(ctx context.Context, src history.Source, path string, styler history.Styler, logger *slog.Logger) ([]FileVersion, error) {
	text, err := src.FileHistory(ctx, path)
	if err != nil {
		return nil, err
	}
	return Assemble(ctx, src, path, history.ParseCommits(text), styler, logger), nil
}

// Assemble blames path at each commit, in order. Commits whose blame query
// fails are left out; the rest are returned in the order given.
func Assemble(ctx context.Context, src history.Source, path string, commits []history.CommitInfo, styler history.Styler, logger *slog.Logger) []FileVersion {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	versions := make([]FileVersion, 0, len(commits))
	for _, commit := range commits {
		text, err := src.BlameAt(ctx, commit.Hash, path)
		if err != nil {
			logger.Warn("skipping commit", "commit", commit.ShortHash(), "path", path, "error", err)
			continue
		}

		lines := history.ParseBlame(text, styler)
		history.SortLines(lines)

		versions = append(versions, FileVersion{
			CommitHash:    commit.Hash,
			CommitDate:    commit.Date,
			CommitMessage: commit.Message,
			Lines:         lines,
		})
	}

	logger.Debug("assembled versions", "path", path, "commits", len(commits), "versions", len(versions))
	return versions
}

// Reverse returns versions in the opposite order.
func Reverse(versions []FileVersion) []FileVersion {
	out := make([]FileVersion, len(versions))
	for i, v := range versions {
		out[len(versions)-1-i] = v
	}
	return out
}
