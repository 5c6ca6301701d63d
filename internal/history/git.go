package history

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// Unbounded marks a line window with no upper limit.
const Unbounded = math.MaxInt

const (
	logFormat  = "--pretty=format:%H|%ad|%an|%s"
	dateFormat = "--date=short"
)

// Source answers the four history queries the viewer and report need.
// Each call returns raw text or an error; it never returns silently empty
// output for a failed query.
type Source interface {
	LineHistory(ctx context.Context, path string, start, end int) (string, error)
	FileHistory(ctx context.Context, path string) (string, error)
	BlameAt(ctx context.Context, rev, path string) (string, error)
	DiffAt(ctx context.Context, rev, path string, start, end int) (string, error)
}

// Git implements Source on top of the git command line.
type Git struct {
	runner Runner
	dir    string
}

// NewGit returns a Source that runs queries through runner inside dir.
func NewGit(runner Runner, dir string) *Git {
	return &Git{runner: runner, dir: dir}
}

// LineHistory lists commits touching lines start..end of path, newest first.
// An unbounded window falls back to the whole-file history.
func (g *Git) LineHistory(ctx context.Context, path string, start, end int) (string, error) {
	if end == Unbounded {
		return g.FileHistory(ctx, path)
	}
	return g.query(ctx, "log", "-L", lineRange(start, end)+":"+path, logFormat, dateFormat)
}

// FileHistory lists commits touching path, following renames, newest first.
func (g *Git) FileHistory(ctx context.Context, path string) (string, error) {
	return g.query(ctx, "log", "--follow", logFormat, dateFormat, "--", path)
}

// BlameAt returns line-porcelain blame output for path at rev.
func (g *Git) BlameAt(ctx context.Context, rev, path string) (string, error) {
	return g.query(ctx, "blame", "--line-porcelain", rev, "--", path)
}

// DiffAt returns the unified diff rev introduced to lines start..end of path.
func (g *Git) DiffAt(ctx context.Context, rev, path string, start, end int) (string, error) {
	return g.query(ctx, "show", rev, "-L", lineRange(start, end)+":"+path)
}

func (g *Git) query(ctx context.Context, args ...string) (string, error) {
	out, err := g.runner.Run(ctx, g.dir, args...)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("git %s: %w", args[0], ErrDecode)
	}
	return string(out), nil
}

// lineRange leaves the end open for an unbounded window so git reads to
// the end of the file.
func lineRange(start, end int) string {
	if end == Unbounded {
		return strconv.Itoa(start) + ","
	}
	return strconv.Itoa(start) + "," + strconv.Itoa(end)
}
