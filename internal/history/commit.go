// Package history queries git for a file's past and parses what comes back.
package history

import "strings"

// fieldSep separates the fields of a log record. It is also allowed inside
// the message, which is why everything past the third separator is kept.
const fieldSep = "|"

// CommitInfo describes one commit touching the traced file.
type CommitInfo struct {
	Hash    string
	Date    string
	Author  string
	Message string
}

// ShortHash returns the abbreviated form of the commit id.
func (c CommitInfo) ShortHash() string {
	return shortHash(c.Hash)
}

// ParseCommits turns `hash|date|author|message` records, one per line, into
// commits. Records with fewer than four fields are skipped. Output order
// matches input order.
func ParseCommits(text string) []CommitInfo {
	var commits []CommitInfo
	for _, line := range strings.Split(text, "\n") {
		commit, ok := parseCommitLine(strings.TrimRight(line, "\r"))
		if !ok {
			continue
		}
		commits = append(commits, commit)
	}
	return commits
}

func parseCommitLine(line string) (CommitInfo, bool) {
	parts := strings.Split(line, fieldSep)
	if len(parts) < 4 {
		return CommitInfo{}, false
	}
	return CommitInfo{
		Hash:    parts[0],
		Date:    parts[1],
		Author:  parts[2],
		Message: strings.Join(parts[3:], fieldSep),
	}, true
}

// ReverseCommits returns a reversed copy of commits.
func ReverseCommits(commits []CommitInfo) []CommitInfo {
	out := make([]CommitInfo, len(commits))
	for i, c := range commits {
		out[len(commits)-1-i] = c
	}
	return out
}

func shortHash(hash string) string {
	if len(hash) <= 7 {
		return hash
	}
	return hash[:7]
}
