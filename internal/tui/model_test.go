package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cj3636/garch/internal/config"
	"github.com/cj3636/garch/internal/history"
	"github.com/cj3636/garch/internal/version"
)

func fileVersion(hash, date, msg string, lines int, author string) version.FileVersion {
	v := version.FileVersion{CommitHash: hash, CommitDate: date, CommitMessage: msg}
	for i := 1; i <= lines; i++ {
		v.Lines = append(v.Lines, history.BlameLine{
			LineNumber: i,
			Author:     author,
			Date:       date,
			CommitHash: hash[:7],
			Summary:    msg,
			Content:    fmt.Sprintf("line %d", i),
		})
	}
	return v
}

func newTestModel(t *testing.T, session Session, height int) Model {
	t.Helper()
	m := NewModel(session, config.DefaultConfig())
	return send(t, m, tea.WindowSizeMsg{Width: 80, Height: height})
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func twoVersions() Session {
	return Session{
		Path:  "a.go",
		Start: 1,
		End:   history.Unbounded,
		Versions: []version.FileVersion{
			fileVersion("aaaaaaa111", "2024-01-01", "first", 30, "Jane D."),
			fileVersion("bbbbbbb222", "2024-02-01", "second", 12, "Bob S."),
		},
	}
}

func TestModel_ContentHeight(t *testing.T) {
	m := newTestModel(t, twoVersions(), 14)

	assert.Equal(t, 10, m.viewport.height)
	assert.True(t, m.ready)
}

func TestModel_EndJumpsToLastPage(t *testing.T) {
	m := newTestModel(t, twoVersions(), 14)

	m = send(t, m, keyOf(tea.KeyEnd))
	assert.Equal(t, 21, m.viewport.offset, "author header plus nine rows fill the body")

	m = send(t, m, keyOf(tea.KeyDown))
	assert.Equal(t, 21, m.viewport.offset, "cannot scroll past the last page")

	m = send(t, m, keyOf(tea.KeyHome))
	assert.Equal(t, 0, m.viewport.offset)
}

func TestModel_EndOnShortContent(t *testing.T) {
	session := twoVersions()
	session.Versions = session.Versions[1:]
	session.Versions[0].Lines = session.Versions[0].Lines[:4]
	m := newTestModel(t, session, 14)

	m = send(t, m, keyOf(tea.KeyEnd))

	assert.Equal(t, 0, m.viewport.offset)
}

func TestModel_ScrollKeys(t *testing.T) {
	m := newTestModel(t, twoVersions(), 14)

	m = send(t, m, keyOf(tea.KeyUp))
	assert.Equal(t, 0, m.viewport.offset, "cannot scroll above the top")

	m = send(t, m, keyOf(tea.KeyDown), keyOf(tea.KeyDown))
	assert.Equal(t, 2, m.viewport.offset)

	m = send(t, m, keyOf(tea.KeyPgDown))
	assert.Equal(t, 7, m.viewport.offset)

	m = send(t, m, keyOf(tea.KeyPgUp), keyOf(tea.KeyPgUp))
	assert.Equal(t, 0, m.viewport.offset)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, 21, m.viewport.offset)
}

func TestModel_MouseWheel(t *testing.T) {
	m := newTestModel(t, twoVersions(), 14)
	down := tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}
	up := tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}

	m = send(t, m, down)
	assert.Equal(t, 3, m.viewport.offset)

	m = send(t, m, down, down, down, down, down, down, down)
	assert.Equal(t, 21, m.viewport.offset)

	m = send(t, m, up)
	assert.Equal(t, 18, m.viewport.offset)
}

func TestModel_VersionSwitchKeepsFocusedLine(t *testing.T) {
	m := newTestModel(t, twoVersions(), 14)
	m = send(t, m, keyOf(tea.KeyPgDown), keyOf(tea.KeyPgDown))
	require.Equal(t, 10, m.viewport.offset)

	m = send(t, m, keyOf(tea.KeyRight))
	assert.Equal(t, 1, m.current)
	assert.True(t, m.anchored)
	assert.Equal(t, 16, m.anchor, "middle row of the old view")
	assert.Equal(t, 3, m.viewport.offset, "nearest row 12 centered then clamped")

	m = send(t, m, keyOf(tea.KeyRight))
	assert.Equal(t, 1, m.current, "no-op at the newest version")
	assert.Equal(t, 16, m.anchor)

	m = send(t, m, keyOf(tea.KeyLeft))
	assert.Equal(t, 0, m.current)
	assert.Equal(t, 8, m.anchor, "re-captured from the view being left")
	assert.Equal(t, 2, m.viewport.offset, "line 8 centered")

	m = send(t, m, keyOf(tea.KeyDown))
	assert.False(t, m.anchored, "manual scroll clears the anchor")
	assert.Equal(t, 3, m.viewport.offset)
}

func TestModel_EverySwitchFollowsTheCurrentView(t *testing.T) {
	session := twoVersions()
	session.Versions = append(session.Versions, fileVersion("ccccccc333", "2024-03-01", "third", 30, "Cher"))
	m := newTestModel(t, session, 14)
	m = send(t, m, keyOf(tea.KeyPgDown), keyOf(tea.KeyPgDown))

	m = send(t, m, keyOf(tea.KeyRight))
	require.Equal(t, 16, m.anchor)
	require.Equal(t, 3, m.viewport.offset)

	m = send(t, m, keyOf(tea.KeyRight))

	assert.Equal(t, 2, m.current)
	assert.Equal(t, 8, m.anchor, "focused line of the twelve-line version")
	assert.Equal(t, 2, m.viewport.offset)
}

func TestModel_LeftAtOldestIsNoop(t *testing.T) {
	m := newTestModel(t, twoVersions(), 14)
	m = send(t, m, keyOf(tea.KeyDown))

	m = send(t, m, keyOf(tea.KeyLeft))

	assert.Equal(t, 0, m.current)
	assert.False(t, m.anchored)
	assert.Equal(t, 1, m.viewport.offset)
}

func TestModel_ResizeReResolvesAnchor(t *testing.T) {
	m := newTestModel(t, twoVersions(), 14)
	m = send(t, m, keyOf(tea.KeyPgDown), keyOf(tea.KeyPgDown), keyOf(tea.KeyLeft))
	m = send(t, m, keyOf(tea.KeyRight))
	require.True(t, m.anchored)

	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 8})

	assert.Equal(t, 4, m.viewport.height)
	assert.Equal(t, 9, m.viewport.offset, "header plus rows 10-12 in a four-row viewport")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, twoVersions(), 14)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_CustomKeybindings(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings = config.MergeKeybindings(config.Keybindings{config.ActionNextVersion: {"n"}})
	m := send(t, NewModel(twoVersions(), cfg), tea.WindowSizeMsg{Width: 80, Height: 14})

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	assert.Equal(t, 1, m.current)
}

func TestModel_ViewLayout(t *testing.T) {
	m := newTestModel(t, twoVersions(), 14)

	view := ansi.Strip(m.View())
	lines := strings.Split(view, "\n")

	require.Len(t, lines, 14)
	assert.Contains(t, lines[0], "a.go (commit 1 of 2) - 2024-01-01")
	assert.Contains(t, lines[1], "Commit: aaaaaaa - first")
	assert.Contains(t, lines[2], "───")
	assert.Contains(t, lines[3], "┌─ Jane D.")
	assert.Contains(t, lines[3], "(2024-01-01) aaaaaaa first")
	assert.Contains(t, lines[4], "│    1 │ line 1")
	assert.Contains(t, lines[12], "│    9 │ line 9")
	assert.Contains(t, lines[13], "quit")
}

func TestModel_EndShowsLastLine(t *testing.T) {
	m := newTestModel(t, twoVersions(), 14)

	m = send(t, m, keyOf(tea.KeyEnd))
	lines := strings.Split(ansi.Strip(m.View()), "\n")

	require.Len(t, lines, 14)
	assert.Contains(t, lines[3], "┌─ Jane D.")
	assert.Contains(t, lines[4], "│   22 │ line 22")
	assert.Contains(t, lines[12], "│   30 │ line 30")
}

func TestModel_EndShowsLastLineWithHeadersAndWraps(t *testing.T) {
	v := fileVersion("aaaaaaa111", "2024-01-01", "first", 30, "Jane D.")
	for i := 24; i < 28; i++ {
		v.Lines[i].Author = "Bob S."
	}
	v.Lines[29].Content = strings.Repeat("word ", 30)
	m := newTestModel(t, Session{Path: "a.go", Start: 1, End: history.Unbounded, Versions: []version.FileVersion{v}}, 14)

	m = send(t, m, keyOf(tea.KeyEnd))
	body := m.renderBody()

	require.Len(t, body, m.viewport.height)
	assert.Contains(t, ansi.Strip(strings.Join(body, "\n")), "│   30 │ word")
	assert.Contains(t, ansi.Strip(body[len(body)-1]), "│      │ ", "last wrapped line drawn")

	m = send(t, m, keyOf(tea.KeyDown))
	assert.Contains(t, ansi.Strip(strings.Join(m.renderBody(), "\n")), "│   30 │ word", "scrolling cannot pass the bottom")
}

func TestModel_ViewAuthorBlocks(t *testing.T) {
	v := fileVersion("aaaaaaa111", "2024-01-01", "first", 4, "Jane D.")
	v.Lines[2].Author = "Bob S."
	m := newTestModel(t, Session{Path: "a.go", Start: 1, End: history.Unbounded, Versions: []version.FileVersion{v}}, 14)

	body := m.renderBody()

	var headers []string
	for _, line := range body {
		if strings.Contains(line, "┌─") {
			headers = append(headers, ansi.Strip(line))
		}
	}
	require.Len(t, headers, 3)
	assert.Contains(t, headers[0], "Jane D.")
	assert.Contains(t, headers[1], "Bob S.")
	assert.Contains(t, headers[2], "Jane D.")
}

func TestModel_ViewWrapsLongPlainLines(t *testing.T) {
	v := fileVersion("aaaaaaa111", "2024-01-01", "first", 1, "Jane D.")
	v.Lines[0].Content = strings.Repeat("word ", 30)
	m := newTestModel(t, Session{Path: "a.go", Start: 1, End: history.Unbounded, Versions: []version.FileVersion{v}}, 14)

	body := m.renderBody()

	require.Greater(t, len(body), 2)
	assert.Contains(t, ansi.Strip(body[2]), "│      │ ", "continuation gutter")
	for _, line := range body {
		assert.LessOrEqual(t, ansi.StringWidth(line), 80)
	}
}

func TestModel_ViewEmptyWindow(t *testing.T) {
	session := twoVersions()
	session.Start, session.End = 20, 25
	m := newTestModel(t, session, 14)
	m = send(t, m, keyOf(tea.KeyRight))

	view := ansi.Strip(m.View())

	assert.Contains(t, view, "Lines 20-25 are past the end of the file at this revision.")
	assert.Contains(t, view, "commit 2 of 2")
}

func TestModel_CommitLineTruncated(t *testing.T) {
	session := twoVersions()
	session.Versions[0].CommitMessage = strings.Repeat("long message ", 20)
	m := newTestModel(t, session, 14)

	line := ansi.Strip(m.renderCommit())

	assert.Equal(t, 80, ansi.StringWidth(line))
	assert.True(t, strings.HasSuffix(line, ellipsis))
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := NewModel(twoVersions(), nil)

	assert.Equal(t, "Loading...\n", m.View())
	assert.Nil(t, m.Init())
}
