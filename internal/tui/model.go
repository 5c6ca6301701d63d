package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/cj3636/garch/internal/config"
	"github.com/cj3636/garch/internal/history"
)

// Model represents the application state
type Model struct {
	session  Session
	rows     [][]history.BlameLine
	config   *config.Config
	styles   *Styles
	keys     keyMap
	help     help.Model
	current  int
	viewport Viewport
	// anchor is the line number kept in view across version switches.
	// It is only meaningful while anchored is set.
	anchor   int
	anchored bool
	width    int
	height   int
	ready    bool
}

// Styles holds all the lipgloss styles
type Styles struct {
	title      lipgloss.Style
	commit     lipgloss.Style
	rule       lipgloss.Style
	lineNumber lipgloss.Style
	meta       lipgloss.Style
	content    lipgloss.Style
	statusBar  lipgloss.Style
}

// NewModel creates a new TUI model showing the first version of session.
func NewModel(session Session, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	h := help.New()
	h.ShortSeparator = " • "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(cfg.Theme.HelpFg).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(cfg.Theme.HelpFg)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(cfg.Theme.HelpFg)

	return Model{
		session:  session,
		rows:     session.filteredRows(),
		config:   cfg,
		styles:   createStyles(cfg.Theme),
		keys:     newKeyMap(cfg.Keybindings),
		help:     h,
		viewport: Viewport{offset: 0, height: contentHeight(24)},
	}
}

// createStyles initializes all lipgloss styles based on theme
func createStyles(theme config.Theme) *Styles {
	return &Styles{
		title: lipgloss.NewStyle().
			Foreground(theme.TitleFg).
			Background(theme.TitleBg).
			Bold(true),
		commit: lipgloss.NewStyle().
			Foreground(theme.CommitFg),
		rule: lipgloss.NewStyle().
			Foreground(theme.RuleFg),
		lineNumber: lipgloss.NewStyle().
			Foreground(theme.LineNumberFg),
		meta: lipgloss.NewStyle().
			Foreground(theme.MetaFg),
		content: lipgloss.NewStyle().
			Foreground(theme.ContentFg),
		statusBar: lipgloss.NewStyle().
			Foreground(theme.HelpFg).
			Background(theme.HelpBg),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevVersion):
			m.switchVersion(-1)
		case key.Matches(msg, m.keys.NextVersion):
			m.switchVersion(1)
		case key.Matches(msg, m.keys.ScrollUp):
			m.scroll(-1)
		case key.Matches(msg, m.keys.ScrollDown):
			m.scroll(1)
		case key.Matches(msg, m.keys.PageUp):
			m.scroll(-m.viewport.halfPage())
		case key.Matches(msg, m.keys.PageDown):
			m.scroll(m.viewport.halfPage())
		case key.Matches(msg, m.keys.GoTop):
			m.anchored = false
			m.viewport.toTop()
		case key.Matches(msg, m.keys.GoBottom):
			m.anchored = false
			m.viewport.toBottom(m.bottomOffset())
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(-wheelStep)
		case tea.MouseButtonWheelDown:
			m.scroll(wheelStep)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.height = contentHeight(msg.Height)
		m.help.Width = msg.Width
		m.ready = true
		m.sync()
	}

	return m, nil
}

// switchVersion moves delta versions away and re-arms the anchor from the
// line focused in the view being left.
func (m *Model) switchVersion(delta int) {
	next := m.current + delta
	if next < 0 || next >= len(m.session.Versions) {
		return
	}

	if line, ok := FocusLine(m.currentRows(), m.viewport.offset, m.viewport.height); ok {
		m.anchor = line
		m.anchored = true
	}

	m.current = next
	m.sync()
}

// scroll is a manual movement; it drops any anchor.
func (m *Model) scroll(delta int) {
	m.anchored = false
	m.viewport.scrollBy(delta, m.bottomOffset())
}

// sync re-derives the scroll offset after the version or the terminal
// size changed.
func (m *Model) sync() {
	bottom := m.bottomOffset()
	if m.anchored {
		m.viewport.offset = anchorOffset(m.currentRows(), m.anchor, m.viewport.height, bottom)
		return
	}
	m.viewport.offset = clampOffset(m.viewport.offset, bottom)
}

// bottomOffset is the largest offset at which the last row is still drawn,
// counting the author headers and wrapped lines the body spends.
func (m Model) bottomOffset() int {
	rows := m.currentRows()
	used := 0
	for i := len(rows) - 1; i >= 0; i-- {
		used += len(m.renderContent(rows[i]))
		if i < len(rows)-1 && rows[i+1].Author != rows[i].Author {
			used++
		}
		// The top visible row always carries a header.
		if used+1 > m.viewport.height {
			return min(i+1, len(rows)-1)
		}
	}
	return 0
}

func (m Model) contentWidth() int {
	return max(1, m.width-m.gutterWidth())
}

func (m Model) gutterWidth() int {
	return m.config.Spacing.LineNumberWidth + 5
}

// renderContent splits one row's text into the screen lines it occupies.
func (m Model) renderContent(row history.BlameLine) []string {
	tab := strings.Repeat(" ", max(1, m.config.Spacing.TabSize))
	text := strings.ReplaceAll(row.Display(), "\t", tab)
	return rendererFor(row).Render(text, m.contentWidth())
}

func (m Model) currentRows() []history.BlameLine {
	if m.current < 0 || m.current >= len(m.rows) {
		return nil
	}
	return m.rows[m.current]
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading...\n"
	}
	if len(m.session.Versions) == 0 {
		return "No history to display\n"
	}

	sections := []string{
		m.renderTitle(),
		m.renderCommit(),
		m.styles.rule.Render(strings.Repeat("─", max(0, m.width))),
	}

	body := m.renderBody()
	for len(body) < m.viewport.height {
		body = append(body, "")
	}
	sections = append(sections, body...)
	sections = append(sections, m.renderStatusBar())

	return strings.Join(sections, "\n")
}

// renderTitle renders the title bar
func (m Model) renderTitle() string {
	v := m.session.Versions[m.current]
	title := fmt.Sprintf("%s (commit %d of %d) - %s", m.session.Path, m.current+1, len(m.session.Versions), v.CommitDate)
	return m.styles.title.Width(m.width).Render(truncate(title, m.width))
}

func (m Model) renderCommit() string {
	v := m.session.Versions[m.current]
	line := fmt.Sprintf("Commit: %s - %s", v.ShortHash(), v.CommitMessage)
	return m.styles.commit.Render(truncate(line, m.width))
}

// renderBody lays out up to viewport.height screen lines starting at the
// current offset, inserting an author header wherever the author changes.
func (m Model) renderBody() []string {
	rows := m.currentRows()
	if len(rows) == 0 {
		start, end := m.session.window()
		msg := fmt.Sprintf("Line %d is past the end of the file at this revision.", start)
		if end != history.Unbounded && end != start {
			msg = fmt.Sprintf("Lines %d-%d are past the end of the file at this revision.", start, end)
		}
		return []string{m.styles.meta.Render(truncate(msg, m.width))}
	}

	numWidth := m.config.Spacing.LineNumberWidth
	continuation := m.styles.lineNumber.Render("│ " + strings.Repeat(" ", numWidth) + " │ ")

	var out []string
	end := min(m.viewport.offset+m.viewport.height, len(rows))
	for i := m.viewport.offset; i < end && len(out) < m.viewport.height; i++ {
		row := rows[i]
		if i == m.viewport.offset || row.Author != rows[i-1].Author {
			out = append(out, m.renderAuthorHeader(row))
		}

		gutter := m.styles.lineNumber.Render(fmt.Sprintf("│ %*d │ ", numWidth, row.LineNumber))
		for j, chunk := range m.renderContent(row) {
			if !row.IsStyled() {
				chunk = m.styles.content.Render(chunk)
			}
			if j == 0 {
				out = append(out, gutter+chunk)
			} else {
				out = append(out, continuation+chunk)
			}
		}
	}

	if len(out) > m.viewport.height {
		out = out[:m.viewport.height]
	}
	return out
}

func (m Model) renderAuthorHeader(row history.BlameLine) string {
	author := lipgloss.NewStyle().Foreground(AuthorColor(row.Author)).Bold(true)
	header := author.Render("┌─ "+row.Author) + " " +
		m.styles.meta.Render(fmt.Sprintf("(%s) %s %s", row.Date, row.CommitHash, row.Summary))
	return ansi.Truncate(header, max(0, m.width), ellipsis)
}

// renderStatusBar renders the key hints footer
func (m Model) renderStatusBar() string {
	hints := m.help.ShortHelpView(m.keys.ShortHelp())
	return m.styles.statusBar.Width(m.width).Render(ansi.Truncate(hints, max(0, m.width), ellipsis))
}
