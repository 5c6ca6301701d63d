// Package highlight styles single lines of source code for the terminal.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Theme is the chroma style used for every file.
const Theme = "monokai"

// Highlighter holds the lexer, style and formatter chosen for one file. It
// is built once per history load and shared by every line of every version.
type Highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// New picks a grammar from filename's extension, falling back to plain
// text when none matches.
func New(filename string) *Highlighter {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := styles.Get(Theme)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	return &Highlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     style,
		formatter: formatter,
	}
}

// Language reports the name of the selected grammar.
func (h *Highlighter) Language() string {
	return h.lexer.Config().Name
}

// Style returns content with terminal color sequences applied. On any
// tokenizer or formatter failure the content is returned unchanged.
func (h *Highlighter) Style(content string) string {
	iterator, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return content
	}

	// Lexers append a newline to single-line input; drop it.
	return strings.ReplaceAll(b.String(), "\n", "")
}
