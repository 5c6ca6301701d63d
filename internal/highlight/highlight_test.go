package highlight

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/cj3636/garch/internal/history"
)

var _ history.Styler = (*Highlighter)(nil)

func TestNew_SelectsGrammarByExtension(t *testing.T) {
	assert.Equal(t, "Go", New("internal/engine.go").Language())
	assert.Equal(t, "Python", New("script.py").Language())
}

func TestNew_FallsBackToPlainText(t *testing.T) {
	assert.Equal(t, "plaintext", New("NOTES.unknownext").Language())
}

func TestStyle_PreservesText(t *testing.T) {
	h := New("main.go")
	line := `func main() { fmt.Println("hi") }`

	styled := h.Style(line)

	assert.NotEqual(t, line, styled, "go source should be colored")
	assert.Equal(t, line, ansi.Strip(styled))
}

func TestStyle_EmptyLine(t *testing.T) {
	h := New("main.go")

	assert.Equal(t, "", ansi.Strip(h.Style("")))
}
