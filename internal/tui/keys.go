package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/cj3636/garch/internal/config"
)

type keyMap struct {
	Quit        key.Binding
	PrevVersion key.Binding
	NextVersion key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	GoTop       key.Binding
	GoBottom    key.Binding
}

var keyGlyphs = map[string]string{
	"left":  "←",
	"right": "→",
	"up":    "↑",
	"down":  "↓",
}

func newKeyMap(bindings config.Keybindings) keyMap {
	bind := func(action, desc string) key.Binding {
		keys := bindings[action]
		labels := make([]string, 0, len(keys))
		for _, k := range keys {
			if glyph, ok := keyGlyphs[k]; ok {
				k = glyph
			}
			labels = append(labels, k)
		}
		return key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(labels, "/"), desc),
		)
	}

	return keyMap{
		Quit:        bind(config.ActionQuit, "quit"),
		PrevVersion: bind(config.ActionPrevVersion, "prev"),
		NextVersion: bind(config.ActionNextVersion, "next"),
		ScrollUp:    bind(config.ActionScrollUp, "up"),
		ScrollDown:  bind(config.ActionScrollDown, "down"),
		PageUp:      bind(config.ActionPageUp, "half page up"),
		PageDown:    bind(config.ActionPageDown, "half page down"),
		GoTop:       bind(config.ActionGoTop, "top"),
		GoBottom:    bind(config.ActionGoBottom, "bottom"),
	}
}

// ShortHelp is rendered in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevVersion, k.NextVersion, k.ScrollUp, k.ScrollDown, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevVersion, k.NextVersion},
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		{k.GoTop, k.GoBottom, k.Quit},
	}
}
