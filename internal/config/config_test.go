package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cj3636/garch/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)

	def := config.DefaultConfig()
	assert.Equal(t, def.ThemePreset, cfg.ThemePreset)
	assert.Equal(t, def.Theme, cfg.Theme)
	assert.True(t, cfg.Highlight)
	assert.Equal(t, 4, cfg.Spacing.LineNumberWidth)
	assert.Equal(t, 4, cfg.Spacing.TabSize)
	assert.Equal(t, config.DefaultKeybindings(), cfg.Keybindings)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
theme: dracula
highlight: false
line_number_width: 6
keys:
  quit: ["x"]
  next_version: ["n", "right"]
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.PresetDracula, cfg.ThemePreset)
	assert.Equal(t, config.ThemeForPreset(config.PresetDracula, false), cfg.Theme)
	assert.False(t, cfg.Highlight)
	assert.Equal(t, 6, cfg.Spacing.LineNumberWidth)
	assert.Equal(t, []string{"x"}, cfg.Keybindings[config.ActionQuit])
	assert.Equal(t, []string{"n", "right"}, cfg.Keybindings[config.ActionNextVersion])
	assert.Equal(t, []string{"left", "h"}, cfg.Keybindings[config.ActionPrevVersion])
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("GARCH_HIGHLIGHT", "false")

	cfg, err := config.Load(writeConfig(t, "highlight: true\n"))
	require.NoError(t, err)

	assert.False(t, cfg.Highlight)
}

func TestLoad_Validation(t *testing.T) {
	tests := map[string]struct {
		body string
		want error
	}{
		"unknown action": {body: "keys:\n  explode: [\"e\"]\n", want: config.ErrUnknownAction},
		"bad width":      {body: "line_number_width: 0\n", want: config.ErrInvalidLineNumberWidth},
		"bad preset":     {body: "theme: neon\n", want: config.ErrUnknownPreset},
		"bad tab size":   {body: "tab_size: 40\n", want: config.ErrInvalidTabSize},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.PresetDefault, cfg.ThemePreset)
}

func TestMergeKeybindings_IgnoresEmptyOverrides(t *testing.T) {
	merged := config.MergeKeybindings(config.Keybindings{
		config.ActionQuit:     {},
		config.ActionGoBottom: {"E"},
	})

	assert.Equal(t, []string{"q", "ctrl+c"}, merged[config.ActionQuit])
	assert.Equal(t, []string{"E"}, merged[config.ActionGoBottom])
}

func TestThemeForPreset_HighContrastBrightens(t *testing.T) {
	base := config.ThemeForPreset(config.PresetDefault, false)
	bright := config.ThemeForPreset(config.PresetDefault, true)

	assert.Equal(t, lipgloss.Color("#7a7a7a"), bright.RuleFg)
	assert.Equal(t, lipgloss.Color("#666666"), base.RuleFg)
	assert.Equal(t, lipgloss.Color("#ffffff"), bright.TitleFg)
}
