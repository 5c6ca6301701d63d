package config

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Config holds the application configuration
type Config struct {
	Theme        Theme
	ThemePreset  ThemePreset
	HighContrast bool
	Highlight    bool
	Spacing      SpacingOptions
	Keybindings  Keybindings
}

// ThemePreset describes a named theme configuration.
type ThemePreset string

const (
	PresetDefault  ThemePreset = "default"
	PresetSolarize ThemePreset = "solarized"
	PresetDracula  ThemePreset = "dracula"
)

// SpacingOptions controls layout spacing and line number formatting.
type SpacingOptions struct {
	LineNumberWidth int
	TabSize         int
}

// Keybindings maps semantic actions to one or more key sequences.
type Keybindings map[string][]string

// Actions understood by the viewer.
const (
	ActionQuit        = "quit"
	ActionPrevVersion = "prev_version"
	ActionNextVersion = "next_version"
	ActionScrollUp    = "scroll_up"
	ActionScrollDown  = "scroll_down"
	ActionPageUp      = "page_up"
	ActionPageDown    = "page_down"
	ActionGoTop       = "go_top"
	ActionGoBottom    = "go_bottom"
)

// Theme defines the color scheme for the application
type Theme struct {
	TitleFg      lipgloss.Color
	TitleBg      lipgloss.Color
	CommitFg     lipgloss.Color
	RuleFg       lipgloss.Color
	LineNumberFg lipgloss.Color
	MetaFg       lipgloss.Color
	ContentFg    lipgloss.Color
	HelpFg       lipgloss.Color
	HelpBg       lipgloss.Color
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ThemePreset:  PresetDefault,
		Theme:        ThemeForPreset(PresetDefault, false),
		HighContrast: false,
		Highlight:    true,
		Spacing:      DefaultSpacing(),
		Keybindings:  DefaultKeybindings(),
	}
}

// DefaultTheme returns the default color theme
func DefaultTheme() Theme {
	return Theme{
		TitleFg:      lipgloss.Color("#FFFFFF"),
		TitleBg:      lipgloss.Color("#00005F"),
		CommitFg:     lipgloss.Color("#B0B0B0"),
		RuleFg:       lipgloss.Color("#666666"),
		LineNumberFg: lipgloss.Color("#666666"),
		MetaFg:       lipgloss.Color("#808080"),
		ContentFg:    lipgloss.Color("#D0D0D0"),
		HelpFg:       lipgloss.Color("#FFFFFF"),
		HelpBg:       lipgloss.Color("#3A3A3A"),
	}
}

// ThemeForPreset resolves a preset name to a concrete Theme, optionally
// applying a high-contrast variation.
func ThemeForPreset(preset ThemePreset, highContrast bool) Theme {
	switch preset {
	case PresetSolarize:
		return applyContrast(Theme{
			TitleFg:      lipgloss.Color("#EEE8D5"),
			TitleBg:      lipgloss.Color("#073642"),
			CommitFg:     lipgloss.Color("#93A1A1"),
			RuleFg:       lipgloss.Color("#586E75"),
			LineNumberFg: lipgloss.Color("#586E75"),
			MetaFg:       lipgloss.Color("#657B83"),
			ContentFg:    lipgloss.Color("#93A1A1"),
			HelpFg:       lipgloss.Color("#EEE8D5"),
			HelpBg:       lipgloss.Color("#586E75"),
		}, highContrast)
	case PresetDracula:
		return applyContrast(Theme{
			TitleFg:      lipgloss.Color("#F8F8F2"),
			TitleBg:      lipgloss.Color("#44475A"),
			CommitFg:     lipgloss.Color("#BD93F9"),
			RuleFg:       lipgloss.Color("#6272A4"),
			LineNumberFg: lipgloss.Color("#6272A4"),
			MetaFg:       lipgloss.Color("#6272A4"),
			ContentFg:    lipgloss.Color("#F8F8F2"),
			HelpFg:       lipgloss.Color("#F8F8F2"),
			HelpBg:       lipgloss.Color("#44475A"),
		}, highContrast)
	default:
		return applyContrast(DefaultTheme(), highContrast)
	}
}

// DefaultSpacing returns the default layout spacing configuration.
func DefaultSpacing() SpacingOptions {
	return SpacingOptions{LineNumberWidth: 4, TabSize: 4}
}

// DefaultKeybindings returns the built-in keybinding map.
func DefaultKeybindings() Keybindings {
	return Keybindings{
		ActionQuit:        {"q", "ctrl+c"},
		ActionPrevVersion: {"left", "h"},
		ActionNextVersion: {"right", "l"},
		ActionScrollUp:    {"up", "k"},
		ActionScrollDown:  {"down", "j"},
		ActionPageUp:      {"pgup"},
		ActionPageDown:    {"pgdown"},
		ActionGoTop:       {"home", "g"},
		ActionGoBottom:    {"end", "G"},
	}
}

// MergeKeybindings overlays user overrides onto defaults.
func MergeKeybindings(overrides Keybindings) Keybindings {
	defaults := DefaultKeybindings()
	for action, keys := range overrides {
		if len(keys) == 0 {
			continue
		}
		defaults[action] = keys
	}
	return defaults
}

func applyContrast(theme Theme, highContrast bool) Theme {
	if !highContrast {
		return theme
	}

	return Theme{
		TitleFg:      lipgloss.Color(adjustBrightness(string(theme.TitleFg), 0.2)),
		TitleBg:      lipgloss.Color(adjustBrightness(string(theme.TitleBg), 0.2)),
		CommitFg:     lipgloss.Color(adjustBrightness(string(theme.CommitFg), 0.25)),
		RuleFg:       lipgloss.Color(adjustBrightness(string(theme.RuleFg), 0.2)),
		LineNumberFg: lipgloss.Color(adjustBrightness(string(theme.LineNumberFg), 0.2)),
		MetaFg:       lipgloss.Color(adjustBrightness(string(theme.MetaFg), 0.25)),
		ContentFg:    lipgloss.Color(adjustBrightness(string(theme.ContentFg), 0.15)),
		HelpFg:       lipgloss.Color(adjustBrightness(string(theme.HelpFg), 0.2)),
		HelpBg:       lipgloss.Color(adjustBrightness(string(theme.HelpBg), 0.2)),
	}
}

func adjustBrightness(hex string, factor float64) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}

	var r, g, b int
	_, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return hex
	}

	boost := func(value int) int {
		adjusted := float64(value) * (1 + factor)
		if adjusted > 255 {
			adjusted = 255
		}
		return int(adjusted)
	}

	return fmt.Sprintf("#%02x%02x%02x", boost(r), boost(g), boost(b))
}
