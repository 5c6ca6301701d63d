// Package config holds the viewer's theme, layout and key bindings and
// loads user overrides from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	ErrInvalidLineNumberWidth = errors.New("line number width must be between 1 and 12")
	ErrInvalidTabSize         = errors.New("tab size must be between 1 and 16")
	ErrUnknownAction          = errors.New("unknown keybinding action")
	ErrUnknownPreset          = errors.New("unknown theme preset")
)

const envPrefix = "GARCH"

// fileConfig mirrors the YAML layout of the config file.
type fileConfig struct {
	Theme           string              `mapstructure:"theme"`
	HighContrast    bool                `mapstructure:"high_contrast"`
	Highlight       bool                `mapstructure:"highlight"`
	LineNumberWidth int                 `mapstructure:"line_number_width"`
	TabSize         int                 `mapstructure:"tab_size"`
	Keys            map[string][]string `mapstructure:"keys"`
}

// DefaultPath returns $XDG_CONFIG_HOME/garch/config.yaml, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "garch", "config.yaml")
}

// Load reads configuration from path. An empty path means DefaultPath; a
// missing default file is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg, err := fromFile(fc)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("theme", string(def.ThemePreset))
	v.SetDefault("high_contrast", def.HighContrast)
	v.SetDefault("highlight", def.Highlight)
	v.SetDefault("line_number_width", def.Spacing.LineNumberWidth)
	v.SetDefault("tab_size", def.Spacing.TabSize)
}

func fromFile(fc fileConfig) (*Config, error) {
	preset := ThemePreset(strings.ToLower(fc.Theme))
	switch preset {
	case PresetDefault, PresetSolarize, PresetDracula:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, fc.Theme)
	}

	if fc.LineNumberWidth < 1 || fc.LineNumberWidth > 12 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLineNumberWidth, fc.LineNumberWidth)
	}

	if fc.TabSize < 1 || fc.TabSize > 16 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTabSize, fc.TabSize)
	}

	defaults := DefaultKeybindings()
	for action := range fc.Keys {
		if _, ok := defaults[action]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
		}
	}

	cfg := DefaultConfig()
	cfg.ThemePreset = preset
	cfg.HighContrast = fc.HighContrast
	cfg.Theme = ThemeForPreset(preset, fc.HighContrast)
	cfg.Highlight = fc.Highlight
	cfg.Spacing.LineNumberWidth = fc.LineNumberWidth
	cfg.Spacing.TabSize = fc.TabSize
	cfg.Keybindings = MergeKeybindings(fc.Keys)
	return cfg, nil
}
