package main

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/fivemoreminix/qsyntax/pkg/syntax"
	"github.com/fivemoreminix/qsyntax/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is read from a YAML file. Missing keys keep their defaults.
type Config struct {
	TabSize     int                    `yaml:"tabSize"`
	HardTabs    bool                   `yaml:"hardTabs"`
	LineNumbers bool                   `yaml:"lineNumbers"`
	Colorscheme map[string]StyleConfig `yaml:"colorscheme"` // Keyed by text style name, e.g. "Keyword"
}

// StyleConfig overrides the default colorscheme entry of one text style.
// Colors are names or hex codes as understood by tcell.GetColor.
type StyleConfig struct {
	Fg        string `yaml:"fg"`
	Bg        string `yaml:"bg"`
	Bold      bool   `yaml:"bold"`
	Italic    bool   `yaml:"italic"`
	Underline bool   `yaml:"underline"`
}

func defaultConfig() Config {
	return Config{TabSize: 4, HardTabs: true, LineNumbers: true}
}

// defaultConfigPath is $XDG_CONFIG_HOME/qsyntax/config.yaml, or the
// platform's equivalent.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "qsyntax", "config.yaml")
}

// loadConfig reads the config at path. A missing file is only an error if
// the path was given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	if cfg.TabSize < 1 {
		return cfg, errors.Errorf("config %s: tabSize must be at least 1, got %d", path, cfg.TabSize)
	}
	return cfg, nil
}

// buildColorscheme applies the configured overrides on top of the default
// colorscheme.
func (c Config) buildColorscheme() (buffer.Colorscheme, error) {
	colorscheme := buffer.DefaultColorscheme()

	names := make([]string, 0, len(c.Colorscheme))
	for name := range c.Colorscheme {
		names = append(names, name)
	}
	sort.Strings(names) // Report the same error on every run

	for _, name := range names {
		textStyle, ok := syntax.ParseTextStyle(name)
		if !ok {
			return nil, errors.Errorf("colorscheme: unknown text style %q", name)
		}
		style, err := c.Colorscheme[name].apply(colorscheme.GetStyle(textStyle))
		if err != nil {
			return nil, errors.Wrapf(err, "colorscheme: %s", name)
		}
		colorscheme[textStyle] = style
	}
	return colorscheme, nil
}

func (s StyleConfig) apply(style tcell.Style) (tcell.Style, error) {
	if s.Fg != "" {
		color, err := parseColor(s.Fg)
		if err != nil {
			return style, err
		}
		style = style.Foreground(color)
	}
	if s.Bg != "" {
		color, err := parseColor(s.Bg)
		if err != nil {
			return style, err
		}
		style = style.Background(color)
	}
	return style.Bold(s.Bold).Italic(s.Italic).Underline(s.Underline), nil
}

func parseColor(name string) (tcell.Color, error) {
	color := tcell.GetColor(name)
	if color == tcell.ColorDefault && name != "default" {
		return color, errors.Errorf("invalid color %q", name)
	}
	return color, nil
}
