package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Theme is the persisted color preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme maps anything other than "dark" to light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

type state struct {
	Theme string `yaml:"theme"`
}

// StatePath returns ~/.config/krb-tui/state.yaml.
func StatePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.yaml"), nil
}

// LoadTheme reads the theme from path. A missing or unreadable file yields light.
func LoadTheme(path string) Theme {
	if path == "" {
		return ThemeLight
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ThemeLight
	}
	var s state
	if err := yaml.Unmarshal(data, &s); err != nil {
		return ThemeLight
	}
	return ParseTheme(s.Theme)
}

// SaveTheme writes the theme to path, creating its directory.
func SaveTheme(path string, t Theme) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(state{Theme: string(t)})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
