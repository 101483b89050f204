// Package prefs handles darkroom user preferences persistence.
// Preferences are stored in ~/.config/darkroom/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for darkroom.
type Prefs struct {
	Theme          string `toml:"theme"`
	ConfirmDeletes bool   `toml:"confirm_deletes"`
	GalleryFilter  string `toml:"gallery_filter"`
}

const (
	defaultPrefsPath = "~/.config/darkroom/prefs.toml"
	defaultTheme     = "Dracula"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

func defaults() Prefs {
	return Prefs{Theme: defaultTheme, ConfirmDeletes: true}
}

// Load reads preferences from the given path, falling back to defaults
// on any failure. Preferences are cosmetic; nothing here is worth
// refusing to start over.
func Load(path string) Prefs {
	prefs := defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		// Missing or unreadable file: defaults.
		return prefs
	}

	if err := toml.Unmarshal(raw, &prefs); err != nil {
		return defaults()
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	return prefs
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	raw, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, raw, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
