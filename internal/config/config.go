package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything darkroom needs to reach the portfolio API.
type Config struct {
	Environment string // "development" or "production"
	APIURL      string
	CacheDir    string // draft preview thumbnails
	SessionPath string
	PrefsPath   string
}

const (
	defaultConfigPath = "~/.config/darkroom/config.toml"
	defaultCacheDir   = "~/.cache/darkroom/previews"

	// The base URL is resolved once per process: explicit api_url wins,
	// otherwise the environment decides.
	EnvDevelopment = "development"
	EnvProduction  = "production"

	developmentAPIURL = "http://localhost:3001"
	productionAPIURL  = "https://photography-api-e6oq.onrender.com"
)

// Load builds the configuration from, in increasing precedence: built-in
// defaults, the TOML config file, a .env file in the working directory,
// and DARKROOM_* environment variables. A missing config file is fine.
func Load(path string) (Config, error) {
	// Populate the process environment from .env first so the variable
	// overrides below see it. Missing .env is the normal case.
	_ = godotenv.Load()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Environment: EnvDevelopment}

	raw, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var file struct {
			Environment string `toml:"environment"`
			APIURL      string `toml:"api_url"`
			CacheDir    string `toml:"cache_dir"`
		}
		if err := toml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.Environment = strings.TrimSpace(file.Environment)
		cfg.APIURL = strings.TrimSpace(file.APIURL)
		cfg.CacheDir = strings.TrimSpace(file.CacheDir)
	}

	if env := strings.TrimSpace(os.Getenv("DARKROOM_ENV")); env != "" {
		cfg.Environment = env
	}
	if u := strings.TrimSpace(os.Getenv("DARKROOM_API_URL")); u != "" {
		cfg.APIURL = u
	}

	cfg.Environment = normalizeEnvironment(cfg.Environment)
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL(cfg.Environment)
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir
	}
	cfg.CacheDir = mustExpand(cfg.CacheDir)
	cfg.SessionPath = filepath.Join(filepath.Dir(resolved), "session.toml")
	cfg.PrefsPath = filepath.Join(filepath.Dir(resolved), "prefs.toml")

	return cfg, nil
}

// IsDevelopment reports whether the client targets a local API.
func (c Config) IsDevelopment() bool {
	return c.Environment != EnvProduction
}

func normalizeEnvironment(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case EnvProduction, "prod":
		return EnvProduction
	default:
		return EnvDevelopment
	}
}

func defaultAPIURL(environment string) string {
	if environment == EnvProduction {
		return productionAPIURL
	}
	return developmentAPIURL
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
