package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDevelopmentDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Environment != EnvDevelopment || !cfg.IsDevelopment() {
		t.Fatalf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.APIURL != developmentAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, developmentAPIURL)
	}
	if cfg.SessionPath != filepath.Join(filepath.Dir(path), "session.toml") {
		t.Fatalf("SessionPath = %q", cfg.SessionPath)
	}
	if cfg.CacheDir == "" {
		t.Fatal("CacheDir is empty")
	}
}

func TestLoad_ProductionEnvironmentPicksFixedURL(t *testing.T) {
	path := writeConfig(t, "environment = \"production\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Environment != EnvProduction || cfg.IsDevelopment() {
		t.Fatalf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.APIURL != productionAPIURL {
		t.Fatalf("APIURL = %q, want production URL", cfg.APIURL)
	}
}

func TestLoad_ExplicitURLWins(t *testing.T) {
	path := writeConfig(t, "environment = \"production\"\napi_url = \"http://10.0.0.5:3001\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://10.0.0.5:3001" {
		t.Fatalf("APIURL = %q, want explicit value", cfg.APIURL)
	}
}

func TestLoad_EnvironmentVariablesOverrideFile(t *testing.T) {
	path := writeConfig(t, "environment = \"development\"\n")
	t.Setenv("DARKROOM_ENV", "production")
	t.Setenv("DARKROOM_API_URL", "http://staging.internal:3001")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Environment != EnvProduction {
		t.Fatalf("Environment = %q, want env override", cfg.Environment)
	}
	if cfg.APIURL != "http://staging.internal:3001" {
		t.Fatalf("APIURL = %q, want env override", cfg.APIURL)
	}
}

func TestLoad_BadTOML(t *testing.T) {
	path := writeConfig(t, "environment = [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed config")
	}
}

func TestNormalizeEnvironment(t *testing.T) {
	cases := map[string]string{
		"production":  EnvProduction,
		"PROD":        EnvProduction,
		"development": EnvDevelopment,
		"":            EnvDevelopment,
		"staging":     EnvDevelopment,
	}
	for in, want := range cases {
		if got := normalizeEnvironment(in); got != want {
			t.Fatalf("normalizeEnvironment(%q) = %q, want %q", in, got, want)
		}
	}
}
