package config

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("APP_NAME", "career-compass")
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.AppName != "career-compass" || cfg.App.HTTPPort != "8080" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Database.URL != "" {
		t.Fatalf("expected empty database url, got %q", cfg.Database.URL)
	}
	if cfg.Production() {
		t.Fatalf("development must not report production")
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "  ")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for missing required variables")
	}
	msg := err.Error()
	if !strings.Contains(msg, "APP_NAME") || !strings.Contains(msg, "HTTP_PORT") {
		t.Fatalf("error must name the missing variables: %q", msg)
	}
	if strings.Contains(msg, "APP_ENV") {
		t.Fatalf("error must not name present variables: %q", msg)
	}
}

func TestProduction(t *testing.T) {
	for env, want := range map[string]bool{
		"production":  true,
		"PRODUCTION":  true,
		"development": false,
		"":            false,
	} {
		c := Config{App: AppConfig{Environment: env}}
		if c.Production() != want {
			t.Fatalf("Production() for %q = %v, want %v", env, c.Production(), want)
		}
	}
}
