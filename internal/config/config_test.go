package config_test

import (
	"context"
	"testing"

	"github.com/mjiang93/user-service/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env development, got %q", cfg.Env)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected IsDevelopment to be true by default")
	}
	if cfg.DatabasePath != "app.db" {
		t.Fatalf("expected default database path app.db, got %q", cfg.DatabasePath)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("expected default CORS origins [*], got %v", cfg.CORSOrigins)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_PATH", "/data/users.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := config.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.IsDevelopment() {
		t.Fatal("expected IsDevelopment to be false in production")
	}
	if cfg.DatabasePath != "/data/users.db" {
		t.Fatalf("expected database path override, got %q", cfg.DatabasePath)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 CORS origins, got %v", cfg.CORSOrigins)
	}
}
