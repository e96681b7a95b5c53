package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/chikitsa")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "4000" {
		t.Errorf("expected default port 4000, got %s", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("expected development by default")
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("unexpected pool defaults: max=%d min=%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.TokenTTL() != 168*time.Hour {
		t.Errorf("expected 7-day token TTL, got %s", cfg.TokenTTL())
	}
	if len(cfg.CORSOrigins) == 0 {
		t.Error("expected default CORS origins")
	}
}

func TestValidate_ProductionNeedsSecret(t *testing.T) {
	cfg := &Config{Env: "production", TokenTTLHours: 168}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing JWT_SECRET in production")
	}

	cfg.JWTSecret = "super-secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error with secret set: %v", err)
	}
}

func TestValidate_PoolBounds(t *testing.T) {
	cfg := &Config{Env: "development", TokenTTLHours: 1, DBMaxConns: 5, DBMinConns: 10}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when min conns exceed max conns")
	}
}

func TestResolvedJWTSecret_DevFallback(t *testing.T) {
	cfg := &Config{Env: "development"}
	if len(cfg.ResolvedJWTSecret()) == 0 {
		t.Error("expected a development fallback secret")
	}
	cfg.JWTSecret = "explicit"
	if string(cfg.ResolvedJWTSecret()) != "explicit" {
		t.Error("expected explicit secret to win")
	}
}
