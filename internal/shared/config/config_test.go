package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected default env dev, got %s", cfg.Env)
	}
	if cfg.LLMProvider != "openai" {
		t.Fatalf("expected default provider openai, got %s", cfg.LLMProvider)
	}
	if cfg.LLMModel != "gpt-4o-mini" {
		t.Fatalf("expected default model gpt-4o-mini, got %s", cfg.LLMModel)
	}
	if cfg.LatexBin != "pdflatex" {
		t.Fatalf("expected default latex bin pdflatex, got %s", cfg.LatexBin)
	}
	if cfg.LatexTimeout != 60*time.Second {
		t.Fatalf("expected default latex timeout 60s, got %s", cfg.LatexTimeout)
	}
	if cfg.MaxJobDescriptionChars != 20000 {
		t.Fatalf("expected default job description cap 20000, got %d", cfg.MaxJobDescriptionChars)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected default object store local, got %s", cfg.ObjectStoreType)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "PRODUCTION")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("LATEX_TIMEOUT_SECONDS", "15")
	t.Setenv("MAX_JOB_DESCRIPTION_CHARS", "500")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.example, http://b.example ,")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env production, got %s", cfg.Env)
	}
	if cfg.LLMModel != "gpt-4o" {
		t.Fatalf("expected model gpt-4o, got %s", cfg.LLMModel)
	}
	if cfg.LatexTimeout != 15*time.Second {
		t.Fatalf("expected latex timeout 15s, got %s", cfg.LatexTimeout)
	}
	if cfg.MaxJobDescriptionChars != 500 {
		t.Fatalf("expected job description cap 500, got %d", cfg.MaxJobDescriptionChars)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.example" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("LATEX_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("MAX_JOB_DESCRIPTION_CHARS", "-3")

	cfg := Load()

	if cfg.LatexTimeout != 60*time.Second {
		t.Fatalf("expected fallback latex timeout 60s, got %s", cfg.LatexTimeout)
	}
	if cfg.MaxJobDescriptionChars != 20000 {
		t.Fatalf("expected fallback job description cap, got %d", cfg.MaxJobDescriptionChars)
	}
}
