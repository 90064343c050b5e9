package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		SearchEndpoint: "https://api.example.com/search",
		SearchAPIKey:   "test-key",
		ImageBaseURL:   "https://static.example.com/",
		StoreBackend:   "memory",
		ProbeURL:       "https://probe.example.com/204",
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsMissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.SearchAPIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.StoreBackend = "bolt"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown store backend")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "250ms")
	if got := getEnvAsDuration("TEST_DURATION", time.Second); got != 250*time.Millisecond {
		t.Fatalf("got %v, want 250ms", got)
	}
	if got := getEnvAsDuration("TEST_DURATION_UNSET", time.Second); got != time.Second {
		t.Fatalf("got %v, want default 1s", got)
	}
	t.Setenv("TEST_DURATION_BAD", "soon")
	if got := getEnvAsDuration("TEST_DURATION_BAD", time.Second); got != time.Second {
		t.Fatalf("got %v, want default on parse error", got)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "false")
	if getEnvAsBool("TEST_BOOL", true) {
		t.Fatal("expected false")
	}
	if !getEnvAsBool("TEST_BOOL_UNSET", true) {
		t.Fatal("expected default true")
	}
}
