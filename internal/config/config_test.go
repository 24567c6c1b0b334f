package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Env:               "dev",
		HTTPPort:          "8080",
		RateRPS:           100,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("RATE_RPS", "0")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Env != "prod" || cfg.HTTPPort != "9000" || cfg.RateRPS != 0 || cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadRejectsBadValue(t *testing.T) {
	if _, err := LoadFrom(map[string]string{"RATE_RPS": "lots"}); err == nil {
		t.Error("expected error for non-numeric RATE_RPS")
	}
}
