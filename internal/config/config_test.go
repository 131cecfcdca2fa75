package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.ServerURL != "127.0.0.1:8080" {
		t.Fatalf("ServerURL = %q, want %q", cfg.ServerURL, "127.0.0.1:8080")
	}
	if cfg.PollInterval() != 60*time.Second {
		t.Fatalf("PollInterval() = %v, want 60s", cfg.PollInterval())
	}
	if cfg.Debounce() != 500*time.Millisecond {
		t.Fatalf("Debounce() = %v, want 500ms", cfg.Debounce())
	}
	if cfg.IdentityTTLDuration() != time.Minute {
		t.Fatalf("IdentityTTLDuration() = %v, want 1m", cfg.IdentityTTLDuration())
	}
}

func TestLoad_ReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
server_url = "lostfound.example.com:9090"
poll_seconds = 30
debounce_ms = 250
identity_ttl_seconds = 120
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.ServerURL != "lostfound.example.com:9090" {
		t.Fatalf("ServerURL = %q, want the configured host", cfg.ServerURL)
	}
	if cfg.PollInterval() != 30*time.Second {
		t.Fatalf("PollInterval() = %v, want 30s", cfg.PollInterval())
	}
	if cfg.Debounce() != 250*time.Millisecond {
		t.Fatalf("Debounce() = %v, want 250ms", cfg.Debounce())
	}
	if cfg.IdentityTTLDuration() != 2*time.Minute {
		t.Fatalf("IdentityTTLDuration() = %v, want 2m", cfg.IdentityTTLDuration())
	}
}

func TestLoad_PartialFileKeepsRemainingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`poll_seconds = 15`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.PollSeconds != 15 {
		t.Fatalf("PollSeconds = %d, want 15", cfg.PollSeconds)
	}
	if cfg.ServerURL != "127.0.0.1:8080" {
		t.Fatalf("ServerURL = %q, want default", cfg.ServerURL)
	}
	if cfg.DebounceMS != 500 {
		t.Fatalf("DebounceMS = %d, want default 500", cfg.DebounceMS)
	}
}

func TestLoad_MalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`server_url = [not toml`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("Load() error = nil, want parse error")
	}
}
