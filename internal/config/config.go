package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields trove needs to reach the Lost & Found API.
type Config struct {
	ServerURL   string
	PollSeconds int
	DebounceMS  int
	IdentityTTL int // seconds the cached identity stays fresh
}

const (
	defaultConfigPath  = "~/.config/trove/config.toml"
	defaultServerURL   = "127.0.0.1:8080"
	defaultPollSeconds = 60
	defaultDebounceMS  = 500
	defaultIdentityTTL = 60
)

// Load locates and parses the trove config, falling back to defaults
// when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ServerURL   string `toml:"server_url"`
		PollSeconds int    `toml:"poll_seconds"`
		DebounceMS  int    `toml:"debounce_ms"`
		IdentityTTL int    `toml:"identity_ttl_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if server := strings.TrimSpace(raw.ServerURL); server != "" {
		cfg.ServerURL = server
	}
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	if raw.DebounceMS > 0 {
		cfg.DebounceMS = raw.DebounceMS
	}
	if raw.IdentityTTL > 0 {
		cfg.IdentityTTL = raw.IdentityTTL
	}
	return cfg, nil
}

// PollInterval returns the item feed refresh cadence.
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return defaultPollSeconds * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

// Debounce returns how long search input must be quiescent before the
// query is committed.
func (c Config) Debounce() time.Duration {
	if c.DebounceMS <= 0 {
		return defaultDebounceMS * time.Millisecond
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// IdentityTTLDuration returns how long the identity cache trusts a
// resolved identity.
func (c Config) IdentityTTLDuration() time.Duration {
	if c.IdentityTTL <= 0 {
		return defaultIdentityTTL * time.Second
	}
	return time.Duration(c.IdentityTTL) * time.Second
}

func defaults() Config {
	return Config{
		ServerURL:   defaultServerURL,
		PollSeconds: defaultPollSeconds,
		DebounceMS:  defaultDebounceMS,
		IdentityTTL: defaultIdentityTTL,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
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
