// Package app wires configuration, the API client, the item feed
// poller, and the terminal UI together.
package app

import (
	"context"
	"fmt"
	"time"

	"trove/internal/api"
	"trove/internal/config"
	"trove/internal/prefs"
	"trove/internal/session"
	"trove/internal/state"
	"trove/internal/ui"
)

// Options configure the trove application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/trove/prefs.toml
	ServerURL  string // overrides the configured server when set
	PollEvery  int    // seconds; zero uses the configured interval
}

// Run boots the trove TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	server := cfg.ServerURL
	if opts.ServerURL != "" {
		server = opts.ServerURL
	}
	client, err := api.NewClient(server)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := &state.Store{}
	sess := session.NewCache(client, cfg.IdentityTTLDuration())

	interval := cfg.PollInterval()
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start the background feed poller.
	poller := StartPoller(ctx, store, client, interval)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Session:   sess,
		Store:     store,
		Feed:      poller,
		Debounce:  cfg.Debounce(),
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
