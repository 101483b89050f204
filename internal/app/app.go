package app

import (
	"context"
	"fmt"
	"time"

	"github.com/lcamargo/darkroom/internal/api"
	"github.com/lcamargo/darkroom/internal/config"
	"github.com/lcamargo/darkroom/internal/prefs"
	"github.com/lcamargo/darkroom/internal/session"
	"github.com/lcamargo/darkroom/internal/state"
	"github.com/lcamargo/darkroom/internal/ui"
	"github.com/lcamargo/darkroom/internal/upload"
)

// Options configure the darkroom application.
type Options struct {
	ConfigPath string // empty uses ~/.config/darkroom/config.toml
	APIURL     string // overrides the configured API base URL
	PollEvery  int    // health poll seconds; zero uses default
}

// Run boots the darkroom TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}

	userPrefs := prefs.Load(cfg.PrefsPath)
	sess := session.Load(cfg.SessionPath)

	client, err := api.NewClient(cfg.APIURL, sess)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := &state.Store{}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start background health poller
	StartPoller(ctx, store, client, interval)

	// Do initial refresh to populate store before UI starts
	refresh(ctx, store, client)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Session:   sess,
		Health:    store,
		Config:    &cfg,
		Uploader:  upload.NewUploader(client),
		PollTick:  interval,
		Prefs:     userPrefs,
		PrefsPath: cfg.PrefsPath,
	}
	return ui.Run(uiOpts)
}
