// Package trigger fires pipeline runs for the daemon: on a fixed interval,
// on a cron schedule, or when files land in a watched drop directory.
package trigger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"

	"github.com/medalrun/medalrun/internal/config"
)

// Trigger kinds, surfaced to the pipeline job as PIPELINE_TRIGGER.
const (
	KindInterval = "interval"
	KindCron     = "cron"
	KindWatch    = "watch"
)

// Debounce window for filesystem events, so a batch of files dropped
// together fires one run instead of one per file.
const watchDebounce = 2 * time.Second

// Validate checks that the trigger config names at least one usable trigger
// and that its expressions parse.
func Validate(cfg config.Trigger) error {
	if cfg.Interval == "" && cfg.Cron == "" && cfg.Watch == "" {
		return fmt.Errorf("trigger needs at least one of interval, cron, or watch")
	}
	if cfg.Interval != "" {
		if _, err := time.ParseDuration(cfg.Interval); err != nil {
			return fmt.Errorf("trigger.interval: %w", err)
		}
	}
	if cfg.Cron != "" {
		if _, err := cron.ParseStandard(cfg.Cron); err != nil {
			return fmt.Errorf("trigger.cron: %w", err)
		}
	}
	return nil
}

// Start runs the configured triggers, calling fire(kind) on each activation,
// and blocks until ctx is cancelled. Fires are serialized: fire is never
// called concurrently with itself.
func Start(ctx context.Context, cfg config.Trigger, logger *slog.Logger, fire func(kind string)) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	var mu sync.Mutex
	serialized := func(kind string) {
		mu.Lock()
		defer mu.Unlock()
		fire(kind)
	}

	if cfg.Cron != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.Cron, func() { serialized(KindCron) }); err != nil {
			return fmt.Errorf("trigger.cron: %w", err)
		}
		c.Start()
		defer c.Stop()
		logger.Info("cron trigger armed", "spec", cfg.Cron)
	}

	if cfg.Watch != "" {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer watcher.Close()
		if err := watcher.Add(cfg.Watch); err != nil {
			return fmt.Errorf("watching %s: %w", cfg.Watch, err)
		}
		logger.Info("watch trigger armed", "dir", cfg.Watch)

		go watchLoop(ctx, watcher, logger, func() { serialized(KindWatch) })
	}

	if cfg.Interval != "" {
		interval, _ := time.ParseDuration(cfg.Interval)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		logger.Info("interval trigger armed", "interval", interval)

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				serialized(KindInterval)
			}
		}
	}

	<-ctx.Done()
	return ctx.Err()
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, logger *slog.Logger, fire func()) {
	var mu sync.Mutex
	var pending *time.Timer

	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if pending != nil {
			pending.Stop()
		}
		pending = time.AfterFunc(watchDebounce, fire)
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if pending != nil {
				pending.Stop()
			}
			mu.Unlock()
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) {
				logger.Debug("file event", "path", ev.Name, "op", ev.Op.String())
				schedule()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
