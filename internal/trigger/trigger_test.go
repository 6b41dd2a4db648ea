package trigger

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/medalrun/medalrun/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestValidateEmpty(t *testing.T) {
	if err := Validate(config.Trigger{}); err == nil {
		t.Error("expected error for empty trigger")
	}
}

func TestValidateBadCron(t *testing.T) {
	if err := Validate(config.Trigger{Cron: "every tuesday"}); err == nil {
		t.Error("expected error for bad cron expression")
	}
}

func TestValidateBadInterval(t *testing.T) {
	if err := Validate(config.Trigger{Interval: "hourly"}); err == nil {
		t.Error("expected error for bad interval")
	}
}

func TestValidateOK(t *testing.T) {
	cases := []config.Trigger{
		{Interval: "30s"},
		{Cron: "0 2 * * *"},
		{Watch: "/data/incoming"},
	}
	for _, c := range cases {
		if err := Validate(c); err != nil {
			t.Errorf("Validate(%+v) = %v", c, err)
		}
	}
}

func TestStartRejectsInvalid(t *testing.T) {
	err := Start(context.Background(), config.Trigger{}, testLogger(), func(string) {})
	if err == nil {
		t.Error("expected error for empty trigger")
	}
}

func TestIntervalFires(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	var fires atomic.Int32
	err := Start(ctx, config.Trigger{Interval: "20ms"}, testLogger(), func(kind string) {
		if kind != KindInterval {
			t.Errorf("kind = %q, want %q", kind, KindInterval)
		}
		fires.Add(1)
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Start returned %v, want deadline exceeded", err)
	}
	if fires.Load() == 0 {
		t.Error("interval trigger never fired")
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	dir := t.TempDir()

	done := make(chan error, 1)
	go func() {
		done <- Start(ctx, config.Trigger{Watch: dir}, testLogger(), func(string) {})
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
