package internal

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func TestRunServeRequiresConfig(t *testing.T) {
	if err := RunServe(context.Background()); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestRunServeShutsDownOnCancel(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Serve.Port = 0 // let the listener pick a free port
	cfg.Serve.SQLitePath = filepath.Join(t.TempDir(), "notes.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunServe(ctx, WithConfig(cfg), WithLogger(logger))
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
