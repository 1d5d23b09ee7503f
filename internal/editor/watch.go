package editor

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/penna/internal/models"
)

// WatchFunc receives the parsed draft after each settled write.
type WatchFunc func(models.Draft)

// Watch observes the draft file at path and calls fn with the re-parsed
// draft after each write, debounced so editors that write in several steps
// (or write-then-rename) trigger a single callback. It returns when ctx is
// cancelled.
//
// The parent directory is watched rather than the file itself: many editors
// replace the file on save, which would otherwise drop the watch.
func Watch(ctx context.Context, path string, debounce time.Duration, logger *slog.Logger, fn WatchFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	logger.Info("watching draft", slog.String("path", abs))

	var timer *time.Timer
	var fire <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			fire = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("draft watch stopped")
			return nil

		case <-fire:
			draft, err := ReadDraftFile(abs)
			if err != nil {
				logger.Warn("re-read draft failed", slog.String("error", err.Error()))
				continue
			}
			fn(draft)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				schedule()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("draft watch error", slog.String("error", err.Error()))
		}
	}
}
