package feed

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"tooldir/internal/domain"
	"tooldir/internal/infra/telemetry"
)

// ChangeFunc is called once per settled burst of writes to the feed file.
type ChangeFunc func(ctx context.Context, path string) error

// Watcher re-imports a feed file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

func NewWatcher(path string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, domain.E(domain.CodeInvalidArgument, "watch feed", "feed path is required", nil)
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("resolve feed path: %w", err)
	}
	if debounce <= 0 {
		debounce = time.Duration(domain.DefaultFeedDebounceMillis) * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		logger:   logger.Named("feed").With(telemetry.PathField(abs)),
	}, nil
}

// Path returns the absolute feed path.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks until ctx is done. The parent directory is watched so that
// editors replacing the file by rename are still observed.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	if onChange == nil {
		return errors.New("feed change handler is nil")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create feed watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch feed dir: %w", err)
	}

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				w.logger.Warn("feed watcher error", zap.Error(err))
			}
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.matches(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case <-timerChan(timer):
			timer = nil
			w.logger.Info("feed changed", telemetry.EventField(telemetry.EventFeedChanged))
			start := time.Now()
			if err := onChange(ctx, w.path); err != nil {
				w.logger.Warn("feed import failed", zap.Error(err))
				continue
			}
			w.logger.Debug("feed reloaded", telemetry.DurationField(time.Since(start)))
		}
	}
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if event.Name == "" || filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func timerChan(timer *time.Timer) <-chan time.Time {
	if timer == nil {
		return nil
	}
	return timer.C
}
