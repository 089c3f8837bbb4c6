package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is the quiet period after the last event before a pass.
const DefaultDebounce = 300 * time.Millisecond

// PassFunc runs one generation pass.
type PassFunc func(ctx context.Context) error

// Watcher runs a pass at start and again after every burst of source
// changes in Dirs.
type Watcher struct {
	// Dirs are the directories watched, non-recursively.
	Dirs []string
	// Debounce is the quiet period; DefaultDebounce when zero.
	Debounce time.Duration
	// Pass is run for every change burst. Its errors are logged, not fatal.
	Pass PassFunc
	// Ignore reports paths whose events never trigger a pass.
	Ignore func(path string) bool
	Logger *zap.Logger
}

// IgnoreSuffixes returns an Ignore func matching any of the suffixes, such
// as the generator's own artifact suffixes.
func IgnoreSuffixes(suffixes ...string) func(string) bool {
	return func(path string) bool {
		for _, s := range suffixes {
			if s != "" && strings.HasSuffix(path, s) {
				return true
			}
		}

		return false
	}
}

// Run watches until ctx is cancelled. It returns nil on cancellation and an
// error when the watch cannot be set up.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Pass == nil {
		return errors.New("watch: no pass function")
	}

	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.Dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}

		logger.Debug("watching directory", zap.String("dir", dir))
	}

	// Capacity one: bursts arriving during a pass collapse into one rerun.
	trigger := make(chan struct{}, 1)
	trigger <- struct{}{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.events(gctx, fsw, trigger, logger)
	})
	g.Go(func() error {
		return w.passes(gctx, trigger, logger)
	})

	err = g.Wait()
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}

	return err
}

func (w *Watcher) debounce() time.Duration {
	if w.Debounce <= 0 {
		return DefaultDebounce
	}

	return w.Debounce
}

// events turns relevant file-system events into debounced triggers.
func (w *Watcher) events(ctx context.Context, fsw *fsnotify.Watcher, trigger chan<- struct{}, logger *zap.Logger) error {
	timer := time.NewTimer(w.debounce())
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}

			if !w.relevant(event) {
				continue
			}

			logger.Debug("source changed",
				zap.String("file", event.Name),
				zap.String("op", event.Op.String()))
			timer.Reset(w.debounce())

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}

			logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			select {
			case trigger <- struct{}{}:
			default:
				// A pass is already pending.
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	if filepath.Ext(event.Name) != ".go" && filepath.Ext(event.Name) != ".yaml" {
		return false
	}

	return w.Ignore == nil || !w.Ignore(event.Name)
}

// passes runs one pass per trigger, sequentially.
func (w *Watcher) passes(ctx context.Context, trigger <-chan struct{}, logger *zap.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-trigger:
		}

		start := time.Now()
		if err := w.Pass(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			logger.Error("generation pass failed", zap.Error(err))

			continue
		}

		logger.Info("generation pass finished", zap.Duration("took", time.Since(start)))
	}
}
