// Package watch re-runs a job whenever a file changes.
//
// Editors and exporters often replace a file instead of writing it in place,
// so the parent directory is watched and events are filtered by name. Bursts
// of events are coalesced into a single run.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bimmerbailey/penmark/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits after the last event
// before running the job.
const DefaultDebounce = 250 * time.Millisecond

// Options configures the watcher behavior.
type Options struct {
	FilePath string                          // File to watch
	Debounce time.Duration                   // Quiet period before a run
	RunFunc  func(ctx context.Context) error // Job run on every change
	Logger   logrus.FieldLogger              // Destination for job failures
}

// Watcher runs a job each time a file is written or re-created.
type Watcher struct {
	opts    Options
	path    string
	watcher *fsnotify.Watcher
}

// New creates a new Watcher with the given options.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Watcher{opts: opts, path: filepath.Clean(opts.FilePath)}
}

// Run blocks until ctx is cancelled or the watcher fails. A failing job is
// logged and does not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	if w.opts.RunFunc == nil {
		return fmt.Errorf("watch: no run function")
	}

	if err := w.setupWatcher(); err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}
	defer w.watcher.Close()

	return w.watch(ctx)
}

// setupWatcher initializes the fsnotify watcher on the file's directory.
func (w *Watcher) setupWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return err
	}
	return nil
}

// watch monitors the directory and schedules runs for relevant events.
func (w *Watcher) watch(ctx context.Context) error {
	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}
			if w.relevant(event) {
				timer.Reset(w.opts.Debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)

		case <-timer.C:
			w.opts.Logger.WithField("path", w.path).Info("input changed, re-running")
			if err := w.opts.RunFunc(ctx); err != nil {
				w.opts.Logger.WithError(err).Error("run failed")
			}
		}
	}
}

// relevant reports whether event is a write or creation of the watched file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
