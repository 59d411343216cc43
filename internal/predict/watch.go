package predict

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/BetterRest/internal/logger"
)

// ArtifactEvent reports the state of a watched artifact after a change
type ArtifactEvent struct {
	Path  string
	Op    string
	Model *Model
	Err   error
	At    time.Time
}

// OK reports whether the artifact loaded cleanly
func (e ArtifactEvent) OK() bool {
	return e.Err == nil
}

// Watcher re-validates a model artifact whenever it changes on disk
type Watcher struct {
	path    string
	loader  *Loader
	watcher *fsnotify.Watcher
	events  chan ArtifactEvent
	log     *logger.Logger
}

// NewWatcher watches the directory holding path so that editors which
// replace the file (rename + create) are still noticed
func NewWatcher(path string) (*Watcher, error) {
	if err := validateModelPath(path); err != nil {
		return nil, fmt.Errorf("invalid model path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		closeWatcher(fw)
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		path:    filepath.Clean(path),
		loader:  File(path),
		watcher: fw,
		events:  make(chan ArtifactEvent, 1),
	}, nil
}

// WithLogger reports artifact loads and watcher failures to log
func (w *Watcher) WithLogger(log *logger.Logger) *Watcher {
	w.log = log
	w.loader = w.loader.WithLogger(log)
	return w
}

// Events delivers one event per relevant change; closed when Run returns
func (w *Watcher) Events() <-chan ArtifactEvent {
	return w.events
}

// Check loads the artifact once and reports its state
func (w *Watcher) Check(op string) ArtifactEvent {
	model, err := w.loader.Load()
	return ArtifactEvent{
		Path:  w.path,
		Op:    op,
		Model: model,
		Err:   err,
		At:    time.Now(),
	}
}

// Run forwards artifact changes until ctx is cancelled or the watcher fails
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)
	defer closeWatcher(w.watcher)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !isRelevant(event.Op) {
				continue
			}
			select {
			case w.events <- w.Check(event.Op.String()):
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Error("watching %s failed: %v", w.path, err)
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func isRelevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) ||
		op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
}

func closeWatcher(fw *fsnotify.Watcher) {
	if err := fw.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}
