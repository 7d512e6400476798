package pages

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/agencysite/internal/logfields"
)

// DefaultDebounce collapses bursts of editor writes into one reload.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a Registry when files in its directory change.
type Watcher struct {
	registry     *Registry
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	stopOnce     sync.Once
	stopChan     chan struct{}
	reloadChan   chan struct{}
	debounceTime time.Duration
}

// NewWatcher creates a watcher for registry's directory.
func NewWatcher(registry *Registry, debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		registry:     registry,
		watcher:      w,
		stopChan:     make(chan struct{}),
		reloadChan:   make(chan struct{}, 1),
		debounceTime: debounce,
	}, nil
}

// Start begins watching. The directory must exist.
func (pw *Watcher) Start(ctx context.Context) error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	dir := pw.registry.Dir()
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("pages directory %s: %w", dir, err)
	}
	if err := pw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch pages directory %s: %w", dir, err)
	}

	slog.Info("Watching pages", slog.String("dir", dir))

	go pw.watchLoop(ctx)
	go pw.reloadLoop(ctx)
	return nil
}

// Stop ends watching. It is safe to call more than once.
func (pw *Watcher) Stop() error {
	var err error
	pw.stopOnce.Do(func() {
		close(pw.stopChan)
		err = pw.watcher.Close()
	})
	return err
}

func (pw *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-pw.stopChan:
			return
		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(strings.ToLower(event.Name), ".md") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				slog.Debug("Page change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
				pw.triggerReload()
			}
		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Pages watcher error", logfields.Error(err))
		}
	}
}

func (pw *Watcher) reloadLoop(ctx context.Context) {
	var timer *time.Timer
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-pw.stopChan:
			stop()
			return
		case <-pw.reloadChan:
			stop()
			timer = time.AfterFunc(pw.debounceTime, func() {
				if err := pw.registry.Reload(); err != nil {
					slog.Error("Failed to reload pages", logfields.Error(err))
					return
				}
				slog.Info("Pages reloaded")
			})
		}
	}
}

func (pw *Watcher) triggerReload() {
	select {
	case pw.reloadChan <- struct{}{}:
	default:
	}
}
