package rbtranslations

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce coalesces the event bursts editors and sync tools produce
// for a single save.
const defaultDebounce = 250 * time.Millisecond

// Watcher reloads a Translator when catalog files in a directory change.
// Events are debounced and the reload is atomic: a broken edit keeps the
// previous bundles in place.
type Watcher struct {
	translator *Translator
	dir        string
	debounce   time.Duration
	logger     *slog.Logger

	watcher *fsnotify.Watcher
	done    chan struct{}

	mu        sync.Mutex
	closed    bool
	listeners []chan<- struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period after the last event before a reload
// is triggered.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger provides a logger for watcher events.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher starts watching dir and reloads the translator on changes.
// The dir is typically the directory of the DirSource backing the
// translator. Close must be called to release the underlying watcher.
func NewWatcher(ctx context.Context, translator *Translator, dir string, opts ...WatcherOption) (*Watcher, error) {
	if translator == nil {
		return nil, ErrNilTranslator
	}

	w := &Watcher{
		translator: translator,
		dir:        dir,
		debounce:   defaultDebounce,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.watcher = fsw

	go w.run(ctx)

	w.logger.InfoContext(ctx, "catalog watcher started", "dir", dir)
	return w, nil
}

// Subscribe registers a channel that receives a signal after every
// successful reload. Sends are non-blocking; a full channel misses the
// signal rather than stalling the watcher.
func (w *Watcher) Subscribe(ch chan<- struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, ch)
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}
	w.closed = true
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			if ParserForFile(event.Name) == nil {
				continue
			}

			w.logger.DebugContext(ctx, "catalog change detected",
				"file", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.ErrorContext(ctx, "catalog watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	if err := w.translator.Reload(ctx); err != nil {
		w.logger.ErrorContext(ctx, "catalog reload failed",
			"dir", w.dir, "error", err)
		return
	}

	w.mu.Lock()
	listeners := make([]chan<- struct{}, len(w.listeners))
	copy(listeners, w.listeners)
	w.mu.Unlock()

	for _, ch := range listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
