package source

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"navmenu/internal/menu"
)

// DefaultDebounceDuration coalesces the burst of events an editor produces
// when it saves a file.
const DefaultDebounceDuration = 100 * time.Millisecond

// ErrAlreadyStarted is returned by Start on a running watcher.
var ErrAlreadyStarted = errors.New("watcher already started")

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounceDuration sets the quiet window before a reload.
func WithDebounceDuration(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounceDuration = d
	}
}

// WithLogger sets the watcher logger.
func WithLogger(l *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// Watcher keeps a menu file loaded and publishes every reload.
type Watcher struct {
	path             string
	debounceDuration time.Duration
	log              *zap.Logger

	fsWatcher *fsnotify.Watcher
	debouncer *menu.Debouncer

	mu      sync.Mutex
	started bool
	tree    []*menu.Node
	done    chan struct{}
	wg      sync.WaitGroup

	events chan Event
}

// NewWatcher creates a watcher for the menu file at path.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:             absPath,
		debounceDuration: DefaultDebounceDuration,
		log:              zap.NewNop(),
		events:           make(chan Event, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debouncer = menu.NewDebouncer(w.debounceDuration)

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events delivers reload results. Only the latest unread event is kept.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start loads the file once and begins watching its directory. Watching the
// directory rather than the file survives editors that save by renaming.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		w.mu.Unlock()
		return err
	}

	w.fsWatcher = fsw
	w.done = make(chan struct{})
	w.started = true
	w.wg.Add(1)
	go w.watchLoop(fsw, w.done)
	w.mu.Unlock()

	_ = w.Reload()
	return nil
}

// Stop stops watching. Pending reloads are dropped.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	close(w.done)
	w.debouncer.Cancel()
	err := w.fsWatcher.Close()
	w.mu.Unlock()

	if err != nil {
		w.log.Warn("failed to close file watcher", zap.Error(err))
	}
	w.wg.Wait()
}

// Reload reads the file now and publishes the result. On error the previous
// tree is republished along with the error.
func (w *Watcher) Reload() error {
	tree, err := LoadFile(w.path)

	w.mu.Lock()
	if err == nil {
		w.tree = tree
	}
	ev := Event{Path: w.path, Tree: w.tree, State: menu.SourceState{Err: err}}
	w.mu.Unlock()

	if err != nil {
		w.log.Warn("menu reload failed", zap.String("path", w.path), zap.Error(err))
	} else {
		w.log.Info("menu loaded", zap.String("path", w.path), zap.Int("nodes", menu.Count(tree)))
		if dups := DuplicateCodes(tree); len(dups) > 0 {
			w.log.Warn("duplicate menu codes", zap.Strings("codes", dups))
		}
	}

	w.publish(ev)
	return err
}

// publish replaces an unread event so readers only see the newest state.
func (w *Watcher) publish(ev Event) {
	for {
		select {
		case w.events <- ev:
			return
		default:
		}
		select {
		case <-w.events:
		default:
		}
	}
}

func (w *Watcher) watchLoop(fsw *fsnotify.Watcher, done <-chan struct{}) {
	defer w.wg.Done()

	for {
		select {
		case <-done:
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			w.debouncer.Trigger(func() { _ = w.Reload() })

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", zap.Error(err))
		}
	}
}
