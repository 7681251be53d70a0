package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of filesystem events a single
// editor save produces.
const debounceDelay = 100 * time.Millisecond

// Watcher reloads settings whenever the config file changes and hands
// the result to a callback.
type Watcher struct {
	path     string
	onChange func(Settings)
	onError  func(error)
	fw       *fsnotify.Watcher
	done     chan struct{}
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithErrorHandler sets a callback for reload and watch errors, which
// are otherwise dropped.
func WithErrorHandler(fn func(error)) WatchOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watch starts watching path. onChange runs on the watcher goroutine
// with freshly loaded settings after each change settles.
func Watch(path string, onChange func(Settings), opts ...WatchOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors replace the file on save, which
	// drops a watch set on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}

	w := &Watcher{
		path:     path,
		onChange: onChange,
		onError:  func(error) {},
		fw:       fw,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceDelay)
			}
		case <-fire:
			timer = nil
			fire = nil
			s, err := Load(w.path)
			if err != nil {
				w.onError(err)
				continue
			}
			w.onChange(s)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}
