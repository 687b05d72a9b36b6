package manifest

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates an in-process cached parse of the manifest when
// the file changes on disk outside of this process's own writer (e.g.
// a user hand-editing it while a long-running host has it open). It
// debounces on the same window as DebouncedWriter to avoid reacting to
// the writer's own temp-file-then-rename sequence.
type Watcher struct {
	fsw    *fsnotify.Watcher
	path   string
	onStop func()
}

// WatchManifest starts watching path's containing directory (fsnotify
// does not reliably deliver events across a rename onto the watched
// path itself) and calls onChange, debounced by window, whenever path
// is created or written.
func WatchManifest(path string, window time.Duration, onChange func()) (*Watcher, error) {
	if window <= 0 {
		window = 500 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, path: path}

	var timer *time.Timer
	done := make(chan struct{})
	w.onStop = func() { close(done) }

	go func() {
		for {
			select {
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(window, onChange)
			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.onStop()
	return w.fsw.Close()
}
