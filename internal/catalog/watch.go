package catalog

import (
	"os"
	"time"
)

// FileWatcher polls file modification times and triggers a callback on change.
// The path list is re-evaluated on every scan so new override files are picked up.
type FileWatcher struct {
	paths    func() []string
	interval time.Duration
	onChange func(path string)
	done     chan struct{}
	mtimes   map[string]time.Time
}

// NewFileWatcher creates a watcher for the paths returned by paths.
func NewFileWatcher(paths func() []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		paths:    paths,
		interval: interval,
		onChange: onChange,
		done:     make(chan struct{}),
		mtimes:   make(map[string]time.Time),
	}
}

// WatchLoader reloads l whenever one of its files changes.
func WatchLoader(l *Loader, interval time.Duration) *FileWatcher {
	return NewFileWatcher(l.Paths().Watched, interval, func(string) { _ = l.Reload() })
}

// Start begins polling in a goroutine.
func (w *FileWatcher) Start() {
	ticker := time.NewTicker(w.interval)
	// prime cache before returning so edits right after Start are seen
	w.scanAll(true)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scanAll(false)
			case <-w.done:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *FileWatcher) Stop() {
	close(w.done)
}

// scanAll checks mtimes and invokes onChange once per scan if anything changed.
func (w *FileWatcher) scanAll(prime bool) {
	var changed string
	seen := make(map[string]bool)
	for _, p := range w.paths() {
		seen[p] = true
		fi, err := os.Stat(p)
		if err != nil {
			// missing file: forget it so a later create is reported
			if _, ok := w.mtimes[p]; ok {
				delete(w.mtimes, p)
				changed = p
			}
			continue
		}
		mt := fi.ModTime()
		last, ok := w.mtimes[p]
		w.mtimes[p] = mt
		if !ok && !prime {
			changed = p
			continue
		}
		if ok && !mt.Equal(last) {
			changed = p
		}
	}
	// files that dropped out of the list, e.g. a deleted override
	for p := range w.mtimes {
		if !seen[p] {
			delete(w.mtimes, p)
			changed = p
		}
	}
	if changed != "" && !prime && w.onChange != nil {
		w.onChange(changed)
	}
}
