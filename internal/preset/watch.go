package preset

import (
	"os"
	"time"
)

// Watcher polls preset file modification times and triggers a callback on
// change, typically wired to Loader.Invalidate. Polling keeps it free of
// platform-specific notification APIs.
type Watcher struct {
	paths     []string
	interval  time.Duration
	onChange  func(path string)
	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

// NewWatcher creates a watcher over the given files.
func NewWatcher(paths []string, interval time.Duration, onChange func(string)) *Watcher {
	return &Watcher{
		paths:     paths,
		interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start begins polling in a goroutine.
func (w *Watcher) Start() {
	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		w.scan(true)
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
}

// scan compares mtimes against the last sweep; prime only records them.
func (w *Watcher) scan(prime bool) {
	for _, p := range w.paths {
		fi, err := os.Stat(p)
		if err != nil {
			// a deleted preset file surfaces on the next Banner call
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		if !ok {
			w.lastMTime[p] = mt
			continue
		}
		if mt.After(last) {
			w.lastMTime[p] = mt
			if !prime && w.onChange != nil {
				w.onChange(p)
			}
		}
	}
}
