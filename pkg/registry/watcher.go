package registry

import (
	"os"
	"sync"
)

type fileStamp struct {
	modTimeNano int64
	size        int64
}

// Watcher detects changes to the metadata source artifacts by comparing a
// modification-time+size signature against the last committed one. Missing
// files record a zero stamp, so a file appearing later still counts as a
// change. Stale and Commit are safe for concurrent use: staleness checks
// from request handlers overlap with commits from a background rebuild.
type Watcher struct {
	paths []string

	mu   sync.Mutex
	last map[string]fileStamp
}

// NewWatcher watches the given file paths. Empty paths are ignored.
func NewWatcher(paths ...string) *Watcher {
	w := &Watcher{}
	for _, p := range paths {
		if p != "" {
			w.paths = append(w.paths, p)
		}
	}
	return w
}

func (w *Watcher) signature() map[string]fileStamp {
	sig := make(map[string]fileStamp, len(w.paths))
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			sig[path] = fileStamp{}
			continue
		}
		sig[path] = fileStamp{modTimeNano: info.ModTime().UnixNano(), size: info.Size()}
	}
	return sig
}

// Stale reports whether any watched artifact changed since the last Commit.
// A watcher that never committed is always stale.
func (w *Watcher) Stale() bool {
	current := w.signature()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return true
	}
	if len(current) != len(w.last) {
		return true
	}
	for path, stamp := range current {
		if w.last[path] != stamp {
			return true
		}
	}
	return false
}

// Commit records the current signature as the loaded baseline.
func (w *Watcher) Commit() {
	sig := w.signature()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.last = sig
}
