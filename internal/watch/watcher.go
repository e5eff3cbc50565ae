// Package watch reloads a graph snapshot file when it changes on disk,
// debouncing editor write bursts. It is host plumbing: the engine only ever
// sees the resulting snapshots.
package watch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/recera/graphlens/pkg/graph"
)

const debounceDelay = 100 * time.Millisecond

// Watcher emits parsed snapshots on Snapshots whenever the watched file
// settles after a change. Parse failures are logged and skipped; the viewer
// keeps the last good snapshot.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	// Snapshots delivers each successfully parsed snapshot.
	Snapshots chan *graph.Snapshot

	done chan struct{}
}

// New starts watching the given snapshot file. The parent directory is
// watched rather than the file itself so atomic save-and-rename editors
// don't drop the watch.
func New(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	w := &Watcher{
		path:      abs,
		watcher:   fw,
		Snapshots: make(chan *graph.Snapshot, 1),
		done:      make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	debounce := time.NewTimer(0)
	<-debounce.C
	pending := false

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			debounce.Reset(debounceDelay)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watch] watcher error: %v", err)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			w.reload()

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		log.Printf("[watch] failed to read %s: %v", w.path, err)
		return
	}
	snap, err := graph.ParseSnapshot(data)
	if err != nil {
		log.Printf("[watch] keeping previous snapshot: %v", err)
		return
	}
	select {
	case w.Snapshots <- snap:
	default:
		// Viewer hasn't consumed the previous one; replace it.
		select {
		case <-w.Snapshots:
		default:
		}
		w.Snapshots <- snap
	}
}
