package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settle is how long the watcher waits for a burst of writes to finish.
const settle = 100 * time.Millisecond

// Event reports a write to the snapshot by any process. Kinds lists the
// touched kind directories in order; All means the change could not be
// attributed and everything should be reloaded.
type Event struct {
	Kinds []string
	All   bool
}

// Watch streams change events until ctx is done. Events that arrive while the
// consumer is busy are folded into the next one, so a slow reader only sees
// fewer, larger events.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: watch: base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: watch: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: watch: %w", err)
	}
	if err := addTree(w, p.basePath); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	out := make(chan Event, 1)
	go p.watchLoop(ctx, w, out)
	return out, nil
}

func (p *persistence) watchLoop(ctx context.Context, w *fsnotify.Watcher, out chan<- Event) {
	defer close(out)
	defer func() {
		if err := w.Close(); err != nil {
			p.log.Warn("close watcher", zap.Error(err))
		}
	}()

	var (
		pending batch
		timer   = time.NewTimer(settle)
		next    Event
		// ready is non-nil once the burst has settled and next is due.
		ready chan<- Event
	)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			p.log.Warn("watcher", zap.Error(err))
			pending.all = true
			timer.Reset(settle)
			ready = nil

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create != 0 {
				// Kind directories are created on first write.
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := addTree(w, ev.Name); err != nil {
						p.log.Warn("watch directory", zap.String("dir", ev.Name), zap.Error(err))
					}
				}
			}
			pending.add(p.kindForPath(ev.Name))
			timer.Reset(settle)
			ready = nil

		case <-timer.C:
			if !pending.empty() {
				next = pending.event()
				ready = out
			}

		case ready <- next:
			pending = batch{}
			ready = nil
		}
	}
}

// batch accumulates the kinds touched during one burst.
type batch struct {
	kinds map[string]bool
	all   bool
}

func (b *batch) add(kind string) {
	if kind == "" {
		b.all = true
		return
	}
	if b.kinds == nil {
		b.kinds = make(map[string]bool)
	}
	b.kinds[kind] = true
}

func (b *batch) empty() bool {
	return !b.all && len(b.kinds) == 0
}

func (b *batch) event() Event {
	if b.all {
		return Event{All: true}
	}
	kinds := make([]string, 0, len(b.kinds))
	for k := range b.kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return Event{Kinds: kinds}
}

// addTree watches root and every directory below it.
func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil
		case err != nil:
			return err
		case !d.IsDir():
			return nil
		}
		return w.Add(path)
	})
}

// kindForPath names the kind directory path lives in, or "" when path is not
// inside one.
func (p *persistence) kindForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	top, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	for _, kind := range Kinds() {
		if top == kind {
			return kind
		}
	}
	return ""
}
