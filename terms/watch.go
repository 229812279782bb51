package terms

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 75 * time.Millisecond

// Update is sent by a Watcher each time the watched terms file changed.
type Update struct {
	Terms []string
	Err   error
}

type Watcher struct {
	w    *fsnotify.Watcher
	path string
	set  string
	quit chan struct{}
	done chan struct{}
}

// Watch reloads set from the terms file at path whenever it changes and
// sends the result on ch. The parent directory is watched as editors tend to
// replace files rather than write them in place.
func Watch(path, set string, ch chan<- Update) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	wa := &Watcher{
		w:    w,
		path: abs,
		set:  set,
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go wa.run(ch)
	return wa, nil
}

func (w *Watcher) run(ch chan<- Update) {
	defer close(w.done)
	send := func(u Update) bool {
		select {
		case ch <- u:
			return true
		case <-w.quit:
			return false
		}
	}

	var timer <-chan time.Time
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer = time.After(debounce)
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			if !send(Update{Err: err}) {
				return
			}
		case <-timer:
			timer = nil
			l, err := LoadSet(w.path, w.set)
			if !send(Update{Terms: l, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) Close() error {
	close(w.quit)
	err := w.w.Close()
	<-w.done
	return err
}
