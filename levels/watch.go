package levels

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a file must stay quiet before its change is reported.
// Editors often save in several writes.
const settle = 100 * time.Millisecond

// Watcher reports changes to a set of level files, one event per file for
// each burst of writes. It watches the parent directories so editors that
// replace files on save are still seen.
type Watcher struct {
	Events <-chan string
	Errors <-chan error

	fs       *fsnotify.Watcher
	files    map[string]bool
	cancel   context.CancelFunc
	done     chan struct{}
	closeErr error
}

func NewWatcher(files ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{fs: fs, files: make(map[string]bool, len(files)), done: make(chan struct{})}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err == nil && !slices.Contains(fs.WatchList(), filepath.Dir(abs)) {
			err = fs.Add(filepath.Dir(abs))
		}
		if err != nil {
			_ = fs.Close()
			return nil, err
		}
		w.files[abs] = true
	}

	events := make(chan string, 16)
	errs := make(chan error, 1)
	w.Events, w.Errors = events, errs

	var ctx context.Context
	ctx, w.cancel = context.WithCancel(context.Background())
	go w.run(ctx, events, errs)
	return w, nil
}

// Close stops watching and waits for the event loop to exit. Later calls
// return the same result.
func (w *Watcher) Close() error {
	w.cancel()
	<-w.done
	return w.closeErr
}

func (w *Watcher) run(ctx context.Context, events chan<- string, errs chan<- error) {
	defer close(w.done)

	changed := make(map[string]bool)
	quiet := time.NewTimer(settle)
	quiet.Stop()
	defer quiet.Stop()

	for {
		select {
		case <-ctx.Done():
			w.closeErr = w.fs.Close()
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if name, ok := w.match(ev); ok {
				changed[name] = true
				quiet.Reset(settle)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case errs <- err:
			default:
			}
		case <-quiet.C:
			for _, name := range slices.Sorted(maps.Keys(changed)) {
				select {
				case events <- name:
				case <-ctx.Done():
				}
			}
			clear(changed)
		}
	}
}

// match reports the absolute name of a watched file touched by ev.
func (w *Watcher) match(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil || !w.files[name] {
		return "", false
	}
	return name, true
}
