package discovery

import (
	"context"
	"log"

	"github.com/fsnotify/fsnotify"

	"cachesalvage/cache"
)

// WatchEvent reports a newly observed cache entry file in a watched
// directory.
type WatchEvent struct {
	Dir  string
	Info CacheFileInfo
}

// Watch follows dir for newly created or renamed-in cache entry files and
// pushes one WatchEvent per recognized arrival until ctx is cancelled. It
// mirrors the broadcaster registration pattern used elsewhere in this
// codebase: the caller owns the channel and closing it is the caller's
// responsibility once ctx is done.
func Watch(ctx context.Context, dir string, events chan<- WatchEvent) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return err
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				handleWatchEvent(dir, ev, events)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("[discovery] watch error on %s: %v", dir, err)
			}
		}
	}()

	return nil
}

func handleWatchEvent(dir string, ev fsnotify.Event, events chan<- WatchEvent) {
	files, err := ListCacheFiles(dir)
	if err != nil {
		return
	}
	base := baseNameOf(ev.Name)
	if !cache.IsCacheFile(base) {
		return
	}
	for _, f := range files {
		if f.Name == base {
			events <- WatchEvent{Dir: dir, Info: f}
			return
		}
	}
}

func baseNameOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
