package chyp

import (
	"context"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"
	"github.com/retroenv/retrogolib/log"
)

// editors write files in several steps, wait for them to settle
const reloadDelay = 100 * time.Millisecond

// WatchROM sends the contents of the ROM file each time it changes, until
// ctx is done.
func WatchROM(ctx context.Context, logger *log.Logger, filename string) (<-chan []byte, error) {
	filename = filepath.Clean(filename)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(filepath.Dir(filename)); err != nil {
		watcher.Close()
		return nil, err
	}

	roms := make(chan []byte)
	go func() {
		defer watcher.Close()

		var reload <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return

			case ev := <-watcher.Event:
				if filepath.Clean(ev.Name) == filename && !ev.IsAttrib() {
					reload = time.After(reloadDelay)
				}

			case err := <-watcher.Error:
				logger.Warn("ROM watcher", log.Err(err))

			case <-reload:
				reload = nil
				rom, err := LoadGame(filename)
				if err != nil {
					logger.Warn("ROM changed but could not be read", log.Err(err))
					continue
				}
				select {
				case roms <- rom:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return roms, nil
}
