package prefs

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	applog "github.com/hannesa2/AudioRecorder/internal/log"
)

const watchDebounce = 200 * time.Millisecond

// Watch reloads the store whenever the backing file changes on disk and
// calls onChange after each successful reload. It blocks until ctx is done.
//
// The parent directory is watched rather than the file, because atomic
// writes replace the file's inode.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch preferences directory %s: %w", dir, err)
	}
	s.logger.Debug().Str(applog.FieldEvent, "prefs.watcher_started").Str(applog.FieldPath, s.path).Msg("watching preferences")

	target := filepath.Clean(s.path)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug().Str(applog.FieldEvent, "prefs.watcher_stopped").Msg("preferences watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				if ctx.Err() != nil {
					return
				}
				if err := s.Reload(); err != nil {
					s.logger.Error().Err(err).Str(applog.FieldEvent, "prefs.reload_failed").Msg("reloading preferences")
					return
				}
				if onChange != nil {
					onChange()
				}
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error().Err(err).Str(applog.FieldEvent, "prefs.watcher_error").Msg("preferences watcher error")
		}
	}
}
