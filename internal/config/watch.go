package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// WatchLoggerConfig monitors the loaded base directory for changes to the
// logger document and runs the manager's reload gate on each one. It runs
// until ctx is cancelled.
//
// The directory, not the file, is watched: the logger document is optional
// and may not exist yet, and atomic-save editors replace the inode on every
// write. The modification-time gate inside CheckLoggerConfig makes spurious
// events harmless, and a failed reload only aborts that reload — the
// previous log settings stay active and the next change retries.
func WatchLoggerConfig(ctx context.Context, m *Manager, p Paths, log *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(p.Base); err != nil {
		return err
	}

	log.Info("watching for logger configuration changes", "path", p.LoggerFile())

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != p.LoggerFile() {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := m.CheckLoggerConfig(); err != nil {
				log.Error("logger configuration reload failed; keeping previous log settings", "err", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("logger configuration watcher error", "err", err)
		}
	}
}
