package policyserver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// reloadDelay lets a burst of write events settle before reloading
const reloadDelay = 100 * time.Millisecond

// CheckpointWatcher reloads the server's table when the checkpoint file
// changes on disk. It watches the parent directory so atomic
// rename-into-place saves are seen.
type CheckpointWatcher struct {
	server  *Server
	path    string
	watcher *fsnotify.Watcher
	logger  zerolog.Logger
	reloads chan struct{}
}

// NewCheckpointWatcher starts watching path's directory
func NewCheckpointWatcher(server *Server, path string, logger zerolog.Logger) (*CheckpointWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	return &CheckpointWatcher{
		server:  server,
		path:    abs,
		watcher: w,
		logger:  logger.With().Str("component", "CheckpointWatcher").Str("path", abs).Logger(),
		reloads: make(chan struct{}, 16),
	}, nil
}

// Reloads receives a value after every successful reload
func (cw *CheckpointWatcher) Reloads() <-chan struct{} { return cw.reloads }

// Run processes file events until ctx is cancelled, then closes the watcher.
func (cw *CheckpointWatcher) Run(ctx context.Context) {
	defer cw.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path || !ev.Has(fsnotify.Create|fsnotify.Write|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			cw.reload()
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}

func (cw *CheckpointWatcher) reload() {
	if err := cw.server.LoadCheckpoint(cw.path); err != nil {
		cw.logger.Error().Err(err).Msg("Checkpoint reload failed, keeping current table")
		return
	}
	cw.logger.Info().Msg("Checkpoint reloaded")
	select {
	case cw.reloads <- struct{}{}:
	default:
	}
}
