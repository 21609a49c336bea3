package questions

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"intervu/internal/errors"
)

// Source serves the current question bank. When backed by a file it can watch
// that file and swap in a new bank whenever it changes and parses cleanly.
type Source struct {
	bank     atomic.Pointer[Bank]
	path     string
	debounce time.Duration
	logger   *errors.Logger
	reloads  atomic.Int64
	onReload func(err error)
}

// NewSource returns a Source. An empty path serves the built-in bank.
func NewSource(path string, logger *errors.Logger) (*Source, error) {
	s := &Source{path: path, debounce: 500 * time.Millisecond, logger: logger}
	if path == "" {
		s.bank.Store(Default())
		return s, nil
	}
	b, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.bank.Store(b)
	return s, nil
}

// StaticSource wraps an in-memory bank.
func StaticSource(b *Bank) *Source {
	s := &Source{}
	s.bank.Store(b)
	return s
}

// Bank returns the current bank.
func (s *Source) Bank() *Bank {
	return s.bank.Load()
}

// Reloads returns how many times the bank was replaced.
func (s *Source) Reloads() int64 {
	return s.reloads.Load()
}

// OnReload registers fn to be called after every watcher-triggered reload
// attempt. Must be set before Watch is started.
func (s *Source) OnReload(fn func(err error)) {
	s.onReload = fn
}

// Reload re-reads the bank file. On error the current bank is kept.
func (s *Source) Reload() error {
	if s.path == "" {
		return nil
	}
	b, err := Load(s.path)
	if err != nil {
		return err
	}
	s.bank.Store(b)
	s.reloads.Add(1)
	return nil
}

// Watch reloads the bank when its file changes, until ctx is done. It returns
// immediately for the built-in bank.
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create question bank watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			s.warn("Failed to close question bank watcher", "error", err)
		}
	}()

	// Watch the directory so editors that replace the file by rename are seen.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	s.info("Question bank watcher started", "path", s.path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			err := s.Reload()
			if s.onReload != nil {
				s.onReload(err)
			}
			if err != nil {
				if s.logger != nil {
					s.logger.LogError(err, "Question bank reload failed, keeping previous bank", "path", s.path)
				}
				continue
			}
			s.info("Question bank reloaded", "path", s.path, "fields", len(s.Bank().Fields()))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.warn("Question bank watcher error", "error", err)
		}
	}
}

func (s *Source) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Source) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
