// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when definition files change.
//
// It watches the directories that hold the given files (not their
// subdirectories), filters events with doublestar patterns built from the file
// paths and invokes a callback after a debounce period. Events within the
// debounce window are coalesced so the callback fires once with the full set
// of changed paths.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the delay before firing the OnChange callback after the
// last filesystem event. Editors that write a temp file and rename it produce
// several events per save.
const DefaultDebounce = 300 * time.Millisecond

// ErrWatcherBroken is returned by Run when the operating system can no longer
// deliver events (watch or file descriptor limits exhausted).
var ErrWatcherBroken = errors.New("file watcher broken")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Paths are the files to watch. Entries may be doublestar patterns
		// (e.g. "mk/*.mk"); only the directory before the first meta
		// character is watched.
		Paths []string

		// Debounce is the quiet period after the last event before the callback
		// fires. Zero or negative values fall back to DefaultDebounce.
		Debounce time.Duration

		// ClearScreen clears the terminal before each callback invocation by
		// writing ANSI escape sequences to Stdout.
		ClearScreen bool

		// OnChange is called after the debounce window closes with the sorted,
		// deduplicated list of changed file paths. A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		// Stdout receives the clear-screen sequence. nil means os.Stdout.
		Stdout io.Writer

		// Logger receives watcher diagnostics. nil discards them.
		Logger *log.Logger
	}

	// Watcher monitors definition files and fires a debounced callback when
	// one of them changes. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		patterns []string
		dirs     []string
		stdout   io.Writer
		logger   *log.Logger
		debounce time.Duration
		started  atomic.Bool
	}
)

// New creates a Watcher from the given Config. Every path is resolved to an
// absolute pattern and its directory registered with fsnotify.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("watch: no paths to watch")
	}

	patterns, dirs, err := resolvePaths(cfg.Paths)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	for _, dir := range dirs {
		if addErr := fsw.Add(dir); addErr != nil {
			if closeErr := fsw.Close(); closeErr != nil {
				logger.Warn("close after init failure", "err", closeErr)
			}
			return nil, fmt.Errorf("watch: add directory %q: %w", dir, addErr)
		}
		logger.Debug("watching directory", "dir", dir)
	}

	return &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		patterns: patterns,
		dirs:     dirs,
		stdout:   stdout,
		logger:   logger,
		debounce: debounce,
	}, nil
}

// Run blocks until ctx is cancelled, processing filesystem events and
// dispatching debounced callbacks. It returns nil on context cancellation and
// an error wrapping ErrWatcherBroken when the watcher cannot continue.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}
	w.logger.Debug("watching", "dirs", w.dirs, "debounce", w.debounce)

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire may run after ctx is cancelled because time.AfterFunc is not
	// stopped synchronously. Callbacks never overlap: a busy run reschedules.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Warn("skipping re-render, previous run still in progress")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.ClearScreen {
			// clear screen, cursor to top-left
			fmt.Fprint(w.stdout, "\033[2J\033[H")
		}

		w.logger.Debug("definition files changed", "files", changed)
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("re-render failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Warn("close fsnotify", "err", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			// Permission and timestamp changes do not alter content.
			if evt.Op == fsnotify.Chmod {
				continue
			}
			if !w.matches(evt.Name) {
				continue
			}

			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isBroken(err) {
				return fmt.Errorf("watch: %w: %w", ErrWatcherBroken, err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// isBroken reports whether err leaves the watcher unable to deliver events.
func isBroken(err error) bool {
	var errno syscall.Errno
	return errors.As(err, &errno) && slices.Contains(brokenErrnos, errno)
}

// matches reports whether the absolute event path matches a watched pattern.
func (w *Watcher) matches(name string) bool {
	normalized := filepath.ToSlash(name)
	for _, pat := range w.patterns {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// resolvePaths turns paths into absolute slash-separated patterns and the
// deduplicated directories to register with fsnotify.
func resolvePaths(paths []string) (patterns, dirs []string, err error) {
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, absErr := filepath.Abs(p)
		if absErr != nil {
			return nil, nil, fmt.Errorf("watch: resolve %q: %w", p, absErr)
		}
		pattern := filepath.ToSlash(abs)
		if !doublestar.ValidatePattern(pattern) {
			return nil, nil, fmt.Errorf("watch: invalid pattern %q", p)
		}
		patterns = append(patterns, pattern)

		base, _ := doublestar.SplitPattern(pattern)
		dir := filepath.FromSlash(base)
		if _, dup := seen[dir]; dup {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return patterns, dirs, nil
}
