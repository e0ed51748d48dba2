// Package watch re-validates steering documents as they change on disk.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mikeartee/kiro-steering-docs/document"
)

const (
	// eventChannelBuffer is the size of the watch event channel.
	eventChannelBuffer = 500

	defaultDebounce = 500 * time.Millisecond
)

// Config configures document file watching.
type Config struct {
	// DebounceDelay is how long to wait for more changes before
	// processing. Defaults to 500ms.
	DebounceDelay time.Duration

	// ExcludeDirs lists directory names to skip (e.g. .git,
	// node_modules).
	ExcludeDirs []string
}

// Op indicates the type of file operation.
type Op string

// OpCreate, OpModify, and OpDelete enumerate the watch operation types.
const (
	OpCreate Op = "create"
	OpModify Op = "modify"
	OpDelete Op = "delete"
)

// Event represents a steering document change.
type Event struct {
	// Path is the file path relative to the watched directory.
	Path string

	// AbsPath is the absolute file path.
	AbsPath string

	// Operation is the type of change.
	Operation Op
}

// Watcher watches a directory tree for Markdown changes and emits
// debounced events. Content hashes suppress events for saves that do
// not change file contents.
type Watcher struct {
	config  Config
	dir     string
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	excludes map[string]bool

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	hashMu sync.RWMutex
	hashes map[string]string

	events chan Event

	droppedEvents atomic.Int64
}

// New creates a watcher rooted at dir.
func New(config Config, dir string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = defaultDebounce
	}

	excludes := make(map[string]bool)
	if len(config.ExcludeDirs) == 0 {
		excludes[".git"] = true
		excludes["node_modules"] = true
		excludes["vendor"] = true
	} else {
		for _, name := range config.ExcludeDirs {
			excludes[name] = true
		}
	}

	return &Watcher{
		config:   config,
		dir:      dir,
		watcher:  fsw,
		logger:   logger,
		excludes: excludes,
		pending:  make(map[string]fsnotify.Op),
		hashes:   make(map[string]string),
		events:   make(chan Event, eventChannelBuffer),
	}, nil
}

// Events returns the channel of watch events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching the directory for changes.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.dir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("Watching for document changes",
		"dir", w.dir,
		"debounce", w.config.DebounceDelay)

	return nil
}

// Stop stops the watcher. The events channel is closed by the event
// loop when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// SetHash records the content hash for a file, seeded during the
// initial validation pass.
func (w *Watcher) SetHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

// DroppedEvents returns the number of events dropped due to channel
// overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

func (w *Watcher) getHash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if path != root && (w.excludes[base] || strings.HasPrefix(base, ".")) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if !strings.EqualFold(filepath.Ext(path), ".md") {
		// New subdirectories need their own watches.
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return
	}

	relPath, _ := filepath.Rel(w.dir, path)
	for excludeDir := range w.excludes {
		if strings.Contains(relPath, excludeDir+string(filepath.Separator)) {
			return
		}
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Document change detected", "path", relPath, "op", event.Op.String())
}

func (w *Watcher) handleNewDirectory(path string) {
	base := filepath.Base(path)
	if w.excludes[base] || strings.HasPrefix(base, ".") {
		return
	}

	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
	}
}

// flushPending processes accumulated changes.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}

	toProcess := make(map[string]fsnotify.Op, len(w.pending))
	for k, v := range w.pending {
		toProcess[k] = v
	}
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		relPath, _ := filepath.Rel(w.dir, path)
		event := Event{Path: relPath, AbsPath: path}

		if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
			event.Operation = OpDelete

			w.hashMu.Lock()
			delete(w.hashes, relPath)
			w.hashMu.Unlock()

			w.sendEvent(event)
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			event.Operation = OpDelete
			w.sendEvent(event)
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			w.logger.Warn("Failed to read changed file", "path", relPath, "error", err)
			continue
		}

		newHash := document.ContentHash(content)

		oldHash, hadHash := w.getHash(relPath)
		if hadHash && oldHash == newHash {
			continue
		}
		w.SetHash(relPath, newHash)

		if op.Has(fsnotify.Create) || !hadHash {
			event.Operation = OpCreate
		} else {
			event.Operation = OpModify
		}

		w.sendEvent(event)
	}
}

func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event", "path", event.Path, "op", event.Operation)
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}
