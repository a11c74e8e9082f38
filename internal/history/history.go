// Package history implements the bounded, deduplicated clipboard history
// store and its JSON persistence.
//
// The store is the only structure in clipx shared across goroutines without
// thread affinity: the watcher adds entries from its poll loop while the UI
// goroutine snapshots them for the popup. A single mutex covers every
// mutation and snapshot read. Persistence runs on its own goroutine outside
// the lock so disk latency never stalls a poll or a popup open; the history
// file is a non-durable cache, not a transaction log; a crash between unlock
// and write loses at most the last mutation.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.clipx.app/clipx/internal/entry"
	"go.clipx.app/clipx/internal/thumbnail"
)

// DefaultMax is the default history cap.
const DefaultMax = 50

// ChangeFunc is invoked after every successful Add with a short preview of
// the new entry. Called without the store lock held.
type ChangeFunc func(preview string)

// Store holds the ordered clipboard history, most recent first.
type Store struct {
	path     string
	max      int
	onChange ChangeFunc

	mu      sync.Mutex
	entries []entry.Entry

	// persistMu serialises writers so concurrent async persists cannot
	// interleave on the temp file.
	persistMu sync.Mutex
	persistWG sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

// WithMax overrides the history cap. Values < 1 keep the default.
func WithMax(n int) Option {
	return func(s *Store) {
		if n >= 1 {
			s.max = n
		}
	}
}

// WithChangeFunc registers the change-notification callback.
func WithChangeFunc(fn ChangeFunc) Option {
	return func(s *Store) { s.onChange = fn }
}

// New returns a Store persisting to path. Call Load before first use.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, max: DefaultMax}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DefaultPath returns the per-user history file location, creating the
// directory if needed: ~/Library/Application Support/ClipX/history.json on
// macOS, the os.UserConfigDir equivalent elsewhere.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	dir := filepath.Join(base, "ClipX")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return filepath.Join(dir, "history.json"), nil
}

// Load reads persisted entries from disk. A missing file yields an empty
// store. A file that fails to decode as a whole is discarded; history is a
// cache, starting fresh beats refusing to start. Invalid individual entries
// (no content at all) are skipped. Thumbnails are not persisted; they are
// regenerated here, and an image that fails to decode keeps its entry and
// just goes without one.
func (s *Store) Load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("history file unreadable, starting fresh", "path", s.path, "err", err)
		}
		return
	}

	var loaded []entry.Entry
	if err := json.Unmarshal(raw, &loaded); err != nil {
		slog.Warn("history file corrupt, starting fresh", "path", s.path, "err", err)
		return
	}

	kept := loaded[:0]
	for _, e := range loaded {
		if e.Valid() {
			kept = append(kept, e)
		}
	}
	if len(kept) > s.max {
		kept = kept[:s.max]
	}

	for i := range kept {
		if !kept[i].HasImage() {
			continue
		}
		thumb, err := thumbnail.Make(kept[i].ImageData, thumbnail.DefaultSize)
		if err != nil {
			slog.Warn("thumbnail regeneration failed, entry kept without one", "err", err)
			continue
		}
		kept[i].Thumbnail = thumb
	}

	s.mu.Lock()
	s.entries = kept
	s.mu.Unlock()

	slog.Info("history loaded", "path", s.path, "entries", len(kept))
}

// Add inserts e at the front, removing any existing identical entry first
// (duplicates are promoted, not duplicated) and evicting the oldest entries
// beyond the cap. Invalid entries are ignored. Persistence is asynchronous.
func (s *Store) Add(e entry.Entry) {
	if !e.Valid() {
		return
	}

	s.mu.Lock()
	kept := s.entries[:0]
	for _, old := range s.entries {
		if !old.Equal(e) {
			kept = append(kept, old)
		}
	}
	s.entries = append([]entry.Entry{e}, kept...)
	if len(s.entries) > s.max {
		s.entries = s.entries[:s.max]
	}
	n := len(s.entries)
	s.mu.Unlock()

	slog.Debug("history add", "type", e.ContentType, "entries", n)
	s.persistAsync()

	if s.onChange != nil {
		s.onChange(e.Preview())
	}
}

// Snapshot returns a copy of the history, most recent first. Callers never
// observe in-place mutation.
func (s *Store) Snapshot() []entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the current number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// DeleteAt removes the entry at index, reporting whether anything was
// removed. Out-of-range indexes are a no-op.
func (s *Store) DeleteAt(index int) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.entries) {
		n := len(s.entries)
		s.mu.Unlock()
		slog.Debug("history delete out of range", "index", index, "entries", n)
		return false
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	s.mu.Unlock()

	s.persistAsync()
	return true
}

// Clear empties the store and persists the empty state.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()

	slog.Info("history cleared")
	s.persistAsync()
}

// Flush writes the current state synchronously and waits for any in-flight
// asynchronous persists. Called on shutdown.
func (s *Store) Flush() {
	s.persistWG.Wait()
	s.persist()
}

func (s *Store) persistAsync() {
	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		s.persist()
	}()
}

// persist snapshots under the store lock and writes outside it.
func (s *Store) persist() {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	snap := s.Snapshot()

	raw, err := json.Marshal(snap)
	if err != nil {
		slog.Error("history encode failed", "err", err)
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		slog.Error("history write failed", "path", tmp, "err", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		slog.Error("history rename failed", "path", s.path, "err", err)
		return
	}
	slog.Debug("history persisted", "path", s.path, "entries", len(snap))
}
