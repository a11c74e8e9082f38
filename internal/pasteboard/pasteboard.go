// Package pasteboard provides typed access to the system pasteboard.
// Build constraints select the implementation:
//
//	pasteboard_darwin.go: macOS via golang.design/x/clipboard + cgo changeCount
//	pasteboard_other.go:  in-memory stand-in for non-darwin builds
//
// The pasteboard exposes no change notification, only a monotonically
// increasing change counter; callers poll ChangeCount and Read on increments.
package pasteboard

import "sync"

// Contents is one pasteboard generation, decomposed into the two
// representations clipx understands. Image is always canonical PNG; sources
// that publish only legacy raster (TIFF) are converted on read.
type Contents struct {
	Text  string
	Image []byte
}

// Empty reports whether the generation carried nothing usable.
func (c Contents) Empty() bool { return c.Text == "" && len(c.Image) == 0 }

// Backend is the interface all platform pasteboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// ChangeCount returns the pasteboard's current change counter.
	ChangeCount() int64

	// Read returns the current contents. Reading probes text and image
	// independently; either or both may be absent.
	Read() (Contents, error)

	// Write replaces the pasteboard contents in a single generation: text
	// and image (when both are present) must land together so a paste sees
	// the full mixed entry.
	Write(c Contents) error
}

// Memory is an in-memory Backend used by tests and non-darwin builds.
type Memory struct {
	mu    sync.Mutex
	count int64
	cur   Contents
}

// NewMemory returns an empty in-memory pasteboard.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Name() string { return "in-memory pasteboard" }

func (m *Memory) ChangeCount() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

func (m *Memory) Read() (Contents, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.cur
	if cur.Image != nil {
		cur.Image = append([]byte(nil), cur.Image...)
	}
	return cur, nil
}

func (m *Memory) Write(c Contents) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = c
	m.count++
	return nil
}
