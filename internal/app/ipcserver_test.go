package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.clipx.app/clipx/internal/ax"
	"go.clipx.app/clipx/internal/entry"
	"go.clipx.app/clipx/internal/history"
	"go.clipx.app/clipx/internal/message"
)

func testApp(t *testing.T) *App {
	t.Helper()
	a := &App{
		cfg:       Config{Version: "test"},
		store:     history.New(filepath.Join(t.TempDir(), "history.json")),
		axp:       ax.New(),
		ui:        make(chan func(), 16),
		startedAt: time.Now(),
		quitting:  make(chan struct{}),
	}
	return a
}

func TestHandleRequestHistory(t *testing.T) {
	a := testApp(t)
	a.store.Add(entry.NewText("first"))
	a.store.Add(entry.NewText("second"))
	a.store.Add(entry.NewText("third"))

	resp := a.handleRequest(&message.Message{Type: message.TypeHistory})
	require.Equal(t, message.TypeHistoryResponse, resp.Type)
	require.Len(t, resp.Entries, 3)
	assert.Equal(t, "third", resp.Entries[0].TextContent)

	resp = a.handleRequest(&message.Message{Type: message.TypeHistory, Limit: 2})
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "third", resp.Entries[0].TextContent)
	assert.Equal(t, "second", resp.Entries[1].TextContent)
}

func TestHandleRequestClear(t *testing.T) {
	a := testApp(t)
	a.store.Add(entry.NewText("doomed"))

	resp := a.handleRequest(&message.Message{Type: message.TypeClear})
	assert.Equal(t, message.TypeOK, resp.Type)
	assert.Equal(t, 0, a.store.Len())
}

func TestHandleRequestDelete(t *testing.T) {
	a := testApp(t)
	a.store.Add(entry.NewText("keep"))
	a.store.Add(entry.NewText("drop"))

	resp := a.handleRequest(&message.Message{Type: message.TypeDelete, Index: 0})
	assert.Equal(t, message.TypeOK, resp.Type)
	require.Equal(t, 1, a.store.Len())
	assert.Equal(t, "keep", a.store.Snapshot()[0].TextContent)

	resp = a.handleRequest(&message.Message{Type: message.TypeDelete, Index: 7})
	assert.Equal(t, message.TypeError, resp.Type)
	assert.Contains(t, resp.Error, "index 7")
}

func TestHandleRequestStatus(t *testing.T) {
	a := testApp(t)
	a.store.Add(entry.NewText("x"))
	a.hotkeyReady.Store(true)

	resp := a.handleRequest(&message.Message{Type: message.TypeStatus})
	require.Equal(t, message.TypeStatusResponse, resp.Type)
	require.NotNil(t, resp.Status)
	assert.Equal(t, "test", resp.Status.Version)
	assert.Equal(t, 1, resp.Status.HistoryLen)
	assert.True(t, resp.Status.HotkeyReady)
	assert.NotZero(t, resp.Status.PID)
}

func TestHandleRequestTakeover(t *testing.T) {
	a := testApp(t)
	resp := a.handleRequest(&message.Message{Type: message.TypeTakeover})
	assert.Equal(t, message.TypeOK, resp.Type)
}

func TestHandleRequestUnknown(t *testing.T) {
	a := testApp(t)
	resp := a.handleRequest(&message.Message{Type: "BOGUS"})
	require.Equal(t, message.TypeError, resp.Type)
	assert.Contains(t, resp.Error, "BOGUS")
}
