// Package ipc provides the local Unix-socket channel used by CLI
// sub-commands (history, clear, status) to talk to the running clipx daemon,
// and doubles as the single-instance check: a live socket means a daemon is
// already running, and a TAKEOVER message asks it to step aside.
package ipc

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
)

// SocketPath returns the platform-appropriate path for the IPC socket.
//
//   - Linux / macOS: $TMPDIR/clipx.sock  (override with $CLIPX_SOCKET)
//   - Windows:       \\.\pipe\clipx      (named pipe, not implemented)
func SocketPath() string {
	if s := os.Getenv("CLIPX_SOCKET"); s != "" {
		return s
	}
	if runtime.GOOS == "windows" {
		return `\\.\pipe\clipx`
	}
	return filepath.Join(os.TempDir(), "clipx.sock")
}

// IsRunning reports whether a clipx daemon appears to be listening on the
// IPC socket. A cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := net.Dial("unix", SocketPath())
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Dial connects to the daemon's IPC socket.
func Dial() (net.Conn, error) {
	conn, err := net.Dial("unix", SocketPath())
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", SocketPath(), err)
	}
	return conn, nil
}

// Listen creates a net.Listener on the IPC socket path. A stale socket file
// from a crashed run is removed first, but only if nothing answers on it.
func Listen() (net.Listener, error) {
	path := SocketPath()
	if IsRunning() {
		return nil, fmt.Errorf("socket %s is in use by a running daemon", path)
	}
	_ = os.Remove(path)
	return net.Listen("unix", path)
}
