// Package app assembles the clipx daemon: the pasteboard watcher, the global
// hotkey listener, the popup controller, the menu-bar item, and the IPC
// socket for the CLI sub-commands. It owns the UI dispatch queue and the
// shutdown sequence.
package app

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.clipx.app/clipx/internal/ax"
	"go.clipx.app/clipx/internal/history"
	"go.clipx.app/clipx/internal/hotkey"
	"go.clipx.app/clipx/internal/ipc"
	"go.clipx.app/clipx/internal/pasteboard"
	"go.clipx.app/clipx/internal/popup"
	"go.clipx.app/clipx/internal/screen"
	"go.clipx.app/clipx/internal/watcher"
)

// trustRecheckInterval is how often a daemon that started without the
// Accessibility permission re-tests for it.
const trustRecheckInterval = 3 * time.Second

// shutdownTimeout bounds how long Run waits for the watcher goroutine on the
// way out.
const shutdownTimeout = 2 * time.Second

// Config carries everything resolved from flags before the daemon starts.
type Config struct {
	Version string
	Commit  string

	// HistoryPath overrides the default history file location when set.
	HistoryPath  string
	MaxHistory   int
	PollInterval time.Duration

	// Takeover asks an already-running daemon to exit instead of refusing
	// to start.
	Takeover bool

	// Updated marks a relaunch performed by the updater.
	Updated bool

	// Debug gates per-keystroke logging in the hotkey listener.
	Debug bool

	// Renderer draws the popup. Nil selects the logging no-op renderer.
	Renderer popup.Renderer
}

// App is a running daemon.
type App struct {
	cfg Config

	store      *history.Store
	backend    pasteboard.Backend
	axp        ax.Provider
	watcher    *watcher.Watcher
	listener   *hotkey.Listener
	controller *popup.Controller

	ipcLn net.Listener

	// ui serialises popup mutation triggered from the tap thread, the
	// systray click goroutines, and the IPC server.
	ui chan func()

	startedAt   time.Time
	hotkeyReady atomic.Bool
	denied      atomic.Bool

	quitOnce sync.Once
	quitting chan struct{}
}

// New builds the daemon but starts nothing.
func New(cfg Config) (*App, error) {
	if cfg.HistoryPath == "" {
		p, err := history.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("history path: %w", err)
		}
		cfg.HistoryPath = p
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = history.DefaultMax
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = watcher.DefaultInterval
	}
	if cfg.Renderer == nil {
		cfg.Renderer = popup.NopRenderer{}
	}

	backend, err := pasteboard.New()
	if err != nil {
		return nil, fmt.Errorf("pasteboard: %w", err)
	}

	a := &App{
		cfg:       cfg,
		backend:   backend,
		axp:       ax.New(),
		ui:        make(chan func(), 16),
		startedAt: time.Now(),
		quitting:  make(chan struct{}),
	}

	a.store = history.New(cfg.HistoryPath,
		history.WithMax(cfg.MaxHistory),
		history.WithChangeFunc(func(preview string) {
			slog.Debug("history changed", "preview", preview)
		}),
	)

	a.controller = popup.NewController(a.store, backend, a.axp, cfg.Renderer, screen.List,
		popup.WithDispatcher(a.do),
	)

	a.watcher = watcher.New(backend, a.store,
		watcher.WithInterval(cfg.PollInterval),
	)

	a.listener = hotkey.NewListener(&hotkey.Config{
		OnTrigger: func() { a.do(a.controller.Toggle) },
		OnQuit:    a.Quit,
		OnKey:     a.controller.HandleKey,
		OnPermissionDenied: func() {
			a.denied.Store(true)
			a.hotkeyReady.Store(false)
			slog.Warn("accessibility permission missing; hotkey disabled",
				"fix", "System Settings > Privacy & Security > Accessibility")
			a.axp.RequestTrust()
		},
		Debug: cfg.Debug,
	})

	return a, nil
}

// Run starts every component and blocks until Quit. It must be called from
// the main goroutine; the menu-bar loop requires it.
func (a *App) Run() error {
	if err := a.claimInstance(); err != nil {
		return err
	}

	if a.cfg.Updated {
		slog.Info("update applied", "version", a.cfg.Version, "commit", a.cfg.Commit)
	}

	a.store.Load()
	slog.Info("clipx starting",
		"version", a.cfg.Version,
		"history", a.cfg.HistoryPath,
		"entries", a.store.Len(),
		"poll", a.cfg.PollInterval,
		"pasteboard", a.backend.Name(),
	)

	go a.dispatchLoop()

	a.watcher.Start()

	// Start reports a permission problem through OnPermissionDenied, not
	// through its error.
	switch err := a.listener.Start(); {
	case err != nil:
		slog.Warn("hotkey listener not started", "err", err)
	case a.denied.Load():
		go a.retrustLoop()
	default:
		a.hotkeyReady.Store(true)
	}

	ln, err := ipc.Listen()
	if err != nil {
		slog.Warn("IPC socket unavailable", "err", err)
	} else {
		a.ipcLn = ln
		slog.Info("IPC socket listening", "path", ipc.SocketPath())
		go a.serveIPC(ln)
	}

	a.runTray()

	a.shutdown()
	return nil
}

// Quit initiates shutdown. Safe to call from any goroutine, any number of
// times.
func (a *App) Quit() {
	a.quitOnce.Do(func() {
		close(a.quitting)
		quitTray()
	})
}

// do queues fn on the UI dispatch queue. Callers on the tap thread must not
// block, so a full queue drops with a warning instead of stalling keystroke
// delivery.
func (a *App) do(fn func()) {
	select {
	case a.ui <- fn:
	case <-a.quitting:
	default:
		slog.Warn("UI queue full, dropping event")
	}
}

func (a *App) dispatchLoop() {
	for {
		select {
		case fn := <-a.ui:
			fn()
		case <-a.quitting:
			return
		}
	}
}

// retrustLoop polls for the Accessibility permission after a denied tap and
// restarts the listener once it appears.
func (a *App) retrustLoop() {
	t := time.NewTicker(trustRecheckInterval)
	defer t.Stop()
	for {
		select {
		case <-a.quitting:
			return
		case <-t.C:
			if !a.axp.Trusted() {
				continue
			}
			slog.Info("accessibility permission granted, starting hotkey listener")
			a.denied.Store(false)
			if err := a.listener.Start(); err != nil {
				slog.Warn("hotkey listener restart failed", "err", err)
				continue
			}
			if a.denied.Load() {
				continue
			}
			a.hotkeyReady.Store(true)
			return
		}
	}
}

// claimInstance enforces the single-daemon rule. With Takeover it asks the
// incumbent to exit and waits for the socket to free up.
func (a *App) claimInstance() error {
	if !ipc.IsRunning() {
		return nil
	}
	if !a.cfg.Takeover {
		return fmt.Errorf("clipx is already running (socket %s); use --takeover to replace it", ipc.SocketPath())
	}

	if err := requestTakeover(); err != nil {
		return fmt.Errorf("takeover: %w", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if !ipc.IsRunning() {
			slog.Info("previous instance exited")
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("takeover: previous instance still holding %s", ipc.SocketPath())
}

func (a *App) shutdown() {
	slog.Info("clipx shutting down")
	if a.ipcLn != nil {
		_ = a.ipcLn.Close()
	}
	a.listener.Stop()
	a.watcher.Stop(shutdownTimeout)
	a.controller.Dismiss()
	a.store.Flush()
	_ = os.Remove(ipc.SocketPath())
	slog.Info("bye")
}
