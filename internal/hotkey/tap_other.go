//go:build !darwin

package hotkey

import "log/slog"

// Listener is an inert stand-in on platforms without CGEventTap. Start
// reports permission denied so the daemon degrades the same way it does on
// macOS without the Accessibility permission.
type Listener struct {
	cfg *Config
}

// NewListener returns a stopped listener for cfg.
func NewListener(cfg *Config) *Listener {
	return &Listener{cfg: cfg}
}

// Start reports the global intercept as unavailable.
func (l *Listener) Start() error {
	slog.Warn("global hotkey intercept is only available on macOS")
	if l.cfg.OnPermissionDenied != nil {
		l.cfg.OnPermissionDenied()
	}
	return nil
}

// Stop is a no-op.
func (l *Listener) Stop() {}

// SendPaste is unavailable off-macOS.
func SendPaste() error {
	slog.Warn("paste synthesis is only available on macOS")
	return nil
}
