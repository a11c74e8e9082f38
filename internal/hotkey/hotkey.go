// Package hotkey installs the global key-down intercept that summons the
// popup, and synthesises the paste chord after a selection.
//
// Build constraints select the implementation:
//
//	tap_darwin.go: CGEventTap on a dedicated, OS-thread-locked run loop
//	tap_other.go:  inert stub for non-darwin builds
//
// Installing an event tap requires the Accessibility permission; a failed
// install is a signalled condition (Config.OnPermissionDenied), not an error
// that kills the process.
package hotkey

import "log/slog"

// macOS virtual key codes used by clipx.
const (
	KeyV      uint16 = 9
	KeyC      uint16 = 8
	KeyReturn uint16 = 36
	KeyEscape uint16 = 53
	KeyDown   uint16 = 125
	KeyUp     uint16 = 126
)

// Flags is the modifier bitmask carried by a key event. The values mirror
// CGEventFlags so darwin events convert without translation.
type Flags uint64

const (
	FlagShift   Flags = 1 << 17
	FlagControl Flags = 1 << 18
	FlagOption  Flags = 1 << 19
	FlagCommand Flags = 1 << 20
)

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Config wires the listener's callbacks. All callbacks run on the event-tap
// thread and must hand off promptly; the tap delays every keystroke in the
// session while a callback runs.
type Config struct {
	// TriggerKey is the letter key of the summon chord (default KeyV).
	// The chord is TriggerKey + Command + Option.
	TriggerKey uint16

	// OnTrigger fires when the summon chord is pressed. The event is
	// suppressed and never reaches the focused application.
	OnTrigger func()

	// OnQuit fires on Ctrl+C, mirroring terminal interrupt behaviour for a
	// background process.
	OnQuit func()

	// OnKey, when non-nil, sees every other key-down and returns true to
	// suppress it. The app routes popup navigation through this.
	OnKey func(code uint16, flags Flags) bool

	// OnPermissionDenied fires when the tap cannot be installed, which
	// almost always means the Accessibility permission is missing.
	OnPermissionDenied func()

	// Debug gates per-keystroke logging. Logging every key code by default
	// would be keylogging; it must be opted into explicitly.
	Debug bool
}

func (c *Config) triggerKey() uint16 {
	if c.TriggerKey == 0 {
		return KeyV
	}
	return c.TriggerKey
}

// verdict is the outcome of filtering one key-down event.
type verdict int

const (
	verdictPass verdict = iota
	verdictSuppress
)

// handleKeyDown applies the chord filter to one key-down event and invokes
// the matching callback. It is the platform-independent half of the tap
// callback and must stay fast and non-blocking.
func (c *Config) handleKeyDown(code uint16, flags Flags) verdict {
	if c.Debug {
		slog.Debug("key down",
			"code", code,
			"cmd", flags.Has(FlagCommand),
			"opt", flags.Has(FlagOption),
			"ctrl", flags.Has(FlagControl),
		)
	}

	if code == KeyC && flags.Has(FlagControl) {
		slog.Info("interrupt chord pressed, quitting")
		if c.OnQuit != nil {
			c.OnQuit()
		}
		return verdictSuppress
	}

	if code == c.triggerKey() && flags.Has(FlagCommand|FlagOption) {
		slog.Debug("summon chord pressed")
		if c.OnTrigger != nil {
			c.OnTrigger()
		}
		return verdictSuppress
	}

	if c.OnKey != nil && c.OnKey(code, flags) {
		return verdictSuppress
	}
	return verdictPass
}
