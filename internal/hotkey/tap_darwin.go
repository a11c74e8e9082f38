//go:build darwin

package hotkey

// #cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
// #include <ApplicationServices/ApplicationServices.h>
//
// CGEventRef clipxTapCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon);
//
// static CFMachPortRef clipx_createTap(void) {
//     return CGEventTapCreate(kCGSessionEventTap,
//                             kCGHeadInsertEventTap,
//                             kCGEventTapOptionDefault,
//                             CGEventMaskBit(kCGEventKeyDown),
//                             clipxTapCallback,
//                             NULL);
// }
import "C"

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
)

// Listener owns the CGEventTap and its run loop. One listener per process;
// the tap callback is a package-level export and dispatches to the active
// listener.
type Listener struct {
	cfg *Config

	mu      sync.Mutex
	runLoop C.CFRunLoopRef
	tap     C.CFMachPortRef
	running bool
	stopped chan struct{}
}

var (
	activeMu sync.RWMutex
	active   *Listener
)

// NewListener returns a stopped listener for cfg.
func NewListener(cfg *Config) *Listener {
	return &Listener{cfg: cfg}
}

// Start installs the event tap and runs its run loop on a dedicated OS
// thread. It returns once the tap is operational or has been reported as
// denied; the run loop keeps running until Stop.
func (l *Listener) Start() error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return nil
	}
	l.running = true
	l.stopped = make(chan struct{})
	l.mu.Unlock()

	activeMu.Lock()
	if active != nil && active != l {
		activeMu.Unlock()
		l.finish()
		return fmt.Errorf("another hotkey listener is already active")
	}
	active = l
	activeMu.Unlock()

	ready := make(chan bool, 1)
	go l.run(ready)

	if ok := <-ready; !ok {
		l.finish()
		if l.cfg.OnPermissionDenied != nil {
			l.cfg.OnPermissionDenied()
		}
		return nil
	}
	slog.Info("hotkey listener started", "trigger", "cmd+opt+v")
	return nil
}

// run owns the tap's run loop. The run loop is thread-bound state, so the
// goroutine is locked to its OS thread for its whole life.
func (l *Listener) run(ready chan<- bool) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer l.finish()

	tap := C.clipx_createTap()
	if tap == 0 {
		slog.Warn("event tap creation failed; accessibility permission missing?")
		ready <- false
		return
	}

	source := C.CFMachPortCreateRunLoopSource(C.kCFAllocatorDefault, tap, 0)
	if source == 0 {
		C.CFRelease(C.CFTypeRef(tap))
		slog.Warn("run loop source creation failed")
		ready <- false
		return
	}

	rl := C.CFRunLoopGetCurrent()
	C.CFRunLoopAddSource(rl, source, C.kCFRunLoopCommonModes)
	C.CGEventTapEnable(tap, true)

	l.mu.Lock()
	l.runLoop = rl
	l.tap = tap
	l.mu.Unlock()

	ready <- true
	C.CFRunLoopRun()

	C.CFRunLoopRemoveSource(rl, source, C.kCFRunLoopCommonModes)
	C.CFRelease(C.CFTypeRef(source))
	C.CFRelease(C.CFTypeRef(tap))
	slog.Debug("hotkey run loop ended")
}

// Stop terminates the run loop. Safe to call on a listener that never
// started or already stopped.
func (l *Listener) Stop() {
	l.mu.Lock()
	rl := l.runLoop
	running := l.running
	stopped := l.stopped
	l.mu.Unlock()

	if !running {
		return
	}
	if rl != 0 {
		C.CFRunLoopStop(rl)
	}
	if stopped != nil {
		<-stopped
	}
}

func (l *Listener) finish() {
	l.mu.Lock()
	wasRunning := l.running
	l.running = false
	l.runLoop = 0
	l.tap = 0
	stopped := l.stopped
	l.mu.Unlock()

	activeMu.Lock()
	if active == l {
		active = nil
	}
	activeMu.Unlock()

	if wasRunning && stopped != nil {
		close(stopped)
	}
}

// handleEvent is called from the exported tap callback. Returning true
// suppresses the event.
func (l *Listener) handleEvent(typ C.CGEventType, event C.CGEventRef) bool {
	switch typ {
	case C.kCGEventTapDisabledByTimeout, C.kCGEventTapDisabledByUserInput:
		// The OS disables taps whose callbacks stall; re-arm and move on.
		l.mu.Lock()
		tap := l.tap
		l.mu.Unlock()
		if tap != 0 {
			C.CGEventTapEnable(tap, true)
			slog.Warn("event tap was disabled by the OS, re-enabled")
		}
		return false
	case C.kCGEventKeyDown:
		code := uint16(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))
		flags := Flags(C.CGEventGetFlags(event))
		return l.cfg.handleKeyDown(code, flags) == verdictSuppress
	default:
		return false
	}
}
