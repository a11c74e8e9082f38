//go:build darwin

package hotkey

// #include <ApplicationServices/ApplicationServices.h>
import "C"

import "unsafe"

//export clipxTapCallback
func clipxTapCallback(_ C.CGEventTapProxy, typ C.CGEventType, event C.CGEventRef, _ unsafe.Pointer) C.CGEventRef {
	activeMu.RLock()
	l := active
	activeMu.RUnlock()
	if l == nil {
		return event
	}
	if l.handleEvent(typ, event) {
		return 0 // consume: the focused application never sees it
	}
	return event
}
