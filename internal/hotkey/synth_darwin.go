//go:build darwin

package hotkey

// #include <ApplicationServices/ApplicationServices.h>
import "C"

import "fmt"

// SendPaste synthesises a Cmd+V key-down/key-up pair at the HID tap level.
// The chord is delivered to whichever window holds OS keyboard focus, so the
// caller must restore focus to the paste target before calling this.
func SendPaste() error {
	down := C.CGEventCreateKeyboardEvent(0, C.CGKeyCode(KeyV), true)
	if down == 0 {
		return fmt.Errorf("create key-down event")
	}
	defer C.CFRelease(C.CFTypeRef(down))

	up := C.CGEventCreateKeyboardEvent(0, C.CGKeyCode(KeyV), false)
	if up == 0 {
		return fmt.Errorf("create key-up event")
	}
	defer C.CFRelease(C.CFTypeRef(up))

	C.CGEventSetFlags(down, C.CGEventFlags(FlagCommand))
	C.CGEventSetFlags(up, C.CGEventFlags(FlagCommand))

	C.CGEventPost(C.kCGHIDEventTap, down)
	C.CGEventPost(C.kCGHIDEventTap, up)
	return nil
}
