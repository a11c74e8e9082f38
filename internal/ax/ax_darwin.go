//go:build darwin

package ax

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework ApplicationServices -framework AppKit
// #import <ApplicationServices/ApplicationServices.h>
// #import <AppKit/AppKit.h>
//
// int clipx_axTrusted(void) {
//     return AXIsProcessTrusted() ? 1 : 0;
// }
//
// void clipx_axRequestTrust(void) {
//     @autoreleasepool {
//         NSDictionary *opts = @{(__bridge NSString *)kAXTrustedCheckOptionPrompt: @YES};
//         AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)opts);
//     }
// }
//
// // clipx_axFocusedElement returns a retained AXUIElementRef or NULL.
// AXUIElementRef clipx_axFocusedElement(void) {
//     AXUIElementRef systemWide = AXUIElementCreateSystemWide();
//     if (systemWide == NULL) return NULL;
//     CFTypeRef focused = NULL;
//     AXError err = AXUIElementCopyAttributeValue(systemWide, kAXFocusedUIElementAttribute, &focused);
//     CFRelease(systemWide);
//     if (err != kAXErrorSuccess) return NULL;
//     return (AXUIElementRef)focused;
// }
//
// // clipx_axElementRect fills the element's position and size.
// // Returns 0 on success, 1 when only the size was unavailable, -1 on failure.
// int clipx_axElementRect(AXUIElementRef el, double *x, double *y, double *w, double *h) {
//     CFTypeRef posValue = NULL;
//     if (AXUIElementCopyAttributeValue(el, kAXPositionAttribute, &posValue) != kAXErrorSuccess || posValue == NULL) {
//         return -1;
//     }
//     CGPoint pos;
//     bool ok = AXValueGetValue((AXValueRef)posValue, kAXValueTypeCGPoint, &pos);
//     CFRelease(posValue);
//     if (!ok) return -1;
//     *x = pos.x;
//     *y = pos.y;
//
//     CFTypeRef sizeValue = NULL;
//     if (AXUIElementCopyAttributeValue(el, kAXSizeAttribute, &sizeValue) != kAXErrorSuccess || sizeValue == NULL) {
//         return 1;
//     }
//     CGSize size;
//     ok = AXValueGetValue((AXValueRef)sizeValue, kAXValueTypeCGSize, &size);
//     CFRelease(sizeValue);
//     if (!ok) return 1;
//     *w = size.width;
//     *h = size.height;
//     return 0;
// }
//
// int clipx_axFocusElement(AXUIElementRef el) {
//     AXError err = AXUIElementSetAttributeValue(el, kAXFocusedAttribute, kCFBooleanTrue);
//     return err == kAXErrorSuccess ? 0 : (int)err;
// }
//
// void clipx_axRelease(AXUIElementRef el) {
//     if (el != NULL) CFRelease(el);
// }
//
// int clipx_frontmostApp(int *pid, char *name, int nameLen) {
//     @autoreleasepool {
//         NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
//         if (app == nil) return -1;
//         *pid = (int)app.processIdentifier;
//         NSString *n = app.localizedName ?: @"";
//         strlcpy(name, n.UTF8String, nameLen);
//         return 0;
//     }
// }
//
// int clipx_activateApp(int pid) {
//     @autoreleasepool {
//         NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:(pid_t)pid];
//         if (app == nil) return -1;
//         return [app activateWithOptions:0] ? 0 : -2;
//     }
// }
import "C"

import (
	"fmt"
	"log/slog"
	"sync"
)

type darwinProvider struct{}

// New returns the macOS Accessibility provider.
func New() Provider { return darwinProvider{} }

func (darwinProvider) Trusted() bool { return C.clipx_axTrusted() == 1 }

func (darwinProvider) RequestTrust() { C.clipx_axRequestTrust() }

func (darwinProvider) FocusedElement() (Element, bool) {
	ref := C.clipx_axFocusedElement()
	if ref == 0 {
		return nil, false
	}
	return &darwinElement{ref: ref}, true
}

func (darwinProvider) FocusedElementRect() (Rect, bool) {
	ref := C.clipx_axFocusedElement()
	if ref == 0 {
		slog.Debug("no focused element")
		return Rect{}, false
	}
	defer C.clipx_axRelease(ref)

	var x, y, w, h C.double
	switch C.clipx_axElementRect(ref, &x, &y, &w, &h) {
	case 0:
		return Rect{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(h)}, true
	case 1:
		// Position known, size not: substitute a plausible text-field box.
		return Rect{X: float64(x), Y: float64(y), Width: DefaultWidth, Height: DefaultHeight}, true
	default:
		slog.Debug("focused element has no position")
		return Rect{}, false
	}
}

func (darwinProvider) FrontmostApp() (App, bool) {
	var pid C.int
	name := make([]C.char, 256)
	if C.clipx_frontmostApp(&pid, &name[0], 256) != 0 {
		return nil, false
	}
	return &darwinApp{pid: int(pid), name: C.GoString(&name[0])}, true
}

type darwinElement struct {
	ref      C.AXUIElementRef
	released sync.Once
}

func (e *darwinElement) Focus() error {
	if e.ref == 0 {
		return fmt.Errorf("element already released")
	}
	if rc := C.clipx_axFocusElement(e.ref); rc != 0 {
		return fmt.Errorf("ax focus failed: AXError %d", int(rc))
	}
	return nil
}

func (e *darwinElement) Release() {
	e.released.Do(func() {
		C.clipx_axRelease(e.ref)
		e.ref = 0
	})
}

type darwinApp struct {
	pid  int
	name string
}

func (a *darwinApp) Name() string { return a.name }

func (a *darwinApp) Activate() error {
	if rc := C.clipx_activateApp(C.int(a.pid)); rc != 0 {
		return fmt.Errorf("activate %q (pid %d): code %d", a.name, a.pid, int(rc))
	}
	return nil
}
