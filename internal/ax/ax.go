// Package ax wraps the macOS Accessibility service: the focused UI element,
// its on-screen rectangle, the frontmost application, and the permission
// check. Every query can fail (elements vanish, permissions get revoked)
// so every accessor reports availability and callers degrade gracefully.
//
// Handles returned by a Provider are transient capability tokens: captured
// for one popup cycle, used at most once to restore focus, then released.
package ax

// Rect is a UI element's on-screen rectangle in the Accessibility
// convention: origin at the top-left of the primary display, Y growing
// downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Bottom returns the Y coordinate of the bottom edge (AX convention).
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// DefaultWidth and DefaultHeight substitute for elements that report a
// position but no size (single-line text fields commonly do).
const (
	DefaultWidth  = 100
	DefaultHeight = 22
)

// Element is an opaque handle to a focused UI element in another
// application. The handle is platform-owned and may outlive the element it
// points at; Release must be called exactly once when the popup cycle ends.
type Element interface {
	// Focus asks the OS to return keyboard focus to the element.
	Focus() error
	// Release frees the underlying platform reference.
	Release()
}

// App is an opaque handle to a running application.
type App interface {
	// Activate brings the application to the foreground.
	Activate() error
	// Name returns a human-readable application name for logs.
	Name() string
}

// Provider is the Accessibility service surface consumed by the popup
// controller. All methods tolerate unavailability.
type Provider interface {
	// Trusted reports whether the process holds the Accessibility
	// permission.
	Trusted() bool

	// RequestTrust prompts the user for the Accessibility permission.
	RequestTrust()

	// FocusedElement returns a handle to the currently focused UI element.
	FocusedElement() (Element, bool)

	// FocusedElementRect returns the focused element's rectangle in AX
	// coordinates.
	FocusedElementRect() (Rect, bool)

	// FrontmostApp returns the frontmost running application.
	FrontmostApp() (App, bool)
}
