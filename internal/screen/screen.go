// Package screen reports display geometry in the rendering (Cocoa)
// convention: origin at the bottom-left of the primary display, Y growing
// upward. The first screen in a listing is always the primary display.
package screen

// Rect is an axis-aligned rectangle in Cocoa coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the top edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// ContainsX reports whether x falls within the horizontal span.
func (r Rect) ContainsX(x float64) bool { return r.X <= x && x <= r.MaxX() }

// ContainsY reports whether y falls within the vertical span.
func (r Rect) ContainsY(y float64) bool { return r.Y <= y && y <= r.MaxY() }

// Screen is one attached display.
type Screen struct {
	// Frame is the full display rectangle.
	Frame Rect
	// Visible is Frame minus the menu bar and the Dock; popups must stay
	// inside it.
	Visible Rect
}

// ListFunc enumerates attached displays, primary first. Injected so the
// position engine is testable against literal geometries.
type ListFunc func() []Screen
