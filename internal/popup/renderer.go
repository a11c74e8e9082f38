package popup

import (
	"log/slog"

	"go.clipx.app/clipx/internal/entry"
)

// Renderer is the capability interface the visual layer (blur, springs,
// thumbnails, shipped separately) implements. The controller depends only
// on this interface, never on concrete drawing code.
//
// Renderer methods may be called from any goroutine; implementations that
// touch the UI toolkit must hop to the main thread themselves, since the
// toolkit is not thread-safe.
type Renderer interface {
	// Render replaces the displayed items and selection.
	Render(items []entry.Entry, selected int)

	// Show places the popup with its left edge at x and bottom edge at y
	// (Cocoa coordinates) and animates it in; fromAbove flips the slide
	// direction.
	Show(x, y float64, fromAbove bool)

	// Hide animates the popup out.
	Hide()

	// SetSelection moves the highlight to index i.
	SetSelection(i int)
}

// NopRenderer logs instead of drawing. It stands in when the visual layer is
// not linked (headless runs, tests, non-darwin builds).
type NopRenderer struct{}

func (NopRenderer) Render(items []entry.Entry, selected int) {
	slog.Debug("render", "items", len(items), "selected", selected)
}

func (NopRenderer) Show(x, y float64, fromAbove bool) {
	slog.Debug("show popup", "x", x, "y", y, "from_above", fromAbove)
}

func (NopRenderer) Hide() { slog.Debug("hide popup") }

func (NopRenderer) SetSelection(i int) { slog.Debug("set selection", "index", i) }
