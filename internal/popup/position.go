// Package popup implements the clipboard history popup: the placement
// engine, the show/hide/confirm state machine, and the capability interface
// the visual layer plugs into.
package popup

import (
	"log/slog"

	"go.clipx.app/clipx/internal/ax"
	"go.clipx.app/clipx/internal/screen"
)

// Popup geometry. The visual layer draws at exactly these metrics; the
// controller uses them to size the window before placement.
const (
	Width      = 320.0
	MaxHeight  = 400.0
	ItemHeight = 76.0
	Padding    = 8.0

	// gap between the focused element's edge and the popup.
	gap = 6.0
)

// ContentHeight returns the popup height for n history rows, capped at
// MaxHeight.
func ContentHeight(n int) float64 {
	h := float64(n)*ItemHeight + 2*Padding
	if h > MaxHeight {
		return MaxHeight
	}
	return h
}

// Placement is where the popup goes, in Cocoa coordinates.
type Placement struct {
	// CenterX is the intended horizontal center; subtract Width/2 for the
	// left edge.
	CenterX float64
	// Y is the popup's bottom edge.
	Y float64
	// ShowAbove reports that the popup sits above the anchor, which flips
	// the slide-in animation direction in the visual layer.
	ShowAbove bool
}

// CalculatePosition computes where the popup should appear relative to the
// focused element.
//
// elementRect is in the Accessibility convention (Y down from the top of the
// primary display); the returned placement is in the Cocoa convention (Y up
// from the bottom of the primary display). The popup prefers sitting below
// the element; above when below doesn't fit; whichever side has more room,
// clamped on-screen, when neither fits. Deterministic and side-effect-free
// apart from logging.
func CalculatePosition(elementRect ax.Rect, popupHeight float64, screens []screen.Screen) Placement {
	if len(screens) == 0 {
		return Placement{CenterX: 100, Y: 100}
	}

	// Flip AX coordinates into Cocoa using the primary display height.
	primaryHeight := screens[0].Frame.Height
	elemTop := primaryHeight - elementRect.Y
	elemBottom := primaryHeight - elementRect.Bottom()
	centerX := elementRect.CenterX()

	// The element lives on whichever display's visible area contains its
	// horizontal center and its bottom edge; default to the primary.
	target := screens[0]
	for _, s := range screens {
		if s.Visible.ContainsX(centerX) && s.Visible.ContainsY(elemBottom) {
			target = s
			break
		}
	}
	minY := target.Visible.Y
	maxY := target.Visible.MaxY()

	// Candidate placements: top edge gap below the element, or bottom edge
	// gap above it.
	yBelow := elemBottom - gap - popupHeight
	yAbove := elemTop + gap

	fitsBelow := yBelow >= minY
	fitsAbove := yAbove+popupHeight <= maxY

	p := Placement{CenterX: centerX, Y: yBelow}
	switch {
	case fitsBelow:
	case fitsAbove:
		p.Y = yAbove
		p.ShowAbove = true
	default:
		// Neither side fits whole; take the roomier side and clamp.
		spaceBelow := elemBottom - minY
		spaceAbove := maxY - elemTop
		if spaceAbove > spaceBelow {
			p.Y = yAbove
			p.ShowAbove = true
			if p.Y+popupHeight > maxY {
				p.Y = maxY - popupHeight
			}
		} else {
			if p.Y < minY {
				p.Y = minY
			}
		}
	}

	slog.Debug("popup placement",
		"element_bottom", elemBottom,
		"y", p.Y,
		"above", p.ShowAbove,
	)
	return p
}
