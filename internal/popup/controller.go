package popup

import (
	"log/slog"
	"sync"
	"time"

	"go.clipx.app/clipx/internal/ax"
	"go.clipx.app/clipx/internal/entry"
	"go.clipx.app/clipx/internal/history"
	"go.clipx.app/clipx/internal/hotkey"
	"go.clipx.app/clipx/internal/pasteboard"
	"go.clipx.app/clipx/internal/screen"
)

// State is the popup lifecycle phase.
type State int

const (
	StateHidden State = iota
	StateShowing
	StateVisible
	StateHiding
)

// Refocus timing. Synthesised keystrokes land in whichever window holds OS
// focus, so the pipeline must be: activate the original app, give the OS
// time to finish the activation, refocus the original element, then paste.
// Reordering or rushing these steps pastes into the wrong window.
const (
	refocusDelay = 150 * time.Millisecond
	pasteDelay   = 100 * time.Millisecond
)

// focusCapture holds the references taken before the popup appears. It is a
// transient capability: consumed at most once for refocus, then released,
// never held past one popup cycle.
type focusCapture struct {
	element ax.Element // may be nil
	app     ax.App     // may be nil
}

func (fc *focusCapture) releaseElement() {
	if fc.element != nil {
		fc.element.Release()
		fc.element = nil
	}
}

// Controller orchestrates the popup lifecycle: capture focus, place, track
// selection, and on confirm write the entry back to the pasteboard and paste
// it into the original application.
//
// Controller methods are safe to call from any goroutine; an internal mutex
// guards the state machine. UI-thread affinity is enforced one layer down,
// at the Renderer boundary.
type Controller struct {
	store    *history.Store
	pb       pasteboard.Backend
	axp      ax.Provider
	renderer Renderer
	screens  screen.ListFunc
	onSelect func(entry.Entry)

	// paste and after are injected by tests to run the confirm pipeline
	// synchronously.
	paste func() error
	after func(time.Duration, func())

	// dispatch hands mutation work to the UI-owning goroutine. HandleKey
	// runs on the event-tap thread and must only decide the suppress
	// verdict there; the actual work goes through dispatch.
	dispatch func(func())

	mu       sync.Mutex
	state    State
	items    []entry.Entry
	selected int
	capture  *focusCapture
}

// Option configures a Controller.
type Option func(*Controller)

// WithSelectCallback registers a callback invoked after a confirmed
// selection, before the refocus sequence starts.
func WithSelectCallback(fn func(entry.Entry)) Option {
	return func(c *Controller) { c.onSelect = fn }
}

// WithPasteFunc overrides the paste-synthesis function.
func WithPasteFunc(fn func() error) Option {
	return func(c *Controller) { c.paste = fn }
}

// WithAfterFunc overrides the deferred-execution primitive.
func WithAfterFunc(fn func(time.Duration, func())) Option {
	return func(c *Controller) { c.after = fn }
}

// WithDispatcher routes HandleKey's mutation work through fn instead of
// running it on the calling goroutine. The daemon passes its UI queue here.
func WithDispatcher(fn func(func())) Option {
	return func(c *Controller) { c.dispatch = fn }
}

// NewController wires a Controller. screens is usually screen.List.
func NewController(store *history.Store, pb pasteboard.Backend, axp ax.Provider, r Renderer, screens screen.ListFunc, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		pb:       pb,
		axp:      axp,
		renderer: r,
		screens:  screens,
		paste:    hotkey.SendPaste,
		after:    func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		dispatch: func(fn func()) { fn() },
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Visible reports whether the popup is on screen (or animating in).
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateShowing || c.state == StateVisible
}

// Toggle shows the popup if hidden and dismisses it if visible. Bound to the
// global hotkey.
func (c *Controller) Toggle() {
	if c.Visible() {
		c.Dismiss()
		return
	}
	c.show()
}

// show captures focus state, computes placement, and brings the popup up.
// With an empty history it is a no-op: there is nothing to show.
func (c *Controller) show() {
	items := c.store.Snapshot()
	if len(items) == 0 {
		slog.Info("history is empty, not showing popup")
		return
	}

	// Capture before becoming visible: once the popup takes key status the
	// "focused element" would be our own window.
	fc := &focusCapture{}
	if el, ok := c.axp.FocusedElement(); ok {
		fc.element = el
	}
	if app, ok := c.axp.FrontmostApp(); ok {
		fc.app = app
		slog.Debug("captured frontmost app", "app", app.Name())
	}

	height := ContentHeight(len(items))
	var placement Placement
	if rect, ok := c.axp.FocusedElementRect(); ok {
		placement = CalculatePosition(rect, height, c.screens())
	} else {
		placement = centerFallback(c.screens())
		slog.Debug("no focused element rect, centering popup")
	}

	c.mu.Lock()
	if c.state != StateHidden {
		c.mu.Unlock()
		fc.releaseElement()
		return
	}
	c.state = StateShowing
	c.items = items
	c.selected = 0
	c.capture = fc
	c.mu.Unlock()

	c.renderer.Render(items, 0)
	c.renderer.Show(placement.CenterX-Width/2, placement.Y, placement.ShowAbove)

	c.mu.Lock()
	c.state = StateVisible
	c.mu.Unlock()
}

// centerFallback places the popup mid-primary-screen when the focused
// element's rectangle is unavailable.
func centerFallback(screens []screen.Screen) Placement {
	if len(screens) == 0 {
		return Placement{CenterX: 500, Y: 400}
	}
	f := screens[0].Frame
	return Placement{CenterX: f.X + f.Width/2, Y: f.Y + f.Height/2}
}

// Dismiss hides the popup without selecting anything and returns focus to
// the element that had it. Wired to Escape, outside clicks, loss of key
// status, and any non-navigation key.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	if c.state != StateVisible && c.state != StateShowing {
		c.mu.Unlock()
		return
	}
	c.state = StateHiding
	fc := c.capture
	c.capture = nil
	c.mu.Unlock()

	c.renderer.Hide()

	if fc != nil {
		if fc.element != nil {
			if err := fc.element.Focus(); err != nil {
				slog.Debug("refocus on dismiss failed", "err", err)
			}
		}
		fc.releaseElement()
	}

	c.mu.Lock()
	c.state = StateHidden
	c.mu.Unlock()
}

// MoveSelection moves the highlight by delta, clamped to the list bounds,
// no wrap-around at either end.
func (c *Controller) MoveSelection(delta int) {
	c.mu.Lock()
	if c.state != StateVisible || len(c.items) == 0 {
		c.mu.Unlock()
		return
	}
	next := c.selected + delta
	if next < 0 {
		next = 0
	}
	if next > len(c.items)-1 {
		next = len(c.items) - 1
	}
	changed := next != c.selected
	c.selected = next
	c.mu.Unlock()

	if changed {
		c.renderer.SetSelection(next)
	}
}

// SetSelection moves the highlight to index i (mouse hover). Out-of-range
// indexes are ignored.
func (c *Controller) SetSelection(i int) {
	c.mu.Lock()
	if c.state != StateVisible || i < 0 || i >= len(c.items) || i == c.selected {
		c.mu.Unlock()
		return
	}
	c.selected = i
	c.mu.Unlock()

	c.renderer.SetSelection(i)
}

// Selected returns the highlighted index.
func (c *Controller) Selected() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Confirm writes the selected entry to the pasteboard, hides the popup, and
// runs the deferred refocus-then-paste sequence. No-op when nothing is
// selected or the popup is not visible.
func (c *Controller) Confirm() {
	c.mu.Lock()
	if c.state != StateVisible || len(c.items) == 0 || c.selected >= len(c.items) {
		c.mu.Unlock()
		return
	}
	e := c.items[c.selected]
	c.state = StateHiding
	fc := c.capture
	c.capture = nil // consumed here; Dismiss must not refocus again
	c.mu.Unlock()

	if err := c.pb.Write(contentsFor(e)); err != nil {
		slog.Error("pasteboard write failed", "err", err)
	}

	c.renderer.Hide()

	c.mu.Lock()
	c.state = StateHidden
	c.mu.Unlock()

	if c.onSelect != nil {
		c.onSelect(e)
	}
	slog.Info("entry selected", "type", e.ContentType, "preview", e.Preview())

	c.after(refocusDelay, func() {
		if fc != nil {
			if fc.app != nil {
				if err := fc.app.Activate(); err != nil {
					slog.Warn("could not reactivate app", "err", err)
				}
			}
			if fc.element != nil {
				if err := fc.element.Focus(); err != nil {
					slog.Warn("could not refocus element", "err", err)
				}
			}
		}
		c.after(pasteDelay, func() {
			if fc != nil {
				fc.releaseElement()
			}
			if err := c.paste(); err != nil {
				slog.Warn("paste synthesis failed", "err", err)
			}
		})
	})
}

// contentsFor maps an entry to a typed pasteboard write: raster for images,
// string for text, both for mixed.
func contentsFor(e entry.Entry) pasteboard.Contents {
	switch e.ContentType {
	case entry.TypeImage:
		return pasteboard.Contents{Image: e.ImageData}
	case entry.TypeMixed:
		return pasteboard.Contents{Text: e.TextContent, Image: e.ImageData}
	default:
		return pasteboard.Contents{Text: e.TextContent}
	}
}

// HandleKey processes one global key-down while the popup is visible and
// reports whether the event should be suppressed. Navigation keys act on the
// popup; everything else dismisses it and passes through so chords like
// app-switchers keep working.
//
// Only the suppress verdict is computed on the calling goroutine. The
// mutation (selection move, pasteboard write, renderer calls) goes through
// the dispatcher; a multi-megabyte image write inside the tap callback would
// stall every keystroke in the session.
func (c *Controller) HandleKey(code uint16, _ hotkey.Flags) bool {
	if !c.Visible() {
		return false
	}
	switch code {
	case hotkey.KeyUp:
		c.dispatch(func() { c.MoveSelection(-1) })
		return true
	case hotkey.KeyDown:
		c.dispatch(func() { c.MoveSelection(1) })
		return true
	case hotkey.KeyReturn:
		c.dispatch(c.Confirm)
		return true
	case hotkey.KeyEscape:
		c.dispatch(c.Dismiss)
		return true
	default:
		c.dispatch(c.Dismiss)
		return false
	}
}
