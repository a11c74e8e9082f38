//go:build !darwin

package ax

type noopProvider struct{}

// New returns a provider that reports nothing focused; the popup controller
// falls back to screen-center placement and skips refocus.
func New() Provider { return noopProvider{} }

func (noopProvider) Trusted() bool                    { return false }
func (noopProvider) RequestTrust()                    {}
func (noopProvider) FocusedElement() (Element, bool)  { return nil, false }
func (noopProvider) FocusedElementRect() (Rect, bool) { return Rect{}, false }
func (noopProvider) FrontmostApp() (App, bool)        { return nil, false }
