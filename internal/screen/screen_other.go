//go:build !darwin

package screen

// List returns a single 1440×900 stand-in display so placement math has
// something to work with off-macOS.
func List() []Screen {
	full := Rect{Width: 1440, Height: 900}
	return []Screen{{Frame: full, Visible: full}}
}
