//go:build !darwin

// Package startup manages the launch-at-login login item for the app bundle.
package startup

import "fmt"

// Enabled reports whether a login item for the app exists.
func Enabled() (bool, error) {
	return false, fmt.Errorf("login items are only available on macOS")
}

// SetEnabled adds or removes the login item.
func SetEnabled(bool) error {
	return fmt.Errorf("login items are only available on macOS")
}
