//go:build darwin

// Package startup manages the launch-at-login login item for the app bundle.
package startup

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const appName = "ClipX"

// appPath resolves the .app bundle containing the running binary, falling
// back to the executable itself for non-bundled runs.
func appPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	// Bundled layout: ClipX.app/Contents/MacOS/clipx
	if i := strings.Index(exe, ".app/"); i >= 0 {
		return exe[:i+4], nil
	}
	return filepath.EvalSymlinks(exe)
}

// Enabled reports whether a login item for the app exists.
func Enabled() (bool, error) {
	path, err := appPath()
	if err != nil {
		return false, err
	}
	script := `tell application "System Events" to get the path of every login item`
	out, err := exec.Command("osascript", "-e", script).Output()
	if err != nil {
		return false, fmt.Errorf("list login items: %w", err)
	}
	return strings.Contains(string(out), path), nil
}

// SetEnabled adds or removes the login item.
func SetEnabled(enable bool) error {
	path, err := appPath()
	if err != nil {
		return err
	}
	var script string
	if enable {
		script = fmt.Sprintf(
			`tell application "System Events" to make new login item at end with properties {path:%q, hidden:false, name:%q}`,
			path, appName)
	} else {
		script = fmt.Sprintf(
			`tell application "System Events" to delete (every login item whose name is %q)`,
			appName)
	}
	if out, err := exec.Command("osascript", "-e", script).CombinedOutput(); err != nil {
		return fmt.Errorf("osascript: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
