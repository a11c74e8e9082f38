package app

import (
	"context"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/getlantern/systray"

	"go.clipx.app/clipx/internal/startup"
	"go.clipx.app/clipx/internal/updater"
)

// runTray runs the menu-bar loop. Blocks until quitTray.
func (a *App) runTray() {
	systray.Run(a.trayReady, nil)
}

func quitTray() {
	systray.Quit()
}

func (a *App) trayReady() {
	systray.SetTitle("📋")
	systray.SetTooltip("ClipX - clipboard history (⌘⌥V)")

	clearItem := systray.AddMenuItem("Clear History", "Remove all saved entries")
	startupItem := systray.AddMenuItemCheckbox("Launch at Startup", "Open ClipX when you log in", false)
	updateItem := systray.AddMenuItem("Check for Updates…", "Look for a newer release")
	systray.AddSeparator()
	quitItem := systray.AddMenuItem("Quit ClipX", "Stop watching the clipboard")

	if enabled, err := startup.Enabled(); err == nil && enabled {
		startupItem.Check()
	}

	go func() {
		for range clearItem.ClickedCh {
			a.do(func() {
				a.store.Clear()
				slog.Info("history cleared from menu")
			})
		}
	}()

	go func() {
		for range startupItem.ClickedCh {
			a.toggleStartup(startupItem)
		}
	}()

	go func() {
		for range updateItem.ClickedCh {
			go a.checkForUpdates()
		}
	}()

	go func() {
		<-quitItem.ClickedCh
		a.Quit()
	}()
}

func (a *App) toggleStartup(item *systray.MenuItem) {
	enable := !item.Checked()
	if err := startup.SetEnabled(enable); err != nil {
		slog.Warn("login item toggle failed", "enable", enable, "err", err)
		return
	}
	if enable {
		item.Check()
	} else {
		item.Uncheck()
	}
	slog.Info("launch at startup", "enabled", enable)
}

// checkForUpdates asks GitHub for the latest release, downloads it when the
// running commit differs, and reveals the archive for the user to install.
func (a *App) checkForUpdates() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	chk := updater.New(a.cfg.Commit)
	rel, err := chk.Check(ctx)
	if err != nil {
		slog.Warn("update check failed", "err", err)
		return
	}
	if rel == nil {
		slog.Info("clipx is up to date", "version", a.cfg.Version, "commit", a.cfg.Commit)
		return
	}

	slog.Info("update available", "tag", rel.TagName, "commit", rel.RemoteSHA, "url", rel.HTMLURL)
	path, err := chk.Download(ctx, rel)
	if err != nil {
		slog.Warn("update download failed", "err", err)
		return
	}

	if runtime.GOOS == "darwin" {
		if err := exec.Command("open", "-R", filepath.Clean(path)).Run(); err != nil {
			slog.Warn("could not reveal downloaded update", "err", err)
		}
	}
}
