package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.clipx.app/clipx/internal/app"
	"go.clipx.app/clipx/internal/history"
	"go.clipx.app/clipx/internal/watcher"
)

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the clipboard-history daemon (menu-bar item + hotkey)",
		Long: `Starts the clipx daemon: watches the pasteboard, maintains the history
file, installs the Cmd+Option+V event tap, and puts the clipboard icon in the
menu bar. One daemon per login session; a second invocation refuses to start
unless --takeover is given.

The event tap needs the Accessibility permission (System Settings > Privacy &
Security > Accessibility). Without it the daemon still records history; the
hotkey activates automatically once the permission is granted.

Config file search order:
  /etc/clipx/clipx.toml
  $HOME/.config/clipx/clipx.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → CLIPX_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runDaemon(v) },
	}

	f := cmd.Flags()
	f.Duration("poll-interval", watcher.DefaultInterval, "pasteboard poll interval")
	f.Int("max-history", history.DefaultMax, "maximum number of history entries")
	f.String("history-file", "", "history file path (default: platform config dir)")
	f.Bool("takeover", false, "replace an already-running daemon")
	f.Bool("debug-keys", false, "log every intercepted key code (noisy, effectively a keylogger)")
	f.Bool("updated", false, "internal: set by the updater on relaunch")
	_ = f.MarkHidden("updated")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runDaemon(v *viper.Viper) error {
	if err := setupLogging(v); err != nil {
		return err
	}

	a, err := app.New(app.Config{
		Version:      Version,
		Commit:       Commit,
		HistoryPath:  v.GetString("history-file"),
		MaxHistory:   v.GetInt("max-history"),
		PollInterval: v.GetDuration("poll-interval"),
		Takeover:     v.GetBool("takeover"),
		Updated:      v.GetBool("updated"),
		Debug:        v.GetBool("debug-keys"),
	})
	if err != nil {
		return err
	}
	return a.Run()
}
