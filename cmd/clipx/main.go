// clipx: clipboard history for the macOS menu bar.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.clipx.app/clipx/internal/logging"
)

// Version and Commit are set at build time via
// -ldflags "-X main.Version=x.y.z -X main.Commit=<sha>".
var (
	Version = "dev"
	Commit  = ""
)

func main() {
	root := &cobra.Command{
		Use:   "clipx",
		Short: "Clipboard history for the menu bar",
		Long: `clipx watches the system clipboard, keeps a searchable history of
text and images, and pops the history up at the focused text field when you
press Cmd+Option+V. Confirming an entry re-copies it and pastes it in place.

Run "clipx run" to start the daemon (the .app bundle does this for you).
Use "clipx history/clear/delete/status" as CLI tools against a running daemon.

Config file search order (first found wins):
  /etc/clipx/clipx.toml
  $HOME/.config/clipx/clipx.toml
  path supplied via --config

All flags can be set via CLIPX_<FLAG> env vars or config-file keys.
See "clipx run --help" for the full flag reference.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newHistoryCmd(),
		newClearCmd(),
		newDeleteCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			if Commit != "" {
				fmt.Printf("clipx %s (%s)\n", Version, Commit)
				return
			}
			fmt.Printf("clipx %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(interactive bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("info")
		}
	}
	logging.Setup(format, level)
}
