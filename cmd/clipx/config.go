package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.clipx.app/clipx/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPX_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPX_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("clipx")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/clipx/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(fmt.Sprintf("%s/.config/clipx", home))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLIPX")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-background", false, "run interactively: tinter logs + debug level")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: info for daemon, debug for interactive)")
	cmd.Flags().String("log-file", "", "append logs to this file instead of stderr (\"default\" = platform log dir)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) error {
	path := v.GetString("log-file")
	if path == "default" {
		p, err := logging.DefaultFilePath()
		if err != nil {
			return err
		}
		path = p
	}

	format := logging.ParseFormat(v.GetString("log-format"))
	levelStr := v.GetString("log-level")

	if path != "" {
		level := logging.ParseLevel(levelStr)
		if levelStr == "" {
			level = logging.ParseLevel("info")
		}
		return logging.SetupFile(path, format, level)
	}

	interactive := v.GetBool("no-background") || logging.IsTTY(os.Stderr)
	resolveLogging(interactive, v.GetString("log-format"), levelStr)
	return nil
}
