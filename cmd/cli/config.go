// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"verse-notes/internal/config"
	"verse-notes/internal/logger"
)

// dimColor is used for less important/secondary text in the CLI output
var dimColor = color.New(color.Faint)

// settableKeys lists the config.yaml keys `config set` accepts.
var settableKeys = []string{"api_url", "api_key", "file", "notes_file", "history_file", "wrap_width", "timeout", "log_level"}

// configCmd is the parent command for all configuration-related subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change verse-notes configuration",
	Long: `Provides subcommands to inspect the effective configuration and to write
settings to config.yaml in the data directory. Values from .env and the
environment still take precedence over config.yaml.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration and where it comes from",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printConfig(cmd.OutOrStdout(), appConfig)
	},
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Write a setting to config.yaml",
	Long:      "Writes a setting to config.yaml. Keys: " + strings.Join(settableKeys, ", ") + ". Use an empty value to clear a key.",
	Example:   "  verse-notes config set api_url https://example.com/api\n  verse-notes config set wrap_width 80\n  verse-notes config set timeout 10s",
	Args:      cobra.ExactArgs(2),
	ValidArgs: settableKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		fileCfg, err := config.ReadFile(appConfig.DataDir)
		if err != nil {
			return err
		}
		if err := setConfigValue(&fileCfg, args[0], args[1]); err != nil {
			return err
		}
		if err := config.SaveFile(fileCfg); err != nil {
			return err
		}

		logger.Info("Configuration updated", "key", args[0])
		if args[1] == "" {
			successColor.Fprintf(cmd.OutOrStdout(), "Cleared %s.\n", args[0])
		} else {
			successColor.Fprintf(cmd.OutOrStdout(), "Set %s.\n", args[0])
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// setConfigValue assigns value to the field named by key, validating numbers,
// durations and log levels.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "api_url":
		cfg.APIURL = value
	case "api_key":
		cfg.APIKey = value
	case "file":
		cfg.File = value
	case "notes_file":
		cfg.NotesFile = value
	case "history_file":
		cfg.HistoryFile = value
	case "wrap_width":
		if value == "" {
			cfg.WrapWidth = 0
			return nil
		}
		width, err := strconv.Atoi(value)
		if err != nil || width < 0 {
			return fmt.Errorf("wrap_width must be a non-negative integer, got %q", value)
		}
		cfg.WrapWidth = width
	case "timeout":
		if value == "" {
			cfg.Timeout = 0
			return nil
		}
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("timeout must be a positive duration such as 30s, got %q", value)
		}
		cfg.Timeout = d
	case "log_level":
		if _, err := logger.ParseLevel(value); err != nil {
			return err
		}
		cfg.LogLevel = strings.ToLower(value)
	default:
		if !slices.Contains(settableKeys, key) {
			return fmt.Errorf("unknown key %q (valid keys: %s)", key, strings.Join(settableKeys, ", "))
		}
	}
	return nil
}

func printConfig(w io.Writer, cfg config.Config) {
	row := func(name, value string) {
		if value == "" {
			value = dimColor.Sprint("(not set)")
		}
		fmt.Fprintf(w, "  %-13s %s\n", name+":", value)
	}

	statusColor.Fprintln(w, "Effective configuration:")
	row("data_dir", cfg.DataDir)
	row("api_url", cfg.APIURL)
	row("api_key", maskSecret(cfg.APIKey))
	row("file", cfg.File)
	row("notes_file", cfg.NotesFile)
	row("history_file", cfg.HistoryFile)
	if cfg.WrapWidth > 0 {
		row("wrap_width", strconv.Itoa(cfg.WrapWidth))
	} else {
		row("wrap_width", "")
	}
	row("timeout", cfg.Timeout.String())
	row("log_level", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		warnColor.Fprintf(w, "\nVerse lookups are disabled: %v\n", err)
	}
}

// maskSecret hides all but the last four characters of a secret.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
