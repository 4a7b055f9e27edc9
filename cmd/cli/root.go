// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"verse-notes/internal/config"
	"verse-notes/internal/logger"
	"verse-notes/internal/notes"
	"verse-notes/internal/repl"
	"verse-notes/internal/verses"
)

// Version is reported by --version and the REPL banner.
const Version = "1.0.0"

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	warnColor       = color.New(color.FgYellow)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
)

var (
	dataDirFlag string
	verboseFlag bool

	appConfig config.Config
	noteStore *notes.Store
	loaded    bool
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// reportedError marks an error the session already printed for the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

var rootCmd = &cobra.Command{
	Use:   "verse-notes",
	Short: "Look up Bible verses and keep notes on them",
	Long: `Look up Bible verses from a verse API and attach personal notes to books,
chapters, single verses or verse ranges.

Without a subcommand an interactive prompt starts. Configuration is read from
config.yaml and .env in the data directory, then from the environment
(API_URL, API_KEY, FILE, VERSE_NOTES_LOG_LEVEL).`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that parse their own flags call setup themselves.
		if cmd.DisableFlagParsing {
			return nil
		}
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appConfig.Validate(); err != nil {
			return err
		}
		return runREPL(cmd.Context(), newSession(cmd.OutOrStdout()))
	},
}

// RunCLI executes the root command and exits non-zero on failure.
func RunCLI() {
	if err := rootCmd.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "directory holding config.yaml, .env, notes and history (default: OS data dir)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "mirror log records to stderr")
	rootCmd.SetVersionTemplate("verse-notes {{.Version}}\n")

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads configuration, starts logging and opens the note store. It is
// safe to call more than once; completion functions call it directly because
// cobra skips the pre-run hooks for them.
func setup() error {
	if loaded {
		return nil
	}

	dataDir := dataDirFlag
	if dataDir == "" {
		dir, err := config.DefaultDataDir()
		if err != nil {
			warnColor.Fprintf(os.Stderr, "Warning: %v. Using the current directory.\n", err)
			dir = "."
		}
		dataDir = dir
	}
	dataDir = config.EnsureDataDir(dataDir)

	cfg, err := config.Load(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		warnColor.Fprintf(os.Stderr, "Warning: %v. Using info.\n", err)
	}
	logger.InitLogger(logger.Options{Level: level, Stderr: verboseFlag})
	logger.Info("Starting verse-notes", "version", Version, "data_dir", dataDir)

	store, err := notes.Load(cfg.NotesFile)
	if err != nil {
		logger.Warn("Notes file could not be loaded, starting empty", "error", err)
		warnColor.Fprintf(os.Stderr, "Warning: %v. Starting with no notes.\n", err)
	}

	appConfig = cfg
	noteStore = store
	loaded = true
	return nil
}

func newSession(out io.Writer) *repl.Session {
	session := &repl.Session{
		Store:     noteStore,
		Out:       out,
		WrapWidth: appConfig.WrapWidth,
		Version:   Version,
	}
	if !clipboard.Unsupported {
		session.Copy = clipboardWrite
	}
	if appConfig.Validate() == nil {
		session.Lookup = spinnerLookup{next: verses.NewClient(appConfig.API())}
	}
	return session
}

// runREPL reads lines with history and line editing until quit, EOF or an
// interrupt on an empty line.
func runREPL(ctx context.Context, session *repl.Session) error {
	if ctx == nil {
		ctx = context.Background()
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          repl.Prompt,
		HistoryFile:     appConfig.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start line editor: %w", err)
	}
	defer rl.Close()

	session.Out = rl.Stdout()
	session.Help()

	for {
		fmt.Fprintln(session.Out)
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if len(line) == 0 {
				session.Handle(ctx, "quit")
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			session.Handle(ctx, "quit")
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		if session.Handle(ctx, line) {
			return nil
		}
	}
}
