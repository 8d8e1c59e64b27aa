// Package main is the entry point for the cb CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jacksmith/cb/internal/cli"
	"github.com/jacksmith/cb/internal/logging"
	"github.com/jacksmith/cb/internal/ops"
	"github.com/jacksmith/cb/internal/shell"
	"github.com/jacksmith/cb/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	flagFile    string
	flagNoColor bool
)

// Settings resolved once per process by loadSettings.
var (
	cfg    *storage.Config
	logger *zap.SugaredLogger
)

// stdin is read by prompts and the shell. Tests replace it.
var stdin io.Reader = os.Stdin

func main() {
	err := rootCmd.Execute()
	logging.Sync(logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(cli.ExitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "cb",
	Short: "cb - a contact book for the command line",
	Long: `cb keeps a personal contact book (name, phone, email) in a single
human-readable file, contacts.json in the current directory by default.

Run cb with no arguments on a terminal to open the interactive menu, or use
the subcommands for one-shot operations.

Configuration is read from .cbconfig.yaml (or ~/.config/cb/config.yaml)
and CB_* environment variables:
  file: contacts.json     # CB_FILE
  color: auto             # CB_COLOR: auto, always, never
  log_level: warn         # CB_LOG_LEVEL: debug, info, warn, error`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if f, ok := stdin.(*os.File); ok && cli.IsTerminal(f) {
			return runShell(cmd, args)
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "contacts file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")

	// Our own completion command replaces cobra's default one
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetVersionTemplate("cb version {{.Version}}\n")
}

// loadSettings reads config and builds the logger. Safe to call repeatedly.
func loadSettings() error {
	if cfg != nil {
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	c, err := storage.LoadConfig(wd)
	if err != nil {
		return err
	}

	l, err := logging.New(c.LogLevel)
	if err != nil {
		return err
	}

	if flagNoColor {
		c.Color = "never"
	}
	cli.ApplyColorMode(c.Color, os.Stdout)

	cfg, logger = c, l
	if c.Source != "" {
		logger.Debugw("config loaded", "path", c.Source)
	}
	return nil
}

// contactsPath returns the contacts file, --file taking precedence over config.
func contactsPath() string {
	if flagFile != "" {
		return flagFile
	}
	if cfg != nil {
		return cfg.File
	}
	return storage.DefaultFile
}

// loadBook loads the contact book for this invocation.
func loadBook() (*ops.Book, error) {
	if err := loadSettings(); err != nil {
		return nil, err
	}
	return ops.Open(storage.Open(contactsPath()), logger), nil
}

// openBook is loadBook plus a warning on stderr when the file could not be
// read and the book started empty.
func openBook() (*ops.Book, error) {
	b, err := loadBook()
	if err != nil {
		return nil, err
	}
	if lerr := b.LoadErr(); lerr != nil {
		fmt.Fprintln(os.Stderr, cli.FormatWarning(lerr.Error()+"; starting with an empty book"))
	}
	return b, nil
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open the interactive menu",
	Long: `Open the numbered interactive menu.

Choices can be entered by number (1-6) or by name ("add", "s" for search).
End of input (Ctrl-D) exits.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	b, err := loadBook()
	if err != nil {
		return err
	}
	return shell.New(b, stdin, os.Stdout).Run()
}
