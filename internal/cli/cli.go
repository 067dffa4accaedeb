// Package cli implements the mdimg command-line interface.
//
// This package provides commands for embedding referenced images into a
// Markdown document as base64 data blocks and for renaming image files to
// their content-hash names. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - embed: Convert external image references to embedded data blocks
//   - rename: Rename referenced image files to content-hash filenames
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so the pipeline can log progress.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mdimg/mdimg/pkg/buildinfo"
)

// appName is the application name used for display and config discovery.
const appName = "mdimg"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Fs     afero.Fs
}

// New creates a new CLI instance with a default logger over the OS
// filesystem.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Fs: afero.NewOsFs(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "mdimg embeds Markdown image references as base64 data blocks",
		Long:         `mdimg rewrites a Markdown document so that referenced external image files are embedded inline as base64-encoded data blocks, or renamed on disk to short content-hash filenames.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.embedCommand())
	root.AddCommand(c.renameCommand())
	root.AddCommand(c.completionCommand())

	return root
}
