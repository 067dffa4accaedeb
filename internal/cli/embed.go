package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdimg/mdimg/pkg/config"
	"github.com/mdimg/mdimg/pkg/pipeline"
)

// embedCommand creates the embed command, the three-pass embedding action.
func (c *CLI) embedCommand() *cobra.Command {
	var (
		useOldData      bool
		keepUselessData bool
		spaceLines      int
		backupDir       string
		noBackup        bool
		configPath      string
	)

	cmd := &cobra.Command{
		Use:   "embed <document.md>",
		Short: "Embed referenced images as base64 data blocks",
		Long: `Embed referenced images as base64 data blocks.

Every external reference ![alt](path) whose file exists and carries an
image extension is rewritten to the embedded form ![label][label], where
label is a short content hash of the image bytes. The encoded image data
is appended to the end of the document as [label]:data:image blocks.

Existing data blocks are cleaned up: blocks whose label is no longer
referenced anywhere are dropped (unless --keep-useless-data), and blocks
about to be regenerated are replaced (unless --use-old-data).

A backup copy of the document is written next to it before processing and
removed again when the run turns out to be a no-op.

Examples:
  mdimg embed notes.md
  mdimg embed notes.md --use-old-data
  mdimg embed notes.md -l 0 --backup-dir ~/backups`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(args[0], configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("lines-of-space") {
				cfg.SpaceLines = spaceLines
			}
			if flags.Changed("use-old-data") {
				cfg.UseOldData = useOldData
			}
			if flags.Changed("keep-useless-data") {
				cfg.KeepUselessData = keepUselessData
			}
			if flags.Changed("backup-dir") {
				cfg.BackupDir = backupDir
			}
			if flags.Changed("no-backup") {
				cfg.NoBackup = noBackup
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return c.runPipeline(cmd.Context(), pipeline.Options{
				Document:        args[0],
				Mode:            pipeline.ModeEmbed,
				SpaceLines:      cfg.SpaceLines,
				UseOldData:      cfg.UseOldData,
				KeepUselessData: cfg.KeepUselessData,
				Backup:          !cfg.NoBackup,
				BackupDir:       cfg.BackupDir,
			})
		},
	}

	cmd.Flags().BoolVarP(&useOldData, "use-old-data", "u", false, "use existing encoded data instead of re-encoding the images")
	cmd.Flags().BoolVarP(&keepUselessData, "keep-useless-data", "k", false, "keep existing encoded data even though no longer in use")
	cmd.Flags().IntVarP(&spaceLines, "lines-of-space", "l", config.DefaultSpaceLines, "lines of space ahead of base64-encoded image data")
	cmd.Flags().StringVar(&backupDir, "backup-dir", "", "directory for the pre-run backup copy (default: document's directory)")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the pre-run backup copy")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: .mdimg.toml next to the document)")

	return cmd
}

// resolveConfig layers the config file over the defaults. An explicit
// --config path must exist; the per-directory file is optional.
func (c *CLI) resolveConfig(document, configPath string) (config.Config, error) {
	if configPath != "" {
		return config.Load(c.Fs, configPath)
	}
	cfg, _, err := config.LoadNear(c.Fs, document)
	return cfg, err
}

// runPipeline executes the pipeline with a spinner and prints the summary.
func (c *CLI) runPipeline(ctx context.Context, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(c.Fs, logger)
	p := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Processing %s...", opts.Document))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Processing failed")
		return err
	}
	spinner.Stop()

	p.done(fmt.Sprintf("Processed %s", opts.Document))
	printResult(opts.Document, result)
	return nil
}
