package cli

import (
	"github.com/spf13/cobra"

	"github.com/mdimg/mdimg/pkg/pipeline"
)

// renameCommand creates the rename command, the rename-by-hash action.
func (c *CLI) renameCommand() *cobra.Command {
	var (
		backupDir  string
		noBackup   bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "rename <document.md>",
		Short: "Rename referenced image files to content-hash filenames",
		Long: `Rename referenced image files to content-hash filenames.

Every external reference ![alt](path) whose file exists and carries an
image extension is renamed on disk to <label><ext>, where label is a short
content hash of the image bytes, and the path in the document is updated.
Paths shorter than 12 characters are already short and are left untouched.
A file already sitting at the hash name means the rename happened on an
earlier run; the reference is updated and the files are left alone.

Nothing is embedded in this mode.

Examples:
  mdimg rename notes.md
  mdimg rename notes.md --no-backup`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(args[0], configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("backup-dir") {
				cfg.BackupDir = backupDir
			}
			if flags.Changed("no-backup") {
				cfg.NoBackup = noBackup
			}

			return c.runPipeline(cmd.Context(), pipeline.Options{
				Document:  args[0],
				Mode:      pipeline.ModeRename,
				Backup:    !cfg.NoBackup,
				BackupDir: cfg.BackupDir,
			})
		},
	}

	cmd.Flags().StringVar(&backupDir, "backup-dir", "", "directory for the pre-run backup copy (default: document's directory)")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the pre-run backup copy")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: .mdimg.toml next to the document)")

	return cmd
}
