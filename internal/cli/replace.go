package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdedit/pkg/config"
	"github.com/yaklabco/mdedit/pkg/runner"
)

func newReplaceCommand() *cobra.Command {
	var cfg config.Config
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "replace <query> <replacement> [paths...]",
		Short: "Replace text in Markdown files without touching embedded images",
		Long: `Replace every case-insensitive occurrence of query with replacement.

Each file is rewritten in one pass. Embedded image payloads are never
changed; a match that covers part of an image placeholder replaces the
whole image. Files are backed up to <name>.mdedit.bak unless backups are
disabled, and a file that changed on disk while it was being processed is
left alone unless --force is given.

Examples:
  mdedit replace colour color                # Rewrite the current directory
  mdedit replace colour color --dry-run      # Show a diff without writing
  mdedit replace v1 v2 docs --format summary # Per-file counts`,
		Args: cobra.MinimumNArgs(2), //nolint:mnd // query and replacement
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.format == "" && cfg.DryRun {
				flags.format = string(config.FormatDiff)
			}
			return runSearch(cmd, flags, &cfg, runner.Options{
				Query:       args[0],
				Replacement: args[1],
				Replace:     true,
				Paths:       args[2:],
			})
		},
	}

	addSearchFlags(cmd, flags, "text, table, json, diff, summary")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show changes without writing files")
	cmd.Flags().BoolVar(&cfg.Force, "force", false, "overwrite files that changed on disk")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "do not keep a backup of rewritten files")

	return cmd
}
