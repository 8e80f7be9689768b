// Package cli provides the Cobra command structure for mdedit.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdedit/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdedit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdedit",
		Short: "A terminal Markdown editor that keeps embedded images out of the way",
		Long: `mdedit edits Markdown documents in the terminal.

Images embedded as base64 data URIs are folded into a short placeholder while
you edit, search and replace, and restored byte for byte when the document is
saved. The same folding applies to the batch find and replace commands, so a
query never matches inside an image payload.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newEditCommand())
	rootCmd.AddCommand(newFindCommand())
	rootCmd.AddCommand(newReplaceCommand())
	rootCmd.AddCommand(newFoldCommand())
	rootCmd.AddCommand(newUnfoldCommand())
	rootCmd.AddCommand(newEmbedCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newNewCommand())
	rootCmd.AddCommand(newRenameCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
