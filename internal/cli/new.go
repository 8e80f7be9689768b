package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdedit/pkg/workspace"
)

func newNewCommand() *cobra.Command {
	var dir string
	var folder bool

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty document or folder",
		Long: `Create an empty document, or a folder with --folder, inside a project.
Documents get a .md extension when the name has none. Existing entries are
never replaced.

Examples:
  mdedit new notes               # Create notes.md
  mdedit new drafts --folder     # Create the drafts folder
  mdedit new idea --dir drafts   # Create drafts/idea.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			create := workspace.CreateFile
			if folder {
				create = workspace.CreateDir
			}
			path, err := create(dir, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "parent directory")
	cmd.Flags().BoolVar(&folder, "folder", false, "create a folder instead of a document")

	return cmd
}

func newRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename a document or folder in place",
		Long: `Give a document or folder a new name in the same directory. Documents keep
a Markdown extension, and an existing entry is never replaced.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // path and new name
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := workspace.Rename(args[0], args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}
