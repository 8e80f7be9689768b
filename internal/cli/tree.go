package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdedit/internal/logging"
	"github.com/yaklabco/mdedit/internal/ui/pretty"
	"github.com/yaklabco/mdedit/pkg/config"
	"github.com/yaklabco/mdedit/pkg/workspace"
)

func newTreeCommand() *cobra.Command {
	var list bool
	var ignore []string

	cmd := &cobra.Command{
		Use:   "tree [dir]",
		Short: "Show the Markdown documents of a project folder",
		Long: `Show the project tree the editor works with: folders first, then
documents, each sorted by name. Hidden entries, files without a Markdown
extension and oversized files are left out.

Without a directory, the project root is used: the nearest folder above the
current one that holds an .mdedit.yml or a version control root.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli := &config.Config{}
			cli.Workspace.Ignore = ignore

			sess, err := loadSession(cmd, cli)
			if err != nil {
				return err
			}

			root := ""
			if len(args) == 1 {
				root = args[0]
			} else if root, err = sess.projectRoot(sess.workDir); err != nil {
				return err
			}

			project, err := workspace.Scan(sess.ctx, root, sess.scanOptions())
			if err != nil {
				return err
			}
			logging.FromContext(sess.ctx).Debug("scanned",
				logging.FieldRoot, project.Root.Path,
				logging.FieldFiles, len(project.Files()),
				logging.FieldSkipped, len(project.Skipped),
			)

			out := cmd.OutOrStdout()
			if list {
				return writeFileList(out, project)
			}
			styles := pretty.NewStyles(pretty.IsColorEnabled(sess.color, out))
			_, err = io.WriteString(out, styles.FormatTree(project))
			return err
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print one document path per line, relative to the root")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "glob patterns to ignore")

	return cmd
}

func writeFileList(w io.Writer, project *workspace.Project) error {
	for _, path := range project.Files() {
		rel, err := filepath.Rel(project.Root.Path, path)
		if err != nil {
			rel = path
		}
		if _, err := fmt.Fprintln(w, filepath.ToSlash(rel)); err != nil {
			return err
		}
	}
	return nil
}
