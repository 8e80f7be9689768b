package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdedit/internal/logging"
	"github.com/yaklabco/mdedit/pkg/config"
	"github.com/yaklabco/mdedit/pkg/fsutil"
	"github.com/yaklabco/mdedit/pkg/preview"
	"github.com/yaklabco/mdedit/pkg/runner"
)

type exportFlags struct {
	toc    bool
	json   bool
	flavor string
	theme  string
	ignore []string
	stdout bool
}

func newExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export [paths...]",
		Short: "Export Markdown documents as standalone HTML pages",
		Long: `Render Markdown documents to standalone HTML pages written next to them
(doc.md becomes doc.html). Code blocks are highlighted; blocks without a
language get one guessed from their content. Embedded images stay embedded,
so the pages have no external files.

Examples:
  mdedit export README.md           # Write README.html
  mdedit export docs --theme dark   # Export a whole folder
  mdedit export README.md --toc     # Print the table of contents only`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags, args)
		},
	}

	cmd.Flags().BoolVar(&flags.toc, "toc", false, "print the table of contents instead of exporting")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the table of contents as JSON")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "page theme: light, dark")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "write the rendered body fragment to standard output")

	return cmd
}

func runExport(cmd *cobra.Command, flags *exportFlags, args []string) error {
	cli := &config.Config{
		Flavor: config.Flavor(flags.flavor),
		Theme:  config.Theme(flags.theme),
	}
	cli.Workspace.Ignore = flags.ignore

	sess, err := loadSession(cmd, cli)
	if err != nil {
		return err
	}
	logger := logging.FromContext(sess.ctx)

	files, err := runner.Discover(sess.ctx, runner.Options{
		Paths:      args,
		WorkingDir: sess.workDir,
		Scan:       sess.scanOptions(),
	})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("no Markdown files found")
		return nil
	}

	r := sess.renderer()
	out := cmd.OutOrStdout()

	for _, path := range files {
		content, _, err := fsutil.ReadFile(sess.ctx, path, sess.cfg.Workspace.MaxFileSize)
		if err != nil {
			return err
		}

		switch {
		case flags.toc || flags.json:
			if err := writeTOC(cmd, path, preview.TOC(content), flags.json, len(files) > 1); err != nil {
				return err
			}
		case flags.stdout:
			res, err := r.Render(content)
			if err != nil {
				return err
			}
			if _, err := out.Write(res.HTML); err != nil {
				return err
			}
		default:
			written, err := preview.Export(sess.ctx, r, path, content)
			if err != nil {
				return err
			}
			logger.Info("exported", logging.FieldPath, path, logging.FieldOutput, written)
		}
	}
	return nil
}

func writeTOC(cmd *cobra.Command, path string, headings []preview.Heading, asJSON, withPath bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Path     string            `json:"path"`
			Headings []preview.Heading `json:"headings"`
		}{path, headings})
	}

	if withPath {
		if _, err := fmt.Fprintln(out, path); err != nil {
			return err
		}
	}
	for _, h := range headings {
		indent := strings.Repeat("  ", max(h.Level-1, 0))
		if _, err := fmt.Fprintf(out, "%s- %s (#%s)\n", indent, h.Text, h.ID); err != nil {
			return err
		}
	}
	return nil
}
