package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdedit/internal/logging"
	"github.com/yaklabco/mdedit/pkg/config"
	"github.com/yaklabco/mdedit/pkg/reporter"
	"github.com/yaklabco/mdedit/pkg/runner"
)

// searchFlags are shared by find and replace.
type searchFlags struct {
	format     string
	ignore     []string
	extensions []string
	jobs       int
	compact    bool
	flat       bool
}

func addSearchFlags(cmd *cobra.Command, flags *searchFlags, formats string) {
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: "+formats)
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to search (default .md)")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.flat, "flat", false, "print one line per match instead of grouping by file")
}

func newFindCommand() *cobra.Command {
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "find <query> [paths...]",
		Short: "Search Markdown files, ignoring embedded image data",
		Long: `Search Markdown files for a literal, case-insensitive query.

Embedded images are searched in their folded form, so a query never matches
inside a base64 payload and "[base64 image hidden]" finds every image.

By default searches all .md files below the current directory. The exit code
is 1 when nothing matched.

Examples:
  mdedit find TODO                  # Search the current directory
  mdedit find "release notes" docs  # Search the docs directory
  mdedit find todo --format table   # Print matches as a table
  mdedit find todo --format json    # Machine-readable output`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, flags, &config.Config{}, runner.Options{
				Query: args[0],
				Paths: args[1:],
			})
		},
	}

	addSearchFlags(cmd, flags, "text, table, json, summary")
	return cmd
}

// runSearch loads the configuration, runs the runner and reports the result.
func runSearch(cmd *cobra.Command, flags *searchFlags, cli *config.Config, runOpts runner.Options) error {
	cli.Format = config.OutputFormat(flags.format)
	cli.Workspace.Ignore = flags.ignore
	cli.Workspace.Extensions = flags.extensions

	sess, err := loadSession(cmd, cli)
	if err != nil {
		return err
	}
	logger := logging.FromContext(sess.ctx)

	runOpts.WorkingDir = sess.workDir
	runOpts.Scan = sess.scanOptions()
	runOpts.DryRun = sess.cfg.DryRun
	runOpts.Jobs = flags.jobs

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	logger.Debug("starting run",
		logging.FieldQuery, runOpts.Query,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldDryRun, runOpts.DryRun,
	)

	result, err := runner.New(sess.store()).Run(sess.ctx, runOpts)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       sess.color,
		ShowSummary: true,
		GroupByFile: !flags.flat,
		Compact:     flags.compact,
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(sess.ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return resultError(result)
}
