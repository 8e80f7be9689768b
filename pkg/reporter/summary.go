package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/mdedit/internal/ui/pretty"
	"github.com/yaklabco/mdedit/pkg/runner"
)

// Column layout for the per-file summary table.
const (
	tableWidth        = 78
	fileColWidth      = 60
	numColWidth       = 8
	maxFilePathLength = 58
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryReporter prints per-file counts followed by the run summary.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter. It returns the number of matches.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		result = &runner.Result{}
	}

	if result.HasMatches() {
		r.renderFileTable(result)
	}
	fmt.Fprint(r.out, r.styles.FormatSummary(result))

	return result.Stats.Matches, nil
}

func (r *SummaryReporter) renderFileTable(result *runner.Result) {
	workDir := workingDir(r.opts)

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files"))
	fmt.Fprintln(r.out, r.styles.TableBorder.Render(strings.Repeat("─", tableWidth)))

	lastHeader := "Matches"
	if result.Replace {
		lastHeader = "Replaced"
	}
	fmt.Fprintf(r.out, "%s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft(lastHeader, numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableBorder.Render(strings.Repeat("─", tableWidth)))

	for _, file := range result.Files {
		if len(file.Matches) == 0 {
			continue
		}

		path := displayPath(workDir, file.Path)
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		count := len(file.Matches)
		if result.Replace {
			count = file.Replaced
		}
		fmt.Fprintf(r.out, "%s %s\n",
			r.styles.FilePath.Render(padRight(path, fileColWidth)),
			padLeft(strconv.Itoa(count), numColWidth),
		)
	}
}
