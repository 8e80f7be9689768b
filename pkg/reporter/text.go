package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdedit/internal/ui/pretty"
	"github.com/yaklabco/mdedit/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of matches printed.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to search."))
		}
		return 0, nil
	}

	workDir := workingDir(r.opts)

	var total int
	for _, file := range result.Files {
		path := displayPath(workDir, file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if len(file.Matches) == 0 {
			continue
		}

		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Matches)))
			for _, m := range file.Matches {
				fmt.Fprint(r.bw, r.styles.FormatMatch(m))
			}
			fmt.Fprintln(r.bw)
		} else {
			for _, m := range file.Matches {
				fmt.Fprintf(r.bw, "%s:%d:%d: %s\n",
					r.styles.FilePath.Render(path), m.Line, m.Column,
					r.styles.HighlightLine(m.Text, m.TextStart, m.TextEnd))
			}
		}
		total += len(file.Matches)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result))
	}

	return total, nil
}
