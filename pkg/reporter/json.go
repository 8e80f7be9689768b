package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdedit/pkg/runner"
)

// jsonVersion is the schema version of JSONOutput.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version     string           `json:"version"`
	Query       string           `json:"query"`
	Replacement *string          `json:"replacement,omitempty"`
	DryRun      bool             `json:"dryRun,omitempty"`
	Files       []JSONFileResult `json:"files"`
	Summary     JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string      `json:"path"`
	Matches  []JSONMatch `json:"matches"`
	Replaced int         `json:"replaced,omitempty"`
	Modified bool        `json:"modified,omitempty"`
	Diff     string      `json:"diff,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// JSONMatch represents a single match. Offsets refer to the folded text.
type JSONMatch struct {
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	Text        string `json:"text"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesSearched int `json:"filesSearched"`
	FilesMatched  int `json:"filesMatched"`
	FilesModified int `json:"filesModified"`
	FilesErrored  int `json:"filesErrored"`
	Matches       int `json:"matches"`
	Replaced      int `json:"replaced"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of matches.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Matches, nil
}

func buildJSONOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	output.Query = result.Query
	output.DryRun = result.DryRun
	if result.Replace {
		replacement := result.Replacement
		output.Replacement = &replacement
	}
	output.Summary = JSONSummary{
		FilesSearched: result.Stats.FilesSearched,
		FilesMatched:  result.Stats.FilesMatched,
		FilesModified: result.Stats.FilesModified,
		FilesErrored:  result.Stats.FilesErrored,
		Matches:       result.Stats.Matches,
		Replaced:      result.Stats.Replaced,
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:     file.Path,
			Matches:  make([]JSONMatch, 0, len(file.Matches)),
			Replaced: file.Replaced,
			Modified: file.Written,
			Diff:     file.Diff.String(),
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		for _, m := range file.Matches {
			fileResult.Matches = append(fileResult.Matches, JSONMatch{
				Line:        m.Line,
				Column:      m.Column,
				StartOffset: m.Start,
				EndOffset:   m.End,
				Text:        m.Text,
			})
		}
		output.Files = append(output.Files, fileResult)
	}

	return output
}
