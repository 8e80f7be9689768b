package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdedit/pkg/edit"
	"github.com/yaklabco/mdedit/pkg/reporter"
	"github.com/yaklabco/mdedit/pkg/runner"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "xml", wantErr: true},
		{name: "sarif is not supported", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	tests := []struct {
		format reporter.Format
		want   bool
	}{
		{reporter.FormatText, true},
		{reporter.FormatTable, true},
		{reporter.FormatJSON, true},
		{reporter.FormatDiff, true},
		{reporter.FormatSummary, true},
		{reporter.Format("unknown"), false},
		{reporter.Format(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "table reporter", format: reporter.FormatTable},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "diff reporter", format: reporter.FormatDiff},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{
				Writer: &buf,
				Format: tt.format,
				Color:  "never",
			})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTextReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
	})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to search")
}

func TestTextReporter_Grouped(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		GroupByFile: true,
		WorkingDir:  "/work",
	})

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, "docs/test.md (2 matches)\n")
	assert.Contains(t, output, "  1:5  the cat sat\n")
	assert.Contains(t, output, "  3:1  Cat food\n")
	assert.Contains(t, output, "broken.md: error: permission denied")
	assert.Contains(t, output, "2 matches in 1 file")
	assert.NotContains(t, output, "clean.md")
}

func TestTextReporter_Flat(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:     &buf,
		Color:      "never",
		WorkingDir: "/work",
	})

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "docs/test.md:1:5: the cat sat\n")
	assert.Contains(t, buf.String(), "docs/test.md:3:1: Cat food\n")
}

func TestTextReporter_OutsideWorkingDir(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:     &buf,
		Color:      "never",
		WorkingDir: "/elsewhere",
	})

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "/work/docs/test.md:1:5:")
}

func TestJSONReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "1.0.0", output.Version)
	assert.Empty(t, output.Files)
	assert.Nil(t, output.Replacement)
}

func TestJSONReporter_WithMatches(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "cat", output.Query)
	require.Len(t, output.Files, 3)
	require.Len(t, output.Files[0].Matches, 2)
	assert.Equal(t, reporter.JSONMatch{
		Line: 1, Column: 5, StartOffset: 4, EndOffset: 7, Text: "the cat sat",
	}, output.Files[0].Matches[0])
	assert.Equal(t, "permission denied", output.Files[2].Error)
	assert.Equal(t, 2, output.Summary.Matches)
	assert.Equal(t, 1, output.Summary.FilesMatched)
	assert.Equal(t, 1, output.Summary.FilesErrored)
}

func TestJSONReporter_Replace(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	_, err := rep.Report(context.Background(), createReplaceResult())
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.NotNil(t, output.Replacement)
	assert.Equal(t, "dog", *output.Replacement)
	assert.True(t, output.DryRun)
	assert.Equal(t, 2, output.Files[0].Replaced)
	assert.Contains(t, output.Files[0].Diff, "+the dog sat")
}

func TestJSONReporter_Compact(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{
		Writer:  &buf,
		Compact: true,
	})

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}

func TestDiffReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{
		Writer: &buf,
		Color:  "never",
	})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, buf.String())
}

func TestDiffReporter_NoDiffs(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{
		Writer:     &buf,
		Color:      "never",
		WorkingDir: "/work",
	})

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.NotContains(t, buf.String(), "diff --git")
}

func TestDiffReporter_WithDiffs(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  "/work",
	})

	count, err := rep.Report(context.Background(), createReplaceResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	output := buf.String()
	assert.Contains(t, output, "diff --git a/docs/test.md b/docs/test.md\n")
	assert.Contains(t, output, "--- a/docs/test.md\n")
	assert.Contains(t, output, "-the cat sat\n")
	assert.Contains(t, output, "+the dog sat\n")
	assert.Contains(t, output, "1 file changed, 2 insertions(+), 2 deletions(-)")
}

func TestTableReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTableReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  "/work",
	})

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, "FILE")
	assert.Contains(t, output, "docs/test.md")
	assert.Contains(t, output, "3:1")
	assert.Contains(t, output, "2 matches in 1 file")
}

func TestSummaryReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewSummaryReporter(reporter.Options{
		Writer:     &buf,
		Color:      "never",
		WorkingDir: "/work",
	})

	count, err := rep.Report(context.Background(), createReplaceResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, "Replaced")
	assert.Contains(t, output, "docs/test.md")
	assert.Contains(t, output, "Dry run, no files written")
}

func TestSummaryReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewSummaryReporter(reporter.Options{Writer: &buf, Color: "never"})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No matches")
	assert.NotContains(t, buf.String(), "Files\n")
}

func TestDefaultOptions(t *testing.T) {
	opts := reporter.DefaultOptions()

	assert.NotNil(t, opts.Writer)
	assert.NotNil(t, opts.ErrorWriter)
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowSummary)
	assert.True(t, opts.GroupByFile)
}

func createTestResult() *runner.Result {
	return &runner.Result{
		Query: "cat",
		Files: []runner.FileOutcome{
			{
				Path: "/work/docs/test.md",
				Matches: []runner.MatchLine{
					{Line: 1, Column: 5, Start: 4, End: 7, Text: "the cat sat", TextStart: 4, TextEnd: 7},
					{Line: 3, Column: 1, Start: 20, End: 23, Text: "Cat food", TextStart: 0, TextEnd: 3},
				},
			},
			{Path: "/work/docs/clean.md"},
			{Path: "/work/docs/broken.md", Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			FilesSearched:   2,
			FilesMatched:    1,
			FilesErrored:    1,
			Matches:         2,
		},
	}
}

func createReplaceResult() *runner.Result {
	before := "the cat sat\n\nCat food\n"
	after := "the dog sat\n\ndog food\n"

	result := createTestResult()
	result.Replacement = "dog"
	result.Replace = true
	result.DryRun = true
	result.Files = result.Files[:2]
	result.Files[0].Replaced = 2
	result.Files[0].Diff = edit.Unified(result.Files[0].Path, before, after)
	result.Stats.FilesErrored = 0
	result.Stats.Replaced = 2
	return result
}
