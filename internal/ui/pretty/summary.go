package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdedit/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func countOf(n int, one, many string) string {
	return fmt.Sprintf("%d %s", n, plural(n, one, many))
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "7 matches in 2 files (5 files searched)".
func (s *Styles) FormatSummaryOneLine(result *runner.Result) string {
	stats := result.Stats
	searched := s.Dim.Render(fmt.Sprintf(" (%s searched)", countOf(stats.FilesSearched, wordFile, wordFiles)))

	var line string
	switch {
	case stats.Matches == 0:
		line = s.Success.Render("No matches found") + searched
	case result.Replace && result.DryRun:
		line = s.Warning.Render("Would replace "+countOf(stats.Replaced, "match", "matches")) +
			" in " + countOf(stats.FilesMatched, wordFile, wordFiles) + searched
	case result.Replace:
		line = s.Success.Render("Replaced "+countOf(stats.Replaced, "match", "matches")) +
			" in " + countOf(stats.FilesModified, wordFile, wordFiles) + searched
	default:
		line = countOf(stats.Matches, "match", "matches") +
			" in " + countOf(stats.FilesMatched, wordFile, wordFiles) + searched
	}

	if stats.FilesErrored > 0 {
		line += ", " + s.Error.Render(countOf(stats.FilesErrored, wordFile, wordFiles)+" failed")
	}
	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(result *runner.Result) string {
	stats := result.Stats
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", value)
	}

	row("Files searched", s.SummaryValue.Render(strconv.Itoa(stats.FilesSearched)))
	if stats.FilesMatched > 0 {
		row("Files with matches", s.SummaryValue.Render(strconv.Itoa(stats.FilesMatched)))
	}
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}

	builder.WriteString("\n")
	row("Matches", s.SummaryValue.Render(strconv.Itoa(stats.Matches)))
	if result.Replace {
		row("Replaced", s.SummaryValue.Render(strconv.Itoa(stats.Replaced)))
	}
	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Completed with errors"))
	case result.Replace && result.DryRun && stats.Replaced > 0:
		builder.WriteString(s.Warning.Render("Dry run, no files written"))
	case stats.Matches == 0:
		builder.WriteString(s.Dim.Render("No matches"))
	default:
		builder.WriteString(s.Success.Render("Done"))
	}
	builder.WriteString("\n")

	return builder.String()
}
