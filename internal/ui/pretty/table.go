package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/mdedit/pkg/runner"
)

const (
	defaultTermWidth = 100
	maxFileWidth     = 40
	cellPadding      = 1
)

// TableFormatter formats matches as a bordered table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatTable formats every match of result, one row per match. It returns
// the empty string when nothing matched.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if !result.HasMatches() {
		return ""
	}

	var rows [][]string
	for _, file := range result.Files {
		for _, m := range file.Matches {
			start, end := trimmedRange(m)
			rows = append(rows, []string{
				truncateFilePath(file.Path, maxFileWidth),
				fmt.Sprintf("%d:%d", m.Line, m.Column),
				t.styles.HighlightLine(strings.TrimSpace(m.Text), start, end),
			})
		}
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(t.styles.TableBorder).
		Width(t.termWidth).
		Headers("FILE", "LOC", "TEXT").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.styles.TableHeader.Padding(0, cellPadding)
			}
			return lipgloss.NewStyle().Padding(0, cellPadding)
		})

	return tbl.String() + "\n"
}

// trimmedRange shifts the match range to account for leading whitespace
// removed from the line.
func trimmedRange(m runner.MatchLine) (int, int) {
	lead := len(m.Text) - len(strings.TrimLeft(m.Text, " \t"))
	trimmed := strings.TrimSpace(m.Text)
	start := max(m.TextStart-lead, 0)
	end := min(m.TextEnd-lead, len(trimmed))
	return start, end
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
