package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdedit/pkg/imagefold"
	"github.com/yaklabco/mdedit/pkg/runner"
)

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, matchCount int) string {
	header := s.FilePath.Render(path)
	switch matchCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 match)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d matches)", matchCount))
	}
	return header
}

// FormatMatch formats a single match as an indented "line:col  text" row
// with the matched range highlighted.
func (s *Styles) FormatMatch(m runner.MatchLine) string {
	location := s.Location.Render(fmt.Sprintf("%d:%d", m.Line, m.Column))
	return fmt.Sprintf("  %s  %s\n", location, s.HighlightLine(m.Text, m.TextStart, m.TextEnd))
}

// HighlightLine renders text with the byte range [start, end) highlighted.
// Image placeholders outside the range are styled apart from ordinary text.
// An invalid range renders the line without a highlight.
func (s *Styles) HighlightLine(text string, start, end int) string {
	if start < 0 || end > len(text) || start >= end {
		return s.lineText(text)
	}
	return s.lineText(text[:start]) + s.Match.Render(text[start:end]) + s.lineText(text[end:])
}

// lineText styles plain line text, setting placeholders apart.
func (s *Styles) lineText(text string) string {
	if text == "" {
		return ""
	}

	parts := strings.Split(text, imagefold.Placeholder)
	var builder strings.Builder
	for i, part := range parts {
		if i > 0 {
			builder.WriteString(s.Placeholder.Render(imagefold.Placeholder))
		}
		if part != "" {
			builder.WriteString(s.LineText.Render(part))
		}
	}
	return builder.String()
}
