package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdedit/pkg/edit"
)

// FormatDiff renders a unified diff with added and removed lines colored.
// A nil diff renders as the empty string.
func (s *Styles) FormatDiff(diff *edit.Diff) string {
	if diff == nil {
		return ""
	}

	name := strings.TrimPrefix(diff.Path, "/")

	var builder strings.Builder
	builder.WriteString(s.DiffHeader.Render("--- a/"+name) + "\n")
	builder.WriteString(s.DiffHeader.Render("+++ b/"+name) + "\n")

	for _, hunk := range diff.Hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", hunk.OldStart, hunk.OldLines, hunk.NewStart, hunk.NewLines)
		builder.WriteString(s.DiffHunk.Render(header) + "\n")

		for _, line := range hunk.Lines {
			switch line.Kind {
			case edit.Added:
				builder.WriteString(s.DiffAdd.Render("+" + line.Text))
			case edit.Removed:
				builder.WriteString(s.DiffRemove.Render("-" + line.Text))
			default:
				builder.WriteString(s.DiffContext.Render(" " + line.Text))
			}
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
