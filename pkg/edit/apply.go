package edit

import "strings"

// Apply splices sorted, non-overlapping edits into text in one pass.
// Edits must come from Prepare.
func Apply(text string, edits []TextEdit) string {
	if len(edits) == 0 {
		return text
	}

	size := len(text)
	for _, e := range edits {
		size += e.Delta()
	}

	var out strings.Builder
	out.Grow(size)

	cursor := 0
	for _, e := range edits {
		out.WriteString(text[cursor:e.Start])
		out.WriteString(e.Text)
		cursor = e.End
	}
	out.WriteString(text[cursor:])

	return out.String()
}

// ApplyAll prepares edits and applies them, in any input order.
func ApplyAll(text string, edits []TextEdit) (string, error) {
	prepared, err := Prepare(edits, len(text))
	if err != nil {
		return text, err
	}
	return Apply(text, prepared), nil
}
