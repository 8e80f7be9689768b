// Package edit splices replacements into text and renders the result as a
// unified diff.
package edit

// TextEdit replaces the byte range [Start, End) of a text with Text.
type TextEdit struct {
	Start int
	End   int
	Text  string
}

// Delta is the change in text length caused by the edit.
func (e TextEdit) Delta() int {
	return len(e.Text) - (e.End - e.Start)
}
