// Package textpos converts between byte offsets and line/column positions.
package textpos

import "sort"

// Line is the byte range of one line.
type Line struct {
	// Start is the offset of the first byte of the line.
	Start int

	// ContentEnd is the offset of the line terminator ("\n" or "\r\n"), or
	// the end of text for the last line.
	ContentEnd int

	// End is the offset just past the terminator.
	End int
}

// Index maps offsets within a text to lines. An Index never changes; build a
// new one after the text is edited.
type Index struct {
	text  string
	lines []Line
}

// NewIndex scans text for line breaks. An empty text has one empty line.
func NewIndex(text string) *Index {
	lines := make([]Line, 0, 16)
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		contentEnd := i
		if i > start && text[i-1] == '\r' {
			contentEnd--
		}
		lines = append(lines, Line{Start: start, ContentEnd: contentEnd, End: i + 1})
		start = i + 1
	}
	lines = append(lines, Line{Start: start, ContentEnd: len(text), End: len(text)})

	return &Index{text: text, lines: lines}
}

// LineCount returns the number of lines.
func (x *Index) LineCount() int {
	return len(x.lines)
}

// Line returns the 0-based line containing offset. Offsets outside the text
// are clamped.
func (x *Index) Line(offset int) int {
	if offset <= 0 {
		return 0
	}
	idx := sort.Search(len(x.lines), func(i int) bool {
		return x.lines[i].End > offset
	})
	return min(idx, len(x.lines)-1)
}

// Position converts an offset to a 1-based line and 1-based byte column.
func (x *Index) Position(offset int) (int, int) {
	offset = max(0, min(offset, len(x.text)))
	line := x.Line(offset)
	return line + 1, offset - x.lines[line].Start + 1
}

// Offset converts a 1-based line and column to a byte offset. Columns past the
// end of the line clamp to its content end.
func (x *Index) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(x.lines) || col < 1 {
		return 0, false
	}
	l := x.lines[line-1]
	return min(l.Start+col-1, l.ContentEnd), true
}

// Bounds returns the range of the 0-based line n.
func (x *Index) Bounds(n int) (Line, bool) {
	if n < 0 || n >= len(x.lines) {
		return Line{}, false
	}
	return x.lines[n], true
}

// Content returns the text of the 0-based line n without its terminator.
func (x *Index) Content(n int) string {
	l, ok := x.Bounds(n)
	if !ok {
		return ""
	}
	return x.text[l.Start:l.ContentEnd]
}
