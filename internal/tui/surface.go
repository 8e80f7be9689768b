package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdedit/internal/ui/pretty"
	"github.com/yaklabco/mdedit/pkg/editor"
	"github.com/yaklabco/mdedit/pkg/imagefold"
	"github.com/yaklabco/mdedit/pkg/textpos"
)

var _ editor.Surface = (*surface)(nil)

// surface is the terminal editing control. It holds the display text, a
// selection as an anchor and a caret, and the first visible line.
type surface struct {
	text   string
	index  *textpos.Index
	anchor int
	caret  int
	top    int

	width   int
	height  int
	tabs    int
	focused bool

	// goal is the display column kept across vertical moves, or -1.
	goal int
}

func newSurface(tabWidth int) *surface {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return &surface{index: textpos.NewIndex(""), tabs: tabWidth, goal: -1}
}

func (s *surface) SetText(display string) {
	s.text = display
	s.index = textpos.NewIndex(display)
	s.anchor = min(s.anchor, len(display))
	s.caret = min(s.caret, len(display))
	s.top = min(s.top, s.index.LineCount()-1)
}

func (s *surface) Focus() { s.focused = true }

func (s *surface) Selection() (int, int) {
	return min(s.anchor, s.caret), max(s.anchor, s.caret)
}

func (s *surface) SetSelection(start, end int) {
	s.anchor = s.snap(start)
	s.caret = s.snap(end)
	s.goal = -1
}

func (s *surface) ScrollTo(line int) {
	s.top = max(0, min(line, s.index.LineCount()-1))
}

func (s *surface) setSize(width, height int) {
	s.width = max(width, 1)
	s.height = max(height, 1)
	s.follow()
}

// snap clamps offset to the text and moves it back to a rune boundary.
func (s *surface) snap(offset int) int {
	offset = max(0, min(offset, len(s.text)))
	for offset > 0 && offset < len(s.text) && !utf8.RuneStart(s.text[offset]) {
		offset--
	}
	return offset
}

func (s *surface) hasSelection() bool { return s.anchor != s.caret }

func (s *surface) selected() string {
	start, end := s.Selection()
	return s.text[start:end]
}

// moveTo places the caret, extending the selection when extend is set.
func (s *surface) moveTo(offset int, extend bool) {
	s.caret = s.snap(offset)
	if !extend {
		s.anchor = s.caret
	}
	s.follow()
}

func (s *surface) left(extend bool) {
	if s.hasSelection() && !extend {
		start, _ := s.Selection()
		s.moveTo(start, false)
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.text[:s.caret])
	s.goal = -1
	s.moveTo(s.caret-size, extend)
}

func (s *surface) right(extend bool) {
	if s.hasSelection() && !extend {
		_, end := s.Selection()
		s.moveTo(end, false)
		return
	}
	_, size := utf8.DecodeRuneInString(s.text[s.caret:])
	s.goal = -1
	s.moveTo(s.caret+size, extend)
}

// vertical moves the caret by delta lines, keeping its display column.
func (s *surface) vertical(delta int, extend bool) {
	line := s.index.Line(s.caret)
	if s.goal < 0 {
		s.goal = s.column(line, s.caret)
	}
	target := max(0, min(line+delta, s.index.LineCount()-1))
	goal := s.goal
	s.moveTo(s.offsetAtColumn(target, goal), extend)
	s.goal = goal
}

func (s *surface) home(extend bool) {
	bounds, _ := s.index.Bounds(s.index.Line(s.caret))
	s.goal = -1
	s.moveTo(bounds.Start, extend)
}

func (s *surface) end(extend bool) {
	bounds, _ := s.index.Bounds(s.index.Line(s.caret))
	s.goal = -1
	s.moveTo(bounds.ContentEnd, extend)
}

func (s *surface) selectAll() {
	s.anchor = 0
	s.caret = len(s.text)
	s.follow()
}

// replaceSelection returns the text with the selection replaced by insert,
// and moves the caret past the insertion.
func (s *surface) replaceSelection(insert string) string {
	start, end := s.Selection()
	text := s.text[:start] + insert + s.text[end:]
	s.text = text
	s.index = textpos.NewIndex(text)
	s.anchor = start + len(insert)
	s.caret = s.anchor
	s.goal = -1
	s.follow()
	return text
}

// backspace deletes the selection or the rune before the caret. It returns
// false when there was nothing to delete.
func (s *surface) backspace() (string, bool) {
	if !s.hasSelection() {
		if s.caret == 0 {
			return s.text, false
		}
		_, size := utf8.DecodeLastRuneInString(s.text[:s.caret])
		s.anchor = s.caret - size
	}
	return s.replaceSelection(""), true
}

// deleteForward deletes the selection or the rune after the caret.
func (s *surface) deleteForward() (string, bool) {
	if !s.hasSelection() {
		if s.caret == len(s.text) {
			return s.text, false
		}
		_, size := utf8.DecodeRuneInString(s.text[s.caret:])
		s.anchor = s.caret + size
	}
	return s.replaceSelection(""), true
}

// follow scrolls so the caret line is visible.
func (s *surface) follow() {
	if s.height <= 0 {
		return
	}
	line := s.index.Line(s.caret)
	if line < s.top {
		s.top = line
	}
	if line >= s.top+s.height {
		s.top = line - s.height + 1
	}
}

// column returns the display column of offset within line.
func (s *surface) column(line, offset int) int {
	bounds, _ := s.index.Bounds(line)
	return s.textWidth(s.text[bounds.Start:min(offset, bounds.ContentEnd)])
}

// offsetAtColumn returns the offset in line closest to display column col.
func (s *surface) offsetAtColumn(line, col int) int {
	bounds, _ := s.index.Bounds(line)
	width := 0
	for i, r := range s.text[bounds.Start:bounds.ContentEnd] {
		w := s.runeWidth(r, width)
		if width+w > col {
			return bounds.Start + i
		}
		width += w
	}
	return bounds.ContentEnd
}

func (s *surface) runeWidth(r rune, at int) int {
	if r == '\t' {
		return s.tabs - at%s.tabs
	}
	return runewidth.RuneWidth(r)
}

func (s *surface) textWidth(text string) int {
	width := 0
	for _, r := range text {
		width += s.runeWidth(r, width)
	}
	return width
}

// view renders the visible lines. Selected text, the caret and image
// placeholders are styled; lines are cut at the surface width.
func (s *surface) view(styles *pretty.Styles) string {
	start, end := s.Selection()
	placeholders := placeholderRanges(s.text)

	var out strings.Builder
	last := min(s.top+s.height, s.index.LineCount())
	for line := s.top; line < last; line++ {
		bounds, _ := s.index.Bounds(line)
		out.WriteString(s.renderLine(styles, bounds, start, end, placeholders))
		if line < last-1 {
			out.WriteByte('\n')
		}
	}
	for line := last; line < s.top+s.height; line++ {
		out.WriteString("\n" + styles.Dim.Render("~"))
	}
	return out.String()
}

func (s *surface) renderLine(styles *pretty.Styles, bounds textpos.Line, selStart, selEnd int, placeholders [][2]int) string {
	var out strings.Builder
	width := 0
	caretShown := false

	for i, r := range s.text[bounds.Start:bounds.ContentEnd] {
		offset := bounds.Start + i
		w := s.runeWidth(r, width)
		if width+w > s.width {
			break
		}

		glyph := string(r)
		if r == '\t' {
			glyph = strings.Repeat(" ", w)
		}

		switch {
		case s.focused && offset == s.caret:
			glyph = styles.Match.Reverse(true).Render(glyph)
			caretShown = true
		case offset >= selStart && offset < selEnd:
			glyph = styles.Match.Render(glyph)
		case inRanges(offset, placeholders):
			glyph = styles.Placeholder.Render(glyph)
		}
		out.WriteString(glyph)
		width += w
	}

	if s.focused && !caretShown && s.caret == bounds.ContentEnd && width < s.width {
		out.WriteString(styles.Match.Reverse(true).Render(" "))
	}
	return out.String()
}

func placeholderRanges(text string) [][2]int {
	var ranges [][2]int
	for from := 0; ; {
		i := strings.Index(text[from:], imagefold.Placeholder)
		if i < 0 {
			return ranges
		}
		start := from + i
		ranges = append(ranges, [2]int{start, start + len(imagefold.Placeholder)})
		from = start + len(imagefold.Placeholder)
	}
}

func inRanges(offset int, ranges [][2]int) bool {
	for _, r := range ranges {
		if offset >= r[0] && offset < r[1] {
			return true
		}
	}
	return false
}
