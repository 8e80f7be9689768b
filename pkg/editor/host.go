package editor

import "context"

// Host reads and writes documents on behalf of a Buffer.
type Host interface {
	ReadFile(ctx context.Context, path string) (string, error)
	WriteFile(ctx context.Context, path, content string) error
}

// Surface is the visible editing control. Offsets are display offsets.
type Surface interface {
	// SetText replaces the visible text.
	SetText(display string)

	// Focus gives the control keyboard focus.
	Focus()

	// Selection returns the selected range; start == end for a caret.
	Selection() (start, end int)

	// SetSelection selects [start, end).
	SetSelection(start, end int)

	// ScrollTo makes the 0-based line the first visible one.
	ScrollTo(line int)
}

// nopSurface is used when a Buffer runs without a visible control. It only
// remembers the selection.
type nopSurface struct {
	start, end int
}

func (*nopSurface) SetText(string) {}
func (*nopSurface) Focus()         {}
func (*nopSurface) ScrollTo(int)   {}

func (s *nopSurface) Selection() (int, int) { return s.start, s.end }

func (s *nopSurface) SetSelection(start, end int) {
	s.start, s.end = start, end
}
