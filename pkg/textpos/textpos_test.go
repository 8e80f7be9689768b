package textpos_test

import (
	"testing"

	"github.com/yaklabco/mdedit/pkg/textpos"
)

func TestIndexLine(t *testing.T) {
	t.Parallel()

	text := "alpha\nbeta\r\n\ngamma"
	idx := textpos.NewIndex(text)

	if got := idx.LineCount(); got != 4 {
		t.Fatalf("LineCount() = %d, want 4", got)
	}

	tests := []struct {
		offset int
		want   int
	}{
		{offset: -3, want: 0},
		{offset: 0, want: 0},
		{offset: 5, want: 0},
		{offset: 6, want: 1},
		{offset: 11, want: 1},
		{offset: 12, want: 2},
		{offset: 13, want: 3},
		{offset: len(text), want: 3},
		{offset: len(text) + 10, want: 3},
	}

	for _, tt := range tests {
		if got := idx.Line(tt.offset); got != tt.want {
			t.Errorf("Line(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestIndexContent(t *testing.T) {
	t.Parallel()

	idx := textpos.NewIndex("alpha\nbeta\r\n\ngamma")
	want := []string{"alpha", "beta", "", "gamma"}
	for n, w := range want {
		if got := idx.Content(n); got != w {
			t.Errorf("Content(%d) = %q, want %q", n, got, w)
		}
	}
	if got := idx.Content(9); got != "" {
		t.Errorf("Content(9) = %q, want empty", got)
	}
}

func TestIndexPositionOffset(t *testing.T) {
	t.Parallel()

	idx := textpos.NewIndex("one\ntwo\nthree\n")

	line, col := idx.Position(5)
	if line != 2 || col != 2 {
		t.Errorf("Position(5) = (%d, %d), want (2, 2)", line, col)
	}

	off, ok := idx.Offset(3, 4)
	if !ok || off != 11 {
		t.Errorf("Offset(3, 4) = (%d, %v), want (11, true)", off, ok)
	}

	off, ok = idx.Offset(1, 99)
	if !ok || off != 3 {
		t.Errorf("Offset(1, 99) = (%d, %v), want (3, true)", off, ok)
	}

	if _, ok := idx.Offset(9, 1); ok {
		t.Error("Offset(9, 1) succeeded, want failure")
	}
}

func TestIndexEmpty(t *testing.T) {
	t.Parallel()

	idx := textpos.NewIndex("")
	if idx.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", idx.LineCount())
	}
	if idx.Line(0) != 0 {
		t.Errorf("Line(0) = %d, want 0", idx.Line(0))
	}
}
