package edit

import (
	"fmt"
	"strings"
)

// LineKind classifies a line of a diff hunk.
type LineKind int

const (
	// Context lines are present on both sides.
	Context LineKind = iota
	// Added lines exist only in the new text.
	Added
	// Removed lines exist only in the old text.
	Removed
)

// prefix is the unified diff marker for the kind.
func (k LineKind) prefix() byte {
	switch k {
	case Added:
		return '+'
	case Removed:
		return '-'
	default:
		return ' '
	}
}

// DiffLine is one line of a hunk, without its marker.
type DiffLine struct {
	Kind LineKind
	Text string
}

// Hunk is a run of changes with surrounding context. Line numbers are 1-based.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Lines              []DiffLine
}

// Diff is a line diff between two versions of a file.
type Diff struct {
	Path    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// DefaultContext is the number of unchanged lines shown around each change.
const DefaultContext = 3

// Unified computes the line diff from before to after. It returns nil when
// both texts have the same lines.
func Unified(path, before, after string) *Diff {
	return UnifiedContext(path, before, after, DefaultContext)
}

// UnifiedContext is Unified with a custom amount of context.
func UnifiedContext(path, before, after string, context int) *Diff {
	if before == after {
		return nil
	}

	script := lineScript(splitLines(before), splitLines(after))

	diff := &Diff{Path: path}
	for _, line := range script {
		switch line.Kind {
		case Added:
			diff.Added++
		case Removed:
			diff.Removed++
		}
	}
	if diff.Added == 0 && diff.Removed == 0 {
		return nil
	}

	diff.Hunks = hunks(script, max(context, 0))
	return diff
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}

	name := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", name, name)
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
		for _, line := range h.Lines {
			b.WriteByte(line.Kind.prefix())
			b.WriteString(line.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// splitLines breaks text into lines. A trailing newline does not start a new line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// lineScript returns the edit script turning a into b, built from the longest
// common subsequence of lines.
func lineScript(a, b []string) []DiffLine {
	// suffix[i][j] is the LCS length of a[i:] and b[j:].
	suffix := make([][]int, len(a)+1)
	for i := range suffix {
		suffix[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				suffix[i][j] = suffix[i+1][j+1] + 1
			} else {
				suffix[i][j] = max(suffix[i+1][j], suffix[i][j+1])
			}
		}
	}

	script := make([]DiffLine, 0, max(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			script = append(script, DiffLine{Kind: Context, Text: a[i]})
			i++
			j++
		case suffix[i+1][j] >= suffix[i][j+1]:
			script = append(script, DiffLine{Kind: Removed, Text: a[i]})
			i++
		default:
			script = append(script, DiffLine{Kind: Added, Text: b[j]})
			j++
		}
	}
	for ; i < len(a); i++ {
		script = append(script, DiffLine{Kind: Removed, Text: a[i]})
	}
	for ; j < len(b); j++ {
		script = append(script, DiffLine{Kind: Added, Text: b[j]})
	}
	return script
}

// hunks groups an edit script into hunks. Changes separated by at most
// 2*context unchanged lines share a hunk.
func hunks(script []DiffLine, context int) []Hunk {
	var (
		out      []Hunk
		oldLine  = 1
		newLine  = 1
		cur      *Hunk
		trailing int
	)

	// Positions of each script entry in the old and new text.
	oldAt := make([]int, len(script))
	newAt := make([]int, len(script))
	for idx, line := range script {
		oldAt[idx], newAt[idx] = oldLine, newLine
		if line.Kind != Added {
			oldLine++
		}
		if line.Kind != Removed {
			newLine++
		}
	}

	for idx, line := range script {
		if line.Kind == Context {
			if cur == nil {
				continue
			}
			if trailing >= context && !changeWithin(script, idx, context) {
				out = append(out, *cur)
				cur = nil
				continue
			}
			trailing++
			cur.add(line)
			continue
		}

		if cur == nil {
			first := max(idx-context, 0)
			for first < idx && script[first].Kind != Context {
				first++
			}
			cur = &Hunk{OldStart: oldAt[first], NewStart: newAt[first]}
			for _, prev := range script[first:idx] {
				cur.add(prev)
			}
		}
		trailing = 0
		cur.add(line)
	}

	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

// changeWithin reports whether a non-context line occurs in script[idx:idx+n+1].
func changeWithin(script []DiffLine, idx, n int) bool {
	for k := idx; k < len(script) && k <= idx+n; k++ {
		if script[k].Kind != Context {
			return true
		}
	}
	return false
}

func (h *Hunk) add(line DiffLine) {
	h.Lines = append(h.Lines, line)
	if line.Kind != Added {
		h.OldLines++
	}
	if line.Kind != Removed {
		h.NewLines++
	}
}
