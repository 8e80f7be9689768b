package search

import "github.com/yaklabco/mdedit/pkg/textpos"

// DefaultScrollContext is how many lines above an active match stay visible.
const DefaultScrollContext = 5

// ScrollTop returns the 0-based line to show at the top of the viewport so
// that the line holding m sits context lines below it. The result is never
// negative.
func ScrollTop(display string, m Match, context int) int {
	line := textpos.NewIndex(display).Line(m.Start)
	return max(0, line-context)
}
