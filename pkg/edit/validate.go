package edit

import (
	"cmp"
	"fmt"
	"slices"
)

// RangeError reports an edit whose range does not fit the text.
type RangeError struct {
	Edit    TextEdit
	TextLen int
	Reason  string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("edit [%d:%d] on text of length %d: %s", e.Edit.Start, e.Edit.End, e.TextLen, e.Reason)
}

// OverlapError reports two edits touching the same bytes.
type OverlapError struct {
	First  TextEdit
	Second TextEdit
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("edits [%d:%d] and [%d:%d] overlap",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// Validate checks every edit range against a text of length textLen.
func Validate(edits []TextEdit, textLen int) error {
	for _, e := range edits {
		var reason string
		switch {
		case e.Start < 0:
			reason = "negative start"
		case e.End < e.Start:
			reason = "end before start"
		case e.End > textLen:
			reason = "end past text"
		default:
			continue
		}
		return &RangeError{Edit: e, TextLen: textLen, Reason: reason}
	}
	return nil
}

// Sort orders edits by start, then end. Equal ranges keep their relative order.
func Sort(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
}

// CheckOverlaps reports the first pair of overlapping edits in a sorted slice.
// Two insertions at the same offset overlap, since their order is ambiguous.
func CheckOverlaps(sorted []TextEdit) error {
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.Start < prev.End || (cur.Start == prev.Start && cur.Start == cur.End && prev.Start == prev.End) {
			return &OverlapError{First: prev, Second: cur}
		}
	}
	return nil
}

// Prepare validates edits and returns a sorted copy ready for Apply.
func Prepare(edits []TextEdit, textLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	if err := Validate(edits, textLen); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	Sort(sorted)

	if err := CheckOverlaps(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}
