package search

import (
	"github.com/yaklabco/mdedit/pkg/edit"
	"github.com/yaklabco/mdedit/pkg/imagefold"
)

// PlanReplaceOne maps match through the mapper and returns the storage edit
// replacing it. A match that cuts through a folded image URL yields no edit.
func PlanReplaceOne(m *imagefold.Mapper, match Match, replacement string) []edit.TextEdit {
	if m.CutsImage(match.Start, match.End) {
		return nil
	}
	return []edit.TextEdit{storageEdit(m, match, replacement)}
}

// PlanReplaceAll returns the storage edits replacing every match, last match
// first. Matches that cut through a folded image URL are skipped.
func PlanReplaceAll(m *imagefold.Mapper, matches []Match, replacement string) []edit.TextEdit {
	edits := make([]edit.TextEdit, 0, len(matches))
	for i := len(matches) - 1; i >= 0; i-- {
		if m.CutsImage(matches[i].Start, matches[i].End) {
			continue
		}
		edits = append(edits, storageEdit(m, matches[i], replacement))
	}
	return edits
}

func storageEdit(m *imagefold.Mapper, match Match, replacement string) edit.TextEdit {
	return edit.TextEdit{
		Start: m.DisplayToStorage(match.Start),
		End:   m.DisplayToStorage(match.End),
		Text:  replacement,
	}
}

// ReplaceOne returns the storage text with match replaced and the number of
// replacements made, 0 or 1.
func ReplaceOne(m *imagefold.Mapper, match Match, replacement string) (string, int, error) {
	return apply(m, PlanReplaceOne(m, match, replacement))
}

// ReplaceAll returns the storage text with every replaceable match replaced
// in a single pass, and the number of matches replaced.
func ReplaceAll(m *imagefold.Mapper, matches []Match, replacement string) (string, int, error) {
	return apply(m, PlanReplaceAll(m, matches, replacement))
}

func apply(m *imagefold.Mapper, edits []edit.TextEdit) (string, int, error) {
	if len(edits) == 0 {
		return m.Storage(), 0, nil
	}
	out, err := edit.ApplyAll(m.Storage(), edits)
	if err != nil {
		return m.Storage(), 0, err
	}
	return out, len(edits), nil
}
