package imagefold

import "sort"

// unit is the parenthesized URL of an image span, "(data:...)" in storage and
// "([base64 image hidden])" in display. Alt text is not part of a unit and
// maps one to one.
type unit struct {
	storageStart, storageEnd int
	displayStart, displayEnd int
}

// Mapper translates offsets between a storage text and its folded display
// form. Folded URLs are atomic: an offset strictly inside one collapses to
// the start of the URL on the other side.
//
// A Mapper is immutable and safe for concurrent use.
type Mapper struct {
	storage string
	display string
	spans   []Span
	units   []unit
}

// NewMapper folds storage and indexes its image spans.
func NewMapper(storage string) *Mapper {
	spans := FindSpans(storage)
	display, urlOffsets := fold(storage, spans)

	units := make([]unit, len(spans))
	for i, span := range spans {
		units[i] = unit{
			storageStart: span.URLStart - 1,
			storageEnd:   span.End,
			displayStart: urlOffsets[i],
			displayEnd:   urlOffsets[i] + len(placeholderURL),
		}
	}

	return &Mapper{
		storage: storage,
		display: display,
		spans:   spans,
		units:   units,
	}
}

// Storage returns the storage text.
func (m *Mapper) Storage() string { return m.storage }

// Display returns Fold(Storage()).
func (m *Mapper) Display() string { return m.display }

// Spans returns the image spans of the storage text.
func (m *Mapper) Spans() []Span { return m.spans }

// DisplayToStorage maps a display offset to the matching storage offset.
// Offsets are clamped to the text bounds.
func (m *Mapper) DisplayToStorage(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(m.display) {
		return len(m.storage)
	}

	// First unit that ends after offset.
	idx := sort.Search(len(m.units), func(i int) bool {
		return m.units[i].displayEnd > offset
	})

	if idx < len(m.units) && offset > m.units[idx].displayStart {
		return m.units[idx].storageStart
	}

	return offset + m.shiftBefore(idx)
}

// StorageToDisplay maps a storage offset to the matching display offset.
// Offsets are clamped to the text bounds.
func (m *Mapper) StorageToDisplay(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(m.storage) {
		return len(m.display)
	}

	idx := sort.Search(len(m.units), func(i int) bool {
		return m.units[i].storageEnd > offset
	})

	if idx < len(m.units) && offset > m.units[idx].storageStart {
		return m.units[idx].displayStart
	}

	return offset - m.shiftBefore(idx)
}

// CutsImage reports whether the display range [start, end) begins or ends
// strictly inside a folded URL. Such a range has no storage counterpart that
// leaves the image intact.
func (m *Mapper) CutsImage(start, end int) bool {
	return m.insideUnit(start) || m.insideUnit(end)
}

func (m *Mapper) insideUnit(offset int) bool {
	idx := sort.Search(len(m.units), func(i int) bool {
		return m.units[i].displayEnd > offset
	})
	return idx < len(m.units) && offset > m.units[idx].displayStart
}

// shiftBefore is the storage length minus the display length of all units
// before index idx.
func (m *Mapper) shiftBefore(idx int) int {
	if idx == 0 {
		return 0
	}
	last := m.units[idx-1]
	return last.storageEnd - last.displayEnd
}
