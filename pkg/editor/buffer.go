package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdedit/pkg/imagefold"
	"github.com/yaklabco/mdedit/pkg/search"
)

// ErrNoPath is returned when saving a buffer that was never opened from or
// saved to a file.
var ErrNoPath = errors.New("buffer has no file path")

// Option configures a Buffer.
type Option func(*Buffer)

// WithSurface attaches the visible editing control.
func WithSurface(s Surface) Option {
	return func(b *Buffer) {
		if s != nil {
			b.surface = s
		}
	}
}

// WithOnChange registers a callback receiving the storage text after every
// edit made through the buffer.
func WithOnChange(fn func(storage string)) Option {
	return func(b *Buffer) {
		b.onChange = fn
	}
}

// WithScrollContext sets how many lines stay visible above an active match.
func WithScrollContext(lines int) Option {
	return func(b *Buffer) {
		if lines >= 0 {
			b.scrollContext = lines
		}
	}
}

// Buffer is the controller for one document.
type Buffer struct {
	host          Host
	surface       Surface
	onChange      func(string)
	scrollContext int

	path   string
	saved  string
	mapper *imagefold.Mapper
	search search.Engine
}

// New creates an empty buffer that reads and writes through host.
func New(host Host, opts ...Option) *Buffer {
	b := &Buffer{
		host:          host,
		surface:       &nopSurface{},
		scrollContext: search.DefaultScrollContext,
		mapper:        imagefold.NewMapper(""),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open loads path through the host and makes it the buffer's document.
func (b *Buffer) Open(ctx context.Context, path string) error {
	content, err := b.host.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	b.path = path
	b.saved = content
	b.SetStorage(content)
	return nil
}

// Save writes the storage text to the buffer's path.
func (b *Buffer) Save(ctx context.Context) error {
	if b.path == "" {
		return ErrNoPath
	}
	return b.SaveAs(ctx, b.path)
}

// SaveAs writes the storage text to path and makes path the buffer's file.
func (b *Buffer) SaveAs(ctx context.Context, path string) error {
	storage := b.Storage()
	if err := b.host.WriteFile(ctx, path, storage); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	b.path = path
	b.saved = storage
	return nil
}

// Close discards the document.
func (b *Buffer) Close() {
	b.path = ""
	b.saved = ""
	b.SetStorage("")
}

// Path returns the file the buffer was loaded from, if any.
func (b *Buffer) Path() string { return b.path }

// Dirty reports whether the storage text differs from what was last loaded
// or saved.
func (b *Buffer) Dirty() bool { return b.Storage() != b.saved }

// Storage returns the full-fidelity text.
func (b *Buffer) Storage() string { return b.mapper.Storage() }

// Display returns the folded text shown on the surface.
func (b *Buffer) Display() string { return b.mapper.Display() }

// Mapper returns the offset mapper for the current text.
func (b *Buffer) Mapper() *imagefold.Mapper { return b.mapper }

// SetStorage replaces the document text from outside the editing surface,
// for example after a reload. Search state is reset and the change callback
// is not invoked.
func (b *Buffer) SetStorage(storage string) {
	b.mapper = imagefold.NewMapper(storage)
	b.search.Reset()
	b.surface.SetText(b.mapper.Display())
	b.SetCursor(0)
}

// Edit accepts new display text typed by the user. Hidden image payloads are
// restored from the previous storage text and the result is reported through
// the change callback. Matches of the active query are recomputed. If the
// edit introduced a full data URI, the surface is refreshed with the folded
// form and the selection is carried over to it.
func (b *Buffer) Edit(display string) {
	start, end := b.surface.Selection()

	storage, at := imagefold.UnfoldOffsets(display, b.Storage(), start, end)
	b.mapper = imagefold.NewMapper(storage)
	b.search.Refresh(b.mapper.Display())

	if folded := b.mapper.Display(); folded != display {
		b.surface.SetText(folded)
		b.setSelection(b.mapper.StorageToDisplay(at[0]), b.mapper.StorageToDisplay(at[1]))
	}
	b.changed()
}

// Focus gives the surface keyboard focus.
func (b *Buffer) Focus() { b.surface.Focus() }

// Cursor returns the caret position in display coordinates.
func (b *Buffer) Cursor() int {
	start, _ := b.surface.Selection()
	return start
}

// SetCursor moves the caret, clamped to the display text.
func (b *Buffer) SetCursor(offset int) {
	b.setSelection(offset, offset)
}

// Selection returns the selected display range.
func (b *Buffer) Selection() (int, int) { return b.surface.Selection() }

// InsertAtCursor inserts text into storage at the caret and moves the caret
// past the inserted text. Text containing a data URI is shown folded.
func (b *Buffer) InsertAtCursor(text string) {
	at := b.mapper.DisplayToStorage(b.Cursor())
	storage := b.Storage()

	b.mapper = imagefold.NewMapper(storage[:at] + text + storage[at:])
	b.search.Refresh(b.mapper.Display())
	b.surface.SetText(b.mapper.Display())
	b.SetCursor(b.mapper.StorageToDisplay(at + len(text)))
	b.changed()
}

// Search finds query in the display text and selects the first match.
func (b *Buffer) Search(query string) search.Result {
	res := b.search.Search(b.Display(), query)
	b.locate()
	return res
}

// Next selects the following match, wrapping around.
func (b *Buffer) Next() search.Result {
	res := b.search.Next()
	b.locate()
	return res
}

// Previous selects the preceding match, wrapping around.
func (b *Buffer) Previous() search.Result {
	res := b.search.Previous()
	b.locate()
	return res
}

// SearchResult returns the state of the active search.
func (b *Buffer) SearchResult() search.Result { return b.search.Result() }

// Matches returns the active match set.
func (b *Buffer) Matches() []search.Match { return b.search.Matches() }

// ReplaceOne replaces the current match of query and searches again. It
// returns the number of replacements made, 0 or 1. A match that cuts through
// a folded image is left alone and the next match is selected.
func (b *Buffer) ReplaceOne(query, replacement string) (int, error) {
	match, ok := b.prepareReplace(query)
	if !ok {
		return 0, nil
	}

	storage, n, err := search.ReplaceOne(b.mapper, match, replacement)
	if err != nil {
		return 0, fmt.Errorf("replacing match: %w", err)
	}
	if n == 0 {
		b.search.Next()
		b.locate()
		return 0, nil
	}

	b.apply(storage)
	b.search.Refresh(b.Display())
	b.locate()
	return 1, nil
}

// ReplaceAll replaces every match of query in one storage transition and
// clears the match set. Matches that cut through a folded image are skipped;
// when none is left the buffer is unchanged.
func (b *Buffer) ReplaceAll(query, replacement string) (int, error) {
	if _, ok := b.prepareReplace(query); !ok {
		return 0, nil
	}

	storage, count, err := search.ReplaceAll(b.mapper, b.search.Matches(), replacement)
	if err != nil {
		return 0, fmt.Errorf("replacing matches: %w", err)
	}
	if count == 0 {
		return 0, nil
	}

	b.apply(storage)
	b.search.Clear()
	return count, nil
}

// prepareReplace runs a fresh search when query is not the active one and
// returns the current match. After ReplaceAll the match set stays empty until
// the next search.
func (b *Buffer) prepareReplace(query string) (search.Match, bool) {
	if search.Blank(query) {
		return search.Match{}, false
	}
	if query != b.search.Query() {
		b.search.Search(b.Display(), query)
	}
	return b.search.Current()
}

// apply installs new storage text produced by the buffer itself.
func (b *Buffer) apply(storage string) {
	cursor := b.mapper.DisplayToStorage(b.Cursor())
	b.mapper = imagefold.NewMapper(storage)
	b.surface.SetText(b.mapper.Display())
	b.SetCursor(b.mapper.StorageToDisplay(min(cursor, len(storage))))
	b.changed()
}

// locate selects the current match and scrolls it into view.
func (b *Buffer) locate() {
	match, ok := b.search.Current()
	if !ok {
		return
	}
	b.surface.SetSelection(match.Start, match.End)
	b.surface.ScrollTo(search.ScrollTop(b.Display(), match, b.scrollContext))
}

func (b *Buffer) setSelection(start, end int) {
	n := len(b.Display())
	start = max(0, min(start, n))
	end = max(start, min(end, n))
	b.surface.SetSelection(start, end)
}

func (b *Buffer) changed() {
	if b.onChange != nil {
		b.onChange(b.Storage())
	}
}
