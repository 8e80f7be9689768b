// Package editor owns the text of one open document.
//
// A Buffer keeps the storage text, which is what gets persisted, and shows the
// folded display text on a Surface. User edits arrive in display form and are
// unfolded against the previous storage before being reported through the
// change callback. Search and replace run on display text; replacements are
// mapped back onto storage and applied as a single transition.
//
// A Buffer is not safe for concurrent use. Callers drive it from one event
// loop.
package editor
