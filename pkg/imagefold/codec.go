package imagefold

import (
	"regexp"
	"strings"
)

// Placeholder stands in for a hidden data URI in display text.
const Placeholder = "[base64 image hidden]"

// placeholderURL is the parenthesized form that replaces "(data:...)".
const placeholderURL = "(" + Placeholder + ")"

var (
	// spanPattern matches ![alt](data:image/<subtype>;<params>,<payload>).
	spanPattern = regexp.MustCompile(`!\[([^\]]*)\]\(data:image/[^;)]+;[^,)]+,[^)]+\)`)

	// placeholderPattern matches ![alt]([base64 image hidden]).
	placeholderPattern = regexp.MustCompile(`!\[([^\]]*)\]` + regexp.QuoteMeta(placeholderURL))
)

// Span is one embedded image recognized in storage text.
type Span struct {
	// Start is the byte offset of the leading '!'.
	Start int

	// End is the byte offset just past the closing ')'.
	End int

	// URLStart and URLEnd delimit the data URI, excluding the parentheses.
	URLStart int
	URLEnd   int

	// Alt is the alt text, possibly empty.
	Alt string
}

// URL returns the data URI of the span within storage.
func (s Span) URL(storage string) string {
	return storage[s.URLStart:s.URLEnd]
}

// FindSpans returns the non-overlapping image spans of storage, leftmost first.
func FindSpans(storage string) []Span {
	locs := spanPattern.FindAllStringSubmatchIndex(storage, -1)
	if len(locs) == 0 {
		return nil
	}

	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		altStart, altEnd := loc[2], loc[3]
		spans = append(spans, Span{
			Start:    loc[0],
			End:      loc[1],
			URLStart: altEnd + len("]("),
			URLEnd:   loc[1] - 1,
			Alt:      storage[altStart:altEnd],
		})
	}
	return spans
}

// Fold replaces every image data URI in storage with the placeholder.
// Text without image spans is returned unchanged.
func Fold(storage string) string {
	folded, _ := fold(storage, FindSpans(storage))
	return folded
}

// fold builds the display form and records, for each span, the offset in the
// display form where its placeholder URL begins.
func fold(storage string, spans []Span) (string, []int) {
	if len(spans) == 0 {
		return storage, nil
	}

	var out strings.Builder
	out.Grow(len(storage))

	urlOffsets := make([]int, 0, len(spans))
	cursor := 0
	for _, span := range spans {
		out.WriteString(storage[cursor:span.Start])
		out.WriteString("![")
		out.WriteString(span.Alt)
		out.WriteString("]")
		urlOffsets = append(urlOffsets, out.Len())
		out.WriteString(placeholderURL)
		cursor = span.End
	}
	out.WriteString(storage[cursor:])

	return out.String(), urlOffsets
}

// token is one placeholder occurrence of a folded reference text. An empty url
// marks a placeholder that was already literal text in the reference.
type token struct {
	url string
}

// tokens lists the placeholder occurrences of Fold(reference) in order, each
// paired with the data URI it hides.
func tokens(reference string) []token {
	spans := FindSpans(reference)
	folded, urlOffsets := fold(reference, spans)

	generated := make(map[int]string, len(spans))
	for i, off := range urlOffsets {
		generated[off] = spans[i].URL(reference)
	}

	locs := placeholderPattern.FindAllStringIndex(folded, -1)
	toks := make([]token, 0, len(locs))
	for _, loc := range locs {
		toks = append(toks, token{url: generated[loc[1]-len(placeholderURL)]})
	}
	return toks
}

// Unfold restores hidden data URIs in display using reference, the storage
// text display was folded from.
//
// The k-th placeholder of display receives the payload behind the k-th
// placeholder of Fold(reference). Alt text is taken from display, so edits to
// it survive. Placeholders beyond those available are left verbatim, as are
// placeholders that were already literal text in reference.
//
// Unfold(Fold(s), s) == s for every s.
func Unfold(display, reference string) string {
	out, _ := unfold(display, reference)
	return out
}

// UnfoldOffsets is Unfold that also maps offsets of display to the matching
// offsets of the result. An offset strictly inside a restored placeholder URL
// maps to the start of the URL.
func UnfoldOffsets(display, reference string, offsets ...int) (string, []int) {
	out, restoredURLs := unfold(display, reference)

	mapped := make([]int, len(offsets))
	for i, off := range offsets {
		off = max(0, min(off, len(display)))
		shift := 0
		for _, r := range restoredURLs {
			if off <= r.start {
				break
			}
			if off < r.end {
				off = r.start
				break
			}
			shift += r.size - (r.end - r.start)
		}
		mapped[i] = off + shift
	}
	return out, mapped
}

// restored is a placeholder URL of display, [start, end), that unfolding
// replaced with size bytes.
type restored struct {
	start, end int
	size       int
}

func unfold(display, reference string) (string, []restored) {
	locs := placeholderPattern.FindAllStringSubmatchIndex(display, -1)
	if len(locs) == 0 {
		return display, nil
	}

	toks := tokens(reference)

	var out strings.Builder
	out.Grow(len(reference) + len(display))

	var urls []restored
	cursor := 0
	for k, loc := range locs {
		if k >= len(toks) {
			// Known hazard: a duplicated placeholder has no payload to restore
			// and stays in storage as literal text.
			break
		}
		if toks[k].url == "" {
			continue
		}
		out.WriteString(display[cursor:loc[0]])
		out.WriteString("![")
		out.WriteString(display[loc[2]:loc[3]])
		out.WriteString("](")
		out.WriteString(toks[k].url)
		out.WriteString(")")
		cursor = loc[1]

		urls = append(urls, restored{
			start: loc[3] + len("]"),
			end:   loc[1],
			size:  len(toks[k].url) + len("()"),
		})
	}
	out.WriteString(display[cursor:])

	return out.String(), urls
}

// Snippet builds the Markdown for an embedded image.
func Snippet(alt, dataURL string) string {
	return "![" + alt + "](" + dataURL + ")"
}
