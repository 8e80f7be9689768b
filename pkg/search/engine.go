package search

// Result summarizes a match set for display, as in "2/7".
type Result struct {
	// Matches is the number of matches.
	Matches int

	// Current is the 1-based ordinal of the active match, or 0 when there
	// are no matches.
	Current int
}

// Engine tracks the matches of the active query and which one is current.
// The zero value is ready to use.
type Engine struct {
	query   string
	matches []Match
	current int
}

// Search replaces the match set with the matches of query in display and
// makes the first match current.
func (e *Engine) Search(display, query string) Result {
	e.query = query
	e.matches = Find(display, query)
	e.current = 0
	return e.Result()
}

// Refresh re-runs the active query against display, keeping the current
// index where it was, clamped to the new match set.
func (e *Engine) Refresh(display string) Result {
	current := e.current
	e.matches = Find(display, e.query)
	e.current = clamp(current, len(e.matches))
	return e.Result()
}

// Next makes the following match current, wrapping to the first.
func (e *Engine) Next() Result {
	if n := len(e.matches); n > 0 {
		e.current = (e.current + 1) % n
	}
	return e.Result()
}

// Previous makes the preceding match current, wrapping to the last.
func (e *Engine) Previous() Result {
	if n := len(e.matches); n > 0 {
		e.current = (e.current - 1 + n) % n
	}
	return e.Result()
}

// Clear drops the match set. The query is kept.
func (e *Engine) Clear() {
	e.matches = nil
	e.current = 0
}

// Reset forgets the query and the match set.
func (e *Engine) Reset() {
	e.query = ""
	e.Clear()
}

// Query returns the active query.
func (e *Engine) Query() string { return e.query }

// Matches returns the match set in text order.
func (e *Engine) Matches() []Match { return e.matches }

// Index returns the 0-based index of the current match.
func (e *Engine) Index() int { return e.current }

// Current returns the active match, if any.
func (e *Engine) Current() (Match, bool) {
	if len(e.matches) == 0 {
		return Match{}, false
	}
	return e.matches[e.current], true
}

// Result returns the match count and current ordinal.
func (e *Engine) Result() Result {
	if len(e.matches) == 0 {
		return Result{}
	}
	return Result{Matches: len(e.matches), Current: e.current + 1}
}

func clamp(idx, n int) int {
	if n == 0 || idx < 0 {
		return 0
	}
	return min(idx, n-1)
}
