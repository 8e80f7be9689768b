package runner

import "github.com/yaklabco/mdedit/pkg/edit"

// MatchLine locates one match in the folded text of a file.
type MatchLine struct {
	// Line and Column are 1-based; Column counts bytes.
	Line   int
	Column int

	// Start and End are byte offsets into the folded text.
	Start int
	End   int

	// Text is the folded line holding the match, without its terminator.
	Text string

	// TextStart and TextEnd delimit the match within Text. A match running
	// past the end of the line is cut at the line end.
	TextStart int
	TextEnd   int
}

// FileOutcome is the result for one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Matches lists every match in the file before replacement.
	Matches []MatchLine

	// Replaced is the number of matches rewritten.
	Replaced int

	// Written is true when the file was saved.
	Written bool

	// Diff shows the change on the folded text, for replace runs.
	Diff *edit.Diff

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesSearched is the number of files read and searched.
	FilesSearched int

	// FilesMatched is the number of files with at least one match.
	FilesMatched int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// FilesModified is the number of files written.
	FilesModified int

	// Matches is the total number of matches across all files.
	Matches int

	// Replaced is the total number of matches rewritten.
	Replaced int
}

// Result is the overall runner result.
type Result struct {
	// Query and Replacement echo the run options.
	Query       string
	Replacement string
	Replace     bool
	DryRun      bool

	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasMatches reports whether anything matched.
func (r *Result) HasMatches() bool {
	return r != nil && r.Stats.Matches > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesSearched++
	r.Stats.Matches += len(outcome.Matches)
	r.Stats.Replaced += outcome.Replaced
	if len(outcome.Matches) > 0 {
		r.Stats.FilesMatched++
	}
	if outcome.Written {
		r.Stats.FilesModified++
	}
}
