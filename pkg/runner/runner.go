package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/mdedit/pkg/edit"
	"github.com/yaklabco/mdedit/pkg/editor"
	"github.com/yaklabco/mdedit/pkg/imagefold"
	"github.com/yaklabco/mdedit/pkg/search"
	"github.com/yaklabco/mdedit/pkg/textpos"
)

// ErrEmptyQuery is returned for a blank search query.
var ErrEmptyQuery = errors.New("search query is empty")

// Runner searches and rewrites files through a document host.
type Runner struct {
	// Host reads and writes documents.
	Host editor.Host
}

// New creates a Runner over host.
func New(host editor.Host) *Runner {
	return &Runner{Host: host}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes are ordered by path regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if search.Blank(opts.Query) {
		return nil, ErrEmptyQuery
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Query:       opts.Query,
		Replacement: opts.Replacement,
		Replace:     opts.Replace,
		DryRun:      opts.DryRun,
		Files:       make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.ProcessFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile searches one file and, for replace runs, rewrites it.
func (r *Runner) ProcessFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	storage, err := r.Host.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	mapper := imagefold.NewMapper(storage)
	display := mapper.Display()
	matches := search.Find(display, opts.Query)
	outcome.Matches = matchLines(display, matches)

	if !opts.Replace || len(matches) == 0 {
		return outcome
	}

	updated, n, err := search.ReplaceAll(mapper, matches, opts.Replacement)
	if err != nil {
		outcome.Error = fmt.Errorf("replace in %s: %w", path, err)
		return outcome
	}
	outcome.Replaced = n
	if n == 0 {
		return outcome
	}
	outcome.Diff = edit.Unified(path, display, imagefold.Fold(updated))

	if !opts.writes() || updated == storage {
		return outcome
	}
	if err := r.Host.WriteFile(ctx, path, updated); err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Written = true
	return outcome
}

// matchLines positions matches within display for reporting.
func matchLines(display string, matches []search.Match) []MatchLine {
	if len(matches) == 0 {
		return nil
	}

	idx := textpos.NewIndex(display)
	out := make([]MatchLine, 0, len(matches))
	for _, m := range matches {
		line, col := idx.Position(m.Start)
		bounds, _ := idx.Bounds(line - 1)
		textEnd := min(m.End, bounds.ContentEnd) - bounds.Start
		out = append(out, MatchLine{
			Line:      line,
			Column:    col,
			Start:     m.Start,
			End:       m.End,
			Text:      idx.Content(line - 1),
			TextStart: col - 1,
			TextEnd:   max(textEnd, col-1),
		})
	}
	return out
}
