// Package runner searches and rewrites many Markdown files at once.
package runner

import "github.com/yaklabco/mdedit/pkg/workspace"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Scan controls which files a directory contributes.
	Scan workspace.ScanOptions

	// Query is the text to search for. Matching ignores case. Images are
	// matched in their folded form, so embedded payloads never match.
	Query string

	// Replacement replaces every match when Replace is set.
	Replacement string

	// Replace rewrites matches instead of only reporting them.
	Replace bool

	// DryRun computes replacements and diffs without writing.
	DryRun bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// writes reports whether the run modifies files.
func (o Options) writes() bool {
	return o.Replace && !o.DryRun
}
