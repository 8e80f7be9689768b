package cli

import (
	"errors"

	"github.com/yaklabco/mdedit/pkg/runner"
)

// Exit codes for mdedit.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitNoMatches indicates a search completed without finding anything.
	ExitNoMatches = 1

	// ExitFileErrors indicates some files could not be read or written.
	ExitFileErrors = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrNoMatches is returned when find or replace matched nothing.
	ErrNoMatches = errors.New("no matches")

	// ErrFilesFailed is returned when at least one file could not be processed.
	ErrFilesFailed = errors.New("some files could not be processed")

	// errConfig wraps configuration failures so main can pick an exit code.
	errConfig = errors.New("configuration error")
)

// ExitCodeFromResult determines the exit code of a find or replace run.
// File errors take precedence over an empty result.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors():
		return ExitFileErrors
	case !result.HasMatches():
		return ExitNoMatches
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNoMatches):
		return ExitNoMatches
	case errors.Is(err, ErrFilesFailed):
		return ExitFileErrors
	case errors.Is(err, errConfig):
		return ExitConfigError
	case errors.Is(err, runner.ErrEmptyQuery):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}

// resultError converts a run outcome into the sentinel main reports.
func resultError(result *runner.Result) error {
	switch ExitCodeFromResult(result) {
	case ExitFileErrors:
		return ErrFilesFailed
	case ExitNoMatches:
		return ErrNoMatches
	default:
		return nil
	}
}
