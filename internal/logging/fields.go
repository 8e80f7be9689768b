// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldRoot       = "root"

	// Configuration fields.
	FieldConfig = "config"
	FieldFlavor = "flavor"
	FieldTheme  = "theme"
	FieldDryRun = "dry_run"

	// Buffer fields.
	FieldBytes   = "bytes"
	FieldImages  = "images"
	FieldDirty   = "dirty"
	FieldBackup  = "backup"
	FieldSkipped = "skipped"

	// Search fields.
	FieldQuery    = "query"
	FieldMatches  = "matches"
	FieldReplaced = "replaced"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
