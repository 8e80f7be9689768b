package configloader

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gobwas/glob"

	"github.com/yaklabco/mdedit/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "editor.scroll_context").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}
	if cfg.Theme != "" && !cfg.Theme.IsValid() {
		result.fail("theme", cfg.Theme, "invalid theme %q; must be one of: light, dark", cfg.Theme)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, diff", cfg.Format)
	}
	if !IsValidBackupMode(cfg.Backups.Mode) {
		result.fail("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	if style := cfg.Preview.HighlightStyle; style != "" {
		if _, ok := styles.Registry[style]; !ok {
			result.warn("preview.highlight_style", style, "unknown highlight style %q; using the default", style)
		}
	}

	validateEditor(cfg.Editor, result)

	if cfg.Images.MaxSide <= 0 {
		result.fail("images.max_side", cfg.Images.MaxSide, "max_side must be > 0")
	}

	validateWorkspace(cfg.Workspace, result)

	return result
}

func validateEditor(ed config.EditorConfig, result *ValidationResult) {
	if ed.AutoSaveDelay < 0 {
		result.fail("editor.auto_save_delay", ed.AutoSaveDelay, "auto_save_delay must be >= 0")
	}
	if ed.ScrollContext < 0 {
		result.fail("editor.scroll_context", ed.ScrollContext, "scroll_context must be >= 0")
	}
	if ed.TabWidth <= 0 {
		result.fail("editor.tab_width", ed.TabWidth, "tab_width must be > 0")
	}
}

func validateWorkspace(ws config.WorkspaceConfig, result *ValidationResult) {
	if ws.MaxFileSize <= 0 {
		result.fail("workspace.max_file_size", ws.MaxFileSize, "max_file_size must be > 0")
	}

	if len(ws.Extensions) == 0 {
		result.warn("workspace.extensions", ws.Extensions, "no extensions listed; the tree will be empty")
	}
	for i, ext := range ws.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.warn(fmt.Sprintf("workspace.extensions[%d]", i), ext,
				"extension %q does not start with a dot and will never match", ext)
		}
	}

	for i, pattern := range ws.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.fail(fmt.Sprintf("workspace.ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return mode == config.BackupModeSidecar || mode == config.BackupModeNone
}
