// Package config defines core configuration types for mdedit.
// These types are plain data structures with no dependency on how they are loaded.
package config

import "time"

// Flavor specifies the Markdown flavor used by the preview renderer.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Theme selects the preview and export color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// OutputFormat specifies how command results are printed.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// Backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// BackupsConfig controls backup behavior when saving files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// PreviewConfig controls Markdown rendering.
type PreviewConfig struct {
	// Linkify turns bare URLs into links.
	Linkify bool `yaml:"linkify"`

	// Typographer replaces quotes and dashes with typographic punctuation.
	Typographer bool `yaml:"typographer"`

	// Breaks renders single newlines inside paragraphs as line breaks.
	Breaks bool `yaml:"breaks"`

	// HighlightStyle is the chroma style for code blocks. Empty follows the theme.
	HighlightStyle string `yaml:"highlight_style,omitempty"`

	// Lang is the lang attribute of exported pages.
	Lang string `yaml:"lang,omitempty"`
}

// EditorConfig controls the interactive editor.
type EditorConfig struct {
	// AutoSave writes the buffer after it has been idle for AutoSaveDelay.
	AutoSave bool `yaml:"auto_save"`

	AutoSaveDelay time.Duration `yaml:"auto_save_delay"`

	// ScrollContext is the number of lines kept above a located match.
	ScrollContext int `yaml:"scroll_context"`

	TabWidth int `yaml:"tab_width"`
}

// ImagesConfig controls image embedding.
type ImagesConfig struct {
	// MaxSide bounds the longer side of embedded raster images, in pixels.
	MaxSide int `yaml:"max_side"`
}

// WorkspaceConfig controls the project tree.
type WorkspaceConfig struct {
	// Extensions lists the file extensions shown in the tree.
	Extensions []string `yaml:"extensions"`

	// Hidden lists entry names that are never shown.
	Hidden []string `yaml:"hidden"`

	// Ignore contains glob patterns, relative to the root, for paths to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// MaxFileSize is the largest file, in bytes, that will be opened.
	MaxFileSize int64 `yaml:"max_file_size"`
}

// Config is the root configuration structure for mdedit.
type Config struct {
	Flavor Flavor `yaml:"flavor"`
	Theme  Theme  `yaml:"theme"`

	Preview   PreviewConfig   `yaml:"preview"`
	Editor    EditorConfig    `yaml:"editor"`
	Images    ImagesConfig    `yaml:"images"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Backups   BackupsConfig   `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// DryRun shows what would change without writing.
	DryRun bool `yaml:"-"`

	// Force writes even when a file changed on disk since it was read.
	Force bool `yaml:"-"`

	// NoBackups disables backup creation when saving.
	NoBackups bool `yaml:"-"`
}

// Defaults shared with the packages that consume the configuration.
const (
	DefaultAutoSaveDelay = time.Second
	DefaultScrollContext = 5
	DefaultTabWidth      = 4
	DefaultMaxSide       = 1024
	DefaultMaxFileSize   = 10 << 20
)

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor: FlavorGFM,
		Theme:  ThemeLight,
		Preview: PreviewConfig{
			Linkify:     true,
			Typographer: true,
			Breaks:      true,
		},
		Editor: EditorConfig{
			AutoSave:      true,
			AutoSaveDelay: DefaultAutoSaveDelay,
			ScrollContext: DefaultScrollContext,
			TabWidth:      DefaultTabWidth,
		},
		Images: ImagesConfig{MaxSide: DefaultMaxSide},
		Workspace: WorkspaceConfig{
			Extensions:  []string{".md"},
			Hidden:      []string{"node_modules", ".git", ".DS_Store", ".gitignore", ".vscode", ".mdoc"},
			MaxFileSize: DefaultMaxFileSize,
		},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    BackupModeSidecar,
		},
		Format: FormatText,
	}
}

// BackupsEnabled reports whether saves should keep a backup, taking the
// CLI override into account.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != BackupModeNone
}
