package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/mdedit/pkg/config"
)

// envVarPrefix is the prefix for all mdedit environment variables.
const envVarPrefix = "MDEDIT_"

// envVar describes one supported environment variable.
type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

// envVars maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"FLAVOR": stringVar("Markdown flavor: commonmark or gfm",
		func(c *config.Config, v string) { c.Flavor = config.Flavor(v) }),
	"THEME": stringVar("Preview theme: light or dark",
		func(c *config.Config, v string) { c.Theme = config.Theme(v) }),
	"FORMAT": stringVar("Output format: text, json, or diff",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	"PREVIEW_LINKIFY": boolVar("Turn bare URLs into links: true or false",
		func(c *config.Config) *bool { return &c.Preview.Linkify }),
	"PREVIEW_TYPOGRAPHER": boolVar("Typographic quotes and dashes: true or false",
		func(c *config.Config) *bool { return &c.Preview.Typographer }),
	"PREVIEW_BREAKS": boolVar("Render newlines as line breaks: true or false",
		func(c *config.Config) *bool { return &c.Preview.Breaks }),
	"PREVIEW_HIGHLIGHT_STYLE": stringVar("Chroma style for code blocks",
		func(c *config.Config, v string) { c.Preview.HighlightStyle = v }),
	"EDITOR_AUTO_SAVE": boolVar("Save automatically after edits: true or false",
		func(c *config.Config) *bool { return &c.Editor.AutoSave }),
	"EDITOR_AUTO_SAVE_DELAY": durationVar("Idle time before auto-save (e.g. 1s)",
		func(c *config.Config) *time.Duration { return &c.Editor.AutoSaveDelay }),
	"EDITOR_SCROLL_CONTEXT": intVar("Lines kept above a located match",
		func(c *config.Config) *int { return &c.Editor.ScrollContext }),
	"IMAGES_MAX_SIDE": intVar("Longest side of embedded images, in pixels",
		func(c *config.Config) *int { return &c.Images.MaxSide }),
	"WORKSPACE_EXTENSIONS": sliceVar("Comma-separated file extensions shown in the tree",
		func(c *config.Config) *[]string { return &c.Workspace.Extensions }),
	"WORKSPACE_IGNORE": sliceVar("Comma-separated list of ignore patterns",
		func(c *config.Config) *[]string { return &c.Workspace.Ignore }),
	"WORKSPACE_MAX_FILE_SIZE": {
		description: "Largest file that will be opened, in bytes",
		apply: func(c *config.Config, v string) error {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}
			c.Workspace.MaxFileSize = n
			return nil
		},
	},
	"BACKUPS_ENABLED": boolVar("Keep a backup when saving: true or false",
		func(c *config.Config) *bool { return &c.Backups.Enabled }),
	"BACKUPS_MODE": stringVar("Backup mode: sidecar or none",
		func(c *config.Config, v string) { c.Backups.Mode = v }),
	"NO_BACKUPS": boolVar("Disable backups: true or false",
		func(c *config.Config) *bool { return &c.NoBackups }),
}

func stringVar(desc string, set func(*config.Config, string)) envVar {
	return envVar{description: desc, apply: func(c *config.Config, v string) error {
		set(c, v)
		return nil
	}}
}

func boolVar(desc string, field func(*config.Config) *bool) envVar {
	return envVar{description: desc, apply: func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		*field(c) = b
		return nil
	}}
}

func intVar(desc string, field func(*config.Config) *int) envVar {
	return envVar{description: desc, apply: func(c *config.Config, v string) error {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		*field(c) = i
		return nil
	}}
}

func durationVar(desc string, field func(*config.Config) *time.Duration) envVar {
	return envVar{description: desc, apply: func(c *config.Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q", v)
		}
		*field(c) = d
		return nil
	}}
}

func sliceVar(desc string, field func(*config.Config) *[]string) envVar {
	return envVar{description: desc, apply: func(c *config.Config, v string) error {
		*field(c) = parseSliceValue(v)
		return nil
	}}
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDEDIT_ (e.g., MDEDIT_THEME).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range slices.Sorted(maps.Keys(envVars)) {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := envVars[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		out[envVarPrefix+suffix] = v.description
	}
	return out
}
