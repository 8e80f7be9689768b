package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate()
	}
	return []byte(minimalTemplate), nil
}

const minimalTemplate = `# mdedit configuration
# See: https://github.com/yaklabco/mdedit

# Markdown flavor for preview and export: commonmark or gfm
flavor: gfm

# Preview and export theme: light or dark
# theme: light

# preview:
#   linkify: true
#   typographer: true
#   breaks: true
#   highlight_style: github

# editor:
#   auto_save: true
#   auto_save_delay: 1s
#   scroll_context: 5

# Longest side, in pixels, of embedded images
# images:
#   max_side: 1024

# workspace:
#   extensions: [".md"]
#   ignore:
#     - "drafts/**"

# backups:
#   enabled: true
#   mode: sidecar
`

// generateFullTemplate writes the defaults under the standard header.
func generateFullTemplate() ([]byte, error) {
	header := DefaultTemplateHeader() + `
#
# This template lists every setting with its default value.`
	return NewConfig().ToYAMLWithHeader(header)
}

// templateToJSON renders the defaults as JSON, keyed like the YAML file.
func templateToJSON() ([]byte, error) {
	yamlBytes, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}

	var generic map[string]any
	if err := yaml.Unmarshal(yamlBytes, &generic); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(generic); err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdedit configuration
# See: https://github.com/yaklabco/mdedit`
}
