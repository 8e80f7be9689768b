package configloader

import "github.com/yaklabco/mdedit/pkg/config"

// merge applies CLI overrides on top of base. Only values a flag can set
// are considered:
//   - Strings and numbers override when non-zero
//   - Booleans override only when true, since flags cannot express "unset"
//   - Slices replace base entirely when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Theme != "" {
		result.Theme = override.Theme
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Preview.HighlightStyle != "" {
		result.Preview.HighlightStyle = override.Preview.HighlightStyle
	}
	if override.Editor.ScrollContext != 0 {
		result.Editor.ScrollContext = override.Editor.ScrollContext
	}
	if override.Editor.AutoSaveDelay != 0 {
		result.Editor.AutoSaveDelay = override.Editor.AutoSaveDelay
	}
	if override.Images.MaxSide != 0 {
		result.Images.MaxSide = override.Images.MaxSide
	}

	if override.DryRun {
		result.DryRun = true
	}
	if override.Force {
		result.Force = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Workspace.Ignore != nil {
		result.Workspace.Ignore = override.Workspace.Ignore
	}
	if override.Workspace.Extensions != nil {
		result.Workspace.Extensions = override.Workspace.Extensions
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
