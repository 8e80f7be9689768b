package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdedit/pkg/config"
)

func TestIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FlavorGFM.IsValid())
	assert.True(t, config.FlavorCommonMark.IsValid())
	assert.False(t, config.Flavor("markdown-it").IsValid())

	assert.True(t, config.ThemeDark.IsValid())
	assert.False(t, config.Theme("").IsValid())

	assert.True(t, config.FormatDiff.IsValid())
	assert.True(t, config.FormatTable.IsValid())
	assert.True(t, config.FormatSummary.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
}
