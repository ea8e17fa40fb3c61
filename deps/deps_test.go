package deps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanli28/ConnectionKit/config"
)

func TestNewDefaults(t *testing.T) {
	d, err := New(DepsCfg{})
	require.NoError(t, err)

	assert.NotNil(t, d.Log)
	assert.NotNil(t, d.Clock)
	assert.Equal(t, "en", d.Language.Lang)
	assert.Equal(t, "manual", d.Conf.Pages.DefaultSortMode)
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.Set("languageCode", "sv")
	cfg.Set("pages", map[string]any{"defaultSortMode": "alphabetical"})

	d, err := New(DepsCfg{Cfg: cfg})
	require.NoError(t, err)
	assert.Equal(t, "sv", d.Language.Lang)
	assert.Equal(t, "alphabetical", d.Conf.Pages.DefaultSortMode)
	assert.True(t, d.Conf.Pages.IncludeInIndexes)
}
