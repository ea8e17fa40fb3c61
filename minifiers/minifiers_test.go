package minifiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanli28/ConnectionKit/config"
)

func TestHTML(t *testing.T) {
	c, err := New(config.New())
	require.NoError(t, err)
	assert.False(t, c.MinifyOutput())

	out, err := c.HTML("<p>\n  Some   <em>text</em>\n</p>\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "\n")
	assert.NotContains(t, out, "  ")
	assert.Contains(t, out, "Some <em>text</em>")

	out, err = c.HTML("")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDisableHTML(t *testing.T) {
	cfg := config.New()
	cfg.Set("minify", map[string]any{"minifyOutput": true, "disableHTML": true})

	c, err := New(cfg)
	require.NoError(t, err)
	assert.True(t, c.MinifyOutput())

	in := "<p>\n  Some   text\n</p>"
	out, err := c.HTML(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
