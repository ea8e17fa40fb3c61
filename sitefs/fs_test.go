package sitefs

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrom(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/work/site.toml", []byte("x"), 0o644))

	fs, err := NewFrom(base, "/work", "public")
	require.NoError(t, err)

	exists, err := afero.DirExists(base, "/work/public")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, afero.WriteFile(fs.PublishDir, "/blog/index.toml", []byte("y"), 0o644))
	exists, err = afero.Exists(base, "/work/public/blog/index.toml")
	require.NoError(t, err)
	assert.True(t, exists)

	b, err := afero.ReadFile(fs.WorkingDirReadOnly, "/site.toml")
	require.NoError(t, err)
	assert.Equal(t, "x", string(b))
	assert.Error(t, afero.WriteFile(fs.WorkingDirReadOnly, "/other.toml", []byte("z"), 0o644))

	fs, err = NewFrom(base, "/work", "/abs/out")
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs.PublishDir, "/index.toml", []byte("y"), 0o644))
	exists, err = afero.Exists(base, "/abs/out/index.toml")
	require.NoError(t, err)
	assert.True(t, exists)
}
