package helpers

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateWordsByRune(t *testing.T) {
	words := strings.Fields("The quick brown fox jumps")

	s, truncated := TruncateWordsByRune(words, 100)
	assert.Equal(t, "The quick brown fox jumps", s)
	assert.False(t, truncated)

	s, truncated = TruncateWordsByRune(words, 8)
	assert.Equal(t, "The quick", s)
	assert.True(t, truncated)

	s, truncated = TruncateWordsByRune(words, 10)
	assert.Equal(t, "The quick br", s)
	assert.True(t, truncated)

	s, truncated = TruncateWordsByRune(words, 0)
	assert.Equal(t, "", s)
	assert.True(t, truncated)
}

func TestUniqueStrings(t *testing.T) {
	in := []string{"b", "a", "", "b"}
	assert.Equal(t, []string{"b", "a"}, UniqueStrings(in))
	assert.Equal(t, []string{"b", "a", "", "b"}, in)
	assert.Nil(t, UniqueStrings(nil))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Fish & Chips today", StripHTML("<b>Fish</b> &amp; <i>Chips</i>\n today"))
	assert.Equal(t, "plain text", StripHTML("plain   text"))
}

func TestMakePathSanitized(t *testing.T) {
	assert.Equal(t, "creme-brulee-desserts", MakePathSanitized("Crème Brûlée / Desserts"))
	assert.Equal(t, "social-media", MakePathSanitized("Social Media"))
	assert.Equal(t, "", MakePathSanitized("  "))
}

func TestGetTitleFunc(t *testing.T) {
	title := "somewhere over the rainbow"
	assert.Equal(t, "Somewhere Over The Rainbow", GetTitleFunc("go")(title))
	assert.Equal(t, "Somewhere Over the Rainbow", GetTitleFunc("chicago")(title))
	assert.Equal(t, "Somewhere Over the Rainbow", GetTitleFunc("ap")(title))
}

func TestOpenFileForWriting(t *testing.T) {
	fs := afero.NewMemMapFs()
	f, err := OpenFileForWriting(fs, "a/b/site.toml")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	exists, err := afero.Exists(fs, "a/b/site.toml")
	require.NoError(t, err)
	assert.True(t, exists)
}
