package related

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	keywords map[string][]Keyword
	date     time.Time
	name     string
}

func (d *testDoc) RelatedKeywords(cfg IndexConfig) ([]Keyword, error) {
	return d.keywords[cfg.Name], nil
}

func (d *testDoc) PublishDate() time.Time {
	return d.date
}

func (d *testDoc) Name() string {
	return d.name
}

func newTestDoc(name string, date time.Time, keywords ...string) *testDoc {
	return &testDoc{
		name:     name,
		date:     date,
		keywords: map[string][]Keyword{"keywords": StringsToKeywords(keywords...)},
	}
}

func TestSearchDoc(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	idx := NewInvertedIndex(Config{
		Threshold: 50,
		Indices:   IndexConfigs{{Name: "keywords", Weight: 100}},
	})

	query := newTestDoc("query", base, "go", "web")
	both := newTestDoc("both", base.AddDate(0, 0, -2), "go", "web")
	one := newTestDoc("one", base.AddDate(0, 0, -1), "web")
	none := newTestDoc("none", base.AddDate(0, 0, -1), "rust")
	newer := newTestDoc("newer", base.AddDate(0, 0, 1), "go", "web")
	require.NoError(t, idx.Add(query, both, one, none, newer))

	docs, err := idx.SearchDoc(query)
	require.NoError(t, err)
	assert.Equal(t, []Document{both, one}, docs, "more matches rank first")

	idx = NewInvertedIndex(Config{
		Threshold:    50,
		IncludeNewer: true,
		Indices:      IndexConfigs{{Name: "keywords", Weight: 100}},
	})
	require.NoError(t, idx.Add(query, both, newer))
	docs, err = idx.SearchDoc(query)
	require.NoError(t, err)
	assert.Equal(t, []Document{newer, both}, docs, "same weight, newest first")
}

func TestSearchDocWeights(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{
		Threshold: 80,
		Indices: IndexConfigs{
			{Name: "keywords", Weight: 100},
			{Name: "date", Weight: 10, Pattern: "2006"},
		},
	}
	idx := NewInvertedIndex(cfg)

	doc := func(name string, date time.Time, keywords ...string) *testDoc {
		d := newTestDoc(name, date, keywords...)
		d.keywords["date"], _ = cfg.Indices[1].ToKeywords(date)
		return d
	}

	query := doc("query", base, "go")
	sameYear := doc("sameYear", base.AddDate(0, -1, 0))
	keyword := doc("keyword", base.AddDate(-1, 0, 0), "go")
	require.NoError(t, idx.Add(query, sameYear, keyword))

	docs, err := idx.SearchDoc(query)
	require.NoError(t, err)
	assert.Equal(t, []Document{keyword}, docs, "a date match alone is below the threshold")

	docs, err = idx.SearchDoc(query, "date")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestToKeywords(t *testing.T) {
	cfg := IndexConfig{Name: "keywords", ToLower: true}

	kw, err := cfg.ToKeywords([]string{"Go", "WEB"})
	require.NoError(t, err)
	assert.Equal(t, StringsToKeywords("go", "web"), kw)

	kw, err = IndexConfig{Name: "date", Pattern: "200601"}.ToKeywords(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, StringsToKeywords("202403"), kw)

	kw, err = cfg.ToKeywords(time.Time{})
	require.NoError(t, err)
	assert.Empty(t, kw)

	_, err = cfg.ToKeywords(42)
	assert.Error(t, err)
}

func TestNewInvertedIndexDoesNotChangeConfig(t *testing.T) {
	cfg := Config{ToLower: true, Indices: IndexConfigs{{Name: "keywords", Weight: 1}}}
	NewInvertedIndex(cfg)
	assert.False(t, cfg.Indices[0].ToLower)
}
