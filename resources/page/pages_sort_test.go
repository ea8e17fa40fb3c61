package page

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanli28/ConnectionKit/langs"
)

type testItem struct {
	title   string
	date    time.Time
	ordinal int
}

func (t testItem) Ordinal() int        { return t.ordinal }
func (t testItem) SortTitle() string   { return t.title }
func (t testItem) SortDate() time.Time { return t.date }

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 12, 0, 0, 0, time.UTC)
}

func titles(items []testItem) []string {
	var s []string
	for _, item := range items {
		s = append(s, item.title)
	}
	return s
}

func newTestPolicy() SortPolicy {
	return NewSortPolicy(langs.NewLanguage("en").Collator())
}

func TestParseSortMode(t *testing.T) {
	for _, mode := range []SortMode{Manual, Alphabetical, DateAscending, DateDescending} {
		parsed, err := ParseSortMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}

	m, err := ParseSortMode("DATEDESCENDING")
	require.NoError(t, err)
	assert.Equal(t, DateDescending, m)

	_, err = ParseSortMode("random")
	assert.Error(t, err)
}

func TestSortByAlphabetical(t *testing.T) {
	sp := newTestPolicy()
	items := []testItem{
		{title: "cherry", ordinal: 0},
		{title: "Banana", ordinal: 1},
		{title: "apple", ordinal: 2},
		{title: "APPLE", ordinal: 3},
	}

	sorted := SortBy(sp, items, Alphabetical)
	assert.Equal(t, []string{"apple", "APPLE", "Banana", "cherry"}, titles(sorted))
	assert.True(t, IsSorted(sp, sorted, Alphabetical))
	assert.Equal(t, "cherry", items[0].title, "input untouched")

	again := SortBy(sp, items, Alphabetical)
	assert.Equal(t, sorted, again)
}

func TestSortByDate(t *testing.T) {
	sp := newTestPolicy()
	items := []testItem{
		{title: "b", date: day(2), ordinal: 0},
		{title: "a", date: day(1), ordinal: 1},
		{title: "c", date: day(2), ordinal: 2},
	}

	assert.Equal(t, []string{"a", "b", "c"}, titles(SortBy(sp, items, DateAscending)))
	assert.Equal(t, []string{"b", "c", "a"}, titles(SortBy(sp, items, DateDescending)))
	assert.Equal(t, []string{"b", "a", "c"}, titles(SortBy(sp, items, Manual)))
}

func TestProposedIndex(t *testing.T) {
	sp := newTestPolicy()
	children := KeysOf(SortBy(sp, []testItem{
		{title: "apple", ordinal: 0},
		{title: "cherry", ordinal: 1},
		{title: "date", ordinal: 2},
	}, Alphabetical))

	assert.Equal(t, 1, sp.ProposedIndex(children, SortKey{Title: "Banana", Ordinal: 3}, Alphabetical))
	assert.Equal(t, 0, sp.ProposedIndex(children, SortKey{Title: "Aardvark", Ordinal: 3}, Alphabetical))
	assert.Equal(t, 2, sp.ProposedIndex(children, SortKey{Title: "Cherry", Ordinal: 3}, Alphabetical), "ties go after existing items")
	assert.Equal(t, 3, sp.ProposedIndex(children, SortKey{Title: "Aardvark", Ordinal: 3}, Manual))
}

func TestSortPolicyWithoutCollator(t *testing.T) {
	sp := NewSortPolicy(nil)
	assert.Equal(t, 0, sp.Compare(SortKey{Title: "A"}, SortKey{Title: "a"}, Alphabetical))
	assert.Equal(t, -1, sp.Compare(SortKey{Title: "A", Ordinal: 0}, SortKey{Title: "a", Ordinal: 1}, Alphabetical))
}

func TestGroupByDate(t *testing.T) {
	items := []testItem{
		{title: "a", date: time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)},
		{title: "b", date: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)},
		{title: "c", date: time.Date(2024, time.April, 9, 0, 0, 0, 0, time.UTC)},
	}

	groups := GroupByDate(items, "2006-01")
	require.Len(t, groups, 2)
	assert.Equal(t, "2024-05", groups[0].Key)
	assert.Equal(t, []string{"a", "b"}, titles(groups[0].Pages))
	assert.Equal(t, "2024-04", groups[1].Key)
	assert.Equal(t, 3, groups.Len())
}
