package sitelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanli28/ConnectionKit/resources/page"
)

func TestSortedChildrenInIndex(t *testing.T) {
	s := newTestSite(t)
	blog := newCollection(t, s.Root(), "Blog")
	newChild(t, blog, "C")
	hidden := newChild(t, blog, "Hidden")
	newChild(t, blog, "A")
	draft := newChild(t, blog, "Draft")
	newChild(t, blog, "B")
	hidden.SetIncludeInIndexes(false)
	draft.SetDraft(true)

	v := blog.Index()
	assert.Equal(t, []string{"C", "A", "B"}, titlesOf(v.SortedChildrenInIndex()))

	blog.SetSortMode(page.Alphabetical)
	assert.Equal(t, []string{"A", "B", "C"}, titlesOf(v.SortedChildrenInIndex()))

	v.SetSortOverride(page.Manual)
	assert.Equal(t, []string{"C", "A", "B"}, titlesOf(blog.SortedChildrenInIndex()))
	mode, ok := v.SortOverride()
	assert.True(t, ok)
	assert.Equal(t, page.Manual, mode)

	v.ClearSortOverride()
	v.SetMaxItems(2)
	assert.Equal(t, []string{"A", "B"}, titlesOf(v.SortedChildrenInIndex()))

	v.SetMaxItems(0)
	hidden.SetIncludeInIndexes(true)
	assert.Equal(t, []string{"A", "B", "C", "Hidden"}, titlesOf(v.SortedChildrenInIndex()))

	blog.SetIsCollection(false)
	assert.Empty(t, v.SortedChildrenInIndex())
}

func TestIndexMaxItemsFromConfig(t *testing.T) {
	s := newTestSiteWith(t, testSiteOptions{settings: map[string]any{
		"index": map[string]any{"maxItems": 1},
	}})
	blog := newCollection(t, s.Root(), "Blog")
	newChild(t, blog, "A")
	newChild(t, blog, "B")

	assert.Equal(t, 1, blog.Index().MaxItems())
	assert.Equal(t, []string{"A"}, titlesOf(blog.SortedChildrenInIndex()))
}

func TestSummary(t *testing.T) {
	content := testContent{}
	s := newTestSiteWith(t, testSiteOptions{content: content})
	p := newChild(t, s.Root(), "Post")
	content[p.ID()] = "The quick brown fox jumps over the lazy dog"

	full := p.Summary(0)
	assert.Equal(t, SummaryVariantFull, full.Variant)
	assert.Equal(t, "The quick brown fox jumps over the lazy dog", full.Text)
	assert.False(t, full.Truncated())

	truncated := p.Summary(10)
	assert.Equal(t, SummaryVariantTruncated, truncated.Variant)
	assert.Equal(t, "The quick br", truncated.Text)
	assert.True(t, truncated.Truncated())
	assert.NotEqual(t, full.Key, truncated.Key)

	long := p.Summary(1000)
	assert.Equal(t, SummaryVariantFull, long.Variant)

	p.SetCustomSummaryHTML("<p>Custom <b>summary</b></p>")
	custom := p.Summary(10)
	assert.Equal(t, SummaryVariantCustom, custom.Variant)
	assert.Equal(t, "<p>Custom <b>summary</b></p>", custom.HTML)
	assert.Equal(t, "Custom summary", custom.Text)
	assert.Equal(t, custom.Key, p.Summary(10).Key)
}

func TestIndexSummaries(t *testing.T) {
	content := testContent{}
	s := newTestSiteWith(t, testSiteOptions{
		content:  content,
		settings: map[string]any{"index": map[string]any{"summaryLength": 5}},
	})
	blog := newCollection(t, s.Root(), "Blog")
	a := newChild(t, blog, "A")
	b := newChild(t, blog, "B")
	content[a.ID()] = "abcdefgh"
	content[b.ID()] = "xyz"
	b.SetCustomSummaryHTML("custom")

	v := blog.Index()
	assert.Equal(t, SummaryTruncated, v.SummaryType())
	summaries := v.Summaries()
	require.Len(t, summaries, 2)
	assert.Equal(t, "abcde", summaries[0].Text)
	assert.Equal(t, SummaryVariantCustom, summaries[1].Variant)

	v.SetSummaryType(SummaryFull)
	assert.Equal(t, "abcdefgh", v.ItemSummary(a).Text)

	v.SetSummaryType(SummaryCustom)
	assert.Equal(t, SummaryVariantNone, v.ItemSummary(a).Variant)
	assert.Equal(t, "custom", v.ItemSummary(b).Text)
}

func TestFeedEligible(t *testing.T) {
	s := newTestSite(t)
	blog := newCollection(t, s.Root(), "Blog")
	v := blog.Index()

	assert.False(t, v.FeedEligible())
	v.SetGenerateArchive(true)
	assert.False(t, v.FeedEligible(), "not syndicated")
	blog.SetSyndicate(true)
	assert.True(t, v.FeedEligible())
	assert.Equal(t, []*Page{blog}, s.FeedCollections())

	v.SetGenerateArchive(false)
	assert.False(t, v.FeedEligible())
	v.SetEnableFeed(true)
	assert.True(t, v.FeedEligible())

	blog.SetIsCollection(false)
	assert.False(t, v.FeedEligible())
	assert.Empty(t, s.FeedCollections())
}

func TestArchiveGroups(t *testing.T) {
	s := newTestSite(t)
	blog := newCollection(t, s.Root(), "Blog")
	for _, d := range []int{0, 40, 1, 45} {
		p := newChild(t, blog, "Post")
		p.SetTimestamp(day(d))
	}
	v := blog.Index()
	v.SetMaxItems(1)

	assert.Empty(t, v.ArchiveGroups())

	v.SetGenerateArchive(true)
	groups := v.ArchiveGroups()
	require.Len(t, groups, 2)
	assert.Equal(t, "2024-04", groups[0].Key)
	assert.Len(t, groups[0].Pages, 2)
	assert.Equal(t, "2024-03", groups[1].Key)
	assert.Equal(t, 4, groups.Len())
}

func TestParseSummaryType(t *testing.T) {
	for _, test := range []struct {
		in     string
		expect SummaryType
	}{
		{"", SummaryTruncated},
		{"full", SummaryFull},
		{"Custom", SummaryCustom},
	} {
		got, err := ParseSummaryType(test.in)
		require.NoError(t, err)
		assert.Equal(t, test.expect, got)
	}
	_, err := ParseSummaryType("short")
	assert.Error(t, err)
}
