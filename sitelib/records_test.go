package sitelib

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanli28/ConnectionKit/common/herrors"
	"github.com/wanli28/ConnectionKit/resources/page"
)

func loadTestSite(t *testing.T, records SiteRecords) (*Site, LoadReport, error) {
	t.Helper()
	return Load(records, SiteCfg{DepsCfg: newTestSiteDepsCfg(testSiteOptions{})})
}

func treeShape(s *Site) map[PageID][]PageID {
	shape := make(map[PageID][]PageID)
	s.Walk(func(p *Page) bool {
		for _, c := range p.SortedChildren() {
			shape[p.ID()] = append(shape[p.ID()], c.ID())
		}
		return true
	})
	return shape
}

func TestRecordsRoundTrip(t *testing.T) {
	s := newTestSite(t)
	root := s.Root()
	root.SetSubtitleHTML("<em>Sub</em>")
	blog := newCollection(t, root, "Blog")
	blog.SetSortMode(page.DateDescending)
	blog.SetSyndicate(true)
	blog.Index().SetGenerateArchive(true)
	blog.Index().SetSortOverride(page.Alphabetical)
	blog.Index().SetMaxItems(3)
	for i, title := range []string{"One", "Two", "Three"} {
		p := newChild(t, blog, title)
		p.SetTimestamp(day(i))
	}
	about := newChild(t, root, "About & Contact")
	about.SetKeywords([]string{"contact", "about", "contact"})
	about.SetDraft(true)
	about.SetIncludeSidebar(false)
	about.SetDisableComments(true)
	addPagelet(t, root, "Top1", TopSidebar)
	addPagelet(t, root, "Top2", TopSidebar)
	addPagelet(t, blog, "Bottom", BottomSidebar)
	callout := addPagelet(t, about, "Callout", Callout)
	callout.SetBorderMode(BorderOff)
	s.Tracker().Reset()
	s.Tracker().MarkStale(about.ID())

	records := s.Records()
	require.Len(t, records.Pages, 6)
	require.Len(t, records.Pagelets, 4)

	loaded, report, err := loadTestSite(t, records)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)

	assert.Equal(t, treeShape(s), treeShape(loaded))
	assert.Equal(t, root.ID(), loaded.Root().ID())
	assert.Equal(t, records, loaded.Records())

	lblog, found := loaded.PageByID(blog.ID())
	require.True(t, found)
	assert.Equal(t, titlesOf(blog.SortedChildrenInIndex()), titlesOf(lblog.SortedChildrenInIndex()))
	assert.True(t, lblog.Index().FeedEligible())

	labout, _ := loaded.PageByID(about.ID())
	assert.Equal(t, "About & Contact", labout.TitleText())
	assert.Equal(t, []string{"contact", "about"}, labout.Keywords())
	assert.True(t, labout.Draft())
	assert.False(t, labout.IncludeSidebar())
	assert.True(t, labout.IncludeCallout())
	assert.True(t, labout.DisableComments())
	assert.True(t, labout.IsStale())
	assert.Equal(t, 1, loaded.Tracker().Len())
	assert.False(t, labout.Callouts()[0].ShowBorder())

	assert.Equal(t, pageletTitles(root.AllSidebars()), pageletTitles(loaded.Root().AllSidebars()))
	assert.Equal(t, "<em>Sub</em>", loaded.Root().SubtitleHTML())
}

func TestLoadDefaultsPageElements(t *testing.T) {
	s, _, err := loadTestSite(t, SiteRecords{Pages: []PageRecord{{ID: "home", TitleHTML: "Home"}}})
	require.NoError(t, err)

	assert.True(t, s.Root().IncludeSidebar())
	assert.True(t, s.Root().IncludeCallout())
	assert.False(t, s.Root().DisableComments())
}

func TestLoadRejectsCycles(t *testing.T) {
	records := SiteRecords{Pages: []PageRecord{
		{ID: "root", ChildIDs: []string{"a"}},
		{ID: "a", ParentID: "root"},
		{ID: "b", ParentID: "c"},
		{ID: "c", ParentID: "b"},
	}}

	_, _, err := loadTestSite(t, records)
	assert.ErrorIs(t, err, herrors.ErrCycleDetected)
}

func TestLoadRequiresRoot(t *testing.T) {
	records := SiteRecords{Pages: []PageRecord{
		{ID: "a", ParentID: "b"},
		{ID: "b", ParentID: "a"},
	}}

	_, _, err := loadTestSite(t, records)
	assert.ErrorIs(t, err, herrors.ErrNotFound)
}

func TestLoadRepairs(t *testing.T) {
	records := SiteRecords{
		Pages: []PageRecord{
			{ID: "root", ChildIDs: []string{"b", "ghost", "b", "c"}, IsCollection: true, SortMode: "bogus"},
			{ID: "a", ParentID: "root", TitleHTML: "A"},
			{ID: "b", ParentID: "root", TitleHTML: "B"},
			{ID: "c", ParentID: "b", TitleHTML: "C"},
			{ID: "orphan", ParentID: "missing", TitleHTML: "Orphan"},
			{ID: "b", ParentID: "root"},
		},
		Pagelets: []PageletRecord{
			{ID: "p1", PageID: "root", Location: "topSidebar", SortKey: 5, Title: "P1"},
			{ID: "p2", PageID: "root", Location: "topSidebar", SortKey: 5, Title: "P2"},
			{ID: "p3", PageID: "root", Location: "topSidebar", SortKey: 1, Title: "P3"},
			{ID: "p4", PageID: "nowhere", Location: "callout"},
			{ID: "p5", PageID: "a", Location: "middle", Title: "P5"},
		},
	}

	s, report, err := loadTestSite(t, records)
	require.NoError(t, err)
	assert.NotEmpty(t, report.Warnings)

	var invalidSortKeys int
	for _, w := range report.Warnings {
		if assert.Error(t, w) && errors.Is(w, herrors.ErrInvalidSortKey) {
			invalidSortKeys++
		}
	}
	assert.GreaterOrEqual(t, invalidSortKeys, 2)

	root := s.Root()
	assert.Equal(t, page.Manual, root.SortMode())
	assert.Equal(t, []string{"B", "A", "Orphan"}, titlesOf(root.Children()))

	b, _ := s.PageByID("b")
	assert.Equal(t, []string{"C"}, titlesOf(b.Children()))

	top := root.Pagelets(TopSidebar)
	assert.Equal(t, []string{"P3", "P1", "P2"}, pageletTitles(top))
	assertStrictlyIncreasing(t, top)

	a, _ := s.PageByID("a")
	assert.Equal(t, []string{"P5"}, pageletTitles(a.Pagelets(TopSidebar)))
	_, found := s.PageletByID("p4")
	assert.False(t, found)
}
