package sitelib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanli28/ConnectionKit/resources/page"
)

func TestNewSite(t *testing.T) {
	s := newTestSite(t)

	root := s.Root()
	assert.True(t, root.IsRoot())
	assert.True(t, root.IsCollection())
	assert.Nil(t, root.Parent())
	assert.Equal(t, "Home", root.TitleText())
	assert.Equal(t, "/", root.Path())
	assert.Equal(t, 1, s.Len())
	assert.True(t, root.IsStale())
}

func TestNewPageDefaults(t *testing.T) {
	s := newTestSite(t)

	p := s.NewPage("Fish & Chips")
	assert.Equal(t, "Fish & Chips", p.TitleText())
	assert.Equal(t, "Fish &amp; Chips", p.TitleHTML())
	assert.Equal(t, page.Manual, p.SortMode())
	assert.True(t, p.IncludeInIndexes())
	assert.False(t, p.IncludeInSiteMenu())
	assert.True(t, p.SidebarChangeable())
	assert.WithinDuration(t, testStart, p.Created(), time.Minute)
	assert.Equal(t, p.Created(), p.Timestamp())

	_, found := s.PageByID(p.ID())
	assert.False(t, found, "new pages are not in the tree until added")
	assert.Equal(t, "", p.Path())
}

func TestNewPageFromConfig(t *testing.T) {
	s := newTestSiteWith(t, testSiteOptions{settings: map[string]any{
		"titleCase":      true,
		"titleCaseStyle": "go",
		"pages": map[string]any{
			"defaultSortMode":   "dateDescending",
			"includeInSiteMenu": true,
		},
	}})

	p := s.NewPage("somewhere over the rainbow")
	assert.Equal(t, "Somewhere Over The Rainbow", p.TitleText())
	assert.Equal(t, page.DateDescending, p.SortMode())
	assert.True(t, p.IncludeInSiteMenu())
}

func TestNewSiteInvalidSortMode(t *testing.T) {
	cfg := testSiteOptions{settings: map[string]any{"pages": map[string]any{"defaultSortMode": "random"}}}
	_, err := NewSite(SiteCfg{DepsCfg: newTestSiteDepsCfg(cfg)})
	require.Error(t, err)
}

func TestSiteMenu(t *testing.T) {
	s := newTestSite(t)
	a := newChild(t, s.Root(), "A")
	b := newChild(t, a, "B")
	c := newChild(t, s.Root(), "C")
	a.SetIncludeInSiteMenu(true)
	b.SetIncludeInSiteMenu(true)
	c.SetIncludeInSiteMenu(true)
	c.SetMenuTitle("See")

	assert.Equal(t, []*Page{a, b, c}, s.SiteMenu())
	assert.Equal(t, "See", c.MenuTitleOrTitle())
	assert.Equal(t, "B", b.MenuTitleOrTitle())

	a.SetDraft(true)
	assert.Equal(t, []*Page{c}, s.SiteMenu())
	assert.True(t, b.PageOrParentDraft())
	assert.Nil(t, b.FirstParentOrSelfInSiteMenu())
	assert.Equal(t, c, c.FirstParentOrSelfInSiteMenu())
}

func TestStaleInPublishOrder(t *testing.T) {
	s := newTestSite(t)
	a := newChild(t, s.Root(), "A")
	newChild(t, a, "A1")
	b := newChild(t, s.Root(), "B")
	newChild(t, b, "B1")
	b.SetDraft(true)

	assert.Equal(t, []string{"Home", "A", "A1"}, titlesOf(s.StaleInPublishOrder()))
	assert.True(t, b.IsStale(), "drafts stay stale")
}
