package sitelib

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/wanli28/ConnectionKit/deps"
	"github.com/wanli28/ConnectionKit/helpers"
	"github.com/wanli28/ConnectionKit/resources/page"
)

// PageID identifies a page. It never changes once assigned.
type PageID string

// ContentProvider gives the core access to page body text, which it never
// stores itself.
type ContentProvider interface {
	// BodyText returns the plain text body of p.
	BodyText(p *Page) string
}

type nopContentProvider struct{}

func (nopContentProvider) BodyText(*Page) string { return "" }

// SiteCfg configures a Site.
type SiteCfg struct {
	deps.DepsCfg

	// The tracker to record stale pages in. A new one is created if nil.
	Tracker *StalenessTracker

	// Where page body text comes from. Bodies are empty if nil.
	Content ContentProvider

	// Called for every page removed from the tree, after it was detached.
	OnPageRemoved func(p *Page)

	// The title of a new site's root page.
	RootTitle string
}

// Site is the content tree of one site together with its pagelets and its
// staleness state. It has a single writer: mutating methods on the Site, its
// pages and pagelets must not be called concurrently.
type Site struct {
	*deps.Deps

	sortPolicy    page.SortPolicy
	tracker       *StalenessTracker
	content       ContentProvider
	onPageRemoved func(p *Page)
	titleFunc     func(string) string

	root     *Page
	pages    map[PageID]*Page
	pagelets map[PageletID]*Pagelet

	// Source of unique generation values.
	gen uint64

	// Changes whenever a sidebar or the tree shape changes.
	sidebarGen uint64

	// Changes whenever the tree shape or a slug changes.
	structureGen uint64

	contentMap *contentMap
}

// NewSite creates a site holding only a root page.
func NewSite(cfg SiteCfg) (*Site, error) {
	s, err := newSite(cfg)
	if err != nil {
		return nil, err
	}

	title := cfg.RootTitle
	if title == "" {
		title = "Home"
	}
	root := s.NewPage(title)
	root.rootAttrs = &rootAttributes{}
	root.isCollection = true
	s.setRoot(root)
	s.tracker.MarkStale(root.id)

	return s, nil
}

func newSite(cfg SiteCfg) (*Site, error) {
	d, err := deps.New(cfg.DepsCfg)
	if err != nil {
		return nil, fmt.Errorf("create site: %w", err)
	}
	if _, err := page.ParseSortMode(d.Conf.Pages.DefaultSortMode); err != nil {
		return nil, fmt.Errorf("create site: pages.defaultSortMode: %w", err)
	}

	s := &Site{
		Deps:          d,
		sortPolicy:    page.NewSortPolicy(d.Language.Collator()),
		tracker:       cfg.Tracker,
		content:       cfg.Content,
		onPageRemoved: cfg.OnPageRemoved,
		pages:         make(map[PageID]*Page),
		pagelets:      make(map[PageletID]*Pagelet),
		contentMap:    newContentMap(),
	}
	if s.tracker == nil {
		s.tracker = NewStalenessTracker()
	}
	if s.content == nil {
		s.content = nopContentProvider{}
	}
	if d.Conf.TitleCase {
		s.titleFunc = helpers.GetTitleFunc(d.Conf.TitleCaseStyle)
	}

	return s, nil
}

func (s *Site) setRoot(root *Page) {
	s.root = root
	s.register(root)
	s.structureChanged()
}

func (s *Site) register(p *Page) {
	s.pages[p.id] = p
}

func (s *Site) nextGen() uint64 {
	s.gen++
	return s.gen
}

func (s *Site) structureChanged() {
	s.structureGen = s.nextGen()
	s.sidebarGen = s.structureGen
}

func (s *Site) sidebarsChanged() {
	s.sidebarGen = s.nextGen()
}

// Root returns the root page.
func (s *Site) Root() *Page {
	return s.root
}

// Tracker returns the staleness tracker of s.
func (s *Site) Tracker() *StalenessTracker {
	return s.tracker
}

// SortPolicy returns the policy ordering the pages of s.
func (s *Site) SortPolicy() page.SortPolicy {
	return s.sortPolicy
}

// Len returns the number of pages in the tree.
func (s *Site) Len() int {
	return len(s.pages)
}

// PageByID returns the page with the given id if it is in the tree.
func (s *Site) PageByID(id PageID) (*Page, bool) {
	p, found := s.pages[id]
	return p, found
}

// PageletByID returns the attached pagelet with the given id.
func (s *Site) PageletByID(id PageletID) (*Pagelet, bool) {
	pl, found := s.pagelets[id]
	return pl, found
}

// NewPage creates a page that is not yet part of the tree. Add it to a
// parent with AddChild.
func (s *Site) NewPage(title string) *Page {
	if s.titleFunc != nil {
		title = s.titleFunc(title)
	}
	now := s.Clock.Now()
	mode, _ := page.ParseSortMode(s.Conf.Pages.DefaultSortMode)
	p := &Page{
		s:                 s,
		id:                PageID(uuid.NewString()),
		titleText:         title,
		titleHTML:         helpers.TextToHTML(title),
		slug:              helpers.MakePathSanitized(title),
		sortMode:          mode,
		includeInIndexes:  s.Conf.Pages.IncludeInIndexes,
		includeInSiteMenu: s.Conf.Pages.IncludeInSiteMenu,
		includeInSiteMap:  true,
		sidebarChangeable: s.Conf.Pages.SidebarChangeable,
		includeSidebar:    true,
		includeCallout:    true,
		created:           now,
		modified:          now,
		timestamp:         now,
	}
	p.init()
	return p
}

// Walk visits the pages in pre-order, children in sorted order. It stops
// when fn returns false.
func (s *Site) Walk(fn func(p *Page) bool) {
	s.root.walk(fn)
}

// AllPages returns the pages in pre-order.
func (s *Site) AllPages() []*Page {
	pages := make([]*Page, 0, len(s.pages))
	s.Walk(func(p *Page) bool {
		pages = append(pages, p)
		return true
	})
	return pages
}

// SiteMenu returns the pages shown in the site menu, in reading order.
func (s *Site) SiteMenu() []*Page {
	var menu []*Page
	s.Walk(func(p *Page) bool {
		if p.InSiteMenu() {
			menu = append(menu, p)
		}
		return true
	})
	return menu
}

// FeedCollections returns the collections that produce a feed, in reading
// order.
func (s *Site) FeedCollections() []*Page {
	var feeds []*Page
	s.Walk(func(p *Page) bool {
		if p.Index().FeedEligible() && !p.PageOrParentDraft() {
			feeds = append(feeds, p)
		}
		return true
	})
	return feeds
}

// IsStale reports whether the page with the given id must be regenerated.
func (s *Site) IsStale(id PageID) bool {
	return s.tracker.IsStale(id)
}

// Clear records that the page with the given id was regenerated.
func (s *Site) Clear(id PageID) {
	s.tracker.Clear(id)
}

// StaleInPublishOrder returns the stale pages that can be published, in
// reading order. Drafts stay stale until they are published.
func (s *Site) StaleInPublishOrder() []*Page {
	var stale []*Page
	s.Walk(func(p *Page) bool {
		if p.PageOrParentDraft() {
			return true
		}
		if s.tracker.IsStale(p.id) {
			stale = append(stale, p)
		}
		return true
	})
	return stale
}

// MarkStaleRecursive marks p and everything depending on it for the given
// reason, as when its body text changed outside the tree.
func (s *Site) MarkStaleRecursive(p *Page, reason StaleReason) {
	if !p.inTree() {
		return
	}
	e := s.beginEdit(reason, p)
	e.commit()
}

// MarkAllStale marks every page, e.g. after the design changed.
func (s *Site) MarkAllStale() {
	for id := range s.pages {
		s.tracker.MarkStale(id)
	}
}
