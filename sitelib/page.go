package sitelib

import (
	"time"

	"github.com/wanli28/ConnectionKit/common/collections"
	"github.com/wanli28/ConnectionKit/common/herrors"
	"github.com/wanli28/ConnectionKit/helpers"
	"github.com/wanli28/ConnectionKit/resources/page"
)

var _ page.Sortable = (*Page)(nil)

// Page is a node in the site tree. The root page is the home page; every
// other page has exactly one parent.
type Page struct {
	s *Site

	id     PageID
	parent PageID

	// Only set on the root page.
	rootAttrs *rootAttributes

	titleHTML         string
	titleText         string
	menuTitle         string
	slug              string
	isCollection      bool
	sortMode          page.SortMode
	includeInIndexes  bool
	includeInSiteMenu bool
	includeInSiteMap  bool
	sidebarChangeable bool
	draft             bool
	syndicate         bool
	includeSidebar    bool
	includeCallout    bool
	disableComments   bool
	keywords          []string
	customSummaryHTML string

	created   time.Time
	modified  time.Time
	timestamp time.Time

	children *collections.OrderedSet[PageID]
	pagelets *collections.OrderedSet[PageletID]
	index    *IndexView

	removed bool

	// Changes whenever an input of sortedChildren changes: the children
	// set, the sort mode or a sort relevant attribute of a child.
	childrenGen uint64

	sortedChildren genCache[uint64, []*Page]
	allSidebars    genCache[uint64, []*Pagelet]
}

// rootAttributes are the site wide settings stored on the root page.
type rootAttributes struct {
	subtitleHTML string
	footerHTML   string
}

func (p *Page) init() {
	p.children = collections.NewOrderedSet[PageID]()
	p.pagelets = collections.NewOrderedSet[PageletID]()
	p.index = newIndexView(p)
	p.childrenGen = p.s.nextGen()
}

// ID returns the stable identifier of p.
func (p *Page) ID() PageID {
	return p.id
}

// Site returns the site p belongs to.
func (p *Page) Site() *Site {
	return p.s
}

// IsRoot reports whether p is the home page.
func (p *Page) IsRoot() bool {
	return p.rootAttrs != nil
}

// TitleHTML returns the title as an HTML fragment.
func (p *Page) TitleHTML() string {
	return p.titleHTML
}

// TitleText returns the title as plain text.
func (p *Page) TitleText() string {
	return p.titleText
}

// MenuTitle returns the title used in the site menu, if set.
func (p *Page) MenuTitle() string {
	return p.menuTitle
}

// MenuTitleOrTitle returns the menu title, falling back to the title.
func (p *Page) MenuTitleOrTitle() string {
	if p.menuTitle != "" {
		return p.menuTitle
	}
	return p.titleText
}

func (p *Page) Slug() string {
	return p.slug
}

// IsCollection reports whether p can have children shown in an index.
func (p *Page) IsCollection() bool {
	return p.isCollection
}

func (p *Page) SortMode() page.SortMode {
	return p.sortMode
}

func (p *Page) IncludeInIndexes() bool {
	return p.includeInIndexes
}

func (p *Page) IncludeInSiteMenu() bool {
	return p.includeInSiteMenu
}

func (p *Page) IncludeInSiteMap() bool {
	return p.includeInSiteMap
}

// SidebarChangeable reports whether p may inherit sidebar pagelets from its
// ancestors and pass them on to its descendants.
func (p *Page) SidebarChangeable() bool {
	return p.sidebarChangeable
}

// IncludeSidebar reports whether p shows its sidebars.
func (p *Page) IncludeSidebar() bool {
	return p.includeSidebar
}

// IncludeCallout reports whether p shows its callouts.
func (p *Page) IncludeCallout() bool {
	return p.includeCallout
}

func (p *Page) DisableComments() bool {
	return p.disableComments
}

func (p *Page) Draft() bool {
	return p.draft
}

// PageOrParentDraft reports whether p or one of its ancestors is a draft.
func (p *Page) PageOrParentDraft() bool {
	for a := p; a != nil; a = a.parentPage() {
		if a.draft {
			return true
		}
	}
	return false
}

// Syndicate reports whether p wants a feed of its index.
func (p *Page) Syndicate() bool {
	return p.syndicate
}

func (p *Page) Keywords() []string {
	return append([]string(nil), p.keywords...)
}

// CustomSummaryHTML returns the summary set by the author, if any.
func (p *Page) CustomSummaryHTML() string {
	return p.customSummaryHTML
}

func (p *Page) Created() time.Time {
	return p.created
}

// Modified returns the time of the last mutation of p.
func (p *Page) Modified() time.Time {
	return p.modified
}

// Timestamp returns the effective timestamp. It starts out as the creation
// time and can be edited.
func (p *Page) Timestamp() time.Time {
	return p.timestamp
}

// SubtitleHTML returns the site subtitle. It is only set on the root.
func (p *Page) SubtitleHTML() string {
	if p.rootAttrs == nil {
		return ""
	}
	return p.rootAttrs.subtitleHTML
}

// FooterHTML returns the site footer. It is only set on the root.
func (p *Page) FooterHTML() string {
	if p.rootAttrs == nil {
		return ""
	}
	return p.rootAttrs.footerHTML
}

// InSiteMenu reports whether p is listed in the site menu.
func (p *Page) InSiteMenu() bool {
	return p.includeInSiteMenu && !p.PageOrParentDraft()
}

// Ordinal is the position of p in its parent's manual order.
func (p *Page) Ordinal() int {
	parent := p.parentPage()
	if parent == nil {
		return 0
	}
	i, found := parent.children.IndexOf(p.id)
	if !found {
		herrors.Bug(herrors.ErrNotFound, "page %q missing from the children of its parent", p.id)
	}
	return i
}

func (p *Page) SortTitle() string {
	return p.titleText
}

func (p *Page) SortDate() time.Time {
	return p.timestamp
}

// Path returns the site relative path of p, e.g. "/blog/first-post". The
// root is "/". Pages outside the tree have no path.
func (p *Page) Path() string {
	if !p.inTree() {
		return ""
	}
	return p.s.contentMap.pathOf(p)
}

func (p *Page) String() string {
	return "page " + string(p.id) + " " + p.titleText
}

func (p *Page) inTree() bool {
	return !p.removed && p.s.pages[p.id] == p
}

func (p *Page) parentPage() *Page {
	if p.parent == "" {
		return nil
	}
	return p.s.pages[p.parent]
}

func (p *Page) touch() {
	p.modified = p.s.Clock.Now()
}

// sortInputChanged invalidates the orders that p takes part in.
func (p *Page) sortInputChanged() {
	if parent := p.parentPage(); parent != nil {
		parent.childrenGen = p.s.nextGen()
	}
}

// update applies fn to p as one mutation and marks what it affects stale.
func (p *Page) update(reason StaleReason, fn func()) {
	p.updateWith(reason, nil, fn)
}

// updateOrder is update for changes that may move p among its siblings.
func (p *Page) updateOrder(reason StaleReason, fn func()) {
	p.updateWith(reason, func(e *edit) {
		e.captureOrder(p.parentPage())
		e.captureMenu(p)
	}, fn)
}

func (p *Page) updateWith(reason StaleReason, capture func(e *edit), fn func()) {
	var e *edit
	if p.inTree() {
		e = p.s.beginEdit(reason, p)
		if capture != nil {
			capture(e)
		}
	}
	fn()
	p.touch()
	if e != nil {
		e.commit()
	}
}

// menuReason is the reason for a change of the name p shows in the site
// menu, which every page renders.
func (p *Page) menuReason() StaleReason {
	if p.InSiteMenu() {
		return ReasonSiteWide
	}
	return ReasonContent
}

// SetTitleText sets the title from plain text.
func (p *Page) SetTitleText(title string) {
	p.setTitle(helpers.TextToHTML(title), title)
}

// SetTitleHTML sets the title from an HTML fragment.
func (p *Page) SetTitleHTML(title string) {
	p.setTitle(title, helpers.StripHTML(title))
}

func (p *Page) setTitle(titleHTML, titleText string) {
	if titleHTML == p.titleHTML && titleText == p.titleText {
		return
	}
	reason := ReasonContent
	switch {
	case p.IsRoot():
		reason = ReasonSiteWide
	case p.menuTitle == "":
		reason = p.menuReason()
	}
	p.updateOrder(reason, func() {
		p.titleHTML = titleHTML
		p.titleText = titleText
		p.sortInputChanged()
	})
}

func (p *Page) SetMenuTitle(title string) {
	if title == p.menuTitle {
		return
	}
	p.update(p.menuReason(), func() {
		p.menuTitle = title
	})
}

// SetSlug sets the path segment of p. It is sanitized the way new page
// slugs are.
func (p *Page) SetSlug(slug string) {
	slug = helpers.MakePathSanitized(slug)
	if slug == p.slug {
		return
	}
	p.updateOrder(ReasonContent, func() {
		p.slug = slug
		if p.inTree() {
			p.s.structureChanged()
		}
	})
}

func (p *Page) SetIsCollection(b bool) {
	if b == p.isCollection {
		return
	}
	p.update(ReasonSelf, func() {
		p.isCollection = b
		p.index.settingsChanged()
	})
}

func (p *Page) SetSortMode(mode page.SortMode) {
	if mode == p.sortMode {
		return
	}
	p.updateWith(ReasonSelf, func(e *edit) {
		e.captureOrder(p)
		e.captureMenu(p)
	}, func() {
		p.sortMode = mode
		p.childrenGen = p.s.nextGen()
	})
}

func (p *Page) SetIncludeInIndexes(b bool) {
	if b == p.includeInIndexes {
		return
	}
	p.update(ReasonContent, func() {
		p.includeInIndexes = b
		p.sortInputChanged()
	})
}

func (p *Page) SetIncludeInSiteMenu(b bool) {
	if b == p.includeInSiteMenu {
		return
	}
	p.update(ReasonSiteWide, func() {
		p.includeInSiteMenu = b
	})
}

func (p *Page) SetIncludeInSiteMap(b bool) {
	if b == p.includeInSiteMap {
		return
	}
	p.update(ReasonSelf, func() {
		p.includeInSiteMap = b
	})
}

// SetSidebarChangeable sets whether p takes part in sidebar inheritance.
func (p *Page) SetSidebarChangeable(b bool) {
	if b == p.sidebarChangeable {
		return
	}
	p.update(ReasonSidebar, func() {
		p.sidebarChangeable = b
		p.s.sidebarsChanged()
	})
}

func (p *Page) SetDraft(b bool) {
	if b == p.draft {
		return
	}
	reason := ReasonContent
	if p.includeInSiteMenu {
		reason = ReasonSiteWide
	}
	p.updateOrder(reason, func() {
		p.draft = b
		p.sortInputChanged()
	})
}

func (p *Page) SetIncludeSidebar(b bool) {
	if b == p.includeSidebar {
		return
	}
	p.update(ReasonSelf, func() {
		p.includeSidebar = b
	})
}

func (p *Page) SetIncludeCallout(b bool) {
	if b == p.includeCallout {
		return
	}
	p.update(ReasonSelf, func() {
		p.includeCallout = b
	})
}

func (p *Page) SetDisableComments(b bool) {
	if b == p.disableComments {
		return
	}
	p.update(ReasonSelf, func() {
		p.disableComments = b
	})
}

func (p *Page) SetSyndicate(b bool) {
	if b == p.syndicate {
		return
	}
	p.update(ReasonSelf, func() {
		p.syndicate = b
	})
}

func (p *Page) SetKeywords(keywords []string) {
	p.update(ReasonSelf, func() {
		p.keywords = helpers.UniqueStrings(keywords)
	})
}

// SetCustomSummaryHTML sets the summary shown for p in indexes. An empty
// summary falls back to the body text.
func (p *Page) SetCustomSummaryHTML(summary string) {
	if summary == p.customSummaryHTML {
		return
	}
	p.update(ReasonContent, func() {
		p.customSummaryHTML = summary
	})
}

// SetTimestamp sets the effective timestamp.
func (p *Page) SetTimestamp(t time.Time) {
	if t.Equal(p.timestamp) {
		return
	}
	p.updateOrder(ReasonContent, func() {
		p.timestamp = t
		p.sortInputChanged()
	})
}

// SetSubtitleHTML sets the site subtitle on the root page.
func (p *Page) SetSubtitleHTML(subtitle string) {
	if p.rootAttrs == nil || subtitle == p.rootAttrs.subtitleHTML {
		return
	}
	p.update(ReasonSiteWide, func() {
		p.rootAttrs.subtitleHTML = subtitle
	})
}

// SetFooterHTML sets the site footer on the root page.
func (p *Page) SetFooterHTML(footer string) {
	if p.rootAttrs == nil || footer == p.rootAttrs.footerHTML {
		return
	}
	p.update(ReasonSiteWide, func() {
		p.rootAttrs.footerHTML = footer
	})
}
