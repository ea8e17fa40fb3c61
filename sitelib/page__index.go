package sitelib

import (
	"fmt"
	"strings"

	"github.com/wanli28/ConnectionKit/common/herrors"
	"github.com/wanli28/ConnectionKit/resources/page"
)

// SummaryType selects how an index summarizes its items.
type SummaryType int

const (
	// SummaryTruncated cuts body text at the site summary length.
	SummaryTruncated SummaryType = iota
	// SummaryFull shows the whole body text.
	SummaryFull
	// SummaryCustom shows only custom summaries set by the author.
	SummaryCustom
)

var summaryTypeNames = []string{"truncated", "full", "custom"}

func (t SummaryType) String() string {
	if t < 0 || int(t) >= len(summaryTypeNames) {
		return fmt.Sprintf("SummaryType(%d)", int(t))
	}
	return summaryTypeNames[t]
}

// ParseSummaryType parses the name of a summary type, ignoring case. The
// empty string is SummaryTruncated.
func ParseSummaryType(s string) (SummaryType, error) {
	if s == "" {
		return SummaryTruncated, nil
	}
	for i, name := range summaryTypeNames {
		if strings.EqualFold(s, name) {
			return SummaryType(i), nil
		}
	}
	return SummaryTruncated, fmt.Errorf("unknown summary type %q", s)
}

// IndexView describes the index of a collection page: which children it
// lists, in which order and how they are summarized.
type IndexView struct {
	p *Page

	summaryType     SummaryType
	maxItems        int
	generateArchive bool
	enableFeed      bool
	sortOverride    *page.SortMode

	// Changes whenever a setting above changes.
	settingsGen uint64

	cache genCache[indexCacheKey, []*Page]
}

type indexCacheKey struct {
	children uint64
	settings uint64
}

func newIndexView(p *Page) *IndexView {
	return &IndexView{
		p:        p,
		maxItems: p.s.Conf.Index.MaxItems,
	}
}

// Index returns the index settings of p. They only have an effect while p
// is a collection.
func (p *Page) Index() *IndexView {
	return p.index
}

func (v *IndexView) Page() *Page {
	return v.p
}

func (v *IndexView) SummaryType() SummaryType {
	return v.summaryType
}

// MaxItems is the cap on listed items. 0 means unbounded.
func (v *IndexView) MaxItems() int {
	return v.maxItems
}

func (v *IndexView) GenerateArchive() bool {
	return v.generateArchive
}

func (v *IndexView) EnableFeed() bool {
	return v.enableFeed
}

// SortMode returns the effective order of the index: the override if set,
// else the sort mode of the collection.
func (v *IndexView) SortMode() page.SortMode {
	if v.sortOverride != nil {
		return *v.sortOverride
	}
	return v.p.sortMode
}

// SortOverride returns the order set on the index itself, if any.
func (v *IndexView) SortOverride() (page.SortMode, bool) {
	if v.sortOverride == nil {
		return page.Manual, false
	}
	return *v.sortOverride, true
}

func (v *IndexView) SetSummaryType(t SummaryType) {
	v.change(func() { v.summaryType = t })
}

// SetMaxItems sets the cap on listed items. Negative values are treated as 0.
func (v *IndexView) SetMaxItems(n int) {
	v.change(func() { v.maxItems = max(n, 0) })
}

func (v *IndexView) SetGenerateArchive(b bool) {
	v.change(func() { v.generateArchive = b })
}

func (v *IndexView) SetEnableFeed(b bool) {
	v.change(func() { v.enableFeed = b })
}

// SetSortOverride orders the index by mode instead of the collection's
// sort mode.
func (v *IndexView) SetSortOverride(mode page.SortMode) {
	v.change(func() { v.sortOverride = &mode })
}

// ClearSortOverride orders the index by the collection's sort mode again.
func (v *IndexView) ClearSortOverride() {
	v.change(func() { v.sortOverride = nil })
}

func (v *IndexView) change(fn func()) {
	v.p.update(ReasonSelf, func() {
		fn()
		v.settingsChanged()
	})
}

func (v *IndexView) settingsChanged() {
	v.settingsGen = v.p.s.nextGen()
}

// SortedChildrenInIndex returns the children listed in the index: those
// included in indexes and not drafts, in index order, capped at MaxItems.
// Pages that are not collections have an empty index.
func (v *IndexView) SortedChildrenInIndex() []*Page {
	return append([]*Page(nil), v.sortedChildrenInIndex()...)
}

// SortedChildrenInIndex is a shortcut for p.Index().SortedChildrenInIndex().
func (p *Page) SortedChildrenInIndex() []*Page {
	return p.index.SortedChildrenInIndex()
}

func (v *IndexView) sortedChildrenInIndex() []*Page {
	if !v.p.isCollection {
		return nil
	}
	key := indexCacheKey{children: v.p.childrenGen, settings: v.settingsGen}
	if items, found := v.cache.get(key); found {
		return items
	}

	items := page.SortBy(v.p.s.sortPolicy, v.candidates(), v.SortMode())
	if v.maxItems > 0 && len(items) > v.maxItems {
		items = items[:v.maxItems]
	}

	if key != (indexCacheKey{children: v.p.childrenGen, settings: v.settingsGen}) {
		herrors.Bug(herrors.ErrStaleCacheRead, "index of %q changed while it was built", v.p.id)
	}
	v.cache.set(key, items)

	return items
}

func (v *IndexView) candidates() []*Page {
	var items []*Page
	for _, c := range v.p.Children() {
		if c.includeInIndexes && !c.draft {
			items = append(items, c)
		}
	}
	return items
}

// contains reports whether the index lists the page with the given id.
func (v *IndexView) contains(id PageID) bool {
	for _, item := range v.sortedChildrenInIndex() {
		if item.id == id {
			return true
		}
	}
	return false
}

func (v *IndexView) members() map[PageID]bool {
	items := v.sortedChildrenInIndex()
	m := make(map[PageID]bool, len(items))
	for _, item := range items {
		m[item.id] = true
	}
	return m
}

// FeedEligible reports whether the collection produces a feed: it wants
// archives or a feed, and it is syndicated.
func (v *IndexView) FeedEligible() bool {
	return v.p.isCollection && v.p.syndicate && (v.generateArchive || v.enableFeed)
}

// ArchiveGroups groups the pages the index can list by month, newest
// first. MaxItems does not apply. It is empty unless the collection
// generates archives.
func (v *IndexView) ArchiveGroups() page.PagesGroup[*Page] {
	if !v.p.isCollection || !v.generateArchive {
		return nil
	}
	items := page.SortBy(v.p.s.sortPolicy, v.candidates(), page.DateDescending)
	return page.GroupByDate(items, "2006-01")
}

// Summaries returns the summary of every index item, in order.
func (v *IndexView) Summaries() []Summary {
	items := v.sortedChildrenInIndex()
	summaries := make([]Summary, len(items))
	for i, item := range items {
		summaries[i] = v.ItemSummary(item)
	}
	return summaries
}

// ItemSummary returns the summary of p as this index shows it.
func (v *IndexView) ItemSummary(p *Page) Summary {
	switch v.summaryType {
	case SummaryFull:
		return p.Summary(0)
	case SummaryCustom:
		if p.customSummaryHTML == "" {
			return newSummary(p, "", SummaryVariantNone, 0)
		}
	}
	return p.Summary(v.p.s.Conf.Index.SummaryLength)
}

// TitleList returns the plain text titles of the children in mode order.
func (v *IndexView) TitleList(mode page.SortMode) []string {
	children := v.p.ChildrenWithSorting(mode)
	titles := make([]string, len(children))
	for i, c := range children {
		titles[i] = c.titleText
	}
	return titles
}
