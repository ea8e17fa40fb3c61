package sitelib

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/wanli28/ConnectionKit/common/herrors"
	"github.com/wanli28/ConnectionKit/helpers"
	"github.com/wanli28/ConnectionKit/resources/page"
)

// SiteRecords is the flat form of a site, as stored by persistence.
type SiteRecords struct {
	Pages    []PageRecord    `toml:"pages" yaml:"pages"`
	Pagelets []PageletRecord `toml:"pagelets" yaml:"pagelets"`
}

// PageRecord is the flat form of a page.
type PageRecord struct {
	ID       string   `toml:"id" yaml:"id"`
	ParentID string   `toml:"parentID,omitempty" yaml:"parentID,omitempty"`
	ChildIDs []string `toml:"childIDs,omitempty" yaml:"childIDs,omitempty"`

	TitleHTML         string    `toml:"titleHTML" yaml:"titleHTML"`
	MenuTitle         string    `toml:"menuTitle,omitempty" yaml:"menuTitle,omitempty"`
	Slug              string    `toml:"slug,omitempty" yaml:"slug,omitempty"`
	IsCollection      bool      `toml:"isCollection" yaml:"isCollection"`
	SortMode          string    `toml:"sortMode,omitempty" yaml:"sortMode,omitempty"`
	IncludeInIndexes  bool      `toml:"includeInIndexes" yaml:"includeInIndexes"`
	IncludeInSiteMenu bool      `toml:"includeInSiteMenu" yaml:"includeInSiteMenu"`
	IncludeInSiteMap  bool      `toml:"includeInSiteMap" yaml:"includeInSiteMap"`
	SidebarChangeable bool      `toml:"sidebarChangeable" yaml:"sidebarChangeable"`
	Draft             bool      `toml:"draft" yaml:"draft"`
	Syndicate         bool      `toml:"syndicate" yaml:"syndicate"`
	DisableComments   bool      `toml:"disableComments" yaml:"disableComments"`
	Keywords          []string  `toml:"keywords,omitempty" yaml:"keywords,omitempty"`
	CustomSummaryHTML string    `toml:"customSummaryHTML,omitempty" yaml:"customSummaryHTML,omitempty"`
	Created           time.Time `toml:"created" yaml:"created"`
	Modified          time.Time `toml:"modified" yaml:"modified"`
	Timestamp         time.Time `toml:"timestamp" yaml:"timestamp"`

	// Both default to true when missing.
	IncludeSidebar *bool `toml:"includeSidebar,omitempty" yaml:"includeSidebar,omitempty"`
	IncludeCallout *bool `toml:"includeCallout,omitempty" yaml:"includeCallout,omitempty"`

	// Only stored for the root.
	SubtitleHTML string `toml:"subtitleHTML,omitempty" yaml:"subtitleHTML,omitempty"`
	FooterHTML   string `toml:"footerHTML,omitempty" yaml:"footerHTML,omitempty"`

	Index *IndexRecord `toml:"index,omitempty" yaml:"index,omitempty"`

	Stale bool `toml:"stale" yaml:"stale"`
}

// IndexRecord is the flat form of the index settings of a collection.
type IndexRecord struct {
	SummaryType     string `toml:"summaryType,omitempty" yaml:"summaryType,omitempty"`
	MaxItems        int    `toml:"maxItems" yaml:"maxItems"`
	GenerateArchive bool   `toml:"generateArchive" yaml:"generateArchive"`
	EnableFeed      bool   `toml:"enableFeed" yaml:"enableFeed"`
	SortOverride    string `toml:"sortOverride,omitempty" yaml:"sortOverride,omitempty"`
}

// PageletRecord is the flat form of a pagelet.
type PageletRecord struct {
	ID         string `toml:"id" yaml:"id"`
	PageID     string `toml:"pageID" yaml:"pageID"`
	Location   string `toml:"location" yaml:"location"`
	SortKey    int64  `toml:"sortKey" yaml:"sortKey"`
	Title      string `toml:"title,omitempty" yaml:"title,omitempty"`
	BodyRef    string `toml:"bodyRef,omitempty" yaml:"bodyRef,omitempty"`
	ShowBorder string `toml:"showBorder,omitempty" yaml:"showBorder,omitempty"`
}

// LoadReport lists the problems found and repaired while loading.
type LoadReport struct {
	Warnings []error
}

func (r *LoadReport) warnf(s *Site, target error, format string, args ...any) {
	err := fmt.Errorf(format+": %w", append(args, target)...)
	r.Warnings = append(r.Warnings, err)
	s.Log.Warnf("load: %s", err)
}

var errInvalidRecord = errors.New("invalid record")

// Load rebuilds a site from its records. Cycles in the parent references
// are rejected. Other anomalies are repaired and reported: pages with a
// missing parent are moved to the root, children missing from their
// parent's child list are appended to it, pagelets with duplicate keys are
// renumbered and invalid enum values fall back to their defaults.
func Load(records SiteRecords, cfg SiteCfg) (*Site, LoadReport, error) {
	var report LoadReport

	s, err := newSite(cfg)
	if err != nil {
		return nil, report, err
	}

	byID := make(map[string]*PageRecord, len(records.Pages))
	var order []*PageRecord
	for i := range records.Pages {
		r := &records.Pages[i]
		if r.ID == "" {
			report.warnf(s, errInvalidRecord, "page record %d has no id", i)
			continue
		}
		if _, found := byID[r.ID]; found {
			report.warnf(s, herrors.ErrDuplicateItem, "page %q", r.ID)
			continue
		}
		byID[r.ID] = r
		order = append(order, r)
	}

	var rootRecord *PageRecord
	for _, r := range order {
		if r.ParentID == "" {
			rootRecord = r
			break
		}
	}
	if rootRecord == nil {
		return nil, report, fmt.Errorf("load site: no root page: %w", herrors.ErrNotFound)
	}

	// Resolve parents, repairing dangling references.
	parents := make(map[string]string, len(order))
	for _, r := range order {
		switch {
		case r == rootRecord:
		case r.ParentID == "":
			report.warnf(s, errInvalidRecord, "page %q is a second root, moved below the root", r.ID)
			parents[r.ID] = rootRecord.ID
		case r.ParentID == r.ID || byID[r.ParentID] == nil:
			report.warnf(s, herrors.ErrNotFound, "parent %q of page %q, moved below the root", r.ParentID, r.ID)
			parents[r.ID] = rootRecord.ID
		default:
			parents[r.ID] = r.ParentID
		}
	}

	// Every page must reach the root.
	for _, r := range order {
		steps := 0
		for id := r.ID; id != rootRecord.ID; id = parents[id] {
			if steps > len(order) {
				return nil, report, fmt.Errorf("load site: page %q: %w", r.ID, herrors.ErrCycleDetected)
			}
			steps++
		}
	}

	for _, r := range order {
		p := s.pageFromRecord(r, &report)
		if r == rootRecord {
			p.rootAttrs = &rootAttributes{subtitleHTML: r.SubtitleHTML, footerHTML: r.FooterHTML}
		}
		s.register(p)
	}
	s.root = s.pages[PageID(rootRecord.ID)]

	// Children in the stored order, then the ones the parent did not list.
	children := make(map[string][]string, len(order))
	for _, r := range order {
		listed := make(map[string]bool, len(r.ChildIDs))
		for _, id := range r.ChildIDs {
			if listed[id] {
				report.warnf(s, herrors.ErrDuplicateItem, "child %q of page %q", id, r.ID)
				continue
			}
			if parents[id] != r.ID {
				report.warnf(s, herrors.ErrNotFound, "child %q listed by page %q", id, r.ID)
				continue
			}
			listed[id] = true
			children[r.ID] = append(children[r.ID], id)
		}
		for _, c := range order {
			if parents[c.ID] == r.ID && !listed[c.ID] {
				report.warnf(s, herrors.ErrInvalidSortKey, "page %q missing from the children of %q, appended", c.ID, r.ID)
				children[r.ID] = append(children[r.ID], c.ID)
			}
		}
	}
	for _, r := range order {
		p := s.pages[PageID(r.ID)]
		for _, id := range children[r.ID] {
			if err := p.children.Append(PageID(id)); err != nil {
				herrors.Bug(err, "load children of %q", r.ID)
			}
		}
		if parent := parents[r.ID]; parent != "" {
			p.parent = PageID(parent)
		}
	}

	s.loadPagelets(records.Pagelets, &report)

	for _, r := range order {
		if r.Stale {
			s.tracker.MarkStale(PageID(r.ID))
		}
	}
	s.structureChanged()

	return s, report, nil
}

func (s *Site) pageFromRecord(r *PageRecord, report *LoadReport) *Page {
	p := &Page{
		s:                 s,
		id:                PageID(r.ID),
		titleHTML:         r.TitleHTML,
		menuTitle:         r.MenuTitle,
		slug:              r.Slug,
		isCollection:      r.IsCollection,
		includeInIndexes:  r.IncludeInIndexes,
		includeInSiteMenu: r.IncludeInSiteMenu,
		includeInSiteMap:  r.IncludeInSiteMap,
		sidebarChangeable: r.SidebarChangeable,
		draft:             r.Draft,
		syndicate:         r.Syndicate,
		includeSidebar:    boolOr(r.IncludeSidebar, true),
		includeCallout:    boolOr(r.IncludeCallout, true),
		disableComments:   r.DisableComments,
		keywords:          helpers.UniqueStrings(r.Keywords),
		customSummaryHTML: r.CustomSummaryHTML,
		created:           r.Created,
		modified:          r.Modified,
		timestamp:         r.Timestamp,
	}
	p.titleText = helpers.StripHTML(r.TitleHTML)
	if p.timestamp.IsZero() {
		p.timestamp = p.created
	}

	mode, err := page.ParseSortMode(r.SortMode)
	if err != nil {
		report.warnf(s, errInvalidRecord, "sort mode of page %q: %s", r.ID, err)
	}
	p.sortMode = mode

	p.init()

	if ir := r.Index; ir != nil {
		v := p.index
		if v.summaryType, err = ParseSummaryType(ir.SummaryType); err != nil {
			report.warnf(s, errInvalidRecord, "summary type of page %q: %s", r.ID, err)
		}
		v.maxItems = max(ir.MaxItems, 0)
		v.generateArchive = ir.GenerateArchive
		v.enableFeed = ir.EnableFeed
		if ir.SortOverride != "" {
			mode, err := page.ParseSortMode(ir.SortOverride)
			if err != nil {
				report.warnf(s, errInvalidRecord, "index sort mode of page %q: %s", r.ID, err)
			} else {
				v.sortOverride = &mode
			}
		}
	}

	return p
}

func (s *Site) loadPagelets(records []PageletRecord, report *LoadReport) {
	type groupKey struct {
		page PageID
		loc  PageletLocation
	}
	groups := make(map[groupKey][]*Pagelet)
	var keys []groupKey

	for i, r := range records {
		if r.ID == "" {
			report.warnf(s, errInvalidRecord, "pagelet record %d has no id", i)
			continue
		}
		if _, found := s.pagelets[PageletID(r.ID)]; found {
			report.warnf(s, herrors.ErrDuplicateItem, "pagelet %q", r.ID)
			continue
		}
		p, found := s.pages[PageID(r.PageID)]
		if !found {
			report.warnf(s, herrors.ErrNotFound, "page %q of pagelet %q, dropped", r.PageID, r.ID)
			continue
		}
		loc, err := ParsePageletLocation(r.Location)
		if err != nil {
			report.warnf(s, errInvalidRecord, "pagelet %q: %s", r.ID, err)
		}
		border, err := ParseBorderMode(r.ShowBorder)
		if err != nil {
			report.warnf(s, errInvalidRecord, "pagelet %q: %s", r.ID, err)
		}

		pl := &Pagelet{
			s:          s,
			id:         PageletID(r.ID),
			page:       p.id,
			location:   loc,
			sortKey:    r.SortKey,
			title:      r.Title,
			bodyRef:    r.BodyRef,
			showBorder: border,
		}
		s.pagelets[pl.id] = pl
		if err := p.pagelets.Append(pl.id); err != nil {
			herrors.Bug(err, "load pagelet %q", pl.id)
		}

		k := groupKey{page: p.id, loc: loc}
		if _, found := groups[k]; !found {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], pl)
	}

	for _, k := range keys {
		group := groups[k]
		sort.SliceStable(group, func(i, j int) bool { return group[i].sortKey < group[j].sortKey })
		for i := 1; i < len(group); i++ {
			if group[i].sortKey == group[i-1].sortKey {
				report.warnf(s, herrors.ErrInvalidSortKey, "duplicate pagelet sort key %d on page %q at %s, renumbered", group[i].sortKey, k.page, k.loc)
				renumberPagelets(group)
				break
			}
		}
	}
}

// Records returns the flat form of s: pages in reading order, each with
// its children in manual order, and pagelets per page and location in key
// order.
func (s *Site) Records() SiteRecords {
	var records SiteRecords
	s.Walk(func(p *Page) bool {
		records.Pages = append(records.Pages, p.record())
		for _, loc := range []PageletLocation{TopSidebar, BottomSidebar, Callout} {
			for _, pl := range p.Pagelets(loc) {
				records.Pagelets = append(records.Pagelets, pl.record())
			}
		}
		return true
	})
	return records
}

func (p *Page) record() PageRecord {
	r := PageRecord{
		ID:                string(p.id),
		ParentID:          string(p.parent),
		TitleHTML:         p.titleHTML,
		MenuTitle:         p.menuTitle,
		Slug:              p.slug,
		IsCollection:      p.isCollection,
		SortMode:          p.sortMode.String(),
		IncludeInIndexes:  p.includeInIndexes,
		IncludeInSiteMenu: p.includeInSiteMenu,
		IncludeInSiteMap:  p.includeInSiteMap,
		SidebarChangeable: p.sidebarChangeable,
		Draft:             p.draft,
		Syndicate:         p.syndicate,
		DisableComments:   p.disableComments,
		IncludeSidebar:    boolPtr(p.includeSidebar),
		IncludeCallout:    boolPtr(p.includeCallout),
		Keywords:          p.Keywords(),
		CustomSummaryHTML: p.customSummaryHTML,
		Created:           p.created,
		Modified:          p.modified,
		Timestamp:         p.timestamp,
		SubtitleHTML:      p.SubtitleHTML(),
		FooterHTML:        p.FooterHTML(),
		Stale:             p.IsStale(),
	}
	for _, id := range p.children.Items() {
		r.ChildIDs = append(r.ChildIDs, string(id))
	}
	if p.isCollection {
		v := p.index
		r.Index = &IndexRecord{
			SummaryType:     v.summaryType.String(),
			MaxItems:        v.maxItems,
			GenerateArchive: v.generateArchive,
			EnableFeed:      v.enableFeed,
		}
		if mode, ok := v.SortOverride(); ok {
			r.Index.SortOverride = mode.String()
		}
	}
	return r
}

func (pl *Pagelet) record() PageletRecord {
	return PageletRecord{
		ID:         string(pl.id),
		PageID:     string(pl.page),
		Location:   pl.location.String(),
		SortKey:    pl.sortKey,
		Title:      pl.title,
		BodyRef:    pl.bodyRef,
		ShowBorder: pl.showBorder.String(),
	}
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func boolPtr(b bool) *bool {
	return &b
}
