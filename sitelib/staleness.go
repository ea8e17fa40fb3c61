package sitelib

import (
	"sort"
	"sync"
)

// StaleReason describes what kind of change made a page stale. It decides
// which other pages are affected.
type StaleReason int

const (
	// ReasonContent is a change of something indexes show of the page,
	// like its title, timestamp or summary. Indexes listing it are stale.
	ReasonContent StaleReason = iota

	// ReasonSelf is a change that only shows on the page itself.
	ReasonSelf

	// ReasonStructure is a change of the tree shape.
	ReasonStructure

	// ReasonSidebar is a change of the page's sidebars or of its part in
	// sidebar inheritance. Pages inheriting from it are stale.
	ReasonSidebar

	// ReasonSiteWide is a change every page shows, like the site menu.
	ReasonSiteWide
)

func (r StaleReason) String() string {
	switch r {
	case ReasonContent:
		return "content"
	case ReasonSelf:
		return "self"
	case ReasonStructure:
		return "structure"
	case ReasonSidebar:
		return "sidebar"
	case ReasonSiteWide:
		return "siteWide"
	}
	return "unknown"
}

// StalenessTracker records which pages need to be regenerated. It is safe
// for concurrent use, so that a publish pass can clear pages from its
// workers.
type StalenessTracker struct {
	mu    sync.Mutex
	stale map[PageID]struct{}
}

// NewStalenessTracker creates an empty tracker.
func NewStalenessTracker() *StalenessTracker {
	return &StalenessTracker{stale: make(map[PageID]struct{})}
}

// MarkStale adds id to the stale set. It reports whether id was added.
func (t *StalenessTracker) MarkStale(id PageID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, found := t.stale[id]; found {
		return false
	}
	t.stale[id] = struct{}{}
	return true
}

// IsStale reports whether id is in the stale set.
func (t *StalenessTracker) IsStale(id PageID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, found := t.stale[id]
	return found
}

// Clear removes id from the stale set. It does not affect other pages.
func (t *StalenessTracker) Clear(id PageID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.stale, id)
}

// Forget drops a page that no longer exists.
func (t *StalenessTracker) Forget(id PageID) {
	t.Clear(id)
}

// Len returns the number of stale pages.
func (t *StalenessTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.stale)
}

// Snapshot returns the stale ids, sorted.
func (t *StalenessTracker) Snapshot() []PageID {
	t.mu.Lock()
	ids := make([]PageID, 0, len(t.stale))
	for id := range t.stale {
		ids = append(ids, id)
	}
	t.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Reset empties the stale set.
func (t *StalenessTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.stale)
}

// IsStale reports whether p must be regenerated.
func (p *Page) IsStale() bool {
	return p.s.tracker.IsStale(p.id)
}

// edit is one mutation in progress. It is begun before the mutation,
// recording what the affected pages take part in, and committed after it,
// when everything that took part before or takes part after is marked
// stale.
type edit struct {
	s      *Site
	reason StaleReason

	// Pages the mutation is about.
	pages []*Page

	// Pages that are stale because of the mutation but affect nothing else.
	directs []*Page

	parentsBefore map[PageID]*Page

	// Index members of collections, keyed by collection, before the mutation.
	indexesBefore map[PageID]map[PageID]bool

	// Sidebar inheritance sources of pages before the mutation.
	sourcesBefore map[PageID][2]PageID
	sidebarRoots  []*Page

	// Reading order neighbours and paths around reordered children.
	orderBefore  map[PageID]orderState
	orderParents []*Page

	// Subtrees whose site menu pages every page shows.
	menuRoots   []*Page
	menuChanged bool
}

// orderState is what a page shows of its place in the tree.
type orderState struct {
	prev, next PageID
	path       string
}

func (p *Page) orderState() orderState {
	var st orderState
	if prev := p.PrevPage(); prev != nil {
		st.prev = prev.id
	}
	if next := p.NextPage(); next != nil {
		st.next = next.id
	}
	st.path = p.Path()
	return st
}

func (s *Site) beginEdit(reason StaleReason, pages ...*Page) *edit {
	e := &edit{
		s:             s,
		reason:        reason,
		parentsBefore: make(map[PageID]*Page),
		indexesBefore: make(map[PageID]map[PageID]bool),
		sourcesBefore: make(map[PageID][2]PageID),
		orderBefore:   make(map[PageID]orderState),
	}
	for _, p := range pages {
		e.add(p)
	}
	return e
}

// add records p as a page the mutation is about.
func (e *edit) add(p *Page) {
	e.pages = append(e.pages, p)
	if e.propagatesToIndexes() {
		parent := p.parentPage()
		e.parentsBefore[p.id] = parent
		e.captureIndexes(parent)
	}
	if e.reason == ReasonSidebar || e.reason == ReasonStructure {
		e.captureSidebars(p)
	}
}

// direct records p as stale without anything depending on it.
func (e *edit) direct(p *Page) {
	e.directs = append(e.directs, p)
}

func (e *edit) propagatesToIndexes() bool {
	return e.reason == ReasonContent || e.reason == ReasonStructure
}

// captureIndexes records the index members of from and its ancestors.
func (e *edit) captureIndexes(from *Page) {
	for a := from; a != nil; a = a.parentPage() {
		if _, found := e.indexesBefore[a.id]; found {
			return
		}
		e.indexesBefore[a.id] = a.index.members()
	}
}

func (e *edit) captureSidebars(root *Page) {
	if !root.inTree() {
		return
	}
	e.sidebarRoots = append(e.sidebarRoots, root)
	root.walk(func(d *Page) bool {
		e.sourcesBefore[d.id] = d.sidebarSources()
		return true
	})
}

// captureOrder records the reading order neighbours and paths around the
// children of parent, which the mutation may reorder, add to or remove
// from.
func (e *edit) captureOrder(parent *Page) {
	if parent == nil || !parent.inTree() {
		return
	}
	for _, p := range e.orderParents {
		if p == parent {
			return
		}
	}
	e.orderParents = append(e.orderParents, parent)
	e.captureIndexes(parent)
	for _, p := range parent.readingOrderAround() {
		if _, found := e.orderBefore[p.id]; !found {
			e.orderBefore[p.id] = p.orderState()
		}
	}
}

// captureMenu records whether the subtree of root shows in the site menu.
// If it does before or after the mutation, the menu of every page may have
// changed.
func (e *edit) captureMenu(root *Page) {
	if root.inTree() && root.hasMenuPages() {
		e.menuChanged = true
	}
	e.menuRoots = append(e.menuRoots, root)
}

func (e *edit) menuAffected() bool {
	if e.menuChanged {
		return true
	}
	for _, root := range e.menuRoots {
		if root.inTree() && root.hasMenuPages() {
			return true
		}
	}
	return false
}

// commitOrder marks the pages whose reading order neighbours or path
// changed, and the pages that newly take part in the order. It reports
// whether a moved subtree shows in the site menu.
func (e *edit) commitOrder() bool {
	var moved []*Page
	for id, before := range e.orderBefore {
		p, found := e.s.pages[id]
		if !found || !p.inTree() {
			continue
		}
		after := p.orderState()
		if after.prev != before.prev || after.next != before.next {
			e.mark(p)
		}
		if after.path != before.path {
			moved = append(moved, p)
		}
	}

	for _, parent := range e.orderParents {
		if !parent.inTree() {
			continue
		}
		for _, p := range parent.readingOrderAround() {
			if _, found := e.orderBefore[p.id]; !found {
				e.mark(p)
			}
		}
	}

	for _, p := range moved {
		if p.hasMenuPages() {
			return true
		}
		for _, d := range p.subtree() {
			e.mark(d)
		}
		e.propagateUp(p.parentPage(), p.id)
	}
	return false
}

func (e *edit) mark(p *Page) {
	if p.inTree() {
		e.s.tracker.MarkStale(p.id)
	}
}

func (e *edit) commit() {
	if e.reason == ReasonSiteWide || e.menuAffected() {
		e.s.MarkAllStale()
		return
	}
	if e.commitOrder() {
		e.s.MarkAllStale()
		return
	}

	for _, p := range e.directs {
		e.mark(p)
	}

	for _, p := range e.pages {
		e.mark(p)
		if !e.propagatesToIndexes() {
			continue
		}
		before := e.parentsBefore[p.id]
		e.propagateUp(before, p.id)
		if after := p.parentPage(); after != before {
			e.propagateUp(after, p.id)
		}
	}

	for _, root := range e.sidebarRoots {
		if !root.inTree() {
			continue
		}
		root.walk(func(d *Page) bool {
			before, found := e.sourcesBefore[d.id]
			after := d.sidebarSources()
			for i := range after {
				changed := !found || before[i] != after[i]
				if changed || (e.reason == ReasonSidebar && (before[i] == root.id || after[i] == root.id)) {
					e.mark(d)
					break
				}
			}
			return true
		})
	}
}

// propagateUp marks the collections, starting at a, whose index listed or
// lists the page with the given id, and so on up while each collection is
// in turn listed by its parent.
func (e *edit) propagateUp(a *Page, id PageID) {
	for ; a != nil && a.inTree(); a = a.parentPage() {
		if !e.indexesBefore[a.id][id] && !a.index.contains(id) {
			return
		}
		e.mark(a)
		id = a.id
	}
}
