package sitelib

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/wanli28/ConnectionKit/common/herrors"
)

// pageletKeySpacing is the distance between the sort keys of a freshly
// numbered pagelet group. Inserts take the midpoint of their neighbours, so
// a group is only renumbered after many inserts at the same place.
const pageletKeySpacing int64 = 1024

var sidebarLocations = []PageletLocation{TopSidebar, BottomSidebar}

// NewPagelet creates a pagelet that is not yet hosted by a page.
func (s *Site) NewPagelet(title string) *Pagelet {
	return &Pagelet{
		s:     s,
		id:    PageletID(uuid.NewString()),
		title: title,
	}
}

// Pagelets returns the pagelets p hosts at loc in ascending key order.
func (p *Page) Pagelets(loc PageletLocation) []*Pagelet {
	var pagelets []*Pagelet
	for _, id := range p.pagelets.OrderedItems() {
		if pl := p.s.pagelets[id]; pl != nil && pl.location == loc {
			pagelets = append(pagelets, pl)
		}
	}
	sort.SliceStable(pagelets, func(i, j int) bool {
		return pagelets[i].sortKey < pagelets[j].sortKey
	})
	return pagelets
}

// Callouts returns the callout pagelets of p. Callouts are never inherited.
func (p *Page) Callouts() []*Pagelet {
	return p.Pagelets(Callout)
}

// InsertPagelet attaches pl to p at position at among the pagelets at loc.
// The position is clamped to the valid range.
func (p *Page) InsertPagelet(pl *Pagelet, at int, loc PageletLocation) error {
	if pl.s != p.s {
		return fmt.Errorf("insert pagelet %q into %q: pagelet of another site: %w", pl.id, p.id, herrors.ErrNotFound)
	}
	if pl.page != "" {
		return fmt.Errorf("insert pagelet %q into %q: %w", pl.id, p.id, herrors.ErrDuplicateItem)
	}
	if !loc.IsSidebar() && loc != Callout {
		return fmt.Errorf("insert pagelet %q into %q: invalid location %s", pl.id, p.id, loc)
	}

	p.dockChange(loc, func() {
		group := p.Pagelets(loc)
		at = min(max(at, 0), len(group))
		pl.page = p.id
		pl.location = loc
		pl.sortKey = p.keyAt(group, at)
		if err := p.pagelets.Append(pl.id); err != nil {
			herrors.Bug(err, "attach pagelet %q", pl.id)
		}
		p.s.pagelets[pl.id] = pl
	})

	return nil
}

// AppendPagelet attaches pl after the pagelets p already has at loc.
func (p *Page) AppendPagelet(pl *Pagelet, loc PageletLocation) error {
	return p.InsertPagelet(pl, len(p.Pagelets(loc)), loc)
}

// PrependPagelet attaches pl before the pagelets p already has at loc.
func (p *Page) PrependPagelet(pl *Pagelet, loc PageletLocation) error {
	return p.InsertPagelet(pl, 0, loc)
}

// RemovePagelet detaches pl from p.
func (p *Page) RemovePagelet(pl *Pagelet) error {
	if pl.page != p.id {
		return fmt.Errorf("remove pagelet %q from %q: %w", pl.id, p.id, herrors.ErrForeignPagelet)
	}
	p.dockChange(pl.location, func() {
		if err := p.pagelets.Remove(pl.id); err != nil {
			herrors.Bug(err, "detach pagelet %q", pl.id)
		}
		delete(p.s.pagelets, pl.id)
		pl.page = ""
	})
	return nil
}

// MovePageletBefore moves pl in front of ref. Both must be hosted by p. If
// ref is at another location, pl moves there.
func (p *Page) MovePageletBefore(pl, ref *Pagelet) error {
	return p.movePagelet(pl, ref, 0)
}

// MovePageletAfter moves pl behind ref. Both must be hosted by p. If ref is
// at another location, pl moves there.
func (p *Page) MovePageletAfter(pl, ref *Pagelet) error {
	return p.movePagelet(pl, ref, 1)
}

func (p *Page) movePagelet(pl, ref *Pagelet, offset int) error {
	if pl.page != p.id || ref.page != p.id {
		return fmt.Errorf("move pagelet %q in %q: %w", pl.id, p.id, herrors.ErrForeignPagelet)
	}
	if pl == ref {
		return nil
	}

	reason := pl.location.staleReason()
	if ref.location.IsSidebar() {
		reason = ReasonSidebar
	}
	e := p.s.beginEdit(reason, p)

	var group []*Pagelet
	for _, other := range p.Pagelets(ref.location) {
		if other != pl {
			group = append(group, other)
		}
	}
	at := offset
	for i, other := range group {
		if other == ref {
			at += i
			break
		}
	}
	pl.location = ref.location
	pl.sortKey = p.keyAt(group, at)

	p.s.sidebarsChanged()
	p.touch()
	e.commit()

	return nil
}

// keyAt returns a key that sorts between group[at-1] and group[at]. The
// group is renumbered if there is no room left.
func (p *Page) keyAt(group []*Pagelet, at int) int64 {
	switch {
	case len(group) == 0:
		return pageletKeySpacing
	case at == 0:
		return group[0].sortKey - pageletKeySpacing
	case at == len(group):
		return group[at-1].sortKey + pageletKeySpacing
	}
	prev, next := group[at-1].sortKey, group[at].sortKey
	if next-prev < 2 {
		renumberPagelets(group)
		prev, next = group[at-1].sortKey, group[at].sortKey
	}
	return prev + (next-prev)/2
}

// renumberPagelets spaces out the keys of group, keeping its order.
func renumberPagelets(group []*Pagelet) {
	for i, pl := range group {
		pl.sortKey = int64(i+1) * pageletKeySpacing
	}
}

func (p *Page) dockChange(loc PageletLocation, fn func()) {
	if !p.inTree() {
		fn()
		return
	}
	e := p.s.beginEdit(loc.staleReason(), p)
	fn()
	p.s.sidebarsChanged()
	p.touch()
	e.commit()
}

// SidebarSource returns the ancestor whose sidebar p shows at loc, nil if
// p shows no inherited sidebar there. Inheritance passes only through pages
// that allow changing their sidebar, and the nearest ancestor with its own
// pagelets at loc wins.
func (p *Page) SidebarSource(loc PageletLocation) *Page {
	if !loc.IsSidebar() || !p.sidebarChangeable {
		return nil
	}
	limit := len(p.s.pages)
	for a := p.parentPage(); a != nil && limit > 0; a = a.parentPage() {
		if a.hasPagelets(loc) {
			return a
		}
		if !a.sidebarChangeable {
			return nil
		}
		limit--
	}
	return nil
}

// InheritedSidebars returns the pagelets p inherits at loc.
func (p *Page) InheritedSidebars(loc PageletLocation) []*Pagelet {
	src := p.SidebarSource(loc)
	if src == nil {
		return nil
	}
	return src.Pagelets(loc)
}

// AllSidebars returns the sidebar pagelets shown on p: the inherited top
// sidebar, its own top and bottom sidebars, then the inherited bottom
// sidebar.
func (p *Page) AllSidebars() []*Pagelet {
	key := p.s.sidebarGen
	if all, found := p.allSidebars.get(key); found {
		return append([]*Pagelet(nil), all...)
	}

	var all []*Pagelet
	all = append(all, p.InheritedSidebars(TopSidebar)...)
	all = append(all, p.Pagelets(TopSidebar)...)
	all = append(all, p.Pagelets(BottomSidebar)...)
	all = append(all, p.InheritedSidebars(BottomSidebar)...)

	if key != p.s.sidebarGen {
		herrors.Bug(herrors.ErrStaleCacheRead, "sidebars changed while collecting the sidebars of %q", p.id)
	}
	p.allSidebars.set(key, all)

	return append([]*Pagelet(nil), all...)
}

func (p *Page) hasPagelets(loc PageletLocation) bool {
	for _, id := range p.pagelets.OrderedItems() {
		if pl := p.s.pagelets[id]; pl != nil && pl.location == loc {
			return true
		}
	}
	return false
}

// sidebarSources returns the inheritance source ids of p per sidebar
// location.
func (p *Page) sidebarSources() [2]PageID {
	var ids [2]PageID
	for i, loc := range sidebarLocations {
		if src := p.SidebarSource(loc); src != nil {
			ids[i] = src.id
		}
	}
	return ids
}
