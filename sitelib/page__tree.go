package sitelib

import (
	"fmt"

	"github.com/wanli28/ConnectionKit/common/collections"
	"github.com/wanli28/ConnectionKit/common/herrors"
	"github.com/wanli28/ConnectionKit/resources/page"
)

// Parent returns the parent page, nil for the root and for pages outside
// the tree.
func (p *Page) Parent() *Page {
	return p.parentPage()
}

// ParentOrRoot returns the parent page, or the root if p has none.
func (p *Page) ParentOrRoot() *Page {
	if parent := p.parentPage(); parent != nil {
		return parent
	}
	return p.s.root
}

// HasChildren reports whether p has child pages.
func (p *Page) HasChildren() bool {
	return p.children.Len() > 0
}

// Children returns the children in manual order.
func (p *Page) Children() []*Page {
	ids := p.children.Items()
	children := make([]*Page, len(ids))
	for i, id := range ids {
		children[i] = p.s.mustPage(id)
	}
	return children
}

// SortedChildren returns the children ordered by the sort mode of p.
func (p *Page) SortedChildren() []*Page {
	return append([]*Page(nil), p.sortedChildrenShared()...)
}

// ChildrenWithSorting returns the children ordered by mode.
func (p *Page) ChildrenWithSorting(mode page.SortMode) []*Page {
	if mode == p.sortMode {
		return p.SortedChildren()
	}
	return page.SortBy(p.s.sortPolicy, p.Children(), mode)
}

// sortedChildrenShared returns the cached order. It must not be modified.
func (p *Page) sortedChildrenShared() []*Page {
	if sorted, found := p.sortedChildren.get(p.childrenGen); found {
		return sorted
	}
	gen := p.childrenGen
	sorted := page.SortBy(p.s.sortPolicy, p.Children(), p.sortMode)
	if gen != p.childrenGen {
		herrors.Bug(herrors.ErrStaleCacheRead, "children of %q changed while sorting", p.id)
	}
	p.sortedChildren.set(gen, sorted)
	return sorted
}

// AddChild makes child the child of p at the given position of the manual
// order, moving it from its current parent if it has one. The position is
// clamped to the valid range. If p sorts its children automatically, the
// position is ignored and child goes where the sort mode places it.
// Adding p or one of its ancestors fails with herrors.ErrCycleDetected and
// leaves the tree unchanged.
func (p *Page) AddChild(child *Page, at int) error {
	if child.s != p.s {
		return fmt.Errorf("add %q to %q: page of another site: %w", child.id, p.id, herrors.ErrNotFound)
	}
	if !p.inTree() {
		return fmt.Errorf("add %q to %q: parent not in tree: %w", child.id, p.id, herrors.ErrNotFound)
	}
	if child.removed {
		return fmt.Errorf("add %q to %q: page was removed: %w", child.id, p.id, herrors.ErrNotFound)
	}
	if child == p || child.ContainsDescendant(p) {
		return fmt.Errorf("add %q to %q: %w", child.id, p.id, herrors.ErrCycleDetected)
	}
	if p.children.Contains(child.id) {
		return fmt.Errorf("add %q to %q: %w", child.id, p.id, herrors.ErrDuplicateItem)
	}

	oldParent := child.parentPage()
	attached := child.inTree()

	e := p.s.beginEdit(ReasonStructure)
	e.direct(p)
	if oldParent != nil {
		e.direct(oldParent)
	}
	if attached {
		e.add(child)
	} else {
		e.pages = append(e.pages, child)
	}
	e.captureOrder(p)
	e.captureOrder(oldParent)
	e.captureMenu(child)

	if oldParent != nil {
		if err := oldParent.children.Remove(child.id); err != nil {
			herrors.Bug(err, "page %q missing from the children of its parent", child.id)
		}
		oldParent.childrenGen = p.s.nextGen()
		oldParent.touch()
	}

	if p.sortMode.IsAutomatic() {
		key := page.SortKey{Title: child.SortTitle(), Date: child.SortDate(), Ordinal: p.children.Len()}
		sorted := p.sortedChildrenShared()
		k := p.s.sortPolicy.ProposedIndex(page.KeysOf(sorted), key, p.sortMode)
		switch {
		case k >= len(sorted):
			at = p.children.Len()
		case k == 0:
			at, _ = p.children.IndexOf(sorted[0].id)
		default:
			// Right after the sibling it sorts after, so that siblings
			// sorting equal keep their manual order.
			at, _ = p.children.IndexOf(sorted[k-1].id)
			at++
		}
	}

	if err := p.children.Insert(child.id, at); err != nil {
		herrors.Bug(err, "insert %q into %q", child.id, p.id)
	}
	child.parent = p.id
	if !attached {
		p.s.register(child)
	}
	p.childrenGen = p.s.nextGen()
	p.s.structureChanged()
	p.touch()
	child.touch()

	e.commit()

	return nil
}

// NewChild creates a page with the given title and adds it to p.
func (p *Page) NewChild(title string, at int) (*Page, error) {
	child := p.s.NewPage(title)
	if err := p.AddChild(child, at); err != nil {
		return nil, err
	}
	return child, nil
}

// AppendChild adds child at the end of the manual order of p.
func (p *Page) AppendChild(child *Page) error {
	return p.AddChild(child, p.children.Len())
}

// MoveChildToIndex moves child within the manual order of p. The index is
// clamped to the valid range.
func (p *Page) MoveChildToIndex(child *Page, newIndex int) error {
	if !p.children.Contains(child.id) {
		return fmt.Errorf("move %q in %q: %w", child.id, p.id, herrors.ErrNotFound)
	}
	if i, _ := p.children.IndexOf(child.id); i == newIndex {
		return nil
	}

	e := p.s.beginEdit(ReasonContent, child)
	e.direct(p)
	e.captureOrder(p)
	e.captureMenu(child)
	if err := p.children.MoveToIndex(child.id, newIndex); err != nil {
		return err
	}
	p.childrenGen = p.s.nextGen()
	p.touch()
	e.commit()

	return nil
}

// RemoveChild removes child and all its descendants from the tree.
// Removing a page that is not a child of p does nothing.
func (p *Page) RemoveChild(child *Page) {
	p.RemoveChildren(child)
}

// RemoveChildren removes the given children and their descendants from the
// tree. Pages that are not children of p are ignored.
func (p *Page) RemoveChildren(children ...*Page) {
	var remove []*Page
	for _, child := range children {
		if child.parent == p.id && p.children.Contains(child.id) {
			remove = append(remove, child)
		}
	}
	if len(remove) == 0 {
		return
	}

	e := p.s.beginEdit(ReasonStructure)
	e.direct(p)
	e.captureOrder(p)
	for _, child := range remove {
		e.add(child)
		e.captureMenu(child)
	}

	var removed []*Page
	for _, child := range remove {
		if err := p.children.Remove(child.id); err != nil {
			herrors.Bug(err, "remove %q from %q", child.id, p.id)
		}
		removed = append(removed, child.subtree()...)
	}
	for _, r := range removed {
		p.s.destroy(r)
	}
	p.childrenGen = p.s.nextGen()
	p.s.structureChanged()
	p.touch()

	e.commit()

	if p.s.onPageRemoved != nil {
		for _, r := range removed {
			p.s.onPageRemoved(r)
		}
	}
}

// destroy drops p and its pagelets from the site.
func (s *Site) destroy(p *Page) {
	for _, id := range p.pagelets.Items() {
		if pl, found := s.pagelets[id]; found {
			pl.page = ""
			delete(s.pagelets, id)
		}
	}
	p.pagelets = collections.NewOrderedSet[PageletID]()
	p.children = collections.NewOrderedSet[PageID]()
	p.parent = ""
	delete(s.pages, p.id)
	s.tracker.Forget(p.id)
	p.removed = true
	p.sortedChildren.reset()
	p.allSidebars.reset()
	p.index.cache.reset()
}

// ContainsDescendant reports whether candidate is a descendant of p.
func (p *Page) ContainsDescendant(candidate *Page) bool {
	if candidate == nil || candidate == p || candidate.s != p.s {
		return false
	}
	// The walk is bounded by the number of pages so that a corrupt tree
	// can not loop forever.
	limit := len(p.s.pages) + 1
	for a := candidate.parentPage(); a != nil && limit > 0; a = a.parentPage() {
		if a == p {
			return true
		}
		limit--
	}
	if limit == 0 {
		herrors.Bug(herrors.ErrCycleDetected, "ancestors of %q", candidate.id)
	}
	return false
}

// Ancestors returns the ancestors of p, nearest first.
func (p *Page) Ancestors() []*Page {
	var ancestors []*Page
	for a := p.parentPage(); a != nil; a = a.parentPage() {
		ancestors = append(ancestors, a)
	}
	return ancestors
}

// IndexPathFromRoot returns the position of p and of each of its ancestors
// among their siblings in sorted order, starting below the root. The root
// has an empty path.
func (p *Page) IndexPathFromRoot() []int {
	var path []int
	for cur := p; ; {
		parent := cur.parentPage()
		if parent == nil {
			break
		}
		path = append(path, parent.sortedIndexOf(cur))
		cur = parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (p *Page) sortedIndexOf(child *Page) int {
	for i, c := range p.sortedChildrenShared() {
		if c == child {
			return i
		}
	}
	herrors.Bug(herrors.ErrNotFound, "page %q missing from the sorted children of %q", child.id, p.id)
	return -1
}

// walk visits p and its descendants in pre-order.
func (p *Page) walk(fn func(p *Page) bool) bool {
	if !fn(p) {
		return false
	}
	for _, c := range p.sortedChildrenShared() {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// subtree returns p and its descendants, breadth first.
func (p *Page) subtree() []*Page {
	pages := []*Page{p}
	for i := 0; i < len(pages); i++ {
		for _, id := range pages[i].children.Items() {
			pages = append(pages, pages[i].s.mustPage(id))
		}
	}
	return pages
}

func (s *Site) mustPage(id PageID) *Page {
	p, found := s.pages[id]
	if !found {
		herrors.Bug(herrors.ErrNotFound, "page %q", id)
	}
	return p
}
