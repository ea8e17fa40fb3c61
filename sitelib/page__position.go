package sitelib

// NextPage returns the page after p in reading order: a pre-order walk of
// the tree with children in sorted order. It returns nil for the last page.
func (p *Page) NextPage() *Page {
	if sorted := p.sortedChildrenShared(); len(sorted) > 0 {
		return sorted[0]
	}
	for cur := p; ; {
		parent := cur.parentPage()
		if parent == nil {
			return nil
		}
		siblings := parent.sortedChildrenShared()
		if i := parent.sortedIndexOf(cur); i+1 < len(siblings) {
			return siblings[i+1]
		}
		cur = parent
	}
}

// PrevPage returns the page before p in reading order. It returns nil for
// the root.
func (p *Page) PrevPage() *Page {
	parent := p.parentPage()
	if parent == nil {
		return nil
	}
	i := parent.sortedIndexOf(p)
	if i == 0 {
		return parent
	}
	prev := parent.sortedChildrenShared()[i-1]
	for {
		sorted := prev.sortedChildrenShared()
		if len(sorted) == 0 {
			return prev
		}
		prev = sorted[len(sorted)-1]
	}
}

// lastDescendant returns the last page of the subtree of p in reading order.
func (p *Page) lastDescendant() *Page {
	for {
		sorted := p.sortedChildrenShared()
		if len(sorted) == 0 {
			return p
		}
		p = sorted[len(sorted)-1]
	}
}

// readingOrderAround returns the pages whose reading order neighbours can
// change when the children of p change or are reordered: p, each child
// and the last page below it, and the page following the subtree of p.
func (p *Page) readingOrderAround() []*Page {
	around := []*Page{p}
	for _, c := range p.sortedChildrenShared() {
		around = append(around, c)
		if last := c.lastDescendant(); last != c {
			around = append(around, last)
		}
	}
	if next := p.lastDescendant().NextPage(); next != nil {
		around = append(around, next)
	}
	return around
}

// hasMenuPages reports whether p or a page below it is in the site menu.
func (p *Page) hasMenuPages() bool {
	for _, d := range p.subtree() {
		if d.InSiteMenu() {
			return true
		}
	}
	return false
}

// FirstParentOrSelfInSiteMenu returns the nearest page, p included, that is
// listed in the site menu. It returns nil if there is none.
func (p *Page) FirstParentOrSelfInSiteMenu() *Page {
	for a := p; a != nil; a = a.parentPage() {
		if a.InSiteMenu() {
			return a
		}
	}
	return nil
}
