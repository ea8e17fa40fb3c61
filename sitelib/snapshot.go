package sitelib

// PageSnapshot is an immutable copy of everything needed to regenerate a
// page. Snapshots are taken on the editing goroutine and can be used by
// publish workers while the tree keeps changing.
type PageSnapshot struct {
	ID        PageID
	Path      string
	TitleHTML string
	TitleText string
	MenuTitle string
	Keywords  []string

	IsCollection bool
	IsRoot       bool

	DisableComments bool

	// Children in sorted order.
	Children []PageID

	// Neighbours in reading order, empty at the ends.
	Prev PageID
	Next PageID

	SiteMenu []PageRef

	// Empty if the page does not show them.
	Sidebars []PageletSnapshot
	Callouts []PageletSnapshot

	IndexItems   []IndexItem
	FeedEligible bool
	Archives     []ArchiveSnapshot
}

// PageRef is a link to a page.
type PageRef struct {
	ID    PageID
	Path  string
	Title string
}

// PageletSnapshot is a copy of a pagelet as shown on a page.
type PageletSnapshot struct {
	ID         PageletID
	Title      string
	BodyRef    string
	ShowBorder bool
	Inherited  bool
}

// IndexItem is a page as listed by an index.
type IndexItem struct {
	PageRef
	Summary Summary
}

// ArchiveSnapshot is one month of an archive.
type ArchiveSnapshot struct {
	Key   string
	Pages []PageRef
}

func (p *Page) ref() PageRef {
	return PageRef{ID: p.id, Path: p.Path(), Title: p.titleText}
}

func refs(pages []*Page) []PageRef {
	r := make([]PageRef, len(pages))
	for i, p := range pages {
		r[i] = p.ref()
	}
	return r
}

// Snapshot returns a copy of what p shows.
func (p *Page) Snapshot() PageSnapshot {
	snap := PageSnapshot{
		ID:           p.id,
		Path:         p.Path(),
		TitleHTML:    p.titleHTML,
		TitleText:    p.titleText,
		MenuTitle:    p.MenuTitleOrTitle(),
		Keywords:     p.Keywords(),
		IsCollection: p.isCollection,
		IsRoot:       p.IsRoot(),

		DisableComments: p.disableComments,

		SiteMenu:     refs(p.s.SiteMenu()),
		FeedEligible: p.index.FeedEligible(),
	}

	for _, c := range p.sortedChildrenShared() {
		snap.Children = append(snap.Children, c.id)
	}
	if prev := p.PrevPage(); prev != nil {
		snap.Prev = prev.id
	}
	if next := p.NextPage(); next != nil {
		snap.Next = next.id
	}

	if p.includeSidebar {
		for _, pl := range p.AllSidebars() {
			snap.Sidebars = append(snap.Sidebars, pl.snapshot(p))
		}
	}
	if p.includeCallout {
		for _, pl := range p.Callouts() {
			snap.Callouts = append(snap.Callouts, pl.snapshot(p))
		}
	}

	for _, item := range p.index.sortedChildrenInIndex() {
		snap.IndexItems = append(snap.IndexItems, IndexItem{PageRef: item.ref(), Summary: p.index.ItemSummary(item)})
	}
	for _, g := range p.index.ArchiveGroups() {
		snap.Archives = append(snap.Archives, ArchiveSnapshot{Key: g.Key, Pages: refs(g.Pages)})
	}

	return snap
}

func (pl *Pagelet) snapshot(on *Page) PageletSnapshot {
	return PageletSnapshot{
		ID:         pl.id,
		Title:      pl.title,
		BodyRef:    pl.bodyRef,
		ShowBorder: pl.ShowBorder(),
		Inherited:  pl.page != on.id,
	}
}
