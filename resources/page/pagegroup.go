package page

// PagesGroup represents a list of page groups.
// This is what archives are made of.
type PagesGroup[T Sortable] []PageGroup[T]

// PageGroup represents a group of pages, grouped by the key.
// The key is typically a year and month.
type PageGroup[T Sortable] struct {
	// The key, e.g. "2024-03".
	Key string

	// The Pages in this group.
	Pages []T
}

// Len returns the number of pages in the page group.
func (psg PagesGroup[T]) Len() int {
	l := 0
	for _, pg := range psg {
		l += len(pg.Pages)
	}
	return l
}

// GroupByDate groups consecutive items whose SortDate formats to the same
// string. Items keep their order, so sort them first.
func GroupByDate[T Sortable](items []T, format string) PagesGroup[T] {
	var groups PagesGroup[T]
	for _, item := range items {
		key := item.SortDate().Format(format)
		if n := len(groups); n > 0 && groups[n-1].Key == key {
			groups[n-1].Pages = append(groups[n-1].Pages, item)
			continue
		}
		groups = append(groups, PageGroup[T]{Key: key, Pages: []T{item}})
	}
	return groups
}
