package page

import (
	"sort"
	"strings"

	"github.com/wanli28/ConnectionKit/langs"
)

// SortPolicy orders items by a SortMode. It holds no cache and has no side
// effects; the same input always gives the same order.
type SortPolicy struct {
	collator *langs.Collator
}

// NewSortPolicy creates a SortPolicy comparing titles with collator.
// A nil collator compares lower cased titles byte-wise.
func NewSortPolicy(collator *langs.Collator) SortPolicy {
	return SortPolicy{collator: collator}
}

// Compare returns -1, 0 or 1 as a sorts before, with or after b under mode.
// Alphabetical compares titles ignoring case, the date modes compare the
// effective timestamp; ties fall back to manual order.
func (sp SortPolicy) Compare(a, b SortKey, mode SortMode) int {
	var c int
	switch mode {
	case Alphabetical:
		c = sp.compareTitles(a.Title, b.Title)
	case DateAscending:
		c = a.Date.Compare(b.Date)
	case DateDescending:
		c = b.Date.Compare(a.Date)
	}
	if c != 0 {
		return c
	}
	return compareInts(a.Ordinal, b.Ordinal)
}

func (sp SortPolicy) compareTitles(a, b string) int {
	if sp.collator != nil {
		return sp.collator.CompareStrings(a, b)
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// ProposedIndex returns the index an item with key would take in children,
// which must already be ordered by mode. Manual mode appends.
func (sp SortPolicy) ProposedIndex(children []SortKey, key SortKey, mode SortMode) int {
	if !mode.IsAutomatic() {
		return len(children)
	}
	return sort.Search(len(children), func(i int) bool {
		return sp.Compare(key, children[i], mode) < 0
	})
}

// SortBy returns a new slice with items stable sorted by mode.
func SortBy[T Sortable](sp SortPolicy, items []T, mode SortMode) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	keys := KeysOf(sorted)

	ps := &keySorter[T]{items: sorted, keys: keys, by: func(a, b SortKey) bool {
		return sp.Compare(a, b, mode) < 0
	}}
	sort.Stable(ps)

	return sorted
}

// IsSorted reports whether items are in mode order.
func IsSorted[T Sortable](sp SortPolicy, items []T, mode SortMode) bool {
	for i := 1; i < len(items); i++ {
		if sp.Compare(KeyOf(items[i-1]), KeyOf(items[i]), mode) > 0 {
			return false
		}
	}
	return true
}

// A keySorter implements the sort interface for items with precomputed keys.
type keySorter[T Sortable] struct {
	items []T
	keys  []SortKey
	by    func(a, b SortKey) bool
}

func (ps *keySorter[T]) Len() int { return len(ps.items) }
func (ps *keySorter[T]) Swap(i, j int) {
	ps.items[i], ps.items[j] = ps.items[j], ps.items[i]
	ps.keys[i], ps.keys[j] = ps.keys[j], ps.keys[i]
}

// Less is part of sort.Interface. It is implemented by calling the "by" closure in the sorter.
func (ps *keySorter[T]) Less(i, j int) bool { return ps.by(ps.keys[i], ps.keys[j]) }

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
