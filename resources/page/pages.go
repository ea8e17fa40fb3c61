package page

import (
	"time"

	"github.com/wanli28/ConnectionKit/common/collections"
)

// Sortable is implemented by everything a SortPolicy orders.
type Sortable interface {
	// Ordinal is the position in the manual order, the final tie breaker.
	collections.Order

	// SortTitle is the plain text title compared in Alphabetical mode.
	SortTitle() string

	// SortDate is the effective timestamp compared in the date modes.
	SortDate() time.Time
}

// SortKey is a snapshot of the values a SortPolicy compares.
type SortKey struct {
	Title   string
	Date    time.Time
	Ordinal int
}

// KeyOf returns the sort key of s.
func KeyOf(s Sortable) SortKey {
	return SortKey{Title: s.SortTitle(), Date: s.SortDate(), Ordinal: s.Ordinal()}
}

// KeysOf returns the sort keys of items, in order.
func KeysOf[T Sortable](items []T) []SortKey {
	keys := make([]SortKey, len(items))
	for i, item := range items {
		keys[i] = KeyOf(item)
	}
	return keys
}
