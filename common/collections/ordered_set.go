package collections

import (
	"fmt"
	"iter"

	"github.com/wanli28/ConnectionKit/common/herrors"
)

// OrderedSet is an explicitly ordered collection of unique items with
// constant time membership tests.
// The zero value is ready to use. An OrderedSet is not safe for concurrent
// mutation.
type OrderedSet[T comparable] struct {
	items []T
	index map[T]int
}

// NewOrderedSet creates a set holding items in the given order. Duplicates
// after the first occurrence are dropped.
func NewOrderedSet[T comparable](items ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{}
	for _, item := range items {
		if !s.Contains(item) {
			s.items = append(s.items, item)
			s.reindexFrom(len(s.items) - 1)
		}
	}
	return s
}

// Len returns the number of items in the set.
func (s *OrderedSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Contains reports whether item is a member of s.
func (s *OrderedSet[T]) Contains(item T) bool {
	_, found := s.IndexOf(item)
	return found
}

// IndexOf returns the position of item.
func (s *OrderedSet[T]) IndexOf(item T) (int, bool) {
	if s == nil || s.index == nil {
		return -1, false
	}
	i, found := s.index[item]
	return i, found
}

// At returns the item at position i.
func (s *OrderedSet[T]) At(i int) T {
	return s.items[i]
}

// Insert inserts item at position at, clamped to [0, Len()].
func (s *OrderedSet[T]) Insert(item T, at int) error {
	if s.Contains(item) {
		return fmt.Errorf("insert %v: %w", item, herrors.ErrDuplicateItem)
	}
	at = clamp(at, 0, len(s.items))

	var zero T
	s.items = append(s.items, zero)
	copy(s.items[at+1:], s.items[at:])
	s.items[at] = item
	s.reindexFrom(at)

	return nil
}

// Append adds item to the end of the set.
func (s *OrderedSet[T]) Append(item T) error {
	return s.Insert(item, s.Len())
}

// Remove removes item and shifts the following items down.
func (s *OrderedSet[T]) Remove(item T) error {
	i, found := s.IndexOf(item)
	if !found {
		return fmt.Errorf("remove %v: %w", item, herrors.ErrNotFound)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, item)
	s.reindexFrom(i)
	return nil
}

// MoveToIndex moves item to newIndex, clamped to [0, Len()-1].
func (s *OrderedSet[T]) MoveToIndex(item T, newIndex int) error {
	i, found := s.IndexOf(item)
	if !found {
		return fmt.Errorf("move %v: %w", item, herrors.ErrNotFound)
	}
	newIndex = clamp(newIndex, 0, len(s.items)-1)
	if newIndex == i {
		return nil
	}

	if newIndex < i {
		copy(s.items[newIndex+1:i+1], s.items[newIndex:i])
		s.items[newIndex] = item
		s.reindexFrom(newIndex)
	} else {
		copy(s.items[i:newIndex], s.items[i+1:newIndex+1])
		s.items[newIndex] = item
		s.reindexFrom(i)
	}

	return nil
}

// Items returns a copy of the items in order.
func (s *OrderedSet[T]) Items() []T {
	if s == nil {
		return nil
	}
	items := make([]T, len(s.items))
	copy(items, s.items)
	return items
}

// OrderedItems returns a sequence over the items as they are now. The
// sequence can be ranged over any number of times and is not affected by
// later mutations of s.
func (s *OrderedSet[T]) OrderedItems() iter.Seq2[int, T] {
	snapshot := s.Items()
	return func(yield func(int, T) bool) {
		for i, item := range snapshot {
			if !yield(i, item) {
				return
			}
		}
	}
}

func (s *OrderedSet[T]) reindexFrom(from int) {
	if s.index == nil {
		s.index = make(map[T]int, len(s.items))
	}
	for i := from; i < len(s.items); i++ {
		s.index[s.items[i]] = i
	}
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
