// Package herrors contains the error values shared by the site tree packages.
package herrors

import (
	"errors"
	"fmt"
)

var (
	// ErrCycleDetected is returned when a reparenting would make a page its
	// own ancestor. The tree is left unchanged.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrDuplicateItem is returned when an item is inserted into an ordered
	// set that already contains it.
	ErrDuplicateItem = errors.New("duplicate item")

	// ErrNotFound is returned when an item is not a member of the collection
	// it is looked up in.
	ErrNotFound = errors.New("not found")

	// ErrInvalidSortKey reports corrupt persisted ordering. It is recovered
	// from by renumbering and only ever surfaces as a load warning.
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrStaleCacheRead marks a derived cache that was read after its inputs
	// changed. Seeing it is always a bug.
	ErrStaleCacheRead = errors.New("stale cache read")

	// ErrForeignPagelet is returned when a pagelet operation references a
	// pagelet hosted by another page.
	ErrForeignPagelet = errors.New("pagelet belongs to another page")
)

// Bug panics with a message prefixed with "BUG:". It is used for states that
// the core guarantees can not happen.
func Bug(err error, format string, args ...any) {
	panic(fmt.Errorf("BUG: "+format+": %w", append(args, err)...))
}
