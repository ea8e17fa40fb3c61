package page

import (
	"fmt"
	"strings"
)

// SortMode is the presentation order of a collection's children.
type SortMode int

const (
	// Manual keeps the order the author arranged.
	Manual SortMode = iota
	// Alphabetical orders by title, ignoring case.
	Alphabetical
	// DateAscending orders oldest first.
	DateAscending
	// DateDescending orders newest first.
	DateDescending
)

var sortModeNames = map[SortMode]string{
	Manual:         "manual",
	Alphabetical:   "alphabetical",
	DateAscending:  "dateAscending",
	DateDescending: "dateDescending",
}

func (m SortMode) String() string {
	if s, ok := sortModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("SortMode(%d)", int(m))
}

// IsAutomatic reports whether the order is derived from a sort key rather
// than arranged by hand.
func (m SortMode) IsAutomatic() bool {
	return m != Manual
}

// ParseSortMode parses the names returned by SortMode.String. Matching is
// case-insensitive; the empty string is Manual.
func ParseSortMode(s string) (SortMode, error) {
	if s == "" {
		return Manual, nil
	}
	for m, name := range sortModeNames {
		if strings.EqualFold(name, s) {
			return m, nil
		}
	}
	return Manual, fmt.Errorf("unknown sort mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m SortMode) MarshalText() ([]byte, error) {
	if _, ok := sortModeNames[m]; !ok {
		return nil, fmt.Errorf("unknown sort mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SortMode) UnmarshalText(text []byte) error {
	mode, err := ParseSortMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
