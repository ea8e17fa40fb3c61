package helpers

import (
	"strings"

	"github.com/jdkato/prose/transform"
)

// GetTitleFunc returns a func that can be used to transform a string to
// title case.
//
// The supported styles are:
//   - "Go" (strings.Title)
//   - "AP" (see https://www.apstylebook.com/)
//   - "Chicago" (see http://www.chicagomanualofstyle.org/home.html)
//
// If an unknown or empty style is provided, AP style is what you get.
func GetTitleFunc(style string) func(s string) string {
	switch strings.ToLower(style) {
	case "go":
		return strings.Title
	case "chicago":
		tc := transform.NewTitleConverter(transform.ChicagoStyle)
		return tc.Title
	default:
		tc := transform.NewTitleConverter(transform.APStyle)
		return tc.Title
	}
}

// UniqueStrings returns the non empty strings in s with duplicates removed,
// keeping the first occurrence.
func UniqueStrings(s []string) []string {
	seen := make(map[string]bool, len(s))
	var result []string
	for _, v := range s {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}
