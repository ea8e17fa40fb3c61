package helpers

import (
	"html"
	"strings"
	"unicode/utf8"
)

// TruncateWordsByRune joins words until max runes are reached. A word
// crossing the limit is cut. It also reports whether anything was cut.
func TruncateWordsByRune(in []string, max int) (string, bool) {
	words := make([]string, len(in))
	copy(words, in)

	count := 0
	for index, word := range words {
		if count >= max {
			return strings.Join(words[:index], " "), true
		}
		runeCount := utf8.RuneCountInString(word)
		if count+runeCount <= max {
			count += runeCount
			continue
		}
		for ri := range word {
			if count >= max {
				truncatedWords := append(words[:index], word[:ri])
				return strings.Join(truncatedWords, " "), true
			}
			count++
		}
	}

	return strings.Join(words, " "), false
}

// StripHTML returns the text of s with all tags removed and entities
// unescaped. Runs of white space collapse to a single space.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>' && inTag:
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}

// TextToHTML escapes plain text for use as an HTML fragment.
func TextToHTML(s string) string {
	return html.EscapeString(s)
}
