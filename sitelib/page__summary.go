package sitelib

import (
	"strings"

	"github.com/mitchellh/hashstructure"

	"github.com/wanli28/ConnectionKit/common/herrors"
	"github.com/wanli28/ConnectionKit/helpers"
)

// SummaryVariant records how a summary was produced.
type SummaryVariant int

const (
	SummaryVariantNone SummaryVariant = iota
	SummaryVariantCustom
	SummaryVariantFull
	SummaryVariantTruncated
)

func (v SummaryVariant) String() string {
	switch v {
	case SummaryVariantCustom:
		return "custom"
	case SummaryVariantFull:
		return "full"
	case SummaryVariantTruncated:
		return "truncated"
	}
	return "none"
}

// Summary is the short form of a page shown in indexes and feeds.
type Summary struct {
	Page    PageID
	HTML    string
	Text    string
	Variant SummaryVariant

	// The truncation length asked for, 0 if none.
	Length int

	// Key identifies the summary content for downstream caches.
	Key uint64
}

// Truncated reports whether the body text was cut.
func (s Summary) Truncated() bool {
	return s.Variant == SummaryVariantTruncated
}

// Summary returns the summary of p. A custom summary is returned verbatim.
// Otherwise the body text is used, cut after truncation runes if
// truncation is positive.
func (p *Page) Summary(truncation int) Summary {
	if p.customSummaryHTML != "" {
		return newSummary(p, p.customSummaryHTML, SummaryVariantCustom, truncation)
	}

	text := p.s.content.BodyText(p)
	variant := SummaryVariantFull
	if truncation > 0 {
		var truncated bool
		text, truncated = helpers.TruncateWordsByRune(strings.Fields(text), truncation)
		if truncated {
			variant = SummaryVariantTruncated
		}
	}

	return newSummary(p, helpers.TextToHTML(text), variant, truncation)
}

func newSummary(p *Page, html string, variant SummaryVariant, length int) Summary {
	s := Summary{
		Page:    p.id,
		HTML:    html,
		Text:    helpers.StripHTML(html),
		Variant: variant,
		Length:  length,
	}
	key, err := hashstructure.Hash(struct {
		Page    PageID
		HTML    string
		Variant SummaryVariant
		Length  int
	}{s.Page, s.HTML, s.Variant, s.Length}, nil)
	if err != nil {
		herrors.Bug(err, "hash summary of %q", p.id)
	}
	s.Key = key
	return s
}
