package sitelib

import (
	"time"

	"github.com/wanli28/ConnectionKit/related"
)

var _ related.Document = (*Page)(nil)

// RelatedKeywords implements related.Document. Pages are indexed by their
// keywords and their timestamp.
func (p *Page) RelatedKeywords(cfg related.IndexConfig) ([]related.Keyword, error) {
	switch cfg.Name {
	case "keywords":
		return cfg.ToKeywords(p.keywords)
	case "date":
		return cfg.ToKeywords(p.timestamp)
	}
	return nil, nil
}

// PublishDate implements related.Document.
func (p *Page) PublishDate() time.Time {
	return p.timestamp
}

// Name implements related.Document.
func (p *Page) Name() string {
	return p.titleText
}

// RelatedPages returns up to limit published pages sharing keywords with p,
// best match first. A limit <= 0 returns all matches.
func (s *Site) RelatedPages(p *Page, limit int) ([]*Page, error) {
	if !p.inTree() {
		return nil, nil
	}

	idx := related.NewInvertedIndex(s.Conf.Related)
	var docs []related.Document
	s.Walk(func(c *Page) bool {
		if !c.PageOrParentDraft() {
			docs = append(docs, c)
		}
		return true
	})
	if err := idx.Add(docs...); err != nil {
		return nil, err
	}

	matches, err := idx.SearchDoc(p)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	pages := make([]*Page, len(matches))
	for i, m := range matches {
		pages[i] = m.(*Page)
	}
	return pages, nil
}
