// Package related finds documents sharing keywords with a given document.
package related

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// IndexConfig configures an index.
type IndexConfig struct {
	// The index name. This directly maps to a page field, "keywords" or
	// "date".
	Name string

	// Contextual pattern used to convert the value into a string.
	// Currently only used for dates. Can be used to, say, bump pages in the same
	// time frame when searching for related documents.
	// For dates it follows Go's time.Format patterns, i.e.
	// "2006" for YYYY and "200601" for YYYYMM.
	Pattern string

	// This field's weight when doing multi-index searches. Higher is "better".
	Weight int

	// Will lower case all string values in and queries to this index.
	ToLower bool
}

// Keyword is the interface a keyword in the search index must implement.
type Keyword interface {
	String() string
}

/*
Config is the top level configuration element used to configure how to retrieve
related pages.

An example site config:

	[related]
	threshold = 80
	[[related.indices]]
	name = "keywords"
	weight = 100
	[[related.indices]]
	name = "date"
	weight = 10
	pattern = "2006"
*/
type Config struct {
	// Only include matches >= threshold, a normalized rank between 0 and 100.
	Threshold int

	// To get stable "See also" sections we, by default, exclude newer related pages.
	IncludeNewer bool

	// Will lower case all string values and queries to the indices.
	ToLower bool

	Indices IndexConfigs
}

// IndexConfigs holds a set of index configurations.
type IndexConfigs []IndexConfig

// InvertedIndex holds an inverted index, also sometimes named posting list, which
// lists, for every possible search term, the documents that contain that term.
type InvertedIndex struct {
	cfg   Config
	index map[string]map[Keyword][]Document

	minWeight int
	maxWeight int
}

// Document is the interface an indexable document must fulfill.
type Document interface {
	// RelatedKeywords returns a list of keywords for the given index config.
	RelatedKeywords(cfg IndexConfig) ([]Keyword, error)

	// When this document was or will be published.
	PublishDate() time.Time

	// Name is used as an tiebreaker if both Weight and PublishDate are
	// the same.
	Name() string
}

// NewInvertedIndex creates a new, empty index for the given config.
func NewInvertedIndex(cfg Config) *InvertedIndex {
	cfg.Indices = append(IndexConfigs(nil), cfg.Indices...)
	idx := &InvertedIndex{index: make(map[string]map[Keyword][]Document), cfg: cfg}
	for i, conf := range cfg.Indices {
		if cfg.ToLower {
			cfg.Indices[i].ToLower = true
		}
		idx.index[conf.Name] = make(map[Keyword][]Document)
		idx.minWeight = min(idx.minWeight, conf.Weight)
		idx.maxWeight = max(idx.maxWeight, conf.Weight)
	}
	return idx
}

// Add documents to the inverted index.
func (idx *InvertedIndex) Add(docs ...Document) error {
	for _, config := range idx.cfg.Indices {
		if config.Weight == 0 {
			// Disabled
			continue
		}
		setm := idx.index[config.Name]

		for _, doc := range docs {
			keywords, err := doc.RelatedKeywords(config)
			if err != nil {
				return err
			}
			for _, keyword := range keywords {
				setm[keyword] = append(setm[keyword], doc)
			}
		}
	}
	return nil
}

// SearchDoc finds the documents matching any of the keywords of doc in the
// given indices, all indices if none given. The result is ordered by rank,
// best first, and never contains doc itself.
func (idx *InvertedIndex) SearchDoc(doc Document, indices ...string) ([]Document, error) {
	var queries []queryElement
	for _, cfg := range idx.cfg.Indices {
		if len(indices) > 0 && !contains(indices, cfg.Name) {
			continue
		}
		keywords, err := doc.RelatedKeywords(cfg)
		if err != nil {
			return nil, err
		}
		queries = append(queries, queryElement{Index: cfg.Name, Keywords: keywords})
	}
	return idx.search(doc, queries), nil
}

type queryElement struct {
	Index    string
	Keywords []Keyword
}

type rank struct {
	Doc     Document
	Weight  int
	Matches int
}

func (r *rank) addWeight(w int) {
	r.Weight += w
	r.Matches++
}

type ranks []*rank

func (r ranks) Len() int      { return len(r) }
func (r ranks) Swap(i, j int) { r[i], r[j] = r[j], r[i] }
func (r ranks) Less(i, j int) bool {
	if r[i].Weight == r[j].Weight {
		if r[i].Doc.PublishDate().Equal(r[j].Doc.PublishDate()) {
			return r[i].Doc.Name() < r[j].Doc.Name()
		}
		return r[i].Doc.PublishDate().After(r[j].Doc.PublishDate())
	}
	return r[i].Weight > r[j].Weight
}

func (idx *InvertedIndex) search(self Document, queries []queryElement) []Document {
	matchm := make(map[Document]*rank)
	upperDate := self.PublishDate()
	applyDateFilter := !idx.cfg.IncludeNewer && !upperDate.IsZero()

	for _, query := range queries {
		setm, found := idx.index[query.Index]
		if !found {
			continue
		}
		cfg, _ := idx.getIndexCfg(query.Index)
		for _, kw := range query.Keywords {
			for _, doc := range setm[kw] {
				if doc == self {
					continue
				}
				if applyDateFilter && doc.PublishDate().After(upperDate) {
					continue
				}
				r, found := matchm[doc]
				if !found {
					r = &rank{Doc: doc}
					matchm[doc] = r
				}
				r.addWeight(cfg.Weight)
			}
		}
	}

	matches := make(ranks, 0, len(matchm))
	for _, r := range matchm {
		avgWeight := r.Weight / r.Matches
		weight := norm(avgWeight, idx.minWeight, idx.maxWeight)
		threshold := idx.cfg.Threshold / r.Matches
		if weight >= threshold {
			matches = append(matches, r)
		}
	}
	sort.Stable(matches)

	docs := make([]Document, len(matches))
	for i, m := range matches {
		docs[i] = m.Doc
	}
	return docs
}

func (idx *InvertedIndex) getIndexCfg(name string) (IndexConfig, bool) {
	for _, conf := range idx.cfg.Indices {
		if conf.Name == name {
			return conf, true
		}
	}
	return IndexConfig{}, false
}

// norm normalizes num to a number between 0 and 100.
func norm(num, min, max int) int {
	if min > max {
		panic("min > max")
	}
	if min == max {
		return 100
	}
	return int(math.Floor((float64(num-min) / float64(max-min) * 100) + 0.5))
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// ToKeywords returns a Keyword slice of the given input.
func (cfg IndexConfig) ToKeywords(v any) ([]Keyword, error) {
	var (
		keywords []Keyword
		toLower  = cfg.ToLower
	)
	switch vv := v.(type) {
	case string:
		if toLower {
			vv = strings.ToLower(vv)
		}
		keywords = append(keywords, StringKeyword(vv))
	case []string:
		if toLower {
			vc := make([]string, len(vv))
			for i, s := range vv {
				vc[i] = strings.ToLower(s)
			}
			vv = vc
		}
		keywords = append(keywords, StringsToKeywords(vv...)...)
	case time.Time:
		if vv.IsZero() {
			return keywords, nil
		}
		layout := "2006"
		if cfg.Pattern != "" {
			layout = cfg.Pattern
		}
		keywords = append(keywords, StringKeyword(vv.Format(layout)))
	case nil:
		return keywords, nil
	default:
		return keywords, fmt.Errorf("indexing currently not supported for index %q and type %T", cfg.Name, vv)
	}

	return keywords, nil
}

// StringKeyword is a string search keyword.
type StringKeyword string

func (s StringKeyword) String() string {
	return string(s)
}

// StringsToKeywords converts the given slice of strings to a slice of Keyword.
func StringsToKeywords(s ...string) []Keyword {
	kw := make([]Keyword, len(s))

	for i := 0; i < len(s); i++ {
		kw[i] = StringKeyword(s[i])
	}

	return kw
}
