package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/wanli28/ConnectionKit/common/maps"
	"github.com/wanli28/ConnectionKit/related"
)

// SiteConfig holds the settings the site tree reads.
type SiteConfig struct {
	// The language used to collate titles, e.g. "en" or "de".
	LanguageCode string

	// Apply title casing to titles of new pages.
	TitleCase bool

	// "ap", "chicago" or "go". See helpers.GetTitleFunc.
	TitleCaseStyle string

	Pages    PagesConfig
	Index    IndexConfig
	Pagelets PageletsConfig
	Publish  PublishConfig
	Related  related.Config
}

// PagesConfig holds the defaults given to new pages.
type PagesConfig struct {
	DefaultSortMode   string
	IncludeInIndexes  bool
	IncludeInSiteMenu bool
	SidebarChangeable bool
}

// IndexConfig holds the defaults of collection indexes.
type IndexConfig struct {
	// Default summary truncation, in runes.
	SummaryLength int

	// Default cap on index items. 0 means unbounded.
	MaxItems int
}

// PageletsConfig configures pagelet rendering defaults.
type PageletsConfig struct {
	ShowBorder bool
}

// PublishConfig configures the publish pass.
type PublishConfig struct {
	// Number of concurrent regenerations. 0 means GetNumWorkerMultiplier.
	Workers int
}

// DefaultSiteParams returns the default site settings as params.
func DefaultSiteParams() maps.Params {
	return maps.Params{
		"languagecode":   "en",
		"titlecase":      false,
		"titlecasestyle": "ap",
		"pages": maps.Params{
			"defaultsortmode":   "manual",
			"includeinindexes":  true,
			"includeinsitemenu": false,
			"sidebarchangeable": true,
		},
		"index": maps.Params{
			"summarylength": 70,
			"maxitems":      0,
		},
		"pagelets": maps.Params{
			"showborder": true,
		},
		"publish": maps.Params{
			"workers": 0,
		},
		"related": maps.Params{
			"threshold":    80,
			"includenewer": false,
			"tolower":      true,
			"indices": []any{
				maps.Params{"name": "keywords", "weight": 100},
				maps.Params{"name": "date", "weight": 10, "pattern": "2006"},
			},
		},
	}
}

// DefaultSiteConfig is the SiteConfig decoded from DefaultSiteParams.
func DefaultSiteConfig() SiteConfig {
	conf, err := decodeSiteConfig(DefaultSiteParams())
	if err != nil {
		panic(fmt.Sprintf("BUG: invalid default site config: %s", err))
	}
	return conf
}

// DecodeSiteConfig decodes the site settings in cfg.
func DecodeSiteConfig(cfg Provider) (SiteConfig, error) {
	m := maps.Params{}
	for _, key := range []string{"languageCode", "titleCase", "titleCaseStyle"} {
		if cfg.IsSet(key) {
			m[strings.ToLower(key)] = cfg.Get(key)
		}
	}
	for _, key := range []string{"pages", "index", "pagelets", "publish", "related"} {
		if p := cfg.GetParams(key); p != nil {
			// Copy, the defaults below must not leak into cfg.
			section := maps.Params{}
			section.Set(p)
			m[key] = section
		}
	}
	m.SetDefaults(DefaultSiteParams())

	return decodeSiteConfig(m)
}

func decodeSiteConfig(m maps.Params) (SiteConfig, error) {
	var conf SiteConfig
	if err := mapstructure.WeakDecode(m, &conf); err != nil {
		return conf, fmt.Errorf("failed to decode site config: %w", err)
	}
	if conf.Index.SummaryLength < 0 {
		return conf, fmt.Errorf("index.summaryLength must not be negative, got %d", conf.Index.SummaryLength)
	}
	if conf.Index.MaxItems < 0 {
		return conf, fmt.Errorf("index.maxItems must not be negative, got %d", conf.Index.MaxItems)
	}
	if conf.Related.Threshold < 0 || conf.Related.Threshold > 100 {
		return conf, fmt.Errorf("related.threshold must be between 0 and 100, got %d", conf.Related.Threshold)
	}
	if conf.Publish.Workers <= 0 {
		conf.Publish.Workers = GetNumWorkerMultiplier()
	}
	return conf, nil
}
