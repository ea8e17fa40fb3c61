package minifiers

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/tdewolff/minify/v2/html"

	"github.com/wanli28/ConnectionKit/config"
)

type minifyConfig struct {
	// Whether to minify the published output.
	MinifyOutput bool

	DisableHTML bool

	Tdewolff tdewolffConfig
}

type tdewolffConfig struct {
	HTML html.Minifier
}

var defaultTdewolffConfig = tdewolffConfig{
	HTML: html.Minifier{
		KeepDocumentTags:        true,
		KeepConditionalComments: true,
		KeepEndTags:             true,
		KeepDefaultAttrVals:     true,
		KeepWhitespace:          false,
	},
}

var defaultConfig = minifyConfig{
	Tdewolff: defaultTdewolffConfig,
}

func decodeConfig(cfg config.Provider) (conf minifyConfig, err error) {
	conf = defaultConfig

	m := cfg.GetParams("minify")
	if m == nil {
		return
	}

	if err = mapstructure.WeakDecode(m, &conf); err != nil {
		return conf, fmt.Errorf("failed to decode minify config: %w", err)
	}
	return
}
