package markup_config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/wanli28/ConnectionKit/config"
	"github.com/wanli28/ConnectionKit/markup/goldmark/goldmark_config"
)

type Config struct {
	// Where page bodies are read from, one "<page id>.md" file per page.
	ContentDir string

	// Replace emoji codes like :smile: in page bodies.
	EnableEmoji bool

	// Content renderers
	Goldmark goldmark_config.Config
}

// Decode reads the [markup] section of cfg on top of the defaults.
func Decode(cfg config.Provider) (conf Config, err error) {
	conf = Default

	m := cfg.GetParams("markup")
	if m == nil {
		return
	}

	if err = mapstructure.WeakDecode(m, &conf); err != nil {
		return conf, fmt.Errorf("failed to decode markup config: %w", err)
	}
	return
}

var Default = Config{
	ContentDir: "content",
	Goldmark:   goldmark_config.Default,
}
