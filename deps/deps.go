package deps

import (
	"fmt"

	"github.com/bep/clocks"

	"github.com/wanli28/ConnectionKit/common/loggers"
	"github.com/wanli28/ConnectionKit/config"
	"github.com/wanli28/ConnectionKit/langs"
)

// Deps holds dependencies used by many.
// There will be normally only one instance of deps in play
// at a given time, i.e. one per Site being edited.
type Deps struct {
	// The logger to use.
	Log loggers.Logger `json:"-"`

	// The configuration to use
	Cfg config.Provider `json:"-"`

	// The decoded site settings.
	Conf config.SiteConfig

	// The language in use.
	Language *langs.Language

	// The clock stamping page creation and modification.
	Clock clocks.Clock `json:"-"`
}

// DepsCfg contains configuration options that can be used to configure the
// site tree on a global level, i.e. logging etc.
// Nil values will be given default values.
type DepsCfg struct {
	// The Logger to use.
	Logger loggers.Logger

	// The configuration to use.
	Cfg config.Provider

	// The clock to use.
	Clock clocks.Clock
}

// New initializes a Dep struct.
// Defaults are set for nil values.
func New(cfg DepsCfg) (*Deps, error) {
	if cfg.Logger == nil {
		cfg.Logger = loggers.NewDefault()
	}
	if cfg.Cfg == nil {
		cfg.Cfg = config.New()
	}
	if cfg.Clock == nil {
		cfg.Clock = clocks.System()
	}

	conf, err := config.DecodeSiteConfig(cfg.Cfg)
	if err != nil {
		return nil, fmt.Errorf("create deps: %w", err)
	}

	return &Deps{
		Log:      cfg.Logger,
		Cfg:      cfg.Cfg,
		Conf:     conf,
		Language: langs.NewLanguage(conf.LanguageCode),
		Clock:    cfg.Clock,
	}, nil
}
