package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/wanli28/ConnectionKit/parser/metadecoders"
)

var (
	ValidConfigFileExtensions = []string{"toml", "yaml", "yml"}
)

func loadConfigFromFile(fs afero.Fs, filename string) (map[string]any, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !slices.Contains(ValidConfigFileExtensions, ext) {
		return nil, fmt.Errorf("config file %q: format must be one of %v", filename, ValidConfigFileExtensions)
	}
	m, err := metadecoders.Default.UnmarshalFileToMap(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", filename, err)
	}
	return m, nil
}

// FromFile loads the configuration from the given filename.
func FromFile(fs afero.Fs, filename string) (Provider, error) {
	m, err := loadConfigFromFile(fs, filename)
	if err != nil {
		return nil, err
	}
	return NewFrom(m), nil
}

// LoadConfig loads filename, if set, and fills in the default site settings
// for every key the file leaves out.
func LoadConfig(fs afero.Fs, filename string) (Provider, error) {
	var cfg Provider
	if filename == "" {
		cfg = New()
	} else {
		var err error
		if cfg, err = FromFile(fs, filename); err != nil {
			return nil, err
		}
	}
	cfg.SetDefaults(DefaultSiteParams())
	return cfg, nil
}
