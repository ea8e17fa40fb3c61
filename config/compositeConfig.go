package config

import "github.com/wanli28/ConnectionKit/common/maps"

// NewCompositeConfig layers overrides on top of base, e.g. command line
// flags over a site config file. Writes go to overrides only.
func NewCompositeConfig(base, overrides Provider) Provider {
	return &compositeConfig{
		base:      base,
		overrides: overrides,
	}
}

type compositeConfig struct {
	base      Provider
	overrides Provider
}

func (c *compositeConfig) pick(key string) Provider {
	if c.overrides.IsSet(key) {
		return c.overrides
	}
	return c.base
}

func (c *compositeConfig) Get(key string) any {
	if _, ok := c.overrides.Get(key).(maps.Params); ok {
		return c.GetParams(key)
	}
	return c.pick(key).Get(key)
}

func (c *compositeConfig) GetBool(key string) bool     { return c.pick(key).GetBool(key) }
func (c *compositeConfig) GetInt(key string) int       { return c.pick(key).GetInt(key) }
func (c *compositeConfig) GetString(key string) string { return c.pick(key).GetString(key) }

// GetParams merges the section from both layers, overrides winning per key.
func (c *compositeConfig) GetParams(key string) maps.Params {
	over := c.overrides.GetParams(key)
	base := c.base.GetParams(key)
	if over == nil {
		return base
	}
	if base == nil {
		return over
	}
	merged := make(maps.Params)
	merged.Set(deepCopy(base))
	merged.Set(deepCopy(over))
	return merged
}

func (c *compositeConfig) IsSet(key string) bool {
	return c.overrides.IsSet(key) || c.base.IsSet(key)
}

func (c *compositeConfig) Set(key string, value any) {
	c.overrides.Set(key, value)
}

func (c *compositeConfig) SetDefaults(params maps.Params) {
	c.overrides.SetDefaults(params)
}

func deepCopy(p maps.Params) maps.Params {
	c := make(maps.Params, len(p))
	for k, v := range p {
		if pp, ok := v.(maps.Params); ok {
			v = deepCopy(pp)
		}
		c[k] = v
	}
	return c
}
