package config

import (
	"github.com/wanli28/ConnectionKit/common/maps"
)

// Provider provides the configuration settings for a site. Keys are case
// insensitive and nested sections are addressed with dots, e.g.
// "index.maxItems".
type Provider interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetParams(key string) maps.Params
	Get(key string) any
	Set(key string, value any)
	SetDefaults(params maps.Params)
	IsSet(key string) bool
}
