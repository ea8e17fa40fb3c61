package metadecoders

import (
	"path/filepath"
	"strings"
)

// Format is a data format the decoders understand.
type Format string

const (
	// TOML is the default format of site configuration and site records.
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatFromString turns formatStr, typically a file extension without any ".",
// into a Format. It returns an empty string for unknown formats.
func FormatFromString(formatStr string) Format {
	formatStr = strings.ToLower(strings.TrimPrefix(formatStr, "."))
	if strings.Contains(formatStr, ".") {
		// Assume a filename
		formatStr = strings.TrimPrefix(filepath.Ext(formatStr), ".")
	}
	switch formatStr {
	case "toml":
		return TOML
	case "yaml", "yml":
		return YAML
	}

	return ""
}
