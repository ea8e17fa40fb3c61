// Package parser writes data in the formats read by parser/metadecoders.
package parser

import (
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"

	"github.com/wanli28/ConnectionKit/parser/metadecoders"
)

// InterfaceToConfig encodes a given input based upon the format and writes
// it to the writer.
func InterfaceToConfig(in any, format metadecoders.Format, w io.Writer) error {
	if in == nil {
		return fmt.Errorf("input was nil")
	}

	switch format {
	case metadecoders.TOML:
		return toml.NewEncoder(w).Encode(in)
	case metadecoders.YAML:
		b, err := yaml.Marshal(in)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
}
