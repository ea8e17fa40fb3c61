package metadecoders

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"github.com/wanli28/ConnectionKit/common/maps"
)

// Decoder provides some configuration options for the decoders.
type Decoder struct{}

// Default is a Decoder in its default configuration.
var Default = Decoder{}

// UnmarshalFileToMap is the same as UnmarshalToMap, but reads the data from
// the given filename.
func (d Decoder) UnmarshalFileToMap(fs afero.Fs, filename string) (map[string]any, error) {
	format := FormatFromString(filename)
	if format == "" {
		return nil, fmt.Errorf("%q is not a valid configuration format", filename)
	}

	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, err
	}
	return d.UnmarshalToMap(data, format)
}

// UnmarshalToMap will unmarshall data in format f into a new map. This is
// what's needed for configuration.
func (d Decoder) UnmarshalToMap(data []byte, f Format) (map[string]any, error) {
	m := make(map[string]any)
	if data == nil {
		return m, nil
	}

	if err := d.UnmarshalTo(data, f, &m); err != nil {
		return nil, err
	}
	maps.PrepareParams(m)

	return m, nil
}

// UnmarshalFileTo reads filename and unmarshals it into v.
func (d Decoder) UnmarshalFileTo(fs afero.Fs, filename string, v any) error {
	format := FormatFromString(filename)
	if format == "" {
		return fmt.Errorf("%q is not a valid data format", filename)
	}
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return err
	}
	return d.UnmarshalTo(data, format, v)
}

// UnmarshalTo unmarshals data in format f into v.
func (d Decoder) UnmarshalTo(data []byte, f Format, v any) error {
	var err error

	switch f {
	case TOML:
		err = toml.Unmarshal(data, v)
	case YAML:
		err = yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unmarshal of format %q is not supported", f)
	}

	if err != nil {
		return fmt.Errorf("unmarshal failed: %w", err)
	}

	return nil
}
