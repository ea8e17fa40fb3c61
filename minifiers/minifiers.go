// Package minifiers minifies the HTML fragments of published pages.
package minifiers

import (
	"io"

	"github.com/tdewolff/minify/v2"

	"github.com/wanli28/ConnectionKit/config"
)

// HTMLType is the media type HTML fragments are minified as.
const HTMLType = "text/html"

// Client wraps a minifier.
type Client struct {
	m *minify.M

	minifyOutput bool
}

// New creates a new Client configured from the [minify] section of cfg.
func New(cfg config.Provider) (*Client, error) {
	conf, err := decodeConfig(cfg)
	if err != nil {
		return nil, err
	}

	m := minify.New()
	m.Add(HTMLType, getMinifier(conf, "html"))

	return &Client{m: m, minifyOutput: conf.MinifyOutput}, nil
}

// MinifyOutput reports whether the config asks for minified output.
func (c *Client) MinifyOutput() bool {
	return c.minifyOutput
}

// HTML minifies the HTML fragment s.
func (c *Client) HTML(s string) (string, error) {
	if s == "" {
		return s, nil
	}
	return c.m.String(HTMLType, s)
}

// getMinifier returns the appropriate minify.Minifier for the MIME
// type suffix s, given the config c.
func getMinifier(c minifyConfig, s string) minify.Minifier {
	switch {
	case s == "html" && !c.DisableHTML:
		return &c.Tdewolff.HTML
	default:
		return noopMinifier{}
	}
}

// noopMinifier implements minify.Minifier, but doesn't minify content. It
// lets minification be disabled for a type without minify returning
// errors for it.
type noopMinifier struct{}

// Minify copies r into w without transformation.
func (m noopMinifier) Minify(_ *minify.M, w io.Writer, r io.Reader, _ map[string]string) error {
	_, err := io.Copy(w, r)
	return err
}
