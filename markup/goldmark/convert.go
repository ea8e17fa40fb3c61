// Package goldmark converts Markdown to HTML with Goldmark.
package goldmark

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/wanli28/ConnectionKit/markup/goldmark/goldmark_config"
)

// Converter renders Markdown page bodies. It is safe for concurrent use.
type Converter struct {
	cfg goldmark_config.Config
	md  goldmark.Markdown
}

// New creates a Converter for the given configuration.
func New(cfg goldmark_config.Config) *Converter {
	return &Converter{cfg: cfg, md: newMarkdown(cfg)}
}

func newMarkdown(cfg goldmark_config.Config) goldmark.Markdown {
	var (
		rendererOptions []renderer.Option
		parserOptions   []parser.Option
		extensions      []goldmark.Extender
	)

	if cfg.Renderer.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if cfg.Renderer.XHTML {
		rendererOptions = append(rendererOptions, html.WithXHTML())
	}
	if cfg.Renderer.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	if cfg.Extensions.Table {
		extensions = append(extensions, extension.Table)
	}
	if cfg.Extensions.Strikethrough {
		extensions = append(extensions, extension.Strikethrough)
	}
	if cfg.Extensions.Linkify {
		extensions = append(extensions, extension.Linkify)
	}
	if cfg.Extensions.TaskList {
		extensions = append(extensions, extension.TaskList)
	}
	if cfg.Extensions.Typographer {
		extensions = append(extensions, extension.Typographer)
	}
	if cfg.Extensions.DefinitionList {
		extensions = append(extensions, extension.DefinitionList)
	}
	if cfg.Extensions.Footnote {
		extensions = append(extensions, extension.Footnote)
	}

	if cfg.Parser.AutoHeadingID {
		parserOptions = append(parserOptions, parser.WithAutoHeadingID())
	}
	if cfg.Parser.Attribute {
		parserOptions = append(parserOptions, parser.WithAttribute())
	}

	return goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}

// Convert renders src to HTML.
func (c *Converter) Convert(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	pctx := parser.NewContext(parser.WithIDs(newIDFactory(c.cfg.Parser.AutoHeadingIDType)))
	if err := c.md.Convert(src, &buf, parser.WithContext(pctx)); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// SanitizeAnchorName returns the heading id s would get.
func (c *Converter) SanitizeAnchorName(s string) string {
	return sanitizeAnchorNameString(s, c.cfg.Parser.AutoHeadingIDType)
}
