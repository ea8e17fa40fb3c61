// Package markup provides page bodies written in Markdown.
package markup

import (
	"os"
	"path"

	"github.com/kyokomi/emoji/v2"
	"github.com/spf13/afero"

	"github.com/wanli28/ConnectionKit/common/loggers"
	"github.com/wanli28/ConnectionKit/helpers"
	"github.com/wanli28/ConnectionKit/markup/goldmark"
	"github.com/wanli28/ConnectionKit/markup/markup_config"
	"github.com/wanli28/ConnectionKit/sitelib"
)

var _ sitelib.ContentProvider = (*ContentProvider)(nil)

// ContentProvider reads the body of a page from "<ContentDir>/<page id>.md"
// and renders it with Goldmark. Pages without a file have an empty body.
type ContentProvider struct {
	fs    afero.Fs
	dir   string
	emoji bool
	log   loggers.Logger

	converter *goldmark.Converter
}

// NewContentProvider creates a ContentProvider reading from fs.
func NewContentProvider(fs afero.Fs, cfg markup_config.Config, log loggers.Logger) *ContentProvider {
	if log == nil {
		log = loggers.NewDefault()
	}
	return &ContentProvider{
		fs:        fs,
		dir:       cfg.ContentDir,
		emoji:     cfg.EnableEmoji,
		log:       log,
		converter: goldmark.New(cfg.Goldmark),
	}
}

// Filename returns the file holding the body of the page with the given id.
func (c *ContentProvider) Filename(id sitelib.PageID) string {
	return path.Join(c.dir, string(id)+".md")
}

// BodyHTML returns the rendered body of the page with the given id, with
// ids on its headings. A page without a body file has an empty body.
func (c *ContentProvider) BodyHTML(id sitelib.PageID) (string, error) {
	src, err := afero.ReadFile(c.fs, c.Filename(id))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	if c.emoji {
		src = []byte(emoji.Sprint(string(src)))
	}
	b, err := c.converter.Convert(src)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// BodyText implements sitelib.ContentProvider.
func (c *ContentProvider) BodyText(p *sitelib.Page) string {
	html, err := c.BodyHTML(p.ID())
	if err != nil {
		c.log.Warnf("body of %q: %s", p.ID(), err)
		return ""
	}
	return helpers.StripHTML(html)
}
