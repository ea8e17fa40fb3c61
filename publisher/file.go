package publisher

import (
	"context"
	"fmt"
	"path"
	"strconv"

	"github.com/spf13/afero"

	"github.com/wanli28/ConnectionKit/helpers"
	"github.com/wanli28/ConnectionKit/minifiers"
	"github.com/wanli28/ConnectionKit/parser"
	"github.com/wanli28/ConnectionKit/parser/metadecoders"
	"github.com/wanli28/ConnectionKit/sitelib"
)

// BodySource renders page bodies.
type BodySource interface {
	BodyHTML(id sitelib.PageID) (string, error)
}

// FileRegenerator writes a TOML description of each page below Dir, e.g.
// "/blog/first-post" goes to "<Dir>/blog/first-post/index.toml".
type FileRegenerator struct {
	Fs  afero.Fs
	Dir string

	// Adds the rendered body to each artifact if set.
	Bodies BodySource

	// Minifies the HTML fragments if set.
	Minifier *minifiers.Client
}

// TargetPath returns the file the artifact of the page at pagePath goes to.
func (r FileRegenerator) TargetPath(pagePath string) string {
	return path.Join(r.Dir, pagePath, "index.toml")
}

func (r FileRegenerator) Regenerate(ctx context.Context, snap sitelib.PageSnapshot) error {
	if snap.Path == "" {
		return fmt.Errorf("publish %q: page has no path", snap.ID)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	a := newPageArtifact(snap)
	if r.Bodies != nil {
		body, err := r.Bodies.BodyHTML(snap.ID)
		if err != nil {
			return fmt.Errorf("body of %q: %w", snap.ID, err)
		}
		a.Body = body
	}
	if r.Minifier != nil {
		if err := a.minify(r.Minifier); err != nil {
			return fmt.Errorf("minify %q: %w", snap.Path, err)
		}
	}

	f, err := helpers.OpenFileForWriting(r.Fs, r.TargetPath(snap.Path))
	if err != nil {
		return err
	}
	defer f.Close()

	return parser.InterfaceToConfig(a, metadecoders.TOML, f)
}

type pageArtifact struct {
	ID           string            `toml:"id"`
	Path         string            `toml:"path"`
	Title        string            `toml:"title"`
	MenuTitle    string            `toml:"menuTitle"`
	Keywords     []string          `toml:"keywords,omitempty"`
	Children     []string          `toml:"children,omitempty"`
	Prev         string            `toml:"prev,omitempty"`
	Next         string            `toml:"next,omitempty"`
	Menu         []string          `toml:"menu,omitempty"`
	FeedEligible bool              `toml:"feedEligible"`
	Comments     bool              `toml:"comments"`
	Sidebars     []pageletArtifact `toml:"sidebars,omitempty"`
	Callouts     []pageletArtifact `toml:"callouts,omitempty"`
	Index        []indexArtifact   `toml:"index,omitempty"`
	Archives     []archiveArtifact `toml:"archives,omitempty"`
	Body         string            `toml:"body,omitempty"`
}

type pageletArtifact struct {
	Title     string `toml:"title"`
	BodyRef   string `toml:"bodyRef,omitempty"`
	Border    bool   `toml:"border"`
	Inherited bool   `toml:"inherited"`
}

type indexArtifact struct {
	Path        string `toml:"path"`
	Title       string `toml:"title"`
	Summary     string `toml:"summary"`
	SummaryType string `toml:"summaryType"`
	SummaryKey  string `toml:"summaryKey"`
}

type archiveArtifact struct {
	Month string   `toml:"month"`
	Pages []string `toml:"pages"`
}

func newPageArtifact(snap sitelib.PageSnapshot) pageArtifact {
	a := pageArtifact{
		ID:           string(snap.ID),
		Path:         snap.Path,
		Title:        snap.TitleHTML,
		MenuTitle:    snap.MenuTitle,
		Keywords:     snap.Keywords,
		Prev:         string(snap.Prev),
		Next:         string(snap.Next),
		FeedEligible: snap.FeedEligible,
		Comments:     !snap.DisableComments,
	}
	for _, id := range snap.Children {
		a.Children = append(a.Children, string(id))
	}
	for _, ref := range snap.SiteMenu {
		a.Menu = append(a.Menu, ref.Path)
	}
	for _, pl := range snap.Sidebars {
		a.Sidebars = append(a.Sidebars, newPageletArtifact(pl))
	}
	for _, pl := range snap.Callouts {
		a.Callouts = append(a.Callouts, newPageletArtifact(pl))
	}
	for _, item := range snap.IndexItems {
		a.Index = append(a.Index, indexArtifact{
			Path:        item.Path,
			Title:       item.Title,
			Summary:     item.Summary.HTML,
			SummaryType: item.Summary.Variant.String(),
			SummaryKey:  strconv.FormatUint(item.Summary.Key, 16),
		})
	}
	for _, g := range snap.Archives {
		month := archiveArtifact{Month: g.Key}
		for _, ref := range g.Pages {
			month.Pages = append(month.Pages, ref.Path)
		}
		a.Archives = append(a.Archives, month)
	}
	return a
}

func (a *pageArtifact) minify(m *minifiers.Client) error {
	var err error
	if a.Title, err = m.HTML(a.Title); err != nil {
		return err
	}
	if a.Body, err = m.HTML(a.Body); err != nil {
		return err
	}
	for i := range a.Index {
		if a.Index[i].Summary, err = m.HTML(a.Index[i].Summary); err != nil {
			return err
		}
	}
	return nil
}

func newPageletArtifact(pl sitelib.PageletSnapshot) pageletArtifact {
	return pageletArtifact{
		Title:     pl.Title,
		BodyRef:   pl.BodyRef,
		Border:    pl.ShowBorder,
		Inherited: pl.Inherited,
	}
}
