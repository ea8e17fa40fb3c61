package sitelib

import (
	"fmt"
	"strings"

	radix "github.com/armon/go-radix"
	"github.com/gobwas/glob"
)

// contentMap indexes the pages of a site by path, e.g. "/blog/first-post".
// It is rebuilt lazily after the tree shape or a slug changed.
type contentMap struct {
	gen   uint64
	built bool

	tree  *radix.Tree
	paths map[PageID]string
}

func newContentMap() *contentMap {
	return &contentMap{tree: radix.New(), paths: make(map[PageID]string)}
}

func (m *contentMap) ensure(s *Site) {
	if m.built && m.gen == s.structureGen {
		return
	}
	m.tree = radix.New()
	m.paths = make(map[PageID]string, len(s.pages))
	m.add(s.root, "/")
	m.gen = s.structureGen
	m.built = true
}

func (m *contentMap) add(p *Page, path string) {
	m.tree.Insert(path, p)
	m.paths[p.id] = path

	prefix := path
	if prefix != "/" {
		prefix += "/"
	}
	// Siblings sharing a slug get a numeric suffix in manual order.
	taken := make(map[string]bool)
	for _, c := range p.Children() {
		slug := c.slug
		if slug == "" {
			slug = "page"
		}
		candidate := slug
		for i := 2; taken[candidate]; i++ {
			candidate = fmt.Sprintf("%s-%d", slug, i)
		}
		taken[candidate] = true
		m.add(c, prefix+candidate)
	}
}

func (m *contentMap) pathOf(p *Page) string {
	m.ensure(p.s)
	return m.paths[p.id]
}

func normalizePath(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return "/"
	}
	return "/" + path
}

// GetPage returns the page at the given path. Leading and trailing slashes
// are optional.
func (s *Site) GetPage(path string) (*Page, bool) {
	s.contentMap.ensure(s)
	v, found := s.contentMap.tree.Get(normalizePath(path))
	if !found {
		return nil, false
	}
	return v.(*Page), true
}

// PagesBelow returns the pages at and below path, ordered by path.
func (s *Site) PagesBelow(path string) []*Page {
	s.contentMap.ensure(s)
	path = normalizePath(path)

	var pages []*Page
	collect := func(key string, v any) bool {
		pages = append(pages, v.(*Page))
		return false
	}
	if path == "/" {
		s.contentMap.tree.Walk(collect)
		return pages
	}
	if v, found := s.contentMap.tree.Get(path); found {
		pages = append(pages, v.(*Page))
	}
	s.contentMap.tree.WalkPrefix(path+"/", collect)
	return pages
}

// Match returns the pages whose path matches the glob pattern, ordered by
// path. A "*" does not match across "/".
func (s *Site) Match(pattern string) ([]*Page, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", pattern, err)
	}
	s.contentMap.ensure(s)

	var pages []*Page
	s.contentMap.tree.Walk(func(key string, v any) bool {
		if g.Match(key) {
			pages = append(pages, v.(*Page))
		}
		return false
	})
	return pages, nil
}
