package sitelib

import (
	"testing"
	"time"

	"github.com/bep/clocks"
	"github.com/stretchr/testify/require"

	"github.com/wanli28/ConnectionKit/common/loggers"
	"github.com/wanli28/ConnectionKit/config"
	"github.com/wanli28/ConnectionKit/deps"
)

var testStart = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type testContent map[PageID]string

func (c testContent) BodyText(p *Page) string {
	return c[p.ID()]
}

type testSiteOptions struct {
	settings map[string]any
	content  ContentProvider
	removed  func(p *Page)
}

func newTestSite(t testing.TB) *Site {
	return newTestSiteWith(t, testSiteOptions{})
}

func newTestSiteWith(t testing.TB, opts testSiteOptions) *Site {
	t.Helper()
	s, err := NewSite(SiteCfg{
		DepsCfg:       newTestSiteDepsCfg(opts),
		Content:       opts.content,
		OnPageRemoved: opts.removed,
		RootTitle:     "Home",
	})
	require.NoError(t, err)
	return s
}

func newTestSiteDepsCfg(opts testSiteOptions) deps.DepsCfg {
	cfg := config.New()
	for k, v := range opts.settings {
		cfg.Set(k, v)
	}
	return deps.DepsCfg{
		Logger: loggers.NewDiscardLogger(),
		Cfg:    cfg,
		Clock:  clocks.Start(testStart),
	}
}

func newChild(t testing.TB, parent *Page, title string) *Page {
	t.Helper()
	p, err := parent.NewChild(title, parent.children.Len())
	require.NoError(t, err)
	return p
}

func newCollection(t testing.TB, parent *Page, title string) *Page {
	t.Helper()
	p := newChild(t, parent, title)
	p.SetIsCollection(true)
	return p
}

func titlesOf(pages []*Page) []string {
	titles := make([]string, len(pages))
	for i, p := range pages {
		titles[i] = p.TitleText()
	}
	return titles
}

func pageletTitles(pagelets []*Pagelet) []string {
	titles := make([]string, len(pagelets))
	for i, pl := range pagelets {
		titles[i] = pl.Title()
	}
	return titles
}

func day(d int) time.Time {
	return testStart.AddDate(0, 0, d)
}

// staleAfter clears the tracker, runs fn and returns the titles of the
// pages it made stale.
func staleAfter(s *Site, fn func()) []string {
	s.Tracker().Reset()
	fn()
	var titles []string
	s.Walk(func(p *Page) bool {
		if p.IsStale() {
			titles = append(titles, p.TitleText())
		}
		return true
	})
	return titles
}
