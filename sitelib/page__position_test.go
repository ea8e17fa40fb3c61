package sitelib

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanli28/ConnectionKit/resources/page"
)

func TestPrevNextPage(t *testing.T) {
	s := newTestSite(t)
	root := s.Root()
	a := newChild(t, root, "A")
	a1 := newChild(t, a, "A1")
	a2 := newChild(t, a, "A2")
	a21 := newChild(t, a2, "A21")
	b := newChild(t, root, "B")

	order := []*Page{root, a, a1, a2, a21, b}
	for i, p := range order {
		if i == 0 {
			assert.Nil(t, p.PrevPage())
		} else {
			assert.Equal(t, order[i-1], p.PrevPage(), p.TitleText())
		}
		if i == len(order)-1 {
			assert.Nil(t, p.NextPage())
		} else {
			assert.Equal(t, order[i+1], p.NextPage(), p.TitleText())
		}
	}

	assert.Equal(t, titlesOf(order), titlesOf(s.AllPages()))
}

func TestPrevNextPageFollowSortMode(t *testing.T) {
	s := newTestSite(t)
	root := s.Root()
	b := newChild(t, root, "B")
	a := newChild(t, root, "A")

	assert.Equal(t, a, b.NextPage())

	root.SetSortMode(page.Alphabetical)
	assert.Equal(t, b, a.NextPage())
	assert.Equal(t, root, a.PrevPage())
	assert.Nil(t, b.NextPage())
}
