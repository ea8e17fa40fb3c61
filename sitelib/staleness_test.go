package sitelib

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanli28/ConnectionKit/resources/page"
)

func TestStalenessTracker(t *testing.T) {
	tr := NewStalenessTracker()

	assert.True(t, tr.MarkStale("b"))
	assert.False(t, tr.MarkStale("b"))
	tr.MarkStale("a")
	assert.Equal(t, []PageID{"a", "b"}, tr.Snapshot())
	assert.Equal(t, 2, tr.Len())

	tr.Clear("a")
	assert.False(t, tr.IsStale("a"))
	assert.True(t, tr.IsStale("b"))

	tr.Reset()
	assert.Equal(t, 0, tr.Len())
}

func TestStalenessTrackerConcurrentClear(t *testing.T) {
	tr := NewStalenessTracker()
	ids := []PageID{"a", "b", "c", "d", "e", "f"}
	for _, id := range ids {
		tr.MarkStale(id)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id PageID) {
			defer wg.Done()
			tr.Clear(id)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 0, tr.Len())
}

// blogSite returns a site with the root and the blog collection, each
// listing their children in their index, a folder that is not a
// collection, and one sidebar pagelet on the root.
func blogSite(t *testing.T) (s *Site, blog, post, other, folder, inFolder *Page) {
	s = newTestSite(t)
	blog = newCollection(t, s.Root(), "Blog")
	post = newChild(t, blog, "Post")
	other = newChild(t, blog, "Other")
	folder = newChild(t, s.Root(), "Folder")
	inFolder = newChild(t, folder, "InFolder")
	addPagelet(t, s.Root(), "RootTop", TopSidebar)
	return
}

func TestStaleAfterAddChild(t *testing.T) {
	s, blog, _, _, folder, _ := blogSite(t)

	assert.Equal(t, []string{"Home", "Blog", "Other", "New", "Folder"}, staleAfter(s, func() {
		newChild(t, blog, "New")
	}), "the previous last child and the page after the blog get new neighbours")
	assert.Equal(t, []string{"Folder", "InFolder", "New"}, staleAfter(s, func() {
		newChild(t, folder, "New")
	}))
}

func TestStaleAfterMoveChildToIndex(t *testing.T) {
	s, blog, _, other, _, _ := blogSite(t)

	assert.Equal(t, []string{"Home", "Blog", "Other", "Post", "Folder"}, staleAfter(s, func() {
		require.NoError(t, blog.MoveChildToIndex(other, 0))
	}))
}

func TestStaleAfterSlugChange(t *testing.T) {
	s, blog, post, _, _, _ := blogSite(t)
	second := newChild(t, blog, "Second")
	second.SetSlug("post")
	require.Equal(t, "/blog/post-2", second.Path())

	assert.Equal(t, []string{"Home", "Blog", "Post", "Second"}, staleAfter(s, func() {
		post.SetSlug("first")
	}), "the sibling loses its suffix")
	assert.Equal(t, "/blog/post", second.Path())
}

func TestStaleAfterSiteMenuMembershipChange(t *testing.T) {
	for _, test := range []struct {
		name string
		fn   func(t *testing.T, s *Site, blog, menu *Page)
	}{
		{"remove", func(t *testing.T, s *Site, blog, menu *Page) {
			blog.RemoveChild(menu)
		}},
		{"draft ancestor", func(t *testing.T, s *Site, blog, menu *Page) {
			blog.SetDraft(true)
		}},
		{"reorder", func(t *testing.T, s *Site, blog, menu *Page) {
			require.NoError(t, blog.MoveChildToIndex(menu, 0))
		}},
		{"add", func(t *testing.T, s *Site, blog, menu *Page) {
			p := s.NewPage("Added")
			p.SetIncludeInSiteMenu(true)
			require.NoError(t, blog.AppendChild(p))
		}},
	} {
		t.Run(test.name, func(t *testing.T) {
			s, blog, _, other, _, _ := blogSite(t)
			other.SetIncludeInSiteMenu(true)

			stale := staleAfter(s, func() {
				test.fn(t, s, blog, other)
			})
			assert.Len(t, stale, len(s.AllPages()))
		})
	}
}

func TestStaleAfterTitleChange(t *testing.T) {
	s, _, post, other, _, inFolder := blogSite(t)

	assert.Equal(t, []string{"Home", "Blog", "Changed"}, staleAfter(s, func() {
		post.SetTitleText("Changed")
	}))
	assert.Equal(t, []string{"InFolderChanged"}, staleAfter(s, func() {
		inFolder.SetTitleText("InFolderChanged")
	}))

	other.SetIncludeInIndexes(false)
	assert.Equal(t, []string{"OtherChanged"}, staleAfter(s, func() {
		other.SetTitleText("OtherChanged")
	}))
}

func TestStaleAfterIncludeInIndexesChange(t *testing.T) {
	s, _, post, _, _, _ := blogSite(t)

	assert.Equal(t, []string{"Home", "Blog", "Post"}, staleAfter(s, func() {
		post.SetIncludeInIndexes(false)
	}), "the index listed the post before")
	assert.Equal(t, []string{"Home", "Blog", "Post"}, staleAfter(s, func() {
		post.SetIncludeInIndexes(true)
	}), "the index lists the post after")
}

func TestStaleAfterIndexSettingsChange(t *testing.T) {
	s, blog, _, _, _, _ := blogSite(t)

	assert.Equal(t, []string{"Blog"}, staleAfter(s, func() {
		blog.Index().SetMaxItems(1)
	}))
	assert.Equal(t, []string{"Blog", "Other", "Post", "Folder"}, staleAfter(s, func() {
		blog.SetSortMode(page.Alphabetical)
	}), "the reading order of the children changes")
}

func TestStaleAfterRemove(t *testing.T) {
	s, blog, post, _, folder, inFolder := blogSite(t)

	assert.Equal(t, []string{"Home", "Blog", "Other"}, staleAfter(s, func() {
		blog.RemoveChild(post)
	}))
	assert.Equal(t, []string{"Folder"}, staleAfter(s, func() {
		folder.RemoveChild(inFolder)
	}))
}

func TestStaleAfterMove(t *testing.T) {
	s, _, post, _, _, _ := blogSite(t)
	news := newCollection(t, s.Root(), "News")

	assert.Equal(t, []string{"Home", "Blog", "Other", "News", "Post"}, staleAfter(s, func() {
		require.NoError(t, news.AddChild(post, 0))
	}))
}

func TestStaleAfterSidebarChange(t *testing.T) {
	s, blog, post, _, folder, _ := blogSite(t)
	folder.SetSidebarChangeable(false)

	assert.Equal(t, []string{"Blog", "Post", "Other"}, staleAfter(s, func() {
		addPagelet(t, blog, "BlogTop", TopSidebar)
	}))

	rootTop := s.Root().Pagelets(TopSidebar)[0]
	assert.Equal(t, []string{"Home", "Blog"}, staleAfter(s, func() {
		rootTop.SetTitle("Renamed")
	}), "the blog shows the root sidebar above its own, its children only the blog's")

	assert.Equal(t, []string{"Folder", "InFolder"}, staleAfter(s, func() {
		folder.SetSidebarChangeable(true)
	}))

	assert.Equal(t, []string{"Post"}, staleAfter(s, func() {
		addPagelet(t, post, "PostCallout", Callout)
	}))
}

func TestStaleAfterSiteMenuChange(t *testing.T) {
	s, _, post, _, _, _ := blogSite(t)

	all := len(s.AllPages())
	staleAfter(s, func() {
		post.SetIncludeInSiteMenu(true)
	})
	assert.Equal(t, all, s.Tracker().Len())

	stale := staleAfter(s, func() {
		post.SetMenuTitle("Menu")
	})
	assert.Len(t, stale, all)
}

func TestMarkStaleRecursive(t *testing.T) {
	s, _, post, _, _, _ := blogSite(t)

	assert.Equal(t, []string{"Home", "Blog", "Post"}, staleAfter(s, func() {
		s.MarkStaleRecursive(post, ReasonContent)
	}))
	assert.Equal(t, []string{"Home", "Blog", "Folder", "InFolder"}, staleAfter(s, func() {
		s.MarkStaleRecursive(s.Root(), ReasonSidebar)
	}))
}

func TestMarkAllStale(t *testing.T) {
	s, _, _, _, _, _ := blogSite(t)
	s.Tracker().Reset()

	s.MarkAllStale()
	assert.Equal(t, s.Len(), s.Tracker().Len())
}

func TestClearDoesNotCascade(t *testing.T) {
	s, blog, post, _, _, _ := blogSite(t)
	staleAfter(s, func() {
		post.SetTitleText("Changed")
	})

	s.Clear(post.ID())
	assert.False(t, post.IsStale())
	assert.True(t, blog.IsStale())
}

func TestStaleSetIsIndependentOfOrder(t *testing.T) {
	edits := []func(blog, post, other, folder *Page){
		func(blog, post, other, folder *Page) { post.SetTitleText("Renamed") },
		func(blog, post, other, folder *Page) { other.SetIncludeInIndexes(false) },
		func(blog, post, other, folder *Page) { blog.Index().SetMaxItems(1) },
		func(blog, post, other, folder *Page) { folder.SetTimestamp(day(3)) },
	}

	run := func(order []int) []string {
		s, blog, post, other, folder, _ := blogSite(t)
		return staleAfter(s, func() {
			for _, i := range order {
				edits[i](blog, post, other, folder)
			}
		})
	}

	want := run([]int{0, 1, 2, 3})
	assert.Equal(t, want, run([]int{3, 2, 1, 0}))
	assert.Equal(t, want, run([]int{1, 3, 0, 2}))
}
