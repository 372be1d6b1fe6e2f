package blog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bingdu748/gitblog/internal/models"
)

func testRenderer() *Renderer {
	return NewRenderer(3, 50, nil)
}

func TestRendererIssueLists(t *testing.T) {
	t.Run("should render the item template with date and summary", func(t *testing.T) {
		is := issue(1, "hello world", day(15))
		is.Body = "first line\nsecond line"

		got := testRenderer().Recent([]models.IssueRecord{is})

		assert.Contains(t, got, "## 最近更新\n")
		assert.Contains(t, got, "- [hello world](https://github.com/me/blog/issues/1)--2024-01-15\n")
		assert.Contains(t, got, "  - first line\n")
		assert.Contains(t, got, "  - second line\n")
	})

	t.Run("should render nothing for an empty list", func(t *testing.T) {
		r := testRenderer()
		assert.Empty(t, r.Recent(nil))
		assert.Empty(t, r.Top(nil))
		assert.Empty(t, r.CategoryTOC(nil))
		assert.Empty(t, r.Todo(nil))
		assert.Empty(t, r.Friends(nil))
		assert.Empty(t, r.About(nil))
	})

	t.Run("should use the injected link function", func(t *testing.T) {
		r := NewRenderer(3, 50, func(is models.IssueRecord) string {
			return "https://example.com/posts/42"
		})

		got := r.Top([]models.IssueRecord{issue(42, "pinned", day(1))})

		assert.Contains(t, got, "(https://example.com/posts/42)")
	})
}

func TestRendererCategories(t *testing.T) {
	t.Run("should link anchors in the toc", func(t *testing.T) {
		got := testRenderer().CategoryTOC([]models.Category{
			{Name: "Go Notes", Issues: []models.IssueRecord{issue(1, "a", day(1))}},
		})

		assert.Contains(t, got, "## 分类\n")
		assert.Contains(t, got, "- [Go Notes](#go-notes) (1)\n")
	})

	t.Run("should wrap a collapsed category in a disclosure block", func(t *testing.T) {
		c := models.Category{
			Name:      "Tech",
			Issues:    []models.IssueRecord{issue(1, "a", day(1)), issue(2, "b", day(2))},
			Collapsed: true,
		}

		got := testRenderer().Categories([]models.Category{c})

		assert.Contains(t, got, "## Tech\n")
		assert.Contains(t, got, "<details><summary>Tech (2)</summary>")
		assert.Contains(t, got, "</details>")
	})

	t.Run("should leave a small category expanded", func(t *testing.T) {
		c := models.Category{Name: "Tech", Issues: []models.IssueRecord{issue(1, "a", day(1))}}

		got := testRenderer().Categories([]models.Category{c})

		assert.NotContains(t, got, "<details>")
	})
}

func TestRendererTodo(t *testing.T) {
	t.Run("should render counts and checkbox states", func(t *testing.T) {
		list := models.TodoList{
			Title: "plans",
			URL:   "https://github.com/me/blog/issues/9",
			Items: []models.TodoItem{
				{Text: "write", Done: true},
				{Text: "read", Done: false},
				{Text: "run", Done: false},
			},
		}

		got := testRenderer().Todo([]models.TodoList{list})

		assert.Contains(t, got, "## TODO\n")
		assert.Contains(t, got, "TODO list from [plans](https://github.com/me/blog/issues/9)--2 jobs to do--1 jobs done\n")
		assert.Contains(t, got, "- [x] write\n")
		assert.Contains(t, got, "- [ ] read\n")
	})

	t.Run("should mark a fully done list", func(t *testing.T) {
		list := models.TodoList{
			Title: "plans",
			URL:   "u",
			Items: []models.TodoItem{{Text: "write", Done: true}},
		}

		got := testRenderer().Todo([]models.TodoList{list})

		assert.Contains(t, got, "TODO list from [plans](u) all done\n")
	})
}

func TestRendererFriends(t *testing.T) {
	got := testRenderer().Friends([]models.FriendLink{
		{Name: "A", URL: "http://a.com", Description: "d"},
	})

	assert.Contains(t, got, "## 友情链接\n")
	assert.Contains(t, got, "<details><summary>友情链接 (1)</summary>")
	assert.Contains(t, got, "- [A](http://a.com) d\n")
	assert.Contains(t, got, "</details>")
}

func TestRendererAbout(t *testing.T) {
	is := issue(5, "about me", day(1))
	is.Body = "I write Go."

	got := testRenderer().About(&is)

	require.True(t, strings.HasPrefix(got, "## [About](https://github.com/me/blog/issues/1)\n"))
	assert.Contains(t, got, "I write Go.\n")
}

func TestAnchorID(t *testing.T) {
	assert.Equal(t, "go-notes", anchorID("Go Notes"))
	assert.Equal(t, "tech", anchorID("Tech"))
}
