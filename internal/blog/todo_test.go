package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bingdu748/gitblog/internal/models"
)

func TestParseTodo(t *testing.T) {
	t.Run("should keep checkbox items in body order with their state", func(t *testing.T) {
		is := models.IssueRecord{
			Title: "2024 plans",
			URL:   "https://github.com/me/blog/issues/9",
			Body:  "intro line\n- [x] write more\n- [ ] read more\n* [X] exercise\nnot a checkbox",
		}

		list := ParseTodo(is)

		assert.Equal(t, "2024 plans", list.Title)
		assert.Equal(t, "https://github.com/me/blog/issues/9", list.URL)
		require.Len(t, list.Items, 3)
		assert.Equal(t, models.TodoItem{Text: "write more", Done: true}, list.Items[0])
		assert.Equal(t, models.TodoItem{Text: "read more", Done: false}, list.Items[1])
		assert.Equal(t, models.TodoItem{Text: "exercise", Done: true}, list.Items[2])
		assert.Equal(t, 2, list.DoneCount())
	})

	t.Run("should return an empty list for a body without checkboxes", func(t *testing.T) {
		list := ParseTodo(models.IssueRecord{Title: "empty", Body: "just some prose\n\nmore prose"})

		assert.Empty(t, list.Items)
		assert.Equal(t, 0, list.DoneCount())
	})

	t.Run("should accept indented checkboxes", func(t *testing.T) {
		list := ParseTodo(models.IssueRecord{Body: "  - [ ] nested item"})

		require.Len(t, list.Items, 1)
		assert.Equal(t, "nested item", list.Items[0].Text)
	})
}
