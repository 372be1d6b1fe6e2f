package blog

import (
	"regexp"
	"strings"

	"github.com/bingdu748/gitblog/internal/models"
)

var checkboxLine = regexp.MustCompile(`^\s*[-*+]\s+\[([ xX])\]\s+(.+)$`)

// ParseTodo extracts the checklist from a TODO issue body. Items keep the
// body's original order and their checked state; non-checkbox lines are
// ignored.
func ParseTodo(is models.IssueRecord) models.TodoList {
	list := models.TodoList{
		Title: is.Title,
		URL:   is.URL,
	}

	for _, line := range strings.Split(is.Body, "\n") {
		m := checkboxLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		list.Items = append(list.Items, models.TodoItem{
			Text: strings.TrimSpace(m[2]),
			Done: m[1] == "x" || m[1] == "X",
		})
	}

	return list
}
