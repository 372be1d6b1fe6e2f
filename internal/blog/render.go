package blog

import (
	"fmt"
	"strings"

	"github.com/bingdu748/gitblog/internal/models"
)

// LinkFunc resolves an issue to its canonical URL. The repository identity
// lives with the caller, so renderers never build URLs themselves.
type LinkFunc func(is models.IssueRecord) string

// Renderer produces the Markdown fragment of each README section. All
// methods are pure and side-effect-free.
type Renderer struct {
	MaxSummaryLines  int
	MaxSummaryLength int
	Link             LinkFunc
}

// NewRenderer builds a renderer with the given summary bounds. A nil link
// function falls back to the URL carried on the record.
func NewRenderer(maxLines, maxLen int, link LinkFunc) *Renderer {
	if link == nil {
		link = func(is models.IssueRecord) string { return is.URL }
	}
	return &Renderer{
		MaxSummaryLines:  maxLines,
		MaxSummaryLength: maxLen,
		Link:             link,
	}
}

// writeItem emits the shared list-item template used by the recent, top and
// category sections: a linked title with the update date, followed by the
// body summary as indented sub-bullets.
func (r *Renderer) writeItem(sb *strings.Builder, is models.IssueRecord) {
	fmt.Fprintf(sb, "- [%s](%s)--%s\n", is.Title, r.Link(is), is.UpdatedAt.Format("2006-01-02"))
	for _, line := range Summarize(is.Body, r.MaxSummaryLines, r.MaxSummaryLength) {
		fmt.Fprintf(sb, "  - %s\n", line)
	}
}

func (r *Renderer) renderIssueList(header string, issues []models.IssueRecord) string {
	if len(issues) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n", header)
	for _, is := range issues {
		r.writeItem(&sb, is)
	}
	return sb.String()
}

// Top renders the pinned-posts section.
func (r *Renderer) Top(issues []models.IssueRecord) string {
	return r.renderIssueList("置顶文章", issues)
}

// Recent renders the recent-updates section.
func (r *Renderer) Recent(issues []models.IssueRecord) string {
	return r.renderIssueList("最近更新", issues)
}

// CategoryTOC renders the category table of contents linking to the section
// anchors below it.
func (r *Renderer) CategoryTOC(categories []models.Category) string {
	if len(categories) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("## 分类\n")
	for _, c := range categories {
		fmt.Fprintf(&sb, "- [%s](#%s) (%d)\n", c.Name, anchorID(c.Name), len(c.Issues))
	}
	return sb.String()
}

// Categories renders every category body in the stable alphabetical order
// produced by the classifier. Collapsed categories wrap their item list in
// a disclosure block with the name and count.
func (r *Renderer) Categories(categories []models.Category) string {
	var parts []string
	for _, c := range categories {
		parts = append(parts, r.category(c))
	}
	return strings.Join(parts, "\n")
}

func (r *Renderer) category(c models.Category) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n", c.Name)
	if c.Collapsed {
		fmt.Fprintf(&sb, "<details><summary>%s (%d)</summary>\n\n", c.Name, len(c.Issues))
	}
	for _, is := range c.Issues {
		r.writeItem(&sb, is)
	}
	if c.Collapsed {
		sb.WriteString("</details>\n")
	}
	return sb.String()
}

// Todo renders every TODO checklist with its done/undone counts, preserving
// each item's checked state from the source body.
func (r *Renderer) Todo(lists []models.TodoList) string {
	if len(lists) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("## TODO\n")
	for _, list := range lists {
		done := list.DoneCount()
		undone := len(list.Items) - done
		if undone == 0 {
			fmt.Fprintf(&sb, "TODO list from [%s](%s) all done\n", list.Title, list.URL)
		} else {
			fmt.Fprintf(&sb, "TODO list from [%s](%s)--%d jobs to do--%d jobs done\n", list.Title, list.URL, undone, done)
		}
		for _, it := range list.Items {
			mark := " "
			if it.Done {
				mark = "x"
			}
			fmt.Fprintf(&sb, "- [%s] %s\n", mark, it.Text)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// Friends renders the friend links inside a disclosure block.
func (r *Renderer) Friends(links []models.FriendLink) string {
	if len(links) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("## 友情链接\n")
	fmt.Fprintf(&sb, "<details><summary>友情链接 (%d)</summary>\n\n", len(links))
	for _, l := range links {
		fmt.Fprintf(&sb, "- [%s](%s) %s\n", l.Name, l.URL, l.Description)
	}
	sb.WriteString("</details>\n")
	return sb.String()
}

// About renders the about block from the single About issue chosen by the
// classifier.
func (r *Renderer) About(is *models.IssueRecord) string {
	if is == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "## [About](%s)\n", r.Link(*is))
	for _, line := range Summarize(is.Body, r.MaxSummaryLines, r.MaxSummaryLength) {
		fmt.Fprintf(&sb, "%s\n", line)
	}
	return sb.String()
}

// anchorID mimics GitHub's heading anchor derivation closely enough for
// same-document links: lowercase, spaces to dashes.
func anchorID(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}
