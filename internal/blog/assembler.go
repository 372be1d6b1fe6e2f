package blog

import (
	"fmt"
	"strings"
)

// Sections carries every rendered fragment of the index document. Empty
// fragments are skipped without leaving stray separators.
type Sections struct {
	Header      string
	Top         string
	Recent      string
	CategoryTOC string
	Categories  string
	Todo        string
	Friends     string
	About       string
	Footer      string
}

// Assemble concatenates the section fragments in the fixed document order
// with a blank line between sections. The result replaces the previous
// document wholesale; writing it is the pipeline's concern.
func Assemble(s Sections) string {
	ordered := []string{
		s.Header,
		s.Top,
		s.Recent,
		s.CategoryTOC,
		s.Categories,
		s.Todo,
		s.Friends,
		s.About,
		s.Footer,
	}

	var parts []string
	for _, fragment := range ordered {
		fragment = strings.TrimRight(fragment, "\n")
		if fragment == "" {
			continue
		}
		parts = append(parts, fragment)
	}

	return strings.Join(parts, "\n\n") + "\n"
}

// Header renders the fixed intro block of the index document.
func Header(repo, feedPath string) string {
	var sb strings.Builder
	sb.WriteString("## Gitblog\n")
	sb.WriteString("My personal blog using issues and GitHub Actions\n")
	fmt.Fprintf(&sb, "[RSS Feed](https://raw.githubusercontent.com/%s/master/%s)\n", repo, feedPath)
	return sb.String()
}
