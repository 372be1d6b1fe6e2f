package blog

import "strings"

const ellipsis = "..."

// Summarize derives a bounded excerpt from an issue body for use in
// listings. Markdown structure is stripped to plain text: heading markers
// are removed, image lines and code fences (with their fenced content) are
// dropped, blank lines are skipped. At most maxLines lines are kept and
// each kept line is truncated to maxLen runes with an ellipsis appended.
// Deterministic; an empty body yields a nil slice.
func Summarize(body string, maxLines, maxLen int) []string {
	if body == "" || maxLines <= 0 || maxLen <= 0 {
		return nil
	}

	var out []string
	inFence := false

	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence || line == "" {
			continue
		}
		if strings.HasPrefix(line, "!") {
			continue
		}
		if strings.HasPrefix(line, "#") {
			line = strings.TrimSpace(strings.TrimLeft(line, "#"))
			if line == "" {
				continue
			}
		}

		out = append(out, truncateLine(line, maxLen))
		if len(out) == maxLines {
			break
		}
	}

	return out
}

func truncateLine(line string, maxLen int) string {
	runes := []rune(line)
	if len(runes) <= maxLen {
		return line
	}
	return string(runes[:maxLen]) + ellipsis
}
