package blog

import (
	"fmt"
	"strings"

	"github.com/bingdu748/gitblog/internal/models"
)

// Friend-link micro-format: three labeled lines per entry, entries separated
// by blank lines. The original format uses Chinese keys with a fullwidth
// colon; the ASCII colon is accepted too.
//
//	名字：A
//	链接：http://a.com
//	描述：d
const (
	friendKeyName = "名字"
	friendKeyURL  = "链接"
	friendKeyDesc = "描述"
)

// ParseFriendLinks parses every entry found in one Friends issue body.
// Entries missing any of the three required fields are dropped with a
// warning; parsing never fails.
func ParseFriendLinks(body string) ([]models.FriendLink, []string) {
	var links []models.FriendLink
	var warnings []string

	for _, block := range splitBlocks(body) {
		link, ok := parseFriendBlock(block)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("malformed friend-link entry dropped: %q", strings.Join(block, " / ")))
			continue
		}
		links = append(links, link)
	}

	return links, warnings
}

// splitBlocks groups the body's non-empty lines into blank-line-separated
// blocks.
func splitBlocks(body string) [][]string {
	var blocks [][]string
	var current []string

	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func parseFriendBlock(lines []string) (models.FriendLink, bool) {
	fields := make(map[string]string, 3)
	for _, line := range lines {
		key, value, ok := splitFriendLine(line)
		if !ok {
			continue
		}
		fields[key] = value
	}

	link := models.FriendLink{
		Name:        fields[friendKeyName],
		URL:         fields[friendKeyURL],
		Description: fields[friendKeyDesc],
	}
	if link.Name == "" || link.URL == "" || link.Description == "" {
		return models.FriendLink{}, false
	}
	return link, true
}

func splitFriendLine(line string) (key, value string, ok bool) {
	for _, sep := range []string{"：", ":"} {
		if k, v, found := strings.Cut(line, sep); found {
			return strings.TrimSpace(k), strings.TrimSpace(v), true
		}
	}
	return "", "", false
}
