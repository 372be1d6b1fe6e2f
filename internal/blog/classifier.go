// Package blog implements the aggregation/classification/rendering pipeline
// that turns fetched issue records into the README index, the feed and the
// backup mirror.
package blog

import (
	"sort"
	"strings"

	"github.com/bingdu748/gitblog/internal/config"
	"github.com/bingdu748/gitblog/internal/models"
)

// Options are the classification tunables extracted from the config. Keeping
// them as a plain value makes Classify a pure function of (issues, options).
type Options struct {
	RecentIssueLimit    int
	AnchorNumber        int
	Owner               string
	ClosedIncludeLabels []string
}

// OptionsFromConfig copies the classification tunables out of the config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		RecentIssueLimit:    cfg.RecentIssueLimit,
		AnchorNumber:        cfg.AnchorNumber,
		Owner:               cfg.Owner,
		ClosedIncludeLabels: cfg.ClosedIncludeLabels,
	}
}

var reserved = func() map[string]struct{} {
	m := make(map[string]struct{}, len(config.ReservedLabels))
	for _, l := range config.ReservedLabels {
		m[l] = struct{}{}
	}
	return m
}()

// IsReservedLabel reports whether the label dispatches to a special section
// (Top, TODO, Friends, About) instead of a free-form category.
func IsReservedLabel(name string) bool {
	_, ok := reserved[name]
	return ok
}

// Classify partitions the fetched issues into the named buckets. It is pure:
// the input slice is not mutated and identical input yields identical bucket
// contents and ordering. An issue can land in several buckets; reserved
// labels carry no precedence over each other.
func Classify(issues []models.IssueRecord, opts Options) models.Buckets {
	var b models.Buckets

	qualifying := Qualifying(issues, opts)

	b.Recent = truncate(qualifying, opts.RecentIssueLimit)

	for _, is := range qualifying {
		if is.HasLabel("Top") {
			b.Top = append(b.Top, is)
		}
		if is.HasLabel("TODO") {
			b.Todo = append(b.Todo, ParseTodo(is))
		}
		if is.HasLabel("Friends") {
			links, warnings := ParseFriendLinks(is.Body)
			b.Friends = append(b.Friends, links...)
			b.Warnings = append(b.Warnings, warnings...)
		}
		if is.HasLabel("About") {
			b.About = pickAbout(b.About, is)
		}
	}

	b.Categories = groupCategories(qualifying, opts.AnchorNumber)

	return b
}

// Qualifying returns the issues that pass the listing filter, newest-first.
// The input slice is not mutated.
func Qualifying(issues []models.IssueRecord, opts Options) []models.IssueRecord {
	qualifying := make([]models.IssueRecord, 0, len(issues))
	for _, is := range issues {
		if qualifies(is, opts) {
			qualifying = append(qualifying, is)
		}
	}
	sortByUpdatedDesc(qualifying)
	return qualifying
}

// qualifies applies the listing filter: open issues, plus closed issues
// carrying one of the allow-listed labels. Closed issues outside the
// allow-list stay out of every listing but are still backed up.
func qualifies(is models.IssueRecord, opts Options) bool {
	if opts.Owner != "" && is.Author != opts.Owner {
		return false
	}
	if is.IsOpen() {
		return true
	}
	for _, l := range opts.ClosedIncludeLabels {
		if is.HasLabel(l) {
			return true
		}
	}
	return false
}

// pickAbout keeps the most recently updated About issue, ties broken by the
// highest issue number.
func pickAbout(current *models.IssueRecord, candidate models.IssueRecord) *models.IssueRecord {
	if current == nil {
		c := candidate
		return &c
	}
	if candidate.UpdatedAt.After(current.UpdatedAt) ||
		(candidate.UpdatedAt.Equal(current.UpdatedAt) && candidate.Number > current.Number) {
		c := candidate
		return &c
	}
	return current
}

func groupCategories(qualifying []models.IssueRecord, anchor int) []models.Category {
	byLabel := make(map[string][]models.IssueRecord)
	for _, is := range qualifying {
		for _, l := range is.Labels {
			if IsReservedLabel(l) {
				continue
			}
			byLabel[l] = append(byLabel[l], is)
		}
	}

	names := make([]string, 0, len(byLabel))
	for name := range byLabel {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	categories := make([]models.Category, 0, len(names))
	for _, name := range names {
		issues := byLabel[name]
		sortByUpdatedDesc(issues)
		categories = append(categories, models.Category{
			Name:      name,
			Issues:    issues,
			Collapsed: len(issues) > anchor,
		})
	}
	return categories
}

// sortByUpdatedDesc orders newest-first with the issue number as a stable
// tie-breaker, so runs over identical input never reorder.
func sortByUpdatedDesc(issues []models.IssueRecord) {
	sort.SliceStable(issues, func(i, j int) bool {
		if !issues[i].UpdatedAt.Equal(issues[j].UpdatedAt) {
			return issues[i].UpdatedAt.After(issues[j].UpdatedAt)
		}
		return issues[i].Number > issues[j].Number
	})
}

func truncate(issues []models.IssueRecord, limit int) []models.IssueRecord {
	if limit <= 0 || len(issues) <= limit {
		out := make([]models.IssueRecord, len(issues))
		copy(out, issues)
		return out
	}
	out := make([]models.IssueRecord, limit)
	copy(out, issues[:limit])
	return out
}
