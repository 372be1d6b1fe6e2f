package blog

import (
	"fmt"
	"strings"

	"github.com/gorilla/feeds"

	"github.com/bingdu748/gitblog/internal/models"
)

// SiteMeta identifies the blog for feed generation.
type SiteMeta struct {
	Title       string
	Link        string
	Description string
	Author      string
}

// FeedOptions control which items enter the feed and how their description
// is derived.
type FeedOptions struct {
	FullContent      bool
	MaxSummaryLines  int
	MaxSummaryLength int
}

// BuildFeed renders the given issues (already newest-first from the
// classifier) into an RSS 2.0 document. Entries missing a title are skipped
// with a recorded warning; the feed itself is never aborted.
func BuildFeed(items []models.IssueRecord, site SiteMeta, opts FeedOptions) (string, []string, error) {
	feed := &feeds.Feed{
		Title:       site.Title,
		Link:        &feeds.Link{Href: site.Link},
		Description: site.Description,
	}
	if site.Author != "" {
		feed.Author = &feeds.Author{Name: site.Author}
	}

	var warnings []string
	for _, is := range items {
		if is.Title == "" {
			warnings = append(warnings, fmt.Sprintf("feed entry for issue #%d skipped: missing title", is.Number))
			continue
		}
		// Created stays zero: the RSS pubDate takes the first non-zero of
		// (Created, Updated), and entries are stamped with the update time.
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          is.URL,
			Title:       is.Title,
			Link:        &feeds.Link{Href: is.URL},
			Description: feedDescription(is.Body, opts),
			Updated:     is.UpdatedAt,
		})
		if len(feed.Items) == 1 {
			// lastBuildDate follows the newest entry, keeping the output a
			// pure function of the input set.
			feed.Updated = is.UpdatedAt
		}
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", warnings, fmt.Errorf("failed to render feed: %w", err)
	}
	return rss, warnings, nil
}

func feedDescription(body string, opts FeedOptions) string {
	if opts.FullContent {
		return body
	}
	return strings.Join(Summarize(body, opts.MaxSummaryLines, opts.MaxSummaryLength), "\n")
}
