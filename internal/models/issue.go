package models

import "time"

// IssueRecord is the normalized representation of one fetched issue.
// Display order is always UpdatedAt descending unless a section defines
// another rule.
type IssueRecord struct {
	Number    int
	Title     string
	Body      string
	Labels    []string
	Author    string
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
	URL       string
	Comments  []Comment
}

// Comment is one issue comment, in insertion order.
type Comment struct {
	Author    string
	Body      string
	CreatedAt time.Time
}

// HasLabel reports whether the issue carries the given label.
// Labels are case-sensitive.
func (r IssueRecord) HasLabel(name string) bool {
	for _, l := range r.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// IsOpen reports whether the issue is in the open state.
func (r IssueRecord) IsOpen() bool {
	return r.State == "open"
}
