package models

// FriendLink is one entry parsed from the body of an issue labeled Friends.
// All three fields are required; incomplete entries are dropped during
// parsing with a warning.
type FriendLink struct {
	Name        string
	URL         string
	Description string
}

// TodoItem is one checklist line from a TODO issue body, in original order.
type TodoItem struct {
	Text string
	Done bool
}

// TodoList is the parsed checklist of one TODO issue.
type TodoList struct {
	Title string
	URL   string
	Items []TodoItem
}

// DoneCount returns how many items are checked.
func (t TodoList) DoneCount() int {
	n := 0
	for _, it := range t.Items {
		if it.Done {
			n++
		}
	}
	return n
}

// Category groups qualifying issues under one non-reserved label.
// Collapsed is a rendering hint, not a data transformation: the listing is
// wrapped in a disclosure block when the issue count exceeds the configured
// anchor number.
type Category struct {
	Name      string
	Issues    []IssueRecord
	Collapsed bool
}

// Buckets is the classification result for one run. All slices keep the
// ordering rules of their section; About is nil when no About issue exists.
type Buckets struct {
	Recent     []IssueRecord
	Top        []IssueRecord
	Todo       []TodoList
	Friends    []FriendLink
	About      *IssueRecord
	Categories []Category
	Warnings   []string
}

// SyncResult reports which backup files a sync pass wrote and removed.
type SyncResult struct {
	Written map[int]struct{}
	Removed map[int]struct{}
}
