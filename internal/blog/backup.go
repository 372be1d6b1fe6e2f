package blog

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	domainErrors "github.com/bingdu748/gitblog/internal/errors"
	"github.com/bingdu748/gitblog/internal/models"
)

// BackupOptions control how a backup file is rendered.
type BackupOptions struct {
	IncludeComments bool
	// Owner restricts saved comments to the blog owner when set, matching
	// the listing filter.
	Owner string
}

// Synchronizer mirrors remote issue content into one local Markdown file per
// issue number. Content is derived purely from the record, so re-running
// over identical input is a no-op.
type Synchronizer struct {
	Dir  string
	Opts BackupOptions
}

// BackupFileName derives the deterministic file name for an issue number.
func BackupFileName(number int) string {
	return fmt.Sprintf("%d.md", number)
}

// RenderBackup produces the canonical backup content for one issue:
// linked title, metadata block, body, and optionally the comments.
func RenderBackup(is models.IssueRecord, opts BackupOptions) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# [%s](%s)\n\n", is.Title, is.URL)
	sb.WriteString("## 元信息\n\n")
	fmt.Fprintf(&sb, "- 创建时间: %s\n", is.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "- 更新时间: %s\n", is.UpdatedAt.Format("2006-01-02 15:04:05"))
	if len(is.Labels) > 0 {
		fmt.Fprintf(&sb, "- 标签: %s\n", strings.Join(is.Labels, ", "))
	}
	sb.WriteString("\n## 内容\n\n")
	if is.Body != "" {
		sb.WriteString(is.Body)
	} else {
		sb.WriteString("(无内容)")
	}
	sb.WriteString("\n")

	if opts.IncludeComments {
		writeComments(&sb, is, opts.Owner)
	}

	return sb.String()
}

func writeComments(sb *strings.Builder, is models.IssueRecord, owner string) {
	wroteHeader := false
	for _, c := range is.Comments {
		if owner != "" && c.Author != owner {
			continue
		}
		if !wroteHeader {
			sb.WriteString("\n## 评论\n")
			wroteHeader = true
		}
		fmt.Fprintf(sb, "\n### 评论 (%s)\n\n", c.CreatedAt.Format("2006-01-02 15:04:05"))
		if c.Body != "" {
			sb.WriteString(c.Body)
		} else {
			sb.WriteString("(无评论内容)")
		}
		sb.WriteString("\n")
	}
}

// Existing scans the backup directory and returns the issue numbers that
// currently have a backup file. A missing directory yields an empty set.
func (s *Synchronizer) Existing() (map[int]struct{}, error) {
	existing := make(map[int]struct{})

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return existing, nil
		}
		return nil, domainErrors.ErrCreateBackupDir.WithError(err).WithContext("dir", s.Dir)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".md") {
			continue
		}
		number, err := strconv.Atoi(strings.TrimSuffix(name, ".md"))
		if err != nil || number <= 0 {
			continue
		}
		existing[number] = struct{}{}
	}

	return existing, nil
}

// Plan stages the sync: content for every fetched issue, plus the numbers
// whose files must go because they are in the existing set but absent from
// the fetch. Pure; no file is touched.
func (s *Synchronizer) Plan(existing map[int]struct{}, fetched []models.IssueRecord) (writes map[int]string, removals []int) {
	writes = make(map[int]string, len(fetched))
	kept := make(map[int]struct{}, len(fetched))
	for _, is := range fetched {
		writes[is.Number] = RenderBackup(is, s.Opts)
		kept[is.Number] = struct{}{}
	}

	for number := range existing {
		if _, ok := kept[number]; !ok {
			removals = append(removals, number)
		}
	}
	return writes, removals
}

// Commit applies a staged plan to disk. Files whose content already matches
// are left untouched, so a repeated run over identical input reports zero
// writes and zero removals.
func (s *Synchronizer) Commit(writes map[int]string, removals []int) (models.SyncResult, error) {
	result := models.SyncResult{
		Written: make(map[int]struct{}),
		Removed: make(map[int]struct{}),
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return result, domainErrors.ErrCreateBackupDir.WithError(err).WithContext("dir", s.Dir)
	}

	for number, content := range writes {
		path := filepath.Join(s.Dir, BackupFileName(number))
		if current, err := os.ReadFile(path); err == nil && string(current) == content {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return result, domainErrors.ErrWriteBackup.WithError(err).WithContext("path", path)
		}
		result.Written[number] = struct{}{}
	}

	for _, number := range removals {
		path := filepath.Join(s.Dir, BackupFileName(number))
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return result, domainErrors.ErrRemoveBackup.WithError(err).WithContext("path", path)
		}
		result.Removed[number] = struct{}{}
	}

	return result, nil
}

// Sync stages and commits in one step, mirroring the fetched records and
// removing stale files.
func (s *Synchronizer) Sync(existing map[int]struct{}, fetched []models.IssueRecord) (models.SyncResult, error) {
	writes, removals := s.Plan(existing, fetched)
	return s.Commit(writes, removals)
}
