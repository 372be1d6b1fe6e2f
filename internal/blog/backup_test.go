package blog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bingdu748/gitblog/internal/models"
)

func backupIssue(number int, title string) models.IssueRecord {
	return models.IssueRecord{
		Number:    number,
		Title:     title,
		Body:      "body of " + title,
		State:     "open",
		CreatedAt: day(1),
		UpdatedAt: day(2),
		URL:       "https://github.com/me/blog/issues/1",
	}
}

func TestBackupFileName(t *testing.T) {
	assert.Equal(t, "12.md", BackupFileName(12))
}

func TestRenderBackup(t *testing.T) {
	t.Run("should render title, metadata and body", func(t *testing.T) {
		is := backupIssue(1, "hello")
		is.Labels = []string{"Tech", "Life"}

		got := RenderBackup(is, BackupOptions{})

		assert.Contains(t, got, "# [hello](https://github.com/me/blog/issues/1)\n")
		assert.Contains(t, got, "## 元信息\n")
		assert.Contains(t, got, "- 标签: Tech, Life\n")
		assert.Contains(t, got, "## 内容\n")
		assert.Contains(t, got, "body of hello")
	})

	t.Run("should mark an empty body", func(t *testing.T) {
		is := backupIssue(1, "empty")
		is.Body = ""

		got := RenderBackup(is, BackupOptions{})

		assert.Contains(t, got, "(无内容)")
	})

	t.Run("should include comments when enabled", func(t *testing.T) {
		is := backupIssue(1, "commented")
		is.Comments = []models.Comment{
			{Author: "me", Body: "a follow-up", CreatedAt: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)},
		}

		got := RenderBackup(is, BackupOptions{IncludeComments: true})

		assert.Contains(t, got, "## 评论\n")
		assert.Contains(t, got, "a follow-up")

		got = RenderBackup(is, BackupOptions{IncludeComments: false})
		assert.NotContains(t, got, "## 评论")
	})

	t.Run("should filter comments by owner when set", func(t *testing.T) {
		is := backupIssue(1, "commented")
		is.Comments = []models.Comment{
			{Author: "me", Body: "mine", CreatedAt: day(3)},
			{Author: "visitor", Body: "drive-by", CreatedAt: day(4)},
		}

		got := RenderBackup(is, BackupOptions{IncludeComments: true, Owner: "me"})

		assert.Contains(t, got, "mine")
		assert.NotContains(t, got, "drive-by")
	})
}

func TestSynchronizer(t *testing.T) {
	t.Run("should mirror fetched issues and remove stale files", func(t *testing.T) {
		dir := t.TempDir()
		s := &Synchronizer{Dir: dir}

		first, err := s.Sync(map[int]struct{}{}, []models.IssueRecord{
			backupIssue(1, "a"), backupIssue(2, "b"), backupIssue(3, "c"),
		})
		require.NoError(t, err)
		assert.Len(t, first.Written, 3)

		existing, err := s.Existing()
		require.NoError(t, err)
		assert.Equal(t, map[int]struct{}{1: {}, 2: {}, 3: {}}, existing)

		second, err := s.Sync(existing, []models.IssueRecord{
			backupIssue(1, "a"), backupIssue(2, "b"),
		})
		require.NoError(t, err)
		assert.Empty(t, second.Written)
		assert.Equal(t, map[int]struct{}{3: {}}, second.Removed)

		_, statErr := os.Stat(filepath.Join(dir, "3.md"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("should report zero writes on an identical re-run", func(t *testing.T) {
		dir := t.TempDir()
		s := &Synchronizer{Dir: dir}
		fetched := []models.IssueRecord{backupIssue(1, "a"), backupIssue(2, "b")}

		first, err := s.Sync(map[int]struct{}{}, fetched)
		require.NoError(t, err)
		assert.Len(t, first.Written, 2)

		existing, err := s.Existing()
		require.NoError(t, err)

		second, err := s.Sync(existing, fetched)
		require.NoError(t, err)
		assert.Empty(t, second.Written)
		assert.Empty(t, second.Removed)
	})

	t.Run("should rewrite a file whose content changed", func(t *testing.T) {
		dir := t.TempDir()
		s := &Synchronizer{Dir: dir}

		_, err := s.Sync(map[int]struct{}{}, []models.IssueRecord{backupIssue(1, "a")})
		require.NoError(t, err)

		edited := backupIssue(1, "a")
		edited.Body = "edited body"

		existing, err := s.Existing()
		require.NoError(t, err)
		result, err := s.Sync(existing, []models.IssueRecord{edited})
		require.NoError(t, err)

		assert.Equal(t, map[int]struct{}{1: {}}, result.Written)

		content, err := os.ReadFile(filepath.Join(dir, "1.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "edited body")
	})

	t.Run("should treat a missing directory as empty", func(t *testing.T) {
		s := &Synchronizer{Dir: filepath.Join(t.TempDir(), "missing")}

		existing, err := s.Existing()
		require.NoError(t, err)
		assert.Empty(t, existing)
	})

	t.Run("should ignore foreign files when scanning", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "draft.md"), []byte("x"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "7.md"), []byte("x"), 0644))

		s := &Synchronizer{Dir: dir}
		existing, err := s.Existing()
		require.NoError(t, err)

		assert.Equal(t, map[int]struct{}{7: {}}, existing)
	})
}
