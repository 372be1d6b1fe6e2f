package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	cfgpkg "github.com/bingdu748/gitblog/internal/config"
	"github.com/bingdu748/gitblog/internal/i18n"
	"github.com/bingdu748/gitblog/internal/models"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchIssues(ctx context.Context) ([]models.IssueRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IssueRecord), args.Error(1)
}

func (m *MockFetcher) AuthenticatedUser(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func setupGenerateTest(t *testing.T) (*MockFetcher, *i18n.Translations, *cfgpkg.Config) {
	t.Setenv("GITHUB_TOKEN", "")

	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	dir := t.TempDir()
	cfg := &cfgpkg.Config{
		RecentIssueLimit: 5,
		MaxSummaryLines:  3,
		MaxSummaryLength: 50,
		AnchorNumber:     8,
		BackupDir:        filepath.Join(dir, "BACKUP"),
		ReadmePath:       filepath.Join(dir, "README.md"),
		FeedPath:         filepath.Join(dir, "feed.xml"),
		IncludeComments:  true,
		Language:         "en",
	}
	return &MockFetcher{}, trans, cfg
}

func runGenerate(t *testing.T, fetcher *MockFetcher, trans *i18n.Translations, cfg *cfgpkg.Config, args ...string) error {
	factory := NewCommandFactoryWithProvider(func(owner, repo, token string) Fetcher {
		return fetcher
	})
	cmd := factory.CreateCommand(trans, cfg)

	app := &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}
	return app.Run(context.Background(), append([]string{"test", "generate"}, args...))
}

func TestGenerateAction(t *testing.T) {
	t.Run("should fail without a repository", func(t *testing.T) {
		fetcher, trans, cfg := setupGenerateTest(t)

		err := runGenerate(t, fetcher, trans, cfg)

		assert.Error(t, err)
		fetcher.AssertNotCalled(t, "FetchIssues")
	})

	t.Run("should run the pipeline and write the artifacts", func(t *testing.T) {
		fetcher, trans, cfg := setupGenerateTest(t)
		fetcher.On("FetchIssues", mock.Anything).Return([]models.IssueRecord{
			{
				Number:    1,
				Title:     "hello",
				State:     "open",
				UpdatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				URL:       "https://github.com/me/blog/issues/1",
			},
		}, nil)

		err := runGenerate(t, fetcher, trans, cfg, "--repo", "me/blog")

		require.NoError(t, err)
		readme, err := os.ReadFile(cfg.ReadmePath)
		require.NoError(t, err)
		assert.Contains(t, string(readme), "hello")

		_, err = os.Stat(filepath.Join(cfg.BackupDir, "1.md"))
		assert.NoError(t, err)
		fetcher.AssertExpectations(t)
	})

	t.Run("should resolve the authenticated user when a token is given", func(t *testing.T) {
		fetcher, trans, cfg := setupGenerateTest(t)
		fetcher.On("AuthenticatedUser", mock.Anything).Return("me", nil)
		fetcher.On("FetchIssues", mock.Anything).Return([]models.IssueRecord{}, nil)

		err := runGenerate(t, fetcher, trans, cfg, "--repo", "me/blog", "--token", "t0k3n")

		require.NoError(t, err)
		assert.Equal(t, "me", cfg.Owner)
		fetcher.AssertExpectations(t)
	})

	t.Run("should override the backup directory from the flag", func(t *testing.T) {
		fetcher, trans, cfg := setupGenerateTest(t)
		override := filepath.Join(t.TempDir(), "MIRROR")
		fetcher.On("FetchIssues", mock.Anything).Return([]models.IssueRecord{
			{Number: 2, Title: "post", State: "open", URL: "u"},
		}, nil)

		err := runGenerate(t, fetcher, trans, cfg, "--repo", "me/blog", "--dir", override)

		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(override, "2.md"))
		assert.NoError(t, err)
	})

	t.Run("should surface a fetch failure", func(t *testing.T) {
		fetcher, trans, cfg := setupGenerateTest(t)
		fetcher.On("FetchIssues", mock.Anything).Return(nil, errors.New("boom"))

		err := runGenerate(t, fetcher, trans, cfg, "--repo", "me/blog")

		require.Error(t, err)
		assert.ErrorContains(t, err, "boom")
	})
}
