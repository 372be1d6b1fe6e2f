package blog

import (
	"context"
	"fmt"
	"os"

	"github.com/bingdu748/gitblog/internal/config"
	domainErrors "github.com/bingdu748/gitblog/internal/errors"
	"github.com/bingdu748/gitblog/internal/logger"
	"github.com/bingdu748/gitblog/internal/models"
)

// IssueFetcher is the port to the external API collaborator. The pipeline
// performs no network I/O itself.
type IssueFetcher interface {
	FetchIssues(ctx context.Context) ([]models.IssueRecord, error)
}

// Report summarizes one pipeline run for the caller.
type Report struct {
	Issues     int
	Recent     int
	Categories int
	Warnings   []string
	Sync       models.SyncResult
}

// Pipeline orchestrates fetch, classification, rendering and artifact
// writes for one run.
type Pipeline struct {
	fetcher IssueFetcher
	cfg     *config.Config
}

func NewPipeline(fetcher IssueFetcher, cfg *config.Config) *Pipeline {
	return &Pipeline{fetcher: fetcher, cfg: cfg}
}

// Run executes one full pipeline pass. issueNumber > 0 is the incremental
// hint: only that issue's backup file is touched, but the index and feed are
// still rebuilt from the complete fetched state so category membership stays
// globally consistent. Fetch and write failures are fatal; all three
// artifacts are staged in memory before the first byte hits disk, so a run
// either commits everything or leaves the previous artifacts untouched.
func (p *Pipeline) Run(ctx context.Context, issueNumber int) (Report, error) {
	var report Report

	issues, err := p.fetcher.FetchIssues(ctx)
	if err != nil {
		return report, domainErrors.ErrFetchIssues.WithError(err)
	}
	logger.Info(ctx, "fetched issues", "count", len(issues))
	report.Issues = len(issues)

	opts := OptionsFromConfig(p.cfg)
	buckets := Classify(issues, opts)
	report.Recent = len(buckets.Recent)
	report.Categories = len(buckets.Categories)
	report.Warnings = append(report.Warnings, buckets.Warnings...)

	readme := p.stageReadme(buckets)

	feedDoc, feedWarnings, err := p.stageFeed(issues, buckets, opts)
	if err != nil {
		return report, err
	}
	report.Warnings = append(report.Warnings, feedWarnings...)

	sync := &Synchronizer{
		Dir: p.cfg.BackupDir,
		Opts: BackupOptions{
			IncludeComments: p.cfg.IncludeComments,
			Owner:           p.cfg.Owner,
		},
	}
	writes, removals, err := p.stageBackups(sync, issues, issueNumber)
	if err != nil {
		return report, err
	}

	for _, w := range report.Warnings {
		logger.Warn(ctx, "parse warning", "warning", w)
	}

	// Staging is complete; commit all three artifacts.
	if err := os.WriteFile(p.cfg.ReadmePath, []byte(readme), 0644); err != nil {
		return report, domainErrors.ErrWriteReadme.WithError(err).WithContext("path", p.cfg.ReadmePath)
	}
	if err := os.WriteFile(p.cfg.FeedPath, []byte(feedDoc), 0644); err != nil {
		return report, domainErrors.ErrWriteFeed.WithError(err).WithContext("path", p.cfg.FeedPath)
	}
	result, err := sync.Commit(writes, removals)
	if err != nil {
		return report, err
	}
	report.Sync = result

	logger.Info(ctx, "pipeline committed",
		"readme", p.cfg.ReadmePath,
		"feed", p.cfg.FeedPath,
		"backups_written", len(result.Written),
		"backups_removed", len(result.Removed))

	return report, nil
}

func (p *Pipeline) stageReadme(buckets models.Buckets) string {
	r := NewRenderer(p.cfg.MaxSummaryLines, p.cfg.MaxSummaryLength, nil)
	return Assemble(Sections{
		Header:      Header(p.cfg.Repo, p.cfg.FeedPath),
		Top:         r.Top(buckets.Top),
		Recent:      r.Recent(buckets.Recent),
		CategoryTOC: r.CategoryTOC(buckets.Categories),
		Categories:  r.Categories(buckets.Categories),
		Todo:        r.Todo(buckets.Todo),
		Friends:     r.Friends(buckets.Friends),
		About:       r.About(buckets.About),
	})
}

func (p *Pipeline) stageFeed(issues []models.IssueRecord, buckets models.Buckets, opts Options) (string, []string, error) {
	items := buckets.Recent
	if p.cfg.FeedAllItems {
		items = Qualifying(issues, opts)
	}

	owner, name := p.cfg.SplitRepo()
	site := SiteMeta{
		Title:       fmt.Sprintf("RSS feed of %s's %s", owner, name),
		Link:        "https://github.com/" + p.cfg.Repo,
		Description: "Blog generated from GitHub issues",
		Author:      p.cfg.Owner,
	}

	doc, warnings, err := BuildFeed(items, site, FeedOptions{
		FullContent:      p.cfg.FeedFullContent,
		MaxSummaryLines:  p.cfg.MaxSummaryLines,
		MaxSummaryLength: p.cfg.MaxSummaryLength,
	})
	if err != nil {
		return "", warnings, domainErrors.ErrWriteFeed.WithError(err)
	}
	return doc, warnings, nil
}

// stageBackups plans the backup writes and removals. In full-resync mode
// every fetched issue is mirrored and every stale file removed; with an
// incremental hint only that issue's file is staged and all other existing
// backups are left alone.
func (p *Pipeline) stageBackups(sync *Synchronizer, issues []models.IssueRecord, issueNumber int) (map[int]string, []int, error) {
	existing, err := sync.Existing()
	if err != nil {
		return nil, nil, err
	}

	if issueNumber <= 0 {
		writes, removals := sync.Plan(existing, issues)
		return writes, removals, nil
	}

	for _, is := range issues {
		if is.Number == issueNumber {
			writes := map[int]string{issueNumber: RenderBackup(is, sync.Opts)}
			return writes, nil, nil
		}
	}

	// The hinted issue no longer exists in the repository (deleted or
	// transferred): drop its backup file if present.
	if _, ok := existing[issueNumber]; ok {
		return map[int]string{}, []int{issueNumber}, nil
	}
	return map[int]string{}, nil, nil
}
