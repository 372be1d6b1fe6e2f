package generate

import (
	"context"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/bingdu748/gitblog/internal/blog"
	"github.com/bingdu748/gitblog/internal/config"
	domainErrors "github.com/bingdu748/gitblog/internal/errors"
	"github.com/bingdu748/gitblog/internal/i18n"
	vcsgithub "github.com/bingdu748/gitblog/internal/infrastructure/vcs/github"
	"github.com/bingdu748/gitblog/internal/logger"
	"github.com/bingdu748/gitblog/internal/ui"
)

// FetcherProvider builds the issue fetcher for one run; injectable for tests.
type FetcherProvider func(owner, repo, token string) Fetcher

// Fetcher is the slice of the GitHub client the command needs.
type Fetcher interface {
	blog.IssueFetcher
	AuthenticatedUser(ctx context.Context) (string, error)
}

// CommandFactory creates the generate command.
type CommandFactory struct {
	provider FetcherProvider
}

func NewCommandFactory() *CommandFactory {
	return &CommandFactory{
		provider: func(owner, repo, token string) Fetcher {
			return vcsgithub.NewClient(owner, repo, token)
		},
	}
}

func NewCommandFactoryWithProvider(provider FetcherProvider) *CommandFactory {
	return &CommandFactory{provider: provider}
}

// CreateCommand builds the 'generate' command.
func (f *CommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   t.GetMessage("generate_usage", 0, nil),
		Flags:   f.createFlags(t),
		Action:  f.createAction(t, cfg),
	}
}

func (f *CommandFactory) createFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "token",
			Usage:   t.GetMessage("generate_flag_token", 0, nil),
			Sources: cli.EnvVars("GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   t.GetMessage("generate_flag_repo", 0, nil),
		},
		&cli.IntFlag{
			Name:    "issue-number",
			Aliases: []string{"n"},
			Usage:   t.GetMessage("generate_flag_issue_number", 0, nil),
		},
		&cli.StringFlag{
			Name:  "dir",
			Usage: t.GetMessage("generate_flag_dir", 0, nil),
		},
	}
}

func (f *CommandFactory) createAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)
		start := time.Now()

		if repo := command.String("repo"); repo != "" {
			cfg.Repo = repo
		}
		if dir := command.String("dir"); dir != "" {
			cfg.BackupDir = dir
		}
		token := command.String("token")
		issueNumber := command.Int("issue-number")

		if cfg.Repo == "" {
			ui.PrintAppError(os.Stderr, domainErrors.ErrRepoMissing)
			return domainErrors.ErrRepoMissing
		}
		owner, name := cfg.SplitRepo()
		if owner == "" || name == "" {
			ui.PrintAppError(os.Stderr, domainErrors.ErrInvalidRepo)
			return domainErrors.ErrInvalidRepo
		}

		log.Info("executing generate command",
			"repo", cfg.Repo,
			"issue_number", issueNumber,
			"backup_dir", cfg.BackupDir)

		fetcher := f.provider(owner, name, token)

		if cfg.Owner == "" && token != "" {
			// The original gates every listing on the repository owner's
			// own issues; resolve the token's user when not configured.
			if me, err := fetcher.AuthenticatedUser(ctx); err == nil {
				cfg.Owner = me
				log.Debug("resolved authenticated user", "owner", me)
			} else {
				log.Warn("could not resolve authenticated user", "error", err)
			}
		}

		spin := ui.NewSpinner(t.GetMessage("generate_fetching", 0, map[string]interface{}{"Repo": cfg.Repo}))
		spin.Start()
		report, err := blog.NewPipeline(fetcher, cfg).Run(ctx, int(issueNumber))
		spin.Stop()

		if err != nil {
			log.Error("pipeline run failed",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds())
			ui.PrintAppError(os.Stderr, err)
			return err
		}

		for _, w := range report.Warnings {
			ui.PrintWarning(os.Stderr, w)
		}
		if n := len(report.Warnings); n > 0 {
			ui.PrintInfo(os.Stdout, t.GetMessage("generate_warnings", n, map[string]interface{}{"Count": n}))
		}

		log.Info("pipeline run complete",
			"issues", report.Issues,
			"categories", report.Categories,
			"backups_written", len(report.Sync.Written),
			"backups_removed", len(report.Sync.Removed),
			"duration_ms", time.Since(start).Milliseconds())

		ui.PrintSuccess(os.Stdout, t.GetMessage("generate_done", 0, map[string]interface{}{
			"Issues":     report.Issues,
			"Categories": report.Categories,
			"Written":    len(report.Sync.Written),
			"Removed":    len(report.Sync.Removed),
		}))
		return nil
	}
}
