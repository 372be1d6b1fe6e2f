package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/bingdu748/gitblog/internal/config"
	"github.com/bingdu748/gitblog/internal/i18n"
	"github.com/bingdu748/gitblog/internal/ui"
)

// CommandFactory creates the config command with its subcommands.
type CommandFactory struct{}

func NewCommandFactory() *CommandFactory {
	return &CommandFactory{}
}

// CreateCommand builds the 'config' command.
func (f *CommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: t.GetMessage("config_usage", 0, nil),
		Commands: []*cli.Command{
			f.showCommand(t, cfg),
			f.setCommand(t, cfg),
		},
	}
}

func (f *CommandFactory) showCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			w := os.Stdout
			ui.PrintKeyValue(w, "repo", cfg.Repo)
			ui.PrintKeyValue(w, "owner", cfg.Owner)
			ui.PrintKeyValue(w, "recent_issue_limit", strconv.Itoa(cfg.RecentIssueLimit))
			ui.PrintKeyValue(w, "max_summary_lines", strconv.Itoa(cfg.MaxSummaryLines))
			ui.PrintKeyValue(w, "max_summary_length", strconv.Itoa(cfg.MaxSummaryLength))
			ui.PrintKeyValue(w, "anchor_number", strconv.Itoa(cfg.AnchorNumber))
			ui.PrintKeyValue(w, "backup_dir", cfg.BackupDir)
			ui.PrintKeyValue(w, "readme_path", cfg.ReadmePath)
			ui.PrintKeyValue(w, "feed_path", cfg.FeedPath)
			ui.PrintKeyValue(w, "closed_include_labels", strings.Join(cfg.ClosedIncludeLabels, ", "))
			ui.PrintKeyValue(w, "feed_full_content", strconv.FormatBool(cfg.FeedFullContent))
			ui.PrintKeyValue(w, "feed_all_items", strconv.FormatBool(cfg.FeedAllItems))
			ui.PrintKeyValue(w, "include_comments", strconv.FormatBool(cfg.IncludeComments))
			ui.PrintKeyValue(w, "language", cfg.Language)
			return nil
		},
	}
}

func (f *CommandFactory) setCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("config_set_usage", 0, nil),
		ArgsUsage: "<key> <value>",
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.Args().Len() != 2 {
				return fmt.Errorf("usage: gitblog config set <key> <value>")
			}
			key := command.Args().Get(0)
			value := command.Args().Get(1)

			if err := applyValue(cfg, key, value); err != nil {
				ui.PrintError(os.Stderr, err.Error())
				return err
			}

			if err := config.SaveConfig(cfg); err != nil {
				ui.PrintError(os.Stderr, err.Error())
				return err
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("config_set_saved", 0, map[string]interface{}{
				"Key":   key,
				"Value": value,
			}))
			return nil
		},
	}
}

func applyValue(cfg *config.Config, key, value string) error {
	switch key {
	case "repo":
		cfg.Repo = value
	case "owner":
		cfg.Owner = value
	case "recent_issue_limit":
		return setInt(&cfg.RecentIssueLimit, key, value)
	case "max_summary_lines":
		return setInt(&cfg.MaxSummaryLines, key, value)
	case "max_summary_length":
		return setInt(&cfg.MaxSummaryLength, key, value)
	case "anchor_number":
		return setInt(&cfg.AnchorNumber, key, value)
	case "backup_dir":
		cfg.BackupDir = value
	case "readme_path":
		cfg.ReadmePath = value
	case "feed_path":
		cfg.FeedPath = value
	case "closed_include_labels":
		cfg.ClosedIncludeLabels = splitLabels(value)
	case "feed_full_content":
		return setBool(&cfg.FeedFullContent, key, value)
	case "feed_all_items":
		return setBool(&cfg.FeedAllItems, key, value)
	case "include_comments":
		return setBool(&cfg.IncludeComments, key, value)
	case "language":
		cfg.Language = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s expects a number, got %q", key, value)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s expects true or false, got %q", key, value)
	}
	*dst = b
	return nil
}

func splitLabels(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}
