package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds every tunable of the blog pipeline. It is loaded once and
// threaded through the pipeline explicitly, so a run stays a pure function
// of (issues, config).
type Config struct {
	Repo  string `json:"repo"`
	Owner string `json:"owner,omitempty"`

	RecentIssueLimit int `json:"recent_issue_limit"`
	MaxSummaryLines  int `json:"max_summary_lines"`
	MaxSummaryLength int `json:"max_summary_length"`
	AnchorNumber     int `json:"anchor_number"`

	BackupDir  string `json:"backup_dir"`
	ReadmePath string `json:"readme_path"`
	FeedPath   string `json:"feed_path"`

	// Labels that keep a closed issue visible in listings. Closed issues
	// are always backed up regardless.
	ClosedIncludeLabels []string `json:"closed_include_labels,omitempty"`

	FeedFullContent bool `json:"feed_full_content"`
	FeedAllItems    bool `json:"feed_all_items"`
	IncludeComments bool `json:"include_comments"`

	Language string `json:"language"`
	PathFile string `json:"path_file"`
}

// Reserved labels dispatch issues to special sections instead of free-form
// categories. Fixed by design, not user-configurable.
var ReservedLabels = []string{"Top", "TODO", "Friends", "About"}

const (
	defaultRecentIssueLimit = 5
	defaultMaxSummaryLines  = 3
	defaultMaxSummaryLength = 50
	defaultAnchorNumber     = 8
	defaultBackupDir        = "BACKUP"
	defaultReadmePath       = "README.md"
	defaultFeedPath         = "feed.xml"
	defaultLang             = "en"
)

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".gitblog")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config JSON: %w", err)
	}

	applyDefaults(&config)
	config.PathFile = configPath

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded config is not valid: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		RecentIssueLimit: defaultRecentIssueLimit,
		MaxSummaryLines:  defaultMaxSummaryLines,
		MaxSummaryLength: defaultMaxSummaryLength,
		AnchorNumber:     defaultAnchorNumber,
		BackupDir:        defaultBackupDir,
		ReadmePath:       defaultReadmePath,
		FeedPath:         defaultFeedPath,
		IncludeComments:  true,
		Language:         defaultLang,
		PathFile:         path,
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to save default config: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("config to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

func applyDefaults(config *Config) {
	if config.RecentIssueLimit == 0 {
		config.RecentIssueLimit = defaultRecentIssueLimit
	}
	if config.MaxSummaryLines == 0 {
		config.MaxSummaryLines = defaultMaxSummaryLines
	}
	if config.MaxSummaryLength == 0 {
		config.MaxSummaryLength = defaultMaxSummaryLength
	}
	if config.AnchorNumber == 0 {
		config.AnchorNumber = defaultAnchorNumber
	}
	if config.BackupDir == "" {
		config.BackupDir = defaultBackupDir
	}
	if config.ReadmePath == "" {
		config.ReadmePath = defaultReadmePath
	}
	if config.FeedPath == "" {
		config.FeedPath = defaultFeedPath
	}
	if config.Language == "" {
		config.Language = defaultLang
	}
}

func validateConfig(config *Config) error {
	if config.RecentIssueLimit <= 0 {
		return errors.New("recent_issue_limit must be greater than 0")
	}
	if config.MaxSummaryLines <= 0 {
		return errors.New("max_summary_lines must be greater than 0")
	}
	if config.MaxSummaryLength <= 0 {
		return errors.New("max_summary_length must be greater than 0")
	}
	if config.AnchorNumber <= 0 {
		return errors.New("anchor_number must be greater than 0")
	}
	if config.BackupDir == "" {
		return errors.New("backup_dir cannot be empty")
	}
	if config.Repo != "" && !strings.Contains(config.Repo, "/") {
		return fmt.Errorf("repo must be in owner/name form, got %q", config.Repo)
	}
	return nil
}

// SplitRepo returns the owner and name halves of the configured repository.
func (c *Config) SplitRepo() (owner, name string) {
	parts := strings.SplitN(c.Repo, "/", 2)
	if len(parts) != 2 {
		return c.Repo, ""
	}
	return parts[0], parts[1]
}
