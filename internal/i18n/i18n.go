package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations builds the message bundle from the embedded defaults plus
// any locale files under localesDir (active.*.toml).
func NewTranslations(defaultLang, localesDir string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	if localesDir != "" {
		files, err := filepath.Glob(filepath.Join(localesDir, "active.*.toml"))
		if err != nil {
			return nil, fmt.Errorf("error reading locales: %w", err)
		}
		for _, file := range files {
			if _, err := bundle.LoadMessageFile(file); err != nil {
				return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
			}
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Turn the GitHub issues of one repository into a static blog"

	[app_description]
	other = "gitblog fetches the issues of a repository, classifies them into sections and writes the README index, the RSS feed and a per-issue backup mirror"

	[generate_usage]
	other = "Fetch issues and regenerate every blog artifact"

	[generate_flag_token]
	other = "GitHub access token (falls back to GITHUB_TOKEN)"

	[generate_flag_repo]
	other = "Repository in owner/name form"

	[generate_flag_issue_number]
	other = "Only refresh this issue's backup file (index and feed are still rebuilt)"

	[generate_flag_dir]
	other = "Backup directory"

	[generate_fetching]
	other = "Fetching issues from {{.Repo}}..."

	[generate_done]
	other = "Blog regenerated: {{.Issues}} issues, {{.Categories}} categories, {{.Written}} backups written, {{.Removed}} removed"

	[generate_warnings]
	one = "{{.Count}} parse warning"
	other = "{{.Count}} parse warnings"

	[config_usage]
	other = "Inspect and change the gitblog configuration"

	[config_show_usage]
	other = "Print the current configuration"

	[config_set_usage]
	other = "Set a configuration value"

	[config_set_saved]
	other = "Configuration saved: {{.Key}} = {{.Value}}"

	[config_set_unknown_key]
	other = "Unknown configuration key: {{.Key}}"

	[factory_already_registered]
	other = "the factory '{{.FactoryName}}' is already registered"

	[help_command_usage]
	other = "Shows help"
	`
