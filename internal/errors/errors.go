package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeFetch         ErrorType = "FETCH"
	TypeParse         ErrorType = "PARSE"
	TypeWrite         ErrorType = "WRITE"
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Fetch errors
var (
	ErrFetchIssues = NewAppError(TypeFetch, "Failed to fetch issues from GitHub", nil).
			WithSuggestion("Check your token and network connection")

	ErrFetchIssue = NewAppError(TypeFetch, "Failed to fetch the requested issue", nil).
			WithSuggestion("Verify the issue number exists in the repository")

	ErrFetchComments = NewAppError(TypeFetch, "Failed to fetch issue comments", nil)

	ErrTokenInvalid = NewAppError(TypeFetch, "GitHub token is invalid or expired", nil).
			WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrRateLimit = NewAppError(TypeFetch, "GitHub API rate limit exceeded", nil).
			WithSuggestion("Wait a few minutes or use a personal access token for higher limits")
)

// Write errors
var (
	ErrWriteReadme = NewAppError(TypeWrite, "Failed to write the index document", nil).
			WithSuggestion("Check write permissions on the repository directory")

	ErrWriteFeed = NewAppError(TypeWrite, "Failed to write the feed document", nil)

	ErrWriteBackup = NewAppError(TypeWrite, "Failed to write a backup file", nil).
			WithSuggestion("Check write permissions on the backup directory")

	ErrRemoveBackup = NewAppError(TypeWrite, "Failed to remove a stale backup file", nil)

	ErrCreateBackupDir = NewAppError(TypeWrite, "Failed to create the backup directory", nil)
)

// Configuration errors
var (
	ErrRepoMissing = NewAppError(TypeConfiguration, "Repository is not configured", nil).
			WithSuggestion("Pass --repo owner/name or run: gitblog config set repo <owner/name>")

	ErrTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
			WithSuggestion("Pass --token or set the GITHUB_TOKEN environment variable")

	ErrInvalidRepo = NewAppError(TypeConfiguration, "Repository must be in owner/name form", nil)
)
