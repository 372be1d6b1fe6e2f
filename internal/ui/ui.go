package ui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	domainErrors "github.com/bingdu748/gitblog/internal/errors"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Dim     = color.New(color.FgHiBlack)
)

// Spinner wraps the terminal spinner shown during the fetch step.
type Spinner struct {
	spinner *spinner.Spinner
}

func NewSpinner(message string) *Spinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+message),
	)
	return &Spinner{spinner: s}
}

func (s *Spinner) Start() {
	s.spinner.Start()
}

func (s *Spinner) Stop() {
	s.spinner.Stop()
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = Success.Fprintf(w, "✅ %s\n", msg)
}

func PrintError(w io.Writer, msg string) {
	_, _ = Error.Fprintf(w, "❌ %s\n", msg)
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = Warning.Fprintf(w, "⚠️  %s\n", msg)
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = Info.Fprintf(w, "ℹ️  %s\n", msg)
}

// PrintAppError prints a typed error with its suggestion when one exists.
func PrintAppError(w io.Writer, err error) {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		PrintError(w, appErr.Error())
		if appErr.Suggestion != "" {
			_, _ = Dim.Fprintf(w, "   💡 %s\n", appErr.Suggestion)
		}
		return
	}
	PrintError(w, err.Error())
}

func PrintKeyValue(w io.Writer, key, value string) {
	_, _ = Info.Fprintf(w, "%s: ", key)
	_, _ = fmt.Fprintln(w, value)
}
