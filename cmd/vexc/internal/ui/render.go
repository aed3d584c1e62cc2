// Package ui renders compiler output for the terminal and runs the
// interactive config wizard.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions
var (
	// Colors
	primaryColor = lipgloss.Color("#3b82f6")
	successColor = lipgloss.Color("#10b981")
	warningColor = lipgloss.Color("#f59e0b")
	errorColor   = lipgloss.Color("#ef4444")
	mutedColor   = lipgloss.Color("#94a3b8")

	fileStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	tipStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			PaddingLeft(4)
)

// Diagnostics renders the errors and tips reported for one source file. It
// returns "" when there is nothing to report.
func Diagnostics(source string, errors, tips []string) string {
	if len(errors) == 0 && len(tips) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(fileStyle.Render(source))
	b.WriteByte('\n')
	for _, msg := range errors {
		b.WriteString("  " + warningStyle.Render("⚠ warning"))
		b.WriteByte('\n')
		b.WriteString(messageStyle.Render(msg))
		b.WriteByte('\n')
	}
	for _, msg := range tips {
		b.WriteString("  " + tipStyle.Render("tip"))
		b.WriteByte('\n')
		b.WriteString(messageStyle.Render(tipStyle.Render(msg)))
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary renders the closing line of a compile run.
func Summary(files, errors, tips int, elapsed time.Duration) string {
	counts := fmt.Sprintf("%d %s, %d %s", errors, plural(errors, "warning"), tips, plural(tips, "tip"))
	line := fmt.Sprintf("Compiled %d %s in %v (%s)", files, plural(files, "template"), elapsed.Round(time.Millisecond), counts)
	if errors > 0 {
		return warningStyle.Render("⚠ " + line)
	}
	return successStyle.Render("✅ " + line)
}

// Failure renders a fatal error line.
func Failure(err error) string {
	return errorStyle.Render("❌ " + err.Error())
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
