package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/air846/personal-blog-system/pkg/domain"
)

// formatTime renders a relative timestamp for list rows.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// cleanTitle strips markdown headers and collapses whitespace so list rows
// show text instead of "# Header Name".
func cleanTitle(raw string) string {
	s := strings.ReplaceAll(raw, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	for strings.HasPrefix(s, "#") {
		s = strings.TrimLeft(s, "#")
		s = strings.TrimLeft(s, " ")
	}

	return strings.Join(strings.Fields(s), " ")
}

// excerpt returns the summary, or the first non-empty content line.
func excerpt(a domain.Article) string {
	if a.Summary != "" {
		return cleanTitle(a.Summary)
	}
	for _, line := range strings.Split(a.Content, "\n") {
		if s := cleanTitle(line); s != "" {
			return s
		}
	}
	return ""
}

// categoryName resolves a category id against a loaded list.
func categoryName(cats []domain.Category, id int64) string {
	for _, c := range cats {
		if c.ID == id {
			return c.Name
		}
	}
	if id == 0 {
		return ""
	}
	return fmt.Sprintf("#%d", id)
}
