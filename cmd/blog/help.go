package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/air846/personal-blog-system/internal/logging"
	"github.com/air846/personal-blog-system/internal/tui"
	"github.com/air846/personal-blog-system/pkg/client"
	"github.com/air846/personal-blog-system/pkg/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")).Bold(true)
	cmdStyle   = lipgloss.NewStyle().Bold(true)
	descStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func printHelp(w io.Writer) {
	commands := []struct{ cmd, desc string }{
		{"blog", "Browse and write articles (interactive TUI)"},
		{"blog login", "Sign in with username and password"},
		{"blog logout", "Clear the saved session"},
		{"blog whoami", "Show the signed-in profile"},
		{"blog open <id>", "Open an article in the browser"},
		{"blog --version", "Show version"},
		{"blog help", "You are here"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  Commands:\n", titleStyle.Render("B L O G"))
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-18s", c.cmd)), descStyle.Render(c.desc))
	}

	vars := []struct{ name, desc string }{
		{"BLOG_API_URL", "API base URL (default http://localhost:8080/api)"},
		{"BLOG_WEB_URL", "web front end for article links"},
		{"BLOG_STATE_DIR", "token, profile and log location (default ~/.blog)"},
		{"BLOG_STORAGE", "file, sqlite or memory"},
		{"BLOG_LOG_LEVEL", logging.LevelNames()},
	}
	fmt.Fprintf(w, "\n  Environment (.env is read too):\n")
	for _, v := range vars {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-18s", v.name)), descStyle.Render(v.desc))
	}
	fmt.Fprintln(w)
}

// cliNotifier prints notices to stderr outside the TUI. Navigation has no
// meaning on the command line and is dropped.
type cliNotifier struct {
	w io.Writer
}

func (n *cliNotifier) Notify(notice client.Notice) {
	fmt.Fprintln(n.w, tui.ToastStyle(notice.Level).Render(notice.Text))
}

func (n *cliNotifier) Navigate(client.Route) {}

func printProfile(w io.Writer, u *domain.UserProfile) {
	fmt.Fprintf(w, "%s\n", titleStyle.Render(u.DisplayName()))
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(w, "  %s %s\n", descStyle.Render(fmt.Sprintf("%-9s", label)), value)
	}
	row("username", u.Username)
	row("email", u.Email)
	row("role", strings.ToLower(u.Role))
	if !u.CreateTime.IsZero() {
		row("joined", u.CreateTime.Format("2006-01-02"))
	}
}
