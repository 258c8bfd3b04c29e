package tui

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/air846/personal-blog-system/pkg/client"
	"github.com/air846/personal-blog-system/pkg/domain"
)

// Shimmer animation for the header logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

const logoText = "BLOG"

// renderShimmerLogo renders the logo as a slow wave of ink blue light.
// Deep navy (#1a2a4a) -> bright sky (#60a5fa).
func renderShimmerLogo(frame int) string {
	n := len(logoText)
	t := float64(frame)

	var out strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(max(n-1, 1))

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)
		b = b*0.75 + math.Sin(t*0.035)*0.12 + 0.18
		b = math.Max(0.05, math.Min(1.0, b))

		r := clampByte(26 + b*(96-26))
		g := clampByte(42 + b*(165-42))
		bl := clampByte(74 + b*(250-74))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out.WriteString(s.Render(string(logoText[i])))

		if i < n-1 {
			out.WriteString("  ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Search / accent
	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3b82f6"))

	likeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844")).
			Bold(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3b82f6")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	// Article status
	draftStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b"))

	publishedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	archivedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#606878"))

	pinnedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844")).
			Bold(true)

	// Toast levels
	toastStyles = map[client.Level]lipgloss.Style{
		client.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")),
		client.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#34d474")).Bold(true),
		client.LevelWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")).Bold(true),
		client.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")).Bold(true),
	}

	// Selected row background
	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// TagStyle returns a bold style in the tag's own color, or a neutral one when
// the server sent none.
func TagStyle(tag domain.Tag) lipgloss.Style {
	if hexColor.MatchString(tag.Color) {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color)).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// StatusStyle returns the style for an article status label.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case domain.StatusPublished:
		return publishedStyle
	case domain.StatusDraft:
		return draftStyle
	default:
		return archivedStyle
	}
}

// ToastStyle returns the style for a notice level.
func ToastStyle(level client.Level) lipgloss.Style {
	if s, ok := toastStyles[level]; ok {
		return s
	}
	return dimStyle
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins help entries given as key, label pairs.
func helpBar(pairs ...string) string {
	entries := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(entries, "  ")
}

// helpView renders the key reference overlay.
func helpView(webURL string) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true).
		Render("B L O G")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	sections := []struct {
		name string
		keys []struct{ key, desc string }
	}{
		{"Global", []struct{ key, desc string }{
			{"1 2 3", "articles, taxonomy, profile"},
			{"n", "write a new article"},
			{"?", "toggle this help"},
			{"q", "quit"},
		}},
		{"Articles", []struct{ key, desc string }{
			{"m", "cycle latest, hot, recommended"},
			{"/", "search"},
			{"t", "cycle category filter"},
			{"[ ]", "previous / next page"},
			{"enter", "open article"},
		}},
		{"Article", []struct{ key, desc string }{
			{"u / U", "like / unlike"},
			{"p", "publish"},
			{"e", "edit"},
			{"d", "delete"},
			{"c", "copy content"},
			{"o", "open in browser"},
		}},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n", title)
	if webURL != "" {
		fmt.Fprintf(&b, "  %s\n", descStyle.Render(webURL))
	}
	for _, s := range sections {
		fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render(s.name))
		for _, k := range s.keys {
			fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-8s", k.key)), descStyle.Render(k.desc))
		}
	}
	return b.String()
}
