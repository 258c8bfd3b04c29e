// Package tui is the interactive terminal interface of the blog client.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/air846/personal-blog-system/pkg/client"
	"github.com/air846/personal-blog-system/pkg/domain"
	"github.com/air846/personal-blog-system/pkg/session"
)

// API is the part of the blog client the views call.
type API interface {
	ListArticles(ctx context.Context, q client.ArticleQuery) (*domain.Page[domain.Article], error)
	GetArticle(ctx context.Context, id int64) (*domain.Article, error)
	CreateArticle(ctx context.Context, req client.ArticleRequest) error
	UpdateArticle(ctx context.Context, id int64, req client.ArticleRequest) error
	DeleteArticle(ctx context.Context, id int64) error
	PublishArticle(ctx context.Context, id int64) error
	LikeArticle(ctx context.Context, id int64) error
	UnlikeArticle(ctx context.Context, id int64) error
	HotArticles(ctx context.Context, limit int) ([]domain.Article, error)
	RecommendedArticles(ctx context.Context, limit int) ([]domain.Article, error)
	SearchArticles(ctx context.Context, keyword string, page, size int) (*domain.Page[domain.Article], error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
}

// Session is the part of the session store the views drive.
type Session interface {
	Snapshot() session.Snapshot
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, req client.RegisterRequest) error
	FetchProfile(ctx context.Context) error
	UpdateProfile(ctx context.Context, req client.UpdateUserRequest) error
	ChangePassword(ctx context.Context, req client.ChangePasswordRequest) error
	Logout()
}

// Deps wires the app to the outside world.
type Deps struct {
	API     API
	Session Session
	Bridge  *Bridge
	// ArticleURL builds the web page of an article for "open in browser".
	ArticleURL func(id int64) string
	WebURL     string
}

type view int

const (
	viewLogin view = iota
	viewArticles
	viewTaxonomy
	viewProfile
	viewCompose
)

// toastTTL is how long a notice stays on screen.
const toastTTL = 4 * time.Second

type toastExpiredMsg struct{ id int }

// App is the root Bubbletea model.
type App struct {
	deps     Deps
	view     view
	login    loginModel
	articles articlesModel
	taxonomy taxonomyModel
	profile  profileModel
	compose  composeModel
	helpOpen bool
	toast    client.Notice
	toastID  int
	width    int
	height   int
	frame    int // logo shimmer animation frame
}

// NewApp creates a new TUI application. It starts on the login view when the
// session holds no token.
func NewApp(d Deps) App {
	a := App{
		deps:     d,
		login:    newLoginModel(d.Session),
		articles: newArticlesModel(d.API, d.ArticleURL),
		taxonomy: newTaxonomyModel(d.API),
		profile:  newProfileModel(d.Session),
		compose:  newComposeModel(d.API),
	}
	if a.snapshot().LoggedIn {
		a.view = viewArticles
	}
	return a
}

func (a App) snapshot() session.Snapshot {
	if a.deps.Session == nil {
		return session.Snapshot{}
	}
	return a.deps.Session.Snapshot()
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd(), a.deps.Bridge.listen()}
	if a.view == viewArticles {
		cmds = append(cmds, a.articles.Init())
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + toast(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.login, _ = a.login.Update(bodyMsg)
		a.articles, _ = a.articles.Update(bodyMsg)
		a.taxonomy, _ = a.taxonomy.Update(bodyMsg)
		a.profile, _ = a.profile.Update(bodyMsg)
		a.compose, _ = a.compose.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case noticeMsg:
		a.toastID++
		a.toast = client.Notice(msg)
		id := a.toastID
		expire := tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
		return a, tea.Batch(a.deps.Bridge.listen(), expire)

	case toastExpiredMsg:
		if msg.id == a.toastID {
			a.toast = client.Notice{}
		}
		return a, nil

	case navigateMsg:
		cmd := a.navigate(client.Route(msg))
		return a, tea.Batch(a.deps.Bridge.listen(), cmd)

	case editArticleMsg:
		a.view = viewCompose
		a.compose = a.compose.edit(msg.article)
		return a, a.compose.Init()

	case composeDoneMsg:
		a.view = viewArticles
		a.articles.detail = false
		return a, a.articles.Init()

	case filterCategoryMsg:
		a.view = viewArticles
		a.articles = a.articles.withCategory(msg.id)
		return a, a.articles.Init()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.helpOpen {
			switch msg.String() {
			case "?", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			}
			return a, nil
		}
		if a.view == viewLogin {
			break
		}

		if !a.isEditing() {
			switch msg.String() {
			case "?":
				a.helpOpen = true
				return a, nil
			case "q":
				return a, tea.Quit
			case "1":
				return a, a.switchTo(viewArticles)
			case "2":
				return a, a.switchTo(viewTaxonomy)
			case "3":
				return a, a.switchTo(viewProfile)
			case "n":
				a.view = viewCompose
				a.compose = a.compose.reset()
				return a, a.compose.Init()
			}
		} else if msg.String() == "esc" && a.view == viewCompose {
			a.view = viewArticles
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewArticles:
		a.articles, cmd = a.articles.Update(msg)
	case viewTaxonomy:
		a.taxonomy, cmd = a.taxonomy.Update(msg)
	case viewProfile:
		a.profile, cmd = a.profile.Update(msg)
	case viewCompose:
		a.compose, cmd = a.compose.Update(msg)
	}
	return a, cmd
}

func (a *App) switchTo(v view) tea.Cmd {
	if a.view == v {
		return nil
	}
	a.view = v
	switch v {
	case viewArticles:
		return a.articles.Init()
	case viewTaxonomy:
		return a.taxonomy.Init()
	case viewProfile:
		return a.profile.Init()
	}
	return nil
}

// navigate maps a route to a view.
func (a *App) navigate(r client.Route) tea.Cmd {
	switch r {
	case client.RouteLogin:
		a.view = viewLogin
		a.login = a.login.clearSecrets()
		return nil
	case client.RouteHome:
		a.view = viewArticles
		a.articles.detail = false
		return a.articles.Init()
	}
	return nil
}

func (a App) isEditing() bool {
	switch a.view {
	case viewLogin, viewCompose:
		return true
	case viewArticles:
		return a.articles.editing || a.articles.confirmDelete
	case viewProfile:
		return a.profile.state != profileNormal
	}
	return false
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	header := center(logo, a.width)

	snap := a.snapshot()
	var who string
	if snap.User != nil {
		who = metaStyle.Render(snap.User.DisplayName())
		if snap.User.Role != "" {
			who += metaStyle.Render(" . " + strings.ToLower(snap.User.Role))
		}
	} else if snap.LoggedIn {
		who = metaStyle.Render("signed in")
	} else {
		who = dimStyle.Render("not signed in")
	}
	header += "\n" + center(who, a.width)

	var tabBar string
	if a.view != viewLogin {
		tabBar = a.renderTabs()
	}

	var body, help string
	switch a.view {
	case viewLogin:
		body = a.login.View()
		help = a.login.helpKeys()
	case viewArticles:
		body = a.articles.View()
		help = a.articles.helpKeys()
	case viewTaxonomy:
		body = a.taxonomy.View()
		help = helpBar("1-3", "tabs", "tab", "switch", "j/k", "nav", "enter", "details", "a", "articles", "q", "quit")
	case viewProfile:
		body = a.profile.View()
		help = a.profile.helpKeys()
	case viewCompose:
		body = a.compose.View()
		help = helpBar("tab", "next", "h/l", "choose", "space", "toggle tag", "ctrl+s", "save", "esc", "cancel")
	}

	if a.helpOpen {
		body = helpView(a.deps.WebURL)
		help = helpBar("?", "close", "q", "quit")
	}

	toast := ""
	if a.toast.Text != "" {
		toast = " " + ToastStyle(a.toast.Level).Render(a.toast.Text)
	}

	// Chrome budget: header(2) + tabs(1) + toast(1) + help(1) = 5 lines + body
	body = strings.TrimRight(truncateToHeight(body, a.height-5), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, tabBar, body, toast, help)
}

func (a App) renderTabs() string {
	tabs := []struct {
		key  string
		name string
		v    view
	}{
		{"1", "Articles", viewArticles},
		{"2", "Taxonomy", viewTaxonomy},
		{"3", "Profile", viewProfile},
	}

	colWidth := a.width / len(tabs)
	var b strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := max((colWidth-labelWidth)/2, 0)
		rightPad := max(colWidth-labelWidth-leftPad, 0)
		b.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	return b.String()
}

func center(s string, width int) string {
	pad := max((width-lipgloss.Width(s))/2, 0)
	return strings.Repeat(" ", pad) + s
}
