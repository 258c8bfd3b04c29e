package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/air846/personal-blog-system/internal/browser"
	"github.com/air846/personal-blog-system/pkg/client"
	"github.com/air846/personal-blog-system/pkg/domain"
)

type listMode int

const (
	modeLatest listMode = iota
	modeHot
	modeRecommended
	modeSearch
)

func (m listMode) String() string {
	switch m {
	case modeHot:
		return "hot"
	case modeRecommended:
		return "recommended"
	case modeSearch:
		return "search"
	default:
		return "latest"
	}
}

type articlesModel struct {
	api           API
	articleURL    func(int64) string
	mode          listMode
	articles      []domain.Article
	page          int
	pages         int64
	total         int64
	cursor        int
	search        string
	editing       bool // true when typing in search
	categories    []domain.Category
	categoryID    int64 // 0 = all
	detail        bool
	current       *domain.Article // full article shown in detail
	scroll        int
	confirmDelete bool // waiting for y/n after "d"
	loading       bool
	statusMsg     string
	width         int
	height        int
}

type articlesLoadedMsg struct {
	articles []domain.Article
	page     *domain.Page[domain.Article]
	err      error
}

type articleLoadedMsg struct {
	article *domain.Article
	err     error
}

type categoriesLoadedMsg struct {
	categories []domain.Category
	err        error
}

type articleActionMsg struct {
	action string // "liked", "unliked", "published", "deleted"
	id     int64
	err    error
}

type copyResultMsg struct{ err error }

type openResultMsg struct{ err error }

type editArticleMsg struct{ article domain.Article }

func newArticlesModel(api API, articleURL func(int64) string) articlesModel {
	return articlesModel{
		api:        api,
		articleURL: articleURL,
		page:       1,
		loading:    true,
	}
}

func (m articlesModel) Init() tea.Cmd {
	if m.categories == nil {
		return tea.Batch(m.load(), m.loadCategories())
	}
	return m.load()
}

// withCategory switches to the latest listing filtered by category id.
func (m articlesModel) withCategory(id int64) articlesModel {
	m.mode = modeLatest
	m.categoryID = id
	m.search = ""
	m.page = 1
	m.cursor = 0
	m.detail = false
	m.loading = true
	return m
}

func (m articlesModel) load() tea.Cmd {
	api := m.api
	mode, page, search, categoryID := m.mode, m.page, m.search, m.categoryID
	return func() tea.Msg {
		ctx := context.Background()
		switch mode {
		case modeHot:
			list, err := api.HotArticles(ctx, 0)
			return articlesLoadedMsg{articles: list, err: err}
		case modeRecommended:
			list, err := api.RecommendedArticles(ctx, 0)
			return articlesLoadedMsg{articles: list, err: err}
		case modeSearch:
			p, err := api.SearchArticles(ctx, search, page, pageSize)
			return articlesLoadedMsg{page: p, err: err}
		default:
			q := client.ArticleQuery{Page: page, Size: pageSize, CategoryID: categoryID}
			p, err := api.ListArticles(ctx, q)
			return articlesLoadedMsg{page: p, err: err}
		}
	}
}

func (m articlesModel) loadCategories() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		cats, err := api.ListCategories(context.Background())
		return categoriesLoadedMsg{categories: cats, err: err}
	}
}

func (m articlesModel) loadArticle(id int64) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		a, err := api.GetArticle(context.Background(), id)
		return articleLoadedMsg{article: a, err: err}
	}
}

// action runs a detail-view mutation and reports it as articleActionMsg.
func (m articlesModel) action(name string, id int64, fn func(context.Context, int64) error) tea.Cmd {
	return func() tea.Msg {
		return articleActionMsg{action: name, id: id, err: fn(context.Background(), id)}
	}
}

func (m articlesModel) Update(msg tea.Msg) (articlesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case articlesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, nil
		}
		if msg.page != nil {
			m.articles = msg.page.Records
			m.pages = msg.page.Pages
			m.total = msg.page.Total
		} else {
			m.articles = msg.articles
			m.pages = 1
			m.total = int64(len(msg.articles))
		}
		if m.cursor >= len(m.articles) {
			m.cursor = 0
		}
		return m, nil

	case categoriesLoadedMsg:
		if msg.err == nil {
			m.categories = msg.categories
		}
		return m, nil

	case articleLoadedMsg:
		if msg.err != nil {
			m.detail = false
			return m, nil
		}
		m.current = msg.article
		return m, nil

	case articleActionMsg:
		if msg.err != nil {
			return m, nil
		}
		m.statusMsg = msg.action
		if msg.action == "deleted" {
			m.detail = false
			m.current = nil
			m.loading = true
			return m, m.load()
		}
		return m, m.loadArticle(msg.id)

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "copied!"
		}
		return m, nil

	case openResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("open failed: %v", msg.err)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		if m.editing {
			return m.updateSearch(msg)
		}
		if m.detail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m articlesModel) updateSearch(msg tea.KeyMsg) (articlesModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.page = 1
		m.cursor = 0
		m.loading = true
		if strings.TrimSpace(m.search) == "" {
			m.search = ""
			m.mode = modeLatest
		} else {
			m.mode = modeSearch
		}
		return m, m.load()
	case "esc":
		m.editing = false
		m.search = ""
		if m.mode == modeSearch {
			m.mode = modeLatest
			m.loading = true
			return m, m.load()
		}
	default:
		m.search = editRune(m.search, keyText(msg))
	}
	return m, nil
}

func (m articlesModel) updateList(msg tea.KeyMsg) (articlesModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.articles)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(m.articles) {
			a := m.articles[m.cursor]
			m.detail = true
			m.current = &a
			m.scroll = 0
			return m, m.loadArticle(a.ID)
		}
	case "/":
		m.editing = true
		m.search = ""
	case "m":
		switch m.mode {
		case modeLatest:
			m.mode = modeHot
		case modeHot:
			m.mode = modeRecommended
		default:
			m.mode = modeLatest
			m.search = ""
		}
		m.page = 1
		m.cursor = 0
		m.loading = true
		return m, m.load()
	case "t":
		m.categoryID = m.nextCategory()
		m.mode = modeLatest
		m.search = ""
		m.page = 1
		m.cursor = 0
		m.loading = true
		return m, m.load()
	case "]":
		if int64(m.page) < m.pages {
			m.page++
			m.cursor = 0
			m.loading = true
			return m, m.load()
		}
	case "[":
		if m.page > 1 {
			m.page--
			m.cursor = 0
			m.loading = true
			return m, m.load()
		}
	case "e":
		if m.cursor < len(m.articles) {
			a := m.articles[m.cursor]
			return m, func() tea.Msg { return editArticleMsg{article: a} }
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

// nextCategory cycles all -> first -> ... -> last -> all.
func (m articlesModel) nextCategory() int64 {
	if len(m.categories) == 0 {
		return 0
	}
	if m.categoryID == 0 {
		return m.categories[0].ID
	}
	for i, c := range m.categories {
		if c.ID == m.categoryID {
			if i+1 < len(m.categories) {
				return m.categories[i+1].ID
			}
			return 0
		}
	}
	return 0
}

func (m articlesModel) updateDetail(msg tea.KeyMsg) (articlesModel, tea.Cmd) {
	if m.current == nil {
		if msg.String() == "esc" {
			m.detail = false
		}
		return m, nil
	}
	a := *m.current

	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() == "y" {
			return m, m.action("deleted", a.ID, m.api.DeleteArticle)
		}
		m.statusMsg = "delete canceled"
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.detail = false
		m.current = nil
	case "j", "down":
		m.scroll++
	case "k", "up":
		if m.scroll > 0 {
			m.scroll--
		}
	case "u":
		return m, m.action("liked", a.ID, m.api.LikeArticle)
	case "U":
		return m, m.action("unliked", a.ID, m.api.UnlikeArticle)
	case "p":
		if a.Published() {
			m.statusMsg = "already published"
			return m, nil
		}
		return m, m.action("published", a.ID, m.api.PublishArticle)
	case "d":
		m.confirmDelete = true
	case "e":
		return m, func() tea.Msg { return editArticleMsg{article: a} }
	case "c":
		text := a.Content
		return m, func() tea.Msg {
			return copyResultMsg{err: clipboard.WriteAll(text)}
		}
	case "o":
		if m.articleURL == nil {
			return m, nil
		}
		url := m.articleURL(a.ID)
		return m, func() tea.Msg {
			return openResultMsg{err: browser.Open(url)}
		}
	}
	return m, nil
}

func (m articlesModel) helpKeys() string {
	switch {
	case m.confirmDelete:
		return helpBar("y", "delete", "any", "cancel")
	case m.detail:
		return helpBar("u/U", "like", "p", "publish", "e", "edit", "d", "delete", "c", "copy", "o", "open", "esc", "back")
	case m.editing:
		return helpBar("enter", "search", "esc", "cancel")
	default:
		return helpBar("1-3", "tabs", "j/k", "nav", "m", "mode", "/", "search", "t", "category", "[ ]", "page", "n", "new", "?", "help", "q", "quit")
	}
}

func (m articlesModel) View() string {
	if m.detail {
		return m.viewDetail()
	}

	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("ARTICLES") + "  ")
	for _, mode := range []listMode{modeLatest, modeHot, modeRecommended} {
		label := "[" + mode.String() + "]"
		if mode == m.mode {
			b.WriteString(searchStyle.Render(label) + " ")
		} else {
			b.WriteString(dimStyle.Render(label) + " ")
		}
	}
	b.WriteString(helpKeyStyle.Render("m") + "\n")

	switch {
	case m.editing:
		b.WriteString(" " + searchStyle.Render("/ "+m.search+"█"))
	case m.mode == modeSearch:
		b.WriteString(" " + searchStyle.Render("/ "+m.search))
	default:
		b.WriteString(" " + dimStyle.Render("/ search..."))
	}
	if m.mode == modeLatest {
		cat := "all"
		if m.categoryID != 0 {
			cat = categoryName(m.categories, m.categoryID)
		}
		b.WriteString("   " + metaStyle.Render("category: ") + normalStyle.Render(cat) + " " + helpKeyStyle.Render("t"))
	}
	b.WriteString("\n")
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", max(m.width-2, 4))) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + accentStyle.Render(m.statusMsg) + "\n")
	}
	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading..."))
		return b.String()
	}
	if len(m.articles) == 0 {
		b.WriteString(" " + dimStyle.Render("no articles found"))
		return b.String()
	}

	for i, a := range m.articles {
		b.WriteString(m.renderRow(i, a) + "\n")
	}

	if m.mode == modeLatest || m.mode == modeSearch {
		b.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d of %d . %d articles", m.page, max(m.pages, 1), m.total)) + "\n")
	}
	return truncateToHeight(b.String(), m.height)
}

func (m articlesModel) renderRow(i int, a domain.Article) string {
	cursor := "  "
	style := dimStyle
	if i == m.cursor {
		cursor = accentStyle.Render("▸") + " "
		style = normalStyle.Bold(true)
	}

	marker := "  "
	if a.Pinned() {
		marker = pinnedStyle.Render("▲ ")
	}

	right := likeStyle.Render(fmt.Sprintf("♥%d", a.LikeCount)) + " " +
		metaStyle.Render(fmt.Sprintf("%5d views  %-9s", a.ViewCount, formatTime(a.CreateTime.Time)))
	if a.Status != "" && !a.Published() {
		right = StatusStyle(a.Status).Render(strings.ToLower(a.Status)) + " " + right
	}

	titleWidth := max(m.width-6-lipgloss.Width(right), 10)
	title := fmt.Sprintf("%-*s", titleWidth, truncStr(cleanTitle(a.Title), titleWidth))
	line := cursor + marker + style.Render(title) + " " + right
	if i != m.cursor {
		return line
	}
	line = selectedRowBg.Render(line + strings.Repeat(" ", max(m.width-lipgloss.Width(line), 0)))
	if ex := excerpt(a); ex != "" {
		line += "\n      " + dimStyle.Italic(true).Render(truncStr(ex, max(m.width-8, 10)))
	}
	return line
}

func (m articlesModel) viewDetail() string {
	if m.current == nil {
		return " " + dimStyle.Render("loading...")
	}
	a := m.current

	var b strings.Builder
	b.WriteString(" " + titleStyle.Render(cleanTitle(a.Title)) + "\n")

	meta := []string{StatusStyle(a.Status).Render(strings.ToLower(a.Status))}
	if name := categoryName(m.categories, a.CategoryID); name != "" {
		meta = append(meta, name)
	}
	meta = append(meta,
		fmt.Sprintf("%d views", a.ViewCount),
		likeStyle.Render(fmt.Sprintf("♥ %d", a.LikeCount)),
		fmt.Sprintf("%d comments", a.CommentCount),
	)
	if !a.PublishTime.IsZero() {
		meta = append(meta, "published "+a.PublishTime.Format("2006-01-02 15:04"))
	}
	if a.Recommended() {
		meta = append(meta, pinnedStyle.Render("recommended"))
	}
	b.WriteString(" " + metaStyle.Render(strings.Join(meta, " . ")) + "\n")

	if m.statusMsg != "" {
		b.WriteString(" " + accentStyle.Render(m.statusMsg) + "\n")
	}
	if m.confirmDelete {
		b.WriteString(" " + ToastStyle(client.LevelWarn).Render("delete this article? y/n") + "\n")
	}
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", max(m.width-2, 4))) + "\n")

	if a.Summary != "" {
		b.WriteString(" " + sectionHeaderStyle.Italic(true).Render(a.Summary) + "\n\n")
	}

	wrapped := lipgloss.NewStyle().Width(max(m.width-4, 20)).Render(a.Content)
	lines := strings.Split(wrapped, "\n")
	start := min(m.scroll, max(len(lines)-1, 0))
	for _, line := range lines[start:] {
		b.WriteString(" " + normalStyle.Render(line) + "\n")
	}
	return truncateToHeight(b.String(), m.height)
}
