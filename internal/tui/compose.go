package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/air846/personal-blog-system/pkg/client"
	"github.com/air846/personal-blog-system/pkg/domain"
)

type composeField int

const (
	composeTitle composeField = iota
	composeSummary
	composeCover
	composeCategory
	composeTags
	composeStatus
	composeContent
	numComposeFields
)

type composeModel struct {
	api         API
	editID      int64 // 0 when creating
	fields      [numComposeFields]string
	focus       composeField
	categories  []domain.Category
	categoryID  int64
	tags        []domain.Tag
	tagCursor   int
	tagIDs      map[int64]bool
	status      string
	isTop       int // carried through an edit unchanged
	isRecommend int
	submitting  bool
	statusMsg   string
	width       int
	height      int
}

type composeTaxonomyMsg struct {
	categories []domain.Category
	tags       []domain.Tag
	err        error
}

type composeResultMsg struct{ err error }

type composeDoneMsg struct{}

func newComposeModel(api API) composeModel {
	return composeModel{api: api, tagIDs: map[int64]bool{}, status: domain.StatusDraft}
}

func (m composeModel) Init() tea.Cmd {
	if m.categories != nil || m.api == nil {
		return nil
	}
	api := m.api
	return func() tea.Msg {
		cats, err := api.ListCategories(context.Background())
		if err != nil {
			return composeTaxonomyMsg{err: err}
		}
		tags, err := api.ListTags(context.Background())
		return composeTaxonomyMsg{categories: cats, tags: tags, err: err}
	}
}

// reset clears the form for a new article, keeping loaded taxonomy.
func (m composeModel) reset() composeModel {
	fresh := newComposeModel(m.api)
	fresh.categories, fresh.tags = m.categories, m.tags
	fresh.width, fresh.height = m.width, m.height
	return fresh
}

// edit fills the form from an existing article.
func (m composeModel) edit(a domain.Article) composeModel {
	m = m.reset()
	m.editID = a.ID
	m.fields[composeTitle] = a.Title
	m.fields[composeSummary] = a.Summary
	m.fields[composeCover] = a.CoverImage
	m.fields[composeContent] = a.Content
	m.categoryID = a.CategoryID
	m.isTop, m.isRecommend = a.IsTop, a.IsRecommend
	if a.Status != "" {
		m.status = a.Status
	}
	return m
}

func (m composeModel) Update(msg tea.Msg) (composeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case composeTaxonomyMsg:
		if msg.err == nil {
			m.categories = msg.categories
			m.tags = msg.tags
		}
		return m, nil

	case composeResultMsg:
		m.submitting = false
		if msg.err != nil {
			return m, nil
		}
		return m.reset(), func() tea.Msg { return composeDoneMsg{} }

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m composeModel) updateKeys(msg tea.KeyMsg) (composeModel, tea.Cmd) {
	m.statusMsg = ""
	key := msg.String()

	switch key {
	case "ctrl+s":
		return m.submit()
	case "tab":
		m.focus = (m.focus + 1) % numComposeFields
		return m, nil
	case "shift+tab":
		m.focus = (m.focus - 1 + numComposeFields) % numComposeFields
		return m, nil
	}

	switch m.focus {
	case composeCategory:
		switch key {
		case "h", "left":
			m.categoryID = m.cycleCategory(-1)
		case "l", "right":
			m.categoryID = m.cycleCategory(1)
		case "enter":
			m.focus++
		}
	case composeTags:
		switch key {
		case "h", "left":
			if m.tagCursor > 0 {
				m.tagCursor--
			}
		case "l", "right":
			if m.tagCursor < len(m.tags)-1 {
				m.tagCursor++
			}
		case " ", "space", "x":
			if m.tagCursor < len(m.tags) {
				id := m.tags[m.tagCursor].ID
				m.tagIDs[id] = !m.tagIDs[id]
			}
		case "enter":
			m.focus++
		}
	case composeStatus:
		switch key {
		case "h", "l", "left", "right", " ", "space":
			if m.status == domain.StatusPublished {
				m.status = domain.StatusDraft
			} else {
				m.status = domain.StatusPublished
			}
		case "enter":
			m.focus++
		}
	case composeContent:
		if key == "enter" {
			m.fields[composeContent] += "\n"
		} else {
			m.fields[composeContent] = editRune(m.fields[composeContent], keyText(msg))
		}
	default:
		switch key {
		case "enter", "down":
			m.focus++
		case "up":
			if m.focus > 0 {
				m.focus--
			}
		default:
			m.fields[m.focus] = editRune(m.fields[m.focus], keyText(msg))
		}
	}
	return m, nil
}

// cycleCategory steps through none -> first -> ... -> last -> none.
func (m composeModel) cycleCategory(step int) int64 {
	ids := make([]int64, 0, len(m.categories)+1)
	ids = append(ids, 0)
	for _, c := range m.categories {
		if c.Enabled() {
			ids = append(ids, c.ID)
		}
	}
	idx := 0
	for i, id := range ids {
		if id == m.categoryID {
			idx = i
			break
		}
	}
	idx = (idx + step + len(ids)) % len(ids)
	return ids[idx]
}

func (m composeModel) selectedTags() []int64 {
	var ids []int64
	for _, t := range m.tags {
		if m.tagIDs[t.ID] {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func (m composeModel) request() client.ArticleRequest {
	return client.ArticleRequest{
		Title:       strings.TrimSpace(m.fields[composeTitle]),
		Content:     m.fields[composeContent],
		Summary:     strings.TrimSpace(m.fields[composeSummary]),
		CoverImage:  strings.TrimSpace(m.fields[composeCover]),
		CategoryID:  m.categoryID,
		Status:      m.status,
		TagIDs:      m.selectedTags(),
		IsTop:       m.isTop,
		IsRecommend: m.isRecommend,
	}
}

func (m composeModel) submit() (composeModel, tea.Cmd) {
	req := m.request()
	if req.Title == "" {
		m.statusMsg = "title is required"
		return m, nil
	}
	if strings.TrimSpace(req.Content) == "" {
		m.statusMsg = "content is required"
		return m, nil
	}

	m.submitting = true
	api, id := m.api, m.editID
	return m, func() tea.Msg {
		if id != 0 {
			return composeResultMsg{err: api.UpdateArticle(context.Background(), id, req)}
		}
		return composeResultMsg{err: api.CreateArticle(context.Background(), req)}
	}
}

func (m composeModel) View() string {
	var b strings.Builder

	title := "NEW ARTICLE"
	if m.editID != 0 {
		title = fmt.Sprintf("EDIT ARTICLE #%d", m.editID)
	}
	b.WriteString(" " + titleStyle.Render(title) + "\n\n")

	b.WriteString(renderField("title", m.fields[composeTitle], m.focus == composeTitle, false) + "\n")
	b.WriteString(renderField("summary", m.fields[composeSummary], m.focus == composeSummary, false) + "\n")
	b.WriteString(renderField("cover", m.fields[composeCover], m.focus == composeCover, false) + "\n")

	cat := "none"
	if m.categoryID != 0 {
		cat = categoryName(m.categories, m.categoryID)
	}
	b.WriteString(m.choiceLine("category", normalStyle.Render(cat), composeCategory) + "\n")

	var tags []string
	for i, t := range m.tags {
		label := t.Name
		if m.tagIDs[t.ID] {
			label = "[" + label + "]"
		}
		style := TagStyle(t)
		if !m.tagIDs[t.ID] {
			style = dimStyle
		}
		if m.focus == composeTags && i == m.tagCursor {
			style = style.Underline(true)
		}
		tags = append(tags, style.Render(label))
	}
	if len(tags) == 0 {
		tags = append(tags, dimStyle.Render("no tags"))
	}
	b.WriteString(m.choiceLine("tags", strings.Join(tags, " "), composeTags) + "\n")
	b.WriteString(m.choiceLine("status", StatusStyle(m.status).Render(strings.ToLower(m.status)), composeStatus) + "\n")

	b.WriteString(m.choiceLine("content", "", composeContent) + "\n")
	content := m.fields[composeContent]
	if m.focus == composeContent {
		content += "█"
	}
	for _, line := range strings.Split(content, "\n") {
		b.WriteString("    " + normalStyle.Render(line) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("saving..."))
	case m.statusMsg != "":
		b.WriteString(" " + ToastStyle(client.LevelWarn).Render(m.statusMsg))
	}
	return b.String()
}

func (m composeModel) choiceLine(label, value string, field composeField) string {
	cursor := "  "
	style := metaStyle
	if m.focus == field {
		cursor = accentStyle.Render("▸") + " "
		style = inputPromptStyle
	}
	return cursor + style.Render(label+":") + " " + value
}
