package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/air846/personal-blog-system/pkg/domain"
)

type taxonomyPane int

const (
	paneCategories taxonomyPane = iota
	paneTags
)

type taxonomyModel struct {
	api        API
	pane       taxonomyPane
	categories []domain.Category
	tags       []domain.Tag
	cursor     int
	category   *domain.Category // detail of the selected category
	tag        *domain.Tag      // detail of the selected tag
	loading    bool
	width      int
	height     int
}

type taxonomyLoadedMsg struct {
	categories []domain.Category
	tags       []domain.Tag
	err        error
}

type categoryDetailMsg struct {
	category *domain.Category
	err      error
}

type tagDetailMsg struct {
	tag *domain.Tag
	err error
}

type filterCategoryMsg struct{ id int64 }

func newTaxonomyModel(api API) taxonomyModel {
	return taxonomyModel{api: api, loading: true}
}

func (m taxonomyModel) Init() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		cats, err := api.ListCategories(context.Background())
		if err != nil {
			return taxonomyLoadedMsg{err: err}
		}
		tags, err := api.ListTags(context.Background())
		return taxonomyLoadedMsg{categories: cats, tags: tags, err: err}
	}
}

func (m taxonomyModel) listLen() int {
	if m.pane == paneTags {
		return len(m.tags)
	}
	return len(m.categories)
}

func (m taxonomyModel) Update(msg tea.Msg) (taxonomyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case taxonomyLoadedMsg:
		m.loading = false
		if msg.err == nil {
			m.categories = msg.categories
			m.tags = msg.tags
		}
		if m.cursor >= m.listLen() {
			m.cursor = 0
		}
		return m, nil

	case categoryDetailMsg:
		if msg.err == nil {
			m.category = msg.category
		}
		return m, nil

	case tagDetailMsg:
		if msg.err == nil {
			m.tag = msg.tag
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m taxonomyModel) updateKeys(msg tea.KeyMsg) (taxonomyModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "h", "l":
		if m.pane == paneCategories {
			m.pane = paneTags
		} else {
			m.pane = paneCategories
		}
		m.cursor = 0
	case "j", "down":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor >= m.listLen() {
			return m, nil
		}
		api := m.api
		if m.pane == paneTags {
			id := m.tags[m.cursor].ID
			return m, func() tea.Msg {
				t, err := api.GetTag(context.Background(), id)
				return tagDetailMsg{tag: t, err: err}
			}
		}
		id := m.categories[m.cursor].ID
		return m, func() tea.Msg {
			c, err := api.GetCategory(context.Background(), id)
			return categoryDetailMsg{category: c, err: err}
		}
	case "a":
		if m.pane == paneCategories && m.cursor < len(m.categories) {
			id := m.categories[m.cursor].ID
			return m, func() tea.Msg { return filterCategoryMsg{id: id} }
		}
	case "r":
		m.loading = true
		return m, m.Init()
	}
	return m, nil
}

func (m taxonomyModel) View() string {
	var b strings.Builder

	cats, tags := dimStyle.Render("[categories]"), dimStyle.Render("[tags]")
	if m.pane == paneCategories {
		cats = searchStyle.Render("[categories]")
	} else {
		tags = searchStyle.Render("[tags]")
	}
	b.WriteString(" " + titleStyle.Render("TAXONOMY") + "  " + cats + " " + tags + "\n")
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", max(m.width-2, 4))) + "\n")

	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading..."))
		return b.String()
	}

	if m.pane == paneTags {
		b.WriteString(m.viewTags())
	} else {
		b.WriteString(m.viewCategories())
	}
	return truncateToHeight(b.String(), m.height)
}

func (m taxonomyModel) viewCategories() string {
	if len(m.categories) == 0 {
		return " " + dimStyle.Render("no categories")
	}
	var b strings.Builder
	for i, c := range m.categories {
		cursor := "  "
		style := dimStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
			style = normalStyle.Bold(true)
		}
		line := cursor + style.Render(c.Name)
		if !c.Enabled() {
			line += " " + archivedStyle.Render("(disabled)")
		}
		b.WriteString(line + "\n")
	}

	if c := m.category; c != nil {
		b.WriteString("\n " + sectionHeaderStyle.Render(fmt.Sprintf("#%d %s", c.ID, c.Name)) + "\n")
		if c.Description != "" {
			b.WriteString(" " + normalStyle.Render(c.Description) + "\n")
		}
		b.WriteString(" " + metaStyle.Render(fmt.Sprintf("sort %d . created %s", c.Sort, formatTime(c.CreateTime.Time))) + "\n")
	}
	return b.String()
}

func (m taxonomyModel) viewTags() string {
	if len(m.tags) == 0 {
		return " " + dimStyle.Render("no tags")
	}
	var b strings.Builder
	for i, t := range m.tags {
		cursor := "  "
		if i == m.cursor {
			cursor = accentStyle.Render("▸") + " "
		}
		b.WriteString(cursor + TagStyle(t).Render("● ") + normalStyle.Render(t.Name) + "\n")
	}

	if t := m.tag; t != nil {
		b.WriteString("\n " + TagStyle(*t).Render(fmt.Sprintf("#%d %s", t.ID, t.Name)) + "\n")
		color := t.Color
		if color == "" {
			color = "none"
		}
		b.WriteString(" " + metaStyle.Render(fmt.Sprintf("color %s . created %s", color, formatTime(t.CreateTime.Time))) + "\n")
	}
	return b.String()
}
