package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/air846/personal-blog-system/pkg/domain"
)

func taxonomyAPI() *fakeAPI {
	return &fakeAPI{
		categories: []domain.Category{
			{ID: 2, Name: "Go", Description: "gophers", Status: 1},
			{ID: 3, Name: "Old", Status: 0},
		},
		tags: []domain.Tag{{ID: 7, Name: "golang", Color: "#00ADD8"}},
	}
}

func loadedTaxonomy(api *fakeAPI) taxonomyModel {
	m := newTaxonomyModel(api)
	m.width = 80
	for _, msg := range runCmd(m.Init()) {
		m, _ = m.Update(msg)
	}
	return m
}

func TestTaxonomyListsCategories(t *testing.T) {
	m := loadedTaxonomy(taxonomyAPI())

	view := m.View()
	for _, want := range []string{"Go", "Old", "(disabled)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestTaxonomyCategoryDetail(t *testing.T) {
	api := taxonomyAPI()
	m := loadedTaxonomy(api)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for _, msg := range runCmd(cmd) {
		m, _ = m.Update(msg)
	}
	if !api.called("GetCategory 2") {
		t.Fatalf("calls = %v, want GetCategory 2", api.calls)
	}
	if !strings.Contains(m.View(), "gophers") {
		t.Errorf("expected description, got:\n%s", m.View())
	}
}

func TestTaxonomyTagPane(t *testing.T) {
	api := taxonomyAPI()
	m := loadedTaxonomy(api)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.pane != paneTags {
		t.Fatal("expected tags pane after tab")
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for _, msg := range runCmd(cmd) {
		m, _ = m.Update(msg)
	}
	if !api.called("GetTag 7") {
		t.Fatalf("calls = %v, want GetTag 7", api.calls)
	}
	if !strings.Contains(m.View(), "color #00ADD8") {
		t.Errorf("expected tag detail, got:\n%s", m.View())
	}
}

func TestTaxonomyFilterArticles(t *testing.T) {
	m := loadedTaxonomy(taxonomyAPI())
	m, _ = m.Update(keyPress("j"))

	_, cmd := m.Update(keyPress("a"))
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if f, ok := msgs[0].(filterCategoryMsg); !ok || f.id != 3 {
		t.Errorf("got %#v, want filterCategoryMsg{3}", msgs[0])
	}
}

func TestTaxonomyEmpty(t *testing.T) {
	m := loadedTaxonomy(&fakeAPI{})
	if !strings.Contains(m.View(), "no categories") {
		t.Errorf("view = %q", m.View())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.category != nil {
		t.Error("expected no detail on an empty list")
	}
}
