package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/air846/personal-blog-system/pkg/client"
	"github.com/air846/personal-blog-system/pkg/domain"
	"github.com/air846/personal-blog-system/pkg/session"
)

var errTest = errors.New("boom")

// fakeAPI records calls and serves canned data.
type fakeAPI struct {
	mu         sync.Mutex
	calls      []string
	articles   []domain.Article
	categories []domain.Category
	tags       []domain.Tag
	lastQuery  client.ArticleQuery
	lastReq    client.ArticleRequest
	err        error
}

func (f *fakeAPI) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeAPI) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeAPI) page() *domain.Page[domain.Article] {
	return &domain.Page[domain.Article]{Records: f.articles, Total: int64(len(f.articles)), Size: pageSize, Current: 1, Pages: 3}
}

func (f *fakeAPI) ListArticles(_ context.Context, q client.ArticleQuery) (*domain.Page[domain.Article], error) {
	f.record("ListArticles")
	f.lastQuery = q
	return f.page(), f.err
}

func (f *fakeAPI) GetArticle(_ context.Context, id int64) (*domain.Article, error) {
	f.record("GetArticle %d", id)
	for _, a := range f.articles {
		if a.ID == id {
			a.Content = a.Content + "\n\nfull body"
			return &a, f.err
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeAPI) CreateArticle(_ context.Context, req client.ArticleRequest) error {
	f.record("CreateArticle")
	f.lastReq = req
	return f.err
}

func (f *fakeAPI) UpdateArticle(_ context.Context, id int64, req client.ArticleRequest) error {
	f.record("UpdateArticle %d", id)
	f.lastReq = req
	return f.err
}

func (f *fakeAPI) DeleteArticle(_ context.Context, id int64) error {
	f.record("DeleteArticle %d", id)
	return f.err
}

func (f *fakeAPI) PublishArticle(_ context.Context, id int64) error {
	f.record("PublishArticle %d", id)
	return f.err
}

func (f *fakeAPI) LikeArticle(_ context.Context, id int64) error {
	f.record("LikeArticle %d", id)
	return f.err
}

func (f *fakeAPI) UnlikeArticle(_ context.Context, id int64) error {
	f.record("UnlikeArticle %d", id)
	return f.err
}

func (f *fakeAPI) HotArticles(_ context.Context, _ int) ([]domain.Article, error) {
	f.record("HotArticles")
	return f.articles, f.err
}

func (f *fakeAPI) RecommendedArticles(_ context.Context, _ int) ([]domain.Article, error) {
	f.record("RecommendedArticles")
	return f.articles, f.err
}

func (f *fakeAPI) SearchArticles(_ context.Context, keyword string, _, _ int) (*domain.Page[domain.Article], error) {
	f.record("SearchArticles %s", keyword)
	return f.page(), f.err
}

func (f *fakeAPI) ListCategories(_ context.Context) ([]domain.Category, error) {
	f.record("ListCategories")
	return f.categories, f.err
}

func (f *fakeAPI) GetCategory(_ context.Context, id int64) (*domain.Category, error) {
	f.record("GetCategory %d", id)
	for _, c := range f.categories {
		if c.ID == id {
			return &c, f.err
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeAPI) ListTags(_ context.Context) ([]domain.Tag, error) {
	f.record("ListTags")
	return f.tags, f.err
}

func (f *fakeAPI) GetTag(_ context.Context, id int64) (*domain.Tag, error) {
	f.record("GetTag %d", id)
	for _, t := range f.tags {
		if t.ID == id {
			return &t, f.err
		}
	}
	return nil, fmt.Errorf("not found")
}

// fakeSession is an in-memory Session.
type fakeSession struct {
	snap     session.Snapshot
	calls    []string
	err      error
	lastUser string
	lastPass string
	update   client.UpdateUserRequest
	password client.ChangePasswordRequest
	register client.RegisterRequest
}

func (f *fakeSession) Snapshot() session.Snapshot { return f.snap }

func (f *fakeSession) Login(_ context.Context, username, password string) error {
	f.calls = append(f.calls, "Login")
	f.lastUser, f.lastPass = username, password
	return f.err
}

func (f *fakeSession) Register(_ context.Context, req client.RegisterRequest) error {
	f.calls = append(f.calls, "Register")
	f.register = req
	return f.err
}

func (f *fakeSession) FetchProfile(_ context.Context) error {
	f.calls = append(f.calls, "FetchProfile")
	return f.err
}

func (f *fakeSession) UpdateProfile(_ context.Context, req client.UpdateUserRequest) error {
	f.calls = append(f.calls, "UpdateProfile")
	f.update = req
	return f.err
}

func (f *fakeSession) ChangePassword(_ context.Context, req client.ChangePasswordRequest) error {
	f.calls = append(f.calls, "ChangePassword")
	f.password = req
	return f.err
}

func (f *fakeSession) Logout() {
	f.calls = append(f.calls, "Logout")
	f.snap = session.Snapshot{}
}

func loggedIn() *fakeSession {
	return &fakeSession{snap: session.Snapshot{
		Token:    "tok",
		LoggedIn: true,
		User:     &domain.UserProfile{ID: 1, Username: "ada", Nickname: "Ada", Role: "USER"},
	}}
}

func testArticles() []domain.Article {
	return []domain.Article{
		{ID: 1, Title: "Intro to Go", Content: "# Hello\nfirst post", Status: domain.StatusPublished, LikeCount: 3},
		{ID: 2, Title: "Draft notes", Content: "wip", Status: domain.StatusDraft, IsTop: 1},
	}
}

// runCmd executes cmd and flattens batches into the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
