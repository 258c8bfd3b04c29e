package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/air846/personal-blog-system/pkg/client"
	"github.com/air846/personal-blog-system/pkg/domain"
)

func newTestApp(api *fakeAPI, s *fakeSession) App {
	a := NewApp(Deps{
		API:        api,
		Session:    s,
		ArticleURL: func(id int64) string { return "http://blog.test/article/1" },
		WebURL:     "http://blog.test",
	})
	a, _ = update(a, tea.WindowSizeMsg{Width: 80, Height: 30})
	return a
}

func update(a App, msg tea.Msg) (App, tea.Cmd) {
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestAppStartView(t *testing.T) {
	if a := newTestApp(&fakeAPI{}, &fakeSession{}); a.view != viewLogin {
		t.Errorf("view = %d, want login when signed out", a.view)
	}
	if a := newTestApp(&fakeAPI{}, loggedIn()); a.view != viewArticles {
		t.Errorf("view = %d, want articles when signed in", a.view)
	}
}

func TestAppWindowSizeReservesChrome(t *testing.T) {
	a := newTestApp(&fakeAPI{}, loggedIn())
	if a.articles.height != 25 || a.articles.width != 80 {
		t.Errorf("articles size = %dx%d, want 80x25", a.articles.width, a.articles.height)
	}
}

func TestAppQuitKeys(t *testing.T) {
	a := newTestApp(&fakeAPI{}, loggedIn())
	if _, cmd := update(a, keyPress("q")); !isQuit(cmd) {
		t.Error("expected q to quit from articles")
	}

	login := newTestApp(&fakeAPI{}, &fakeSession{})
	if _, cmd := update(login, tea.KeyMsg{Type: tea.KeyCtrlC}); !isQuit(cmd) {
		t.Error("expected ctrl+c to quit from login")
	}
}

func TestAppLoginViewCapturesKeys(t *testing.T) {
	a := newTestApp(&fakeAPI{}, &fakeSession{})
	a, cmd := update(a, keyPress("q"))
	if cmd != nil {
		t.Error("expected q to be typed on the login view")
	}
	a, _ = update(a, keyPress("2"))
	if a.view != viewLogin {
		t.Errorf("view = %d, want login", a.view)
	}
	if a.login.fields[loginUsername] != "q2" {
		t.Errorf("username = %q, want q2", a.login.fields[loginUsername])
	}
}

func TestAppTabSwitching(t *testing.T) {
	api := &fakeAPI{}
	s := loggedIn()
	a := newTestApp(api, s)

	a, cmd := update(a, keyPress("2"))
	if a.view != viewTaxonomy {
		t.Fatalf("view = %d, want taxonomy", a.view)
	}
	runCmd(cmd)
	if !api.called("ListTags") {
		t.Errorf("calls = %v, want taxonomy load", api.calls)
	}

	a, cmd = update(a, keyPress("3"))
	if a.view != viewProfile {
		t.Fatalf("view = %d, want profile", a.view)
	}
	runCmd(cmd)
	if len(s.calls) == 0 || s.calls[0] != "FetchProfile" {
		t.Errorf("session calls = %v, want FetchProfile", s.calls)
	}

	a, _ = update(a, keyPress("1"))
	if a.view != viewArticles {
		t.Errorf("view = %d, want articles", a.view)
	}
	if !strings.Contains(a.View(), "Articles") {
		t.Errorf("expected tab bar, got:\n%s", a.View())
	}
}

func TestAppTabKeysIgnoredWhileSearching(t *testing.T) {
	a := newTestApp(&fakeAPI{}, loggedIn())
	a, _ = update(a, keyPress("/"))
	a, cmd := update(a, keyPress("q"))
	if isQuit(cmd) || a.view != viewArticles {
		t.Fatal("expected q to be typed into search")
	}
	if a.articles.search != "q" {
		t.Errorf("search = %q, want q", a.articles.search)
	}
}

func TestAppNoticeToast(t *testing.T) {
	a := newTestApp(&fakeAPI{}, loggedIn())

	a, _ = update(a, noticeMsg{Level: client.LevelError, Text: "internal server error"})
	if !strings.Contains(a.View(), "internal server error") {
		t.Fatalf("expected toast in view, got:\n%s", a.View())
	}
	first := a.toastID

	a, _ = update(a, noticeMsg{Level: client.LevelSuccess, Text: "saved"})
	a, _ = update(a, toastExpiredMsg{id: first})
	if a.toast.Text != "saved" {
		t.Errorf("toast = %q, want newer toast kept", a.toast.Text)
	}

	a, _ = update(a, toastExpiredMsg{id: a.toastID})
	if a.toast.Text != "" {
		t.Errorf("toast = %q, want cleared", a.toast.Text)
	}
}

func TestAppNavigate(t *testing.T) {
	a := newTestApp(&fakeAPI{}, loggedIn())
	a.login.fields[loginUsername] = "ada"
	a.login.fields[loginPassword] = "secret"

	a, _ = update(a, navigateMsg(client.RouteLogin))
	if a.view != viewLogin {
		t.Fatalf("view = %d, want login", a.view)
	}
	if a.login.fields[loginPassword] != "" || a.login.fields[loginUsername] != "ada" {
		t.Errorf("login fields = %q, want password cleared", a.login.fields)
	}

	a, _ = update(a, navigateMsg(client.RouteHome))
	if a.view != viewArticles {
		t.Errorf("view = %d, want articles", a.view)
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a := newTestApp(&fakeAPI{}, loggedIn())

	a, _ = update(a, keyPress("?"))
	if !a.helpOpen || !strings.Contains(a.View(), "http://blog.test") {
		t.Fatalf("expected help overlay, got:\n%s", a.View())
	}
	a, _ = update(a, keyPress("2"))
	if a.view != viewArticles {
		t.Error("expected tab keys ignored while help is open")
	}
	a, _ = update(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.helpOpen {
		t.Error("expected esc to close help")
	}
}

func TestAppComposeFlow(t *testing.T) {
	api := &fakeAPI{}
	a := newTestApp(api, loggedIn())

	a, _ = update(a, keyPress("n"))
	if a.view != viewCompose || a.compose.editID != 0 {
		t.Fatalf("view = %d editID = %d, want new compose", a.view, a.compose.editID)
	}
	a, _ = update(a, keyPress("n"))
	if a.compose.fields[composeTitle] != "n" {
		t.Errorf("title = %q, want typed n", a.compose.fields[composeTitle])
	}
	a, _ = update(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.view != viewArticles {
		t.Errorf("view = %d, want articles after esc", a.view)
	}

	a, _ = update(a, editArticleMsg{article: domain.Article{ID: 9, Title: "T"}})
	if a.view != viewCompose || a.compose.editID != 9 {
		t.Errorf("view = %d editID = %d, want edit of 9", a.view, a.compose.editID)
	}

	a, cmd := update(a, composeDoneMsg{})
	if a.view != viewArticles || cmd == nil {
		t.Error("expected reload of articles after save")
	}
}

func TestAppFilterCategory(t *testing.T) {
	api := &fakeAPI{}
	a := newTestApp(api, loggedIn())
	a.view = viewTaxonomy

	a, cmd := update(a, filterCategoryMsg{id: 4})
	if a.view != viewArticles || a.articles.categoryID != 4 {
		t.Fatalf("view = %d category = %d, want articles filtered by 4", a.view, a.articles.categoryID)
	}
	runCmd(cmd)
	if api.lastQuery.CategoryID != 4 {
		t.Errorf("query = %+v, want categoryId 4", api.lastQuery)
	}
}

func TestAppHeaderShowsUser(t *testing.T) {
	a := newTestApp(&fakeAPI{}, loggedIn())
	view := a.View()
	if !strings.Contains(view, "Ada") || !strings.Contains(view, "user") {
		t.Errorf("expected user in header, got:\n%s", view)
	}

	out := newTestApp(&fakeAPI{}, &fakeSession{})
	if !strings.Contains(out.View(), "not signed in") {
		t.Errorf("expected signed-out header, got:\n%s", out.View())
	}
}
