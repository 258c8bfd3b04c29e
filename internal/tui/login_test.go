package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeInto(m loginModel, s string) loginModel {
	m, _ = m.Update(keyPress(s))
	return m
}

func TestLoginSubmitsCredentials(t *testing.T) {
	s := &fakeSession{}
	m := newLoginModel(s)

	m = typeInto(m, "ada")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeInto(m, "secret")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.submitting || cmd == nil {
		t.Fatal("expected submitting with a login command after enter on password")
	}
	if !strings.Contains(m.View(), "signing in...") {
		t.Errorf("expected progress text, got:\n%s", m.View())
	}

	msgs := runCmd(cmd)
	if s.lastUser != "ada" || s.lastPass != "secret" {
		t.Errorf("Login(%q, %q), want ada/secret", s.lastUser, s.lastPass)
	}
	m, _ = m.Update(msgs[0])
	if m.submitting {
		t.Error("submitting still set after result")
	}
}

func TestLoginPasswordIsMasked(t *testing.T) {
	m := newLoginModel(&fakeSession{})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeInto(m, "hunter2")

	view := m.View()
	if strings.Contains(view, "hunter2") {
		t.Errorf("password shown in clear:\n%s", view)
	}
	if !strings.Contains(view, "•••••••") {
		t.Errorf("expected masked password, got:\n%s", view)
	}
}

func TestLoginRequiresFields(t *testing.T) {
	s := &fakeSession{}
	m := newLoginModel(s)
	m = typeInto(m, "ada")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil || len(s.calls) != 0 {
		t.Fatal("expected no login without a password")
	}
	if m.statusMsg != "username and password are required" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestLoginFailureClearsPassword(t *testing.T) {
	m := newLoginModel(&fakeSession{})
	m.fields[loginUsername] = "ada"
	m.fields[loginPassword] = "wrong"
	m.submitting = true

	m, _ = m.Update(loginResultMsg{err: errTest})
	if m.fields[loginPassword] != "" {
		t.Errorf("password = %q, want cleared", m.fields[loginPassword])
	}
	if m.fields[loginUsername] != "ada" {
		t.Errorf("username = %q, want kept", m.fields[loginUsername])
	}
	if m.focus != loginPassword {
		t.Errorf("focus = %d, want password", m.focus)
	}
}

func TestLoginRegisterFlow(t *testing.T) {
	s := &fakeSession{}
	m := newLoginModel(s)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if !m.register {
		t.Fatal("expected register form after ctrl+r")
	}
	if !strings.Contains(m.View(), "CREATE ACCOUNT") || !strings.Contains(m.View(), "nickname") {
		t.Errorf("expected register form, got:\n%s", m.View())
	}

	for i, text := range []string{"ada", "pw", "ada@example.com", "Ada"} {
		if i > 0 {
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
		}
		m = typeInto(m, text)
	}

	// Enter on the last register field submits.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := runCmd(cmd)
	if s.register.Username != "ada" || s.register.Email != "ada@example.com" || s.register.Nickname != "Ada" {
		t.Errorf("register request = %+v", s.register)
	}

	m, _ = m.Update(msgs[0])
	if m.register {
		t.Error("expected sign-in form after successful registration")
	}
	if m.fields[loginUsername] != "ada" || m.fields[loginPassword] != "" {
		t.Errorf("fields = %q, want username kept and password cleared", m.fields)
	}
}

func TestLoginToggleResetsHiddenFocus(t *testing.T) {
	m := newLoginModel(&fakeSession{})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m.focus = loginNickname

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.focus != loginUsername {
		t.Errorf("focus = %d, want username when the field is hidden", m.focus)
	}
}

func TestLoginIgnoresKeysWhileSubmitting(t *testing.T) {
	m := newLoginModel(&fakeSession{})
	m.submitting = true
	m = typeInto(m, "x")
	if m.fields[loginUsername] != "" {
		t.Errorf("username = %q, want no edits while submitting", m.fields[loginUsername])
	}
}
