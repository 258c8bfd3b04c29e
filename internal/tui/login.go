package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/air846/personal-blog-system/pkg/client"
)

type loginField int

const (
	loginUsername loginField = iota
	loginPassword
	loginEmail
	loginNickname
	numLoginFields
)

type loginModel struct {
	session    Session
	register   bool
	fields     [numLoginFields]string
	focus      loginField
	submitting bool
	statusMsg  string
	width      int
	height     int
}

type loginResultMsg struct{ err error }

type registerResultMsg struct{ err error }

func newLoginModel(s Session) loginModel {
	return loginModel{session: s}
}

// lastField is the final field of the active form.
func (m loginModel) lastField() loginField {
	if m.register {
		return loginNickname
	}
	return loginPassword
}

// clearSecrets drops the typed password, keeping the username for retry.
func (m loginModel) clearSecrets() loginModel {
	m.fields[loginPassword] = ""
	m.submitting = false
	m.focus = loginPassword
	if m.fields[loginUsername] == "" {
		m.focus = loginUsername
	}
	return m
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			// The client has already shown why.
			m.fields[loginPassword] = ""
			m.focus = loginPassword
		}
		return m, nil

	case registerResultMsg:
		m.submitting = false
		if msg.err == nil {
			m.register = false
			m.fields[loginEmail] = ""
			m.fields[loginNickname] = ""
			m = m.clearSecrets()
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	m.statusMsg = ""
	last := m.lastField()

	switch msg.String() {
	case "ctrl+r":
		m.register = !m.register
		if m.focus > m.lastField() {
			m.focus = loginUsername
		}
	case "ctrl+s":
		return m.submit()
	case "tab", "down":
		m.focus = (m.focus + 1) % (last + 1)
	case "shift+tab", "up":
		m.focus = (m.focus + last) % (last + 1)
	case "enter":
		if m.focus == last {
			return m.submit()
		}
		m.focus++
	default:
		m.fields[m.focus] = editRune(m.fields[m.focus], keyText(msg))
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	username := strings.TrimSpace(m.fields[loginUsername])
	password := m.fields[loginPassword]
	if username == "" || password == "" {
		m.statusMsg = "username and password are required"
		return m, nil
	}

	m.submitting = true
	s := m.session
	if m.register {
		req := client.RegisterRequest{
			Username: username,
			Password: password,
			Email:    strings.TrimSpace(m.fields[loginEmail]),
			Nickname: strings.TrimSpace(m.fields[loginNickname]),
		}
		return m, func() tea.Msg {
			return registerResultMsg{err: s.Register(context.Background(), req)}
		}
	}
	return m, func() tea.Msg {
		return loginResultMsg{err: s.Login(context.Background(), username, password)}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	title := "SIGN IN"
	if m.register {
		title = "CREATE ACCOUNT"
	}
	b.WriteString("\n " + titleStyle.Render(title) + "\n\n")

	labels := [numLoginFields]string{"username", "password", "email", "nickname"}
	for i := loginUsername; i <= m.lastField(); i++ {
		b.WriteString(renderField(labels[i], m.fields[i], i == m.focus, i == loginPassword) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.submitting && m.register:
		b.WriteString(" " + dimStyle.Render("creating account..."))
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("signing in..."))
	case m.statusMsg != "":
		b.WriteString(" " + ToastStyle(client.LevelWarn).Render(m.statusMsg))
	}
	return b.String()
}

func (m loginModel) helpKeys() string {
	toggle := "register"
	if m.register {
		toggle = "sign in"
	}
	return helpBar("tab", "next", "enter", "submit", "ctrl+r", toggle, "ctrl+c", "quit")
}
