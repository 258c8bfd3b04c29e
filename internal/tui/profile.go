package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/air846/personal-blog-system/pkg/client"
)

// profileState is the state machine for profile edits.
type profileState int

const (
	profileNormal profileState = iota
	profileEditing
	profilePassword
	profileConfirmLogout
)

type profileModel struct {
	session   Session
	state     profileState
	fields    [3]string // editing: nickname, avatar; password: old, new, confirm
	focus     int
	busy      bool
	statusMsg string
	width     int
	height    int
}

type profileRefreshedMsg struct{ err error }

type profileSavedMsg struct{ err error }

type passwordChangedMsg struct{ err error }

func newProfileModel(s Session) profileModel {
	return profileModel{session: s}
}

func (m profileModel) Init() tea.Cmd {
	if m.session == nil || !m.session.Snapshot().LoggedIn {
		return nil
	}
	s := m.session
	return func() tea.Msg {
		return profileRefreshedMsg{err: s.FetchProfile(context.Background())}
	}
}

func (m profileModel) numFields() int {
	if m.state == profilePassword {
		return 3
	}
	return 2
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case profileRefreshedMsg:
		return m, nil

	case profileSavedMsg:
		m.busy = false
		if msg.err == nil {
			m.state = profileNormal
		}
		return m, nil

	case passwordChangedMsg:
		m.busy = false
		if msg.err == nil {
			m.state = profileNormal
			m.fields = [3]string{}
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy || m.session == nil {
			return m, nil
		}
		m.statusMsg = ""
		switch m.state {
		case profileEditing, profilePassword:
			return m.updateForm(msg)
		case profileConfirmLogout:
			m.state = profileNormal
			if msg.String() == "y" {
				m.session.Logout()
			}
			return m, nil
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m profileModel) updateNormal(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch msg.String() {
	case "e":
		m.state = profileEditing
		m.focus = 0
		m.fields = [3]string{}
		if u := m.session.Snapshot().User; u != nil {
			m.fields[0], m.fields[1] = u.Nickname, u.Avatar
		}
	case "w":
		m.state = profilePassword
		m.focus = 0
		m.fields = [3]string{}
	case "L":
		m.state = profileConfirmLogout
	case "r":
		return m, m.Init()
	}
	return m, nil
}

func (m profileModel) updateForm(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = profileNormal
		m.fields = [3]string{}
	case "tab", "down":
		m.focus = (m.focus + 1) % m.numFields()
	case "shift+tab", "up":
		m.focus = (m.focus + m.numFields() - 1) % m.numFields()
	case "enter":
		if m.focus < m.numFields()-1 {
			m.focus++
			return m, nil
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	default:
		m.fields[m.focus] = editRune(m.fields[m.focus], keyText(msg))
	}
	return m, nil
}

func (m profileModel) submit() (profileModel, tea.Cmd) {
	s := m.session
	if m.state == profileEditing {
		req := client.UpdateUserRequest{
			Nickname: strings.TrimSpace(m.fields[0]),
			Avatar:   strings.TrimSpace(m.fields[1]),
		}
		m.busy = true
		return m, func() tea.Msg {
			return profileSavedMsg{err: s.UpdateProfile(context.Background(), req)}
		}
	}

	if m.fields[0] == "" || m.fields[1] == "" {
		m.statusMsg = "old and new password are required"
		return m, nil
	}
	if m.fields[1] != m.fields[2] {
		m.statusMsg = "new passwords do not match"
		return m, nil
	}
	req := client.ChangePasswordRequest{OldPassword: m.fields[0], NewPassword: m.fields[1]}
	m.busy = true
	return m, func() tea.Msg {
		return passwordChangedMsg{err: s.ChangePassword(context.Background(), req)}
	}
}

func (m profileModel) helpKeys() string {
	switch m.state {
	case profileEditing, profilePassword:
		return helpBar("tab", "next", "enter", "save", "esc", "cancel")
	case profileConfirmLogout:
		return helpBar("y", "log out", "any", "cancel")
	}
	return helpBar("1-3", "tabs", "e", "edit", "w", "password", "L", "log out", "r", "refresh", "q", "quit")
}

func (m profileModel) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("PROFILE") + "\n")
	b.WriteString(" " + metaStyle.Render(strings.Repeat("─", max(m.width-2, 4))) + "\n")

	if m.session == nil {
		b.WriteString(" " + dimStyle.Render("not signed in"))
		return b.String()
	}
	snap := m.session.Snapshot()
	if u := snap.User; u != nil {
		row := func(label, value string) {
			if value == "" {
				value = inputPlaceholderStyle.Render("-")
			}
			fmt.Fprintf(&b, " %s %s\n", metaStyle.Render(fmt.Sprintf("%-9s", label)), normalStyle.Render(value))
		}
		row("username", u.Username)
		row("nickname", u.Nickname)
		row("email", u.Email)
		row("avatar", u.Avatar)
		row("role", strings.ToLower(u.Role))
		if !u.CreateTime.IsZero() {
			row("joined", u.CreateTime.Format("2006-01-02"))
		}
	} else if snap.LoggedIn {
		b.WriteString(" " + dimStyle.Render("profile not loaded (r to retry)") + "\n")
	} else {
		b.WriteString(" " + dimStyle.Render("not signed in") + "\n")
	}

	switch m.state {
	case profileEditing:
		b.WriteString("\n " + sectionHeaderStyle.Render("edit profile") + "\n")
		b.WriteString(renderField("nickname", m.fields[0], m.focus == 0, false) + "\n")
		b.WriteString(renderField("avatar", m.fields[1], m.focus == 1, false) + "\n")
	case profilePassword:
		b.WriteString("\n " + sectionHeaderStyle.Render("change password") + "\n")
		b.WriteString(renderField("current", m.fields[0], m.focus == 0, true) + "\n")
		b.WriteString(renderField("new", m.fields[1], m.focus == 1, true) + "\n")
		b.WriteString(renderField("confirm", m.fields[2], m.focus == 2, true) + "\n")
	case profileConfirmLogout:
		b.WriteString("\n " + ToastStyle(client.LevelWarn).Render("log out? y/n") + "\n")
	}

	switch {
	case m.busy:
		b.WriteString("\n " + dimStyle.Render("saving..."))
	case m.statusMsg != "":
		b.WriteString("\n " + ToastStyle(client.LevelWarn).Render(m.statusMsg))
	}
	return truncateToHeight(b.String(), m.height)
}
