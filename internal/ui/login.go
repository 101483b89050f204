package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lcamargo/darkroom/internal/api"
	"github.com/lcamargo/darkroom/internal/forms"
)

// loginState drives the admin sign-in form.
type loginState struct {
	inputs [2]textinput.Model // username, password
	focus  int
	form   *forms.Form
}

func newLoginState() loginState {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 32

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 32
	password.EchoMode = textinput.EchoPassword

	return loginState{
		inputs: [2]textinput.Model{username, password},
		form:   &forms.Form{},
	}
}

func (l *loginState) focusFirst() {
	l.focus = 0
	l.inputs[0].Focus()
	l.inputs[1].Blur()
}

func (l *loginState) cycleFocus(delta int) {
	l.inputs[l.focus].Blur()
	l.focus = (l.focus + delta + len(l.inputs)) % len(l.inputs)
	l.inputs[l.focus].Focus()
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.currentView = ViewGallery
		return m, nil
	case "tab", "shift+tab", "down", "up":
		delta := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			delta = -1
		}
		m.loginState.cycleFocus(delta)
		return m, nil
	case "enter":
		return m.submitLogin()
	}

	var cmd tea.Cmd
	m.loginState.inputs[m.loginState.focus], cmd = m.loginState.inputs[m.loginState.focus].Update(msg)
	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	payload := forms.LoginPayload{
		Username: strings.TrimSpace(m.loginState.inputs[0].Value()),
		Password: m.loginState.inputs[1].Value(),
	}
	if err := forms.Validate(payload); err != nil {
		m.loginState.form.Fail(err.Error())
		return m, nil
	}
	if !m.loginState.form.Begin() {
		// A submit is already in flight.
		return m, nil
	}
	return m, m.loginCmd(payload.Username, payload.Password)
}

func (m Model) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loginState.form.Finish(msg.err)
		return m, nil
	}
	if !msg.resp.Success {
		reason := msg.resp.Error
		if reason == "" {
			reason = "invalid credentials"
		}
		m.loginState.form.Fail(reason)
		return m, nil
	}

	if m.session != nil {
		if err := m.session.SaveLogin(msg.resp.Token, msg.resp.User); err != nil {
			m.loginState.form.Fail("could not persist session: " + err.Error())
			return m, nil
		}
	}
	m.loginState.form.Finish(nil)
	m.loginState.inputs[1].SetValue("")

	m.notice = m.newNotice("signed in as "+msg.resp.User.Username, false)
	m.currentView = m.pendingView
	return m, m.adminLoads()
}

// handleVerify reconciles a restored session against the server. Only a
// definitive rejection discards the stored token; transient errors keep
// the session and retry on the next admin action.
func (m Model) handleVerify(msg verifyMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if api.IsUnauthorized(msg.err) && m.session != nil {
			_ = m.session.Logout()
			m.notice = m.newNotice("session expired, sign in again", true)
			if adminView(m.currentView) {
				m.pendingView = m.currentView
				m.currentView = ViewLogin
				m.loginState.focusFirst()
			}
		}
		return m, nil
	}
	if m.session != nil {
		// The server's copy of the account is authoritative; refresh
		// the cached user in case the name or email changed.
		_ = m.session.SaveLogin(m.session.Token(), msg.user)
	}
	return m, nil
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(" " + styles.Text.Bold(true).Render("Admin Sign In"))
	b.WriteString("\n\n")
	b.WriteString(" " + styles.MutedText.Render("username") + "\n")
	b.WriteString(" " + m.loginState.inputs[0].View() + "\n\n")
	b.WriteString(" " + styles.MutedText.Render("password") + "\n")
	b.WriteString(" " + m.loginState.inputs[1].View() + "\n\n")

	switch m.loginState.form.Status() {
	case forms.Submitting:
		b.WriteString(" " + styles.WarningText.Render("signing in...") + "\n")
	case forms.Failed:
		b.WriteString(" " + styles.DangerText.Render(m.loginState.form.Message()) + "\n")
	}
	return b.String()
}
