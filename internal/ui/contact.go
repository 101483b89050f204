package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lcamargo/darkroom/internal/api"
	"github.com/lcamargo/darkroom/internal/forms"
)

// contactState drives the public contact form.
type contactState struct {
	inputs  [3]textinput.Model // name, email, message
	focus   int
	focused bool
	form    *forms.Form
}

func newContactState() contactState {
	name := textinput.New()
	name.Placeholder = "your name"
	name.CharLimit = 100
	name.Width = 48

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 48

	message := textinput.New()
	message.Placeholder = "what would you like to ask?"
	message.CharLimit = 2000
	message.Width = 64

	return contactState{
		inputs: [3]textinput.Model{name, email, message},
		form:   &forms.Form{},
	}
}

func (c *contactState) typing() bool {
	return c.focused
}

func (c *contactState) focusField(i int) {
	for j := range c.inputs {
		c.inputs[j].Blur()
	}
	c.focus = (i + len(c.inputs)) % len(c.inputs)
	c.inputs[c.focus].Focus()
	c.focused = true
}

func (c *contactState) blur() {
	for j := range c.inputs {
		c.inputs[j].Blur()
	}
	c.focused = false
}

func (c *contactState) clear() {
	for j := range c.inputs {
		c.inputs[j].SetValue("")
	}
	c.blur()
}

func (m Model) handleContactKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.contactState.focused {
		switch msg.String() {
		case "i", "enter", "tab":
			m.contactState.focusField(0)
			m.contactState.form.Reset()
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.contactState.blur()
		return m, nil
	case "tab", "down":
		m.contactState.focusField(m.contactState.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.contactState.focusField(m.contactState.focus - 1)
		return m, nil
	case "enter":
		if m.contactState.focus < len(m.contactState.inputs)-1 {
			m.contactState.focusField(m.contactState.focus + 1)
			return m, nil
		}
		return m.submitContact()
	}

	var cmd tea.Cmd
	m.contactState.inputs[m.contactState.focus], cmd = m.contactState.inputs[m.contactState.focus].Update(msg)
	return m, cmd
}

func (m Model) submitContact() (tea.Model, tea.Cmd) {
	payload := forms.ContactPayload{
		Name:    strings.TrimSpace(m.contactState.inputs[0].Value()),
		Email:   strings.TrimSpace(m.contactState.inputs[1].Value()),
		Message: strings.TrimSpace(m.contactState.inputs[2].Value()),
	}
	if err := forms.Validate(payload); err != nil {
		m.contactState.form.Fail(err.Error())
		return m, nil
	}
	if !m.contactState.form.Begin() {
		return m, nil
	}
	return m, m.sendContactCmd(api.ContactMessage{
		Name:    payload.Name,
		Email:   payload.Email,
		Message: payload.Message,
	})
}

func (m Model) handleContact(msg contactMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.contactState.form.Finish(msg.err)
		return m, nil
	}
	m.contactState.form.Finish(nil)
	m.contactState.clear()

	ack := msg.resp.Message
	if ack == "" {
		ack = "message sent"
	}
	m.notice = m.newNotice(ack, false)
	return m, nil
}

func (m Model) renderContact() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(" " + styles.Text.Bold(true).Render("Get In Touch"))
	b.WriteString("\n\n")

	labels := [3]string{"name", "email", "message"}
	for i := range m.contactState.inputs {
		b.WriteString(" " + styles.MutedText.Render(labels[i]) + "\n")
		b.WriteString(" " + m.contactState.inputs[i].View() + "\n\n")
	}

	switch m.contactState.form.Status() {
	case forms.Submitting:
		b.WriteString(" " + styles.WarningText.Render("sending...") + "\n")
	case forms.Failed:
		b.WriteString(" " + styles.DangerText.Render(m.contactState.form.Message()) + "\n")
	}
	if !m.contactState.focused {
		b.WriteString(" " + styles.FaintText.Render("press enter to start typing") + "\n")
	}
	return b.String()
}
