package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmModal asks before a destructive action. The action command
// runs only on explicit confirmation.
type confirmModal struct {
	title  string
	body   string
	action tea.Cmd
}

func newConfirm(title, body string, action tea.Cmd) *confirmModal {
	return &confirmModal{title: title, body: body, action: action}
}

func (c *confirmModal) render(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render(c.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.body))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y/enter") + styles.MutedText.Render(" confirm  "))
	b.WriteString(styles.AccentText.Render("n/esc") + styles.MutedText.Render(" cancel"))

	box := styles.PanelFocus.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
