package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpItem struct {
	key  string
	desc string
}

type helpSection struct {
	title string
	items []helpItem
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"g", "Gallery"},
				{"c", "Contact"},
				{"a", "Admin photos"},
				{"w", "Admin works"},
				{"u", "Upload"},
				{"esc", "Back to gallery"},
				{"j/k", "Move up/down"},
			},
		},
		{
			title: "Gallery",
			items: []helpItem{
				{"f", "Cycle category filter"},
				{"enter", "Open work"},
				{"r", "Reload"},
			},
		},
		{
			title: "Admin",
			items: []helpItem{
				{"enter", "Edit photo"},
				{"t", "Toggle featured"},
				{"d", "Delete"},
				{"n", "New work"},
				{"x", "Expand work"},
				{"L", "Sign out"},
			},
		},
		{
			title: "Upload",
			items: []helpItem{
				{"o", "Add files (path or glob)"},
				{"C/W/F", "Default category/work/featured"},
				{"A", "Apply defaults to pending"},
				{"s", "Start upload"},
				{"R", "Clear failed drafts"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme"},
				{"h/?", "Toggle help"},
				{"e/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, section := range sections {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			key := styles.InfoText.Render("<" + item.key + ">")
			pad := strings.Repeat(" ", max(1, 14-len(item.key)-2))
			b.WriteString("  " + key + pad + styles.MutedText.Render(item.desc))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("press any key to close"))

	box := styles.Panel.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
