package ui

import (
	"fmt"
	"strings"

	"github.com/lcamargo/darkroom/internal/portfolio"
)

// renderHeader renders the top status bar: logo, environment,
// connection state, and admin dashboard stats when signed in.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	parts := []string{styles.Logo.Render("darkroom")}

	if m.config != nil {
		parts = append(parts, styles.FaintText.Render(m.config.Environment))
	}

	parts = append(parts, m.renderConnection(styles))

	if m.session != nil && m.session.LoggedIn() {
		if user, ok := m.session.User(); ok {
			parts = append(parts, styles.InfoText.Render("@"+user.Username))
		}
		parts = append(parts, m.renderStats(styles))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderConnection(styles Styles) string {
	snap := m.healthSnap
	switch {
	case snap.IsOffline():
		return styles.DangerText.Render("API OFFLINE") + " " +
			styles.WarningText.Render("retrying...")
	case !snap.HasHealth:
		return styles.WarningText.Render("connecting...")
	default:
		label := styles.SuccessText.Render("API ONLINE")
		if !snap.Health.DatabaseConfigured {
			label += " " + styles.WarningText.Render("db unconfigured")
		}
		if !snap.Health.JWTConfigured {
			label += " " + styles.WarningText.Render("auth unconfigured")
		}
		return label
	}
}

// renderStats shows the dashboard totals derived from the loaded admin
// collections. Counts are zero until the first load lands.
func (m Model) renderStats(styles Styles) string {
	stats := portfolio.ComputeStats(m.photos.Snapshot().Items, m.works.Snapshot().Items)
	return styles.MutedText.Render(fmt.Sprintf(
		"%s  %s  %d featured  %d unassigned",
		plural(stats.TotalPhotos, "photo"),
		plural(stats.TotalWorks, "work"),
		stats.FeaturedPhotos,
		stats.Unassigned,
	))
}

// renderCommandBar renders the per-view key hints line.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	var hints []struct{ key, desc string }
	switch m.currentView {
	case ViewGallery:
		hints = []struct{ key, desc string }{
			{"j/k", "move"}, {"enter", "open"}, {"f", "filter: " + filterLabel(m.galleryState.filter)},
			{"c", "contact"}, {"a", "admin"}, {"r", "reload"},
		}
	case ViewWork:
		hints = []struct{ key, desc string }{
			{"j/k", "move"}, {"esc", "back"}, {"r", "reload"},
		}
	case ViewContact:
		hints = []struct{ key, desc string }{
			{"tab", "next field"}, {"enter", "send"}, {"esc", "back"},
		}
	case ViewLogin:
		hints = []struct{ key, desc string }{
			{"tab", "next field"}, {"enter", "sign in"}, {"esc", "back"},
		}
	case ViewPhotos:
		if m.photosState.editing {
			hints = []struct{ key, desc string }{
				{"tab", "next field"}, {"ctrl+k", "category"}, {"ctrl+w", "work"},
				{"ctrl+f", "featured"}, {"enter", "save"}, {"esc", "cancel"},
			}
		} else {
			hints = []struct{ key, desc string }{
				{"j/k", "move"}, {"enter", "edit"}, {"t", "featured"},
				{"d", "delete"}, {"w", "works"}, {"u", "upload"}, {"r", "reload"},
			}
		}
	case ViewWorks:
		if m.worksState.creating {
			hints = []struct{ key, desc string }{
				{"tab", "next field"}, {"ctrl+k", "category"}, {"ctrl+f", "featured"},
				{"enter", "create"}, {"esc", "cancel"},
			}
		} else {
			hints = []struct{ key, desc string }{
				{"j/k", "move"}, {"n", "new"}, {"x", "expand"},
				{"d", "delete"}, {"a", "photos"}, {"u", "upload"}, {"r", "reload"},
			}
		}
	case ViewUpload:
		if m.uploadState.typingPath {
			hints = []struct{ key, desc string }{
				{"enter", "add files"}, {"esc", "cancel"},
			}
		} else {
			hints = []struct{ key, desc string }{
				{"o", "add files"}, {"s", "start"}, {"C/W/F", "defaults"},
				{"A", "apply all"}, {"d", "remove"}, {"R", "clear failed"},
			}
		}
	}

	var b strings.Builder
	for i, hint := range hints {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(styles.AccentText.Render("<" + hint.key + ">"))
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(hint.desc))
	}
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render("<h> help"))

	return styles.Footer.Width(m.width).Render(b.String())
}

// renderNotice renders the transient status line, or nothing.
func (m Model) renderNotice() string {
	if m.notice.text == "" {
		return ""
	}
	styles := m.theme.Styles()
	line := styles.SuccessText.Render(m.notice.text)
	if m.notice.isError {
		line = styles.DangerText.Render(m.notice.text)
	}
	return " " + line + "\n"
}
