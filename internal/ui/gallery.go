package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lcamargo/darkroom/internal/portfolio"
)

// galleryState holds the public gallery's selection and category filter.
type galleryState struct {
	selected  int
	filter    string // empty means all
	filters   []string
	workID    int64 // nonzero while the work gallery is open
	workTitle string
}

func newGalleryState(filter string) galleryState {
	return galleryState{filter: filter}
}

// syncFilters rebuilds the filter cycle from freshly loaded entries. A
// persisted filter naming a category that no longer exists falls back
// to all.
func (g *galleryState) syncFilters(entries []portfolio.GalleryEntry) {
	g.filters = portfolio.DistinctCategories(entries)
	if g.filter == "" {
		return
	}
	for _, f := range g.filters {
		if f == g.filter {
			return
		}
	}
	g.filter = ""
}

// visibleEntries applies the active category filter.
func (m Model) visibleEntries() []portfolio.GalleryEntry {
	return portfolio.FilterByCategory(m.gallery.Snapshot().Items, m.galleryState.filter)
}

func (m Model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.visibleEntries()

	switch msg.String() {
	case "j", "down":
		m.galleryState.selected = clampIndex(m.galleryState.selected+1, len(entries))
	case "k", "up":
		m.galleryState.selected = clampIndex(m.galleryState.selected-1, len(entries))
	case "home":
		m.galleryState.selected = 0
	case "end":
		m.galleryState.selected = clampIndex(len(entries)-1, len(entries))
	case "f":
		m.galleryState.filter = cycleFilter(m.galleryState.filters, m.galleryState.filter)
		m.galleryState.selected = 0
		m.savePrefs()
	case "r":
		return m, m.loadGalleryCmd()
	case "enter":
		if len(entries) == 0 {
			return m, nil
		}
		entry := entries[clampIndex(m.galleryState.selected, len(entries))]
		if entry.WorkID == 0 {
			// Standalone photo entries from the fallback gallery have
			// no work to open.
			return m, nil
		}
		m.galleryState.workID = entry.WorkID
		m.galleryState.workTitle = entry.Title
		m.galleryState.selected = 0
		m.currentView = ViewWork
		m.workPhotos.Invalidate()
		return m, m.loadWorkPhotosCmd(entry.WorkID)
	}
	return m, nil
}

func (m Model) renderGallery() string {
	styles := m.theme.Styles()
	snap := m.gallery.Snapshot()
	entries := m.visibleEntries()

	var b strings.Builder
	title := "Portfolio"
	if m.galleryState.filter != "" {
		title += " / " + m.galleryState.filter
	}
	b.WriteString(" " + styles.Text.Bold(true).Render(title))
	if snap.Loading {
		b.WriteString(" " + styles.WarningText.Render("loading..."))
	}
	b.WriteString("\n\n")

	if snap.Err != nil && len(entries) == 0 {
		b.WriteString(" " + styles.DangerText.Render("could not load gallery: "+snap.Err.Error()) + "\n")
		return b.String()
	}
	if len(entries) == 0 && !snap.Loading {
		b.WriteString(" " + styles.MutedText.Render("nothing to show") + "\n")
		return b.String()
	}

	sel := clampIndex(m.galleryState.selected, len(entries))
	for i, entry := range entries {
		line := m.renderGalleryEntry(entry)
		if i == sel {
			line = styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(" " + line + "\n")
	}

	if snap.Err != nil {
		b.WriteString("\n " + styles.WarningText.Render("refresh failed, showing last known gallery") + "\n")
	}
	return b.String()
}

func (m Model) renderGalleryEntry(entry portfolio.GalleryEntry) string {
	styles := m.theme.Styles()
	title := truncate(entry.Title, 40)
	meta := entry.CategorySlug
	if entry.WorkID != 0 {
		meta += "  " + plural(entry.PhotoCount, "photo")
	}
	return fmt.Sprintf("%-40s  %s", title, styles.FaintText.Render(meta))
}

// Work gallery: the photos of one opened work.

func (m Model) handleWorkViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	photos := m.workPhotos.Snapshot().Items
	switch msg.String() {
	case "j", "down":
		m.galleryState.selected = clampIndex(m.galleryState.selected+1, len(photos))
	case "k", "up":
		m.galleryState.selected = clampIndex(m.galleryState.selected-1, len(photos))
	case "r":
		if m.galleryState.workID != 0 {
			return m, m.loadWorkPhotosCmd(m.galleryState.workID)
		}
	}
	return m, nil
}

func (m Model) renderWork() string {
	styles := m.theme.Styles()
	snap := m.workPhotos.Snapshot()

	var b strings.Builder
	b.WriteString(" " + styles.Text.Bold(true).Render(m.galleryState.workTitle))
	if snap.Loading {
		b.WriteString(" " + styles.WarningText.Render("loading..."))
	}
	b.WriteString("\n\n")

	if snap.Err != nil && len(snap.Items) == 0 {
		b.WriteString(" " + styles.DangerText.Render("could not load photos: "+snap.Err.Error()) + "\n")
		return b.String()
	}
	if len(snap.Items) == 0 && !snap.Loading {
		b.WriteString(" " + styles.MutedText.Render("this work has no photos yet") + "\n")
		return b.String()
	}

	sel := clampIndex(m.galleryState.selected, len(snap.Items))
	for i, photo := range snap.Items {
		line := fmt.Sprintf("%-40s  %s", truncate(photo.Title, 40),
			styles.FaintText.Render(truncate(photo.Description, 50)))
		if photo.IsFeatured {
			line += " " + styles.AccentText.Render("*")
		}
		if i == sel {
			line = styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(" " + line + "\n")
	}
	return b.String()
}
