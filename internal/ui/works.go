package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lcamargo/darkroom/internal/api"
	"github.com/lcamargo/darkroom/internal/forms"
	"github.com/lcamargo/darkroom/internal/portfolio"
)

// worksState drives the admin works manager: a list with expandable
// photo membership plus an inline create form.
type worksState struct {
	selected int
	creating bool
	inputs   [2]textinput.Model // title, description
	focus    int

	newCategory int64
	newFeatured bool
	form        *forms.Form

	expanded map[int64]bool
}

func newWorksState() worksState {
	title := textinput.New()
	title.Placeholder = "work title"
	title.CharLimit = 200
	title.Width = 48

	description := textinput.New()
	description.Placeholder = "description"
	description.CharLimit = 500
	description.Width = 64

	return worksState{
		inputs:   [2]textinput.Model{title, description},
		form:     &forms.Form{},
		expanded: make(map[int64]bool),
	}
}

func (w *worksState) startCreate() {
	w.creating = true
	w.inputs[0].SetValue("")
	w.inputs[1].SetValue("")
	w.newCategory = 0
	w.newFeatured = false
	w.focus = 0
	w.inputs[0].Focus()
	w.inputs[1].Blur()
	w.form.Reset()
}

func (w *worksState) stopCreate() {
	w.creating = false
	w.inputs[0].Blur()
	w.inputs[1].Blur()
}

func (w *worksState) cycleFocus(delta int) {
	w.inputs[w.focus].Blur()
	w.focus = (w.focus + delta + len(w.inputs)) % len(w.inputs)
	w.inputs[w.focus].Focus()
}

func (m Model) selectedWork() (api.Work, bool) {
	works := m.works.Snapshot().Items
	if len(works) == 0 {
		return api.Work{}, false
	}
	return works[clampIndex(m.worksState.selected, len(works))], true
}

func (m Model) handleWorksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.worksState.creating {
		return m.handleWorkCreateKey(msg)
	}

	works := m.works.Snapshot().Items
	switch msg.String() {
	case "j", "down":
		m.worksState.selected = clampIndex(m.worksState.selected+1, len(works))
	case "k", "up":
		m.worksState.selected = clampIndex(m.worksState.selected-1, len(works))
	case "home":
		m.worksState.selected = 0
	case "end":
		m.worksState.selected = clampIndex(len(works)-1, len(works))
	case "n":
		m.worksState.startCreate()
	case "x", "enter":
		if work, ok := m.selectedWork(); ok {
			m.worksState.expanded[work.ID] = !m.worksState.expanded[work.ID]
		}
	case "d":
		if work, ok := m.selectedWork(); ok {
			action := m.deleteWorkCmd(work.ID)
			if m.confirmDeletes {
				m.confirm = newConfirm("Delete work",
					fmt.Sprintf("Delete %q? Its photos stay in the library, unassigned.", work.Title),
					action)
				return m, nil
			}
			return m, action
		}
	case "r":
		return m, m.adminLoads()
	}
	return m, nil
}

func (m Model) handleWorkCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.worksState.stopCreate()
		return m, nil
	case "tab", "down":
		m.worksState.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.worksState.cycleFocus(-1)
		return m, nil
	case "ctrl+k":
		m.worksState.newCategory = nextCategoryID(m.categories.Snapshot().Items, m.worksState.newCategory)
		return m, nil
	case "ctrl+f":
		m.worksState.newFeatured = !m.worksState.newFeatured
		return m, nil
	case "enter":
		return m.submitWorkCreate()
	}

	var cmd tea.Cmd
	m.worksState.inputs[m.worksState.focus], cmd = m.worksState.inputs[m.worksState.focus].Update(msg)
	return m, cmd
}

func (m Model) submitWorkCreate() (tea.Model, tea.Cmd) {
	payload := forms.WorkPayload{
		Title:       strings.TrimSpace(m.worksState.inputs[0].Value()),
		Description: strings.TrimSpace(m.worksState.inputs[1].Value()),
		CategoryID:  m.worksState.newCategory,
		IsFeatured:  m.worksState.newFeatured,
	}
	if err := forms.Validate(payload); err != nil {
		m.worksState.form.Fail(err.Error())
		return m, nil
	}
	if !m.worksState.form.Begin() {
		return m, nil
	}
	return m, m.createWorkCmd(api.WorkUpdate{
		Title:       payload.Title,
		Description: payload.Description,
		CategoryID:  payload.CategoryID,
		IsFeatured:  payload.IsFeatured,
	})
}

// handleWorkCreated reloads the works list rather than inserting the
// echo: the server derives slug, cover, and ordering.
func (m Model) handleWorkCreated(msg workCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.worksState.form.Finish(msg.err)
		return m, nil
	}
	m.worksState.form.Finish(nil)
	m.worksState.stopCreate()
	m.notice = m.newNotice(fmt.Sprintf("work %q created", msg.work.Title), false)
	return m, tea.Batch(m.loadWorksCmd(), m.loadCategoriesCmd())
}

// handleWorkDeleted removes the work in place and reloads photos: the
// server nulls the membership of the deleted work's photos, so cached
// photo rows are stale. A 404 reconciles as already deleted.
func (m Model) handleWorkDeleted(msg workDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil && !api.IsNotFound(msg.err) {
		m.notice = m.newNotice("delete failed: "+msg.err.Error(), true)
		return m, nil
	}

	m.works.RemoveIf(func(w api.Work) bool { return w.ID == msg.id })
	delete(m.worksState.expanded, msg.id)
	m.worksState.selected = clampIndex(m.worksState.selected, len(m.works.Snapshot().Items))

	text := "work deleted"
	if msg.err != nil {
		text = "work was already deleted"
	}
	m.notice = m.newNotice(text, false)
	return m, m.loadPhotosCmd()
}

func (m Model) renderWorks() string {
	if m.worksState.creating {
		return m.renderWorkCreate()
	}

	styles := m.theme.Styles()
	snap := m.works.Snapshot()

	var b strings.Builder
	b.WriteString(" " + styles.Text.Bold(true).Render("Works"))
	if snap.Loading {
		b.WriteString(" " + styles.WarningText.Render("loading..."))
	}
	b.WriteString("\n\n")

	if snap.Err != nil && len(snap.Items) == 0 {
		b.WriteString(" " + styles.DangerText.Render("could not load works: "+snap.Err.Error()) + "\n")
		return b.String()
	}
	if len(snap.Items) == 0 && !snap.Loading {
		b.WriteString(" " + styles.MutedText.Render("no works yet, press n to create one") + "\n")
		return b.String()
	}

	photos := m.photos.Snapshot().Items
	sel := clampIndex(m.worksState.selected, len(snap.Items))
	for i, work := range snap.Items {
		members := portfolio.ForWork(photos, work.ID)
		marker := "+"
		if m.worksState.expanded[work.ID] {
			marker = "-"
		}
		featured := " "
		if work.IsFeatured {
			featured = "*"
		}
		line := fmt.Sprintf("%s %s %-32s %-14s %s",
			styles.FaintText.Render(marker),
			styles.AccentText.Render(featured),
			truncate(work.Title, 32),
			truncate(work.Category(), 14),
			styles.FaintText.Render(plural(len(members), "photo")))
		if i == sel {
			line = styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(" " + line + "\n")

		if m.worksState.expanded[work.ID] {
			if len(members) == 0 {
				b.WriteString("      " + styles.FaintText.Render("no photos assigned") + "\n")
			}
			for _, photo := range members {
				b.WriteString("      " + styles.MutedText.Render(truncate(photo.Title, 48)) + "\n")
			}
		}
	}
	return b.String()
}

func (m Model) renderWorkCreate() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(" " + styles.Text.Bold(true).Render("New Work"))
	b.WriteString("\n\n")
	b.WriteString(" " + styles.MutedText.Render("title") + "\n")
	b.WriteString(" " + m.worksState.inputs[0].View() + "\n\n")
	b.WriteString(" " + styles.MutedText.Render("description") + "\n")
	b.WriteString(" " + m.worksState.inputs[1].View() + "\n\n")

	categories := m.categories.Snapshot().Items
	b.WriteString(fmt.Sprintf(" %s %s   %s %s\n",
		styles.MutedText.Render("category:"),
		styles.Text.Render(categoryName(categories, m.worksState.newCategory)),
		styles.MutedText.Render("featured:"),
		styles.Text.Render(checkbox(m.worksState.newFeatured))))
	b.WriteString("\n")

	switch m.worksState.form.Status() {
	case forms.Submitting:
		b.WriteString(" " + styles.WarningText.Render("creating...") + "\n")
	case forms.Failed:
		b.WriteString(" " + styles.DangerText.Render(m.worksState.form.Message()) + "\n")
	}
	return b.String()
}
