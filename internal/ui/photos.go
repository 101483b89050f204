package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lcamargo/darkroom/internal/api"
	"github.com/lcamargo/darkroom/internal/forms"
)

// photosState drives the admin photo manager: a list plus an inline
// edit form.
type photosState struct {
	selected int
	editing  bool
	inputs   [2]textinput.Model // title, description
	focus    int

	editID       int64
	editCategory int64
	editWork     int64
	editFeatured bool
	form         *forms.Form
}

func newPhotosState() photosState {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200
	title.Width = 48

	description := textinput.New()
	description.Placeholder = "description"
	description.CharLimit = 500
	description.Width = 64

	return photosState{
		inputs: [2]textinput.Model{title, description},
		form:   &forms.Form{},
	}
}

func (p *photosState) startEdit(photo api.Photo) {
	p.editing = true
	p.editID = photo.ID
	p.editCategory = photo.CategoryID
	p.editWork = photo.WorkID
	p.editFeatured = photo.IsFeatured
	p.inputs[0].SetValue(photo.Title)
	p.inputs[1].SetValue(photo.Description)
	p.focus = 0
	p.inputs[0].Focus()
	p.inputs[1].Blur()
	p.form.Reset()
}

func (p *photosState) stopEdit() {
	p.editing = false
	p.inputs[0].Blur()
	p.inputs[1].Blur()
}

func (m Model) selectedPhoto() (api.Photo, bool) {
	photos := m.photos.Snapshot().Items
	if len(photos) == 0 {
		return api.Photo{}, false
	}
	return photos[clampIndex(m.photosState.selected, len(photos))], true
}

func (m Model) handlePhotosKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.photosState.editing {
		return m.handlePhotoEditKey(msg)
	}

	photos := m.photos.Snapshot().Items
	switch msg.String() {
	case "j", "down":
		m.photosState.selected = clampIndex(m.photosState.selected+1, len(photos))
	case "k", "up":
		m.photosState.selected = clampIndex(m.photosState.selected-1, len(photos))
	case "home":
		m.photosState.selected = 0
	case "end":
		m.photosState.selected = clampIndex(len(photos)-1, len(photos))
	case "enter":
		if photo, ok := m.selectedPhoto(); ok {
			m.photosState.startEdit(photo)
		}
	case "t":
		// Quick featured toggle without opening the edit form.
		if photo, ok := m.selectedPhoto(); ok {
			return m, m.savePhotoCmd(api.PhotoUpdate{
				ID:          photo.ID,
				Title:       photo.Title,
				Description: photo.Description,
				CategoryID:  photo.CategoryID,
				WorkID:      photo.WorkID,
				IsFeatured:  !photo.IsFeatured,
			})
		}
	case "d":
		if photo, ok := m.selectedPhoto(); ok {
			action := m.deletePhotoCmd(photo.ID)
			if m.confirmDeletes {
				m.confirm = newConfirm("Delete photo",
					fmt.Sprintf("Delete %q? This cannot be undone.", photo.Title), action)
				return m, nil
			}
			return m, action
		}
	case "r":
		return m, m.adminLoads()
	}
	return m, nil
}

func (m Model) handlePhotoEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.photosState.stopEdit()
		return m, nil
	case "tab", "down":
		m.photosState.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.photosState.cycleFocus(-1)
		return m, nil
	case "ctrl+k":
		m.photosState.editCategory = nextCategoryID(m.categories.Snapshot().Items, m.photosState.editCategory)
		return m, nil
	case "ctrl+w":
		m.photosState.editWork = nextWorkID(m.works.Snapshot().Items, m.photosState.editWork)
		return m, nil
	case "ctrl+f":
		m.photosState.editFeatured = !m.photosState.editFeatured
		return m, nil
	case "enter":
		return m.submitPhotoEdit()
	}

	var cmd tea.Cmd
	m.photosState.inputs[m.photosState.focus], cmd = m.photosState.inputs[m.photosState.focus].Update(msg)
	return m, cmd
}

func (p *photosState) cycleFocus(delta int) {
	p.inputs[p.focus].Blur()
	p.focus = (p.focus + delta + len(p.inputs)) % len(p.inputs)
	p.inputs[p.focus].Focus()
}

func (m Model) submitPhotoEdit() (tea.Model, tea.Cmd) {
	payload := forms.PhotoEditPayload{
		ID:          m.photosState.editID,
		Title:       strings.TrimSpace(m.photosState.inputs[0].Value()),
		Description: strings.TrimSpace(m.photosState.inputs[1].Value()),
		CategoryID:  m.photosState.editCategory,
		WorkID:      m.photosState.editWork,
		IsFeatured:  m.photosState.editFeatured,
	}
	if err := forms.Validate(payload); err != nil {
		m.photosState.form.Fail(err.Error())
		return m, nil
	}
	if !m.photosState.form.Begin() {
		return m, nil
	}
	return m, m.savePhotoCmd(api.PhotoUpdate{
		ID:          payload.ID,
		Title:       payload.Title,
		Description: payload.Description,
		CategoryID:  payload.CategoryID,
		WorkID:      payload.WorkID,
		IsFeatured:  payload.IsFeatured,
	})
}

// handlePhotoSaved patches the saved photo into every loaded collection
// holding it. The lists stay on screen; no reload, no loading flicker.
func (m Model) handlePhotoSaved(msg photoSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.photosState.form.Finish(msg.err)
		if !m.photosState.editing {
			m.notice = m.newNotice("save failed: "+msg.err.Error(), true)
		}
		return m, nil
	}

	saved := msg.photo
	match := func(p api.Photo) bool { return p.ID == saved.ID }
	replace := func(api.Photo) api.Photo { return saved }
	m.photos.Patch(match, replace)
	m.workPhotos.Patch(match, replace)

	if m.photosState.editing && m.photosState.editID == saved.ID {
		m.photosState.form.Finish(nil)
		m.photosState.stopEdit()
	}
	m.notice = m.newNotice("photo updated", false)
	return m, nil
}

// handlePhotoDeleted removes the photo in place. A 404 means it was
// already gone, which reconciles to the same end state.
func (m Model) handlePhotoDeleted(msg photoDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil && !api.IsNotFound(msg.err) {
		m.notice = m.newNotice("delete failed: "+msg.err.Error(), true)
		return m, nil
	}

	match := func(p api.Photo) bool { return p.ID == msg.id }
	m.photos.RemoveIf(match)
	m.workPhotos.RemoveIf(match)
	m.photosState.selected = clampIndex(m.photosState.selected, len(m.photos.Snapshot().Items))

	text := "photo deleted"
	if msg.err != nil {
		text = "photo was already deleted"
	}
	m.notice = m.newNotice(text, false)
	return m, nil
}

func (m Model) renderPhotos() string {
	if m.photosState.editing {
		return m.renderPhotoEdit()
	}

	styles := m.theme.Styles()
	snap := m.photos.Snapshot()

	var b strings.Builder
	b.WriteString(" " + styles.Text.Bold(true).Render("Photos"))
	if snap.Loading {
		b.WriteString(" " + styles.WarningText.Render("loading..."))
	}
	b.WriteString("\n\n")

	if snap.Err != nil && len(snap.Items) == 0 {
		b.WriteString(" " + styles.DangerText.Render("could not load photos: "+snap.Err.Error()) + "\n")
		return b.String()
	}
	if len(snap.Items) == 0 && !snap.Loading {
		b.WriteString(" " + styles.MutedText.Render("no photos yet, press u to upload") + "\n")
		return b.String()
	}

	works := m.works.Snapshot().Items
	sel := clampIndex(m.photosState.selected, len(snap.Items))
	for i, photo := range snap.Items {
		featured := " "
		if photo.IsFeatured {
			featured = "*"
		}
		line := fmt.Sprintf("%s %-36s %-14s %s",
			styles.AccentText.Render(featured),
			truncate(photo.Title, 36),
			truncate(photo.Category(), 14),
			styles.FaintText.Render(workTitle(works, photo.WorkID)))
		if i == sel {
			line = styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(" " + line + "\n")
	}
	return b.String()
}

func (m Model) renderPhotoEdit() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(" " + styles.Text.Bold(true).Render(fmt.Sprintf("Edit Photo #%d", m.photosState.editID)))
	b.WriteString("\n\n")
	b.WriteString(" " + styles.MutedText.Render("title") + "\n")
	b.WriteString(" " + m.photosState.inputs[0].View() + "\n\n")
	b.WriteString(" " + styles.MutedText.Render("description") + "\n")
	b.WriteString(" " + m.photosState.inputs[1].View() + "\n\n")

	categories := m.categories.Snapshot().Items
	works := m.works.Snapshot().Items
	b.WriteString(fmt.Sprintf(" %s %s   %s %s   %s %s\n",
		styles.MutedText.Render("category:"),
		styles.Text.Render(categoryName(categories, m.photosState.editCategory)),
		styles.MutedText.Render("work:"),
		styles.Text.Render(workTitle(works, m.photosState.editWork)),
		styles.MutedText.Render("featured:"),
		styles.Text.Render(checkbox(m.photosState.editFeatured))))
	b.WriteString("\n")

	switch m.photosState.form.Status() {
	case forms.Submitting:
		b.WriteString(" " + styles.WarningText.Render("saving...") + "\n")
	case forms.Failed:
		b.WriteString(" " + styles.DangerText.Render(m.photosState.form.Message()) + "\n")
	}
	return b.String()
}
