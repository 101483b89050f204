package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lcamargo/darkroom/internal/upload"
)

// uploadState drives the batch upload screen. Drafts are client-only;
// they never touch the server until the run starts, and the run sends
// them strictly one at a time.
type uploadState struct {
	selected   int
	pathInput  textinput.Model
	typingPath bool

	drafts   []upload.Draft
	defaults upload.Defaults

	running   bool
	succeeded int
	failed    int
	summary   string
}

func newUploadState() uploadState {
	path := textinput.New()
	path.Placeholder = "path or glob, e.g. ~/shots/*.jpg"
	path.CharLimit = 512
	path.Width = 64
	return uploadState{pathInput: path}
}

// nextPending returns the index of the first draft still waiting, or -1.
func (u *uploadState) nextPending() int {
	for i, d := range u.drafts {
		if d.Status == upload.StatusPending {
			return i
		}
	}
	return -1
}

func (u *uploadState) settle(draft upload.Draft) {
	for i := range u.drafts {
		if u.drafts[i].ID == draft.ID {
			u.drafts[i] = draft
			return
		}
	}
}

// pruneDone drops uploaded drafts from the list; failures stay for
// retry or removal.
func (u *uploadState) pruneDone() {
	kept := u.drafts[:0]
	for _, d := range u.drafts {
		if d.Status != upload.StatusDone {
			kept = append(kept, d)
		}
	}
	u.drafts = kept
	u.selected = clampIndex(u.selected, len(u.drafts))
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.uploadState.typingPath {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.uploadState.typingPath = false
			m.uploadState.pathInput.Blur()
			return m, nil
		case "enter":
			pattern := strings.TrimSpace(m.uploadState.pathInput.Value())
			m.uploadState.typingPath = false
			m.uploadState.pathInput.Blur()
			m.uploadState.pathInput.SetValue("")
			if pattern == "" {
				return m, nil
			}
			return m, m.addDraftsCmd(pattern, m.uploadState.defaults)
		}
		var cmd tea.Cmd
		m.uploadState.pathInput, cmd = m.uploadState.pathInput.Update(msg)
		return m, cmd
	}

	if m.uploadState.running {
		// The batch settles on its own; only navigation works meanwhile.
		switch msg.String() {
		case "j", "down":
			m.uploadState.selected = clampIndex(m.uploadState.selected+1, len(m.uploadState.drafts))
		case "k", "up":
			m.uploadState.selected = clampIndex(m.uploadState.selected-1, len(m.uploadState.drafts))
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		m.uploadState.selected = clampIndex(m.uploadState.selected+1, len(m.uploadState.drafts))
	case "k", "up":
		m.uploadState.selected = clampIndex(m.uploadState.selected-1, len(m.uploadState.drafts))
	case "o":
		m.uploadState.typingPath = true
		m.uploadState.pathInput.Focus()
	case "d":
		if len(m.uploadState.drafts) > 0 {
			i := clampIndex(m.uploadState.selected, len(m.uploadState.drafts))
			m.uploadState.drafts = append(m.uploadState.drafts[:i], m.uploadState.drafts[i+1:]...)
			m.uploadState.selected = clampIndex(m.uploadState.selected, len(m.uploadState.drafts))
		}
	case "R":
		kept := m.uploadState.drafts[:0]
		for _, d := range m.uploadState.drafts {
			if d.Status != upload.StatusFailed {
				kept = append(kept, d)
			}
		}
		m.uploadState.drafts = kept
		m.uploadState.selected = clampIndex(m.uploadState.selected, len(kept))
	case "C":
		m.uploadState.defaults.CategoryID = nextCategoryID(m.categories.Snapshot().Items, m.uploadState.defaults.CategoryID)
	case "W":
		m.uploadState.defaults.WorkID = nextWorkID(m.works.Snapshot().Items, m.uploadState.defaults.WorkID)
	case "F":
		m.uploadState.defaults.IsFeatured = !m.uploadState.defaults.IsFeatured
	case "A":
		upload.ApplyDefaults(m.uploadState.drafts, m.uploadState.defaults)
	case "s":
		return m.startUpload()
	}
	return m, nil
}

func (m Model) startUpload() (tea.Model, tea.Cmd) {
	// Retried drafts go back to pending first.
	for i := range m.uploadState.drafts {
		if m.uploadState.drafts[i].Status == upload.StatusFailed {
			m.uploadState.drafts[i].Status = upload.StatusPending
			m.uploadState.drafts[i].Error = ""
		}
	}
	next := m.uploadState.nextPending()
	if next < 0 {
		return m, nil
	}
	m.uploadState.running = true
	m.uploadState.succeeded = 0
	m.uploadState.failed = 0
	m.uploadState.summary = ""
	m.uploadState.drafts[next].Status = upload.StatusUploading
	return m, m.uploadDraftCmd(m.uploadState.drafts[next])
}

func (m Model) handleDraftsAdded(msg draftsAddedMsg) (tea.Model, tea.Cmd) {
	m.uploadState.drafts = append(m.uploadState.drafts, msg.drafts...)
	switch {
	case msg.failed > 0 && len(msg.drafts) == 0:
		m.notice = m.newNotice("no files could be added", true)
	case msg.failed > 0:
		m.notice = m.newNotice(fmt.Sprintf("added %s, %d skipped",
			plural(len(msg.drafts), "file"), msg.failed), true)
	case len(msg.drafts) > 0:
		m.notice = m.newNotice("added "+plural(len(msg.drafts), "file"), false)
	}
	return m, nil
}

// handleDraftSettled records one settled draft and chains the next
// pending one, keeping exactly one upload in flight.
func (m Model) handleDraftSettled(msg draftSettledMsg) (tea.Model, tea.Cmd) {
	m.uploadState.settle(msg.draft)
	if msg.draft.Status == upload.StatusDone {
		m.uploadState.succeeded++
	} else {
		m.uploadState.failed++
	}

	if next := m.uploadState.nextPending(); next >= 0 {
		m.uploadState.drafts[next].Status = upload.StatusUploading
		return m, m.uploadDraftCmd(m.uploadState.drafts[next])
	}
	return m.finishUpload()
}

func (m Model) finishUpload() (tea.Model, tea.Cmd) {
	m.uploadState.running = false

	batch := upload.Batch{
		Succeeded: m.uploadState.succeeded,
		Failed:    m.uploadState.failed,
	}
	switch batch.Outcome() {
	case upload.AllSucceeded:
		m.uploadState.summary = fmt.Sprintf("uploaded %s", plural(batch.Succeeded, "photo"))
		m.notice = m.newNotice(m.uploadState.summary, false)
	case upload.AllFailed:
		m.uploadState.summary = fmt.Sprintf("all %s failed", plural(batch.Failed, "upload"))
		m.notice = m.newNotice(m.uploadState.summary, true)
	case upload.SomeFailed:
		m.uploadState.summary = fmt.Sprintf("%d uploaded, %d failed", batch.Succeeded, batch.Failed)
		m.notice = m.newNotice(m.uploadState.summary, true)
	}

	m.uploadState.pruneDone()

	// New photos change the library and possibly work covers.
	return m, tea.Batch(m.loadPhotosCmd(), m.loadWorksCmd(), m.loadGalleryCmd())
}

func (m Model) renderUpload() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(" " + styles.Text.Bold(true).Render("Upload"))
	if m.uploadState.running {
		b.WriteString(" " + styles.WarningText.Render("uploading..."))
	}
	b.WriteString("\n\n")

	categories := m.categories.Snapshot().Items
	works := m.works.Snapshot().Items
	b.WriteString(fmt.Sprintf(" %s %s   %s %s   %s %s\n\n",
		styles.MutedText.Render("default category:"),
		styles.Text.Render(categoryName(categories, m.uploadState.defaults.CategoryID)),
		styles.MutedText.Render("default work:"),
		styles.Text.Render(workTitle(works, m.uploadState.defaults.WorkID)),
		styles.MutedText.Render("featured:"),
		styles.Text.Render(checkbox(m.uploadState.defaults.IsFeatured))))

	if m.uploadState.typingPath {
		b.WriteString(" " + m.uploadState.pathInput.View() + "\n\n")
	}

	if len(m.uploadState.drafts) == 0 {
		b.WriteString(" " + styles.MutedText.Render("no files queued, press o to add some") + "\n")
	}

	sel := clampIndex(m.uploadState.selected, len(m.uploadState.drafts))
	for i, draft := range m.uploadState.drafts {
		status := styles.StatusText(draft.Status.String()).Render(
			fmt.Sprintf("%-9s", draft.Status.String()))
		line := fmt.Sprintf("%s %-32s %-14s %s",
			status,
			truncate(draft.Title, 32),
			truncate(categoryName(categories, draft.CategoryID), 14),
			styles.FaintText.Render(workTitle(works, draft.WorkID)))
		if draft.Error != "" {
			line += "  " + styles.DangerText.Render(truncate(draft.Error, 40))
		}
		if i == sel && !m.uploadState.running {
			line = styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(" " + line + "\n")
	}

	if m.uploadState.summary != "" {
		b.WriteString("\n " + styles.InfoText.Render(m.uploadState.summary) + "\n")
	}
	return b.String()
}
