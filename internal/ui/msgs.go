package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lcamargo/darkroom/internal/api"
	"github.com/lcamargo/darkroom/internal/portfolio"
	"github.com/lcamargo/darkroom/internal/state"
	"github.com/lcamargo/darkroom/internal/upload"
)

// fetchTimeout bounds every interactive API call. Uploads use the app
// context instead so large files are not cut off mid-transfer.
const fetchTimeout = 10 * time.Second

// Messages

type tickMsg time.Time

type healthMsg state.Snapshot

// Collection results carry the generation issued at load start. The
// update loop hands gen back to the collection, which discards results
// from superseded loads.
type galleryMsg struct {
	gen     uint64
	entries []portfolio.GalleryEntry
	err     error
}

type photosMsg struct {
	gen    uint64
	photos []api.Photo
	err    error
}

type worksMsg struct {
	gen   uint64
	works []api.Work
	err   error
}

type categoriesMsg struct {
	gen        uint64
	categories []api.Category
	err        error
}

type workPhotosMsg struct {
	gen    uint64
	workID int64
	photos []api.Photo
	err    error
}

// Mutation results. These reconcile loaded collections in place rather
// than reloading, except where the server derives state the client
// cannot (work creation, cascade nulling on work deletion).

type photoSavedMsg struct {
	photo api.Photo
	err   error
}

type photoDeletedMsg struct {
	id  int64
	err error
}

type workCreatedMsg struct {
	work api.Work
	err  error
}

type workDeletedMsg struct {
	id  int64
	err error
}

type loginMsg struct {
	resp api.LoginResponse
	err  error
}

type verifyMsg struct {
	user api.User
	err  error
}

type contactMsg struct {
	resp api.ContactResponse
	err  error
}

type draftsAddedMsg struct {
	drafts []upload.Draft
	failed int
}

type draftSettledMsg struct {
	draft upload.Draft
	photo api.Photo
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchHealthCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return healthMsg(store.Snapshot())
	}
}

// loadGalleryCmd assembles the public gallery: work covers first, every
// photo as the fallback when no work has a cover yet.
func (m Model) loadGalleryCmd() tea.Cmd {
	gen := m.gallery.Begin()
	client := m.client
	source := state.FirstNonEmpty(
		func(ctx context.Context) ([]portfolio.GalleryEntry, error) {
			works, err := client.ListWorks(ctx)
			if err != nil {
				return nil, err
			}
			return portfolio.CoverEntries(works), nil
		},
		func(ctx context.Context) ([]portfolio.GalleryEntry, error) {
			photos, err := client.ListPhotos(ctx)
			if err != nil {
				return nil, err
			}
			return portfolio.PhotoEntries(photos), nil
		},
	)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, fetchTimeout)
		defer cancel()
		entries, err := source(ctx)
		return galleryMsg{gen: gen, entries: entries, err: err}
	}
}

func (m Model) loadPhotosCmd() tea.Cmd {
	gen := m.photos.Begin()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, fetchTimeout)
		defer cancel()
		photos, err := m.client.ListPhotos(ctx)
		return photosMsg{gen: gen, photos: photos, err: err}
	}
}

func (m Model) loadWorksCmd() tea.Cmd {
	gen := m.works.Begin()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, fetchTimeout)
		defer cancel()
		works, err := m.client.ListWorks(ctx)
		return worksMsg{gen: gen, works: works, err: err}
	}
}

func (m Model) loadCategoriesCmd() tea.Cmd {
	gen := m.categories.Begin()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, fetchTimeout)
		defer cancel()
		categories, err := m.client.ListCategories(ctx)
		return categoriesMsg{gen: gen, categories: categories, err: err}
	}
}

func (m Model) loadWorkPhotosCmd(workID int64) tea.Cmd {
	gen := m.workPhotos.Begin()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, fetchTimeout)
		defer cancel()
		photos, err := m.client.ListWorkPhotos(ctx, workID)
		return workPhotosMsg{gen: gen, workID: workID, photos: photos, err: err}
	}
}

func (m Model) savePhotoCmd(update api.PhotoUpdate) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, fetchTimeout)
		defer cancel()
		photo, err := m.client.UpdatePhoto(ctx, update)
		return photoSavedMsg{photo: photo, err: err}
	}
}

func (m Model) deletePhotoCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, fetchTimeout)
		defer cancel()
		return photoDeletedMsg{id: id, err: m.client.DeletePhoto(ctx, id)}
	}
}

func (m Model) createWorkCmd(update api.WorkUpdate) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, fetchTimeout)
		defer cancel()
		work, err := m.client.CreateWork(ctx, update)
		return workCreatedMsg{work: work, err: err}
	}
}

func (m Model) deleteWorkCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, fetchTimeout)
		defer cancel()
		return workDeletedMsg{id: id, err: m.client.DeleteWork(ctx, id)}
	}
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, fetchTimeout)
		defer cancel()
		resp, err := m.client.Login(ctx, username, password)
		return loginMsg{resp: resp, err: err}
	}
}

func (m Model) verifyCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, fetchTimeout)
		defer cancel()
		user, err := m.client.Verify(ctx)
		return verifyMsg{user: user, err: err}
	}
}

func (m Model) sendContactCmd(msg api.ContactMessage) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, fetchTimeout)
		defer cancel()
		resp, err := m.client.SendContact(ctx, msg)
		return contactMsg{resp: resp, err: err}
	}
}

// addDraftsCmd expands a path or glob pattern into upload drafts.
// Unreadable files are counted, not fatal.
func (m Model) addDraftsCmd(pattern string, defaults upload.Defaults) tea.Cmd {
	previewDir := ""
	if m.config != nil {
		previewDir = m.config.CacheDir
	}
	return func() tea.Msg {
		matches, err := expandPattern(pattern)
		if err != nil || len(matches) == 0 {
			return draftsAddedMsg{failed: 1}
		}
		var added []upload.Draft
		failed := 0
		for _, path := range matches {
			draft, err := upload.NewDraft(path, defaults, previewDir)
			if err != nil {
				failed++
				continue
			}
			added = append(added, draft)
		}
		return draftsAddedMsg{drafts: added, failed: failed}
	}
}

// uploadDraftCmd attempts one draft. The upload screen chains these so
// at most one request is in flight; a cancelled app context settles the
// draft as failed without issuing the request.
func (m Model) uploadDraftCmd(d upload.Draft) tea.Cmd {
	return func() tea.Msg {
		if err := m.ctx.Err(); err != nil {
			d.Status = upload.StatusFailed
			d.Error = "cancelled"
			return draftSettledMsg{draft: d}
		}
		settled, photo := m.uploader.UploadOne(m.ctx, d)
		return draftSettledMsg{draft: settled, photo: photo}
	}
}
