package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lcamargo/darkroom/internal/api"
	"github.com/lcamargo/darkroom/internal/portfolio"
	"github.com/lcamargo/darkroom/internal/prefs"
	"github.com/lcamargo/darkroom/internal/upload"
)

// fakeAPI satisfies api.PortfolioAPI; individual tests override the
// fields they exercise.
type fakeAPI struct {
	photos []api.Photo
	works  []api.Work
}

func (f *fakeAPI) ListPhotos(context.Context) ([]api.Photo, error) { return f.photos, nil }
func (f *fakeAPI) ListWorks(context.Context) ([]api.Work, error)   { return f.works, nil }
func (f *fakeAPI) ListWorkPhotos(context.Context, int64) ([]api.Photo, error) {
	return nil, nil
}
func (f *fakeAPI) ListCategories(context.Context) ([]api.Category, error) { return nil, nil }
func (f *fakeAPI) CreatePhoto(context.Context, api.PhotoUploadRequest) (api.Photo, error) {
	return api.Photo{}, nil
}
func (f *fakeAPI) UpdatePhoto(context.Context, api.PhotoUpdate) (api.Photo, error) {
	return api.Photo{}, nil
}
func (f *fakeAPI) DeletePhoto(context.Context, int64) error { return nil }
func (f *fakeAPI) CreateWork(context.Context, api.WorkUpdate) (api.Work, error) {
	return api.Work{}, nil
}
func (f *fakeAPI) DeleteWork(context.Context, int64) error { return nil }
func (f *fakeAPI) Login(context.Context, string, string) (api.LoginResponse, error) {
	return api.LoginResponse{}, nil
}
func (f *fakeAPI) Verify(context.Context) (api.User, error) { return api.User{}, nil }
func (f *fakeAPI) SendContact(context.Context, api.ContactMessage) (api.ContactResponse, error) {
	return api.ContactResponse{}, nil
}
func (f *fakeAPI) FetchHealth(context.Context) (*api.Health, error) { return &api.Health{}, nil }

func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(Options{
		Client:    &fakeAPI{},
		Prefs:     prefs.Prefs{Theme: "Dracula", ConfirmDeletes: true},
		PrefsPath: t.TempDir() + "/prefs.toml",
	})
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next, cmd
}

func TestUpdate_StaleGalleryResultDiscarded(t *testing.T) {
	m := newTestModel(t)

	gen1 := m.gallery.Begin()
	gen2 := m.gallery.Begin()

	fresh := []portfolio.GalleryEntry{{ID: 2, Title: "fresh"}}
	stale := []portfolio.GalleryEntry{{ID: 1, Title: "stale"}}

	m, _ = apply(t, m, galleryMsg{gen: gen2, entries: fresh})
	m, _ = apply(t, m, galleryMsg{gen: gen1, entries: stale})

	items := m.gallery.Snapshot().Items
	if len(items) != 1 || items[0].Title != "fresh" {
		t.Fatalf("gallery = %+v, want the fresh result only", items)
	}
}

func TestUpdate_PhotoDeletedReconcilesInPlace(t *testing.T) {
	m := newTestModel(t)

	gen := m.photos.Begin()
	m.photos.Apply(gen, []api.Photo{{ID: 1, Title: "keep"}, {ID: 2, Title: "drop"}}, nil)

	m, cmd := apply(t, m, photoDeletedMsg{id: 2})
	if cmd != nil {
		t.Fatalf("photo delete should not trigger a reload")
	}

	snap := m.photos.Snapshot()
	if snap.Loading {
		t.Fatal("collection re-entered loading state on delete")
	}
	if len(snap.Items) != 1 || snap.Items[0].ID != 1 {
		t.Fatalf("photos = %+v, want only id 1", snap.Items)
	}
	if m.notice.text != "photo deleted" {
		t.Fatalf("notice = %q, want %q", m.notice.text, "photo deleted")
	}
}

func TestUpdate_PhotoDeleteNotFoundIsBenign(t *testing.T) {
	m := newTestModel(t)

	gen := m.photos.Begin()
	m.photos.Apply(gen, []api.Photo{{ID: 5}}, nil)

	notFound := &api.Error{Status: 404, Message: "Photo not found"}
	m, _ = apply(t, m, photoDeletedMsg{id: 5, err: notFound})

	if len(m.photos.Snapshot().Items) != 0 {
		t.Fatal("already-deleted photo should still be removed locally")
	}
	if m.notice.isError {
		t.Fatalf("404 on delete reported as error: %q", m.notice.text)
	}
}

func TestUpdate_PhotoDeleteFailureKeepsItem(t *testing.T) {
	m := newTestModel(t)

	gen := m.photos.Begin()
	m.photos.Apply(gen, []api.Photo{{ID: 5}}, nil)

	m, _ = apply(t, m, photoDeletedMsg{id: 5, err: errors.New("boom")})

	if len(m.photos.Snapshot().Items) != 1 {
		t.Fatal("failed delete must not remove the item")
	}
	if !m.notice.isError {
		t.Fatal("failed delete should surface an error notice")
	}
}

func TestUpdate_WorkDeletedReloadsPhotos(t *testing.T) {
	m := newTestModel(t)

	gen := m.works.Begin()
	m.works.Apply(gen, []api.Work{{ID: 1, Title: "gone"}, {ID: 2, Title: "stays"}}, nil)

	m, cmd := apply(t, m, workDeletedMsg{id: 1})
	if cmd == nil {
		t.Fatal("work delete must reload photos: their membership went stale")
	}

	works := m.works.Snapshot().Items
	if len(works) != 1 || works[0].ID != 2 {
		t.Fatalf("works = %+v, want only id 2", works)
	}
}

func TestUpdate_PhotoSavedPatchesCollections(t *testing.T) {
	m := newTestModel(t)

	gen := m.photos.Begin()
	m.photos.Apply(gen, []api.Photo{{ID: 1, Title: "old"}}, nil)
	wpGen := m.workPhotos.Begin()
	m.workPhotos.Apply(wpGen, []api.Photo{{ID: 1, Title: "old"}}, nil)

	saved := api.Photo{ID: 1, Title: "new", IsFeatured: true}
	m, _ = apply(t, m, photoSavedMsg{photo: saved})

	if got := m.photos.Snapshot().Items[0]; got.Title != "new" || !got.IsFeatured {
		t.Fatalf("photos not patched: %+v", got)
	}
	if got := m.workPhotos.Snapshot().Items[0]; got.Title != "new" {
		t.Fatalf("work photos not patched: %+v", got)
	}
}

func TestUpdate_LoginSuccessEntersPendingView(t *testing.T) {
	m := newTestModel(t)
	m.currentView = ViewLogin
	m.pendingView = ViewWorks

	resp := api.LoginResponse{Success: true, Token: "tok", User: api.User{Username: "admin"}}
	m, cmd := apply(t, m, loginMsg{resp: resp})

	if m.currentView != ViewWorks {
		t.Fatalf("view = %v, want ViewWorks", m.currentView)
	}
	if cmd == nil {
		t.Fatal("login success should kick off the admin loads")
	}
}

func TestUpdate_LoginRejectionStaysOnForm(t *testing.T) {
	m := newTestModel(t)
	m.currentView = ViewLogin

	resp := api.LoginResponse{Success: false, Error: "Invalid credentials"}
	m, _ = apply(t, m, loginMsg{resp: resp})

	if m.currentView != ViewLogin {
		t.Fatalf("view = %v, want ViewLogin", m.currentView)
	}
	if got := m.loginState.form.Message(); got != "Invalid credentials" {
		t.Fatalf("form message = %q, want server's reason verbatim", got)
	}
}

func TestUpdate_DraftSettledChainsNextPending(t *testing.T) {
	m := newTestModel(t)
	m.uploader = upload.NewUploader(&fakeAPI{})
	m.uploadState.drafts = []upload.Draft{
		{ID: "a", Title: "first", Status: upload.StatusUploading, Path: "/tmp/a.jpg"},
		{ID: "b", Title: "second", Status: upload.StatusPending, Path: "/tmp/b.jpg"},
	}
	m.uploadState.running = true

	first := m.uploadState.drafts[0]
	first.Status = upload.StatusDone
	m, cmd := apply(t, m, draftSettledMsg{draft: first})
	if cmd == nil {
		t.Fatal("a pending draft remains, expected the next upload command")
	}
	if m.uploadState.succeeded != 1 {
		t.Fatalf("succeeded = %d, want 1", m.uploadState.succeeded)
	}
	if m.uploadState.drafts[1].Status != upload.StatusUploading {
		t.Fatalf("second draft status = %v, want uploading", m.uploadState.drafts[1].Status)
	}
}

func TestUpdate_LastDraftSettledFinishesBatch(t *testing.T) {
	m := newTestModel(t)
	m.uploadState.drafts = []upload.Draft{
		{ID: "a", Title: "only", Status: upload.StatusUploading},
	}
	m.uploadState.running = true
	m.uploadState.succeeded = 1 // an earlier draft in the same batch

	last := m.uploadState.drafts[0]
	last.Status = upload.StatusFailed
	last.Error = "disk full"
	m, cmd := apply(t, m, draftSettledMsg{draft: last})

	if m.uploadState.running {
		t.Fatal("batch should settle once no drafts are pending")
	}
	if cmd == nil {
		t.Fatal("finished batch should reload photos, works, and gallery")
	}
	if m.uploadState.summary != "1 uploaded, 1 failed" {
		t.Fatalf("summary = %q, want %q", m.uploadState.summary, "1 uploaded, 1 failed")
	}
	if len(m.uploadState.drafts) != 1 || m.uploadState.drafts[0].Error != "disk full" {
		t.Fatalf("failed draft should stay for retry, got %+v", m.uploadState.drafts)
	}
}
