package upload

import (
	"context"
	"testing"

	"github.com/lcamargo/darkroom/internal/api"
)

type fakeCreator struct {
	calls   []string
	failOn  map[string]string
	nextID  int64
	pending int // concurrent in-flight requests, to assert serialization
	maxSeen int
}

func (f *fakeCreator) CreatePhoto(ctx context.Context, up api.PhotoUploadRequest) (api.Photo, error) {
	f.pending++
	if f.pending > f.maxSeen {
		f.maxSeen = f.pending
	}
	defer func() { f.pending-- }()

	f.calls = append(f.calls, up.Title)
	if msg, ok := f.failOn[up.Title]; ok {
		return api.Photo{}, &api.Error{Status: 500, Message: msg}
	}
	f.nextID++
	return api.Photo{ID: f.nextID, Title: up.Title, CategoryID: up.CategoryID, WorkID: up.WorkID}, nil
}

func drafts(titles ...string) []Draft {
	out := make([]Draft, 0, len(titles))
	for _, title := range titles {
		out = append(out, Draft{ID: "draft-" + title, Title: title, Path: "/tmp/" + title + ".jpg"})
	}
	return out
}

func TestRun_PartialFailure(t *testing.T) {
	creator := &fakeCreator{failOn: map[string]string{"two": "disk full"}}
	uploader := NewUploader(creator)

	var events []Progress
	batch := uploader.Run(context.Background(), drafts("one", "two", "three"), func(p Progress) {
		events = append(events, p)
	})

	if batch.Succeeded != 2 || batch.Failed != 1 {
		t.Fatalf("batch = %d ok / %d failed, want 2/1", batch.Succeeded, batch.Failed)
	}
	if batch.Outcome() != SomeFailed {
		t.Fatalf("Outcome = %v, want SomeFailed", batch.Outcome())
	}
	if len(batch.Created) != 2 || batch.Created[0].Title != "one" || batch.Created[1].Title != "three" {
		t.Fatalf("Created = %#v, want photos one and three", batch.Created)
	}
	if len(batch.Remaining) != 1 || batch.Remaining[0].Title != "two" {
		t.Fatalf("Remaining = %#v, want only the failed draft", batch.Remaining)
	}
	if batch.Remaining[0].Status != StatusFailed || batch.Remaining[0].Error != "disk full" {
		t.Fatalf("failed draft = %#v, want failed with server message", batch.Remaining[0])
	}

	// Terminal per-item transitions, in selection order.
	var terminal []Progress
	for _, e := range events {
		if e.Status == StatusDone || e.Status == StatusFailed {
			terminal = append(terminal, e)
		}
	}
	if len(terminal) != 3 {
		t.Fatalf("terminal events = %#v, want 3", terminal)
	}
	wantStatuses := []Status{StatusDone, StatusFailed, StatusDone}
	for i, want := range wantStatuses {
		if terminal[i].Status != want {
			t.Fatalf("terminal[%d] = %v, want %v", i, terminal[i].Status, want)
		}
	}
}

func TestRun_SequentialSelectionOrder(t *testing.T) {
	creator := &fakeCreator{}
	uploader := NewUploader(creator)

	uploader.Run(context.Background(), drafts("a", "b", "c", "d"), nil)

	if creator.maxSeen != 1 {
		t.Fatalf("max concurrent requests = %d, want strictly sequential", creator.maxSeen)
	}
	want := []string{"a", "b", "c", "d"}
	if len(creator.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", creator.calls, want)
	}
	for i, title := range want {
		if creator.calls[i] != title {
			t.Fatalf("call %d = %q, want %q (selection order)", i, creator.calls[i], title)
		}
	}
}

func TestRun_Outcomes(t *testing.T) {
	allOK := NewUploader(&fakeCreator{}).Run(context.Background(), drafts("a", "b"), nil)
	if allOK.Outcome() != AllSucceeded {
		t.Fatalf("Outcome = %v, want AllSucceeded", allOK.Outcome())
	}

	creator := &fakeCreator{failOn: map[string]string{"a": "x", "b": "y"}}
	allBad := NewUploader(creator).Run(context.Background(), drafts("a", "b"), nil)
	if allBad.Outcome() != AllFailed {
		t.Fatalf("Outcome = %v, want AllFailed", allBad.Outcome())
	}
}

func TestRun_CancelledContextFailsRemainder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	creator := &fakeCreator{}
	batch := NewUploader(creator).Run(ctx, drafts("a", "b"), nil)

	if len(creator.calls) != 0 {
		t.Fatalf("calls = %v, want no requests after cancellation", creator.calls)
	}
	if batch.Failed != 2 || batch.Outcome() != AllFailed {
		t.Fatalf("batch = %+v, want both drafts failed", batch)
	}
}
