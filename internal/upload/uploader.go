package upload

import (
	"context"

	"github.com/lcamargo/darkroom/internal/api"
)

// PhotoCreator is the one API operation the uploader needs. Implemented
// by *api.Client and fakeable in tests.
type PhotoCreator interface {
	CreatePhoto(ctx context.Context, up api.PhotoUploadRequest) (api.Photo, error)
}

// Progress reports one draft's status transition during a batch.
type Progress struct {
	DraftID string
	Status  Status
	Error   string
}

// Outcome is the batch-level summary: a partial failure is an expected
// outcome, not an error state.
type Outcome int

const (
	AllSucceeded Outcome = iota
	SomeFailed
	AllFailed
)

// Batch is the settled result of an upload run. Created carries the
// server's echo of every photo that made it; Remaining carries the
// drafts that failed, flagged for retry or removal.
type Batch struct {
	Created   []api.Photo
	Remaining []Draft
	Succeeded int
	Failed    int
}

// Outcome classifies the batch.
func (b Batch) Outcome() Outcome {
	switch {
	case b.Failed == 0:
		return AllSucceeded
	case b.Succeeded == 0:
		return AllFailed
	default:
		return SomeFailed
	}
}

// Uploader runs photo uploads against the API.
type Uploader struct {
	creator PhotoCreator
}

// NewUploader builds an Uploader.
func NewUploader(creator PhotoCreator) *Uploader {
	return &Uploader{creator: creator}
}

// UploadOne attempts a single draft and returns it with a settled
// status. The created photo is meaningful only when the returned draft's
// status is StatusDone.
func (u *Uploader) UploadOne(ctx context.Context, d Draft) (Draft, api.Photo) {
	created, err := u.creator.CreatePhoto(ctx, api.PhotoUploadRequest{
		Path:        d.Path,
		Title:       d.Title,
		Description: d.Description,
		CategoryID:  d.CategoryID,
		WorkID:      d.WorkID,
		IsFeatured:  d.IsFeatured,
	})
	if err != nil {
		d.Status = StatusFailed
		d.Error = err.Error()
		return d, api.Photo{}
	}
	d.Status = StatusDone
	d.Error = ""
	return d, created
}

// Run uploads the drafts strictly one after another, in the order given.
// Draft N+1's request is not issued until draft N's has settled; the
// serialization is deliberate backpressure, not an accident. Per-item
// transitions are reported through onProgress when it is non-nil, keyed
// by draft id. Successful drafts are pruned from Remaining; failures
// stay for retry. A cancelled context fails the remaining drafts without
// issuing their requests.
func (u *Uploader) Run(ctx context.Context, drafts []Draft, onProgress func(Progress)) Batch {
	notify := func(p Progress) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	var batch Batch
	for i, d := range drafts {
		if err := ctx.Err(); err != nil {
			for _, rest := range drafts[i:] {
				rest.Status = StatusFailed
				rest.Error = "cancelled"
				batch.Failed++
				batch.Remaining = append(batch.Remaining, rest)
				notify(Progress{DraftID: rest.ID, Status: StatusFailed, Error: rest.Error})
			}
			break
		}

		notify(Progress{DraftID: d.ID, Status: StatusUploading})
		settled, created := u.UploadOne(ctx, d)
		if settled.Status == StatusDone {
			batch.Succeeded++
			batch.Created = append(batch.Created, created)
		} else {
			batch.Failed++
			batch.Remaining = append(batch.Remaining, settled)
		}
		notify(Progress{DraftID: settled.ID, Status: settled.Status, Error: settled.Error})
	}
	return batch
}
