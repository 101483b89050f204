package upload

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// Status is the terminal state of one draft's upload attempt.
type Status int

const (
	StatusPending Status = iota
	StatusUploading
	StatusDone
	StatusFailed
)

// String returns the display label for a status.
func (s Status) String() string {
	switch s {
	case StatusUploading:
		return "uploading"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Draft is a client-only photo pending upload. It exists between file
// selection and the settled upload attempt and is never persisted.
type Draft struct {
	ID          string
	Path        string
	Title       string
	Description string
	CategoryID  int64
	WorkID      int64
	IsFeatured  bool
	PreviewPath string
	Status      Status
	Error       string
}

// Defaults are applied to every draft at creation, mirroring the upload
// form's global settings. Zero fields leave the draft's own values alone.
type Defaults struct {
	CategoryID int64
	WorkID     int64
	IsFeatured bool
}

const (
	previewSize    = 240
	previewQuality = 85
)

// NewDraft builds a draft for one selected file. The title defaults to
// the filename stem. When previewDir is non-empty a downscaled JPEG
// preview is generated next to it; preview failure is not fatal, the
// draft stays uploadable.
func NewDraft(path string, defaults Defaults, previewDir string) (Draft, error) {
	if _, err := os.Stat(path); err != nil {
		return Draft{}, fmt.Errorf("stat %s: %w", path, err)
	}
	d := Draft{
		ID:         uuid.NewString(),
		Path:       path,
		Title:      titleFromFilename(path),
		CategoryID: defaults.CategoryID,
		WorkID:     defaults.WorkID,
		IsFeatured: defaults.IsFeatured,
	}
	if previewDir != "" {
		if preview, err := writePreview(path, previewDir, d.ID); err == nil {
			d.PreviewPath = preview
		}
	}
	return d, nil
}

// ApplyDefaults re-applies the global settings to pending drafts, the
// "apply to all" action on the upload screen. Drafts already settled are
// left untouched.
func ApplyDefaults(drafts []Draft, defaults Defaults) {
	for i := range drafts {
		if drafts[i].Status == StatusDone {
			continue
		}
		if defaults.CategoryID != 0 {
			drafts[i].CategoryID = defaults.CategoryID
		}
		if defaults.WorkID != 0 {
			drafts[i].WorkID = defaults.WorkID
		}
		drafts[i].IsFeatured = defaults.IsFeatured
	}
}

func titleFromFilename(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

// writePreview decodes the image and writes a thumbnail into dir.
func writePreview(path, dir, id string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = file.Close() }()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	thumbnail := resize.Thumbnail(previewSize, previewSize, img, resize.Lanczos3)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create preview dir: %w", err)
	}
	out := filepath.Join(dir, id+".jpg")
	dst, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create preview: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if err := jpeg.Encode(dst, thumbnail, &jpeg.Options{Quality: previewQuality}); err != nil {
		return "", fmt.Errorf("encode preview: %w", err)
	}
	return out, nil
}
