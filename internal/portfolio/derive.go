package portfolio

import "github.com/lcamargo/darkroom/internal/api"

// FilterAll is the filter value that passes every item through.
const FilterAll = "all"

// Categorized is satisfied by photos and works, which both carry a
// denormalized category identifier for display filtering.
type Categorized interface {
	Category() string
}

// FilterByCategory returns the items whose category matches the active
// filter, preserving relative order. FilterAll (or an empty filter)
// returns the full input. The input is never mutated.
func FilterByCategory[T Categorized](items []T, activeFilter string) []T {
	if activeFilter == "" || activeFilter == FilterAll {
		return items
	}
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if item.Category() == activeFilter {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Unassigned returns the photos not attached to any work.
func Unassigned(photos []api.Photo) []api.Photo {
	out := make([]api.Photo, 0, len(photos))
	for _, p := range photos {
		if !p.Assigned() {
			out = append(out, p)
		}
	}
	return out
}

// ForWork returns the photos attached to the given work.
func ForWork(photos []api.Photo, workID int64) []api.Photo {
	out := make([]api.Photo, 0, len(photos))
	for _, p := range photos {
		if p.WorkID == workID {
			out = append(out, p)
		}
	}
	return out
}

// Featured returns the photos flagged as featured.
func Featured(photos []api.Photo) []api.Photo {
	out := make([]api.Photo, 0, len(photos))
	for _, p := range photos {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}

// DistinctCategories returns the non-empty category identifiers present
// across the items, first occurrence order, no duplicates.
func DistinctCategories[T Categorized](items []T) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		c := item.Category()
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// GalleryEntry is one tile in the public gallery: either a work's cover
// photo or, when no works exist, an individual photo.
type GalleryEntry struct {
	ID           int64
	Title        string
	URL          string
	CategorySlug string
	WorkID       int64
	PhotoCount   int
}

// Category implements Categorized so gallery entries filter like photos.
func (e GalleryEntry) Category() string {
	return e.CategorySlug
}

// CoverEntries builds gallery entries from works that have a cover
// photo. Works without covers are skipped; opening any of these entries
// navigates into the work's own gallery.
func CoverEntries(works []api.Work) []GalleryEntry {
	out := make([]GalleryEntry, 0, len(works))
	for _, w := range works {
		if w.CoverPhotoURL == "" {
			continue
		}
		out = append(out, GalleryEntry{
			ID:           w.ID,
			Title:        w.Title,
			URL:          w.CoverPhotoURL,
			CategorySlug: w.Category(),
			WorkID:       w.ID,
			PhotoCount:   w.PhotoCount,
		})
	}
	return out
}

// PhotoEntries builds gallery entries from individual photos, the
// fallback when the works collection is empty.
func PhotoEntries(photos []api.Photo) []GalleryEntry {
	out := make([]GalleryEntry, 0, len(photos))
	for _, p := range photos {
		out = append(out, GalleryEntry{
			ID:           p.ID,
			Title:        p.Title,
			URL:          p.URL,
			CategorySlug: p.Category(),
			WorkID:       p.WorkID,
		})
	}
	return out
}

// Stats summarizes the collections for the admin dashboard header.
type Stats struct {
	TotalPhotos    int
	FeaturedPhotos int
	TotalWorks     int
	Categories     int
	Unassigned     int
}

// ComputeStats derives dashboard totals from loaded collections.
func ComputeStats(photos []api.Photo, works []api.Work) Stats {
	stats := Stats{
		TotalPhotos: len(photos),
		TotalWorks:  len(works),
	}
	for _, p := range photos {
		if p.IsFeatured {
			stats.FeaturedPhotos++
		}
		if !p.Assigned() {
			stats.Unassigned++
		}
	}
	stats.Categories = len(DistinctCategories(photos))
	return stats
}
