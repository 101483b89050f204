package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lcamargo/darkroom/internal/api"
)

// expandPattern resolves a file path or glob into concrete paths. A
// plain path comes back as-is so the draft builder reports the stat
// error itself.
func expandPattern(pattern string) ([]string, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, nil
	}
	if strings.HasPrefix(pattern, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			pattern = filepath.Join(home, pattern[2:])
		}
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return []string{pattern}, nil
	}
	return filepath.Glob(pattern)
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// clampIndex keeps a list selection inside [0, n-1]. An empty list pins
// the selection at zero.
func clampIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func plural(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}

// categoryName resolves a category id to its display name. Unknown or
// zero ids render as "none".
func categoryName(categories []api.Category, id int64) string {
	if id == 0 {
		return "none"
	}
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return fmt.Sprintf("#%d", id)
}

// workTitle resolves a work id to its title. Zero means unassigned.
func workTitle(works []api.Work, id int64) string {
	if id == 0 {
		return "none"
	}
	for _, w := range works {
		if w.ID == id {
			return w.Title
		}
	}
	return fmt.Sprintf("#%d", id)
}

// nextCategoryID cycles through the loaded categories, with zero ("none")
// as the first stop.
func nextCategoryID(categories []api.Category, current int64) int64 {
	if len(categories) == 0 {
		return 0
	}
	if current == 0 {
		return categories[0].ID
	}
	for i, c := range categories {
		if c.ID == current {
			if i+1 < len(categories) {
				return categories[i+1].ID
			}
			return 0
		}
	}
	return 0
}

// nextWorkID cycles through the loaded works, with zero ("none") as the
// first stop.
func nextWorkID(works []api.Work, current int64) int64 {
	if len(works) == 0 {
		return 0
	}
	if current == 0 {
		return works[0].ID
	}
	for i, w := range works {
		if w.ID == current {
			if i+1 < len(works) {
				return works[i+1].ID
			}
			return 0
		}
	}
	return 0
}

// cycleFilter advances the gallery category filter: all, then each
// category in order, then back to all. An empty filter means all.
func cycleFilter(filters []string, current string) string {
	if len(filters) == 0 {
		return ""
	}
	if current == "" {
		return filters[0]
	}
	for i, f := range filters {
		if f == current {
			if i+1 < len(filters) {
				return filters[i+1]
			}
			return ""
		}
	}
	return ""
}

func filterLabel(filter string) string {
	if filter == "" {
		return "All"
	}
	return filter
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
