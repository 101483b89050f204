package ui

import "testing"

func TestGetTheme_FallsBackToDracula(t *testing.T) {
	if got := GetTheme("NoSuchTheme"); got.Name != "Dracula" {
		t.Fatalf("GetTheme fallback = %q, want Dracula", got.Name)
	}
	if got := GetTheme("Nightfox"); got.Name != "Nightfox" {
		t.Fatalf("GetTheme = %q, want Nightfox", got.Name)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	seen := map[string]bool{}
	name := themeOrder[0]
	for range themeOrder {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != themeOrder[0] {
		t.Fatalf("cycle did not wrap, ended at %q", name)
	}
	for _, want := range ThemeNames() {
		if !seen[want] {
			t.Errorf("theme %q never reached in cycle", want)
		}
	}
	if got := NextTheme("unknown"); got != themeOrder[0] {
		t.Fatalf("NextTheme(unknown) = %q, want %q", got, themeOrder[0])
	}
}

func TestThemes_CoverUploadStatuses(t *testing.T) {
	statuses := []string{"pending", "uploading", "done", "failed"}
	for _, name := range ThemeNames() {
		theme := GetTheme(name)
		for _, status := range statuses {
			if _, ok := theme.StatusColors[status]; !ok {
				t.Errorf("theme %q missing status color %q", name, status)
			}
		}
	}
}
