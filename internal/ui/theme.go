package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and footer bars
	SurfaceAlt string // Secondary surfaces

	// List colors
	SelectionBg   string // Selected row background
	SelectionText string // Selected row text

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Per upload-status badge colors, keyed by upload.Status strings.
	StatusColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		PanelFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		statusColors: t.StatusColors,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	Panel      lipgloss.Style
	PanelFocus lipgloss.Style

	statusColors map[string]string
}

// StatusText returns a style for an upload status badge. Unknown statuses
// fall back to muted text.
func (s Styles) StatusText(status string) lipgloss.Style {
	if c, ok := s.statusColors[status]; ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true)
	}
	return s.MutedText
}

var themes = map[string]Theme{
	"Dracula":  draculaTheme(),
	"Nightfox": nightfoxTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Dracula", "Nightfox", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func draculaTheme() Theme {
	// Dracula palette: https://draculatheme.com/contribute
	return Theme{
		Name: "Dracula",

		Background: "#282a36",
		Surface:    "#343746",
		SurfaceAlt: "#44475a",

		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",

		Border:      "#6272a4",
		BorderFocus: "#bd93f9",

		Text:    "#f8f8f2",
		Muted:   "#9da5c9",
		Faint:   "#6272a4",
		Accent:  "#bd93f9",
		Success: "#50fa7b",
		Warning: "#f1fa8c",
		Danger:  "#ff5555",
		Info:    "#8be9fd",

		StatusColors: map[string]string{
			"pending":   "#9da5c9",
			"uploading": "#f1fa8c",
			"done":      "#50fa7b",
			"failed":    "#ff5555",
		},
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24",
		Surface:    "#192330",
		SurfaceAlt: "#212e3f",

		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",

		Border:      "#39506d",
		BorderFocus: "#719cd6",

		Text:    "#cdcecf",
		Muted:   "#aeafb0",
		Faint:   "#71839b",
		Accent:  "#719cd6",
		Success: "#81b29a",
		Warning: "#dbc074",
		Danger:  "#c94f6d",
		Info:    "#63cdcf",

		StatusColors: map[string]string{
			"pending":   "#aeafb0",
			"uploading": "#dbc074",
			"done":      "#81b29a",
			"failed":    "#c94f6d",
		},
	}
}

func slateTheme() Theme {
	return Theme{
		Name: "Slate",

		Background: "#1c1f26",
		Surface:    "#242933",
		SurfaceAlt: "#2e3440",

		SelectionBg:   "#3b4252",
		SelectionText: "#eceff4",

		Border:      "#4c566a",
		BorderFocus: "#88c0d0",

		Text:    "#e5e9f0",
		Muted:   "#aab2c0",
		Faint:   "#616e88",
		Accent:  "#88c0d0",
		Success: "#a3be8c",
		Warning: "#ebcb8b",
		Danger:  "#bf616a",
		Info:    "#81a1c1",

		StatusColors: map[string]string{
			"pending":   "#aab2c0",
			"uploading": "#ebcb8b",
			"done":      "#a3be8c",
			"failed":    "#bf616a",
		},
	}
}
