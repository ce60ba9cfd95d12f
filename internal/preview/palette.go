package preview

import "github.com/charmbracelet/lipgloss"

// palette holds the colors for one appearance. All values are hex strings.
type palette struct {
	Bg     string
	Fg     string
	Muted  string
	Accent string
	Border string
}

var (
	darkPalette = palette{
		Bg:     "#0d1117",
		Fg:     "#c9d1d9",
		Muted:  "#8b949e",
		Accent: "#58a6ff",
		Border: "#30363d",
	}
	lightPalette = palette{
		Bg:     "#ffffff",
		Fg:     "#1f2328",
		Muted:  "#656d76",
		Accent: "#0969da",
		Border: "#d0d7de",
	}
)

func paletteFor(dark bool) palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// styles are the lipgloss styles built from a palette.
type styles struct {
	panel lipgloss.Style
	title lipgloss.Style
	body  lipgloss.Style
	muted lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Bg)).
			Foreground(lipgloss.Color(p.Fg)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(1, 2),
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true),
		body: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Fg)),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),
	}
}
