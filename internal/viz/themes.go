package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the plot layers.
type Theme struct {
	Name  string
	Curve lipgloss.Color
	Field lipgloss.Color
	Axes  lipgloss.Color
	Seed  lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:  "cyberpunk",
		Curve: lipgloss.Color("#ff00ff"),
		Field: lipgloss.Color("#00ffff"),
		Axes:  lipgloss.Color("#666666"),
		Seed:  lipgloss.Color("#ffff00"),
	}

	ThemeRetroGreen = Theme{
		Name:  "retro",
		Curve: lipgloss.Color("#00ff00"),
		Field: lipgloss.Color("#00cc00"),
		Axes:  lipgloss.Color("#005500"),
		Seed:  lipgloss.Color("#88ff88"),
	}

	ThemeOcean = Theme{
		Name:  "ocean",
		Curve: lipgloss.Color("#ffd700"),
		Field: lipgloss.Color("#00a8cc"),
		Axes:  lipgloss.Color("#4488aa"),
		Seed:  lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
