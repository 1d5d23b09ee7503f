// Package ui renders notes and status output for the terminal. A Theme is
// constructed once from configuration and passed explicitly to every render
// call; there is no package-level theme state.
package ui

import "github.com/fatih/color"

// Theme names accepted in configuration.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeMono  = "mono"
)

// Theme holds the color roles used by the renderer.
type Theme struct {
	Name    string
	Title   *color.Color
	Accent  *color.Color
	Muted   *color.Color
	Danger  *color.Color
	Success *color.Color
}

// NewTheme builds a theme by name. Unknown names fall back to light. The
// mono theme disables all coloring, which also covers NO_COLOR terminals.
func NewTheme(name string) Theme {
	switch name {
	case ThemeDark:
		return Theme{
			Name:    ThemeDark,
			Title:   color.New(color.FgHiWhite, color.Bold),
			Accent:  color.New(color.FgHiCyan),
			Muted:   color.New(color.FgHiBlack),
			Danger:  color.New(color.FgHiRed),
			Success: color.New(color.FgHiGreen),
		}
	case ThemeMono:
		plain := color.New()
		plain.DisableColor()
		return Theme{Name: ThemeMono, Title: plain, Accent: plain, Muted: plain, Danger: plain, Success: plain}
	default:
		return Theme{
			Name:    ThemeLight,
			Title:   color.New(color.FgBlue, color.Bold),
			Accent:  color.New(color.FgCyan),
			Muted:   color.New(color.FgWhite, color.Faint),
			Danger:  color.New(color.FgRed),
			Success: color.New(color.FgGreen),
		}
	}
}

// Toggle flips between the light and dark themes; mono stays mono.
func (t Theme) Toggle() Theme {
	switch t.Name {
	case ThemeLight:
		return NewTheme(ThemeDark)
	case ThemeDark:
		return NewTheme(ThemeLight)
	}
	return t
}
