package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogobitcoin/gogobitcoin/internal/candle"
)

// Theme is the visual mode of the dashboard.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// ParseTheme resolves a configured theme name. "system" asks detectDark,
// which reports whether the terminal background is dark.
func ParseTheme(name string, detectDark func() bool) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	case "", "system":
		if detectDark != nil && detectDark() {
			return ThemeDark, nil
		}
		return ThemeLight, nil
	default:
		return ThemeLight, fmt.Errorf("unknown theme %q (want light, dark or system)", name)
	}
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Palette returns the chart colors for the theme.
func (t Theme) Palette() candle.Palette {
	if t == ThemeDark {
		return candle.DarkPalette
	}
	return candle.LightPalette
}

// Styles holds every lipgloss style the pages render with.
type Styles struct {
	Title     lipgloss.Style
	Indicator lipgloss.Style
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	Muted     lipgloss.Style
	Price     lipgloss.Style
	Up        lipgloss.Style
	Down      lipgloss.Style
	Error     lipgloss.Style
	Footer    lipgloss.Style
}

// Shared colors.
var (
	ColorUp    = lipgloss.Color("#22c55e")
	ColorDown  = lipgloss.Color("#ef4444")
	ColorBrand = lipgloss.Color("#f7931a")
)

// NewStyles builds the style set for a theme.
func NewStyles(t Theme) Styles {
	fg := lipgloss.Color("#09090b")
	muted := lipgloss.Color("#71717a")
	border := lipgloss.Color("#e4e4e7")
	if t == ThemeDark {
		fg = lipgloss.Color("#fafafa")
		muted = lipgloss.Color("#a1a1aa")
		border = lipgloss.Color("#3f3f46")
	}

	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorBrand),
		Indicator: lipgloss.NewStyle().Foreground(muted),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().Bold(true).Foreground(fg),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Price:     lipgloss.NewStyle().Bold(true).Foreground(fg),
		Up:        lipgloss.NewStyle().Foreground(ColorUp),
		Down:      lipgloss.NewStyle().Foreground(ColorDown),
		Error:     lipgloss.NewStyle().Foreground(ColorDown),
		Footer:    lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
