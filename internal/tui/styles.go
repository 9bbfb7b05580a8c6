package tui

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// ExpandedSidebarWidth and CollapsedSidebarWidth size the row list.
const (
	ExpandedSidebarWidth  = 36
	CollapsedSidebarWidth = 5
)

// Row indicators
const (
	indicatorExpanded  = "▾"
	indicatorCollapsed = "▸"
	indicatorLeaf      = "•"
)

// theme is the palette every style function reads from.
var theme = newPalette(catppuccin.Mocha)

type palette struct {
	base     lipgloss.Color
	surface0 lipgloss.Color
	surface1 lipgloss.Color
	text     lipgloss.Color
	subtext0 lipgloss.Color
	overlay0 lipgloss.Color
	blue     lipgloss.Color
	green    lipgloss.Color
	red      lipgloss.Color
	yellow   lipgloss.Color
	mauve    lipgloss.Color
	peach    lipgloss.Color
}

func newPalette(flavor catppuccin.Flavor) palette {
	return palette{
		base:     lipgloss.Color(flavor.Base().Hex),
		surface0: lipgloss.Color(flavor.Surface0().Hex),
		surface1: lipgloss.Color(flavor.Surface1().Hex),
		text:     lipgloss.Color(flavor.Text().Hex),
		subtext0: lipgloss.Color(flavor.Subtext0().Hex),
		overlay0: lipgloss.Color(flavor.Overlay0().Hex),
		blue:     lipgloss.Color(flavor.Blue().Hex),
		green:    lipgloss.Color(flavor.Green().Hex),
		red:      lipgloss.Color(flavor.Red().Hex),
		yellow:   lipgloss.Color(flavor.Yellow().Hex),
		mauve:    lipgloss.Color(flavor.Mauve().Hex),
		peach:    lipgloss.Color(flavor.Peach().Hex),
	}
}

// FlavorByName maps a theme name to a catppuccin flavor. Unknown names
// fall back to mocha.
func FlavorByName(name string) catppuccin.Flavor {
	switch strings.ToLower(name) {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	default:
		return catppuccin.Mocha
	}
}

// SetTheme switches the palette used by all styles.
func SetTheme(name string) {
	theme = newPalette(FlavorByName(name))
}

// Header styles

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.mauve)
}

func StatusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.subtext0)
}

func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.red).Bold(true)
}

func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.overlay0)
}

func HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.overlay0)
}

// SearchStyle frames the search box; focused boxes use the accent color.
func SearchStyle(focused bool) lipgloss.Style {
	border := theme.surface1
	if focused {
		border = theme.blue
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

// Row styles

func NormalRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.text)
}

func SelectedRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.blue).
		Background(theme.surface0).
		Bold(true)
}

// ActiveRowStyle marks the row of the current route.
func ActiveRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.green).Bold(true)
}

func InertRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.overlay0)
}

// MatchStyle highlights the part of a name that matched the query.
func MatchStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.yellow).Underline(true)
}

func IndicatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.peach)
}

// SkeletonStyle draws placeholder rows while the menu loads.
func SkeletonStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.surface1)
}

// Detail panel styles

func DetailHeaderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.base).
		Background(theme.mauve).
		Width(width).
		Padding(0, 1)
}

func DetailLabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.subtext0).Width(12)
}

func DetailPanelStyle(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(theme.surface1).
		PaddingLeft(1)
}
