package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains pre-built lipgloss styles for common UI patterns, derived
// from the active palette.
type Styles struct {
	Base    lipgloss.Style // Default text
	Muted   lipgloss.Style // Dimmed text
	Subtle  lipgloss.Style // Very dim text
	Title   lipgloss.Style // Bold, bright
	Playing lipgloss.Style // Currently playing entry
	Cursor  lipgloss.Style // Cursor background highlight
	Sidebar lipgloss.Style // Sidebar panel background
	Border  lipgloss.Style // Unfocused panel border
	Focus   lipgloss.Style // Focused panel border
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Help    lipgloss.Style
}

// lookup walks a palette by dotted path without touching store state.
func lookup(palette Palette, path string) (lipgloss.Color, bool) {
	var node any = palette
	for _, segment := range strings.Split(path, ".") {
		current, ok := node.(Palette)
		if !ok {
			return "", false
		}
		node, ok = current[segment]
		if !ok {
			return "", false
		}
	}
	color, ok := node.(lipgloss.Color)
	return color, ok
}

// buildStyles derives the style set for a named palette. Missing paths fall
// through to an unstyled default.
func buildStyles(name string) Styles {
	palette := palettes[name]

	fg := func(path string) lipgloss.Style {
		style := lipgloss.NewStyle()
		if color, ok := lookup(palette, path); ok {
			style = style.Foreground(color)
		}
		return style
	}

	base := fg("text.base")

	cursor := base
	if color, ok := lookup(palette, "background.cursor"); ok {
		cursor = cursor.Background(color)
	}

	sidebar := lipgloss.NewStyle()
	if color, ok := lookup(palette, "background.sidebar"); ok {
		sidebar = sidebar.Background(color)
	}

	return Styles{
		Base:    base,
		Muted:   fg("text.muted"),
		Subtle:  fg("text.subtle"),
		Title:   base.Bold(true),
		Playing: fg("primary.500").Bold(true),
		Cursor:  cursor,
		Sidebar: sidebar,
		Border:  fg("border.base"),
		Focus:   fg("border.focus"),
		Success: fg("status.success"),
		Error:   fg("status.error"),
		Warning: fg("status.warning"),
		Help:    fg("text.subtle").Italic(true),
	}
}
