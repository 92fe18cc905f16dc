package theme

import "github.com/charmbracelet/lipgloss"

// Theme names. These are the only values ChangeTheme accepts.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeOcean = "ocean"

	DefaultTheme = ThemeDark
)

func c(hex string) lipgloss.Color { return lipgloss.Color(hex) }

// palettes holds the fixed palette set. Each palette nests semantic groups;
// numeric shades follow the usual 100 (lightest) to 900 (darkest) scale.
var palettes = map[string]Palette{
	ThemeLight: {
		"primary": Palette{
			"300": c("#b39ddb"),
			"500": c("#7d56f4"),
			"700": c("#5e35b1"),
		},
		"accent": c("#04b575"),
		"text": Palette{
			"base":   c("#1a1a2e"),
			"muted":  c("#5a5a72"),
			"subtle": c("#9090a0"),
		},
		"background": Palette{
			"base":    c("#fafafa"),
			"sidebar": c("#f0eef8"),
			"cursor":  c("#e0d8f8"),
		},
		"border": Palette{
			"base":  c("#d0d0da"),
			"focus": c("#7d56f4"),
		},
		"status": Palette{
			"success": c("#04b575"),
			"error":   c("#d32f2f"),
			"warning": c("#f57f17"),
		},
	},
	ThemeDark: {
		"primary": Palette{
			"300": c("#c4b5fd"),
			"500": c("#a78bfa"),
			"700": c("#7c5ce0"),
		},
		"accent": c("#f1a208"),
		"text": Palette{
			"base":   c("#c0c0c0"),
			"muted":  c("#808080"),
			"subtle": c("#585858"),
		},
		"background": Palette{
			"base":    c("#1a1a1a"),
			"sidebar": c("#202028"),
			"cursor":  c("#303030"),
		},
		"border": Palette{
			"base":  c("#585858"),
			"focus": c("#a78bfa"),
		},
		"status": Palette{
			"success": c("#42b883"),
			"error":   c("#ff5555"),
			"warning": c("#f1a208"),
		},
	},
	ThemeOcean: {
		"primary": Palette{
			"300": c("#7dd3fc"),
			"500": c("#38bdf8"),
			"700": c("#0284c7"),
		},
		"accent": c("#34d399"),
		"text": Palette{
			"base":   c("#cbd5e1"),
			"muted":  c("#7a93ab"),
			"subtle": c("#4a6278"),
		},
		"background": Palette{
			"base":    c("#0b1622"),
			"sidebar": c("#0f1e2e"),
			"cursor":  c("#1c3248"),
		},
		"border": Palette{
			"base":  c("#2a4258"),
			"focus": c("#38bdf8"),
		},
		"status": Palette{
			"success": c("#34d399"),
			"error":   c("#f87171"),
			"warning": c("#fbbf24"),
		},
	},
}
