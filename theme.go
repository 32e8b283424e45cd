package shelldisplay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// SymbolMode selects the glyph compatibility level for decorative output
// (continuation markers, menu separators). It contributes to the cache
// fingerprint because it changes every composed string.
type SymbolMode int

const (
	// SymbolModeAuto picks Unicode or ASCII based on the terminal.
	SymbolModeAuto SymbolMode = iota
	// SymbolModeUnicode always uses Unicode glyphs.
	SymbolModeUnicode
	// SymbolModeASCII restricts output to 7-bit ASCII glyphs.
	SymbolModeASCII
)

// String returns the mode name as used in configuration files.
func (m SymbolMode) String() string {
	switch m {
	case SymbolModeUnicode:
		return "unicode"
	case SymbolModeASCII:
		return "ascii"
	default:
		return "auto"
	}
}

// Theme bundles the styles applied to optional display content. The command
// and prompt text arrive already styled from their producers; the theme only
// covers what this package draws itself: ghost text, the completion menu,
// and transient notifications.
type Theme struct {
	// Name identifies the theme in fingerprints and configuration.
	Name string

	// Foreground is the base text color ghost text is derived from.
	Foreground colorful.Color
	// Background is the blend target for dimmed content.
	Background colorful.Color

	// Ghost renders inline suggestions after the cursor.
	Ghost lipgloss.Style
	// Menu renders the completion menu block.
	Menu lipgloss.Style
	// Notification renders transient notification text.
	Notification lipgloss.Style
}

// NewTheme builds a theme from foreground/background colors. The ghost style
// blends the foreground halfway toward the background and renders faint, so
// suggestions read as non-interactive regardless of terminal palette.
func NewTheme(name string, foreground, background colorful.Color) Theme {
	ghostColor := foreground.BlendLab(background, 0.5).Clamped()

	return Theme{
		Name:       name,
		Foreground: foreground,
		Background: background,
		Ghost: lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color(ghostColor.Hex())),
		Menu: lipgloss.NewStyle().
			Foreground(lipgloss.Color(foreground.Hex())),
		Notification: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(ghostColor.Hex())),
	}
}

// ThemeDark is the default theme for dark terminal backgrounds.
func ThemeDark() Theme {
	fg, _ := colorful.Hex("#d4d4d4")
	bg, _ := colorful.Hex("#1e1e1e")
	return NewTheme("dark", fg, bg)
}

// ThemeLight is the default theme for light terminal backgrounds.
func ThemeLight() Theme {
	fg, _ := colorful.Hex("#333333")
	bg, _ := colorful.Hex("#fafafa")
	return NewTheme("light", fg, bg)
}

// themeByName resolves a configured theme name to a built-in theme.
// Unknown names fall back to the dark theme.
func themeByName(name string) Theme {
	switch name {
	case "light":
		return ThemeLight()
	default:
		t := ThemeDark()
		if name != "" {
			t.Name = name
		}
		return t
	}
}
