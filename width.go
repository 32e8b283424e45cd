package shelldisplay

import (
	"unicode/utf8"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/unilibs/uniwidth"
)

// tabWidth is the distance between tab stops, matching the terminal default.
const tabWidth = 8

// runeWidth returns the display width: 2 for wide characters (CJK, emoji), 1 for normal, 0 for zero-width (combining marks, control chars).
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// isWideRune returns true if the rune occupies 2 columns (CJK ideographs, fullwidth forms, emoji).
func isWideRune(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}

// StringWidth returns the total display width of a string (sum of rune widths).
// ANSI escape sequences are NOT skipped; use VisualWidth for styled text.
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}

// VisualWidth returns the number of terminal columns the string occupies.
// ANSI escape sequences contribute zero width, tabs advance to the next
// multiple of 8, and wide characters count as 2 columns.
func VisualWidth(s string) int {
	width := 0
	for i := 0; i < len(s); {
		if s[i] == 0x1b {
			i = skipANSI(s, i)
			continue
		}
		if s[i] == '\t' {
			width = (width/tabWidth + 1) * tabWidth
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		width += runeWidth(r)
		i += size
	}
	return width
}

// stripANSI removes all ANSI escape sequences, returning plain text.
func stripANSI(s string) string {
	return xansi.Strip(s)
}

// skipANSI returns the index just past the escape sequence starting at i.
// Recognizes CSI (ESC [ params final-byte), OSC (ESC ] ... BEL or ESC \),
// and two-byte escapes. s[i] must be ESC.
func skipANSI(s string, i int) int {
	i++ // past ESC
	if i >= len(s) {
		return i
	}

	switch s[i] {
	case '[':
		// CSI: parameter and intermediate bytes 0x20-0x3f, final byte 0x40-0x7e
		i++
		for i < len(s) {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
			i++
		}
		return i
	case ']':
		// OSC: terminated by BEL or ST (ESC \)
		i++
		for i < len(s) {
			if s[i] == 0x07 {
				return i + 1
			}
			if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
			i++
		}
		return i
	default:
		// Two-byte escape (ESC c, ESC 7, charset selection, etc.)
		return i + 1
	}
}
