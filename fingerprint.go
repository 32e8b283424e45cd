package shelldisplay

import (
	"fmt"
	"strings"
)

// FNV-1a parameters, also used as the rolling hash for canonical strings.
const (
	fnvOffset uint64 = 14695981039346656037
	fnvPrime  uint64 = 1099511628211
)

// Canonical alphabet markers used by semantic normalization.
const (
	markerANSI      = '\x01'
	markerEnd       = '\x02' // $ # >
	markerBegin     = '\x03' // [ ( {
	markerClose     = '\x04' // ] ) }
	markerPath      = '\x05' // / ~
	markerSeparator = '\x06' // @
)

var weekdayTokens = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"mon", "tue", "wed", "thu", "fri", "sat", "sun",
}

var monthTokens = []string{
	"january", "february", "march", "april", "august", "september",
	"october", "november", "december",
	"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec",
	"june", "july",
}

// ComputeFingerprint derives the cache key for a display state. It mixes a
// semantic hash (prompt and command normalized so volatile details such as
// clock tokens and exact argument text collapse) with an exact hash of the
// raw strings, the theme name, and the symbol mode. Visually similar but
// distinct states therefore never collide, while repeated identical states
// always hit.
func ComputeFingerprint(prompt, command, theme string, mode SymbolMode) string {
	semantic := semanticHash(prompt, command)

	exact := fnvOffset
	exact = hashString(exact, prompt)
	exact = hashString(exact, command)
	exact = hashString(exact, theme)
	exact = (exact ^ semantic) * fnvPrime
	exact = (exact ^ uint64(mode)) * fnvPrime

	return fmt.Sprintf("%016x:%016x", semantic, exact)
}

// semanticHash hashes the canonical forms of the prompt and command.
func semanticHash(prompt, command string) uint64 {
	h := fnvOffset
	h = hashString(h, normalizePrompt(prompt))
	h = hashString(h, normalizeCommand(command))
	return h
}

// hashString folds s into the running FNV-1a hash h.
func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h = (h ^ uint64(s[i])) * fnvPrime
	}
	return h
}

// normalizePrompt maps a prompt into the canonical alphabet: ANSI sequences
// collapse to a single marker, recognized timestamp/weekday/month tokens are
// skipped so clock-bearing prompts group together, structural characters map
// to fixed markers, and letters are lowercased.
func normalizePrompt(prompt string) string {
	var b strings.Builder
	b.Grow(len(prompt))

	for i := 0; i < len(prompt); {
		c := prompt[i]

		if c == 0x1b {
			b.WriteByte(markerANSI)
			i = skipANSI(prompt, i)
			continue
		}

		if n := timestampLen(prompt[i:]); n > 0 {
			i += n
			continue
		}
		if n := wordTokenLen(prompt[i:]); n > 0 {
			i += n
			continue
		}

		switch {
		case c == '$' || c == '#' || c == '>':
			b.WriteByte(markerEnd)
		case c == '[' || c == '(' || c == '{':
			b.WriteByte(markerBegin)
		case c == ']' || c == ')' || c == '}':
			b.WriteByte(markerClose)
		case c == '/' || c == '~':
			b.WriteByte(markerPath)
		case c == '@':
			b.WriteByte(markerSeparator)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		default:
			b.WriteByte(c)
		}
		i++
	}

	return b.String()
}

// normalizeCommand reduces a command line to its lowercased base command name
// plus two classification bits: whether any flag arguments and whether any
// positional arguments follow. Exact argument text is left to the exact hash.
func normalizeCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(fields[0]))

	hasFlags := false
	hasPositional := false
	for _, arg := range fields[1:] {
		if strings.HasPrefix(arg, "-") {
			hasFlags = true
		} else {
			hasPositional = true
		}
	}

	if hasFlags {
		b.WriteString("|f")
	}
	if hasPositional {
		b.WriteString("|p")
	}

	return b.String()
}

// timestampLen returns the length of a leading clock token (HH:MM, HH:MM:SS,
// optionally followed by am/pm), or 0 if s does not start with one.
func timestampLen(s string) int {
	n := 0

	digits := func() int {
		d := 0
		for n+d < len(s) && s[n+d] >= '0' && s[n+d] <= '9' {
			d++
		}
		return d
	}

	d := digits()
	if d < 1 || d > 2 {
		return 0
	}
	n += d

	if n >= len(s) || s[n] != ':' {
		return 0
	}
	n++

	if d = digits(); d != 2 {
		return 0
	}
	n += d

	// Optional seconds component.
	if n < len(s) && s[n] == ':' {
		mark := n
		n++
		if d = digits(); d == 2 {
			n += d
		} else {
			n = mark
		}
	}

	// Optional am/pm suffix.
	rest := s[n:]
	for _, suffix := range []string{"am", "pm", "AM", "PM"} {
		if strings.HasPrefix(rest, suffix) {
			return n + len(suffix)
		}
	}

	return n
}

// wordTokenLen returns the length of a leading weekday or month name token,
// or 0. Matches are case-insensitive and must end at a word boundary.
func wordTokenLen(s string) int {
	wordEnd := 0
	for wordEnd < len(s) && isLetter(s[wordEnd]) {
		wordEnd++
	}
	if wordEnd == 0 {
		return 0
	}

	word := strings.ToLower(s[:wordEnd])
	for _, tok := range weekdayTokens {
		if word == tok {
			return wordEnd
		}
	}
	for _, tok := range monthTokens {
		if word == tok {
			return wordEnd
		}
	}
	return 0
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
