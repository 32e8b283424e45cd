package shelldisplay

import (
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r        rune
		expected int
	}{
		{'A', 1},
		{'a', 1},
		{'1', 1},
		{' ', 1},
		{'中', 2},
		{'日', 2},
		{'한', 2},
		{'글', 2},
		{'Ａ', 2}, // Fullwidth A
		{0, 0},
	}

	for _, tt := range tests {
		got := runeWidth(tt.r)
		if got != tt.expected {
			t.Errorf("runeWidth(%q) = %d, want %d", tt.r, got, tt.expected)
		}
	}
}

func TestIsWideRune(t *testing.T) {
	tests := []struct {
		r        rune
		expected bool
	}{
		{'A', false},
		{' ', false},
		{'中', true},
		{'한', true},
		{'Ａ', true},
		{'0', false},
	}

	for _, tt := range tests {
		got := isWideRune(tt.r)
		if got != tt.expected {
			t.Errorf("isWideRune(%q) = %v, want %v", tt.r, got, tt.expected)
		}
	}
}

func TestVisualWidth(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		expected int
	}{
		{"plain", "Hello", 5},
		{"empty", "", 0},
		{"wide", "中文", 4},
		{"mixed", "Hello中文", 9},
		{"color escape", "\x1b[31mred\x1b[0m", 3},
		{"osc hyperlink", "\x1b]8;;http://x\x07link\x1b]8;;\x07", 4},
		{"tab from zero", "\tx", 9},
		{"tab mid column", "ab\tx", 9},
		{"only escapes", "\x1b[1m\x1b[0m", 0},
	}

	for _, tt := range tests {
		got := VisualWidth(tt.s)
		if got != tt.expected {
			t.Errorf("%s: VisualWidth(%q) = %d, want %d", tt.name, tt.s, got, tt.expected)
		}
	}
}

func TestSkipANSI(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		start    int
		expected int
	}{
		{"sgr", "\x1b[31mX", 0, 5},
		{"reset", "\x1b[0mX", 0, 4},
		{"cursor up", "\x1b[2AX", 0, 4},
		{"osc bel", "\x1b]0;title\x07X", 0, 10},
		{"osc st", "\x1b]0;t\x1b\\X", 0, 7},
		{"two byte", "\x1b7X", 0, 2},
		{"unterminated csi", "\x1b[31", 0, 4},
		{"trailing esc", "\x1b", 0, 1},
	}

	for _, tt := range tests {
		got := skipANSI(tt.s, tt.start)
		if got != tt.expected {
			t.Errorf("%s: skipANSI(%q, %d) = %d, want %d", tt.name, tt.s, tt.start, got, tt.expected)
		}
	}
}

func TestVisualWidthMatchesANSIStringWidth(t *testing.T) {
	// For tab-free input VisualWidth must agree with x/ansi's own width
	// accounting.
	inputs := []string{
		"",
		"hello",
		"中文 mixed ascii",
		"\x1b[31mred\x1b[0m",
		"\x1b[1;32mgreen bold\x1b[0m 中",
	}

	for _, s := range inputs {
		if got, want := VisualWidth(s), xansi.StringWidth(s); got != want {
			t.Errorf("VisualWidth(%q) = %d, ansi.StringWidth = %d", s, got, want)
		}
	}
}

func TestStripANSI(t *testing.T) {
	got := stripANSI("\x1b[31mecho\x1b[0m hi")
	if got != "echo hi" {
		t.Errorf("stripANSI = %q, want %q", got, "echo hi")
	}
}
