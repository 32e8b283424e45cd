package shelldisplay

import (
	"strings"
	"testing"
)

func TestRenderSimple(t *testing.T) {
	m := NewScreenModel(80)
	m.Render("$ ", "ls", 2, nil)

	if m.NumRows() != 1 {
		t.Errorf("NumRows = %d, want 1", m.NumRows())
	}
	if m.CommandStartRow() != 0 || m.CommandStartCol() != 2 {
		t.Errorf("command start = (%d, %d), want (0, 2)", m.CommandStartRow(), m.CommandStartCol())
	}
	if m.CursorRow() != 0 || m.CursorCol() != 4 {
		t.Errorf("cursor = (%d, %d), want (0, 4)", m.CursorRow(), m.CursorCol())
	}
	if m.CommandEndCol() != 4 {
		t.Errorf("CommandEndCol = %d, want 4", m.CommandEndCol())
	}
}

func TestRenderCursorMidText(t *testing.T) {
	m := NewScreenModel(80)
	m.Render("$ ", "hello", 2, nil)

	if m.CursorRow() != 0 || m.CursorCol() != 4 {
		t.Errorf("cursor = (%d, %d), want (0, 4)", m.CursorRow(), m.CursorCol())
	}
	if m.CommandEndCol() != 7 {
		t.Errorf("CommandEndCol = %d, want 7", m.CommandEndCol())
	}
}

func TestRenderWrapAtExactWidth(t *testing.T) {
	// A command of exactly terminalWidth printable characters wraps the
	// cursor onto the next row.
	m := NewScreenModel(10)
	cmd := strings.Repeat("a", 10)
	m.Render("", cmd, len(cmd), nil)

	if m.CursorRow() != 1 || m.CursorCol() != 0 {
		t.Errorf("cursor = (%d, %d), want (1, 0)", m.CursorRow(), m.CursorCol())
	}
	if m.NumRows() != 2 {
		t.Errorf("NumRows = %d, want 2", m.NumRows())
	}
}

func TestRenderWideCharWrap(t *testing.T) {
	// A wide character that does not fit in the last column wraps before
	// being drawn.
	m := NewScreenModel(4)
	m.Render("", "abc中", 0, nil)

	if m.NumRows() != 2 {
		t.Errorf("NumRows = %d, want 2", m.NumRows())
	}
	if m.CommandEndCol() != 2 {
		t.Errorf("CommandEndCol = %d, want 2", m.CommandEndCol())
	}
}

func TestRenderANSIPassthrough(t *testing.T) {
	m := NewScreenModel(80)
	plain := NewScreenModel(80)

	m.Render("$ ", "\x1b[32mls\x1b[0m", 7, nil)
	plain.Render("$ ", "ls", 2, nil)

	if m.CursorCol() != plain.CursorCol() || m.NumRows() != plain.NumRows() {
		t.Errorf("styled render (%d rows, col %d) differs from plain (%d rows, col %d)",
			m.NumRows(), m.CursorCol(), plain.NumRows(), plain.CursorCol())
	}
}

func TestRenderMultiLineContinuation(t *testing.T) {
	var lines []string
	cont := ContinuationFunc(func(completed string) string {
		lines = append(lines, completed)
		return "> "
	})

	m := NewScreenModel(80)
	m.Render("$ ", "echo '\nworld'", 13, cont)

	if m.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", m.NumRows())
	}
	if m.RowPrefix(1) != "> " {
		t.Errorf("RowPrefix(1) = %q, want %q", m.RowPrefix(1), "> ")
	}
	if len(lines) != 1 || lines[0] != "echo '" {
		t.Errorf("continuation callback got %v, want [\"echo '\"]", lines)
	}
	// Cursor on row 1: continuation prefix (2) plus "world'" (6).
	if m.CursorRow() != 1 || m.CursorCol() != 8 {
		t.Errorf("cursor = (%d, %d), want (1, 8)", m.CursorRow(), m.CursorCol())
	}
}

func TestRenderContinuationReceivesPlainText(t *testing.T) {
	var got string
	cont := ContinuationFunc(func(completed string) string {
		got = completed
		return "… "
	})

	m := NewScreenModel(80)
	m.Render("$ ", "\x1b[33mecho '\x1b[0m\nx", 0, cont)

	if got != "echo '" {
		t.Errorf("continuation received %q, want ANSI-stripped %q", got, "echo '")
	}
	if m.RowPrefix(1) != "… " {
		t.Errorf("RowPrefix(1) = %q, want %q", m.RowPrefix(1), "… ")
	}
}

func TestRowAccountingInvariant(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		command string
		offset  int
		width   int
	}{
		{"empty", "$ ", "", 0, 80},
		{"single line", "$ ", "ls -la", 6, 80},
		{"wrapped", "$ ", strings.Repeat("x", 200), 200, 80},
		{"multi line", "$ ", "a\nb\nc", 5, 80},
		{"narrow", ">>> ", "print(1)", 4, 10},
	}

	for _, tt := range tests {
		m := NewScreenModel(tt.width)
		m.Render(tt.prompt, tt.command, tt.offset, NoopContinuation{})

		if m.NumRows() <= 0 {
			t.Errorf("%s: NumRows = %d, want > 0", tt.name, m.NumRows())
			continue
		}
		if m.CursorRow() < 0 || m.CursorRow() >= m.NumRows() {
			t.Errorf("%s: cursorRow %d outside [0, %d)", tt.name, m.CursorRow(), m.NumRows())
		}
		if m.CommandStartRow() > m.CursorRow() {
			t.Errorf("%s: commandStartRow %d > cursorRow %d", tt.name, m.CommandStartRow(), m.CursorRow())
		}
		if m.RowsBelowCursor() < 0 {
			t.Errorf("%s: RowsBelowCursor = %d, want >= 0", tt.name, m.RowsBelowCursor())
		}
	}
}

func TestAddTextRows(t *testing.T) {
	m := NewScreenModel(80)
	m.Render("$ ", "git ", 4, nil)

	beforeRow, beforeCol := m.CursorRow(), m.CursorCol()
	beforeBelow := m.RowsBelowCursor()

	added := m.AddTextRows(m.NumRows(), "add     commit  push\nstatus  log     diff")
	if added != 2 {
		t.Errorf("AddTextRows = %d, want 2", added)
	}
	if m.RowsBelowCursor() != beforeBelow+2 {
		t.Errorf("RowsBelowCursor = %d, want %d", m.RowsBelowCursor(), beforeBelow+2)
	}
	if m.CursorRow() != beforeRow || m.CursorCol() != beforeCol {
		t.Errorf("cursor moved to (%d, %d), want (%d, %d)", m.CursorRow(), m.CursorCol(), beforeRow, beforeCol)
	}
}

func TestAddTextRowsWrapAware(t *testing.T) {
	m := NewScreenModel(10)
	m.Render("", "x", 1, nil)

	// 12 columns on a 10-column terminal occupies 2 rows.
	added := m.AddTextRows(m.NumRows(), strings.Repeat("m", 12))
	if added != 2 {
		t.Errorf("AddTextRows = %d, want 2", added)
	}
}

func TestAddTextRowsEmpty(t *testing.T) {
	m := NewScreenModel(80)
	m.Render("$ ", "ls", 2, nil)

	if added := m.AddTextRows(m.NumRows(), ""); added != 0 {
		t.Errorf("AddTextRows(\"\") = %d, want 0", added)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	m := NewScreenModel(80)
	m.Render("$ ", "ls", 2, nil)

	snap := m.Snapshot()
	m.AddTextRows(m.NumRows(), "menu")

	if snap.NumRows() == m.NumRows() {
		t.Errorf("snapshot rows changed with the source model")
	}

	var other ScreenModel
	other.Restore(snap)
	if other.NumRows() != snap.NumRows() || other.CursorCol() != snap.CursorCol() {
		t.Errorf("Restore: got %d rows cursor col %d, want %d rows cursor col %d",
			other.NumRows(), other.CursorCol(), snap.NumRows(), snap.CursorCol())
	}
}

func TestAccessorsOnValueCopy(t *testing.T) {
	m := NewScreenModel(80)
	m.Render("$ ", "ls", 2, nil)

	// Accessors must be callable on a plain value, such as a freshly
	// returned snapshot, without taking its address.
	if got := m.Snapshot().CursorCol(); got != 4 {
		t.Errorf("Snapshot().CursorCol() = %d, want 4", got)
	}
	if got := m.Snapshot().RowsBelowCursor(); got != 0 {
		t.Errorf("Snapshot().RowsBelowCursor() = %d, want 0", got)
	}
}

func TestResetClearsState(t *testing.T) {
	m := NewScreenModel(80)
	m.Render("$ ", "ls", 2, nil)
	m.Reset()

	if m.NumRows() != 0 || m.CursorRow() != 0 || m.CursorCol() != 0 {
		t.Errorf("Reset left rows=%d cursor=(%d,%d)", m.NumRows(), m.CursorRow(), m.CursorCol())
	}
}

func TestRenderTabAdvance(t *testing.T) {
	m := NewScreenModel(80)
	m.Render("", "a\tb", 3, nil)

	// 'a' at col 0, tab to col 8, 'b' to col 9.
	if m.CommandEndCol() != 9 {
		t.Errorf("CommandEndCol = %d, want 9", m.CommandEndCol())
	}
}

func TestRenderMultiLinePrompt(t *testing.T) {
	m := NewScreenModel(80)
	m.Render("header\n$ ", "ls", 0, nil)

	if m.CommandStartRow() != 1 || m.CommandStartCol() != 2 {
		t.Errorf("command start = (%d, %d), want (1, 2)", m.CommandStartRow(), m.CommandStartCol())
	}
	if m.CursorRow() != 1 || m.CursorCol() != 2 {
		t.Errorf("cursor = (%d, %d), want (1, 2)", m.CursorRow(), m.CursorCol())
	}
}
