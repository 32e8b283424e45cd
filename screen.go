package shelldisplay

import "unicode/utf8"

// ScreenRow stores per-row metadata for one rendered terminal row.
// Prefix holds visible leading text (continuation prompt marker);
// it is empty for prompt rows and appended menu/notification rows.
type ScreenRow struct {
	Prefix string
}

// ScreenModel is a virtual screen: it tracks what one render pass puts on
// the terminal, row by row, without holding any cell content. Two instances
// live inside a Controller ("current" and "desired"); after each redraw the
// desired model is committed as the new current one by value copy.
type ScreenModel struct {
	rows []ScreenRow

	cursorRow int
	cursorCol int

	commandStartRow int
	commandStartCol int
	commandEndCol   int

	terminalWidth int
}

// NewScreenModel creates an empty screen model for the given terminal width.
// Width values <= 0 are replaced with the default of 80 columns.
func NewScreenModel(width int) *ScreenModel {
	if width <= 0 {
		width = 80
	}
	return &ScreenModel{terminalWidth: width}
}

// Reset clears all rows and positions. Called at the start of each input session.
func (m *ScreenModel) Reset() {
	m.rows = nil
	m.cursorRow = 0
	m.cursorCol = 0
	m.commandStartRow = 0
	m.commandStartCol = 0
	m.commandEndCol = 0
}

// NumRows returns the number of rendered rows.
func (m ScreenModel) NumRows() int {
	return len(m.rows)
}

// CursorRow returns the row holding the text cursor (0-based).
func (m ScreenModel) CursorRow() int {
	return m.cursorRow
}

// CursorCol returns the visual column of the text cursor (0-based).
func (m ScreenModel) CursorCol() int {
	return m.cursorCol
}

// CommandStartRow returns the row where the command area begins.
func (m ScreenModel) CommandStartRow() int {
	return m.commandStartRow
}

// CommandStartCol returns the visual column where the command area begins
// (the column right after the prompt on its last row).
func (m ScreenModel) CommandStartCol() int {
	return m.commandStartCol
}

// CommandEndCol returns the visual column right after the last command character.
func (m ScreenModel) CommandEndCol() int {
	return m.commandEndCol
}

// TerminalWidth returns the width this model wraps at.
func (m ScreenModel) TerminalWidth() int {
	return m.terminalWidth
}

// RowPrefix returns the visible prefix text of the given row.
// Returns empty string if the row is out of bounds.
func (m ScreenModel) RowPrefix(row int) string {
	if row < 0 || row >= len(m.rows) {
		return ""
	}
	return m.rows[row].Prefix
}

// RowsBelowCursor returns how many rows lie below the cursor row. After a
// full redraw this is exactly the number of rows the terminal cursor must
// move up through to land back on the text cursor.
func (m ScreenModel) RowsBelowCursor() int {
	if len(m.rows) == 0 {
		return 0
	}
	return len(m.rows) - 1 - m.cursorRow
}

// Snapshot returns a value copy with its own rows slice, so the copy can be
// committed as the new current model without aliasing.
func (m ScreenModel) Snapshot() ScreenModel {
	cp := m
	cp.rows = make([]ScreenRow, len(m.rows))
	copy(cp.rows, m.rows)
	return cp
}

// Restore overwrites this model with a previously taken snapshot.
func (m *ScreenModel) Restore(s ScreenModel) {
	*m = s
	m.rows = make([]ScreenRow, len(s.rows))
	copy(m.rows, s.rows)
}

// Render computes the virtual screen for the given prompt and command text.
// The walk tracks a running visual column: ANSI escape sequences pass through
// without advancing it, each rune advances by its display width, a column
// reaching the terminal width wraps to a new row, and an explicit newline in
// the command starts a new row whose prefix is obtained from cont (which
// receives the ANSI-stripped text of the line just completed). The byte
// offset in command equal to cursorOffset is recorded as the cursor position
// at the moment it is reached.
func (m *ScreenModel) Render(prompt, command string, cursorOffset int, cont ContinuationProvider) {
	m.Reset()
	m.rows = append(m.rows, ScreenRow{})

	row, col := 0, 0

	// Prompt walk: establishes where the command area begins.
	row, col = m.walk(prompt, row, col, nil, -1, nil)

	m.commandStartRow = row
	m.commandStartCol = col
	m.cursorRow = row
	m.cursorCol = col

	cursorSet := cursorOffset == 0
	row, col = m.walk(command, row, col, cont, cursorOffset, &cursorSet)

	if !cursorSet {
		m.cursorRow = row
		m.cursorCol = col
	}
	m.commandEndCol = col
}

// walk advances row/col through text, appending rows on wrap and newline.
// When cursorOffset falls inside text the position is recorded and cursorSet
// flipped. cont may be nil (prompt walk: continuation rows get no prefix).
func (m *ScreenModel) walk(text string, row, col int, cont ContinuationProvider, cursorOffset int, cursorSet *bool) (int, int) {
	lineStart := 0

	for i := 0; i < len(text); {
		if cursorSet != nil && !*cursorSet && i >= cursorOffset {
			m.cursorRow = row
			m.cursorCol = col
			*cursorSet = true
		}

		if text[i] == 0x1b {
			i = skipANSI(text, i)
			continue
		}

		if text[i] == '\n' {
			prefix := ""
			if cont != nil {
				prefix = cont.ContinuationPrefix(stripANSI(text[lineStart:i]))
			}
			m.rows = append(m.rows, ScreenRow{Prefix: prefix})
			row++
			col = VisualWidth(prefix)
			i++
			lineStart = i
			continue
		}

		if text[i] == '\t' {
			col = (col/tabWidth + 1) * tabWidth
			if col >= m.terminalWidth {
				m.rows = append(m.rows, ScreenRow{})
				row++
				col = 0
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		w := runeWidth(r)

		// A wide character that does not fit wraps before being drawn.
		if isWideRune(r) && col+w > m.terminalWidth {
			m.rows = append(m.rows, ScreenRow{})
			row++
			col = 0
		}

		col += w
		i += size

		// Filling the last column places the cursor on the next row.
		if col >= m.terminalWidth {
			m.rows = append(m.rows, ScreenRow{})
			row++
			col = 0
		}
	}

	if cursorSet != nil && !*cursorSet && cursorOffset >= len(text) {
		m.cursorRow = row
		m.cursorCol = col
		*cursorSet = true
	}

	return row, col
}

// AddTextRows appends rows for a text block (completion menu, notification)
// below the command area starting at startRow. The cursor position is left
// untouched, so RowsBelowCursor grows by exactly the returned count. Lines
// wider than the terminal count as multiple rows.
func (m *ScreenModel) AddTextRows(startRow int, text string) int {
	if text == "" {
		return 0
	}
	if startRow < 0 || startRow > len(m.rows) {
		return 0
	}

	added := 0
	lineStart := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '\n' {
			continue
		}
		line := text[lineStart:i]
		lineStart = i + 1

		rows := 1
		if w := VisualWidth(line); w > m.terminalWidth {
			rows += (w - 1) / m.terminalWidth
		}
		for range rows {
			m.rows = append(m.rows, ScreenRow{})
		}
		added += rows
	}

	return added
}
