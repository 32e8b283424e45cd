package shelldisplay

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Escape sequence helpers. Rows and columns are 0-based here; the emitted
// CSI parameters are 1-based.

func cursorUp(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%dA", n)
}

func cursorDown(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%dB", n)
}

// cursorColumn moves to an absolute column. Never emit "\r" instead: a
// carriage return followed by a clear would erase the prompt.
func cursorColumn(col int) string {
	return fmt.Sprintf("\x1b[%dG", col+1)
}

func cursorPosition(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row+1, col+1)
}

const clearToEnd = "\x1b[0J"

// HandleRedraw is the redraw event entry point: it reconciles what the
// terminal currently shows with the desired state using the fewest possible
// writes, without ever rewriting the prompt after its first appearance.
//
// The protocol, in order: reposition to the command start column (never
// column 0), erase the previous command footprint (with a two-step clear
// when ghost text or a menu previously extended below the cursor), re-draw
// the command with continuation prefixes at each explicit newline, append
// ghost text / menu / notification blocks, and finally move the cursor back
// to its place in the command.
//
// A failure to obtain content aborts with no partial terminal write.
func (c *Controller) HandleRedraw() error {
	if !c.initialized {
		return ErrNotInitialized
	}

	// The theme can change underneath via a config reload goroutine.
	c.mu.Lock()
	theme := c.theme
	c.mu.Unlock()

	prompt, command, err := c.produce("", "")
	if err != nil {
		return err
	}

	cursorOffset := len(stripANSI(command))
	if c.command != nil {
		cursorOffset = c.command.CursorByteOffset()
	}
	styledOffset := styledOffsetFor(command, cursorOffset)
	if styledOffset < 0 {
		return fmt.Errorf("%w: cursor offset %d outside command", ErrCompositionFailed, cursorOffset)
	}

	width := c.terminal.Width()
	desired := NewScreenModel(width)
	desired.Render(prompt, command, styledOffset, c.continuation)

	var buf bytes.Buffer

	if !c.promptRendered {
		buf.WriteString(prompt)
	} else {
		c.emitReposition(&buf, desired)
	}

	c.emitCommand(&buf, command, desired)

	ghostRows := c.emitGhostText(&buf, command, desired, theme)
	c.emitMenu(&buf, desired)
	c.emitNotification(&buf, desired, theme)

	// After a full redraw the terminal cursor sits on the last drawn row;
	// RowsBelowCursor plus any ghost wrap rows is exactly the distance back
	// up to the text cursor.
	buf.WriteString(cursorUp(desired.RowsBelowCursor() + ghostRows))
	buf.WriteString(cursorColumn(desired.CursorCol()))

	if _, err := c.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("shelldisplay: terminal write: %w", err)
	}

	// Commit desired as the new current snapshot.
	c.current.Restore(desired.Snapshot())
	c.promptRendered = true
	c.lastTerminalEndRow = desired.NumRows() - 1 + ghostRows

	c.logger.Debug("redraw",
		"rows", desired.NumRows(),
		"cursor_row", desired.CursorRow(),
		"cursor_col", desired.CursorCol(),
		"ghost_rows", ghostRows)

	return nil
}

// emitReposition moves from the last-rendered cursor position to the command
// start and erases the previous command footprint.
func (c *Controller) emitReposition(buf *bytes.Buffer, desired *ScreenModel) {
	// Absolute column first, so clears can never touch the prompt text
	// sitting left of the command start on the same row.
	buf.WriteString(cursorColumn(desired.CommandStartCol()))

	if c.lastTerminalEndRow > c.current.CursorRow() {
		// Ghost text or a menu extended below the cursor last time. Walk down
		// to the old bottom and clear there first, so stale rows are erased
		// even though the new content may be shorter.
		buf.WriteString(cursorDown(c.lastTerminalEndRow - c.current.CursorRow()))
		buf.WriteString(clearToEnd)
		buf.WriteString(cursorUp(c.lastTerminalEndRow - c.current.CommandStartRow()))
	} else {
		buf.WriteString(cursorUp(c.current.CursorRow() - c.current.CommandStartRow()))
	}

	buf.WriteString(clearToEnd)
}

// emitCommand re-draws the command text, re-walking it with the same
// width/wrap accounting as ScreenModel.Render so continuation prefixes land
// exactly at each row an explicit newline produces.
func (c *Controller) emitCommand(buf *bytes.Buffer, command string, desired *ScreenModel) {
	row := desired.CommandStartRow()
	col := desired.CommandStartCol()
	width := desired.TerminalWidth()

	for i := 0; i < len(command); {
		if command[i] == 0x1b {
			next := skipANSI(command, i)
			buf.WriteString(command[i:next])
			i = next
			continue
		}

		if command[i] == '\n' {
			row++
			prefix := desired.RowPrefix(row)
			buf.WriteByte('\n')
			buf.WriteString(prefix)
			col = VisualWidth(prefix)
			i++
			continue
		}

		if command[i] == '\t' {
			buf.WriteByte('\t')
			col = (col/tabWidth + 1) * tabWidth
			if col >= width {
				row++
				col = 0
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(command[i:])
		w := runeWidth(r)
		if isWideRune(r) && col+w > width {
			// The terminal wraps this wide character itself; track the row.
			row++
			col = 0
		}
		buf.WriteString(command[i : i+size])
		col += w
		i += size
		if col >= width {
			row++
			col = 0
		}
	}
}

// emitGhostText appends the inline suggestion in the theme's ghost style.
// Ghost text is shown only when suggestions are enabled, no completion menu
// is visible, and the input is single-line. Returns the number of extra
// terminal rows the ghost text wraps onto.
func (c *Controller) emitGhostText(buf *bytes.Buffer, command string, desired *ScreenModel, theme Theme) int {
	if !c.suggestionsEnabled || c.menuVisible {
		return 0
	}
	if strings.Contains(stripANSI(command), "\n") {
		return 0
	}

	suggestion, ok := c.suggestion.CurrentSuggestion()
	if !ok || suggestion == "" {
		return 0
	}

	buf.WriteString(theme.Ghost.Render(suggestion))

	endCol := desired.CommandEndCol() + VisualWidth(suggestion)
	return endCol / desired.TerminalWidth()
}

// emitMenu appends the completion menu block, preceded by a newline, and
// counts its rows in the desired model so cursor repositioning accounts
// for them.
func (c *Controller) emitMenu(buf *bytes.Buffer, desired *ScreenModel) {
	if !c.menuVisible {
		return
	}
	text := c.menu.RenderMenu(desired.TerminalWidth())
	if text == "" {
		return
	}

	buf.WriteByte('\n')
	buf.WriteString(text)
	desired.AddTextRows(desired.NumRows(), text)
}

// emitNotification appends the transient notification block below
// everything else.
func (c *Controller) emitNotification(buf *bytes.Buffer, desired *ScreenModel, theme Theme) {
	if !c.notificationVisible {
		return
	}
	text, ok := c.notification.NotificationText()
	if !ok || text == "" {
		return
	}

	styled := theme.Notification.Render(text)
	buf.WriteByte('\n')
	buf.WriteString(styled)
	desired.AddTextRows(desired.NumRows(), stripANSI(styled))
}
