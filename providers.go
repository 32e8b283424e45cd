package shelldisplay

// PromptProvider produces the rendered prompt text (possibly ANSI-styled,
// possibly multi-line). Typically backed by the shell's prompt templating.
type PromptProvider interface {
	// RenderedPrompt returns the current prompt string.
	RenderedPrompt() (string, error)
}

// StaticPrompt always returns a fixed prompt string.
type StaticPrompt string

func (p StaticPrompt) RenderedPrompt() (string, error) { return string(p), nil }

// --- Command Provider ---

// CommandProvider exposes the current command line being edited.
// The text may carry ANSI styling from a syntax highlighter; the cursor
// offset is a byte offset into that text's plain bytes.
type CommandProvider interface {
	// HighlightedCommand returns the styled command text.
	HighlightedCommand() (string, error)
	// CursorByteOffset returns the cursor position as a byte offset.
	CursorByteOffset() int
}

// StaticCommand holds a fixed command and cursor, useful for tests and batch composition.
type StaticCommand struct {
	Text   string
	Cursor int
}

func (c StaticCommand) HighlightedCommand() (string, error) { return c.Text, nil }
func (c StaticCommand) CursorByteOffset() int               { return c.Cursor }

// --- Terminal Info ---

// TerminalInfo reports terminal capabilities consumed by the renderer.
// Capability probing itself lives outside this package.
type TerminalInfo interface {
	// Width returns the terminal width in columns.
	Width() int
	// IsTTY returns true when output goes to an interactive terminal.
	IsTTY() bool
}

// StaticTerminalInfo reports fixed terminal capabilities.
type StaticTerminalInfo struct {
	Columns int
	TTY     bool
}

func (t StaticTerminalInfo) Width() int {
	if t.Columns <= 0 {
		return 80
	}
	return t.Columns
}

func (t StaticTerminalInfo) IsTTY() bool { return t.TTY }

// --- Menu Provider ---

// MenuProvider renders the completion menu block shown below the command.
type MenuProvider interface {
	// RenderMenu returns the menu text for the given terminal width.
	// An empty string means no menu content.
	RenderMenu(width int) string
}

// NoopMenu renders no menu.
type NoopMenu struct{}

func (NoopMenu) RenderMenu(width int) string { return "" }

// --- Suggestion Provider ---

// SuggestionProvider supplies the inline suggestion shown as ghost text
// after the cursor.
type SuggestionProvider interface {
	// CurrentSuggestion returns the suggestion remainder and whether one exists.
	CurrentSuggestion() (string, bool)
}

// NoopSuggestion never suggests.
type NoopSuggestion struct{}

func (NoopSuggestion) CurrentSuggestion() (string, bool) { return "", false }

// --- Notification Provider ---

// NotificationProvider supplies transient notification text drawn below the
// command area (and below the menu when both are visible).
type NotificationProvider interface {
	// NotificationText returns the notification and whether one is pending.
	NotificationText() (string, bool)
}

// NoopNotification has no notifications.
type NoopNotification struct{}

func (NoopNotification) NotificationText() (string, bool) { return "", false }

// --- Continuation Provider ---

// ContinuationProvider chooses the prefix shown on continuation rows of
// multi-line input. It receives the ANSI-stripped text of the line just
// completed, so a caller-side parser can track open quotes or brackets and
// pick an appropriate marker.
type ContinuationProvider interface {
	// ContinuationPrefix returns the prefix for the row following completedLine.
	ContinuationPrefix(completedLine string) string
}

// ContinuationFunc adapts a plain function to ContinuationProvider.
type ContinuationFunc func(completedLine string) string

func (f ContinuationFunc) ContinuationPrefix(completedLine string) string { return f(completedLine) }

// NoopContinuation shows no continuation prefix.
type NoopContinuation struct{}

func (NoopContinuation) ContinuationPrefix(completedLine string) string { return "" }

// Ensure implementations satisfy their interfaces
var _ PromptProvider = StaticPrompt("")
var _ CommandProvider = StaticCommand{}
var _ TerminalInfo = StaticTerminalInfo{}
var _ MenuProvider = NoopMenu{}
var _ SuggestionProvider = NoopSuggestion{}
var _ NotificationProvider = NoopNotification{}
var _ ContinuationProvider = ContinuationFunc(nil)
var _ ContinuationProvider = NoopContinuation{}
