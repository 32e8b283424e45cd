package shelldisplay

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// Controller owns the display cache, the terminal capability handle, and the
// composition pipeline. It is the single entry point for producing display
// content: Display serves the cache-first path, DisplayWithCursor the
// caller-managed placement path, and HandleRedraw the event-driven
// incremental protocol.
//
// The controller is designed for single-threaded, callback-driven use: all
// calls happen on the thread that owns the terminal, and redraw signals are
// processed strictly in arrival order. The internal mutex guards the cache,
// the counters, and the theme context, so snapshots and config-driven theme
// changes can come from other goroutines.
type Controller struct {
	mu sync.Mutex

	// Configuration
	cfg Config

	// Theme context (affects every composed string)
	theme      Theme
	symbolMode SymbolMode

	// Cache and counters
	cache   *cache
	metrics metrics

	// Providers for external content
	prompt       PromptProvider
	command      CommandProvider
	terminal     TerminalInfo
	menu         MenuProvider
	suggestion   SuggestionProvider
	notification NotificationProvider
	continuation ContinuationProvider

	// Output
	out    io.Writer
	logger *log.Logger

	// Virtual screens: what the terminal shows vs. what it should show
	current *ScreenModel
	desired *ScreenModel

	// Redraw session state
	promptRendered     bool
	lastTerminalEndRow int

	// Visibility flags, each independently toggleable
	suggestionsEnabled  bool
	menuVisible         bool
	notificationVisible bool

	initialized bool
}

// Option configures a Controller during construction.
type Option func(*Controller)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(c *Controller) {
		c.cfg = cfg
	}
}

// WithPrompt sets the prompt content producer.
func WithPrompt(p PromptProvider) Option {
	return func(c *Controller) {
		c.prompt = p
	}
}

// WithCommand sets the command content producer.
func WithCommand(p CommandProvider) Option {
	return func(c *Controller) {
		c.command = p
	}
}

// WithTerminalInfo sets the terminal capability handle.
// Defaults to a static 80-column non-TTY.
func WithTerminalInfo(t TerminalInfo) Option {
	return func(c *Controller) {
		c.terminal = t
	}
}

// WithMenu sets the completion menu renderer.
// Defaults to a no-op if not set.
func WithMenu(p MenuProvider) Option {
	return func(c *Controller) {
		c.menu = p
	}
}

// WithSuggestion sets the inline suggestion source.
// Defaults to a no-op if not set.
func WithSuggestion(p SuggestionProvider) Option {
	return func(c *Controller) {
		c.suggestion = p
	}
}

// WithNotification sets the notification source.
// Defaults to a no-op if not set.
func WithNotification(p NotificationProvider) Option {
	return func(c *Controller) {
		c.notification = p
	}
}

// WithContinuation sets the continuation-prompt provider consulted on each
// explicit newline in multi-line input.
func WithContinuation(p ContinuationProvider) Option {
	return func(c *Controller) {
		c.continuation = p
	}
}

// WithOutput sets the terminal writer redraws are emitted to.
// Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Controller) {
		c.out = w
	}
}

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithTheme sets the initial theme, overriding the configured theme name.
func WithTheme(t Theme) Option {
	return func(c *Controller) {
		c.theme = t
	}
}

// New creates a controller with the given options. The configuration is
// validated before any sub-object is built, so a failed New leaves nothing
// behind to clean up.
func New(opts ...Option) (*Controller, error) {
	c := &Controller{
		cfg:                DefaultConfig(),
		terminal:           StaticTerminalInfo{Columns: 80},
		menu:               NoopMenu{},
		suggestion:         NoopSuggestion{},
		notification:       NoopNotification{},
		continuation:       NoopContinuation{},
		out:                os.Stdout,
		logger:             log.New(io.Discard),
		suggestionsEnabled: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	if c.theme.Name == "" {
		c.theme = themeByName(c.cfg.Theme)
	}
	c.symbolMode = c.cfg.symbolMode()

	c.cache = newCache(c.cfg.MaxCacheEntries, c.cfg.CacheTTL)
	c.current = NewScreenModel(c.terminal.Width())
	c.desired = NewScreenModel(c.terminal.Width())
	c.initialized = true

	return c, nil
}

// Close tears the controller down. Subsequent display calls return
// ErrNotInitialized.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return nil
	}
	c.cache.clear()
	c.initialized = false
	return nil
}

// Display produces the composed display content for (prompt, command),
// serving from cache when a semantically identical state was composed
// before. The returned string never ends in a newline.
func (c *Controller) Display(prompt, command string) (string, error) {
	if !c.initialized {
		return "", ErrNotInitialized
	}

	start := time.Now()
	c.mu.Lock()
	themeName, mode := c.theme.Name, c.symbolMode
	c.mu.Unlock()
	fingerprint := ComputeFingerprint(prompt, command, themeName, mode)

	if c.cfg.CacheEnabled {
		c.mu.Lock()
		content, ok := c.cache.get(fingerprint)
		c.mu.Unlock()
		if ok {
			c.recordHit(time.Since(start))
			c.logger.Debug("display cache hit", "fingerprint", fingerprint)
			return string(content), nil
		}
	}

	content, err := c.compose(prompt, command)
	if err != nil {
		return "", err
	}
	content = strings.TrimRight(content, "\n")

	if c.cfg.CacheEnabled {
		c.mu.Lock()
		c.cache.put(fingerprint, []byte(content))
		if c.cfg.AdaptiveOptimization && c.cache.memoryEstimate() > c.cfg.MemoryThreshold {
			c.cache.sweep(time.Now())
		}
		c.mu.Unlock()
	}

	c.recordMiss(time.Since(start))
	return content, nil
}

// DisplayWithCursor composes display content and appends an absolute
// cursor-positioning escape sequence, for callers that manage terminal
// placement themselves. This path always recomputes; it never touches the
// cache. When wrapToWidth is set the composed content is re-wrapped at the
// terminal width with ANSI sequences passed through untouched.
//
// cursorOffset is a byte offset into the plain (unstyled) command text.
// Offsets outside the command return ErrCompositionFailed.
func (c *Controller) DisplayWithCursor(prompt, command string, cursorOffset int, wrapToWidth bool) (string, error) {
	if !c.initialized {
		return "", ErrNotInitialized
	}
	if cursorOffset < 0 {
		return "", fmt.Errorf("%w: negative cursor offset", ErrInvalidParameter)
	}

	renderedPrompt, styledCommand, err := c.produce(prompt, command)
	if err != nil {
		return "", err
	}

	styledOffset := styledOffsetFor(styledCommand, cursorOffset)
	if styledOffset < 0 {
		return "", fmt.Errorf("%w: cursor offset %d outside composed content", ErrCompositionFailed, cursorOffset)
	}

	width := c.terminal.Width()
	model := NewScreenModel(width)
	model.Render(renderedPrompt, styledCommand, styledOffset, c.continuation)

	content := renderedPrompt + styledCommand
	content = strings.TrimRight(content, "\n")
	if wrapToWidth {
		content = wrapANSI(content, width)
	}

	var b strings.Builder
	b.WriteString(content)
	b.WriteString(cursorPosition(model.CursorRow(), model.CursorCol()))
	return b.String(), nil
}

// compose produces the final display text from the content producers.
func (c *Controller) compose(prompt, command string) (string, error) {
	renderedPrompt, styledCommand, err := c.produce(prompt, command)
	if err != nil {
		return "", err
	}
	return renderedPrompt + styledCommand, nil
}

// produce asks the prompt/command providers for current rendered content,
// falling back to the raw arguments when no provider is configured.
func (c *Controller) produce(prompt, command string) (string, string, error) {
	renderedPrompt := prompt
	if c.prompt != nil {
		p, err := c.prompt.RenderedPrompt()
		if err != nil {
			return "", "", fmt.Errorf("%w: prompt: %v", ErrCompositionFailed, err)
		}
		renderedPrompt = p
	}

	styledCommand := command
	if c.command != nil {
		s, err := c.command.HighlightedCommand()
		if err != nil {
			return "", "", fmt.Errorf("%w: command: %v", ErrCompositionFailed, err)
		}
		styledCommand = s
	}

	return renderedPrompt, styledCommand, nil
}

// Refresh clears the cache so the next display call recomputes.
func (c *Controller) Refresh() error {
	if !c.initialized {
		return ErrNotInitialized
	}
	c.ClearCache()
	return nil
}

// ClearCache drops every cached display state.
func (c *Controller) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.clear()
}

// SetThemeContext switches the active theme and symbol mode. Because both
// affect every composed string, any change invalidates the whole cache.
func (c *Controller) SetThemeContext(name string, mode SymbolMode) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	if name == "" {
		return fmt.Errorf("%w: empty theme name", ErrInvalidParameter)
	}

	c.mu.Lock()
	if c.theme.Name == name && c.symbolMode == mode {
		c.mu.Unlock()
		return nil
	}
	c.theme = themeByName(name)
	c.symbolMode = mode
	c.cache.clear()
	c.mu.Unlock()

	c.logger.Debug("theme context changed", "theme", name, "mode", mode.String())
	return nil
}

// Theme returns the active theme.
func (c *Controller) Theme() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// SymbolMode returns the active symbol compatibility mode.
func (c *Controller) SymbolMode() SymbolMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.symbolMode
}

// SetSuggestionsEnabled toggles ghost-text suggestions.
func (c *Controller) SetSuggestionsEnabled(enabled bool) {
	c.suggestionsEnabled = enabled
}

// SetMenuVisible toggles the completion menu block.
func (c *Controller) SetMenuVisible(visible bool) {
	c.menuVisible = visible
}

// SetNotificationVisible toggles the notification block.
func (c *Controller) SetNotificationVisible(visible bool) {
	c.notificationVisible = visible
}

// BeginSession resets the virtual screens for a fresh input line: the next
// HandleRedraw writes the prompt once, then only ever touches the command
// area.
func (c *Controller) BeginSession() {
	c.current.Reset()
	c.desired.Reset()
	c.promptRendered = false
	c.lastTerminalEndRow = 0
}

// CurrentScreen returns a snapshot of the last-rendered screen model.
func (c *Controller) CurrentScreen() ScreenModel {
	return c.current.Snapshot()
}

// Snapshot returns current performance counters and cache statistics.
func (c *Controller) Snapshot() PerformanceSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	avg := c.metrics.avgLatency()
	mem := c.cache.memoryEstimate()

	return PerformanceSnapshot{
		Operations:             c.metrics.total,
		CacheHits:              c.metrics.hits,
		CacheMisses:            c.metrics.misses,
		HitRate:                c.metrics.hitRate(),
		AvgLatency:             avg,
		MinLatency:             c.metrics.minLatency,
		MaxLatency:             c.metrics.maxLatency,
		CacheEntries:           c.cache.len(),
		CacheMemoryEstimate:    mem,
		CacheInvalidations:     c.cache.invalidations,
		WithinLatencyThreshold: avg <= c.cfg.LatencyThreshold,
		WithinMemoryThreshold:  mem <= c.cfg.MemoryThreshold,
	}
}

// recordHit updates counters for a cache-served operation.
func (c *Controller) recordHit(latency time.Duration) {
	if !c.cfg.PerformanceMonitoring {
		return
	}
	c.mu.Lock()
	c.metrics.recordHit(latency)
	c.mu.Unlock()
}

// recordMiss updates counters for a recomputed operation.
func (c *Controller) recordMiss(latency time.Duration) {
	if !c.cfg.PerformanceMonitoring {
		return
	}
	c.mu.Lock()
	c.metrics.recordMiss(latency)
	c.mu.Unlock()
}

// styledOffsetFor maps a byte offset into plain command text to the
// corresponding offset in the ANSI-styled rendition. Returns -1 when the
// plain offset lies outside the text.
func styledOffsetFor(styled string, plainOffset int) int {
	plain := 0
	for i := 0; i < len(styled); {
		if plain == plainOffset {
			return i
		}
		if styled[i] == 0x1b {
			i = skipANSI(styled, i)
			continue
		}
		plain++
		i++
	}
	if plain == plainOffset {
		return len(styled)
	}
	return -1
}

// wrapANSI inserts line breaks so no visual row exceeds width columns.
// ANSI escape sequences pass through without counting; explicit newlines
// reset the column.
func wrapANSI(s string, width int) string {
	if width <= 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	col := 0

	for i := 0; i < len(s); {
		if s[i] == 0x1b {
			next := skipANSI(s, i)
			b.WriteString(s[i:next])
			i = next
			continue
		}
		if s[i] == '\n' {
			b.WriteByte('\n')
			col = 0
			i++
			continue
		}
		if s[i] == '\t' {
			next := (col/tabWidth + 1) * tabWidth
			if next >= width {
				b.WriteByte('\n')
				col = 0
				i++
				continue
			}
			b.WriteByte('\t')
			col = next
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		w := runeWidth(r)
		if w > 0 && col+w > width {
			b.WriteByte('\n')
			col = 0
		}
		b.WriteString(s[i : i+size])
		col += w
		i += size
	}

	return b.String()
}
