// Package shelldisplay is the terminal rendering core of an interactive
// line-editing shell front end. It turns a (prompt, command, cursor, theme)
// tuple into exact terminal byte sequences, minimizing redraw cost through a
// fingerprint-keyed response cache and minimizing flicker through
// incremental, prompt-once screen updates.
//
// The package does not own the text buffer, keyboard decoding, or prompt
// generation; those arrive through provider interfaces. It solves one
// problem: reconcile what the terminal currently shows with what it should
// show, using the fewest possible writes, without ever erasing an
// already-drawn prompt.
//
// # Quick Start
//
// Create a controller and ask it for composed display content:
//
//	ctrl, err := shelldisplay.New(
//	    shelldisplay.WithTerminalInfo(shelldisplay.StaticTerminalInfo{Columns: 80, TTY: true}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	content, err := ctrl.Display("$ ", "ls -la")
//
// Repeated calls with the same state are served from the cache; the second
// call above would not re-run composition.
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Controller]: owns the cache, the virtual screens, and the redraw protocol
//   - [ScreenModel]: a virtual screen tracking rows, wrapping, and the cursor
//   - [Theme]: styles for ghost text, menu, and notification content
//   - [Config]: caching and monitoring knobs, loadable from TOML
//
// # Incremental Redraw
//
// For interactive use, wire content providers and raise redraw events:
//
//	ctrl, _ := shelldisplay.New(
//	    shelldisplay.WithPrompt(promptSource),
//	    shelldisplay.WithCommand(editBuffer),
//	    shelldisplay.WithSuggestion(historySuggester),
//	    shelldisplay.WithOutput(os.Stdout),
//	)
//	ctrl.BeginSession()
//	// on every edit:
//	ctrl.HandleRedraw()
//
// The first redraw of a session writes the prompt once; every later redraw
// only repositions and redraws the command area, so a wrapped or multi-line
// prompt is never corrupted.
//
// # Caching
//
// Display states are keyed by a fingerprint that combines a semantic hash
// (prompts normalized so embedded clocks and similar volatile tokens group
// together) with an exact hash of the raw strings. See [ComputeFingerprint].
// Theme or symbol-mode changes invalidate every entry, since they affect all
// composed output.
//
// # Providers
//
// Collaborators plug in through small interfaces, all optional with no-op
// defaults:
//
//   - [PromptProvider]: rendered prompt text
//   - [CommandProvider]: highlighted command text and cursor offset
//   - [TerminalInfo]: width and TTY capability flags
//   - [MenuProvider]: completion menu block
//   - [SuggestionProvider]: inline ghost-text suggestion
//   - [NotificationProvider]: transient notification text
//   - [ContinuationProvider]: per-row continuation prompt prefixes
//
// # Performance Monitoring
//
// [Controller.Snapshot] reports hit rate, latency statistics over a rolling
// window, and cache memory estimates, with threshold flags derived from the
// configuration.
package shelldisplay
