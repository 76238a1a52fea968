// Package vtcore provides a headless ECMA-48/VT220/xterm-compatible terminal
// emulator core.
//
// This package emulates a terminal without any display, making it ideal for:
//   - Testing terminal applications without a GUI
//   - Building terminal multiplexers and recorders
//   - Creating terminal-based web applications
//   - Automated testing of CLI tools
//   - Screen scraping and automation
//
// # Quick Start
//
// Create a terminal and write ANSI sequences to it:
//
//	term := vtcore.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.LineText(0)) // "Hello World!"
//
// # Architecture
//
// The package is organized around a parse/dispatch pipeline feeding a pair
// of screens:
//
//   - [ByteParser]: the ECMA-48 state machine, turning raw bytes into print,
//     execute, and control-function events
//   - [Sequencer]: assembles those events into [Sequence] values and
//     dispatches them against a function table
//   - [Screen]: owns a [Grid], [Cursor], [Margin], [TabStops], and
//     [ModeState] for one buffer (primary or alternate)
//   - [Grid]/[Line]/[Cell]: the 2D cell storage, with scrollback for the
//     primary screen
//   - [Terminal]: wires a ByteParser, Sequencer, and both screens together
//     behind a single lock
//
// # Terminal
//
// Terminal is the main entry point. Write raw bytes containing ANSI escape
// sequences via [Terminal.Write] or [Terminal.WriteString]:
//
//	term := vtcore.New(
//	    vtcore.WithSize(24, 80),             // 24 rows, 80 columns
//	    vtcore.WithScrollback(storage),      // custom ScrollbackProvider
//	    vtcore.WithResponse(ptyWriter),      // where replies (DSR/DA/...) go
//	)
//
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = term
//	cmd.Run()
//
//	for row := 0; row < term.Rows(); row++ {
//	    fmt.Println(term.LineText(row))
//	}
//
// # Dual Buffers
//
// Terminal maintains two screens:
//
//   - Primary: normal mode, with optional scrollback storage
//   - Alternate: used by full-screen apps (vim, less, htop), no scrollback
//
// Applications switch buffers via DECSET/DECRST ?47/?1047/?1049. Check which
// buffer is active with [Terminal.IsAlternateScreen].
//
// # Cells and Attributes
//
// Each [Cell] stores a codepoint plus combining marks, display width, and a
// [GraphicsAttributes] (foreground/background/underline [Color] plus a
// [CellFlags] bitmask for bold, italic, underline styles, blink, inverse,
// and more).
//
// # Colors
//
// [Color] is a tagged union over default, indexed (0-15 plus bright),
// 256-palette, and 24-bit RGB, implementing [image/color.Color]. Use
// [ResolveDefaultColor] to resolve a Color against the terminal's default
// foreground/background.
//
// # Scrollback
//
// Lines scrolled off the top of the primary screen are retained by a
// [ScrollbackProvider]. [MemoryScrollback] is the built-in in-process
// implementation:
//
//	storage := vtcore.NewMemoryScrollback(10000)
//	term := vtcore.New(vtcore.WithScrollback(storage))
//
//	for i := 0; i < term.ScrollbackLen(); i++ {
//	    cells := term.ScrollbackLine(i)
//	}
//
// # Providers
//
// Providers handle terminal events and queries. All are optional, with
// no-op defaults ([NoopBell], [NoopTitle], [NoopClipboard], [NoopAPC],
// [NoopPM], [NoopSOS], [NoopNotify], [NoopLog], [NoopSizeProvider],
// [NoopScrollback], [NoopRecording], [NoopShellIntegration]):
//
//	term := vtcore.New(
//	    vtcore.WithBell(&myBell{}),
//	    vtcore.WithTitle(&myTitleBar{}),
//	    vtcore.WithLog(vtcore.NewCharmLogProvider(nil)),
//	)
//
// # Middleware
//
// [Middleware] intercepts Sequencer dispatch at each entry point (Print,
// Execute, Dispatch, Osc, Dcs, SosPmApc) with a next continuation:
//
//	mw := &vtcore.Middleware{
//	    Print: func(r rune, next func(rune)) {
//	        log.Printf("print %q", r)
//	        next(r)
//	    },
//	}
//	term := vtcore.New(vtcore.WithMiddleware(mw))
//
// # Dirty Tracking
//
// Track which cells changed for efficient rendering:
//
//	if term.HasDirty() {
//	    for _, pos := range term.DirtyCells() {
//	        // redraw pos.Row, pos.Col
//	    }
//	    term.ClearDirty()
//	}
//
// # Images
//
// Sixel (DCS q), Kitty graphics (APC _G), and iTerm2 inline images (OSC
// 1337) all feed a shared [ImageRegistry]: stored images are interned
// behind integer ids the way hyperlinks are, placed at the cursor as an
// [ImagePlacement], and stamped onto covered cells as a [CellImage] with
// UV texture coordinates.
//
//	for _, p := range term.ImagePlacements() {
//	    img := term.Image(p.ImageID) // img.Data is raw RGBA
//	}
//	term.SetImageMaxMemory(100 * 1024 * 1024)
//
// # Search and Selection
//
// Find text on the visible page or in history, and extract the text of a
// selection (read row by row from the start position to the end position):
//
//	matches := term.Search("error")                  // visible page
//	histMatches := term.SearchScrollback("error")    // negative rows
//	pos, ok := term.SearchReverse("error", from)     // joins wrapped lines
//
//	term.SetSelection(start, end)
//	text := term.GetSelectedText()
//
// # Rendering
//
// A [Renderer] receives the page in row-major order through a pull-model
// callback walk; lines still in the compact representation short-circuit
// through RenderTrivialLine:
//
//	term.Render(myRenderer)
//	term.RenderWindow(myRenderer, -100, 23) // include scrollback
//
// # Shell Integration
//
// OSC 133 prompt marks are tracked per screen via [PromptTracker], reachable
// through [Screen.RecordPromptMark] and the screen's prompt-navigation
// helpers.
//
// # Hyperlinks
//
// OSC 8 hyperlinks are interned in a [HyperlinkRegistry], reference-counted
// so that runs of cells sharing a URI share one allocation.
//
// # Thread Safety
//
// Write, WriteString and the read/query accessors are safe for concurrent
// use; an internal RWMutex protects state. The methods the Sequencer calls
// while Write holds that lock (Screen, Primary, Alternate, Resize,
// HardReset, the palette and color setters, and the other dispatch-handle
// methods) take no lock of their own. Perform multi-step atomic sequences with your own
// synchronization if needed.
//
// # Supported Control Functions
//
// The dispatch table in this package covers cursor movement (CUU/CUD/
// CUF/CUB/CUP/HVP), cursor save/restore (DECSC/DECRC), erase (ED/EL/ECH),
// insert/delete (ICH/DCH/IL/DL), scrolling (SU/SD/DECSTBM/DECSLRM),
// character attributes (SGR, including truecolor and underline color),
// ANSI and DEC private modes (DECSET/DECRST/DECRQM), device status reports
// (DSR/DECXCPR/DECRQSS/XTGETTCAP), the alternate screen, bracketed paste,
// mouse reporting, window title (OSC 0/1/2), clipboard (OSC 52),
// hyperlinks (OSC 8), shell integration (OSC 133), and Sixel/Kitty
// graphics.
package vtcore
