package vtcore

import (
	"image/color"
	"sync"
)

// titleTracker is the default TitleProvider: it remembers the current
// window title and the XTPUSHTITLE/XTPOPTITLE stack so Terminal.WindowTitle
// has something to report when the caller hasn't supplied its own
// TitleProvider (e.g. to forward titles to a real window manager).
type titleTracker struct {
	current string
	stack   []string
}

func (t *titleTracker) SetTitle(title string) { t.current = title }
func (t *titleTracker) PushTitle()             { t.stack = append(t.stack, t.current) }
func (t *titleTracker) PopTitle() {
	if len(t.stack) == 0 {
		return
	}
	t.current = t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
}

var _ TitleProvider = (*titleTracker)(nil)

// Option configures a Terminal at construction time.
type Option func(*Terminal)

// WithSize sets the initial page geometry (default 80x24).
func WithSize(lines, cols int) Option {
	return func(t *Terminal) { t.lines, t.cols = lines, cols }
}

// WithResponse installs the writer terminal responses (cursor reports, DA,
// DECRQSS replies, ...) are sent to, typically the PTY's input side.
func WithResponse(w ResponseProvider) Option {
	return func(t *Terminal) { t.reply = w }
}

// WithBell installs a BellProvider for BEL (0x07).
func WithBell(p BellProvider) Option { return func(t *Terminal) { t.bell = p } }

// WithTitle installs a TitleProvider, replacing the default in-memory tracker.
func WithTitle(p TitleProvider) Option { return func(t *Terminal) { t.title = p } }

// WithClipboard installs a ClipboardProvider for OSC 52.
func WithClipboard(p ClipboardProvider) Option { return func(t *Terminal) { t.clipboard = p } }

// WithAPC installs an APCProvider for APC payloads not claimed by Kitty graphics.
func WithAPC(p APCProvider) Option { return func(t *Terminal) { t.apc = p } }

// WithPM installs a PMProvider for Privacy Message payloads.
func WithPM(p PMProvider) Option { return func(t *Terminal) { t.pm = p } }

// WithSOS installs a SOSProvider for Start-of-String payloads.
func WithSOS(p SOSProvider) Option { return func(t *Terminal) { t.sos = p } }

// WithNotify installs a NotifyProvider for OSC 777 desktop notifications.
func WithNotify(p NotifyProvider) Option { return func(t *Terminal) { t.notify = p } }

// WithLog installs a LogProvider; the default discards every diagnostic.
// Pass NewCharmLogProvider(nil) for leveled, colorized logging.
func WithLog(p LogProvider) Option { return func(t *Terminal) { t.log = p } }

// WithSizeProvider installs a SizeProvider answering cell/text-area pixel
// size queries (sixel/Kitty placement sizing, XTWINOPS reports).
func WithSizeProvider(p SizeProvider) Option { return func(t *Terminal) { t.size = p } }

// WithScrollback installs the ScrollbackProvider backing the primary
// screen's history (the alternate screen never retains history). Defaults
// to an unbounded MemoryScrollback.
func WithScrollback(p ScrollbackProvider) Option {
	return func(t *Terminal) { t.scrollback = p; t.scrollbackSet = true }
}

// WithMaxScrollback bounds primary-screen history to n lines. The bound is
// passed through SetMaxLines to the ScrollbackProvider in use, whether the
// default MemoryScrollback or one installed by WithScrollback.
func WithMaxScrollback(n int) Option {
	return func(t *Terminal) { t.history = FiniteHistory(n) }
}

// WithRecording installs a RecordingProvider capturing raw input bytes
// before parsing, for session replay.
func WithRecording(p RecordingProvider) Option { return func(t *Terminal) { t.recording = p } }

// WithShellIntegration installs a ShellIntegrationProvider notified of OSC
// 133 prompt marks and working-directory changes.
func WithShellIntegration(p ShellIntegrationProvider) Option {
	return func(t *Terminal) { t.shellIntegration = p }
}

// WithMiddleware attaches interception hooks at every Sequencer entry point.
func WithMiddleware(mw *Middleware) Option {
	return func(t *Terminal) { t.middleware = mw }
}

// Terminal owns a primary and alternate Screen plus the parser/sequencer
// pipeline that drives them, guarding all mutable state behind a single
// RWMutex so Write stays safe against the accessor methods a renderer
// calls concurrently.
type Terminal struct {
	mu sync.RWMutex

	lines, cols int

	primary   *Screen
	alternate *Screen
	useAlt    bool

	parser *ByteParser
	seq    *Sequencer
	input  *InputGenerator

	reply            ResponseProvider
	bell             BellProvider
	title            TitleProvider
	clipboard        ClipboardProvider
	apc              APCProvider
	pm               PMProvider
	sos              SOSProvider
	notify           NotifyProvider
	log              LogProvider
	size             SizeProvider
	scrollback       ScrollbackProvider
	scrollbackSet    bool
	recording        RecordingProvider
	shellIntegration ShellIntegrationProvider
	middleware       *Middleware

	history   HistoryLimit
	selection Selection

	palette        [256]color.RGBA
	paletteSet     [256]bool
	defaultFg      color.RGBA
	defaultFgSet   bool
	defaultBg      color.RGBA
	defaultBgSet   bool
	cursorColor    color.RGBA
	cursorColorSet bool
}

// New returns a ready-to-use Terminal, applying opts over the 80x24,
// noop-collaborator defaults.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		lines:            24,
		cols:             80,
		reply:            NoopResponse{},
		bell:             NoopBell{},
		clipboard:        NoopClipboard{},
		apc:              NoopAPC{},
		pm:               NoopPM{},
		sos:              NoopSOS{},
		notify:           NoopNotify{},
		log:              NoopLog{},
		size:             NoopSizeProvider{},
		recording:        NoopRecording{},
		shellIntegration: NoopShellIntegration{},
		history:          InfiniteHistory(),
		input:            NewInputGenerator(),
		palette:          DefaultPalette,
		defaultFg:        DefaultForeground,
		defaultBg:        DefaultBackground,
		cursorColor:      DefaultCursorColor,
	}
	t.title = &titleTracker{}

	for _, opt := range opts {
		opt(t)
	}

	if !t.scrollbackSet {
		t.scrollback = NewMemoryScrollback(historyCapacity(t.history))
	}

	t.primary = NewScreen(t.lines, t.cols, t.scrollback, t.history)
	t.alternate = NewScreen(t.lines, t.cols, NoopScrollback{}, NoHistory())
	t.wireScreen(t.primary)
	t.wireScreen(t.alternate)

	t.seq = NewSequencer(t, t.log)
	t.seq.SetMiddleware(t.middleware)
	t.parser = NewByteParser(t.seq, t.log)

	return t
}

func historyCapacity(h HistoryLimit) int {
	if h.Infinite {
		return -1
	}
	return h.Lines
}

// wireScreen installs every collaborator on a freshly constructed Screen;
// Screen's provider fields (reply/log/size/onTitle/...) are unexported and
// carry no setter, so Terminal assigns them directly, sharing this package.
func (t *Terminal) wireScreen(s *Screen) {
	s.reply = t.reply
	s.log = t.log
	s.size = t.size
	s.onTitle = t.title
	s.onBell = t.bell
	s.onClipboard = t.clipboard
	s.onShellInteg = t.shellIntegration
}

// Write feeds raw PTY output bytes through the parser, driving the active
// screen. Safe for concurrent use with the accessor methods.
func (t *Terminal) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recording.Record(data)
	t.parser.Parse(data)
	return len(data), nil
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// --- dispatchTarget -------------------------------------------------------

// Screen returns the currently active screen (primary, or alternate while
// DECMode 47/1047/1049 is set).
func (t *Terminal) Screen() *Screen {
	if t.useAlt {
		return t.alternate
	}
	return t.primary
}

// Primary returns the primary screen regardless of which is active.
func (t *Terminal) Primary() *Screen { return t.primary }

// Alternate returns the alternate screen regardless of which is active.
func (t *Terminal) Alternate() *Screen { return t.alternate }

// UsingAlternate reports whether the alternate screen is currently active.
func (t *Terminal) UsingAlternate() bool { return t.useAlt }

// EnterAlternateScreen switches the active screen to the alternate buffer.
// save additionally snapshots the primary cursor and clears the alternate
// page, matching DECMode 1049's "save cursor, switch, clear" semantics as
// opposed to 47/1047's bare screen swap.
func (t *Terminal) EnterAlternateScreen(save bool) {
	if t.useAlt {
		return
	}
	if save {
		t.primary.SaveCursor()
		t.alternate.Grid.ClearAll(GraphicsAttributes{})
		t.alternate.Cursor = NewCursor()
	}
	t.useAlt = true
}

// ExitAlternateScreen switches the active screen back to the primary
// buffer. restore additionally restores the cursor DECMode 1049 saved on
// entry.
func (t *Terminal) ExitAlternateScreen(restore bool) {
	if !t.useAlt {
		return
	}
	t.useAlt = false
	if restore {
		t.primary.RestoreCursor()
	}
}

// Reply implements dispatchTarget: it writes a response string to the
// ResponseProvider, the way CPR/DA/DECRQSS/OSC query replies flow back to
// whatever owns the PTY's input side.
func (t *Terminal) Reply(text string) {
	if t.reply == nil {
		return
	}
	_, _ = t.reply.Write([]byte(text))
}

func (t *Terminal) Bell() BellProvider           { return t.bell }
func (t *Terminal) Title() TitleProvider         { return t.title }
func (t *Terminal) Clipboard() ClipboardProvider { return t.clipboard }
func (t *Terminal) APC() APCProvider             { return t.apc }
func (t *Terminal) PM() PMProvider               { return t.pm }
func (t *Terminal) SOS() SOSProvider             { return t.sos }
func (t *Terminal) Notify() NotifyProvider       { return t.notify }
func (t *Terminal) Log() LogProvider             { return t.log }
func (t *Terminal) Input() *InputGenerator       { return t.input }

// HardReset implements RIS: both screens, mode state, and palette overrides
// return to power-on defaults, and the primary screen becomes active.
func (t *Terminal) HardReset() {
	t.primary = NewScreen(t.lines, t.cols, t.scrollback, t.history)
	t.alternate = NewScreen(t.lines, t.cols, NoopScrollback{}, NoHistory())
	t.wireScreen(t.primary)
	t.wireScreen(t.alternate)
	t.useAlt = false
	t.palette = DefaultPalette
	for i := range t.paletteSet {
		t.paletteSet[i] = false
	}
	t.resetDefaultForeground()
	t.resetDefaultBackground()
	t.resetCursorColor()
}

// Resize changes the page geometry of both screens, preserving content the
// way DECSCPP/XTWINOPS/a host window resize would.
func (t *Terminal) Resize(lines, cols int) {
	t.lines, t.cols = lines, cols
	t.primary.Resize(lines, cols)
	t.alternate.Resize(lines, cols)
}

// --- palette / default colors (OSC 4/10/11/12/104/110/111/112) -----------

func (t *Terminal) PaletteColor(idx int) color.RGBA {
	if idx < 0 || idx > 255 {
		return color.RGBA{}
	}
	return t.palette[idx]
}

func (t *Terminal) SetPaletteColor(idx int, c color.RGBA) {
	if idx < 0 || idx > 255 {
		return
	}
	t.palette[idx] = c
	t.paletteSet[idx] = true
}

func (t *Terminal) ResetPaletteColor(idx int) {
	if idx < 0 || idx > 255 {
		return
	}
	t.palette[idx] = DefaultPalette[idx]
	t.paletteSet[idx] = false
}

func (t *Terminal) DefaultForegroundColor() color.RGBA { return t.defaultFg }
func (t *Terminal) DefaultBackgroundColor() color.RGBA { return t.defaultBg }
func (t *Terminal) CursorDisplayColor() color.RGBA     { return t.cursorColor }

func (t *Terminal) SetDefaultForegroundColor(c color.RGBA) {
	t.defaultFg, t.defaultFgSet = c, true
}
func (t *Terminal) SetDefaultBackgroundColor(c color.RGBA) {
	t.defaultBg, t.defaultBgSet = c, true
}
func (t *Terminal) SetCursorDisplayColor(c color.RGBA) {
	t.cursorColor, t.cursorColorSet = c, true
}

func (t *Terminal) resetDefaultForeground() { t.defaultFg, t.defaultFgSet = DefaultForeground, false }
func (t *Terminal) resetDefaultBackground() { t.defaultBg, t.defaultBgSet = DefaultBackground, false }
func (t *Terminal) resetCursorColor()       { t.cursorColor, t.cursorColorSet = DefaultCursorColor, false }

var _ dispatchTarget = (*Terminal)(nil)

// --- read-only accessors ---------------------------------------------------

// Rows returns the active screen's line count.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Grid.Lines()
}

// Cols returns the active screen's column count.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Grid.Cols()
}

// Cell returns a copy of the cell at (row, col) on the active screen.
func (t *Terminal) Cell(row, col int) Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Grid.Cell(row, col)
}

// CursorPosition returns the active screen's 0-based cursor (line, column).
func (t *Terminal) CursorPosition() (int, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c := t.Screen().Cursor
	return c.Line, c.Column
}

// CursorVisible reports whether DECTCEM currently shows the cursor.
func (t *Terminal) CursorVisible() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Cursor.Visible
}

// CursorStyle returns the active screen's DECSCUSR cursor style.
func (t *Terminal) CursorStyle() CursorStyle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Cursor.Style
}

// WindowTitle returns the current window title, if the installed
// TitleProvider is the default tracker (custom providers own their own
// storage and should be queried directly).
func (t *Terminal) WindowTitle() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if tt, ok := t.title.(*titleTracker); ok {
		return tt.current
	}
	return ""
}

// IsAlternateScreen reports whether the alternate screen is active.
func (t *Terminal) IsAlternateScreen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.useAlt
}

// ScrollRegion returns the active screen's vertical scroll margin, 0-based
// inclusive.
func (t *Terminal) ScrollRegion() (top, bottom int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	m := t.Screen().Margin
	return m.Top, m.Bottom
}

// ScrollbackLen returns the number of lines retained in the primary
// screen's scrollback.
func (t *Terminal) ScrollbackLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primary.Grid.ScrollbackLen()
}

// ScrollbackLine returns the cells of scrollback line index (0 oldest).
func (t *Terminal) ScrollbackLine(index int) []Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollback.Line(index)
}

// ClearScrollback discards all retained history on the primary screen.
func (t *Terminal) ClearScrollback() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.primary.Grid.ClearHistory()
}

// SetMaxScrollback rebounds the primary screen's scrollback retention.
func (t *Terminal) SetMaxScrollback(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.primary.Grid.SetMaxHistoryLineCount(FiniteHistory(n))
}

// LineText renders row's visible text, trailing blanks trimmed. Negative
// rows address scrollback; out-of-range rows return "".
func (t *Terminal) LineText(row int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	l := t.Screen().Grid.Line(row)
	if l == nil {
		return ""
	}
	return l.String()
}

// String renders every row of the active screen's main page as plain text,
// newline-joined.
func (t *Terminal) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	g := t.Screen().Grid
	out := ""
	for i := 0; i < g.Lines(); i++ {
		if i > 0 {
			out += "\n"
		}
		out += g.Line(i).String()
	}
	return out
}

// HasDirty reports whether any cell changed since the last ClearDirty call.
func (t *Terminal) HasDirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Grid.HasDirty()
}

// DirtyCells returns every dirty cell position on the active screen.
func (t *Terminal) DirtyCells() []Position {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Grid.DirtyCells()
}

// ClearDirty resets dirty tracking on the active screen.
func (t *Terminal) ClearDirty() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Screen().Grid.ClearAllDirty()
}

// RecordingData returns the raw bytes captured by the installed
// RecordingProvider.
func (t *Terminal) RecordingData() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.recording.Data()
}

// ClearRecording discards captured recording data.
func (t *Terminal) ClearRecording() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recording.Clear()
}

// Image returns the stored image data for id on the active screen.
func (t *Terminal) Image(id uint32) *Image {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Images.Image(id)
}

// ImagePlacements returns every active image placement on the active screen.
func (t *Terminal) ImagePlacements() []*ImagePlacement {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Images.Placements()
}

// ImageCount returns the number of distinct images stored on the active screen.
func (t *Terminal) ImageCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Images.ImageCount()
}

// ImageUsedMemory returns the active screen's image memory usage in bytes.
func (t *Terminal) ImageUsedMemory() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Images.UsedMemory()
}

// SetImageMaxMemory bounds the active screen's image memory budget.
func (t *Terminal) SetImageMaxMemory(bytes int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Screen().Images.SetBudget(bytes)
}

// ClearImages discards every stored image and placement on the active screen.
func (t *Terminal) ClearImages() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Screen().Images.Clear()
}

// HasMode reports whether an ANSI mode is currently enabled on the active screen.
func (t *Terminal) HasMode(mode AnsiMode) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Modes.Ansi(mode)
}

// HasDECMode reports whether a DEC private mode is currently enabled on the
// active screen.
func (t *Terminal) HasDECMode(mode DECMode) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Modes.DEC(mode)
}

// Hyperlink resolves a cell's HyperlinkID against the active screen's
// registry, or nil for 0/unknown ids.
func (t *Terminal) Hyperlink(id HyperlinkID) *Hyperlink {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Links.Lookup(id)
}

// PromptMarks returns every OSC 133 semantic prompt mark recorded on the
// active screen, oldest first.
func (t *Terminal) PromptMarks() []PromptMark {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Prompts().Marks()
}

// WorkingDirectory returns the shell's most recently reported cwd (OSC 7).
func (t *Terminal) WorkingDirectory() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().WorkingDirectory()
}

// InputGenerator returns the Terminal's key/mouse/paste encoder, configured
// against the active screen's mode state via EncodeKey/EncodeMouse/etc.
func (t *Terminal) InputGenerator() *InputGenerator { return t.input }

// Modes returns the active screen's mode state, for callers encoding input
// that depends on cursor-key/keypad/mouse-protocol state.
func (t *Terminal) Modes() *ModeState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Screen().Modes
}
