package vtcore

import (
	"fmt"

	"github.com/rivo/uniseg"
)

// Screen is the grid and cursor model for one buffer (primary or
// alternate): it owns the Grid, Cursor, saved cursor, margins, tab stops,
// mode flags, hyperlink registry, and image registry, and performs the
// semantic effect of every dispatched control function.
type Screen struct {
	Grid    *Grid
	Cursor  *Cursor
	Saved   SavedCursor
	Margin  Margin
	Tabs    *TabStops
	Modes   *ModeState
	Links   *HyperlinkRegistry
	Images  *ImageRegistry

	reverseVideo bool

	reply ResponseProvider
	log   LogProvider
	size  SizeProvider

	onTitle       TitleProvider
	onBell        BellProvider
	onClipboard   ClipboardProvider
	onPrompt      *PromptTracker
	onShellInteg  ShellIntegrationProvider

	workingDir string
}

// NewScreen allocates a Screen of the given size with full-page margins,
// default tab stops, and noop collaborators; callers wire real providers
// through the Terminal that owns this Screen.
func NewScreen(lines, cols int, scrollback ScrollbackProvider, history HistoryLimit) *Screen {
	return &Screen{
		Grid:         NewGridWithStorage(lines, cols, scrollback, history),
		Cursor:       NewCursor(),
		Margin:       NewMargin(lines, cols),
		Tabs:         NewTabStops(cols),
		Modes:        NewModeState(),
		Links:        NewHyperlinkRegistry(),
		Images:       NewImageRegistry(),
		reply:        NoopResponse{},
		log:          NoopLog{},
		size:         NoopSizeProvider{},
		onTitle:      NoopTitle{},
		onBell:       NoopBell{},
		onClipboard:  NoopClipboard{},
		onPrompt:     &PromptTracker{},
		onShellInteg: NoopShellIntegration{},
	}
}

func (s *Screen) lines() int { return s.Grid.Lines() }
func (s *Screen) cols() int  { return s.Grid.Cols() }

// --- Cursor motion -----------------------------------------------------

func (s *Screen) clampCursor() {
	s.Cursor.Line = clamp(s.Cursor.Line, 0, s.lines()-1)
	s.Cursor.Column = clamp(s.Cursor.Column, 0, s.cols()-1)
}

// boundsTop/boundsBottom/boundsLeft/boundsRight resolve the cursor's
// addressable bounds, honoring origin mode.
func (s *Screen) boundsTop() int {
	if s.Cursor.OriginMode {
		return s.Margin.Top
	}
	return 0
}
func (s *Screen) boundsBottom() int {
	if s.Cursor.OriginMode {
		return s.Margin.Bottom
	}
	return s.lines() - 1
}
func (s *Screen) boundsLeft() int {
	if s.Cursor.OriginMode {
		return s.Margin.EffectiveLeft()
	}
	return 0
}
func (s *Screen) boundsRight() int {
	if s.Cursor.OriginMode {
		return s.Margin.EffectiveRight(s.cols())
	}
	return s.cols() - 1
}

// MoveCursorTo implements CUP/HVP: absolute positioning, origin-mode aware.
func (s *Screen) MoveCursorTo(line, col int) {
	top, left := 0, 0
	if s.Cursor.OriginMode {
		top, left = s.Margin.Top, s.Margin.EffectiveLeft()
	}
	s.Cursor.Line = clamp(top+line, s.boundsTop(), s.boundsBottom())
	s.Cursor.Column = clamp(left+col, s.boundsLeft(), s.boundsRight())
	s.Cursor.WrapPending = false
}

func (s *Screen) CursorUp(n int)    { s.Cursor.Line = clamp(s.Cursor.Line-n, s.boundsTop(), s.boundsBottom()); s.Cursor.WrapPending = false }
func (s *Screen) CursorDown(n int)  { s.Cursor.Line = clamp(s.Cursor.Line+n, s.boundsTop(), s.boundsBottom()); s.Cursor.WrapPending = false }
func (s *Screen) CursorForward(n int) {
	s.Cursor.Column = clamp(s.Cursor.Column+n, s.boundsLeft(), s.boundsRight())
	s.Cursor.WrapPending = false
}
func (s *Screen) CursorBackward(n int) {
	s.Cursor.Column = clamp(s.Cursor.Column-n, s.boundsLeft(), s.boundsRight())
	s.Cursor.WrapPending = false
}
func (s *Screen) CursorNextLine(n int) { s.CursorDown(n); s.Cursor.Column = s.boundsLeft() }
func (s *Screen) CursorPrevLine(n int) { s.CursorUp(n); s.Cursor.Column = s.boundsLeft() }
func (s *Screen) CursorHorizontalAbsolute(col int) {
	s.Cursor.Column = clamp(s.boundsLeft()+col, s.boundsLeft(), s.boundsRight())
	s.Cursor.WrapPending = false
}
func (s *Screen) CursorVerticalAbsolute(line int) {
	s.Cursor.Line = clamp(s.boundsTop()+line, s.boundsTop(), s.boundsBottom())
	s.Cursor.WrapPending = false
}

// --- Write path ----------------------------------------------------------

func (s *Screen) currentLine() *Line { return s.Grid.rows[s.Cursor.Line] }

// lastWrittenColumn returns the column of the cell the last writeOne filled,
// or ok=false when the cursor sits at the left bound with nothing before it.
// With a wrap pending the cursor has not moved past the final column yet, so
// that final cell is the one combining marks must reach.
func (s *Screen) lastWrittenColumn() (int, bool) {
	if s.Cursor.WrapPending {
		return s.Cursor.Column, true
	}
	if s.Cursor.Column > s.boundsLeft() {
		return s.Cursor.Column - 1, true
	}
	return 0, false
}

// WriteText writes decoded codepoints starting at the cursor. Plain ASCII
// runs landing contiguously on a still-trivial line take the append fast
// path; everything else (wide chars, combining marks, charset shifts,
// insert mode, narrowed margins) routes through writeOne.
func (s *Screen) WriteText(codepoints []rune) {
	if s.tryTrivialAppend(codepoints) {
		return
	}
	for _, cp := range codepoints {
		s.writeOne(cp)
	}
}

// tryTrivialAppend is the hot path for cat-like output: printable ASCII,
// full-width margins, USASCII in GL, no pending wrap or single shift, and
// the text extends the current trivial line exactly at its tail.
func (s *Screen) tryTrivialAppend(codepoints []rune) bool {
	if len(codepoints) == 0 {
		return true
	}
	if s.Cursor.WrapPending || s.Cursor.Hyperlink != 0 || s.Modes.Ansi(AnsiModeInsertReplace) {
		return false
	}
	if !s.Margin.HorizontalFull(s.cols()) {
		return false
	}
	cs := &s.Cursor.Charsets
	if cs.singleShiftOn || cs.G[cs.Active] != CharsetASCII {
		return false
	}
	for _, cp := range codepoints {
		if cp < 0x20 || cp > 0x7E {
			return false
		}
	}
	l := s.currentLine()
	if !l.IsTrivial() || l.used != s.Cursor.Column {
		return false
	}
	if s.Cursor.Column+len(codepoints) > s.cols() {
		return false
	}
	if !l.AppendTrivial(string(codepoints), s.Cursor.Attrs, 0) {
		return false
	}
	s.Grid.hasDirty = true
	s.Cursor.Column += len(codepoints)
	if s.Cursor.Column > s.boundsRight() {
		s.Cursor.Column = s.boundsRight()
		if s.Cursor.AutoWrap {
			s.Cursor.WrapPending = true
		}
	}
	return true
}

// wrapToNextLine performs the deferred CR+LF a pending wrap owes: the current
// line is marked Wrappable, the next line Wrapped, so the pair reads as one
// logical line. Scrolls the region when the cursor sits on the bottom margin.
func (s *Screen) wrapToNextLine() {
	s.currentLine().SetFlag(LineWrappable)
	s.Cursor.Column = s.boundsLeft()
	if s.Cursor.Line == s.Margin.Bottom {
		s.ScrollUp(1)
	} else if s.Cursor.Line < s.lines()-1 {
		s.Cursor.Line++
	}
	s.currentLine().SetFlag(LineWrapped)
	s.Cursor.WrapPending = false
}

// graphemeContinues reports whether cp extends the grapheme cluster already
// held by prev rather than starting a fresh user-perceived character.
func graphemeContinues(prev Cell, cp rune) bool {
	if prev.Char == 0 || prev.Char == ' ' {
		return false
	}
	return uniseg.GraphemeClusterCount(string(prev.Codepoints())+string(cp)) == 1
}

func (s *Screen) writeOne(cp rune) {
	cp = s.translateCharset(cp)
	w := runeWidth(cp)

	// Grapheme continuation: zero-width marks, and codepoints uniseg says do
	// not break from the previous cell's cluster (ZWJ emoji, variation
	// selectors), fold onto the most recently written cell.
	if lastCol, ok := s.lastWrittenColumn(); ok && (w == 0 || cp >= 0x80) {
		c := s.currentLine().Cell(lastCol)
		if c.IsWideSpacer() && lastCol > 0 {
			lastCol--
			c = s.currentLine().Cell(lastCol)
		}
		if w == 0 || graphemeContinues(c, cp) {
			c.Append(cp)
			s.currentLine().SetCell(lastCol, c)
			return
		}
	}
	if w < 1 {
		w = 1
	}

	if s.Cursor.WrapPending && s.Cursor.AutoWrap {
		s.wrapToNextLine()
	}

	col := s.Cursor.Column
	if col == s.boundsRight() && w == 2 && s.Cursor.AutoWrap {
		// Not enough room for a wide char on the last column: wrap first.
		s.wrapToNextLine()
		col = s.Cursor.Column
	}

	if s.Modes.Ansi(AnsiModeInsertReplace) {
		s.Grid.InsertBlanks(s.Cursor.Line, col, w, s.boundsRight(), s.Cursor.Attrs)
	}

	cur := s.currentLine().Cell(col)
	if cur.IsWideSpacer() && col > 0 {
		blank := Cell{Char: ' ', Width: 1, Attrs: s.Cursor.Attrs}
		s.currentLine().SetCell(col-1, blank)
	}

	link := s.Cursor.Hyperlink
	s.Links.Retain(link)
	old := s.currentLine().Cell(col)
	s.Links.Release(old.Hyperlink)
	newCell := Cell{}
	newCell.Write(s.Cursor.Attrs, cp, int8(w), link)
	s.currentLine().SetCell(col, newCell)

	if w == 2 && col+1 <= s.boundsRight() {
		cont := Cell{}
		cont.MarkContinuation()
		cont.Attrs = s.Cursor.Attrs
		s.currentLine().SetCell(col+1, cont)
	}

	s.Cursor.Column += w
	if s.Cursor.Column > s.boundsRight() {
		s.Cursor.Column = s.boundsRight()
		if s.Cursor.AutoWrap {
			s.Cursor.WrapPending = true
		}
	}
}

func (s *Screen) translateCharset(cp rune) rune {
	if cp >= 0x60 && cp <= 0x7E {
		switch s.Cursor.Charsets.Resolve() {
		case CharsetLineDrawing:
			if r, ok := decSpecialGraphics[cp]; ok {
				return r
			}
		}
	}
	return cp
}

// --- Erase -----------------------------------------------------------

// EraseInDisplay implements ED: 0 to-EOS, 1 to-BOS, 2 whole screen, 3
// clears history only and leaves the page as it is.
func (s *Screen) EraseInDisplay(mode int, protectedAware bool) {
	switch mode {
	case 0:
		s.eraseLineRange(s.Cursor.Line, s.Cursor.Column, s.cols(), protectedAware)
		for r := s.Cursor.Line + 1; r < s.lines(); r++ {
			s.eraseLineRange(r, 0, s.cols(), protectedAware)
		}
	case 1:
		for r := 0; r < s.Cursor.Line; r++ {
			s.eraseLineRange(r, 0, s.cols(), protectedAware)
		}
		s.eraseLineRange(s.Cursor.Line, 0, s.Cursor.Column+1, protectedAware)
	case 2:
		for r := 0; r < s.lines(); r++ {
			s.eraseLineRange(r, 0, s.cols(), protectedAware)
		}
	case 3:
		s.Grid.ClearHistory()
	}
}

// EraseInLine implements EL: 0 to-EOL, 1 to-BOL, 2 whole line.
func (s *Screen) EraseInLine(mode int, protectedAware bool) {
	switch mode {
	case 0:
		s.eraseLineRange(s.Cursor.Line, s.Cursor.Column, s.cols(), protectedAware)
	case 1:
		s.eraseLineRange(s.Cursor.Line, 0, s.Cursor.Column+1, protectedAware)
	case 2:
		s.eraseLineRange(s.Cursor.Line, 0, s.cols(), protectedAware)
	}
}

func (s *Screen) eraseLineRange(row, from, to int, protectedAware bool) {
	if row < 0 || row >= s.lines() {
		return
	}
	if !protectedAware {
		s.Grid.ClearRowRange(row, from, to, s.Cursor.Attrs)
		return
	}
	l := s.Grid.rows[row]
	for c := from; c < to && c < s.cols(); c++ {
		cell := l.Cell(c)
		if cell.IsProtected() {
			continue
		}
		l.SetCell(c, Cell{Char: ' ', Width: 1, Attrs: s.Cursor.Attrs})
	}
}

// EraseRectangle implements DECERA: blank a rectangle unconditionally.
func (s *Screen) EraseRectangle(top, left, bottom, right int) {
	s.rectFill(top, left, bottom, right, ' ', s.Cursor.Attrs, false)
}

// FillRectangle implements DECFRA: fill a rectangle with a given character.
func (s *Screen) FillRectangle(top, left, bottom, right int, ch rune) {
	s.rectFill(top, left, bottom, right, ch, s.Cursor.Attrs, false)
}

// SelectiveEraseRectangle implements DECSERA: like EraseRectangle but skips
// CharacterProtected cells.
func (s *Screen) SelectiveEraseRectangle(top, left, bottom, right int) {
	s.rectFill(top, left, bottom, right, ' ', s.Cursor.Attrs, true)
}

func (s *Screen) rectFill(top, left, bottom, right int, ch rune, attrs GraphicsAttributes, protectedAware bool) {
	top, bottom = clamp(top, 0, s.lines()-1), clamp(bottom, 0, s.lines()-1)
	left, right = clamp(left, 0, s.cols()-1), clamp(right, 0, s.cols()-1)
	for r := top; r <= bottom; r++ {
		l := s.Grid.rows[r]
		for c := left; c <= right; c++ {
			cell := l.Cell(c)
			if protectedAware && cell.IsProtected() {
				continue
			}
			l.SetCell(c, Cell{Char: ch, Width: 1, Attrs: attrs})
		}
	}
}

// CopyRectangle implements DECCRA: copies a rectangle, choosing the
// iteration direction so overlapping source/destination regions are copied
// correctly (top-down vs bottom-up, left-to-right vs right-to-left).
func (s *Screen) CopyRectangle(srcTop, srcLeft, srcBottom, srcRight, dstTop, dstLeft int) {
	h := srcBottom - srcTop + 1
	w := srcRight - srcLeft + 1
	if h <= 0 || w <= 0 {
		return
	}

	rowOrder := make([]int, h)
	for i := range rowOrder {
		rowOrder[i] = i
	}
	if dstTop > srcTop {
		for i, j := 0, len(rowOrder)-1; i < j; i, j = i+1, j-1 {
			rowOrder[i], rowOrder[j] = rowOrder[j], rowOrder[i]
		}
	}
	colOrder := make([]int, w)
	for i := range colOrder {
		colOrder[i] = i
	}
	if dstLeft > srcLeft {
		for i, j := 0, len(colOrder)-1; i < j; i, j = i+1, j-1 {
			colOrder[i], colOrder[j] = colOrder[j], colOrder[i]
		}
	}

	for _, dr := range rowOrder {
		sr, tr := srcTop+dr, dstTop+dr
		if sr < 0 || sr >= s.lines() || tr < 0 || tr >= s.lines() {
			continue
		}
		for _, dc := range colOrder {
			sc, tc := srcLeft+dc, dstLeft+dc
			if sc < 0 || sc >= s.cols() || tc < 0 || tc >= s.cols() {
				continue
			}
			s.Grid.rows[tr].SetCell(tc, s.Grid.rows[sr].Cell(sc))
		}
	}
}

// ChangeRectangleAttributes implements DECCARA: apply an SGR-like attribute
// change to every cell in a rectangle without touching its character.
func (s *Screen) ChangeRectangleAttributes(top, left, bottom, right int, apply func(GraphicsAttributes) GraphicsAttributes) {
	top, bottom = clamp(top, 0, s.lines()-1), clamp(bottom, 0, s.lines()-1)
	left, right = clamp(left, 0, s.cols()-1), clamp(right, 0, s.cols()-1)
	for r := top; r <= bottom; r++ {
		l := s.Grid.rows[r]
		for c := left; c <= right; c++ {
			cell := l.Cell(c)
			cell.Attrs = apply(cell.Attrs)
			l.SetCell(c, cell)
		}
	}
}

// InsertChars implements ICH.
func (s *Screen) InsertChars(n int) {
	s.Grid.InsertBlanks(s.Cursor.Line, s.Cursor.Column, n, s.boundsRight(), s.Cursor.Attrs)
}

// DeleteChars implements DCH.
func (s *Screen) DeleteChars(n int) {
	s.Grid.DeleteChars(s.Cursor.Line, s.Cursor.Column, n, s.boundsRight(), s.Cursor.Attrs)
}

// EraseChars implements ECH: blank n cells starting at the cursor without
// shifting anything.
func (s *Screen) EraseChars(n int) {
	right := s.Cursor.Column + n
	if right > s.cols() {
		right = s.cols()
	}
	s.Grid.ClearRowRange(s.Cursor.Line, s.Cursor.Column, right, s.Cursor.Attrs)
}

// InsertLines implements IL.
func (s *Screen) InsertLines(n int) {
	if !s.Margin.ContainsLine(s.Cursor.Line) {
		return
	}
	s.Grid.InsertLines(s.Cursor.Line, n, s.Margin.Bottom+1, s.Cursor.Attrs)
	s.Cursor.Column = s.boundsLeft()
}

// DeleteLines implements DL.
func (s *Screen) DeleteLines(n int) {
	if !s.Margin.ContainsLine(s.Cursor.Line) {
		return
	}
	s.Grid.DeleteLines(s.Cursor.Line, n, s.Margin.Bottom+1, s.Cursor.Attrs)
	s.Cursor.Column = s.boundsLeft()
}

// --- Scrolling & linefeed ------------------------------------------------

// ScrollUp scrolls the margin region up by n (SU). With full-width margins
// the grid rotates whole lines (feeding history when the region starts at
// the page top); with a narrowed horizontal margin only the box's columns
// move.
func (s *Screen) ScrollUp(n int) {
	if s.Margin.HorizontalFull(s.cols()) {
		s.Grid.ScrollUp(s.Margin.Top, s.Margin.Bottom+1, n, s.Cursor.Attrs)
		return
	}
	s.scrollRegionVertical(n, true)
}

// ScrollDown scrolls the margin region down by n (SD); history is never
// touched.
func (s *Screen) ScrollDown(n int) {
	if s.Margin.HorizontalFull(s.cols()) {
		s.Grid.ScrollDown(s.Margin.Top, s.Margin.Bottom+1, n, s.Cursor.Attrs)
		return
	}
	s.scrollRegionVertical(n, false)
}

// scrollRegionVertical shifts the rows of the margin box up or down by n,
// touching only columns inside the horizontal margin.
func (s *Screen) scrollRegionVertical(n int, up bool) {
	top, bottom := s.Margin.Top, s.Margin.Bottom
	left, right := s.Margin.EffectiveLeft(), s.Margin.EffectiveRight(s.cols())
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	blank := Cell{Char: ' ', Width: 1, Attrs: s.Cursor.Attrs}
	blankBox := func(l *Line) {
		for c := left; c <= right; c++ {
			l.cells[c] = blank
		}
	}
	if up {
		for r := top; r <= bottom; r++ {
			dst := s.Grid.rows[r]
			dst.inflate()
			if r+n <= bottom {
				src := s.Grid.rows[r+n]
				src.inflate()
				copy(dst.cells[left:right+1], src.cells[left:right+1])
			} else {
				blankBox(dst)
			}
		}
	} else {
		for r := bottom; r >= top; r-- {
			dst := s.Grid.rows[r]
			dst.inflate()
			if r-n >= top {
				src := s.Grid.rows[r-n]
				src.inflate()
				copy(dst.cells[left:right+1], src.cells[left:right+1])
			} else {
				blankBox(dst)
			}
		}
	}
	s.Grid.hasDirty = true
}

// panHorizontal shifts only the columns inside the horizontal margin left
// or right, leaving the rest of each line untouched (DECBI/DECFI and
// SL/SR panning).
func (s *Screen) panHorizontal(n int, up bool) {
	left, right := s.Margin.EffectiveLeft(), s.Margin.EffectiveRight(s.cols())
	for row := s.Margin.Top; row <= s.Margin.Bottom; row++ {
		l := s.Grid.rows[row]
		l.inflate()
		width := right - left + 1
		if n >= width {
			for c := left; c <= right; c++ {
				l.cells[c] = Cell{Char: ' ', Width: 1, Attrs: s.Cursor.Attrs}
			}
			continue
		}
		if up {
			copy(l.cells[left:right+1-n], l.cells[left+n:right+1])
			for c := right - n + 1; c <= right; c++ {
				l.cells[c] = Cell{Char: ' ', Width: 1, Attrs: s.Cursor.Attrs}
			}
		} else {
			for c := right; c >= left+n; c-- {
				l.cells[c] = l.cells[c-n]
			}
			for c := left; c < left+n; c++ {
				l.cells[c] = Cell{Char: ' ', Width: 1, Attrs: s.Cursor.Attrs}
			}
		}
	}
}

// ScrollLeft pans the margin region's content left by n (DECFI at the
// right edge).
func (s *Screen) ScrollLeft(n int) { s.panHorizontal(n, true) }

// ScrollRight pans the margin region's content right by n (DECBI at the
// left edge).
func (s *Screen) ScrollRight(n int) { s.panHorizontal(n, false) }

// LineFeed implements LF: scroll at the bottom margin, otherwise advance.
// newLineMode mirrors AnsiMode LNM: also return to the left margin.
func (s *Screen) LineFeed(newLineMode bool) {
	if s.Cursor.Line == s.Margin.Bottom {
		s.ScrollUp(1)
	} else if s.Cursor.Line < s.lines()-1 {
		s.Cursor.Line++
	}
	if newLineMode {
		s.Cursor.Column = s.boundsLeft()
	}
	s.Cursor.WrapPending = false
}

// Index implements IND: like LineFeed but never touches the column.
func (s *Screen) Index() { s.LineFeed(false) }

// ReverseIndex implements RI: move up, scrolling down at the top margin.
func (s *Screen) ReverseIndex() {
	if s.Cursor.Line == s.Margin.Top {
		s.ScrollDown(1)
	} else if s.Cursor.Line > 0 {
		s.Cursor.Line--
	}
	s.Cursor.WrapPending = false
}

// NextLine implements NEL: CR + LF.
func (s *Screen) NextLine() {
	s.Cursor.Column = s.boundsLeft()
	s.LineFeed(false)
}

// --- Margins -----------------------------------------------------------

// SetTopBottomMargin implements DECSTBM.
func (s *Screen) SetTopBottomMargin(top, bottom int) Status {
	if !s.Margin.SetVertical(top, bottom, s.lines()) {
		return StatusInvalid
	}
	s.MoveCursorTo(0, 0)
	return StatusOk
}

// SetLeftRightMargin implements DECSLRM. Returns Invalid (a
// ProtocolViolation) if LeftRightMargin mode is not enabled.
func (s *Screen) SetLeftRightMargin(left, right int) Status {
	if !s.Modes.DEC(DECModeLeftRightMargin) {
		logDiagnostic(s.log, ProtocolViolationKind, "DECSLRM without LeftRightMargin mode")
		return StatusInvalid
	}
	if !s.Margin.SetHorizontal(left, right, s.cols()) {
		return StatusInvalid
	}
	s.MoveCursorTo(0, 0)
	return StatusOk
}

// --- Tabs ----------------------------------------------------------------

func (s *Screen) HorizontalTabSet()   { s.Tabs.Set(s.Cursor.Column) }
func (s *Screen) ClearTabAtCursor()   { s.Tabs.Clear(s.Cursor.Column) }
func (s *Screen) ClearAllTabs()       { s.Tabs.ClearAll() }
func (s *Screen) MoveToNextTab(n int) { s.Cursor.Column = clamp(s.Tabs.NextN(s.Cursor.Column, n), s.boundsLeft(), s.boundsRight()) }
func (s *Screen) MoveToPrevTab(n int) { s.Cursor.Column = clamp(s.Tabs.PrevN(s.Cursor.Column, n), s.boundsLeft(), s.boundsRight()) }

// --- Save/restore --------------------------------------------------------

func (s *Screen) SaveCursor()    { s.Saved = s.Cursor.Save() }
func (s *Screen) RestoreCursor() { s.Cursor.Restore(s.Saved, s.lines(), s.cols()); s.clampCursor() }

// --- Hyperlinks ------------------------------------------------------

// SetHyperlink implements OSC 8: a non-empty uri sets the cursor's active
// hyperlink (interning or reusing an id); an empty uri clears it.
func (s *Screen) SetHyperlink(userID, uri string) {
	s.Links.Release(s.Cursor.Hyperlink)
	if uri == "" {
		s.Cursor.Hyperlink = 0
		return
	}
	s.Cursor.Hyperlink = s.Links.Intern(userID, uri)
	s.Links.Retain(s.Cursor.Hyperlink)
}

// --- SGR -----------------------------------------------------------------

// ApplySGR iterates SGR parameters (already split into sub-parameter-aware
// Params), applying them to the cursor's pen.
func (s *Screen) ApplySGR(params []Param) {
	if len(params) == 0 {
		s.Cursor.Attrs = GraphicsAttributes{}
		return
	}
	for i := 0; i < len(params); i++ {
		p := params[i].First(0)
		switch {
		case p == 0:
			s.Cursor.Attrs = GraphicsAttributes{}
		case p == 1:
			s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagBold)
		case p == 2:
			s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagFaint)
		case p == 3:
			s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagItalic)
		case p == 4:
			s.applyUnderlineStyle(params[i])
		case p == 5:
			s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagBlinking)
		case p == 6:
			s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagRapidBlinking)
		case p == 7:
			s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagInverse)
		case p == 8:
			s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagHidden)
		case p == 9:
			s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagCrossedOut)
		case p == 21:
			s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagDoublyUnderlined)
		case p == 22:
			s.Cursor.Attrs = s.Cursor.Attrs.WithoutFlag(CellFlagBold).WithoutFlag(CellFlagFaint)
		case p == 23:
			s.Cursor.Attrs = s.Cursor.Attrs.WithoutFlag(CellFlagItalic)
		case p == 24:
			s.Cursor.Attrs = s.Cursor.Attrs.WithoutFlag(CellFlagUnderline).WithoutFlag(CellFlagDoublyUnderlined).
				WithoutFlag(CellFlagCurlyUnderline).WithoutFlag(CellFlagDottedUnderline).WithoutFlag(CellFlagDashedUnderline)
		case p == 25:
			s.Cursor.Attrs = s.Cursor.Attrs.WithoutFlag(CellFlagBlinking).WithoutFlag(CellFlagRapidBlinking)
		case p == 27:
			s.Cursor.Attrs = s.Cursor.Attrs.WithoutFlag(CellFlagInverse)
		case p == 28:
			s.Cursor.Attrs = s.Cursor.Attrs.WithoutFlag(CellFlagHidden)
		case p == 29:
			s.Cursor.Attrs = s.Cursor.Attrs.WithoutFlag(CellFlagCrossedOut)
		case p == 53:
			s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagOverline)
		case p == 55:
			s.Cursor.Attrs = s.Cursor.Attrs.WithoutFlag(CellFlagOverline)
		case p >= 30 && p <= 37:
			s.Cursor.Attrs.Foreground = IndexedColor(uint8(p - 30))
		case p == 38:
			i = s.applyExtendedColor(params, i, true)
		case p == 39:
			s.Cursor.Attrs.Foreground = DefaultColor
		case p >= 40 && p <= 47:
			s.Cursor.Attrs.Background = IndexedColor(uint8(p - 40))
		case p == 48:
			i = s.applyExtendedColor(params, i, false)
		case p == 49:
			s.Cursor.Attrs.Background = DefaultColor
		case p == 58:
			i = s.applyExtendedUnderlineColor(params, i)
		case p == 59:
			s.Cursor.Attrs.UnderlineColor = DefaultColor
		case p >= 90 && p <= 97:
			s.Cursor.Attrs.Foreground = BrightColorOf(uint8(p - 90))
		case p >= 100 && p <= 107:
			s.Cursor.Attrs.Background = BrightColorOf(uint8(p - 100))
		}
	}
}

func (s *Screen) applyUnderlineStyle(p Param) {
	style := p.Get(1, 1)
	s.Cursor.Attrs = s.Cursor.Attrs.WithoutFlag(CellFlagDoublyUnderlined).WithoutFlag(CellFlagCurlyUnderline).
		WithoutFlag(CellFlagDottedUnderline).WithoutFlag(CellFlagDashedUnderline).WithoutFlag(CellFlagUnderline)
	switch style {
	case 0:
	case 1:
		s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagUnderline)
	case 2:
		s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagDoublyUnderlined)
	case 3:
		s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagCurlyUnderline)
	case 4:
		s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagDottedUnderline)
	case 5:
		s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagDashedUnderline)
	}
}

// applyExtendedColor consumes the 38/48 sub-sequence (colon or semicolon
// form) and returns the index to resume scanning from.
func (s *Screen) applyExtendedColor(params []Param, i int, fg bool) int {
	cur := params[i]
	if len(cur.Values) >= 2 {
		return s.applyExtendedColorSub(cur.Values, i, fg)
	}
	if i+1 >= len(params) {
		return i
	}
	kind := params[i+1].First(0)
	switch kind {
	case 2:
		if i+4 < len(params) {
			r, g, b := params[i+2].First(0), params[i+3].First(0), params[i+4].First(0)
			col := RGBColor(uint8(r), uint8(g), uint8(b))
			if fg {
				s.Cursor.Attrs.Foreground = col
			} else {
				s.Cursor.Attrs.Background = col
			}
			return i + 4
		}
	case 5:
		if i+2 < len(params) {
			idx := params[i+2].First(0)
			col := IndexedColor(uint8(idx))
			if fg {
				s.Cursor.Attrs.Foreground = col
			} else {
				s.Cursor.Attrs.Background = col
			}
			return i + 2
		}
	}
	return i
}

func (s *Screen) applyExtendedColorSub(values []int, i int, fg bool) int {
	col, ok := colorFromSubParams(values)
	if !ok {
		return i
	}
	if fg {
		s.Cursor.Attrs.Foreground = col
	} else {
		s.Cursor.Attrs.Background = col
	}
	return i
}

// colorFromSubParams decodes a colon-form extended color: 38:2:r:g:b,
// 38:2::r:g:b (empty colorspace id, per ISO 8613-6), or 38:5:n.
func colorFromSubParams(values []int) (Color, bool) {
	switch values[1] {
	case 2:
		if len(values) >= 6 {
			return RGBColor(subU8(values[3]), subU8(values[4]), subU8(values[5])), true
		}
		if len(values) >= 5 {
			return RGBColor(subU8(values[2]), subU8(values[3]), subU8(values[4])), true
		}
	case 5:
		if len(values) >= 3 {
			return IndexedColor(subU8(values[2])), true
		}
	}
	return Color{}, false
}

// subU8 clamps a sub-parameter (which may be noParam) into a color channel.
func subU8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func (s *Screen) applyExtendedUnderlineColor(params []Param, i int) int {
	cur := params[i]
	if len(cur.Values) >= 2 {
		if col, ok := colorFromSubParams(cur.Values); ok {
			s.Cursor.Attrs.UnderlineColor = col
		}
		return i
	}
	if i+1 >= len(params) {
		return i
	}
	switch params[i+1].First(0) {
	case 2:
		if i+4 < len(params) {
			s.Cursor.Attrs.UnderlineColor = RGBColor(uint8(params[i+2].First(0)), uint8(params[i+3].First(0)), uint8(params[i+4].First(0)))
			return i + 4
		}
	case 5:
		if i+2 < len(params) {
			s.Cursor.Attrs.UnderlineColor = IndexedColor(uint8(params[i+2].First(0)))
			return i + 2
		}
	}
	return i
}

// --- Reset ----------------------------------------------------------------

// SoftReset implements DECSTR: resets modes/margins/attributes but keeps
// screen content.
func (s *Screen) SoftReset() {
	s.Cursor = NewCursor()
	s.Margin = NewMargin(s.lines(), s.cols())
	s.Modes.Reset()
}

// FullReset implements RIS: clears the screen and resets everything.
func (s *Screen) FullReset() {
	s.SoftReset()
	s.Tabs.Reset()
	s.Grid.ClearAll(GraphicsAttributes{})
	s.Saved = SavedCursor{}
}

// ScreenAlignmentPattern implements DECALN: fill the page with 'E'.
func (s *Screen) ScreenAlignmentPattern() {
	for _, l := range s.Grid.rows {
		l.FillWith('E', GraphicsAttributes{}, 0)
	}
	s.Margin = NewMargin(s.lines(), s.cols())
	s.Cursor.Line, s.Cursor.Column = 0, 0
}

// CarriageReturn implements CR: return to the left margin without changing
// row.
func (s *Screen) CarriageReturn() {
	s.Cursor.Column = s.boundsLeft()
	s.Cursor.WrapPending = false
}

// SetCharacterProtection implements DECSCA: every cell written after this
// call carries (or stops carrying) CellFlagCharacterProtected, making it
// immune to DECSEL/DECSED/DECSERA until the flag is cleared again.
func (s *Screen) SetCharacterProtection(protect bool) {
	if protect {
		s.Cursor.Attrs = s.Cursor.Attrs.WithFlag(CellFlagCharacterProtected)
	} else {
		s.Cursor.Attrs = s.Cursor.Attrs.WithoutFlag(CellFlagCharacterProtected)
	}
}

// RecordPromptMark implements the OSC 133 semantic-prompt family: it
// converts the cursor's current line into a scrollback-inclusive absolute
// row, appends the mark to the tracker, and notifies the shell integration
// collaborator.
func (s *Screen) RecordPromptMark(kind PromptMarkType, exitCode int) {
	mark := PromptMark{Type: kind, Row: s.Grid.ScrollbackLen() + s.Cursor.Line, ExitCode: exitCode}
	s.onPrompt.Record(mark)
	s.onShellInteg.PromptMarked(mark)
}

// SetWorkingDirectory implements OSC 7: records the shell's reported cwd and
// notifies the shell integration collaborator.
func (s *Screen) SetWorkingDirectory(path string) {
	s.workingDir = path
	s.onShellInteg.WorkingDirectoryChanged(path)
}

// WorkingDirectory returns the most recently reported cwd, or "" if none.
func (s *Screen) WorkingDirectory() string { return s.workingDir }

// Prompts returns the screen's OSC 133 mark tracker.
func (s *Screen) Prompts() *PromptTracker { return s.onPrompt }

// ReverseVideo reports whether DECSCNM (DEC mode 5) currently inverts the
// whole screen.
func (s *Screen) ReverseVideo() bool { return s.reverseVideo }

// --- Reports --------------------------------------------------------------

// ReportSGR renders the cursor's current pen as a DECRQSS "m" reply body.
func (s *Screen) ReportSGR() string {
	a := s.Cursor.Attrs
	parts := []int{0}
	if a.HasFlag(CellFlagBold) {
		parts = append(parts, 1)
	}
	if a.HasFlag(CellFlagFaint) {
		parts = append(parts, 2)
	}
	if a.HasFlag(CellFlagItalic) {
		parts = append(parts, 3)
	}
	if a.HasFlag(CellFlagUnderline) {
		parts = append(parts, 4)
	}
	if a.HasFlag(CellFlagBlinking) {
		parts = append(parts, 5)
	}
	if a.HasFlag(CellFlagInverse) {
		parts = append(parts, 7)
	}
	if a.HasFlag(CellFlagHidden) {
		parts = append(parts, 8)
	}
	if a.HasFlag(CellFlagCrossedOut) {
		parts = append(parts, 9)
	}
	var b []byte
	for i, p := range parts {
		if i > 0 {
			b = append(b, ';')
		}
		b = append(b, []byte(fmt.Sprintf("%d", p))...)
	}
	switch a.Foreground.Kind {
	case ColorIndexed:
		b = append(b, []byte(fmt.Sprintf(";38;5;%d", a.Foreground.Index))...)
	case ColorRGB:
		b = append(b, []byte(fmt.Sprintf(";38;2;%d;%d;%d", a.Foreground.RGBAValue.R, a.Foreground.RGBAValue.G, a.Foreground.RGBAValue.B))...)
	}
	switch a.Background.Kind {
	case ColorIndexed:
		b = append(b, []byte(fmt.Sprintf(";48;5;%d", a.Background.Index))...)
	case ColorRGB:
		b = append(b, []byte(fmt.Sprintf(";48;2;%d;%d;%d", a.Background.RGBAValue.R, a.Background.RGBAValue.G, a.Background.RGBAValue.B))...)
	}
	return string(b) + "m"
}

// ReportCursorStyle renders the DECSCUSR reply body (1-based style code).
func (s *Screen) ReportCursorStyle() string {
	return fmt.Sprintf("%d q", int(s.Cursor.Style)+1)
}

// ReportMargins renders the DECSTBM reply body.
func (s *Screen) ReportMargins() string {
	return fmt.Sprintf("%d;%dr", s.Margin.Top+1, s.Margin.Bottom+1)
}

// ReportCursorPosition implements CPR/DECXCPR.
func (s *Screen) ReportCursorPosition(extended bool) string {
	line, col := s.Cursor.Line+1, s.Cursor.Column+1
	if s.Cursor.OriginMode {
		line -= s.Margin.Top
		col -= s.Margin.EffectiveLeft()
	}
	if extended {
		return csiReply("%d;%d;1R", line, col)
	}
	return csiReply("%d;%dR", line, col)
}

func csiReply(format string, args ...any) string {
	return "\x1b[" + fmt.Sprintf(format, args...)
}

// --- Resize ----------------------------------------------------------------

// Resize grows or shrinks the page, preserving content and clamping the
// cursor and margins.
func (s *Screen) Resize(lines, cols int) {
	pos := Position{Row: s.Cursor.Line, Col: s.Cursor.Column}
	pos = s.Grid.Resize(lines, cols, pos)
	s.Cursor.Line, s.Cursor.Column = pos.Row, pos.Col
	s.Tabs.Resize(cols)
	if s.Margin.Bottom >= lines {
		s.Margin.Bottom = lines - 1
	}
	if s.Margin.Right >= cols {
		s.Margin.Right = cols - 1
	}
}
