package vtcore

// CursorStyle determines how the cursor is rendered (DECSCUSR codes 0-6).
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// Charset selects the character encoding variant designated into a G0-G3 slot.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetLineDrawing
	CharsetUK
	CharsetDutch
	CharsetFinnish
	CharsetFrench
	CharsetFrenchCanadian
	CharsetGerman
	CharsetItalian
	CharsetNorwegianDanish
	CharsetSpanish
	CharsetSwedish
	CharsetSwiss
)

// CharsetIndex selects one of the four character set slots (G0-G3).
type CharsetIndex int

const (
	CharsetIndexG0 CharsetIndex = iota
	CharsetIndexG1
	CharsetIndexG2
	CharsetIndexG3
)

// Charsets holds the four designated character sets plus which of them is
// currently selected into GL (via SI/SO) and a pending single-shift (SS2/SS3,
// consumed after exactly one character is written).
type Charsets struct {
	G            [4]Charset
	Active       CharsetIndex // GL selection, toggled by SI (G0) / SO (G1)
	SingleShift  CharsetIndex // SS2/SS3 target, meaningful only while singleShiftOn is set
	singleShiftOn bool
}

// NewCharsets returns all four slots designated to ASCII with G0 selected.
func NewCharsets() Charsets {
	return Charsets{Active: CharsetIndexG0}
}

// Designate assigns a charset to one of the four G-slots.
func (c *Charsets) Designate(index CharsetIndex, cs Charset) {
	c.G[index] = cs
}

// SingleShiftSelect arms a one-character single shift to index (SS2 -> G2,
// SS3 -> G3). The shift is consumed by the next call to Resolve.
func (c *Charsets) SingleShiftSelect(index CharsetIndex) {
	c.SingleShift = index
	c.singleShiftOn = true
}

// Resolve returns the charset that applies to the next character, consuming
// any pending single shift.
func (c *Charsets) Resolve() Charset {
	if c.singleShiftOn {
		c.singleShiftOn = false
		return c.G[c.SingleShift]
	}
	return c.G[c.Active]
}

// Cursor tracks position, pen attributes, mode flags, and charset state.
// Position is 0-based, relative to the main page (not history).
type Cursor struct {
	Line   int
	Column int

	Style   CursorStyle
	Visible bool

	// WrapPending is set when the last write advanced the cursor exactly to
	// the right margin; the next printable character triggers CR+LF first.
	WrapPending bool
	AutoWrap    bool
	OriginMode  bool

	Attrs     GraphicsAttributes
	Charsets  Charsets
	Hyperlink HyperlinkID
}

// NewCursor returns a cursor at (0,0), visible, auto-wrap on, origin mode off.
func NewCursor() *Cursor {
	return &Cursor{
		Style:    CursorStyleBlinkingBlock,
		Visible:  true,
		AutoWrap: true,
		Charsets: NewCharsets(),
	}
}

// Row and Col are 0-based aliases for callers used to (row, col) naming;
// Line/Column are the primary field names.
func (c *Cursor) Row() int { return c.Line }
func (c *Cursor) Col() int { return c.Column }

// SavedCursor is a DECSC/ANSISYSSC snapshot, restored by DECRC/ANSISYSRC.
// Each screen (primary, alternate) holds its own.
type SavedCursor struct {
	Line, Column int
	Attrs        GraphicsAttributes
	Charsets     Charsets
	AutoWrap     bool
	OriginMode   bool
	WrapPending  bool
	Hyperlink    HyperlinkID
}

// Save captures the cursor's restorable state.
func (c *Cursor) Save() SavedCursor {
	return SavedCursor{
		Line:        c.Line,
		Column:      c.Column,
		Attrs:       c.Attrs,
		Charsets:    c.Charsets,
		AutoWrap:    c.AutoWrap,
		OriginMode:  c.OriginMode,
		WrapPending: c.WrapPending,
		Hyperlink:   c.Hyperlink,
	}
}

// Restore applies a saved snapshot, clamping position to [0,lines)x[0,cols).
func (c *Cursor) Restore(s SavedCursor, lines, cols int) {
	c.Line = clamp(s.Line, 0, lines-1)
	c.Column = clamp(s.Column, 0, cols-1)
	c.Attrs = s.Attrs
	c.Charsets = s.Charsets
	c.AutoWrap = s.AutoWrap
	c.OriginMode = s.OriginMode
	c.WrapPending = s.WrapPending && s.AutoWrap
	c.Hyperlink = s.Hyperlink
}
