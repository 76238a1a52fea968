package vtcore

import (
	"fmt"
	"unicode/utf8"
)

// Key identifies a non-printable key the InputGenerator can encode. Printable
// keys are encoded directly from their rune via EncodeRune instead.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyTab
	KeyEnter
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifiers is a bitmask of held modifier keys, combined the way xterm
// encodes its "Pm" modifier parameter (1 + bitmask, sent only when nonzero).
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
)

func (m Modifiers) param() int { return 1 + int(m) }

// MouseButton identifies which button or wheel direction triggered a mouse
// event.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonNone
	MouseWheelUp
	MouseWheelDown
)

// MouseAction distinguishes press, release, and drag-motion mouse events.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
)

// KeyboardEnhancement is a Kitty keyboard protocol progressive-enhancement
// flag set (CSI > flags u to push, CSI = flags ; mode u to set).
type KeyboardEnhancement uint8

const (
	KittyDisambiguateEscapeCodes KeyboardEnhancement = 1 << iota
	KittyReportEventTypes
	KittyReportAlternateKeys
	KittyReportAllKeysAsEscape
	KittyReportAssociatedText
)

// maxKeyboardEnhancementStack bounds the Kitty protocol's push stack, per
// xterm's own implementation limit.
const maxKeyboardEnhancementStack = 8

// InputGenerator converts keyboard, mouse, paste, and focus events into the
// VT byte sequences an application reading the pty expects. The same event
// encodes differently depending on the ModeState in effect at the moment:
// cursor-keys application mode, numeric vs. application keypad, the active
// mouse protocol and encoding, and the Kitty keyboard enhancement stack.
type InputGenerator struct {
	enhancement []KeyboardEnhancement
}

// NewInputGenerator returns an InputGenerator with an empty Kitty
// enhancement stack (legacy encoding throughout).
func NewInputGenerator() *InputGenerator {
	return &InputGenerator{}
}

// PushKeyboardEnhancement adds flags to the Kitty protocol stack.
func (g *InputGenerator) PushKeyboardEnhancement(flags KeyboardEnhancement) {
	g.enhancement = append(g.enhancement, flags)
	if len(g.enhancement) > maxKeyboardEnhancementStack {
		g.enhancement = g.enhancement[len(g.enhancement)-maxKeyboardEnhancementStack:]
	}
}

// PopKeyboardEnhancement removes the top n entries from the stack.
func (g *InputGenerator) PopKeyboardEnhancement(n int) {
	if n <= 0 {
		n = 1
	}
	if n > len(g.enhancement) {
		n = len(g.enhancement)
	}
	g.enhancement = g.enhancement[:len(g.enhancement)-n]
}

// SetKeyboardEnhancement replaces the top of the stack, or pushes a fresh
// entry if the stack is empty (mirrors CSI = flags ; 1 u).
func (g *InputGenerator) SetKeyboardEnhancement(flags KeyboardEnhancement) {
	if len(g.enhancement) == 0 {
		g.enhancement = append(g.enhancement, flags)
		return
	}
	g.enhancement[len(g.enhancement)-1] = flags
}

// CurrentKeyboardEnhancement returns the active flag set, or 0 if the stack
// is empty.
func (g *InputGenerator) CurrentKeyboardEnhancement() KeyboardEnhancement {
	if len(g.enhancement) == 0 {
		return 0
	}
	return g.enhancement[len(g.enhancement)-1]
}

// arrowFinal and homeEndFinal map cursor keys to their CSI/SS3 final byte.
var arrowFinal = map[Key]byte{KeyUp: 'A', KeyDown: 'B', KeyRight: 'C', KeyLeft: 'D'}
var homeEndFinal = map[Key]byte{KeyHome: 'H', KeyEnd: 'F'}
var fnFinal = map[Key]byte{KeyF1: 'P', KeyF2: 'Q', KeyF3: 'R', KeyF4: 'S'}
var fnCode = map[Key]int{KeyF5: 15, KeyF6: 17, KeyF7: 18, KeyF8: 19, KeyF9: 20, KeyF10: 21, KeyF11: 23, KeyF12: 24}
var tildeCode = map[Key]int{KeyInsert: 2, KeyDelete: 3, KeyPageUp: 5, KeyPageDown: 6}

// kittyKeyCode maps a Key to the Unicode Private Use Area codepoint the
// Kitty keyboard protocol's "report all keys as escape codes" mode assigns
// it. Approximates the published table closely enough to round-trip within
// this module; an application validating against a real Kitty-compliant
// terminal should treat these as illustrative rather than normative.
var kittyKeyCode = map[Key]int{
	KeyEscape: 27, KeyEnter: 13, KeyTab: 9, KeyBackspace: 127,
	KeyUp: 57352, KeyDown: 57353, KeyRight: 57351, KeyLeft: 57350,
	KeyHome: 57356, KeyEnd: 57357, KeyPageUp: 57354, KeyPageDown: 57355,
	KeyInsert: 57348, KeyDelete: 57349,
	KeyF1: 57364, KeyF2: 57365, KeyF3: 57366, KeyF4: 57367,
	KeyF5: 57368, KeyF6: 57369, KeyF7: 57370, KeyF8: 57371,
	KeyF9: 57372, KeyF10: 57373, KeyF11: 57374, KeyF12: 57375,
}

// EncodeKey returns the byte sequence produced when key is pressed with mods
// held, given modes' current cursor-keys and keypad application state.
func (g *InputGenerator) EncodeKey(key Key, mods Modifiers, modes *ModeState) []byte {
	if g.CurrentKeyboardEnhancement()&KittyReportAllKeysAsEscape != 0 {
		if code, ok := kittyKeyCode[key]; ok {
			if mods != 0 {
				return []byte(fmt.Sprintf("\x1b[%d;%du", code, mods.param()))
			}
			return []byte(fmt.Sprintf("\x1b[%du", code))
		}
	}

	appCursor := modes.DEC(DECModeAppCursorKeys)
	appKeypad := modes.DEC(DECModeApplicationKeypad)

	if final, ok := arrowFinal[key]; ok {
		return encodeCursorKey(final, mods, appCursor)
	}
	if final, ok := homeEndFinal[key]; ok {
		return encodeCursorKey(final, mods, appCursor)
	}
	if final, ok := fnFinal[key]; ok {
		if mods != 0 {
			return []byte(fmt.Sprintf("\x1b[1;%d%c", mods.param(), final))
		}
		return []byte{0x1b, 'O', final}
	}
	if code, ok := fnCode[key]; ok {
		if mods != 0 {
			return []byte(fmt.Sprintf("\x1b[%d;%d~", code, mods.param()))
		}
		return []byte(fmt.Sprintf("\x1b[%d~", code))
	}
	if code, ok := tildeCode[key]; ok {
		if mods != 0 {
			return []byte(fmt.Sprintf("\x1b[%d;%d~", code, mods.param()))
		}
		return []byte(fmt.Sprintf("\x1b[%d~", code))
	}

	switch key {
	case KeyEnter:
		if appKeypad {
			return []byte{0x1b, 'O', 'M'}
		}
		return []byte{'\r'}
	case KeyBackspace:
		if mods&ModAlt != 0 {
			return []byte{0x1b, 0x7f}
		}
		return []byte{0x7f}
	case KeyTab:
		if mods&ModShift != 0 {
			return []byte{0x1b, '[', 'Z'}
		}
		return []byte{'\t'}
	case KeyEscape:
		return []byte{0x1b}
	}
	return nil
}

// encodeCursorKey renders an arrow/Home/End key: CSI 1;Pm <final> when
// modifiers are held (xterm's modifyCursorKeys form), else the bare SS3 (app
// mode) or CSI (normal mode) form.
func encodeCursorKey(final byte, mods Modifiers, appCursor bool) []byte {
	if mods != 0 {
		return []byte(fmt.Sprintf("\x1b[1;%d%c", mods.param(), final))
	}
	if appCursor {
		return []byte{0x1b, 'O', final}
	}
	return []byte{0x1b, '[', final}
}

// EncodeRune returns the bytes for a printable keypress: Ctrl maps letters
// to their C0 control code, Alt prefixes ESC (xterm's "metaSendsEscape"),
// and the plain rune is UTF-8 encoded otherwise.
func (g *InputGenerator) EncodeRune(r rune, mods Modifiers) []byte {
	out := []byte{}
	if mods&ModCtrl != 0 && r >= 0x40 && r < 0x80 {
		r = rune(byte(r) & 0x1f)
	} else if mods&ModCtrl != 0 && r >= 'a' && r <= 'z' {
		r = rune(byte(r-'a'+1) & 0x1f)
	}
	if mods&ModAlt != 0 {
		out = append(out, 0x1b)
	}
	return append(out, []byte(string(r))...)
}

// EncodeMouse renders a mouse event per the active protocol level (X10,
// VT200/normal, button-event, any-event) and encoding (default, UTF-8, SGR,
// URXVT, SGR-pixels) named by modes. row/col are 1-based cell coordinates
// (or pixel coordinates when the SGR-pixels encoding is active).
func (g *InputGenerator) EncodeMouse(btn MouseButton, action MouseAction, row, col int, mods Modifiers, modes *ModeState) []byte {
	switch {
	case modes.DEC(DECModeMouseAnyEvent), modes.DEC(DECModeMouseButtonEvent), modes.DEC(DECModeMouseVT200), modes.DEC(DECModeMouseX10):
	default:
		return nil
	}
	if action == MouseMotion && !modes.DEC(DECModeMouseButtonEvent) && !modes.DEC(DECModeMouseAnyEvent) {
		return nil
	}

	cb := mouseButtonCode(btn, action, mods)

	switch {
	case modes.DEC(DECModeMouseSGR), modes.DEC(DECModeMouseSGRPixels):
		final := byte('M')
		if action == MouseRelease {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, col, row, final))
	case modes.DEC(DECModeMouseURXVT):
		return []byte(fmt.Sprintf("\x1b[%d;%d;%dM", cb+32, col, row))
	case modes.DEC(DECModeMouseUTF8):
		out := []byte{0x1b, '[', 'M'}
		out = utf8.AppendRune(out, rune(cb+32))
		out = utf8.AppendRune(out, rune(col+32))
		return utf8.AppendRune(out, rune(row+32))
	default:
		return []byte{0x1b, '[', 'M', byte(cb + 32), encodeMouseCoord(col), encodeMouseCoord(row)}
	}
}

func encodeMouseCoord(v int) byte {
	if v+32 > 255 {
		return 255
	}
	return byte(v + 32)
}

func mouseButtonCode(btn MouseButton, action MouseAction, mods Modifiers) int {
	cb := 0
	switch btn {
	case MouseButtonLeft:
		cb = 0
	case MouseButtonMiddle:
		cb = 1
	case MouseButtonRight:
		cb = 2
	case MouseButtonNone:
		cb = 3
	case MouseWheelUp:
		cb = 64
	case MouseWheelDown:
		cb = 65
	}
	if action == MouseRelease && btn != MouseWheelUp && btn != MouseWheelDown {
		cb = 3
	}
	if action == MouseMotion {
		cb |= 32
	}
	if mods&ModShift != 0 {
		cb |= 4
	}
	if mods&ModAlt != 0 {
		cb |= 8
	}
	if mods&ModCtrl != 0 {
		cb |= 16
	}
	return cb
}

// EncodeBracketedPaste wraps text in the bracketed-paste envelope when
// modes has it enabled, and returns the raw text otherwise.
func (g *InputGenerator) EncodeBracketedPaste(text string, modes *ModeState) []byte {
	if !modes.DEC(DECModeBracketedPaste) {
		return []byte(text)
	}
	return []byte("\x1b[200~" + text + "\x1b[201~")
}

// EncodeFocus renders a focus-in/focus-out event when modes has focus
// reporting enabled, and nil otherwise.
func (g *InputGenerator) EncodeFocus(focused bool, modes *ModeState) []byte {
	if !modes.DEC(DECModeFocusEvent) {
		return nil
	}
	if focused {
		return []byte{0x1b, '[', 'I'}
	}
	return []byte{0x1b, '[', 'O'}
}
