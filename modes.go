package vtcore

// AnsiMode identifies a mode set/reset by plain SM/RM (CSI Pn h / CSI Pn l).
type AnsiMode int

const (
	AnsiModeKeyboardAction  AnsiMode = 2  // KAM
	AnsiModeInsertReplace   AnsiMode = 4  // IRM
	AnsiModeSendReceive     AnsiMode = 12 // SRM
	AnsiModeLineFeedNewLine AnsiMode = 20 // LNM
)

// DECMode identifies a mode set/reset by DECSM/DECRM (CSI ? Pn h / l). The
// numeric values are xterm/DEC's own identifiers; callers query/report using
// these same numbers so DECRQM round-trips without a translation table.
type DECMode int

const (
	DECModeAppCursorKeys       DECMode = 1
	DECModeANSI                DECMode = 2 // DECANM
	DECMode132Column           DECMode = 3 // DECCOLM
	DECModeSmoothScroll        DECMode = 4
	DECModeReverseVideo        DECMode = 5 // DECSCNM
	DECModeOrigin              DECMode = 6 // DECOM
	DECModeAutoWrap            DECMode = 7 // DECAWM
	DECModeAutoRepeat          DECMode = 8 // DECARM
	DECModeInterlace           DECMode = 9
	DECModeMouseX10            DECMode = 9
	DECModeBlinkingCursor      DECMode = 12
	DECModePrinterForm         DECMode = 18
	DECModePrinterExtent       DECMode = 19
	DECModeVisibleCursor       DECMode = 25 // DECTCEM
	DECModeShowToolbar         DECMode = 10
	DECModeMarginBell          DECMode = 44
	DECModeReverseWrap         DECMode = 45
	DECModeLogging             DECMode = 46
	DECModeAltScreen47         DECMode = 47
	DECModeApplicationKeypad   DECMode = 66 // DECNKM: set = application keypad, reset = numeric
	DECModeBackarrowKey        DECMode = 67
	DECModeLeftRightMargin     DECMode = 69 // DECLRMM
	DECModeNoSixelScrolling    DECMode = 80 // DECSDM (inverted: set = no scroll)
	DECModeMouseVT200          DECMode = 1000
	DECModeMouseHighlight      DECMode = 1001
	DECModeMouseButtonEvent    DECMode = 1002
	DECModeMouseAnyEvent       DECMode = 1003
	DECModeFocusEvent          DECMode = 1004
	DECModeMouseUTF8           DECMode = 1005
	DECModeMouseSGR            DECMode = 1006
	DECModeMouseAlternateScroll DECMode = 1007
	DECModeMouseURXVT          DECMode = 1015
	DECModeMouseSGRPixels      DECMode = 1016
	DECModeAltScreen1047       DECMode = 1047
	DECModeSaveCursor1048      DECMode = 1048
	DECModeAltScreen1049       DECMode = 1049
	DECModeBracketedPaste      DECMode = 2004
	DECModeSynchronizedOutput  DECMode = 2026
	DECModeUnicodeCoreGrapheme DECMode = 2027
	DECModeReportColorPalette  DECMode = 2031
	DECModeWin32InputMode      DECMode = 9001
)

// DefaultDECModes lists the DEC private modes that are enabled (set) in a
// freshly reset terminal, matching VT100/xterm power-on defaults.
var DefaultDECModes = []DECMode{
	DECModeAutoWrap,
	DECModeAutoRepeat,
	DECModeVisibleCursor,
}

// RequestStatus is the DECRQM reply code: whether a mode is set, reset, or
// not recognized at all by this implementation.
type RequestStatus int

const (
	RequestNotRecognized RequestStatus = 0
	RequestSet           RequestStatus = 1
	RequestReset         RequestStatus = 2
	// RequestPermanentlySet / RequestPermanentlyReset are reported by real
	// terminals for modes the user cannot toggle; unused here since vtcore
	// exposes every mode it knows as toggleable.
)

// knownDECModes is the full recognized set, used to answer DECRQM with
// NotRecognized for anything else. Built at init from the
// named constants above plus additional numeric-only entries xterm defines
// without a friendly Go name.
var knownDECModes = map[DECMode]bool{}

func init() {
	named := []DECMode{
		DECModeAppCursorKeys, DECModeANSI, DECMode132Column, DECModeSmoothScroll,
		DECModeReverseVideo, DECModeOrigin, DECModeAutoWrap, DECModeAutoRepeat,
		DECModeMouseX10, DECModeBlinkingCursor, DECModePrinterForm, DECModePrinterExtent,
		DECModeVisibleCursor, DECModeShowToolbar, DECModeMarginBell, DECModeReverseWrap,
		DECModeLogging, DECModeAltScreen47, DECModeApplicationKeypad, DECModeBackarrowKey,
		DECModeLeftRightMargin, DECModeNoSixelScrolling,
		DECModeMouseVT200, DECModeMouseHighlight, DECModeMouseButtonEvent, DECModeMouseAnyEvent,
		DECModeFocusEvent, DECModeMouseUTF8, DECModeMouseSGR, DECModeMouseAlternateScroll,
		DECModeMouseURXVT, DECModeMouseSGRPixels,
		DECModeAltScreen1047, DECModeSaveCursor1048, DECModeAltScreen1049,
		DECModeBracketedPaste, DECModeSynchronizedOutput, DECModeUnicodeCoreGrapheme,
		DECModeReportColorPalette, DECModeWin32InputMode,
	}
	for _, m := range named {
		knownDECModes[m] = true
	}
	// xterm-documented numeric modes without a named constant here; still
	// recognized so DECRQM reports Set/Reset rather than NotRecognized.
	for _, n := range []int{1010, 1011, 1034, 1036, 1039, 1040, 1041, 1042, 1043} {
		knownDECModes[DECMode(n)] = true
	}
}

// ModeState holds every recognized AnsiMode and DECMode's enabled state plus
// a save stack per mode family, backing SM/RM/DECSM/DECRM, DECRQM/DECRQM_ANSI,
// and XTSAVE/XTRESTORE.
type ModeState struct {
	ansi map[AnsiMode]bool
	dec  map[DECMode]bool

	ansiSaveStack []map[AnsiMode]bool
	decSaveStack  []map[DECMode]bool
}

// NewModeState returns a ModeState with the VT100/xterm power-on defaults.
func NewModeState() *ModeState {
	m := &ModeState{
		ansi: make(map[AnsiMode]bool),
		dec:  make(map[DECMode]bool),
	}
	for _, d := range DefaultDECModes {
		m.dec[d] = true
	}
	return m
}

// Reset restores power-on defaults, clearing all save stacks.
func (m *ModeState) Reset() {
	m.ansi = make(map[AnsiMode]bool)
	m.dec = make(map[DECMode]bool)
	for _, d := range DefaultDECModes {
		m.dec[d] = true
	}
	m.ansiSaveStack = nil
	m.decSaveStack = nil
}

// SetAnsi sets or resets an AnsiMode.
func (m *ModeState) SetAnsi(mode AnsiMode, enabled bool) {
	m.ansi[mode] = enabled
}

// Ansi reports whether an AnsiMode is currently enabled.
func (m *ModeState) Ansi(mode AnsiMode) bool {
	return m.ansi[mode]
}

// SetDEC sets or resets a DECMode.
func (m *ModeState) SetDEC(mode DECMode, enabled bool) {
	m.dec[mode] = enabled
}

// DEC reports whether a DECMode is currently enabled.
func (m *ModeState) DEC(mode DECMode) bool {
	return m.dec[mode]
}

// RequestAnsi answers a DECRQM query (CSI Pn $ p) for an AnsiMode.
func (m *ModeState) RequestAnsi(mode AnsiMode) RequestStatus {
	switch mode {
	case AnsiModeKeyboardAction, AnsiModeInsertReplace, AnsiModeSendReceive, AnsiModeLineFeedNewLine:
		if m.ansi[mode] {
			return RequestSet
		}
		return RequestReset
	default:
		return RequestNotRecognized
	}
}

// RequestDEC answers a DECRQM query (CSI ? Pn $ p) for a DECMode.
func (m *ModeState) RequestDEC(mode DECMode) RequestStatus {
	if !knownDECModes[mode] {
		return RequestNotRecognized
	}
	if m.dec[mode] {
		return RequestSet
	}
	return RequestReset
}

// SaveDEC pushes the current enabled state of the listed modes (XTSAVE,
// CSI ? Pn s) as one snapshot on a single save stack shared by all modes.
// RestoreDEC pops the latest snapshot whichever modes it names, so saves of
// different modes are not kept apart per mode.
func (m *ModeState) SaveDEC(modes []DECMode) {
	snap := make(map[DECMode]bool, len(modes))
	for _, d := range modes {
		snap[d] = m.dec[d]
	}
	m.decSaveStack = append(m.decSaveStack, snap)
}

// RestoreDEC pops the most recent XTSAVE snapshot for the listed modes
// (XTRESTORE, CSI ? Pn r), restoring only the modes present in that
// snapshot; modes never saved are left untouched.
func (m *ModeState) RestoreDEC(modes []DECMode) {
	if len(m.decSaveStack) == 0 {
		return
	}
	snap := m.decSaveStack[len(m.decSaveStack)-1]
	m.decSaveStack = m.decSaveStack[:len(m.decSaveStack)-1]
	for _, d := range modes {
		if v, ok := snap[d]; ok {
			m.dec[d] = v
		}
	}
}
