package vtcore

import "image/color"

// dispatchTarget is the narrow handle a Sequencer holds instead of a pointer
// back to the full Terminal: just enough surface to dispatch every control
// function, mirroring the same anti-cyclic-coupling discipline Screen
// already applies one layer down with its own provider fields.
type dispatchTarget interface {
	Screen() *Screen
	Primary() *Screen
	Alternate() *Screen
	UsingAlternate() bool
	EnterAlternateScreen(save bool)
	ExitAlternateScreen(restore bool)
	Reply(text string)
	Title() TitleProvider
	Bell() BellProvider
	Clipboard() ClipboardProvider
	APC() APCProvider
	PM() PMProvider
	SOS() SOSProvider
	Notify() NotifyProvider
	Log() LogProvider
	Input() *InputGenerator
	HardReset()
	Resize(lines, cols int)

	PaletteColor(idx int) color.RGBA
	SetPaletteColor(idx int, c color.RGBA)
	ResetPaletteColor(idx int)
	DefaultForegroundColor() color.RGBA
	DefaultBackgroundColor() color.RGBA
	CursorDisplayColor() color.RGBA
	SetDefaultForegroundColor(c color.RGBA)
	SetDefaultBackgroundColor(c color.RGBA)
	SetCursorDisplayColor(c color.RGBA)
	resetDefaultForeground()
	resetDefaultBackground()
	resetCursorColor()
}

// dcsKind tags which DCS passthrough sub-protocol is currently being
// accumulated by DcsPut, decided once at DcsHook time from the 4-tuple key.
type dcsKind byte

const (
	dcsKindNone dcsKind = iota
	dcsKindSixel
	dcsKindDECRQSS
	dcsKindXTGETTCAP
)

// dcsMaxLen bounds DCS passthrough accumulation (sixel images in particular
// can be large); beyond this a ResourceLimit is logged once and further
// bytes are dropped, matching the "never fatal" failure semantics.
const dcsMaxLen = 32 << 20

// Sequencer implements EventSink: it assembles ByteParser events into
// Sequence values and dispatches them through functionTable.
type Sequencer struct {
	target dispatchTarget
	log    LogProvider
	mw     *Middleware

	dcsKind          dcsKind
	dcsLeader        byte
	dcsParams        []Param
	dcsIntermediates []byte
	dcsBuf           []byte
	dcsOverflowed    bool
}

// NewSequencer returns a Sequencer dispatching against target.
func NewSequencer(target dispatchTarget, log LogProvider) *Sequencer {
	return &Sequencer{target: target, log: log}
}

// SetMiddleware attaches interception hooks at each EventSink entry point.
// A nil mw (the default) means every event reaches its default handling
// untouched.
func (sq *Sequencer) SetMiddleware(mw *Middleware) {
	sq.mw = mw
}

// Print implements EventSink: printable codepoints are written straight to
// the active screen's pen position.
func (sq *Sequencer) Print(r rune) {
	if sq.mw != nil && sq.mw.Print != nil {
		sq.mw.Print(r, sq.doPrint)
		return
	}
	sq.doPrint(r)
}

func (sq *Sequencer) doPrint(r rune) {
	sq.target.Screen().WriteText([]rune{r})
}

// Execute implements EventSink for the C0 control codes listed in the
// mnemonic table (BEL/BS/HT/LF/VT/FF/CR/SO/SI); these are dispatched
// directly rather than through functionTable since they carry no leader,
// intermediates, or final byte to key on.
func (sq *Sequencer) Execute(c0 byte) {
	if sq.mw != nil && sq.mw.Execute != nil {
		sq.mw.Execute(c0, sq.doExecute)
		return
	}
	sq.doExecute(c0)
}

func (sq *Sequencer) doExecute(c0 byte) {
	s := sq.target.Screen()
	switch c0 {
	case 0x07: // BEL
		sq.target.Bell().Ring()
	case 0x08: // BS
		s.CursorBackward(1)
	case 0x09: // HT
		s.MoveToNextTab(1)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		s.LineFeed(s.Modes.Ansi(AnsiModeLineFeedNewLine))
	case 0x0D: // CR
		s.CarriageReturn()
	case 0x0E: // SO: shift G1 into GL
		s.Cursor.Charsets.Active = CharsetIndexG1
	case 0x0F: // SI: shift G0 into GL
		s.Cursor.Charsets.Active = CharsetIndexG0
	}
}

// CsiDispatch implements EventSink.
func (sq *Sequencer) CsiDispatch(leader byte, params []Param, intermediates []byte, final byte) {
	seq := Sequence{Category: SeqCsi, Leader: leader, Intermediates: intermediates, Final: final, Params: params}
	sq.dispatch(seq)
}

// EscDispatch implements EventSink.
func (sq *Sequencer) EscDispatch(intermediates []byte, final byte) {
	seq := Sequence{Category: SeqEsc, Intermediates: intermediates, Final: final}
	sq.dispatch(seq)
}

// OscDispatch implements EventSink; the numeric Ps code lives inside text
// itself rather than in a byte-level final, so OSC is routed through its own
// numeric switch in osc.go instead of functionTable.
func (sq *Sequencer) OscDispatch(text string) {
	if sq.mw != nil && sq.mw.Osc != nil {
		sq.mw.Osc(text, sq.dispatchOSC)
		return
	}
	sq.dispatchOSC(text)
}

func (sq *Sequencer) dispatch(seq Sequence) {
	if sq.mw != nil && sq.mw.Dispatch != nil {
		sq.mw.Dispatch(seq, sq.doDispatch)
		return
	}
	sq.doDispatch(seq)
}

func (sq *Sequencer) doDispatch(seq Sequence) Status {
	def, ok := functionTable[seq.Key()]
	if !ok {
		logDiagnostic(sq.log, UnsupportedSequenceKind, "no handler for %s", sequenceText(seq))
		return StatusUnsupported
	}
	status := def.Handle(sq, seq)
	switch status {
	case StatusInvalid:
		logDiagnostic(sq.log, InvalidSequenceKind, "%s rejected %s", def.Mnemonic, sequenceText(seq))
	case StatusUnsupported:
		logDiagnostic(sq.log, UnsupportedSequenceKind, "%s unsupported: %s", def.Mnemonic, sequenceText(seq))
	}
	return status
}

// DcsHook implements EventSink: identifies which DCS sub-protocol is
// starting and resets the accumulation buffer.
func (sq *Sequencer) DcsHook(leader byte, params []Param, intermediates []byte, final byte) {
	sq.dcsLeader = leader
	sq.dcsParams = params
	sq.dcsIntermediates = intermediates
	sq.dcsBuf = sq.dcsBuf[:0]
	sq.dcsOverflowed = false

	im := string(intermediates)
	switch {
	case final == 'q' && im == "":
		sq.dcsKind = dcsKindSixel
	case final == 'q' && im == "$":
		sq.dcsKind = dcsKindDECRQSS
	case final == 'q' && im == "+":
		sq.dcsKind = dcsKindXTGETTCAP
	default:
		sq.dcsKind = dcsKindNone
		logDiagnostic(sq.log, UnsupportedSequenceKind, "no DCS handler for leader=%q intermediates=%q final=%q", leader, im, final)
	}
}

// DcsPut implements EventSink.
func (sq *Sequencer) DcsPut(b byte) {
	if sq.dcsKind == dcsKindNone {
		return
	}
	if len(sq.dcsBuf) >= dcsMaxLen {
		if !sq.dcsOverflowed {
			sq.dcsOverflowed = true
			logDiagnostic(sq.log, ResourceLimitKind, "DCS payload exceeded %d bytes, truncating", dcsMaxLen)
		}
		return
	}
	sq.dcsBuf = append(sq.dcsBuf, b)
}

// DcsUnhook implements EventSink: the accumulated payload is handed to the
// sub-protocol decoder selected at DcsHook time.
func (sq *Sequencer) DcsUnhook() {
	if sq.mw != nil && sq.mw.Dcs != nil {
		sq.mw.Dcs(sq.dcsKind, sq.dcsParams, sq.dcsBuf, sq.doDcsUnhook)
	} else {
		sq.doDcsUnhook()
	}
	sq.dcsKind = dcsKindNone
	sq.dcsBuf = nil
}

func (sq *Sequencer) doDcsUnhook() {
	switch sq.dcsKind {
	case dcsKindSixel:
		sq.handleSixel(sq.dcsParams, sq.dcsBuf)
	case dcsKindDECRQSS:
		sq.handleDECRQSS(sq.dcsBuf)
	case dcsKindXTGETTCAP:
		sq.handleXTGETTCAP(sq.dcsBuf)
	}
}

// SosPmApcDispatch implements EventSink. APC payloads beginning with 'G' are
// Kitty graphics commands; everything else is handed to the matching
// collaborator untouched.
func (sq *Sequencer) SosPmApcDispatch(introducer byte, text string) {
	if sq.mw != nil && sq.mw.SosPmApc != nil {
		sq.mw.SosPmApc(introducer, text, sq.doSosPmApcDispatch)
		return
	}
	sq.doSosPmApcDispatch(introducer, text)
}

func (sq *Sequencer) doSosPmApcDispatch(introducer byte, text string) {
	switch introducer {
	case '_':
		if len(text) > 0 && text[0] == 'G' {
			sq.handleKittyGraphics(text)
			return
		}
		sq.target.APC().Receive([]byte(text))
	case '^':
		sq.target.PM().Receive([]byte(text))
	case 'X':
		sq.target.SOS().Receive([]byte(text))
	}
}

var _ EventSink = (*Sequencer)(nil)
