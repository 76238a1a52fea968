package vtcore

// ParserState is one state of the ByteParser's fixed transition table.
type ParserState int

const (
	StateGround ParserState = iota
	StateEscape
	StateEscapeIntermediate
	StateCsiEntry
	StateCsiParam
	StateCsiIntermediate
	StateCsiIgnore
	StateDcsEntry
	StateDcsParam
	StateDcsIntermediate
	StateDcsPassthrough
	StateDcsIgnore
	StateOscString
	StateSosPmApcString
	StateUtf8Continuation
)

const (
	maxParams       = 32
	maxSubParams    = 8
	maxIntermediates = 4
	maxStringLen    = 1 << 20 // OSC/SOS/PM/APC payload cap; bytes beyond it are dropped
)

// EventSink receives typed events from a ByteParser. The Sequencer
// implements this interface; tests may stub it directly.
type EventSink interface {
	Print(r rune)
	Execute(c0 byte)
	CsiDispatch(leader byte, params []Param, intermediates []byte, final byte)
	EscDispatch(intermediates []byte, final byte)
	OscDispatch(text string)
	DcsHook(leader byte, params []Param, intermediates []byte, final byte)
	DcsPut(b byte)
	DcsUnhook()
	SosPmApcDispatch(introducer byte, text string)
}

// ByteParser decodes a raw byte stream into EventSink calls, one byte at a
// time, tolerating arbitrary interleaving of control sequences and text. No
// input byte is ever fatal: malformed sequences are reported through log
// and the parser recovers to Ground.
type ByteParser struct {
	state ParserState
	sink  EventSink
	log   LogProvider

	leader        byte
	intermediates []byte
	params        []Param
	curParam      []int // sub-parameters of the parameter currently being read
	paramStarted  bool

	strBuf    []byte
	strKind   byte // 'O' osc, 'X' sos, '^' pm, '_' apc

	// terminating is nonzero while the Escape state is being entered from a
	// string-collecting state (OscString/SosPmApcString/DcsPassthrough) to
	// check whether the following byte completes a "ESC \" (ST) terminator.
	terminating byte

	// UTF-8 incremental decode state.
	utf8Need  int
	utf8Got   int
	utf8Code  rune
	utf8First byte
}

// NewByteParser returns a parser in Ground state feeding sink.
func NewByteParser(sink EventSink, log LogProvider) *ByteParser {
	return &ByteParser{state: StateGround, sink: sink, log: log}
}

// Reset returns the parser to Ground, discarding any partially accumulated
// sequence (used after a hard reset, RIS).
func (p *ByteParser) Reset() {
	p.state = StateGround
	p.clearSequence()
	p.strBuf = p.strBuf[:0]
	p.utf8Need = 0
	p.utf8Got = 0
	p.terminating = 0
}

func (p *ByteParser) clearSequence() {
	p.leader = 0
	p.intermediates = p.intermediates[:0]
	p.params = p.params[:0]
	p.curParam = p.curParam[:0]
	p.paramStarted = false
}

func (p *ByteParser) parseError(format string, args ...any) {
	logDiagnostic(p.log, ParseErrorKind, format, args...)
}

// Parse feeds a chunk of bytes through the state machine, producing zero or
// more EventSink calls.
func (p *ByteParser) Parse(data []byte) {
	for _, b := range data {
		p.step(b)
	}
}

func (p *ByteParser) step(b byte) {
	if p.state == StateUtf8Continuation {
		p.stepUtf8(b)
		return
	}
	if b >= 0x80 && p.state == StateGround {
		p.beginUtf8(b)
		return
	}

	switch p.state {
	case StateGround:
		p.stepGround(b)
	case StateEscape:
		p.stepEscape(b)
	case StateEscapeIntermediate:
		p.stepEscapeIntermediate(b)
	case StateCsiEntry:
		p.stepCsiEntry(b)
	case StateCsiParam:
		p.stepCsiParam(b)
	case StateCsiIntermediate:
		p.stepCsiIntermediate(b)
	case StateCsiIgnore:
		p.stepCsiIgnore(b)
	case StateDcsEntry:
		p.stepDcsEntry(b)
	case StateDcsParam:
		p.stepDcsParam(b)
	case StateDcsIntermediate:
		p.stepDcsIntermediate(b)
	case StateDcsPassthrough:
		p.stepDcsPassthrough(b)
	case StateDcsIgnore:
		p.stepDcsIgnore(b)
	case StateOscString:
		p.stepOscString(b)
	case StateSosPmApcString:
		p.stepSosPmApcString(b)
	}
}

func isExecute(b byte) bool { return b <= 0x1F && b != 0x1B }

func (p *ByteParser) stepGround(b byte) {
	switch {
	case b == 0x1B:
		p.clearSequence()
		p.state = StateEscape
	case isExecute(b):
		p.sink.Execute(b)
	case b == 0x7F:
		// DEL, ignored at Ground per ECMA-48.
	default:
		p.sink.Print(rune(b))
	}
}

func (p *ByteParser) beginUtf8(b byte) {
	switch {
	case b&0xE0 == 0xC0:
		p.utf8Need, p.utf8Code = 1, rune(b&0x1F)
	case b&0xF0 == 0xE0:
		p.utf8Need, p.utf8Code = 2, rune(b&0x0F)
	case b&0xF8 == 0xF0:
		p.utf8Need, p.utf8Code = 3, rune(b&0x07)
	default:
		p.parseError("invalid utf-8 lead byte 0x%02x", b)
		p.sink.Print(0xFFFD)
		return
	}
	p.utf8Got = 0
	p.utf8First = b
	p.state = StateUtf8Continuation
}

func (p *ByteParser) stepUtf8(b byte) {
	if b&0xC0 != 0x80 {
		p.parseError("invalid utf-8 continuation byte 0x%02x", b)
		p.sink.Print(0xFFFD)
		p.state = StateGround
		// The offending byte may itself start a new sequence; reprocess it.
		p.step(b)
		return
	}
	p.utf8Code = p.utf8Code<<6 | rune(b&0x3F)
	p.utf8Got++
	if p.utf8Got < p.utf8Need {
		return
	}
	p.state = StateGround
	p.sink.Print(p.utf8Code)
}

func (p *ByteParser) finishString(kind byte) {
	switch kind {
	case 'O':
		p.sink.OscDispatch(string(p.strBuf))
	case 'X', '^', '_':
		p.sink.SosPmApcDispatch(kind, string(p.strBuf))
	case 'P':
		p.sink.DcsUnhook()
	}
}

func (p *ByteParser) stepEscape(b byte) {
	if p.terminating != 0 {
		kind := p.terminating
		p.terminating = 0
		p.finishString(kind)
		if b == '\\' {
			p.state = StateGround
			return
		}
		// Not a proper ST: the string is still considered terminated: fall
		// through and process b as a fresh escape byte.
	}
	switch {
	case b == '[':
		p.clearSequence()
		p.state = StateCsiEntry
	case b == ']':
		p.beginString('O')
	case b == 'P':
		p.clearSequence()
		p.state = StateDcsEntry
	case b == 'X':
		p.beginString('X')
	case b == '^':
		p.beginString('^')
	case b == '_':
		p.beginString('_')
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
		p.state = StateEscapeIntermediate
	case b >= 0x30 && b <= 0x7E:
		p.sink.EscDispatch(p.intermediates, b)
		p.state = StateGround
	case isExecute(b):
		p.sink.Execute(b)
	default:
		p.parseError("unexpected byte 0x%02x in escape state", b)
		p.state = StateGround
	}
}

func (p *ByteParser) stepEscapeIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		if len(p.intermediates) < maxIntermediates {
			p.intermediates = append(p.intermediates, b)
		}
	case b >= 0x30 && b <= 0x7E:
		p.sink.EscDispatch(p.intermediates, b)
		p.state = StateGround
	case isExecute(b):
		p.sink.Execute(b)
	default:
		p.parseError("unexpected byte 0x%02x in escape-intermediate state", b)
		p.state = StateGround
	}
}

func (p *ByteParser) beginString(kind byte) {
	p.strKind = kind
	p.strBuf = p.strBuf[:0]
	p.state = StateSosPmApcString
	if kind == 'O' {
		p.state = StateOscString
	}
}

func (p *ByteParser) isStringTerminator(b byte) bool { return b == 0x07 } // BEL; ESC \ handled in Escape sub-state

func (p *ByteParser) stepOscString(b byte) {
	switch {
	case b == 0x1B:
		p.terminating = 'O'
		p.state = StateEscape
	case p.isStringTerminator(b):
		p.sink.OscDispatch(string(p.strBuf))
		p.state = StateGround
	case b == 0x18 || b == 0x1A:
		p.state = StateGround // CAN/SUB abort
	default:
		if len(p.strBuf) < maxStringLen {
			p.strBuf = append(p.strBuf, b)
		}
	}
}

func (p *ByteParser) stepSosPmApcString(b byte) {
	switch {
	case b == 0x1B:
		p.terminating = p.strKind
		p.state = StateEscape
	case b == 0x18 || b == 0x1A:
		p.state = StateGround
	default:
		if len(p.strBuf) < maxStringLen {
			p.strBuf = append(p.strBuf, b)
		}
	}
}

func (p *ByteParser) stepCsiEntry(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.paramStarted = true
		p.curParam = append(p.curParam, int(b-'0'))
		p.state = StateCsiParam
	case b == ';':
		p.commitParam()
		p.state = StateCsiParam
	case b == ':':
		p.curParam = append(p.curParam, noParam)
	case b == '?' || b == '>' || b == '=' || b == '<':
		p.leader = b
		p.state = StateCsiParam
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
		p.state = StateCsiIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.finishCsi(b)
	case isExecute(b):
		p.sink.Execute(b)
	default:
		p.state = StateCsiIgnore
	}
}

func (p *ByteParser) stepCsiParam(b byte) {
	switch {
	case b >= '0' && b <= '9':
		if len(p.curParam) == 0 {
			p.curParam = append(p.curParam, 0)
		}
		i := len(p.curParam) - 1
		if p.curParam[i] < 0 {
			p.curParam[i] = 0
		}
		p.curParam[i] = p.curParam[i]*10 + int(b-'0')
		p.paramStarted = true
	case b == ':':
		if len(p.curParam) < maxSubParams {
			p.curParam = append(p.curParam, noParam)
		}
	case b == ';':
		p.commitParam()
	case b >= 0x20 && b <= 0x2F:
		p.commitParam()
		p.intermediates = append(p.intermediates, b)
		p.state = StateCsiIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.commitParam()
		p.finishCsi(b)
	case isExecute(b):
		p.sink.Execute(b)
	default:
		p.state = StateCsiIgnore
	}
}

func (p *ByteParser) stepCsiIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		if len(p.intermediates) < maxIntermediates {
			p.intermediates = append(p.intermediates, b)
		}
	case b >= 0x40 && b <= 0x7E:
		p.finishCsi(b)
	case isExecute(b):
		p.sink.Execute(b)
	default:
		p.state = StateCsiIgnore
	}
}

func (p *ByteParser) stepCsiIgnore(b byte) {
	switch {
	case b >= 0x40 && b <= 0x7E:
		p.parseError("malformed CSI sequence terminated by 0x%02x", b)
		p.state = StateGround
	case isExecute(b):
		p.sink.Execute(b)
	}
}

func (p *ByteParser) commitParam() {
	if !p.paramStarted && len(p.curParam) == 0 {
		p.params = append(p.params, Param{Values: []int{noParam}})
		return
	}
	vals := append([]int(nil), p.curParam...)
	if len(vals) == 0 {
		vals = []int{noParam}
	}
	p.params = append(p.params, Param{Values: vals})
	p.curParam = p.curParam[:0]
	p.paramStarted = false
	if len(p.params) > maxParams {
		p.params = p.params[:maxParams]
	}
}

func (p *ByteParser) finishCsi(final byte) {
	p.sink.CsiDispatch(p.leader, p.params, p.intermediates, final)
	p.state = StateGround
}

func (p *ByteParser) stepDcsEntry(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.paramStarted = true
		p.curParam = append(p.curParam, int(b-'0'))
		p.state = StateDcsParam
	case b == ';':
		p.commitParam()
		p.state = StateDcsParam
	case b == '?' || b == '>' || b == '=' || b == '<':
		p.leader = b
		p.state = StateDcsParam
	case b >= 0x20 && b <= 0x2F:
		p.intermediates = append(p.intermediates, b)
		p.state = StateDcsIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.commitParam()
		p.beginDcsPassthrough(b)
	default:
		p.state = StateDcsIgnore
	}
}

func (p *ByteParser) stepDcsParam(b byte) {
	switch {
	case b >= '0' && b <= '9':
		if len(p.curParam) == 0 {
			p.curParam = append(p.curParam, 0)
		}
		i := len(p.curParam) - 1
		if p.curParam[i] < 0 {
			p.curParam[i] = 0
		}
		p.curParam[i] = p.curParam[i]*10 + int(b-'0')
		p.paramStarted = true
	case b == ':':
		if len(p.curParam) < maxSubParams {
			p.curParam = append(p.curParam, noParam)
		}
	case b == ';':
		p.commitParam()
	case b >= 0x20 && b <= 0x2F:
		p.commitParam()
		p.intermediates = append(p.intermediates, b)
		p.state = StateDcsIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.commitParam()
		p.beginDcsPassthrough(b)
	default:
		p.state = StateDcsIgnore
	}
}

func (p *ByteParser) stepDcsIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		if len(p.intermediates) < maxIntermediates {
			p.intermediates = append(p.intermediates, b)
		}
	case b >= 0x40 && b <= 0x7E:
		p.beginDcsPassthrough(b)
	default:
		p.state = StateDcsIgnore
	}
}

func (p *ByteParser) beginDcsPassthrough(final byte) {
	p.sink.DcsHook(p.leader, p.params, p.intermediates, final)
	p.state = StateDcsPassthrough
}

func (p *ByteParser) stepDcsPassthrough(b byte) {
	switch b {
	case 0x1B:
		p.terminating = 'P'
		p.state = StateEscape
	case 0x18, 0x1A:
		p.sink.DcsUnhook()
		p.state = StateGround
	default:
		p.sink.DcsPut(b)
	}
}

func (p *ByteParser) stepDcsIgnore(b byte) {
	if b == 0x1B {
		p.state = StateEscape
	}
}
