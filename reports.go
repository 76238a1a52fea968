package vtcore

import "fmt"

// cursorInfoReport renders a best-effort DECCIR body: row, column, and the
// pen attributes active at the cursor. Real DEC terminals also report page
// number and character-set state; this implementation has no page concept
// so that field is fixed at 1.
func cursorInfoReport(s *Screen) string {
	return fmt.Sprintf("%d;%d;1;%s", s.Cursor.Line+1, s.Cursor.Column+1, s.ReportSGR())
}

// tabStopReport renders the DECTABSR body: a slash-separated list of 1-based
// tab stop columns.
func tabStopReport(s *Screen) string {
	cols := s.Tabs.All()
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += "/"
		}
		out += fmt.Sprintf("%d", c+1)
	}
	return out
}

// handleWinManip implements a practical subset of XTWINOPS (CSI t): the
// queries a renderer-less core can answer meaningfully, and no-ops for the
// window-manager-only operations (iconify, move, raise/lower) that have no
// effect without a real window.
func handleWinManip(sq *Sequencer, seq Sequence) Status {
	s := sq.target.Screen()
	switch seq.Param(0, 0) {
	case 8: // resize text area to Ps2 lines x Ps3 columns
		lines := seq.Param(1, s.Grid.Lines())
		cols := seq.Param(2, s.Grid.Cols())
		if lines <= 0 || cols <= 0 {
			return StatusInvalid
		}
		sq.target.Resize(lines, cols)
	case 14: // report text area size in pixels
		w, h := s.size.TextAreaSizePixels()
		sq.target.Reply(csiReply("4;%d;%dt", h, w))
	case 16: // report cell size in pixels
		w, h := s.size.CellSizePixels()
		sq.target.Reply(csiReply("6;%d;%dt", h, w))
	case 18: // report text area size in characters
		sq.target.Reply(csiReply("8;%d;%dt", s.Grid.Lines(), s.Grid.Cols()))
	case 19: // report screen size in characters
		sq.target.Reply(csiReply("9;%d;%dt", s.Grid.Lines(), s.Grid.Cols()))
	case 22: // push title
		sq.target.Title().PushTitle()
	case 23: // pop title
		sq.target.Title().PopTitle()
	case 1, 2, 3, 5, 6: // de-iconify, iconify, move, raise, lower: no window to act on
	default:
		return StatusUnsupported
	}
	return StatusOk
}

// handleXTSMGraphics implements the query/set-limit subset of XTSMGRAPHICS
// (CSI ? Pi ; Pa ; Pv S) for the sixel item (Pi=1): report a conservative
// fixed geometry limit, matching the "no real GPU" nature of this core.
func handleXTSMGraphics(sq *Sequencer, seq Sequence) Status {
	item := seq.Param(0, 0)
	action := seq.Param(1, 0)
	if item != 1 {
		sq.target.Reply(csiReply("?%d;3;0S", item))
		return StatusOk
	}
	switch action {
	case 1: // read
		sq.target.Reply(csiReply("?1;0;1024;1024S"))
	case 2: // reset to default
		sq.target.Reply(csiReply("?1;0;1024;1024S"))
	case 3: // set
		sq.target.Reply(csiReply("?1;0;%d;%dS", seq.Param(2, 1024), seq.Param(3, 1024)))
	default:
		sq.target.Reply(csiReply("?1;2;0S"))
	}
	return StatusOk
}

// handleDECRQSS answers a "DCS $ q <setting> ST" request: the accumulated
// payload names one setting (e.g. "m", "r", " q"), and the reply echoes its
// current value wrapped as "DCS 1 $ r <value> ST", or "DCS 0 $ r ST" if the
// setting isn't recognized.
func (sq *Sequencer) handleDECRQSS(payload []byte) {
	s := sq.target.Screen()
	setting := string(payload)
	var body string
	ok := true
	switch setting {
	case "m":
		body = s.ReportSGR()
	case "r":
		body = s.ReportMargins()
	case " q":
		body = s.ReportCursorStyle()
	default:
		ok = false
	}
	if !ok {
		sq.target.Reply("\x1bP0$r\x1b\\")
		return
	}
	sq.target.Reply("\x1bP1$r" + body + "\x1b\\")
}

// handleXTGETTCAP answers a capability query: payload is a ';'-separated
// list of hex-encoded capability names. Recognized ones reply
// "name=hexvalue"; the whole response is 0 (failure) if every name in the
// request was unrecognized.
func (sq *Sequencer) handleXTGETTCAP(payload []byte) {
	names := splitSemicolons(payload)
	s := sq.target.Screen()
	var replies []string
	for _, n := range names {
		raw := hexDecode(n)
		if v, ok := terminfoCaps(s)[raw]; ok {
			replies = append(replies, hexEncode(raw)+"="+hexEncode(v))
		}
	}
	if len(replies) == 0 {
		sq.target.Reply("\x1bP0+r\x1b\\")
		return
	}
	out := "\x1bP1+r"
	for i, r := range replies {
		if i > 0 {
			out += ";"
		}
		out += r
	}
	sq.target.Reply(out + "\x1b\\")
}

// terminfoCaps is the small, static capability table XTGETTCAP answers
// against; a real terminfo database is out of scope for a headless core.
func terminfoCaps(s *Screen) map[string]string {
	return map[string]string{
		"TN":  "xterm-256color",
		"co":  fmt.Sprintf("%d", s.Grid.Cols()),
		"li":  fmt.Sprintf("%d", s.Grid.Lines()),
		"RGB": "8",
		"Tc":  "",
	}
}

func splitSemicolons(b []byte) []string {
	var out []string
	start := 0
	for i, c := range b {
		if c == ';' {
			out = append(out, string(b[start:i]))
			start = i + 1
		}
	}
	out = append(out, string(b[start:]))
	return out
}

const hexDigits = "0123456789abcdef"

func hexEncode(s string) string {
	out := make([]byte, 0, len(s)*2)
	for _, c := range []byte(s) {
		out = append(out, hexDigits[c>>4], hexDigits[c&0xf])
	}
	return string(out)
}

func hexDecode(s string) string {
	if len(s)%2 != 0 {
		return ""
	}
	out := make([]byte, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		hi := hexVal(s[i])
		lo := hexVal(s[i+1])
		if hi < 0 || lo < 0 {
			return ""
		}
		out = append(out, byte(hi<<4|lo))
	}
	return string(out)
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	default:
		return -1
	}
}
