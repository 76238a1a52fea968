package vtcore

import (
	"image/color"
	"strconv"
	"strings"
)

// dispatchOSC parses the "Ps;Pt" text payload OscDispatch received and
// routes it by the numeric Ps code. Unlike CSI/ESC, OSC carries its whole
// identity inside the text rather than a byte-level final, so it is handled
// by its own switch instead of functionTable.
func (sq *Sequencer) dispatchOSC(text string) {
	ps, rest, ok := splitOSC(text)
	if !ok {
		logDiagnostic(sq.log, UnsupportedSequenceKind, "malformed OSC %q", text)
		return
	}
	switch ps {
	case 0:
		sq.target.Title().SetTitle(rest)
	case 1:
		// Icon name: no dedicated provider, ignored.
	case 2:
		sq.target.Title().SetTitle(rest)
	case 4:
		sq.oscSetOrQueryPalette(rest)
	case 7:
		sq.target.Screen().SetWorkingDirectory(stripFileURI(rest))
	case 8:
		sq.oscHyperlink(rest)
	case 10:
		sq.oscColor(rest, oscFgSlot)
	case 11:
		sq.oscColor(rest, oscBgSlot)
	case 12:
		sq.oscColor(rest, oscCursorSlot)
	case 52:
		sq.oscClipboard(rest)
	case 104:
		sq.oscResetPalette(rest)
	case 110:
		sq.target.resetDefaultForeground()
	case 111:
		sq.target.resetDefaultBackground()
	case 112:
		sq.target.resetCursorColor()
	case 133:
		sq.oscShellIntegration(rest)
	case 777:
		sq.oscNotify(rest)
	case 1337:
		sq.oscCapture(rest)
	default:
		logDiagnostic(sq.log, UnsupportedSequenceKind, "unhandled OSC %d", ps)
	}
}

// splitOSC separates the leading numeric Ps from the rest of the payload.
func splitOSC(text string) (ps int, rest string, ok bool) {
	i := strings.IndexByte(text, ';')
	numPart := text
	if i >= 0 {
		numPart = text[:i]
		rest = text[i+1:]
	}
	n, err := strconv.Atoi(numPart)
	if err != nil {
		return 0, "", false
	}
	return n, rest, true
}

// --- OSC 8: hyperlinks -------------------------------------------------

func (sq *Sequencer) oscHyperlink(rest string) {
	i := strings.IndexByte(rest, ';')
	if i < 0 {
		return
	}
	params, uri := rest[:i], rest[i+1:]
	var id string
	for _, kv := range strings.Split(params, ":") {
		if strings.HasPrefix(kv, "id=") {
			id = kv[len("id="):]
		}
	}
	sq.target.Screen().SetHyperlink(id, uri)
}

// --- OSC 7: working directory -------------------------------------------

func stripFileURI(s string) string {
	if !strings.HasPrefix(s, "file://") {
		return s
	}
	rest := s[len("file://"):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[i:]
	}
	return rest
}

// --- OSC 4/104: palette ---------------------------------------------------

func (sq *Sequencer) oscSetOrQueryPalette(rest string) {
	fields := strings.Split(rest, ";")
	for i := 0; i+1 < len(fields); i += 2 {
		idx, err := strconv.Atoi(fields[i])
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		spec := fields[i+1]
		if spec == "?" {
			c := sq.target.PaletteColor(idx)
			sq.target.Reply("\x1b]4;" + strconv.Itoa(idx) + ";" + formatColorSpec(c) + "\x1b\\")
			continue
		}
		if c, ok := parseColorSpec(spec); ok {
			sq.target.SetPaletteColor(idx, c)
		}
	}
}

func (sq *Sequencer) oscResetPalette(rest string) {
	if strings.TrimSpace(rest) == "" {
		for i := 0; i < 256; i++ {
			sq.target.ResetPaletteColor(i)
		}
		return
	}
	for _, f := range strings.Split(rest, ";") {
		if idx, err := strconv.Atoi(f); err == nil {
			sq.target.ResetPaletteColor(idx)
		}
	}
}

// --- OSC 10/11/12: default colors -----------------------------------------

type oscColorSlot int

const (
	oscFgSlot oscColorSlot = iota
	oscBgSlot
	oscCursorSlot
)

func (sq *Sequencer) oscColor(rest string, slot oscColorSlot) {
	if rest == "?" {
		var c color.RGBA
		switch slot {
		case oscFgSlot:
			c = sq.target.DefaultForegroundColor()
		case oscBgSlot:
			c = sq.target.DefaultBackgroundColor()
		case oscCursorSlot:
			c = sq.target.CursorDisplayColor()
		}
		ps := map[oscColorSlot]int{oscFgSlot: 10, oscBgSlot: 11, oscCursorSlot: 12}[slot]
		sq.target.Reply("\x1b]" + strconv.Itoa(ps) + ";" + formatColorSpec(c) + "\x1b\\")
		return
	}
	c, ok := parseColorSpec(rest)
	if !ok {
		return
	}
	switch slot {
	case oscFgSlot:
		sq.target.SetDefaultForegroundColor(c)
	case oscBgSlot:
		sq.target.SetDefaultBackgroundColor(c)
	case oscCursorSlot:
		sq.target.SetCursorDisplayColor(c)
	}
}

// parseColorSpec parses "#RRGGBB" or "rgb:RR../GG../BB.." (1-4 hex digits
// per channel, scaled to 8 bits).
func parseColorSpec(spec string) (color.RGBA, bool) {
	if strings.HasPrefix(spec, "#") {
		h := spec[1:]
		if len(h)%3 != 0 {
			return color.RGBA{}, false
		}
		n := len(h) / 3
		r := scaleHex(h[0:n])
		g := scaleHex(h[n : 2*n])
		b := scaleHex(h[2*n : 3*n])
		return color.RGBA{R: r, G: g, B: b, A: 255}, true
	}
	if strings.HasPrefix(spec, "rgb:") {
		parts := strings.Split(spec[4:], "/")
		if len(parts) != 3 {
			return color.RGBA{}, false
		}
		return color.RGBA{R: scaleHex(parts[0]), G: scaleHex(parts[1]), B: scaleHex(parts[2]), A: 255}, true
	}
	return color.RGBA{}, false
}

func scaleHex(h string) uint8 {
	if h == "" {
		return 0
	}
	v, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return 0
	}
	maxVal := uint64(1)<<(4*len(h)) - 1
	return uint8(v * 255 / maxVal)
}

// formatColorSpec renders c in xterm's 16-bit-per-channel "rgb:" reply form,
// duplicating each 8-bit hex pair the way xterm reports an 8-bit channel at
// 16-bit precision.
func formatColorSpec(c color.RGBA) string {
	hx := func(v uint8) string {
		s := strconv.FormatUint(uint64(v), 16)
		if len(s) == 1 {
			s = "0" + s
		}
		return s + s
	}
	return "rgb:" + hx(c.R) + "/" + hx(c.G) + "/" + hx(c.B)
}

// --- OSC 52: clipboard -----------------------------------------------------

func (sq *Sequencer) oscClipboard(rest string) {
	i := strings.IndexByte(rest, ';')
	if i < 0 {
		return
	}
	selectors, data := rest[:i], rest[i+1:]
	if selectors == "" {
		selectors = "c"
	}
	sel := selectors[0]
	if data == "?" {
		b64 := sq.target.Clipboard().Read(sel)
		sq.target.Reply("\x1b]52;" + string(sel) + ";" + b64 + "\x1b\\")
		return
	}
	sq.target.Clipboard().Write(sel, []byte(data))
}

// --- OSC 133: shell integration --------------------------------------------

func (sq *Sequencer) oscShellIntegration(rest string) {
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) == 0 {
		return
	}
	s := sq.target.Screen()
	switch parts[0] {
	case "A":
		s.RecordPromptMark(PromptStart, -1)
	case "B":
		s.RecordPromptMark(CommandStart, -1)
	case "C":
		s.RecordPromptMark(CommandExecuted, -1)
	case "D":
		code := -1
		if len(parts) > 1 {
			if v, err := strconv.Atoi(strings.TrimPrefix(parts[1], ";")); err == nil {
				code = v
			}
		}
		s.RecordPromptMark(CommandFinished, code)
	}
}

// --- OSC 777: desktop notification -----------------------------------------

func (sq *Sequencer) oscNotify(rest string) {
	parts := strings.Split(rest, ";")
	if len(parts) < 2 || parts[0] != "notify" {
		return
	}
	title := parts[1]
	body := ""
	if len(parts) > 2 {
		body = strings.Join(parts[2:], ";")
	}
	sq.target.Notify().Notify(title, body)
}

// --- OSC 1337: inline image capture ----------------------------------------

// oscCapture implements the iTerm2 inline-image subset of OSC 1337: a
// "File=...:base64" payload is decoded and placed at the cursor the same way
// a Kitty "transmit and display" command would be, giving terminals that
// speak this older protocol a working inline-image path too.
func (sq *Sequencer) oscCapture(rest string) {
	if !strings.HasPrefix(rest, "File=") {
		return
	}
	i := strings.IndexByte(rest, ':')
	if i < 0 {
		return
	}
	meta, payload := rest[len("File="):i], rest[i+1:]
	inline := false
	for _, kv := range strings.Split(meta, ";") {
		if kv == "inline=1" {
			inline = true
		}
	}
	if !inline {
		return
	}
	sq.placeDecodedImage([]byte(payload), true, 0, 0)
}
