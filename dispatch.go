package vtcore

// functionTable maps every recognized CSI/ESC 4-tuple to its
// FunctionDefinition. Built once at init.
var functionTable = map[FunctionKey]FunctionDefinition{}

func def(category SequenceCategory, leader byte, intermediates string, final byte, mnemonic string, handle func(*Sequencer, Sequence) Status) {
	key := FunctionKey{Category: category, Leader: leader, Intermediates: intermediates, Final: final}
	functionTable[key] = FunctionDefinition{Key: key, Mnemonic: mnemonic, Handle: handle}
}

// p1 returns CSI parameter i, defaulting 0 and missing both to 1 (the usual
// "count" convention: CSI 0 A means "move up 1", not "move up 0").
func p1(seq Sequence, i int) int {
	v := seq.Param(i, 1)
	if v <= 0 {
		return 1
	}
	return v
}

func init() {
	registerCursorMotion()
	registerErase()
	registerEditing()
	registerScrolling()
	registerMargins()
	registerModes()
	registerSGR()
	registerReports()
	registerMisc()
	registerCharsetDesignate()
	registerRectangles()
}

// --- Cursor motion (CUU/CUD/CUF/CUB/CNL/CPL/CHA/CUP/VPA/HPA/HPR/HVP) -------

func registerCursorMotion() {
	def(SeqCsi, 0, "", 'A', "CUU", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().CursorUp(p1(seq, 0))
		return StatusOk
	})
	def(SeqCsi, 0, "", 'B', "CUD", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().CursorDown(p1(seq, 0))
		return StatusOk
	})
	def(SeqCsi, 0, "", 'C', "CUF", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().CursorForward(p1(seq, 0))
		return StatusOk
	})
	def(SeqCsi, 0, "", 'D', "CUB", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().CursorBackward(p1(seq, 0))
		return StatusOk
	})
	def(SeqCsi, 0, "", 'E', "CNL", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().CursorNextLine(p1(seq, 0))
		return StatusOk
	})
	def(SeqCsi, 0, "", 'F', "CPL", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().CursorPrevLine(p1(seq, 0))
		return StatusOk
	})
	def(SeqCsi, 0, "", 'G', "CHA", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().CursorHorizontalAbsolute(p1(seq, 0) - 1)
		return StatusOk
	})
	def(SeqCsi, 0, "", '`', "HPA", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().CursorHorizontalAbsolute(p1(seq, 0) - 1)
		return StatusOk
	})
	def(SeqCsi, 0, "", 'a', "HPR", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().CursorForward(p1(seq, 0))
		return StatusOk
	})
	def(SeqCsi, 0, "", 'd', "VPA", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().CursorVerticalAbsolute(p1(seq, 0) - 1)
		return StatusOk
	})
	def(SeqCsi, 0, "", 'e', "VPR", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().CursorDown(p1(seq, 0))
		return StatusOk
	})
	cup := func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().MoveCursorTo(p1(seq, 0)-1, p1(seq, 1)-1)
		return StatusOk
	}
	def(SeqCsi, 0, "", 'H', "CUP", cup)
	def(SeqCsi, 0, "", 'f', "HVP", cup)
	def(SeqCsi, 0, "", 'I', "CHT", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().MoveToNextTab(p1(seq, 0))
		return StatusOk
	})
	def(SeqCsi, 0, "", 'Z', "CBT", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().MoveToPrevTab(p1(seq, 0))
		return StatusOk
	})
	def(SeqEsc, 0, "", 'H', "HTS", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().HorizontalTabSet()
		return StatusOk
	})
	def(SeqCsi, 0, "", 'g', "TBC", func(sq *Sequencer, seq Sequence) Status {
		s := sq.target.Screen()
		switch seq.Param(0, 0) {
		case 0:
			s.ClearTabAtCursor()
		case 3:
			s.ClearAllTabs()
		default:
			return StatusInvalid
		}
		return StatusOk
	})
}

// --- Erase (ED/EL/DECSED/DECSEL) -------------------------------------------

func registerErase() {
	def(SeqCsi, 0, "", 'J', "ED", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().EraseInDisplay(seq.Param(0, 0), false)
		return StatusOk
	})
	def(SeqCsi, '?', "", 'J', "DECSED", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().EraseInDisplay(seq.Param(0, 0), true)
		return StatusOk
	})
	def(SeqCsi, 0, "", 'K', "EL", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().EraseInLine(seq.Param(0, 0), false)
		return StatusOk
	})
	def(SeqCsi, '?', "", 'K', "DECSEL", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().EraseInLine(seq.Param(0, 0), true)
		return StatusOk
	})
}

// --- Editing (ICH/DCH/IL/DL/ECH) -------------------------------------------

func registerEditing() {
	def(SeqCsi, 0, "", '@', "ICH", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().InsertChars(p1(seq, 0))
		return StatusOk
	})
	def(SeqCsi, 0, "", 'P', "DCH", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().DeleteChars(p1(seq, 0))
		return StatusOk
	})
	def(SeqCsi, 0, "", 'L', "IL", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().InsertLines(p1(seq, 0))
		return StatusOk
	})
	def(SeqCsi, 0, "", 'M', "DL", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().DeleteLines(p1(seq, 0))
		return StatusOk
	})
	def(SeqCsi, 0, "", 'X', "ECH", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().EraseChars(p1(seq, 0))
		return StatusOk
	})
}

// --- Scrolling & index (SU/SD/RI/IND/NEL/DECBI/DECFI) ----------------------

func registerScrolling() {
	def(SeqCsi, 0, "", 'S', "SU", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().ScrollUp(p1(seq, 0))
		return StatusOk
	})
	def(SeqCsi, 0, "", 'T', "SD", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().ScrollDown(p1(seq, 0))
		return StatusOk
	})
	def(SeqEsc, 0, "", 'D', "IND", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().Index()
		return StatusOk
	})
	def(SeqEsc, 0, "", 'M', "RI", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().ReverseIndex()
		return StatusOk
	})
	def(SeqEsc, 0, "", 'E', "NEL", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().NextLine()
		return StatusOk
	})
	def(SeqEsc, 0, "", '6', "DECBI", func(sq *Sequencer, seq Sequence) Status {
		s := sq.target.Screen()
		if s.Cursor.Column == s.Margin.EffectiveLeft() {
			s.ScrollRight(1)
		} else {
			s.CursorBackward(1)
		}
		return StatusOk
	})
	def(SeqEsc, 0, "", '9', "DECFI", func(sq *Sequencer, seq Sequence) Status {
		s := sq.target.Screen()
		if s.Cursor.Column == s.Margin.EffectiveRight(s.Grid.Cols()) {
			s.ScrollLeft(1)
		} else {
			s.CursorForward(1)
		}
		return StatusOk
	})
}

// --- Margins (DECSTBM/DECSLRM/DECSCPP/DECSNLS) -----------------------------

func registerMargins() {
	def(SeqCsi, 0, "", 'r', "DECSTBM", func(sq *Sequencer, seq Sequence) Status {
		s := sq.target.Screen()
		top := seq.Param(0, 1) - 1
		bottom := seq.Param(1, s.Grid.Lines()) - 1
		return s.SetTopBottomMargin(top, bottom)
	})
	def(SeqCsi, 0, "", 's', "DECSLRM", func(sq *Sequencer, seq Sequence) Status {
		s := sq.target.Screen()
		if !s.Modes.DEC(DECModeLeftRightMargin) {
			// Ambiguous with SCOSC (save cursor, no params expected); treat a
			// bare "CSI s" as SCOSC when the mode isn't enabled.
			s.SaveCursor()
			return StatusOk
		}
		left := seq.Param(0, 1) - 1
		right := seq.Param(1, s.Grid.Cols()) - 1
		return s.SetLeftRightMargin(left, right)
	})
	def(SeqCsi, 0, "$", '|', "DECSCPP", func(sq *Sequencer, seq Sequence) Status {
		cols := seq.Param(0, 80)
		if cols != 80 && cols != 132 {
			return StatusInvalid
		}
		s := sq.target.Screen()
		s.Resize(s.Grid.Lines(), cols)
		return StatusOk
	})
	def(SeqCsi, 0, "*", '|', "DECSNLS", func(sq *Sequencer, seq Sequence) Status {
		s := sq.target.Screen()
		lines := seq.Param(0, s.Grid.Lines())
		s.Resize(lines, s.Grid.Cols())
		return StatusOk
	})
}

// --- Modes (SM/RM/DECSM/DECRM/XTSAVE/XTRESTORE/DECRQM) ---------------------

func setAllAnsi(modes *ModeState, params []Param, enabled bool) {
	for _, p := range params {
		modes.SetAnsi(AnsiMode(p.First(0)), enabled)
	}
}

func setAllDEC(sq *Sequencer, params []Param, enabled bool) {
	s := sq.target.Screen()
	for _, p := range params {
		m := DECMode(p.First(0))
		s.Modes.SetDEC(m, enabled)
		applyDECModeSideEffect(sq, m, enabled)
	}
}

// applyDECModeSideEffect handles the DEC private modes that mean more than
// "remember a bit": alt-screen selection, 1048 cursor save/restore, origin
// mode, cursor visibility, autowrap, 132-column switching, reverse video,
// and left/right margin mode.
func applyDECModeSideEffect(sq *Sequencer, m DECMode, enabled bool) {
	switch m {
	case DECModeAltScreen47:
		if enabled {
			sq.target.EnterAlternateScreen(false)
		} else {
			sq.target.ExitAlternateScreen(false)
		}
	case DECModeAltScreen1047:
		if enabled {
			sq.target.EnterAlternateScreen(false)
		} else {
			sq.target.ExitAlternateScreen(false)
		}
	case DECModeAltScreen1049:
		if enabled {
			sq.target.EnterAlternateScreen(true)
		} else {
			sq.target.ExitAlternateScreen(true)
		}
	case DECModeSaveCursor1048:
		if enabled {
			sq.target.Screen().SaveCursor()
		} else {
			sq.target.Screen().RestoreCursor()
		}
	case DECModeOrigin:
		s := sq.target.Screen()
		s.Cursor.OriginMode = enabled
		s.MoveCursorTo(0, 0)
	case DECModeVisibleCursor:
		sq.target.Screen().Cursor.Visible = enabled
	case DECModeAutoWrap:
		s := sq.target.Screen()
		s.Cursor.AutoWrap = enabled
		if !enabled {
			s.Cursor.WrapPending = false
		}
	case DECMode132Column:
		// DECCOLM: switch column count, clear the page, home the cursor,
		// and reset margins.
		s := sq.target.Screen()
		cols := 80
		if enabled {
			cols = 132
		}
		sq.target.Resize(s.Grid.Lines(), cols)
		s = sq.target.Screen()
		s.Grid.ClearAll(GraphicsAttributes{})
		s.Margin = NewMargin(s.Grid.Lines(), s.Grid.Cols())
		s.Cursor.Line, s.Cursor.Column = 0, 0
	case DECModeReverseVideo:
		sq.target.Screen().reverseVideo = enabled
	case DECModeLeftRightMargin:
		s := sq.target.Screen()
		s.Margin.HorizontalEnabled = enabled
		if !enabled {
			s.Margin.Left, s.Margin.Right = 0, s.Grid.Cols()-1
		}
	}
}

func decModesFromParams(params []Param) []DECMode {
	out := make([]DECMode, len(params))
	for i, p := range params {
		out[i] = DECMode(p.First(0))
	}
	return out
}

func registerModes() {
	def(SeqCsi, 0, "", 'h', "SM", func(sq *Sequencer, seq Sequence) Status {
		setAllAnsi(sq.target.Screen().Modes, seq.Params, true)
		return StatusOk
	})
	def(SeqCsi, 0, "", 'l', "RM", func(sq *Sequencer, seq Sequence) Status {
		setAllAnsi(sq.target.Screen().Modes, seq.Params, false)
		return StatusOk
	})
	def(SeqCsi, '?', "", 'h', "DECSM", func(sq *Sequencer, seq Sequence) Status {
		setAllDEC(sq, seq.Params, true)
		return StatusOk
	})
	def(SeqCsi, '?', "", 'l', "DECRM", func(sq *Sequencer, seq Sequence) Status {
		setAllDEC(sq, seq.Params, false)
		return StatusOk
	})
	def(SeqCsi, '?', "", 's', "XTSAVE", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().Modes.SaveDEC(decModesFromParams(seq.Params))
		return StatusOk
	})
	def(SeqCsi, '?', "", 'r', "XTRESTORE", func(sq *Sequencer, seq Sequence) Status {
		modes := decModesFromParams(seq.Params)
		s := sq.target.Screen()
		s.Modes.RestoreDEC(modes)
		for _, m := range modes {
			applyDECModeSideEffect(sq, m, s.Modes.DEC(m))
		}
		return StatusOk
	})
	def(SeqCsi, 0, "$", 'p', "DECRQM_ANSI", func(sq *Sequencer, seq Sequence) Status {
		mode := AnsiMode(seq.Param(0, 0))
		status := sq.target.Screen().Modes.RequestAnsi(mode)
		sq.target.Reply(csiReply("%d;%d$y", seq.Param(0, 0), int(status)))
		return StatusOk
	})
	def(SeqCsi, '?', "$", 'p', "DECRQM", func(sq *Sequencer, seq Sequence) Status {
		mode := DECMode(seq.Param(0, 0))
		status := sq.target.Screen().Modes.RequestDEC(mode)
		sq.target.Reply(csiReply("?%d;%d$y", seq.Param(0, 0), int(status)))
		return StatusOk
	})
}

// --- SGR --------------------------------------------------------------------

func registerSGR() {
	def(SeqCsi, 0, "", 'm', "SGR", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().ApplySGR(seq.Params)
		return StatusOk
	})
}

// --- Reports (DA1/DA2/DA3/DSR/ANSIDSR/DECXCPR/DECRQSS/DECRQPSR) ------------

func registerReports() {
	def(SeqCsi, 0, "", 'c', "DA1", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Reply(csiReply("?62;22c"))
		return StatusOk
	})
	def(SeqCsi, '>', "", 'c', "DA2", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Reply(csiReply(">1;10;0c"))
		return StatusOk
	})
	def(SeqCsi, '=', "", 'c', "DA3", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Reply("\x1bP!|00000000\x1b\\")
		return StatusOk
	})
	def(SeqCsi, 0, "", 'n', "DSR", func(sq *Sequencer, seq Sequence) Status {
		s := sq.target.Screen()
		switch seq.Param(0, 0) {
		case 5: // ANSIDSR: device status
			sq.target.Reply(csiReply("0n"))
		case 6: // CPR
			sq.target.Reply(s.ReportCursorPosition(false))
		default:
			return StatusUnsupported
		}
		return StatusOk
	})
	def(SeqCsi, '?', "", 'n', "DECXCPR", func(sq *Sequencer, seq Sequence) Status {
		if seq.Param(0, 0) != 6 {
			return StatusUnsupported
		}
		sq.target.Reply(sq.target.Screen().ReportCursorPosition(true))
		return StatusOk
	})
	// DECRQSS, DECSIXEL, and XTGETTCAP are DCS sequences: the Sequencer
	// routes those through its dcsKind switch (see DcsHook/DcsUnhook in
	// sequencer.go) rather than functionTable, since their payload arrives
	// byte-by-byte via DcsPut instead of as parsed CSI/ESC parameters.
	def(SeqCsi, 0, "$", 'w', "DECRQPSR", func(sq *Sequencer, seq Sequence) Status {
		s := sq.target.Screen()
		switch seq.Param(0, 0) {
		case 1: // cursor information report
			sq.target.Reply("\x1bP1$u" + cursorInfoReport(s) + "\x1b\\")
		case 2: // tab stop report (DECTABSR)
			sq.target.Reply("\x1bP2$u" + tabStopReport(s) + "\x1b\\")
		default:
			return StatusInvalid
		}
		return StatusOk
	})
}

// --- Cursor style, protection, soft/hard reset, screen alignment ----------

func registerMisc() {
	def(SeqCsi, 0, " ", 'q', "DECSCUSR", func(sq *Sequencer, seq Sequence) Status {
		style := seq.Param(0, 1)
		if style < 0 || style > 6 {
			return StatusInvalid
		}
		if style == 0 {
			style = 1
		}
		sq.target.Screen().Cursor.Style = CursorStyle(style - 1)
		return StatusOk
	})
	def(SeqCsi, 0, "\"", 'q', "DECSCA", func(sq *Sequencer, seq Sequence) Status {
		switch seq.Param(0, 0) {
		case 1:
			sq.target.Screen().SetCharacterProtection(true)
		case 0, 2:
			sq.target.Screen().SetCharacterProtection(false)
		default:
			return StatusInvalid
		}
		return StatusOk
	})
	def(SeqCsi, 0, "!", 'p', "DECSTR", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().SoftReset()
		return StatusOk
	})
	def(SeqEsc, 0, "", 'c', "RIS", func(sq *Sequencer, seq Sequence) Status {
		sq.target.HardReset()
		return StatusOk
	})
	def(SeqEsc, 0, "#", '8', "DECALN", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().ScreenAlignmentPattern()
		return StatusOk
	})
	def(SeqEsc, 0, "", '7', "DECSC", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().SaveCursor()
		return StatusOk
	})
	def(SeqEsc, 0, "", '8', "DECRC", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().RestoreCursor()
		return StatusOk
	})
	def(SeqCsi, 0, "", 'u', "ANSISYSRC", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().RestoreCursor()
		return StatusOk
	})
	def(SeqEsc, 0, "", '=', "DECKPAM", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().Modes.SetDEC(DECModeApplicationKeypad, true)
		return StatusOk
	})
	def(SeqEsc, 0, "", '>', "DECKPNM", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().Modes.SetDEC(DECModeApplicationKeypad, false)
		return StatusOk
	})
	def(SeqCsi, 0, "", 't', "WINMANIP", handleWinManip)
	def(SeqCsi, '?', "", 'S', "XTSMGRAPHICS", handleXTSMGraphics)
	registerKittyKeyboard()
}

// --- Kitty keyboard protocol (CSI > u / < u / = u / ? u) --------------------

func registerKittyKeyboard() {
	def(SeqCsi, '>', "", 'u', "KITTYKBDPUSH", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Input().PushKeyboardEnhancement(KeyboardEnhancement(seq.Param(0, 0)))
		return StatusOk
	})
	def(SeqCsi, '<', "", 'u', "KITTYKBDPOP", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Input().PopKeyboardEnhancement(seq.Param(0, 1))
		return StatusOk
	})
	def(SeqCsi, '=', "", 'u', "KITTYKBDSET", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Input().SetKeyboardEnhancement(KeyboardEnhancement(seq.Param(0, 0)))
		return StatusOk
	})
	def(SeqCsi, '?', "", 'u', "KITTYKBDQUERY", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Reply(csiReply("?%du", int(sq.target.Input().CurrentKeyboardEnhancement())))
		return StatusOk
	})
}

// --- Charset designation (ESC ( / ) / * / + <final>) -----------------------

var designateFinals = map[byte]Charset{
	'B': CharsetASCII,
	'A': CharsetUK,
	'0': CharsetLineDrawing,
	'4': CharsetDutch,
	'C': CharsetFinnish,
	'5': CharsetFinnish,
	'R': CharsetFrench,
	'f': CharsetFrench,
	'Q': CharsetFrenchCanadian,
	'9': CharsetFrenchCanadian,
	'K': CharsetGerman,
	'Y': CharsetItalian,
	'E': CharsetNorwegianDanish,
	'6': CharsetNorwegianDanish,
	'Z': CharsetSpanish,
	'H': CharsetSwedish,
	'7': CharsetSwedish,
	'=': CharsetSwiss,
}

func registerCharsetDesignate() {
	slots := []struct {
		intermediate string
		index        CharsetIndex
	}{
		{"(", CharsetIndexG0},
		{")", CharsetIndexG1},
		{"*", CharsetIndexG2},
		{"+", CharsetIndexG3},
	}
	for _, slot := range slots {
		slot := slot
		for final, cs := range designateFinals {
			final, cs := final, cs
			def(SeqEsc, 0, slot.intermediate, final, "SCS", func(sq *Sequencer, seq Sequence) Status {
				sq.target.Screen().Cursor.Charsets.Designate(slot.index, cs)
				return StatusOk
			})
		}
	}
	def(SeqEsc, 0, "", 'N', "SS2", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().Cursor.Charsets.SingleShiftSelect(CharsetIndexG2)
		return StatusOk
	})
	def(SeqEsc, 0, "", 'O', "SS3", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().Cursor.Charsets.SingleShiftSelect(CharsetIndexG3)
		return StatusOk
	})
}

// --- Rectangular area editing (DECERA/DECFRA/DECSERA/DECCARA/DECCRA) -------

func registerRectangles() {
	def(SeqCsi, 0, "$", 'z', "DECERA", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().EraseRectangle(seq.Param(0, 1)-1, seq.Param(1, 1)-1, seq.Param(2, 1)-1, seq.Param(3, 1)-1)
		return StatusOk
	})
	def(SeqCsi, 0, "$", 'x', "DECFRA", func(sq *Sequencer, seq Sequence) Status {
		ch := rune(seq.Param(0, ' '))
		sq.target.Screen().FillRectangle(seq.Param(1, 1)-1, seq.Param(2, 1)-1, seq.Param(3, 1)-1, seq.Param(4, 1)-1, ch)
		return StatusOk
	})
	def(SeqCsi, 0, "$", '{', "DECSERA", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().SelectiveEraseRectangle(seq.Param(0, 1)-1, seq.Param(1, 1)-1, seq.Param(2, 1)-1, seq.Param(3, 1)-1)
		return StatusOk
	})
	def(SeqCsi, 0, "$", 'r', "DECCARA", func(sq *Sequencer, seq Sequence) Status {
		if seq.ParamCount() < 4 {
			return StatusInvalid
		}
		codes := seq.Params[4:]
		sq.target.Screen().ChangeRectangleAttributes(
			seq.Param(0, 1)-1, seq.Param(1, 1)-1, seq.Param(2, 1)-1, seq.Param(3, 1)-1,
			func(a GraphicsAttributes) GraphicsAttributes {
				for _, c := range codes {
					a = applyRectSGRCode(a, c.First(0))
				}
				return a
			})
		return StatusOk
	})
	def(SeqCsi, 0, "$", 'v', "DECCRA", func(sq *Sequencer, seq Sequence) Status {
		sq.target.Screen().CopyRectangle(
			seq.Param(0, 1)-1, seq.Param(1, 1)-1, seq.Param(2, 1)-1, seq.Param(3, 1)-1,
			seq.Param(5, 1)-1, seq.Param(6, 1)-1)
		return StatusOk
	})
}

func applyRectSGRCode(a GraphicsAttributes, code int) GraphicsAttributes {
	switch code {
	case 0:
		return GraphicsAttributes{}
	case 1:
		return a.WithFlag(CellFlagBold)
	case 4:
		return a.WithFlag(CellFlagUnderline)
	case 5:
		return a.WithFlag(CellFlagBlinking)
	case 7:
		return a.WithFlag(CellFlagInverse)
	case 22:
		return a.WithoutFlag(CellFlagBold)
	case 24:
		return a.WithoutFlag(CellFlagUnderline)
	case 25:
		return a.WithoutFlag(CellFlagBlinking)
	case 27:
		return a.WithoutFlag(CellFlagInverse)
	}
	return a
}
