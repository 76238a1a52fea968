package vtcore

import (
	"testing"
)

func TestScrollRegionReverseIndex(t *testing.T) {
	// Page (5,5) filled, margins rows 2..4, cursor inside, RI twice: the
	// first rises to the margin top, the second scrolls the region down,
	// dropping the region's bottom line.
	term := New(WithSize(5, 5))
	term.WriteString("12345\r\n67890\r\nABCDE\r\nFGHIJ\r\nKLMNO")

	term.WriteString("\x1b[2;4r")
	term.WriteString("\x1b[3;2H")
	term.WriteString("\x1bM\x1bM")

	want := []string{"12345", "", "67890", "ABCDE", "KLMNO"}
	for i, w := range want {
		if got := term.LineText(i); got != w {
			t.Errorf("row %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestScrollRegionLineFeedScrolls(t *testing.T) {
	term := New(WithSize(5, 5))
	term.WriteString("12345\r\n67890\r\nABCDE\r\nFGHIJ\r\nKLMNO")

	term.WriteString("\x1b[2;4r")
	term.WriteString("\x1b[4;1H\n")

	want := []string{"12345", "ABCDE", "FGHIJ", "", "KLMNO"}
	for i, w := range want {
		if got := term.LineText(i); got != w {
			t.Errorf("row %d: expected %q, got %q", i, w, got)
		}
	}
	if term.ScrollbackLen() != 0 {
		t.Errorf("expected region scroll to bypass history, got %d lines", term.ScrollbackLen())
	}
}

func TestScrollRegionResetMovesCursorHome(t *testing.T) {
	term := New(WithSize(10, 10))
	term.WriteString("\x1b[5;5H")

	term.WriteString("\x1b[2;8r")

	row, col := term.CursorPosition()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor home after DECSTBM, got (%d, %d)", row, col)
	}
}

func TestCopyRectangleOverlap(t *testing.T) {
	// DECCRA with overlapping source and destination: the copy order must
	// preserve source content.
	term := New(WithSize(5, 6))
	term.WriteString("ABCDEF\r\nGHIJKL\r\nMNOPQR\r\nSTUVWX\r\nYZ0123")

	// Copy rows 4..5, cols 3..6 to destination top-left row 3, col 2.
	term.WriteString("\x1b[4;3;5;6;1;3;2$v")

	want := []string{"ABCDEF", "GHIJKL", "MUVWXR", "S0123X", "YZ0123"}
	for i, w := range want {
		if got := term.LineText(i); got != w {
			t.Errorf("row %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestFillAndEraseRectangle(t *testing.T) {
	term := New(WithSize(4, 6))

	// DECFRA: fill rows 2..3, cols 2..5 with '#'.
	term.WriteString("\x1b[35;2;2;3;5$x")

	want := []string{"", " ####", " ####", ""}
	for i, w := range want {
		if got := term.LineText(i); got != w {
			t.Errorf("after fill, row %d: expected %q, got %q", i, w, got)
		}
	}

	// DECERA: erase rows 2..3, cols 3..4.
	term.WriteString("\x1b[2;3;3;4$z")

	want = []string{"", " #  #", " #  #", ""}
	for i, w := range want {
		if got := term.LineText(i); got != w {
			t.Errorf("after erase, row %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestSelectiveEraseProtected(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("\x1b[1\"qAB")  // protected
	term.WriteString("\x1b[0\"qCD")  // unprotected
	term.WriteString("\x1b[?K")      // DECSEL to end of line: nothing right of cursor
	term.WriteString("\x1b[1;1H\x1b[?2K")

	if got := term.LineText(0); got != "AB" {
		t.Errorf("expected protected 'AB' to survive DECSEL, got %q", got)
	}
}

func TestSelectiveEraseRectangleProtected(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("\x1b[1\"qAB\x1b[0\"qCD")
	term.WriteString("\x1b[1;1;2;10${")

	if got := term.LineText(0); got != "AB" {
		t.Errorf("expected 'AB' after DECSERA, got %q", got)
	}
}

func TestEraseInLineVariants(t *testing.T) {
	term := New(WithSize(1, 5))
	term.WriteString("ABCDE\x1b[1;3H")

	term.WriteString("\x1b[1K") // to BOL, inclusive
	if got := term.LineText(0); got != "   DE" {
		t.Errorf("expected '   DE' after EL 1, got %q", got)
	}

	term.WriteString("\x1b[0K") // to EOL
	if got := term.LineText(0); got != "" {
		t.Errorf("expected blank after EL 0, got %q", got)
	}
}

func TestEraseChars(t *testing.T) {
	term := New(WithSize(1, 6))
	term.WriteString("ABCDEF\x1b[1;2H\x1b[3X")

	if got := term.LineText(0); got != "A   EF" {
		t.Errorf("expected 'A   EF' after ECH 3, got %q", got)
	}
}

func TestInsertDeleteChars(t *testing.T) {
	term := New(WithSize(1, 6))
	term.WriteString("ABCDEF\x1b[1;2H")

	term.WriteString("\x1b[2@")
	if got := term.LineText(0); got != "A  BCD" {
		t.Errorf("expected 'A  BCD' after ICH 2, got %q", got)
	}

	term.WriteString("\x1b[2P")
	if got := term.LineText(0); got != "ABCD" {
		t.Errorf("expected 'ABCD' after DCH 2, got %q", got)
	}
}

func TestInsertDeleteLines(t *testing.T) {
	term := New(WithSize(4, 5))
	term.WriteString("one\r\ntwo\r\nthree\r\nfour\x1b[2;1H")

	term.WriteString("\x1b[1L")
	want := []string{"one", "", "two", "three"}
	for i, w := range want {
		if got := term.LineText(i); got != w {
			t.Errorf("after IL, row %d: expected %q, got %q", i, w, got)
		}
	}

	term.WriteString("\x1b[1M")
	want = []string{"one", "two", "three", ""}
	for i, w := range want {
		if got := term.LineText(i); got != w {
			t.Errorf("after DL, row %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestInsertReplaceMode(t *testing.T) {
	term := New(WithSize(1, 10))
	term.WriteString("AB\r")

	term.WriteString("\x1b[4hX")
	if got := term.LineText(0); got != "XAB" {
		t.Errorf("expected 'XAB' with IRM set, got %q", got)
	}

	term.WriteString("\x1b[4l\rY")
	if got := term.LineText(0); got != "YAB" {
		t.Errorf("expected 'YAB' with IRM reset, got %q", got)
	}
}

func TestSGRTruecolor(t *testing.T) {
	term := New(WithSize(1, 10))

	term.WriteString("\x1b[38;2;10;20;30mX")
	cell := term.Cell(0, 0)
	if cell.Attrs.Foreground != RGBColor(10, 20, 30) {
		t.Errorf("expected RGB(10,20,30) fg, got %+v", cell.Attrs.Foreground)
	}

	term.WriteString("\x1b[48:2::40:50:60mY")
	cell = term.Cell(0, 1)
	if cell.Attrs.Background != RGBColor(40, 50, 60) {
		t.Errorf("expected RGB(40,50,60) bg from colon form, got %+v", cell.Attrs.Background)
	}

	term.WriteString("\x1b[38:2:70:80:90mZ")
	cell = term.Cell(0, 2)
	if cell.Attrs.Foreground != RGBColor(70, 80, 90) {
		t.Errorf("expected RGB(70,80,90) fg from short colon form, got %+v", cell.Attrs.Foreground)
	}
}

func TestSGRIndexedAndBright(t *testing.T) {
	term := New(WithSize(1, 10))

	term.WriteString("\x1b[31mA\x1b[38;5;123mB\x1b[92mC\x1b[39mD")

	if got := term.Cell(0, 0).Attrs.Foreground; got != IndexedColor(1) {
		t.Errorf("expected indexed 1, got %+v", got)
	}
	if got := term.Cell(0, 1).Attrs.Foreground; got != IndexedColor(123) {
		t.Errorf("expected indexed 123, got %+v", got)
	}
	if got := term.Cell(0, 2).Attrs.Foreground; got != BrightColorOf(2) {
		t.Errorf("expected bright 2, got %+v", got)
	}
	if got := term.Cell(0, 3).Attrs.Foreground; got != DefaultColor {
		t.Errorf("expected default fg after SGR 39, got %+v", got)
	}
}

func TestSGRStyleFlags(t *testing.T) {
	term := New(WithSize(1, 10))

	term.WriteString("\x1b[1;3;4;7mA")
	cell := term.Cell(0, 0)
	for _, f := range []CellFlags{CellFlagBold, CellFlagItalic, CellFlagUnderline, CellFlagInverse} {
		if !cell.HasFlag(f) {
			t.Errorf("expected flag %v set", f)
		}
	}

	term.WriteString("\x1b[0mB")
	cell = term.Cell(0, 1)
	if cell.HasFlag(CellFlagBold) || cell.HasFlag(CellFlagItalic) {
		t.Error("expected SGR 0 to clear styles")
	}
}

func TestSGRUnderlineStyles(t *testing.T) {
	term := New(WithSize(1, 10))

	term.WriteString("\x1b[4:3mA")
	cell0 := term.Cell(0, 0)
	if !cell0.HasFlag(CellFlagCurlyUnderline) {
		t.Error("expected curly underline from SGR 4:3")
	}

	term.WriteString("\x1b[4:0mB")
	cell := term.Cell(0, 1)
	if cell.HasFlag(CellFlagUnderline) || cell.HasFlag(CellFlagCurlyUnderline) {
		t.Error("expected SGR 4:0 to clear underline")
	}

	term.WriteString("\x1b[58;2;1;2;3m\x1b[4mC")
	if got := term.Cell(0, 2).Attrs.UnderlineColor; got != RGBColor(1, 2, 3) {
		t.Errorf("expected underline color RGB(1,2,3), got %+v", got)
	}
}

func TestSaveRestoreCursor(t *testing.T) {
	term := New(WithSize(10, 20))

	term.WriteString("\x1b[31m\x1b[3;5H\x1b7")
	term.WriteString("\x1b[0m\x1b[8;10Hmoved")
	term.WriteString("\x1b8X")

	row, col := term.CursorPosition()
	if row != 2 || col != 5 {
		t.Errorf("expected cursor restored near (2, 4), got (%d, %d)", row, col)
	}
	if got := term.Cell(2, 4).Attrs.Foreground; got != IndexedColor(1) {
		t.Errorf("expected restored red pen, got %+v", got)
	}
}

func TestWideCharacter(t *testing.T) {
	term := New(WithSize(1, 10))

	term.WriteString("日a")

	cell := term.Cell(0, 0)
	if cell.Char != '日' || !cell.IsWide() {
		t.Errorf("expected wide '日' at col 0, got %+v", cell)
	}
	cell1 := term.Cell(0, 1)
	if !cell1.IsWideSpacer() {
		t.Error("expected continuation cell at col 1")
	}
	if term.Cell(0, 2).Char != 'a' {
		t.Errorf("expected 'a' at col 2, got %q", term.Cell(0, 2).Char)
	}

	if got := term.LineText(0); got != "日a" {
		t.Errorf("expected line text '日a', got %q", got)
	}
}

func TestOverwriteWideCharHalf(t *testing.T) {
	term := New(WithSize(1, 10))

	term.WriteString("日\x1b[1;2HX")

	if got := term.Cell(0, 0).Char; got != ' ' {
		t.Errorf("expected orphaned wide cell reset to blank, got %q", got)
	}
	if got := term.Cell(0, 1).Char; got != 'X' {
		t.Errorf("expected 'X' at col 1, got %q", got)
	}
}

func TestCombiningMark(t *testing.T) {
	term := New(WithSize(1, 10))

	term.WriteString("a\u0301b")

	cell := term.Cell(0, 0)
	if cell.Char != 'a' || len(cell.Combining) != 1 || cell.Combining[0] != 0x0301 {
		t.Errorf("expected 'a' with combining acute, got %+v", cell)
	}
	if term.Cell(0, 1).Char != 'b' {
		t.Errorf("expected 'b' at col 1, got %q", term.Cell(0, 1).Char)
	}

	row, col := term.CursorPosition()
	if row != 0 || col != 2 {
		t.Errorf("expected cursor at (0, 2), got (%d, %d)", row, col)
	}
}

func TestScreenAlignmentPattern(t *testing.T) {
	term := New(WithSize(3, 4))

	term.WriteString("\x1b#8")

	for i := 0; i < 3; i++ {
		if got := term.LineText(i); got != "EEEE" {
			t.Errorf("row %d: expected 'EEEE', got %q", i, got)
		}
	}
}

func TestOriginMode(t *testing.T) {
	term := New(WithSize(10, 10))

	term.WriteString("\x1b[3;8r\x1b[?6h")

	row, col := term.CursorPosition()
	if row != 2 || col != 0 {
		t.Errorf("expected cursor at margin origin (2, 0), got (%d, %d)", row, col)
	}

	term.WriteString("\x1b[1;1H")
	row, col = term.CursorPosition()
	if row != 2 || col != 0 {
		t.Errorf("expected CUP 1;1 to land on margin top, got (%d, %d)", row, col)
	}

	// Motion cannot escape the margins while origin mode is set.
	term.WriteString("\x1b[99;1H")
	row, _ = term.CursorPosition()
	if row != 7 {
		t.Errorf("expected cursor clamped to margin bottom 7, got %d", row)
	}

	term.WriteString("\x1b[?6l\x1b[1;1H")
	row, col = term.CursorPosition()
	if row != 0 || col != 0 {
		t.Errorf("expected absolute addressing restored, got (%d, %d)", row, col)
	}
}

func TestLeftRightMargins(t *testing.T) {
	term := New(WithSize(3, 10))
	term.WriteString("0123456789")

	term.WriteString("\x1b[?69h\x1b[3;6s")

	// SU inside the horizontal margin shifts only columns 3..6.
	term.WriteString("\x1b[1S")

	if got := term.LineText(0); got != "01    6789" {
		t.Errorf("expected columns 3-6 blanked on row 0, got %q", got)
	}
}

func TestBackIndexForwardIndex(t *testing.T) {
	term := New(WithSize(2, 4))
	term.WriteString("AB")

	term.WriteString("\x1b9") // DECFI: not at right edge, plain motion
	_, col := term.CursorPosition()
	if col != 3 {
		t.Errorf("expected cursor at col 3, got %d", col)
	}

	term.WriteString("\x1b9") // at right edge: pan left
	if got := term.LineText(0); got != "B" {
		t.Errorf("expected 'B' after pan left, got %q", got)
	}

	term.WriteString("\x1b[1;1H\x1b6") // DECBI at left edge: pan right
	if got := term.LineText(0); got != " B" {
		t.Errorf("expected ' B' after pan right, got %q", got)
	}
}

func TestSoftReset(t *testing.T) {
	term := New(WithSize(10, 10))

	term.WriteString("keep\x1b[31m\x1b[2;8r")
	term.WriteString("\x1b[!p")

	if got := term.LineText(0); got != "keep" {
		t.Errorf("expected content preserved by DECSTR, got %q", got)
	}

	top, bottom := term.ScrollRegion()
	if top != 0 || bottom != 9 {
		t.Errorf("expected full margins after DECSTR, got %d..%d", top, bottom)
	}

	term.WriteString("X")
	if got := term.Cell(0, 0).Attrs.Foreground; got != DefaultColor {
		t.Errorf("expected default pen after DECSTR, got %+v", got)
	}
}

func TestCursorStyle(t *testing.T) {
	term := New()

	term.WriteString("\x1b[4 q")
	if term.CursorStyle() != CursorStyleSteadyUnderline {
		t.Errorf("expected steady underline, got %v", term.CursorStyle())
	}

	term.WriteString("\x1b[0 q")
	if term.CursorStyle() != CursorStyleBlinkingBlock {
		t.Errorf("expected default blinking block, got %v", term.CursorStyle())
	}
}

func TestCursorVisibility(t *testing.T) {
	term := New()

	if !term.CursorVisible() {
		t.Error("expected cursor visible by default")
	}

	term.WriteString("\x1b[?25l")
	if term.CursorVisible() {
		t.Error("expected cursor hidden after DECRST 25")
	}

	term.WriteString("\x1b[?25h")
	if !term.CursorVisible() {
		t.Error("expected cursor visible after DECSET 25")
	}
}

func TestCursorMotionClamped(t *testing.T) {
	term := New(WithSize(5, 5))

	term.WriteString("\x1b[99;99H")
	row, col := term.CursorPosition()
	if row != 4 || col != 4 {
		t.Errorf("expected clamp to (4, 4), got (%d, %d)", row, col)
	}

	term.WriteString("\x1b[99A\x1b[99D")
	row, col = term.CursorPosition()
	if row != 0 || col != 0 {
		t.Errorf("expected clamp to (0, 0), got (%d, %d)", row, col)
	}
}

func TestTabStops(t *testing.T) {
	term := New(WithSize(2, 40))

	term.WriteString("\tA")
	_, col := term.CursorPosition()
	if col != 9 {
		t.Errorf("expected cursor at 9 after tab + A, got %d", col)
	}

	// Set a custom stop at column 12, clear all defaults first.
	term.WriteString("\r\x1b[3g\x1b[1;13H\x1bH\r\tB")
	_, col = term.CursorPosition()
	if col != 13 {
		t.Errorf("expected custom stop at 12 then B, got cursor %d", col)
	}
}

func TestCursorBackwardTab(t *testing.T) {
	term := New(WithSize(1, 40))

	term.WriteString("\x1b[1;20H\x1b[2Z")
	_, col := term.CursorPosition()
	if col != 8 {
		t.Errorf("expected CBT 2 from col 19 to land on 8, got %d", col)
	}
}

func TestAutoWrapDisabled(t *testing.T) {
	term := New(WithSize(2, 3))

	term.WriteString("\x1b[?7lABCD")

	if got := term.LineText(0); got != "ABD" {
		t.Errorf("expected overwrite at right edge 'ABD', got %q", got)
	}
	row, _ := term.CursorPosition()
	if row != 0 {
		t.Errorf("expected no wrap, got row %d", row)
	}
}

func TestWrappedFlagJoinsLogicalLine(t *testing.T) {
	term := New(WithSize(3, 4))

	term.WriteString("abcdef")

	logical := term.primary.Grid.LogicalLinesFrom(0)
	if len(logical) == 0 || logical[0].Text != "abcdef" {
		t.Fatalf("expected joined logical line 'abcdef', got %+v", logical)
	}
}
