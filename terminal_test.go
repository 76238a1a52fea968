package vtcore

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewTerminal(t *testing.T) {
	term := New()

	if term.Rows() != 24 {
		t.Errorf("expected 24 rows, got %d", term.Rows())
	}
	if term.Cols() != 80 {
		t.Errorf("expected 80 cols, got %d", term.Cols())
	}
}

func TestTerminalWithSize(t *testing.T) {
	term := New(WithSize(40, 120))

	if term.Rows() != 40 {
		t.Errorf("expected 40 rows, got %d", term.Rows())
	}
	if term.Cols() != 120 {
		t.Errorf("expected 120 cols, got %d", term.Cols())
	}
}

func TestTerminalWrite(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("Hello")

	if got := term.LineText(0); got != "Hello" {
		t.Errorf("expected 'Hello', got %q", got)
	}
}

func TestTerminalCursorPosition(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("ABC")

	row, col := term.CursorPosition()
	if row != 0 || col != 3 {
		t.Errorf("expected cursor at (0, 3), got (%d, %d)", row, col)
	}
}

func TestTerminalNewline(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("Line1\r\nLine2")

	if term.LineText(0) != "Line1" {
		t.Errorf("expected 'Line1', got %q", term.LineText(0))
	}
	if term.LineText(1) != "Line2" {
		t.Errorf("expected 'Line2', got %q", term.LineText(1))
	}
}

func TestTerminalAutoWrapAtRightMargin(t *testing.T) {
	// Page (2,3): "ABC" fills row 0 and leaves the cursor pending on the
	// last column; the next character wraps.
	term := New(WithSize(2, 3))

	term.WriteString("ABC")

	if got := term.LineText(0); got != "ABC" {
		t.Errorf("expected row 0 'ABC', got %q", got)
	}
	row, col := term.CursorPosition()
	if row != 0 || col != 2 {
		t.Errorf("expected cursor held at (0, 2), got (%d, %d)", row, col)
	}

	term.WriteString("D")

	if got := term.LineText(0); got != "ABC" {
		t.Errorf("expected row 0 still 'ABC', got %q", got)
	}
	if got := term.LineText(1); got != "D" {
		t.Errorf("expected row 1 'D', got %q", got)
	}
	row, col = term.CursorPosition()
	if row != 1 || col != 1 {
		t.Errorf("expected cursor at (1, 1), got (%d, %d)", row, col)
	}
}

func TestTerminalCupThenEraseBelow(t *testing.T) {
	// Page (3,3) filled, CUP to row 2 col 2, ED 0.
	term := New(WithSize(3, 3))

	term.WriteString("ABC\r\nDEF\r\nGHI")
	term.WriteString("\x1b[2;2H\x1b[J")

	if got := term.LineText(0); got != "ABC" {
		t.Errorf("expected row 0 'ABC', got %q", got)
	}
	if got := term.LineText(1); got != "D" {
		t.Errorf("expected row 1 'D', got %q", got)
	}
	if got := term.LineText(2); got != "" {
		t.Errorf("expected row 2 blank, got %q", got)
	}
}

func TestTerminalClearScreen(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("Hello")
	term.WriteString("\x1b[2J")

	if got := term.LineText(0); got != "" {
		t.Errorf("expected empty line after clear, got %q", got)
	}
}

func TestTerminalScrollback(t *testing.T) {
	term := New(WithSize(3, 10))

	term.WriteString("one\r\ntwo\r\nthree\r\nfour\r\nfive")

	if term.ScrollbackLen() != 2 {
		t.Fatalf("expected 2 scrollback lines, got %d", term.ScrollbackLen())
	}
	if got := term.LineText(-2); got != "one" {
		t.Errorf("expected oldest history 'one', got %q", got)
	}
	if got := term.LineText(-1); got != "two" {
		t.Errorf("expected newest history 'two', got %q", got)
	}
	if got := term.LineText(0); got != "three" {
		t.Errorf("expected top of page 'three', got %q", got)
	}
}

func TestTerminalEraseDisplay3ClearsHistory(t *testing.T) {
	term := New(WithSize(3, 10))

	term.WriteString("one\r\ntwo\r\nthree\r\nfour\r\nfive")
	term.WriteString("\x1b[3J")

	if term.ScrollbackLen() != 0 {
		t.Errorf("expected history cleared, got %d lines", term.ScrollbackLen())
	}
}

func TestTerminalAlternateScreen(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("primary")
	term.WriteString("\x1b[?1049h")

	if !term.IsAlternateScreen() {
		t.Fatal("expected alternate screen active")
	}
	if got := term.LineText(0); got != "" {
		t.Errorf("expected cleared alternate screen, got %q", got)
	}

	term.WriteString("ALT")
	if got := term.LineText(0); got != "ALT" {
		t.Errorf("expected 'ALT' on alternate, got %q", got)
	}

	term.WriteString("\x1b[?1049l")
	if term.IsAlternateScreen() {
		t.Fatal("expected primary screen active")
	}
	if got := term.LineText(0); got != "primary" {
		t.Errorf("expected primary content preserved, got %q", got)
	}
	row, col := term.CursorPosition()
	if row != 0 || col != 7 {
		t.Errorf("expected cursor restored to (0, 7), got (%d, %d)", row, col)
	}
}

func TestTerminalWindowTitle(t *testing.T) {
	term := New()

	term.WriteString("\x1b]0;hello\x07")
	if term.WindowTitle() != "hello" {
		t.Errorf("expected title 'hello', got %q", term.WindowTitle())
	}

	term.WriteString("\x1b]2;world\x1b\\")
	if term.WindowTitle() != "world" {
		t.Errorf("expected title 'world', got %q", term.WindowTitle())
	}
}

func TestTerminalTitleStack(t *testing.T) {
	term := New()

	term.WriteString("\x1b]2;first\x1b\\")
	term.WriteString("\x1b[22t")
	term.WriteString("\x1b]2;second\x1b\\")
	term.WriteString("\x1b[23t")

	if term.WindowTitle() != "first" {
		t.Errorf("expected popped title 'first', got %q", term.WindowTitle())
	}
}

func TestTerminalHardReset(t *testing.T) {
	term := New(WithSize(5, 10))

	term.WriteString("content\x1b[31m")
	term.WriteString("\x1bc")

	if got := term.LineText(0); got != "" {
		t.Errorf("expected cleared screen after RIS, got %q", got)
	}
	row, col := term.CursorPosition()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor home after RIS, got (%d, %d)", row, col)
	}
}

func TestTerminalResizeViaWinOps(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b[8;30;100t")

	if term.Rows() != 30 || term.Cols() != 100 {
		t.Errorf("expected 30x100 after CSI 8 t, got %dx%d", term.Rows(), term.Cols())
	}
}

func TestTerminalReportSizeChars(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithSize(24, 80), WithResponse(&reply))

	term.WriteString("\x1b[18t")

	if got := reply.String(); got != "\x1b[8;24;80t" {
		t.Errorf("expected size report, got %q", got)
	}
}

func TestTerminalDirtyTracking(t *testing.T) {
	term := New(WithSize(24, 80))

	if term.HasDirty() {
		t.Error("expected clean terminal initially")
	}

	term.WriteString("x")
	if !term.HasDirty() {
		t.Error("expected dirty after write")
	}

	term.ClearDirty()
	if term.HasDirty() {
		t.Error("expected clean after ClearDirty")
	}
}

func TestTerminalString(t *testing.T) {
	term := New(WithSize(3, 10))

	term.WriteString("aa\r\nbb")

	want := "aa\nbb\n"
	if got := term.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTerminalRenderedTextRoundTrip(t *testing.T) {
	// Writing a page's rendered ASCII text into a fresh terminal of the
	// same dimensions reproduces the same text.
	term := New(WithSize(4, 10))
	term.WriteString("one\r\ntwo three\r\nfour")

	lines := make([]string, term.Rows())
	for i := range lines {
		lines[i] = term.LineText(i)
	}

	second := New(WithSize(4, 10))
	second.WriteString(strings.Join(lines, "\r\n"))

	for i := range lines {
		if got := second.LineText(i); got != lines[i] {
			t.Errorf("row %d: expected %q, got %q", i, lines[i], got)
		}
	}
}

func TestTerminalRecording(t *testing.T) {
	rec := &memoryRecording{}
	term := New(WithRecording(rec))

	term.WriteString("abc")

	if string(term.RecordingData()) != "abc" {
		t.Errorf("expected recorded input 'abc', got %q", string(term.RecordingData()))
	}

	term.ClearRecording()
	if len(term.RecordingData()) != 0 {
		t.Error("expected empty recording after clear")
	}
}

type memoryRecording struct {
	data []byte
}

func (m *memoryRecording) Record(data []byte) { m.data = append(m.data, data...) }
func (m *memoryRecording) Data() []byte       { return m.data }
func (m *memoryRecording) Clear()             { m.data = nil }

func TestTerminalMaxScrollback(t *testing.T) {
	term := New(WithSize(3, 10), WithMaxScrollback(2))

	for i := 0; i < 8; i++ {
		term.WriteString("line\r\n")
	}

	if term.ScrollbackLen() != 2 {
		t.Errorf("expected history capped at 2, got %d", term.ScrollbackLen())
	}
}
