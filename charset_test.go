package vtcore

import "testing"

func TestCharsetLineDrawing(t *testing.T) {
	term := New(WithSize(1, 10))

	term.WriteString("\x1b(0qqx\x1b(B")

	if got := term.LineText(0); got != "──│" {
		t.Errorf("expected box-drawing glyphs, got %q", got)
	}
}

func TestCharsetShiftOutIn(t *testing.T) {
	term := New(WithSize(1, 10))

	// Designate line drawing into G1, shift it in with SO, back out with SI.
	term.WriteString("\x1b)0a\x0eq\x0fa")

	if got := term.LineText(0); got != "a─a" {
		t.Errorf("expected SO/SI to toggle G1, got %q", got)
	}
}

func TestCharsetSingleShift(t *testing.T) {
	term := New(WithSize(1, 10))

	// SS2 selects G2 for exactly one character.
	term.WriteString("\x1b*0\x1bNqq")

	if got := term.LineText(0); got != "─q" {
		t.Errorf("expected single-shifted glyph then plain 'q', got %q", got)
	}
}

func TestCharsetsResolve(t *testing.T) {
	cs := NewCharsets()

	if cs.Resolve() != CharsetASCII {
		t.Error("expected ASCII by default")
	}

	cs.Designate(CharsetIndexG2, CharsetLineDrawing)
	cs.SingleShiftSelect(CharsetIndexG2)

	if cs.Resolve() != CharsetLineDrawing {
		t.Error("expected single shift to take effect")
	}
	if cs.Resolve() != CharsetASCII {
		t.Error("expected single shift consumed after one resolve")
	}
}
