package vtcore

import "testing"

func TestNewLineIsTrivial(t *testing.T) {
	l := NewLine(10)

	if !l.IsTrivial() {
		t.Error("expected fresh line to be trivial")
	}
	if l.Width() != 10 {
		t.Errorf("expected width 10, got %d", l.Width())
	}
}

func TestLineAppendTrivial(t *testing.T) {
	l := NewLine(10)

	if !l.AppendTrivial("abc", GraphicsAttributes{}, 0) {
		t.Fatal("expected first append to succeed")
	}
	if !l.AppendTrivial("de", GraphicsAttributes{}, 0) {
		t.Fatal("expected contiguous append to succeed")
	}
	if !l.IsTrivial() {
		t.Error("expected line to stay trivial")
	}
	if got := l.String(); got != "abcde" {
		t.Errorf("expected 'abcde', got %q", got)
	}
}

func TestLineAppendTrivialRejectsAttrMismatch(t *testing.T) {
	l := NewLine(10)
	l.AppendTrivial("ab", GraphicsAttributes{}, 0)

	red := GraphicsAttributes{Foreground: IndexedColor(1)}
	if l.AppendTrivial("cd", red, 0) {
		t.Error("expected append with different attributes to be rejected")
	}
}

func TestLineAppendTrivialRejectsOverflow(t *testing.T) {
	l := NewLine(4)

	if l.AppendTrivial("abcde", GraphicsAttributes{}, 0) {
		t.Error("expected oversized append to be rejected")
	}
}

func TestLineSetCellInflates(t *testing.T) {
	l := NewLine(5)
	l.AppendTrivial("abc", GraphicsAttributes{}, 0)

	l.SetCell(1, Cell{Char: 'X', Width: 1})

	if l.IsTrivial() {
		t.Error("expected inflation after per-cell write")
	}
	if got := l.String(); got != "aXc" {
		t.Errorf("expected 'aXc', got %q", got)
	}
}

func TestLineCellFromTrivial(t *testing.T) {
	red := GraphicsAttributes{Foreground: IndexedColor(1)}
	l := NewLine(5)
	l.AppendTrivial("ab", red, 0)

	c := l.Cell(0)
	if c.Char != 'a' || c.Attrs != red {
		t.Errorf("expected 'a' with fill attrs, got %+v", c)
	}
	c = l.Cell(4)
	if c.Char != ' ' {
		t.Errorf("expected blank past used columns, got %q", c.Char)
	}
	if l.IsTrivial() != true {
		t.Error("expected reads to keep the line trivial")
	}
}

func TestLineFillWithSpaceStaysTrivial(t *testing.T) {
	l := NewLine(5)
	l.SetCell(0, Cell{Char: 'x', Width: 1})

	l.FillWith(' ', GraphicsAttributes{}, 0)

	if !l.IsTrivial() {
		t.Error("expected blank fill to restore the trivial form")
	}
	if got := l.String(); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestLineFillRangePartial(t *testing.T) {
	l := NewLine(6)
	l.AppendTrivial("abcdef", GraphicsAttributes{}, 0)

	l.FillRange(2, 4, ' ', GraphicsAttributes{}, 0)

	if got := l.String(); got != "ab  ef" {
		t.Errorf("expected 'ab  ef', got %q", got)
	}
}

func TestLineResize(t *testing.T) {
	l := NewLine(6)
	l.AppendTrivial("abcdef", GraphicsAttributes{}, 0)

	l.Resize(3)
	if got := l.String(); got != "abc" {
		t.Errorf("expected 'abc' after shrink, got %q", got)
	}

	l.Resize(8)
	if got := l.String(); got != "abc" {
		t.Errorf("expected 'abc' after grow, got %q", got)
	}
	if l.Width() != 8 {
		t.Errorf("expected width 8, got %d", l.Width())
	}
}

func TestLineTrimBlankRight(t *testing.T) {
	l := NewLine(8)
	l.SetCell(0, Cell{Char: 'h', Width: 1})
	l.SetCell(1, Cell{Char: 'i', Width: 1})

	cells := l.TrimBlankRight()
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].Char != 'h' || cells[1].Char != 'i' {
		t.Errorf("expected 'hi', got %q%q", cells[0].Char, cells[1].Char)
	}
}

func TestLineStringSkipsWideContinuation(t *testing.T) {
	l := NewLine(4)
	wide := Cell{}
	wide.Write(GraphicsAttributes{}, '日', 2, 0)
	l.SetCell(0, wide)
	cont := Cell{}
	cont.MarkContinuation()
	l.SetCell(1, cont)
	l.SetCell(2, Cell{Char: 'x', Width: 1})

	if got := l.String(); got != "日x" {
		t.Errorf("expected '日x', got %q", got)
	}
}

func TestLineFlags(t *testing.T) {
	l := NewLine(4)

	l.SetFlag(LineWrapped)
	if !l.HasFlag(LineWrapped) {
		t.Error("expected Wrapped flag set")
	}
	l.ClearFlag(LineWrapped)
	if l.HasFlag(LineWrapped) {
		t.Error("expected Wrapped flag cleared")
	}
}

func TestLineCopyIndependent(t *testing.T) {
	l := NewLine(4)
	l.SetCell(0, Cell{Char: 'a', Width: 1})

	cp := l.Copy()
	cp.SetCell(0, Cell{Char: 'b', Width: 1})

	if got := l.Cell(0).Char; got != 'a' {
		t.Errorf("expected original untouched, got %q", got)
	}
}
