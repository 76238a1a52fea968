package vtcore

import "testing"

type recordingRenderer struct {
	trivialLines map[int]string
	cellLines    map[int][]Cell
	started      []int
	ended        []int
	finished     bool
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		trivialLines: make(map[int]string),
		cellLines:    make(map[int][]Cell),
	}
}

func (r *recordingRenderer) StartLine(line int) { r.started = append(r.started, line) }
func (r *recordingRenderer) RenderCell(cell Cell, line, col int) {
	r.cellLines[line] = append(r.cellLines[line], cell)
}
func (r *recordingRenderer) EndLine(line int) { r.ended = append(r.ended, line) }
func (r *recordingRenderer) RenderTrivialLine(text string, attrs GraphicsAttributes, line int) {
	r.trivialLines[line] = text
}
func (r *recordingRenderer) Finish() { r.finished = true }

func TestRenderTrivialFastPath(t *testing.T) {
	term := New(WithSize(2, 20))
	term.WriteString("plain text")

	r := newRecordingRenderer()
	term.Render(r)

	if !r.finished {
		t.Fatal("expected Finish call")
	}
	if got := r.trivialLines[0]; got != "plain text" {
		t.Errorf("expected trivial line 'plain text', got %q", got)
	}
	if len(r.cellLines[0]) != 0 {
		t.Error("expected no per-cell calls for a trivial line")
	}
}

func TestRenderInflatedLine(t *testing.T) {
	term := New(WithSize(2, 8))
	term.WriteString("a\x1b[31mb")

	r := newRecordingRenderer()
	term.Render(r)

	cells := r.cellLines[0]
	if len(cells) != 8 {
		t.Fatalf("expected 8 cells on inflated row, got %d", len(cells))
	}
	if cells[0].Char != 'a' || cells[1].Char != 'b' {
		t.Errorf("expected 'a' 'b', got %q %q", cells[0].Char, cells[1].Char)
	}
	if cells[1].Attrs.Foreground != IndexedColor(1) {
		t.Errorf("expected red 'b', got %+v", cells[1].Attrs.Foreground)
	}
	if len(r.started) != 1 || r.started[0] != 0 {
		t.Errorf("expected StartLine for row 0 only, got %v", r.started)
	}
	if len(r.ended) != 1 {
		t.Errorf("expected matching EndLine, got %v", r.ended)
	}
}

func TestRenderWindowIncludesHistory(t *testing.T) {
	term := New(WithSize(2, 10))
	term.WriteString("old\r\nmid\r\nnew")

	r := newRecordingRenderer()
	term.RenderWindow(r, -1, 1)

	// History lines are rebuilt from stored cells, so they arrive through
	// the per-cell path.
	hist := r.cellLines[-1]
	if len(hist) != 3 || hist[0].Char != 'o' || hist[2].Char != 'd' {
		t.Errorf("expected history cells 'old', got %+v", hist)
	}
	if got := r.trivialLines[0]; got != "mid" {
		t.Errorf("expected 'mid' at row 0, got %q", got)
	}
}
