package vtcore

// Renderer is the pull-model drawing contract: the Screen walks its page in
// row-major order and calls back for every line and cell. Lines still in the
// trivial representation short-circuit through RenderTrivialLine with their
// raw text fragment and shared fill attributes, so a renderer can blit the
// common unstyled case without per-cell work.
type Renderer interface {
	StartLine(line int)
	RenderCell(cell Cell, line, col int)
	EndLine(line int)
	RenderTrivialLine(text string, attrs GraphicsAttributes, line int)
	Finish()
}

// RenderPage walks the whole main page through r.
func (s *Screen) RenderPage(r Renderer) {
	s.RenderRange(r, 0, s.lines()-1)
}

// RenderRange walks rows [first, last] through r. Negative rows address
// history, letting a renderer draw a scrolled-back viewport with the same
// callbacks it uses for the live page.
func (s *Screen) RenderRange(r Renderer, first, last int) {
	for row := first; row <= last; row++ {
		l := s.Grid.Line(row)
		if l == nil {
			continue
		}
		if l.IsTrivial() {
			r.RenderTrivialLine(string(l.text), l.fillAttrs, row)
			continue
		}
		r.StartLine(row)
		for col := 0; col < l.Width(); col++ {
			r.RenderCell(l.Cell(col), row, col)
		}
		r.EndLine(row)
	}
	r.Finish()
}

// Render walks the active screen's main page through r under the read lock,
// the way a renderer thread snapshots the grid between input chunks.
func (t *Terminal) Render(r Renderer) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	t.Screen().RenderPage(r)
}

// RenderWindow walks rows [first, last] of the active screen through r;
// negative offsets reach into scrollback.
func (t *Terminal) RenderWindow(r Renderer, first, last int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	t.Screen().RenderRange(r, first, last)
}
