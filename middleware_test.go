package vtcore

import (
	"strings"
	"testing"
)

func TestMiddlewarePrint(t *testing.T) {
	var seen []rune
	mw := &Middleware{
		Print: func(r rune, next func(rune)) {
			seen = append(seen, r)
			next(r)
		},
	}
	term := New(WithSize(2, 10), WithMiddleware(mw))

	term.WriteString("ab")

	if string(seen) != "ab" {
		t.Errorf("expected middleware to observe 'ab', got %q", string(seen))
	}
	if got := term.LineText(0); got != "ab" {
		t.Errorf("expected default behavior preserved, got %q", got)
	}
}

func TestMiddlewareSuppressesPrint(t *testing.T) {
	mw := &Middleware{
		Print: func(r rune, next func(rune)) {
			// Swallow every printable without calling next.
		},
	}
	term := New(WithSize(2, 10), WithMiddleware(mw))

	term.WriteString("hidden")

	if got := term.LineText(0); got != "" {
		t.Errorf("expected suppressed output, got %q", got)
	}
}

func TestMiddlewareDispatch(t *testing.T) {
	var finals []byte
	mw := &Middleware{
		Dispatch: func(seq Sequence, next func(Sequence) Status) {
			finals = append(finals, seq.Final)
			next(seq)
		},
	}
	term := New(WithSize(5, 10), WithMiddleware(mw))

	term.WriteString("\x1b[2;2H\x1b[31m")

	if string(finals) != "Hm" {
		t.Errorf("expected dispatches H and m, got %q", string(finals))
	}
	row, col := term.CursorPosition()
	if row != 1 || col != 1 {
		t.Errorf("expected CUP applied through middleware, got (%d, %d)", row, col)
	}
}

func TestMiddlewareOsc(t *testing.T) {
	var payloads []string
	mw := &Middleware{
		Osc: func(text string, next func(string)) {
			payloads = append(payloads, text)
			next(text)
		},
	}
	term := New(WithMiddleware(mw))

	term.WriteString("\x1b]0;title\x07")

	if len(payloads) != 1 || payloads[0] != "0;title" {
		t.Errorf("expected OSC payload observed, got %v", payloads)
	}
	if term.WindowTitle() != "title" {
		t.Errorf("expected title applied, got %q", term.WindowTitle())
	}
}

func TestMiddlewareMerge(t *testing.T) {
	base := &Middleware{}
	base.Merge(&Middleware{Print: func(r rune, next func(rune)) { next(r) }})
	base.Merge(&Middleware{Execute: func(b byte, next func(byte)) { next(b) }})

	if base.Print == nil || base.Execute == nil {
		t.Error("expected both hooks present after merge")
	}
}

func TestSequenceRaw(t *testing.T) {
	seq := Sequence{
		Category: SeqCsi,
		Leader:   '?',
		Params:   []Param{{Values: []int{25}}},
		Final:    'h',
	}

	if got := seq.Raw(); got != "\x1b[?25h" {
		t.Errorf("expected raw CSI rendering, got %q", got)
	}

	esc := Sequence{Category: SeqEsc, Intermediates: []byte{'#'}, Final: '8'}
	if got := esc.Raw(); got != "\x1b#8" {
		t.Errorf("expected raw ESC rendering, got %q", got)
	}
}

func TestUnsupportedSequenceLogged(t *testing.T) {
	var logged []string
	term := New(WithLog(logFunc(func(category, format string, args ...any) {
		logged = append(logged, category)
	})))

	term.WriteString("\x1b[9999z") // no handler bound to final 'z'

	found := false
	for _, c := range logged {
		if strings.Contains(c, "UnsupportedSequence") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an UnsupportedSequence diagnostic, got %v", logged)
	}
}

type logFunc func(category, format string, args ...any)

func (f logFunc) Warnf(category, format string, args ...any) { f(category, format, args...) }
