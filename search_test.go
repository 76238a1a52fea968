package vtcore

import "testing"

func TestSearchVisible(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("error: one\r\nok\r\nerror: two")

	matches := term.Search("error")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0] != (Position{Row: 0, Col: 0}) || matches[1] != (Position{Row: 2, Col: 0}) {
		t.Errorf("unexpected match positions %+v", matches)
	}
}

func TestSearchScrollback(t *testing.T) {
	term := New(WithSize(2, 20))
	term.WriteString("needle here\r\nfiller\r\nfiller\r\nfiller")

	matches := term.SearchScrollback("needle")
	if len(matches) != 1 {
		t.Fatalf("expected 1 history match, got %d", len(matches))
	}
	if matches[0].Row >= 0 {
		t.Errorf("expected negative history row, got %d", matches[0].Row)
	}
	if matches[0].Col != 0 {
		t.Errorf("expected match at col 0, got %d", matches[0].Col)
	}
}

func TestSearchReverseAcrossWrap(t *testing.T) {
	// Page (3,4) with history: the stream wraps every 4 columns, and the
	// final "cd" straddles the last wrap boundary. Reverse search must find
	// it on the physical line the match starts on.
	term := New(WithSize(3, 4))
	term.WriteString("1abc2def3ghi4jkl5mno6pqr7abcd")

	row, col := term.CursorPosition()
	pos, ok := term.SearchReverse("cd", Position{Row: row, Col: col})

	if !ok {
		t.Fatal("expected a match")
	}
	if pos != (Position{Row: 1, Col: 3}) {
		t.Errorf("expected match at (1, 3), got %+v", pos)
	}
}

func TestSearchReverseSkipsMatchesBelowStart(t *testing.T) {
	term := New(WithSize(4, 10))
	term.WriteString("target\r\nx\r\ntarget")

	pos, ok := term.SearchReverse("target", Position{Row: 1, Col: 0})
	if !ok {
		t.Fatal("expected a match")
	}
	if pos != (Position{Row: 0, Col: 0}) {
		t.Errorf("expected earlier occurrence at (0, 0), got %+v", pos)
	}
}

func TestSearchReverseNoMatch(t *testing.T) {
	term := New(WithSize(4, 10))
	term.WriteString("nothing")

	if _, ok := term.SearchReverse("absent", Position{Row: 3, Col: 9}); ok {
		t.Error("expected no match")
	}
}

func TestSelection(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("Hello World")

	term.SetSelection(Position{Row: 0, Col: 0}, Position{Row: 0, Col: 4})

	if !term.HasSelection() {
		t.Fatal("expected active selection")
	}
	if got := term.GetSelectedText(); got != "Hello" {
		t.Errorf("expected 'Hello', got %q", got)
	}
	if !term.IsSelected(0, 2) {
		t.Error("expected (0,2) selected")
	}
	if term.IsSelected(0, 5) {
		t.Error("expected (0,5) outside selection")
	}

	term.ClearSelection()
	if term.HasSelection() {
		t.Error("expected selection cleared")
	}
}

func TestSelectionMultiRow(t *testing.T) {
	term := New(WithSize(24, 10))
	term.WriteString("abc\r\ndef")

	term.SetSelection(Position{Row: 0, Col: 1}, Position{Row: 1, Col: 1})

	want := "bc       \nde"
	if got := term.GetSelectedText(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSelectionSwapsReversedEndpoints(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("Hello")

	term.SetSelection(Position{Row: 0, Col: 4}, Position{Row: 0, Col: 0})

	if got := term.GetSelectedText(); got != "Hello" {
		t.Errorf("expected 'Hello', got %q", got)
	}
}
