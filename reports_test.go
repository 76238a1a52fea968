package vtcore

import (
	"bytes"
	"strings"
	"testing"
)

func TestCursorPositionReport(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithResponse(&reply))

	term.WriteString("\x1b[6n")
	if got := reply.String(); got != "\x1b[1;1R" {
		t.Errorf("expected home CPR, got %q", got)
	}

	reply.Reset()
	term.WriteString("\x1b[5;9H\x1b[6n")
	if got := reply.String(); got != "\x1b[5;9R" {
		t.Errorf("expected CPR 5;9, got %q", got)
	}
}

func TestCursorPositionReportOriginMode(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithSize(24, 80), WithResponse(&reply))

	term.WriteString("\x1b[5;20r\x1b[?6h\x1b[3;4H\x1b[6n")

	if got := reply.String(); got != "\x1b[3;4R" {
		t.Errorf("expected origin-relative CPR, got %q", got)
	}
}

func TestExtendedCursorPositionReport(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithResponse(&reply))

	term.WriteString("\x1b[?6n")
	if got := reply.String(); got != "\x1b[1;1;1R" {
		t.Errorf("expected DECXCPR with page, got %q", got)
	}
}

func TestDeviceAttributes(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithResponse(&reply))

	term.WriteString("\x1b[c")
	if got := reply.String(); got != "\x1b[?62;22c" {
		t.Errorf("expected DA1 reply, got %q", got)
	}

	reply.Reset()
	term.WriteString("\x1b[>c")
	if got := reply.String(); got != "\x1b[>1;10;0c" {
		t.Errorf("expected DA2 reply, got %q", got)
	}

	reply.Reset()
	term.WriteString("\x1b[=c")
	if got := reply.String(); got != "\x1bP!|00000000\x1b\\" {
		t.Errorf("expected DA3 reply, got %q", got)
	}
}

func TestDeviceStatus(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithResponse(&reply))

	term.WriteString("\x1b[5n")
	if got := reply.String(); got != "\x1b[0n" {
		t.Errorf("expected OK status, got %q", got)
	}
}

func TestDECRQSSSgr(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithResponse(&reply))

	term.WriteString("\x1bP$qm\x1b\\")
	if got := reply.String(); got != "\x1bP1$r0m\x1b\\" {
		t.Errorf("expected default SGR report, got %q", got)
	}

	reply.Reset()
	term.WriteString("\x1b[1;38;2;1;2;3m\x1bP$qm\x1b\\")
	if got := reply.String(); got != "\x1bP1$r0;1;38;2;1;2;3m\x1b\\" {
		t.Errorf("expected bold truecolor SGR report, got %q", got)
	}
}

func TestDECRQSSMargins(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithSize(24, 80), WithResponse(&reply))

	term.WriteString("\x1b[3;10r\x1bP$qr\x1b\\")
	if got := reply.String(); got != "\x1bP1$r3;10r\x1b\\" {
		t.Errorf("expected margin report, got %q", got)
	}
}

func TestDECRQSSCursorStyle(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithResponse(&reply))

	term.WriteString("\x1b[3 q\x1bP$q q\x1b\\")
	if got := reply.String(); got != "\x1bP1$r3 q\x1b\\" {
		t.Errorf("expected cursor style report, got %q", got)
	}
}

func TestDECRQSSUnknown(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithResponse(&reply))

	term.WriteString("\x1bP$qz\x1b\\")
	if got := reply.String(); got != "\x1bP0$r\x1b\\" {
		t.Errorf("expected failure report, got %q", got)
	}
}

func TestXTGETTCAP(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithSize(24, 80), WithResponse(&reply))

	// "co" hex-encoded is 636f; the 80-column answer "80" is 3830.
	term.WriteString("\x1bP+q636f\x1b\\")
	if got := reply.String(); got != "\x1bP1+r636f=3830\x1b\\" {
		t.Errorf("expected columns capability, got %q", got)
	}

	reply.Reset()
	term.WriteString("\x1bP+q7a7a\x1b\\")
	if got := reply.String(); got != "\x1bP0+r\x1b\\" {
		t.Errorf("expected failure for unknown capability, got %q", got)
	}
}

func TestTabStopReport(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithSize(24, 24), WithResponse(&reply))

	term.WriteString("\x1b[2$w")

	want := "\x1bP2$u1/9/17\x1b\\"
	if got := reply.String(); got != want {
		t.Errorf("expected DECTABSR %q, got %q", want, got)
	}
}

func TestCursorInformationReport(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithResponse(&reply))

	term.WriteString("\x1b[2;3H\x1b[1$w")

	got := reply.String()
	if !strings.HasPrefix(got, "\x1bP1$u2;3;1;") {
		t.Errorf("expected DECCIR to lead with position, got %q", got)
	}
	if !strings.HasSuffix(got, "\x1b\\") {
		t.Errorf("expected ST terminator, got %q", got)
	}
}

func TestXTSMGraphicsQuery(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithResponse(&reply))

	term.WriteString("\x1b[?1;1S")
	if got := reply.String(); got != "\x1b[?1;0;1024;1024S" {
		t.Errorf("expected sixel geometry report, got %q", got)
	}

	reply.Reset()
	term.WriteString("\x1b[?2;1S")
	if got := reply.String(); got != "\x1b[?2;3;0S" {
		t.Errorf("expected unsupported item report, got %q", got)
	}
}

func TestKittyKeyboardQuery(t *testing.T) {
	var reply bytes.Buffer
	term := New(WithResponse(&reply))

	term.WriteString("\x1b[>8u\x1b[?u")
	if got := reply.String(); got != "\x1b[?8u" {
		t.Errorf("expected pushed flags reported, got %q", got)
	}

	reply.Reset()
	term.WriteString("\x1b[<u\x1b[?u")
	if got := reply.String(); got != "\x1b[?0u" {
		t.Errorf("expected empty stack reported, got %q", got)
	}
}
