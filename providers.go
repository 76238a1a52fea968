package vtcore

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ResponseProvider writes terminal responses (cursor reports, DA, DECRQSS
// replies, ...) back to the PTY. Typically an io.Writer connected to the
// PTY input.
type ResponseProvider = io.Writer

// NoopResponse discards all response data.
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) { return len(p), nil }

// BellProvider handles bell/beep events triggered by BEL (0x07).
type BellProvider interface {
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// TitleProvider handles window title changes (OSC 0 and 2; OSC 1 icon
// names are ignored and never reach it) and the title
// stack (XTPUSHTITLE/XTPOPTITLE).
type TitleProvider interface {
	SetTitle(title string)
	PushTitle()
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) PushTitle()            {}
func (NoopTitle) PopTitle()             {}

// APCProvider handles Application Program Command string payloads not
// claimed by the built-in Kitty graphics hook.
type APCProvider interface {
	Receive(data []byte)
}

// NoopAPC ignores all APC sequences.
type NoopAPC struct{}

func (NoopAPC) Receive(data []byte) {}

// PMProvider handles Privacy Message string payloads.
type PMProvider interface {
	Receive(data []byte)
}

// NoopPM ignores all PM sequences.
type NoopPM struct{}

func (NoopPM) Receive(data []byte) {}

// SOSProvider handles Start-of-String payloads.
type SOSProvider interface {
	Receive(data []byte)
}

// NoopSOS ignores all SOS sequences.
type NoopSOS struct{}

func (NoopSOS) Receive(data []byte) {}

// ClipboardProvider backs OSC 52 clipboard read/write.
type ClipboardProvider interface {
	Read(clipboard byte) string
	Write(clipboard byte, data []byte)
}

// NoopClipboard ignores all clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(clipboard byte) string        { return "" }
func (NoopClipboard) Write(clipboard byte, data []byte) {}

// ScrollbackProvider stores lines scrolled off the top of a Grid's main
// page. Implementations may back this with memory, disk, or a database.
type ScrollbackProvider interface {
	Push(line []Cell)
	Len() int
	Line(index int) []Cell
	Clear()
	SetMaxLines(max int) // negative means unbounded
	MaxLines() int
}

// NoopScrollback discards all scrollback lines (the alternate screen's grid
// always uses this: alternate screens never retain history).
type NoopScrollback struct{}

func (NoopScrollback) Push(line []Cell)      {}
func (NoopScrollback) Len() int              { return 0 }
func (NoopScrollback) Line(index int) []Cell { return nil }
func (NoopScrollback) Clear()                {}
func (NoopScrollback) SetMaxLines(max int)   {}
func (NoopScrollback) MaxLines() int         { return 0 }

// RecordingProvider captures raw input bytes before parsing, for replay or
// debugging (session capture).
type RecordingProvider interface {
	Record(data []byte)
	Data() []byte
	Clear()
}

// NoopRecording discards all recorded input.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

// SizeProvider answers pixel-size queries the core cannot compute itself
// (cell size in pixels, used by sixel placement and XTWINOPS reports).
type SizeProvider interface {
	CellSizePixels() (width, height int)
	TextAreaSizePixels() (width, height int)
}

// NoopSizeProvider reports a conservative fixed cell size.
type NoopSizeProvider struct{}

func (NoopSizeProvider) CellSizePixels() (int, int)    { return 8, 16 }
func (NoopSizeProvider) TextAreaSizePixels() (int, int) { return 0, 0 }

// ShellIntegrationProvider is notified of OSC 133 semantic prompt marks and
// OSC 7 working-directory updates.
type ShellIntegrationProvider interface {
	PromptMarked(mark PromptMark)
	WorkingDirectoryChanged(path string)
}

// NoopShellIntegration ignores all shell integration events.
type NoopShellIntegration struct{}

func (NoopShellIntegration) PromptMarked(mark PromptMark)       {}
func (NoopShellIntegration) WorkingDirectoryChanged(path string) {}

// NotifyProvider backs OSC 777 desktop notifications.
type NotifyProvider interface {
	Notify(title, body string)
}

// NoopNotify discards all notifications.
type NoopNotify struct{}

func (NoopNotify) Notify(title, body string) {}

// LogProvider is the core's sole diagnostic channel: ParseError,
// UnsupportedSequence, InvalidSequence, and ResourceLimit conditions are
// reported here, categorized, and never as a panic or Go error.
type LogProvider interface {
	Warnf(category, format string, args ...any)
}

// NoopLog discards every diagnostic.
type NoopLog struct{}

func (NoopLog) Warnf(category, format string, args ...any) {}

// CharmLogProvider adapts github.com/charmbracelet/log into a LogProvider,
// for callers who want leveled, colorized diagnostics instead of silence.
type CharmLogProvider struct {
	Logger *log.Logger
}

// NewCharmLogProvider wraps a charmbracelet/log.Logger (log.Default() if l
// is nil).
func NewCharmLogProvider(l *log.Logger) *CharmLogProvider {
	if l == nil {
		l = log.Default()
	}
	return &CharmLogProvider{Logger: l}
}

func (c *CharmLogProvider) Warnf(category, format string, args ...any) {
	c.Logger.Warn(fmt.Sprintf(format, args...), "category", category)
}

var (
	_ ResponseProvider         = NoopResponse{}
	_ BellProvider             = (*NoopBell)(nil)
	_ TitleProvider            = (*NoopTitle)(nil)
	_ APCProvider              = (*NoopAPC)(nil)
	_ PMProvider               = (*NoopPM)(nil)
	_ SOSProvider              = (*NoopSOS)(nil)
	_ ClipboardProvider        = (*NoopClipboard)(nil)
	_ ScrollbackProvider       = (*NoopScrollback)(nil)
	_ RecordingProvider        = (*NoopRecording)(nil)
	_ SizeProvider             = (*NoopSizeProvider)(nil)
	_ ShellIntegrationProvider = (*NoopShellIntegration)(nil)
	_ NotifyProvider           = (*NoopNotify)(nil)
	_ LogProvider              = (*NoopLog)(nil)
	_ LogProvider              = (*CharmLogProvider)(nil)
)
