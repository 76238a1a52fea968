package vtcore

import "fmt"

// Status is the outcome of a FunctionDefinition handler, never an error
// value: the core never propagates an error across a sequence boundary.
type Status int

const (
	StatusOk Status = iota
	StatusUnsupported
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "Ok"
	case StatusUnsupported:
		return "Unsupported"
	case StatusInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// ErrorKind classifies a logged diagnostic; it never surfaces as a Go error
// returned to a caller, only as an argument to LogProvider.
type ErrorKind int

const (
	// ParseErrorKind: a malformed byte in the current parser state; the
	// parser recovers to Ground and continues.
	ParseErrorKind ErrorKind = iota
	// UnsupportedSequenceKind: a recognized envelope with no bound handler.
	UnsupportedSequenceKind
	// InvalidSequenceKind: a handler rejected its parameters.
	InvalidSequenceKind
	// ProtocolViolationKind: a well-formed sequence used outside its
	// preconditions (e.g. DECSLRM without LeftRightMargin mode).
	ProtocolViolationKind
	// ResourceLimitKind: an image or hyperlink allocation exceeded policy.
	ResourceLimitKind
	// IoErrorKind: raised only by the PTY collaborator, surfaced to the owner.
	IoErrorKind
)

func (k ErrorKind) String() string {
	switch k {
	case ParseErrorKind:
		return "ParseError"
	case UnsupportedSequenceKind:
		return "UnsupportedSequence"
	case InvalidSequenceKind:
		return "InvalidSequence"
	case ProtocolViolationKind:
		return "ProtocolViolation"
	case ResourceLimitKind:
		return "ResourceLimit"
	case IoErrorKind:
		return "IoError"
	default:
		return "Unknown"
	}
}

// logDiagnostic routes an ErrorKind through the Terminal's LogProvider,
// categorized the way the rest of the codebase's callback idiom expects:
// a category string plus a formatted message, never a panic or Go error.
func logDiagnostic(log LogProvider, kind ErrorKind, format string, args ...any) {
	if log == nil {
		return
	}
	log.Warnf(kind.String(), format, args...)
}

// sequenceText renders a Sequence back to its VT encoding for diagnostics,
// used when logging InvalidSequence/UnsupportedSequence.
func sequenceText(seq Sequence) string {
	return fmt.Sprintf("%s", seq.Raw())
}
