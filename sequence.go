package vtcore

import (
	"strconv"
	"strings"
)

// SequenceCategory discriminates the kind of control function a Sequence
// represents.
type SequenceCategory int

const (
	SeqEsc SequenceCategory = iota
	SeqCsi
	SeqOsc
	SeqDcs
	SeqApc
	SeqPm
	SeqSos
)

func (c SequenceCategory) String() string {
	switch c {
	case SeqEsc:
		return "Esc"
	case SeqCsi:
		return "Csi"
	case SeqOsc:
		return "Osc"
	case SeqDcs:
		return "Dcs"
	case SeqApc:
		return "Apc"
	case SeqPm:
		return "Pm"
	case SeqSos:
		return "Sos"
	default:
		return "?"
	}
}

// noParam marks a parameter position that was not supplied, distinguishing
// "defaulted to 0" from "explicitly 0" where a handler cares (rare, but
// DECSTBM's top parameter is one: 0 and absent both mean "page top").
const noParam = -1

// Param is one CSI/DCS parameter, which may itself carry colon-separated
// sub-parameters (used by truecolor SGR `38:2:r:g:b` and extended underline
// `4:3`).
type Param struct {
	Values []int
}

// Get returns sub-parameter i, or def if absent.
func (p Param) Get(i int, def int) int {
	if i < 0 || i >= len(p.Values) || p.Values[i] < 0 {
		return def
	}
	return p.Values[i]
}

// First returns the first sub-parameter, or def if the parameter is empty.
func (p Param) First(def int) int { return p.Get(0, def) }

// Sequence is the accumulated, fully-parsed representation of one control
// function: everything the Sequencer gathered from parser events before
// looking up a FunctionDefinition.
type Sequence struct {
	Category      SequenceCategory
	Leader        byte // private marker: '?', '>', '=', 0 if none
	Intermediates []byte
	Final         byte
	Params        []Param
	Text          string // OSC/DCS/APC/PM/SOS string payload
}

// Param returns parameter i's first value, or def if absent (the common
// case: most CSI parameters have no sub-parameters).
func (s Sequence) Param(i, def int) int {
	if i < 0 || i >= len(s.Params) {
		return def
	}
	return s.Params[i].First(def)
}

// ParamCount returns how many parameters were supplied.
func (s Sequence) ParamCount() int { return len(s.Params) }

// HasLeader reports whether the sequence carries the given private marker.
func (s Sequence) HasLeader(b byte) bool { return s.Leader == b }

// HasIntermediate reports whether b appears among the sequence's
// intermediate bytes.
func (s Sequence) HasIntermediate(b byte) bool {
	for _, i := range s.Intermediates {
		if i == b {
			return true
		}
	}
	return false
}

// Key returns the FunctionDefinition lookup key for this sequence.
func (s Sequence) Key() FunctionKey {
	return FunctionKey{
		Category:      s.Category,
		Leader:        s.Leader,
		Intermediates: string(s.Intermediates),
		Final:         s.Final,
	}
}

// Raw reconstructs the original VT encoding of the sequence, used only for
// diagnostics (UnsupportedSequence/InvalidSequence logging).
func (s Sequence) Raw() string {
	var b strings.Builder
	switch s.Category {
	case SeqEsc:
		b.WriteString("\x1b")
		b.Write(s.Intermediates)
		b.WriteByte(s.Final)
	case SeqCsi:
		b.WriteString("\x1b[")
		if s.Leader != 0 {
			b.WriteByte(s.Leader)
		}
		for i, p := range s.Params {
			if i > 0 {
				b.WriteByte(';')
			}
			for j, v := range p.Values {
				if j > 0 {
					b.WriteByte(':')
				}
				if v >= 0 {
					b.WriteString(strconv.Itoa(v))
				}
			}
		}
		b.Write(s.Intermediates)
		b.WriteByte(s.Final)
	case SeqOsc:
		b.WriteString("\x1b]")
		b.WriteString(s.Text)
		b.WriteString("\x1b\\")
	case SeqDcs:
		b.WriteString("\x1bP")
		if s.Leader != 0 {
			b.WriteByte(s.Leader)
		}
		for i, p := range s.Params {
			if i > 0 {
				b.WriteByte(';')
			}
			if len(p.Values) > 0 && p.Values[0] >= 0 {
				b.WriteString(strconv.Itoa(p.Values[0]))
			}
		}
		b.Write(s.Intermediates)
		b.WriteByte(s.Final)
		b.WriteString(s.Text)
		b.WriteString("\x1b\\")
	case SeqApc:
		b.WriteString("\x1b_")
		b.WriteString(s.Text)
		b.WriteString("\x1b\\")
	case SeqPm:
		b.WriteString("\x1b^")
		b.WriteString(s.Text)
		b.WriteString("\x1b\\")
	case SeqSos:
		b.WriteString("\x1bX")
		b.WriteString(s.Text)
		b.WriteString("\x1b\\")
	}
	return b.String()
}

// FunctionKey identifies a FunctionDefinition: the 4-tuple a dispatch table
// is keyed on.
type FunctionKey struct {
	Category      SequenceCategory
	Leader        byte
	Intermediates string
	Final         byte
}

// FunctionDefinition binds a FunctionKey to a handler invoked once the
// Sequencer has assembled a complete Sequence.
type FunctionDefinition struct {
	Key     FunctionKey
	Mnemonic string
	Handle  func(s *Sequencer, seq Sequence) Status
}
