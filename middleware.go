package vtcore

// Middleware intercepts Sequencer dispatch at each of its EventSink entry
// points, wrapping every handler call with a "next" continuation: each
// field, when set, receives
// the event's arguments and a next func that invokes the default behavior.
// A nil field (the zero value) means that event flows through untouched.
type Middleware struct {
	// Print wraps plain-text codepoint output.
	Print func(r rune, next func(rune))

	// Execute wraps C0 control code handling (BEL, BS, HT, LF, CR, SO, SI).
	Execute func(c0 byte, next func(byte))

	// Dispatch wraps CSI/ESC control function dispatch.
	Dispatch func(seq Sequence, next func(Sequence) Status)

	// Osc wraps OSC payload dispatch (title, palette, hyperlinks,
	// clipboard, shell integration, notifications, and more).
	Osc func(text string, next func(string))

	// Dcs wraps DCS passthrough completion (Sixel images, DECRQSS,
	// XTGETTCAP) once its payload has been fully accumulated.
	Dcs func(kind dcsKind, params []Param, data []byte, next func())

	// SosPmApc wraps SOS/PM/APC dispatch, including Kitty graphics
	// commands carried as APC payloads.
	SosPmApc func(introducer byte, text string, next func(byte, string))
}

// Merge copies every non-nil field from other into m, overwriting existing
// values; it is how WithMiddleware composes multiple option calls into one
// Sequencer-attached Middleware.
func (m *Middleware) Merge(other *Middleware) {
	if other == nil {
		return
	}
	if other.Print != nil {
		m.Print = other.Print
	}
	if other.Execute != nil {
		m.Execute = other.Execute
	}
	if other.Dispatch != nil {
		m.Dispatch = other.Dispatch
	}
	if other.Osc != nil {
		m.Osc = other.Osc
	}
	if other.Dcs != nil {
		m.Dcs = other.Dcs
	}
	if other.SosPmApc != nil {
		m.SosPmApc = other.SosPmApc
	}
}
