package vtcore

// PromptMarkType classifies an OSC 133 shell integration mark.
type PromptMarkType int

const (
	PromptStart PromptMarkType = iota
	CommandStart
	CommandExecuted
	CommandFinished
)

// PromptMark records one OSC 133 mark: its type, the absolute row it was
// emitted at (scrollback-inclusive: history length plus cursor line at the
// time, so 0 is the oldest retained history line), and its exit code
// (CommandFinished only, -1 otherwise).
type PromptMark struct {
	Type     PromptMarkType
	Row      int
	ExitCode int
}

// PromptTracker accumulates OSC 133 marks for prompt-based scrollback
// navigation and last-command-output extraction. It holds no reference to
// a Terminal or Grid; each Screen owns one and feeds it through
// Screen.RecordPromptMark from the OSC 133 dispatch path. It answers in
// rows only and does not extract text.
type PromptTracker struct {
	marks []PromptMark
}

// Record appends a new mark.
func (p *PromptTracker) Record(mark PromptMark) {
	p.marks = append(p.marks, mark)
}

// Marks returns a copy of all recorded marks.
func (p *PromptTracker) Marks() []PromptMark {
	out := make([]PromptMark, len(p.marks))
	copy(out, p.marks)
	return out
}

// Count returns the number of recorded marks.
func (p *PromptTracker) Count() int { return len(p.marks) }

// Clear discards all recorded marks.
func (p *PromptTracker) Clear() { p.marks = nil }

// NextRow returns the absolute row of the next mark strictly after
// currentAbsRow, optionally filtered by markType (pass -1 for any type).
// Returns -1 if none.
func (p *PromptTracker) NextRow(currentAbsRow int, markType PromptMarkType) int {
	for _, m := range p.marks {
		if m.Row > currentAbsRow && (markType == -1 || m.Type == markType) {
			return m.Row
		}
	}
	return -1
}

// PrevRow returns the absolute row of the previous mark strictly before
// currentAbsRow, optionally filtered by markType. Returns -1 if none.
func (p *PromptTracker) PrevRow(currentAbsRow int, markType PromptMarkType) int {
	for i := len(p.marks) - 1; i >= 0; i-- {
		m := p.marks[i]
		if m.Row < currentAbsRow && (markType == -1 || m.Type == markType) {
			return m.Row
		}
	}
	return -1
}

// MarkAt returns the mark recorded at absRow, or nil.
func (p *PromptTracker) MarkAt(absRow int) *PromptMark {
	for i := range p.marks {
		if p.marks[i].Row == absRow {
			m := p.marks[i]
			return &m
		}
	}
	return nil
}

// LastCommandOutputRows returns the [start,end) absolute row range between
// the most recent valid CommandExecuted/CommandFinished pair, or ok=false
// if no complete pair exists.
func (p *PromptTracker) LastCommandOutputRows() (start, end int, ok bool) {
	var lastExecuted, lastFinished *PromptMark
	for i := len(p.marks) - 1; i >= 0; i-- {
		m := &p.marks[i]
		if lastFinished == nil && m.Type == CommandFinished {
			lastFinished = m
		}
		if lastExecuted == nil && m.Type == CommandExecuted {
			lastExecuted = m
		}
		if lastExecuted != nil && lastFinished != nil {
			if lastExecuted.Row < lastFinished.Row {
				break
			}
			lastExecuted, lastFinished = nil, nil
		}
	}
	if lastExecuted == nil || lastFinished == nil {
		return 0, 0, false
	}
	return lastExecuted.Row, lastFinished.Row, true
}
