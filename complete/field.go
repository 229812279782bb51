package complete

// Field is the text input a Completer operates on. All offsets are rune
// offsets into Value.
type Field interface {
	Value() string
	SetValue(string)

	// Selection returns the currently selected text.
	Selection() string
	// Select sets the selection to [start, end).
	Select(start, end int)
	// MoveSelectionStart advances the selection start by n runes.
	MoveSelectionStart(n int)
	// Caret returns the selection start, which is the caret when nothing
	// is selected.
	Caret() int
}

// State is a snapshot of a Field.
type State struct {
	Text       string
	Start, End int
}

func (s State) Selection() string {
	return NewBuffer(s).Selection()
}

// Buffer is an in-memory Field.
type Buffer struct {
	text       []rune
	start, end int
}

func NewBuffer(s State) *Buffer {
	b := &Buffer{text: []rune(s.Text)}
	b.Select(s.Start, s.End)
	return b
}

func (b *Buffer) State() State {
	return State{Text: string(b.text), Start: b.start, End: b.end}
}

func (b *Buffer) Value() string { return string(b.text) }
func (b *Buffer) Len() int      { return len(b.text) }

func (b *Buffer) SetValue(v string) {
	b.text = []rune(v)
	b.start, b.end = len(b.text), len(b.text)
}

func (b *Buffer) Selection() string { return string(b.text[b.start:b.end]) }

func (b *Buffer) clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > len(b.text) {
		return len(b.text)
	}
	return v
}

func (b *Buffer) Select(start, end int) {
	start, end = b.clamp(start), b.clamp(end)
	if end < start {
		end = start
	}
	b.start, b.end = start, end
}

func (b *Buffer) MoveSelectionStart(n int) {
	b.start = b.clamp(b.start + n)
	if b.end < b.start {
		b.end = b.start
	}
}

func (b *Buffer) Caret() int { return b.start }

// SelectionEnd returns the end of the selection.
func (b *Buffer) SelectionEnd() int { return b.end }

// Replace replaces the selection with s and leaves a caret after it, which
// is what a text input does when a character is typed.
func (b *Buffer) Replace(s string) {
	ins := []rune(s)
	n := make([]rune, 0, len(b.text)-(b.end-b.start)+len(ins))
	n = append(n, b.text[:b.start]...)
	n = append(n, ins...)
	n = append(n, b.text[b.end:]...)
	b.text = n
	b.start += len(ins)
	b.end = b.start
}

// DeleteBackward removes the selection, or the rune before the caret.
func (b *Buffer) DeleteBackward() bool {
	if b.start != b.end {
		b.Replace("")
		return true
	}
	if b.start == 0 {
		return false
	}
	b.text = append(b.text[:b.start-1], b.text[b.start:]...)
	b.start--
	b.end = b.start
	return true
}

// DeleteForward removes the selection, or the rune after the caret.
func (b *Buffer) DeleteForward() bool {
	if b.start != b.end {
		b.Replace("")
		return true
	}
	if b.start >= len(b.text) {
		return false
	}
	b.text = append(b.text[:b.start], b.text[b.start+1:]...)
	return true
}

// SetCaret collapses the selection to a caret at pos.
func (b *Buffer) SetCaret(pos int) {
	pos = b.clamp(pos)
	b.start, b.end = pos, pos
}
