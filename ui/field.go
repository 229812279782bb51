package ui

import (
	"sync"
	"unicode"

	"github.com/frizinak/inlinecomplete/complete"
)

// Field is a single line editor implementing complete.Field. It is shared by
// the terminal and plain renderers.
type Field struct {
	sem sync.Mutex
	buf *complete.Buffer

	history    []string
	maxHistory int
	browse     int
}

func NewField(maxHistory int) *Field {
	return &Field{
		buf:        complete.NewBuffer(complete.State{}),
		maxHistory: maxHistory,
	}
}

func (f *Field) Value() string {
	f.sem.Lock()
	defer f.sem.Unlock()
	return f.buf.Value()
}

func (f *Field) SetValue(v string) {
	f.sem.Lock()
	f.buf.SetValue(v)
	f.sem.Unlock()
}

func (f *Field) Selection() string {
	f.sem.Lock()
	defer f.sem.Unlock()
	return f.buf.Selection()
}

func (f *Field) Select(start, end int) {
	f.sem.Lock()
	f.buf.Select(start, end)
	f.sem.Unlock()
}

func (f *Field) MoveSelectionStart(n int) {
	f.sem.Lock()
	f.buf.MoveSelectionStart(n)
	f.sem.Unlock()
}

func (f *Field) Caret() int {
	f.sem.Lock()
	defer f.sem.Unlock()
	return f.buf.Caret()
}

// State returns a snapshot of the text and selection.
func (f *Field) State() complete.State {
	f.sem.Lock()
	defer f.sem.Unlock()
	return f.buf.State()
}

// History returns the submitted lines, oldest first.
func (f *Field) History() []string {
	f.sem.Lock()
	defer f.sem.Unlock()
	h := make([]string, len(f.history))
	copy(h, f.history)
	return h
}

// Apply performs the editor's own handling of s and reports whether the
// field changed.
func (f *Field) Apply(s complete.Signal) bool {
	f.sem.Lock()
	defer f.sem.Unlock()

	st := f.buf.State()
	switch s.Key {
	case complete.KeyRune:
		if s.Mods.Has(complete.ModCtrl) {
			f.emacs(s.Rune)
			break
		}
		if s.Mods.Has(complete.ModMeta) || !unicode.IsPrint(s.Rune) {
			return false
		}
		f.buf.Replace(string(s.Rune))
	case complete.KeyBackspace:
		f.buf.DeleteBackward()
	case complete.KeyDelete:
		f.buf.DeleteForward()
	case complete.KeyLeft:
		if st.Start != st.End {
			f.buf.SetCaret(st.Start)
			break
		}
		f.buf.SetCaret(st.Start - 1)
	case complete.KeyRight:
		if st.Start != st.End {
			f.buf.SetCaret(st.End)
			break
		}
		f.buf.SetCaret(st.Start + 1)
	case complete.KeyHome:
		f.buf.SetCaret(0)
	case complete.KeyEnd:
		f.buf.SetCaret(f.buf.Len())
	case complete.KeyUp:
		f.recall(1)
	case complete.KeyDown:
		f.recall(-1)
	}

	return st != f.buf.State()
}

func (f *Field) emacs(r rune) {
	st := f.buf.State()
	switch unicode.ToLower(r) {
	case 'a':
		f.buf.SetCaret(0)
	case 'e':
		f.buf.SetCaret(f.buf.Len())
	case 'u':
		f.buf.Select(0, st.End)
		f.buf.Replace("")
	case 'w':
		text := []rune(st.Text)
		i := st.Start
		for i > 0 && text[i-1] == ' ' {
			i--
		}
		f.buf.Select(complete.WordStart(st.Text, i), st.End)
		f.buf.Replace("")
	}
}

func (f *Field) recall(dir int) {
	n := f.browse + dir
	if n < 0 || n > len(f.history) {
		return
	}
	f.browse = n
	if n == 0 {
		f.buf.SetValue("")
		return
	}
	f.buf.SetValue(f.history[len(f.history)-n])
}

// Submit clears the field and appends its value to the history.
func (f *Field) Submit() string {
	f.sem.Lock()
	defer f.sem.Unlock()
	v := f.buf.Value()
	f.buf.SetValue("")
	f.browse = 0
	if v == "" {
		return v
	}

	f.history = append(f.history, v)
	if f.maxHistory > 0 && len(f.history) > f.maxHistory {
		f.history = f.history[len(f.history)-f.maxHistory:]
	}
	return v
}

// Reset clears the field and returns what it contained.
func (f *Field) Reset() string {
	f.sem.Lock()
	defer f.sem.Unlock()
	v := f.buf.Value()
	f.buf.SetValue("")
	f.browse = 0
	return v
}
