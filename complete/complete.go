package complete

import (
	"strings"
	"unicode"
)

// Completer decides, per key signal, how a Field's text and selection
// change. It keeps no state between signals besides the term list: all
// in-flight state lives in the Field.
type Completer struct {
	terms  []string
	accept Key
}

// New returns a Completer for a copy of terms. Term order decides which term
// wins when several match.
func New(terms []string) *Completer {
	t := make([]string, len(terms))
	copy(t, terms)
	return &Completer{terms: t, accept: KeyTab}
}

func (c *Completer) Terms() []string {
	t := make([]string, len(c.terms))
	copy(t, c.terms)
	return t
}

// SetAcceptKey sets the key that jumps past a pending suggestion.
func (c *Completer) SetAcceptKey(k Key) { c.accept = k }

func (c *Completer) ignore(s Signal) bool {
	return len(c.terms) == 0 || s.Passthrough() || s.ShiftOnly()
}

func (c *Completer) isAccept(s Signal) bool {
	return s.Key == c.accept && !s.Mods.Has(ModCtrl) && !s.Mods.Has(ModMeta)
}

// Pressed handles the signal sent before the host applies its own editing.
// It returns false when the host must suppress its default handling.
func (c *Completer) Pressed(f Field, s Signal) bool {
	accept := c.isAccept(s)
	if !accept && c.ignore(s) {
		return true
	}

	sel := f.Selection()
	if sel == "" || len(c.terms) == 0 {
		return true
	}

	if accept {
		f.MoveSelectionStart(len([]rune(sel)))
		return false
	}

	ch := s.Char()
	if ch == 0 {
		return true
	}

	first := []rune(sel)[0]
	if unicode.ToLower(ch) == unicode.ToLower(first) {
		f.MoveSelectionStart(1)
		return false
	}

	return true
}

// Released handles the signal sent after the host applied its own editing
// and (re)installs the suggestion for the word under the caret. A pending
// suggestion is left as is.
func (c *Completer) Released(f Field, s Signal) {
	if c.ignore(s) || f.Selection() != "" {
		return
	}

	text := []rune(f.Value())
	caret := clampCursor(text, f.Caret())
	start := wordStart(text, caret)
	word := string(text[start:caret])
	if word == "" {
		return
	}

	term, ok := Match(word, c.terms)
	if !ok || strings.EqualFold(term, word) {
		return
	}

	before, after := string(text[:caret]), string(text[caret:])
	joined := strings.ToLower(before + after)
	lterm := strings.ToLower(term)

	// The term already occurs somewhere in the line; splicing would have
	// to guess where, so leave the text alone.
	if strings.Contains(joined, lterm) {
		return
	}

	rterm := []rune(term)
	from := caret - start
	if strings.HasPrefix(lterm, joined) {
		from = len([]rune(before + after))
	}
	if from > len(rterm) {
		return
	}

	rest := string(rterm[from:])
	n := len(rterm) - from
	f.SetValue(before + rest + after)
	f.Select(caret, caret+n)
}

// PreProcess runs Pressed against a snapshot and returns the resulting
// snapshot and whether default handling is allowed.
func (c *Completer) PreProcess(st State, s Signal) (State, bool) {
	b := NewBuffer(st)
	ok := c.Pressed(b, s)
	return b.State(), ok
}

// PostProcess runs Released against a snapshot taken after the host's own
// editing.
func (c *Completer) PostProcess(st State, s Signal) State {
	b := NewBuffer(st)
	c.Released(b, s)
	return b.State()
}
