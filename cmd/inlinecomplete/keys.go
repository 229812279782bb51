package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/frizinak/inlinecomplete/complete"
)

type Action string

const (
	Accept Action = "accept"
	Submit Action = "submit"
	Quit   Action = "quit"
	Clear  Action = "clear-scrollback"
	Reset  Action = "clear-input"
)

var defaultKeymap = Keymap{
	Accept: "tab",
	Submit: "enter",
	Quit:   "ctrl-c",
	Clear:  "ctrl-l",
	Reset:  "esc",
}

var namedKeys = map[string]complete.Key{
	"tab":       complete.KeyTab,
	"enter":     complete.KeyEnter,
	"return":    complete.KeyEnter,
	"esc":       complete.KeyEscape,
	"escape":    complete.KeyEscape,
	"backspace": complete.KeyBackspace,
	"delete":    complete.KeyDelete,
	"up":        complete.KeyUp,
	"down":      complete.KeyDown,
	"left":      complete.KeyLeft,
	"right":     complete.KeyRight,
	"home":      complete.KeyHome,
	"end":       complete.KeyEnd,
}

var modifiers = map[string]complete.Modifier{
	"ctrl":  complete.ModCtrl,
	"alt":   complete.ModAlt,
	"shift": complete.ModShift,
}

// newKey parses a key description like "tab", "ctrl-q" or "alt-right".
func newKey(k string) (complete.Signal, error) {
	p := strings.Split(k, "-")
	var mods complete.Modifier
	for _, m := range p[:len(p)-1] {
		mod, ok := modifiers[m]
		if !ok {
			return complete.Signal{}, fmt.Errorf("%s: unknown modifier %s", k, m)
		}
		mods |= mod
	}

	last := p[len(p)-1]
	if last == "" {
		return complete.Signal{}, fmt.Errorf("%s is an invalid key", k)
	}
	if key, ok := namedKeys[last]; ok {
		return complete.Special(key, mods), nil
	}
	if last == "space" {
		last = " "
	}
	if utf8.RuneCountInString(last) != 1 {
		return complete.Signal{}, fmt.Errorf("%s is an invalid key", k)
	}

	r, _ := utf8.DecodeRuneInString(last)
	if mods.Has(complete.ModCtrl) {
		r = unicode.ToLower(r)
	}
	return complete.Rune(r, mods), nil
}

type Keys struct {
	keymap map[complete.Signal]Action
	accept complete.Key
}

func NewKeys(keyMap Keymap) (*Keys, error) {
	keys := &Keys{keymap: make(map[complete.Signal]Action, len(keyMap))}
	for action, k := range keyMap {
		switch action {
		case Accept, Submit, Quit, Clear, Reset:
		default:
			return nil, fmt.Errorf("key mapped to missing action: %s: %s", k, action)
		}

		if k == "" {
			continue
		}

		s, err := newKey(k)
		if err != nil {
			return nil, err
		}

		if action == Accept {
			if s.Key == complete.KeyRune || s.Mods != 0 {
				return nil, fmt.Errorf("%s must be mapped to a single special key, not %s", Accept, k)
			}
			keys.accept = s.Key
		}

		if _, ok := keys.keymap[s]; ok {
			return nil, fmt.Errorf("duplicate mapping for key %s", k)
		}
		keys.keymap[s] = action
	}

	if keys.accept == complete.KeyNone {
		return nil, fmt.Errorf("no key mapped to %s", Accept)
	}

	return keys, nil
}

// AcceptKey returns the key that accepts a suggestion.
func (k *Keys) AcceptKey() complete.Key { return k.accept }

// Action returns the action bound to s. The accept key is not reported as
// it is handled by the completer.
func (k *Keys) Action(s complete.Signal) (Action, bool) {
	a, ok := k.keymap[s]
	if !ok || a == Accept {
		return "", false
	}
	return a, true
}

// Decoder turns raw terminal input into signals.
type Decoder struct {
	pending []byte
}

var csiKeys = map[byte]complete.Key{
	'A': complete.KeyUp,
	'B': complete.KeyDown,
	'C': complete.KeyRight,
	'D': complete.KeyLeft,
	'H': complete.KeyHome,
	'F': complete.KeyEnd,
}

var tildeKeys = map[int]complete.Key{
	1: complete.KeyHome,
	3: complete.KeyDelete,
	4: complete.KeyEnd,
	7: complete.KeyHome,
	8: complete.KeyEnd,
}

// xterm modifier parameter minus one.
func xtermMods(n int) complete.Modifier {
	n--
	var m complete.Modifier
	if n&1 != 0 {
		m |= complete.ModShift
	}
	if n&2 != 0 {
		m |= complete.ModAlt
	}
	if n&4 != 0 {
		m |= complete.ModCtrl
	}
	if n&8 != 0 {
		m |= complete.ModMeta
	}
	return m
}

// Decode decodes a chunk as returned by a single read. A trailing lone
// escape byte is reported as the escape key, an incomplete escape or utf-8
// sequence is kept until the next call.
func (d *Decoder) Decode(chunk []byte) []complete.Signal {
	b := append(d.pending, chunk...)
	d.pending = nil
	sigs := make([]complete.Signal, 0, len(b))
	for len(b) > 0 {
		s, n, ok := d.next(b)
		if n == 0 {
			d.pending = append([]byte{}, b...)
			break
		}
		b = b[n:]
		if ok {
			sigs = append(sigs, s)
		}
	}

	return sigs
}

func (d *Decoder) next(b []byte) (complete.Signal, int, bool) {
	switch c := b[0]; {
	case c == 27:
		return d.escape(b)
	case c == 9:
		return complete.Special(complete.KeyTab, 0), 1, true
	case c == 13 || c == 10:
		return complete.Special(complete.KeyEnter, 0), 1, true
	case c == 127 || c == 8:
		return complete.Special(complete.KeyBackspace, 0), 1, true
	case c == 0:
		return complete.Rune(' ', complete.ModCtrl), 1, true
	case c < 27:
		return complete.Rune(rune('a'+c-1), complete.ModCtrl), 1, true
	case c < 32:
		return complete.Signal{}, 1, false
	}

	if !utf8.FullRune(b) {
		return complete.Signal{}, 0, false
	}
	r, n := utf8.DecodeRune(b)
	if r == utf8.RuneError {
		return complete.Signal{}, n, false
	}

	return printable(r, 0), n, true
}

func printable(r rune, mods complete.Modifier) complete.Signal {
	if unicode.IsUpper(r) {
		mods |= complete.ModShift
	}
	return complete.Rune(r, mods)
}

func (d *Decoder) escape(b []byte) (complete.Signal, int, bool) {
	if len(b) == 1 {
		return complete.Special(complete.KeyEscape, 0), 1, true
	}

	switch b[1] {
	case '[':
		return d.csi(b)
	case 'O':
		if len(b) == 2 {
			return complete.Signal{}, 0, false
		}
		if k, ok := csiKeys[b[2]]; ok {
			return complete.Special(k, 0), 3, true
		}
		return complete.Signal{}, 3, false
	case 27:
		return complete.Special(complete.KeyEscape, 0), 1, true
	}

	s, n, ok := d.next(b[1:])
	if n == 0 {
		return complete.Signal{}, 0, false
	}
	if !ok {
		return complete.Special(complete.KeyEscape, 0), 1, true
	}
	s.Mods |= complete.ModAlt
	return s, n + 1, true
}

// csi decodes ESC [ params final. Unknown sequences are swallowed.
func (d *Decoder) csi(b []byte) (complete.Signal, int, bool) {
	i := 2
	for i < len(b) && (b[i] >= '0' && b[i] <= '9' || b[i] == ';') {
		i++
	}
	if i >= len(b) {
		return complete.Signal{}, 0, false
	}

	final := b[i]
	n := i + 1
	params := strings.Split(string(b[2:i]), ";")
	var mods complete.Modifier
	if len(params) > 1 {
		if m, err := strconv.Atoi(params[1]); err == nil {
			mods = xtermMods(m)
		}
	}

	if final == 'Z' {
		return complete.Special(complete.KeyTab, complete.ModShift), n, true
	}
	if k, ok := csiKeys[final]; ok {
		return complete.Special(k, mods), n, true
	}
	if final == '~' {
		p, _ := strconv.Atoi(params[0])
		if k, ok := tildeKeys[p]; ok {
			return complete.Special(k, mods), n, true
		}
	}

	return complete.Signal{}, n, false
}
