package complete

import "unicode"

type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyTab
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyShift
	KeyControl
	KeyAlt
	KeyMeta
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyTab:       "tab",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyShift:     "shift",
	KeyControl:   "control",
	KeyAlt:       "alt",
	KeyMeta:      "meta",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "unknown"
}

type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone Modifier = 0
)

func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// Signal is one phase (pressed or released) of a single key interaction.
type Signal struct {
	Key  Key
	Rune rune
	Mods Modifier
}

func Rune(r rune, mods Modifier) Signal { return Signal{Key: KeyRune, Rune: r, Mods: mods} }
func Special(k Key, mods Modifier) Signal { return Signal{Key: k, Mods: mods} }

// Char returns the character the key would type, 0 if there is none.
// Hosts often only know the raw (uppercase) key code, so the rune is
// uppercased first and lowered again unless shift is held.
func (s Signal) Char() rune {
	var r rune
	switch s.Key {
	case KeyRune:
		r = s.Rune
	case KeyTab:
		r = '\t'
	default:
		return 0
	}
	if r == 0 {
		return 0
	}

	r = unicode.ToUpper(r)
	if !s.Mods.Has(ModShift) {
		r = unicode.ToLower(r)
	}
	return r
}

// Passthrough reports whether the signal is never handled by the Completer:
// destructive keys, navigation keys and control/meta chords.
func (s Signal) Passthrough() bool {
	if s.Mods.Has(ModCtrl) || s.Mods.Has(ModMeta) {
		return true
	}

	switch s.Key {
	case KeyBackspace, KeyDelete, KeyControl, KeyMeta,
		KeyLeft, KeyRight, KeyUp, KeyDown, KeyHome, KeyEnd,
		KeyEscape, KeyEnter:
		return true
	}
	return false
}

// ShiftOnly reports whether the signal is the shift key on its own.
func (s Signal) ShiftOnly() bool { return s.Key == KeyShift }
