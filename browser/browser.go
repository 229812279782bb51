// Package browser holds the parts of the browser binding that do not need a
// DOM: keyboard event translation and utf-16 offset conversion.
package browser

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/frizinak/inlinecomplete/complete"
)

// KeyEvent carries the fields of a DOM KeyboardEvent.
type KeyEvent struct {
	Key   string
	Which int

	Shift, Ctrl, Alt, Meta bool
}

var namedKeys = map[string]complete.Key{
	"Tab":        complete.KeyTab,
	"Enter":      complete.KeyEnter,
	"Escape":     complete.KeyEscape,
	"Esc":        complete.KeyEscape,
	"Backspace":  complete.KeyBackspace,
	"Delete":     complete.KeyDelete,
	"Del":        complete.KeyDelete,
	"ArrowLeft":  complete.KeyLeft,
	"Left":       complete.KeyLeft,
	"ArrowRight": complete.KeyRight,
	"Right":      complete.KeyRight,
	"ArrowUp":    complete.KeyUp,
	"Up":         complete.KeyUp,
	"ArrowDown":  complete.KeyDown,
	"Down":       complete.KeyDown,
	"Home":       complete.KeyHome,
	"End":        complete.KeyEnd,
	"Shift":      complete.KeyShift,
	"Control":    complete.KeyControl,
	"Alt":        complete.KeyAlt,
	"Meta":       complete.KeyMeta,
	"OS":         complete.KeyMeta,
}

var whichKeys = map[int]complete.Key{
	8:   complete.KeyBackspace,
	9:   complete.KeyTab,
	13:  complete.KeyEnter,
	16:  complete.KeyShift,
	17:  complete.KeyControl,
	18:  complete.KeyAlt,
	27:  complete.KeyEscape,
	35:  complete.KeyEnd,
	36:  complete.KeyHome,
	37:  complete.KeyLeft,
	38:  complete.KeyUp,
	39:  complete.KeyRight,
	40:  complete.KeyDown,
	46:  complete.KeyDelete,
	91:  complete.KeyMeta,
	93:  complete.KeyMeta,
	224: complete.KeyMeta,
}

// Signal translates a keyboard event. Key is preferred, Which is used by
// browsers that do not report it.
func Signal(ev KeyEvent) complete.Signal {
	var mods complete.Modifier
	if ev.Shift {
		mods |= complete.ModShift
	}
	if ev.Ctrl {
		mods |= complete.ModCtrl
	}
	if ev.Alt {
		mods |= complete.ModAlt
	}
	if ev.Meta {
		mods |= complete.ModMeta
	}

	if ev.Key != "" && ev.Key != "Unidentified" {
		if k, ok := namedKeys[ev.Key]; ok {
			return complete.Special(k, mods)
		}
		if utf8.RuneCountInString(ev.Key) == 1 {
			r, _ := utf8.DecodeRuneInString(ev.Key)
			return complete.Rune(r, mods)
		}
		return complete.Special(complete.KeyNone, mods)
	}

	if k, ok := whichKeys[ev.Which]; ok {
		return complete.Special(k, mods)
	}
	if ev.Which > 0 {
		return complete.Rune(rune(ev.Which), mods)
	}

	return complete.Special(complete.KeyNone, mods)
}

// RuneOffset converts a utf-16 code unit offset into s to a rune offset.
func RuneOffset(s string, off int) int {
	units, runes := 0, 0
	for _, r := range s {
		if units >= off {
			break
		}
		units += utf16.RuneLen(r)
		runes++
	}
	return runes
}

// UTF16Offset converts a rune offset into s to a utf-16 code unit offset.
func UTF16Offset(s string, off int) int {
	units, runes := 0, 0
	for _, r := range s {
		if runes >= off {
			break
		}
		units += utf16.RuneLen(r)
		runes++
	}
	return units
}
