package browser

import (
	"testing"

	"github.com/frizinak/inlinecomplete/complete"
)

func TestSignal(t *testing.T) {
	tests := []struct {
		ev   KeyEvent
		want complete.Signal
	}{
		{KeyEvent{Key: "p"}, complete.Rune('p', 0)},
		{KeyEvent{Key: "P", Shift: true}, complete.Rune('P', complete.ModShift)},
		{KeyEvent{Key: "Tab"}, complete.Special(complete.KeyTab, 0)},
		{KeyEvent{Key: "ArrowLeft"}, complete.Special(complete.KeyLeft, 0)},
		{KeyEvent{Key: "Shift", Shift: true}, complete.Special(complete.KeyShift, complete.ModShift)},
		{KeyEvent{Key: "a", Ctrl: true}, complete.Rune('a', complete.ModCtrl)},
		{KeyEvent{Key: "F5"}, complete.Special(complete.KeyNone, 0)},
		{KeyEvent{Key: "Unidentified", Which: 8}, complete.Special(complete.KeyBackspace, 0)},
		{KeyEvent{Which: 9}, complete.Special(complete.KeyTab, 0)},
		{KeyEvent{Which: 'E', Shift: true}, complete.Rune('E', complete.ModShift)},
		{KeyEvent{}, complete.Special(complete.KeyNone, 0)},
	}

	for _, tt := range tests {
		if got := Signal(tt.ev); got != tt.want {
			t.Errorf("%+v: got %+v, want %+v", tt.ev, got, tt.want)
		}
	}
}

func TestOffsets(t *testing.T) {
	s := "a😀b"
	runes := []int{0, 1, 2, 3}
	units := []int{0, 1, 3, 4}
	for i := range runes {
		if got := UTF16Offset(s, runes[i]); got != units[i] {
			t.Errorf("UTF16Offset(%d): got %d, want %d", runes[i], got, units[i])
		}
		if got := RuneOffset(s, units[i]); got != runes[i] {
			t.Errorf("RuneOffset(%d): got %d, want %d", units[i], got, runes[i])
		}
	}

	if got := RuneOffset(s, 100); got != 3 {
		t.Errorf("out of range offset: got %d", got)
	}
}
