package complete

import "testing"

func TestBufferSelect(t *testing.T) {
	b := NewBuffer(State{Text: "hello"})
	b.Select(1, 3)
	if b.Selection() != "el" {
		t.Errorf("expected 'el', got %q", b.Selection())
	}

	b.Select(4, 2)
	if b.Caret() != 4 || b.Selection() != "" {
		t.Errorf("inverted range should collapse, got caret %d %q", b.Caret(), b.Selection())
	}

	b.Select(-3, 99)
	if b.Selection() != "hello" {
		t.Errorf("expected clamped selection, got %q", b.Selection())
	}
}

func TestBufferMoveSelectionStart(t *testing.T) {
	b := NewBuffer(State{"Peter", 1, 5})
	b.MoveSelectionStart(1)
	if b.Selection() != "ter" {
		t.Errorf("expected 'ter', got %q", b.Selection())
	}

	b.MoveSelectionStart(10)
	if b.Caret() != 5 || b.SelectionEnd() != 5 {
		t.Errorf("expected caret at 5, got %d-%d", b.Caret(), b.SelectionEnd())
	}
}

func TestBufferSetValue(t *testing.T) {
	b := NewBuffer(State{"abc", 1, 2})
	b.SetValue("wörld")
	if b.Caret() != 5 || b.Selection() != "" {
		t.Errorf("SetValue should leave the caret at the end, got %d %q", b.Caret(), b.Selection())
	}
}

func TestBufferEditing(t *testing.T) {
	b := NewBuffer(State{"Peter", 1, 5})
	b.Replace("x")
	if b.Value() != "Px" || b.Caret() != 2 {
		t.Errorf("expected 'Px' caret 2, got %q %d", b.Value(), b.Caret())
	}

	if !b.DeleteBackward() || b.Value() != "P" {
		t.Errorf("expected 'P', got %q", b.Value())
	}

	b.SetCaret(0)
	if !b.DeleteForward() || b.Value() != "" {
		t.Errorf("expected empty, got %q", b.Value())
	}
	if b.DeleteForward() || b.DeleteBackward() {
		t.Error("deleting from an empty buffer should return false")
	}

	b = NewBuffer(State{"Peter", 1, 5})
	b.DeleteForward()
	if b.Value() != "P" || b.Caret() != 1 {
		t.Errorf("delete should remove the selection, got %q %d", b.Value(), b.Caret())
	}
}
