package complete

import "testing"

var people = []string{"Peter", "Paul", "Patricia"}

func TestPressed(t *testing.T) {
	pending := State{Text: "Peter", Start: 1, End: 5}
	tests := []struct {
		name  string
		in    State
		sig   Signal
		want  State
		allow bool
	}{
		{
			name:  "shrink on retype",
			in:    pending,
			sig:   Rune('e', ModNone),
			want:  State{"Peter", 2, 5},
			allow: false,
		},
		{
			name:  "shrink ignores case",
			in:    pending,
			sig:   Rune('E', ModShift),
			want:  State{"Peter", 2, 5},
			allow: false,
		},
		{
			name:  "tab accepts",
			in:    pending,
			sig:   Special(KeyTab, ModNone),
			want:  State{"Peter", 5, 5},
			allow: false,
		},
		{
			name:  "mismatch rejects",
			in:    pending,
			sig:   Rune('x', ModNone),
			want:  pending,
			allow: true,
		},
		{
			name:  "tab without selection",
			in:    State{"Peter", 5, 5},
			sig:   Special(KeyTab, ModNone),
			want:  State{"Peter", 5, 5},
			allow: true,
		},
		{
			name:  "backspace",
			in:    pending,
			sig:   Special(KeyBackspace, ModNone),
			want:  pending,
			allow: true,
		},
		{
			name:  "delete",
			in:    pending,
			sig:   Special(KeyDelete, ModNone),
			want:  pending,
			allow: true,
		},
		{
			name:  "ctrl chord",
			in:    pending,
			sig:   Rune('e', ModCtrl),
			want:  pending,
			allow: true,
		},
		{
			name:  "meta chord",
			in:    pending,
			sig:   Rune('e', ModMeta),
			want:  pending,
			allow: true,
		},
		{
			name:  "control key",
			in:    pending,
			sig:   Special(KeyControl, ModCtrl),
			want:  pending,
			allow: true,
		},
		{
			name:  "shift alone",
			in:    pending,
			sig:   Special(KeyShift, ModShift),
			want:  pending,
			allow: true,
		},
		{
			name:  "key without character",
			in:    pending,
			sig:   Special(KeyAlt, ModAlt),
			want:  pending,
			allow: true,
		},
		{
			name:  "left arrow",
			in:    pending,
			sig:   Special(KeyLeft, ModNone),
			want:  pending,
			allow: true,
		},
	}

	c := New(people)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, allow := c.PreProcess(tt.in, tt.sig)
			if allow != tt.allow {
				t.Errorf("allow = %t, want %t", allow, tt.allow)
			}
			if got != tt.want {
				t.Errorf("state = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPressedShrinkLeavesRemainder(t *testing.T) {
	b := NewBuffer(State{"Peter", 1, 5})
	if New(people).Pressed(b, Rune('e', ModNone)) {
		t.Fatal("retyped character was not suppressed")
	}
	if b.Selection() != "ter" {
		t.Errorf("expected selection 'ter', got %q", b.Selection())
	}
}

func TestPressedEmptyTerms(t *testing.T) {
	c := New(nil)
	in := State{"Peter", 1, 5}
	got, allow := c.PreProcess(in, Rune('e', ModNone))
	if !allow || got != in {
		t.Errorf("empty term list must not interfere: %+v %t", got, allow)
	}
}

func TestReleased(t *testing.T) {
	tests := []struct {
		name  string
		terms []string
		in    State
		sig   Signal
		want  State
	}{
		{
			name: "first letter",
			in:   State{"P", 1, 1},
			sig:  Rune('P', ModShift),
			want: State{"Peter", 1, 5},
		},
		{
			name: "priority",
			in:   State{"pa", 2, 2},
			sig:  Rune('a', ModNone),
			want: State{"paul", 2, 4},
		},
		{
			name: "later word keeps typed case",
			in:   State{"I like pat", 10, 10},
			sig:  Rune('t', ModNone),
			want: State{"I like patricia", 10, 15},
		},
		{
			name: "no match",
			in:   State{"I like x", 8, 8},
			sig:  Rune('x', ModNone),
			want: State{"I like x", 8, 8},
		},
		{
			name: "empty word",
			in:   State{"I like ", 7, 7},
			sig:  Rune(' ', ModNone),
			want: State{"I like ", 7, 7},
		},
		{
			name: "whole term typed",
			in:   State{"paul", 4, 4},
			sig:  Rune('l', ModNone),
			want: State{"paul", 4, 4},
		},
		{
			name:  "redundant match",
			terms: []string{"Peter"},
			in:    State{"I like Peter and peter", 22, 22},
			sig:   Rune('r', ModNone),
			want:  State{"I like Peter and peter", 22, 22},
		},
		{
			name:  "term already elsewhere in the line",
			terms: []string{"Peter"},
			in:    State{"Peter and p", 11, 11},
			sig:   Rune('p', ModNone),
			want:  State{"Peter and p", 11, 11},
		},
		{
			name: "retyped suggestion",
			in:   State{"Peter", 2, 5},
			sig:  Rune('e', ModNone),
			want: State{"Peter", 2, 5},
		},
		{
			name: "backspace does not re-suggest",
			in:   State{"P", 1, 1},
			sig:  Special(KeyBackspace, ModNone),
			want: State{"P", 1, 1},
		},
		{
			name: "shift alone",
			in:   State{"P", 1, 1},
			sig:  Special(KeyShift, ModShift),
			want: State{"P", 1, 1},
		},
		{
			name:  "empty term list",
			terms: []string{},
			in:    State{"P", 1, 1},
			sig:   Rune('P', ModShift),
			want:  State{"P", 1, 1},
		},
		{
			name: "text after caret continues the term",
			in:   State{"Pe", 1, 1},
			sig:  Rune('P', ModShift),
			want: State{"Ptere", 1, 4},
		},
		{
			name: "word mid line",
			in:   State{"say p to me", 5, 5},
			sig:  Rune('p', ModNone),
			want: State{"say peter to me", 5, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := people
			if tt.terms != nil {
				terms = tt.terms
			}
			got := New(terms).PostProcess(tt.in, tt.sig)
			if got != tt.want {
				t.Errorf("state = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReleasedInvariant(t *testing.T) {
	c := New(people)
	b := NewBuffer(State{"hi pa there", 5, 5})
	before, after := "hi pa", " there"
	c.Released(b, Rune('a', ModNone))

	st := b.State()
	if st.Text != before+b.Selection()+after {
		t.Fatalf("text %q is not %q + selection %q + %q", st.Text, before, b.Selection(), after)
	}
	if b.Selection() != "ul" {
		t.Errorf("expected selection 'ul', got %q", b.Selection())
	}
}

func TestReleasedIdempotent(t *testing.T) {
	c := New(people)
	tests := []struct {
		in  State
		sig Signal
	}{
		{State{"P", 1, 1}, Rune('P', ModShift)},
		{State{"Pe", 1, 1}, Rune('P', ModShift)},
		{State{"pe", 1, 1}, Rune('p', ModNone)},
		{State{"say p to me", 5, 5}, Rune('p', ModNone)},
		{State{"Pe", 1, 1}, Special(KeyAlt, ModAlt)},
	}

	for _, tt := range tests {
		once := c.PostProcess(tt.in, tt.sig)
		twice := c.PostProcess(once, tt.sig)
		if once != twice {
			t.Errorf("%+v: second run changed state: %+v -> %+v", tt.in, once, twice)
		}
	}
}

func TestReleasedKeepsPendingSuggestion(t *testing.T) {
	c := New(people)
	in := State{"Ptere", 1, 4}
	if got := c.PostProcess(in, Special(KeyAlt, ModAlt)); got != in {
		t.Errorf("lone alt release changed %+v to %+v", in, got)
	}
}

func TestTypingSession(t *testing.T) {
	c := New([]string{"Peter"})
	b := NewBuffer(State{})

	typ := func(r rune, mods Modifier) {
		sig := Rune(r, mods)
		if c.Pressed(b, sig) {
			b.Replace(string(r))
		}
		c.Released(b, sig)
	}

	typ('P', ModShift)
	if b.Value() != "Peter" || b.Selection() != "eter" {
		t.Fatalf("after P: %q selected %q", b.Value(), b.Selection())
	}

	typ('e', ModNone)
	typ('t', ModNone)
	if b.Value() != "Peter" || b.Selection() != "er" {
		t.Fatalf("after Pet: %q selected %q", b.Value(), b.Selection())
	}

	if c.Pressed(b, Special(KeyTab, ModNone)) {
		t.Fatal("tab was not suppressed")
	}
	c.Released(b, Special(KeyTab, ModNone))
	if b.Value() != "Peter" || b.Caret() != 5 || b.Selection() != "" {
		t.Fatalf("after tab: %q caret %d selected %q", b.Value(), b.Caret(), b.Selection())
	}

	typ(' ', ModNone)
	typ('p', ModNone)
	typ('x', ModNone)
	if b.Value() != "Peter px" || b.Selection() != "" {
		t.Fatalf("after reject: %q selected %q", b.Value(), b.Selection())
	}
}

func TestAcceptKey(t *testing.T) {
	c := New(people)
	c.SetAcceptKey(KeyRight)
	got, allow := c.PreProcess(State{"Peter", 1, 5}, Special(KeyRight, ModNone))
	if allow || got != (State{"Peter", 5, 5}) {
		t.Errorf("right did not accept: %+v %t", got, allow)
	}

	got, allow = c.PreProcess(State{"Peter", 1, 5}, Special(KeyTab, ModNone))
	if !allow || got != (State{"Peter", 1, 5}) {
		t.Errorf("tab still accepts: %+v %t", got, allow)
	}
}
