package flags

import (
	"bytes"
	"flag"
	"reflect"
	"strings"
	"testing"
)

func testSet(buf *bytes.Buffer, exits *[]int) *Set {
	root := New(flag.NewFlagSet("app", flag.ContinueOnError), buf)
	root.SetExit(func(c int) { *exits = append(*exits, c) })
	return root
}

func TestParse(t *testing.T) {
	var exits []int
	buf := bytes.NewBuffer(nil)
	root := testSet(buf, &exits)

	var verbose bool
	var name string
	root.Define(func(fl *flag.FlagSet) HelpCB {
		fl.BoolVar(&verbose, "v", false, "verbose")
		return nil
	}).Handler(func(*Set, []string) error { return nil })

	root.Add("greet", "Say hello").Define(func(fl *flag.FlagSet) HelpCB {
		fl.StringVar(&name, "name", "", "who")
		return nil
	}).Handler(func(s *Set, args []string) error {
		if len(args) != 1 {
			t.Errorf("args %q", args)
		}
		return nil
	})

	sub, trail := root.Parse([]string{"-v", "greet", "-name", "x", "extra"})
	if !verbose || name != "x" {
		t.Errorf("flags not parsed: %v %q", verbose, name)
	}
	if !reflect.DeepEqual(trail, []string{"greet"}) {
		t.Errorf("trail %q", trail)
	}
	if err := sub.Do(); err != nil {
		t.Fatal(err)
	}

	sub, trail = root.Parse(nil)
	if sub != root || len(trail) != 0 {
		t.Errorf("expected root, trail %q", trail)
	}
	if len(exits) != 0 {
		t.Errorf("unexpected exits %v", exits)
	}
}

func TestUsage(t *testing.T) {
	var exits []int
	buf := bytes.NewBuffer(nil)
	root := testSet(buf, &exits)
	root.Define(func(*flag.FlagSet) HelpCB {
		return func(h *Help) { h.Add("extra help") }
	})
	root.Add("try", "Try it")
	root.Add("serve", "Serve it").Handler(func(*Set, []string) error { return nil })

	root.Parse([]string{"nope"})
	if !reflect.DeepEqual(exits, []int{1}) {
		t.Fatalf("exits %v", exits)
	}

	out := buf.String()
	for _, l := range []string{"Commands:", "  - try:   Try it", "  - serve: Serve it", "extra help"} {
		if !strings.Contains(out, l+"\n") {
			t.Errorf("missing %q in:\n%s", l, out)
		}
	}
	if strings.Index(out, "try:") > strings.Index(out, "serve:") {
		t.Error("commands not listed in order of definition")
	}
}
