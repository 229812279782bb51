// Package flags nests flag.FlagSets into subcommands.
package flags

import (
	"flag"
	"fmt"
	"io"
	"os"
)

type Set struct {
	w    io.Writer
	f    *flag.FlagSet
	name string
	desc string

	order    []string
	children map[string]*Set
	handler  Handler
	exit     func(int)
}

func New(f *flag.FlagSet, output io.Writer) *Set {
	f.SetOutput(output)
	s := &Set{
		w:        output,
		f:        f,
		name:     f.Name(),
		children: make(map[string]*Set),
		exit:     os.Exit,
	}
	f.Usage = s.usage(nil)
	return s
}

func NewRoot(output io.Writer) *Set {
	return New(flag.CommandLine, output)
}

// SetExit replaces os.Exit for Usage and the set's future children.
func (f *Set) SetExit(exit func(int)) *Set { f.exit = exit; return f }

func (f *Set) usage(helper HelpCB) func() {
	return func() {
		fmt.Fprintln(f.w, f.name)
		if f.desc != "" {
			fmt.Fprintln(f.w, f.desc)
		}
		f.f.PrintDefaults()

		if len(f.order) != 0 {
			fmt.Fprintln(f.w, "Commands:")
			width := 0
			for _, n := range f.order {
				if len(n) > width {
					width = len(n)
				}
			}
			for _, n := range f.order {
				fmt.Fprintf(f.w, "  - %-*s %s\n", width+1, n+":", f.children[n].desc)
			}
		}

		if helper == nil {
			return
		}
		h := &Help{l: make([]string, 0, 1)}
		helper(h)
		for _, l := range h.l {
			fmt.Fprintln(f.w, l)
		}
	}
}

// Define registers flags and an optional extra help section.
func (f *Set) Define(cb func(*flag.FlagSet) HelpCB) *Set {
	f.f.Usage = f.usage(cb(f.f))
	return f
}

func (f *Set) Handler(h Handler) *Set { f.handler = h; return f }

// Add returns the subcommand name, creating it if needed. desc is shown in
// the parent's command listing.
func (f *Set) Add(name, desc string) *Set {
	if n, ok := f.children[name]; ok {
		return n
	}

	rf := flag.NewFlagSet(f.name+" "+name, flag.ExitOnError)
	n := New(rf, f.w)
	n.desc = desc
	n.exit = f.exit
	f.children[name] = n
	f.order = append(f.order, name)

	return n
}

func (f *Set) Usage(ex int) {
	f.f.Usage()
	f.exit(ex)
}

func (f *Set) Args() []string { return f.f.Args() }

func (f *Set) ParseCommandline() (sub *Set, trail []string) {
	return f.Parse(os.Args[1:])
}

// Parse walks args down the subcommand tree and returns the deepest set
// reached along with the subcommand names that led to it.
func (f *Set) Parse(args []string) (sub *Set, trail []string) {
	return f.parse(args, make([]string, 0))
}

func (f *Set) parse(args, trail []string) (*Set, []string) {
	f.f.Parse(args)
	cmds := f.f.Args()
	if len(cmds) != 0 {
		if sub, ok := f.children[cmds[0]]; ok {
			return sub.parse(cmds[1:], append(trail, cmds[0]))
		}
	}

	if f.handler == nil {
		f.Usage(1)
	}

	return f, trail
}

func (f *Set) Do() error {
	return f.handler(f, f.Args())
}

type Help struct {
	l []string
}

func (h *Help) Add(line string) {
	h.l = append(h.l, line)
}

type HelpCB func(h *Help)

type Handler func(f *Set, args []string) error
