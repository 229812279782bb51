package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/containerd/console"

	"github.com/frizinak/inlinecomplete/attach"
	"github.com/frizinak/inlinecomplete/complete"
	"github.com/frizinak/inlinecomplete/terms"
	"github.com/frizinak/inlinecomplete/ui"
)

// field exposes a ui as an attachable text input without attributes.
type field struct {
	ui.UI
}

func (f *field) Kind() attach.Kind                         { return attach.KindText }
func (f *field) Data(key string) (string, bool)            { return "", false }
func (f *field) Attr(name string) (string, bool)           { return "", false }
func (f *field) RemoveAttr(name string)                    {}
func (f *field) DataList(id string) (terms.DataList, bool) { return nil, false }

type session struct {
	ui   ui.UI
	el   *field
	reg  *attach.Registry
	keys *Keys
	dec  Decoder
}

func newSession(u ui.UI, keys *Keys, list []string, l *log.Logger) *session {
	s := &session{
		ui:   u,
		el:   &field{u},
		reg:  attach.New(terms.Capabilities{}, l),
		keys: keys,
	}
	s.reg.SetAcceptKey(keys.AcceptKey())
	s.reg.Attach(s.el, terms.Options{List: list})
	return s
}

// handle runs a single key through the keymap and the completer. Returns
// true when the user asked to quit.
func (s *session) handle(sig complete.Signal) bool {
	if a, ok := s.keys.Action(sig); ok {
		switch a {
		case Quit:
			return true
		case Submit:
			s.ui.Submit()
		case Clear:
			s.ui.Clear()
		case Reset:
			s.ui.Reset()
		}
		return false
	}

	if s.reg.Pressed(s.el, sig) {
		s.ui.Apply(sig)
	}
	s.reg.Released(s.el, sig)
	return false
}

func (s *session) input(chunk []byte) bool {
	defer s.ui.Flush()
	for _, sig := range s.dec.Decode(chunk) {
		if s.handle(sig) {
			return true
		}
	}
	return false
}

// reload replaces the binding with a fresh one for the new terms.
func (s *session) reload(u terms.Update) {
	if u.Err != nil {
		s.ui.Err(u.Err)
		return
	}
	s.reg.Detach(s.el)
	s.reg.Attach(s.el, terms.Options{List: u.Terms})
	s.ui.Log(fmt.Sprintf("%d terms", len(u.Terms)))
	s.ui.Flash("terms reloaded", 0)
}

func hint(k Keymap) string {
	return fmt.Sprintf("%s accepts, %s submits, %s quits", k[Accept], k[Submit], k[Quit])
}

func try(f *Flags) error {
	list, err := f.Terms()
	if err != nil {
		return err
	}

	keys, err := NewKeys(f.Keymap)
	if err != nil {
		return fmt.Errorf("invalid keymap %s: %w", f.All.KeymapFile, err)
	}

	var u ui.UI
	_, ttyErr := console.ConsoleFromFile(os.Stdout)
	if f.Try.Plain || ttyErr != nil {
		u = ui.Plain(os.Stdout, f.AppConf.MaxHistory)
	} else {
		u = ui.Term(os.Stdout, f.AppConf.MaxHistory, 1)
	}

	l := log.New(ioutil.Discard, "", 0)
	s := newSession(u, keys, list, l)

	updates := make(chan terms.Update, 1)
	if f.Try.Watch {
		w, err := terms.Watch(f.Source.TermsFile, f.Source.Set, updates)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	if c, err := console.ConsoleFromFile(os.Stdin); err == nil {
		if err := c.SetRaw(); err != nil {
			return err
		}
		defer c.Reset()
	}

	u.Log(fmt.Sprintf("%d terms", len(list)))
	u.Print(hint(f.Keymap), ui.HLMuted)
	u.Start()

	chunks := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		for {
			buf := make([]byte, 64)
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				chunks <- buf[:n]
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case chunk := <-chunks:
			if s.input(chunk) {
				return nil
			}
		case up := <-updates:
			s.reload(up)
		case err := <-readErr:
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
