// Package attach binds inline completion to input elements.
package attach

import (
	"log"

	"github.com/frizinak/inlinecomplete/complete"
	"github.com/frizinak/inlinecomplete/terms"
)

type Kind byte

const (
	KindOther Kind = iota
	KindText
	KindTextArea
)

// Element is an input element as seen by a host. Implementations must be
// comparable (usually a pointer) as the Registry keys on identity.
type Element interface {
	terms.Element
	complete.Field
	Kind() Kind
}

type Binding struct {
	Terms     []string
	Options   terms.Options
	Completer *complete.Completer
}

// Registry owns the bindings of one host. It is not safe for concurrent
// use; hosts deliver key signals one at a time.
type Registry struct {
	log      *log.Logger
	caps     terms.Capabilities
	accept   complete.Key
	bindings map[Element]*Binding
}

func New(caps terms.Capabilities, log *log.Logger) *Registry {
	return &Registry{
		log:      log,
		caps:     caps,
		accept:   complete.KeyTab,
		bindings: make(map[Element]*Binding),
	}
}

// SetAcceptKey sets the key that accepts a pending suggestion for bindings
// created from now on.
func (r *Registry) SetAcceptKey(k complete.Key) { r.accept = k }

// Attach resolves the terms of el and binds a Completer to it, replacing any
// previous binding. Elements that are neither text inputs nor text areas
// are skipped.
func (r *Registry) Attach(el Element, opts terms.Options) (*Binding, bool) {
	if el.Kind() == KindOther {
		return nil, false
	}

	list := terms.Resolve(el, opts, r.caps)
	c := complete.New(list)
	c.SetAcceptKey(r.accept)
	b := &Binding{Terms: list, Options: opts, Completer: c}
	if _, ok := r.bindings[el]; ok {
		r.log.Printf("rebinding element with %d terms", len(list))
	}
	r.bindings[el] = b

	return b, true
}

// AttachAll attaches every element and returns how many were bound.
func (r *Registry) AttachAll(els []Element, opts terms.Options) int {
	n := 0
	for _, el := range els {
		if _, ok := r.Attach(el, opts); ok {
			n++
		}
	}
	return n
}

func (r *Registry) Detach(el Element) bool {
	if _, ok := r.bindings[el]; !ok {
		return false
	}
	delete(r.bindings, el)
	return true
}

func (r *Registry) Binding(el Element) (*Binding, bool) {
	b, ok := r.bindings[el]
	return b, ok
}

func (r *Registry) Len() int { return len(r.bindings) }

// Pressed forwards a pressed signal to el's Completer and returns false when
// the host must suppress its default handling.
func (r *Registry) Pressed(el Element, s complete.Signal) bool {
	b, ok := r.bindings[el]
	if !ok {
		return true
	}
	return b.Completer.Pressed(el, s)
}

// Released forwards a released signal to el's Completer.
func (r *Registry) Released(el Element, s complete.Signal) {
	b, ok := r.bindings[el]
	if !ok {
		return
	}
	b.Completer.Released(el, s)
}
