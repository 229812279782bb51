//go:build js && wasm
// +build js,wasm

package main

import (
	"log"
	"strings"
	"syscall/js"

	"github.com/frizinak/inlinecomplete/attach"
	"github.com/frizinak/inlinecomplete/browser"
	"github.com/frizinak/inlinecomplete/terms"
)

type element struct {
	v js.Value

	keydown js.Func
	keyup   js.Func
}

func (e *element) Kind() attach.Kind {
	switch strings.ToLower(e.v.Get("tagName").String()) {
	case "textarea":
		return attach.KindTextArea
	case "input":
		if strings.ToLower(e.v.Get("type").String()) == "text" {
			return attach.KindText
		}
	}
	return attach.KindOther
}

func (e *element) Value() string      { return e.v.Get("value").String() }
func (e *element) SetValue(v string) { e.v.Set("value", v) }

func (e *element) offsets() (string, int, int) {
	v := e.Value()
	s := browser.RuneOffset(v, e.v.Get("selectionStart").Int())
	end := browser.RuneOffset(v, e.v.Get("selectionEnd").Int())
	return v, s, end
}

func (e *element) Selection() string {
	v, s, end := e.offsets()
	r := []rune(v)
	return string(r[s:end])
}

func (e *element) Select(start, end int) {
	v := e.Value()
	e.v.Call("setSelectionRange", browser.UTF16Offset(v, start), browser.UTF16Offset(v, end))
}

func (e *element) MoveSelectionStart(n int) {
	_, s, end := e.offsets()
	s += n
	if s > end {
		end = s
	}
	e.Select(s, end)
}

func (e *element) Caret() int {
	_, s, _ := e.offsets()
	return s
}

func (e *element) Data(key string) (string, bool) {
	v := e.v.Get("dataset").Get(key)
	if v.IsUndefined() || v.IsNull() {
		return "", false
	}
	return v.String(), true
}

func (e *element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *element) RemoveAttr(name string) { e.v.Call("removeAttribute", name) }

func (e *element) DataList(id string) (terms.DataList, bool) {
	dl := js.Global().Get("document").Call("getElementById", id)
	if dl.IsNull() || strings.ToLower(dl.Get("tagName").String()) != "datalist" {
		return nil, false
	}
	return dataList{dl}, true
}

type dataList struct{ v js.Value }

func (d dataList) Options() []string {
	opts := d.v.Get("options")
	n := opts.Length()
	list := make([]string, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, opts.Index(i).Get("value").String())
	}
	return list
}

func (d dataList) OptionValues() []string {
	opts := d.v.Call("querySelectorAll", "option")
	n := opts.Length()
	list := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v := opts.Index(i).Call("getAttribute", "value")
		if v.IsNull() {
			continue
		}
		list = append(list, v.String())
	}
	return list
}

func keyEvent(ev js.Value) browser.KeyEvent {
	k := browser.KeyEvent{
		Shift: ev.Get("shiftKey").Bool(),
		Ctrl:  ev.Get("ctrlKey").Bool(),
		Alt:   ev.Get("altKey").Bool(),
		Meta:  ev.Get("metaKey").Bool(),
	}
	if key := ev.Get("key"); key.Type() == js.TypeString {
		k.Key = key.String()
	}
	if which := ev.Get("which"); which.Type() == js.TypeNumber {
		k.Which = which.Int()
	}
	return k
}

type host struct {
	reg      *attach.Registry
	elements []*element
}

func (h *host) lookup(v js.Value) (*element, int) {
	for i, e := range h.elements {
		if e.v.Equal(v) {
			return e, i
		}
	}
	return nil, -1
}

func (h *host) attach(v js.Value, opts terms.Options) bool {
	el, _ := h.lookup(v)
	if el == nil {
		el = &element{v: v}
		if _, ok := h.reg.Attach(el, opts); !ok {
			return false
		}
		el.keydown = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			if !h.reg.Pressed(el, browser.Signal(keyEvent(args[0]))) {
				args[0].Call("preventDefault")
			}
			return nil
		})
		el.keyup = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			h.reg.Released(el, browser.Signal(keyEvent(args[0])))
			return nil
		})
		v.Call("addEventListener", "keydown", el.keydown)
		v.Call("addEventListener", "keyup", el.keyup)
		h.elements = append(h.elements, el)
		return true
	}

	_, ok := h.reg.Attach(el, opts)
	return ok
}

func (h *host) detach(v js.Value) bool {
	el, i := h.lookup(v)
	if el == nil {
		return false
	}
	h.reg.Detach(el)
	v.Call("removeEventListener", "keydown", el.keydown)
	v.Call("removeEventListener", "keyup", el.keyup)
	el.keydown.Release()
	el.keyup.Release()
	h.elements = append(h.elements[:i], h.elements[i+1:]...)
	return true
}

func options(v js.Value) terms.Options {
	var opts terms.Options
	if v.Type() != js.TypeObject {
		return opts
	}
	if l := v.Get("list"); l.Type() == js.TypeObject {
		n := l.Length()
		for i := 0; i < n; i++ {
			opts.List = append(opts.List, l.Index(i).String())
		}
	}
	opts.DisableDataList = v.Get("disableDataListAttribute").Truthy()
	return opts
}

func each(selector js.Value, cb func(js.Value)) {
	if selector.Type() != js.TypeString {
		cb(selector)
		return
	}
	nodes := js.Global().Get("document").Call("querySelectorAll", selector.String())
	n := nodes.Length()
	for i := 0; i < n; i++ {
		cb(nodes.Index(i))
	}
}

func main() {
	window := js.Global()
	console := window.Get("console")

	caps := terms.Capabilities{DataList: window.Get("HTMLDataListElement").Truthy()}
	l := log.New(consoleWriter{console}, "inlinecomplete: ", 0)
	h := &host{reg: attach.New(caps, l)}

	public := window.Get("Object").New()
	window.Set("inlineComplete", public)

	public.Set("attach", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 {
			console.Call("error", "attach requires a selector or element")
			return 0
		}
		var opts terms.Options
		if len(args) > 1 {
			opts = options(args[1])
		}
		n := 0
		each(args[0], func(v js.Value) {
			if h.attach(v, opts) {
				n++
			}
		})
		return n
	}))

	public.Set("detach", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 {
			console.Call("error", "detach requires a selector or element")
			return 0
		}
		n := 0
		each(args[0], func(v js.Value) {
			if h.detach(v) {
				n++
			}
		})
		return n
	}))

	ch := make(chan struct{})
	<-ch
}

type consoleWriter struct{ console js.Value }

func (c consoleWriter) Write(b []byte) (int, error) {
	c.console.Call("log", strings.TrimRight(string(b), "\n"))
	return len(b), nil
}
