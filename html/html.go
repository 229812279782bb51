// Package html hosts inline completion on the inputs of a static HTML
// document.
package html

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/frizinak/inlinecomplete/attach"
	"github.com/frizinak/inlinecomplete/complete"
	"github.com/frizinak/inlinecomplete/terms"
)

// Inputs selects every element that can be attached to.
const Inputs = "input, textarea"

type Document struct {
	doc   *goquery.Document
	elems map[*html.Node]*Element
}

func Load(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	return &Document{doc: doc, elems: make(map[*html.Node]*Element)}, nil
}

// Elements returns the elements matching the css selector. The same node
// always yields the same *Element.
func (d *Document) Elements(selector string) []*Element {
	sel := d.doc.Find(selector)
	list := make([]*Element, 0, sel.Length())
	sel.Each(func(i int, s *goquery.Selection) {
		n := s.Nodes[0]
		if e, ok := d.elems[n]; ok {
			list = append(list, e)
			return
		}
		e := newElement(d, s)
		d.elems[n] = e
		list = append(list, e)
	})

	return list
}

// Attachable converts Elements to a slice the attach package accepts.
func Attachable(list []*Element) []attach.Element {
	n := make([]attach.Element, len(list))
	for i, e := range list {
		n[i] = e
	}
	return n
}

// HTML renders the document with the current field values written back.
func (d *Document) HTML() (string, error) {
	for _, e := range d.elems {
		e.sync()
	}
	return d.doc.Html()
}

type Element struct {
	*complete.Buffer
	doc *Document
	sel *goquery.Selection
}

func newElement(d *Document, s *goquery.Selection) *Element {
	e := &Element{doc: d, sel: s}
	var v string
	switch goquery.NodeName(s) {
	case "textarea":
		v = s.Text()
	default:
		v, _ = s.Attr("value")
	}
	e.Buffer = complete.NewBuffer(complete.State{Text: v})
	return e
}

func (e *Element) sync() {
	if goquery.NodeName(e.sel) == "textarea" {
		e.sel.SetText(e.Value())
		return
	}
	e.sel.SetAttr("value", e.Value())
}

func (e *Element) Kind() attach.Kind {
	switch goquery.NodeName(e.sel) {
	case "textarea":
		return attach.KindTextArea
	case "input":
		t, ok := e.sel.Attr("type")
		if !ok || strings.EqualFold(t, "text") {
			return attach.KindText
		}
	}
	return attach.KindOther
}

func (e *Element) Attr(name string) (string, bool) { return e.sel.Attr(name) }

func (e *Element) RemoveAttr(name string) { e.sel.RemoveAttr(name) }

func (e *Element) Data(key string) (string, bool) { return e.sel.Attr("data-" + key) }

func (e *Element) SetData(key, value string) { e.sel.SetAttr("data-"+key, value) }

func (e *Element) DataList(id string) (terms.DataList, bool) {
	var found *goquery.Selection
	e.doc.doc.Find("datalist").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if v, _ := s.Attr("id"); v == id {
			found = s
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}

	return &DataList{node: found.Nodes[0]}, true
}

type DataList struct {
	node *html.Node
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func (d *DataList) options() []*html.Node {
	var list []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.Data == "option" {
				list = append(list, c)
				continue
			}
			walk(c)
		}
	}
	walk(d.node)
	return list
}

// Options returns the option values like the DOM does: the value attribute,
// or the option's text when it has none.
func (d *DataList) Options() []string {
	opts := d.options()
	list := make([]string, 0, len(opts))
	for _, o := range opts {
		if v, ok := attr(o, "value"); ok {
			list = append(list, v)
			continue
		}
		list = append(list, strings.TrimSpace(text(o)))
	}
	return list
}

// OptionValues returns the value attributes of the datalist's options.
func (d *DataList) OptionValues() []string {
	opts := d.options()
	list := make([]string, 0, len(opts))
	for _, o := range opts {
		v, _ := attr(o, "value")
		list = append(list, v)
	}
	return list
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
