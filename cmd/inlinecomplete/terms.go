package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/frizinak/inlinecomplete/attach"
	"github.com/frizinak/inlinecomplete/complete"
	"github.com/frizinak/inlinecomplete/html"
	"github.com/frizinak/inlinecomplete/terms"
)

type binding struct {
	Name  string
	Terms []string
}

func elementName(e *html.Element) string {
	if id, ok := e.Attr("id"); ok && id != "" {
		return "#" + id
	}
	if n, ok := e.Attr("name"); ok && n != "" {
		return n
	}
	return "?"
}

// htmlBindings attaches to every element matching the source's selector and
// returns their resolved terms in document order.
func htmlBindings(s Source, l *log.Logger) ([]binding, error) {
	fh, err := os.Open(s.HTML)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	doc, err := html.Load(fh)
	if err != nil {
		return nil, err
	}

	reg := attach.New(terms.Capabilities{DataList: true}, l)
	opts := terms.Options{DisableDataList: s.DisableDataList}
	list := make([]binding, 0)
	for _, el := range doc.Elements(s.Selector) {
		b, ok := reg.Attach(el, opts)
		if !ok {
			continue
		}
		list = append(list, binding{elementName(el), b.Terms})
	}

	return list, nil
}

func printTerms(w io.Writer, f *Flags) error {
	if f.Source.HTML != "" && len(f.All.Args) == 0 {
		list, err := htmlBindings(f.Source, log.New(w, "", 0))
		if err != nil {
			return err
		}
		for _, b := range list {
			fmt.Fprintf(w, "%s:\n", b.Name)
			for _, t := range b.Terms {
				fmt.Fprintf(w, "  %s\n", t)
			}
		}
		return nil
	}

	list, err := f.Terms()
	if err != nil {
		return err
	}

	if len(f.All.Args) == 0 {
		for _, t := range list {
			fmt.Fprintln(w, t)
		}
		return nil
	}

	for _, word := range f.All.Args {
		m, ok := complete.Match(word, list)
		if !ok {
			fmt.Fprintf(w, "%s\t-\n", word)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", word, m)
	}

	return nil
}
