// Package public holds the demo page.
package public

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/frizinak/inlinecomplete/html"
)

//go:embed index.html wasm_init.js style.css
var files embed.FS

var (
	styleRE   = regexp.MustCompile(`(?s)<!--style-->.*<!--eostyle-->`)
	scriptsRE = regexp.MustCompile(`(?s)<!--scripts-->.*<!--eoscripts-->`)
)

// TermsInput is the id of the input that receives the configured terms.
const TermsInput = "terms"

// Page renders index.html with the given terms set on the terms input and
// the stylesheet and init script inlined.
func Page(terms []string) ([]byte, error) {
	index, err := files.ReadFile("index.html")
	if err != nil {
		return nil, err
	}
	css, err := files.ReadFile("style.css")
	if err != nil {
		return nil, err
	}
	script, err := files.ReadFile("wasm_init.js")
	if err != nil {
		return nil, err
	}

	doc, err := html.Load(bytes.NewReader(index))
	if err != nil {
		return nil, err
	}

	els := doc.Elements("#" + TermsInput)
	if len(els) != 1 {
		return nil, fmt.Errorf("index.html: no #%s input", TermsInput)
	}
	if len(terms) != 0 {
		els[0].SetData("list", "list:"+strings.Join(terms, "|"))
	}

	out, err := doc.HTML()
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(nil)
	buf.WriteString("<style>")
	buf.Write(css)
	buf.WriteString("</style>")
	page := styleRE.ReplaceAllLiteral([]byte(out), buf.Bytes())

	buf.Reset()
	buf.WriteString(`<script src="wasm_exec.js"></script>`)
	buf.WriteString("<script>")
	buf.Write(script)
	buf.WriteString("</script>")
	page = scriptsRE.ReplaceAllLiteral(page, buf.Bytes())

	return page, nil
}

// Static returns the files to serve, keyed by path.
func Static(terms []string) (map[string][]byte, error) {
	page, err := Page(terms)
	if err != nil {
		return nil, err
	}

	static := map[string][]byte{"index.html": page}
	for _, n := range []string{"style.css", "wasm_init.js"} {
		d, err := files.ReadFile(n)
		if err != nil {
			return nil, err
		}
		static[n] = d
	}

	return static, nil
}
