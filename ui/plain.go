package ui

import (
	"fmt"
	"io"
	"time"
)

// PlainUI writes one line per field change: the text with the pending
// suggestion in brackets and the caret marked with '|' when nothing is
// selected. Used when the output is not a terminal.
type PlainUI struct {
	*Field
	io.Writer
	last string
}

func Plain(w io.Writer, maxHistory int) *PlainUI {
	return &PlainUI{Field: NewField(maxHistory), Writer: w}
}

func (p *PlainUI) Start()                              {}
func (p *PlainUI) Log(msg string)                      {}
func (p *PlainUI) Flash(msg string, dur time.Duration) { fmt.Fprintln(p.Writer, "FLASH", msg) }
func (p *PlainUI) Err(err error)                       { fmt.Fprintln(p.Writer, "ERR", err) }
func (p *PlainUI) Print(text string, hl Highlight)     { fmt.Fprintln(p.Writer, text) }
func (p *PlainUI) Clear()                              {}

func (p *PlainUI) Submit() string {
	v := p.Field.Submit()
	fmt.Fprintf(p.Writer, "> %s\n", v)
	p.last = ""
	return v
}

// Render formats the field state.
func (p *PlainUI) Render() string {
	st := p.Field.State()
	r := []rune(st.Text)
	if st.Start == st.End {
		return string(r[:st.Start]) + "|" + string(r[st.Start:])
	}
	return string(r[:st.Start]) + "[" + string(r[st.Start:st.End]) + "]" + string(r[st.End:])
}

func (p *PlainUI) Flush() {
	s := p.Render()
	if s == p.last {
		return
	}
	p.last = s
	fmt.Fprintln(p.Writer, s)
}
