package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/containerd/console"
	"github.com/mattn/go-runewidth"
)

// SizeFunc returns the width and height of the output in cells.
type SizeFunc func() (w, h int, err error)

// ConsoleSize reports the size of stdout if it is a terminal.
func ConsoleSize() (int, int, error) {
	c, err := console.ConsoleFromFile(os.Stdout)
	if err != nil {
		return 0, 0, err
	}
	s, err := c.Size()
	return int(s.Width), int(s.Height), err
}

// assumes utf-8
type TermUI struct {
	*Field

	w      io.Writer
	size   SizeFunc
	indent int

	status      string
	flash       string
	flashExpiry time.Time

	render sync.Mutex
	log    []line
	maxLog int

	disabled bool
}

func Term(w io.Writer, maxLog, indent int) *TermUI {
	return &TermUI{
		Field:    NewField(maxLog),
		w:        w,
		size:     ConsoleSize,
		indent:   indent,
		maxLog:   maxLog,
		disabled: true,
	}
}

func (ui *TermUI) SetSize(fn SizeFunc) { ui.size = fn }

func (ui *TermUI) Start() {
	ui.disabled = false
	ui.Flush()
}

func (ui *TermUI) Flash(msg string, dur time.Duration) {
	if dur == 0 {
		dur = time.Second * 5
	}
	ui.render.Lock()
	ui.flashExpiry = time.Now().Add(dur)
	ui.flash = printable(msg)
	ui.render.Unlock()
	ui.Flush()
}

func (ui *TermUI) Log(msg string) {
	ui.render.Lock()
	ui.status = printable(msg)
	ui.render.Unlock()
	ui.Flush()
}

func (ui *TermUI) Err(err error) { ui.Print(err.Error(), HLProblem) }

// Print appends text to the scrollback above the input line.
func (ui *TermUI) Print(text string, hl Highlight) {
	ui.render.Lock()
	for _, l := range strings.Split(strings.ReplaceAll(text, "\r", ""), "\n") {
		ui.log = append(ui.log, line{printable(l), hl})
	}
	if ui.maxLog > 0 && len(ui.log) > ui.maxLog {
		ui.log = ui.log[len(ui.log)-ui.maxLog:]
	}
	ui.render.Unlock()
	ui.Flush()
}

// Submit clears the input and moves its value to the scrollback.
func (ui *TermUI) Submit() string {
	v := ui.Field.Submit()
	if v != "" {
		ui.Print(v, HLOwn)
	}
	return v
}

func (ui *TermUI) Clear() {
	ui.render.Lock()
	ui.log = ui.log[:0]
	ui.render.Unlock()
	ui.Flush()
}

var (
	clear        = []byte("\033[H\033[J")
	clrLine      = []byte("\033[1m")
	clrStatus    = []byte("\033[40;37m")
	clrSelection = []byte("\033[7m")
	clrReset     = []byte("\033[0m")
)

var hl = map[Highlight][]byte{
	HLMuted:   []byte("\033[40;37m"),
	HLProblem: []byte("\033[1;31m"),
	HLOwn:     []byte("\033[32m"),
}

type chr struct {
	v []byte
	w int
}

const _chrLine = "─"

var chrLine = chr{[]byte(_chrLine), runewidth.StringWidth(_chrLine)}

func rwidth(r rune) int { return runewidth.RuneWidth(r) }

func width(str string, runes int) int {
	c := 0
	width := 0
	for _, n := range str {
		if runes > -1 && c >= runes {
			break
		}
		width += rwidth(n)
		c++
	}

	return width
}

func padc(n string, padchr chr, total int, nWidth int) string {
	if nWidth < 0 {
		nWidth = width(n, -1)
	}
	count := total - nWidth
	rcount := count / padchr.w

	if rcount <= 0 {
		return n
	}

	b := make([]byte, 0, rcount*len(padchr.v))
	for i := 0; i < rcount; i++ {
		b = append(b, padchr.v...)
	}
	return n + string(b)
}

func pad(n, padchr string, total int, nWidth int) string {
	return padc(n, chr{[]byte(padchr), width(padchr, -1)}, total, nWidth)
}

// input renders text with the selection [start, end) in reverse video,
// scrolled horizontally so the caret at start stays within max cells. It
// returns the caret column relative to the first rendered cell.
func input(text string, start, end, max int) ([]byte, int) {
	runes := []rune(text)
	caret := width(text, start)
	off := 0
	if caret > max {
		off = caret - max
	}

	s := make([]byte, 0, len(text)+len(clrSelection)+len(clrReset))
	col := 0
	selected := false
	for i, r := range runes {
		rw := rwidth(r)
		if col < off {
			col += rw
			continue
		}
		if col+rw-off > max {
			break
		}
		col += rw

		in := i >= start && i < end
		if in != selected {
			selected = in
			if in {
				s = append(s, clrSelection...)
			} else {
				s = append(s, clrReset...)
			}
		}
		s = append(s, string(r)...)
	}
	if selected {
		s = append(s, clrReset...)
	}

	return s, caret - off
}

func (ui *TermUI) Flush() {
	if ui.disabled {
		return
	}

	ui.render.Lock()
	defer ui.render.Unlock()

	w, h := 50, 10
	if ww, wh, err := ui.size(); err == nil && ww > 0 && wh > 0 {
		w, h = ww, wh
	}
	if w < 10 {
		w = 10
	}
	rw := w
	w -= ui.indent

	nlogs := h - 3
	if nlogs < 0 {
		nlogs = 0
	}

	logs := ui.log
	if len(logs) > nlogs {
		logs = logs[len(logs)-nlogs:]
	}

	status := ui.status
	if time.Now().Before(ui.flashExpiry) {
		status = fmt.Sprintf("%s - %s", status, ui.flash)
	}
	status = runewidth.Truncate(status, w, "…")
	status = pad(status, " ", w, -1)

	indent := []byte(strings.Repeat(" ", ui.indent))

	s := make([]byte, 0, 1024)
	s = append(s, clear...)
	s = append(s, clrStatus...)
	s = append(s, indent...)
	s = append(s, status...)
	s = append(s, clrReset...)
	s = append(s, '\r', '\n')

	for _, l := range logs {
		s = append(s, indent...)
		c, ok := hl[l.highlight]
		if ok {
			s = append(s, c...)
		}
		s = append(s, runewidth.Truncate(l.text, w, "…")...)
		if ok {
			s = append(s, clrReset...)
		}
		s = append(s, '\r', '\n')
	}

	for i := len(logs); i < nlogs; i++ {
		s = append(s, '\r', '\n')
	}

	s = append(s, clrLine...)
	s = append(s, padc("", chrLine, rw, 0)...)
	s = append(s, clrReset...)
	s = append(s, '\r', '\n')
	s = append(s, indent...)

	st := ui.Field.State()
	in, col := input(st.Text, st.Start, st.End, w-2)
	s = append(s, in...)
	s = append(s, '\r')
	if col += ui.indent; col > 0 {
		s = append(s, fmt.Sprintf("\033[%dC", col)...)
	}

	ui.w.Write(s)
}
