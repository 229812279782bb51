package ui

import (
	"time"

	"github.com/frizinak/inlinecomplete/complete"
)

type UI interface {
	complete.Field
	State() complete.State
	Apply(complete.Signal) bool
	Submit() string
	Reset() string
	History() []string

	Start()
	Log(msg string)
	Flash(msg string, dur time.Duration)
	Err(err error)
	Print(text string, hl Highlight)
	Clear()
	Flush()
}

var (
	_ UI = &TermUI{}
	_ UI = &PlainUI{}
)
