package server

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

type Unit int

const (
	B   Unit = 1
	KiB      = B * 1024
	MiB      = KiB * 1024
	GiB      = MiB * 1024
)

func (u Unit) String() string {
	switch u {
	case B:
		return "B"
	case KiB:
		return "KiB"
	case MiB:
		return "MiB"
	case GiB:
		return "GiB"
	}

	return "?"
}

func (u Unit) format() string {
	switch u {
	case B:
		return "%.0f"
	case GiB:
		return "%.1f"
	}

	return "%.2f"
}

var order = []Unit{B, KiB, MiB, GiB}

// Bytes is a byte count in a given Unit, used for reporting asset and
// transfer sizes.
type Bytes struct {
	value float64
	unit  Unit
}

func Size(n uint64) Bytes { return Bytes{float64(n), B}.Human() }

// Human converts b to the largest unit that keeps its value above 1.
func (b Bytes) Human() Bytes {
	n := b.value * float64(b.unit)
	i := 0
	for n > 1024 && order[i] < GiB {
		n /= 1024
		i++
	}

	return Bytes{n, order[i]}
}

func (b Bytes) Unit() Unit { return b.unit }

func (b Bytes) String() string {
	return fmt.Sprintf(b.unit.format()+b.unit.String(), b.value)
}

type countingWriter struct {
	http.ResponseWriter
	n *uint64
}

func (c countingWriter) Write(b []byte) (int, error) {
	n, err := c.ResponseWriter.Write(b)
	atomic.AddUint64(c.n, uint64(n))
	return n, err
}
