package server

import (
	"net/http/httptest"
	"testing"
)

func TestSize(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0B"},
		{1000, "1000B"},
		{1536, "1.50KiB"},
		{5 * 1024 * 1024, "5.00MiB"},
		{3 * 1024 * 1024 * 1024, "3.0GiB"},
	}

	for _, tt := range tests {
		if got := Size(tt.n).String(); got != tt.want {
			t.Errorf("%d: got %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestCountingWriter(t *testing.T) {
	var n uint64
	w := countingWriter{httptest.NewRecorder(), &n}
	w.Write([]byte("abc"))
	w.Write([]byte("de"))
	if n != 5 {
		t.Errorf("counted %d bytes", n)
	}
}
