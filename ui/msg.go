package ui

type Highlight byte

const (
	HLNone Highlight = 1 << iota
	HLMuted
	HLProblem
	HLOwn
)

type line struct {
	text      string
	highlight Highlight
}

// printable drops control characters and turns tabs into a single space so
// a message never moves the cursor.
func printable(str string) string {
	runes := make([]rune, 0, len(str))
	for _, n := range str {
		switch {
		case n == '\t':
			n = ' '
		case n < 32, n == 127:
			continue
		}
		runes = append(runes, n)
	}
	return string(runes)
}
