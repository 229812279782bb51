// Package complete implements inline completion of the word under the caret
// against an ordered term list.
package complete

import "strings"

func clampCursor(text []rune, cursor int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > len(text) {
		return len(text)
	}
	return cursor
}

func wordStart(text []rune, cursor int) int {
	for i := cursor - 1; i >= 0; i-- {
		if text[i] == ' ' {
			return i + 1
		}
	}
	return 0
}

// WordStart returns the rune offset at which the word ending at cursor
// starts.
func WordStart(text string, cursor int) int {
	r := []rune(text)
	return wordStart(r, clampCursor(r, cursor))
}

// CurrentWord returns the run of non-space characters ending at cursor.
func CurrentWord(text string, cursor int) string {
	r := []rune(text)
	cursor = clampCursor(r, cursor)
	return string(r[wordStart(r, cursor):cursor])
}

// Match returns the first term that starts with word, ignoring case.
func Match(word string, terms []string) (string, bool) {
	if word == "" {
		return "", false
	}

	lword := strings.ToLower(word)
	for _, t := range terms {
		if strings.HasPrefix(strings.ToLower(t), lword) {
			return t, true
		}
	}

	return "", false
}
