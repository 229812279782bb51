package terms

import "github.com/google/shlex"

// Split splits a shell quoted word list: `Peter Paul "Mary Ann"`.
func Split(words string) ([]string, error) {
	return shlex.Split(words)
}
