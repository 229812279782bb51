//go:build darwin
// +build darwin

package open

func platform(url string) (string, []string) { return "open", []string{url} }
