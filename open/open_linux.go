//go:build !windows && !darwin
// +build !windows,!darwin

package open

func platform(url string) (string, []string) { return "xdg-open", []string{url} }
