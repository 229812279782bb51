//go:build windows
// +build windows

package open

func platform(url string) (string, []string) {
	return "cmd", []string{"/c", "start", "", url}
}
