package open

import (
	"reflect"
	"testing"
)

func TestCommand(t *testing.T) {
	const url = "http://127.0.0.1:1300"
	tests := []struct {
		browser string
		cmd     string
		args    []string
	}{
		{"firefox", "firefox", []string{url}},
		{"chromium --incognito", "chromium", []string{"--incognito", url}},
		{"w3m:lynx", "w3m", []string{url}},
		{"surf %s -z", "surf", []string{url, "-z"}},
	}

	for _, tt := range tests {
		o := &Opener{func(string) string { return tt.browser }}
		cmd, args, err := o.Command(url)
		if err != nil {
			t.Fatal(err)
		}
		if cmd != tt.cmd || !reflect.DeepEqual(args, tt.args) {
			t.Errorf("%q: got %s %q", tt.browser, cmd, args)
		}
	}

	o := &Opener{func(string) string { return "" }}
	cmd, args, err := o.Command(url)
	if err != nil || cmd == "" || args[len(args)-1] != url {
		t.Errorf("platform default: %s %q %v", cmd, args, err)
	}
}
