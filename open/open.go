// Package open opens urls in the user's browser.
package open

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Opener resolves the command that opens a url. $BROWSER, when set, takes
// precedence over the platform default.
type Opener struct {
	getenv func(string) string
}

func New() *Opener { return &Opener{os.Getenv} }

// Command returns the program and arguments that open url.
func (o *Opener) Command(url string) (string, []string, error) {
	if b := strings.TrimSpace(o.getenv("BROWSER")); b != "" {
		// $BROWSER may hold a colon separated list, the first entry wins.
		b = strings.TrimSpace(strings.SplitN(b, ":", 2)[0])
		f := strings.Fields(b)
		if len(f) == 0 {
			return "", nil, errors.New("empty $BROWSER")
		}
		args := append(f[1:], url)
		if strings.Contains(b, "%s") {
			args = f[1:]
			for i := range args {
				args[i] = strings.ReplaceAll(args[i], "%s", url)
			}
		}
		return f[0], args, nil
	}

	cmd, args := platform(url)
	return cmd, args, nil
}

func (o *Opener) OpenURL(url string) error {
	cmd, args, err := o.Command(url)
	if err != nil {
		return err
	}
	return Run(cmd, args...)
}

func Run(cmd string, args ...string) error {
	c := exec.Command(cmd, args...)
	bufe := bytes.NewBuffer(nil)
	c.Stderr = bufe
	if err := c.Run(); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(bufe.String()))
	}

	return nil
}
