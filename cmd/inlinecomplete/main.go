package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nightlyone/lockfile"
)

func exit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	_confDir, err := os.UserConfigDir()
	var confDir string
	if err == nil {
		confDir = filepath.Join(_confDir, "inlinecomplete")
	}

	ucache, err := os.UserCacheDir()
	cache := ""
	if err == nil {
		cache = filepath.Join(ucache, "inlinecomplete")
	}

	f := NewFlags(os.Stdout, confDir, cache)
	f.Flags()
	exit(f.Parse())

	switch f.All.Mode {
	case ModeTry:
		err = try(f)
	case ModeTerms:
		err = printTerms(os.Stdout, f)
	case ModeServe:
		var mutexPath string
		mutexPath, err = filepath.Abs(filepath.Join(f.All.CacheDir, "~lock"))
		exit(err)
		var mutex lockfile.Lockfile
		mutex, err = lockfile.New(mutexPath)
		exit(err)
		err = serve(flock{mutexPath, mutex}, f)
	default:
		err = errors.New("no such mode")
	}

	exit(err)
}
