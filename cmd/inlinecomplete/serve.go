package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/nightlyone/lockfile"

	"github.com/frizinak/inlinecomplete/open"
	"github.com/frizinak/inlinecomplete/public"
	"github.com/frizinak/inlinecomplete/server"
)

func pageURL(c server.Config) string {
	proto := "http://"
	if c.Cert != nil {
		proto = "https://"
	}
	if strings.HasPrefix(c.HTTPAddress, ":") {
		return proto + "127.0.0.1" + c.HTTPAddress
	}
	return proto + c.HTTPAddress
}

type flock struct {
	path  string
	mutex lockfile.Lockfile
}

func serve(flock flock, f *Flags) error {
	fmt.Println("Claiming lock")
	for {
		if err := flock.mutex.TryLock(); err != nil {
			if err != lockfile.ErrNotExist {
				return fmt.Errorf("Failed to get lock: '%s': %w", flock.path, err)
			}
			fmt.Printf("could not claim lock at %s, retrying...\n", flock.path)
			time.Sleep(time.Second)
			continue
		}
		break
	}
	defer flock.mutex.Unlock()

	var list []string
	if f.Source.Words != "" || f.Source.TermsFile != "" || f.Source.HTML != "" {
		var err error
		if list, err = f.Terms(); err != nil {
			return err
		}
	}

	fmt.Println("Loading assets")
	static, err := public.Static(list)
	if err != nil {
		return err
	}
	if err := server.Compress(static); err != nil {
		return err
	}

	for _, a := range []string{"app.wasm", "wasm_exec.js"} {
		dir := f.ServerConf.AssetDir
		st, err := os.Stat(filepath.Join(dir, a))
		if err != nil {
			fmt.Printf("warning: %s not found in '%s', see: inlinecomplete config\n", a, dir)
			continue
		}
		fmt.Printf("  %-14s %s\n", a, server.Size(uint64(st.Size())))
	}

	c := f.ServerConf
	c.Static = static
	s, err := server.New(c)
	if err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig
		if err := s.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	addr := pageURL(c)
	fmt.Printf("Starting server on %s\n", addr)
	if f.Serve.Open {
		go func() {
			time.Sleep(time.Millisecond * 200)
			if err := open.New().OpenURL(addr); err != nil {
				fmt.Fprintf(os.Stderr, "failed to open %s: %s\n", addr, err)
			}
		}()
	}

	if err := s.Run(); err != nil {
		return err
	}

	fmt.Printf("served %s, bye...\n", s.Served())
	return nil
}
