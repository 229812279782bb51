package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/frizinak/inlinecomplete/flags"
	"github.com/frizinak/inlinecomplete/server"
	"github.com/frizinak/inlinecomplete/terms"
	"github.com/frizinak/inlinecomplete/vars"
)

type Mode byte

const (
	ModeTry Mode = iota
	ModeTerms
	ModeServe
)

type Source struct {
	Words           string
	TermsFile       string
	Set             string
	HTML            string
	Selector        string
	DisableDataList bool
}

type Flags struct {
	out io.Writer

	flags       *flags.Set
	CurrentFlag *flags.Set

	All struct {
		Mode Mode

		ConfigDir  string
		CacheDir   string
		ConfigFile string
		KeymapFile string
		Args       []string
	}

	Source Source

	Try struct {
		Watch bool
		Plain bool
	}

	Serve struct {
		Open    bool
		HTTPDir string
		Cert    string
		CertKey string
	}

	AppConf    *Config
	ServerConf server.Config
	Keymap     Keymap
}

func NewFlags(output io.Writer, defaultConfigDir, defaultCacheDir string) *Flags {
	f := &Flags{
		out:     output,
		AppConf: &Config{},
		flags:   flags.NewRoot(output),
		Keymap:  make(Keymap),
	}
	f.All.ConfigDir = defaultConfigDir
	f.All.CacheDir = defaultCacheDir

	return f
}

func (f *Flags) source(fl *flag.FlagSet) {
	fl.StringVar(&f.Source.Words, "words", "", "space separated terms, shell quoting is supported")
	fl.StringVar(&f.Source.TermsFile, "terms-file", "", "load terms from this .hcl or .json file")
	fl.StringVar(&f.Source.Set, "set", "", "name of the term set in -terms-file (default: the first)")
	fl.StringVar(&f.Source.HTML, "html", "", "resolve terms from the inputs of this html file")
	fl.StringVar(&f.Source.Selector, "s", "input, textarea", "css selector for -html")
	fl.BoolVar(
		&f.Source.DisableDataList,
		"disable-datalist",
		false,
		"remove the list attribute of inputs once their datalist was read",
	)
}

func (f *Flags) Flags() {
	f.flags.Define(func(fl *flag.FlagSet) flags.HelpCB {
		fl.StringVar(&f.All.ConfigDir, "c", f.All.ConfigDir, "config directory")
		f.source(fl)
		fl.BoolVar(&f.Try.Watch, "watch", false, "reload terms when -terms-file changes")

		return func(h *flags.Help) {
			h.Add("Without a command: try")
		}
	}).Handler(func(set *flags.Set, args []string) error {
		if len(args) != 0 {
			set.Usage(1)
		}

		f.All.Mode = ModeTry
		return nil
	})

	f.flags.Add("try", "Try inline completion in the terminal").Define(func(fl *flag.FlagSet) flags.HelpCB {
		f.source(fl)
		fl.BoolVar(&f.Try.Watch, "watch", false, "reload terms when -terms-file changes")
		fl.BoolVar(&f.Try.Plain, "plain", false, "print one line per change instead of drawing a ui")

		return func(h *flags.Help) {
			h.Add("Type in the terminal with inline completion")
			h.Add("Keys are configured in keymap.json")
		}
	}).Handler(func(set *flags.Set, args []string) error {
		f.All.Mode = ModeTry
		return nil
	})

	f.flags.Add("terms", "Print resolved terms or complete words").Define(func(fl *flag.FlagSet) flags.HelpCB {
		f.source(fl)

		return func(h *flags.Help) {
			h.Add("Print the resolved terms, one per line")
			h.Add(" - inlinecomplete terms -words 'Peter Paul'")
			h.Add(" - inlinecomplete terms -html index.html -s '#name'")
			h.Add("")
			h.Add("Complete words against the terms")
			h.Add(" - inlinecomplete terms -words 'Peter Paul' pa pe")
		}
	}).Handler(func(set *flags.Set, args []string) error {
		f.All.Mode = ModeTerms
		f.All.Args = args
		return nil
	})

	f.flags.Add("serve", "Serve the browser demo").Define(func(fl *flag.FlagSet) flags.HelpCB {
		f.source(fl)
		fl.BoolVar(&f.Serve.Open, "open", false, "open the demo page in a browser")
		fl.StringVar(
			&f.Serve.HTTPDir,
			"http",
			"",
			"Directory the http server will directly serve from [for debugging]",
		)
		fl.StringVar(&f.Serve.Cert, "tls-cert", "", "PEM certificate file, enables https together with -tls-key")
		fl.StringVar(&f.Serve.CertKey, "tls-key", "", "PEM private key file for -tls-cert")

		return func(h *flags.Help) {
			h.Add("Serve the browser demo page")
			h.Add("Terms given with -words or -terms-file are set on the first input")
		}
	}).Handler(func(set *flags.Set, args []string) error {
		f.All.Mode = ModeServe
		return nil
	})

	f.flags.Add("config", "Config options explained").Define(func(fl *flag.FlagSet) flags.HelpCB {
		return func(h *flags.Help) {
			h.Add(fmt.Sprintf("Config file used: '%s'", f.All.ConfigFile))
			h.Add(fmt.Sprintf("Keymap file used: '%s'", f.All.KeymapFile))
			h.Add("")
			for _, l := range f.AppConf.Help() {
				h.Add(l)
			}
			h.Add("")
			h.Add("Keymap actions:")
			for _, a := range []Action{Accept, Submit, Quit, Clear, Reset} {
				h.Add(fmt.Sprintf("  - %-17s default: %s", a, defaultKeymap[a]))
			}
		}
	}).Handler(func(set *flags.Set, args []string) error { return nil })

	f.flags.Add("version", "Print version and exit").Handler(func(set *flags.Set, args []string) error {
		version := vars.GitVersion
		if version == "" {
			version = vars.Version
		}
		fmt.Fprintln(f.out, version)
		os.Exit(0)
		return nil
	})
}

func (f *Flags) Parse() error {
	set, trail := f.flags.ParseCommandline()
	f.CurrentFlag = set
	if f.All.ConfigDir == "" {
		return errors.New("please specify a config directory")
	}

	f.All.ConfigFile = filepath.Join(f.All.ConfigDir, "config.json")
	f.All.KeymapFile = filepath.Join(f.All.ConfigDir, "keymap.json")
	if len(trail) == 1 && trail[len(trail)-1] == "config" {
		set.Usage(0)
	}

	if err := os.MkdirAll(f.All.ConfigDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory '%s': %w", f.All.ConfigDir, err)
	}

	if err := f.validateAppConf(); err != nil {
		return err
	}
	if err := f.validateKeymap(); err != nil {
		return err
	}

	if err := set.Do(); err != nil {
		return err
	}

	if f.Source.TermsFile == "" && f.Source.Words == "" && f.Source.HTML == "" {
		f.Source.TermsFile = f.AppConf.TermsFile
		if f.Source.Set == "" {
			f.Source.Set = f.AppConf.TermSet
		}
	}
	if *f.AppConf.DisableDataList {
		f.Source.DisableDataList = true
	}

	if f.Try.Watch && f.Source.TermsFile == "" {
		return errors.New("-watch requires a terms file")
	}

	if f.All.Mode == ModeServe {
		if err := os.MkdirAll(f.All.CacheDir, 0o700); err != nil {
			return fmt.Errorf("failed to create cache directory '%s': %w", f.All.CacheDir, err)
		}
	}

	f.ServerConf = server.Config{
		Log:         log.New(f.out, "", 0),
		HTTPAddress: f.AppConf.HTTPAddress,
		AssetDir:    f.AppConf.AssetDir,
		HTTPDir:     f.Serve.HTTPDir,
	}

	return f.loadCert()
}

func (f *Flags) loadCert() error {
	if f.Serve.Cert == "" && f.Serve.CertKey == "" {
		return nil
	}
	if f.Serve.Cert == "" || f.Serve.CertKey == "" {
		return errors.New("-tls-cert and -tls-key must be used together")
	}

	var err error
	if f.ServerConf.Cert, err = ioutil.ReadFile(f.Serve.Cert); err != nil {
		return fmt.Errorf("failed to read certificate: %w", err)
	}
	if f.ServerConf.CertKey, err = ioutil.ReadFile(f.Serve.CertKey); err != nil {
		return fmt.Errorf("failed to read certificate key: %w", err)
	}

	return nil
}

// Terms resolves the term list from the configured source. For an html
// source the terms of the first attachable element are used.
func (f *Flags) Terms() ([]string, error) {
	s := f.Source
	switch {
	case s.Words != "":
		return terms.Split(s.Words)
	case s.TermsFile != "":
		return terms.LoadSet(s.TermsFile, s.Set)
	case s.HTML != "":
		bindings, err := htmlBindings(s, log.New(f.out, "", 0))
		if err != nil {
			return nil, err
		}
		if len(bindings) == 0 {
			return nil, fmt.Errorf("no text inputs matching '%s' in %s", s.Selector, s.HTML)
		}
		return bindings[0].Terms, nil
	}

	return nil, fmt.Errorf("no terms, use -words or -terms-file or set TermsFile in %s", f.All.ConfigFile)
}

func (f *Flags) validateAppConf() error {
	if err := f.AppConf.Decode(f.All.ConfigFile); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	disableDataList := false
	assets := ""
	if f.All.CacheDir != "" {
		assets = filepath.Join(f.All.CacheDir, "assets")
	}

	resave := f.AppConf.Merge(&Config{
		DisableDataList: &disableDataList,
		MaxHistory:      100,
		HTTPAddress:     "127.0.0.1:1300",
		AssetDir:        assets,
	})

	if !resave {
		return nil
	}

	return f.AppConf.Encode(f.All.ConfigFile)
}

func (f *Flags) validateKeymap() error {
	if err := f.Keymap.Decode(f.All.KeymapFile); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if !f.Keymap.Merge(defaultKeymap) {
		return nil
	}

	return f.Keymap.Encode(f.All.KeymapFile)
}
