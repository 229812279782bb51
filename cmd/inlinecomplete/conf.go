package main

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	TermsFile       string
	TermSet         string
	DisableDataList *bool
	MaxHistory      int

	HTTPAddress string
	AssetDir    string
}

func (c *Config) Help() []string {
	return []string{
		"TermsFile:       Default .hcl or .json file with term sets",
		"                 used when neither -words nor -terms-file is given",
		"",
		"TermSet:         Name of the set to use from TermsFile",
		"                 Empty to use the first set in the file",
		"",
		"DisableDataList: Remove the list attribute of inputs once",
		"                 their datalist has been read",
		"",
		"MaxHistory:      Amount of submitted lines kept by try",
		"",
		"HTTPAddress:     ip:port the serve command listens on",
		"",
		"AssetDir:        Directory containing app.wasm and wasm_exec.js",
		"                 build them with:",
		"                   GOOS=js GOARCH=wasm go build -o app.wasm ./cmd/wasm",
		"                   cp \"$(go env GOROOT)/misc/wasm/wasm_exec.js\" .",
	}
}

func (c *Config) Decode(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("Failed to parse config %s: %w", file, err)
	}
	return nil
}

func (c *Config) Encode(file string) error {
	tmp := file + ".tmp"
	err := func() error {
		f, err := os.Create(tmp)
		if err != nil {
			return err
		}
		defer f.Close()
		enc := json.NewEncoder(f)
		enc.SetIndent("", "    ")
		if err := enc.Encode(c); err != nil {
			return err
		}
		return nil
	}()
	if err != nil {
		return err
	}

	return os.Rename(tmp, file)
}

func (c *Config) Merge(def *Config) bool {
	resave := false
	if c.DisableDataList == nil {
		resave = true
		c.DisableDataList = def.DisableDataList
	}
	if c.MaxHistory <= 0 {
		resave = true
		c.MaxHistory = def.MaxHistory
	}
	if c.HTTPAddress == "" {
		resave = true
		c.HTTPAddress = def.HTTPAddress
	}
	if c.AssetDir == "" {
		resave = true
		c.AssetDir = def.AssetDir
	}
	return resave
}

type Keymap map[Action]string

func (c Keymap) Decode(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&c); err != nil {
		return fmt.Errorf("Failed to parse keymap %s: %w", file, err)
	}
	return nil
}

func (c Keymap) Encode(file string) error {
	tmp := file + ".tmp"
	err := func() error {
		f, err := os.Create(tmp)
		if err != nil {
			return err
		}
		defer f.Close()
		enc := json.NewEncoder(f)
		enc.SetIndent("", "    ")
		if err := enc.Encode(c); err != nil {
			return err
		}
		return nil
	}()
	if err != nil {
		return err
	}

	return os.Rename(tmp, file)
}

func (c Keymap) Merge(def Keymap) bool {
	resave := false
	for i := range def {
		if _, ok := c[i]; !ok {
			resave = true
			c[i] = def[i]
		}
	}
	return resave
}
