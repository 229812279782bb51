package terms

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

var (
	ErrNoSuchSet = errors.New("no such term set")
	ErrNoSets    = errors.New("no term sets defined")
)

// Set is a named term list as defined in a terms file:
//
//	set "people" {
//	  terms = ["Peter", "Paul", "Patricia"]
//	}
type Set struct {
	Name  string   `hcl:"name,label"`
	Terms []string `hcl:"terms"`
}

type file struct {
	Sets []Set `hcl:"set,block"`
}

// LoadFile reads the term sets in an .hcl or .json file.
func LoadFile(path string) ([]Set, error) {
	var f file
	if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
		return nil, fmt.Errorf("failed to parse terms file %s: %w", path, err)
	}

	if err := validate(f.Sets); err != nil {
		return nil, fmt.Errorf("invalid terms file %s: %w", path, err)
	}

	return f.Sets, nil
}

func validate(sets []Set) error {
	if len(sets) == 0 {
		return ErrNoSets
	}

	var err error
	seen := make(map[string]struct{}, len(sets))
	for _, s := range sets {
		if _, ok := seen[s.Name]; ok {
			err = multierror.Append(err, fmt.Errorf("duplicate set '%s'", s.Name))
		}
		seen[s.Name] = struct{}{}

		if len(s.Terms) == 0 {
			err = multierror.Append(err, fmt.Errorf("set '%s' has no terms", s.Name))
		}
		for i, t := range s.Terms {
			if t == "" {
				err = multierror.Append(err, fmt.Errorf("set '%s': term %d is empty", s.Name, i))
			}
		}
	}

	return err
}

// Pick returns the terms of the named set, or of the first set when name is
// empty.
func Pick(sets []Set, name string) ([]string, error) {
	if len(sets) == 0 {
		return nil, ErrNoSets
	}
	if name == "" {
		return sets[0].Terms, nil
	}
	for _, s := range sets {
		if s.Name == name {
			return s.Terms, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNoSuchSet, name)
}

// LoadSet is LoadFile followed by Pick.
func LoadSet(path, name string) ([]string, error) {
	sets, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Pick(sets, name)
}
