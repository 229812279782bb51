// Package terms resolves the candidate term list of an input element.
package terms

import "strings"

const dataListPrefix = "list:"

type Options struct {
	// Explicit terms, take precedence over anything found on the element.
	List []string
	// Remove the element's list attribute once its datalist was read so the
	// host's own suggestion popup no longer shows.
	DisableDataList bool
}

// Capabilities describes what the host supports. Detect it once and pass it
// to every Resolve call.
type Capabilities struct {
	// The host exposes a datalist's options through a structured API.
	DataList bool
}

type Element interface {
	// Data returns the data-<key> attribute.
	Data(key string) (string, bool)
	Attr(name string) (string, bool)
	RemoveAttr(name string)
	// DataList looks up the option list referenced by id.
	DataList(id string) (DataList, bool)
}

type DataList interface {
	// Options returns option values through the host's structured API.
	Options() []string
	// OptionValues returns the value attributes of the child option
	// elements.
	OptionValues() []string
}

// ParseDataList parses a "list:a|b|c" data attribute. The prefix is matched
// case-insensitively.
func ParseDataList(v string) ([]string, bool) {
	if len(v) < len(dataListPrefix) || !strings.EqualFold(v[:len(dataListPrefix)], dataListPrefix) {
		return nil, false
	}

	return nonEmpty(strings.Split(v[len(dataListPrefix):], "|")), true
}

func nonEmpty(list []string) []string {
	n := make([]string, 0, len(list))
	for _, v := range list {
		if v != "" {
			n = append(n, v)
		}
	}
	return n
}

// Resolve returns the term list for el. The first source that is present
// wins: opts.List, the data-list attribute and finally the datalist named by
// the list attribute. The result is never nil.
func Resolve(el Element, opts Options, caps Capabilities) []string {
	if len(opts.List) != 0 {
		l := make([]string, len(opts.List))
		copy(l, opts.List)
		return l
	}

	if v, ok := el.Data("list"); ok && v != "" {
		l, ok := ParseDataList(v)
		if !ok {
			return []string{}
		}
		return l
	}

	id, ok := el.Attr("list")
	if !ok {
		return []string{}
	}

	dl, ok := el.DataList(id)
	if !ok {
		return []string{}
	}

	var list []string
	if caps.DataList {
		list = nonEmpty(dl.Options())
	} else {
		list = nonEmpty(dl.OptionValues())
	}

	if opts.DisableDataList {
		el.RemoveAttr("list")
	}

	return list
}
