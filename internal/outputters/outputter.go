// Package outputters renders scan results through pluggable formatters.
// Every outputter accepts arbitrary key/value parameters from the command
// line; unknown keys are ignored so callers can share parameter sets.
package outputters

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Sumatoshi-tech/depfang/internal/scan"
)

// Outputter renders a scan result to a writer.
type Outputter interface {
	// Name is the registry key the outputter is selected by.
	Name() string
	// Write renders the result. Params carry outputter-specific options.
	Write(w io.Writer, result *scan.Result, params map[string]string) error
}

// ErrUnknownOutputter is returned when no outputter matches the requested
// name.
var ErrUnknownOutputter = errors.New("unknown outputter")

var registry = map[string]func() Outputter{
	"table": func() Outputter { return &TableOutputter{} },
	"json":  func() Outputter { return &JSONOutputter{} },
	"yaml":  func() Outputter { return &YAMLOutputter{} },
	"dot":   func() Outputter { return &DotOutputter{} },
	"html":  func() Outputter { return &HTMLOutputter{} },
}

// New returns the outputter registered under name.
func New(name string) (Outputter, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q, available: %s", ErrUnknownOutputter, name, strings.Join(Available(), ", "))
	}

	return factory(), nil
}

// Available returns the registered outputter names, sorted.
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// paramBool reads a boolean-ish parameter; absent or unparseable values
// report the given default.
func paramBool(params map[string]string, key string, def bool) bool {
	value, ok := params[key]
	if !ok {
		return def
	}

	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
