// Package vars builds the variable map consumed by the substitution
// engine. Variables come from the OS environment, from .env/.json input
// files, and from explicit KEY=VALUE arguments, merged in that order so
// the last-applied source wins on key conflicts.
package vars

import (
	"fmt"
	"strings"
)

// Map holds resolved variables. Keys are case-sensitive.
type Map map[string]string

// PairError reports a malformed -s KEY=VALUE argument.
type PairError struct {
	Arg    string
	Reason string
}

func (e *PairError) Error() string {
	return fmt.Sprintf("parsing -s argument %q: %s", e.Arg, e.Reason)
}

// Options describe the variable sources for one run, in application
// order: OS environment first, then input files, then explicit pairs.
type Options struct {
	// Environ is the OS environment snapshot as "KEY=VALUE" entries.
	// Injected rather than read ambiently so tests can substitute a
	// fixed mapping; nil when the environment is disabled.
	Environ []string

	// Files are variable input files (.env or .json), applied in
	// argument order.
	Files []string

	// Delimiter separates keys from values in .env files. Empty means
	// the default "=".
	Delimiter string

	// Pairs are explicit KEY=VALUE arguments, applied last.
	Pairs []string
}

// Build merges all sources into one map. Later writes to the same key
// overwrite earlier ones, giving the net precedence
// pairs > files > environment.
func Build(opts Options) (Map, error) {
	if opts.Delimiter == "" {
		opts.Delimiter = "="
	}

	vars := Map{}

	for _, entry := range opts.Environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue // malformed environ entry
		}
		vars[key] = value
	}

	for _, file := range opts.Files {
		decoded, err := DecodeFile(file, opts.Delimiter)
		if err != nil {
			return nil, err
		}
		for k, v := range decoded {
			vars[k] = v
		}
	}

	for _, pair := range opts.Pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, &PairError{Arg: pair, Reason: "missing '=' separator"}
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, &PairError{Arg: pair, Reason: "empty key"}
		}
		vars[key] = strings.TrimSpace(value)
	}

	return vars, nil
}
