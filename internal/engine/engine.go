// Package engine scans template text for $name and ${name} placeholders
// and substitutes them from a variable map.
//
// The scan is a single left-to-right pass over bytes:
//   - "$$" is the only escape; it yields one literal "$".
//   - "${name}" substitutes the enclosed identifier; required when
//     identifier characters follow the placeholder, as in "${noun}ification".
//   - "$name" substitutes the longest identifier-class run after the "$".
//   - A "$" followed by anything else is copied literally.
//
// Substituted values are emitted verbatim and never re-scanned, so there
// is no recursive expansion. Identifiers match [A-Za-z_][A-Za-z0-9_]*
// and lookups are case-sensitive.
package engine

import (
	"strings"

	"github.com/gi8lino/templator/internal/vars"
)

// Result is the outcome of substituting one template.
type Result struct {
	// Text is the substituted template text.
	Text string

	// Unresolved lists identifiers that had no entry in the variable
	// map, in first-occurrence order, de-duplicated. Their placeholders
	// are left in Text unchanged.
	Unresolved []string
}

// Substitute replaces all resolvable placeholders in text using varMap.
func Substitute(text string, varMap vars.Map) Result {
	var b strings.Builder
	b.Grow(len(text))

	var unresolved []string
	seen := map[string]bool{}
	record := func(name string) {
		if !seen[name] {
			seen[name] = true
			unresolved = append(unresolved, name)
		}
	}

	i := 0
	for i < len(text) {
		c := text[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 == len(text) {
			// trailing "$" with nothing after it
			b.WriteByte('$')
			i++
			continue
		}

		switch next := text[i+1]; {
		case next == '$':
			b.WriteByte('$')
			i += 2

		case next == '{':
			end := strings.IndexByte(text[i+2:], '}')
			if end < 0 {
				// unterminated brace form: emit "${" literally and
				// keep scanning after it
				b.WriteString("${")
				i += 2
				continue
			}
			name := text[i+2 : i+2+end]
			raw := text[i : i+3+end]
			switch {
			case !validIdentifier(name):
				// malformed placeholder, leave the raw text in place
				b.WriteString(raw)
			default:
				if value, ok := varMap[name]; ok {
					b.WriteString(value)
				} else {
					b.WriteString(raw)
					record(name)
				}
			}
			i += 3 + end

		case isIdentStart(next):
			j := i + 1
			for j < len(text) && isIdentChar(text[j]) {
				j++
			}
			name := text[i+1 : j]
			if value, ok := varMap[name]; ok {
				b.WriteString(value)
			} else {
				b.WriteString(text[i:j])
				record(name)
			}
			i = j

		default:
			// "$" not followed by an escape, brace or identifier start
			b.WriteByte('$')
			i++
		}
	}

	return Result{Text: b.String(), Unresolved: unresolved}
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}

func validIdentifier(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}
