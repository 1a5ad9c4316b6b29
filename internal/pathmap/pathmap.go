// Package pathmap discovers template files and computes one destination
// per file before any substitution starts.
//
// The mapping is deterministic given the input arguments (including
// trailing slashes), the output target and the exclusion set: file
// inputs map to single jobs, directory inputs are enumerated with an
// explicit worklist (depth-first, lexical sibling order), and an output
// directory mirrors each file's path relative to its scan root.
package pathmap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gi8lino/templator/internal/output"
)

// Job pairs one template file with its resolved destination.
type Job struct {
	// Source is the template file to read.
	Source string

	// Dest is the destination path. Empty means stdout.
	Dest string
}

// Options control discovery and destination mapping.
type Options struct {
	// Output is the redirect target: empty for stdout, otherwise a
	// file or directory path.
	Output string

	// Recursive descends into subdirectories of directory inputs.
	Recursive bool

	// Excludes are substrings; any file whose path contains one is
	// skipped entirely.
	Excludes []string
}

// Plan expands the input arguments into an ordered job list. Each input
// is a template file or a directory of templates. A trailing separator
// on a directory argument makes the directory's contents the mirroring
// root; without it the directory's own name is kept as a path segment
// under the output directory.
func Plan(inputs []string, opts Options) ([]Job, error) {
	toDir := outputIsDir(opts.Output)

	var jobs []Job
	for _, input := range inputs {
		contentsRoot := strings.HasSuffix(input, "/") || strings.HasSuffix(input, string(os.PathSeparator))
		path := filepath.Clean(input)

		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%q not found", input)
		}

		if !fi.IsDir() {
			if excluded(path, opts.Excludes) {
				output.Debug("skipping excluded file", "path", path)
				continue
			}
			dest := opts.Output
			if toDir {
				dest = filepath.Join(opts.Output, filepath.Base(path))
			}
			jobs = append(jobs, Job{Source: path, Dest: dest})
			continue
		}

		// The mirror base is the path prefix dropped from each
		// discovered file when computing its destination.
		mirrorBase := filepath.Dir(path)
		if contentsRoot {
			mirrorBase = path
		}

		files, err := walk(path, opts)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			dest := opts.Output
			if toDir {
				rel, err := filepath.Rel(mirrorBase, file)
				if err != nil {
					return nil, fmt.Errorf("relativizing %q against %q: %w", file, mirrorBase, err)
				}
				dest = filepath.Join(opts.Output, rel)
			}
			jobs = append(jobs, Job{Source: file, Dest: dest})
		}
	}
	return jobs, nil
}

// WalkError reports an I/O failure while enumerating a directory, as
// opposed to a bad argument.
type WalkError struct {
	Dir string
	Err error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("reading directory %q: %v", e.Dir, e.Err)
}

func (e *WalkError) Unwrap() error { return e.Err }

// walk enumerates candidate template files under dir using an explicit
// worklist. Traversal is depth-first; within a directory, files come
// first in lexical order, then subdirectories are descended in lexical
// order. Excluded paths are pruned without being opened.
func walk(dir string, opts Options) ([]string, error) {
	var files []string
	stack := []string{dir}
	for len(stack) > 0 {
		d := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(d)
		if err != nil {
			return nil, &WalkError{Dir: d, Err: err}
		}

		var subdirs []string
		for _, e := range entries {
			full := filepath.Join(d, e.Name())
			if e.IsDir() {
				if opts.Recursive && !excluded(full, opts.Excludes) {
					subdirs = append(subdirs, full)
				}
				continue
			}
			if excluded(full, opts.Excludes) {
				output.Debug("skipping excluded file", "path", full)
				continue
			}
			files = append(files, full)
		}
		// push in reverse so the first subdirectory is popped next
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}
	return files, nil
}

// outputIsDir reports whether the output target addresses a directory:
// an existing directory, a path with a trailing separator, or a
// nonexistent path without a file extension.
func outputIsDir(out string) bool {
	if out == "" {
		return false
	}
	if fi, err := os.Stat(out); err == nil {
		return fi.IsDir()
	}
	if strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(os.PathSeparator)) {
		return true
	}
	return filepath.Ext(out) == ""
}

func excluded(path string, excludes []string) bool {
	for _, sub := range excludes {
		if sub != "" && strings.Contains(path, sub) {
			return true
		}
	}
	return false
}
