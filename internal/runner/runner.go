// Package runner orchestrates one templator invocation: it plans the
// job list, then for each template runs read → substitute → diff →
// write, strictly sequentially in discovery order.
//
// Per-file failure policy: a failing template is reported with its path
// and cause, siblings still run, and the run returns the first failure
// so the process exits non-zero at the end. Argument-level failures
// (nonexistent inputs, malformed variable sources) abort before any
// template is processed.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gi8lino/templator/internal/diff"
	"github.com/gi8lino/templator/internal/engine"
	"github.com/gi8lino/templator/internal/exitcode"
	"github.com/gi8lino/templator/internal/output"
	"github.com/gi8lino/templator/internal/pathmap"
	"github.com/gi8lino/templator/internal/vars"
)

// Options configure one run.
type Options struct {
	Inputs    []string // template files or directories, in argument order
	Output    string   // redirect target; empty means stdout
	Recursive bool
	Excludes  []string
	Strict    bool
	ShowDiff  bool
	Append    bool
	Force     bool

	// Stdout receives substituted content, Stderr receives diff lines.
	// Both default to the process streams when nil.
	Stdout io.Writer
	Stderr io.Writer
}

// Run substitutes all discovered templates using the read-only variable
// map. It returns the first per-file failure, or nil when every
// template processed cleanly.
func Run(varMap vars.Map, opts Options) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	jobs, err := pathmap.Plan(opts.Inputs, pathmap.Options{
		Output:    opts.Output,
		Recursive: opts.Recursive,
		Excludes:  opts.Excludes,
	})
	if err != nil {
		return classifyPlanError(err)
	}
	if len(jobs) == 0 {
		output.Warn("no template files to process")
		return nil
	}

	// Destinations already written this run: later jobs targeting the
	// same file append, so multiple templates concatenate in order.
	written := map[string]bool{}

	var firstErr error
	for _, job := range jobs {
		if err := process(job, varMap, opts, written); err != nil {
			output.Error("processing template failed", "template", job.Source, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// classifyPlanError assigns an exit class to a planning failure: an
// unreadable directory is an I/O failure, everything else (nonexistent
// inputs, bad paths) is an argument error.
func classifyPlanError(err error) error {
	var walkErr *pathmap.WalkError
	if errors.As(err, &walkErr) {
		return exitcode.Wrap(exitcode.Generic, err)
	}
	return exitcode.Wrap(exitcode.Usage, err)
}

func process(job pathmap.Job, varMap vars.Map, opts Options, written map[string]bool) error {
	raw, err := os.ReadFile(job.Source)
	if err != nil {
		return fmt.Errorf("reading template %q: %w", job.Source, err)
	}
	output.Debug("parsing template", "template", job.Source)

	res := engine.Substitute(string(raw), varMap)

	if opts.ShowDiff {
		changes := diff.Changes(job.Source, string(raw), res.Text)
		if len(changes) == 0 {
			output.Warn("no lines replaced", "template", job.Source)
		} else {
			output.Info("replaced lines", "template", job.Source)
			diff.Render(opts.Stderr, changes)
		}
	}

	if len(res.Unresolved) > 0 {
		if opts.Strict {
			return exitcode.Wrap(exitcode.Resolve, fmt.Errorf("%d unresolved identifier(s) in %q: %s",
				len(res.Unresolved), job.Source, strings.Join(res.Unresolved, ", ")))
		}
		output.Debug("unresolved identifiers left in place",
			"template", job.Source, "identifiers", strings.Join(res.Unresolved, ", "))
	}

	if job.Dest == "" {
		_, err := io.WriteString(opts.Stdout, res.Text)
		if err != nil {
			return fmt.Errorf("writing to stdout: %w", err)
		}
		return nil
	}
	return writeFile(job, res.Text, opts, written)
}
