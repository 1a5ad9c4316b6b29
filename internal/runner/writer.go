package runner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gi8lino/templator/internal/exitcode"
	"github.com/gi8lino/templator/internal/output"
	"github.com/gi8lino/templator/internal/pathmap"
)

// writeFile writes substituted content to its destination, creating
// parent directories. An existing destination is refused unless append
// or force is set; append keeps existing bytes, force truncates. A
// destination this run already wrote to is always appended, so multiple
// templates mapped to one file concatenate in job order.
func writeFile(job pathmap.Job, content string, opts Options, written map[string]bool) error {
	dest := job.Dest
	if filepath.Clean(job.Source) == filepath.Clean(dest) {
		return exitcode.Wrap(exitcode.Output, fmt.Errorf("source and destination %q cannot be equal", dest))
	}

	_, statErr := os.Stat(dest)
	exists := statErr == nil

	if exists && !opts.Append && !opts.Force && !written[dest] {
		return exitcode.Wrap(exitcode.Output,
			fmt.Errorf("file %q already exists (use -a to append or -f to overwrite)", dest))
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return exitcode.Wrap(exitcode.Output, fmt.Errorf("creating parent directory for %q: %w", dest, err))
	}

	// force truncates on the first touch; anything after that appends
	appendMode := written[dest] || (opts.Append && !opts.Force)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendMode {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}

	f, err := os.OpenFile(dest, flags, 0o644)
	if err != nil {
		return exitcode.Wrap(exitcode.Output, fmt.Errorf("writing file %q: %w", dest, err))
	}
	_, werr := f.WriteString(content)
	cerr := f.Close()
	if werr != nil {
		return exitcode.Wrap(exitcode.Output, fmt.Errorf("writing file %q: %w", dest, werr))
	}
	if cerr != nil {
		return exitcode.Wrap(exitcode.Output, fmt.Errorf("closing file %q: %w", dest, cerr))
	}
	written[dest] = true

	if exists && appendMode {
		output.Success("appended template", "to", dest)
	} else {
		output.Success("saved template", "to", dest)
	}
	return nil
}
