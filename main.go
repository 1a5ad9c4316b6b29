// templator – $VAR/${VAR} substitution CLI.
// Replaces placeholders in template files with values from explicit
// key=value pairs, .env/.json input files and the OS environment, and
// writes the result to stdout or to a mirrored file/directory tree.
package main

import (
	"os"

	"github.com/gi8lino/templator/cmd"
	"github.com/gi8lino/templator/internal/exitcode"
	"github.com/gi8lino/templator/internal/output"
	_ "github.com/gi8lino/templator/schemas"
)

func main() {
	if err := cmd.Execute(); err != nil {
		output.PrintError(err)
		os.Exit(exitcode.Of(err))
	}
}
