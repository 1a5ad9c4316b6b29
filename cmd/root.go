// Package cmd implements the Cobra-based CLI for templator.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gi8lino/templator/internal/exitcode"
	"github.com/gi8lino/templator/internal/output"
	"github.com/gi8lino/templator/internal/runner"
	"github.com/gi8lino/templator/internal/vars"
)

var (
	showDiff   bool
	recursive  bool
	excludes   []string
	strict     bool
	pairs      []string
	inputFiles []string
	delimiter  string
	noOSEnv    bool
	outputPath string
	appendOut  bool
	forceOut   bool
	debug      bool
	quiet      bool
)

// rootCmd is the top-level command for templator.
var rootCmd = &cobra.Command{
	Use:   "templator [flags] PATH...",
	Short: "Replace $VAR and ${VAR} placeholders in template files",
	Long: `Replace all instances of $VAR and/or ${VAR} in a file with the
corresponding passed values and send the result to stdout or to a file.

Variables can be passed as follows:
- directly with key=value pairs (flag '-s KEY=VALUE', repeatable)
- from .env and/or .json files (flag '-i PATH', repeatable)
- from OS environment variables (disable with flag '-n/--no-os-env')

` + output.StyleBold.Render("Supported placeholder forms:") + `
- "$$" is an escape; it is replaced with a single "$".
- "$identifier" names a substitution placeholder matching a variable
  named "identifier": ASCII letters, digits and underscores, not
  starting with a digit. The first non-identifier character after the
  "$" terminates the placeholder.
- "${identifier}" is equivalent to "$identifier". It is required when
  valid identifier characters follow the placeholder but are not part
  of it, such as "${noun}ification".

` + output.StyleBold.Render("Replacement order") + ` (each later-applied source wins on conflicts):
1. OS environment variables (unless -n/--no-os-env)
2. input files ('-i'), in the order you pass them
3. key=value pairs ('-s'), in the order you pass them

` + output.StyleMuted.Render(`Defaults for recursive, strict, delimiter and exclude may also come
from a .templator.yaml config file or TEMPLATOR_* environment
variables; explicit flags always win.`),
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().BoolVar(&showDiff, "diff", false, "show replaced lines")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "process template directories recursively")
	rootCmd.Flags().StringArrayVarP(&excludes, "exclude", "e", nil, "skip paths containing STRING (repeatable)")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "fail when not all variables could be replaced")
	rootCmd.Flags().StringArrayVarP(&pairs, "set", "s", nil, "KEY=VALUE variable pair (repeatable, highest precedence)")
	rootCmd.Flags().StringArrayVarP(&inputFiles, "input", "i", nil, ".env or .json file supplying variables (repeatable)")
	rootCmd.Flags().StringVarP(&delimiter, "delimiter-in-file", "d", "=", "delimiter for key/value pairs in .env input files")
	rootCmd.Flags().BoolVarP(&noOSEnv, "no-os-env", "n", false, "do not read OS environment variables")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "redirect output to a file or directory")
	rootCmd.Flags().BoolVarP(&appendOut, "append", "a", false, "append to an existing output file")
	rootCmd.Flags().BoolVarP(&forceOut, "force", "f", false, "replace an existing output file")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "set log level to debug")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not output log")
	rootCmd.MarkFlagsMutuallyExclusive("debug", "quiet")

	_ = viper.BindPFlag("recursive", rootCmd.Flags().Lookup("recursive"))
	_ = viper.BindPFlag("strict", rootCmd.Flags().Lookup("strict"))
	_ = viper.BindPFlag("delimiter", rootCmd.Flags().Lookup("delimiter-in-file"))
	_ = viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
}

func initConfig() {
	viper.SetConfigName(".templator")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
	viper.SetEnvPrefix("TEMPLATOR")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig() // a missing config file is fine
}

func runRoot(cmd *cobra.Command, args []string) error {
	output.Init(debug, quiet)

	// config-file / env defaults apply when the flag was not given
	if !cmd.Flags().Changed("recursive") {
		recursive = viper.GetBool("recursive")
	}
	if !cmd.Flags().Changed("strict") {
		strict = viper.GetBool("strict")
	}
	if !cmd.Flags().Changed("delimiter-in-file") && viper.GetString("delimiter") != "" {
		delimiter = viper.GetString("delimiter")
	}
	if !cmd.Flags().Changed("exclude") && len(viper.GetStringSlice("exclude")) > 0 {
		excludes = viper.GetStringSlice("exclude")
	}

	if cmd.Flags().Changed("delimiter-in-file") && len(inputFiles) == 0 {
		return exitcode.Wrap(exitcode.Usage, output.NewErrorWithFix(
			fmt.Sprintf("you cannot set a delimiter (%q) without at least one input file", delimiter),
			"pass one or more variable files with -i/--input"))
	}
	if (appendOut || forceOut) && outputPath == "" {
		return exitcode.Wrap(exitcode.Usage, output.NewErrorWithFix(
			"you cannot set -a/--append or -f/--force without -o/--output",
			"pass a destination with -o/--output"))
	}

	environ := os.Environ()
	if noOSEnv {
		environ = nil
	}

	varMap, err := vars.Build(vars.Options{
		Environ:   environ,
		Files:     inputFiles,
		Delimiter: delimiter,
		Pairs:     pairs,
	})
	if err != nil {
		var pairErr *vars.PairError
		if errors.As(err, &pairErr) {
			return exitcode.Wrap(exitcode.Usage, err)
		}
		return exitcode.Wrap(exitcode.Decode, err)
	}
	output.Debug("variable map built", "variables", len(varMap))

	return runner.Run(varMap, runner.Options{
		Inputs:    args,
		Output:    outputPath,
		Recursive: recursive,
		Excludes:  excludes,
		Strict:    strict,
		ShowDiff:  showDiff,
		Append:    appendOut,
		Force:     forceOut,
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
	})
}
