// Package output provides styled terminal output utilities for templator.
//
// It wraps charmbracelet/log for leveled logging and charmbracelet/lipgloss
// for styled output. All diagnostic output should go through this package
// rather than using fmt.Println directly: diagnostics go to stderr, so
// substituted template content on stdout is never interleaved with them.
//
// Features:
//   - Leveled logging (Debug, Info, Warn, Error)
//   - Quiet mode for scripting (-q flag)
//   - NO_COLOR environment variable support
//   - Debug mode via --debug flag
package output
