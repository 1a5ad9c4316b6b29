// Package diff reports line-level changes between a template and its
// substituted output. It is purely derivative of the substitution
// result: both texts are split into lines and only index-aligned pairs
// that differ are reported.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Change is one differing line pair, tagged with the source file.
type Change struct {
	File string
	Line int // 1-based line number

	Old    string
	New    string
	HasOld bool // false when the substituted text has extra lines
	HasNew bool // false when the original text has extra lines
}

// Changes compares before and after line by line.
func Changes(file, before, after string) []Change {
	oldLines := strings.Split(before, "\n")
	newLines := strings.Split(after, "\n")

	var changes []Change
	for i := 0; i < len(oldLines) || i < len(newLines); i++ {
		c := Change{File: file, Line: i + 1}
		if i < len(oldLines) {
			c.Old = oldLines[i]
			c.HasOld = true
		}
		if i < len(newLines) {
			c.New = newLines[i]
			c.HasNew = true
		}
		if c.HasOld && c.HasNew && c.Old == c.New {
			continue
		}
		changes = append(changes, c)
	}
	return changes
}

// Render writes changes to w, removals prefixed with a red "-" and
// additions with a green "+".
func Render(w io.Writer, changes []Change) {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	for _, c := range changes {
		if c.HasOld {
			fmt.Fprintf(w, "%s%s\n", red.Sprint("-"), c.Old)
		}
		if c.HasNew {
			fmt.Fprintf(w, "%s%s\n", green.Sprint("+"), c.New)
		}
	}
}
