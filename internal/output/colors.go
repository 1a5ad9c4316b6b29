package output

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// NoColor returns true if colored output should be disabled.
// Respects the NO_COLOR environment variable (https://no-color.org/).
func NoColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// ColorMuted is the shared color for secondary text.
var ColorMuted = lipgloss.Color("#95A5A6") // gray

// Style presets for common output patterns.
var (
	// StyleBold is for emphasis, e.g. section headers in help text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleMuted is for secondary/less important text.
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
)

// plainStyles returns logger styles with all color and emphasis
// stripped for NO_COLOR mode. Level labels keep their usual four-letter
// form.
func plainStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level := range styles.Levels {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(strings.ToUpper(level.String())).
			MaxWidth(4)
	}
	styles.Key = lipgloss.NewStyle()
	styles.Value = lipgloss.NewStyle()
	styles.Separator = lipgloss.NewStyle()
	return styles
}
