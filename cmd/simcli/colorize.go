package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/discrete-sim/kernel/effector"
)

// levelStyles maps each log level to a lipgloss style, grounded on the
// original raw ANSI escape constants (bright red / red / bold / plain /
// gray) but expressed as styles instead of hand-rolled escape strings.
var levelStyles = map[effector.Level]lipgloss.Style{
	effector.LevelError:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	effector.LevelWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	effector.LevelInfo:      lipgloss.NewStyle().Bold(true),
	effector.LevelDebug:     lipgloss.NewStyle(),
	effector.LevelExcessive: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// colorize renders a single log line in the style of its level, falling
// back to plain text for an unrecognized level.
func colorize(level effector.Level, line string) string {
	style, ok := levelStyles[level]
	if !ok {
		return line
	}
	return style.Render(line)
}

var levelNames = map[string]effector.Level{
	effector.LevelError.String():     effector.LevelError,
	effector.LevelWarning.String():   effector.LevelWarning,
	effector.LevelInfo.String():      effector.LevelInfo,
	effector.LevelDebug.String():     effector.LevelDebug,
	effector.LevelExcessive.String(): effector.LevelExcessive,
}

// colorWriter wraps an io.Writer, recognizing simlog's "%-9s ..." lines
// and recoloring each one by the level word at the start of the line.
// Lines it doesn't recognize pass through unmodified.
type colorWriter struct {
	w io.Writer
}

func newColorWriter(w io.Writer) *colorWriter {
	return &colorWriter{w: w}
}

func (c *colorWriter) Write(p []byte) (int, error) {
	n := len(p)
	for _, line := range strings.SplitAfter(string(p), "\n") {
		if line == "" {
			continue
		}
		hadNewline := strings.HasSuffix(line, "\n")
		trimmed := strings.TrimSuffix(line, "\n")
		field := strings.Fields(trimmed)
		out := trimmed
		if len(field) > 0 {
			if level, ok := levelNames[field[0]]; ok {
				out = colorize(level, trimmed)
			}
		}
		if hadNewline {
			out += "\n"
		}
		io.WriteString(c.w, out)
	}
	return n, nil
}
