// Package simlog implements the kernel's leveled structured logger: it
// turns effector.LogRecord values into formatted lines, filtering by a
// default level with per-component glob-pattern overrides, and writes
// them to an io.Writer (stdout by default; cmd/simcli swaps in a
// colorizing writer).
package simlog

import (
	"fmt"
	"io"
	"os"
	"path"
	"sync"

	"github.com/discrete-sim/kernel/effector"
)

// Logger formats and filters LogRecords produced during a dispatch pass.
type Logger struct {
	mu         sync.Mutex
	out        io.Writer
	defaultLvl effector.Level
	patterns   []patternLevel
}

type patternLevel struct {
	pattern string
	level   effector.Level
}

// New returns a Logger writing to w (os.Stdout if w is nil), filtering
// at defaultLvl unless a pattern override says otherwise.
func New(w io.Writer, defaultLvl effector.Level) *Logger {
	if w == nil {
		w = os.Stdout
	}
	return &Logger{out: w, defaultLvl: defaultLvl}
}

// AddPattern registers a glob pattern (matched against a component's
// dotted path with path.Match) that overrides the default level for any
// component path it matches. Patterns are tried in registration order;
// the first match wins.
func (l *Logger) AddPattern(pattern string, level effector.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.patterns = append(l.patterns, patternLevel{pattern: pattern, level: level})
}

func (l *Logger) levelFor(componentPath string) effector.Level {
	for _, p := range l.patterns {
		if ok, err := path.Match(p.pattern, componentPath); err == nil && ok {
			return p.level
		}
	}
	return l.defaultLvl
}

// Emit writes one log record if its level is at or below the level
// configured for componentPath (lower Level values are more severe and
// always pass).
func (l *Logger) Emit(componentPath string, r effector.LogRecord) {
	if r.Level > l.levelFor(componentPath) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%-9s %-30s %s\n", r.Level.String(), r.Topic, r.Message)
}
