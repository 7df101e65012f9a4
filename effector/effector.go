// Package effector implements the per-event side-effect buffer a worker
// function fills in while handling one event and returns to the kernel.
// Nothing an Effector records takes effect until the kernel applies it
// after the whole dispatch pass finishes.
package effector

import (
	"fmt"

	"github.com/discrete-sim/kernel/componenttree"
	"github.com/discrete-sim/kernel/event"
	"github.com/discrete-sim/kernel/simtime"
)

// Level is a log severity, ordered from most to least critical. Logging
// at any level, Error included, never ends the run by itself.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
	LevelDebug
	LevelExcessive
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARNING"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelExcessive:
		return "EXCESSIVE"
	default:
		return "UNKNOWN"
	}
}

// LogRecord is one log line staged by a worker.
type LogRecord struct {
	Level   Level
	Topic   string
	Message string
}

// ScheduledSend is a new scheduler entry staged by a worker, to be pushed
// onto the kernel's Scheduler once this pass's effects are applied.
type ScheduledSend struct {
	At     simtime.Time
	Target componenttree.ID
	Event  event.Event
}

// IntWrite, FloatWrite and StringWrite are staged store writes, applied
// by the kernel in the order they were recorded.
type IntWrite struct {
	Key   string
	Value int64
}

type FloatWrite struct {
	Key   string
	Value float64
}

type StringWrite struct {
	Key   string
	Value string
}

// Effector accumulates everything one worker invocation wants to happen:
// log lines, newly scheduled events, store writes, and optional
// exit/remove requests.
type Effector struct {
	Owner componenttree.ID
	Now   simtime.Time

	Logs          []LogRecord
	Sends         []ScheduledSend
	intWrites     []IntWrite
	floatWrites   []FloatWrite
	stringWrites  []StringWrite
	ExitRequested bool
	RemoveSelf    bool
}

// New returns an empty Effector for owner at the current instant.
func New(owner componenttree.ID, now simtime.Time) *Effector {
	return &Effector{Owner: owner, Now: now}
}

// Log appends a log record with a pre-formatted message.
func (e *Effector) Log(level Level, topic, message string) {
	e.Logs = append(e.Logs, LogRecord{Level: level, Topic: topic, Message: message})
}

// Logf appends a log record built with fmt.Sprintf semantics.
func (e *Effector) Logf(level Level, topic, format string, args ...any) {
	e.Log(level, topic, fmt.Sprintf(format, args...))
}

// ScheduleAfterSeconds stages ev to be delivered to target after secs
// seconds have elapsed, converted to ticks via simtime.FromSeconds. A
// secs value of exactly zero still schedules one tick out here, never
// into the same instant; ScheduleImmediately has the same one-tick floor.
func (e *Effector) ScheduleAfterSeconds(ev event.Event, target componenttree.ID, secs, timeUnits float64) {
	delay := simtime.FromSeconds(secs, timeUnits)
	if delay < 1 {
		delay = 1
	}
	e.Sends = append(e.Sends, ScheduledSend{At: e.Now.Add(delay), Target: target, Event: ev})
}

// ScheduleImmediately stages ev for delivery to target "as soon as
// possible" — which the kernel resolves to current_time + 1 tick, never
// the current instant. A strictly zero delay must never deliver in the
// same dispatch pass that scheduled it, so this is current_time.Add(1),
// matching ScheduleAfterSeconds' own +1 floor.
func (e *Effector) ScheduleImmediately(ev event.Event, target componenttree.ID) {
	e.Sends = append(e.Sends, ScheduledSend{At: e.Now.Add(1), Target: target, Event: ev})
}

// SetInt stages an int write to key.
func (e *Effector) SetInt(key string, value int64) {
	e.intWrites = append(e.intWrites, IntWrite{Key: key, Value: value})
}

// SetFloat stages a float write to key.
func (e *Effector) SetFloat(key string, value float64) {
	e.floatWrites = append(e.floatWrites, FloatWrite{Key: key, Value: value})
}

// SetString stages a string write to key.
func (e *Effector) SetString(key string, value string) {
	e.stringWrites = append(e.stringWrites, StringWrite{Key: key, Value: value})
}

// Exit requests that the whole simulation stop after this pass's
// effects are applied.
func (e *Effector) Exit() {
	e.ExitRequested = true
}

// Remove requests that the owning component (and its descendants) be
// marked removed after this pass's effects are applied.
func (e *Effector) Remove() {
	e.RemoveSelf = true
}

// IntWrites returns the staged int writes, in staging order.
func (e *Effector) IntWrites() []IntWrite { return e.intWrites }

// FloatWrites returns the staged float writes, in staging order.
func (e *Effector) FloatWrites() []FloatWrite { return e.floatWrites }

// StringWrites returns the staged string writes, in staging order.
func (e *Effector) StringWrites() []StringWrite { return e.stringWrites }
