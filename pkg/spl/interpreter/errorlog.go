package interpreter

import (
	"fmt"
	"strings"
	"time"

	"github.com/drawscript/spl/pkg/errs"
	"github.com/drawscript/spl/pkg/spl/command"
)

const timeLayout = "15:04:05"

// Event is one recorded failure. Line is 1-based; zero means the failure
// has no line context.
type Event struct {
	Time    time.Time `json:"time"`
	Kind    errs.Kind `json:"kind"`
	Message string    `json:"message"`
	Line    int       `json:"line,omitempty"`
	Fatal   bool      `json:"fatal,omitempty"`
}

// String formats the event as `[HH:MM:SS] message at line N.`.
func (e Event) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(e.Time.Format(timeLayout))
	sb.WriteString("] ")
	sb.WriteString(strings.TrimSuffix(e.Message, "."))
	if e.Line > 0 {
		fmt.Fprintf(&sb, " at line %d", e.Line)
	}
	sb.WriteString(".")
	return sb.String()
}

type errorLog struct {
	clock  func() time.Time
	events []Event
}

func (l *errorLog) record(err error, line int, fatal bool) Event {
	e := Event{
		Time:    l.clock(),
		Kind:    errs.GetKind(err),
		Message: err.Error(),
		Line:    line,
		Fatal:   fatal,
	}
	l.events = append(l.events, e)
	return e
}

func (l *errorLog) snapshot() []Event {
	return append([]Event(nil), l.events...)
}

func (l *errorLog) drain() []Event {
	r := l.events
	l.events = nil
	return r
}

// Errors returns the recorded events without clearing them.
func (i *Interpreter) Errors() []Event {
	return i.log.snapshot()
}

// DrainErrors returns all recorded events as text, one per line, and
// clears the log.
func (i *Interpreter) DrainErrors() string {
	var sb strings.Builder
	for _, e := range i.log.drain() {
		sb.WriteString(e.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ReportErrors sends every recorded event to sink in order, clears the
// log and returns the number of events sent.
func (i *Interpreter) ReportErrors(sink command.ErrorSink) int {
	events := i.log.drain()
	for _, e := range events {
		sink.ReportError(e.String())
	}
	return len(events)
}
