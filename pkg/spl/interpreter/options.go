package interpreter

import (
	"context"
	"time"

	"go.uber.org/atomic"
)

type Option func(*Interpreter)

// WithMaxSteps bounds the number of statements and loop iterations a single
// run may execute. Zero means unbounded.
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) {
		if n > 0 {
			i.maxSteps = n
		}
	}
}

// WithContext makes runs stop once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(i *Interpreter) {
		i.ctx = ctx
	}
}

// WithStopFlag makes runs stop once the flag is set. The flag is not reset
// by the interpreter.
func WithStopFlag(stop *atomic.Bool) Option {
	return func(i *Interpreter) {
		i.stop = stop
	}
}

// WithClock overrides the time source used to stamp recorded errors.
func WithClock(clock func() time.Time) Option {
	return func(i *Interpreter) {
		i.log.clock = clock
	}
}
