package command

import (
	"sort"
	"strconv"
	"strings"

	"github.com/drawscript/spl/pkg/errs"
)

const (
	arityMessage   = "Incorrect number of parameters for this command"
	invalidMessage = "Parameters not valid for this command"
	unknownMessage = "Command not recognized"
)

// Scope resolves parameter names to scalar values.
type Scope interface {
	Has(name string) bool
	Get(name string) (int, error)
}

type handler func(d *Dispatcher, word string, params []string) error

var handlers = map[string]handler{
	"tocenter": func(d *Dispatcher, word string, params []string) error {
		if err := arity(word, params, 0); err != nil {
			return err
		}
		d.p.Center()
		return nil
	},
	"fill": func(d *Dispatcher, word string, params []string) error {
		if err := arity(word, params, 1); err != nil {
			return err
		}
		return invalid(d.p.SetFill(strings.ToLower(params[0])))
	},
	"pen": func(d *Dispatcher, word string, params []string) error {
		if err := arity(word, params, 1); err != nil {
			return err
		}
		return invalid(d.p.SetColor(strings.ToLower(params[0])))
	},
	"moveto": func(d *Dispatcher, word string, params []string) error {
		xy, err := d.integers(word, params, 2)
		if err != nil {
			return err
		}
		return invalid(d.p.MoveTo(xy[0], xy[1]))
	},
	"drawto": func(d *Dispatcher, word string, params []string) error {
		xy, err := d.integers(word, params, 2)
		if err != nil {
			return err
		}
		return invalid(d.p.DrawTo(xy[0], xy[1]))
	},
	"clear": func(d *Dispatcher, word string, params []string) error {
		if _, err := d.integers(word, params, 0); err != nil {
			return err
		}
		d.p.Clear()
		return nil
	},
	"reset": func(d *Dispatcher, word string, params []string) error {
		if _, err := d.integers(word, params, 0); err != nil {
			return err
		}
		d.p.Reset()
		return nil
	},
	"circle":   shape,
	"square":   shape,
	"rect":     shape,
	"triangle": shape,
}

func shape(d *Dispatcher, word string, params []string) error {
	ints, err := d.integers(word, params, -1)
	if err != nil {
		return err
	}
	if err := d.p.DrawShape(word, ints); err != nil {
		if errs.GetKind(err) == errs.ArityError {
			return errs.Extend(err, arityMessage)
		}
		return invalid(err)
	}
	return nil
}

// Dispatcher executes plain (non control-flow) commands against a Painter.
type Dispatcher struct {
	p     Painter
	scope Scope
}

func NewDispatcher(p Painter, scope Scope) *Dispatcher {
	return &Dispatcher{p: p, scope: scope}
}

// Execute runs the command word with its raw parameters. The returned
// error is always classified with an errs.Kind and never leaves the
// painter half-updated by this call.
func (d *Dispatcher) Execute(word string, params []string) error {
	h, ok := handlers[strings.ToLower(word)]
	if !ok {
		return errs.UnknownCommand.Errorf("%s '%s'", unknownMessage, word)
	}
	return h(d, strings.ToLower(word), params)
}

// integers resolves params to ints: a live scalar variable is replaced
// by its value, anything else must be an integer literal. A negative n
// skips the arity check.
func (d *Dispatcher) integers(word string, params []string, n int) ([]int, error) {
	if n >= 0 {
		if err := arity(word, params, n); err != nil {
			return nil, err
		}
	}
	r := make([]int, len(params))
	for i, p := range params {
		if d.scope != nil && d.scope.Has(p) {
			v, err := d.scope.Get(p)
			if err != nil {
				return nil, err
			}
			r[i] = v
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, errs.InvalidParameter.Errorf("%s: '%s' is not an integer or a variable", invalidMessage, p)
		}
		r[i] = v
	}
	return r, nil
}

func arity(word string, params []string, n int) error {
	if len(params) != n {
		return errs.ArityError.Errorf("%s: '%s' expects %d, got %d", arityMessage, word, n, len(params))
	}
	return nil
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	if errs.GetKind(err) == errs.Undefined {
		return errs.InvalidParameter.Wrap(err, invalidMessage)
	}
	return err
}

// Split separates a command line into its lower-cased command word and
// its raw parameters. Parameters may be separated by commas, blanks or both.
func Split(line string) (string, []string) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return "", nil
	}
	word := strings.ToLower(fields[0])
	rest := strings.Join(fields[1:], " ")
	parts := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(parts) == 0 {
		return word, nil
	}
	return word, parts
}

// IsCommand reports whether word names a built-in command.
func IsCommand(word string) bool {
	_, ok := handlers[strings.ToLower(word)]
	return ok
}

// Names lists the built-in commands in alphabetical order.
func Names() []string {
	r := make([]string, 0, len(handlers))
	for n := range handlers {
		r = append(r, n)
	}
	sort.Strings(r)
	return r
}
