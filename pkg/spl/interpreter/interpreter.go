// Package interpreter drives programs line by line. Control flow is a
// program counter over the classified lines: `if` and `method` jump
// forward, `while` re-evaluates its condition around a body sub-loop and
// a method call jumps into the declared body and back on `endmethod`.
// Only one method can be active at a time, so calls do not nest.
package interpreter

import (
	"context"
	"strings"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/drawscript/spl/pkg/errs"
	"github.com/drawscript/spl/pkg/spl/command"
	"github.com/drawscript/spl/pkg/spl/expr"
	"github.com/drawscript/spl/pkg/spl/vars"
)

// Interpreter is not safe for concurrent use. Variables persist across
// runs; declared methods belong to the program that declared them.
type Interpreter struct {
	store      *vars.Store
	dispatcher *command.Dispatcher
	log        errorLog

	program []Statement
	active  string
	proc    *vars.Procedure
	cursor  int

	fault    int
	steps    int
	maxSteps int
	ctx      context.Context
	stop     *atomic.Bool
}

func New(p command.Painter, opts ...Option) *Interpreter {
	s := vars.NewStore()
	i := &Interpreter{
		store:      s,
		dispatcher: command.NewDispatcher(p, s),
		log:        errorLog{clock: time.Now},
		ctx:        context.Background(),
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// RunProgram splits source into lines and executes them. Statement errors
// are recorded and execution continues; control-flow errors are recorded
// and returned, ending the run. Methods declared by an earlier program are
// forgotten, as their line ranges refer to that program's text.
func (i *Interpreter) RunProgram(source string) error {
	if n := i.store.DropProcedures(); n > 0 {
		zap.S().Debugf("Dropped %d methods of the previous program", n)
	}
	lines := strings.Split(source, "\n")
	i.program = make([]Statement, len(lines))
	for n, l := range lines {
		i.program[n] = Classify(strings.TrimSuffix(l, "\r"))
	}
	i.begin()
	for pc := 0; pc < len(i.program); {
		next, err := i.step(pc)
		if err != nil {
			i.log.record(err, i.fault+1, true)
			i.unbind()
			zap.S().Debugf("Program stopped at line %d: %v", i.fault+1, err)
			return err
		}
		pc = next
	}
	return nil
}

// RunSingleStatement executes one line. lineNumber is attached to recorded
// errors unless it is zero. Methods declared by the last program can be
// called; other control-flow statements are rejected.
func (i *Interpreter) RunSingleStatement(line string, lineNumber int) error {
	s := Classify(line)
	i.begin()
	var err error
	switch s.Kind {
	case Blank:
		return nil
	case Assignment, Command:
		i.exec(s, lineNumber)
		return nil
	case MethodCall:
		err = i.callFromTop(s)
	default:
		err = errs.MalformedStatement.Errorf("'%s' is only valid inside a program", s.Kind)
	}
	if err != nil {
		i.log.record(err, lineNumber, true)
	}
	return err
}

func (i *Interpreter) begin() {
	i.steps = 0
	i.fault = -1
	i.active = ""
	i.proc = nil
}

// Variables returns the scalar variables in order of first assignment.
func (i *Interpreter) Variables() []vars.Variable {
	return i.store.Scalars()
}

// Procedures returns the names of the declared methods.
func (i *Interpreter) Procedures() []string {
	return i.store.Procedures()
}

// Variable returns the value of a scalar variable.
func (i *Interpreter) Variable(name string) (int, bool) {
	if !i.store.Has(name) {
		return 0, false
	}
	v, err := i.store.Get(name)
	return v, err == nil
}

func (i *Interpreter) tick() error {
	i.steps++
	if i.maxSteps > 0 && i.steps > i.maxSteps {
		return errs.Interrupted.Errorf("execution exceeded %d steps", i.maxSteps)
	}
	if err := i.ctx.Err(); err != nil {
		return errs.Interrupted.Wrap(err, "execution cancelled")
	}
	if i.stop != nil && i.stop.Load() {
		return errs.Interrupted.New("execution stopped")
	}
	return nil
}

// step executes the statement at pc and returns the index of the next one.
// The index of the statement where a failure originated is kept in fault.
func (i *Interpreter) step(pc int) (int, error) {
	next, err := i.run(pc)
	if err != nil && i.fault < 0 {
		i.fault = pc
	}
	return next, err
}

func (i *Interpreter) run(pc int) (int, error) {
	if err := i.tick(); err != nil {
		return pc, err
	}
	s := i.program[pc]
	switch s.Kind {
	case EndMethod:
		return i.ret(pc), nil
	case MethodDef:
		return i.declare(pc, s)
	case MethodCall:
		return i.call(pc, s)
	case While:
		return i.loop(pc, s)
	case If:
		return i.branch(pc, s)
	case Assignment, Command:
		i.exec(s, pc+1)
		return pc + 1, nil
	default:
		return pc + 1, nil
	}
}

// exec runs a plain statement, recording any failure.
func (i *Interpreter) exec(s Statement, line int) {
	var err error
	switch s.Kind {
	case Assignment:
		var name string
		var v int
		name, v, err = expr.Assign(i.store, s.Tokens)
		if err == nil {
			zap.S().Debugf("Line %d: %s = %d", line, name, v)
		}
	case Command:
		err = i.dispatcher.Execute(s.Word, s.Params)
	}
	if err != nil {
		i.log.record(err, line, false)
	}
}

// match finds the closing statement for the opener at pc, skipping nested
// pairs of the same kinds. It returns -1 when there is none.
func (i *Interpreter) match(pc int, open, closing StatementKind) int {
	depth := 0
	for n := pc + 1; n < len(i.program); n++ {
		switch i.program[n].Kind {
		case open:
			depth++
		case closing:
			if depth == 0 {
				return n
			}
			depth--
		}
	}
	return -1
}

func (i *Interpreter) declare(pc int, s Statement) (int, error) {
	if s.err != nil {
		return pc, s.err
	}
	end := i.match(pc, MethodDef, EndMethod)
	if end < 0 {
		return pc, errs.MalformedStatement.Errorf("method '%s' has no matching endmethod", s.Name)
	}
	i.store.DeclareProcedure(s.Name, pc, end, s.Formals)
	zap.S().Debugf("Declared method '%s' (lines %d-%d, params %v)", s.Name, pc+1, end+1, s.Formals)
	return end + 1, nil
}

// bind resolves the call arguments and binds them to the formals of the
// called method, making it the active one.
func (i *Interpreter) bind(s Statement) (*vars.Procedure, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, err := i.store.LookupProcedure(s.Name)
	if err != nil {
		return nil, err
	}
	if i.active != "" {
		return nil, errs.NestedCall.Errorf("cannot call '%s' while '%s' is running", s.Name, i.active)
	}
	if len(s.Args) != len(p.Params) {
		return nil, errs.ArityError.Errorf("method '%s' expects %d arguments, got %d", s.Name, len(p.Params), len(s.Args))
	}
	values := make([]int, len(s.Args))
	for n, a := range s.Args {
		v, err := expr.Evaluate(i.store, a)
		if err != nil {
			return nil, errs.Extendf(err, "argument %d of '%s'", n+1, s.Name)
		}
		values[n] = v
	}
	for n, name := range p.Params {
		i.store.Set(name, values[n])
	}
	i.active = s.Name
	i.proc = p
	return p, nil
}

func (i *Interpreter) call(pc int, s Statement) (int, error) {
	p, err := i.bind(s)
	if err != nil {
		return pc, err
	}
	i.cursor = pc
	zap.S().Debugf("Line %d: calling '%s', jumping to line %d", pc+1, s.Name, p.Body()+1)
	return p.Body(), nil
}

// callFromTop runs a method of the last program to completion outside of
// any program run.
func (i *Interpreter) callFromTop(s Statement) error {
	p, err := i.bind(s)
	if err != nil {
		return err
	}
	i.cursor = p.End
	for pc := p.Body(); i.active != "" && pc < len(i.program); {
		next, err := i.step(pc)
		if err != nil {
			i.unbind()
			return errs.Extendf(err, "line %d", i.fault+1)
		}
		pc = next
	}
	return nil
}

func (i *Interpreter) unbind() {
	if i.proc != nil {
		i.store.Unbind(i.proc.Params...)
	}
	i.active = ""
	i.proc = nil
}

// ret leaves the active method, removing its parameter bindings, and
// returns to the statement after the call. Without an active method
// endmethod is a no-op.
func (i *Interpreter) ret(pc int) int {
	if i.active == "" {
		return pc + 1
	}
	zap.S().Debugf("Line %d: returning from '%s' to line %d", pc+1, i.active, i.cursor+2)
	i.unbind()
	return i.cursor + 1
}

func (i *Interpreter) branch(pc int, s Statement) (int, error) {
	ok, err := expr.Compare(i.store, s.Tokens)
	if err != nil {
		return pc, err
	}
	if ok {
		return pc + 1, nil
	}
	end := i.match(pc, If, EndIf)
	if end < 0 {
		return pc, errs.MalformedStatement.New("if has no matching endif")
	}
	return end + 1, nil
}

// loop runs the body between pc and its endwhile for as long as the
// condition holds, then continues after endwhile.
func (i *Interpreter) loop(pc int, s Statement) (int, error) {
	end := i.match(pc, While, EndWhile)
	if end < 0 {
		return pc, errs.MalformedStatement.New("while has no matching endwhile")
	}
	for iteration := 0; ; iteration++ {
		if iteration > 0 {
			if err := i.tick(); err != nil {
				return pc, err
			}
		}
		ok, err := expr.Compare(i.store, s.Tokens)
		if err != nil {
			return pc, err
		}
		if !ok {
			return end + 1, nil
		}
		for n := pc + 1; n != end && n < len(i.program); {
			if n, err = i.step(n); err != nil {
				return n, err
			}
		}
	}
}
