package interpreter_test

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/drawscript/spl/pkg/canvas"
	"github.com/drawscript/spl/pkg/errs"
	"github.com/drawscript/spl/pkg/mock"
	"github.com/drawscript/spl/pkg/spl/expr"
	"github.com/drawscript/spl/pkg/spl/interpreter"
	"github.com/drawscript/spl/pkg/spl/vars"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 34, 56, 0, time.UTC)
}

func newMock(t *testing.T, opts ...interpreter.Option) (*interpreter.Interpreter, *mock.MockPainter) {
	p := mock.NewMockPainter(gomock.NewController(t))
	opts = append([]interpreter.Option{interpreter.WithClock(fixedClock)}, opts...)
	return interpreter.New(p, opts...), p
}

func program(lines ...string) string {
	return strings.Join(lines, "\n")
}

func kinds(events []interpreter.Event) []errs.Kind {
	r := make([]errs.Kind, len(events))
	for n, e := range events {
		r[n] = e.Kind
	}
	return r
}

func TestMoveTo(t *testing.T) {
	i, p := newMock(t)
	gomock.InOrder(
		p.EXPECT().MoveTo(100, 150),
		p.EXPECT().MoveTo(7, -3),
	)
	require.NoError(t, i.RunSingleStatement("moveto 100,150", 0))
	require.NoError(t, i.RunProgram(program("x = 7", "y = 0 - 3", "moveto x y")))
	assert.Empty(t, i.Errors())
}

func TestReset(t *testing.T) {
	c := canvas.New(200, 200)
	i := interpreter.New(c)
	require.NoError(t, i.RunProgram(program("moveto 40,50", "drawto 60,70", "tocenter", "reset")))
	x, y := c.Position()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
	assert.Empty(t, i.Errors())
}

func TestFill(t *testing.T) {
	c := canvas.New(0, 0)
	i := interpreter.New(c)
	require.NoError(t, i.RunSingleStatement("fill on", 0))
	assert.True(t, c.Fill())
	require.NoError(t, i.RunSingleStatement("fill maybe", 0))
	assert.True(t, c.Fill())
	require.NoError(t, i.RunSingleStatement("fill off", 0))
	assert.False(t, c.Fill())
	assert.Equal(t, []errs.Kind{errs.InvalidParameter}, kinds(i.Errors()))
}

func TestWhileEntryCondition(t *testing.T) {
	s := vars.NewStore()
	s.Set("x", 5)
	ok, err := expr.Compare(s, interpreter.Classify("while x < 20").Tokens)
	require.NoError(t, err)
	assert.True(t, ok)

	i, p := newMock(t, interpreter.WithMaxSteps(50))
	p.EXPECT().MoveTo(5, 5).MinTimes(1)
	err = i.RunProgram(program("var x = 5", "while x < 20", "moveto x,x", "endwhile"))
	assert.Equal(t, errs.Interrupted, errs.GetKind(err))
	v, ok := i.Variable("x")
	assert.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestAssignmentIsLeftToRight(t *testing.T) {
	i, _ := newMock(t)
	require.NoError(t, i.RunSingleStatement("a = 10 - 2 * 3", 0))
	v, ok := i.Variable("a")
	require.True(t, ok)
	assert.Equal(t, 24, v)
}

func TestMethodParametersAreRemoved(t *testing.T) {
	i, p := newMock(t)
	p.EXPECT().MoveTo(1, 2).Times(1)
	require.NoError(t, i.RunProgram(program(
		"a = 9",
		"method foo(a,b)",
		"moveto a,b",
		"endmethod",
		"foo(1,2)",
	)))
	_, ok := i.Variable("a")
	assert.False(t, ok)
	_, ok = i.Variable("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"foo"}, i.Procedures())
	assert.Empty(t, i.Errors())
}

func TestUnknownCommand(t *testing.T) {
	c := canvas.New(100, 100)
	i := interpreter.New(c)
	require.NoError(t, i.RunSingleStatement("moveto 10,10", 0))
	require.NoError(t, i.RunSingleStatement("frobnicate", 0))
	events := i.Errors()
	require.Len(t, events, 1)
	assert.Equal(t, errs.UnknownCommand, events[0].Kind)
	assert.False(t, events[0].Fatal)
	x, y := c.Position()
	assert.Equal(t, 10, x)
	assert.Equal(t, 10, y)
	assert.Empty(t, c.Ops())
	assert.Equal(t, canvas.DefaultColor, c.Pen())
}

func TestCircle(t *testing.T) {
	i, p := newMock(t)
	gomock.InOrder(
		p.EXPECT().SetFill("on"),
		p.EXPECT().DrawShape("circle", []int{10, 20, 5}),
	)
	require.NoError(t, i.RunProgram(program("fill on", "circle 10,20,5")))
	assert.Empty(t, i.Errors())

	c := canvas.New(0, 0)
	i = interpreter.New(c)
	require.NoError(t, i.RunSingleStatement("circle 10,20", 0))
	assert.Equal(t, []errs.Kind{errs.ArityError}, kinds(i.Errors()))
	assert.Empty(t, c.Ops())
}

func TestIfSkipsNestedBlocks(t *testing.T) {
	i, p := newMock(t)
	gomock.InOrder(
		p.EXPECT().MoveTo(3, 3),
		p.EXPECT().MoveTo(4, 4),
	)
	require.NoError(t, i.RunProgram(program(
		"x = 5",
		"if x > 10",
		"moveto 1,1",
		"if x > 1",
		"moveto 2,2",
		"endif",
		"endif",
		"moveto 3,3",
		"if x == 5",
		"moveto 4,4",
		"endif",
	)))
}

func TestWhileLoop(t *testing.T) {
	i, p := newMock(t)
	gomock.InOrder(
		p.EXPECT().DrawTo(0, 0),
		p.EXPECT().DrawTo(1, 2),
		p.EXPECT().DrawTo(2, 4),
		p.EXPECT().MoveTo(9, 9),
	)
	require.NoError(t, i.RunProgram(program(
		"x = 0",
		"while x < 3",
		"y = x * 2",
		"drawto x,y",
		"x = x + 1",
		"endwhile",
		"moveto 9,9",
	)))
	v, _ := i.Variable("x")
	assert.Equal(t, 3, v)
}

func TestNestedWhile(t *testing.T) {
	i, _ := newMock(t)
	require.NoError(t, i.RunProgram(program(
		"n = 0",
		"i = 0",
		"while i < 3",
		"j = 0",
		"while j < 4",
		"n = n + 1",
		"j = j + 1",
		"endwhile",
		"i = i + 1",
		"endwhile",
	)))
	v, _ := i.Variable("n")
	assert.Equal(t, 12, v)
}

func TestCallFromLoop(t *testing.T) {
	i, p := newMock(t)
	gomock.InOrder(
		p.EXPECT().DrawTo(0, 0),
		p.EXPECT().DrawTo(1, 1),
		p.EXPECT().DrawTo(2, 2),
		p.EXPECT().Center(),
	)
	require.NoError(t, i.RunProgram(program(
		"method sq(n)",
		"drawto n,n",
		"endmethod",
		"i = 0",
		"while i < 3",
		"sq(i)",
		"i = i + 1",
		"endwhile",
		"tocenter",
	)))
	_, ok := i.Variable("n")
	assert.False(t, ok)
}

func TestMethodArgumentExpressions(t *testing.T) {
	i, p := newMock(t)
	p.EXPECT().DrawShape("rect", []int{5, 6, 20, 40})
	require.NoError(t, i.RunProgram(program(
		"method box(x, y, w)",
		"h = w * 2",
		"rect x,y,w,h",
		"endmethod",
		"s = 10",
		"box(5, 6, s * 2)",
	)))
}

func TestStatementErrorsAreRecovered(t *testing.T) {
	i, p := newMock(t)
	p.EXPECT().MoveTo(1, 2)
	require.NoError(t, i.RunProgram(program(
		"frobnicate",
		"moveto 1,2",
		"x = 1 / 0",
		"pen",
		"moveto 1",
	)))
	events := i.Errors()
	assert.Equal(t, []errs.Kind{errs.UnknownCommand, errs.ArithmeticError, errs.ArityError, errs.ArityError}, kinds(events))
	assert.Equal(t, []int{1, 3, 4, 5}, []int{events[0].Line, events[1].Line, events[2].Line, events[3].Line})

	out := i.DrainErrors()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "[12:34:56] Command not recognized 'frobnicate' at line 1.", lines[0])
	assert.Equal(t, "[12:34:56] division by zero at line 3.", lines[1])
	assert.Empty(t, i.Errors())
	assert.Empty(t, i.DrainErrors())
}

func TestControlFlowErrorsAreFatal(t *testing.T) {
	for _, test := range []struct {
		name   string
		source string
		kind   errs.Kind
		line   int
	}{
		{"undefined condition variable", program("if x < 3", "endif"), errs.UndefinedVariable, 1},
		{"malformed condition", program("x = 1", "while x", "endwhile"), errs.MalformedStatement, 2},
		{"missing endif", program("x = 1", "if x > 3", "moveto 1,1"), errs.MalformedStatement, 2},
		{"missing endwhile", program("x = 1", "while x < 3", "x = x + 1"), errs.MalformedStatement, 2},
		{"missing endmethod", program("method foo(a)", "moveto a,a"), errs.MalformedStatement, 1},
		{"undefined method", program("moveto 1,1", "bar(1)"), errs.UndefinedProcedure, 2},
		{"wrong argument count", program("method foo(a)", "endmethod", "foo(1, 2)"), errs.ArityError, 3},
		{"undefined argument", program("method foo(a)", "endmethod", "foo(q)"), errs.UndefinedVariable, 3},
		{"unclosed call", program("method foo(a)", "endmethod", "foo(1"), errs.MalformedStatement, 3},
		{"nested call", program(
			"method b()",
			"endmethod",
			"method a()",
			"b()",
			"endmethod",
			"a()",
		), errs.NestedCall, 4},
		{"error inside loop", program("x = 0", "while x < 3", "if y > 1", "endif", "endwhile"), errs.UndefinedVariable, 3},
	} {
		t.Run(test.name, func(t *testing.T) {
			i := interpreter.New(canvas.New(0, 0), interpreter.WithClock(fixedClock))
			err := i.RunProgram(test.source)
			require.Error(t, err)
			assert.Equal(t, test.kind, errs.GetKind(err))
			events := i.Errors()
			require.NotEmpty(t, events)
			last := events[len(events)-1]
			assert.True(t, last.Fatal)
			assert.Equal(t, test.kind, last.Kind)
			assert.Equal(t, test.line, last.Line)
		})
	}
}

func TestFatalErrorUnbindsParameters(t *testing.T) {
	i := interpreter.New(canvas.New(0, 0))
	err := i.RunProgram(program("method foo(a)", "x = a / 0", "if q > 1", "endif", "endmethod", "foo(4)"))
	assert.Equal(t, errs.UndefinedVariable, errs.GetKind(err))
	_, ok := i.Variable("a")
	assert.False(t, ok)
	assert.Equal(t, []errs.Kind{errs.ArithmeticError, errs.UndefinedVariable}, kinds(i.Errors()))
}

func TestStrayEndMarkers(t *testing.T) {
	i, p := newMock(t)
	p.EXPECT().MoveTo(1, 1)
	require.NoError(t, i.RunProgram(program("endwhile", "endif", "endmethod", "moveto 1,1")))
	assert.Empty(t, i.Errors())
}

func TestRunProgramLineEndings(t *testing.T) {
	i, p := newMock(t)
	gomock.InOrder(
		p.EXPECT().MoveTo(1, 2),
		p.EXPECT().DrawTo(3, 4),
	)
	require.NoError(t, i.RunProgram("moveto 1,2\r\n\r\ndrawto 3,4\r\n"))
}

func TestSingleStatement(t *testing.T) {
	i, p := newMock(t)
	err := i.RunSingleStatement("frobnicate", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, i.Errors()[0].Line)

	err = i.RunSingleStatement("while x < 3", 0)
	assert.Equal(t, errs.MalformedStatement, errs.GetKind(err))

	require.NoError(t, i.RunProgram(program("method foo(a, b)", "moveto a,b", "endmethod")))
	p.EXPECT().MoveTo(3, 4)
	require.NoError(t, i.RunSingleStatement("foo(3, 4)", 0))
	_, ok := i.Variable("a")
	assert.False(t, ok)

	err = i.RunSingleStatement("bar()", 0)
	assert.Equal(t, errs.UndefinedProcedure, errs.GetKind(err))
	require.NoError(t, i.RunSingleStatement("", 0))
}

func TestVariablesKeepOrder(t *testing.T) {
	i, _ := newMock(t)
	require.NoError(t, i.RunProgram(program("b = 1", "a = 2", "b = 3")))
	assert.Equal(t, []vars.Variable{{Name: "b", Value: 3}, {Name: "a", Value: 2}}, i.Variables())
}

func TestVariablesPersistAcrossRuns(t *testing.T) {
	i, p := newMock(t)
	p.EXPECT().MoveTo(5, 5)
	require.NoError(t, i.RunProgram("x = 5"))
	require.NoError(t, i.RunProgram("moveto x,x"))
}

func TestMethodsDoNotOutliveTheirProgram(t *testing.T) {
	i, p := newMock(t)
	require.NoError(t, i.RunProgram(program("method foo()", "moveto 1,1", "endmethod")))
	assert.Equal(t, []string{"foo"}, i.Procedures())

	err := i.RunProgram(program("foo()", "clear", "drawto 9,9", "x = 1"))
	assert.Equal(t, errs.UndefinedProcedure, errs.GetKind(err))
	assert.Empty(t, i.Procedures())
	events := i.Errors()
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].Line)
	assert.True(t, events[0].Fatal)
	_, ok := i.Variable("x")
	assert.False(t, ok)

	err = i.RunSingleStatement("foo()", 0)
	assert.Equal(t, errs.UndefinedProcedure, errs.GetKind(err))

	p.EXPECT().MoveTo(2, 2)
	require.NoError(t, i.RunProgram(program("method foo()", "moveto 2,2", "endmethod", "foo()")))
	assert.Equal(t, []string{"foo"}, i.Procedures())
}

func TestErrorTextKeepsRunes(t *testing.T) {
	i, _ := newMock(t)
	require.NoError(t, i.RunSingleStatement("x = é", 3))
	text := i.DrainErrors()
	assert.True(t, utf8.ValidString(text))
	assert.Contains(t, text, "unexpected operator 'é'")
	assert.Contains(t, text, "at line 3.")
}

func TestReportErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockErrorSink(ctrl)
	i, _ := newMock(t)
	require.NoError(t, i.RunProgram(program("frobnicate", "x = y")))
	gomock.InOrder(
		sink.EXPECT().ReportError("[12:34:56] Command not recognized 'frobnicate' at line 1."),
		sink.EXPECT().ReportError(gomock.Any()),
	)
	assert.Equal(t, 2, i.ReportErrors(sink))
	assert.Equal(t, 0, i.ReportErrors(sink))
}

func TestInterrupts(t *testing.T) {
	endless := program("x = 1", "while x > 0", "endwhile")

	i, _ := newMock(t, interpreter.WithMaxSteps(100))
	err := i.RunProgram(endless)
	assert.Equal(t, errs.Interrupted, errs.GetKind(err))
	assert.Equal(t, 2, i.Errors()[0].Line)

	stop := atomic.NewBool(true)
	i, _ = newMock(t, interpreter.WithStopFlag(stop))
	err = i.RunProgram(endless)
	assert.Equal(t, errs.Interrupted, errs.GetKind(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	i, _ = newMock(t, interpreter.WithContext(ctx))
	err = i.RunProgram(endless)
	assert.Equal(t, errs.Interrupted, errs.GetKind(err))
	assert.ErrorIs(t, err, context.Canceled)
}
