package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drawscript/spl/pkg/errs"
	"github.com/drawscript/spl/pkg/spl/expr"
	"github.com/drawscript/spl/pkg/spl/lexer"
	"github.com/drawscript/spl/pkg/spl/vars"
)

func TestAssignLeftToRight(t *testing.T) {
	s := vars.NewStore()
	s.Set("b", 4)
	for _, test := range []struct {
		line  string
		name  string
		value int
	}{
		{"a = 10 - 2 * 3", "a", 24},
		{"a = 2 + 3 * 4", "a", 20},
		{"a = b", "a", 4},
		{"var x = 5", "x", 5},
		{"c = 7 / 2", "c", 3},
		{"c = -7 / 2", "c", -3},
		{"c = 17 % 5 + b", "c", 6},
		{"d = b * -1", "d", -4},
		{"var = 3", "var", 3},
	} {
		t.Run(test.line, func(t *testing.T) {
			name, v, err := expr.Assign(s, lexer.Tokenize(test.line))
			require.NoError(t, err)
			assert.Equal(t, test.name, name)
			assert.Equal(t, test.value, v)
			stored, err := s.Get(test.name)
			require.NoError(t, err)
			assert.Equal(t, test.value, stored)
		})
	}
}

func TestAssignErrors(t *testing.T) {
	s := vars.NewStore()
	s.Set("zero", 0)
	for _, test := range []struct {
		line string
		kind errs.Kind
	}{
		{"a = 1 / 0", errs.ArithmeticError},
		{"a = 5 % zero", errs.ArithmeticError},
		{"a = missing + 1", errs.UndefinedVariable},
		{"a =", errs.MalformedStatement},
		{"a = 1 +", errs.MalformedStatement},
		{"a = 1 2", errs.MalformedStatement},
		{"a = 1 < 2", errs.MalformedStatement},
		{"= 3", errs.MalformedStatement},
		{"5 = 3", errs.MalformedStatement},
		{"a = 99999999999999999999", errs.InvalidParameter},
	} {
		t.Run(test.line, func(t *testing.T) {
			_, _, err := expr.Assign(s, lexer.Tokenize(test.line))
			require.Error(t, err)
			assert.Equal(t, test.kind, errs.GetKind(err))
		})
	}
	assert.False(t, s.Has("a"))
}

func TestCompare(t *testing.T) {
	s := vars.NewStore()
	s.Set("x", 5)
	for _, test := range []struct {
		line string
		want bool
	}{
		{"while x < 20", true},
		{"if x > 20", false},
		{"if x <= 5", true},
		{"if x >= 6", false},
		{"if x == 5", true},
		{"if x != 5", false},
		{"if 3 < x", true},
		{"if x > -1", true},
		{"if x = 5", false},
		{"if x + 5", false},
		{"if x < 20 trailing", true},
	} {
		t.Run(test.line, func(t *testing.T) {
			got, err := expr.Compare(s, lexer.Tokenize(test.line))
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestCompareErrors(t *testing.T) {
	s := vars.NewStore()
	for _, test := range []struct {
		line string
		kind errs.Kind
	}{
		{"if", errs.MalformedStatement},
		{"if x", errs.UndefinedVariable},
		{"if 1", errs.MalformedStatement},
		{"if 1 <", errs.MalformedStatement},
		{"if 1 < y", errs.UndefinedVariable},
	} {
		t.Run(test.line, func(t *testing.T) {
			_, err := expr.Compare(s, lexer.Tokenize(test.line))
			require.Error(t, err)
			assert.Equal(t, test.kind, errs.GetKind(err))
		})
	}
}
