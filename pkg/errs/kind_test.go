package errs_test

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drawscript/spl/pkg/errs"
)

func TestGetKind(t *testing.T) {
	for _, test := range []struct {
		err  error
		kind errs.Kind
	}{
		{errs.ArityError.New("wrong count"), errs.ArityError},
		{errs.InvalidParameter.Errorf("bad %q", "x"), errs.InvalidParameter},
		{errs.UndefinedVariable.Wrap(errors.New("inner"), "outer"), errs.UndefinedVariable},
		{errors.Wrap(errs.ArithmeticError.New("division by zero"), "assignment"), errs.ArithmeticError},
		{fmt.Errorf("std wrap: %w", errs.Interrupted.New("stop")), errs.Interrupted},
		{errors.New("plain"), errs.Undefined},
		{nil, errs.Undefined},
	} {
		assert.Equal(t, test.kind, errs.GetKind(test.err), "%v", test.err)
	}
}

func TestKindMessages(t *testing.T) {
	err := errs.UnknownCommand.Wrapf(errors.New("frobnicate"), "line %d", 7)
	require.EqualError(t, err, "line 7: frobnicate")
	require.True(t, errs.Is(err, errs.UnknownCommand))
	require.False(t, errs.Is(nil, errs.UnknownCommand))
	assert.Equal(t, "UnknownCommand", errs.UnknownCommand.String())
	assert.Equal(t, "Undefined", errs.Kind(100).String())
}
