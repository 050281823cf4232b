package vars_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drawscript/spl/pkg/errs"
	"github.com/drawscript/spl/pkg/spl/vars"
)

func TestStoreScalars(t *testing.T) {
	s := vars.NewStore()
	_, err := s.Get("x")
	require.Error(t, err)
	assert.Equal(t, errs.UndefinedVariable, errs.GetKind(err))

	s.Set("x", 5)
	s.Set("y", -3)
	s.Set("x", 7)
	v, err := s.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.True(t, s.Has("y"))
	assert.Equal(t, []vars.Variable{{Name: "x", Value: 7}, {Name: "y", Value: -3}}, s.Scalars())
}

func TestStoreProcedures(t *testing.T) {
	s := vars.NewStore()
	params := []string{"a", "b"}
	s.DeclareProcedure("foo", 2, 6, params)
	params[0] = "changed"

	p, err := s.LookupProcedure("foo")
	require.NoError(t, err)
	assert.Equal(t, &vars.Procedure{Start: 2, End: 6, Params: []string{"a", "b"}}, p)
	assert.Equal(t, 3, p.Body())
	assert.False(t, s.Has("foo"))

	_, err = s.Get("foo")
	assert.True(t, errs.Is(err, errs.UndefinedVariable))

	_, err = s.LookupProcedure("bar")
	assert.True(t, errs.Is(err, errs.UndefinedProcedure))

	s.Set("n", 1)
	_, err = s.LookupProcedure("n")
	assert.True(t, errs.Is(err, errs.UndefinedProcedure))
	assert.Equal(t, []string{"foo"}, s.Procedures())
}

func TestStoreLastWriteWins(t *testing.T) {
	s := vars.NewStore()
	s.DeclareProcedure("shape", 0, 3, nil)
	s.Set("shape", 4)
	assert.Empty(t, s.Procedures())
	v, err := s.Get("shape")
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestStoreDropProcedures(t *testing.T) {
	s := vars.NewStore()
	s.Set("x", 1)
	s.DeclareProcedure("foo", 0, 2, []string{"a"})
	s.DeclareProcedure("bar", 3, 5, nil)
	assert.Equal(t, 2, s.DropProcedures())
	assert.Empty(t, s.Procedures())
	_, err := s.LookupProcedure("foo")
	assert.True(t, errs.Is(err, errs.UndefinedProcedure))
	assert.Equal(t, []vars.Variable{{Name: "x", Value: 1}}, s.Scalars())
	assert.Equal(t, 0, s.DropProcedures())
}

func TestStoreUnbind(t *testing.T) {
	s := vars.NewStore()
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("c", 3)
	s.Unbind("a", "b", "missing")
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Has("a"))
	assert.Equal(t, []vars.Variable{{Name: "c", Value: 3}}, s.Scalars())
}
