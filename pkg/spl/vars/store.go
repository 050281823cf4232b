package vars

import (
	"github.com/elliotchance/orderedmap/v2"

	"github.com/drawscript/spl/pkg/errs"
)

// Store maps names to bindings. Scalars and procedure descriptors share
// one namespace; the last write to a name wins regardless of its kind.
// Store is not safe for concurrent use.
type Store struct {
	m *orderedmap.OrderedMap[string, Binding]
}

func NewStore() *Store {
	return &Store{m: orderedmap.NewOrderedMap[string, Binding]()}
}

// Get returns the value of the scalar variable name.
func (s *Store) Get(name string) (int, error) {
	b, ok := s.m.Get(name)
	if !ok {
		return 0, errs.UndefinedVariable.Errorf("variable '%s' is not defined", name)
	}
	v, ok := b.(Scalar)
	if !ok {
		return 0, errs.UndefinedVariable.Errorf("'%s' is a method, not a variable", name)
	}
	return int(v), nil
}

// Has reports whether name holds a scalar.
func (s *Store) Has(name string) bool {
	b, ok := s.m.Get(name)
	if !ok {
		return false
	}
	_, ok = b.(Scalar)
	return ok
}

// Set creates or overwrites the scalar variable name.
func (s *Store) Set(name string, value int) {
	s.m.Set(name, Scalar(value))
}

// DeclareProcedure records a procedure descriptor under name. The
// parameter slice is copied.
func (s *Store) DeclareProcedure(name string, start, end int, params []string) {
	p := &Procedure{Start: start, End: end, Params: append([]string(nil), params...)}
	s.m.Set(name, p)
}

// LookupProcedure returns the descriptor declared under name.
func (s *Store) LookupProcedure(name string) (*Procedure, error) {
	b, ok := s.m.Get(name)
	if !ok {
		return nil, errs.UndefinedProcedure.Errorf("method '%s' is not defined", name)
	}
	p, ok := b.(*Procedure)
	if !ok {
		return nil, errs.UndefinedProcedure.Errorf("'%s' is a variable, not a method", name)
	}
	return p, nil
}

// DropProcedures removes every procedure descriptor, leaving scalars in
// place, and returns the number removed.
func (s *Store) DropProcedures() int {
	names := s.Procedures()
	s.Unbind(names...)
	return len(names)
}

// Unbind removes names from the store. Previous values are not restored.
func (s *Store) Unbind(names ...string) {
	for _, n := range names {
		s.m.Delete(n)
	}
}

func (s *Store) Len() int {
	return s.m.Len()
}

// Scalars lists the scalar variables in declaration order.
func (s *Store) Scalars() []Variable {
	r := make([]Variable, 0, s.m.Len())
	for el := s.m.Front(); el != nil; el = el.Next() {
		if v, ok := el.Value.(Scalar); ok {
			r = append(r, Variable{Name: el.Key, Value: int(v)})
		}
	}
	return r
}

// Procedures lists the names of declared procedures in declaration order.
func (s *Store) Procedures() []string {
	var r []string
	for el := s.m.Front(); el != nil; el = el.Next() {
		if _, ok := el.Value.(*Procedure); ok {
			r = append(r, el.Key)
		}
	}
	return r
}
