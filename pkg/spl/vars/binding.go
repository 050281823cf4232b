package vars

// Binding is either a Scalar or a *Procedure.
type Binding interface {
	binding()
}

// Scalar is an integer-valued variable.
type Scalar int

func (Scalar) binding() {}

// Procedure describes a user-defined method. Start is the index of the
// `method` header line and End the index of its `endmethod` line.
type Procedure struct {
	Start  int
	End    int
	Params []string
}

func (*Procedure) binding() {}

// Body returns the index of the first line after the header.
func (p *Procedure) Body() int {
	return p.Start + 1
}

// Variable is a named scalar as returned by Store.Scalars.
type Variable struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}
