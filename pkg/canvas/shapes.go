package canvas

import (
	"github.com/drawscript/spl/pkg/errs"
)

// Shape is a drawable primitive. Set validates and stores the shape's
// own parameter list.
type Shape interface {
	Kind() string
	Set(params []int32) error
}

type shapeFactory func() Shape

var shapeFactories = map[string]shapeFactory{
	"circle":   func() Shape { return &Circle{} },
	"square":   func() Shape { return &Square{} },
	"rect":     func() Shape { return &Rect{} },
	"triangle": func() Shape { return &Triangle{} },
}

// NewShape builds a shape of the given kind from its parameters.
func NewShape(kind string, params []int32) (Shape, error) {
	f, ok := shapeFactories[kind]
	if !ok {
		return nil, errs.InvalidParameter.Errorf("unknown shape '%s'", kind)
	}
	s := f()
	if err := s.Set(params); err != nil {
		return nil, err
	}
	return s, nil
}

func expect(kind string, params []int32, n int) error {
	if len(params) != n {
		return errs.ArityError.Errorf("%s requires %d parameters, got %d", kind, n, len(params))
	}
	return nil
}

func positive(kind, name string, v int32) error {
	if v < 0 {
		return errs.InvalidParameter.Errorf("%s %s must not be negative, got %d", kind, name, v)
	}
	return nil
}

// Circle is centred at (X, Y).
type Circle struct {
	X      int32 `json:"x" cbor:"x"`
	Y      int32 `json:"y" cbor:"y"`
	Radius int32 `json:"radius" cbor:"radius"`
}

func (*Circle) Kind() string { return "circle" }

func (c *Circle) Set(params []int32) error {
	if err := expect(c.Kind(), params, 3); err != nil {
		return err
	}
	if err := positive(c.Kind(), "radius", params[2]); err != nil {
		return err
	}
	c.X, c.Y, c.Radius = params[0], params[1], params[2]
	return nil
}

// Square has its top-left corner at (X, Y).
type Square struct {
	X    int32 `json:"x" cbor:"x"`
	Y    int32 `json:"y" cbor:"y"`
	Side int32 `json:"side" cbor:"side"`
}

func (*Square) Kind() string { return "square" }

func (s *Square) Set(params []int32) error {
	if err := expect(s.Kind(), params, 3); err != nil {
		return err
	}
	if err := positive(s.Kind(), "side", params[2]); err != nil {
		return err
	}
	s.X, s.Y, s.Side = params[0], params[1], params[2]
	return nil
}

// Rect has its top-left corner at (X, Y).
type Rect struct {
	X      int32 `json:"x" cbor:"x"`
	Y      int32 `json:"y" cbor:"y"`
	Width  int32 `json:"width" cbor:"width"`
	Height int32 `json:"height" cbor:"height"`
}

func (*Rect) Kind() string { return "rect" }

func (r *Rect) Set(params []int32) error {
	if err := expect(r.Kind(), params, 4); err != nil {
		return err
	}
	if err := positive(r.Kind(), "width", params[2]); err != nil {
		return err
	}
	if err := positive(r.Kind(), "height", params[3]); err != nil {
		return err
	}
	r.X, r.Y, r.Width, r.Height = params[0], params[1], params[2], params[3]
	return nil
}

type Point struct {
	X int32 `json:"x" cbor:"x"`
	Y int32 `json:"y" cbor:"y"`
}

// Triangle is given by its three vertices.
type Triangle struct {
	Vertices [3]Point `json:"vertices" cbor:"vertices"`
}

func (*Triangle) Kind() string { return "triangle" }

func (t *Triangle) Set(params []int32) error {
	if err := expect(t.Kind(), params, 6); err != nil {
		return err
	}
	for i := range t.Vertices {
		t.Vertices[i] = Point{X: params[2*i], Y: params[2*i+1]}
	}
	return nil
}
