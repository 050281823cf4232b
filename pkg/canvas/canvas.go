// Package canvas is an in-memory drawing surface. It tracks the cursor,
// pen and fill state and records every line and shape drawn so callers
// can inspect or export them. It does not rasterize.
package canvas

import (
	"strings"

	"github.com/ccoveille/go-safecast"

	"github.com/drawscript/spl/pkg/errs"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultColor  = "black"
)

var palette = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"brown":   "#a52a2a",
	"gray":    "#808080",
	"grey":    "#808080",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
}

// Canvas implements command.Painter.
type Canvas struct {
	width  int
	height int
	cursor Point
	fill   bool
	pen    string
	ops    []Op
}

func New(width, height int) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Canvas{width: width, height: height, pen: DefaultColor}
}

func coord(v int) (int32, error) {
	r, err := safecast.Convert[int32](v)
	if err != nil {
		return 0, errs.InvalidParameter.Wrapf(err, "coordinate %d is out of range", v)
	}
	return r, nil
}

func point(x, y int) (Point, error) {
	px, err := coord(x)
	if err != nil {
		return Point{}, err
	}
	py, err := coord(y)
	if err != nil {
		return Point{}, err
	}
	return Point{X: px, Y: py}, nil
}

func (c *Canvas) Center() {
	c.cursor = Point{X: int32(c.width / 2), Y: int32(c.height / 2)}
}

func (c *Canvas) SetFill(state string) error {
	switch strings.ToLower(state) {
	case "on":
		c.fill = true
	case "off":
		c.fill = false
	default:
		return errs.InvalidParameter.Errorf("fill must be 'on' or 'off', got '%s'", state)
	}
	return nil
}

func (c *Canvas) SetColor(name string) error {
	n := strings.ToLower(name)
	if _, ok := palette[n]; !ok {
		return errs.InvalidParameter.Errorf("unknown color '%s'", name)
	}
	c.pen = n
	return nil
}

func (c *Canvas) MoveTo(x, y int) error {
	p, err := point(x, y)
	if err != nil {
		return err
	}
	c.cursor = p
	return nil
}

func (c *Canvas) DrawTo(x, y int) error {
	p, err := point(x, y)
	if err != nil {
		return err
	}
	from := c.cursor
	c.ops = append(c.ops, Op{Kind: OpLineTo, Color: c.pen, Fill: c.fill, From: &from, To: &p})
	c.cursor = p
	return nil
}

func (c *Canvas) Clear() {
	c.ops = nil
}

func (c *Canvas) Reset() {
	c.cursor = Point{}
}

func (c *Canvas) DrawShape(kind string, params []int) error {
	ps := make([]int32, len(params))
	for i, v := range params {
		p, err := coord(v)
		if err != nil {
			return err
		}
		ps[i] = p
	}
	s, err := NewShape(kind, ps)
	if err != nil {
		return err
	}
	k := OpShapeOutline
	if c.fill {
		k = OpShapeFilled
	}
	c.ops = append(c.ops, Op{Kind: k, Color: c.pen, Fill: c.fill, Shape: s})
	return nil
}

// Position returns the cursor coordinates.
func (c *Canvas) Position() (int, int) {
	return int(c.cursor.X), int(c.cursor.Y)
}

func (c *Canvas) Fill() bool {
	return c.fill
}

// Pen returns the current color name.
func (c *Canvas) Pen() string {
	return c.pen
}

// Hex returns the hex value of the current color.
func (c *Canvas) Hex() string {
	return palette[c.pen]
}

func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Ops returns a copy of the recorded operations.
func (c *Canvas) Ops() []Op {
	return append([]Op(nil), c.ops...)
}

// Colors lists the accepted color names.
func Colors() []string {
	r := make([]string, 0, len(palette))
	for n := range palette {
		r = append(r, n)
	}
	return r
}
