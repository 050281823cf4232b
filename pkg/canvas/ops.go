package canvas

import (
	"encoding/json"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"github.com/stoewer/go-strcase"
)

// OpKind is the type of a recorded drawing operation. Exported names are
// snake_case: line_to, shape_outline, shape_filled.
type OpKind uint8

const (
	OpLineTo OpKind = iota
	OpShapeOutline
	OpShapeFilled
)

var opKindNames = [...]string{
	OpLineTo:       "LineTo",
	OpShapeOutline: "ShapeOutline",
	OpShapeFilled:  "ShapeFilled",
}

func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return strcase.SnakeCase(opKindNames[k])
	}
	return "unknown"
}

func (k OpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Op is one operation recorded on the surface together with the pen
// state it was drawn with.
type Op struct {
	Kind  OpKind `json:"kind" cbor:"kind"`
	Color string `json:"color" cbor:"color"`
	Fill  bool   `json:"fill" cbor:"fill"`
	From  *Point `json:"from,omitempty" cbor:"from,omitempty"`
	To    *Point `json:"to,omitempty" cbor:"to,omitempty"`
	Shape Shape  `json:"shape,omitempty" cbor:"shape,omitempty"`
}

// Format selects an encoding for exported operations.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strcase.SnakeCase(s)); f {
	case FormatJSON, FormatCBOR:
		return f, nil
	default:
		return "", errors.Errorf("unsupported export format '%s'", s)
	}
}

type export struct {
	Width  int   `json:"width" cbor:"width"`
	Height int   `json:"height" cbor:"height"`
	Ops    []Op  `json:"ops" cbor:"ops"`
	Cursor Point `json:"cursor" cbor:"cursor"`
}

// Encode writes the surface contents to w in the given format.
func (c *Canvas) Encode(w io.Writer, f Format) error {
	e := export{Width: c.width, Height: c.height, Ops: c.Ops(), Cursor: c.cursor}
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(e), "failed to encode operations as JSON")
	case FormatCBOR:
		b, err := cbor.Marshal(e)
		if err != nil {
			return errors.Wrap(err, "failed to encode operations as CBOR")
		}
		_, err = w.Write(b)
		return errors.Wrap(err, "failed to write CBOR")
	default:
		return errors.Errorf("unsupported export format '%s'", f)
	}
}
