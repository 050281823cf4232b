package command

//go:generate mockgen -destination=../../mock/painter.go -package=mock github.com/drawscript/spl/pkg/spl/command Painter,ErrorSink

// Painter is the drawing surface driven by commands. Implementations
// report invalid arguments with errs.InvalidParameter and wrong shape
// parameter counts with errs.ArityError.
type Painter interface {
	// Center moves the cursor to the middle of the surface.
	Center()
	// SetFill switches shape filling; state is "on" or "off".
	SetFill(state string) error
	// SetColor selects the pen by color name.
	SetColor(name string) error
	MoveTo(x, y int) error
	DrawTo(x, y int) error
	Clear()
	// Reset moves the cursor back to (0, 0).
	Reset()
	// DrawShape draws the shape of the given kind at params.
	DrawShape(kind string, params []int) error
}

// ErrorSink receives formatted error log text.
type ErrorSink interface {
	ReportError(message string)
}
