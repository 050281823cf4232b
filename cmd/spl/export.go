package main

import (
	"bytes"
	"os"

	"github.com/drawscript/spl/pkg/canvas"
	"github.com/drawscript/spl/pkg/loader"
)

// export writes the canvas operations in format f to path, or to standard
// output when path is empty.
func export(c *canvas.Canvas, f canvas.Format, l *loader.Loader, path string) error {
	if path == "" {
		return c.Encode(os.Stdout, f)
	}
	var buf bytes.Buffer
	if err := c.Encode(&buf, f); err != nil {
		return err
	}
	return l.Save(path, buf.Bytes())
}
