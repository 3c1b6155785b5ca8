/*
Package doodle is a 2D drawing board engine: it turns pointer events into
rectangles, circles, arrows and freehand pen strokes, builds a polygon used
to clip a secondary image laid over a primary one, and exports the canvas
as a raster image.

The engine owns the whole drawing state and can be driven by the bundled
Gio window, by a YAML event script, or directly through its API:

	package main

	import (
		"log"
		"os"

		"github.com/esimov/doodle"
	)

	func main() {
		e := doodle.NewEngine(nil)
		e.SelectTool(doodle.ToolRectangle)
		e.PointerDown(10, 10)
		e.PointerMove(50, 80)
		e.PointerUp()

		out, err := os.Create("canvas.png")
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()

		if err := e.ExportPNG(out, doodle.NewRenderer()); err != nil {
			log.Fatal(err)
		}
	}

The package also provides a command line interface. To check the supported
flags type:

	$ doodle --help
*/
package doodle
