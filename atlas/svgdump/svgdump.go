// Package svgdump renders the current layout of an atlas as an SVG image,
// free rectangles in green and allocated rectangles in blue. Useful for
// eyeballing fragmentation while tuning options.
package svgdump

import (
	"fmt"
	"io"

	"github.com/mbrennan/atlaskit/atlas"
	"github.com/mbrennan/atlaskit/atlas/geom"
)

const (
	freeStyle  = "fill:rgb(200,255,200);stroke-width:1;stroke:rgb(0,0,0)"
	allocStyle = "fill:rgb(150,150,255);stroke-width:3;stroke:rgb(0,0,0)"
)

// Dump writes an SVG rendering of a to w.
func Dump(w io.Writer, a *atlas.Atlas) error {
	size := a.Size()
	if _, err := fmt.Fprintf(w,
		`<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="0 0 %d %d" width="%dmm" height="%dmm">
<g>
`,
		size.Width, size.Height, size.Width, size.Height); err != nil {
		return err
	}

	var err error
	writeRect := func(r geom.Rect, style string) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w,
			"    <rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" style=\"%s\" />\n",
			r.Min.X, r.Min.Y, r.Width(), r.Height(), style)
	}

	a.ForEachFree(func(r geom.Rect) {
		writeRect(r, freeStyle)
	})
	a.ForEachAllocated(func(_ atlas.AllocId, r geom.Rect) {
		writeRect(r, allocStyle)
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, "</g></svg>")
	return err
}
