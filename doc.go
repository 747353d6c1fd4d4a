// Package piechart renders single-ring pie charts to PNG.
//
// # Overview
//
// A chart is described by a Request: canvas size, labelled non-negative
// values and a few Settings. The Renderer turns it into an image with one
// wedge per value and an optional legend, drawn with the gg 2D library.
//
// # Quick Start
//
//	r := piechart.NewRenderer()
//
//	req := piechart.NewRequest(
//	    piechart.Entry{Label: "Apples", Value: 10},
//	    piechart.Entry{Label: "Pears", Value: 30},
//	)
//	req.Settings = req.Settings.Resolve(req.Data)
//
//	f, _ := os.Create("chart.png")
//	defer f.Close()
//	_ = r.EncodePNG(f, req)
//
// # Layout
//
// Slices start at 12 o'clock and run clockwise, each spanning value/sum of
// the circle; zero values are listed in the legend but take no arc. The
// legend is placed to the right of the pie or below it, whichever leaves
// the larger pie. Legend labels use a fixed-width bitmap font so their
// width is the character count times the glyph advance.
//
// # Coordinate System
//
// Origin at the top-left, Y increasing down. Slice angles are in degrees,
// 0 at 3 o'clock, increasing clockwise.
package piechart
