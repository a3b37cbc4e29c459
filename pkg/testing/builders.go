package testing

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/go-strata/strata/pkg/document"
)

// NewDocument builds a document with the given layers appended under
// the root, in order.
func NewDocument(title string, layers ...document.Node) *document.Document {
	doc := document.New(title)
	for _, n := range layers {
		doc.Root().Children().Append(n)
	}
	return doc
}

// Group builds a named group containing the given children.
func Group(name string, children ...document.Node) *document.Group {
	g := document.NewGroup(name)
	for _, n := range children {
		g.Children().Append(n)
	}
	return g
}

// FlattenedGroup builds a group marked for flattening, so backends
// mirror it as a single object instead of mirroring its children.
func FlattenedGroup(name string, children ...document.Node) *document.Group {
	g := Group(name, children...)
	g.SetFlattened(true)
	return g
}

// Fill builds a solid color layer.
func Fill(name string, bounds image.Rectangle, col color.NRGBA) *document.Fill {
	return document.NewFill(name, bounds, col)
}

// Raster builds a raster layer with no pixel data attached. Backends
// that require pixels leave it pending until SetPixels is called.
func Raster(name string, bounds image.Rectangle) *document.Raster {
	return document.NewRaster(name, bounds)
}

// SolidRaster builds a raster layer with single-color pixel data sized
// to match its bounds.
func SolidRaster(name string, bounds image.Rectangle, col color.NRGBA) *document.Raster {
	r := document.NewRaster(name, bounds)
	px := image.NewNRGBA(image.Rectangle{Max: bounds.Size()})
	draw.Draw(px, px.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	r.SetPixels(px)
	return r
}

// Ordered sets a node's stacking key and returns the node, for inline
// tree construction.
func Ordered[N document.Node](n N, key float64) N {
	n.SetOrderKey(key)
	return n
}
