package compositor

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/go-strata/strata/pkg/document"
	"github.com/go-strata/strata/pkg/scene"
)

// flattenedObject pre-composites a flattened group's subtree into one
// object. The canvas stays in document coordinates, so descendant layers
// draw at their own bounds.
//
// The group declines while any raster descendant still lacks pixels: a
// partial flatten would bake missing content into the object. It also
// declines when the subtree has no drawable content at all.
func flattenedObject(g *document.Group, n document.NodeWithAncestry) ([]*scene.Object, bool) {
	bounds, ok := flattenBounds(g)
	if !ok {
		return nil, false
	}
	canvas := image.NewNRGBA(bounds)
	flattenInto(canvas, g, 1)
	obj := scene.NewObject(g.Name(), bounds, canvas)
	applyInherited(obj, n)
	return []*scene.Object{obj}, true
}

// flattenBounds returns the union of the subtree's drawable bounds. The
// second result is false when a raster lacks pixels or nothing is
// drawable.
func flattenBounds(g *document.Group) (image.Rectangle, bool) {
	var union image.Rectangle
	complete := true
	document.Walk(g, func(n document.Node) {
		switch leaf := n.(type) {
		case *document.Raster:
			if leaf.Pixels() == nil {
				complete = false
				return
			}
			union = union.Union(leaf.Bounds())
		case *document.Fill:
			union = union.Union(leaf.Bounds())
		}
	})
	if !complete || union.Empty() {
		return image.Rectangle{}, false
	}
	return union, true
}

// flattenInto draws the group's children onto the canvas, bottom to top.
// opacity accumulates the product of group opacities below the flattened
// root; the root group's own opacity lives on the scene object instead.
func flattenInto(canvas *image.NRGBA, g *document.Group, opacity float64) {
	for _, child := range g.Children().Nodes() {
		if !child.Visible() {
			continue
		}
		childOpacity := opacity * child.Opacity()
		switch leaf := child.(type) {
		case *document.Group:
			flattenInto(canvas, leaf, childOpacity)
		case *document.Raster:
			px := leaf.Pixels()
			if px == nil {
				continue
			}
			target := leaf.Bounds()
			if px.Bounds().Size() != target.Size() {
				scaleOnto(canvas, target, px, childOpacity)
			} else {
				drawOnto(canvas, target, px, px.Bounds().Min, childOpacity)
			}
		case *document.Fill:
			drawOnto(canvas, leaf.Bounds(), image.NewUniform(leaf.Color()), image.Point{}, childOpacity)
		}
	}
}

func drawOnto(canvas *image.NRGBA, target image.Rectangle, src image.Image, sp image.Point, opacity float64) {
	if opacity >= 1 {
		draw.Draw(canvas, target, src, sp, draw.Over)
		return
	}
	draw.DrawMask(canvas, target, src, sp, opacityMask(opacity), image.Point{}, draw.Over)
}

func scaleOnto(canvas *image.NRGBA, target image.Rectangle, src image.Image, opacity float64) {
	var opts *draw.Options
	if opacity < 1 {
		opts = &draw.Options{SrcMask: opacityMask(opacity)}
	}
	Scaler.Scale(canvas, target, src, src.Bounds(), draw.Over, opts)
}

func opacityMask(opacity float64) *image.Uniform {
	return image.NewUniform(color.Alpha{A: uint8(opacity*0xff + 0.5)})
}
