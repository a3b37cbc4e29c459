package document

import (
	"image"
	"image/color"
)

// Fill is a terminal layer that paints a solid color over its bounds.
// Unlike Raster, a fill is always representable.
type Fill struct {
	nodeBase

	bounds image.Rectangle
	col    color.NRGBA
}

// NewFill creates a solid-color layer.
func NewFill(name string, bounds image.Rectangle, col color.NRGBA) *Fill {
	return &Fill{nodeBase: newNodeBase(name), bounds: bounds, col: col}
}

// Bounds returns the layer's placement in document space.
func (f *Fill) Bounds() image.Rectangle {
	return f.bounds
}

// SetBounds moves or resizes the layer and emits a change notification.
func (f *Fill) SetBounds(b image.Rectangle) {
	if f.bounds == b {
		return
	}
	f.bounds = b
	f.changed.notify()
}

// Color returns the fill color.
func (f *Fill) Color() color.NRGBA {
	return f.col
}

// SetColor updates the fill color and emits a change notification.
func (f *Fill) SetColor(col color.NRGBA) {
	if f.col == col {
		return
	}
	f.col = col
	f.changed.notify()
}
