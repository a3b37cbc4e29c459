package document

import "image"

// Raster is a terminal layer carrying pixel content. The content may be
// attached after the node enters the tree (decoded in the background,
// streamed in, and so on); until then the layer is not representable and
// observers that mirror the tree retry on its change notifications.
type Raster struct {
	nodeBase

	bounds image.Rectangle
	pixels image.Image
	source string
}

// NewRaster creates a raster layer with the given placement and no pixel
// content yet.
func NewRaster(name string, bounds image.Rectangle) *Raster {
	return &Raster{nodeBase: newNodeBase(name), bounds: bounds}
}

// Bounds returns the layer's placement in document space.
func (r *Raster) Bounds() image.Rectangle {
	return r.bounds
}

// SetBounds moves or resizes the layer and emits a change notification.
func (r *Raster) SetBounds(b image.Rectangle) {
	if r.bounds == b {
		return
	}
	r.bounds = b
	r.changed.notify()
}

// Pixels returns the layer's content, or nil if none has been attached.
func (r *Raster) Pixels() image.Image {
	return r.pixels
}

// SetPixels attaches (or, with nil, detaches) the layer's content and
// emits a change notification.
func (r *Raster) SetPixels(img image.Image) {
	r.pixels = img
	r.changed.notify()
}

// Source returns the external reference the layer's pixels load from, or
// "" when content is attached directly.
func (r *Raster) Source() string {
	return r.source
}

// SetSource updates the external content reference and emits a change
// notification.
func (r *Raster) SetSource(src string) {
	if r.source == src {
		return
	}
	r.source = src
	r.changed.notify()
}
