// Package scene holds renderer-side objects and their stacking order.
// A Collection owns a stack of Objects, bottom to top. The compositor
// creates Objects as counterparts for document nodes and replays the
// stack into a frame.
package scene

import (
	"image"
	"sync/atomic"
)

// nextObjectID is an atomic counter for unique object IDs.
var nextObjectID uint64

// NewObject creates an Object with a unique ID.
// Always use this constructor rather than literal struct creation
// to ensure proper identity.
func NewObject(label string, bounds image.Rectangle, content image.Image) *Object {
	return &Object{
		id:      atomic.AddUint64(&nextObjectID, 1),
		label:   label,
		bounds:  bounds,
		content: content,
		opacity: 1,
		visible: true,
	}
}

// Object is a single renderer-side unit: pixel content placed at bounds,
// stacked inside a Collection. It is a mutable handle; the compositor
// adjusts opacity and visibility in place between frames.
//
// A destroyed Object must not be used again; every method panics after
// Destroy. Collections destroy their own objects through Remove and
// RemoveAll, so Destroy itself requires a detached object.
type Object struct {
	label   string
	bounds  image.Rectangle
	content image.Image
	opacity float64
	visible bool

	// internal - set by Collection on Add, cleared on Remove
	collection *Collection
	destroyed  bool
	id         uint64
}

// ID returns the object's unique identity.
func (o *Object) ID() uint64 {
	o.mustBeAlive()
	return o.id
}

// Label returns the debug label given at construction.
func (o *Object) Label() string {
	o.mustBeAlive()
	return o.label
}

// Bounds returns the placement rectangle in frame coordinates.
func (o *Object) Bounds() image.Rectangle {
	o.mustBeAlive()
	return o.bounds
}

// SetBounds moves the object.
func (o *Object) SetBounds(bounds image.Rectangle) {
	o.mustBeAlive()
	o.bounds = bounds
}

// Content returns the pixel source drawn at Bounds, or nil.
func (o *Object) Content() image.Image {
	o.mustBeAlive()
	return o.content
}

// SetContent replaces the pixel source.
func (o *Object) SetContent(content image.Image) {
	o.mustBeAlive()
	o.content = content
}

// Opacity returns the composite opacity in [0, 1].
func (o *Object) Opacity() float64 {
	o.mustBeAlive()
	return o.opacity
}

// SetOpacity sets the composite opacity, clamped to [0, 1].
func (o *Object) SetOpacity(opacity float64) {
	o.mustBeAlive()
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	o.opacity = opacity
}

// Visible reports whether the object takes part in compositing.
func (o *Object) Visible() bool {
	o.mustBeAlive()
	return o.visible
}

// SetVisible toggles the object's part in compositing.
func (o *Object) SetVisible(visible bool) {
	o.mustBeAlive()
	o.visible = visible
}

// Destroyed reports whether Destroy has run. Safe to call at any time.
func (o *Object) Destroyed() bool {
	return o.destroyed
}

// Destroy marks the object destroyed and releases its content. The
// object must be detached from its collection first.
func (o *Object) Destroy() {
	if o.destroyed {
		panic("scene: object already destroyed")
	}
	if o.collection != nil {
		panic("scene: destroy of an attached object")
	}
	o.destroyed = true
	o.content = nil
}

func (o *Object) mustBeAlive() {
	if o.destroyed {
		panic("scene: use of destroyed object")
	}
}
