package testing

import (
	"image"
	"slices"

	"github.com/go-strata/strata/pkg/document"
	"github.com/go-strata/strata/pkg/mirror"
	"github.com/go-strata/strata/pkg/scene"
)

var (
	_ mirror.Backend[*scene.Object]   = (*RecordingBackend)(nil)
	_ mirror.Reorderer[*scene.Object] = (*RecordingBackend)(nil)
)

// Stats counts the backend operations a synchronizer has issued.
type Stats struct {
	// Creates is the number of CreateCounterparts attempts.
	Creates int
	// Declines is the number of attempts that produced no counterpart.
	Declines int
	// Adds, Removes, and Destroys count the corresponding calls.
	Adds     int
	Removes  int
	Destroys int
	// Raises counts RaiseToTop calls issued by the ordering pass.
	Raises int
	// Clears counts RemoveAll calls.
	Clears int
}

// RecordingBackend is a scene backend for mirror tests. It creates one
// scene object per layer, gives flattened groups a counterpart of their
// own, and records every operation the synchronizer issues. Transient
// creation failures can be scripted per layer name to exercise pending
// layers and retries.
type RecordingBackend struct {
	collection *scene.Collection
	declines   map[string]int
	created    []*scene.Object
	stats      Stats
}

// NewRecordingBackend creates an empty recording backend.
func NewRecordingBackend() *RecordingBackend {
	return &RecordingBackend{
		collection: scene.NewCollection(),
		declines:   make(map[string]int),
	}
}

// Collection returns the live scene collection.
func (b *RecordingBackend) Collection() *scene.Collection {
	return b.collection
}

// DeclineTimes scripts the next n creation attempts for layers named
// name to produce no counterpart, leaving the layer pending until a
// later attempt succeeds.
func (b *RecordingBackend) DeclineTimes(name string, n int) {
	b.declines[name] = n
}

// Stats returns the operation counts recorded so far.
func (b *RecordingBackend) Stats() Stats {
	return b.stats
}

// Live returns the labels of live objects in stacking order, bottom to
// top.
func (b *RecordingBackend) Live() []string {
	objs := b.collection.Objects()
	labels := make([]string, len(objs))
	for i, obj := range objs {
		labels[i] = obj.Label()
	}
	return labels
}

// Created returns every object the backend has created, in creation
// order, including objects that have since been destroyed.
func (b *RecordingBackend) Created() []*scene.Object {
	return slices.Clone(b.created)
}

// Object returns the live object with the given label, or nil if no
// such object is in the collection.
func (b *RecordingBackend) Object(label string) *scene.Object {
	for _, obj := range b.collection.Objects() {
		if obj.Label() == label {
			return obj
		}
	}
	return nil
}

// CreateCounterparts builds one scene object per layer. Plain groups
// decline so that their children are mirrored individually; flattened
// groups get a single object spanning their subtree bounds. Scripted
// declines are consumed before any object is built.
func (b *RecordingBackend) CreateCounterparts(item document.NodeWithAncestry) ([]*scene.Object, bool) {
	b.stats.Creates++
	name := item.Node.Name()
	if left := b.declines[name]; left > 0 {
		b.declines[name] = left - 1
		b.stats.Declines++
		return nil, false
	}
	if g, ok := item.Node.(*document.Group); ok && !g.Flattened() {
		b.stats.Declines++
		return nil, false
	}
	obj := scene.NewObject(name, subtreeBounds(item.Node), nil)
	obj.SetOpacity(item.EffectiveOpacity())
	obj.SetVisible(item.EffectiveVisible())
	b.created = append(b.created, obj)
	return []*scene.Object{obj}, true
}

// Add inserts a counterpart into the collection.
func (b *RecordingBackend) Add(obj *scene.Object) {
	b.stats.Adds++
	b.collection.Add(obj)
}

// Remove takes a counterpart out of the collection.
func (b *RecordingBackend) Remove(obj *scene.Object, destroy bool) {
	b.stats.Removes++
	b.collection.Remove(obj, destroy)
}

// Destroy releases an already removed counterpart.
func (b *RecordingBackend) Destroy(obj *scene.Object) {
	b.stats.Destroys++
	obj.Destroy()
}

// RemoveAll empties the collection.
func (b *RecordingBackend) RemoveAll(destroy bool) {
	b.stats.Clears++
	b.collection.RemoveAll(destroy)
}

// RaiseToTop restacks a live counterpart above all others.
func (b *RecordingBackend) RaiseToTop(obj *scene.Object) {
	b.stats.Raises++
	b.collection.RaiseToTop(obj)
}

// subtreeBounds returns the union of the layer bounds in n's subtree.
func subtreeBounds(n document.Node) image.Rectangle {
	var union image.Rectangle
	document.Walk(n, func(c document.Node) {
		switch c := c.(type) {
		case *document.Raster:
			union = union.Union(c.Bounds())
		case *document.Fill:
			union = union.Union(c.Bounds())
		}
	})
	return union
}
