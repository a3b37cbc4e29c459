// Package compositor is a software renderer for strata documents. Backend
// implements the mirror contract over a scene collection: document leaves
// become scene objects, flattened groups become single pre-composited
// objects, and Render replays the stack into an image.
package compositor

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/go-strata/strata/pkg/document"
	"github.com/go-strata/strata/pkg/mirror"
	"github.com/go-strata/strata/pkg/scene"
)

var (
	_ mirror.Backend[*scene.Object]   = (*Backend)(nil)
	_ mirror.Reorderer[*scene.Object] = (*Backend)(nil)
)

// Scaler resizes raster content whose pixel size differs from its layer
// bounds. ApproxBiLinear balances quality and speed for interactive use;
// swap in draw.CatmullRom for offline quality.
var Scaler draw.Scaler = draw.ApproxBiLinear

// Backend turns document layers into scene objects.
//
// Creation policy:
//   - Raster with pixels: one object, content scaled to the layer bounds.
//   - Raster without pixels: not yet representable.
//   - Fill: one object with uniform color content.
//   - Flattened group: one pre-composited object covering the subtree.
//   - Any other group, or an unknown layer kind: no counterpart.
//
// Inherited opacity and visibility are resolved from the ancestry chain at
// creation time and carried on the object.
type Backend struct {
	collection *scene.Collection
}

// NewBackend creates a backend with an empty scene.
func NewBackend() *Backend {
	return &Backend{collection: scene.NewCollection()}
}

// Collection exposes the object stack, bottom to top.
func (b *Backend) Collection() *scene.Collection {
	return b.collection
}

// CreateCounterparts builds the scene representation for one layer. The
// second result is false when the layer cannot be represented yet.
func (b *Backend) CreateCounterparts(n document.NodeWithAncestry) ([]*scene.Object, bool) {
	switch node := n.Node.(type) {
	case *document.Raster:
		return rasterObject(node, n)
	case *document.Fill:
		return fillObject(node, n)
	case *document.Group:
		if !node.Flattened() {
			return nil, false
		}
		return flattenedObject(node, n)
	default:
		return nil, false
	}
}

// Add attaches obj at the top of the scene.
func (b *Backend) Add(obj *scene.Object) {
	b.collection.Add(obj)
}

// Remove detaches obj, destroying it when destroy is set.
func (b *Backend) Remove(obj *scene.Object, destroy bool) {
	b.collection.Remove(obj, destroy)
}

// Destroy destroys a detached object.
func (b *Backend) Destroy(obj *scene.Object) {
	obj.Destroy()
}

// RemoveAll empties the scene, destroying objects when destroy is set.
func (b *Backend) RemoveAll(destroy bool) {
	b.collection.RemoveAll(destroy)
}

// RaiseToTop restacks obj to the top of the scene.
func (b *Backend) RaiseToTop(obj *scene.Object) {
	b.collection.RaiseToTop(obj)
}

func rasterObject(r *document.Raster, n document.NodeWithAncestry) ([]*scene.Object, bool) {
	px := r.Pixels()
	if px == nil {
		return nil, false
	}
	bounds := r.Bounds()
	content := px
	if px.Bounds().Size() != bounds.Size() {
		scaled := image.NewNRGBA(image.Rectangle{Max: bounds.Size()})
		Scaler.Scale(scaled, scaled.Bounds(), px, px.Bounds(), draw.Src, nil)
		content = scaled
	}
	obj := scene.NewObject(r.Name(), bounds, content)
	applyInherited(obj, n)
	return []*scene.Object{obj}, true
}

func fillObject(f *document.Fill, n document.NodeWithAncestry) ([]*scene.Object, bool) {
	obj := scene.NewObject(f.Name(), f.Bounds(), image.NewUniform(f.Color()))
	applyInherited(obj, n)
	return []*scene.Object{obj}, true
}

func applyInherited(obj *scene.Object, n document.NodeWithAncestry) {
	obj.SetOpacity(n.EffectiveOpacity())
	obj.SetVisible(n.EffectiveVisible())
}
