package compositor

import (
	"image"

	"golang.org/x/image/draw"
)

// Render composites the live stack into dst, bottom to top. Invisible and
// fully transparent objects are skipped; everything else draws over the
// existing destination content with its own opacity applied.
func (b *Backend) Render(dst *image.RGBA) {
	for _, obj := range b.collection.Objects() {
		if !obj.Visible() || obj.Opacity() == 0 {
			continue
		}
		content := obj.Content()
		if content == nil {
			continue
		}
		target := obj.Bounds()
		sp := content.Bounds().Min
		if opacity := obj.Opacity(); opacity < 1 {
			draw.DrawMask(dst, target, content, sp, opacityMask(opacity), image.Point{}, draw.Over)
		} else {
			draw.Draw(dst, target, content, sp, draw.Over)
		}
	}
}

// RenderNew composites into a fresh transparent image covering bounds.
func (b *Backend) RenderNew(bounds image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(bounds)
	b.Render(dst)
	return dst
}

// ContentBounds returns the union of the live objects' bounds, the
// smallest frame that shows the whole scene.
func (b *Backend) ContentBounds() image.Rectangle {
	var union image.Rectangle
	for _, obj := range b.collection.Objects() {
		union = union.Union(obj.Bounds())
	}
	return union
}
