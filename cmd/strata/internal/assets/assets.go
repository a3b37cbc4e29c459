// Package assets resolves raster layer sources to pixel data.
package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/go-strata/strata/pkg/document"
	strataerrors "github.com/go-strata/strata/pkg/errors"
)

// Attach resolves each raster layer's source path relative to baseDir,
// decodes the image, and attaches the pixels to the layer. Rasters
// without a source, or with pixels already attached, are left
// untouched. It returns one error per raster whose source could not be
// loaded.
func Attach(doc *document.Document, baseDir string) []error {
	var errs []error
	document.Walk(doc.Root(), func(n document.Node) {
		r, ok := n.(*document.Raster)
		if !ok || r.Source() == "" || r.Pixels() != nil {
			return
		}
		img, err := load(filepath.Join(baseDir, r.Source()), r)
		if err != nil {
			errs = append(errs, err)
			return
		}
		r.SetPixels(img)
	})
	return errs
}

// Missing returns the names of raster layers that have no pixel data
// attached, in tree order.
func Missing(doc *document.Document) []string {
	var names []string
	document.Walk(doc.Root(), func(n document.Node) {
		if r, ok := n.(*document.Raster); ok && r.Pixels() == nil {
			names = append(names, r.Name())
		}
	})
	return names
}

func load(path string, r *document.Raster) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &strataerrors.StrataError{
			Op:   "assets.Attach",
			Kind: strataerrors.KindIO,
			Path: r.Source(),
			Err:  fmt.Errorf("layer %q: %w", r.Name(), err),
		}
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &strataerrors.StrataError{
			Op:   "assets.Attach",
			Kind: strataerrors.KindFormat,
			Path: r.Source(),
			Err:  fmt.Errorf("layer %q: %w", r.Name(), err),
		}
	}
	return img, nil
}
