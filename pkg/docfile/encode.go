package docfile

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-strata/strata/pkg/document"
	"github.com/go-strata/strata/pkg/errors"
)

// Save encodes the document and writes it to path.
func Save(doc *document.Document, path string) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &errors.StrataError{
			Op:   "docfile.Save",
			Kind: errors.KindIO,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

// Encode renders the document as YAML in the current format version.
func Encode(doc *document.Document) ([]byte, error) {
	f := fileDoc{
		Strata: FormatVersion,
		ID:     doc.ID().String(),
		Title:  doc.Title(),
		Layers: encodeChildren(doc.Root()),
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return nil, &errors.StrataError{
			Op:   "docfile.Encode",
			Kind: errors.KindFormat,
			Err:  err,
		}
	}
	return data, nil
}

func encodeChildren(g *document.Group) []fileLayer {
	children := g.Children().Nodes()
	if len(children) == 0 {
		return nil
	}
	layers := make([]fileLayer, 0, len(children))
	for _, child := range children {
		layers = append(layers, encodeLayer(child))
	}
	return layers
}

func encodeLayer(n document.Node) fileLayer {
	layer := fileLayer{Name: n.Name(), Order: n.OrderKey()}
	// Pointers stay nil at the defaults so the fields are omitted.
	if o := n.Opacity(); o != 1 {
		layer.Opacity = &o
	}
	if v := n.Visible(); !v {
		layer.Visible = &v
	}

	switch node := n.(type) {
	case *document.Group:
		layer.Kind = "group"
		layer.Flattened = node.Flattened()
		layer.Layers = encodeChildren(node)
	case *document.Raster:
		layer.Kind = "raster"
		layer.Bounds = boundsOf(node.Bounds())
		layer.Source = node.Source()
	case *document.Fill:
		layer.Kind = "fill"
		layer.Bounds = boundsOf(node.Bounds())
		layer.Color = FormatColor(node.Color())
	}
	return layer
}
