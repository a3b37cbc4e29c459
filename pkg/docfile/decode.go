package docfile

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-strata/strata/pkg/document"
	"github.com/go-strata/strata/pkg/errors"
)

// Load reads and decodes a document file.
func Load(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.StrataError{
			Op:   "docfile.Load",
			Kind: errors.KindIO,
			Path: path,
			Err:  err,
		}
	}
	return decode(data, path)
}

// Parse decodes a document from YAML bytes.
func Parse(data []byte) (*document.Document, error) {
	return decode(data, "")
}

func decode(data []byte, path string) (*document.Document, error) {
	var f fileDoc
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &errors.StrataError{
			Op:   "docfile.Parse",
			Kind: errors.KindFormat,
			Path: path,
			Err:  err,
		}
	}

	if !semver.IsValid(f.Strata) {
		return nil, formatError(path, "strata version", f.Strata)
	}
	if !versionSupported(f.Strata) {
		return nil, &errors.StrataError{
			Op:   "docfile.Parse",
			Kind: errors.KindFormat,
			Path: path,
			Err:  fmt.Errorf("unsupported format version %q (supported: %s)", f.Strata, semver.Major(FormatVersion)),
		}
	}

	doc := document.New(f.Title)
	if f.ID != "" {
		id, err := uuid.Parse(f.ID)
		if err != nil {
			return nil, formatError(path, "document id", f.ID)
		}
		doc = document.NewWithID(id, f.Title)
	}

	for _, layer := range f.Layers {
		n, err := buildNode(layer, path)
		if err != nil {
			return nil, err
		}
		doc.Root().Children().Append(n)
	}
	return doc, nil
}

func buildNode(layer fileLayer, path string) (document.Node, error) {
	switch layer.Kind {
	case "group":
		g := document.NewGroup(layer.Name)
		applyShared(g, layer)
		g.SetFlattened(layer.Flattened)
		for _, child := range layer.Layers {
			n, err := buildNode(child, path)
			if err != nil {
				return nil, err
			}
			g.Children().Append(n)
		}
		return g, nil

	case "raster":
		r := document.NewRaster(layer.Name, layer.Bounds.rect())
		applyShared(r, layer)
		r.SetSource(layer.Source)
		return r, nil

	case "fill":
		col, ok := ParseColor(layer.Color)
		if !ok {
			return nil, formatError(path, "fill color", layer.Color)
		}
		f := document.NewFill(layer.Name, layer.Bounds.rect(), col)
		applyShared(f, layer)
		return f, nil

	default:
		return nil, formatError(path, "layer kind", layer.Kind)
	}
}

func applyShared(n document.Node, layer fileLayer) {
	n.SetOrderKey(layer.Order)
	if layer.Opacity != nil {
		n.SetOpacity(*layer.Opacity)
	}
	if layer.Visible != nil {
		n.SetVisible(*layer.Visible)
	}
}

func formatError(path, field string, got any) error {
	return &errors.StrataError{
		Op:   "docfile.Parse",
		Kind: errors.KindFormat,
		Path: path,
		Err:  &errors.FormatError{Path: path, Field: field, Got: got},
	}
}
