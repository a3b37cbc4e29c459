package cmd

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/go-strata/strata/cmd/strata/internal/assets"
	"github.com/go-strata/strata/pkg/compositor"
	"github.com/go-strata/strata/pkg/docfile"
	"github.com/go-strata/strata/pkg/document"
	strataerrors "github.com/go-strata/strata/pkg/errors"
	"github.com/go-strata/strata/pkg/mirror"
	"github.com/go-strata/strata/pkg/scene"
)

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Show a document's layer tree and scene",
		Long: `Show the layer tree of a document file and the scene it mirrors to.

The layer tree lists every layer with its kind, bounds, and non-default
attributes. The scene section lists the objects a compositing backend
builds for the document, in stacking order.

Raster sources are resolved relative to the document file. Layers whose
sources are missing or unreadable stay pending and are reported at the
end instead of failing the command.`,
		Usage: "strata inspect <file>",
		Run:   runInspect,
	})
}

func runInspect(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("document file is required\n\nUsage: strata inspect <file>")
	}
	path := args[0]

	doc, err := docfile.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("Document: %s (%s)\n", doc.Title(), doc.ID())
	fmt.Println()
	fmt.Println("Layers:")
	if doc.Root().Children().Len() == 0 {
		fmt.Println("  (empty)")
	}
	printTree(doc.Root(), 0)

	// Sources are attached best-effort: a failed load leaves the layer
	// pending, which the scene section makes visible.
	for _, attachErr := range assets.Attach(doc, filepath.Dir(path)) {
		if se, ok := attachErr.(*strataerrors.StrataError); ok {
			strataerrors.Report(se)
		}
	}

	backend := compositor.NewBackend()
	s := mirror.NewSynchronizer[*scene.Object](doc, backend)
	defer s.DestroyAll()
	s.Synchronize()

	fmt.Println()
	fmt.Println("Scene:")
	objs := backend.Collection().Objects()
	if len(objs) == 0 {
		fmt.Println("  (no live objects)")
	}
	for i, obj := range objs {
		fmt.Printf("  %2d. %s %s opacity=%.2f", i+1, obj.Label(), rectString(obj.Bounds()), obj.Opacity())
		if !obj.Visible() {
			fmt.Print(" hidden")
		}
		fmt.Println()
	}

	if missing := assets.Missing(doc); len(missing) > 0 {
		fmt.Println()
		fmt.Printf("Pending: %s (no pixel data)\n", strings.Join(missing, ", "))
	}

	return nil
}

// printTree prints the layer tree, one layer per line, indented by
// depth.
func printTree(g *document.Group, depth int) {
	indent := strings.Repeat("  ", depth+1)
	for _, n := range g.Children().Nodes() {
		switch n := n.(type) {
		case *document.Group:
			suffix := ""
			if n.Flattened() {
				suffix = ", flattened"
			}
			fmt.Printf("%s%s (group%s%s)\n", indent, n.Name(), suffix, attrString(n))
			printTree(n, depth+1)
		case *document.Raster:
			src := n.Source()
			if src == "" {
				src = "none"
			}
			fmt.Printf("%s%s (raster %s, source %s%s)\n", indent, n.Name(), rectString(n.Bounds()), src, attrString(n))
		case *document.Fill:
			fmt.Printf("%s%s (fill %s, %s%s)\n", indent, n.Name(), rectString(n.Bounds()), docfile.FormatColor(n.Color()), attrString(n))
		}
	}
}

// attrString renders the non-default attributes of a layer, prefixed
// with a comma so it can be appended to a description.
func attrString(n document.Node) string {
	var parts []string
	if n.OrderKey() != 0 {
		parts = append(parts, fmt.Sprintf("order %g", n.OrderKey()))
	}
	if n.Opacity() != 1 {
		parts = append(parts, fmt.Sprintf("opacity %.2f", n.Opacity()))
	}
	if !n.Visible() {
		parts = append(parts, "hidden")
	}
	if len(parts) == 0 {
		return ""
	}
	return ", " + strings.Join(parts, ", ")
}

func rectString(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d at (%d,%d)", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}
