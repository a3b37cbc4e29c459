package cmd

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-strata/strata/cmd/strata/internal/assets"
	"github.com/go-strata/strata/pkg/compositor"
	"github.com/go-strata/strata/pkg/docfile"
	strataerrors "github.com/go-strata/strata/pkg/errors"
	"github.com/go-strata/strata/pkg/mirror"
	"github.com/go-strata/strata/pkg/scene"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a document to a PNG image",
		Long: `Render a document file to a PNG image.

Raster sources are resolved relative to the document file and must all
load; use inspect to find missing sources first. The output covers the
scene's content bounds unless --width and --height are given, in which
case it covers that size anchored at the origin.

Flags:
  -o, --out FILE   Output file (default: document name with .png)
  --width N        Output width in pixels
  --height N       Output height in pixels`,
		Usage: "strata render <file> [-o out.png] [--width N --height N]",
		Run:   runRender,
	})
}

type renderOptions struct {
	out    string
	width  int
	height int
}

func runRender(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("document file is required\n\nUsage: strata render <file> [-o out.png]")
	}
	path := args[0]

	opts := renderOptions{}
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-o", "--out":
			if i+1 < len(args) {
				opts.out = args[i+1]
				i++
			}
		case "--width":
			n, err := intFlag(args, &i)
			if err != nil {
				return err
			}
			opts.width = n
		case "--height":
			n, err := intFlag(args, &i)
			if err != nil {
				return err
			}
			opts.height = n
		}
	}
	if opts.out == "" {
		opts.out = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}

	doc, err := docfile.Load(path)
	if err != nil {
		return err
	}

	attachErrs := assets.Attach(doc, filepath.Dir(path))
	for _, attachErr := range attachErrs {
		if se, ok := attachErr.(*strataerrors.StrataError); ok {
			strataerrors.Report(se)
		}
	}
	if len(attachErrs) > 0 {
		return fmt.Errorf("%d raster source(s) failed to load", len(attachErrs))
	}

	backend := compositor.NewBackend()
	s := mirror.NewSynchronizer[*scene.Object](doc, backend)
	defer s.DestroyAll()
	s.Synchronize()

	if missing := assets.Missing(doc); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: layers without pixel data are not rendered: %s\n", strings.Join(missing, ", "))
	}

	bounds := backend.ContentBounds()
	if opts.width > 0 && opts.height > 0 {
		bounds = image.Rect(0, 0, opts.width, opts.height)
	}
	if bounds.Empty() {
		return fmt.Errorf("nothing to render: the scene has no content")
	}

	img := backend.RenderNew(bounds)

	f, err := os.Create(opts.out)
	if err != nil {
		return &strataerrors.StrataError{Op: "strata.render", Kind: strataerrors.KindIO, Path: opts.out, Err: err}
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return &strataerrors.StrataError{Op: "strata.render", Kind: strataerrors.KindRender, Path: opts.out, Err: err}
	}
	if err := f.Close(); err != nil {
		return &strataerrors.StrataError{Op: "strata.render", Kind: strataerrors.KindIO, Path: opts.out, Err: err}
	}

	fmt.Printf("Rendered %s -> %s (%dx%d)\n", filepath.Base(path), opts.out, bounds.Dx(), bounds.Dy())
	return nil
}

// intFlag parses the value following args[*i] as an integer and
// advances the index past it.
func intFlag(args []string, i *int) (int, error) {
	flag := args[*i]
	if *i+1 >= len(args) {
		return 0, fmt.Errorf("%s requires a number", flag)
	}
	*i++
	n, err := strconv.Atoi(args[*i])
	if err != nil {
		return 0, fmt.Errorf("%s requires a number: %w", flag, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive", flag)
	}
	return n, nil
}
