package cmd

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-strata/strata/pkg/docfile"
	"github.com/go-strata/strata/pkg/document"
)

func init() {
	RegisterCommand(&Command{
		Name:  "init",
		Short: "Create a starter document file",
		Long: `Create a starter document file: a background fill and an artwork
group with one accent layer, ready to inspect and render.

The document title is derived from the file's basename. Parent
directories are created as needed; an existing file is never
overwritten.

Examples:
  strata init poster.yaml
  strata init designs/cover.yaml`,
		Usage: "strata init <file>",
		Run:   runInit,
	})
}

func runInit(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("file path is required\n\nUsage: strata init <file>")
	}
	path := args[0]

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := docfile.Save(starterDocument(title), path); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", path)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  strata inspect %s\n", path)
	fmt.Printf("  strata render %s\n", path)
	return nil
}

// starterDocument builds the default document: a paper background with
// an accent block in an artwork group.
func starterDocument(title string) *document.Document {
	doc := document.New(title)

	background := document.NewFill("Background", image.Rect(0, 0, 640, 400),
		color.NRGBA{R: 0xf4, G: 0xf1, B: 0xea, A: 0xff})

	accent := document.NewFill("Accent", image.Rect(48, 48, 320, 240),
		color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff})
	accent.SetOrderKey(1)

	artwork := document.NewGroup("Artwork")
	artwork.Children().Append(accent)

	doc.Root().Children().Append(background)
	doc.Root().Children().Append(artwork)
	return doc
}
