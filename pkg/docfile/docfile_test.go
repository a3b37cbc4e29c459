package docfile

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-strata/strata/pkg/document"
	strataerrors "github.com/go-strata/strata/pkg/errors"
)

const sampleYAML = `strata: v1
id: 6ba7b810-9dad-11d1-80b4-00c04fd430c8
title: sample
layers:
  - kind: group
    name: background
    flattened: true
    layers:
      - kind: fill
        name: wash
        bounds: {x: 0, y: 0, width: 64, height: 64}
        color: "#336699"
  - kind: raster
    name: photo
    order: 2
    opacity: 0.5
    bounds: {x: 8, y: 8, width: 32, height: 32}
    source: photo.png
  - kind: fill
    name: tint
    visible: false
    bounds: {x: 0, y: 0, width: 16, height: 16}
    color: "#ff000080"
`

// TestParse_Sample verifies decoding of every layer kind and field.
func TestParse_Sample(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	if doc.Title() != "sample" {
		t.Errorf("title = %q, want %q", doc.Title(), "sample")
	}
	if doc.ID().String() != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("id = %s, want the file's id", doc.ID())
	}
	if doc.Root().Children().Len() != 3 {
		t.Fatalf("root has %d children, want 3", doc.Root().Children().Len())
	}

	g, ok := doc.Root().Children().At(0).(*document.Group)
	if !ok {
		t.Fatal("first layer should be a group")
	}
	if !g.Flattened() {
		t.Error("group should be flattened")
	}
	wash, ok := g.Children().At(0).(*document.Fill)
	if !ok {
		t.Fatal("group child should be a fill")
	}
	if wash.Color() != (color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}) {
		t.Errorf("wash color = %v", wash.Color())
	}
	if wash.Bounds() != image.Rect(0, 0, 64, 64) {
		t.Errorf("wash bounds = %v", wash.Bounds())
	}

	photo, ok := doc.Root().Children().At(1).(*document.Raster)
	if !ok {
		t.Fatal("second layer should be a raster")
	}
	if photo.OrderKey() != 2 || photo.Opacity() != 0.5 {
		t.Errorf("photo order=%v opacity=%v, want 2 and 0.5", photo.OrderKey(), photo.Opacity())
	}
	if photo.Source() != "photo.png" {
		t.Errorf("photo source = %q", photo.Source())
	}
	if photo.Bounds() != image.Rect(8, 8, 40, 40) {
		t.Errorf("photo bounds = %v", photo.Bounds())
	}

	tint, ok := doc.Root().Children().At(2).(*document.Fill)
	if !ok {
		t.Fatal("third layer should be a fill")
	}
	if tint.Visible() {
		t.Error("tint should be invisible")
	}
	if tint.Color().A != 0x80 {
		t.Errorf("tint alpha = %d, want 0x80", tint.Color().A)
	}
}

// TestParse_Defaults verifies omitted fields keep document defaults.
func TestParse_Defaults(t *testing.T) {
	doc, err := Parse([]byte("strata: v1\nlayers:\n  - kind: fill\n    color: \"#000000\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	n := doc.Root().Children().At(0)
	if n.Opacity() != 1 {
		t.Errorf("opacity = %v, want default 1", n.Opacity())
	}
	if !n.Visible() {
		t.Error("visible should default to true")
	}
	if n.OrderKey() != 0 {
		t.Errorf("order key = %v, want default 0", n.OrderKey())
	}
}

// TestEncode_RoundTrip verifies a document survives encode and decode.
func TestEncode_RoundTrip(t *testing.T) {
	original, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	data, err := Encode(original)
	if err != nil {
		t.Fatal(err)
	}
	reloaded, err := Parse(data)
	if err != nil {
		t.Fatalf("re-parse failed: %v\n%s", err, data)
	}

	if reloaded.ID() != original.ID() {
		t.Errorf("id changed across round trip: %s != %s", reloaded.ID(), original.ID())
	}
	if reloaded.Title() != original.Title() {
		t.Errorf("title changed across round trip")
	}
	sameTree(t, original.Root(), reloaded.Root(), "root")
}

// TestEncode_OmitsDefaults verifies default attribute values stay out of
// the file.
func TestEncode_OmitsDefaults(t *testing.T) {
	doc := document.New("d")
	doc.Root().Children().Append(document.NewFill("f", image.Rect(0, 0, 4, 4), color.NRGBA{A: 255}))

	data, err := Encode(doc)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if strings.Contains(text, "opacity") {
		t.Errorf("default opacity should be omitted:\n%s", text)
	}
	if strings.Contains(text, "visible") {
		t.Errorf("default visibility should be omitted:\n%s", text)
	}
	if strings.Contains(text, "order") {
		t.Errorf("default order key should be omitted:\n%s", text)
	}
}

// TestSaveLoad_File verifies the file round trip.
func TestSaveLoad_File(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sample.strata.yaml")
	if err := Save(doc, path); err != nil {
		t.Fatal(err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Title() != doc.Title() {
		t.Error("title changed across file round trip")
	}
	sameTree(t, doc.Root(), reloaded.Root(), "root")
}

// TestLoad_MissingFile verifies the io error path.
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assertKind(t, err, strataerrors.KindIO)
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("missing file error should unwrap to os.ErrNotExist")
	}
}

// TestParse_VersionGate verifies format version validation.
func TestParse_VersionGate(t *testing.T) {
	_, err := Parse([]byte("strata: v2\n"))
	assertKind(t, err, strataerrors.KindFormat)

	_, err = Parse([]byte("strata: 1\n"))
	assertKind(t, err, strataerrors.KindFormat)

	_, err = Parse([]byte("title: no version\n"))
	assertKind(t, err, strataerrors.KindFormat)

	// Any v1.x file loads.
	if _, err := Parse([]byte("strata: v1.2.3\n")); err != nil {
		t.Errorf("v1.2.3 should be accepted, got %v", err)
	}
}

// TestParse_UnknownKind verifies the layer kind gate.
func TestParse_UnknownKind(t *testing.T) {
	_, err := Parse([]byte("strata: v1\nlayers:\n  - kind: gradient\n"))
	assertKind(t, err, strataerrors.KindFormat)

	var ferr *strataerrors.FormatError
	if !errors.As(err, &ferr) {
		t.Fatal("expected a FormatError in the chain")
	}
	if ferr.Field != "layer kind" || ferr.Got != "gradient" {
		t.Errorf("FormatError = %+v, want layer kind / gradient", ferr)
	}
}

// TestParse_BadColor verifies fill color validation.
func TestParse_BadColor(t *testing.T) {
	_, err := Parse([]byte("strata: v1\nlayers:\n  - kind: fill\n    color: red\n"))
	assertKind(t, err, strataerrors.KindFormat)
}

// TestParse_BadID verifies document id validation.
func TestParse_BadID(t *testing.T) {
	_, err := Parse([]byte("strata: v1\nid: not-a-uuid\n"))
	assertKind(t, err, strataerrors.KindFormat)
}

// TestParse_MalformedYAML verifies the decode error path.
func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("strata: [unclosed"))
	assertKind(t, err, strataerrors.KindFormat)
}

// TestColor_Formats verifies both hex color spellings.
func TestColor_Formats(t *testing.T) {
	if got := FormatColor(color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}); got != "#336699" {
		t.Errorf("opaque color = %q, want #336699", got)
	}
	if got := FormatColor(color.NRGBA{R: 0xff, A: 0x80}); got != "#ff000080" {
		t.Errorf("translucent color = %q, want #ff000080", got)
	}
	if _, ok := ParseColor("#33669"); ok {
		t.Error("truncated color should be rejected")
	}
	if _, ok := ParseColor("336699"); ok {
		t.Error("color without # should be rejected")
	}
}

func assertKind(t *testing.T, err error, kind strataerrors.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var serr *strataerrors.StrataError
	if !errors.As(err, &serr) {
		t.Fatalf("expected a StrataError, got %T: %v", err, err)
	}
	if serr.Kind != kind {
		t.Errorf("error kind = %v, want %v", serr.Kind, kind)
	}
}

// sameTree fails the test when two subtrees differ in structure or
// attributes.
func sameTree(t *testing.T, a, b document.Node, path string) {
	t.Helper()
	if a.Name() != b.Name() {
		t.Errorf("%s: name %q != %q", path, a.Name(), b.Name())
	}
	if a.OrderKey() != b.OrderKey() || a.Opacity() != b.Opacity() || a.Visible() != b.Visible() {
		t.Errorf("%s: attributes differ", path)
	}
	switch an := a.(type) {
	case *document.Group:
		bn, ok := b.(*document.Group)
		if !ok {
			t.Errorf("%s: kind mismatch", path)
			return
		}
		if an.Flattened() != bn.Flattened() {
			t.Errorf("%s: flattened differs", path)
		}
		if an.Children().Len() != bn.Children().Len() {
			t.Errorf("%s: child count %d != %d", path, an.Children().Len(), bn.Children().Len())
			return
		}
		for i := 0; i < an.Children().Len(); i++ {
			sameTree(t, an.Children().At(i), bn.Children().At(i), path+"/"+an.Children().At(i).Name())
		}
	case *document.Raster:
		bn, ok := b.(*document.Raster)
		if !ok {
			t.Errorf("%s: kind mismatch", path)
			return
		}
		if an.Bounds() != bn.Bounds() || an.Source() != bn.Source() {
			t.Errorf("%s: raster fields differ", path)
		}
	case *document.Fill:
		bn, ok := b.(*document.Fill)
		if !ok {
			t.Errorf("%s: kind mismatch", path)
			return
		}
		if an.Bounds() != bn.Bounds() || an.Color() != bn.Color() {
			t.Errorf("%s: fill fields differ", path)
		}
	}
}
