package mirror_test

import (
	"fmt"
	"image"
	"image/color"

	// Blank-imported so the Example function names resolve to the
	// package under test's Synchronizer for go vet.
	_ "github.com/go-strata/strata/pkg/mirror"
	stratatest "github.com/go-strata/strata/pkg/testing"
)

// This example mirrors a small document into a scene and shows how
// later document edits propagate without another Synchronize call.
func ExampleSynchronizer() {
	gray := color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	red := color.NRGBA{R: 0xff, A: 0xff}

	background := stratatest.Fill("Background", image.Rect(0, 0, 64, 64), gray)
	doc := stratatest.NewDocument("poster",
		background,
		stratatest.Fill("Accent", image.Rect(8, 8, 24, 24), red),
	)

	mt := stratatest.NewMirrorTester(doc)
	defer mt.Cleanup()
	mt.Synchronize()
	fmt.Println(mt.Live())

	// Appending a layer is mirrored incrementally.
	doc.Root().Children().Append(stratatest.Fill("Badge", image.Rect(40, 40, 56, 56), red))
	fmt.Println(mt.Live())

	// Raising a layer's order key restacks its counterpart above the
	// others.
	background.SetOrderKey(1)
	fmt.Println(mt.Live())

	// Output:
	// [Background Accent]
	// [Background Accent Badge]
	// [Accent Badge Background]
}

// This example shows a layer the backend cannot represent yet: it
// stays pending until a later change lets a retry succeed.
func ExampleSynchronizer_pendingLayer() {
	photo := stratatest.Raster("Photo", image.Rect(0, 0, 32, 32))
	doc := stratatest.NewDocument("album", photo)

	mt := stratatest.NewMirrorTester(doc)
	defer mt.Cleanup()
	mt.Backend().DeclineTimes("Photo", 1)
	mt.Synchronize()
	fmt.Println(len(mt.Live()), "objects while pending")

	// Attaching pixels changes the layer, which triggers a retry.
	photo.SetPixels(image.NewNRGBA(image.Rect(0, 0, 32, 32)))
	fmt.Println(mt.Live())

	// Output:
	// 0 objects while pending
	// [Photo]
}
