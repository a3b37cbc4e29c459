// Package testing provides helpers for testing document mirroring in
// Strata.
//
// # Quick Start
//
// Build a document, mirror it, and assert on the resulting scene:
//
//	func TestLayerStacking(t *testing.T) {
//	    doc := stratatest.NewDocument("design",
//	        stratatest.Fill("Background", image.Rect(0, 0, 64, 64), paper),
//	        stratatest.Ordered(stratatest.Fill("Accent", image.Rect(8, 8, 24, 24), ink), 1),
//	    )
//	    mt := stratatest.NewMirrorTesterWithT(t, doc)
//	    mt.Synchronize()
//
//	    if got := mt.Live(); !slices.Equal(got, []string{"Background", "Accent"}) {
//	        t.Errorf("live objects = %v", got)
//	    }
//	}
//
// # Scripting the Backend
//
// RecordingBackend creates one scene object per layer, honors
// Group.Flattened for subsumption, and counts every operation the
// synchronizer issues. Creation can be made to fail transiently per
// layer name to exercise pending layers and retries:
//
//	mt.Backend().DeclineTimes("Photo", 1)
//	mt.Synchronize()        // Photo is left pending
//	photo.SetPixels(px)     // the change triggers a successful retry
//
// # Snapshot Testing
//
// Capture and compare mirrored scene state:
//
//	snapshot := mt.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/design.snapshot.json")
//
// Update snapshots with:
//
//	STRATA_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import stratatest "github.com/go-strata/strata/pkg/testing"
package testing
