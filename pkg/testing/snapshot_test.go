package testing

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-strata/strata/pkg/scene"
)

// TestCaptureSnapshot_SceneState verifies a snapshot records labels,
// bounds, and inherited attributes in stacking order.
func TestCaptureSnapshot_SceneState(t *testing.T) {
	group := Group("Folder", SolidRaster("Photo", image.Rect(8, 8, 40, 40), ink))
	group.SetOpacity(0.5)
	doc := NewDocument("doc",
		Fill("Background", image.Rect(0, 0, 64, 64), paper),
		group,
	)
	mt := NewMirrorTesterWithT(t, doc)
	mt.Synchronize()

	snap := mt.CaptureSnapshot()
	if len(snap.Objects) != 2 {
		t.Fatalf("snapshot has %d objects, want 2", len(snap.Objects))
	}
	photo := snap.Objects[1]
	if photo.Label != "Photo" {
		t.Errorf("label = %q, want Photo", photo.Label)
	}
	if photo.Bounds != [4]int{8, 8, 40, 40} {
		t.Errorf("bounds = %v, want [8 8 40 40]", photo.Bounds)
	}
	if photo.Opacity != 0.5 {
		t.Errorf("opacity = %v, want the inherited 0.5", photo.Opacity)
	}
}

// TestCaptureCollection_ContentDescriptions verifies the content
// summary for finite, uniform, and absent content.
func TestCaptureCollection_ContentDescriptions(t *testing.T) {
	c := scene.NewCollection()
	c.Add(scene.NewObject("finite", image.Rect(0, 0, 4, 4), image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	c.Add(scene.NewObject("fill", image.Rect(0, 0, 4, 4), image.NewUniform(ink)))
	c.Add(scene.NewObject("bare", image.Rect(0, 0, 4, 4), nil))
	defer c.RemoveAll(true)

	snap := CaptureCollection(c)
	if got := snap.Objects[0].Content; got != "4x4" {
		t.Errorf("finite content = %q, want 4x4", got)
	}
	if got := snap.Objects[1].Content; got != "uniform" {
		t.Errorf("fill content = %q, want uniform", got)
	}
	if got := snap.Objects[2].Content; got != "" {
		t.Errorf("bare content = %q, want empty", got)
	}
}

// TestSnapshot_Diff_Equal verifies identical captures produce no diff.
func TestSnapshot_Diff_Equal(t *testing.T) {
	doc := NewDocument("doc", Fill("Base", image.Rect(0, 0, 8, 8), paper))
	mt := NewMirrorTesterWithT(t, doc)
	mt.Synchronize()

	a := mt.CaptureSnapshot()
	b := mt.CaptureSnapshot()
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

// TestSnapshot_Diff_Different verifies a scene change shows up in the
// diff.
func TestSnapshot_Diff_Different(t *testing.T) {
	doc := NewDocument("doc", Fill("Base", image.Rect(0, 0, 8, 8), paper))
	mt := NewMirrorTesterWithT(t, doc)
	mt.Synchronize()
	a := mt.CaptureSnapshot()

	doc.Root().Children().Append(Fill("Accent", image.Rect(0, 0, 4, 4), ink))
	b := mt.CaptureSnapshot()

	if diff := a.Diff(b); diff == "" {
		t.Error("expected diff for different snapshots")
	}
}

// TestSnapshot_UpdateAndMatch verifies the write-then-match round trip.
func TestSnapshot_UpdateAndMatch(t *testing.T) {
	doc := NewDocument("doc", Fill("Base", image.Rect(0, 0, 8, 8), paper))
	mt := NewMirrorTesterWithT(t, doc)
	mt.Synchronize()
	snap := mt.CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "testdata", "scene.snapshot.json")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	snap.MatchesFile(t, path)
}

// TestSnapshot_MatchesFile_MissingFile verifies a missing golden file
// fails the test with creation instructions.
func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv("STRATA_UPDATE_SNAPSHOTS", "")
	doc := NewDocument("doc", Fill("Base", image.Rect(0, 0, 8, 8), paper))
	mt := NewMirrorTesterWithT(t, doc)
	mt.Synchronize()
	snap := mt.CaptureSnapshot()

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, filepath.Join(t.TempDir(), "missing", "snap.json"))

	if !failed {
		t.Error("expected MatchesFile to fail for a missing file")
	}
}

// TestSnapshot_MatchesFile_Mismatch verifies a stale golden file is
// reported as an error.
func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv("STRATA_UPDATE_SNAPSHOTS", "")
	doc := NewDocument("doc", Fill("Base", image.Rect(0, 0, 8, 8), paper))
	mt := NewMirrorTesterWithT(t, doc)
	mt.Synchronize()
	first := mt.CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := first.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}

	doc.Root().Children().Append(Fill("Accent", image.Rect(0, 0, 4, 4), ink))
	second := mt.CaptureSnapshot()

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report a mismatch")
	}
}

// TestSnapshot_UpdateMode verifies STRATA_UPDATE_SNAPSHOTS=1 writes the
// golden file instead of failing.
func TestSnapshot_UpdateMode(t *testing.T) {
	doc := NewDocument("doc", Fill("Base", image.Rect(0, 0, 8, 8), paper))
	mt := NewMirrorTesterWithT(t, doc)
	mt.Synchronize()
	snap := mt.CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "update.snapshot.json")
	t.Setenv("STRATA_UPDATE_SNAPSHOTS", "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile
// failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile
// mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
