package testing

import (
	"testing"

	"github.com/go-strata/strata/pkg/document"
	"github.com/go-strata/strata/pkg/mirror"
	"github.com/go-strata/strata/pkg/scene"
)

// MirrorTester wires a document to a RecordingBackend through a
// synchronizer, for tests that assert on mirrored scene state.
type MirrorTester struct {
	doc     *document.Document
	backend *RecordingBackend
	sync    *mirror.Synchronizer[*scene.Object]
}

// NewMirrorTester creates a tester for doc. The document is not
// mirrored until Synchronize is called, so backend behavior can be
// scripted first. Call Cleanup when done, or use NewMirrorTesterWithT.
func NewMirrorTester(doc *document.Document) *MirrorTester {
	backend := NewRecordingBackend()
	return &MirrorTester{
		doc:     doc,
		backend: backend,
		sync:    mirror.NewSynchronizer[*scene.Object](doc, backend),
	}
}

// NewMirrorTesterWithT creates a tester that tears down the mirrored
// scene via t.Cleanup. This is the recommended constructor for tests.
func NewMirrorTesterWithT(t *testing.T, doc *document.Document) *MirrorTester {
	tester := NewMirrorTester(doc)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup destroys the mirrored scene and detaches all document
// listeners. Must be called if not using NewMirrorTesterWithT.
func (t *MirrorTester) Cleanup() {
	t.sync.DestroyAll()
}

// Document returns the document under test.
func (t *MirrorTester) Document() *document.Document {
	return t.doc
}

// Backend returns the recording backend.
func (t *MirrorTester) Backend() *RecordingBackend {
	return t.backend
}

// Synchronizer returns the underlying synchronizer.
func (t *MirrorTester) Synchronizer() *mirror.Synchronizer[*scene.Object] {
	return t.sync
}

// Synchronize rebuilds the mirrored scene from the document. Later
// document edits are mirrored incrementally without another call.
func (t *MirrorTester) Synchronize() {
	t.sync.Synchronize()
}

// Live returns the labels of live scene objects in stacking order,
// bottom to top.
func (t *MirrorTester) Live() []string {
	return t.backend.Live()
}
