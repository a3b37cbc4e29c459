package mirror

import "github.com/go-strata/strata/pkg/document"

// Backend produces and manages renderer counterparts for document nodes.
// The synchronizer depends only on this interface, never on a concrete
// renderer.
//
// Counterparts are owned by the renderer once added, but the synchronizer
// decides when they are destroyed; the renderer must not release them on
// its own.
type Backend[T any] interface {
	// CreateCounterparts attempts to produce renderer objects for a node.
	// A false result means the node is not currently representable and
	// should be retried when it changes; it is not an error. The attempt
	// must be free of side effects beyond constructing the returned
	// objects, and safe to repeat.
	CreateCounterparts(n document.NodeWithAncestry) (objs []T, ok bool)

	// Add inserts a counterpart into the renderer's live set.
	Add(obj T)

	// Remove takes a counterpart out of the renderer's live set.
	// When destroy is true the object is also released.
	Remove(obj T, destroy bool)

	// Destroy releases a counterpart that has already been removed.
	Destroy(obj T)

	// RemoveAll empties the renderer's live set, releasing the objects
	// when destroy is true.
	RemoveAll(destroy bool)
}

// Reorderer is an optional Backend capability: restacking a live
// counterpart above all others without detaching it. Backends that do not
// implement it have counterparts restacked by a remove and re-add.
type Reorderer[T any] interface {
	RaiseToTop(obj T)
}
