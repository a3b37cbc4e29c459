// Package mirror keeps a renderer's object collection consistent with a
// document's layer tree as the tree is mutated at runtime.
//
// A Synchronizer walks the tree breadth-first, asking its Backend to produce
// renderer counterparts for every group and leaf it encounters, and installs
// change subscriptions so later structural events (children added or removed,
// collections swapped, order keys changed) update only the affected subtree.
//
// # Group Subsumption
//
// When the backend produces a counterpart for a group itself, that
// counterpart stands in for the whole subtree: the group's children are not
// visited and never receive counterparts of their own. When the backend
// declines, the children are mapped individually instead. Removal honors the
// same asymmetry, so nested counterparts are neither destroyed twice nor
// leaked.
//
// # Deferred Creation
//
// A leaf that is not yet representable (its content has not arrived, for
// instance) is held in a pending state: each of the node's change
// notifications triggers another creation attempt, and the first success
// maps the node and releases the retry subscription. Pending nodes never
// appear in the mapping.
//
// # Stacking Order
//
// After every structural pass the synchronizer restacks all live
// counterparts: nodes are ordered by their order key (ascending, unset keys
// count as zero) with the document's depth-first tree order breaking ties,
// and each counterpart is raised to the top in that sequence. Backends that
// implement Reorderer restack in place; others are detached and re-attached.
//
// # Threading
//
// A Synchronizer is single-threaded and event-driven: it runs entirely on
// the goroutine that mutates the document, inside the document's synchronous
// notification callbacks. Every pass runs to completion before the next
// event is processed. Mutating a node from inside its own notification
// callback is not supported.
//
// The document root is structural only: it is never given a counterpart, and
// its subscriptions are released only by DestroyAll.
package mirror
