// Package document provides the layer tree that Strata documents are made of.
//
// A document is a hierarchy of nodes: Group nodes own an ordered collection
// of children, while Raster and Fill nodes are terminal layers that carry
// drawable content. Every node has a stable identity, a stacking order key,
// and inherited visual properties (visibility, opacity).
//
// # Nodes and Groups
//
// Nodes are created with their constructors and attached to a group's child
// collection:
//
//	doc := document.New("poster")
//	bg := document.NewFill("background", image.Rect(0, 0, 640, 480), color.NRGBA{R: 20, G: 20, B: 28, A: 255})
//	doc.Root().Children().Append(bg)
//
// A node belongs to at most one group at a time; attaching an already
// attached node panics. Parent pointers are maintained by the child
// collection, so ancestry can always be recovered from a node alone.
//
// # Change Notification
//
// The tree is observable. Each node emits a generic change notification when
// its content or attributes change, and a dedicated notification when its
// order key changes. A group's ChildList emits add and remove notifications,
// and the group itself announces when its entire child collection is swapped
// for a new one. Subscriptions are handles with an idempotent Cancel:
//
//	sub := layer.SubscribeChange(func() { ... })
//	defer sub.Cancel()
//
// Replacing a group's collection via SetChildren deliberately does not emit
// add or remove notifications for the delta; observers that care re-attach
// to the new collection and reconcile through subsequent add/remove events.
//
// # Threading
//
// Like the rest of the toolkit, a document tree is owned by a single
// goroutine. Notifications are dispatched synchronously on the goroutine
// that performed the mutation, and no internal locking is performed.
package document
