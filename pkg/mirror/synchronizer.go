package mirror

import (
	"fmt"

	"github.com/go-strata/strata/pkg/document"
)

// Synchronizer mirrors one document tree into one renderer backend. It
// owns the node-to-counterpart mapping and every subscription it installs
// on the tree; no subscription outlives its registry entry.
//
// All methods must be called from the goroutine that owns the document.
type Synchronizer[T any] struct {
	doc     *document.Document
	backend Backend[T]
	reorder Reorderer[T] // nil when the backend cannot restack in place

	// layerMap holds the live counterparts per node. A node id is present
	// if and only if it has at least one live counterpart.
	layerMap map[document.NodeID][]T
	// nodeSubs holds per-node subscriptions: order-key listeners for
	// mapped nodes, retry listeners for pending ones.
	nodeSubs map[document.NodeID][]*document.Subscription
	// groupSubs holds per-group collection subscriptions (add, remove,
	// collection replaced). Groups carry these in addition to nodeSubs.
	groupSubs map[document.NodeID][]*document.Subscription
	// states tracks each visited node's standing. Absent ids are
	// StateUnmapped.
	states map[document.NodeID]State
}

// NewSynchronizer creates a synchronizer for the given document and
// backend. Nothing is mirrored until Synchronize is called.
func NewSynchronizer[T any](doc *document.Document, backend Backend[T]) *Synchronizer[T] {
	if doc == nil {
		panic("mirror: nil document")
	}
	if backend == nil {
		panic("mirror: nil backend")
	}
	s := &Synchronizer[T]{
		doc:     doc,
		backend: backend,
	}
	s.reorder, _ = backend.(Reorderer[T])
	s.reset()
	return s
}

func (s *Synchronizer[T]) reset() {
	s.layerMap = make(map[document.NodeID][]T)
	s.nodeSubs = make(map[document.NodeID][]*document.Subscription)
	s.groupSubs = make(map[document.NodeID][]*document.Subscription)
	s.states = make(map[document.NodeID]State)
}

// Synchronize tears down all existing state and rebuilds the mapping from
// the document's current tree. It is idempotent: repeated calls on an
// unchanged tree produce the same mapping.
func (s *Synchronizer[T]) Synchronize() {
	s.DestroyAll()
	s.add(document.NodeWithAncestry{Node: s.doc.Root()})
}

// DestroyAll removes and destroys every counterpart, cancels every
// subscription, and empties all registries. Safe to call when already
// empty.
func (s *Synchronizer[T]) DestroyAll() {
	s.backend.RemoveAll(true)
	for _, subs := range s.groupSubs {
		for _, sub := range subs {
			sub.Cancel()
		}
	}
	for _, subs := range s.nodeSubs {
		for _, sub := range subs {
			sub.Cancel()
		}
	}
	s.reset()
}

// Counterparts returns the live counterparts mapped to a node, or nil.
func (s *Synchronizer[T]) Counterparts(id document.NodeID) []T {
	objs, ok := s.layerMap[id]
	if !ok {
		return nil
	}
	out := make([]T, len(objs))
	copy(out, objs)
	return out
}

// MappedCount returns the number of nodes with live counterparts.
func (s *Synchronizer[T]) MappedCount() int {
	return len(s.layerMap)
}

// NodeState reports a node's standing in the mirror.
func (s *Synchronizer[T]) NodeState(id document.NodeID) State {
	return s.states[id]
}

// add runs the mapping pass: a breadth-first traversal seeded at entry.
// Groups install collection listeners and, unless they produce a group
// counterpart that subsumes the subtree, have their children enqueued with
// extended ancestry. Leaves are mapped directly or armed for retry. The
// pass ends with one full restack.
func (s *Synchronizer[T]) add(entry document.NodeWithAncestry) {
	root := s.doc.Root()
	fifo := []document.NodeWithAncestry{entry}
	for len(fifo) > 0 {
		item := fifo[0]
		fifo = fifo[1:]
		node := item.Node
		id := node.ID()

		if _, exists := s.layerMap[id]; exists {
			panic(fmt.Sprintf("mirror: duplicate mapping for node %d", id))
		}

		var objs []T
		created := false
		if group, ok := node.(*document.Group); ok {
			s.listenForGroup(group)
			if group != root {
				objs, created = s.backend.CreateCounterparts(item)
			}
			if !created {
				var childAncestry []*document.Group
				if group != root {
					childAncestry = append([]*document.Group{group}, item.Ancestors...)
				}
				for _, child := range group.Children().Nodes() {
					fifo = append(fifo, document.NodeWithAncestry{Node: child, Ancestors: childAncestry})
				}
			}
		} else {
			objs, created = s.backend.CreateCounterparts(item)
			if !created {
				s.armRetry(item)
			}
		}

		if created {
			s.register(item, objs)
		}
	}
	s.orderCounterparts()
}

// register records objs as the node's live counterparts, subscribes the
// node's order-key notification, and hands the objects to the renderer.
func (s *Synchronizer[T]) register(item document.NodeWithAncestry, objs []T) {
	id := item.Node.ID()
	s.layerMap[id] = objs
	s.states[id] = StateMapped
	sub := item.Node.SubscribeOrderKey(func() {
		s.orderCounterparts()
	})
	s.nodeSubs[id] = append(s.nodeSubs[id], sub)
	for _, obj := range objs {
		s.backend.Add(obj)
	}
}

// armRetry puts a node into the pending state: every change notification
// re-attempts creation until one succeeds, at which point the retry
// subscription is released and the node is mapped and restacked.
func (s *Synchronizer[T]) armRetry(item document.NodeWithAncestry) {
	id := item.Node.ID()
	s.states[id] = StatePending
	var sub *document.Subscription
	sub = item.Node.SubscribeChange(func() {
		if s.states[id] != StatePending {
			return
		}
		objs, ok := s.backend.CreateCounterparts(item)
		if !ok {
			return
		}
		sub.Cancel()
		s.dropNodeSub(id, sub)
		s.register(item, objs)
		s.orderCounterparts()
	})
	s.nodeSubs[id] = append(s.nodeSubs[id], sub)
}

// dropNodeSub removes one subscription from a node's registry entry,
// deleting the entry when it empties.
func (s *Synchronizer[T]) dropNodeSub(id document.NodeID, sub *document.Subscription) {
	subs := s.nodeSubs[id]
	for i, candidate := range subs {
		if candidate == sub {
			subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(subs) == 0 {
		delete(s.nodeSubs, id)
	} else {
		s.nodeSubs[id] = subs
	}
}

// listenForGroup installs a group's collection subscriptions. The
// add/remove pair is attached to the current collection and re-attached
// whenever the collection is swapped; the replaced subscription itself
// lives until the group leaves the mirror.
func (s *Synchronizer[T]) listenForGroup(group *document.Group) {
	id := group.ID()
	if _, exists := s.groupSubs[id]; exists {
		panic(fmt.Sprintf("mirror: group listeners already installed for node %d", id))
	}

	var contentSubs []*document.Subscription
	listenContent := func() {
		children := group.Children()
		addSub := children.SubscribeAdd(func(child document.Node) {
			// A live group counterpart subsumes the whole subtree; the
			// child is represented by it and must not be mapped on its
			// own while it lives.
			if _, subsumed := s.layerMap[id]; subsumed {
				return
			}
			s.add(document.WithAncestry(child, s.doc.Root()))
		})
		removeSub := children.SubscribeRemove(func(child document.Node) {
			s.remove(child)
		})
		contentSubs = []*document.Subscription{addSub, removeSub}
		s.groupSubs[id] = append(s.groupSubs[id], addSub, removeSub)
	}
	s.groupSubs[id] = []*document.Subscription{}
	listenContent()

	replacedSub := group.SubscribeChildrenReplaced(func() {
		for _, sub := range contentSubs {
			sub.Cancel()
			s.dropGroupSub(id, sub)
		}
		listenContent()
	})
	s.groupSubs[id] = append(s.groupSubs[id], replacedSub)
}

// dropGroupSub removes one subscription from a group's registry entry.
// The entry itself stays until the group is unlistened.
func (s *Synchronizer[T]) dropGroupSub(id document.NodeID, sub *document.Subscription) {
	subs, ok := s.groupSubs[id]
	if !ok {
		return
	}
	for i, candidate := range subs {
		if candidate == sub {
			s.groupSubs[id] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// remove runs the removal pass: a breadth-first traversal seeded at the
// node leaving the tree. A mapped node has its counterparts detached and
// destroyed; a group that was not itself mapped has its children enqueued,
// while a mapped group's counterpart already covers them. The pass ends
// with one full restack.
func (s *Synchronizer[T]) remove(node document.Node) {
	if node == nil {
		return
	}
	fifo := []document.Node{node}
	for len(fifo) > 0 {
		current := fifo[0]
		fifo = fifo[1:]
		id := current.ID()

		handled := false
		if objs, ok := s.layerMap[id]; ok {
			delete(s.layerMap, id)
			for _, obj := range objs {
				s.backend.Remove(obj, false)
				s.backend.Destroy(obj)
			}
			handled = true
		}

		if group, ok := current.(*document.Group); ok {
			s.unlistenGroup(group)
			if !handled {
				for _, child := range group.Children().Nodes() {
					fifo = append(fifo, child)
				}
			}
		}

		for _, sub := range s.nodeSubs[id] {
			sub.Cancel()
		}
		delete(s.nodeSubs, id)
		delete(s.states, id)
	}
	s.orderCounterparts()
}

// unlistenGroup cancels a group's collection subscriptions. Missing
// entries are tolerated: partial states can arise from prior declined
// creations. The document root keeps its subscriptions for the
// synchronizer's lifetime.
func (s *Synchronizer[T]) unlistenGroup(group *document.Group) {
	if group == s.doc.Root() {
		return
	}
	subs, ok := s.groupSubs[group.ID()]
	if !ok {
		return
	}
	for _, sub := range subs {
		sub.Cancel()
	}
	delete(s.groupSubs, group.ID())
}
