package document

// Group is a node that owns an ordered collection of child nodes.
// Children stack back to front: later children render above earlier ones,
// subject to their order keys.
type Group struct {
	nodeBase

	children  *ChildList
	flattened bool
	replaced  notifier
}

// NewGroup creates an empty group with a unique ID.
func NewGroup(name string) *Group {
	g := &Group{nodeBase: newNodeBase(name)}
	g.children = &ChildList{owner: g}
	return g
}

// Children returns the group's current child collection. The returned
// collection is live; mutating it mutates the group.
func (g *Group) Children() *ChildList {
	return g.children
}

// Flattened reports whether the group renders as a single pre-composited
// layer instead of as its individual children.
func (g *Group) Flattened() bool {
	return g.flattened
}

// SetFlattened toggles pre-composited rendering and emits a change
// notification.
func (g *Group) SetFlattened(v bool) {
	if g.flattened == v {
		return
	}
	g.flattened = v
	g.changed.notify()
}

// SetChildren swaps the group's entire child collection for a new one and
// emits a children-replaced notification. No add or remove notifications
// are emitted for the delta between the old and new collections; observers
// re-attach to the new collection and reconcile through subsequent
// add/remove events. Callers that need the old children unmapped by an
// observer should remove them from the old collection first.
//
// The new list must not be attached to another group, and every node in it
// must be unattached. Nodes in the old collection are detached silently.
func (g *Group) SetChildren(list *ChildList) {
	if list == nil {
		panic("document: nil child list")
	}
	if list == g.children {
		return
	}
	if list.owner != nil {
		panic("document: child list already attached to a group")
	}
	for _, n := range list.nodes {
		if n.Parent() != nil {
			panic("document: node already attached to a group")
		}
		if wouldCycle(g, n) {
			panic("document: node is an ancestor of this group")
		}
	}

	old := g.children
	old.owner = nil
	for _, n := range old.nodes {
		n.setParent(nil)
	}

	list.owner = g
	for _, n := range list.nodes {
		n.setParent(g)
	}
	g.children = list
	g.replaced.notify()
}

// SubscribeChildrenReplaced registers a callback for whole-collection
// swaps performed by SetChildren.
func (g *Group) SubscribeChildrenReplaced(fn func()) *Subscription {
	return g.replaced.subscribe(fn)
}

// ChildList is an observable ordered collection of nodes. It maintains the
// parent pointer of every node it contains.
//
// A list created with NewChildList is unattached: nodes may be appended,
// but they have no parent until the list is adopted by a group through
// SetChildren.
type ChildList struct {
	owner   *Group
	nodes   []Node
	added   childNotifier
	removed childNotifier
}

// NewChildList creates an empty, unattached child list.
func NewChildList() *ChildList {
	return &ChildList{}
}

// Len returns the number of children.
func (l *ChildList) Len() int {
	return len(l.nodes)
}

// At returns the child at index i.
func (l *ChildList) At(i int) Node {
	return l.nodes[i]
}

// IndexOf returns the index of n, or -1 if n is not in the list.
func (l *ChildList) IndexOf(n Node) int {
	for i, c := range l.nodes {
		if c == n {
			return i
		}
	}
	return -1
}

// Nodes returns a copy of the children in order.
func (l *ChildList) Nodes() []Node {
	out := make([]Node, len(l.nodes))
	copy(out, l.nodes)
	return out
}

// Append adds n at the end of the list and emits an add notification.
// Panics if n is already attached to a group or would create a cycle.
func (l *ChildList) Append(n Node) {
	l.Insert(len(l.nodes), n)
}

// Insert adds n at index i and emits an add notification.
// Panics if i is out of range, n is already attached, or n would create
// a cycle.
func (l *ChildList) Insert(i int, n Node) {
	if i < 0 || i > len(l.nodes) {
		panic("document: insert index out of range")
	}
	if n == nil {
		panic("document: nil node")
	}
	if n.Parent() != nil {
		panic("document: node already attached to a group")
	}
	if wouldCycle(l.owner, n) {
		panic("document: node is an ancestor of this group")
	}
	l.nodes = append(l.nodes[:i], append([]Node{n}, l.nodes[i:]...)...)
	n.setParent(l.owner)
	l.added.notify(n)
}

// Remove removes n from the list, emits a remove notification, and
// reports whether n was present. Removing an absent node is a no-op.
func (l *ChildList) Remove(n Node) bool {
	i := l.IndexOf(n)
	if i < 0 {
		return false
	}
	l.RemoveAt(i)
	return true
}

// RemoveAt removes and returns the child at index i, emitting a remove
// notification. Panics if i is out of range.
func (l *ChildList) RemoveAt(i int) Node {
	if i < 0 || i >= len(l.nodes) {
		panic("document: remove index out of range")
	}
	n := l.nodes[i]
	l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)
	n.setParent(nil)
	l.removed.notify(n)
	return n
}

// SubscribeAdd registers a callback invoked after a node is added.
func (l *ChildList) SubscribeAdd(fn func(child Node)) *Subscription {
	return l.added.subscribe(fn)
}

// SubscribeRemove registers a callback invoked after a node is removed.
func (l *ChildList) SubscribeRemove(fn func(child Node)) *Subscription {
	return l.removed.subscribe(fn)
}

// wouldCycle reports whether attaching n under owner would make a group
// its own ancestor.
func wouldCycle(owner *Group, n Node) bool {
	child, ok := n.(*Group)
	if !ok || owner == nil {
		return false
	}
	for g := owner; g != nil; g = g.Parent() {
		if g == child {
			return true
		}
	}
	return false
}
