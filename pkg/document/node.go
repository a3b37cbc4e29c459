package document

import "sync/atomic"

// NodeID uniquely identifies a node instance within a process.
type NodeID uint64

// nextNodeID is an atomic counter for unique node IDs.
var nextNodeID uint64

func newNodeID() NodeID {
	return NodeID(atomic.AddUint64(&nextNodeID, 1))
}

// Node is a member of a document's layer tree: either a *Group or one of
// the terminal layer types (*Raster, *Fill). The interface is sealed to
// this package so consumers can switch over the concrete types.
type Node interface {
	// ID returns the node's stable unique id.
	ID() NodeID
	// Name returns the node's display name.
	Name() string
	// SetName updates the display name and emits a change notification.
	SetName(name string)
	// OrderKey returns the node's stacking key. Nodes default to 0;
	// higher keys stack above lower ones among siblings.
	OrderKey() float64
	// SetOrderKey updates the stacking key and emits an order-key
	// notification. It does not emit a generic change notification.
	SetOrderKey(key float64)
	// Visible reports whether the node itself is visible. Effective
	// visibility also depends on ancestors; see NodeWithAncestry.
	Visible() bool
	// SetVisible updates visibility and emits a change notification.
	SetVisible(v bool)
	// Opacity returns the node's own opacity in [0, 1].
	Opacity() float64
	// SetOpacity updates opacity (clamped to [0, 1]) and emits a change
	// notification.
	SetOpacity(o float64)
	// Parent returns the group this node is attached to, or nil.
	Parent() *Group
	// SubscribeChange registers a callback for content and attribute
	// changes (everything except the order key).
	SubscribeChange(fn func()) *Subscription
	// SubscribeOrderKey registers a callback for order-key changes.
	SubscribeOrderKey(fn func()) *Subscription

	// setParent is maintained by ChildList; it also seals the interface.
	setParent(g *Group)
}

// nodeBase provides the identity, attributes, and notification plumbing
// shared by every node type.
type nodeBase struct {
	id       NodeID
	name     string
	orderKey float64
	visible  bool
	opacity  float64
	parent   *Group

	changed      notifier
	orderChanged notifier
}

func newNodeBase(name string) nodeBase {
	return nodeBase{
		id:      newNodeID(),
		name:    name,
		visible: true,
		opacity: 1,
	}
}

func (b *nodeBase) ID() NodeID {
	return b.id
}

func (b *nodeBase) Name() string {
	return b.name
}

func (b *nodeBase) SetName(name string) {
	if b.name == name {
		return
	}
	b.name = name
	b.changed.notify()
}

func (b *nodeBase) OrderKey() float64 {
	return b.orderKey
}

func (b *nodeBase) SetOrderKey(key float64) {
	if b.orderKey == key {
		return
	}
	b.orderKey = key
	b.orderChanged.notify()
}

func (b *nodeBase) Visible() bool {
	return b.visible
}

func (b *nodeBase) SetVisible(v bool) {
	if b.visible == v {
		return
	}
	b.visible = v
	b.changed.notify()
}

func (b *nodeBase) Opacity() float64 {
	return b.opacity
}

func (b *nodeBase) SetOpacity(o float64) {
	if o < 0 {
		o = 0
	} else if o > 1 {
		o = 1
	}
	if b.opacity == o {
		return
	}
	b.opacity = o
	b.changed.notify()
}

func (b *nodeBase) Parent() *Group {
	return b.parent
}

func (b *nodeBase) SubscribeChange(fn func()) *Subscription {
	return b.changed.subscribe(fn)
}

func (b *nodeBase) SubscribeOrderKey(fn func()) *Subscription {
	return b.orderChanged.subscribe(fn)
}

func (b *nodeBase) setParent(g *Group) {
	b.parent = g
}
