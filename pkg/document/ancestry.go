package document

// NodeWithAncestry pairs a node with its ancestor groups, nearest first,
// excluding the document root. Carrying the chain lets consumers resolve
// inherited properties without re-walking the tree.
type NodeWithAncestry struct {
	Node      Node
	Ancestors []*Group
}

// Ancestors returns n's ancestor chain, nearest first, stopping before
// root. If n is not a descendant of root, the chain runs to the top of
// whatever tree n is attached to.
func Ancestors(n Node, root *Group) []*Group {
	var chain []*Group
	for g := n.Parent(); g != nil && g != root; g = g.Parent() {
		chain = append(chain, g)
	}
	return chain
}

// WithAncestry pairs n with its ancestor chain below root.
func WithAncestry(n Node, root *Group) NodeWithAncestry {
	return NodeWithAncestry{Node: n, Ancestors: Ancestors(n, root)}
}

// EffectiveOpacity returns the node's opacity multiplied through its
// ancestor groups.
func (n NodeWithAncestry) EffectiveOpacity() float64 {
	o := n.Node.Opacity()
	for _, g := range n.Ancestors {
		o *= g.Opacity()
	}
	return o
}

// EffectiveVisible reports whether the node and every ancestor group are
// visible.
func (n NodeWithAncestry) EffectiveVisible() bool {
	if !n.Node.Visible() {
		return false
	}
	for _, g := range n.Ancestors {
		if !g.Visible() {
			return false
		}
	}
	return true
}

// Walk visits n and, for groups, every descendant in depth-first
// pre-order. Siblings are visited in collection order.
func Walk(n Node, visit func(Node)) {
	visit(n)
	if g, ok := n.(*Group); ok {
		for _, c := range g.Children().Nodes() {
			Walk(c, visit)
		}
	}
}
