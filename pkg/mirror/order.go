package mirror

import (
	"cmp"
	"slices"

	"github.com/go-strata/strata/pkg/document"
)

// orderCounterparts restacks every live counterpart so the renderer's
// stacking matches the document: order key ascending, with the document's
// depth-first tree order breaking ties. Raising each mapped node's
// counterparts to the top in that sequence yields the total order.
func (s *Synchronizer[T]) orderCounterparts() {
	if len(s.layerMap) == 0 {
		return
	}

	var nodes []document.Node
	document.Walk(s.doc.Root(), func(n document.Node) {
		nodes = append(nodes, n)
	})
	slices.SortStableFunc(nodes, func(a, b document.Node) int {
		return cmp.Compare(a.OrderKey(), b.OrderKey())
	})

	for _, n := range nodes {
		objs, ok := s.layerMap[n.ID()]
		if !ok {
			continue
		}
		for _, obj := range objs {
			s.raiseToTop(obj)
		}
	}
}

// raiseToTop restacks one counterpart above all others, in place when the
// backend supports it.
func (s *Synchronizer[T]) raiseToTop(obj T) {
	if s.reorder != nil {
		s.reorder.RaiseToTop(obj)
		return
	}
	s.backend.Remove(obj, false)
	s.backend.Add(obj)
}
