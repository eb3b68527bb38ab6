package atlas

import (
	"github.com/mbrennan/atlaskit/atlas/geom"
	"github.com/mbrennan/atlaskit/internal/arena"
)

// walk visits every node of the tree in depth-first preorder (first child
// before second). The order is unspecified for callers but stable for a
// given tree state.
func (a *Atlas) walk(visit func(arena.Handle, *node)) {
	stack := []arena.Handle{a.root}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := a.mustNode(h)
		visit(h, n)
		if n.kind == KindContainer {
			// Push second first so first is visited first.
			stack = append(stack, n.second, n.first)
		}
	}
}

// ForEachAllocated calls fn for every allocated rectangle.
func (a *Atlas) ForEachAllocated(fn func(AllocId, geom.Rect)) {
	a.walk(func(h arena.Handle, n *node) {
		if n.kind == KindAllocated {
			fn(allocID(h), n.rect)
		}
	})
}

// ForEachFree calls fn for every free rectangle.
func (a *Atlas) ForEachFree(fn func(geom.Rect)) {
	a.walk(func(_ arena.Handle, n *node) {
		if n.kind == KindFree {
			fn(n.rect)
		}
	})
}
