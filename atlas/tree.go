package atlas

import (
	"github.com/mbrennan/atlaskit/atlas/geom"
	"github.com/mbrennan/atlaskit/internal/arena"
)

// splitLeaf replaces the Free leaf with a container cut at the absolute
// coordinate cut along ax. The leaf's slot is reused for the first child
// (min corner side) to minimize churn; the second child is a new Free leaf.
// The caller must have removed the leaf from its bucket, and is responsible
// for re-indexing both children.
//
// The cut must lie strictly inside the leaf so that both pieces have area.
func (a *Atlas) splitLeaf(leaf arena.Handle, ax Axis, cut int32) (first, second arena.Handle) {
	ln := a.mustNode(leaf)
	rect := ln.rect
	parent := ln.parent

	var firstRect, secondRect geom.Rect
	switch ax {
	case AxisHorizontal:
		firstRect = geom.Rect{Min: rect.Min, Max: geom.Point{X: rect.Max.X, Y: cut}}
		secondRect = geom.Rect{Min: geom.Point{X: rect.Min.X, Y: cut}, Max: rect.Max}
	default:
		firstRect = geom.Rect{Min: rect.Min, Max: geom.Point{X: cut, Y: rect.Max.Y}}
		secondRect = geom.Rect{Min: geom.Point{X: cut, Y: rect.Min.Y}, Max: rect.Max}
	}

	container := a.nodes.Insert(node{
		kind:   KindContainer,
		split:  ax,
		rect:   rect,
		parent: parent,
		first:  leaf,
		second: arena.None,
		bucket: noBucket,
		slot:   -1,
	})
	second = a.nodes.Insert(newFreeLeaf(secondRect, container))

	// Inserts may have grown the arena; re-fetch before mutating.
	a.mustNode(container).second = second
	ln = a.mustNode(leaf)
	ln.rect = firstRect
	ln.parent = container

	if parent.IsNone() {
		a.root = container
	} else {
		pn := a.mustNode(parent)
		if pn.first == leaf {
			pn.first = container
		} else {
			pn.second = container
		}
	}

	a.stats.Splits++
	return leaf, second
}

// mergeContainer turns a container whose children are both Free leaves into
// a single Free leaf covering the container's rectangle. The children's
// slots are freed (their generations bump). The caller must have removed
// both children from their buckets and re-indexes the merged leaf.
func (a *Atlas) mergeContainer(c arena.Handle) {
	cn := a.mustNode(c)
	a.nodes.Remove(cn.first)
	a.nodes.Remove(cn.second)
	cn.kind = KindFree
	cn.first = arena.None
	cn.second = arena.None
	cn.bucket = noBucket
	cn.slot = -1
	a.stats.Merges++
}

// siblingOf returns the other child of parent.
func (a *Atlas) siblingOf(parent, child arena.Handle) arena.Handle {
	pn := a.mustNode(parent)
	if pn.first == child {
		return pn.second
	}
	return pn.first
}
