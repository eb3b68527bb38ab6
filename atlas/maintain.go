package atlas

import (
	"fmt"
	"sort"

	"github.com/mbrennan/atlaskit/atlas/geom"
	"github.com/mbrennan/atlaskit/internal/arena"
)

// Grow enlarges the atlas to newSize, which must be at least the current
// size on both axes (ErrDoesNotFit otherwise). All outstanding ids remain
// valid. The current root is wrapped in up to two new containers covering
// the L-shaped added region: a strip below the old root and a full-height
// column to its right.
func (a *Atlas) Grow(newSize geom.Size) error {
	if newSize.Width < a.size.Width || newSize.Height < a.size.Height {
		return ErrDoesNotFit
	}
	if newSize == a.size {
		return nil
	}
	a.stats.Grows++
	tracef("grow %dx%d -> %dx%d", a.size.Width, a.size.Height, newSize.Width, newSize.Height)

	// An empty atlas is a single free leaf; enlarge it in place so the
	// whole region stays allocatable as one rectangle.
	if a.IsEmpty() {
		a.removeFreeRect(a.root)
		a.mustNode(a.root).rect = geom.RectFromSize(geom.Point{}, newSize)
		a.size = newSize
		a.addFreeRect(a.root)
		return nil
	}

	old := a.size
	if newSize.Height > old.Height {
		a.wrapRoot(AxisHorizontal,
			geom.Rect{Max: geom.Point{X: old.Width, Y: newSize.Height}},
			geom.Rect{
				Min: geom.Point{X: 0, Y: old.Height},
				Max: geom.Point{X: old.Width, Y: newSize.Height},
			})
	}
	if newSize.Width > old.Width {
		a.wrapRoot(AxisVertical,
			geom.Rect{Max: geom.Point{X: newSize.Width, Y: newSize.Height}},
			geom.Rect{
				Min: geom.Point{X: old.Width, Y: 0},
				Max: geom.Point{X: newSize.Width, Y: newSize.Height},
			})
	}
	a.size = newSize

	if debugChecks {
		if err := a.validate(); err != nil {
			panic(err)
		}
	}
	return nil
}

// wrapRoot replaces the root with a container cut along ax whose first
// child is the old root and whose second child is a new free leaf.
func (a *Atlas) wrapRoot(ax Axis, containerRect, freeRect geom.Rect) {
	oldRoot := a.root
	container := a.nodes.Insert(node{
		kind:   KindContainer,
		split:  ax,
		rect:   containerRect,
		parent: arena.None,
		first:  oldRoot,
		second: arena.None,
		bucket: noBucket,
		slot:   -1,
	})
	leaf := a.nodes.Insert(newFreeLeaf(freeRect, container))
	a.mustNode(container).second = leaf
	a.mustNode(oldRoot).parent = container
	a.root = container
	a.addFreeRect(leaf)
}

// Shrink reduces the atlas to newSize. It succeeds only if no allocated
// rectangle extends beyond the new bounds; otherwise it fails with
// ErrDoesNotFit and changes nothing. Free space outside the bounds is
// discarded, and ids of surviving allocations remain valid.
func (a *Atlas) Shrink(newSize geom.Size) error {
	if newSize.IsEmpty() ||
		newSize.Width > a.size.Width || newSize.Height > a.size.Height {
		return ErrDoesNotFit
	}
	if newSize == a.size {
		return nil
	}

	bounds := geom.RectFromSize(geom.Point{}, newSize)
	fits := true
	a.ForEachAllocated(func(_ AllocId, r geom.Rect) {
		if !bounds.ContainsRect(r) {
			fits = false
		}
	})
	if !fits {
		return ErrDoesNotFit
	}

	a.stats.Shrinks++
	tracef("shrink %dx%d -> %dx%d", a.size.Width, a.size.Height, newSize.Width, newSize.Height)
	a.root = a.trimNode(a.root, bounds)
	a.size = newSize

	if debugChecks {
		if err := a.validate(); err != nil {
			panic(err)
		}
	}
	return nil
}

// trimNode clips the subtree at h to bounds and returns the handle now
// occupying h's position: h itself, a lifted child if h's second subtree
// fell entirely outside, or arena.None if the whole subtree did.
//
// Only free space may fall outside bounds; Shrink checks allocations
// beforehand.
func (a *Atlas) trimNode(h arena.Handle, bounds geom.Rect) arena.Handle {
	n := a.mustNode(h)
	r := n.rect
	if r.Min.X >= bounds.Max.X || r.Min.Y >= bounds.Max.Y {
		a.discardSubtree(h)
		return arena.None
	}
	clipped := r.Intersect(bounds)
	if clipped == r {
		return h
	}

	switch n.kind {
	case KindFree:
		a.removeFreeRect(h)
		n.rect = clipped
		a.addFreeRect(h)
		return h
	case KindContainer:
		if sh := a.trimNode(n.second, bounds); sh.IsNone() {
			// The cut lies outside the new bounds: the container
			// disappears and its first child takes its place.
			lifted := a.trimNode(n.first, bounds)
			ln := a.mustNode(lifted)
			ln.parent = n.parent
			if n.parent.IsSome() {
				pn := a.mustNode(n.parent)
				if pn.first == h {
					pn.first = lifted
				} else {
					pn.second = lifted
				}
			}
			a.nodes.Remove(h)
			return lifted
		}
		a.trimNode(n.first, bounds)
		n.rect = clipped
		return h
	default:
		panic(fmt.Errorf("%w: allocated leaf %v extends beyond shrink bounds", ErrCorrupted, h))
	}
}

// discardSubtree removes a fully-free subtree from the index and the arena.
func (a *Atlas) discardSubtree(h arena.Handle) {
	n := a.mustNode(h)
	switch n.kind {
	case KindFree:
		a.removeFreeRect(h)
	case KindContainer:
		a.discardSubtree(n.first)
		a.discardSubtree(n.second)
	default:
		panic(fmt.Errorf("%w: discarding allocated leaf %v", ErrCorrupted, h))
	}
	a.nodes.Remove(h)
}

// Rearrange repacks every allocation from scratch at the current size and
// returns the id remapping. All previous ids are invalid afterwards;
// allocations that no longer fit are reported in Failures.
func (a *Atlas) Rearrange() ChangeList {
	cl, _ := a.ResizeAndRearrange(a.size)
	return cl
}

// ResizeAndRearrange is Rearrange with a new atlas size. Items are placed
// in decreasing max-side order (ties by area) so large rectangles claim
// contiguous space first.
func (a *Atlas) ResizeAndRearrange(newSize geom.Size) (ChangeList, error) {
	if newSize.IsEmpty() {
		return ChangeList{}, ErrDoesNotFit
	}
	a.stats.Rearranges++

	var live []Allocation
	a.ForEachAllocated(func(id AllocId, r geom.Rect) {
		live = append(live, Allocation{ID: id, Rect: r})
	})
	sort.Slice(live, func(i, j int) bool {
		si, sj := live[i].Rect.Size(), live[j].Rect.Size()
		if si.MaxSide() != sj.MaxSide() {
			return si.MaxSide() > sj.MaxSide()
		}
		return si.Area() > sj.Area()
	})

	// Release every slot rather than starting a fresh arena: removal bumps
	// each slot's generation, so no pre-rearrange id can resolve again.
	var stale []arena.Handle
	a.nodes.ForEach(func(h arena.Handle, _ *node) {
		stale = append(stale, h)
	})
	for _, h := range stale {
		a.nodes.Remove(h)
	}
	for b := range a.freeLists {
		a.freeLists[b] = nil
	}
	a.size = newSize
	a.root = a.nodes.Insert(newFreeLeaf(geom.RectFromSize(geom.Point{}, newSize), arena.None))
	a.addFreeRect(a.root)

	var cl ChangeList
	for _, old := range live {
		alloc, err := a.Allocate(old.Rect.Size())
		if err != nil {
			cl.Failures = append(cl.Failures, old)
			continue
		}
		cl.Changes = append(cl.Changes, Change{Old: old, New: alloc})
	}
	return cl, nil
}
