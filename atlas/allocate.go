package atlas

import (
	"fmt"

	"github.com/mbrennan/atlaskit/atlas/geom"
	"github.com/mbrennan/atlaskit/internal/arena"
)

// Allocate claims a rectangle of the requested size. The size is rounded up
// to the configured alignment before all checks. On success the returned
// Allocation carries the id to deallocate with and the placed rectangle,
// which may be larger than requested due to alignment.
//
// Fails with ErrNotEnoughSpace if the request is empty, exceeds the atlas
// dimensions, or no free rectangle accommodates it. A failed call leaves
// the atlas unchanged.
func (a *Atlas) Allocate(requested geom.Size) (Allocation, error) {
	a.stats.AllocCalls++

	if requested.IsEmpty() {
		a.stats.FailedAllocs++
		return Allocation{}, ErrNotEnoughSpace
	}
	req := a.opts.alignSize(requested)
	if req.Width > a.size.Width || req.Height > a.size.Height {
		a.stats.FailedAllocs++
		return Allocation{}, ErrNotEnoughSpace
	}

	leaf := a.findSuitableRect(req)
	if leaf.IsNone() {
		tracef("allocate %dx%d: no suitable free rect", req.Width, req.Height)
		a.stats.FailedAllocs++
		return Allocation{}, ErrNotEnoughSpace
	}

	rect := a.mustNode(leaf).rect
	w, h := req.Width, req.Height
	full := rect.Size()

	// Subdivide the chosen leaf. The allocation always lands in the min
	// corner; up to two guillotine cuts carve out the exact-fit piece.
	switch {
	case w == full.Width && h == full.Height:
		// Perfect fit, no split.
	case w == full.Width:
		_, below := a.splitLeaf(leaf, AxisHorizontal, rect.Min.Y+h)
		a.addFreeRect(below)
	case h == full.Height:
		_, right := a.splitLeaf(leaf, AxisVertical, rect.Min.X+w)
		a.addFreeRect(right)
	default:
		if a.splitHorizontalFirst(full, req) {
			top, bottom := a.splitLeaf(leaf, AxisHorizontal, rect.Min.Y+h)
			a.addFreeRect(bottom)
			alloc, right := a.splitLeaf(top, AxisVertical, rect.Min.X+w)
			a.addFreeRect(right)
			leaf = alloc
		} else {
			left, right := a.splitLeaf(leaf, AxisVertical, rect.Min.X+w)
			a.addFreeRect(right)
			alloc, below := a.splitLeaf(left, AxisHorizontal, rect.Min.Y+h)
			a.addFreeRect(below)
			leaf = alloc
		}
	}

	leaf = a.markAllocated(leaf)
	n := a.mustNode(leaf)

	if debugChecks {
		if err := a.validate(); err != nil {
			panic(err)
		}
	}
	tracef("allocate %dx%d -> %v at %+v", req.Width, req.Height, allocID(leaf), n.rect)

	return Allocation{ID: allocID(leaf), Rect: n.rect}, nil
}

// markAllocated converts a Free leaf into an Allocated one under a fresh
// generation, so an id from an earlier occupant of the slot can never
// alias the new allocation. Returns the leaf's new handle.
func (a *Atlas) markAllocated(leaf arena.Handle) arena.Handle {
	renewed, ok := a.nodes.Renew(leaf)
	if !ok {
		panic(fmt.Errorf("%w: renewing dead leaf %v", ErrCorrupted, leaf))
	}
	n := a.mustNode(renewed)
	n.kind = KindAllocated
	n.bucket = noBucket
	n.slot = -1

	if n.parent.IsNone() {
		a.root = renewed
	} else {
		pn := a.mustNode(n.parent)
		if pn.first == leaf {
			pn.first = renewed
		} else {
			pn.second = renewed
		}
	}
	return renewed
}

// splitHorizontalFirst scores the two candidate guillotine subdivisions of
// a free rectangle of size full for a request of size req, and reports
// whether the horizontal-first (HV) order wins.
//
// Each candidate leaves two residual free rectangles; the score is the
// smaller edge of the larger residual. Maximizing it keeps the dominant
// residual as close to square as possible, which preserves large usable
// space across mixed-size workloads. Ties prefer the candidate whose
// larger residual spans the atlas's longer dimension, preserving long
// strips.
func (a *Atlas) splitHorizontalFirst(full, req geom.Size) bool {
	w, h := req.Width, req.Height

	// HV: horizontal cut first, allocation carved out of the top piece.
	hvResidual := largerResidual(
		geom.Size{Width: full.Width, Height: full.Height - h},
		geom.Size{Width: full.Width - w, Height: h},
	)
	// VH: vertical cut first, allocation carved out of the left piece.
	vhResidual := largerResidual(
		geom.Size{Width: full.Width - w, Height: full.Height},
		geom.Size{Width: w, Height: full.Height - h},
	)

	hvScore := hvResidual.MinSide()
	vhScore := vhResidual.MinSide()
	if hvScore != vhScore {
		return hvScore > vhScore
	}

	long := a.size.MaxSide()
	hvLong := hvResidual.MaxSide() == long
	vhLong := vhResidual.MaxSide() == long
	if hvLong != vhLong {
		return hvLong
	}
	return true
}

func largerResidual(x, y geom.Size) geom.Size {
	if y.Area() > x.Area() {
		return y
	}
	return x
}
