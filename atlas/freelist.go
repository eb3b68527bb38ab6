package atlas

import (
	"math"

	"github.com/mbrennan/atlaskit/atlas/geom"
	"github.com/mbrennan/atlaskit/internal/arena"
)

// The free-list index groups free leaves into three buckets keyed on the
// leaf's larger edge. A leaf that fits a request is at least as big as the
// request's larger edge along one axis, so starting the search at the
// request's own bucket and proceeding upward can never skip a fitting
// leaf. Buckets are unordered slices with O(1) push and O(1) swap-removal;
// each free leaf caches its bucket and position.
const (
	bucketSmall = iota
	bucketMedium
	bucketLarge
	numBuckets
)

func (a *Atlas) bucketForSize(s geom.Size) int {
	m := s.MaxSide()
	switch {
	case m <= a.opts.SmallSizeThreshold:
		return bucketSmall
	case m <= a.opts.LargeSizeThreshold:
		return bucketMedium
	default:
		return bucketLarge
	}
}

// bucketForLeaf classifies a free rectangle.
func (a *Atlas) bucketForLeaf(s geom.Size) int {
	return a.bucketForSize(s)
}

// bucketForRequest returns the bucket where the search for a fitting leaf
// starts. Membership in it is necessary but not sufficient; callers still
// confirm the fit on both axes.
func (a *Atlas) bucketForRequest(s geom.Size) int {
	return a.bucketForSize(s)
}

// addFreeRect inserts a free leaf into its bucket.
func (a *Atlas) addFreeRect(h arena.Handle) {
	n := a.mustNode(h)
	b := a.bucketForLeaf(n.rect.Size())
	n.bucket = int8(b)
	n.slot = int32(len(a.freeLists[b]))
	a.freeLists[b] = append(a.freeLists[b], h)
}

// removeFreeRect removes a free leaf from its bucket using the cached
// position. The vacated slot is filled by the bucket's last element.
func (a *Atlas) removeFreeRect(h arena.Handle) {
	n := a.mustNode(h)
	b, i := int(n.bucket), int(n.slot)
	list := a.freeLists[b]
	last := len(list) - 1
	if i != last {
		moved := list[last]
		list[i] = moved
		a.mustNode(moved).slot = int32(i)
	}
	a.freeLists[b] = list[:last]
	n.bucket = noBucket
	n.slot = -1
}

// findSuitableRect picks a free leaf for the request and removes it from
// its bucket. Buckets are searched upward from the request's own; the first
// bucket holding any fitting leaf supplies the result, and within it best
// fit minimizes waste area (an exact-area fit short-circuits the scan).
// Higher buckets are not compared. Returns arena.None when nothing fits.
func (a *Atlas) findSuitableRect(req geom.Size) arena.Handle {
	for b := a.bucketForRequest(req); b < numBuckets; b++ {
		bestIdx := -1
		bestWaste := int64(math.MaxInt64)
		for i, h := range a.freeLists[b] {
			n := a.mustNode(h)
			s := n.rect.Size()
			if s.Width < req.Width || s.Height < req.Height {
				continue
			}
			waste := s.Area() - req.Area()
			if waste < bestWaste {
				bestWaste = waste
				bestIdx = i
				if waste == 0 {
					break
				}
			}
		}
		if bestIdx >= 0 {
			h := a.freeLists[b][bestIdx]
			a.removeFreeRect(h)
			return h
		}
	}
	return arena.None
}

// largestFreeRect returns the free leaf with the largest area across all
// buckets, without removing it. Used by Stats.
func (a *Atlas) largestFreeRect() (arena.Handle, geom.Size) {
	best := arena.None
	var bestArea int64 = -1
	for b := range a.freeLists {
		for _, h := range a.freeLists[b] {
			s := a.mustNode(h).rect.Size()
			if area := s.Area(); area > bestArea {
				bestArea = area
				best = h
			}
		}
	}
	if best.IsNone() {
		return arena.None, geom.Size{}
	}
	return best, a.mustNode(best).rect.Size()
}
