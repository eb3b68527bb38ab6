package atlas

import (
	"github.com/mbrennan/atlaskit/atlas/geom"
	"github.com/mbrennan/atlaskit/internal/arena"
)

// Stats holds allocator counters and a summary of the current occupancy.
// Counter fields accumulate over the atlas's lifetime; the derived fields
// (Allocated, FreeRects, areas, LargestFree) describe the state at the
// time of the Stats call.
type Stats struct {
	AllocCalls   int
	FailedAllocs int
	DeallocCalls int
	Splits       int
	Merges       int
	Grows        int
	Shrinks      int
	Rearranges   int

	Allocated     int
	FreeRects     int
	AllocatedArea int64
	FreeArea      int64
	LargestFree   geom.Size
}

// Stats returns a snapshot of the allocator's counters and occupancy.
func (a *Atlas) Stats() Stats {
	s := a.stats
	a.walk(func(_ arena.Handle, n *node) {
		switch n.kind {
		case KindAllocated:
			s.Allocated++
			s.AllocatedArea += n.rect.Area()
		case KindFree:
			s.FreeRects++
			s.FreeArea += n.rect.Area()
		}
	})
	_, s.LargestFree = a.largestFreeRect()
	return s
}
