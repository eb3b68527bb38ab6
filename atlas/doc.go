// Package atlas implements a dynamic 2D rectangle allocator for texture
// atlases using the guillotine algorithm.
//
// # Overview
//
// An Atlas packs axis-aligned rectangles of arbitrary size into a fixed
// rectangular region, supports deallocation, and coalesces adjacent free
// space back into larger free rectangles. The primary use is GPU texture
// atlases where many small sub-images share one texture and are added and
// removed at interactive rates.
//
// The allocator maintains a binary guillotine tree: each container node
// records a single straight cut along one axis, and each leaf is either a
// free or an allocated rectangle. Free leaves are indexed in a small set of
// size buckets so that allocation does not have to scan every free
// rectangle, and deallocation merges sibling pairs walking up the tree, so
// coalescing never visits more nodes than the depth of the tree.
//
// # Usage
//
//	a, err := atlas.New(geom.Size{Width: 1024, Height: 1024}, nil)
//	if err != nil {
//	    return err
//	}
//
//	alloc, err := a.Allocate(geom.Size{Width: 64, Height: 48})
//	if err != nil {
//	    // atlas.ErrNotEnoughSpace: the caller decides whether to grow,
//	    // rearrange, or evict.
//	    return err
//	}
//
//	// Upload pixels to alloc.Rect, keep alloc.ID around...
//
//	if err := a.Deallocate(alloc.ID); err != nil {
//	    return err
//	}
//
// # Handles
//
// AllocId values are stable, generation-tagged handles. A deallocated id
// no longer names an allocated leaf, and a slot's generation is bumped
// whenever it is reused for a new allocation or released by a merge, so a
// stale id fails with ErrInvalidHandle instead of corrupting state or
// aliasing a later allocation.
//
// # Maintenance
//
// Grow enlarges the atlas in place, preserving all outstanding ids. Shrink
// discards free space outside the new bounds and fails with ErrDoesNotFit
// if any allocation would be truncated. Rearrange repacks everything from
// scratch and reports the id remapping in a ChangeList.
//
// # Thread safety
//
// Atlas instances are not safe for concurrent use. Callers must serialize
// access externally.
package atlas
