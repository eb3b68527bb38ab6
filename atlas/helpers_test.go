package atlas

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbrennan/atlaskit/atlas/geom"
)

// requireValid checks every invariant the allocator promises: internal
// structure, leaves pairwise disjoint and inside the atlas bounds, and the
// leaves tiling the whole region.
func requireValid(t *testing.T, a *Atlas) {
	t.Helper()
	require.NoError(t, a.validate())

	bounds := geom.RectFromSize(geom.Point{}, a.Size())
	var leaves []geom.Rect
	a.ForEachAllocated(func(_ AllocId, r geom.Rect) {
		leaves = append(leaves, r)
	})
	allocated := len(leaves)
	a.ForEachFree(func(r geom.Rect) {
		leaves = append(leaves, r)
	})

	var total int64
	for i, r := range leaves {
		require.False(t, r.IsEmpty(), "leaf %d is empty: %+v", i, r)
		require.True(t, bounds.ContainsRect(r), "leaf %d outside atlas: %+v", i, r)
		total += r.Area()
		for j := i + 1; j < len(leaves); j++ {
			require.False(t, r.Intersects(leaves[j]),
				"leaves overlap: %+v and %+v", r, leaves[j])
		}
	}
	require.Equal(t, bounds.Area(), total, "leaves do not tile the atlas")

	if allocated == 0 {
		require.True(t, a.IsEmpty())
	} else {
		require.False(t, a.IsEmpty())
	}
}

func mustAlloc(t *testing.T, a *Atlas, w, h int32) Allocation {
	t.Helper()
	alloc, err := a.Allocate(geom.Size{Width: w, Height: h})
	require.NoError(t, err)
	requireValid(t, a)
	return alloc
}

func mustDealloc(t *testing.T, a *Atlas, id AllocId) {
	t.Helper()
	require.NoError(t, a.Deallocate(id))
	requireValid(t, a)
}

func newAtlas(t *testing.T, w, h int32) *Atlas {
	t.Helper()
	a, err := New(geom.Size{Width: w, Height: h}, nil)
	require.NoError(t, err)
	requireValid(t, a)
	return a
}

func size(w, h int32) geom.Size {
	return geom.Size{Width: w, Height: h}
}
