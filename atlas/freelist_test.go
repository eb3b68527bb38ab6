package atlas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_BucketClassification(t *testing.T) {
	a := newAtlas(t, 4096, 4096)

	tests := []struct {
		w, h   int32
		bucket int
	}{
		{8, 8, bucketSmall},
		{32, 32, bucketSmall},
		{4, 32, bucketSmall},
		{33, 8, bucketMedium},
		{8, 33, bucketMedium},
		{256, 256, bucketMedium},
		{257, 8, bucketLarge},
		{1024, 1024, bucketLarge},
	}
	for _, tt := range tests {
		require.Equal(t, tt.bucket, a.bucketForLeaf(size(tt.w, tt.h)),
			"leaf %dx%d", tt.w, tt.h)
		require.Equal(t, tt.bucket, a.bucketForRequest(size(tt.w, tt.h)),
			"request %dx%d", tt.w, tt.h)
	}
}

func Test_CustomThresholds(t *testing.T) {
	opts := DefaultOptions
	opts.SmallSizeThreshold = 10
	opts.LargeSizeThreshold = 20
	a, err := New(size(100, 100), &opts)
	require.NoError(t, err)

	require.Equal(t, bucketSmall, a.bucketForLeaf(size(10, 10)))
	require.Equal(t, bucketMedium, a.bucketForLeaf(size(11, 11)))
	require.Equal(t, bucketLarge, a.bucketForLeaf(size(21, 4)))
}

func Test_BestFitPrefersTightestLeaf(t *testing.T) {
	a := newAtlas(t, 1000, 1000)

	// Carve out free leaves of different sizes: allocate a full column,
	// then sub-allocate to leave known holes.
	col := mustAlloc(t, a, 1000, 1000)
	mustDealloc(t, a, col.ID)

	big := mustAlloc(t, a, 1000, 600) // leaves a 1000x400 free strip
	mustAlloc(t, a, 100, 400)        // carves the strip down to 900x400
	mustDealloc(t, a, big.ID)        // frees a roomier 1000x600 leaf

	// Both free leaves fit 900x400; the exact 900x400 one at (100,600)
	// wastes nothing and must win over the 1000x600 leaf at the origin.
	alloc := mustAlloc(t, a, 900, 400)
	require.Equal(t, int32(900), alloc.Rect.Width())
	require.Equal(t, int32(100), alloc.Rect.Min.X)
	require.Equal(t, int32(600), alloc.Rect.Min.Y)
}

func Test_SearchFallsThroughToLargerBuckets(t *testing.T) {
	a := newAtlas(t, 1000, 1000)

	// The only free leaf is the root, which lives in the large bucket. A
	// small request must still find it.
	alloc := mustAlloc(t, a, 4, 4)
	require.Equal(t, int32(4), alloc.Rect.Width())
}

// A leaf whose smaller edge is below the request's larger edge can still
// fit when oriented right; the index must not skip it.
func Test_ElongatedLeafIsFound(t *testing.T) {
	a := newAtlas(t, 300, 300)

	// Fill the atlas, then free a 200x300 column.
	left := mustAlloc(t, a, 100, 300)
	right := mustAlloc(t, a, 200, 300)
	mustDealloc(t, a, right.ID)

	// Request 100x300: its larger edge (300) exceeds the free leaf's
	// smaller edge (200), but the leaf fits it.
	alloc := mustAlloc(t, a, 100, 300)
	require.Equal(t, int32(300), alloc.Rect.Height())

	mustDealloc(t, a, left.ID)
	mustDealloc(t, a, alloc.ID)
	require.True(t, a.IsEmpty())
}

func Test_FreeLeafPositionsStayConsistent(t *testing.T) {
	a := newAtlas(t, 2048, 2048)

	// Churn enough to exercise swap-removal in every bucket, validating
	// the cached positions after each step.
	var ids []AllocId
	for i := int32(1); i <= 40; i++ {
		alloc := mustAlloc(t, a, i*3, (41-i)*2)
		ids = append(ids, alloc.ID)
	}
	for i := 0; i < len(ids); i += 3 {
		mustDealloc(t, a, ids[i])
	}
	for i := int32(0); i < 10; i++ {
		mustAlloc(t, a, 50+i, 60)
	}
}

func Test_LargestFreeRect(t *testing.T) {
	a := newAtlas(t, 1000, 1000)

	h, s := a.largestFreeRect()
	require.True(t, h.IsSome())
	require.Equal(t, size(1000, 1000), s)

	mustAlloc(t, a, 600, 1000)
	_, s = a.largestFreeRect()
	require.Equal(t, size(400, 1000), s)
}
