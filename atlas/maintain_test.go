package atlas

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbrennan/atlaskit/atlas/geom"
)

func Test_GrowEmptyAtlas(t *testing.T) {
	a := newAtlas(t, 1000, 1000)

	require.NoError(t, a.Grow(size(2000, 2000)))
	requireValid(t, a)
	require.Equal(t, size(2000, 2000), a.Size())

	full := mustAlloc(t, a, 2000, 2000)
	_, err := a.Allocate(size(1, 1))
	require.ErrorIs(t, err, ErrNotEnoughSpace)
	mustDealloc(t, a, full.ID)
}

func Test_GrowPreservesAllocations(t *testing.T) {
	a := newAtlas(t, 1000, 1000)
	require.NoError(t, a.Grow(size(2000, 2000)))

	al := mustAlloc(t, a, 100, 100)

	require.NoError(t, a.Grow(size(3000, 3000)))
	requireValid(t, a)
	rect, err := a.Get(al.ID)
	require.NoError(t, err)
	require.Equal(t, al.Rect, rect, "grow must not move allocations")

	b := mustAlloc(t, a, 1000, 2900)

	require.NoError(t, a.Grow(size(4000, 4000)))
	requireValid(t, a)

	mustDealloc(t, a, b.ID)
	mustDealloc(t, a, al.ID)
	require.True(t, a.IsEmpty())

	full := mustAlloc(t, a, 4000, 4000)
	_, err = a.Allocate(size(1, 1))
	require.ErrorIs(t, err, ErrNotEnoughSpace)
	mustDealloc(t, a, full.ID)
}

func Test_GrowSingleAxis(t *testing.T) {
	a := newAtlas(t, 100, 100)
	al := mustAlloc(t, a, 100, 100)

	require.NoError(t, a.Grow(size(300, 100)))
	requireValid(t, a)
	b := mustAlloc(t, a, 200, 100)

	mustDealloc(t, a, al.ID)
	mustDealloc(t, a, b.ID)
	require.True(t, a.IsEmpty())
}

func Test_GrowRejectsSmallerSize(t *testing.T) {
	a := newAtlas(t, 100, 100)
	require.ErrorIs(t, a.Grow(size(50, 200)), ErrDoesNotFit)
	require.NoError(t, a.Grow(size(100, 100)), "same size is a no-op")
	requireValid(t, a)
}

func Test_ShrinkEmptyAtlas(t *testing.T) {
	a := newAtlas(t, 1000, 1000)

	require.NoError(t, a.Shrink(size(300, 400)))
	requireValid(t, a)
	require.Equal(t, size(300, 400), a.Size())
	require.True(t, a.IsEmpty())

	full := mustAlloc(t, a, 300, 400)
	mustDealloc(t, a, full.ID)
}

func Test_ShrinkKeepsFittingAllocations(t *testing.T) {
	a := newAtlas(t, 1000, 1000)

	al := mustAlloc(t, a, 100, 1000)
	b := mustAlloc(t, a, 900, 200)
	mustDealloc(t, a, al.ID)

	// b occupies (100,0)-(1000,200); everything below y=200 is free.
	require.NoError(t, a.Shrink(size(1000, 200)))
	requireValid(t, a)

	rect, err := a.Get(b.ID)
	require.NoError(t, err)
	require.Equal(t, b.Rect, rect)

	mustDealloc(t, a, b.ID)
	require.True(t, a.IsEmpty())
}

func Test_ShrinkRejectsTruncation(t *testing.T) {
	a := newAtlas(t, 1000, 1000)

	al := mustAlloc(t, a, 100, 1000)
	require.ErrorIs(t, a.Shrink(size(1000, 500)), ErrDoesNotFit)
	requireValid(t, a)
	require.Equal(t, size(1000, 1000), a.Size(), "failed shrink must not change state")

	rect, err := a.Get(al.ID)
	require.NoError(t, err)
	require.Equal(t, al.Rect, rect)
}

func Test_ShrinkRejectsLargerSize(t *testing.T) {
	a := newAtlas(t, 100, 100)
	require.ErrorIs(t, a.Shrink(size(200, 50)), ErrDoesNotFit)
	require.ErrorIs(t, a.Shrink(size(0, 50)), ErrDoesNotFit)
}

func Test_ShrinkThenGrowRoundTrip(t *testing.T) {
	a := newAtlas(t, 1024, 1024)

	al := mustAlloc(t, a, 64, 64)
	require.NoError(t, a.Shrink(size(128, 128)))
	requireValid(t, a)
	require.NoError(t, a.Grow(size(1024, 1024)))
	requireValid(t, a)

	mustDealloc(t, a, al.ID)
	require.True(t, a.IsEmpty())
}

func Test_RearrangeReducesFragmentation(t *testing.T) {
	a := newAtlas(t, 1000, 1000)

	// Fill with stripes and free every other one to fragment the atlas.
	var ids []AllocId
	for i := 0; i < 10; i++ {
		alloc := mustAlloc(t, a, 100, 1000)
		ids = append(ids, alloc.ID)
	}
	_, err := a.Allocate(size(1, 1))
	require.ErrorIs(t, err, ErrNotEnoughSpace)
	for i := 0; i < 10; i += 2 {
		mustDealloc(t, a, ids[i])
	}

	// Five stripes of 100x1000 remain; 500x1000 only fits contiguously.
	_, err = a.Allocate(size(500, 1000))
	require.ErrorIs(t, err, ErrNotEnoughSpace)

	cl := a.Rearrange()
	requireValid(t, a)
	require.Len(t, cl.Changes, 5)
	require.Empty(t, cl.Failures)

	// Old ids are invalid, the remapped ones resolve.
	for i := 1; i < 10; i += 2 {
		_, err := a.Get(ids[i])
		require.ErrorIs(t, err, ErrInvalidHandle)
	}
	for _, ch := range cl.Changes {
		rect, err := a.Get(ch.New.ID)
		require.NoError(t, err)
		require.Equal(t, ch.New.Rect, rect)
		require.Equal(t, ch.Old.Rect.Size(), ch.New.Rect.Size())
	}

	mustAlloc(t, a, 500, 1000)
}

func Test_ResizeAndRearrange(t *testing.T) {
	a := newAtlas(t, 100, 100)

	var ids []AllocId
	for i := 0; i < 4; i++ {
		alloc := mustAlloc(t, a, 50, 50)
		ids = append(ids, alloc.ID)
	}

	// Shrinking the atlas below the live area reports failures.
	cl, err := a.ResizeAndRearrange(size(50, 100))
	require.NoError(t, err)
	requireValid(t, a)
	require.Len(t, cl.Changes, 2)
	require.Len(t, cl.Failures, 2)

	// Growing fits everything again.
	cl, err = a.ResizeAndRearrange(size(200, 100))
	require.NoError(t, err)
	requireValid(t, a)
	require.Len(t, cl.Changes, 2)
	require.Empty(t, cl.Failures)

	_, err = a.ResizeAndRearrange(size(0, 10))
	require.ErrorIs(t, err, ErrDoesNotFit)
}

func Test_RearrangePlacesLargestFirst(t *testing.T) {
	a := newAtlas(t, 1000, 1000)

	small := mustAlloc(t, a, 10, 10)
	big := mustAlloc(t, a, 900, 900)

	cl := a.Rearrange()
	requireValid(t, a)
	require.Len(t, cl.Changes, 2)

	// The biggest rectangle is placed first, at the origin.
	require.Equal(t, big.Rect.Size(), cl.Changes[0].Old.Rect.Size())
	require.Equal(t, geom.Point{}, cl.Changes[0].New.Rect.Min)
	require.Equal(t, small.Rect.Size(), cl.Changes[1].Old.Rect.Size())
}
