package atlas

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbrennan/atlaskit/atlas/geom"
)

func Test_SplitHeuristicKeepsResidualSquare(t *testing.T) {
	// In a wide atlas the vertical-first split leaves a 900x500 residual
	// (smaller edge 500) versus horizontal-first's 1000x400 (smaller edge
	// 400), so vertical-first must win.
	a := newAtlas(t, 1000, 500)

	alloc := mustAlloc(t, a, 100, 100)
	require.Equal(t, geom.Point{}, alloc.Rect.Min)

	free := map[geom.Rect]bool{}
	a.ForEachFree(func(r geom.Rect) {
		free[r] = true
	})
	require.Len(t, free, 2)
	require.True(t, free[geom.Rect{
		Min: geom.Point{X: 100, Y: 0},
		Max: geom.Point{X: 1000, Y: 500},
	}], "expected the full-height right residual, got %v", free)
	require.True(t, free[geom.Rect{
		Min: geom.Point{X: 0, Y: 100},
		Max: geom.Point{X: 100, Y: 500},
	}], "expected the leftover below the allocation, got %v", free)
}

func Test_SplitTieBreakPreservesLongStrips(t *testing.T) {
	// In a square atlas both candidates score equally for a square
	// request, and both larger residuals span the atlas's long dimension,
	// so the final fallback picks horizontal-first: its larger residual
	// spans the full atlas width.
	a := newAtlas(t, 1000, 1000)

	mustAlloc(t, a, 60, 60)

	var widths []int32
	a.ForEachFree(func(r geom.Rect) {
		widths = append(widths, r.Width())
	})
	require.Contains(t, widths, int32(1000),
		"one residual should span the full atlas width")
}

func Test_ExactFitSkipsSplitting(t *testing.T) {
	a := newAtlas(t, 100, 100)

	alloc := mustAlloc(t, a, 100, 100)
	require.Equal(t, geom.RectFromSize(geom.Point{}, size(100, 100)), alloc.Rect)
	require.Zero(t, a.Stats().Splits)
}

func Test_SingleCutForFullWidthOrHeight(t *testing.T) {
	a := newAtlas(t, 100, 100)
	mustAlloc(t, a, 100, 40)
	require.Equal(t, 1, a.Stats().Splits)

	b := newAtlas(t, 100, 100)
	mustAlloc(t, b, 40, 100)
	require.Equal(t, 1, b.Stats().Splits)
}
