package atlas

import (
	"fmt"

	"github.com/mbrennan/atlaskit/atlas/geom"
)

// Options tweak the behavior of the atlas allocator.
// Different presets can be tested to find the best performance versus
// fragmentation tradeoff for a given workload.
type Options struct {
	// Alignment rounds requested sizes up so that width is a multiple of
	// Alignment.Width and height a multiple of Alignment.Height.
	// Both must be positive.
	Alignment geom.Size

	// SmallSizeThreshold is the upper bound of the small free-list bucket.
	// A free rectangle whose larger edge is at most this value is stored
	// in the small bucket. Must not exceed LargeSizeThreshold.
	SmallSizeThreshold int32

	// LargeSizeThreshold is the upper bound of the medium free-list
	// bucket. Free rectangles whose larger edge exceeds it go to the
	// large bucket.
	LargeSizeThreshold int32
}

// Predefined option sets.
var (
	// DefaultOptions matches typical mixed-size icon/glyph workloads.
	DefaultOptions = Options{
		Alignment:          geom.Size{Width: 1, Height: 1},
		SmallSizeThreshold: 32,
		LargeSizeThreshold: 256,
	}

	// GlyphCacheOptions favors many small rectangles, as produced by text
	// rasterization.
	GlyphCacheOptions = Options{
		Alignment:          geom.Size{Width: 1, Height: 1},
		SmallSizeThreshold: 16,
		LargeSizeThreshold: 64,
	}

	// TileOptions suits workloads dominated by uniform power-of-two tiles.
	TileOptions = Options{
		Alignment:          geom.Size{Width: 8, Height: 8},
		SmallSizeThreshold: 64,
		LargeSizeThreshold: 512,
	}
)

func (o Options) validate() error {
	if o.Alignment.Width <= 0 || o.Alignment.Height <= 0 {
		return fmt.Errorf("%w: alignment must be positive, got %dx%d",
			ErrBadOptions, o.Alignment.Width, o.Alignment.Height)
	}
	if o.SmallSizeThreshold <= 0 || o.LargeSizeThreshold <= 0 {
		return fmt.Errorf("%w: size thresholds must be positive", ErrBadOptions)
	}
	if o.SmallSizeThreshold > o.LargeSizeThreshold {
		return fmt.Errorf("%w: small threshold %d exceeds large threshold %d",
			ErrBadOptions, o.SmallSizeThreshold, o.LargeSizeThreshold)
	}
	return nil
}

// alignUp rounds n up to the next multiple of align.
func alignUp(n, align int32) int32 {
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + align - rem
}

func (o Options) alignSize(s geom.Size) geom.Size {
	return geom.Size{
		Width:  alignUp(s.Width, o.Alignment.Width),
		Height: alignUp(s.Height, o.Alignment.Height),
	}
}
