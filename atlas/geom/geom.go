// Package geom provides the integer geometry primitives used by the atlas
// allocator: points, sizes and axis-aligned rectangles.
//
// Rectangles follow the inclusive-exclusive convention: Min is the top-left
// corner and belongs to the rectangle, Max does not. A rectangle is valid
// when Max.X > Min.X and Max.Y > Min.Y.
package geom

// Point is an integer position on the atlas grid.
type Point struct {
	X int32
	Y int32
}

// Size is the extent of a rectangle.
type Size struct {
	Width  int32
	Height int32
}

// Area returns Width*Height as an int64 to avoid overflow on large atlases.
func (s Size) Area() int64 {
	return int64(s.Width) * int64(s.Height)
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// MinSide returns the smaller of the two dimensions.
func (s Size) MinSide() int32 {
	if s.Width < s.Height {
		return s.Width
	}
	return s.Height
}

// MaxSide returns the larger of the two dimensions.
func (s Size) MaxSide() int32 {
	if s.Width > s.Height {
		return s.Width
	}
	return s.Height
}

// Rect is an axis-aligned rectangle with Min inclusive and Max exclusive.
type Rect struct {
	Min Point
	Max Point
}

// RectFromSize returns the rectangle with the given origin and size.
func RectFromSize(origin Point, s Size) Rect {
	return Rect{
		Min: origin,
		Max: Point{X: origin.X + s.Width, Y: origin.Y + s.Height},
	}
}

// Width returns Max.X - Min.X.
func (r Rect) Width() int32 {
	return r.Max.X - r.Min.X
}

// Height returns Max.Y - Min.Y.
func (r Rect) Height() int32 {
	return r.Max.Y - r.Min.Y
}

// Size returns the extent of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Area returns the surface of the rectangle.
func (r Rect) Area() int64 {
	return r.Size().Area()
}

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// ContainsRect reports whether o lies entirely within r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.Min.X >= r.Min.X && o.Min.Y >= r.Min.Y &&
		o.Max.X <= r.Max.X && o.Max.Y <= r.Max.Y
}

// Intersects reports whether r and o share any area.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Intersect returns the overlapping region of r and o. The result may be
// empty; check IsEmpty before using it.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Min: Point{X: maxI32(r.Min.X, o.Min.X), Y: maxI32(r.Min.Y, o.Min.Y)},
		Max: Point{X: minI32(r.Max.X, o.Max.X), Y: minI32(r.Max.Y, o.Max.Y)},
	}
	return out
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
