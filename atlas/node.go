package atlas

import (
	"fmt"

	"github.com/mbrennan/atlaskit/atlas/geom"
	"github.com/mbrennan/atlaskit/internal/arena"
)

// NodeKind identifies what a tree node represents.
type NodeKind uint8

const (
	// KindFree is a leaf covering unclaimed space.
	KindFree NodeKind = iota
	// KindAllocated is a leaf covering space claimed by a caller.
	KindAllocated
	// KindContainer is an internal node binding two children via a cut.
	KindContainer
)

func (k NodeKind) String() string {
	switch k {
	case KindFree:
		return "free"
	case KindAllocated:
		return "allocated"
	case KindContainer:
		return "container"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

// Axis identifies the direction of a guillotine cut. A horizontal cut
// stacks the two children top and bottom; a vertical cut places them left
// and right.
type Axis uint8

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

func (x Axis) String() string {
	switch x {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(x))
	}
}

const noBucket = int8(-1)

// node is one entry of the guillotine tree.
//
// Containers use split, first and second. Free leaves use bucket and slot
// to remember their position in the free-list index, so removal is O(1).
type node struct {
	kind   NodeKind
	split  Axis
	rect   geom.Rect
	parent arena.Handle
	first  arena.Handle
	second arena.Handle
	bucket int8
	slot   int32
}

func newFreeLeaf(rect geom.Rect, parent arena.Handle) node {
	return node{
		kind:   KindFree,
		rect:   rect,
		parent: parent,
		first:  arena.None,
		second: arena.None,
		bucket: noBucket,
		slot:   -1,
	}
}
