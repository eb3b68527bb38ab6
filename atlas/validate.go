package atlas

import (
	"fmt"

	"github.com/mbrennan/atlaskit/atlas/geom"
	"github.com/mbrennan/atlaskit/internal/arena"
)

// validate checks every structural invariant of the tree and the free-list
// index. It is used by tests after each mutation step and, when
// debugChecks is on, after every public operation. All failures wrap
// ErrCorrupted.
func (a *Atlas) validate() error {
	rootNode, ok := a.nodes.Get(a.root)
	if !ok {
		return fmt.Errorf("%w: root handle %v is dead", ErrCorrupted, a.root)
	}
	if rootNode.parent.IsSome() {
		return fmt.Errorf("%w: root has a parent", ErrCorrupted)
	}
	atlasRect := geom.RectFromSize(geom.Point{}, a.size)
	if rootNode.rect != atlasRect {
		return fmt.Errorf("%w: root rect %+v != atlas rect %+v", ErrCorrupted, rootNode.rect, atlasRect)
	}

	visited := 0
	freeLeaves := 0
	var err error
	a.walk(func(h arena.Handle, n *node) {
		if err != nil {
			return
		}
		visited++
		if n.rect.IsEmpty() {
			err = fmt.Errorf("%w: node %v has empty rect %+v", ErrCorrupted, h, n.rect)
			return
		}
		switch n.kind {
		case KindContainer:
			err = a.validateContainer(h, n)
		case KindFree:
			freeLeaves++
			err = a.validateFreeLeaf(h, n)
		case KindAllocated:
			if n.bucket != noBucket {
				err = fmt.Errorf("%w: allocated leaf %v is in bucket %d", ErrCorrupted, h, n.bucket)
			}
		default:
			err = fmt.Errorf("%w: node %v has kind %d", ErrCorrupted, h, n.kind)
		}
	})
	if err != nil {
		return err
	}

	if visited != a.nodes.Len() {
		return fmt.Errorf("%w: %d nodes reachable but arena holds %d", ErrCorrupted, visited, a.nodes.Len())
	}
	indexed := 0
	for b := range a.freeLists {
		indexed += len(a.freeLists[b])
	}
	if indexed != freeLeaves {
		return fmt.Errorf("%w: %d free leaves but %d bucket entries", ErrCorrupted, freeLeaves, indexed)
	}
	return nil
}

func (a *Atlas) validateContainer(h arena.Handle, n *node) error {
	fn, ok := a.nodes.Get(n.first)
	if !ok {
		return fmt.Errorf("%w: container %v first child %v is dead", ErrCorrupted, h, n.first)
	}
	sn, ok := a.nodes.Get(n.second)
	if !ok {
		return fmt.Errorf("%w: container %v second child %v is dead", ErrCorrupted, h, n.second)
	}
	if fn.parent != h || sn.parent != h {
		return fmt.Errorf("%w: container %v children do not point back", ErrCorrupted, h)
	}

	// The children must abut along the split axis and their union must
	// equal the container's rectangle.
	r, fr, sr := n.rect, fn.rect, sn.rect
	switch n.split {
	case AxisHorizontal:
		cut := fr.Max.Y
		if fr.Min != r.Min || fr.Max.X != r.Max.X ||
			sr.Min.X != r.Min.X || sr.Min.Y != cut || sr.Max != r.Max ||
			cut <= r.Min.Y || cut >= r.Max.Y {
			return fmt.Errorf("%w: container %v horizontal children %+v / %+v do not tile %+v",
				ErrCorrupted, h, fr, sr, r)
		}
	case AxisVertical:
		cut := fr.Max.X
		if fr.Min != r.Min || fr.Max.Y != r.Max.Y ||
			sr.Min.Y != r.Min.Y || sr.Min.X != cut || sr.Max != r.Max ||
			cut <= r.Min.X || cut >= r.Max.X {
			return fmt.Errorf("%w: container %v vertical children %+v / %+v do not tile %+v",
				ErrCorrupted, h, fr, sr, r)
		}
	default:
		return fmt.Errorf("%w: container %v has split %d", ErrCorrupted, h, n.split)
	}
	if n.bucket != noBucket {
		return fmt.Errorf("%w: container %v is in bucket %d", ErrCorrupted, h, n.bucket)
	}
	return nil
}

func (a *Atlas) validateFreeLeaf(h arena.Handle, n *node) error {
	b := int(n.bucket)
	if b < 0 || b >= numBuckets {
		return fmt.Errorf("%w: free leaf %v has bucket %d", ErrCorrupted, h, b)
	}
	if b != a.bucketForLeaf(n.rect.Size()) {
		return fmt.Errorf("%w: free leaf %v of size %+v in wrong bucket %d",
			ErrCorrupted, h, n.rect.Size(), b)
	}
	i := int(n.slot)
	if i < 0 || i >= len(a.freeLists[b]) || a.freeLists[b][i] != h {
		return fmt.Errorf("%w: free leaf %v cached position %d/%d is stale", ErrCorrupted, h, b, i)
	}
	return nil
}
