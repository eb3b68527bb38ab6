package atlas

import (
	"fmt"
	"os"

	"github.com/mbrennan/atlaskit/atlas/geom"
	"github.com/mbrennan/atlaskit/internal/arena"
)

// Compile-time toggle for expensive structural checks after every mutation.
const debugChecks = false

// Runtime trace flag, controlled by the ATLASKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("ATLASKIT_LOG_ALLOC") != ""

// AllocId is a stable, generation-tagged handle to an allocated rectangle.
// It stays valid from Allocate until Deallocate or Rearrange; using it
// afterwards fails with ErrInvalidHandle.
type AllocId uint64

const idGenShift = 32

func (id AllocId) String() string {
	return fmt.Sprintf("%#x", uint64(id))
}

// Allocation is the result of a successful Allocate call.
type Allocation struct {
	ID   AllocId
	Rect geom.Rect
}

// Change maps an allocation before a rearrange to its new id and position.
type Change struct {
	Old Allocation
	New Allocation
}

// ChangeList reports the outcome of Rearrange and ResizeAndRearrange.
// Failures lists allocations that no longer fit; their old ids are invalid.
type ChangeList struct {
	Changes  []Change
	Failures []Allocation
}

// Atlas packs axis-aligned rectangles into a fixed region. See the package
// documentation for the data structure. Not safe for concurrent use.
type Atlas struct {
	nodes     *arena.Arena[node]
	root      arena.Handle
	freeLists [numBuckets][]arena.Handle
	size      geom.Size
	opts      Options
	stats     Stats
}

// New creates an atlas allocator of the given size. A nil opts uses
// DefaultOptions.
func New(size geom.Size, opts *Options) (*Atlas, error) {
	o := DefaultOptions
	if opts != nil {
		o = *opts
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if size.IsEmpty() {
		return nil, fmt.Errorf("%w: atlas size must be positive, got %dx%d",
			ErrBadOptions, size.Width, size.Height)
	}

	a := &Atlas{
		nodes: arena.New[node](),
		size:  size,
		opts:  o,
	}
	a.root = a.nodes.Insert(newFreeLeaf(geom.RectFromSize(geom.Point{}, size), arena.None))
	a.addFreeRect(a.root)
	return a, nil
}

// Size returns the current dimensions of the atlas.
func (a *Atlas) Size() geom.Size {
	return a.size
}

// Options returns the options the atlas was built with.
func (a *Atlas) Options() Options {
	return a.opts
}

// IsEmpty reports whether nothing is allocated. An empty atlas has a single
// free leaf covering the whole region.
func (a *Atlas) IsEmpty() bool {
	n := a.mustNode(a.root)
	return n.kind == KindFree
}

// Get returns the rectangle of an allocated id, or ErrInvalidHandle.
func (a *Atlas) Get(id AllocId) (geom.Rect, error) {
	_, n, err := a.allocatedNode(id)
	if err != nil {
		return geom.Rect{}, err
	}
	return n.rect, nil
}

// allocID packs a node handle into the public id form.
func allocID(h arena.Handle) AllocId {
	return AllocId(uint64(h.Index()) | uint64(h.Generation())<<idGenShift)
}

func handleFromID(id AllocId) arena.Handle {
	return arena.MakeHandle(uint32(id), uint32(id>>idGenShift))
}

// allocatedNode resolves id to a live Allocated leaf.
func (a *Atlas) allocatedNode(id AllocId) (arena.Handle, *node, error) {
	h := handleFromID(id)
	n, ok := a.nodes.Get(h)
	if !ok || n.kind != KindAllocated {
		return arena.None, nil, ErrInvalidHandle
	}
	return h, n, nil
}

// mustNode dereferences a handle that is known to be live. A failure here
// means an internal invariant is broken.
func (a *Atlas) mustNode(h arena.Handle) *node {
	n, ok := a.nodes.Get(h)
	if !ok {
		panic(fmt.Errorf("%w: dangling node handle %v", ErrCorrupted, h))
	}
	return n
}

func tracef(format string, args ...any) {
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[atlas] "+format+"\n", args...)
	}
}
