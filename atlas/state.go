package atlas

import (
	"fmt"

	"github.com/mbrennan/atlaskit/atlas/geom"
	"github.com/mbrennan/atlaskit/internal/arena"
)

// NodeState is the serializable form of one tree node. Child and parent
// references are slot indexes (-1 for none); generations are carried per
// node so allocation ids survive a save/load round trip.
type NodeState struct {
	Index      uint32
	Generation uint32
	Kind       NodeKind
	Rect       geom.Rect
	Parent     int64
	Split      Axis
	First      int64
	Second     int64
}

// State is a full, serializable description of an atlas. It contains
// everything needed to reconstruct the allocator: size, options, and every
// live node. The free-list index is rebuilt on import rather than stored.
type State struct {
	Size      geom.Size
	Options   Options
	Root      uint32
	SlotCount uint32
	Nodes     []NodeState
}

// AllocID returns the public allocation id of an Allocated node state.
func (ns NodeState) AllocID() AllocId {
	return allocID(arena.MakeHandle(ns.Index, ns.Generation))
}

func refOf(h arena.Handle) int64 {
	if h.IsNone() {
		return -1
	}
	return int64(h.Index())
}

// ExportState captures the current allocator state.
func (a *Atlas) ExportState() State {
	s := State{
		Size:      a.size,
		Options:   a.opts,
		Root:      a.root.Index(),
		SlotCount: uint32(a.nodes.Cap()),
	}
	a.walk(func(h arena.Handle, n *node) {
		s.Nodes = append(s.Nodes, NodeState{
			Index:      h.Index(),
			Generation: h.Generation(),
			Kind:       n.kind,
			Rect:       n.rect,
			Parent:     refOf(n.parent),
			Split:      n.split,
			First:      refOf(n.first),
			Second:     refOf(n.second),
		})
	})
	return s
}

// FromState reconstructs an allocator from a previously exported state.
// The result is fully validated; a state that does not describe a
// consistent tree fails with ErrCorrupted.
func FromState(s State) (*Atlas, error) {
	if err := s.Options.validate(); err != nil {
		return nil, err
	}
	if s.Size.IsEmpty() {
		return nil, fmt.Errorf("%w: state size %dx%d", ErrBadOptions, s.Size.Width, s.Size.Height)
	}

	gens := make(map[uint32]uint32, len(s.Nodes))
	for _, ns := range s.Nodes {
		if _, dup := gens[ns.Index]; dup {
			return nil, fmt.Errorf("%w: duplicate node index %d", ErrCorrupted, ns.Index)
		}
		gens[ns.Index] = ns.Generation
	}
	ref := func(idx int64) (arena.Handle, error) {
		if idx < 0 {
			return arena.None, nil
		}
		gen, ok := gens[uint32(idx)]
		if !ok {
			return arena.None, fmt.Errorf("%w: reference to unknown node %d", ErrCorrupted, idx)
		}
		return arena.MakeHandle(uint32(idx), gen), nil
	}

	entries := make([]arena.Entry[node], 0, len(s.Nodes))
	for _, ns := range s.Nodes {
		parent, err := ref(ns.Parent)
		if err != nil {
			return nil, err
		}
		first, err := ref(ns.First)
		if err != nil {
			return nil, err
		}
		second, err := ref(ns.Second)
		if err != nil {
			return nil, err
		}
		if ns.Kind == KindContainer && (first.IsNone() || second.IsNone()) {
			return nil, fmt.Errorf("%w: container %d is missing a child", ErrCorrupted, ns.Index)
		}
		entries = append(entries, arena.Entry[node]{
			Index:      ns.Index,
			Generation: ns.Generation,
			Value: node{
				kind:   ns.Kind,
				split:  ns.Split,
				rect:   ns.Rect,
				parent: parent,
				first:  first,
				second: second,
				bucket: noBucket,
				slot:   -1,
			},
		})
	}

	nodes, err := arena.Rebuild(s.SlotCount, entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	rootGen, ok := gens[s.Root]
	if !ok {
		return nil, fmt.Errorf("%w: root index %d not present", ErrCorrupted, s.Root)
	}

	a := &Atlas{
		nodes: nodes,
		root:  arena.MakeHandle(s.Root, rootGen),
		size:  s.Size,
		opts:  s.Options,
	}

	// Reject cyclic or partially-connected states before walking the tree
	// anywhere else; validate() assumes an acyclic tree.
	if err := a.checkReachable(); err != nil {
		return nil, err
	}
	for _, ns := range s.Nodes {
		if ns.Kind == KindFree {
			a.addFreeRect(arena.MakeHandle(ns.Index, ns.Generation))
		}
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// checkReachable verifies that every live node is reachable from the root
// exactly once.
func (a *Atlas) checkReachable() error {
	seen := make(map[uint32]bool, a.nodes.Len())
	stack := []arena.Handle{a.root}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := a.nodes.Get(h)
		if !ok {
			return fmt.Errorf("%w: dangling reference %v", ErrCorrupted, h)
		}
		if seen[h.Index()] {
			return fmt.Errorf("%w: node %v reachable twice", ErrCorrupted, h)
		}
		seen[h.Index()] = true
		if n.kind == KindContainer {
			stack = append(stack, n.second, n.first)
		}
	}
	if len(seen) != a.nodes.Len() {
		return fmt.Errorf("%w: %d of %d nodes reachable from root", ErrCorrupted, len(seen), a.nodes.Len())
	}
	return nil
}
