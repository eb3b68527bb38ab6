// Package snapshot persists atlas allocator state as a YAML document.
//
// The document names the atlas dimensions, the construction options, and
// every node with its kind, rectangle, parent and (for containers) the cut
// axis and children. Generations are stored per node, so allocation ids
// remain valid across a save/load round trip. The free-list index is not
// stored; it is rebuilt on load.
package snapshot

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mbrennan/atlaskit/atlas"
	"github.com/mbrennan/atlaskit/atlas/geom"
)

// Version identifies the document layout. Loaders reject documents with a
// version they do not understand.
const Version = 1

type document struct {
	Version int        `yaml:"version"`
	Size    sizeDoc    `yaml:"size"`
	Options optionsDoc `yaml:"options"`
	Root    uint32     `yaml:"root"`
	Slots   uint32     `yaml:"slots"`
	Nodes   []nodeDoc  `yaml:"nodes"`
}

type sizeDoc struct {
	Width  int32 `yaml:"width"`
	Height int32 `yaml:"height"`
}

type optionsDoc struct {
	AlignWidth         int32 `yaml:"align_width"`
	AlignHeight        int32 `yaml:"align_height"`
	SmallSizeThreshold int32 `yaml:"small_size_threshold"`
	LargeSizeThreshold int32 `yaml:"large_size_threshold"`
}

type nodeDoc struct {
	Index      uint32   `yaml:"index"`
	Generation uint32   `yaml:"generation"`
	Kind       string   `yaml:"kind"`
	Rect       [4]int32 `yaml:"rect,flow"`
	Parent     int64    `yaml:"parent"`
	Axis       string   `yaml:"axis,omitempty"`
	First      int64    `yaml:"first"`
	Second     int64    `yaml:"second"`
}

// Save writes the allocator state to w.
func Save(w io.Writer, a *atlas.Atlas) error {
	st := a.ExportState()
	doc := document{
		Version: Version,
		Size:    sizeDoc{Width: st.Size.Width, Height: st.Size.Height},
		Options: optionsDoc{
			AlignWidth:         st.Options.Alignment.Width,
			AlignHeight:        st.Options.Alignment.Height,
			SmallSizeThreshold: st.Options.SmallSizeThreshold,
			LargeSizeThreshold: st.Options.LargeSizeThreshold,
		},
		Root:  st.Root,
		Slots: st.SlotCount,
	}
	for _, n := range st.Nodes {
		nd := nodeDoc{
			Index:      n.Index,
			Generation: n.Generation,
			Kind:       n.Kind.String(),
			Rect:       [4]int32{n.Rect.Min.X, n.Rect.Min.Y, n.Rect.Max.X, n.Rect.Max.Y},
			Parent:     n.Parent,
			First:      n.First,
			Second:     n.Second,
		}
		if n.Kind == atlas.KindContainer {
			nd.Axis = n.Split.String()
		}
		doc.Nodes = append(doc.Nodes, nd)
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&doc)
}

// Load reads an allocator state from r and reconstructs the atlas. The
// state is fully validated; inconsistent documents fail with
// atlas.ErrCorrupted.
func Load(r io.Reader) (*atlas.Atlas, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("snapshot: unsupported version %d", doc.Version)
	}

	st := atlas.State{
		Size: geom.Size{Width: doc.Size.Width, Height: doc.Size.Height},
		Options: atlas.Options{
			Alignment: geom.Size{
				Width:  doc.Options.AlignWidth,
				Height: doc.Options.AlignHeight,
			},
			SmallSizeThreshold: doc.Options.SmallSizeThreshold,
			LargeSizeThreshold: doc.Options.LargeSizeThreshold,
		},
		Root:      doc.Root,
		SlotCount: doc.Slots,
	}
	for _, nd := range doc.Nodes {
		kind, err := parseKind(nd.Kind)
		if err != nil {
			return nil, err
		}
		ns := atlas.NodeState{
			Index:      nd.Index,
			Generation: nd.Generation,
			Kind:       kind,
			Rect: geom.Rect{
				Min: geom.Point{X: nd.Rect[0], Y: nd.Rect[1]},
				Max: geom.Point{X: nd.Rect[2], Y: nd.Rect[3]},
			},
			Parent: nd.Parent,
			First:  nd.First,
			Second: nd.Second,
		}
		if kind == atlas.KindContainer {
			if ns.Split, err = parseAxis(nd.Axis); err != nil {
				return nil, err
			}
		}
		st.Nodes = append(st.Nodes, ns)
	}
	return atlas.FromState(st)
}

// SaveFile writes the allocator state to path, replacing any existing file.
func SaveFile(path string, a *atlas.Atlas) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, a); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads an allocator state from path.
func LoadFile(path string) (*atlas.Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func parseKind(s string) (atlas.NodeKind, error) {
	switch s {
	case atlas.KindFree.String():
		return atlas.KindFree, nil
	case atlas.KindAllocated.String():
		return atlas.KindAllocated, nil
	case atlas.KindContainer.String():
		return atlas.KindContainer, nil
	default:
		return 0, fmt.Errorf("snapshot: unknown node kind %q", s)
	}
}

func parseAxis(s string) (atlas.Axis, error) {
	switch s {
	case atlas.AxisHorizontal.String():
		return atlas.AxisHorizontal, nil
	case atlas.AxisVertical.String():
		return atlas.AxisVertical, nil
	default:
		return 0, fmt.Errorf("snapshot: unknown axis %q", s)
	}
}
