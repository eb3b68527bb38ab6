// Package record wraps an atlas allocator with an operation log.
//
// The recorder hands out its own sequential ids and keeps them stable
// across Rearrange, which makes replaying and diffing captured workloads
// straightforward. Each recording session is tagged with a UUID so logs
// from different runs can be told apart. Logs serialize to YAML and can be
// replayed onto a fresh allocator with Replay.
package record

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mbrennan/atlaskit/atlas"
	"github.com/mbrennan/atlaskit/atlas/geom"
)

// Op names a recorded operation.
type Op string

const (
	OpAllocate        Op = "allocate"
	OpDeallocate      Op = "deallocate"
	OpGrow            Op = "grow"
	OpShrink          Op = "shrink"
	OpRearrange       Op = "rearrange"
	OpResizeRearrange Op = "resize-and-rearrange"
)

// Event is one recorded operation. Size is set for allocate, grow, shrink
// and resize-and-rearrange; ID for allocate (on success) and deallocate.
// OK records whether the operation succeeded.
type Event struct {
	Op   Op            `yaml:"op"`
	Size *geom.Size    `yaml:"size,omitempty"`
	ID   atlas.AllocId `yaml:"id,omitempty"`
	OK   bool          `yaml:"ok"`
}

// Log is the serialized form of a recording session.
type Log struct {
	Session string        `yaml:"session"`
	Size    geom.Size     `yaml:"size"`
	Options atlas.Options `yaml:"options"`
	Events  []Event       `yaml:"events"`
}

// Recorder is an atlas allocator that logs every mutating operation.
// Like Atlas itself it is not safe for concurrent use.
type Recorder struct {
	session uuid.UUID
	atlas   *atlas.Atlas
	size    geom.Size
	opts    atlas.Options
	events  []Event

	// ids maps the stable ids handed to the caller to the allocator's
	// current ids, which change on Rearrange.
	ids    map[atlas.AllocId]atlas.AllocId
	nextID uint64
}

// New creates a recording allocator. A nil opts uses atlas.DefaultOptions.
func New(size geom.Size, opts *atlas.Options) (*Recorder, error) {
	a, err := atlas.New(size, opts)
	if err != nil {
		return nil, err
	}
	return &Recorder{
		session: uuid.New(),
		atlas:   a,
		size:    size,
		opts:    a.Options(),
		ids:     make(map[atlas.AllocId]atlas.AllocId),
	}, nil
}

// Session returns the UUID tagging this recording.
func (r *Recorder) Session() uuid.UUID {
	return r.session
}

// Atlas exposes the underlying allocator for read-only inspection. Ids
// obtained from it are the allocator's own, not the recorder's stable ids.
func (r *Recorder) Atlas() *atlas.Atlas {
	return r.atlas
}

// Size returns the current atlas dimensions.
func (r *Recorder) Size() geom.Size {
	return r.atlas.Size()
}

// Allocate forwards to the allocator and records the outcome. The returned
// Allocation carries a recorder-stable id.
func (r *Recorder) Allocate(size geom.Size) (atlas.Allocation, error) {
	alloc, err := r.atlas.Allocate(size)
	ev := Event{Op: OpAllocate, Size: &size}
	if err == nil {
		stable := atlas.AllocId(r.nextID)
		r.nextID++
		r.ids[stable] = alloc.ID
		alloc.ID = stable
		ev.ID = stable
		ev.OK = true
	}
	r.events = append(r.events, ev)
	return alloc, err
}

// Deallocate releases a rectangle by its stable id.
func (r *Recorder) Deallocate(id atlas.AllocId) error {
	live, ok := r.ids[id]
	if !ok {
		return atlas.ErrInvalidHandle
	}
	if err := r.atlas.Deallocate(live); err != nil {
		return err
	}
	delete(r.ids, id)
	r.events = append(r.events, Event{Op: OpDeallocate, ID: id, OK: true})
	return nil
}

// Get returns the rectangle for a stable id.
func (r *Recorder) Get(id atlas.AllocId) (geom.Rect, error) {
	live, ok := r.ids[id]
	if !ok {
		return geom.Rect{}, atlas.ErrInvalidHandle
	}
	return r.atlas.Get(live)
}

// Grow enlarges the atlas and records the operation.
func (r *Recorder) Grow(size geom.Size) error {
	err := r.atlas.Grow(size)
	r.events = append(r.events, Event{Op: OpGrow, Size: &size, OK: err == nil})
	return err
}

// Shrink reduces the atlas and records the operation.
func (r *Recorder) Shrink(size geom.Size) error {
	err := r.atlas.Shrink(size)
	r.events = append(r.events, Event{Op: OpShrink, Size: &size, OK: err == nil})
	return err
}

// Rearrange repacks the atlas. Stable ids survive: the returned ChangeList
// is expressed in stable ids, with Old and New sharing the id and only the
// rectangles differing.
func (r *Recorder) Rearrange() atlas.ChangeList {
	cl := r.atlas.Rearrange()
	out := r.remap(cl)
	r.events = append(r.events, Event{Op: OpRearrange, OK: true})
	return out
}

// ResizeAndRearrange is Rearrange with a new atlas size.
func (r *Recorder) ResizeAndRearrange(size geom.Size) (atlas.ChangeList, error) {
	cl, err := r.atlas.ResizeAndRearrange(size)
	if err != nil {
		return atlas.ChangeList{}, err
	}
	out := r.remap(cl)
	r.events = append(r.events, Event{Op: OpResizeRearrange, Size: &size, OK: true})
	return out, nil
}

// remap rewrites a ChangeList into stable ids and updates the id table.
func (r *Recorder) remap(cl atlas.ChangeList) atlas.ChangeList {
	reverse := make(map[atlas.AllocId]atlas.AllocId, len(r.ids))
	for stable, live := range r.ids {
		reverse[live] = stable
	}

	var out atlas.ChangeList
	for _, ch := range cl.Changes {
		stable, ok := reverse[ch.Old.ID]
		if !ok {
			continue
		}
		r.ids[stable] = ch.New.ID
		out.Changes = append(out.Changes, atlas.Change{
			Old: atlas.Allocation{ID: stable, Rect: ch.Old.Rect},
			New: atlas.Allocation{ID: stable, Rect: ch.New.Rect},
		})
	}
	for _, f := range cl.Failures {
		stable, ok := reverse[f.ID]
		if !ok {
			continue
		}
		delete(r.ids, stable)
		out.Failures = append(out.Failures, atlas.Allocation{ID: stable, Rect: f.Rect})
	}
	return out
}

// Events returns the recorded operations so far.
func (r *Recorder) Events() []Event {
	return r.events
}

// Save serializes the recording session to w.
func (r *Recorder) Save(w io.Writer) error {
	log := Log{
		Session: r.session.String(),
		Size:    r.size,
		Options: r.opts,
		Events:  r.events,
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&log)
}

// Replay reads a session log from rd and applies every event to a fresh
// allocator. An event whose outcome differs from the recording (for
// example an allocate that succeeded when captured but fails now) aborts
// with an error, since that indicates the log does not match the options
// it was captured with.
func Replay(rd io.Reader) (*atlas.Atlas, error) {
	var log Log
	if err := yaml.NewDecoder(rd).Decode(&log); err != nil {
		return nil, fmt.Errorf("record: decode: %w", err)
	}
	if _, err := uuid.Parse(log.Session); err != nil {
		return nil, fmt.Errorf("record: bad session id %q: %w", log.Session, err)
	}

	opts := log.Options
	a, err := atlas.New(log.Size, &opts)
	if err != nil {
		return nil, err
	}
	ids := make(map[atlas.AllocId]atlas.AllocId)
	for i, ev := range log.Events {
		switch ev.Op {
		case OpAllocate:
			if ev.Size == nil {
				return nil, fmt.Errorf("record: event %d: allocate without size", i)
			}
			alloc, allocErr := a.Allocate(*ev.Size)
			if ev.OK != (allocErr == nil) {
				return nil, fmt.Errorf("record: event %d: allocate outcome diverged from log", i)
			}
			if allocErr == nil {
				ids[ev.ID] = alloc.ID
			}
		case OpDeallocate:
			live, ok := ids[ev.ID]
			if !ok {
				return nil, fmt.Errorf("record: event %d: deallocate of unknown id %v", i, ev.ID)
			}
			if err := a.Deallocate(live); err != nil {
				return nil, fmt.Errorf("record: event %d: %w", i, err)
			}
			delete(ids, ev.ID)
		case OpGrow:
			if ev.Size == nil {
				return nil, fmt.Errorf("record: event %d: grow without size", i)
			}
			if err := a.Grow(*ev.Size); ev.OK != (err == nil) {
				return nil, fmt.Errorf("record: event %d: grow outcome diverged from log", i)
			}
		case OpShrink:
			if ev.Size == nil {
				return nil, fmt.Errorf("record: event %d: shrink without size", i)
			}
			if err := a.Shrink(*ev.Size); ev.OK != (err == nil) {
				return nil, fmt.Errorf("record: event %d: shrink outcome diverged from log", i)
			}
		case OpRearrange:
			cl := a.Rearrange()
			applyReplayChanges(ids, cl)
		case OpResizeRearrange:
			if ev.Size == nil {
				return nil, fmt.Errorf("record: event %d: resize-and-rearrange without size", i)
			}
			cl, err := a.ResizeAndRearrange(*ev.Size)
			if err != nil {
				return nil, fmt.Errorf("record: event %d: %w", i, err)
			}
			applyReplayChanges(ids, cl)
		default:
			return nil, fmt.Errorf("record: event %d: unknown op %q", i, ev.Op)
		}
	}
	return a, nil
}

func applyReplayChanges(ids map[atlas.AllocId]atlas.AllocId, cl atlas.ChangeList) {
	reverse := make(map[atlas.AllocId]atlas.AllocId, len(ids))
	for stable, live := range ids {
		reverse[live] = stable
	}
	for _, ch := range cl.Changes {
		if stable, ok := reverse[ch.Old.ID]; ok {
			ids[stable] = ch.New.ID
		}
	}
	for _, f := range cl.Failures {
		if stable, ok := reverse[f.ID]; ok {
			delete(ids, stable)
		}
	}
}
