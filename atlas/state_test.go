package atlas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_StateRoundTrip(t *testing.T) {
	a := newAtlas(t, 1000, 1000)
	al := mustAlloc(t, a, 100, 200)
	b := mustAlloc(t, a, 300, 50)
	mustAlloc(t, a, 10, 10)
	mustDealloc(t, a, b.ID)

	restored, err := FromState(a.ExportState())
	require.NoError(t, err)
	requireValid(t, restored)

	require.Equal(t, a.Size(), restored.Size())
	require.Equal(t, a.Options(), restored.Options())

	// Ids survive the round trip.
	rect, err := restored.Get(al.ID)
	require.NoError(t, err)
	require.Equal(t, al.Rect, rect)
	_, err = restored.Get(b.ID)
	require.ErrorIs(t, err, ErrInvalidHandle)

	// The restored allocator behaves like the original.
	require.NoError(t, restored.Deallocate(al.ID))
	requireValid(t, restored)
}

func Test_FromStateRejectsBadState(t *testing.T) {
	a := newAtlas(t, 100, 100)
	mustAlloc(t, a, 40, 40)

	// Dangling child reference.
	st := a.ExportState()
	for i := range st.Nodes {
		if st.Nodes[i].Kind == KindContainer {
			st.Nodes[i].First = 999
		}
	}
	_, err := FromState(st)
	require.Error(t, err)

	// Rectangle that does not tile its container.
	st = a.ExportState()
	for i := range st.Nodes {
		if st.Nodes[i].Kind == KindAllocated {
			st.Nodes[i].Rect.Max.X += 3
		}
	}
	_, err = FromState(st)
	require.ErrorIs(t, err, ErrCorrupted)

	// Root missing.
	st = a.ExportState()
	st.Root = 12345
	_, err = FromState(st)
	require.ErrorIs(t, err, ErrCorrupted)
}
