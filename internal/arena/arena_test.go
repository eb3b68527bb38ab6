package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_InsertGet(t *testing.T) {
	a := New[string]()
	h1 := a.Insert("first")
	h2 := a.Insert("second")
	require.NotEqual(t, h1, h2)
	require.Equal(t, 2, a.Len())

	v, ok := a.Get(h1)
	require.True(t, ok)
	require.Equal(t, "first", *v)

	v, ok = a.Get(h2)
	require.True(t, ok)
	require.Equal(t, "second", *v)
}

func Test_RemoveInvalidatesHandle(t *testing.T) {
	a := New[int]()
	h := a.Insert(42)
	require.True(t, a.Remove(h))
	require.Equal(t, 0, a.Len())

	_, ok := a.Get(h)
	require.False(t, ok)
	require.False(t, a.Remove(h), "double remove must fail")
}

func Test_RecycledSlotGetsNewGeneration(t *testing.T) {
	a := New[int]()
	h1 := a.Insert(1)
	require.True(t, a.Remove(h1))

	h2 := a.Insert(2)
	require.Equal(t, h1.Index(), h2.Index(), "slot should be recycled")
	require.NotEqual(t, h1, h2, "generation must differ")

	_, ok := a.Get(h1)
	require.False(t, ok, "stale handle must not resolve")
	v, ok := a.Get(h2)
	require.True(t, ok)
	require.Equal(t, 2, *v)
}

func Test_Renew(t *testing.T) {
	a := New[int]()
	h := a.Insert(7)
	renewed, ok := a.Renew(h)
	require.True(t, ok)
	require.Equal(t, h.Index(), renewed.Index())
	require.NotEqual(t, h, renewed)

	_, ok = a.Get(h)
	require.False(t, ok, "old handle must be stale after renew")
	v, ok := a.Get(renewed)
	require.True(t, ok)
	require.Equal(t, 7, *v)

	_, ok = a.Renew(h)
	require.False(t, ok, "renewing a stale handle must fail")
}

func Test_NoneHandle(t *testing.T) {
	a := New[int]()
	require.True(t, None.IsNone())
	_, ok := a.Get(None)
	require.False(t, ok)
	require.False(t, a.Remove(None))
}

func Test_ForEach(t *testing.T) {
	a := New[int]()
	h1 := a.Insert(1)
	a.Insert(2)
	h3 := a.Insert(3)
	require.True(t, a.Remove(h1))

	seen := map[int]bool{}
	a.ForEach(func(h Handle, v *int) {
		seen[*v] = true
	})
	require.Equal(t, map[int]bool{2: true, 3: true}, seen)

	v, ok := a.Get(h3)
	require.True(t, ok)
	require.Equal(t, 3, *v)
}

func Test_Rebuild(t *testing.T) {
	a, err := Rebuild(4, []Entry[string]{
		{Index: 0, Generation: 3, Value: "root"},
		{Index: 2, Generation: 1, Value: "leaf"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, a.Len())
	require.Equal(t, 4, a.Cap())

	v, ok := a.Get(MakeHandle(0, 3))
	require.True(t, ok)
	require.Equal(t, "root", *v)

	_, ok = a.Get(MakeHandle(0, 2))
	require.False(t, ok, "wrong generation must not resolve")
	_, ok = a.Get(MakeHandle(1, 0))
	require.False(t, ok, "dead slot must not resolve")

	// Dead slots are recycled low-index first, like a fresh arena.
	h := a.Insert("new")
	require.Equal(t, uint32(1), h.Index())
}

func Test_RebuildRejectsBadEntries(t *testing.T) {
	_, err := Rebuild(2, []Entry[int]{{Index: 5, Value: 1}})
	require.Error(t, err)

	_, err = Rebuild(2, []Entry[int]{
		{Index: 0, Value: 1},
		{Index: 0, Value: 2},
	})
	require.Error(t, err)
}
