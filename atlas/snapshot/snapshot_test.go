package snapshot

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbrennan/atlaskit/atlas"
	"github.com/mbrennan/atlaskit/atlas/geom"
)

func newAtlas(t *testing.T) *atlas.Atlas {
	t.Helper()
	a, err := atlas.New(geom.Size{Width: 1000, Height: 1000}, nil)
	require.NoError(t, err)
	return a
}

func Test_RoundTrip(t *testing.T) {
	a := newAtlas(t)
	first, err := a.Allocate(geom.Size{Width: 100, Height: 200})
	require.NoError(t, err)
	second, err := a.Allocate(geom.Size{Width: 300, Height: 40})
	require.NoError(t, err)
	require.NoError(t, a.Deallocate(second.ID))

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, a))

	restored, err := Load(&buf)
	require.NoError(t, err)
	require.Equal(t, a.Size(), restored.Size())

	rect, err := restored.Get(first.ID)
	require.NoError(t, err)
	require.Equal(t, first.Rect, rect)

	_, err = restored.Get(second.ID)
	require.ErrorIs(t, err, atlas.ErrInvalidHandle)
}

func Test_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.yaml")

	a := newAtlas(t)
	alloc, err := a.Allocate(geom.Size{Width: 64, Height: 64})
	require.NoError(t, err)
	require.NoError(t, SaveFile(path, a))

	restored, err := LoadFile(path)
	require.NoError(t, err)
	rect, err := restored.Get(alloc.ID)
	require.NoError(t, err)
	require.Equal(t, alloc.Rect, rect)
}

func Test_DocumentShape(t *testing.T) {
	a := newAtlas(t)
	_, err := a.Allocate(geom.Size{Width: 128, Height: 128})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, a))
	doc := buf.String()

	require.Contains(t, doc, "version: 1")
	require.Contains(t, doc, "kind: allocated")
	require.Contains(t, doc, "kind: container")
	require.Contains(t, doc, "kind: free")
	require.Contains(t, doc, "axis:")
}

func Test_LoadRejectsBadDocuments(t *testing.T) {
	_, err := Load(strings.NewReader("version: 99\n"))
	require.Error(t, err)

	_, err = Load(strings.NewReader("not yaml: ["))
	require.Error(t, err)

	_, err = Load(strings.NewReader(`version: 1
size: {width: 100, height: 100}
options: {align_width: 1, align_height: 1, small_size_threshold: 32, large_size_threshold: 256}
root: 0
slots: 1
nodes:
  - {index: 0, generation: 0, kind: gremlin, rect: [0, 0, 100, 100], parent: -1, first: -1, second: -1}
`))
	require.ErrorContains(t, err, "unknown node kind")
}
