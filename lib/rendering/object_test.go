package rendering_test

import (
	"testing"

	"github.com/fosdem/trigon/lib/rendering"
	"github.com/fosdem/trigon/lib/rendering/renderconsts"
	"github.com/fosdem/trigon/lib/rendering/renderingtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bottomTriangle = []rendering.Vertex{
	{-1, -1, 0},
	{1, -1, 0},
	{0, 0, 0},
}

func newRenderable(t *testing.T, rec *renderingtest.Recorder, program *rendering.Program) *rendering.Object {
	t.Helper()
	obj := rendering.NewObject("bottom", rec, 3, renderconsts.Triangles)
	require.NoError(t, obj.Init())
	require.NoError(t, obj.SetData(bottomTriangle))
	require.NoError(t, obj.SetShaders(program))
	return obj
}

func TestObjectLifecycle(t *testing.T) {
	rec := renderingtest.New()
	program := rendering.NewProgram("red", rec, 42)
	obj := rendering.NewObject("bottom", rec, 3, renderconsts.Triangles)
	assert.Equal(t, rendering.Uninitialized, obj.State())

	require.NoError(t, obj.Init())
	assert.Equal(t, rendering.Initialized, obj.State())

	require.NoError(t, obj.SetData(bottomTriangle))
	assert.Equal(t, rendering.Initialized, obj.State())

	require.NoError(t, obj.SetShaders(program))
	assert.Equal(t, rendering.Renderable, obj.State())
	assert.Equal(t, 1, program.Refs())

	require.NoError(t, obj.Render())
	require.NoError(t, obj.Render())

	require.NoError(t, obj.Cleanup())
	assert.Equal(t, rendering.Destroyed, obj.State())
	assert.ErrorIs(t, obj.Render(), rendering.ErrInvalidState)
	assert.ErrorIs(t, obj.Init(), rendering.ErrInvalidState)
}

func TestObjectInitBindsBuffers(t *testing.T) {
	rec := renderingtest.New()
	obj := rendering.NewObject("bottom", rec, 3, renderconsts.Triangles)
	require.NoError(t, obj.Init())

	assert.Equal(t, []string{
		"GenVertexArray() = 1",
		"BindVertexArray(1)",
		"GenBuffer() = 2",
		"BindArrayBuffer(2)",
	}, rec.Calls)
}

func TestObjectUploadSize(t *testing.T) {
	rec := renderingtest.New()
	obj := rendering.NewObject("bottom", rec, 3, renderconsts.Triangles)
	require.NoError(t, obj.Init())
	require.NoError(t, obj.SetData(bottomTriangle))

	require.Len(t, rec.Uploads, 1)
	assert.Equal(t, 3*3*4, rec.Uploads[0].Size)
	assert.Equal(t, []float32{-1, -1, 0, 1, -1, 0, 0, 0, 0}, rec.Uploads[0].Data)
}

func TestObjectSizeMismatch(t *testing.T) {
	rec := renderingtest.New()
	obj := rendering.NewObject("bottom", rec, 3, renderconsts.Triangles)
	require.NoError(t, obj.Init())

	err := obj.SetData(bottomTriangle[:2])
	assert.ErrorIs(t, err, rendering.ErrSizeMismatch)

	err = obj.SetData(append(bottomTriangle, rendering.Vertex{1, 1, 0}))
	assert.ErrorIs(t, err, rendering.ErrSizeMismatch)

	assert.Empty(t, rec.Uploads)
}

func TestObjectRenderDrawsVertexCount(t *testing.T) {
	rec := renderingtest.New()
	program := rendering.NewProgram("red", rec, 42)
	obj := newRenderable(t, rec, program)
	rec.Reset()

	require.NoError(t, obj.Render())

	require.Len(t, rec.Draws, 1)
	draw := rec.Draws[0]
	assert.Equal(t, int32(3), draw.Count)
	assert.Equal(t, int32(0), draw.First)
	assert.Equal(t, renderconsts.Triangles, draw.Mode)
	assert.Equal(t, uint32(42), draw.Program)
	assert.False(t, rec.AttribEnabled(0))
	assert.Equal(t, []string{
		"BindVertexArray(1)",
		"BindArrayBuffer(2)",
		"UseProgram(42)",
		"EnableVertexAttribArray(0)",
		"VertexAttribPointer(0, 3, 0, 0)",
		"DrawArrays(triangles, 0, 3)",
		"DisableVertexAttribArray(0)",
	}, rec.Calls)
}

func TestObjectRenderUsesLatestData(t *testing.T) {
	rec := renderingtest.New()
	obj := newRenderable(t, rec, rendering.NewProgram("red", rec, 42))

	top := []rendering.Vertex{{-1, 1, 0}, {1, 1, 0}, {0, 0, 0}}
	require.NoError(t, obj.SetData(top))
	require.NoError(t, obj.Render())

	require.Len(t, rec.Draws, 1)
	assert.Equal(t, []float32{-1, 1, 0, 1, 1, 0, 0, 0, 0}, rec.Draws[0].Data)
}

func TestObjectRenderBeforeConfigured(t *testing.T) {
	rec := renderingtest.New()
	obj := rendering.NewObject("bottom", rec, 3, renderconsts.Triangles)
	assert.ErrorIs(t, obj.Render(), rendering.ErrInvalidState)

	require.NoError(t, obj.Init())
	require.NoError(t, obj.SetData(bottomTriangle))
	assert.ErrorIs(t, obj.Render(), rendering.ErrInvalidState)

	assert.ErrorIs(t, rendering.NewObject("x", rec, 3, renderconsts.Triangles).SetData(bottomTriangle), rendering.ErrInvalidState)
	assert.Empty(t, rec.Draws)
}

func TestObjectCleanupOnce(t *testing.T) {
	rec := renderingtest.New()
	program := rendering.NewProgram("red", rec, 42)
	obj := newRenderable(t, rec, program)

	require.NoError(t, obj.Cleanup())
	assert.ErrorIs(t, obj.Cleanup(), rendering.ErrInvalidState)

	assert.Equal(t, map[uint32]int{2: 1}, rec.DeletedBuffers)
	assert.Equal(t, map[uint32]int{1: 1}, rec.DeletedVertexArrays)
	assert.Equal(t, map[uint32]int{42: 1}, rec.DeletedPrograms)
}

func TestSharedProgramDeletedOnce(t *testing.T) {
	rec := renderingtest.New()
	program := rendering.NewProgram("red", rec, 42)
	a := newRenderable(t, rec, program)
	b := newRenderable(t, rec, program)
	assert.Equal(t, 2, program.Refs())

	require.NoError(t, a.Cleanup())
	assert.False(t, program.Deleted())
	assert.Empty(t, rec.DeletedPrograms)

	require.NoError(t, b.Cleanup())
	assert.True(t, program.Deleted())
	assert.Equal(t, map[uint32]int{42: 1}, rec.DeletedPrograms)

	assert.False(t, program.Drop())
	assert.ErrorIs(t, program.Release(), rendering.ErrProgramReleased)
	assert.Equal(t, 1, rec.DeletedPrograms[42])
}

func TestSetShadersReplacesProgram(t *testing.T) {
	rec := renderingtest.New()
	red := rendering.NewProgram("red", rec, 10)
	yellow := rendering.NewProgram("yellow", rec, 11)
	other := newRenderable(t, rec, red)
	obj := newRenderable(t, rec, red)

	require.NoError(t, obj.SetShaders(yellow))
	assert.Equal(t, 1, red.Refs())
	assert.Equal(t, 1, yellow.Refs())
	assert.Same(t, yellow, obj.Program())

	require.NoError(t, obj.SetShaders(yellow))
	assert.Equal(t, 1, yellow.Refs())

	require.NoError(t, other.Cleanup())
	assert.Equal(t, map[uint32]int{10: 1}, rec.DeletedPrograms)
}

func TestProgramDrop(t *testing.T) {
	rec := renderingtest.New()
	unused := rendering.NewProgram("unused", rec, 7)
	assert.True(t, unused.Drop())
	assert.False(t, unused.Drop())
	assert.Equal(t, map[uint32]int{7: 1}, rec.DeletedPrograms)

	held := rendering.NewProgram("held", rec, 8)
	held.Retain()
	assert.False(t, held.Drop())
	assert.False(t, held.Deleted())
}
