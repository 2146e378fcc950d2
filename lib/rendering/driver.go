package rendering

import "github.com/fosdem/trigon/lib/rendering/renderconsts"

// f32 is the size of a GL float in bytes
const f32 = 4

// Driver is the part of the GL API the renderer uses. All calls apply to the
// context that is current on the calling thread.
type Driver interface {
	GenVertexArray() uint32
	GenBuffer() uint32
	BindVertexArray(vao uint32)
	BindArrayBuffer(vbo uint32)
	// BufferStaticData uploads size bytes of data into the bound array buffer
	BufferStaticData(size int, data []float32)

	UseProgram(program uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, stride int32, offset uintptr)
	DisableVertexAttribArray(index uint32)
	DrawArrays(mode renderconsts.DrawMode, first int32, count int32)

	DeleteBuffer(vbo uint32)
	DeleteVertexArray(vao uint32)
	DeleteProgram(program uint32)

	ClearColor(r, g, b, a float32)
	Clear()
}
