// Package gldriver implements rendering.Driver and shaders.Linker on top of
// the go-gl bindings.
package gldriver

import (
	"github.com/fosdem/trigon/lib/rendering/renderconsts"
	"github.com/go-gl/gl/v3.3-core/gl"
)

type Driver struct{}

func (d *Driver) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Driver) GenBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (d *Driver) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *Driver) BindArrayBuffer(vbo uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
}

func (d *Driver) BufferStaticData(size int, data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Driver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, offset)
}

func (d *Driver) DisableVertexAttribArray(index uint32) {
	gl.DisableVertexAttribArray(index)
}

func (d *Driver) DrawArrays(mode renderconsts.DrawMode, first int32, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (d *Driver) DeleteBuffer(vbo uint32) {
	gl.DeleteBuffers(1, &vbo)
}

func (d *Driver) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *Driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Driver) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}
