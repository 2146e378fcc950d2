// Package renderingtest provides a GL driver that records calls instead of
// talking to a GPU.
package renderingtest

import (
	"fmt"

	"github.com/fosdem/trigon/lib/rendering/renderconsts"
)

type Draw struct {
	VAO     uint32
	VBO     uint32
	Program uint32
	Mode    renderconsts.DrawMode
	First   int32
	Count   int32
	// Data is the content of the bound buffer at the time of the draw
	Data []float32
}

type Upload struct {
	VBO  uint32
	Size int
	Data []float32
}

type Link struct {
	Handle         uint32
	VertexSource   string
	FragmentSource string
}

// Recorder implements rendering.Driver and shaders.Linker.
type Recorder struct {
	Calls   []string
	Draws   []Draw
	Uploads []Upload
	Links   []Link
	Clears  int

	DeletedPrograms     map[uint32]int
	DeletedBuffers      map[uint32]int
	DeletedVertexArrays map[uint32]int

	ClearRGBA [4]float32

	// LinkErr is returned by LinkProgram when set
	LinkErr error

	nextHandle     uint32
	boundVAO       uint32
	boundVBO       uint32
	program        uint32
	enabledAttribs map[uint32]bool
	buffers        map[uint32][]float32
}

func New() *Recorder {
	return &Recorder{
		DeletedPrograms:     make(map[uint32]int),
		DeletedBuffers:      make(map[uint32]int),
		DeletedVertexArrays: make(map[uint32]int),
		enabledAttribs:      make(map[uint32]bool),
		buffers:             make(map[uint32][]float32),
	}
}

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

func (r *Recorder) gen() uint32 {
	r.nextHandle++
	return r.nextHandle
}

func (r *Recorder) GenVertexArray() uint32 {
	h := r.gen()
	r.record("GenVertexArray() = %d", h)
	return h
}

func (r *Recorder) GenBuffer() uint32 {
	h := r.gen()
	r.record("GenBuffer() = %d", h)
	return h
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.boundVAO = vao
	r.record("BindVertexArray(%d)", vao)
}

func (r *Recorder) BindArrayBuffer(vbo uint32) {
	r.boundVBO = vbo
	r.record("BindArrayBuffer(%d)", vbo)
}

func (r *Recorder) BufferStaticData(size int, data []float32) {
	stored := append([]float32(nil), data...)
	r.buffers[r.boundVBO] = stored
	r.Uploads = append(r.Uploads, Upload{VBO: r.boundVBO, Size: size, Data: stored})
	r.record("BufferStaticData(%d)", size)
}

func (r *Recorder) UseProgram(program uint32) {
	r.program = program
	r.record("UseProgram(%d)", program)
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.enabledAttribs[index] = true
	r.record("EnableVertexAttribArray(%d)", index)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, stride int32, offset uintptr) {
	r.record("VertexAttribPointer(%d, %d, %d, %d)", index, size, stride, offset)
}

func (r *Recorder) DisableVertexAttribArray(index uint32) {
	delete(r.enabledAttribs, index)
	r.record("DisableVertexAttribArray(%d)", index)
}

// AttribEnabled reports whether the attribute slot is currently enabled
func (r *Recorder) AttribEnabled(index uint32) bool {
	return r.enabledAttribs[index]
}

func (r *Recorder) DrawArrays(mode renderconsts.DrawMode, first int32, count int32) {
	r.Draws = append(r.Draws, Draw{
		VAO:     r.boundVAO,
		VBO:     r.boundVBO,
		Program: r.program,
		Mode:    mode,
		First:   first,
		Count:   count,
		Data:    r.buffers[r.boundVBO],
	})
	r.record("DrawArrays(%s, %d, %d)", mode, first, count)
}

func (r *Recorder) DeleteBuffer(vbo uint32) {
	r.DeletedBuffers[vbo]++
	r.record("DeleteBuffer(%d)", vbo)
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.DeletedVertexArrays[vao]++
	r.record("DeleteVertexArray(%d)", vao)
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.DeletedPrograms[program]++
	r.record("DeleteProgram(%d)", program)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.ClearRGBA = [4]float32{red, green, blue, alpha}
	r.record("ClearColor(%g, %g, %g, %g)", red, green, blue, alpha)
}

func (r *Recorder) Clear() {
	r.Clears++
	r.record("Clear()")
}

func (r *Recorder) LinkProgram(vertexSource, fragmentSource string) (uint32, error) {
	if r.LinkErr != nil {
		return 0, r.LinkErr
	}
	h := r.gen()
	r.Links = append(r.Links, Link{Handle: h, VertexSource: vertexSource, FragmentSource: fragmentSource})
	r.record("LinkProgram() = %d", h)
	return h, nil
}

// Reset forgets recorded calls but keeps the bound state
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Draws = nil
	r.Uploads = nil
	r.Clears = 0
}
