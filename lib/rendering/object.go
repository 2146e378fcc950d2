package rendering

import (
	"errors"
	"fmt"

	"github.com/fosdem/trigon/lib/rendering/renderconsts"
	"github.com/go-gl/mathgl/mgl32"
)

const floatsPerVertex = 3

var (
	ErrSizeMismatch = errors.New("vertex count mismatch")
	ErrInvalidState = errors.New("invalid object state")
)

// Vertex is a position in normalised device coordinates
type Vertex = mgl32.Vec3

type State int

const (
	Uninitialized State = iota
	Initialized
	Renderable
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Renderable:
		return "renderable"
	case Destroyed:
		return "destroyed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Object is a single mesh drawn with one shader program. It owns its vertex
// array and vertex buffer but only holds a reference to the program.
type Object struct {
	name        string
	driver      Driver
	vertexCount int
	mode        renderconsts.DrawMode

	vao     uint32
	vbo     uint32
	program *Program
	hasData bool
	state   State
}

func NewObject(name string, driver Driver, vertexCount int, mode renderconsts.DrawMode) *Object {
	return &Object{
		name:        name,
		driver:      driver,
		vertexCount: vertexCount,
		mode:        mode,
	}
}

func (o *Object) Name() string {
	return o.name
}

func (o *Object) VertexCount() int {
	return o.vertexCount
}

func (o *Object) Mode() renderconsts.DrawMode {
	return o.mode
}

func (o *Object) State() State {
	return o.state
}

func (o *Object) Program() *Program {
	return o.program
}

func (o *Object) Init() error {
	if o.state != Uninitialized {
		return o.stateError("init")
	}
	o.vao = o.driver.GenVertexArray()
	o.driver.BindVertexArray(o.vao)
	o.vbo = o.driver.GenBuffer()
	o.driver.BindArrayBuffer(o.vbo)
	o.state = Initialized
	return nil
}

// SetData uploads the mesh. The number of vertices must equal the vertex
// count the object was created with; nothing is uploaded otherwise.
func (o *Object) SetData(vertices []Vertex) error {
	if o.state != Initialized && o.state != Renderable {
		return o.stateError("set data")
	}
	if len(vertices) != o.vertexCount {
		return fmt.Errorf("%s: got %d vertices, want %d: %w", o.name, len(vertices), o.vertexCount, ErrSizeMismatch)
	}

	data := make([]float32, 0, o.vertexCount*floatsPerVertex)
	for _, v := range vertices {
		data = append(data, v[0], v[1], v[2])
	}

	o.bind()
	o.driver.BufferStaticData(o.vertexCount*floatsPerVertex*f32, data)
	o.hasData = true
	o.updateState()
	return nil
}

func (o *Object) SetShaders(program *Program) error {
	if o.state != Initialized && o.state != Renderable {
		return o.stateError("set shaders")
	}
	if program == nil {
		return fmt.Errorf("%s: no program given", o.name)
	}
	program.Retain()
	if o.program != nil {
		if err := o.program.Release(); err != nil {
			return err
		}
	}
	o.program = program
	o.updateState()
	return nil
}

func (o *Object) Render() error {
	if o.state != Renderable {
		return o.stateError("render")
	}
	o.bind()
	o.driver.UseProgram(o.program.Handle())

	o.driver.EnableVertexAttribArray(0)
	o.driver.VertexAttribPointer(0, floatsPerVertex, 0, 0)
	o.driver.DrawArrays(o.mode, 0, int32(o.vertexCount))
	o.driver.DisableVertexAttribArray(0)
	return nil
}

// Cleanup frees the GL buffers and drops the program reference. The object
// cannot be used afterwards.
func (o *Object) Cleanup() error {
	if o.state == Destroyed {
		return o.stateError("cleanup")
	}
	if o.vbo != 0 {
		o.driver.DeleteBuffer(o.vbo)
		o.vbo = 0
	}
	if o.vao != 0 {
		o.driver.DeleteVertexArray(o.vao)
		o.vao = 0
	}
	o.state = Destroyed

	if o.program != nil {
		program := o.program
		o.program = nil
		return program.Release()
	}
	return nil
}

func (o *Object) bind() {
	o.driver.BindVertexArray(o.vao)
	o.driver.BindArrayBuffer(o.vbo)
}

func (o *Object) updateState() {
	if o.hasData && o.program != nil {
		o.state = Renderable
	}
}

func (o *Object) stateError(op string) error {
	return fmt.Errorf("%s: cannot %s in state %s: %w", o.name, op, o.state, ErrInvalidState)
}
