package config

import (
	"fmt"

	"github.com/fosdem/trigon/lib/rendering/renderconsts"
)

type ObjectCfg struct {
	Name    string
	Program string
	Mode    string
	// VertexCount defaults to the number of vertices
	VertexCount int `yaml:"vertex_count"`
	Vertices    [][]float32
}

func (o *ObjectCfg) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("name must be specified")
	}
	if o.Program == "" {
		return fmt.Errorf("program must be specified")
	}
	if _, err := renderconsts.ParseDrawMode(o.Mode); err != nil {
		return err
	}
	if len(o.Vertices) == 0 {
		return fmt.Errorf("at least one vertex should be defined")
	}
	for i, v := range o.Vertices {
		if len(v) != 3 {
			return fmt.Errorf("vertex %d has %d components, want 3", i, len(v))
		}
	}
	if o.VertexCount != 0 && o.VertexCount != len(o.Vertices) {
		return fmt.Errorf("vertex_count is %d but %d vertices are given", o.VertexCount, len(o.Vertices))
	}
	return nil
}

// Count is the number of vertices the object is drawn with
func (o *ObjectCfg) Count() int {
	if o.VertexCount != 0 {
		return o.VertexCount
	}
	return len(o.Vertices)
}

func (o *ObjectCfg) DrawMode() renderconsts.DrawMode {
	mode, err := renderconsts.ParseDrawMode(o.Mode)
	if err != nil {
		return renderconsts.Triangles
	}
	return mode
}

func (o *ObjectCfg) ModeName() string {
	return o.DrawMode().String()
}
