package renderconsts

import "fmt"

// DrawMode is a primitive assembly rule. The values match the GL enums so the
// GL driver can pass them through unchanged.
type DrawMode uint32

const (
	Points        DrawMode = 0x0000
	Lines         DrawMode = 0x0001
	LineLoop      DrawMode = 0x0002
	LineStrip     DrawMode = 0x0003
	Triangles     DrawMode = 0x0004
	TriangleStrip DrawMode = 0x0005
	TriangleFan   DrawMode = 0x0006
)

var modeNames = map[DrawMode]string{
	Points:        "points",
	Lines:         "lines",
	LineLoop:      "line_loop",
	LineStrip:     "line_strip",
	Triangles:     "triangles",
	TriangleStrip: "triangle_strip",
	TriangleFan:   "triangle_fan",
}

func (m DrawMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("DrawMode(%#x)", uint32(m))
}

// ParseDrawMode accepts the names used in config files. An empty string means
// triangles.
func ParseDrawMode(s string) (DrawMode, error) {
	if s == "" {
		return Triangles, nil
	}
	for mode, name := range modeNames {
		if name == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown draw mode: %s", s)
}
