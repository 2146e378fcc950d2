package gldriver

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Init loads the GL entry points for the current context. It must be called
// after a context has been made current on this thread.
func Init() (*Driver, error) {
	err := gl.Init()
	if err != nil {
		return nil, fmt.Errorf("could not initialise OpenGL context: %w", err)
	}

	vendor := gl.GoStr(gl.GetString(gl.VENDOR))
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	version := gl.GoStr(gl.GetString(gl.VERSION))
	slog.Info(fmt.Sprintf("OpenGL version %s / %s / %s", vendor, renderer, version), "module", "gl")

	return &Driver{}, nil
}
