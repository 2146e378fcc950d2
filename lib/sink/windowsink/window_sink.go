package windowsink

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/trigon/lib/config"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowSink owns the GLFW window and its GL context
type WindowSink struct {
	cfg    *config.WindowCfg
	Window *glfw.Window

	glfwInitialised bool
}

func New(cfg *config.WindowCfg) *WindowSink {
	return &WindowSink{cfg: cfg}
}

// Start initialises GLFW, opens the window and makes its context current on
// the calling thread. GLFW is terminated again if the window cannot be made.
func (w *WindowSink) Start() error {
	if w.Window != nil {
		return nil
	}

	w.log("Initializing window")
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	w.glfwInitialised = true

	if w.cfg.Samples != nil {
		glfw.WindowHint(glfw.Samples, *w.cfg.Samples)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, w.cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, w.cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(w.cfg.Width, w.cfg.Height, w.cfg.Title, nil, nil)
	if err != nil {
		w.Close()
		return fmt.Errorf("failed to open glfw window: %w", err)
	}
	w.Window = window

	window.MakeContextCurrent()
	return nil
}

// CaptureKeys makes key presses stick until polled, so that quick presses of
// escape are not missed between two frames.
func (w *WindowSink) CaptureKeys() {
	w.Window.SetInputMode(glfw.StickyKeysMode, glfw.True)
}

func (w *WindowSink) SwapBuffers() {
	w.Window.SwapBuffers()
}

func (w *WindowSink) ShouldClose() bool {
	return w.Window.ShouldClose()
}

func (w *WindowSink) EscapePressed() bool {
	return w.Window.GetKey(glfw.KeyEscape) == glfw.Press
}

// Close destroys the window and terminates GLFW
func (w *WindowSink) Close() {
	if w.Window != nil {
		w.Window.Destroy()
		w.Window = nil
	}
	if w.glfwInitialised {
		glfw.Terminate()
		w.glfwInitialised = false
	}
}

func (w *WindowSink) log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), "module", w.cfg.Title)
}
