package kbdctl

import (
	"github.com/fosdem/trigon/lib/sink/windowsink"
	"github.com/fosdem/trigon/lib/theatre"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func SetupShortcutKeys(theatre *theatre.Theatre, ws *windowsink.WindowSink) {
	ws.Window.SetKeyCallback(keyCallback(theatre))
}

func Poll() {
	glfw.PollEvents()
}

func keyCallback(theatre *theatre.Theatre) func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	return func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Release {
			return
		}
		if isQuitShortcut(key, mods) {
			theatre.RequestShutdown("ctrl+shift+q pressed")
		}
	}
}

func isQuitShortcut(key glfw.Key, mods glfw.ModifierKey) bool {
	return key == glfw.KeyQ &&
		mods&glfw.ModControl != 0 &&
		mods&glfw.ModShift != 0
}
