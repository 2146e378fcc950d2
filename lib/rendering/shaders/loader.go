package shaders

import (
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/fosdem/trigon/lib/rendering"
)

// Linker turns a pair of shader sources into a linked program handle
type Linker interface {
	LinkProgram(vertexSource, fragmentSource string) (uint32, error)
}

type sourcePair struct {
	vertex   string
	fragment string
}

// Loader builds shader programs and links each distinct pair of sources once
type Loader struct {
	shaderer *Shaderer
	data     *ShaderData
	linker   Linker
	driver   rendering.Driver

	programs map[sourcePair]*rendering.Program
}

func NewLoader(fsys fs.FS, data *ShaderData, linker Linker, driver rendering.Driver) *Loader {
	return &Loader{
		shaderer: NewShaderer(fsys),
		data:     data,
		linker:   linker,
		driver:   driver,
		programs: make(map[sourcePair]*rendering.Program),
	}
}

func (l *Loader) Load(name, vertexPath, fragmentPath string) (*rendering.Program, error) {
	key := sourcePair{vertex: vertexPath, fragment: fragmentPath}
	if program, ok := l.programs[key]; ok {
		slog.Debug(fmt.Sprintf("program %s shares sources with %s", name, program.Name()), "module", "shaders")
		return program, nil
	}

	vertexShader, err := l.shaderer.GetShaderSource(vertexPath, l.data)
	if err != nil {
		return nil, fmt.Errorf("could not get vertex shader: %w", err)
	}

	fragmentShader, err := l.shaderer.GetShaderSource(fragmentPath, l.data)
	if err != nil {
		return nil, fmt.Errorf("could not get fragment shader: %w", err)
	}

	handle, err := l.linker.LinkProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("could not build program %s from %s and %s: %w", name, vertexPath, fragmentPath, err)
	}

	slog.Info(fmt.Sprintf("linked program %s from %s and %s", name, vertexPath, fragmentPath), "module", "shaders")
	program := rendering.NewProgram(name, l.driver, handle)
	l.programs[key] = program
	return program, nil
}
