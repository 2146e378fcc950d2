package theatre

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/fosdem/trigon/lib/config"
	"github.com/fosdem/trigon/lib/rendering"
	"github.com/fosdem/trigon/lib/utils"
)

// ProgramLoader builds a program from a vertex and a fragment shader
type ProgramLoader interface {
	Load(name, vertexPath, fragmentPath string) (*rendering.Program, error)
}

// Theatre holds everything that is drawn, in draw order
type Theatre struct {
	Objects    []*rendering.Object
	ObjectMap  map[string]*rendering.Object
	Programs   map[string]*rendering.Program
	ClearColor utils.Colour

	driver            rendering.Driver
	shutdownRequested atomic.Bool
	cleanedUp         bool

	listener map[string][]EventListener
}

func New(cfg *config.Config, driver rendering.Driver, loader ProgramLoader) (*Theatre, error) {
	t := &Theatre{
		ObjectMap:  make(map[string]*rendering.Object),
		Programs:   make(map[string]*rendering.Program),
		ClearColor: utils.ColourNormalize(utils.ColourParse(cfg.ClearColour)),
		driver:     driver,
		listener:   make(map[string][]EventListener),
	}

	err := t.buildPrograms(cfg, loader)
	if err == nil {
		err = t.buildObjects(cfg)
	}
	if err != nil {
		if cleanupErr := t.Cleanup(); cleanupErr != nil {
			slog.Warn(fmt.Sprintf("cleanup after failed setup: %s", cleanupErr), "module", "theatre")
		}
		return nil, err
	}

	for _, name := range slices.Sorted(maps.Keys(t.Programs)) {
		if t.Programs[name].Drop() {
			slog.Info(fmt.Sprintf("program %s is not used by any object", name), "module", "theatre")
		}
	}

	return t, nil
}

func (t *Theatre) buildPrograms(cfg *config.Config, loader ProgramLoader) error {
	for _, name := range slices.Sorted(maps.Keys(cfg.Programs)) {
		programCfg := cfg.Programs[name]
		program, err := loader.Load(name, programCfg.Vertex, programCfg.Fragment)
		if err != nil {
			return fmt.Errorf("could not load program %s: %w", name, err)
		}
		t.Programs[name] = program
	}
	return nil
}

func (t *Theatre) buildObjects(cfg *config.Config) error {
	for _, objCfg := range cfg.Objects {
		obj := rendering.NewObject(objCfg.Name, t.driver, objCfg.Count(), objCfg.DrawMode())
		t.Objects = append(t.Objects, obj)
		t.ObjectMap[obj.Name()] = obj

		vertices := make([]rendering.Vertex, len(objCfg.Vertices))
		for i, v := range objCfg.Vertices {
			vertices[i] = rendering.Vertex{v[0], v[1], v[2]}
		}

		err := obj.Init()
		if err != nil {
			return err
		}
		err = obj.SetData(vertices)
		if err != nil {
			return err
		}
		program, ok := t.Programs[objCfg.Program]
		if !ok {
			return fmt.Errorf("object %s refers to non-existant program %s", objCfg.Name, objCfg.Program)
		}
		err = obj.SetShaders(program)
		if err != nil {
			return err
		}
		slog.Debug(fmt.Sprintf("object %s: %d vertices, %s, program %s", obj.Name(), obj.VertexCount(), obj.Mode(), objCfg.Program), "module", "theatre")
	}
	return nil
}

// Start sets up the GL state that stays fixed for the whole run
func (t *Theatre) Start() {
	t.driver.ClearColor(t.ClearColor.R, t.ClearColor.G, t.ClearColor.B, t.ClearColor.A)
}

func (t *Theatre) RequestShutdown(reason string) {
	if t.shutdownRequested.Swap(true) {
		return
	}
	slog.Info(fmt.Sprintf("shutdown requested: %s", reason), "module", "theatre")
	t.invoke("shutdown", EventShutdown{Event: "shutdown", Reason: reason})
}

func (t *Theatre) ShutdownRequested() bool {
	return t.shutdownRequested.Load()
}

// Cleanup releases all objects and any program that is still alive. Calling
// it again does nothing.
func (t *Theatre) Cleanup() error {
	if t.cleanedUp {
		return nil
	}
	t.cleanedUp = true

	var errs []error
	for _, obj := range t.Objects {
		if obj.State() == rendering.Destroyed {
			continue
		}
		errs = append(errs, obj.Cleanup())
	}
	for _, program := range t.Programs {
		program.Drop()
	}
	return errors.Join(errs...)
}
