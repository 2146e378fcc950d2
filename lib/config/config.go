package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fosdem/trigon/lib/utils"
	yaml "github.com/goccy/go-yaml"
)

type Config struct {
	Window      WindowCfg
	ClearColour string  `yaml:"clear_colour"`
	GLSLVersion string  `yaml:"glsl_version"`
	ShaderDir   CfgPath `yaml:"shader_dir"`
	Programs    map[string]*ProgramCfg
	Objects     []*ObjectCfg
	Api         *ApiCfg
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %s", filename, err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			_ = fmt.Errorf("could not close %s: %s", filename, err)
		}
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	UnmarshalBase = filepath.Dir(absFilename)

	m := yaml.NewDecoder(f)
	cfg := &Config{}
	err = m.Decode(cfg)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, err
}

// Default is the scene shown when no config file is given: a red triangle
// in the bottom half and a yellow one in the top half of a dark blue window.
// Its programs refer to the builtin shaders.
func Default() *Config {
	cfg := &Config{
		Programs: map[string]*ProgramCfg{
			"red":    {Vertex: "triangle.vert", Fragment: "red.frag"},
			"yellow": {Vertex: "triangle.vert", Fragment: "yellow.frag"},
		},
		Objects: []*ObjectCfg{
			{
				Name:     "bottom",
				Program:  "red",
				Mode:     "triangles",
				Vertices: [][]float32{{-1, -1, 0}, {1, -1, 0}, {0, 0, 0}},
			},
			{
				Name:     "top",
				Program:  "yellow",
				Mode:     "triangles",
				Vertices: [][]float32{{-1, 1, 0}, {1, 1, 0}, {0, 0, 0}},
			},
		},
	}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	c.Window.setDefaults()
	if c.ClearColour == "" {
		c.ClearColour = "#00006600"
	}
	if c.GLSLVersion == "" {
		c.GLSLVersion = "330 core"
	}
}

func (c *Config) Validate() error {
	var err error
	err = c.Window.Validate()
	if err != nil {
		return fmt.Errorf("window config is invalid: %w", err)
	}
	if len(c.Objects) < 1 {
		return fmt.Errorf("at least one object should be defined")
	}
	for k, v := range c.Programs {
		err = v.Validate()
		if err != nil {
			return fmt.Errorf("program %s is invalid: %w", k, err)
		}
	}
	names := make(map[string]bool)
	for i, v := range c.Objects {
		err = v.Validate()
		if err != nil {
			return fmt.Errorf("object %d is invalid: %w", i, err)
		}
		if names[v.Name] {
			return fmt.Errorf("object name %s is used more than once", v.Name)
		}
		names[v.Name] = true
		if _, ok := c.Programs[v.Program]; !ok {
			return fmt.Errorf("object %s refers to non-existant program %s", v.Name, v.Program)
		}
	}

	if !utils.ColourValidate(c.ClearColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", c.ClearColour)
	}
	if c.Api != nil {
		err = c.Api.Validate()
		if err != nil {
			return fmt.Errorf("api config is invalid: %w", err)
		}
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Window:\n  %s (%dx%d, GL %d.%d)\n", c.Window.Title, c.Window.Width, c.Window.Height, c.Window.GLMajor, c.Window.GLMinor))

	b.WriteString("\nPrograms:\n")
	for _, k := range slices.Sorted(maps.Keys(c.Programs)) {
		v := c.Programs[k]
		b.WriteString(fmt.Sprintf("  %s (%s, %s)\n", k, v.Vertex, v.Fragment))
	}

	b.WriteString("\nObjects:\n")
	for _, v := range c.Objects {
		b.WriteString(fmt.Sprintf("  %s (%d vertices, %s, %s)\n", v.Name, len(v.Vertices), v.ModeName(), v.Program))
	}

	return b.String()
}

type WindowCfg struct {
	Title   string
	Width   int
	Height  int
	Samples *int
	GLMajor int `yaml:"gl_major"`
	GLMinor int `yaml:"gl_minor"`
}

func (w *WindowCfg) setDefaults() {
	if w.Title == "" {
		w.Title = "Computer Graphics"
	}
	if w.Width == 0 {
		w.Width = 1024
	}
	if w.Height == 0 {
		w.Height = 768
	}
	if w.Samples == nil {
		samples := 4
		w.Samples = &samples
	}
	if w.GLMajor == 0 {
		w.GLMajor = 3
		w.GLMinor = 3
	}
}

func (w *WindowCfg) Validate() error {
	if w.Width < 1 || w.Height < 1 {
		return fmt.Errorf("window size %dx%d is invalid", w.Width, w.Height)
	}
	if w.Samples != nil && *w.Samples < 0 {
		return fmt.Errorf("samples must be nonnegative")
	}
	if w.GLMajor < 3 || (w.GLMajor == 3 && w.GLMinor < 3) {
		return fmt.Errorf("a core profile context of at least 3.3 is needed, got %d.%d", w.GLMajor, w.GLMinor)
	}
	return nil
}

type ProgramCfg struct {
	Vertex   string
	Fragment string
}

func (p *ProgramCfg) Validate() error {
	if p.Vertex == "" {
		return fmt.Errorf("vertex shader must be specified")
	}
	if p.Fragment == "" {
		return fmt.Errorf("fragment shader must be specified")
	}
	return nil
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

func (a *ApiCfg) Validate() error {
	if a.Bind == "" {
		return fmt.Errorf("bind address must be specified")
	}
	return nil
}
