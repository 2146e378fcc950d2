package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"text/template"
)

// Builtin holds the shaders used by the default scene
//
//go:embed *.frag *.vert
var Builtin embed.FS

// Shaderer renders shader sources from a filesystem as templates
type Shaderer struct {
	fsys      fs.FS
	templates map[string]*template.Template
}

func NewShaderer(fsys fs.FS) *Shaderer {
	return &Shaderer{
		fsys:      fsys,
		templates: make(map[string]*template.Template),
	}
}

// ShaderData contains stuff that gets passed to the shader
type ShaderData struct {
	GLSLVersion string
}

func (s *Shaderer) GetShaderSource(name string, data *ShaderData) (string, error) {
	tmpl, err := s.template(name)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	err = tmpl.Execute(&b, data)
	if err != nil {
		return "", fmt.Errorf("error while rendering template %s: %w", name, err)
	}

	return b.String(), nil
}

func (s *Shaderer) template(name string) (*template.Template, error) {
	if tmpl, ok := s.templates[name]; ok {
		return tmpl, nil
	}
	src, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("could not read shader: %w", err)
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("could not parse shader %s: %w", name, err)
	}
	s.templates[name] = tmpl
	return tmpl, nil
}

func (s *Shaderer) TemplateNames() []string {
	var names []string
	for name := range s.templates {
		names = append(names, name)
	}
	return names
}

// SourceFS returns the directory shader sources are read from, or the builtin
// shaders if dir is empty.
func SourceFS(dir string) fs.FS {
	if dir == "" {
		return Builtin
	}
	return os.DirFS(dir)
}
