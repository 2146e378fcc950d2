package shaders

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/fosdem/trigon/lib/rendering/renderingtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var data = &ShaderData{GLSLVersion: "330 core"}

func TestBuiltinShadersRender(t *testing.T) {
	s := NewShaderer(Builtin)
	for _, name := range []string{"triangle.vert", "red.frag", "yellow.frag"} {
		src, err := s.GetShaderSource(name, data)
		require.NoError(t, err, name)
		assert.Contains(t, src, "#version 330 core\n", name)
	}
	assert.Len(t, s.TemplateNames(), 3)
}

func TestShadererMissingFile(t *testing.T) {
	s := NewShaderer(fstest.MapFS{})
	_, err := s.GetShaderSource("nope.vert", data)
	assert.Error(t, err)
}

func TestShadererBadTemplate(t *testing.T) {
	s := NewShaderer(fstest.MapFS{
		"bad.frag": {Data: []byte("#version {{.GLSLVersion")},
		"key.frag": {Data: []byte("#version {{.Nope}}")},
	})
	_, err := s.GetShaderSource("bad.frag", data)
	assert.Error(t, err)
	_, err = s.GetShaderSource("key.frag", data)
	assert.Error(t, err)
}

func TestLoaderLinksDistinctPairsOnce(t *testing.T) {
	rec := renderingtest.New()
	l := NewLoader(Builtin, data, rec, rec)

	red, err := l.Load("red", "triangle.vert", "red.frag")
	require.NoError(t, err)
	yellow, err := l.Load("yellow", "triangle.vert", "yellow.frag")
	require.NoError(t, err)
	alsoRed, err := l.Load("crimson", "triangle.vert", "red.frag")
	require.NoError(t, err)

	assert.Len(t, rec.Links, 2)
	assert.NotEqual(t, red.Handle(), yellow.Handle())
	assert.Same(t, red, alsoRed)
	assert.Equal(t, "red", alsoRed.Name())
	assert.Contains(t, rec.Links[1].FragmentSource, "vec3(1, 1, 0)")
	assert.Contains(t, rec.Links[0].VertexSource, "layout(location = 0) in vec3")
}

func TestLoaderLinkError(t *testing.T) {
	rec := renderingtest.New()
	rec.LinkErr = errors.New("syntax error")
	l := NewLoader(Builtin, data, rec, rec)

	_, err := l.Load("red", "triangle.vert", "red.frag")
	assert.ErrorIs(t, err, rec.LinkErr)

	_, err = l.Load("missing", "triangle.vert", "blue.frag")
	assert.Error(t, err)
}

func TestSourceFS(t *testing.T) {
	assert.Equal(t, fs.FS(Builtin), SourceFS(""))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blue.frag"), []byte("#version {{.GLSLVersion}}\n"), 0o644))
	src, err := NewShaderer(SourceFS(dir)).GetShaderSource("blue.frag", data)
	require.NoError(t, err)
	assert.Equal(t, "#version 330 core\n", src)
}
