package stage_test

import (
	"testing"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/schema"
	"github.com/aretw0/shadenet/pkg/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const paleLayer = `
doc: pale material
prims:
  - path: /classPale
    specifier: class
    dictionaries:
      sdrMetadata:
        role: surface
    attributes:
      - name: inputs:diffuseColor
        type: color3f
        value: [1, 1, 1]
  - path: /Pale
    specifier: def
    type: Shader
    inherits: [/classPale]
    attributes:
      - name: info:id
        type: token
        value: SharedFloat_1
      - name: inputs:roughness
        type: float
        connections: []
      - name: inputs:normal
        type: normal3f
        connections: ["/Tex.outputs:rgb"]
        metadata:
          renderType: vector
`

func TestFromLayer_YAML(t *testing.T) {
	var layer domain.Layer
	require.NoError(t, yaml.Unmarshal([]byte(paleLayer), &layer))

	s, err := stage.FromLayer(&layer)
	require.NoError(t, err)
	assert.Equal(t, "pale material", s.Doc())

	v, ok := s.ResolveValue("/Pale", "inputs:diffuseColor")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 1, 1}, v)

	conns, ok := s.ResolveConnections("/Pale", "inputs:roughness")
	assert.True(t, ok, "an empty list is an authored block")
	assert.Empty(t, conns)

	conns, _ = s.ResolveConnections("/Pale", "inputs:normal")
	assert.Equal(t, []domain.PropertyPath{{Prim: "/Tex", Name: "outputs:rgb"}}, conns)

	assert.Equal(t, "surface", s.ResolveDictionary("/Pale", domain.SdrMetadata)["role"])
}

func TestExport_RoundTripPreservesBlocks(t *testing.T) {
	s := stage.New()
	s.SetDoc("roundtrip")
	p, _ := s.DefinePrim("/Shader", "Shader")
	blocked, _ := p.CreateAttribute("inputs:blocked", schema.Float())
	blocked.BlockConnections()
	_, _ = p.CreateAttribute("inputs:plain", schema.Float())
	asset, _ := p.CreateAttribute("info:sourceAsset", schema.Asset())
	require.NoError(t, asset.Set("shader.glslfx"))

	out, err := yaml.Marshal(s.Export())
	require.NoError(t, err)

	var layer domain.Layer
	require.NoError(t, yaml.Unmarshal(out, &layer))
	back, err := stage.FromLayer(&layer)
	require.NoError(t, err)

	_, ok := back.ResolveConnections("/Shader", "inputs:blocked")
	assert.True(t, ok)
	_, ok = back.ResolveConnections("/Shader", "inputs:plain")
	assert.False(t, ok)
	v, _ := back.ResolveValue("/Shader", "info:sourceAsset")
	assert.Equal(t, domain.AssetPath("shader.glslfx"), v)
}

func TestExport_RoundTripLocalTypeOverInheritedType(t *testing.T) {
	s := stage.New()
	class, err := s.CreateClassPrim("/classPale")
	require.NoError(t, err)
	_, err = class.CreateAttribute("inputs:x", schema.Color3f())
	require.NoError(t, err)

	pale, err := s.DefinePrim("/Pale", "Shader")
	require.NoError(t, err)
	_, err = pale.CreateAttribute("inputs:x", schema.Float())
	require.NoError(t, err)
	require.NoError(t, pale.AddInherit("/classPale"))

	back, err := stage.FromLayer(s.Export())
	require.NoError(t, err, "a layer the stage exported must load again")

	typeName, ok := back.ResolveTypeName("/Pale", "inputs:x")
	require.True(t, ok)
	assert.Equal(t, "float", typeName)
	assert.Equal(t, []domain.Path{"/classPale"}, mustPrim(t, back, "/Pale").Inherits())
}

func mustPrim(t *testing.T, s *stage.Stage, path domain.Path) *stage.Prim {
	t.Helper()
	p, ok := s.Prim(path)
	require.True(t, ok, "prim %s", path)
	return p
}

func TestFromLayer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		layer domain.Layer
		want  error
	}{
		{
			name:  "bad specifier",
			layer: domain.Layer{Prims: []domain.PrimSpec{{Path: "/A", Specifier: "weird"}}},
			want:  domain.ErrInvalidValue,
		},
		{
			name:  "bad path",
			layer: domain.Layer{Prims: []domain.PrimSpec{{Path: "A", Specifier: domain.SpecifierDef}}},
			want:  domain.ErrInvalidPath,
		},
		{
			name: "bad value",
			layer: domain.Layer{Prims: []domain.PrimSpec{{
				Path: "/A", Specifier: domain.SpecifierDef,
				Attributes: []domain.AttributeSpec{{Name: "inputs:x", TypeName: "float", Value: "nope"}},
			}}},
			want: domain.ErrInvalidValue,
		},
		{
			name: "unknown type",
			layer: domain.Layer{Prims: []domain.PrimSpec{{
				Path: "/A", Specifier: domain.SpecifierDef,
				Attributes: []domain.AttributeSpec{{Name: "inputs:x", TypeName: "matrix9"}},
			}}},
			want: domain.ErrInvalidValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stage.FromLayer(&tt.layer)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
