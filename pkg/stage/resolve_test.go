package stage_test

import (
	"testing"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/schema"
	"github.com/aretw0/shadenet/pkg/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(prims []*stage.Prim) []domain.Path {
	out := make([]domain.Path, len(prims))
	for i, p := range prims {
		out[i] = p.Path()
	}
	return out
}

func TestStage_ContributorsOrder(t *testing.T) {
	s := stage.New()
	a, _ := s.DefinePrim("/A", "Shader")
	b, _ := s.CreateClassPrim("/B")
	c, _ := s.CreateClassPrim("/C")
	_, _ = s.CreateClassPrim("/D")

	require.NoError(t, a.AddInherit("/B"))
	require.NoError(t, a.AddInherit("/C"))
	require.NoError(t, b.AddInherit("/D"))
	require.NoError(t, c.AddInherit("/D"))
	require.NoError(t, a.AddInherit("/Missing"))

	assert.Equal(t, []domain.Path{"/A", "/B", "/D", "/C"}, paths(s.Contributors("/A")))
}

func TestStage_ContributorsCycle(t *testing.T) {
	s := stage.New()
	a, _ := s.CreateClassPrim("/A")
	b, _ := s.CreateClassPrim("/B")
	require.NoError(t, a.AddInherit("/B"))
	require.NoError(t, b.AddInherit("/A"))

	assert.Equal(t, []domain.Path{"/A", "/B"}, paths(s.Contributors("/A")))
	assert.Empty(t, s.Contributors("/Nope"))
}

func TestStage_ResolveFirstOpinion(t *testing.T) {
	s := stage.New()
	class, _ := s.CreateClassPrim("/classPale")
	ca, _ := class.CreateAttribute("inputs:roughness", schema.Float())
	require.NoError(t, ca.Set(0.9))
	ca.SetMetadata(domain.MetaDocumentation, "from class")

	pale, _ := s.DefinePrim("/Pale", "Shader")
	require.NoError(t, pale.AddInherit("/classPale"))

	assert.True(t, s.HasAttribute("/Pale", "inputs:roughness"))
	v, ok := s.ResolveValue("/Pale", "inputs:roughness")
	require.True(t, ok)
	assert.Equal(t, 0.9, v)

	pa, err := pale.CreateAttribute("inputs:roughness", schema.Float())
	require.NoError(t, err)
	v, _ = s.ResolveValue("/Pale", "inputs:roughness")
	assert.Equal(t, 0.9, v, "an attribute without a value does not hide weaker values")

	require.NoError(t, pa.Set(0.1))
	v, _ = s.ResolveValue("/Pale", "inputs:roughness")
	assert.Equal(t, 0.1, v)

	doc, ok := s.ResolveAttributeMetadata("/Pale", "inputs:roughness", domain.MetaDocumentation)
	assert.True(t, ok)
	assert.Equal(t, "from class", doc)

	name, ok := s.ResolveTypeName("/Pale", "inputs:roughness")
	assert.True(t, ok)
	assert.Equal(t, "float", name)
}

func TestStage_ResolveConnectionsBlock(t *testing.T) {
	s := stage.New()
	class, _ := s.CreateClassPrim("/classPale")
	ca, _ := class.CreateAttribute("inputs:x", schema.Float())
	src := domain.PropertyPath{Prim: "/Tex", Name: "outputs:r"}
	require.NoError(t, ca.SetConnections(src))

	pale, _ := s.DefinePrim("/Pale", "Shader")
	require.NoError(t, pale.AddInherit("/classPale"))

	conns, ok := s.ResolveConnections("/Pale", "inputs:x")
	assert.True(t, ok)
	assert.Equal(t, []domain.PropertyPath{src}, conns)

	pa, _ := pale.CreateAttribute("inputs:x", schema.Float())
	pa.BlockConnections()
	conns, ok = s.ResolveConnections("/Pale", "inputs:x")
	assert.True(t, ok)
	assert.Empty(t, conns)

	pa.ClearConnections()
	conns, _ = s.ResolveConnections("/Pale", "inputs:x")
	assert.Equal(t, []domain.PropertyPath{src}, conns)
}

func TestStage_ResolveDictionaryPerKey(t *testing.T) {
	s := stage.New()
	class, _ := s.CreateClassPrim("/classPale")
	class.SetDictionaryKey(domain.SdrMetadata, "role", "class-role")
	class.SetDictionaryKey(domain.SdrMetadata, "help", "class-help")

	pale, _ := s.DefinePrim("/Pale", "Shader")
	require.NoError(t, pale.AddInherit("/classPale"))
	pale.SetDictionaryKey(domain.SdrMetadata, "role", "local-role")

	assert.Equal(t, map[string]string{
		"role": "local-role",
		"help": "class-help",
	}, s.ResolveDictionary("/Pale", domain.SdrMetadata))

	v, ok := s.ResolveDictionaryKey("/Pale", domain.SdrMetadata, "help")
	assert.True(t, ok)
	assert.Equal(t, "class-help", v)

	assert.NotNil(t, s.ResolveDictionary("/Missing", domain.SdrMetadata))
}

func TestStage_AttributeNamesComposed(t *testing.T) {
	s := stage.New()
	class, _ := s.CreateClassPrim("/C")
	_, _ = class.CreateAttribute("inputs:b", schema.Float())
	p, _ := s.DefinePrim("/P", "Shader")
	_, _ = p.CreateAttribute("inputs:a", schema.Float())
	_, _ = p.CreateAttribute("inputs:b", schema.Float())
	require.NoError(t, p.AddInherit("/C"))

	assert.Equal(t, []string{"inputs:a", "inputs:b"}, s.AttributeNames("/P"))
	assert.Equal(t, []string{"inputs:a", "inputs:b"}, p.AttributeNames())
}
