package shade_test

import (
	"testing"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/shade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShader_ImplementationSource(t *testing.T) {
	f := setupStage(t)
	pale, whiterPale := f.pale, f.whiterPale

	assert.Equal(t, domain.ImplementationID, pale.GetImplementationSource())
	assert.Equal(t, domain.ImplementationID, whiterPale.GetImplementationSource())

	require.NoError(t, pale.SetShaderId("SharedFloat_1"))
	id, ok := pale.GetShaderId()
	assert.True(t, ok)
	assert.Equal(t, "SharedFloat_1", id)

	require.NoError(t, whiterPale.SetShaderId("SharedColor_1"))
	id, _ = whiterPale.GetShaderId()
	assert.Equal(t, "SharedColor_1", id)

	_, ok = pale.GetSourceAsset(domain.UniversalSourceType)
	assert.False(t, ok)
	_, ok = whiterPale.GetSourceCode(domain.UniversalSourceType)
	assert.False(t, ok)

	require.NoError(t, pale.SetImplementationSource(domain.ImplementationSourceAsset))
	_, ok = pale.GetShaderId()
	assert.False(t, ok, "a stale id must not surface")

	require.NoError(t, whiterPale.SetImplementationSource(domain.ImplementationSourceCode))
	_, ok = whiterPale.GetShaderId()
	assert.False(t, ok)

	const glslfxSource = "This is the shader source"
	require.NoError(t, pale.SetSourceCode(glslfxSource, "glslfx"))
	assert.Equal(t, domain.ImplementationSourceCode, pale.GetImplementationSource())
	_, ok = pale.GetShaderId()
	assert.False(t, ok)

	_, ok = pale.GetSourceAsset(domain.UniversalSourceType)
	assert.False(t, ok)
	_, ok = pale.GetSourceAsset("glslfx")
	assert.False(t, ok)

	_, ok = pale.GetSourceCode("osl")
	assert.False(t, ok)
	_, ok = pale.GetSourceCode(domain.UniversalSourceType)
	assert.False(t, ok, "source code has no universal fallback")
	code, ok := pale.GetSourceCode("glslfx")
	assert.True(t, ok)
	assert.Equal(t, glslfxSource, code)
}

func TestShader_SourceAssetFallback(t *testing.T) {
	f := setupStage(t)
	whiterPale := f.whiterPale

	const oslAsset domain.AssetPath = "/source/asset.osl"
	require.NoError(t, whiterPale.SetSourceAsset(oslAsset, domain.UniversalSourceType))
	assert.Equal(t, domain.ImplementationSourceAsset, whiterPale.GetImplementationSource())
	_, ok := whiterPale.GetShaderId()
	assert.False(t, ok)

	for _, sourceType := range []string{"osl", "glslfx", domain.UniversalSourceType} {
		got, ok := whiterPale.GetSourceAsset(sourceType)
		assert.True(t, ok, sourceType)
		assert.Equal(t, oslAsset, got, sourceType)
	}

	_, ok = whiterPale.GetSourceCode(domain.UniversalSourceType)
	assert.False(t, ok)
	_, ok = whiterPale.GetSourceCode("osl")
	assert.False(t, ok)

	const glslfxAsset domain.AssetPath = "/source/asset.glslfx"
	require.NoError(t, whiterPale.SetSourceAsset(glslfxAsset, "glslfx"))
	got, _ := whiterPale.GetSourceAsset("osl")
	assert.Equal(t, oslAsset, got)
	got, _ = whiterPale.GetSourceAsset("glslfx")
	assert.Equal(t, glslfxAsset, got)
	got, _ = whiterPale.GetSourceAsset(domain.UniversalSourceType)
	assert.Equal(t, oslAsset, got)

	_, ok = whiterPale.GetSourceAssetSubIdentifier(domain.UniversalSourceType)
	assert.False(t, ok)
	_, ok = whiterPale.GetSourceAssetSubIdentifier("glslfx")
	assert.False(t, ok)
}

func TestShader_UniversalSourceTypeName(t *testing.T) {
	f := setupStage(t)
	whiterPale := f.whiterPale

	const oslAsset domain.AssetPath = "/source/asset.osl"
	require.NoError(t, whiterPale.SetSourceAsset(oslAsset, domain.UniversalSourceTypeName))
	require.NoError(t, whiterPale.SetSourceAssetSubIdentifier("main", domain.UniversalSourceTypeName))

	prim, _ := whiterPale.Prim()
	_, ok := prim.Attribute(domain.InfoSourceAsset)
	assert.True(t, ok, "the universal record uses the unqualified name")
	_, ok = prim.Attribute(domain.InfoSourceAsset + ":universal")
	assert.False(t, ok)

	got, ok := whiterPale.GetSourceAsset("osl")
	assert.True(t, ok)
	assert.Equal(t, oslAsset, got)
	got, _ = whiterPale.GetSourceAsset(domain.UniversalSourceTypeName)
	assert.Equal(t, oslAsset, got)
	sub, _ := whiterPale.GetSourceAssetSubIdentifier("glslfx")
	assert.Equal(t, "main", sub)
	assert.Empty(t, whiterPale.GetSourceTypes())

	require.NoError(t, whiterPale.SetSourceCode("code", domain.UniversalSourceTypeName))
	code, ok := whiterPale.GetSourceCode(domain.UniversalSourceType)
	assert.True(t, ok)
	assert.Equal(t, "code", code)
	assert.Empty(t, whiterPale.GetSourceTypes())
}

func TestShader_SourceAssetSubIdentifier(t *testing.T) {
	f := setupStage(t)
	whiterPale := f.whiterPale

	require.NoError(t, whiterPale.SetImplementationSource(domain.ImplementationID))
	require.NoError(t, whiterPale.SetSourceAssetSubIdentifier("mySubIdentifier", domain.UniversalSourceType))
	sub, ok := whiterPale.GetSourceAssetSubIdentifier(domain.UniversalSourceType)
	assert.True(t, ok)
	assert.Equal(t, "mySubIdentifier", sub)
	assert.Equal(t, domain.ImplementationSourceAsset, whiterPale.GetImplementationSource())

	tests := []struct {
		sourceType string
		subID      string
	}{
		{domain.UniversalSourceType, "myUniversalSubIdentifier"},
		{"osl", "myOSLSubIdentifier"},
	}
	for _, tt := range tests {
		require.NoError(t, whiterPale.SetSourceAsset("someSourceAsset", tt.sourceType))
		require.NoError(t, whiterPale.SetSourceAssetSubIdentifier(tt.subID, tt.sourceType))
		got, _ := whiterPale.GetSourceAssetSubIdentifier(tt.sourceType)
		assert.Equal(t, tt.subID, got)
	}

	got, _ := whiterPale.GetSourceAssetSubIdentifier("glslfx")
	assert.Equal(t, "myUniversalSubIdentifier", got, "falls back to the universal record")

	err := whiterPale.SetSourceAsset("x", domain.SubIdentifierKey)
	assert.ErrorIs(t, err, domain.ErrReservedSourceType)
	err = whiterPale.SetSourceCode("x", "a:b")
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestShader_GetSourceTypes(t *testing.T) {
	f := setupStage(t)
	pale := f.pale

	require.NoError(t, pale.SetShaderId("SharedFloat_1"))
	assert.Empty(t, pale.GetSourceTypes())

	require.NoError(t, pale.SetImplementationSource(domain.ImplementationSourceCode))
	_, ok := pale.GetShaderId()
	assert.False(t, ok)
	assert.Empty(t, pale.GetSourceTypes())

	require.NoError(t, pale.SetSourceCode("This is the shader source", "osl"))
	assert.Equal(t, []string{"osl"}, pale.GetSourceTypes())

	require.NoError(t, pale.SetSourceCode("This is the shader source", "glslfx"))
	require.NoError(t, pale.SetSourceCode("universal", domain.UniversalSourceType))
	assert.Equal(t, []string{"glslfx", "osl"}, pale.GetSourceTypes())

	require.NoError(t, pale.SetImplementationSource(domain.ImplementationSourceAsset))
	require.NoError(t, pale.SetSourceAsset("/source/asset.glslfx", "glslfx"))
	require.NoError(t, pale.SetSourceAssetSubIdentifier("sub", "mdl"))
	assert.Equal(t, []string{"glslfx"}, pale.GetSourceTypes())
}

func TestShader_ImplementationVariant(t *testing.T) {
	f := setupStage(t)
	pale := f.pale

	require.NoError(t, pale.SetShaderId("SharedFloat_1"))
	assert.Equal(t, shade.IDImplementation{ID: "SharedFloat_1"}, pale.Implementation())

	require.NoError(t, pale.SetSourceAsset("/a.glslfx", "glslfx"))
	require.NoError(t, pale.SetSourceAssetSubIdentifier("main", "glslfx"))
	require.NoError(t, pale.SetSourceAsset("/a.osl", domain.UniversalSourceType))

	impl, ok := pale.Implementation().(shade.AssetImplementation)
	require.True(t, ok)
	assert.Equal(t, map[string]shade.AssetRecord{
		"":       {Asset: "/a.osl"},
		"glslfx": {Asset: "/a.glslfx", SubIdentifier: "main"},
	}, impl.Assets)
	assert.Equal(t, []string{"", "glslfx"}, impl.SourceTypes())

	require.NoError(t, pale.SetSourceCode("void main() {}", "glslfx"))
	code, ok := pale.Implementation().(shade.CodeImplementation)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"glslfx": "void main() {}"}, code.Code)
	assert.Equal(t, domain.ImplementationSourceCode, code.Source())
}

func TestShader_ImplementationInherited(t *testing.T) {
	f := setupStage(t)

	require.NoError(t, f.classPale.SetSourceAsset("/class.osl", domain.UniversalSourceType))
	got, ok := f.pale.GetSourceAsset("osl")
	assert.True(t, ok)
	assert.Equal(t, domain.AssetPath("/class.osl"), got)

	require.NoError(t, f.pale.SetImplementationSource(domain.ImplementationID))
	_, ok = f.pale.GetSourceAsset("osl")
	assert.False(t, ok, "a local token overrides the inherited one")
}

func TestShader_InvalidImplementationToken(t *testing.T) {
	f := setupStage(t)
	assert.ErrorIs(t, f.pale.SetImplementationSource("bogus"), domain.ErrInvalidValue)
}
