package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ContractLayer returns the layer RunLayerStoreContract round-trips. It
// exercises every field a store has to preserve, including blocked connections.
func ContractLayer() *domain.Layer {
	blocked := []domain.PropertyPath{}
	connected := []domain.PropertyPath{{Prim: "/Texture", Name: "outputs:rgb"}}
	return &domain.Layer{
		Doc: "contract",
		Prims: []domain.PrimSpec{
			{
				Path:      "/classPale",
				Specifier: domain.SpecifierClass,
				Attributes: []domain.AttributeSpec{
					{Name: "inputs:diffuseColor", TypeName: "color3f", Connections: &connected},
				},
				Dictionaries: map[string]map[string]string{
					domain.SdrMetadata: {domain.SdrKeyPrimvars: "st"},
				},
			},
			{
				Path:      "/Pale",
				Specifier: domain.SpecifierDef,
				TypeName:  domain.ShaderTypeName,
				Inherits:  []domain.Path{"/classPale"},
				Attributes: []domain.AttributeSpec{
					{Name: domain.InfoID, TypeName: "token", Value: "UsdPreviewSurface"},
					{Name: "inputs:diffuseColor", TypeName: "color3f", Connections: &blocked},
					{
						Name: "inputs:roughness", TypeName: "float", Value: 0.5,
						Metadata: map[string]string{domain.MetaDocumentation: "roughness"},
					},
				},
			},
		},
	}
}

// RunLayerStoreContract runs a suite of tests to verify that a LayerStore implementation
// adheres to the defined interface contract.
func RunLayerStoreContract(t *testing.T, store LayerStore) {
	ctx := context.Background()
	layerID := "contract-test-layer-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		layer := ContractLayer()

		err := store.Save(ctx, layerID, layer)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, layerID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "contract", loaded.Doc)
		require.Len(t, loaded.Prims, 2)

		class, pale := loaded.Prims[0], loaded.Prims[1]
		assert.Equal(t, domain.SpecifierClass, class.Specifier)
		assert.Equal(t, "st", class.Dictionaries[domain.SdrMetadata][domain.SdrKeyPrimvars])
		require.NotNil(t, class.Attributes[0].Connections)
		assert.Equal(t, []domain.PropertyPath{{Prim: "/Texture", Name: "outputs:rgb"}}, *class.Attributes[0].Connections)

		assert.Equal(t, []domain.Path{"/classPale"}, pale.Inherits)
		require.Len(t, pale.Attributes, 3)
		require.NotNil(t, pale.Attributes[1].Connections, "a blocked connection list must survive")
		assert.Empty(t, *pale.Attributes[1].Connections)
		assert.Nil(t, pale.Attributes[2].Connections, "an unauthored connection list must stay unauthored")
		assert.Equal(t, "UsdPreviewSurface", pale.Attributes[0].Value)
		// Decoders may widen numbers; only the value matters.
		assert.EqualValues(t, 0.5, pale.Attributes[2].Value)
		assert.Equal(t, "roughness", pale.Attributes[2].Metadata[domain.MetaDocumentation])
	})

	t.Run("Save isolates the caller", func(t *testing.T) {
		layer := ContractLayer()
		require.NoError(t, store.Save(ctx, layerID, layer))

		layer.Doc = "mutated"
		layer.Prims[0].Dictionaries[domain.SdrMetadata][domain.SdrKeyPrimvars] = "mutated"

		loaded, err := store.Load(ctx, layerID)
		require.NoError(t, err)
		assert.Equal(t, "contract", loaded.Doc)
		assert.Equal(t, "st", loaded.Prims[0].Dictionaries[domain.SdrMetadata][domain.SdrKeyPrimvars])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+layerID)
		assert.ErrorIs(t, err, domain.ErrLayerNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, layerID, ContractLayer())
		require.NoError(t, err)

		err = store.Delete(ctx, layerID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, layerID)
		assert.ErrorIs(t, err, domain.ErrLayerNotFound, "Load after Delete should return ErrLayerNotFound")

		assert.NoError(t, store.Delete(ctx, layerID), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := layerID + "-1"
		id2 := layerID + "-2"
		_ = store.Save(ctx, id1, ContractLayer())
		_ = store.Save(ctx, id2, ContractLayer())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.IsIncreasing(t, ids)
	})
}
