package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/shadenet"
	shttp "github.com/aretw0/shadenet/pkg/adapters/http"
	"github.com/aretw0/shadenet/pkg/adapters/memory"
	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/observability"
	"github.com/aretw0/shadenet/pkg/shade"
	"github.com/aretw0/shadenet/pkg/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const network = `
shaders:
  /Texture:
    id: UsdUVTexture
    outputs:
      rgb: {type: color3f}
  /Materials/Pale:
    source_asset:
      universal: {asset: /shaders/pale.osl}
    inputs:
      diffuseColor: {type: color3f, connect: /Texture.outputs:rgb}
`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	metrics := observability.NewMetrics()
	eng, err := shadenet.New("", shadenet.WithStore(memory.NewStore()), shadenet.WithMetrics(metrics))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, eng.Import(ctx, "pale", []byte(network)))
	require.NoError(t, eng.Edit(ctx, "broken", func(st *stage.Stage) error {
		_, err := shade.Define(st, "/Orphan")
		return err
	}))
	return shttp.NewHandler(eng, shttp.WithMetrics(metrics.Handler()))
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", url, nil))
	return w
}

func TestServer_Layers(t *testing.T) {
	h := newTestHandler(t)

	w := get(t, h, "/layers")
	require.Equal(t, http.StatusOK, w.Code)
	var ids []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ids))
	assert.Equal(t, []string{"broken", "pale"}, ids)

	w = get(t, h, "/layers/pale")
	require.Equal(t, http.StatusOK, w.Code)
	var layer domain.Layer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &layer))
	assert.Len(t, layer.Prims, 2)

	w = get(t, h, "/layers/ghost")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Shaders(t *testing.T) {
	h := newTestHandler(t)

	w := get(t, h, "/layers/pale/shaders")
	require.Equal(t, http.StatusOK, w.Code)
	var summaries []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 2)

	w = get(t, h, "/layers/pale/shaders/Materials/Pale")
	require.Equal(t, http.StatusOK, w.Code)
	var pale struct {
		Path                 string `json:"path"`
		ImplementationSource string `json:"implementationSource"`
		Inputs               []struct {
			Name    string   `json:"name"`
			Sources []string `json:"sources"`
		} `json:"inputs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pale))
	assert.Equal(t, "/Materials/Pale", pale.Path)
	assert.Equal(t, "sourceAsset", pale.ImplementationSource)
	require.Len(t, pale.Inputs, 1)
	assert.Equal(t, []string{"/Texture.outputs:rgb"}, pale.Inputs[0].Sources)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/layers/pale/shaders/Nope").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/layers/pale/shaders/1bad").Code)
}

func TestServer_GraphAndValidate(t *testing.T) {
	h := newTestHandler(t)

	w := get(t, h, "/layers/pale/graph")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph LR"))
	assert.Contains(t, w.Body.String(), `Texture -- "rgb → diffuseColor" --> Materials_Pale`)

	var report shttp.ValidationReport
	w = get(t, h, "/layers/pale/validate")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.True(t, report.Valid)
	assert.Empty(t, report.Issues)

	w = get(t, h, "/layers/broken/validate")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.False(t, report.Valid)
	require.Len(t, report.Issues, 1)
	assert.Contains(t, report.Issues[0], "/Orphan")
}

func TestServer_HealthInfoMetrics(t *testing.T) {
	h := newTestHandler(t)

	w := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(t, h, "/info")
	assert.Contains(t, w.Body.String(), strings.TrimSpace(shadenet.Version))

	w = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shadenet_layer_operations_total")
}
