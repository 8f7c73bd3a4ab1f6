package cli

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/shadenet/internal/config"
	"github.com/aretw0/shadenet/internal/logging"
	"github.com/aretw0/shadenet/pkg/adapters/file"
	"github.com/aretw0/shadenet/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/shadenet/pkg/adapters/redis"
	"github.com/aretw0/shadenet/pkg/shade"
	"github.com/aretw0/shadenet/pkg/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuntime(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Store.Backend = config.BackendMemory

		rt, err := NewRuntime(cfg, false)
		require.NoError(t, err)
		defer rt.Close()
		assert.IsType(t, &memory.Store{}, rt.Engine.Store())
	})

	t.Run("file", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Store.Dir = t.TempDir()
		cfg.Store.Format = "json"

		rt, err := NewRuntime(cfg, false)
		require.NoError(t, err)
		defer rt.Close()
		store, ok := rt.Engine.Store().(*file.Store)
		require.True(t, ok)
		assert.Equal(t, file.FormatJSON, store.Format)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.DefaultConfig()
		cfg.Store.Backend = config.BackendRedis
		cfg.Store.Redis.Addr = mr.Addr()

		rt, err := NewRuntime(cfg, false)
		require.NoError(t, err)
		defer rt.Close()
		assert.IsType(t, &redisAdapter.Store{}, rt.Engine.Store())

		err = rt.Engine.Edit(context.Background(), "pale", func(st *stage.Stage) error {
			_, err := shade.Define(st, "/Pale")
			return err
		})
		require.NoError(t, err)
		ids, err := rt.Engine.Layers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"pale"}, ids)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Store.Backend = "s3"
		_, err := NewRuntime(cfg, false)
		assert.Error(t, err)
	})
}

func TestDebugHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug, "text")

	st := stage.New(stage.WithLifecycleHooks(createDebugHooks(logger)))
	pale, err := shade.Define(st, "/Pale")
	require.NoError(t, err)
	require.NoError(t, pale.SetSdrMetadataByKey("role", "surface"))

	out := buf.String()
	assert.Contains(t, out, "Prim Change")
	assert.Contains(t, out, "path=/Pale")
	assert.Contains(t, out, "Property Change")
}
