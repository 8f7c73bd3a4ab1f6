package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.LayerStore
	logger *slog.Logger
}

// NewLoggingMiddleware creates a middleware that logs every store operation
// at debug level, and failures at warn level. A missing layer is not a failure.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.LayerStore) ports.LayerStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, id string, start time.Time, err error) {
	attrs := []any{"op", op, "duration", time.Since(start)}
	if id != "" {
		attrs = append(attrs, "layer", id)
	}
	if err != nil && !errors.Is(err, domain.ErrLayerNotFound) {
		m.logger.WarnContext(ctx, "Layer store operation failed", append(attrs, "err", err)...)
		return
	}
	m.logger.DebugContext(ctx, "Layer store operation", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, id string, layer *domain.Layer) error {
	start := time.Now()
	err := m.next.Save(ctx, id, layer)
	m.log(ctx, "save", id, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, id string) (*domain.Layer, error) {
	start := time.Now()
	layer, err := m.next.Load(ctx, id)
	m.log(ctx, "load", id, start, err)
	return layer, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.log(ctx, "delete", id, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return ids, err
}
