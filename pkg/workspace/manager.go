package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/shadenet/internal/logging"
	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/ports"
	"github.com/aretw0/shadenet/pkg/stage"
)

// DefaultLockTTL bounds how long a distributed lock outlives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates layer access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.LayerStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager and the stages it loads.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithLifecycleHooks installs authoring hooks on every stage the Manager loads.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// NewManager creates a new Manager over the given layer store.
func NewManager(store ports.LayerStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

func (m *Manager) stageOptions() []stage.Option {
	return []stage.Option{
		stage.WithLogger(m.logger.With("component", "stage")),
		stage.WithLifecycleHooks(m.hooks),
	}
}

// NewStage creates an empty stage carrying the Manager's logger and hooks.
func (m *Manager) NewStage() *stage.Stage {
	return stage.New(m.stageOptions()...)
}

func (m *Manager) load(ctx context.Context, id string) (*stage.Stage, error) {
	layer, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	// Replaying the layer is not authoring: hooks and logger attach afterwards.
	st, err := stage.FromLayer(layer)
	if err != nil {
		return nil, fmt.Errorf("layer %s: %w", id, err)
	}
	st.SetLogger(m.logger.With("component", "stage"))
	st.SetLifecycleHooks(m.hooks)
	return st, nil
}

// Load retrieves a layer from the store and composes it into a stage.
func (m *Manager) Load(ctx context.Context, id string) (*stage.Stage, error) {
	var st *stage.Stage
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		st, err = m.load(ctx, id)
		return err
	})
	return st, err
}

// LoadOrCreate loads a layer. If not found, it persists and returns an empty one.
func (m *Manager) LoadOrCreate(ctx context.Context, id string) (*stage.Stage, error) {
	var st *stage.Stage
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		st, err = m.load(ctx, id)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrLayerNotFound) {
			return fmt.Errorf("failed to check layer existence: %w", err)
		}

		st = m.NewStage()
		// Persist immediately to reserve the ID
		if err := m.store.Save(ctx, id, st.Export()); err != nil {
			return fmt.Errorf("failed to initialize layer: %w", err)
		}
		m.logger.Info("layer created", "layer_id", id)
		return nil
	})
	return st, err
}

// Save persists the stage as a layer.
func (m *Manager) Save(ctx context.Context, id string, st *stage.Stage) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Save(ctx, id, st.Export())
	})
}

// Edit loads the layer (or starts an empty one), applies fn and saves the
// result, all under the layer lock. Nothing is saved when fn fails.
func (m *Manager) Edit(ctx context.Context, id string, fn func(*stage.Stage) error) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		st, err := m.load(ctx, id)
		if errors.Is(err, domain.ErrLayerNotFound) {
			st, err = m.NewStage(), nil
		}
		if err != nil {
			return err
		}

		if err := fn(st); err != nil {
			return err
		}
		if err := m.store.Save(ctx, id, st.Export()); err != nil {
			return fmt.Errorf("failed to save layer %s: %w", id, err)
		}
		m.logger.Debug("layer edited", "layer_id", id, "prims", len(st.Prims()))
		return nil
	})
}

// Delete removes the layer from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying layer store.
func (m *Manager) Store() ports.LayerStore {
	return m.store
}

// WithLock executes a function while holding the lock for the layer.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"layer_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
