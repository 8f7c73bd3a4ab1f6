package shadenet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/shadenet/internal/compiler"
	"github.com/aretw0/shadenet/internal/logging"
	"github.com/aretw0/shadenet/internal/presentation/graph"
	"github.com/aretw0/shadenet/internal/validator"
	"github.com/aretw0/shadenet/pkg/adapters/file"
	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/observability"
	"github.com/aretw0/shadenet/pkg/persistence/middleware"
	"github.com/aretw0/shadenet/pkg/ports"
	"github.com/aretw0/shadenet/pkg/schema"
	"github.com/aretw0/shadenet/pkg/shade"
	"github.com/aretw0/shadenet/pkg/stage"
	"github.com/aretw0/shadenet/pkg/workspace"
)

// Engine is the high-level entry point for the shadenet library.
// It binds a layer store to a workspace manager and exposes the
// authoring, inspection and validation operations over stored layers.
type Engine struct {
	store   ports.LayerStore
	locker  ports.DistributedLocker
	manager *workspace.Manager
	parser  *compiler.Parser
	metrics *observability.Metrics
	hooks   domain.LifecycleHooks
	mws     []middleware.Middleware
	logger  *slog.Logger
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects a custom LayerStore, bypassing the default file store.
func WithStore(store ports.LayerStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed locking of layer edits.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLifecycleHooks registers authoring hooks on every stage the engine opens.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMetrics counts authoring events and layer operations.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithStoreMiddleware wraps the layer store with additional middleware,
// inside the default logging and integrity checks.
func WithStoreMiddleware(mws ...middleware.Middleware) Option {
	return func(e *Engine) {
		e.mws = append(e.mws, mws...)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Engine.
// By default, it stores layers as YAML files under dir.
// If WithStore is provided, dir can be empty and only names the engine.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{parser: compiler.NewParser()}

	// Apply Options first to check if a store is provided
	for _, opt := range opts {
		opt(eng)
	}

	if eng.store == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom store is provided")
		}
		absPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)
		eng.store = file.New(absPath)
	} else if dir != "" {
		eng.Name = filepath.Base(dir)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("project", eng.Name)
	}

	mws := append([]middleware.Middleware{
		middleware.NewLoggingMiddleware(eng.logger),
		middleware.NewIntegrityMiddleware(),
	}, eng.mws...)
	eng.store = middleware.Chain(eng.store, mws...)

	hooks := eng.hooks
	if eng.metrics != nil {
		hooks = hooks.Merge(eng.metrics.Hooks())
	}

	managerOpts := []workspace.Option{
		workspace.WithLogger(eng.logger),
		workspace.WithLifecycleHooks(hooks),
	}
	if eng.locker != nil {
		managerOpts = append(managerOpts, workspace.WithLocker(eng.locker))
	}
	eng.manager = workspace.NewManager(eng.store, managerOpts...)

	return eng, nil
}

func (e *Engine) observe(op string, err error) {
	if e.metrics != nil {
		e.metrics.ObserveLayerOp(op, err)
	}
}

// Open loads a stored layer into a stage.
func (e *Engine) Open(ctx context.Context, id string) (*stage.Stage, error) {
	st, err := e.manager.Load(ctx, id)
	e.observe("open", err)
	return st, err
}

// Create opens a layer, persisting an empty one if it does not exist yet.
func (e *Engine) Create(ctx context.Context, id string) (*stage.Stage, error) {
	st, err := e.manager.LoadOrCreate(ctx, id)
	e.observe("create", err)
	return st, err
}

// Edit applies fn to the layer's stage and saves the result atomically with
// respect to other edits of the same layer. A missing layer starts empty.
func (e *Engine) Edit(ctx context.Context, id string, fn func(*stage.Stage) error) error {
	err := e.manager.Edit(ctx, id, fn)
	e.observe("edit", err)
	return err
}

// Save stores st under id, replacing the previous layer.
func (e *Engine) Save(ctx context.Context, id string, st *stage.Stage) error {
	err := e.manager.Save(ctx, id, st)
	e.observe("save", err)
	return err
}

// Delete removes a layer.
func (e *Engine) Delete(ctx context.Context, id string) error {
	err := e.manager.Delete(ctx, id)
	e.observe("delete", err)
	return err
}

// Layers lists the stored layer IDs.
func (e *Engine) Layers(ctx context.Context) ([]string, error) {
	ids, err := e.manager.List(ctx)
	e.observe("list", err)
	return ids, err
}

// Import parses a YAML or JSON document (a layer or a compact network),
// checks that it composes and stores it under id.
func (e *Engine) Import(ctx context.Context, id string, data []byte) error {
	layer, err := e.parser.Parse(data)
	if err != nil {
		e.observe("import", err)
		return err
	}
	st, err := stage.FromLayer(layer, stage.WithLogger(e.logger))
	if err != nil {
		e.observe("import", err)
		return err
	}
	return e.Save(ctx, id, st)
}

// Inspect returns the resolved view of every prim of the layer.
func (e *Engine) Inspect(ctx context.Context, id string) ([]shade.Summary, error) {
	st, err := e.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	return shade.DescribeStage(st), nil
}

// Describe returns the resolved view of a single prim.
func (e *Engine) Describe(ctx context.Context, id string, path domain.Path) (shade.Summary, error) {
	st, err := e.Open(ctx, id)
	if err != nil {
		return shade.Summary{}, err
	}
	sh, ok := shade.Get(st, path)
	if !ok {
		return shade.Summary{}, fmt.Errorf("%w: %s", domain.ErrPrimNotFound, path)
	}
	return shade.Describe(sh), nil
}

// Validate reports broken inherits, dangling connections and shaders
// without an implementation record. It returns nil for a consistent layer.
func (e *Engine) Validate(ctx context.Context, id string) error {
	st, err := e.Open(ctx, id)
	if err != nil {
		return err
	}
	return validator.ValidateStage(st)
}

// Graph renders the layer as a Mermaid flowchart, highlighting prims with
// validation issues.
func (e *Engine) Graph(ctx context.Context, id string) (string, error) {
	st, err := e.Open(ctx, id)
	if err != nil {
		return "", err
	}

	var overlay *graph.GraphOverlay
	for _, err := range schema.ValidationErrors(validator.ValidateStage(st)) {
		var issue *validator.Issue
		if errors.As(err, &issue) {
			if overlay == nil {
				overlay = &graph.GraphOverlay{}
			}
			overlay.Invalid = append(overlay.Invalid, issue.Path)
		}
	}
	return graph.GenerateMermaid(st, overlay), nil
}

// Export returns the stored layer document.
func (e *Engine) Export(ctx context.Context, id string) (*domain.Layer, error) {
	st, err := e.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	return st.Export(), nil
}

// Store returns the LayerStore used by the engine, wrapped in its middleware.
func (e *Engine) Store() ports.LayerStore {
	return e.store
}

// Manager returns the workspace manager serializing layer access.
func (e *Engine) Manager() *workspace.Manager {
	return e.manager
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}
