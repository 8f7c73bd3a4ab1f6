package stage

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/shadenet/internal/logging"
	"github.com/aretw0/shadenet/pkg/domain"
)

// Stage is an in-memory set of prims and their opinions.
type Stage struct {
	prims map[domain.Path]*Prim
	order []domain.Path
	doc   string

	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option configures a Stage.
type Option func(*Stage)

// WithLogger sets the structured logger used to trace authoring.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers authoring hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Stage) {
		s.hooks = hooks
	}
}

// New creates an empty stage.
func New(opts ...Option) *Stage {
	s := &Stage{
		prims:  make(map[domain.Path]*Prim),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLifecycleHooks replaces the authoring hooks. Stores build stages
// without hooks and attach them once loading is done, so reads emit nothing.
func (s *Stage) SetLifecycleHooks(hooks domain.LifecycleHooks) { s.hooks = hooks }

// SetLogger replaces the stage logger. A nil logger is ignored.
func (s *Stage) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Logger returns the stage logger.
func (s *Stage) Logger() *slog.Logger { return s.logger }

// Doc returns the stage documentation string.
func (s *Stage) Doc() string { return s.doc }

// SetDoc sets the stage documentation string.
func (s *Stage) SetDoc(doc string) { s.doc = doc }

// DefinePrim makes path a concrete prim of the given type, creating it if needed.
// An existing class or over becomes a def.
func (s *Stage) DefinePrim(path domain.Path, typeName string) (*Prim, error) {
	return s.author(path, domain.SpecifierDef, typeName, true)
}

// CreateClassPrim creates an abstract prim meant to be inherited from.
// An existing prim at path is turned into a class.
func (s *Stage) CreateClassPrim(path domain.Path) (*Prim, error) {
	return s.author(path, domain.SpecifierClass, "", false)
}

// OverridePrim returns the prim at path, creating an over if it does not exist.
func (s *Stage) OverridePrim(path domain.Path) (*Prim, error) {
	if p, ok := s.prims[path]; ok {
		return p, nil
	}
	return s.author(path, domain.SpecifierOver, "", false)
}

func (s *Stage) author(path domain.Path, spec domain.Specifier, typeName string, setType bool) (*Prim, error) {
	if !path.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPath, path)
	}

	p, ok := s.prims[path]
	if !ok {
		p = &Prim{
			stage: s,
			path:  path,
			attrs: make(map[string]*Attribute),
			dicts: make(map[string]map[string]string),
		}
		s.prims[path] = p
		s.order = append(s.order, path)
	}
	p.specifier = spec
	if setType {
		p.typeName = typeName
	}

	s.logger.Debug("prim authored", "path", path, "specifier", spec, "type", p.typeName)
	s.emitPrim(domain.EventPrimDefine, p)
	return p, nil
}

// Prim returns the prim at path.
func (s *Stage) Prim(path domain.Path) (*Prim, bool) {
	p, ok := s.prims[path]
	return p, ok
}

// RemovePrim deletes the prim at path and every opinion it holds.
// Arcs pointing at it from other prims are left in place and contribute nothing.
func (s *Stage) RemovePrim(path domain.Path) bool {
	p, ok := s.prims[path]
	if !ok {
		return false
	}
	delete(s.prims, path)
	for i, existing := range s.order {
		if existing == path {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.logger.Debug("prim removed", "path", path)
	s.emitPrim(domain.EventPrimRemove, p)
	return true
}

// Prims returns the prims in definition order.
// The slice is a snapshot; later definitions are not reflected in it.
func (s *Stage) Prims() []*Prim {
	out := make([]*Prim, 0, len(s.order))
	for _, path := range s.order {
		out = append(out, s.prims[path])
	}
	return out
}

func (s *Stage) emitPrim(typ domain.EventType, p *Prim) {
	if s.hooks.OnPrimChange == nil {
		return
	}
	s.hooks.OnPrimChange(&domain.PrimEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ},
		Path:      p.path,
		Specifier: p.specifier,
		TypeName:  p.typeName,
	})
}

func (s *Stage) emitProperty(typ domain.EventType, path domain.Path, property, field string, cleared bool) {
	s.logger.Debug("property authored",
		"event", typ,
		"path", path,
		"property", property,
		"field", field,
		"cleared", cleared,
	)
	if s.hooks.OnPropertyChange == nil {
		return
	}
	s.hooks.OnPropertyChange(&domain.PropertyEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ},
		Path:      path,
		Property:  property,
		Field:     field,
		Cleared:   cleared,
	})
}
