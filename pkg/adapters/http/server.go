package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/shadenet"
	"github.com/aretw0/shadenet/internal/logging"
	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/aretw0/shadenet/pkg/schema"
	"github.com/aretw0/shadenet/pkg/shade"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Engine defines the read side of the shadenet engine served over HTTP.
type Engine interface {
	Layers(ctx context.Context) ([]string, error)
	Export(ctx context.Context, id string) (*domain.Layer, error)
	Inspect(ctx context.Context, id string) ([]shade.Summary, error)
	Describe(ctx context.Context, id string, path domain.Path) (shade.Summary, error)
	Validate(ctx context.Context, id string) error
	Graph(ctx context.Context, id string) (string, error)
}

var _ Engine = (*shadenet.Engine)(nil)

// Server serves read-only inspection of stored layers.
type Server struct {
	Engine  Engine
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts a Prometheus handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// ValidationReport is the body of GET /layers/{id}/validate.
type ValidationReport struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	r.Route("/layers", func(r chi.Router) {
		r.Get("/", server.ListLayers)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", server.GetLayer)
			r.Get("/shaders", server.ListShaders)
			r.Get("/shaders/*", server.GetShader)
			r.Get("/graph", server.GetGraph)
			r.Get("/validate", server.GetValidation)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListLayers handles the GET /layers request.
func (s *Server) ListLayers(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.Layers(r.Context())
	if err != nil {
		s.fail(w, "ListLayers", err)
		return
	}
	s.writeJSON(w, "ListLayers", ids)
}

// GetLayer handles the GET /layers/{id} request.
func (s *Server) GetLayer(w http.ResponseWriter, r *http.Request) {
	layer, err := s.Engine.Export(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetLayer", err)
		return
	}
	s.writeJSON(w, "GetLayer", layer)
}

// ListShaders handles the GET /layers/{id}/shaders request.
func (s *Server) ListShaders(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.Engine.Inspect(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "ListShaders", err)
		return
	}
	s.writeJSON(w, "ListShaders", summaries)
}

// GetShader handles the GET /layers/{id}/shaders/{path...} request.
// The prim path is taken from the rest of the URL: /shaders/Model/Pale is /Model/Pale.
func (s *Server) GetShader(w http.ResponseWriter, r *http.Request) {
	path := domain.Path("/" + strings.Trim(chi.URLParam(r, "*"), "/"))
	if !path.IsValid() {
		http.Error(w, "invalid prim path: "+path.String(), http.StatusBadRequest)
		return
	}
	summary, err := s.Engine.Describe(r.Context(), chi.URLParam(r, "id"), path)
	if err != nil {
		s.fail(w, "GetShader", err)
		return
	}
	s.writeJSON(w, "GetShader", summary)
}

// GetGraph handles the GET /layers/{id}/graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	chart, err := s.Engine.Graph(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetGraph", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(chart))
}

// GetValidation handles the GET /layers/{id}/validate request.
// An inconsistent layer is still a 200 response with Valid unset.
func (s *Server) GetValidation(w http.ResponseWriter, r *http.Request) {
	err := s.Engine.Validate(r.Context(), chi.URLParam(r, "id"))
	issues := schema.ValidationErrors(err)
	if err != nil && issues == nil {
		s.fail(w, "GetValidation", err)
		return
	}

	report := ValidationReport{Valid: err == nil, Issues: []string{}}
	for _, issue := range issues {
		report.Issues = append(report.Issues, issue.Error())
	}
	s.writeJSON(w, "GetValidation", report)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, "GetHealth", map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, "GetInfo", map[string]string{
		"app":     "shadenet-http",
		"version": strings.TrimSpace(shadenet.Version),
	})
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrLayerNotFound), errors.Is(err, domain.ErrPrimNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidPath), errors.Is(err, domain.ErrInvalidName):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
		s.logger.Error(op+" failed", "err", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, op string, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(op+" response encode failed", "err", err)
	}
}
