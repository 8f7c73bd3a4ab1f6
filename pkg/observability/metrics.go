package observability

import (
	"net/http"
	"strconv"

	"github.com/aretw0/shadenet/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts authoring events reported through domain.LifecycleHooks.
type Metrics struct {
	registry       *prometheus.Registry
	primEvents     *prometheus.CounterVec
	propertyEvents *prometheus.CounterVec
	layerOps       *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		primEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shadenet_prim_events_total",
				Help: "Total number of prim authoring events",
			},
			[]string{"type"},
		),
		propertyEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shadenet_property_events_total",
				Help: "Total number of attribute and dictionary authoring events",
			},
			[]string{"type", "cleared"},
		),
		layerOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shadenet_layer_operations_total",
				Help: "Total number of layer store operations",
			},
			[]string{"op", "result"},
		),
	}
	m.registry.MustRegister(m.primEvents, m.propertyEvents, m.layerOps)
	return m
}

// Hooks returns lifecycle hooks that feed the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPrimChange: func(e *domain.PrimEvent) {
			m.primEvents.WithLabelValues(string(e.Type)).Inc()
		},
		OnPropertyChange: func(e *domain.PropertyEvent) {
			m.propertyEvents.WithLabelValues(string(e.Type), strconv.FormatBool(e.Cleared)).Inc()
		},
	}
}

// ObserveLayerOp records the outcome of a layer store operation.
func (m *Metrics) ObserveLayerOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.layerOps.WithLabelValues(op, result).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
