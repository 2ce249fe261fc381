// Package metrics expone los contadores Prometheus del servicio.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/origon-auth/internal/domain/entity"
)

// Metrics colectores de operaciones de autenticación y de HTTP.
type Metrics struct {
	authOps      *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registra los colectores en reg (prometheus.DefaultRegisterer si es nil).
// Registrar dos veces reutiliza los colectores existentes.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	authOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "origon",
		Subsystem: "auth",
		Name:      "operations_total",
		Help:      "Operaciones de autenticación por variante, operación y resultado.",
	}, []string{"kind", "op", "outcome"})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "origon",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Peticiones HTTP por método, ruta y status.",
	}, []string{"method", "route", "status"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "origon",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latencia de las peticiones HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	var err error
	if authOps, err = register(reg, authOps); err != nil {
		return nil, err
	}
	if httpRequests, err = register(reg, httpRequests); err != nil {
		return nil, err
	}
	if httpDuration, err = register(reg, httpDuration); err != nil {
		return nil, err
	}
	return &Metrics{authOps: authOps, httpRequests: httpRequests, httpDuration: httpDuration}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Record cuenta una operación de autenticación.
func (m *Metrics) Record(kind entity.Kind, op, outcome string) {
	m.authOps.WithLabelValues(string(kind), op, outcome).Inc()
}

// ObserveHTTP cuenta una petición HTTP y su latencia.
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
