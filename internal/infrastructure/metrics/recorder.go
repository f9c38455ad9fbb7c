// Package metrics expone las métricas del servicio en formato Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implementa billing.ExportRecorder y las métricas HTTP.
type Recorder struct {
	registry *prometheus.Registry

	exportsTotal   *prometheus.CounterVec
	exportDuration *prometheus.HistogramVec
	degradedTotal  *prometheus.CounterVec
	requestsTotal  *prometheus.CounterVec
}

// NewRecorder crea las métricas en un registro propio con el namespace dado.
func NewRecorder(namespace string) *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.exportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoice_exports_total",
		Help:      "Exportaciones de facturas a PDF por resultado.",
	}, []string{"outcome"})

	r.exportDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "invoice_export_duration_seconds",
		Help:      "Duración del pipeline de exportación.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"outcome"})

	r.degradedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoice_render_degraded_total",
		Help:      "Pasos opcionales omitidos durante el render (qr, logo, watermark).",
	}, []string{"reason"})

	r.requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Peticiones HTTP por método, ruta y estado.",
	}, []string{"method", "route", "status"})

	r.registry.MustRegister(
		r.exportsTotal,
		r.exportDuration,
		r.degradedTotal,
		r.requestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveExport registra una exportación.
func (r *Recorder) ObserveExport(outcome string, elapsed time.Duration) {
	r.exportsTotal.WithLabelValues(outcome).Inc()
	r.exportDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveDegraded registra un paso opcional omitido.
func (r *Recorder) ObserveDegraded(reason string) {
	r.degradedTotal.WithLabelValues(reason).Inc()
}

// ObserveRequest registra una petición HTTP; route es la plantilla de la ruta
// (/api/invoices/:id/pdf), no la URL concreta.
func (r *Recorder) ObserveRequest(method, route string, status int) {
	r.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler devuelve el endpoint /metrics del registro.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry devuelve el registro (tests).
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }
