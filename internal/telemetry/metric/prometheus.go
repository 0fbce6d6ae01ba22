package metric

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "mitaina"

// Registry holds all client metrics.
type Registry struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	TransportErrors prometheus.Counter
	SessionExpired  prometheus.Counter
	Navigations     *prometheus.CounterVec
}

// NewRegistry creates a registry with all client metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "API requests by method and response status",
		}, []string{"method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "API request latency",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method"}),
		TransportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "transport_errors_total",
			Help:      "API requests that failed without an HTTP response",
		}),
		SessionExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "session_expired_total",
			Help:      "401 responses that cleared the stored session token",
		}),
		Navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "navigations_total",
			Help:      "Completed navigations by route and whether a guard redirected",
		}, []string{"route", "redirected"}),
	}

	r.registry.MustRegister(
		r.RequestsTotal,
		r.RequestDuration,
		r.TransportErrors,
		r.SessionExpired,
		r.Navigations,
	)
	return r
}

// ObserveRequest records one completed HTTP exchange.
func (r *Registry) ObserveRequest(method string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	r.RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveTransportError records a request that never got a response.
func (r *Registry) ObserveTransportError(method string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.TransportErrors.Inc()
	r.RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveSessionExpired records a 401-triggered logout.
func (r *Registry) ObserveSessionExpired() {
	if r == nil {
		return
	}
	r.SessionExpired.Inc()
}

// ObserveNavigation records a completed navigation.
func (r *Registry) ObserveNavigation(route string, redirected bool) {
	if r == nil {
		return
	}
	r.Navigations.WithLabelValues(route, strconv.FormatBool(redirected)).Inc()
}

// Sample is one flattened metric value.
type Sample struct {
	Name   string  `json:"name" yaml:"name"`
	Labels string  `json:"labels" yaml:"labels"`
	Value  float64 `json:"value" yaml:"value"`
}

// Snapshot gathers the registry into a stable, sorted list of samples.
// Histograms contribute their _count and _sum.
func (r *Registry) Snapshot() ([]Sample, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var samples []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := formatLabels(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				samples = append(samples, Sample{mf.GetName(), labels, m.GetCounter().GetValue()})
			case dto.MetricType_GAUGE:
				samples = append(samples, Sample{mf.GetName(), labels, m.GetGauge().GetValue()})
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				samples = append(samples,
					Sample{mf.GetName() + "_count", labels, float64(h.GetSampleCount())},
					Sample{mf.GetName() + "_sum", labels, h.GetSampleSum()},
				)
			}
		}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		if samples[i].Name != samples[j].Name {
			return samples[i].Name < samples[j].Name
		}
		return samples[i].Labels < samples[j].Labels
	})
	return samples, nil
}

// Prometheus exposes the underlying registry.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.GetName()+"="+p.GetValue())
	}
	return strings.Join(parts, ",")
}
