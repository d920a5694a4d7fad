package api

import "github.com/prometheus/client_golang/prometheus"

type metrics interface {
	incRequests(endpoint string)
}

type noopMetrics struct{}

func (noopMetrics) incRequests(string) {}

type promMetrics struct {
	requests *prometheus.CounterVec
}

func newPromMetrics(labels prometheus.Labels) *promMetrics {
	p := &promMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "subnetear_api_requests_count",
			Help:        "subnetear handled API requests count by endpoint",
			ConstLabels: labels,
		}, []string{"endpoint"}),
	}
	return p
}

func (m *promMetrics) Describe(d chan<- *prometheus.Desc) {
	m.requests.Describe(d)
}

func (m *promMetrics) Collect(c chan<- prometheus.Metric) {
	m.requests.Collect(c)
}

func (m *promMetrics) incRequests(endpoint string) {
	m.requests.WithLabelValues(endpoint).Inc()
}
