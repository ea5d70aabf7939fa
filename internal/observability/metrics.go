package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProxyMetrics holds Prometheus metrics for the proxy engine.
type ProxyMetrics struct {
	ForwardedTotal   *prometheus.CounterVec
	PassedThrough    *prometheus.CounterVec
	ForwardFailures  *prometheus.CounterVec
	UpgradeBypasses  prometheus.Counter
	RequestsInFlight prometheus.Gauge
}

var (
	proxyMetrics     *ProxyMetrics
	proxyMetricsOnce sync.Once
)

// GetProxyMetrics returns the singleton proxy metrics instance.
func GetProxyMetrics() *ProxyMetrics {
	proxyMetricsOnce.Do(func() {
		proxyMetrics = newProxyMetrics()
	})
	return proxyMetrics
}

func newProxyMetrics() *ProxyMetrics {
	return &ProxyMetrics{
		ForwardedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "devproxy",
				Name:      "forwarded_total",
				Help:      "Total number of requests forwarded to a backend target",
			},
			[]string{"rule"},
		),
		PassedThrough: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "devproxy",
				Name:      "passed_through_total",
				Help:      "Total number of requests delegated to the local handler",
			},
			[]string{"reason"},
		),
		ForwardFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "devproxy",
				Name:      "forward_failures_total",
				Help:      "Total number of forwarder errors, by rule",
			},
			[]string{"rule"},
		),
		UpgradeBypasses: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "devproxy",
				Name:      "upgrade_bypasses_total",
				Help:      "Total number of connection-upgrade requests bypassing the proxy",
			},
		),
		RequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "devproxy",
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being handled",
			},
		),
	}
}

// MetricsHandler returns the HTTP handler serving the metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
