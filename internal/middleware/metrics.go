package middleware

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vyrodovalexey/devproxy/internal/observability"
)

// httpMetrics holds Prometheus metrics for the HTTP pipeline.
type httpMetrics struct {
	requestsTotal *prometheus.CounterVec
}

var (
	pipelineMetrics     *httpMetrics
	pipelineMetricsOnce sync.Once
)

func getHTTPMetrics() *httpMetrics {
	pipelineMetricsOnce.Do(func() {
		pipelineMetrics = &httpMetrics{
			requestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "devproxy",
					Subsystem: "http",
					Name:      "requests_total",
					Help:      "Total number of HTTP requests by method and status",
				},
				[]string{"method", "status"},
			),
		}
	})
	return pipelineMetrics
}

// Metrics returns a middleware that records request counters and the
// in-flight gauge.
func Metrics() func(http.Handler) http.Handler {
	m := getHTTPMetrics()
	inFlight := observability.GetProxyMetrics().RequestsInFlight

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inFlight.Inc()
			defer inFlight.Dec()

			rw := &responseWriter{
				ResponseWriter: w,
				status:         http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			m.requestsTotal.WithLabelValues(r.Method, strconv.Itoa(rw.status)).Inc()
		})
	}
}
