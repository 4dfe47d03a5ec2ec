package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the service collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "shelter",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shelter",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shelter",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms a ~5s
		},
		[]string{"method", "route"},
	)

	sequenceIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shelter",
			Subsystem: "sequence",
			Name:      "issued_total",
			Help:      "Total number of identifiers issued per counter.",
		},
		[]string{"counter"},
	)

	sequenceLast = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "shelter",
			Subsystem: "sequence",
			Name:      "last_value",
			Help:      "Last identifier issued per counter by this process.",
		},
		[]string{"counter"},
	)

	storeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shelter",
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Storage failures per resource and operation.",
		},
		[]string{"resource", "op"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		sequenceIssued,
		sequenceLast,
		storeErrors,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler expone las métricas registradas.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler mide cada request usando el patrón de ruta de chi como label
// (así /zivotinje/1 y /zivotinje/2 caen en la misma serie).
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := RoutePattern(r)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordSequence registra un id emitido por el Sequence Store.
func RecordSequence(counter string, value int64) {
	sequenceIssued.WithLabelValues(counter).Inc()
	sequenceLast.WithLabelValues(counter).Set(float64(value))
}

// RecordStoreError cuenta fallas de almacenamiento.
func RecordStoreError(resource, op string) {
	storeErrors.WithLabelValues(resource, op).Inc()
}

// RoutePattern devuelve el patrón chi de la request, o "unmatched".
func RoutePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "unmatched"
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
