package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Filesystem metrics
	FSOperations *prometheus.CounterVec
	FSDuration   *prometheus.HistogramVec
	FSFiles      prometheus.Gauge
	FSFolders    prometheus.Gauge

	// AI metrics
	AIOperations *prometheus.CounterVec
	AIDuration   *prometheus.HistogramVec
	AICacheHits  prometheus.Counter
	AICacheMiss  prometheus.Counter
	AIFallbacks  *prometheus.CounterVec

	// Window metrics
	WindowsOpen  prometheus.Gauge
	WindowsTotal prometheus.Counter

	// Session metrics
	SessionsSaved    prometheus.Counter
	SessionsRestored prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
	registry  *prometheus.Registry

	// Snapshot for JSON API - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON stats endpoint
type Snapshot struct {
	TotalRequests int64
	TotalErrors   int64
	OpenWindows   int64
	Connections   int64
	TotalDuration float64 // sum of all request durations
	RequestCount  int64   // count for averaging
}

// NewMetrics creates a metrics collector on its own registry, so multiple
// collectors (one per server instance) never collide
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.NewRegistry())
}

// NewMetricsWith registers against an explicit registry
func NewMetricsWith(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),
		registry:  reg,

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reanimated_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reanimated_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reanimated_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reanimated_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Filesystem metrics
		FSOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reanimated_fs_operations_total",
				Help: "Total number of filesystem operations",
			},
			[]string{"operation", "status"},
		),
		FSDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reanimated_fs_operation_duration_seconds",
				Help:    "Filesystem operation duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"operation"},
		),
		FSFiles: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "reanimated_fs_files",
				Help: "Number of files in the virtual filesystem",
			},
		),
		FSFolders: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "reanimated_fs_folders",
				Help: "Number of folders in the virtual filesystem",
			},
		),

		// AI metrics
		AIOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reanimated_ai_operations_total",
				Help: "Total number of AI operations",
			},
			[]string{"operation", "provider", "status"},
		),
		AIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reanimated_ai_operation_duration_seconds",
				Help:    "AI operation duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation", "provider"},
		),
		AICacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "reanimated_ai_cache_hits_total",
				Help: "Total number of AI cache hits",
			},
		),
		AICacheMiss: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "reanimated_ai_cache_misses_total",
				Help: "Total number of AI cache misses",
			},
		),
		AIFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reanimated_ai_fallbacks_total",
				Help: "Total number of AI operations answered by a fallback",
			},
			[]string{"operation", "reason"},
		),

		// Window metrics
		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "reanimated_windows_open",
				Help: "Number of open desktop windows",
			},
		),
		WindowsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "reanimated_windows_total",
				Help: "Total number of windows opened",
			},
		),

		// Session metrics
		SessionsSaved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "reanimated_sessions_saved_total",
				Help: "Total number of desktop sessions saved",
			},
		),
		SessionsRestored: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "reanimated_sessions_restored_total",
				Help: "Total number of desktop sessions restored",
			},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "reanimated_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reanimated_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		// System metrics
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "reanimated_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}

	return m
}

// UpdateUptime refreshes the uptime gauge; the server calls it on a ticker
func (m *Metrics) UpdateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}

// Handler serves this collector's registry in exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordFSOperation records a filesystem operation
func (m *Metrics) RecordFSOperation(operation, status string, duration time.Duration) {
	m.FSOperations.WithLabelValues(operation, status).Inc()
	m.FSDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetFSCounts updates the file and folder gauges
func (m *Metrics) SetFSCounts(files, folders int) {
	m.FSFiles.Set(float64(files))
	m.FSFolders.Set(float64(folders))
}

// RecordAIOperation records an AI operation
func (m *Metrics) RecordAIOperation(operation, provider, status string, duration time.Duration) {
	m.AIOperations.WithLabelValues(operation, provider, status).Inc()
	m.AIDuration.WithLabelValues(operation, provider).Observe(duration.Seconds())
}

// RecordAIFallback records an AI operation answered by its fallback
func (m *Metrics) RecordAIFallback(operation, reason string) {
	m.AIFallbacks.WithLabelValues(operation, reason).Inc()
}

// RecordAICacheLookup records an AI response cache hit or miss
func (m *Metrics) RecordAICacheLookup(hit bool) {
	if hit {
		m.AICacheHits.Inc()
		return
	}
	m.AICacheMiss.Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// SetWindowsOpen sets the number of open windows
func (m *Metrics) SetWindowsOpen(count int) {
	m.WindowsOpen.Set(float64(count))
	m.mu.Lock()
	m.snapshot.OpenWindows = int64(count)
	m.mu.Unlock()
}

// IncWindowsTotal increments the total windows counter
func (m *Metrics) IncWindowsTotal() {
	m.WindowsTotal.Inc()
}

// IncSessionsSaved increments the sessions saved counter
func (m *Metrics) IncSessionsSaved() {
	m.SessionsSaved.Inc()
}

// IncSessionsRestored increments the sessions restored counter
func (m *Metrics) IncSessionsRestored() {
	m.SessionsRestored.Inc()
}

// WSConnected tracks a new WebSocket connection
func (m *Metrics) WSConnected() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.Connections++
	m.mu.Unlock()
}

// WSDisconnected tracks a closed WebSocket connection
func (m *Metrics) WSDisconnected() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.Connections--
	m.mu.Unlock()
}

// GetSnapshot returns current metric values for the JSON stats endpoint
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// AverageLatency returns the mean HTTP request duration in seconds
func (m *Metrics) AverageLatency() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snapshot.RequestCount == 0 {
		return 0
	}
	return m.snapshot.TotalDuration / float64(m.snapshot.RequestCount)
}
