package monitor

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for the reload counters.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Monitor collects configuration lifecycle metrics and remembers the log
// directory the logger configuration last pushed. All methods are safe for
// concurrent use.
type Monitor struct {
	mu      sync.Mutex
	logPath string

	registry      *prometheus.Registry
	configReloads *prometheus.CounterVec
	loggerReloads *prometheus.CounterVec
	serverVersion prometheus.Gauge
}

// New creates a Monitor with its own Prometheus registry.
func New() *Monitor {
	m := &Monitor{
		registry: prometheus.NewRegistry(),
		configReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "castwave_config_reloads_total",
			Help: "Full configuration load/reload attempts, by result.",
		}, []string{"result"}),
		loggerReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "castwave_logger_reloads_total",
			Help: "Logger configuration reload attempts, by result.",
		}, []string{"result"}),
		serverVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "castwave_config_document_version",
			Help: "Schema version of the currently loaded server document.",
		}),
	}
	m.registry.MustRegister(m.configReloads, m.loggerReloads, m.serverVersion)
	return m
}

// SetLogPath records the directory event logs are written to.
func (m *Monitor) SetLogPath(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logPath = dir
}

// LogPath returns the last recorded event-log directory.
func (m *Monitor) LogPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logPath
}

// ConfigReload counts one full configuration load attempt.
func (m *Monitor) ConfigReload(result string) {
	m.configReloads.WithLabelValues(result).Inc()
}

// LoggerReload counts one logger configuration reload attempt.
func (m *Monitor) LoggerReload(result string) {
	m.loggerReloads.WithLabelValues(result).Inc()
}

// SetDocumentVersion records the schema version of the loaded server document.
func (m *Monitor) SetDocumentVersion(v int) {
	m.serverVersion.Set(float64(v))
}

// Handler returns the HTTP handler exposing this Monitor's metrics.
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
