package monitor

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSetLogPath(t *testing.T) {
	m := New()
	if got := m.LogPath(); got != "" {
		t.Errorf("initial LogPath: got %q, want empty", got)
	}
	m.SetLogPath("/var/log/castwave")
	if got := m.LogPath(); got != "/var/log/castwave" {
		t.Errorf("LogPath: got %q, want /var/log/castwave", got)
	}
}

func TestCounters(t *testing.T) {
	m := New()
	m.ConfigReload(ResultOK)
	m.ConfigReload(ResultOK)
	m.ConfigReload(ResultError)
	m.LoggerReload(ResultError)

	if got := testutil.ToFloat64(m.configReloads.WithLabelValues(ResultOK)); got != 2 {
		t.Errorf("config reloads ok: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.configReloads.WithLabelValues(ResultError)); got != 1 {
		t.Errorf("config reloads error: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.loggerReloads.WithLabelValues(ResultError)); got != 1 {
		t.Errorf("logger reloads error: got %v, want 1", got)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.SetDocumentVersion(9)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "castwave_config_document_version 9") {
		t.Errorf("metrics output missing document version gauge:\n%s", body)
	}
}
