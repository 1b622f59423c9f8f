package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestNewMetrics проверяет создание системы метрик
func TestNewMetrics(t *testing.T) {
	m := NewMetrics("rrhh_test", prometheus.NewRegistry())

	if m == nil {
		t.Fatal("Expected metrics, got nil")
	}

	if m.RequestCount == nil || m.RequestDuration == nil || m.ErrorsCount == nil {
		t.Error("Expected request metrics to be initialised")
	}

	if m.Tracer == nil {
		t.Error("Expected Tracer, got nil")
	}
}

// TestNewMetrics_DefaultRegistryTwice проверяет повторную регистрацию в глобальном реестре
func TestNewMetrics_DefaultRegistryTwice(t *testing.T) {
	NewMetrics("rrhh_twice", nil)
	NewMetrics("rrhh_twice", nil)
}

// TestObserveRequest проверяет счетчики запросов и ошибок
func TestObserveRequest(t *testing.T) {
	m := NewMetrics("rrhh_test", prometheus.NewRegistry())

	m.ObserveRequest("biometric", "GET", 200, 10*time.Millisecond)
	m.ObserveRequest("biometric", "GET", 404, 10*time.Millisecond)
	m.ObserveRequest("auth", "POST", 0, time.Millisecond)

	if got := testutil.ToFloat64(m.RequestCount.WithLabelValues("biometric", "GET", "200")); got != 1 {
		t.Errorf("Expected 1 successful request, got %v", got)
	}
	if got := testutil.ToFloat64(m.ErrorsCount.WithLabelValues("biometric", "GET", "client_error")); got != 1 {
		t.Errorf("Expected 1 client error, got %v", got)
	}
	if got := testutil.ToFloat64(m.ErrorsCount.WithLabelValues("auth", "POST", "transport")); got != 1 {
		t.Errorf("Expected 1 transport error, got %v", got)
	}
}

// TestObserveCacheAndSync проверяет метрики кэша и синхронизации
func TestObserveCacheAndSync(t *testing.T) {
	m := NewMetrics("rrhh_test", prometheus.NewRegistry())

	m.ObserveCache("users", true)
	m.ObserveCache("users", false)
	m.ObserveCache("users", false)
	if got := testutil.ToFloat64(m.CacheLookups.WithLabelValues("users", "miss")); got != 2 {
		t.Errorf("Expected 2 misses, got %v", got)
	}

	m.ObserveSync("device-1", nil)
	m.ObserveSync("device-1", errors.New("timeout"))
	if got := testutil.ToFloat64(m.SyncRuns.WithLabelValues("device-1", "error")); got != 1 {
		t.Errorf("Expected 1 failed sync, got %v", got)
	}
	if got := testutil.ToFloat64(m.LastSyncTime.WithLabelValues("device-1")); got == 0 {
		t.Error("Expected last sync timestamp to be set")
	}
}

// TestGetHandler проверяет обработчик метрик
func TestGetHandler(t *testing.T) {
	m := NewMetrics("rrhh_test", prometheus.NewRegistry())
	m.ObserveRequest("reportes", "GET", 200, time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	m.GetHandler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	if !strings.Contains(w.Body.String(), "rrhh_test_client_requests_total") {
		t.Errorf("Expected request counter in output, got %s", w.Body.String())
	}
}
