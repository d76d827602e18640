package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecord(t *testing.T) {
	m := New()
	m.LoadFinished(ResultOK)
	m.LoadFinished(ResultError)
	m.LoadFinished(ResultOK)
	m.ApprovalFinished(ResultOK, 20*time.Millisecond)
	m.ApprovalFinished(ResultSkipped, 0)
	m.SetPending(7)
	m.SetInFlight(2)

	if got := testutil.ToFloat64(m.loads.WithLabelValues(ResultOK)); got != 2 {
		t.Errorf("loads{ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.approvals.WithLabelValues(ResultSkipped)); got != 1 {
		t.Errorf("approvals{skipped} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.pending); got != 7 {
		t.Errorf("pending = %v, want 7", got)
	}
	if got := testutil.ToFloat64(m.inFlight); got != 2 {
		t.Errorf("in flight = %v, want 2", got)
	}
}

func TestMetricsHandler(t *testing.T) {
	m := New()
	m.SetPending(3)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "court_review_pending_requests 3") {
		t.Errorf("body missing pending gauge:\n%s", rec.Body.String())
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.LoadFinished(ResultOK)
	m.ApprovalFinished(ResultError, time.Second)
	m.SetPending(1)
	m.SetInFlight(1)
}
