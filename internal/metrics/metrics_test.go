package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	return rec.Body.String()
}

func TestHandlerExposesCounters(t *testing.T) {
	ShotsFired.WithLabelValues("metrics-test").Inc()
	ShotsFired.WithLabelValues("metrics-test").Inc()
	RoundsCompleted.WithLabelValues("metrics-test").Inc()

	body := scrape(t)
	if !strings.Contains(body, `aimrange_shots_fired_total{mode="metrics-test"} 2`) {
		t.Error("scrape should report 2 shots for mode metrics-test")
	}
	if !strings.Contains(body, `aimrange_rounds_completed_total{mode="metrics-test"} 1`) {
		t.Error("scrape should report 1 round for mode metrics-test")
	}
}

func TestHandlerExposesGauge(t *testing.T) {
	ActiveSessions.Inc()
	defer ActiveSessions.Dec()

	if !strings.Contains(scrape(t), "aimrange_active_sessions") {
		t.Error("scrape should contain aimrange_active_sessions")
	}
}
